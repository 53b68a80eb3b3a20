package game

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeRegistry maps code names to kinds.
var CodeRegistry = map[string]CodeKind{
	"AmniCode":  CodeAmni,
	"DanceCode": CodeDance,
	"ProtCode":  CodeProt,
	"StunCode":  CodeStun,
}

// AgentRegistry maps agent names to kinds.
var AgentRegistry = map[string]AgentKind{
	"AmniVirus":   AgentAmni,
	"DanceVirus":  AgentDance,
	"ProtVaccine": AgentProt,
	"StunVirus":   AgentStun,
	"BearVirus":   AgentBear,
}

// GearRegistry maps gear names to kinds.
var GearRegistry = map[string]GearKind{
	"GloveGear": GearGlove,
	"AxeGear":   GearAxe,
	"RobeGear":  GearRobe,
	"SackGear":  GearSack,
}

// FieldRegistry maps field kind names to kinds. Empty means a plain field.
var FieldRegistry = map[string]FieldKind{
	"":           FieldPlain,
	"Field":      FieldPlain,
	"Storage":    FieldStorage,
	"Laboratory": FieldLaboratory,
	"Shelter":    FieldShelter,
}

func ParseCodeKind(name string) (CodeKind, error) {
	if k, ok := CodeRegistry[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: code %q", ErrUnknownName, name)
}

func ParseAgentKind(name string) (AgentKind, error) {
	if k, ok := AgentRegistry[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: agent %q", ErrUnknownName, name)
}

func ParseGearKind(name string) (GearKind, error) {
	if k, ok := GearRegistry[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: gear %q", ErrUnknownName, name)
}

func ParseFieldKind(name string) (FieldKind, error) {
	if k, ok := FieldRegistry[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: field kind %q", ErrUnknownName, name)
}

// SplitToken splits an item token such as "GloveGear 2" into its kind name and
// optional count. count is -1 when absent.
func SplitToken(token string) (string, int, error) {
	parts := strings.Fields(token)
	switch len(parts) {
	case 1:
		return parts[0], -1, nil
	case 2:
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 0 {
			return "", 0, fmt.Errorf("%w: bad count in %q", ErrUnknownName, token)
		}
		return parts[0], n, nil
	default:
		return "", 0, fmt.Errorf("%w: malformed token %q", ErrUnknownName, token)
	}
}

// ParseGear parses a gear token. A missing use count means fresh gear.
func ParseGear(token string, rules Rules) (*Gear, error) {
	name, n, err := SplitToken(token)
	if err != nil {
		return nil, err
	}
	kind, err := ParseGearKind(name)
	if err != nil {
		return nil, err
	}
	g := NewGear(kind, rules)
	if n >= 0 && g.Limited() {
		if n == 0 {
			return nil, fmt.Errorf("%w: %s has no uses left", ErrUnknownName, name)
		}
		g.Uses = n
	}
	return g, nil
}

// ParseAgent parses an agent token. The count, if any, is the remaining
// duration of an active agent.
func ParseAgent(token string, rules Rules) (*Agent, int, error) {
	name, n, err := SplitToken(token)
	if err != nil {
		return nil, 0, err
	}
	kind, err := ParseAgentKind(name)
	if err != nil {
		return nil, 0, err
	}
	return NewAgent(kind, rules), n, nil
}
