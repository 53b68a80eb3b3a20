package game

import "fmt"

// --- Handles ---

// FieldID indexes GameState.Fields.
type FieldID int

// VirologistID indexes GameState.Virologists.
type VirologistID int

const (
	NoField      FieldID      = -1
	NoVirologist VirologistID = -1
)

// --- Enums ---

type FieldKind int

const (
	FieldPlain FieldKind = iota
	FieldStorage
	FieldLaboratory
	FieldShelter
)

func (k FieldKind) String() string {
	switch k {
	case FieldPlain:
		return "Field"
	case FieldStorage:
		return "Storage"
	case FieldLaboratory:
		return "Laboratory"
	case FieldShelter:
		return "Shelter"
	default:
		return "Unknown"
	}
}

// MovementMode is the movement behavior currently imposed on a virologist.
type MovementMode int

const (
	MovementDefault MovementMode = iota
	MovementDance                // erratic: destination replaced by a random neighbor
	MovementStunned              // cannot move
	MovementBear                 // erratic, destroys storages and infects occupants on entry
)

func (m MovementMode) String() string {
	switch m {
	case MovementDefault:
		return "default"
	case MovementDance:
		return "dance"
	case MovementStunned:
		return "stunned"
	case MovementBear:
		return "bear"
	default:
		return "unknown"
	}
}

type CodeKind int

const (
	CodeAmni CodeKind = iota
	CodeDance
	CodeProt
	CodeStun

	codeKindCount
)

// AllCodes lists every code kind in canonical order.
var AllCodes = []CodeKind{CodeAmni, CodeDance, CodeProt, CodeStun}

func (c CodeKind) String() string {
	switch c {
	case CodeAmni:
		return "AmniCode"
	case CodeDance:
		return "DanceCode"
	case CodeProt:
		return "ProtCode"
	case CodeStun:
		return "StunCode"
	default:
		return "UnknownCode"
	}
}

// Produces returns the agent kind crafted from this code.
func (c CodeKind) Produces() AgentKind {
	switch c {
	case CodeAmni:
		return AgentAmni
	case CodeDance:
		return AgentDance
	case CodeProt:
		return AgentProt
	default:
		return AgentStun
	}
}

type AgentKind int

const (
	AgentAmni AgentKind = iota
	AgentDance
	AgentProt
	AgentStun
	AgentBear

	agentKindCount
)

func (a AgentKind) String() string {
	switch a {
	case AgentAmni:
		return "AmniVirus"
	case AgentDance:
		return "DanceVirus"
	case AgentProt:
		return "ProtVaccine"
	case AgentStun:
		return "StunVirus"
	case AgentBear:
		return "BearVirus"
	default:
		return "UnknownAgent"
	}
}

// IsVirus reports whether the agent is hostile (everything but vaccines).
func (a AgentKind) IsVirus() bool {
	return a != AgentProt
}

// Mode returns the movement mode the agent imposes, if any.
func (a AgentKind) Mode() (MovementMode, bool) {
	switch a {
	case AgentDance:
		return MovementDance, true
	case AgentStun:
		return MovementStunned, true
	case AgentBear:
		return MovementBear, true
	default:
		return MovementDefault, false
	}
}

type GearKind int

const (
	GearGlove GearKind = iota
	GearAxe
	GearRobe
	GearSack

	gearKindCount
)

func (g GearKind) String() string {
	switch g {
	case GearGlove:
		return "GloveGear"
	case GearAxe:
		return "AxeGear"
	case GearRobe:
		return "RobeGear"
	case GearSack:
		return "SackGear"
	default:
		return "UnknownGear"
	}
}

// --- Action types ---

type ActionType int

const (
	ActionMove ActionType = iota
	ActionCraft
	ActionSmear
	ActionSteal
	ActionAxe
	ActionEndTurn
)

func (a ActionType) String() string {
	switch a {
	case ActionMove:
		return "Move"
	case ActionCraft:
		return "Craft"
	case ActionSmear:
		return "Smear"
	case ActionSteal:
		return "Steal"
	case ActionAxe:
		return "Axe"
	case ActionEndTurn:
		return "End Turn"
	default:
		return "Unknown"
	}
}

// Action represents a virologist action with all necessary details.
type Action struct {
	Type       ActionType
	Virologist VirologistID
	Field      FieldID      // move destination
	Code       CodeKind     // craft recipe
	AgentIndex int          // index into the actor's crafted agents
	Target     VirologistID // smear/steal/axe target
	Desc       string       // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

// Cost is a pair of material amounts.
type Cost struct {
	Nucleotide int
	AminoAcid  int
}

func (c Cost) String() string {
	return fmt.Sprintf("%dn/%da", c.Nucleotide, c.AminoAcid)
}
