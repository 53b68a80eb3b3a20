package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/virologists/internal/game"
)

// Tuning is a rules override file. Absent keys keep the base value.
type Tuning struct {
	MaxMaterial        *int     `yaml:"max_material"`
	SackBonus          *int     `yaml:"sack_bonus"`
	AmniDrain          *int     `yaml:"amni_drain"`
	ProtRestore        *int     `yaml:"prot_restore"`
	GloveUses          *int     `yaml:"glove_uses"`
	RobeBlockChance    *float64 `yaml:"robe_block_chance"`
	StartingNucleotide *int     `yaml:"starting_nucleotide"`
	StartingAminoAcid  *int     `yaml:"starting_amino_acid"`
	MaxTurns           *int     `yaml:"max_turns"`

	Costs     map[string]CostEntry `yaml:"costs"`     // keyed by code name, e.g. AmniCode
	Durations map[string]int       `yaml:"durations"` // keyed by agent name, e.g. DanceVirus
}

type CostEntry struct {
	Nucleotide int `yaml:"nucleotide"`
	AminoAcid  int `yaml:"amino_acid"`
}

func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning yaml: %w", err)
	}
	return t, nil
}

// Apply layers the overrides over base and validates the result.
func (t Tuning) Apply(base game.Rules) (game.Rules, error) {
	r := base
	setInt(&r.MaxMaterial, t.MaxMaterial)
	setInt(&r.SackBonus, t.SackBonus)
	setInt(&r.AmniDrain, t.AmniDrain)
	setInt(&r.ProtRestore, t.ProtRestore)
	setInt(&r.GloveUses, t.GloveUses)
	setInt(&r.StartingNucleotide, t.StartingNucleotide)
	setInt(&r.StartingAminoAcid, t.StartingAminoAcid)
	if t.RobeBlockChance != nil {
		r.RobeBlockChance = *t.RobeBlockChance
	}

	for name, c := range t.Costs {
		code, err := game.ParseCodeKind(name)
		if err != nil {
			return base, fmt.Errorf("tuning costs: %w", err)
		}
		r.CodeCosts[code] = game.Cost{Nucleotide: c.Nucleotide, AminoAcid: c.AminoAcid}
	}
	for name, d := range t.Durations {
		agent, err := game.ParseAgentKind(name)
		if err != nil {
			return base, fmt.Errorf("tuning durations: %w", err)
		}
		r.Durations[agent] = d
	}

	if err := r.Validate(); err != nil {
		return base, fmt.Errorf("tuning: %w", err)
	}
	return r, nil
}

// TurnLimit returns the configured turn limit, or fallback when unset.
func (t Tuning) TurnLimit(fallback int) int {
	if t.MaxTurns == nil || *t.MaxTurns <= 0 {
		return fallback
	}
	return *t.MaxTurns
}

// LoadRules reads path and applies it over the default rules. An empty path
// yields the defaults.
func LoadRules(path string) (game.Rules, int, error) {
	if path == "" {
		return game.DefaultRules(), game.DefaultMaxTurns, nil
	}
	t, err := Load(path)
	if err != nil {
		return game.Rules{}, 0, err
	}
	r, err := t.Apply(game.DefaultRules())
	if err != nil {
		return game.Rules{}, 0, err
	}
	return r, t.TurnLimit(game.DefaultMaxTurns), nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
