package game

import "fmt"

const (
	MaxNeighbors        = 8
	DefaultMaxMaterial  = 200
	DefaultSackBonus    = 100
	DefaultAmniDrain    = 20
	DefaultProtRestore  = 10
	DefaultGloveUses    = 3
	DefaultRobeChance   = 0.823
	DefaultStartingPool = 50
	DefaultMaxTurns     = 500
)

// Rules holds every tunable constant of the engine.
type Rules struct {
	CodeCosts [codeKindCount]Cost
	Durations [agentKindCount]int // rounds; 0 means the agent never expires

	MaxMaterial        int // carry capacity per material
	SackBonus          int // extra capacity with a sack
	AmniDrain          int
	ProtRestore        int
	GloveUses          int
	RobeBlockChance    float64
	StartingNucleotide int
	StartingAminoAcid  int
}

// DefaultRules returns the standard ruleset. AmniCode is the most expensive
// recipe at 100/100.
func DefaultRules() Rules {
	r := Rules{
		MaxMaterial:        DefaultMaxMaterial,
		SackBonus:          DefaultSackBonus,
		AmniDrain:          DefaultAmniDrain,
		ProtRestore:        DefaultProtRestore,
		GloveUses:          DefaultGloveUses,
		RobeBlockChance:    DefaultRobeChance,
		StartingNucleotide: DefaultStartingPool,
		StartingAminoAcid:  DefaultStartingPool,
	}
	r.CodeCosts[CodeAmni] = Cost{Nucleotide: 100, AminoAcid: 100}
	r.CodeCosts[CodeDance] = Cost{Nucleotide: 80, AminoAcid: 60}
	r.CodeCosts[CodeProt] = Cost{Nucleotide: 60, AminoAcid: 80}
	r.CodeCosts[CodeStun] = Cost{Nucleotide: 70, AminoAcid: 70}

	r.Durations[AgentAmni] = 2
	r.Durations[AgentDance] = 3
	r.Durations[AgentProt] = 3
	r.Durations[AgentStun] = 2
	r.Durations[AgentBear] = 0
	return r
}

// Cost returns the crafting cost of a code.
func (r Rules) Cost(c CodeKind) Cost {
	if c < 0 || c >= codeKindCount {
		return Cost{}
	}
	return r.CodeCosts[c]
}

// Duration returns the countdown an agent starts with when smeared.
func (r Rules) Duration(a AgentKind) int {
	if a < 0 || a >= agentKindCount {
		return 0
	}
	return r.Durations[a]
}

// Validate rejects negative or out-of-range settings.
func (r Rules) Validate() error {
	for _, c := range AllCodes {
		cost := r.CodeCosts[c]
		if cost.Nucleotide < 0 || cost.AminoAcid < 0 {
			return fmt.Errorf("%s cost %s is negative", c, cost)
		}
	}
	for k := AgentKind(0); k < agentKindCount; k++ {
		if r.Durations[k] < 0 {
			return fmt.Errorf("%s duration %d is negative", k, r.Durations[k])
		}
	}
	if r.MaxMaterial <= 0 {
		return fmt.Errorf("max material must be positive, got %d", r.MaxMaterial)
	}
	if r.SackBonus < 0 || r.AmniDrain < 0 || r.ProtRestore < 0 {
		return fmt.Errorf("sack bonus, amni drain and prot restore must not be negative")
	}
	if r.GloveUses <= 0 {
		return fmt.Errorf("glove uses must be positive, got %d", r.GloveUses)
	}
	if r.RobeBlockChance < 0 || r.RobeBlockChance > 1 {
		return fmt.Errorf("robe block chance %.3f outside [0,1]", r.RobeBlockChance)
	}
	if r.StartingNucleotide < 0 || r.StartingAminoAcid < 0 {
		return fmt.Errorf("starting materials must not be negative")
	}
	if r.StartingNucleotide > r.MaxMaterial || r.StartingAminoAcid > r.MaxMaterial {
		return fmt.Errorf("starting materials exceed max material %d", r.MaxMaterial)
	}
	return nil
}
