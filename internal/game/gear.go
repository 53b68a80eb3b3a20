package game

import "fmt"

// Gear is a piece of equipment owned by a virologist.
//
// Glove: reflects an agent smeared by a rival back onto the smearer; wears out.
// Axe: kills a bear-infected virologist on the same field; blunts after one use.
// Robe: blocks a rival's agent with probability Rules.RobeBlockChance.
// Sack: raises carry capacity by Rules.SackBonus.
type Gear struct {
	Kind GearKind
	Uses int // remaining uses for gloves and axes; ignored otherwise
}

// NewGear returns fresh equipment of the given kind.
func NewGear(kind GearKind, rules Rules) *Gear {
	g := &Gear{Kind: kind}
	switch kind {
	case GearGlove:
		g.Uses = rules.GloveUses
	case GearAxe:
		g.Uses = 1
	}
	return g
}

// Limited reports whether the gear wears out with use.
func (g *Gear) Limited() bool {
	return g.Kind == GearGlove || g.Kind == GearAxe
}

// Use consumes one use and reports whether the gear is now worn out.
func (g *Gear) Use() bool {
	if !g.Limited() {
		return false
	}
	g.Uses--
	return g.Uses <= 0
}

func (g *Gear) String() string {
	if g.Limited() {
		return fmt.Sprintf("%s %d", g.Kind, g.Uses)
	}
	return g.Kind.String()
}
