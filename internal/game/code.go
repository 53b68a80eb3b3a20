package game

import "fmt"

// CraftAgent crafts the agent produced by code for v at the given cost.
//
// Affordability uses strict inequality: a ledger holding exactly the cost
// cannot pay it. On failure the ledger is untouched.
func CraftAgent(v *Virologist, code CodeKind, nCost, aCost int, rules Rules) (*Agent, error) {
	if nCost < 0 || aCost < 0 {
		return nil, fmt.Errorf("%s: negative cost %dn/%da", code, nCost, aCost)
	}
	if !v.Knows(code) {
		return nil, fmt.Errorf("%w: %s does not know %s", ErrCodeNotLearned, v.Name, code)
	}
	if !(v.Nucleotide > nCost && v.AminoAcid > aCost) {
		return nil, fmt.Errorf("%w: %s needs more than %dn/%da, has %dn/%da",
			ErrInsufficientResources, code, nCost, aCost, v.Nucleotide, v.AminoAcid)
	}
	// both removals succeed after the check above
	_ = v.RemoveNucleotide(nCost)
	_ = v.RemoveAminoAcid(aCost)
	a := NewAgent(code.Produces(), rules)
	v.AddCraftedAgent(a)
	return a, nil
}

// CanAfford reports whether v could pay cost under the strict rule.
func CanAfford(v *Virologist, cost Cost) bool {
	return v.Nucleotide > cost.Nucleotide && v.AminoAcid > cost.AminoAcid
}
