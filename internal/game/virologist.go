package game

import "fmt"

// Virologist is one player's entire state.
type Virologist struct {
	ID    VirologistID
	Name  string
	Field FieldID // current position, not owned

	// Ledger
	Nucleotide int
	AminoAcid  int

	Gear    []*Gear    // at most one per kind, in pickup order
	Codes   []CodeKind // learned recipes, set semantics
	Crafted []*Agent   // crafted, not yet smeared
	Active  []*Agent   // smeared onto this virologist, in application order

	Mode       MovementMode
	Eliminated bool
}

// --- Ledger ---

// AddNucleotide adds n nucleotide. Capacity is enforced by GameState.Grant.
func (v *Virologist) AddNucleotide(n int) {
	if n > 0 {
		v.Nucleotide += n
	}
}

// AddAminoAcid adds n amino acid. Capacity is enforced by GameState.Grant.
func (v *Virologist) AddAminoAcid(n int) {
	if n > 0 {
		v.AminoAcid += n
	}
}

// RemoveNucleotide removes n nucleotide, or nothing if the ledger would go negative.
func (v *Virologist) RemoveNucleotide(n int) error {
	if n < 0 {
		return fmt.Errorf("remove nucleotide: negative amount %d", n)
	}
	if n > v.Nucleotide {
		return fmt.Errorf("%w: %s has %d nucleotide, needs %d", ErrInsufficientResources, v.Name, v.Nucleotide, n)
	}
	v.Nucleotide -= n
	return nil
}

// RemoveAminoAcid removes n amino acid, or nothing if the ledger would go negative.
func (v *Virologist) RemoveAminoAcid(n int) error {
	if n < 0 {
		return fmt.Errorf("remove amino acid: negative amount %d", n)
	}
	if n > v.AminoAcid {
		return fmt.Errorf("%w: %s has %d amino acid, needs %d", ErrInsufficientResources, v.Name, v.AminoAcid, n)
	}
	v.AminoAcid -= n
	return nil
}

// drain removes up to n of each material, clamping at zero.
func (v *Virologist) drain(n int) {
	v.Nucleotide = max(v.Nucleotide-n, 0)
	v.AminoAcid = max(v.AminoAcid-n, 0)
}

// LedgerEmpty reports whether both counters are zero.
func (v *Virologist) LedgerEmpty() bool {
	return v.Nucleotide == 0 && v.AminoAcid == 0
}

// --- Gear ---

// GearOf returns the owned gear of the given kind, or nil.
func (v *Virologist) GearOf(kind GearKind) *Gear {
	for _, g := range v.Gear {
		if g.Kind == kind {
			return g
		}
	}
	return nil
}

// HasGear reports whether v owns gear of the given kind.
func (v *Virologist) HasGear(kind GearKind) bool {
	return v.GearOf(kind) != nil
}

// PickUpGear equips g. A virologist holds at most one gear per kind.
func (v *Virologist) PickUpGear(g *Gear) error {
	if v.HasGear(g.Kind) {
		return fmt.Errorf("%w: %s already has %s", ErrGearOwned, v.Name, g.Kind)
	}
	v.Gear = append(v.Gear, g)
	return nil
}

// DropGear removes the gear of the given kind and returns it, or nil.
func (v *Virologist) DropGear(kind GearKind) *Gear {
	for i, g := range v.Gear {
		if g.Kind == kind {
			v.Gear = append(v.Gear[:i], v.Gear[i+1:]...)
			return g
		}
	}
	return nil
}

// --- Codes ---

// Knows reports whether v has learned the code.
func (v *Virologist) Knows(code CodeKind) bool {
	for _, c := range v.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// LearnCode adds the code and reports whether it was new.
func (v *Virologist) LearnCode(code CodeKind) bool {
	if v.Knows(code) {
		return false
	}
	v.Codes = append(v.Codes, code)
	return true
}

// ForgetCodes drops every learned code and returns how many were lost.
func (v *Virologist) ForgetCodes() int {
	n := len(v.Codes)
	v.Codes = nil
	return n
}

// KnowsAllCodes reports whether every recipe has been learned.
func (v *Virologist) KnowsAllCodes() bool {
	for _, c := range AllCodes {
		if !v.Knows(c) {
			return false
		}
	}
	return true
}

// --- Agents ---

// AddCraftedAgent stores an agent in the inventory.
func (v *Virologist) AddCraftedAgent(a *Agent) {
	v.Crafted = append(v.Crafted, a)
}

// takeCrafted removes and returns the crafted agent at idx.
func (v *Virologist) takeCrafted(idx int) (*Agent, error) {
	if idx < 0 || idx >= len(v.Crafted) {
		return nil, fmt.Errorf("%w: %s has %d crafted agents, index %d", ErrNoSuchAgent, v.Name, len(v.Crafted), idx)
	}
	a := v.Crafted[idx]
	v.Crafted = append(v.Crafted[:idx], v.Crafted[idx+1:]...)
	return a, nil
}

// addActive registers an active agent and refreshes the movement mode.
func (v *Virologist) addActive(a *Agent) {
	v.Active = append(v.Active, a)
	v.refreshMode()
}

// removeActive drops a from the active list and refreshes the movement mode.
func (v *Virologist) removeActive(a *Agent) {
	for i, x := range v.Active {
		if x == a {
			v.Active = append(v.Active[:i], v.Active[i+1:]...)
			break
		}
	}
	v.refreshMode()
}

// refreshMode sets the mode imposed by the most recently applied agent that
// imposes one, or the default mode when none remains.
func (v *Virologist) refreshMode() {
	v.Mode = MovementDefault
	for i := len(v.Active) - 1; i >= 0; i-- {
		if mode, ok := v.Active[i].Mode(); ok {
			v.Mode = mode
			return
		}
	}
}

// HasActive reports whether an agent of the given kind is active on v.
func (v *Virologist) HasActive(kind AgentKind) bool {
	for _, a := range v.Active {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Immune reports whether an active vaccine protects v from viruses.
func (v *Virologist) Immune() bool {
	return v.HasActive(AgentProt)
}

// BearInfected reports whether v carries the bear virus.
func (v *Virologist) BearInfected() bool {
	return v.HasActive(AgentBear)
}

// Stunned reports whether v cannot move.
func (v *Virologist) Stunned() bool {
	return v.Mode == MovementStunned
}

// cure removes every active virus except the incurable bear virus and returns
// how many were removed.
func (v *Virologist) cure() int {
	kept := v.Active[:0]
	removed := 0
	for _, a := range v.Active {
		if a.Kind.IsVirus() && a.Kind != AgentBear {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	v.Active = kept
	v.refreshMode()
	return removed
}

func (v *Virologist) String() string {
	if v == nil {
		return "(none)"
	}
	return v.Name
}
