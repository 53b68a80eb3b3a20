package game

import "fmt"

// Field is a node of the board graph.
type Field struct {
	ID        FieldID
	Name      string
	Kind      FieldKind
	Neighbors []FieldID      // indexed slots; NoField marks an empty slot
	Occupants []VirologistID // handles only; a field never owns its virologists

	// Storage pool.
	Nucleotide int
	AminoAcid  int

	// Laboratory recipe. Infected laboratories also carry the bear virus.
	Code     CodeKind
	Infected bool

	// Shelter equipment.
	Gear GearKind
}

// SetNeighbor assigns f at slot idx. Relations are directed: the reverse link
// is the caller's business.
func (f *Field) SetNeighbor(idx int, n FieldID) error {
	if idx < 0 || idx >= MaxNeighbors {
		return fmt.Errorf("%w: field %q neighbor slot %d out of range", ErrGraphConstruction, f.Name, idx)
	}
	for len(f.Neighbors) <= idx {
		f.Neighbors = append(f.Neighbors, NoField)
	}
	f.Neighbors[idx] = n
	return nil
}

// IsNeighbor reports whether n occupies one of f's neighbor slots.
func (f *Field) IsNeighbor(n FieldID) bool {
	if n == NoField {
		return false
	}
	for _, id := range f.Neighbors {
		if id == n {
			return true
		}
	}
	return false
}

// NeighborIDs returns the filled neighbor slots in slot order.
func (f *Field) NeighborIDs() []FieldID {
	var result []FieldID
	for _, id := range f.Neighbors {
		if id != NoField {
			result = append(result, id)
		}
	}
	return result
}

// Accept appends v to the occupant list. Callers must not accept a
// virologist that is already present.
func (f *Field) Accept(v VirologistID) {
	f.Occupants = append(f.Occupants, v)
}

// Remove drops v from the occupant list. Returns false if v was not there.
func (f *Field) Remove(v VirologistID) bool {
	for i, id := range f.Occupants {
		if id == v {
			f.Occupants = append(f.Occupants[:i], f.Occupants[i+1:]...)
			return true
		}
	}
	return false
}

// HasOccupant reports whether v stands on f.
func (f *Field) HasOccupant(v VirologistID) bool {
	for _, id := range f.Occupants {
		if id == v {
			return true
		}
	}
	return false
}

// DestroyResources empties a storage. Other kinds hold no materials.
func (f *Field) DestroyResources() bool {
	if f.Kind != FieldStorage {
		return false
	}
	destroyed := f.Nucleotide > 0 || f.AminoAcid > 0
	f.Nucleotide = 0
	f.AminoAcid = 0
	return destroyed
}

// Describe returns the field name with what it offers.
func (f *Field) Describe() string {
	switch f.Kind {
	case FieldStorage:
		return fmt.Sprintf("%s (Storage %dn/%da)", f.Name, f.Nucleotide, f.AminoAcid)
	case FieldLaboratory:
		if f.Infected {
			return fmt.Sprintf("%s (Laboratory %s, infected)", f.Name, f.Code)
		}
		return fmt.Sprintf("%s (Laboratory %s)", f.Name, f.Code)
	case FieldShelter:
		return fmt.Sprintf("%s (Shelter %s)", f.Name, f.Gear)
	default:
		return f.Name
	}
}
