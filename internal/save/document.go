// Package save reads and writes game boards as YAML documents, and as
// zstd-compressed JSON snapshots of the same document.
package save

import (
	"github.com/peterkuimelis/virologists/internal/game"
)

// Document is the save file. Fields appear in board order; each virologist
// is listed on the field it stands on.
type Document struct {
	Seed   int64        `yaml:"Seed,omitempty" json:"Seed,omitempty"`
	Active string       `yaml:"Active,omitempty" json:"Active,omitempty"`
	Rounds int          `yaml:"Rounds,omitempty" json:"Rounds,omitempty"`
	Turns  int          `yaml:"Turns,omitempty" json:"Turns,omitempty"`
	Fields []FieldEntry `yaml:"Fields" json:"Fields"`
}

type FieldEntry struct {
	Name        string            `yaml:"Name" json:"Name"`
	Kind        string            `yaml:"Kind,omitempty" json:"Kind,omitempty"`
	Neighbors   []string          `yaml:"Neighbors" json:"Neighbors"`
	Nucleotide  int               `yaml:"Nucleotide,omitempty" json:"Nucleotide,omitempty"`
	AminoAcid   int               `yaml:"AminoAcid,omitempty" json:"AminoAcid,omitempty"`
	Code        string            `yaml:"Code,omitempty" json:"Code,omitempty"`
	Infected    bool              `yaml:"Infected,omitempty" json:"Infected,omitempty"`
	Gear        string            `yaml:"Gear,omitempty" json:"Gear,omitempty"`
	Virologists []VirologistEntry `yaml:"Virologists" json:"Virologists"`
}

type VirologistEntry struct {
	Name       string   `yaml:"Name" json:"Name"`
	Nucleotide int      `yaml:"nCount" json:"nCount"`
	AminoAcid  int      `yaml:"aCount" json:"aCount"`
	Gears      []string `yaml:"Gears,omitempty" json:"Gears,omitempty"`
	Codes      []string `yaml:"Learnt Codes,omitempty" json:"Learnt Codes,omitempty"`
	Crafted    []string `yaml:"Crafted Agents,omitempty" json:"Crafted Agents,omitempty"`
	Active     []string `yaml:"Active Agents,omitempty" json:"Active Agents,omitempty"`
}

// Export captures gs as a document. Eliminated virologists are left out.
func Export(gs *game.GameState) *Document {
	doc := &Document{Seed: gs.Seed}
	if v := gs.Active(); v != nil {
		doc.Active = v.Name
		doc.Rounds = gs.Scheduler().RoundsCompleted()
		doc.Turns = gs.Scheduler().Turns()
	}

	for _, f := range gs.Fields {
		entry := FieldEntry{
			Name:        f.Name,
			Neighbors:   []string{},
			Virologists: []VirologistEntry{},
		}
		if f.Kind != game.FieldPlain {
			entry.Kind = f.Kind.String()
		}
		for _, n := range f.NeighborIDs() {
			entry.Neighbors = append(entry.Neighbors, gs.Field(n).Name)
		}
		switch f.Kind {
		case game.FieldStorage:
			entry.Nucleotide, entry.AminoAcid = f.Nucleotide, f.AminoAcid
		case game.FieldLaboratory:
			entry.Code = f.Code.String()
			entry.Infected = f.Infected
		case game.FieldShelter:
			entry.Gear = f.Gear.String()
		}
		for _, v := range gs.Occupants(f.ID) {
			entry.Virologists = append(entry.Virologists, exportVirologist(v))
		}
		doc.Fields = append(doc.Fields, entry)
	}
	return doc
}

func exportVirologist(v *game.Virologist) VirologistEntry {
	e := VirologistEntry{
		Name:       v.Name,
		Nucleotide: v.Nucleotide,
		AminoAcid:  v.AminoAcid,
	}
	for _, g := range v.Gear {
		e.Gears = append(e.Gears, g.String())
	}
	for _, c := range v.Codes {
		e.Codes = append(e.Codes, c.String())
	}
	for _, a := range v.Crafted {
		e.Crafted = append(e.Crafted, a.Kind.String())
	}
	for _, a := range v.Active {
		e.Active = append(e.Active, a.String())
	}
	return e
}
