package save

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/virologists/internal/game"
)

// Parse validates raw YAML against the save schema and decodes it.
func Parse(raw []byte) (*Document, error) {
	if err := ValidateYAML(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrGraphConstruction, err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrGraphConstruction, err)
	}
	return &doc, nil
}

// Load reads a YAML save and builds a started game from it.
func Load(path string, rules game.Rules) (*game.GameState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(doc, rules)
}

// Marshal encodes a document as YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Save writes gs to path as YAML.
func Save(path string, gs *game.GameState) error {
	raw, err := Marshal(Export(gs))
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Build resolves names and links the board described by doc. Every naming or
// linking mistake is reported as game.ErrGraphConstruction. The game is
// started with the turn on doc.Active, or on the first virologist if unset.
func Build(doc *Document, rules game.Rules) (*game.GameState, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrGraphConstruction, err)
	}
	gs := game.NewGameState(rules, doc.Seed)

	ids := make(map[string]game.FieldID, len(doc.Fields))
	for _, fe := range doc.Fields {
		if _, dup := ids[fe.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", game.ErrGraphConstruction, fe.Name)
		}
		f, err := buildField(gs, fe)
		if err != nil {
			return nil, err
		}
		ids[fe.Name] = f.ID
	}

	for _, fe := range doc.Fields {
		f := gs.Field(ids[fe.Name])
		for i, name := range fe.Neighbors {
			n, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("%w: field %q names unknown neighbor %q", game.ErrGraphConstruction, fe.Name, name)
			}
			if err := f.SetNeighbor(i, n); err != nil {
				return nil, err
			}
		}
	}

	names := make(map[string]bool)
	for _, fe := range doc.Fields {
		for _, ve := range fe.Virologists {
			if names[ve.Name] {
				return nil, fmt.Errorf("%w: duplicate virologist %q", game.ErrGraphConstruction, ve.Name)
			}
			names[ve.Name] = true
			if err := buildVirologist(gs, ids[fe.Name], ve); err != nil {
				return nil, fmt.Errorf("%w: virologist %q: %v", game.ErrGraphConstruction, ve.Name, err)
			}
		}
	}

	if doc.Active == "" {
		if err := gs.Start(); err != nil {
			return nil, err
		}
		return gs, nil
	}
	active := gs.VirologistByName(doc.Active)
	if active == nil {
		return nil, fmt.Errorf("%w: active virologist %q not on the board", game.ErrGraphConstruction, doc.Active)
	}
	if err := gs.Resume(active.ID, doc.Rounds, doc.Turns); err != nil {
		return nil, err
	}
	return gs, nil
}

func buildField(gs *game.GameState, fe FieldEntry) (*game.Field, error) {
	kind, err := game.ParseFieldKind(fe.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", game.ErrGraphConstruction, fe.Name, err)
	}
	f := gs.AddField(fe.Name, kind)
	switch kind {
	case game.FieldStorage:
		f.Nucleotide, f.AminoAcid = fe.Nucleotide, fe.AminoAcid
	case game.FieldLaboratory:
		if f.Code, err = game.ParseCodeKind(fe.Code); err != nil {
			return nil, fmt.Errorf("%w: laboratory %q: %v", game.ErrGraphConstruction, fe.Name, err)
		}
		f.Infected = fe.Infected
	case game.FieldShelter:
		if f.Gear, err = game.ParseGearKind(fe.Gear); err != nil {
			return nil, fmt.Errorf("%w: shelter %q: %v", game.ErrGraphConstruction, fe.Name, err)
		}
	}
	return f, nil
}

func buildVirologist(gs *game.GameState, at game.FieldID, ve VirologistEntry) error {
	v, err := gs.AddVirologist(ve.Name, at)
	if err != nil {
		return err
	}
	v.Nucleotide, v.AminoAcid = ve.Nucleotide, ve.AminoAcid

	for _, token := range ve.Gears {
		g, err := game.ParseGear(token, gs.Rules)
		if err != nil {
			return err
		}
		if err := v.PickUpGear(g); err != nil {
			return err
		}
	}
	if capacity := gs.Capacity(v); v.Nucleotide > capacity || v.AminoAcid > capacity {
		return fmt.Errorf("ledger %dn/%da exceeds capacity %d", v.Nucleotide, v.AminoAcid, capacity)
	}
	for _, token := range ve.Codes {
		name, _, err := game.SplitToken(token)
		if err != nil {
			return err
		}
		code, err := game.ParseCodeKind(name)
		if err != nil {
			return err
		}
		v.LearnCode(code)
	}
	for _, token := range ve.Crafted {
		a, _, err := game.ParseAgent(token, gs.Rules)
		if err != nil {
			return err
		}
		v.AddCraftedAgent(a)
	}
	for _, token := range ve.Active {
		a, remaining, err := game.ParseAgent(token, gs.Rules)
		if err != nil {
			return err
		}
		if remaining < 0 || a.Permanent() {
			remaining = a.Duration
		}
		if remaining == 0 && !a.Permanent() {
			return fmt.Errorf("active %s has already expired", a.Kind)
		}
		gs.RestoreActive(v, a, remaining)
	}
	return nil
}
