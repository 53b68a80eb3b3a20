package game

import (
	"fmt"
	"math/rand"
)

// gridWidth is the column count of generated boards.
const gridWidth = 4

// NewGeneratedGame builds a fresh board for n virologists: one laboratory per
// code plus an infected one, one shelter per gear, n+1 storages and plain
// fields, laid out on a grid with four-way links. The layout depends only on
// seed. Virologists are named Virologist1..N and start on distinct plain fields.
// The returned game is started.
func NewGeneratedGame(n int, rules Rules, seed int64) (*GameState, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one virologist, got %d", ErrGraphConstruction, n)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGraphConstruction, err)
	}
	gs := NewGameState(rules, seed)
	rng := rand.New(rand.NewSource(gs.Seed))

	type tile struct {
		kind     FieldKind
		code     CodeKind
		gear     GearKind
		infected bool
	}
	var tiles []tile
	for _, c := range AllCodes {
		tiles = append(tiles, tile{kind: FieldLaboratory, code: c})
	}
	tiles = append(tiles, tile{kind: FieldLaboratory, code: AllCodes[rng.Intn(len(AllCodes))], infected: true})
	for g := GearKind(0); g < gearKindCount; g++ {
		tiles = append(tiles, tile{kind: FieldShelter, gear: g})
	}
	for i := 0; i <= n; i++ {
		tiles = append(tiles, tile{kind: FieldStorage})
	}
	for i := 0; i < n+2 || len(tiles)%gridWidth != 0; i++ {
		tiles = append(tiles, tile{kind: FieldPlain})
	}
	rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

	var plains []FieldID
	for i, t := range tiles {
		f := gs.AddField(fmt.Sprintf("%s%d", t.kind, i+1), t.kind)
		switch t.kind {
		case FieldLaboratory:
			f.Code = t.code
			f.Infected = t.infected
		case FieldShelter:
			f.Gear = t.gear
		case FieldStorage:
			f.Nucleotide = 50 + rng.Intn(101)
			f.AminoAcid = 50 + rng.Intn(101)
		case FieldPlain:
			plains = append(plains, f.ID)
		}
	}

	for i := range tiles {
		id := FieldID(i)
		if (i+1)%gridWidth != 0 {
			if err := gs.Connect(id, id+1); err != nil {
				return nil, err
			}
		}
		if i+gridWidth < len(tiles) {
			if err := gs.Connect(id, id+gridWidth); err != nil {
				return nil, err
			}
		}
	}

	for i := 0; i < n; i++ {
		v, err := gs.AddVirologist(fmt.Sprintf("Virologist%d", i+1), plains[i])
		if err != nil {
			return nil, err
		}
		v.Nucleotide = rules.StartingNucleotide
		v.AminoAcid = rules.StartingAminoAcid
	}

	if err := gs.Start(); err != nil {
		return nil, err
	}
	return gs, nil
}
