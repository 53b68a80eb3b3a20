// Package view builds the JSON-friendly snapshots shared by the terminal, web
// and MCP front ends.
package view

import (
	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/log"
)

// EventView is a simplified game event for clients.
type EventView struct {
	Turn    int    `json:"turn"`
	Round   int    `json:"round"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Subject string `json:"subject,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// StateView is the game from one virologist's perspective. Virologists are
// blind: they see their own field and its exits, not the rest of the board.
type StateView struct {
	You        VirologistView   `json:"you"`
	Field      FieldView        `json:"field"`
	Neighbors  []FieldView      `json:"neighbors"`
	Nearby     []VirologistView `json:"nearby,omitempty"` // others on the same field
	Alive      []string         `json:"alive"`
	Turn       int              `json:"turn"`
	Round      int              `json:"round"`
	Active     string           `json:"active"`
	IsYourTurn bool             `json:"is_your_turn"`
	Moved      bool             `json:"moved"`
	Over       bool             `json:"over,omitempty"`
	Winner     string           `json:"winner,omitempty"`
	Result     string           `json:"result,omitempty"`
}

// VirologistView describes a virologist. Inventories are filled in only for
// the viewer.
type VirologistView struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Mode       string   `json:"mode"`
	Nucleotide int      `json:"nucleotide,omitempty"`
	AminoAcid  int      `json:"amino_acid,omitempty"`
	Capacity   int      `json:"capacity,omitempty"`
	Gear       []string `json:"gear,omitempty"`
	Codes      []string `json:"codes,omitempty"`
	Crafted    []string `json:"crafted,omitempty"`
	Active     []string `json:"active,omitempty"`
	Eliminated bool     `json:"eliminated,omitempty"`
}

// FieldView describes a field as seen by a virologist standing on or next
// to it.
type FieldView struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// NewEventView converts a log event.
func NewEventView(e log.GameEvent) EventView {
	return EventView{
		Turn:    e.Turn,
		Round:   e.Round,
		Player:  e.Player,
		Type:    e.Type.String(),
		Subject: e.Subject,
		Details: e.Details,
	}
}

// Actions numbers the legal actions in presentation order.
func Actions(actions []game.Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		views = append(views, ActionView{Index: i, Type: a.Type.String(), Desc: a.String()})
	}
	return views
}

// BuildStateView creates a StateView from the perspective of the given
// virologist.
func BuildStateView(gs *game.GameState, viewer game.VirologistID) *StateView {
	me := gs.Virologist(viewer)
	if me == nil {
		return nil
	}
	sv := &StateView{
		You:    ownView(gs, me),
		Turn:   gs.Turn(),
		Round:  gs.Round(),
		Over:   gs.Over,
		Result: gs.Result,
	}
	if active := gs.Active(); active != nil {
		sv.Active = active.Name
		sv.IsYourTurn = active.ID == me.ID
		sv.Moved = sv.IsYourTurn && gs.MovedThisTurn()
	}
	if w := gs.WinnerVirologist(); w != nil {
		sv.Winner = w.Name
	}
	for _, v := range gs.Alive() {
		sv.Alive = append(sv.Alive, v.Name)
	}
	if me.Eliminated {
		return sv
	}

	here := gs.Field(me.Field)
	sv.Field = fieldView(here)
	for _, id := range here.NeighborIDs() {
		sv.Neighbors = append(sv.Neighbors, fieldView(gs.Field(id)))
	}
	for _, v := range gs.Occupants(here.ID) {
		if v.ID != me.ID {
			sv.Nearby = append(sv.Nearby, otherView(v))
		}
	}
	return sv
}

func ownView(gs *game.GameState, v *game.Virologist) VirologistView {
	vv := otherView(v)
	vv.Nucleotide = v.Nucleotide
	vv.AminoAcid = v.AminoAcid
	vv.Capacity = gs.Capacity(v)
	vv.Gear = nil
	for _, g := range v.Gear {
		vv.Gear = append(vv.Gear, g.String())
	}
	for _, c := range v.Codes {
		vv.Codes = append(vv.Codes, c.String())
	}
	for _, a := range v.Crafted {
		vv.Crafted = append(vv.Crafted, a.Kind.String())
	}
	for _, a := range v.Active {
		vv.Active = append(vv.Active, a.String())
	}
	return vv
}

// otherView shows what can be seen of a virologist across a field: name,
// visible condition and worn gear.
func otherView(v *game.Virologist) VirologistView {
	vv := VirologistView{
		ID:         int(v.ID),
		Name:       v.Name,
		Mode:       v.Mode.String(),
		Eliminated: v.Eliminated,
	}
	for _, g := range v.Gear {
		vv.Gear = append(vv.Gear, g.Kind.String())
	}
	return vv
}

func fieldView(f *game.Field) FieldView {
	fv := FieldView{ID: int(f.ID), Name: f.Name, Kind: f.Kind.String()}
	switch f.Kind {
	case game.FieldStorage:
		fv.Detail = game.Cost{Nucleotide: f.Nucleotide, AminoAcid: f.AminoAcid}.String()
	case game.FieldLaboratory:
		fv.Detail = f.Code.String()
		if f.Infected {
			fv.Detail += " (infected)"
		}
	case game.FieldShelter:
		fv.Detail = f.Gear.String()
	}
	return fv
}
