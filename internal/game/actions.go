package game

import (
	"fmt"

	"github.com/peterkuimelis/virologists/internal/log"
)

// LegalActions returns every action v may take right now. It is empty unless
// v is the active virologist of a running game.
func (gs *GameState) LegalActions(v *Virologist) []Action {
	if gs.checkActor(v) != nil {
		return nil
	}
	var actions []Action
	here := gs.Field(v.Field)

	if !gs.movedThisTurn && !v.Stunned() {
		for _, n := range here.NeighborIDs() {
			actions = append(actions, Action{
				Type:       ActionMove,
				Virologist: v.ID,
				Field:      n,
				Desc:       fmt.Sprintf("Move to %s", gs.Field(n).Describe()),
			})
		}
	}

	for _, code := range v.Codes {
		cost := gs.Rules.Cost(code)
		if !CanAfford(v, cost) {
			continue
		}
		actions = append(actions, Action{
			Type:       ActionCraft,
			Virologist: v.ID,
			Code:       code,
			Desc:       fmt.Sprintf("Craft %s (%s)", code.Produces(), cost),
		})
	}

	others := gs.Occupants(v.Field)
	for i, a := range v.Crafted {
		for _, o := range others {
			actions = append(actions, Action{
				Type:       ActionSmear,
				Virologist: v.ID,
				AgentIndex: i,
				Target:     o.ID,
				Desc:       fmt.Sprintf("Smear %s on %s", a.Kind, targetLabel(v, o)),
			})
		}
	}

	for _, o := range others {
		if o.ID == v.ID {
			continue
		}
		if o.Stunned() {
			actions = append(actions, Action{
				Type:       ActionSteal,
				Virologist: v.ID,
				Target:     o.ID,
				Desc:       fmt.Sprintf("Steal from %s", o.Name),
			})
		}
		if v.HasGear(GearAxe) && o.BearInfected() {
			actions = append(actions, Action{
				Type:       ActionAxe,
				Virologist: v.ID,
				Target:     o.ID,
				Desc:       fmt.Sprintf("Axe %s", o.Name),
			})
		}
	}

	actions = append(actions, Action{Type: ActionEndTurn, Virologist: v.ID, Desc: "End turn"})
	return actions
}

func targetLabel(v, o *Virologist) string {
	if v.ID == o.ID {
		return "yourself"
	}
	return o.Name
}

// Apply executes an action. Rejected actions are logged and leave the state
// unchanged.
func (gs *GameState) Apply(a Action) error {
	v := gs.Virologist(a.Virologist)
	var err error
	switch a.Type {
	case ActionMove:
		err = gs.Move(v, a.Field)
	case ActionCraft:
		_, err = gs.CraftAgent(v, a.Code)
	case ActionSmear:
		err = gs.Smear(v, a.AgentIndex, gs.Virologist(a.Target))
	case ActionSteal:
		err = gs.Steal(v, gs.Virologist(a.Target))
	case ActionAxe:
		err = gs.Axe(v, gs.Virologist(a.Target))
	case ActionEndTurn:
		err = gs.EndTurn(v)
	default:
		err = fmt.Errorf("unknown action type %d", a.Type)
	}
	if err != nil && v != nil {
		gs.log(log.NewRejectedEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, a.Type.String(), err))
	}
	return err
}
