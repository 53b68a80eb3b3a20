package game

import (
	"fmt"

	"github.com/peterkuimelis/virologists/internal/log"
)

// checkActor verifies that v may act right now.
func (gs *GameState) checkActor(v *Virologist) error {
	if gs.Over {
		return ErrGameOver
	}
	if v == nil {
		return fmt.Errorf("%w: no such virologist", ErrUnknownName)
	}
	if v.Eliminated {
		return fmt.Errorf("%w: %s", ErrEliminated, v.Name)
	}
	if gs.sched == nil || gs.sched.Active() != v.ID {
		return fmt.Errorf("%w: %s", ErrNotActive, v.Name)
	}
	return nil
}

// sameField verifies that target is a live virologist standing next to v.
func (gs *GameState) sameField(v, target *Virologist) error {
	if target == nil {
		return fmt.Errorf("%w: no such target", ErrUnknownName)
	}
	if target.Eliminated {
		return fmt.Errorf("%w: %s", ErrEliminated, target.Name)
	}
	if target.Field != v.Field {
		return fmt.Errorf("%w: %s is not on %s", ErrTargetNotReachable, target.Name, gs.Field(v.Field).Name)
	}
	return nil
}

// --- Movement ---

// Move takes v to a neighboring field. Dancing and bear-infected virologists
// end up on a random neighbor instead. The destination's interaction runs
// once on arrival.
func (gs *GameState) Move(v *Virologist, to FieldID) error {
	if err := gs.checkActor(v); err != nil {
		return err
	}
	if gs.movedThisTurn {
		return fmt.Errorf("%w: %s", ErrAlreadyMoved, v.Name)
	}
	if v.Stunned() {
		return fmt.Errorf("%w: %s cannot move", ErrStunned, v.Name)
	}
	from := gs.Field(v.Field)
	if gs.Field(to) == nil || !from.IsNeighbor(to) {
		return fmt.Errorf("%w: %d is not a neighbor of %s", ErrInvalidMove, to, from.Name)
	}

	dest := to
	erratic := v.Mode == MovementDance || v.Mode == MovementBear
	if erratic {
		options := from.NeighborIDs()
		dest = options[gs.rng.Intn(len(options))]
	}
	target := gs.Field(dest)

	from.Remove(v.ID)
	target.Accept(v.ID)
	v.Field = dest
	gs.movedThisTurn = true
	gs.log(log.NewMoveEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, from.Name, target.Name, erratic))

	if v.BearInfected() {
		if target.DestroyResources() {
			gs.log(log.NewDestroyResourcesEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, target.Name))
		}
		gs.SmearAllVirologists(v)
	}
	gs.InteractWithField(v)
	gs.CheckWinCondition()
	return nil
}

// InteractWithField applies the effect of v's current field to v.
func (gs *GameState) InteractWithField(v *Virologist) {
	f := gs.Field(v.Field)
	if f == nil || v.Eliminated {
		return
	}
	switch f.Kind {
	case FieldStorage:
		n, a := gs.Grant(v, f.Nucleotide, f.AminoAcid)
		f.Nucleotide -= n
		f.AminoAcid -= a
		if n > 0 || a > 0 {
			gs.log(log.NewCollectEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, f.Name, n, a))
		}
	case FieldLaboratory:
		if v.LearnCode(f.Code) {
			gs.log(log.NewLearnCodeEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, f.Code.String()))
		}
		if f.Infected {
			gs.log(log.NewInfectEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, AgentBear.String(), f.Name))
			gs.deliver(NewAgent(AgentBear, gs.Rules), nil, v, false)
		}
	case FieldShelter:
		if !v.HasGear(f.Gear) {
			if err := v.PickUpGear(NewGear(f.Gear, gs.Rules)); err == nil {
				gs.log(log.NewPickUpGearEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, f.Gear.String()))
			}
		}
	}
}

// SmearAllVirologists infects everyone else on the infector's field with a
// fresh bear virus.
func (gs *GameState) SmearAllVirologists(infector *Virologist) {
	for _, other := range gs.Occupants(infector.Field) {
		if other.ID == infector.ID || other.Eliminated {
			continue
		}
		gs.log(log.NewInfectEvent(gs.Turn(), gs.Round(), int(other.ID), other.Name, AgentBear.String(), infector.Name))
		gs.deliver(NewAgent(AgentBear, gs.Rules), infector, other, false)
	}
}

// --- Crafting and smearing ---

// CraftAgent crafts the agent of a learned code at the configured price.
func (gs *GameState) CraftAgent(v *Virologist, code CodeKind) (*Agent, error) {
	if err := gs.checkActor(v); err != nil {
		return nil, err
	}
	cost := gs.Rules.Cost(code)
	a, err := CraftAgent(v, code, cost.Nucleotide, cost.AminoAcid, gs.Rules)
	if err != nil {
		return nil, err
	}
	gs.log(log.NewCraftEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, a.Kind.String(), cost.String()))
	return a, nil
}

// Smear applies v's crafted agent at idx to target, who must share v's field.
// v may target itself.
func (gs *GameState) Smear(v *Virologist, idx int, target *Virologist) error {
	if err := gs.checkActor(v); err != nil {
		return err
	}
	if err := gs.sameField(v, target); err != nil {
		return err
	}
	a, err := v.takeCrafted(idx)
	if err != nil {
		return err
	}
	gs.log(log.NewSmearEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, a.Kind.String(), target.Name))
	gs.deliver(a, v, target, false)
	gs.CheckWinCondition()
	return nil
}

// deliver resolves the target's defenses and applies the agent. A glove turns
// a rival's virus back on the smearer; reflected agents are not reflected again.
// source is nil for field infections.
func (gs *GameState) deliver(a *Agent, source, target *Virologist, reflected bool) {
	rival := source != nil && source.ID != target.ID
	if a.Kind.IsVirus() && rival {
		if g := target.GearOf(GearGlove); g != nil && !reflected {
			gs.log(log.NewReflectEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, a.Kind.String(), source.Name))
			if g.Use() {
				target.DropGear(GearGlove)
				gs.log(log.NewGearBrokenEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, GearGlove.String()))
			}
			gs.deliver(a, target, source, true)
			return
		}
		if target.HasGear(GearRobe) && gs.rng.Float64() < gs.Rules.RobeBlockChance {
			gs.log(log.NewBlockedEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, a.Kind.String(), "robe"))
			return
		}
	}
	if a.Kind.IsVirus() && target.Immune() {
		gs.log(log.NewBlockedEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, a.Kind.String(), "vaccinated"))
		return
	}
	gs.apply(a, source, target)
}

// apply registers a on target and runs its smear effect.
func (gs *GameState) apply(a *Agent, source, target *Virologist) {
	if a.Kind == AgentBear && target.BearInfected() {
		return
	}
	sourceID := NoVirologist
	if source != nil {
		sourceID = source.ID
	}
	a.arm(sourceID, target.ID)

	switch a.Kind {
	case AgentProt:
		if cured := target.cure(); cured > 0 {
			gs.log(log.NewCureEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, cured))
		}
		n, am := gs.Grant(target, gs.Rules.ProtRestore, gs.Rules.ProtRestore)
		if n > 0 || am > 0 {
			gs.log(log.NewRestoreEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, n, am))
		}
	case AgentAmni:
		target.drain(gs.Rules.AmniDrain)
		gs.log(log.NewDrainEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, target.Nucleotide, target.AminoAcid))
		if forgot := target.ForgetCodes(); forgot > 0 {
			gs.log(log.NewForgetEvent(gs.Turn(), gs.Round(), int(target.ID), target.Name, forgot))
		}
	}
	target.addActive(a)

	if a.Kind == AgentAmni && sourceID != NoVirologist && sourceID != target.ID && target.LedgerEmpty() {
		gs.eliminate(target, "drained by "+source.Name)
	}
}

// --- Stealing and axes ---

// Steal moves a stunned victim's materials (up to the thief's capacity) and
// every gear the thief lacks to the thief.
func (gs *GameState) Steal(thief, victim *Virologist) error {
	if err := gs.checkActor(thief); err != nil {
		return err
	}
	if err := gs.sameField(thief, victim); err != nil {
		return err
	}
	if victim.ID == thief.ID {
		return fmt.Errorf("%w: %s cannot rob themselves", ErrInvalidMove, thief.Name)
	}
	if !victim.Stunned() {
		return fmt.Errorf("%w: %s", ErrNotStunned, victim.Name)
	}

	n, a := gs.Grant(thief, victim.Nucleotide, victim.AminoAcid)
	victim.Nucleotide -= n
	victim.AminoAcid -= a

	var taken []string
	for _, g := range append([]*Gear(nil), victim.Gear...) {
		if thief.HasGear(g.Kind) {
			continue
		}
		victim.DropGear(g.Kind)
		_ = thief.PickUpGear(g)
		taken = append(taken, g.Kind.String())
	}
	// Losing a sack shrinks the victim's capacity; the surplus spills.
	capacity := gs.Capacity(victim)
	victim.Nucleotide = min(victim.Nucleotide, capacity)
	victim.AminoAcid = min(victim.AminoAcid, capacity)
	gs.log(log.NewStealEvent(gs.Turn(), gs.Round(), int(thief.ID), thief.Name, victim.Name, n, a, taken))
	return nil
}

// Axe kills a bear-infected virologist on the same field. The axe blunts after one use.
func (gs *GameState) Axe(v, target *Virologist) error {
	if err := gs.checkActor(v); err != nil {
		return err
	}
	axe := v.GearOf(GearAxe)
	if axe == nil {
		return fmt.Errorf("%w: %s", ErrNoAxe, v.Name)
	}
	if err := gs.sameField(v, target); err != nil {
		return err
	}
	if target.ID == v.ID || !target.BearInfected() {
		return fmt.Errorf("%w: %s", ErrNotBear, target.Name)
	}

	gs.log(log.NewAxeEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, target.Name))
	if axe.Use() {
		v.DropGear(GearAxe)
		gs.log(log.NewGearBrokenEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, GearAxe.String()))
	}
	gs.eliminate(target, "killed with an axe by "+v.Name)
	gs.CheckWinCondition()
	return nil
}

// --- Turn flow ---

// EndTurn passes the turn to the next seat. Completing a round steps every
// active agent once.
func (gs *GameState) EndTurn(v *Virologist) error {
	if err := gs.checkActor(v); err != nil {
		return err
	}
	gs.movedThisTurn = false
	gs.sched.EndTurn()
	gs.CheckWinCondition()
	return nil
}

// AnnounceTurn logs the start of the active virologist's turn.
func (gs *GameState) AnnounceTurn() {
	if v := gs.Active(); v != nil {
		gs.log(log.NewTurnEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name))
	}
}

// stepAgents is the round-end sweep: every active agent on every live
// virologist steps once, in ascending handle order then application order.
func (gs *GameState) stepAgents(roundsCompleted int) {
	gs.log(log.NewRoundEndEvent(gs.Turn(), roundsCompleted))
	for _, v := range gs.Virologists {
		if v.Eliminated {
			continue
		}
		snapshot := append([]*Agent(nil), v.Active...)
		for _, a := range snapshot {
			if a.Step() {
				v.removeActive(a)
				gs.log(log.NewAgentExpiredEvent(gs.Turn(), roundsCompleted, int(v.ID), v.Name, a.Kind.String()))
			}
		}
	}
}

// eliminate removes v from the board and from the turn order.
func (gs *GameState) eliminate(v *Virologist, reason string) {
	if v.Eliminated {
		return
	}
	v.Eliminated = true
	if f := gs.Field(v.Field); f != nil {
		f.Remove(v.ID)
	}
	gs.log(log.NewEliminatedEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, reason))

	if gs.sched == nil {
		return
	}
	if gs.sched.Active() == v.ID {
		gs.movedThisTurn = false
	}
	gs.sched.Unseat(v.ID)
}
