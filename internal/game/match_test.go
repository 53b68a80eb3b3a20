package game

import (
	"context"
	"errors"
	"testing"

	"github.com/peterkuimelis/virologists/internal/log"
)

func TestMatchScriptedAmniWin(t *testing.T) {
	gs, _ := newLineGame(t, 2, 0, 1)
	a, b := gs.Virologists[0], gs.Virologists[1]
	a.Nucleotide, a.AminoAcid = 150, 150
	a.LearnCode(CodeAmni)
	b.Nucleotide, b.AminoAcid = 10, 10

	p1 := NewScriptedController(t, "p1").
		AddCraft("V1", CodeAmni).
		AddMove("V1", "F2").
		AddSmear("V1", "V2")
	p2 := NewScriptedController(t, "p2")

	m, logger := runMatch(t, gs, 50, p1, p2)

	if !gs.Over || gs.Winner != a.ID {
		t.Fatalf("expected V1 to win, got %q", gs.Result)
	}
	if p1.Remaining() != 0 {
		t.Errorf("script not fully consumed: %d left", p1.Remaining())
	}
	if a.Nucleotide != 50 || a.AminoAcid != 50 {
		t.Errorf("expected (50,50) after crafting, got (%d,%d)", a.Nucleotide, a.AminoAcid)
	}
	if len(logger.EventsOfType(log.EventWin)) != 1 {
		t.Errorf("expected one win event")
	}
	if len(p2.events) != len(logger.Events()) {
		t.Errorf("controllers should see every event: %d vs %d", len(p2.events), len(logger.Events()))
	}
	if m.ID == "" {
		t.Errorf("match should have an id")
	}
}

func TestMatchHotSeatTurnLimit(t *testing.T) {
	gs, _ := newLineGame(t, 2, 0, 1)
	ctrl := NewScriptedController(t, "hotseat")

	_, logger := runMatch(t, gs, 6, ctrl)

	if !gs.Over || gs.Winner != NoVirologist {
		t.Fatalf("expected draw, got %q", gs.Result)
	}
	if n := len(logger.EventsOfType(log.EventNewTurn)); n != 6 {
		t.Errorf("expected 6 turns, got %d", n)
	}
	if n := len(logger.EventsOfType(log.EventRoundEnd)); n != 3 {
		t.Errorf("expected 3 rounds, got %d", n)
	}
	if logger.LastEvent().Type != log.EventDraw {
		t.Errorf("expected draw event last, got %s", logger.LastEvent().Type)
	}
}

// rejectingController always picks an impossible move.
type rejectingController struct{ calls int }

func (r *rejectingController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	r.calls++
	return Action{Type: ActionMove, Virologist: state.Active().ID, Field: 99}, nil
}

func (r *rejectingController) Notify(ctx context.Context, event log.GameEvent) error { return nil }

func TestMatchEndsTurnAfterRepeatedRejections(t *testing.T) {
	gs, _ := newLineGame(t, 2, 0, 1)
	ctrl := &rejectingController{}
	_, logger := runMatch(t, gs, 2, ctrl)

	if ctrl.calls != 2*maxRejections {
		t.Errorf("expected %d choices, got %d", 2*maxRejections, ctrl.calls)
	}
	if n := len(logger.EventsOfType(log.EventRejected)); n != 2*maxRejections {
		t.Errorf("expected %d rejections, got %d", 2*maxRejections, n)
	}
}

type failingController struct{}

var errUnplugged = errors.New("unplugged")

func (failingController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	return Action{}, errUnplugged
}

func (failingController) Notify(ctx context.Context, event log.GameEvent) error { return nil }

func TestMatchPropagatesControllerError(t *testing.T) {
	gs, _ := newLineGame(t, 2, 0, 1)
	m, err := NewMatch(MatchConfig{}, gs, &failingController{})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if _, err := m.Run(context.Background()); !errors.Is(err, errUnplugged) {
		t.Errorf("expected controller error, got %v", err)
	}
}

func TestNewMatchControllerCount(t *testing.T) {
	gs, _ := newLineGame(t, 2, 0, 1, 1)
	c := NewScriptedController(t, "c")
	if _, err := NewMatch(MatchConfig{}, gs, c, c); err == nil {
		t.Errorf("expected an error for 2 controllers and 3 virologists")
	}
	if _, err := NewMatch(MatchConfig{}, gs); err == nil {
		t.Errorf("expected an error without controllers")
	}
}

func TestMatchOnGeneratedBoard(t *testing.T) {
	m, err := NewMatch(MatchConfig{Players: 3, Seed: 7, MaxTurns: 30}, nil, NewScriptedController(t, "c"))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if len(m.State.Virologists) != 3 {
		t.Fatalf("expected 3 virologists, got %d", len(m.State.Virologists))
	}
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !m.State.Over {
		t.Errorf("match should end at the turn limit")
	}
}
