package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/peterkuimelis/virologists/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script of actions.
// Used in tests to deterministically drive the game.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []ScriptedAction
	pos     int
	events  []log.GameEvent
}

type ScriptedAction struct {
	// Match by ActionType: picks the first action of this type
	Type ActionType
	// Optional: match by virologist name
	Actor string
	// Optional: match by destination field name (moves)
	FieldName string
	// Optional: match by target virologist name
	TargetName string
	// Optional: match by code (crafts)
	Code *CodeKind
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddAction(actionType ActionType) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType})
	return sc
}

func (sc *ScriptedController) AddMove(actor, fieldName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionMove, Actor: actor, FieldName: fieldName})
	return sc
}

func (sc *ScriptedController) AddCraft(actor string, code CodeKind) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionCraft, Actor: actor, Code: &code})
	return sc
}

func (sc *ScriptedController) AddSmear(actor, targetName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionSmear, Actor: actor, TargetName: targetName})
	return sc
}

func (sc *ScriptedController) AddEndTurn(actor string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionEndTurn, Actor: actor})
	return sc
}

// Remaining returns how many scripted actions have not been consumed.
func (sc *ScriptedController) Remaining() int {
	return len(sc.actions) - sc.pos
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	if len(actions) == 0 {
		return Action{}, fmt.Errorf("[%s] no actions offered", sc.name)
	}
	if sc.pos >= len(sc.actions) {
		return endTurnOrLast(actions), nil
	}

	// Peek at next scripted action; only consume it if it matches an available action.
	scripted := sc.actions[sc.pos]
	for _, a := range actions {
		if !sc.matches(state, scripted, a) {
			continue
		}
		sc.pos++
		return a, nil
	}

	// Scripted action not yet available (probably another virologist's turn)
	return endTurnOrLast(actions), nil
}

func (sc *ScriptedController) matches(state *GameState, s ScriptedAction, a Action) bool {
	if a.Type != s.Type {
		return false
	}
	if s.Actor != "" && state.Virologist(a.Virologist).Name != s.Actor {
		return false
	}
	if s.FieldName != "" && state.Field(a.Field).Name != s.FieldName {
		return false
	}
	if s.TargetName != "" && state.Virologist(a.Target).Name != s.TargetName {
		return false
	}
	if s.Code != nil && a.Code != *s.Code {
		return false
	}
	return true
}

func endTurnOrLast(actions []Action) Action {
	for _, a := range actions {
		if a.Type == ActionEndTurn {
			return a
		}
	}
	return actions[len(actions)-1]
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// --- Test board helpers ---

// newLineGame builds a started game on a path F1-F2-...-Fn of plain fields
// with one virologist V1..Vk per entry of placement (0-based field index).
// Robes never block, so outcomes stay deterministic unless a test opts in.
func newLineGame(t *testing.T, fields int, placement ...int) (*GameState, *log.MemoryLogger) {
	t.Helper()
	rules := DefaultRules()
	rules.RobeBlockChance = 0
	gs := NewGameState(rules, 42)
	logger := log.NewMemoryLogger()
	gs.SetLogger(logger)

	for i := 0; i < fields; i++ {
		gs.AddField(fmt.Sprintf("F%d", i+1), FieldPlain)
	}
	for i := 0; i+1 < fields; i++ {
		if err := gs.Connect(FieldID(i), FieldID(i+1)); err != nil {
			t.Fatalf("connect: %v", err)
		}
	}
	for i, at := range placement {
		if _, err := gs.AddVirologist(fmt.Sprintf("V%d", i+1), FieldID(at)); err != nil {
			t.Fatalf("add virologist: %v", err)
		}
	}
	if err := gs.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return gs, logger
}

// give hands v a crafted agent of the given kind.
func give(gs *GameState, v *Virologist, kind AgentKind) {
	v.AddCraftedAgent(NewAgent(kind, gs.Rules))
}

// endRound ends one turn for every seated virologist, starting with the active one.
func endRound(t *testing.T, gs *GameState) {
	t.Helper()
	for i, n := 0, gs.Scheduler().Seated(); i < n; i++ {
		if err := gs.EndTurn(gs.Active()); err != nil {
			t.Fatalf("end turn: %v", err)
		}
	}
}

// runMatch runs a match to completion and returns the logger for inspection.
func runMatch(t *testing.T, gs *GameState, maxTurns int, controllers ...PlayerController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	m, err := NewMatch(MatchConfig{Logger: logger, MaxTurns: maxTurns}, gs, controllers...)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("match error: %v", err)
	}
	return m, logger
}
