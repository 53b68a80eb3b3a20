package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/virologists/internal/log"
)

// PlayerController is the interface that terminal, WebSocket and MCP players implement.
type PlayerController interface {
	// ChooseAction presents available actions and waits for the player to pick one.
	ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Logger   log.EventLogger
	Rules    Rules
	Players  int   // virologists on a generated board
	Seed     int64 // RNG seed (0 for random)
	MaxTurns int   // draw after this many turns (0 = DefaultMaxTurns)
}

// maxRejections is how many invalid choices in a row end a turn.
const maxRejections = 8

// Match orchestrates a game between controllers. One controller drives every
// virologist in hot-seat play; otherwise there is one per virologist.
type Match struct {
	ID          string
	State       *GameState
	Controllers []PlayerController
	Logger      log.EventLogger
	ctx         context.Context
	maxTurns    int
}

// NewMatch wraps gs, or a freshly generated board when gs is nil.
func NewMatch(cfg MatchConfig, gs *GameState, controllers ...PlayerController) (*Match, error) {
	if len(controllers) == 0 {
		return nil, fmt.Errorf("match needs at least one controller")
	}
	if gs == nil {
		rules := cfg.Rules
		if rules.MaxMaterial == 0 {
			rules = DefaultRules()
		}
		var err error
		gs, err = NewGeneratedGame(cfg.Players, rules, cfg.Seed)
		if err != nil {
			return nil, err
		}
	}
	if len(controllers) > 1 && len(controllers) != len(gs.Virologists) {
		return nil, fmt.Errorf("match has %d virologists but %d controllers", len(gs.Virologists), len(controllers))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	m := &Match{
		ID:          uuid.NewString(),
		State:       gs,
		Controllers: controllers,
		Logger:      logger,
		ctx:         context.Background(),
		maxTurns:    maxTurns,
	}
	gs.SetLogger(&notifyingLogger{m: m})
	return m, nil
}

// Controller returns the controller driving the given virologist.
func (m *Match) Controller(id VirologistID) PlayerController {
	if len(m.Controllers) == 1 {
		return m.Controllers[0]
	}
	return m.Controllers[id]
}

// Run executes the match loop. Returns the winner, or NoVirologist for a draw.
func (m *Match) Run(ctx context.Context) (VirologistID, error) {
	m.ctx = ctx
	gs := m.State

	if gs.Scheduler() == nil {
		if err := gs.Start(); err != nil {
			return NoVirologist, err
		}
	}
	gs.CheckWinCondition()

	rejections := 0
	announcedTurn, announced := 0, NoVirologist
	for !gs.Over {
		if gs.Turn() > m.maxTurns {
			gs.EndInDraw(fmt.Sprintf("turn limit reached (%d turns)", m.maxTurns))
			break
		}
		v := gs.Active()
		if gs.Turn() != announcedTurn || v.ID != announced {
			gs.AnnounceTurn()
			announcedTurn, announced = gs.Turn(), v.ID
			rejections = 0
		}
		actions := gs.LegalActions(v)
		choice, err := m.Controller(v.ID).ChooseAction(ctx, gs, actions)
		if err != nil {
			return gs.Winner, err
		}
		if err := gs.Apply(choice); err != nil {
			rejections++
			if rejections >= maxRejections {
				rejections = 0
				if err := gs.EndTurn(v); err != nil {
					return gs.Winner, err
				}
			}
		} else {
			rejections = 0
		}
		if err := ctx.Err(); err != nil {
			return gs.Winner, err
		}
	}

	return gs.Winner, nil
}

// notify forwards an event to every distinct controller.
func (m *Match) notify(event log.GameEvent) {
	// Notify controllers (ignore errors for notifications)
	seen := make(map[PlayerController]bool, len(m.Controllers))
	for _, c := range m.Controllers {
		if seen[c] {
			continue
		}
		seen[c] = true
		_ = c.Notify(m.ctx, event)
	}
}

// notifyingLogger logs through the match logger and then notifies controllers.
type notifyingLogger struct {
	m *Match
}

func (l *notifyingLogger) Log(event log.GameEvent) {
	l.m.Logger.Log(event)
	if ev := l.m.Logger.Events(); len(ev) > 0 {
		event.Seq = ev[len(ev)-1].Seq
	}
	l.m.notify(event)
}

func (l *notifyingLogger) Events() []log.GameEvent {
	return l.m.Logger.Events()
}
