package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/log"
	"github.com/peterkuimelis/virologists/internal/save"
	"github.com/peterkuimelis/virologists/internal/view"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type    DecisionType      `json:"type"`
	Player  game.VirologistID `json:"player"`
	State   *view.StateView   `json:"state"`
	Actions []view.ActionView `json:"actions,omitempty"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	MatchID  string           `json:"match_id"`
	Events   []view.EventView `json:"events"`
	State    *view.StateView  `json:"state,omitempty"`
	Pending  *PendingView     `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Winner   string           `json:"winner,omitempty"`
	Result   string           `json:"result,omitempty"`
	Saved    string           `json:"saved,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType      `json:"type"`
	Virologist string            `json:"virologist"`
	Actions    []view.ActionView `json:"actions,omitempty"`
}

// SessionConfig describes a new session.
type SessionConfig struct {
	Rules    game.Rules
	MaxTurns int
	Players  int    // virologists on a generated board
	Seed     int64  // 0 for random
	LoadPath string // start from a YAML save instead of a generated board
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	match  *game.Match
	client *MCPController
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []view.EventView
	gameOver bool
	result   string
}

// NewGameSession builds the board and starts the match in a goroutine. The
// client plays every virologist in turn.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	var gs *game.GameState
	if cfg.LoadPath != "" {
		var err error
		if gs, err = save.Load(cfg.LoadPath, cfg.Rules); err != nil {
			return nil, fmt.Errorf("load %s: %w", cfg.LoadPath, err)
		}
	} else {
		var err error
		if gs, err = game.NewGeneratedGame(cfg.Players, cfg.Rules, cfg.Seed); err != nil {
			return nil, err
		}
	}

	sess := &GameSession{
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.client = NewMCPController(sess)

	m, err := game.NewMatch(game.MatchConfig{Logger: log.NewMemoryLogger(), MaxTurns: cfg.MaxTurns}, gs, sess.client)
	if err != nil {
		return nil, err
	}
	sess.match = m

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go sess.run(ctx)
	return sess, nil
}

func (s *GameSession) run(ctx context.Context) {
	_, err := s.match.Run(ctx)
	result := s.match.State.Result
	if err != nil {
		result = fmt.Sprintf("error: %v", err)
	}

	s.mu.Lock()
	s.gameOver = true
	s.result = result
	s.mu.Unlock()

	over := &PendingDecision{
		Type:   DecisionGameOver,
		Player: s.viewer(),
		State:  s.stateView(s.viewer()),
	}
	select {
	case s.pendingCh <- over:
	case <-ctx.Done():
	}
}

// Close stops the match goroutine.
func (s *GameSession) Close() {
	s.cancel()
}

// viewer is whose eyes the board is shown through between decisions: the
// active virologist, or the winner once the game is over.
func (s *GameSession) viewer() game.VirologistID {
	gs := s.match.State
	if w := gs.WinnerVirologist(); w != nil {
		return w.ID
	}
	if v := gs.Active(); v != nil {
		return v.ID
	}
	return 0
}

// stateView reads the engine. Callers hold toolMu while the match is parked
// on a pending decision or finished.
func (s *GameSession) stateView(id game.VirologistID) *view.StateView {
	return view.BuildStateView(s.match.State, id)
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev view.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []view.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending
	return s.response(), nil
}

// response describes the session as it stands, without waiting.
func (s *GameSession) response() *ToolResponse {
	resp := &ToolResponse{
		MatchID: s.match.ID,
		Events:  s.drainEvents(),
	}
	s.mu.Lock()
	resp.GameOver = s.gameOver
	resp.Result = s.result
	s.mu.Unlock()

	pending := s.currentPending
	if resp.GameOver {
		if w := s.winnerName(); w != "" {
			resp.Winner = w
		}
		resp.State = s.stateView(s.viewer())
		return resp
	}
	if pending == nil {
		resp.State = s.stateView(s.viewer())
		return resp
	}
	resp.State = pending.State
	resp.Pending = &PendingView{
		Type:       pending.Type,
		Virologist: s.match.State.Virologist(pending.Player).Name,
		Actions:    pending.Actions,
	}
	return resp
}

func (s *GameSession) winnerName() string {
	if w := s.match.State.WinnerVirologist(); w != nil {
		return w.Name
	}
	return ""
}

// Save writes the game to path, as a compressed snapshot for .zst paths.
func (s *GameSession) Save(path string) error {
	if strings.HasSuffix(path, ".zst") {
		return save.WriteSnapshot(path, s.match.State)
	}
	return save.Save(path, s.match.State)
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
