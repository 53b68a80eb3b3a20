package mcp

import (
	"context"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/log"
	"github.com/peterkuimelis/virologists/internal/view"
)

// ActionResponse is the client's pick for a pending choose_action.
type ActionResponse struct {
	Index int
}

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
// One controller drives every virologist.
type MCPController struct {
	session    *GameSession
	responseCh chan ActionResponse
}

// NewMCPController creates the client-side controller for a session.
func NewMCPController(session *GameSession) *MCPController {
	return &MCPController{
		session:    session,
		responseCh: make(chan ActionResponse),
	}
}

// ChooseAction implements game.PlayerController.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	active := state.Active()
	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  active.ID,
		State:   view.BuildStateView(state, active.ID),
		Actions: view.Actions(actions),
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	var ar ActionResponse
	select {
	case ar = <-c.responseCh:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
	if ar.Index < 0 || ar.Index >= len(actions) {
		return actions[len(actions)-1], nil
	}
	return actions[ar.Index], nil
}

// Notify implements game.PlayerController.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(view.NewEventView(event))
	return nil
}
