package web

import (
	"context"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/log"
	"github.com/peterkuimelis/virologists/internal/save"
	"github.com/peterkuimelis/virologists/internal/view"
)

// SocketController implements game.PlayerController over a websocket. One
// browser tab drives every virologist in turn.
type SocketController struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewSocketController wraps an accepted websocket.
func NewSocketController(conn *websocket.Conn) *SocketController {
	return &SocketController{conn: conn}
}

// send writes a message. Must be called with mu held.
func (sc *SocketController) send(ctx context.Context, msg ServerMessage) error {
	return wsjson.Write(ctx, sc.conn, msg)
}

// ChooseAction implements game.PlayerController. A "save" request is
// answered with the YAML save and the choice is asked again. An out of range
// index is answered with an "error" message.
func (sc *SocketController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	active := state.Active()
	msg := ServerMessage{
		Type:    "choose_action",
		Actions: view.Actions(actions),
		State:   view.BuildStateView(state, active.ID),
	}
	if err := sc.send(ctx, msg); err != nil {
		return game.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	for {
		var resp ClientMessage
		if err := wsjson.Read(ctx, sc.conn, &resp); err != nil {
			return game.Action{}, fmt.Errorf("recv action: %w", err)
		}
		switch resp.Type {
		case "save":
			raw, err := save.Marshal(save.Export(state))
			out := ServerMessage{Type: "save", Save: string(raw)}
			if err != nil {
				out = ServerMessage{Type: "error", Result: err.Error()}
			}
			if err := sc.send(ctx, out); err != nil {
				return game.Action{}, fmt.Errorf("send save: %w", err)
			}
		case "action":
			if resp.Index < 0 || resp.Index >= len(actions) {
				out := ServerMessage{Type: "error", Result: fmt.Sprintf("action index %d out of range (0-%d)", resp.Index, len(actions)-1)}
				if err := sc.send(ctx, out); err != nil {
					return game.Action{}, fmt.Errorf("send error: %w", err)
				}
				continue
			}
			return actions[resp.Index], nil
		}
	}
}

// Notify implements game.PlayerController.
func (sc *SocketController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	ev := view.NewEventView(event)
	return sc.send(ctx, ServerMessage{Type: "notify", Event: &ev})
}

// SendGameOver reports the end of the match.
func (sc *SocketController) SendGameOver(ctx context.Context, state *game.GameState) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	msg := ServerMessage{Type: "game_over", Result: state.Result}
	if w := state.WinnerVirologist(); w != nil {
		msg.Winner = w.Name
	}
	return sc.send(ctx, msg)
}
