package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/save"
)

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*ToolResponse, *mcp.CallToolResult) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	if res.IsError {
		return nil, res
	}
	var resp ToolResponse
	if err := json.Unmarshal([]byte(text.Text), &resp); err != nil {
		t.Fatalf("decode %q: %v", text.Text, err)
	}
	return &resp, res
}

func TestHotSeatSession(t *testing.T) {
	t.Cleanup(endSession)

	resp, _ := call(t, handleStartGame, map[string]any{"players": float64(2), "seed": float64(21)})
	if resp == nil || resp.Pending == nil || resp.Pending.Virologist != "Virologist1" {
		t.Fatalf("expected Virologist1 to choose first, got %+v", resp)
	}
	if resp.MatchID == "" || resp.State == nil || resp.State.You.Name != "Virologist1" {
		t.Fatalf("missing match id or state: %+v", resp)
	}
	if _, res := call(t, handleStartGame, map[string]any{}); !res.IsError {
		t.Errorf("a second start_game should be refused")
	}

	end := len(resp.Pending.Actions) - 1
	resp, _ = call(t, handleTakeAction, map[string]any{"index": float64(end)})
	if resp == nil || resp.Pending == nil || resp.Pending.Virologist != "Virologist2" {
		t.Fatalf("turn should pass to Virologist2, got %+v", resp)
	}
	if len(resp.Events) == 0 {
		t.Errorf("expected events for the ended turn")
	}

	if _, res := call(t, handleTakeAction, map[string]any{"index": float64(99)}); !res.IsError {
		t.Errorf("out-of-range index should be an error")
	}

	path := filepath.Join(t.TempDir(), "mcp.yaml")
	saved, _ := call(t, handleSaveGame, map[string]any{"path": path})
	if saved == nil || saved.Saved != path {
		t.Fatalf("save_game failed: %+v", saved)
	}
	gs, err := save.Load(path, game.DefaultRules())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if gs.Active().Name != "Virologist2" {
		t.Errorf("saved game should resume on Virologist2, got %s", gs.Active().Name)
	}

	state, _ := call(t, handleGetGameState, nil)
	if state == nil || state.Pending == nil || state.Pending.Virologist != "Virologist2" {
		t.Errorf("get_game_state should report the pending choice, got %+v", state)
	}
}

func TestTurnsRotateThroughEveryVirologist(t *testing.T) {
	t.Cleanup(endSession)

	resp, _ := call(t, handleStartGame, map[string]any{"players": float64(3), "seed": float64(4)})
	if resp == nil || resp.Pending == nil {
		t.Fatalf("expected a pending decision, got %+v", resp)
	}
	for _, want := range []string{"Virologist2", "Virologist3", "Virologist1"} {
		end := len(resp.Pending.Actions) - 1
		resp, _ = call(t, handleTakeAction, map[string]any{"index": float64(end)})
		if resp == nil || resp.Pending == nil {
			t.Fatalf("take_action failed: %+v", resp)
		}
		if resp.Pending.Virologist != want || resp.State.You.Name != want {
			t.Fatalf("expected %s to choose, got %s", want, resp.Pending.Virologist)
		}
	}
}

const duelSave = `Fields:
  - Name: F
    Virologists:
      - Name: Alice
        nCount: 50
        aCount: 50
        Crafted Agents: [AmniVirus]
      - Name: Bob
        nCount: 10
        aCount: 10
`

func TestGameOverEndsSession(t *testing.T) {
	t.Cleanup(endSession)

	path := filepath.Join(t.TempDir(), "duel.yaml")
	if err := os.WriteFile(path, []byte(duelSave), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	resp, _ := call(t, handleStartGame, map[string]any{"load": path})
	if resp == nil || resp.Pending == nil || resp.Pending.Virologist != "Alice" {
		t.Fatalf("expected Alice to choose, got %+v", resp)
	}
	if desc := resp.Pending.Actions[1].Desc; desc != "Smear AmniVirus on Bob" {
		t.Fatalf("unexpected action list: %+v", resp.Pending.Actions)
	}

	resp, _ = call(t, handleTakeAction, map[string]any{"index": float64(1)})
	if resp == nil || !resp.GameOver || resp.Winner != "Alice" {
		t.Fatalf("draining Bob to nothing should end the game, got %+v", resp)
	}
	if _, res := call(t, handleGetGameState, nil); !res.IsError {
		t.Errorf("the session should be gone after game over")
	}
}

func TestToolsNeedASession(t *testing.T) {
	endSession()
	if _, res := call(t, handleTakeAction, map[string]any{"index": float64(0)}); !res.IsError {
		t.Errorf("take_action without a game should fail")
	}
	if _, res := call(t, handleGetGameState, nil); !res.IsError {
		t.Errorf("get_game_state without a game should fail")
	}
}
