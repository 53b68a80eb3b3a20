package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/tuning"
)

var (
	// toolMu serialises tool calls; the engine is only read while the match
	// is parked on a pending decision.
	toolMu sync.Mutex

	// activeSession is the singleton game session (one per stdio process).
	activeSession *GameSession

	// rulesFile is the YAML rules file, set by main. Empty means defaults.
	rulesFile string
)

// SetRulesFile sets the rules file used for new sessions.
func SetRulesFile(path string) {
	rulesFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(takeActionTool(), handleTakeAction)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(saveGameTool(), handleSaveGame)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a hot-seat Blind Virologists game. You choose for every virologist in turn; "+
			"each sees only its own field. Returns the initial state and the first pending decision."),
		mcp.WithNumber("players", mcp.Description("Virologists on a generated board (default 2)")),
		mcp.WithNumber("seed", mcp.Description("Board and dice seed; 0 picks one at random")),
		mcp.WithString("load", mcp.Description("Path of a YAML save to start from instead of a generated board")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. Rejected actions are reported in the events and the choice is asked again."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func saveGameTool() mcp.Tool {
	return mcp.NewTool("save_game",
		mcp.WithDescription("Save the running game. Paths ending in .zst get a compressed snapshot, anything else a YAML save."),
		mcp.WithString("path", mcp.Required(), mcp.Description("File to write")),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	rules, maxTurns, err := tuning.LoadRules(rulesFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load rules: %v", err), nil
	}
	cfg := SessionConfig{
		Rules:    rules,
		MaxTurns: maxTurns,
		Players:  request.GetInt("players", 2),
		Seed:     int64(request.GetInt("seed", 0)),
		LoadPath: request.GetString("load", ""),
	}
	if cfg.LoadPath == "" && cfg.Players < 1 {
		return mcp.NewToolResultError("players must be >= 1"), nil
	}

	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil || pending.Type != DecisionChooseAction {
		return mcp.NewToolResultError("No pending decision."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}

	sess.currentPending = nil
	sess.client.responseCh <- ActionResponse{Index: index}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.response())), nil
}

func handleSaveGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	if err := activeSession.Save(path); err != nil {
		return mcp.NewToolResultErrorf("Save failed: %v", err), nil
	}
	resp := activeSession.response()
	resp.Saved = path
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// endSession drops the running session. Used by tests.
func endSession() {
	toolMu.Lock()
	defer toolMu.Unlock()
	if activeSession != nil {
		activeSession.Close()
		activeSession = nil
	}
}

var _ game.PlayerController = (*MCPController)(nil)
