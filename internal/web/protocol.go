package web

import "github.com/peterkuimelis/virologists/internal/view"

// Message types for the JSON protocol over the websocket.

// --- Server → Browser messages ---

// ServerMessage is the envelope for all server-to-browser messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "started"
	MatchID string `json:"match_id,omitempty"`

	// For "notify"
	Event *view.EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []view.ActionView `json:"actions,omitempty"`
	State   *view.StateView   `json:"state,omitempty"`

	// For "save"
	Save string `json:"save,omitempty"`

	// For "game_over" and "error"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// --- Browser → Server messages ---

// ClientMessage is the envelope for all browser-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "new"
	Players int    `json:"players,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
	Load    string `json:"load,omitempty"` // YAML save text to resume

	// For "action"
	Index int `json:"index,omitempty"`
}
