package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/history"
	evlog "github.com/peterkuimelis/virologists/internal/log"
	"github.com/peterkuimelis/virologists/internal/save"
)

//go:embed static
var staticFiles embed.FS

// maxPlayers bounds the board size a browser may ask for.
const maxPlayers = 8

// RulesInfo is the JSON representation of the ruleset for /api/rules.
type RulesInfo struct {
	Costs           map[string]string `json:"costs"`
	Durations       map[string]int    `json:"durations"`
	MaxMaterial     int               `json:"maxMaterial"`
	SackBonus       int               `json:"sackBonus"`
	GloveUses       int               `json:"gloveUses"`
	RobeBlockChance float64           `json:"robeBlockChance"`
	MaxTurns        int               `json:"maxTurns"`
}

// Server is the hot-seat web UI server.
type Server struct {
	rules    game.Rules
	maxTurns int
	history  *history.Store // nil disables match history
	mux      *http.ServeMux
}

// NewServer creates a new web server. hist may be nil.
func NewServer(rules game.Rules, maxTurns int, hist *history.Store) (*Server, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		rules:    rules,
		maxTurns: maxTurns,
		history:  hist,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the routes, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/rules", s.handleRules)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	info := RulesInfo{
		Costs:           make(map[string]string),
		Durations:       make(map[string]int),
		MaxMaterial:     s.rules.MaxMaterial,
		SackBonus:       s.rules.SackBonus,
		GloveUses:       s.rules.GloveUses,
		RobeBlockChance: s.rules.RobeBlockChance,
		MaxTurns:        s.maxTurns,
	}
	for name, code := range game.CodeRegistry {
		info.Costs[name] = s.rules.Cost(code).String()
	}
	for name, kind := range game.AgentRegistry {
		info.Durations[name] = s.rules.Duration(kind)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "match history disabled", http.StatusNotFound)
		return
	}
	entries, err := s.history.Recent(r.Context(), 20)
	if err != nil {
		http.Error(w, "could not read history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial "new" message from browser
	var newMsg ClientMessage
	if err := wsjson.Read(ctx, wsConn, &newMsg); err != nil || newMsg.Type != "new" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected new message")
		return
	}

	gs, err := s.newGame(newMsg)
	if err != nil {
		wsjson.Write(ctx, wsConn, ServerMessage{Type: "error", Result: err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "could not start game")
		return
	}

	ctrl := NewSocketController(wsConn)
	m, err := game.NewMatch(game.MatchConfig{Logger: evlog.NewMemoryLogger(), MaxTurns: s.maxTurns}, gs, ctrl)
	if err != nil {
		wsjson.Write(ctx, wsConn, ServerMessage{Type: "error", Result: err.Error()})
		return
	}
	if err := wsjson.Write(ctx, wsConn, ServerMessage{Type: "started", MatchID: m.ID}); err != nil {
		return
	}

	started := time.Now()
	if _, err := m.Run(ctx); err != nil {
		log.Printf("match %s aborted: %v", m.ID, err)
		return
	}
	s.record(m, started)
	if err := ctrl.SendGameOver(ctx, gs); err != nil {
		log.Printf("WebSocket write error: %v", err)
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

func (s *Server) newGame(msg ClientMessage) (*game.GameState, error) {
	if msg.Load != "" {
		doc, err := save.Parse([]byte(msg.Load))
		if err != nil {
			return nil, err
		}
		return save.Build(doc, s.rules)
	}
	if msg.Players < 1 || msg.Players > maxPlayers {
		return nil, fmt.Errorf("players must be between 1 and %d", maxPlayers)
	}
	return game.NewGeneratedGame(msg.Players, s.rules, msg.Seed)
}

func (s *Server) record(m *game.Match, started time.Time) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.history.Record(ctx, history.FromMatch(m, started), m.Logger.Events()); err != nil {
		log.Printf("record match %s: %v", m.ID, err)
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
