package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/log"
)

type endTurner struct{}

func (endTurner) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	return actions[len(actions)-1], nil
}

func (endTurner) Notify(ctx context.Context, event log.GameEvent) error { return nil }

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{MatchID: "a", Seed: 1, Players: []string{"V1", "V2"}, Winner: "V1", Turns: 9, Rounds: 4, Result: "V1 wins: last virologist standing", StartedAt: base, EndedAt: base.Add(time.Minute)},
		{MatchID: "b", Seed: 2, Players: []string{"V1", "V2"}, Turns: 500, Rounds: 250, Result: "Draw: turn limit reached", StartedAt: base, EndedAt: base.Add(2 * time.Minute)},
		{MatchID: "c", Seed: 3, Players: []string{"V1", "V2", "V3"}, Winner: "V1", Turns: 30, Rounds: 10, Result: "V1 wins: knows every code", StartedAt: base, EndedAt: base.Add(3 * time.Minute)},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e, nil); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].MatchID != "c" || recent[1].MatchID != "b" {
		t.Fatalf("expected c then b, got %+v", recent)
	}
	if len(recent[0].Players) != 3 || !recent[0].EndedAt.Equal(base.Add(3*time.Minute)) {
		t.Errorf("row not restored: %+v", recent[0])
	}

	wins, err := s.Wins(ctx)
	if err != nil {
		t.Fatalf("Wins: %v", err)
	}
	if wins["V1"] != 2 || len(wins) != 1 {
		t.Errorf("expected V1 with 2 wins, got %v", wins)
	}
}

func TestFromMatch(t *testing.T) {
	gs := game.NewGameState(game.DefaultRules(), 8)
	f := gs.AddField("F", game.FieldPlain)
	for _, n := range []string{"Ann", "Ben"} {
		if _, err := gs.AddVirologist(n, f.ID); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	m, err := game.NewMatch(game.MatchConfig{}, gs, endTurner{})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if err := gs.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	gs.EndInDraw("test")

	e := FromMatch(m, time.Now())
	if e.MatchID != m.ID || e.Seed != 8 || e.Winner != "" || len(e.Players) != 2 {
		t.Errorf("unexpected entry %+v", e)
	}

	ctx := context.Background()
	s := openTemp(t)
	events := m.Logger.Events()
	if err := s.Record(ctx, e, events); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, e, events); err != nil {
		t.Fatalf("re-recording a match should replace it: %v", err)
	}
	stored, err := s.Events(ctx, m.ID)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(stored) != len(events) || stored[len(stored)-1].Type != log.EventDraw {
		t.Fatalf("expected %d events ending in a draw, got %+v", len(events), stored)
	}
	if stored[0].Seq != events[0].Seq {
		t.Errorf("sequence numbers should survive, got %d want %d", stored[0].Seq, events[0].Seq)
	}
}
