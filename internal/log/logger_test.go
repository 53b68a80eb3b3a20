package log

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, 1, 0, "Alice"))
	l.Log(NewMoveEvent(1, 1, 0, "Alice", "F1", "F2", false))
	l.Log(NewRoundEndEvent(2, 1))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
	}
	if moves := l.EventsOfType(EventMove); len(moves) != 1 || moves[0].Subject != "F2" {
		t.Errorf("expected one move to F2, got %+v", moves)
	}
	if l.LastEvent().Type != EventRoundEnd {
		t.Errorf("expected last event RoundEnd, got %s", l.LastEvent().Type)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewCraftEvent(3, 2, 1, "Bob", "AmniVirus", "100n/100a"))

	out := buf.String()
	if !strings.Contains(out, "Bob crafts AmniVirus for 100n/100a") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasPrefix(out, "T3   R2  |") {
		t.Errorf("unexpected prefix in %q", out)
	}
	if len(l.Events()) != 1 {
		t.Errorf("text logger should also keep events in memory")
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := NewMemoryLogger()
	b := NewMemoryLogger()
	m := NewMultiLogger(a, b)
	m.Log(NewWinEvent(9, 4, 0, "Alice", "last virologist standing"))

	if len(a.Events()) != 1 || len(b.Events()) != 1 || len(m.Events()) != 1 {
		t.Fatalf("expected each logger to hold one event")
	}
	if a.LastEvent().Type != EventWin {
		t.Errorf("expected Win, got %s", a.LastEvent().Type)
	}
}

func TestRejectedEventCarriesError(t *testing.T) {
	e := NewRejectedEvent(1, 1, 0, "Alice", "Move", errors.New("invalid move"))
	if !strings.Contains(e.Details, "invalid move") {
		t.Errorf("expected error text in details, got %q", e.Details)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "game.jsonl.zst")
	j, err := NewJournalLogger(path)
	if err != nil {
		t.Fatalf("NewJournalLogger: %v", err)
	}
	j.Log(NewTurnEvent(1, 1, 0, "Alice"))
	j.Log(NewSmearEvent(1, 1, 0, "Alice", "StunVirus", "Bob"))
	j.Log(NewDrawEvent(2, 1, "turn limit reached"))
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events, err := ReadJournal(path)
	if err != nil {
		t.Fatalf("ReadJournal: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[1].Type != EventSmear || events[1].Subject != "StunVirus" || events[1].Seq != 2 {
		t.Errorf("unexpected second event %+v", events[1])
	}
	if events[2].Type != EventDraw || events[2].Player != -1 {
		t.Errorf("unexpected third event %+v", events[2])
	}
}

func TestEventTypeNames(t *testing.T) {
	for e := EventNewTurn; e <= EventRejected; e++ {
		name := e.String()
		if name == "Unknown" {
			t.Errorf("event type %d has no name", e)
			continue
		}
		back, ok := ParseEventType(name)
		if !ok || back != e {
			t.Errorf("ParseEventType(%q) = %v, %v", name, back, ok)
		}
	}
}
