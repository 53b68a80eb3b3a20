// Package history keeps a sqlite record of finished matches.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/log"
)

// Entry is one finished match.
type Entry struct {
	MatchID   string
	Seed      int64
	Players   []string
	Winner    string // empty for a draw
	Turns     int
	Rounds    int
	Result    string
	StartedAt time.Time
	EndedAt   time.Time
}

// Store is a match history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty history path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS matches (
			match_id   TEXT PRIMARY KEY,
			seed       INTEGER NOT NULL,
			players    TEXT NOT NULL,
			winner     TEXT NOT NULL,
			turns      INTEGER NOT NULL,
			rounds     INTEGER NOT NULL,
			result     TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at   TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS matches_winner ON matches(winner);`,
		`CREATE TABLE IF NOT EXISTS events (
			match_id TEXT NOT NULL,
			seq      INTEGER NOT NULL,
			turn     INTEGER NOT NULL,
			round    INTEGER NOT NULL,
			player   INTEGER NOT NULL,
			name     TEXT NOT NULL,
			type     TEXT NOT NULL,
			subject  TEXT NOT NULL,
			details  TEXT NOT NULL,
			PRIMARY KEY(match_id, seq)
		);`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init history: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// FromMatch summarises a finished match.
func FromMatch(m *game.Match, startedAt time.Time) Entry {
	gs := m.State
	e := Entry{
		MatchID:   m.ID,
		Seed:      gs.Seed,
		Result:    gs.Result,
		StartedAt: startedAt,
		EndedAt:   time.Now(),
	}
	if sched := gs.Scheduler(); sched != nil {
		e.Turns = sched.Turns()
		e.Rounds = sched.RoundsCompleted()
	}
	for _, v := range gs.Virologists {
		e.Players = append(e.Players, v.Name)
	}
	if w := gs.WinnerVirologist(); w != nil {
		e.Winner = w.Name
	}
	return e
}

// Record stores e and its event log in one transaction, replacing any
// earlier rows for the same match.
func (s *Store) Record(ctx context.Context, e Entry, events []log.GameEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO matches(match_id,seed,players,winner,turns,rounds,result,started_at,ended_at)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		e.MatchID, e.Seed, strings.Join(e.Players, ","), e.Winner, e.Turns, e.Rounds, e.Result,
		e.StartedAt.UTC().Format(time.RFC3339Nano), e.EndedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record match %s: %w", e.MatchID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE match_id=?`, e.MatchID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events(match_id,seq,turn,round,player,name,type,subject,details) VALUES(?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx, e.MatchID, ev.Seq, ev.Turn, ev.Round, ev.Player, ev.Name, ev.Type.String(), ev.Subject, ev.Details); err != nil {
			return fmt.Errorf("record event %d of %s: %w", ev.Seq, e.MatchID, err)
		}
	}
	return tx.Commit()
}

// Events returns the recorded event log of a match in sequence order.
func (s *Store) Events(ctx context.Context, matchID string) ([]log.GameEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq,turn,round,player,name,type,subject,details FROM events WHERE match_id=? ORDER BY seq`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []log.GameEvent
	for rows.Next() {
		var (
			ev  log.GameEvent
			typ string
		)
		if err := rows.Scan(&ev.Seq, &ev.Turn, &ev.Round, &ev.Player, &ev.Name, &typ, &ev.Subject, &ev.Details); err != nil {
			return nil, err
		}
		kind, ok := log.ParseEventType(typ)
		if !ok {
			return nil, fmt.Errorf("match %s: unknown event type %q", matchID, typ)
		}
		ev.Type = kind
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Recent returns up to limit matches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT match_id,seed,players,winner,turns,rounds,result,started_at,ended_at
		 FROM matches ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                 Entry
			players           string
			started, finished string
		)
		if err := rows.Scan(&e.MatchID, &e.Seed, &players, &e.Winner, &e.Turns, &e.Rounds, &e.Result, &started, &finished); err != nil {
			return nil, err
		}
		if players != "" {
			e.Players = strings.Split(players, ",")
		}
		if e.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, err
		}
		if e.EndedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Wins counts won matches per virologist name. Draws are not counted.
func (s *Store) Wins(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT winner, COUNT(*) FROM matches WHERE winner != '' GROUP BY winner`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wins := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		wins[name] = n
	}
	return wins, rows.Err()
}
