package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/history"
	"github.com/peterkuimelis/virologists/internal/log"
	"github.com/peterkuimelis/virologists/internal/save"
	"github.com/peterkuimelis/virologists/internal/term"
	"github.com/peterkuimelis/virologists/internal/tuning"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "history":
		err = runHistory(os.Args[2:])
	case "replay":
		err = runReplay(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  virologists play [--players N] [--seed S] [--rules FILE] [--load SAVE] [--journal FILE] [--history DB]")
	fmt.Println("  virologists history [--history DB] [--limit N] [--match ID]")
	fmt.Println("  virologists replay JOURNAL")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play     Play a hot-seat game in this terminal")
	fmt.Println("  history  List finished matches")
	fmt.Println("  replay   Print the events of a recorded journal")
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	players := fs.Int("players", 2, "virologists on a generated board")
	seed := fs.Int64("seed", 0, "board and dice seed (0 for random)")
	rulesFile := fs.String("rules", "", "YAML rules file (defaults if empty)")
	load := fs.String("load", "", "resume a YAML save or a .zst snapshot")
	journal := fs.String("journal", "", "write a compressed event journal to this file")
	historyDB := fs.String("history", "", "record the finished match in this sqlite database")
	fs.Parse(args)

	rules, maxTurns, err := tuning.LoadRules(*rulesFile)
	if err != nil {
		return err
	}

	var gs *game.GameState
	switch {
	case strings.HasSuffix(*load, ".zst"):
		gs, err = save.ReadSnapshot(*load, rules)
	case *load != "":
		gs, err = save.Load(*load, rules)
	default:
		gs, err = game.NewGeneratedGame(*players, rules, *seed)
	}
	if err != nil {
		return err
	}

	var logger log.EventLogger = log.NewMemoryLogger()
	if *journal != "" {
		jl, err := log.NewJournalLogger(*journal)
		if err != nil {
			return err
		}
		defer func() {
			if err := jl.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "journal: %v\n", err)
			}
		}()
		logger = jl
	}

	ctrl := term.NewController(os.Stdin, os.Stdout)
	m, err := game.NewMatch(game.MatchConfig{Logger: logger, MaxTurns: maxTurns}, gs, ctrl)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	if _, err := m.Run(ctx); err != nil {
		if errors.Is(err, term.ErrQuit) {
			return nil
		}
		return err
	}
	ctrl.GameOver(gs)

	if *historyDB == "" {
		return nil
	}
	store, err := history.Open(*historyDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(context.Background(), history.FromMatch(m, started), m.Logger.Events())
}

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	historyDB := fs.String("history", "virologists.db", "sqlite match history")
	limit := fs.Int("limit", 20, "matches to list")
	match := fs.String("match", "", "print the event log of one match instead")
	fs.Parse(args)

	store, err := history.Open(*historyDB)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if *match != "" {
		events, err := store.Events(ctx, *match)
		if err != nil {
			return err
		}
		fmt.Print(log.FormatAll(events))
		return nil
	}
	entries, err := store.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  seed %-20d %4d turns  %s\n",
			e.EndedAt.Local().Format("2006-01-02 15:04"), e.MatchID, e.Seed, e.Turns, e.Result)
	}
	wins, err := store.Wins(ctx)
	if err != nil {
		return err
	}
	for name, n := range wins {
		fmt.Printf("%s: %d wins\n", name, n)
	}
	return nil
}

func runReplay(args []string) error {
	if len(args) != 1 {
		printUsage()
		os.Exit(1)
	}
	events, err := log.ReadJournal(args[0])
	if err != nil {
		return err
	}
	fmt.Print(log.FormatAll(events))
	return nil
}
