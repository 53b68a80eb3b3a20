package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/virologists/internal/history"
	"github.com/peterkuimelis/virologists/internal/tuning"
	"github.com/peterkuimelis/virologists/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	rulesFile := flag.String("rules", "", "YAML rules file (defaults if empty)")
	historyDB := flag.String("history", "", "sqlite match history (disabled if empty)")
	flag.Parse()

	rules, maxTurns, err := tuning.LoadRules(*rulesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *history.Store
	if *historyDB != "" {
		if store, err = history.Open(*historyDB); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	srv, err := web.NewServer(rules, maxTurns, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("virologists web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
