package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/singofwalls/checkbook-updater/internal/infrastructure/config"
	"github.com/singofwalls/checkbook-updater/internal/infrastructure/storage"
)

func main() {
	var (
		dbPath     string
		configFile string
		runID      string
	)
	flag.StringVar(&dbPath, "db", "", "Path to database file (uses config if not specified)")
	flag.StringVar(&configFile, "config", "config.yaml", "Configuration file path")
	flag.StringVar(&runID, "run", "", "Run ID to inspect (defaults to the most recent run)")
	flag.Parse()

	if dbPath == "" {
		cfg, err := config.LoadOrDefault(configFile)
		if err != nil {
			log.Printf("Warning: Failed to load config: %v", err)
			dbPath = "checkbook.db"
		} else {
			dbPath = cfg.Storage.DatabasePath
		}
	}

	store, err := storage.NewStore(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	var run *storage.Run
	if runID != "" {
		run, err = store.GetRun(runID)
	} else {
		run, err = store.LastRun()
	}
	if err != nil {
		log.Fatal(err)
	}
	if run == nil {
		fmt.Println("No reconciliation runs recorded yet.")
		return
	}

	fmt.Println("RECONCILIATION RUN")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Run:      %s\n", run.ID)
	fmt.Printf("Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	if run.DryRun {
		fmt.Println("Mode:     dry run (no sheet writes)")
	}
	fmt.Printf("Outcome:  %d exact, %d updated, %d new\n\n", run.ExactCount, run.UpdatedCount, run.NewCount)

	matches, err := store.RunMatches(run.ID)
	if err != nil {
		log.Fatal(err)
	}
	if len(matches) == 0 {
		fmt.Println("No matches recorded for this run.")
		return
	}

	fmt.Println("MATCHES")
	fmt.Println(strings.Repeat("-", 60))
	for _, m := range matches {
		row := "appended"
		if m.SheetRow >= 0 {
			row = fmt.Sprintf("row %d", m.SheetRow)
		}
		fmt.Printf("%-8s %-10s %s  %-12s %9.2f  %s",
			m.Kind, row, m.Date.Format("01/02/2006"), m.Account, m.Amount, m.Description)
		if m.Kind == storage.MatchUpdated {
			fmt.Printf("  (score %.4f)", m.Score)
		}
		fmt.Println()
	}
}
