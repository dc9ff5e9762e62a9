package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gridlock-xyz/go-gridlock/store"
)

func experiments(args []string) error {
	fs := flag.NewFlagSet("experiments", flag.ExitOnError)
	dbPath := fs.String("db", "experiments.db", "SQLite database file")
	limit := fs.Int("limit", 10, "Number of experiments to list")
	jsonID := fs.String("json", "", "Export one experiment as JSON by id")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gridlock experiments [options]

List experiments recorded by gridlock batch, newest first, with run
counts and success rates. One experiment can be exported as JSON.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Latest experiments
  gridlock experiments -db experiments.db

  # Full export of one experiment
  gridlock experiments -db experiments.db -json 5f8c... > experiment.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if *jsonID != "" {
		return db.ExportJSON(*jsonID, os.Stdout)
	}

	exps, err := db.RecentExperiments(*limit)
	if err != nil {
		return err
	}
	if len(exps) == 0 {
		fmt.Println("No experiments recorded.")
		return nil
	}

	for _, exp := range exps {
		fmt.Printf("%s  %s\n", exp.ID, exp.Name)
		fmt.Printf("  Created: %s\n", exp.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("  Puzzles: %s (modes: %s, %d attempts, %d workers)\n",
			exp.Puzzles, exp.Modes, exp.Attempts, exp.Workers)

		sum, err := db.ExperimentSummary(exp.ID)
		if err != nil {
			return err
		}
		if sum.Runs > 0 {
			fmt.Printf("  Runs: %d, solved %d (%.1f%%), mean %.4fs\n",
				sum.Runs, sum.Solved, 100*sum.SuccessRate, sum.MeanSeconds)
		} else {
			fmt.Println("  Runs: none")
		}
		fmt.Println()
	}
	return nil
}
