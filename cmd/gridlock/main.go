package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "solve":
		if err := solve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "reduce":
		if err := reduce(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "batch":
		if err := runBatch(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "analyze":
		if err := analyze(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "experiments":
		if err := experiments(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "generate":
		if err := generate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("gridlock version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridlock - Sudoku deduction and evolutionary solving tool

Usage:
  gridlock <command> [options]

Commands:
  solve        Solve one puzzle (deduction + genetic search)
  reduce       Run the deduction stage only
  batch        Run a parallel solving experiment
  analyze      Compute statistics from experiment CSV files
  experiments  List or export stored experiments
  generate     Generate puzzles with known solutions
  help         Show this help message
  version      Show version information

Examples:
  # Solve a puzzle from a file
  gridlock solve puzzles/s01a.txt

  # Deduction only, with per-technique counts
  gridlock reduce puzzles/s01a.txt

  # 20 attempts per puzzle and mode, recorded to CSV and SQLite
  gridlock batch -puzzles s01a,s01b -dir puzzles -csv runs.csv -db experiments.db

  # Report on collected results
  gridlock analyze runs.csv

For command-specific help, run:
  gridlock <command> --help`)
}
