package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gridlock-xyz/go-gridlock/deduce"
)

func reduce(args []string) error {
	fs := flag.NewFlagSet("reduce", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "Emit the reduction result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gridlock reduce <puzzle> [options]

Run the deduction stage only: naked and hidden singles, naked subsets
and X-wing, applied to a fixed point. Every filled cell is logically
certain. Exits nonzero if the puzzle is invalid or provably unsolvable.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show before/after grids and technique counts
  gridlock reduce puzzles/s01a.txt

  # Machine-readable output
  gridlock reduce puzzles/s01a.txt --json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("puzzle required")
	}

	grid, err := loadGrid(fs.Arg(0))
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := deduce.Reduce(grid)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if *jsonOut {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("Puzzle:")
	fmt.Println(grid.Format())
	fmt.Println()
	fmt.Println("Reduced:")
	fmt.Println(res.Grid.Format())
	fmt.Println()

	fmt.Printf("Filled: %d cells (%d → %d empty)\n", res.Filled, grid.Empties(), res.Grid.Empties())
	if res.Grid.Solved() {
		fmt.Println("Solved by deduction alone.")
	}
	fmt.Println()

	fmt.Println("Techniques:")
	fmt.Printf("  Passes:          %d\n", res.Stats.Passes)
	fmt.Printf("  Naked singles:   %d\n", res.Stats.NakedSingles)
	fmt.Printf("  Hidden singles:  %d\n", res.Stats.HiddenSingles)
	fmt.Printf("  Pair removals:   %d\n", res.Stats.PairRemovals)
	fmt.Printf("  Triple removals: %d\n", res.Stats.TripleRemovals)
	fmt.Printf("  Quad removals:   %d\n", res.Stats.QuadRemovals)
	fmt.Printf("  X-wing removals: %d\n", res.Stats.XWingRemovals)
	fmt.Println()

	fmt.Printf("Elapsed: %s\n", elapsed.Round(time.Microsecond))
	return nil
}
