package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gridlock-xyz/go-gridlock/deduce"
	"github.com/gridlock-xyz/go-gridlock/genetic"
	"github.com/gridlock-xyz/go-gridlock/plotter"
	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

func solve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	noReduce := fs.Bool("no-reduce", false, "Skip the deduction stage and search from the raw puzzle")
	seed := fs.Int64("seed", 0, "RNG seed for the search (0 = draw from the clock)")
	population := fs.Int("population", 0, "Population size (0 = preset default)")
	generations := fs.Int("generations", 0, "Generation budget (0 = preset default)")
	mutation := fs.String("mutation", "", "Mutation strategy: swap, scramble or constrained")
	quiet := fs.Bool("quiet", false, "Suppress per-generation progress")
	svgPath := fs.String("svg", "", "Write a convergence chart of the run to this file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gridlock solve <puzzle> [options]

Solve a puzzle: fill every logically forced cell by deduction, then
evolve the rest with a genetic search. The puzzle is a file path or an
inline string of 81 digits (0 or . for empty).

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Solve with the standard settings
  gridlock solve puzzles/s01a.txt

  # Reproducible run
  gridlock solve puzzles/s10a.txt --seed 42

  # Raw search, no deduction
  gridlock solve puzzles/s01a.txt --no-reduce --population 2000
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

	fmt.Println("Puzzle:")
	fmt.Println(grid.Format())
	fmt.Println()

	start := time.Now()
	work := grid

	if !*noReduce {
		reduceStart := time.Now()
		res, err := deduce.Reduce(grid)
		if err != nil {
			return fmt.Errorf("reduce: %w", err)
		}
		fmt.Printf("Deduction filled %d cells in %s (%d empty remain)\n\n",
			res.Filled, time.Since(reduceStart).Round(time.Microsecond), res.Grid.Empties())
		work = res.Grid

		if work.Solved() {
			fmt.Println("Solved by deduction alone.")
			fmt.Println()
			fmt.Println(work.Format())
			fmt.Printf("\nTotal time: %s\n", time.Since(start).Round(time.Millisecond))
			return nil
		}
	}

	opts := genetic.DefaultOptions()
	opts.Seed = *seed
	if *population > 0 {
		opts.PopulationSize = *population
	}
	if *generations > 0 {
		opts.MaxGenerations = *generations
	}
	if *mutation != "" {
		opts.Mutation = *mutation
	}

	var bestCurve, rateCurve []float64
	if !*quiet || *svgPath != "" {
		opts.Progress = func(p genetic.Progress) bool {
			if *svgPath != "" {
				bestCurve = append(bestCurve, p.BestFitness)
				rateCurve = append(rateCurve, p.MutationRate)
			}
			if !*quiet {
				// Progress goes to stderr so the solution stays pipeable.
				fmt.Fprintf(os.Stderr, "\rGeneration %d: best %.4f (rate %.3f)",
					p.Generation, p.BestFitness, p.MutationRate)
			}
			return true
		}
	}

	fmt.Printf("Evolving population of %d (up to %d generations)...\n",
		opts.PopulationSize, opts.MaxGenerations)

	res, err := genetic.Solve(context.Background(), work, opts)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	fmt.Printf("Stopped: %s after %d generations (fitness %.4f, seed %d)\n\n",
		res.Reason, res.Generations, res.Fitness, res.Seed)
	fmt.Println(res.Grid.Format())
	fmt.Printf("\nTotal time: %s\n", time.Since(start).Round(time.Millisecond))

	if *svgPath != "" {
		title := fmt.Sprintf("Convergence (seed %d)", res.Seed)
		svg := plotter.PlotConvergence(bestCurve, rateCurve, 800, 500, title)
		if err := os.WriteFile(*svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", *svgPath)
	}

	if !res.Solved {
		return fmt.Errorf("not solved (best fitness %.4f)", res.Fitness)
	}
	return nil
}

// loadGrid accepts either a path to a puzzle file or an inline grid
// string.
func loadGrid(arg string) (sudoku.Grid, error) {
	if _, err := os.Stat(arg); err == nil {
		return sudoku.Load(arg)
	}
	return sudoku.Parse(arg)
}
