// Package deduce implements the logical preprocessing stage: a
// fixed-point engine that narrows per-cell candidate sets and fills
// forced cells using six deduction techniques (naked single, hidden
// single, naked pair, naked triple, naked quad, and X-wing). Every cell
// it fills is logically certain, so downstream search can treat the
// output grid's values as given.
//
// Reduction is a pure function of the input grid: deterministic,
// single-threaded, and free of package-level mutable state, so
// independent calls may run concurrently.
package deduce

import (
	"fmt"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// Options controls the reduction loop.
type Options struct {
	MaxPasses int // hard bound on fixed-point iterations
}

// DefaultOptions returns the standard reduction settings. The pass
// bound is the theoretical worst case of one candidate removed per
// pass: 81 cells x 9 digits.
func DefaultOptions() *Options {
	return &Options{
		MaxPasses: sudoku.Cells * sudoku.Size,
	}
}

// Stats counts the work done by each technique during one reduction.
// The single counters count filled cells; the removal counters count
// candidates eliminated.
type Stats struct {
	Passes         int `json:"passes"`
	NakedSingles   int `json:"naked_singles"`
	HiddenSingles  int `json:"hidden_singles"`
	PairRemovals   int `json:"pair_removals"`
	TripleRemovals int `json:"triple_removals"`
	QuadRemovals   int `json:"quad_removals"`
	XWingRemovals  int `json:"xwing_removals"`
}

// Result is the outcome of a completed reduction.
type Result struct {
	Grid   sudoku.Grid `json:"grid"`
	Filled int         `json:"filled"`
	Stats  Stats       `json:"stats"`
}

// Reduce runs the deduction loop on a copy of g with default options.
func Reduce(g sudoku.Grid) (*Result, error) {
	return ReduceWith(g, nil)
}

// ReduceWith runs the deduction loop on a copy of g. Each pass applies,
// in order: naked single, hidden single, naked pair, naked triple,
// naked quad, X-wing; the loop repeats while any technique filled a
// cell or removed a candidate, and stops at the fixed point.
//
// The grid is validated before anything runs: out-of-range or
// conflicting givens return an error wrapping ErrInvalidGrid. A puzzle
// proven unsolvable mid-run returns an error wrapping ErrContradiction;
// in both cases no grid is returned.
func ReduceWith(g sudoku.Grid, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGrid, err)
	}

	r := &reducer{grid: g}
	if err := r.initCandidates(); err != nil {
		return nil, err
	}

	steps := []func() (bool, error){
		r.nakedSingles,
		r.hiddenSingles,
		func() (bool, error) { return r.nakedSubsets(2) },
		func() (bool, error) { return r.nakedSubsets(3) },
		func() (bool, error) { return r.nakedSubsets(4) },
		r.xWing,
	}

	for r.stats.Passes < opts.MaxPasses {
		r.stats.Passes++
		changed := false
		for _, step := range steps {
			c, err := step()
			if err != nil {
				return nil, err
			}
			changed = changed || c
		}
		if !changed {
			break
		}
	}

	return &Result{Grid: r.grid, Filled: r.filled, Stats: r.stats}, nil
}
