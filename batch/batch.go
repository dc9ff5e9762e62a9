// Package batch runs solver experiments in parallel and records every
// attempt. Each job is one solver run on one puzzle under one
// preprocessing mode; a worker pool executes the jobs and a collector
// streams the outcomes to CSV, to the experiment store, and to a
// progress log.
package batch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gridlock-xyz/go-gridlock/deduce"
	"github.com/gridlock-xyz/go-gridlock/genetic"
	"github.com/gridlock-xyz/go-gridlock/results"
	"github.com/gridlock-xyz/go-gridlock/store"
	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// Mode selects whether deduction runs before the evolutionary solver.
type Mode bool

const (
	WithPreprocessing    Mode = true
	WithoutPreprocessing Mode = false
)

func (m Mode) String() string {
	if m {
		return "with"
	}
	return "without"
}

// Config describes one batch experiment.
type Config struct {
	Puzzles   []string         // puzzle names, resolved against PuzzleDir
	PuzzleDir string           // directory holding <name>.txt files; empty treats names as paths
	Attempts  int              // attempts per puzzle and mode
	Workers   int              // parallel attempts
	Timeout   time.Duration    // per-attempt budget; 0 disables
	Modes     []Mode           // preprocessing modes to cover; empty runs both
	CSVPath   string           // results CSV; empty disables
	DBPath    string           // experiment database; empty disables
	Name      string           // experiment name for the store
	Seed      int64            // base seed for the attempt schedule; 0 draws one from the clock
	Solver    *genetic.Options // solver settings; nil means genetic.DefaultOptions
	Out       io.Writer        // progress output; nil discards
}

// DefaultConfig returns the standard experiment settings.
func DefaultConfig() Config {
	return Config{
		Attempts: 20,
		Workers:  12,
		Timeout:  20 * time.Minute,
		Modes:    []Mode{WithPreprocessing, WithoutPreprocessing},
	}
}

// Summary is the outcome of one batch run.
type Summary struct {
	ExperimentID string           // store id, empty when no database was configured
	CSVPath      string           // path the records were streamed to, if any
	Records      []results.Record // every completed attempt, in completion order
	Report       *results.Report
	Elapsed      time.Duration
}

type job struct {
	attempt int // 1-based within its puzzle and mode
	puzzle  string
	mode    Mode
	seed    int64
}

// Run executes the configured experiment and blocks until every attempt
// finishes. Cancelling ctx stops scheduling new attempts and cancels
// the ones in flight; the records completed so far are still returned.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if len(cfg.Puzzles) == 0 {
		return nil, fmt.Errorf("no puzzles configured")
	}
	if cfg.Attempts < 1 {
		return nil, fmt.Errorf("attempts must be positive, got %d", cfg.Attempts)
	}
	if len(cfg.Modes) == 0 {
		cfg.Modes = []Mode{WithPreprocessing, WithoutPreprocessing}
	}
	if cfg.Solver == nil {
		cfg.Solver = genetic.DefaultOptions()
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	grids := make(map[string]sudoku.Grid, len(cfg.Puzzles))
	for _, name := range cfg.Puzzles {
		g, err := loadPuzzle(cfg, name)
		if err != nil {
			return nil, fmt.Errorf("load puzzle %s: %w", name, err)
		}
		grids[name] = g
	}

	jobs := schedule(cfg)

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var writer *results.Writer
	if cfg.CSVPath != "" {
		w, err := results.NewWriter(cfg.CSVPath)
		if err != nil {
			return nil, err
		}
		writer = w
		defer writer.Close()
	}

	var db *store.Store
	experimentID := ""
	if cfg.DBPath != "" {
		s, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		db = s
		defer db.Close()

		name := cfg.Name
		if name == "" {
			name = "batch-" + time.Now().Format("20060102-150405")
		}
		experimentID, err = db.CreateExperiment(name, cfg.Puzzles, modeNames(cfg.Modes), cfg.Attempts, workers)
		if err != nil {
			return nil, fmt.Errorf("create experiment: %w", err)
		}
	}

	fmt.Fprintf(cfg.Out, "=== Batch Experiment ===\n")
	fmt.Fprintf(cfg.Out, "Puzzles: %s\n", strings.Join(cfg.Puzzles, ", "))
	fmt.Fprintf(cfg.Out, "Modes: %s preprocessing\n", strings.Join(modeNames(cfg.Modes), ", "))
	fmt.Fprintf(cfg.Out, "Attempts per combination: %d\n", cfg.Attempts)
	fmt.Fprintf(cfg.Out, "Total attempts: %d\n", len(jobs))
	fmt.Fprintf(cfg.Out, "Workers: %d\n\n", workers)

	start := time.Now()

	jobChan := make(chan job, len(jobs))
	recChan := make(chan results.Record, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				recChan <- runAttempt(ctx, grids[j.puzzle], j, cfg.Solver, cfg.Timeout)
			}
		}()
	}

	// Send work; a cancelled context stops the schedule early.
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		jobChan <- j
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(recChan)
	}()

	// Collect results as they complete.
	var records []results.Record
	var sinkErr error
	completed := 0
	for rec := range recChan {
		records = append(records, rec)
		completed++

		if writer != nil && sinkErr == nil {
			if err := writer.Write(rec); err != nil {
				sinkErr = fmt.Errorf("write csv: %w", err)
			}
		}
		if db != nil && sinkErr == nil {
			if err := db.InsertRun(experimentID, rec); err != nil {
				sinkErr = fmt.Errorf("insert run: %w", err)
			}
		}

		status := "unsolved"
		if rec.Solved {
			status = "solved"
		}
		fmt.Fprintf(cfg.Out, "[%d/%d] %s %s: %s (%.2fs, seed %d)\n",
			completed, len(jobs), rec.Puzzle, Mode(rec.Preprocessing), status, rec.Seconds, rec.Seed)
	}
	if sinkErr != nil {
		return nil, sinkErr
	}

	elapsed := time.Since(start)
	report := results.Analyze(records)

	fmt.Fprintf(cfg.Out, "\n=== Batch Statistics ===\n")
	fmt.Fprintf(cfg.Out, "Attempts: %d\n", report.Overall.Attempts)
	fmt.Fprintf(cfg.Out, "Solved: %d/%d (%.1f%%)\n",
		report.Overall.Solved, report.Overall.Attempts, 100*report.Overall.SuccessRate)
	if report.Overall.Attempts > 0 {
		fmt.Fprintf(cfg.Out, "Time: mean %.4fs, min %.4fs, max %.4fs\n",
			report.Overall.Time.Mean, report.Overall.Time.Min, report.Overall.Time.Max)
	}
	fmt.Fprintf(cfg.Out, "Elapsed: %s\n", elapsed.Round(time.Millisecond))

	return &Summary{
		ExperimentID: experimentID,
		CSVPath:      cfg.CSVPath,
		Records:      records,
		Report:       report,
		Elapsed:      elapsed,
	}, nil
}

// schedule expands the configuration into jobs with pre-drawn seeds, so
// a fixed Config.Seed reproduces the exact same attempts regardless of
// worker timing.
func schedule(cfg Config) []job {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var jobs []job
	for _, puzzle := range cfg.Puzzles {
		for _, mode := range cfg.Modes {
			for a := 1; a <= cfg.Attempts; a++ {
				jobs = append(jobs, job{
					attempt: a,
					puzzle:  puzzle,
					mode:    mode,
					seed:    rng.Int63n(1 << 32),
				})
			}
		}
	}
	return jobs
}

// runAttempt executes one job and returns its record. Failures are
// reported through the record's return code, never as an error: one bad
// attempt must not abort the batch.
func runAttempt(ctx context.Context, g sudoku.Grid, j job, solver *genetic.Options, timeout time.Duration) results.Record {
	rec := results.Record{
		Attempt:       j.attempt,
		Puzzle:        j.puzzle,
		Preprocessing: bool(j.mode),
		Seed:          j.seed,
	}

	start := time.Now()
	finish := func(code int) results.Record {
		rec.Seconds = time.Since(start).Seconds()
		rec.ReturnCode = code
		rec.Timestamp = time.Now().UTC()
		return rec
	}

	grid := g
	if j.mode == WithPreprocessing {
		res, err := deduce.Reduce(grid)
		if err != nil {
			// Invalid givens or a proven contradiction: no search can help.
			return finish(results.CodeUnsolved)
		}
		grid = res.Grid
		if grid.Solved() {
			rec.Solved = true
			rec.Solution = grid.String()
			return finish(results.CodeSolved)
		}
	}

	opts := *solver
	opts.Seed = j.seed

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := genetic.Solve(runCtx, grid, &opts)
	switch {
	case err != nil:
		return finish(results.CodeUnsolved)
	case res.Solved:
		rec.Solved = true
		rec.Solution = res.Grid.String()
		return finish(results.CodeSolved)
	case res.Reason == genetic.ReasonCancelled:
		return finish(results.CodeError)
	default:
		return finish(results.CodeUnsolved)
	}
}

func loadPuzzle(cfg Config, name string) (sudoku.Grid, error) {
	path := name
	if cfg.PuzzleDir != "" {
		path = filepath.Join(cfg.PuzzleDir, name+".txt")
	}
	return sudoku.Load(path)
}

func modeNames(modes []Mode) []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}
