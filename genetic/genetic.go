// Package genetic implements an evolutionary Sudoku solver. Each
// individual is a complete grid whose rows are permutations of 1..9
// agreeing with the givens, so evolution only has to repair columns
// and boxes. Selection is a tournament of two, recombination is cycle
// crossover applied per row, and the mutation rate adapts to how far
// the population has converged.
//
// The solver is meant to run on grids already narrowed by the deduce
// package: every cell deduction filled becomes a fixed given here,
// which shrinks the search space before any evolution starts.
package genetic

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// Mutation strategies selectable through Options.Mutation.
const (
	MutationSwap        = "swap"        // swap two values in one row
	MutationScramble    = "scramble"    // reshuffle all mutable values of one row
	MutationConstrained = "constrained" // swap toward a digit the givens allow
)

// Options configures one evolutionary run.
type Options struct {
	PopulationSize      int     // individuals per generation
	ElitePercent        float64 // fraction kept unchanged, rounded down to an even count
	MaxGenerations      int     // hard generation budget
	InitialMutationRate float64 // starting per-individual mutation probability
	MinMutationRate     float64 // adaptive-rate floor
	MaxMutationRate     float64 // adaptive-rate ceiling
	MutationStep        float64 // adaptive-rate adjustment per generation
	MedianUpperRatio    float64 // upper factor of the median fitness band
	MedianLowerRatio    float64 // lower factor of the median fitness band
	Mutation            string  // mutation strategy; empty means MutationSwap
	Seed                int64   // RNG seed; 0 draws one from the clock

	// Progress, when set, is called once per generation before
	// breeding. Returning false cancels the run.
	Progress func(Progress) bool
}

// DefaultOptions returns the standard search settings.
// Balanced for ordinary puzzles after preprocessing.
func DefaultOptions() *Options {
	return &Options{
		PopulationSize:      1000,
		ElitePercent:        0.05,
		MaxGenerations:      1000,
		InitialMutationRate: 0.06,
		MinMutationRate:     0.01,
		MaxMutationRate:     0.30,
		MutationStep:        0.005,
		MedianUpperRatio:    0.95,
		MedianLowerRatio:    0.50,
		Mutation:            MutationSwap,
	}
}

// FastOptions returns settings for quick, low-confidence runs.
// Use these for smoke tests and interactive experimentation.
func FastOptions() *Options {
	return &Options{
		PopulationSize:      200,
		ElitePercent:        0.05,
		MaxGenerations:      300,
		InitialMutationRate: 0.06,
		MinMutationRate:     0.01,
		MaxMutationRate:     0.30,
		MutationStep:        0.005,
		MedianUpperRatio:    0.95,
		MedianLowerRatio:    0.50,
		Mutation:            MutationSwap,
	}
}

// ThoroughOptions returns settings for hard puzzles.
// Use these when the default budget keeps hitting the generation
// limit; runs take proportionally longer.
func ThoroughOptions() *Options {
	return &Options{
		PopulationSize:      2000,
		ElitePercent:        0.05,
		MaxGenerations:      3000,
		InitialMutationRate: 0.06,
		MinMutationRate:     0.01,
		MaxMutationRate:     0.30,
		MutationStep:        0.005,
		MedianUpperRatio:    0.95,
		MedianLowerRatio:    0.50,
		Mutation:            MutationSwap,
	}
}

// StopReason explains why Solve returned.
type StopReason int

const (
	ReasonSolved StopReason = iota
	ReasonGenerationLimit
	ReasonCancelled
)

func (r StopReason) String() string {
	switch r {
	case ReasonSolved:
		return "solved"
	case ReasonGenerationLimit:
		return "generation limit"
	case ReasonCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Progress is handed to the Options.Progress hook once per generation.
type Progress struct {
	Generation   int     // zero-based generation index
	BestFitness  float64 // fitness of the current best individual
	Evaluated    int     // individuals evaluated so far
	MutationRate float64 // rate in force this generation
}

// Result is the outcome of one evolutionary run.
type Result struct {
	Solved       bool        `json:"solved"`
	Grid         sudoku.Grid `json:"grid"` // the solution, or the best attempt
	Fitness      float64     `json:"fitness"`
	Generations  int         `json:"generations"` // generations completed
	Reason       StopReason  `json:"reason"`
	MutationRate float64     `json:"mutation_rate"` // rate at stop
	Seed         int64       `json:"seed"`          // seed actually used
}

// Solve evolves a population toward a completion of g. Cells already
// filled in g, the givens plus whatever deduction added, are fixed
// and never altered. The run is deterministic for a fixed Seed and
// touches no package-level state, so independent runs may proceed
// concurrently.
//
// A puzzle with conflicting givens or an impossible cell returns an
// error wrapping ErrInvalidPuzzle. Exhausting the generation budget or
// being cancelled is not an error: the Result carries the best
// individual and the reason.
func Solve(ctx context.Context, g sudoku.Grid, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.PopulationSize < 2 {
		return nil, fmt.Errorf("genetic: population size must be at least 2, got %d", opts.PopulationSize)
	}
	mut, err := mutatorFor(opts.Mutation)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPuzzle, err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pop, err := seedPopulation(rng, g, opts.PopulationSize)
	if err != nil {
		return nil, err
	}

	elites := int(opts.ElitePercent * float64(opts.PopulationSize))
	if elites%2 != 0 && opts.PopulationSize > elites {
		elites--
	}
	if elites < 0 {
		elites = 0
	}
	rate := opts.InitialMutationRate

	result := func(best *individual, generations int, reason StopReason) *Result {
		// The last brood is never scanned by the loop head, so a
		// solution born in the final generation still gets reported.
		if reason == ReasonGenerationLimit && best.solved() {
			reason = ReasonSolved
		}
		return &Result{
			Solved:       reason == ReasonSolved,
			Grid:         best.grid,
			Fitness:      best.fitness,
			Generations:  generations,
			Reason:       reason,
			MutationRate: rate,
			Seed:         seed,
		}
	}

	for gen := 0; gen < opts.MaxGenerations; gen++ {
		pop.updateFitness()
		maxFit, median := pop.fitnessSpread()

		var solution *individual
		if maxFit > 1-fitnessEps {
			solution = pop.solvedMember()
		}

		pop.sort()
		if opts.Progress != nil {
			ok := opts.Progress(Progress{
				Generation:   gen,
				BestFitness:  pop.best().fitness,
				Evaluated:    (gen + 1) * opts.PopulationSize,
				MutationRate: rate,
			})
			if !ok {
				return result(pop.best(), gen, ReasonCancelled), nil
			}
		}
		if ctx.Err() != nil {
			return result(pop.best(), gen, ReasonCancelled), nil
		}
		if solution != nil {
			return result(solution, gen, ReasonSolved), nil
		}

		offspring := breed(rng, pop, opts.PopulationSize, rate, mut, &g)
		pop.members = nextGeneration(rng, pop.members, offspring, elites, opts.PopulationSize)

		rate = adaptRate(rate, maxFit, median, opts)
	}

	pop.sort()
	return result(pop.best(), opts.MaxGenerations, ReasonGenerationLimit), nil
}

// breed produces one offspring pool of the population size: tournament
// parents, cycle crossover, then mutation at the current rate. Mutated
// children are rescored.
func breed(rng *rand.Rand, pop *population, size int, rate float64, mut mutator, given *sudoku.Grid) []*individual {
	offspring := make([]*individual, 0, size)
	for len(offspring) < size {
		p1 := tournament(rng, pop.members)
		p2 := tournament(rng, pop.members)
		c1, c2 := crossover(p1, p2)

		c1.updateFitness()
		if mut(rng, c1, rate, given) {
			c1.updateFitness()
		}
		offspring = append(offspring, c1)
		if len(offspring) >= size {
			break
		}

		c2.updateFitness()
		if mut(rng, c2, rate, given) {
			c2.updateFitness()
		}
		offspring = append(offspring, c2)
	}
	return offspring
}

// nextGeneration ranks parents and offspring together, keeps the elite
// prefix, fills most of the remaining seats by tournaments without
// replacement over the rest, and tops up with clones of the ranking
// head if the pool runs dry first.
func nextGeneration(rng *rand.Rand, parents, offspring []*individual, elites, size int) []*individual {
	combined := make([]*individual, 0, len(parents)+len(offspring))
	combined = append(combined, parents...)
	combined = append(combined, offspring...)
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].fitness > combined[j].fitness
	})

	n := elites
	if n > len(combined) {
		n = len(combined)
	}
	next := make([]*individual, 0, size)
	next = append(next, combined[:n]...)

	pool := append([]*individual(nil), combined[n:]...)
	for len(next) < size {
		if len(pool) < 2 {
			if len(pool) == 1 {
				next = append(next, pool[0])
				pool = pool[:0]
			}
			break
		}
		i := rng.Intn(len(pool))
		j := rng.Intn(len(pool) - 1)
		if j >= i {
			j++
		}
		w := i
		if pool[j].fitness > pool[i].fitness {
			w = j
		}
		next = append(next, pool[w])
		pool = append(pool[:w], pool[w+1:]...)
	}

	for i := 0; len(next) < size; i++ {
		next = append(next, combined[i%len(combined)].clone())
	}
	return next
}

// adaptRate nudges the mutation rate by comparing the median parent
// fitness against a band under the maximum; the band tightens as the
// population converges: bound = max * (1 - (1-ratio)*(1-max)). A
// median above the band means the pool has gone uniform, so mutation
// goes up; a median below means it is still scattered, so mutation
// goes down.
func adaptRate(rate, maxFit, median float64, opts *Options) float64 {
	if maxFit <= 0 {
		return rate
	}
	amplitude := 1 - maxFit
	upper := maxFit * (1 - (1-opts.MedianUpperRatio)*amplitude)
	lower := maxFit * (1 - (1-opts.MedianLowerRatio)*amplitude)
	switch {
	case median > upper:
		rate += opts.MutationStep
	case median < lower:
		rate -= opts.MutationStep
	}
	if rate < opts.MinMutationRate {
		rate = opts.MinMutationRate
	}
	if rate > opts.MaxMutationRate {
		rate = opts.MaxMutationRate
	}
	return rate
}

func mutatorFor(name string) (mutator, error) {
	switch name {
	case "", MutationSwap:
		return swapMutate, nil
	case MutationScramble:
		return scrambleMutate, nil
	case MutationConstrained:
		return constrainedMutate, nil
	}
	return nil, fmt.Errorf("genetic: unknown mutation strategy %q", name)
}
