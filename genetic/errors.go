package genetic

import "errors"

// Error values reported by Solve.
var (
	// ErrInvalidPuzzle is returned when the given grid is malformed,
	// carries duplicate givens, or leaves some cell with no legal digit.
	ErrInvalidPuzzle = errors.New("genetic: invalid puzzle")

	// ErrSeedFailed is returned when seeding could not assemble a random
	// row permutation agreeing with the givens within the retry budget.
	ErrSeedFailed = errors.New("genetic: population seeding failed")
)
