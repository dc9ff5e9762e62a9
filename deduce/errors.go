package deduce

import "errors"

// Error values reported by the reduction loop.
var (
	// ErrInvalidGrid is returned when the input grid is malformed or
	// already violates a constraint before any deduction runs.
	ErrInvalidGrid = errors.New("deduce: invalid input grid")

	// ErrContradiction is returned when deduction proves the puzzle has
	// no solution: a cell left with no candidates, or two peers forced
	// to the same digit.
	ErrContradiction = errors.New("deduce: puzzle has no solution")
)
