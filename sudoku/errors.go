package sudoku

import "errors"

// Error values for grid parsing and validation.
var (
	// ErrGridSize is returned when input does not contain exactly 81 cells.
	ErrGridSize = errors.New("sudoku: grid must contain exactly 81 cells")

	// ErrBadCell is returned when a cell holds a character or value outside 0-9.
	ErrBadCell = errors.New("sudoku: cell value out of range")

	// ErrConflict is returned when a row, column, or box already contains
	// the same digit twice.
	ErrConflict = errors.New("sudoku: duplicate digit in group")
)
