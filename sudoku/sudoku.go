// Package sudoku provides the 9x9 grid model shared by the deduction
// and search packages: cell access, parsing and formatting, the static
// row/column/box topology, validation, and puzzle generation.
package sudoku

// Size is the side length of the grid.
const Size = 9

// BoxSize is the side length of each 3x3 box.
const BoxSize = 3

// Cells is the total number of cells in a grid.
const Cells = Size * Size

// Grid is a row-major 9x9 puzzle state. A zero cell is empty; values
// 1-9 are placed digits. Grids are plain values: assignment copies.
type Grid [Cells]uint8

// Index converts (row, col) coordinates to a flat cell index.
func Index(row, col int) int {
	return row*Size + col
}

// RowCol converts a flat cell index back to (row, col) coordinates.
func RowCol(cell int) (int, int) {
	return cell / Size, cell % Size
}

// BoxIndex returns the 3x3 box number (0-8, row-major) containing (row, col).
func BoxIndex(row, col int) int {
	return (row/BoxSize)*BoxSize + col/BoxSize
}

// At returns the value at (row, col).
func (g Grid) At(row, col int) uint8 {
	return g[Index(row, col)]
}

// Set places a value at (row, col).
func (g *Grid) Set(row, col int, v uint8) {
	g[Index(row, col)] = v
}

// Empties returns the number of empty cells.
func (g Grid) Empties() int {
	n := 0
	for _, v := range g {
		if v == 0 {
			n++
		}
	}
	return n
}

// Solved reports whether the grid is completely filled with no conflicts.
func (g Grid) Solved() bool {
	for _, v := range g {
		if v == 0 {
			return false
		}
	}
	return g.Validate() == nil
}

// String returns the canonical 81-digit form, row-major, '0' for empty.
func (g Grid) String() string {
	var b [Cells]byte
	for i, v := range g {
		b[i] = '0' + v
	}
	return string(b[:])
}
