package genetic

import (
	"math/bits"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// fitnessEps is the tolerance for treating a fitness value as 1.0.
const fitnessEps = 1e-9

// individual is one member of the population: a complete grid whose
// rows are permutations of 1..9 agreeing with the givens, plus its
// cached fitness.
type individual struct {
	grid    sudoku.Grid
	fitness float64
}

func (ind *individual) clone() *individual {
	c := *ind
	return &c
}

// updateFitness scores the grid as the product of a column score and a
// box score, each the mean fraction of distinct digits per unit. Rows
// are permutations by construction and contribute nothing. 1.0 means
// every column and every box holds all nine digits.
func (ind *individual) updateFitness() {
	cols, boxes := 0, 0
	for i := 0; i < sudoku.Size; i++ {
		cols += unitDistinct(&ind.grid, sudoku.Size+i)
		boxes += unitDistinct(&ind.grid, 2*sudoku.Size+i)
	}
	ind.fitness = float64(cols) * float64(boxes) / (81.0 * 81.0)
}

// unitDistinct counts the distinct nonzero digits in one group.
func unitDistinct(g *sudoku.Grid, gid int) int {
	var seen uint16
	for _, cell := range sudoku.Groups[gid] {
		seen |= 1 << g[cell]
	}
	return bits.OnesCount16(seen &^ 1)
}

// solved reports whether the individual is a genuine solution: fitness
// at 1.0 within tolerance, no empty cells, and a clean validation.
func (ind *individual) solved() bool {
	return ind.fitness > 1-fitnessEps && ind.grid.Solved()
}
