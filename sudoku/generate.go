package sudoku

import "math/rand"

// GenerateSolved produces a complete valid grid by randomized
// backtracking. The rng determines the grid; a fixed seed reproduces it.
func GenerateSolved(rng *rand.Rand) Grid {
	var g Grid
	fillCell(&g, rng, 0)
	return g
}

// Generate produces a puzzle with the requested number of blank cells
// together with the full solution it was dug from.
func Generate(rng *rand.Rand, blanks int) (puzzle, solution Grid) {
	solution = GenerateSolved(rng)
	puzzle = solution
	if blanks > Cells {
		blanks = Cells
	}
	for _, cell := range rng.Perm(Cells)[:blanks] {
		puzzle[cell] = 0
	}
	return puzzle, solution
}

func fillCell(g *Grid, rng *rand.Rand, cell int) bool {
	if cell == Cells {
		return true
	}
	for _, d := range rng.Perm(Size) {
		digit := uint8(d + 1)
		if placeable(g, cell, digit) {
			g[cell] = digit
			if fillCell(g, rng, cell+1) {
				return true
			}
			g[cell] = 0
		}
	}
	return false
}

func placeable(g *Grid, cell int, digit uint8) bool {
	for _, peer := range Peers[cell] {
		if g[peer] == digit {
			return false
		}
	}
	return true
}
