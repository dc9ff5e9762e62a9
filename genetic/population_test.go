package genetic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

func TestLegalDigits(t *testing.T) {
	// Blanking two solved cells leaves each exactly its old digit.
	g := mustParse(t, easySolution)
	g[sudoku.Index(0, 0)] = 0
	g[sudoku.Index(0, 1)] = 0

	legal, err := legalDigits(&g)
	require.NoError(t, err)
	require.Equal(t, uint16(1)<<5, legal[sudoku.Index(0, 0)])
	require.Equal(t, uint16(1)<<3, legal[sudoku.Index(0, 1)])
	// A given cell is pinned to its own digit.
	require.Equal(t, uint16(1)<<4, legal[sudoku.Index(0, 2)])

	// A free-standing empty grid allows everything everywhere.
	var open sudoku.Grid
	legal, err = legalDigits(&open)
	require.NoError(t, err)
	require.Equal(t, allDigits, legal[40])
}

func TestLegalDigitsImpossibleCell(t *testing.T) {
	var g sudoku.Grid
	for col := 0; col < 8; col++ {
		g[sudoku.Index(0, col)] = uint8(col + 1)
	}
	g[sudoku.Index(1, 8)] = 9

	_, err := legalDigits(&g)
	require.ErrorIs(t, err, ErrInvalidPuzzle)
}

func TestSeedPopulation(t *testing.T) {
	rng := newTestRNG(42)
	given := mustParse(t, easyPuzzle)

	pop, err := seedPopulation(rng, given, 5)
	require.NoError(t, err)
	require.Len(t, pop.members, 5)
	for _, ind := range pop.members {
		requirePermutationRows(t, &ind.grid)
		for cell := 0; cell < sudoku.Cells; cell++ {
			if given[cell] != 0 {
				require.Equal(t, given[cell], ind.grid[cell])
			}
		}
		require.Greater(t, ind.fitness, 0.0)
		require.LessOrEqual(t, ind.fitness, 1.0)
	}
}

func TestFitnessOfSolution(t *testing.T) {
	ind := &individual{grid: mustParse(t, easySolution)}
	ind.updateFitness()
	require.Equal(t, 1.0, ind.fitness)
	require.True(t, ind.solved())
}

func TestFitnessOfDamagedSolution(t *testing.T) {
	// Overwriting one cell duplicates a digit in one column and one
	// box: both unit sums drop from 81 to 80.
	ind := &individual{grid: mustParse(t, easySolution)}
	ind.grid[sudoku.Index(0, 0)] = 1
	ind.updateFitness()
	require.Equal(t, 6400.0/6561.0, ind.fitness)
	require.False(t, ind.solved())
}

func TestFitnessSpread(t *testing.T) {
	pop := &population{members: []*individual{
		{fitness: 0.5}, {fitness: 0.9}, {fitness: 0.1}, {fitness: 0.7},
	}}
	maxFit, median := pop.fitnessSpread()
	require.Equal(t, 0.9, maxFit)
	require.InDelta(t, 0.6, median, 1e-12)

	pop.members = pop.members[:3]
	maxFit, median = pop.fitnessSpread()
	require.Equal(t, 0.9, maxFit)
	require.Equal(t, 0.5, median)
}

func TestSortAndBest(t *testing.T) {
	low := &individual{fitness: 0.3}
	high := &individual{fitness: 0.8}
	pop := &population{members: []*individual{low, high}}
	pop.sort()
	require.Same(t, high, pop.best())
}

func TestSolvedMember(t *testing.T) {
	solvedInd := &individual{grid: mustParse(t, easySolution)}
	solvedInd.updateFitness()
	partial := &individual{grid: mustParse(t, easyPuzzle)}
	partial.updateFitness()

	pop := &population{members: []*individual{partial, solvedInd}}
	require.Same(t, solvedInd, pop.solvedMember())

	pop.members = []*individual{partial}
	require.Nil(t, pop.solvedMember())
}
