package genetic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

func newTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestCycleCrossoverRow(t *testing.T) {
	a := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := []uint8{9, 8, 7, 6, 5, 4, 3, 2, 1}
	dst1 := make([]uint8, 9)
	dst2 := make([]uint8, 9)

	// Cycles in discovery order: {0,8} {1,7} {2,6} {3,5} {4}; the odd
	// ones swap parents.
	cxRow(dst1, dst2, a, b)
	require.Equal(t, []uint8{1, 8, 3, 6, 5, 4, 7, 2, 9}, dst1)
	require.Equal(t, []uint8{9, 2, 7, 4, 5, 6, 3, 8, 1}, dst2)
}

func TestCycleCrossoverIdenticalParents(t *testing.T) {
	a := []uint8{3, 1, 4, 5, 9, 2, 6, 8, 7}
	dst1 := make([]uint8, 9)
	dst2 := make([]uint8, 9)

	cxRow(dst1, dst2, a, a)
	require.Equal(t, a, dst1)
	require.Equal(t, a, dst2)
}

func TestCrossoverPreservesGivensAndRows(t *testing.T) {
	rng := newTestRNG(3)
	given := mustParse(t, easyPuzzle)
	pop, err := seedPopulation(rng, given, 2)
	require.NoError(t, err)

	c1, c2 := crossover(pop.members[0], pop.members[1])
	for _, child := range []*individual{c1, c2} {
		requirePermutationRows(t, &child.grid)
		for cell := 0; cell < sudoku.Cells; cell++ {
			if given[cell] != 0 {
				require.Equal(t, given[cell], child.grid[cell], "given at cell %d moved", cell)
			}
		}
	}
	// Parents are untouched by the crossover.
	requirePermutationRows(t, &pop.members[0].grid)
	requirePermutationRows(t, &pop.members[1].grid)
}

func TestTournamentPrefersFitter(t *testing.T) {
	rng := newTestRNG(1)
	weak := &individual{fitness: 0.2}
	strong := &individual{fitness: 0.9}

	// With two members both always enter, so the stronger always wins.
	for i := 0; i < 10; i++ {
		require.Same(t, strong, tournament(rng, []*individual{weak, strong}))
	}
	require.Same(t, weak, tournament(rng, []*individual{weak}))
}

func TestSwapMutate(t *testing.T) {
	rng := newTestRNG(8)
	var given sudoku.Grid
	pop, err := seedPopulation(rng, given, 1)
	require.NoError(t, err)
	ind := pop.members[0]
	before := ind.grid

	// Rate 0 never fires.
	require.False(t, swapMutate(rng, ind, 0, &given))
	require.Equal(t, before, ind.grid)

	// Rate 1 always fires and swaps two distinct values in one row.
	require.True(t, swapMutate(rng, ind, 1, &given))
	require.NotEqual(t, before, ind.grid)
	requirePermutationRows(t, &ind.grid)
}

func TestSwapMutateSkipsPinnedRows(t *testing.T) {
	// With at most one mutable column per row there is nothing to
	// swap, whatever the rate.
	g := mustParse(t, easySolution)
	given := g
	given[sudoku.Index(4, 4)] = 0

	rng := newTestRNG(2)
	ind := &individual{grid: g}
	require.False(t, swapMutate(rng, ind, 1, &given))
	require.Equal(t, g, ind.grid)
}

func TestScrambleMutate(t *testing.T) {
	rng := newTestRNG(4)
	var given sudoku.Grid
	pop, err := seedPopulation(rng, given, 1)
	require.NoError(t, err)
	ind := pop.members[0]

	require.False(t, scrambleMutate(rng, ind, 0, &given))
	require.True(t, scrambleMutate(rng, ind, 1, &given))
	requirePermutationRows(t, &ind.grid)
}

func TestConstrainedMutate(t *testing.T) {
	rng := newTestRNG(6)
	var given sudoku.Grid
	pop, err := seedPopulation(rng, given, 1)
	require.NoError(t, err)
	ind := pop.members[0]

	require.False(t, constrainedMutate(rng, ind, 0, &given))
	require.True(t, constrainedMutate(rng, ind, 1, &given))
	requirePermutationRows(t, &ind.grid)
}

func TestConstrainedMutateKeepsGivens(t *testing.T) {
	rng := newTestRNG(12)
	given := mustParse(t, easyPuzzle)
	pop, err := seedPopulation(rng, given, 1)
	require.NoError(t, err)
	ind := pop.members[0]

	for i := 0; i < 20; i++ {
		constrainedMutate(rng, ind, 1, &given)
	}
	requirePermutationRows(t, &ind.grid)
	for cell := 0; cell < sudoku.Cells; cell++ {
		if given[cell] != 0 {
			require.Equal(t, given[cell], ind.grid[cell])
		}
	}
}

func TestMutableColumns(t *testing.T) {
	given := mustParse(t, easyPuzzle)
	require.Equal(t, []int{2, 3, 5, 6, 7, 8}, mutableColumns(&given, 0))

	full := mustParse(t, easySolution)
	require.Empty(t, mutableColumns(&full, 0))
}
