package deduce

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

const (
	easyPuzzle   = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	easySolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

func mustParse(t *testing.T, s string) sudoku.Grid {
	t.Helper()
	g, err := sudoku.Parse(s)
	require.NoError(t, err)
	return g
}

func TestReduceSolvesEasyPuzzle(t *testing.T) {
	res, err := Reduce(mustParse(t, easyPuzzle))
	require.NoError(t, err)
	require.Equal(t, easySolution, res.Grid.String())
	require.True(t, res.Grid.Solved())
	require.Equal(t, 51, res.Filled)
	// The cascade of naked singles does all the work here; the second
	// pass only confirms the fixed point.
	require.Equal(t, 51, res.Stats.NakedSingles)
	require.Equal(t, 2, res.Stats.Passes)
}

func TestReduceSoundOnGeneratedPuzzles(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		rng := rand.New(rand.NewSource(seed))
		puzzle, solution := sudoku.Generate(rng, 45)

		res, err := Reduce(puzzle)
		require.NoError(t, err, "seed %d", seed)
		for cell := 0; cell < sudoku.Cells; cell++ {
			if puzzle[cell] != 0 {
				require.Equal(t, puzzle[cell], res.Grid[cell],
					"seed %d cell %d: given was overwritten", seed, cell)
			} else if res.Grid[cell] != 0 {
				require.Equal(t, solution[cell], res.Grid[cell],
					"seed %d cell %d: deduced digit contradicts the solution", seed, cell)
			}
		}
	}
}

func TestReduceIdempotent(t *testing.T) {
	first, err := Reduce(mustParse(t, easyPuzzle))
	require.NoError(t, err)
	second, err := Reduce(first.Grid)
	require.NoError(t, err)
	require.Zero(t, second.Filled)
	require.Equal(t, first.Grid, second.Grid)

	rng := rand.New(rand.NewSource(11))
	puzzle, _ := sudoku.Generate(rng, 40)
	first, err = Reduce(puzzle)
	require.NoError(t, err)
	second, err = Reduce(first.Grid)
	require.NoError(t, err)
	require.Zero(t, second.Filled)
	require.Equal(t, first.Grid, second.Grid)
}

func TestReduceEmptyGridFixedPoint(t *testing.T) {
	var g sudoku.Grid
	res, err := Reduce(g)
	require.NoError(t, err)
	require.Zero(t, res.Filled)
	require.Equal(t, g, res.Grid)
	require.Equal(t, 1, res.Stats.Passes)
}

func TestReduceInvalidInput(t *testing.T) {
	// Two 4s in the first row fail validation before any deduction.
	var dup sudoku.Grid
	dup[sudoku.Index(0, 0)] = 4
	dup[sudoku.Index(0, 5)] = 4
	res, err := Reduce(dup)
	require.ErrorIs(t, err, ErrInvalidGrid)
	require.NotErrorIs(t, err, ErrContradiction)
	require.Nil(t, res)

	var bad sudoku.Grid
	bad[40] = 12
	res, err = Reduce(bad)
	require.ErrorIs(t, err, ErrInvalidGrid)
	require.Nil(t, res)
}

func TestReduceReportsContradiction(t *testing.T) {
	// No group holds a duplicate, but cell (0,8) sees 1-8 in its row
	// and 9 in its column, leaving it no candidate at all.
	var g sudoku.Grid
	for col := 0; col < 8; col++ {
		g[sudoku.Index(0, col)] = uint8(col + 1)
	}
	g[sudoku.Index(1, 8)] = 9

	res, err := Reduce(g)
	require.ErrorIs(t, err, ErrContradiction)
	require.NotErrorIs(t, err, ErrInvalidGrid)
	require.Nil(t, res)
}

func TestReduceWithPassBound(t *testing.T) {
	res, err := ReduceWith(mustParse(t, easyPuzzle), &Options{MaxPasses: 1})
	require.NoError(t, err)
	require.Equal(t, 1, res.Stats.Passes)

	res, err = Reduce(mustParse(t, easyPuzzle))
	require.NoError(t, err)
	require.LessOrEqual(t, res.Stats.Passes, DefaultOptions().MaxPasses)
}

func TestDefaultOptions(t *testing.T) {
	require.Equal(t, 729, DefaultOptions().MaxPasses)
}
