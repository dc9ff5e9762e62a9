package sudoku

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSolved(t *testing.T) {
	g := GenerateSolved(rand.New(rand.NewSource(1)))
	require.True(t, g.Solved())
}

func TestGenerate(t *testing.T) {
	puzzle, solution := Generate(rand.New(rand.NewSource(7)), 40)
	require.True(t, solution.Solved())
	require.Equal(t, 40, puzzle.Empties())
	require.NoError(t, puzzle.Validate())
	for i, v := range puzzle {
		if v != 0 {
			require.Equal(t, solution[i], v, "cell %d", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := GenerateSolved(rand.New(rand.NewSource(42)))
	b := GenerateSolved(rand.New(rand.NewSource(42)))
	require.Equal(t, a, b)
}
