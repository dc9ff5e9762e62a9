package genetic

import (
	"math/rand"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// mutationAttempts bounds the search for a usable row inside one
// mutation trigger.
const mutationAttempts = 50

// tournament draws two distinct members at random and returns the
// fitter one; the first drawn wins ties.
func tournament(rng *rand.Rand, members []*individual) *individual {
	if len(members) == 1 {
		return members[0]
	}
	i := rng.Intn(len(members))
	j := rng.Intn(len(members) - 1)
	if j >= i {
		j++
	}
	winner := members[i]
	if members[j].fitness > winner.fitness {
		winner = members[j]
	}
	return winner
}

// crossover applies cycle crossover row by row: row positions are
// grouped into cycles by chasing each value's position across the two
// parent rows, and alternate cycles come from alternate parents. A
// given occupies the same position in both parents, forms a singleton
// cycle, and so survives in both children; every child row remains a
// permutation. Children are returned with stale fitness.
func crossover(p1, p2 *individual) (*individual, *individual) {
	c1 := &individual{grid: p1.grid}
	c2 := &individual{grid: p2.grid}
	for row := 0; row < sudoku.Size; row++ {
		lo, hi := row*sudoku.Size, (row+1)*sudoku.Size
		cxRow(c1.grid[lo:hi], c2.grid[lo:hi], p1.grid[lo:hi], p2.grid[lo:hi])
	}
	return c1, c2
}

// cxRow crosses one pair of parent rows a and b into dst1 and dst2.
func cxRow(dst1, dst2, a, b []uint8) {
	// pos[v] is the position of digit v in b.
	var pos [sudoku.Size + 1]int
	for i, v := range b {
		pos[v] = i
	}
	var visited [sudoku.Size]bool
	swap := false
	for start := range a {
		if visited[start] {
			continue
		}
		for i := start; !visited[i]; i = pos[a[i]] {
			visited[i] = true
			if swap {
				dst1[i], dst2[i] = b[i], a[i]
			} else {
				dst1[i], dst2[i] = a[i], b[i]
			}
		}
		swap = !swap
	}
}

// A mutator perturbs an individual in place with probability rate and
// reports whether it changed anything. Given cells never move.
type mutator func(rng *rand.Rand, ind *individual, rate float64, given *sudoku.Grid) bool

// swapMutate exchanges the values of two mutable columns in one random
// row.
func swapMutate(rng *rand.Rand, ind *individual, rate float64, given *sudoku.Grid) bool {
	if rng.Float64() >= rate {
		return false
	}
	for attempt := 0; attempt < mutationAttempts; attempt++ {
		row := rng.Intn(sudoku.Size)
		cols := mutableColumns(given, row)
		if len(cols) < 2 {
			continue
		}
		i := rng.Intn(len(cols))
		j := rng.Intn(len(cols) - 1)
		if j >= i {
			j++
		}
		from, to := row*sudoku.Size+cols[i], row*sudoku.Size+cols[j]
		ind.grid[from], ind.grid[to] = ind.grid[to], ind.grid[from]
		return true
	}
	return false
}

// scrambleMutate reshuffles all values across the mutable columns of
// one random row.
func scrambleMutate(rng *rand.Rand, ind *individual, rate float64, given *sudoku.Grid) bool {
	if rng.Float64() >= rate {
		return false
	}
	for attempt := 0; attempt < mutationAttempts; attempt++ {
		row := rng.Intn(sudoku.Size)
		cols := mutableColumns(given, row)
		if len(cols) < 2 {
			continue
		}
		base := row * sudoku.Size
		vals := make([]uint8, len(cols))
		for i, col := range cols {
			vals[i] = ind.grid[base+col]
		}
		rng.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
		for i, col := range cols {
			ind.grid[base+col] = vals[i]
		}
		return true
	}
	return false
}

// constrainedMutate picks a random mutable cell, draws a digit the
// givens still allow there, and swaps it in from a mutable column of
// the same row currently holding that digit.
func constrainedMutate(rng *rand.Rand, ind *individual, rate float64, given *sudoku.Grid) bool {
	if rng.Float64() >= rate {
		return false
	}
	for attempt := 0; attempt < mutationAttempts; attempt++ {
		row := rng.Intn(sudoku.Size)
		col := rng.Intn(sudoku.Size)
		cell := row*sudoku.Size + col
		if given[cell] != 0 {
			continue
		}
		var pinned uint16
		for _, peer := range sudoku.Peers[cell] {
			if v := given[peer]; v != 0 {
				pinned |= 1 << v
			}
		}
		allowed := allDigits &^ pinned
		if allowed == 0 {
			continue
		}
		target := randomDigit(rng, allowed)
		base := row * sudoku.Size
		var swaps []int
		for c := 0; c < sudoku.Size; c++ {
			if c != col && given[base+c] == 0 && ind.grid[base+c] == target {
				swaps = append(swaps, c)
			}
		}
		if len(swaps) == 0 {
			continue
		}
		to := base + swaps[rng.Intn(len(swaps))]
		ind.grid[cell], ind.grid[to] = ind.grid[to], ind.grid[cell]
		return true
	}
	return false
}

// mutableColumns lists the columns of one row not fixed by a given.
func mutableColumns(given *sudoku.Grid, row int) []int {
	cols := make([]int, 0, sudoku.Size)
	for col := 0; col < sudoku.Size; col++ {
		if given[row*sudoku.Size+col] == 0 {
			cols = append(cols, col)
		}
	}
	return cols
}
