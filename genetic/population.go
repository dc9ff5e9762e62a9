package genetic

import (
	"fmt"
	"math/bits"
	"math/rand"
	"sort"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// allDigits is the 9-bit mask of digits 1-9.
const allDigits uint16 = 0x3FE

// seedRetries bounds how often one row is rebuilt before seeding gives
// up on the puzzle.
const seedRetries = 10000

// population is the working pool of individuals for one run.
type population struct {
	members []*individual
}

// legalDigits derives, per cell, the digit mask the givens allow: the
// given itself for a fixed cell, otherwise all nine digits minus the
// values its peer givens pin down. An empty cell with no legal digit
// means the puzzle cannot be completed at all.
func legalDigits(given *sudoku.Grid) (*[sudoku.Cells]uint16, error) {
	var legal [sudoku.Cells]uint16
	for cell := 0; cell < sudoku.Cells; cell++ {
		if given[cell] != 0 {
			legal[cell] = 1 << given[cell]
			continue
		}
		m := allDigits
		for _, peer := range sudoku.Peers[cell] {
			if v := given[peer]; v != 0 {
				m &^= 1 << v
			}
		}
		if m == 0 {
			row, col := sudoku.RowCol(cell)
			return nil, fmt.Errorf("%w: cell (%d,%d) has no legal digit", ErrInvalidPuzzle, row, col)
		}
		legal[cell] = m
	}
	return &legal, nil
}

// seedPopulation builds size random individuals over the givens. Every
// row of every member is a permutation of 1..9 drawn from the legal
// lists with the givens kept in place.
func seedPopulation(rng *rand.Rand, given sudoku.Grid, size int) (*population, error) {
	legal, err := legalDigits(&given)
	if err != nil {
		return nil, err
	}
	pop := &population{members: make([]*individual, size)}
	for i := range pop.members {
		ind := &individual{grid: given}
		for row := 0; row < sudoku.Size; row++ {
			if !seedRow(rng, &ind.grid, &given, legal, row) {
				return nil, fmt.Errorf("%w: row %d", ErrSeedFailed, row)
			}
		}
		ind.updateFitness()
		pop.members[i] = ind
	}
	return pop, nil
}

// seedRow fills the empty cells of one row with random digits from the
// legal lists, retrying until the row comes out a permutation. Picking
// left to right can dead-end when the remaining digits are not legal
// for the remaining cells, so the whole row is redrawn on a dead end.
func seedRow(rng *rand.Rand, grid *sudoku.Grid, given *sudoku.Grid, legal *[sudoku.Cells]uint16, row int) bool {
	base := row * sudoku.Size
	var givenMask uint16
	for col := 0; col < sudoku.Size; col++ {
		if v := given[base+col]; v != 0 {
			givenMask |= 1 << v
		}
	}
	for attempt := 0; attempt < seedRetries; attempt++ {
		used := givenMask
		ok := true
		for col := 0; col < sudoku.Size; col++ {
			cell := base + col
			if given[cell] != 0 {
				continue
			}
			avail := legal[cell] &^ used
			if avail == 0 {
				ok = false
				break
			}
			d := randomDigit(rng, avail)
			grid[cell] = d
			used |= 1 << d
		}
		if ok {
			return true
		}
	}
	return false
}

// randomDigit picks one set bit of a nonempty digit mask uniformly.
func randomDigit(rng *rand.Rand, mask uint16) uint8 {
	n := rng.Intn(bits.OnesCount16(mask))
	for d := uint8(1); ; d++ {
		if mask&(1<<d) != 0 {
			if n == 0 {
				return d
			}
			n--
		}
	}
}

func (p *population) updateFitness() {
	for _, ind := range p.members {
		ind.updateFitness()
	}
}

// sort orders members by descending fitness. The sort is stable so
// equally fit members keep their relative order.
func (p *population) sort() {
	sort.SliceStable(p.members, func(i, j int) bool {
		return p.members[i].fitness > p.members[j].fitness
	})
}

// best returns the current front member; callers sort first.
func (p *population) best() *individual { return p.members[0] }

// fitnessSpread reports the maximum and the median fitness of the
// members. The median of an even count is the mean of the two middle
// values.
func (p *population) fitnessSpread() (maxFit, median float64) {
	vals := make([]float64, len(p.members))
	for i, ind := range p.members {
		vals[i] = ind.fitness
	}
	sort.Float64s(vals)
	maxFit = vals[len(vals)-1]
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		median = (vals[mid-1] + vals[mid]) / 2
	} else {
		median = vals[mid]
	}
	return maxFit, median
}

// solvedMember returns the first member that is a genuine solution, or
// nil.
func (p *population) solvedMember() *individual {
	for _, ind := range p.members {
		if ind.solved() {
			return ind
		}
	}
	return nil
}
