package deduce

import (
	"fmt"
	"math/bits"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// candSet is a set of candidate digits 1-9 packed into bits 1-9 of a
// uint16, so union, intersection, and cardinality are single bitwise
// operations.
type candSet uint16

// fullSet holds all nine digits.
const fullSet candSet = 0x3FE

func (s candSet) has(d uint8) bool { return s&(1<<d) != 0 }

func (s candSet) count() int { return bits.OnesCount16(uint16(s)) }

// single returns the lone digit of a one-element set.
func (s candSet) single() uint8 {
	return uint8(bits.TrailingZeros16(uint16(s)))
}

func (s candSet) digits() []uint8 {
	out := make([]uint8, 0, s.count())
	for d := uint8(1); d <= sudoku.Size; d++ {
		if s.has(d) {
			out = append(out, d)
		}
	}
	return out
}

// reducer owns one reduction run: the working grid, the candidate
// matrix, and the running counters. Invariant: a filled cell has an
// empty candidate set and an empty cell a non-empty one; an empty set
// on an empty cell is a contradiction and aborts the run.
type reducer struct {
	grid   sudoku.Grid
	cand   [sudoku.Cells]candSet
	filled int
	stats  Stats
}

// initCandidates derives the maximal sound candidate set for every
// empty cell: all digits minus the values among its 20 peers.
func (r *reducer) initCandidates() error {
	for cell := 0; cell < sudoku.Cells; cell++ {
		if r.grid[cell] != 0 {
			continue
		}
		s := fullSet
		for _, peer := range sudoku.Peers[cell] {
			if v := r.grid[peer]; v != 0 {
				s &^= 1 << v
			}
		}
		if s == 0 {
			return contradictionAt(cell, "no candidate digit remains")
		}
		r.cand[cell] = s
	}
	return nil
}

// assign fills an empty cell with a deduced digit and removes the digit
// from the candidate sets of all 20 peers. Cells are never overwritten.
func (r *reducer) assign(cell int, d uint8) error {
	for _, peer := range sudoku.Peers[cell] {
		if r.grid[peer] == d {
			return contradictionAt(cell, fmt.Sprintf("digit %d is already placed in a peer", d))
		}
	}
	r.grid[cell] = d
	r.cand[cell] = 0
	r.filled++
	for _, peer := range sudoku.Peers[cell] {
		if _, err := r.eliminate(peer, d); err != nil {
			return err
		}
	}
	return nil
}

// eliminate removes a candidate digit from a cell and reports whether
// the set changed. Emptying the set of an unfilled cell aborts with
// ErrContradiction.
func (r *reducer) eliminate(cell int, d uint8) (bool, error) {
	s := r.cand[cell]
	if !s.has(d) {
		return false, nil
	}
	s &^= 1 << d
	r.cand[cell] = s
	if s == 0 && r.grid[cell] == 0 {
		return true, contradictionAt(cell, "no candidate digit remains")
	}
	return true, nil
}

func contradictionAt(cell int, msg string) error {
	row, col := sudoku.RowCol(cell)
	return fmt.Errorf("%w: cell (%d,%d): %s", ErrContradiction, row, col, msg)
}
