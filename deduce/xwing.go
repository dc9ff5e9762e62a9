package deduce

import (
	"math/bits"

	"github.com/gridlock-xyz/go-gridlock/sudoku"
)

// xWing removes a digit from two columns wherever exactly two rows
// carry the digit in exactly those two columns, then repeats with rows
// and columns swapped. Unlike the group-local techniques this pattern
// spans two groups at once.
func (r *reducer) xWing() (bool, error) {
	rowBased, err := r.xWingScan(true)
	if err != nil {
		return false, err
	}
	colBased, err := r.xWingScan(false)
	if err != nil {
		return false, err
	}
	return rowBased || colBased, nil
}

// xWingScan runs one orientation. With byRow set, lines are rows and
// eliminations run down the matched pair of columns; otherwise the
// roles are swapped.
func (r *reducer) xWingScan(byRow bool) (bool, error) {
	at := func(line, pos int) int {
		if byRow {
			return sudoku.Index(line, pos)
		}
		return sudoku.Index(pos, line)
	}

	changed := false
	for d := uint8(1); d <= sudoku.Size; d++ {
		// positions[line] is the mask of positions carrying d, kept
		// only when there are exactly two of them.
		var positions [sudoku.Size]uint16
		for line := 0; line < sudoku.Size; line++ {
			var m uint16
			for pos := 0; pos < sudoku.Size; pos++ {
				cell := at(line, pos)
				if r.grid[cell] == 0 && r.cand[cell].has(d) {
					m |= 1 << pos
				}
			}
			if bits.OnesCount16(m) == 2 {
				positions[line] = m
			}
		}

		for a := 0; a < sudoku.Size; a++ {
			m := positions[a]
			if m == 0 {
				continue
			}
			// The rectangle needs exactly two lines sharing the pair.
			matches, second := 0, -1
			for line := 0; line < sudoku.Size; line++ {
				if positions[line] == m {
					matches++
					if line != a {
						second = line
					}
				}
			}
			if matches != 2 || second < a {
				continue
			}
			for line := 0; line < sudoku.Size; line++ {
				if line == a || line == second {
					continue
				}
				for pos := 0; pos < sudoku.Size; pos++ {
					if m&(1<<pos) == 0 {
						continue
					}
					removed, err := r.eliminate(at(line, pos), d)
					if err != nil {
						return false, err
					}
					if removed {
						r.stats.XWingRemovals++
						changed = true
					}
				}
			}
		}
	}
	return changed, nil
}
