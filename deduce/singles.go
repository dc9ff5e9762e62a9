package deduce

import "github.com/gridlock-xyz/go-gridlock/sudoku"

// nakedSingles fills every cell whose candidate set holds exactly one
// digit. A fill shrinks peer sets and can create new singles, so the
// scan restarts until a sweep completes without filling anything.
func (r *reducer) nakedSingles() (bool, error) {
	changed := false
	for again := true; again; {
		again = false
		for cell := 0; cell < sudoku.Cells; cell++ {
			if r.grid[cell] != 0 || r.cand[cell].count() != 1 {
				continue
			}
			if err := r.assign(cell, r.cand[cell].single()); err != nil {
				return false, err
			}
			r.stats.NakedSingles++
			changed = true
			again = true
		}
	}
	return changed, nil
}

// hiddenSingles fills, per group, any digit with exactly one candidate
// cell left. Groups are scanned in id order (rows, columns, boxes) and
// digits ascending; each find is applied immediately because it can
// invalidate later finds in the same group.
func (r *reducer) hiddenSingles() (bool, error) {
	changed := false
	for gid := 0; gid < sudoku.NumGroups; gid++ {
		for d := uint8(1); d <= sudoku.Size; d++ {
			spot, n := -1, 0
			for _, cell := range sudoku.Groups[gid] {
				if r.grid[cell] == 0 && r.cand[cell].has(d) {
					spot = cell
					n++
				}
			}
			if n == 1 {
				if err := r.assign(spot, d); err != nil {
					return false, err
				}
				r.stats.HiddenSingles++
				changed = true
			}
		}
	}
	return changed, nil
}
