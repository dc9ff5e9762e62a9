package deduce

import "github.com/gridlock-xyz/go-gridlock/sudoku"

// nakedSubsets applies the generalized naked pair/triple/quad rule for
// one k: within a group, k cells whose combined candidates are exactly
// k digits confine those digits to those cells, so the digits are
// removed everywhere else in the group. A union smaller than k leaves
// more cells than digits to fill them, which is a contradiction.
func (r *reducer) nakedSubsets(k int) (bool, error) {
	counter := &r.stats.PairRemovals
	switch k {
	case 3:
		counter = &r.stats.TripleRemovals
	case 4:
		counter = &r.stats.QuadRemovals
	}

	changed := false
	for gid := 0; gid < sudoku.NumGroups; gid++ {
		// Only cells carrying between 2 and k candidates can take part.
		var eligible []int
		for _, cell := range sudoku.Groups[gid] {
			if r.grid[cell] == 0 {
				if n := r.cand[cell].count(); n >= 2 && n <= k {
					eligible = append(eligible, cell)
				}
			}
		}
		if len(eligible) < k {
			continue
		}

		combo := make([]int, k)
		var walk func(start, depth int) error
		walk = func(start, depth int) error {
			if depth == k {
				return r.eliminateSubset(gid, combo, counter, &changed)
			}
			for i := start; i <= len(eligible)-(k-depth); i++ {
				combo[depth] = eligible[i]
				if err := walk(i+1, depth+1); err != nil {
					return err
				}
			}
			return nil
		}
		if err := walk(0, 0); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// eliminateSubset checks one k-combination and, when it forms a naked
// subset, strips its digits from the other cells of the group.
func (r *reducer) eliminateSubset(gid int, combo []int, counter *int, changed *bool) error {
	var union candSet
	for _, cell := range combo {
		union |= r.cand[cell]
	}
	switch n := union.count(); {
	case n < len(combo):
		return contradictionAt(combo[0], "fewer candidate digits than cells confining them")
	case n > len(combo):
		return nil
	}
	for _, cell := range sudoku.Groups[gid] {
		if r.grid[cell] != 0 || inCombo(combo, cell) {
			continue
		}
		for _, d := range union.digits() {
			removed, err := r.eliminate(cell, d)
			if err != nil {
				return err
			}
			if removed {
				*counter++
				*changed = true
			}
		}
	}
	return nil
}

func inCombo(combo []int, cell int) bool {
	for _, c := range combo {
		if c == cell {
			return true
		}
	}
	return false
}
