package sudoku

import (
	"fmt"
	"os"
	"strings"
)

// Parse reads a grid from textual form. Whitespace is ignored; '0', '.',
// and '-' all denote an empty cell. The payload must contain exactly 81
// cells.
func Parse(s string) (Grid, error) {
	var g Grid
	n := 0
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			continue
		case r == '0' || r == '.' || r == '-':
			// empty cell, already zero
		case r >= '1' && r <= '9':
			if n < Cells {
				g[n] = uint8(r - '0')
			}
		default:
			return Grid{}, fmt.Errorf("%w: unexpected character %q at cell %d", ErrBadCell, r, n)
		}
		n++
	}
	if n != Cells {
		return Grid{}, fmt.Errorf("%w: got %d", ErrGridSize, n)
	}
	return g, nil
}

// Load reads a puzzle file: rows of digits with '-', '.', or '0' for
// empty cells, spaces and newlines ignored.
func Load(path string) (Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grid{}, fmt.Errorf("reading puzzle: %w", err)
	}
	g, err := Parse(string(data))
	if err != nil {
		return Grid{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Validate checks that every cell is in range and that no group contains
// a duplicate digit. Empty cells are ignored.
func (g Grid) Validate() error {
	for i, v := range g {
		if v > Size {
			row, col := RowCol(i)
			return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrBadCell, row, col, v)
		}
	}
	for gid := 0; gid < NumGroups; gid++ {
		var mask uint16
		for _, cell := range Groups[gid] {
			v := g[cell]
			if v == 0 {
				continue
			}
			bit := uint16(1) << v
			if mask&bit != 0 {
				return fmt.Errorf("%w: digit %d repeats in %s %d", ErrConflict, v, KindOf(gid), gid%Size)
			}
			mask |= bit
		}
	}
	return nil
}

// Format renders the grid for human reading.
func (g Grid) Format() string {
	var b strings.Builder
	b.WriteString("┌───────┬───────┬───────┐\n")
	for row := 0; row < Size; row++ {
		if row > 0 && row%BoxSize == 0 {
			b.WriteString("├───────┼───────┼───────┤\n")
		}
		b.WriteString("│")
		for col := 0; col < Size; col++ {
			if col > 0 && col%BoxSize == 0 {
				b.WriteString(" │")
			}
			if v := g.At(row, col); v == 0 {
				b.WriteString(" .")
			} else {
				fmt.Fprintf(&b, " %d", v)
			}
		}
		b.WriteString(" │\n")
	}
	b.WriteString("└───────┴───────┴───────┘")
	return b.String()
}
