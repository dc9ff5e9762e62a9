package sudoku

// GroupKind identifies the constraint type of a group.
type GroupKind uint8

const (
	RowGroup GroupKind = iota
	ColumnGroup
	BoxGroup
)

func (k GroupKind) String() string {
	switch k {
	case RowGroup:
		return "row"
	case ColumnGroup:
		return "column"
	case BoxGroup:
		return "box"
	}
	return "unknown"
}

// NumGroups is the number of constraint groups: 9 rows, 9 columns, 9 boxes.
const NumGroups = 3 * Size

// NumPeers is the number of distinct cells sharing a group with a given
// cell: 8 row peers + 8 column peers + 4 box peers outside both.
const NumPeers = 20

// Static topology, built once at package init and read-only afterwards.
// Group ids 0-8 are rows, 9-17 columns, 18-26 boxes.
var (
	// Groups lists the 9 cell indices of each constraint group.
	Groups [NumGroups][Size]int

	// CellGroups lists, per cell, the ids of the row, column, and box
	// group that contain it (in that order).
	CellGroups [Cells][3]int

	// Peers lists, per cell, the 20 other cells sharing a group with it.
	Peers [Cells][NumPeers]int
)

// KindOf returns the constraint type of a group id.
func KindOf(group int) GroupKind {
	return GroupKind(group / Size)
}

func init() {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			Groups[row][col] = Index(row, col)
		}
	}
	for col := 0; col < Size; col++ {
		for row := 0; row < Size; row++ {
			Groups[Size+col][row] = Index(row, col)
		}
	}
	for box := 0; box < Size; box++ {
		top, left := (box/BoxSize)*BoxSize, (box%BoxSize)*BoxSize
		n := 0
		for r := top; r < top+BoxSize; r++ {
			for c := left; c < left+BoxSize; c++ {
				Groups[2*Size+box][n] = Index(r, c)
				n++
			}
		}
	}

	for cell := 0; cell < Cells; cell++ {
		row, col := RowCol(cell)
		CellGroups[cell] = [3]int{row, Size + col, 2*Size + BoxIndex(row, col)}
	}

	for cell := 0; cell < Cells; cell++ {
		var seen [Cells]bool
		n := 0
		for _, gid := range CellGroups[cell] {
			for _, other := range Groups[gid] {
				if other != cell && !seen[other] {
					seen[other] = true
					Peers[cell][n] = other
					n++
				}
			}
		}
	}
}
