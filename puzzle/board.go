// Copyright 2024-2026 the ariadne authors.  All rights reserved.

// Package puzzle provides a model for standard 9x9 Sudoku boards
// and a backtracking solver that records every move it makes.
//
// In this package, boards are made of cells which are either empty
// (represented with a 0 value) or hold a digit between 1 and 9.
// Cells are designated by (row, col) coordinates that start at 0 and
// increase left-to-right, top-to-bottom (English reading order).
// The usual Sudoku constraint applies: no digit may appear twice in
// any row, column, or 3x3 box.
//
// For each empty cell, the implementation can compute the set of
// candidate digits the cell can take without conflicting with its
// row, column, or box.  The solver uses these candidate sets to
// drive its search, and appends a Step to its trace for every
// placement and retraction it performs, so that a presentation
// layer can replay the whole search afterwards (or watch it live).
package puzzle

/*

Boards

*/

// Geometry constants for the standard puzzle.  The package only
// models the classic 9x9 board with 3x3 boxes; callers that want
// other geometries want a different package.
const (
	SideLength = 9                       // cells per row, column, and box
	TileLength = 3                       // side of a box
	CellCount  = SideLength * SideLength // cells per board
)

// A Board is the canonical state of a 9x9 grid.  It owns no
// algorithm: it exposes mutation and constraint-membership queries
// only, and it is mutated exclusively through Set and Clear.
type Board struct {
	cells [CellCount]int
}

// NewBoard creates a Board from a slice of 81 values in reading
// order, 0 meaning an empty cell.  It gives an Error if the slice
// is the wrong length or any value is out of range.  The input is
// not checked for duplicate digits; use IsValid for that.
func NewBoard(values []int) (*Board, error) {
	if len(values) != CellCount {
		return nil, sizeError(len(values))
	}
	var b Board
	for i, v := range values {
		if v < 0 || v > SideLength {
			return nil, rangeError(ValueAttribute, v, 0, SideLength)
		}
		b.cells[i] = v
	}
	return &b, nil
}

// Get returns the digit in the given cell, 0 if the cell is empty.
func (b *Board) Get(row, col int) int {
	return b.cells[row*SideLength+col]
}

// Set writes a digit into a cell.  Writing 0 is the same as Clear.
// If the digit already appears in the cell's row, column, or box,
// the board is left untouched and a constraint-violation Error is
// returned.  Callers are expected to check candidates first, so in
// practice a non-nil return is a programming error, not a
// recoverable condition.
func (b *Board) Set(row, col, value int) error {
	if row < 0 || row >= SideLength {
		return rangeError(RowAttribute, row, 0, SideLength-1)
	}
	if col < 0 || col >= SideLength {
		return rangeError(ColAttribute, col, 0, SideLength-1)
	}
	if value < 0 || value > SideLength {
		return rangeError(ValueAttribute, value, 0, SideLength)
	}
	if value == 0 {
		b.Clear(row, col)
		return nil
	}
	if b.blocked(row, col, value) {
		return violationError(row, col, value)
	}
	b.cells[row*SideLength+col] = value
	return nil
}

// Clear empties a cell.  Clearing an already-empty cell is a no-op.
func (b *Board) Clear(row, col int) {
	b.cells[row*SideLength+col] = 0
}

// blocked reports whether placing value at (row, col) would
// duplicate a digit already assigned elsewhere in the cell's row,
// column, or box.  The cell's own current content is ignored.
func (b *Board) blocked(row, col, value int) bool {
	for i := 0; i < SideLength; i++ {
		if i != col && b.cells[row*SideLength+i] == value {
			return true
		}
		if i != row && b.cells[i*SideLength+col] == value {
			return true
		}
	}
	baseRow, baseCol := row-row%TileLength, col-col%TileLength
	for r := baseRow; r < baseRow+TileLength; r++ {
		for c := baseCol; c < baseCol+TileLength; c++ {
			if (r != row || c != col) && b.cells[r*SideLength+c] == value {
				return true
			}
		}
	}
	return false
}

// Candidates returns the digits that can legally be placed in the
// given cell: those not already present in its row, column, or box.
// A filled cell has no candidates.  The returned set is in
// ascending order and does not share storage with the board, so
// calling Candidates twice without an intervening mutation returns
// equal sets.
func (b *Board) Candidates(row, col int) intset {
	if b.cells[row*SideLength+col] != 0 {
		return intset{}
	}
	var used [SideLength + 1]bool
	for i := 0; i < SideLength; i++ {
		used[b.cells[row*SideLength+i]] = true
		used[b.cells[i*SideLength+col]] = true
	}
	baseRow, baseCol := row-row%TileLength, col-col%TileLength
	for r := baseRow; r < baseRow+TileLength; r++ {
		for c := baseCol; c < baseCol+TileLength; c++ {
			used[b.cells[r*SideLength+c]] = true
		}
	}
	cands := make(intset, 0, SideLength)
	for v := 1; v <= SideLength; v++ {
		if !used[v] {
			cands = append(cands, v)
		}
	}
	return cands
}

// IsComplete reports whether every cell holds a digit.
func (b *Board) IsComplete() bool {
	for _, v := range b.cells {
		if v == 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether no row, column, or box contains a
// duplicate digit.  It is meant to be checked once at load time;
// Set preserves validity thereafter.
func (b *Board) IsValid() bool {
	_, _, ok := b.firstDuplicate()
	return !ok
}

// firstDuplicate finds the first cell (in reading order) whose
// digit already appears earlier in its row, column, or box.  It
// reports the cell's coordinates and whether one was found.
func (b *Board) firstDuplicate() (row, col int, found bool) {
	for row = 0; row < SideLength; row++ {
		for col = 0; col < SideLength; col++ {
			v := b.cells[row*SideLength+col]
			if v != 0 && b.blocked(row, col, v) {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// Values returns the board's cell values in reading order.  The
// returned slice does not share storage with the board.
func (b *Board) Values() []int {
	vs := make([]int, CellCount)
	copy(vs, b.cells[:])
	return vs
}

// Copy returns a deep copy of a board.
func (b *Board) Copy() *Board {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// Equal reports whether two boards hold the same values.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.cells == o.cells
}

/*

Integer sets

*/

// An intset is a set of small integers, represented as a sorted
// slice.  We use intsets for candidate digit sets.
type intset []int

// contains reports whether the set holds v.
func (ps intset) contains(v int) bool {
	for _, pv := range ps {
		if pv == v {
			return true
		}
		if pv > v {
			return false
		}
	}
	return false
}
