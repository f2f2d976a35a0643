// ariadne - a Sudoku solver that keeps the thread of its search.
// Copyright (C) 2024-2026 the ariadne authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

package puzzle

import (
	"strings"
	"unicode"
)

/*

Text forms of boards

Boards travel as 81-character strings in reading order, with '.' or
'0' for an empty cell, e.g.

    53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79

Whitespace (including newlines, so grids can be laid out one row
per line) is ignored on input.  Parsing is purely syntactic: a
parsed board may still fail IsValid, and it is the solver's job to
reject that with an invalid-puzzle Error before searching.

*/

// Parse reads a board from grid text.  It gives an Error if, after
// discarding whitespace, the text does not have exactly 81 cell
// characters or contains a character that is not a digit or a '.'
// blank.
func Parse(text string) (*Board, error) {
	var b Board
	count := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		var v int
		switch {
		case r == '.' || r == '0':
			v = 0
		case r >= '1' && r <= '9':
			v = int(r - '0')
		default:
			return nil, Error{
				Scope:     TextScope,
				Condition: BadCharacterCondition,
				Values:    ErrorData{string(r), i},
			}
		}
		if count < CellCount {
			b.cells[count] = v
		}
		count++
	}
	if count != CellCount {
		return nil, Error{
			Scope:     TextScope,
			Attribute: SizeAttribute,
			Condition: WrongSizeCondition,
			Values:    ErrorData{count},
		}
	}
	return &b, nil
}

// Signature returns the canonical 81-character text of a board,
// with '.' for empty cells.  Parse(b.Signature()) reproduces b, and
// equal boards have equal signatures, so the signature doubles as a
// storage and cache key.
func (b *Board) Signature() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for _, v := range b.cells {
		if v == 0 {
			sb.WriteByte('.')
		} else {
			sb.WriteByte(byte('0' + v))
		}
	}
	return sb.String()
}

// String gives a pretty-printed view of a board, with the boxes
// fenced off, for debugging and CLI output:
//
//	+-------+-------+-------+
//	| 5 3 . | . 7 . | . . . |
//	...
func (b *Board) String() string {
	var sb strings.Builder
	rule := "+-------+-------+-------+\n"
	for r := 0; r < SideLength; r++ {
		if r%TileLength == 0 {
			sb.WriteString(rule)
		}
		for c := 0; c < SideLength; c++ {
			if c%TileLength == 0 {
				sb.WriteString("| ")
			}
			if v := b.cells[r*SideLength+c]; v == 0 {
				sb.WriteString(". ")
			} else {
				sb.WriteByte(byte('0' + v))
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(rule)
	return sb.String()
}
