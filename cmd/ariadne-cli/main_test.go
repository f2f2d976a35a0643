package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minotaurlabs/ariadne/puzzle"
)

const testGrid = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func TestReadBoardArgument(t *testing.T) {
	gridFile = ""
	b, err := readBoard([]string{testGrid})
	if err != nil {
		t.Fatalf("readBoard failed: %v", err)
	}
	if b.Signature() != testGrid {
		t.Errorf("readBoard gave %q", b.Signature())
	}
}

func TestReadBoardFile(t *testing.T) {
	// files may lay the grid out one row per line
	var text string
	for r := 0; r < puzzle.SideLength; r++ {
		text += testGrid[r*puzzle.SideLength:(r+1)*puzzle.SideLength] + "\n"
	}
	path := filepath.Join(t.TempDir(), "grid.txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("Failed to write grid file: %v", err)
	}
	gridFile = path
	defer func() { gridFile = "" }()
	b, err := readBoard(nil)
	if err != nil {
		t.Fatalf("readBoard failed: %v", err)
	}
	if b.Signature() != testGrid {
		t.Errorf("readBoard gave %q", b.Signature())
	}
}

func TestReadBoardMissing(t *testing.T) {
	gridFile = ""
	if _, err := readBoard(nil); err == nil {
		t.Errorf("readBoard accepted an empty invocation")
	}
}
