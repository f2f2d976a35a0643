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

// ariadne-view re-enacts a solve in a window: it solves the given
// board, then plays the recorded search back step by step, dead ends
// and all.
//
// Controls:
//
//	space       pause / resume
//	right       single step while paused
//	up / down   faster / slower
//	r           restart from the beginning
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/minotaurlabs/ariadne/puzzle"
)

const (
	cellSize     = 48
	margin       = 24
	gridSize     = cellSize * puzzle.SideLength
	screenWidth  = gridSize + 2*margin
	screenHeight = gridSize + 2*margin + 40 // room for the status line
)

var (
	placeFlash   = color.RGBA{R: 0xc0, G: 0xe8, B: 0xc0, A: 0xff}
	retractFlash = color.RGBA{R: 0xe8, G: 0xc0, B: 0xc0, A: 0xff}
	lineColor    = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	heavyColor   = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
)

// A Game plays a trace forward over its board at a chosen speed.
type Game struct {
	start  *puzzle.Board // the givens, never touched
	board  *puzzle.Board // the replayed position
	trace  puzzle.Trace
	status puzzle.Status

	pos    int  // steps applied so far
	paused bool
	speed  int // steps per second
	elapse int // ticks since the last applied step
}

func newGame(start *puzzle.Board, res *puzzle.Result) *Game {
	return &Game{
		start:  start,
		board:  start.Copy(),
		trace:  res.Trace,
		status: res.Status,
		speed:  20,
	}
}

// advance applies the next trace step to the board.
func (g *Game) advance() {
	if g.pos >= len(g.trace) {
		return
	}
	s := g.trace[g.pos]
	switch s.Kind {
	case puzzle.Place:
		g.board.Set(s.Row, s.Col, s.Value)
	case puzzle.Retract:
		g.board.Clear(s.Row, s.Col)
	}
	g.pos++
}

// restart rewinds the replay to the givens.
func (g *Game) restart() {
	g.board = g.start.Copy()
	g.pos = 0
	g.elapse = 0
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && g.paused {
		g.advance()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && g.speed < ebiten.TPS() {
		g.speed *= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && g.speed > 1 {
		g.speed /= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if g.paused || g.pos >= len(g.trace) {
		return nil
	}
	g.elapse++
	if g.elapse >= ebiten.TPS()/g.speed {
		g.elapse = 0
		g.advance()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	g.drawFlash(screen)
	g.drawGrid(screen)
	g.drawDigits(screen)
	g.drawStatus(screen)
}

// drawFlash highlights the cell the most recent step touched.
func (g *Game) drawFlash(screen *ebiten.Image) {
	if g.pos == 0 {
		return
	}
	s := g.trace[g.pos-1]
	clr := placeFlash
	if s.Kind == puzzle.Retract {
		clr = retractFlash
	}
	x := float32(margin + s.Col*cellSize)
	y := float32(margin + s.Row*cellSize)
	vector.DrawFilledRect(screen, x, y, cellSize, cellSize, clr, false)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	for i := 0; i <= puzzle.SideLength; i++ {
		clr := lineColor
		width := float32(1)
		if i%puzzle.TileLength == 0 {
			clr = heavyColor
			width = 3
		}
		off := float32(margin + i*cellSize)
		vector.StrokeLine(screen, margin, off, margin+gridSize, off, width, clr, false)
		vector.StrokeLine(screen, off, margin, off, margin+gridSize, width, clr, false)
	}
}

func (g *Game) drawDigits(screen *ebiten.Image) {
	for r := 0; r < puzzle.SideLength; r++ {
		for c := 0; c < puzzle.SideLength; c++ {
			v := g.board.Get(r, c)
			if v == 0 {
				continue
			}
			// the debug font is 6x16; nudge toward the cell center
			x := margin + c*cellSize + cellSize/2 - 3
			y := margin + r*cellSize + cellSize/2 - 8
			ebitenutil.DebugPrintAt(screen, fmt.Sprint(v), x, y)
		}
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	state := "running"
	switch {
	case g.paused:
		state = "paused"
	case g.pos >= len(g.trace):
		state = g.status.String()
	}
	msg := fmt.Sprintf("step %d/%d  %d steps/s  %s", g.pos, len(g.trace), g.speed, state)
	ebitenutil.DebugPrintAt(screen, msg, margin, margin+gridSize+12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	gridArg := flag.String("grid", "", "board as 81 characters ('.' or '0' for blanks)")
	fileArg := flag.String("file", "", "read the board from a file")
	flag.Parse()

	var text string
	switch {
	case *gridArg != "":
		text = *gridArg
	case *fileArg != "":
		bytes, err := os.ReadFile(*fileArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		text = string(bytes)
	default:
		fmt.Fprintln(os.Stderr, "pass a board with -grid or -file")
		os.Exit(1)
	}

	start, err := puzzle.Parse(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	res, err := puzzle.Solve(start.Copy())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ariadne")
	if err := ebiten.RunGame(newGame(start, res)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
