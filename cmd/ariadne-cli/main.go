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

// Command-line client for the ariadne solver.  It solves grids, dumps
// step traces, re-enacts solves in the terminal, and optionally
// archives them through the storage layer.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minotaurlabs/ariadne/puzzle"
	"github.com/minotaurlabs/ariadne/storage"
)

var (
	gridFile  string // --file: read the grid from a file
	showTrace bool   // --trace: print every step after solving
	saveSolve bool   // --save: archive the solve
)

var rootCmd = &cobra.Command{
	Use:   "ariadne-cli",
	Short: "Solve Sudoku boards and replay the search",
	Long: `ariadne-cli solves 9x9 Sudoku boards with a backtracking search
that records every placement and retraction it makes, so the whole
search can be replayed move by move.

Boards are 81 characters in reading order, with '.' or '0' for an
empty cell.  Whitespace is ignored, so files may lay the grid out
one row per line.`,
	SilenceUsage: true,
}

var solveCmd = &cobra.Command{
	Use:   "solve [grid]",
	Short: "Solve a board and print the outcome",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := readBoard(args)
		if err != nil {
			return err
		}
		start := b.Copy()
		res, err := puzzle.Solve(b)
		if err != nil {
			return err
		}
		fmt.Printf("%v after %d steps\n%v", res.Status, len(res.Trace), b)
		if showTrace {
			for i, s := range res.Trace {
				fmt.Printf("%4d: %v\n", i+1, s)
			}
		}
		if saveSolve {
			if _, _, err := storage.Connect(); err != nil {
				return fmt.Errorf("can't archive: %v", err)
			}
			defer storage.Close()
			sr, err := storage.SaveSolve(start, res)
			if err != nil {
				return err
			}
			fmt.Printf("archived as %v\n", sr.SolveId)
		}
		return nil
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay [grid]",
	Short: "Solve a board and re-enact the search in the terminal",
	Long: `Replay solves the board, then animates the recorded search:
the board is redrawn in place for every placement and retraction,
dead ends included.  The delay between steps comes from --delay or
the ARIADNE_DELAY environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := readBoard(args)
		if err != nil {
			return err
		}
		start := b.Copy()
		res, err := puzzle.Solve(b)
		if err != nil {
			return err
		}
		animate(start, res.Trace, viper.GetDuration("delay"))
		fmt.Printf("%v after %d steps\n", res.Status, len(res.Trace))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&gridFile, "file", "f", "", "read the grid from a file ('-' for stdin)")
	solveCmd.Flags().BoolVarP(&showTrace, "trace", "t", false, "print every search step")
	solveCmd.Flags().BoolVarP(&saveSolve, "save", "s", false, "archive the solve in storage")
	replayCmd.Flags().DurationP("delay", "d", 50*time.Millisecond, "delay between steps")
	viper.BindPFlag("delay", replayCmd.Flags().Lookup("delay"))
	viper.SetEnvPrefix("ariadne")
	viper.AutomaticEnv()
	rootCmd.AddCommand(solveCmd, replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

/*

input

*/

// readBoard finds the grid text in the argument, the --file flag, or
// stdin, and parses it.
func readBoard(args []string) (*puzzle.Board, error) {
	var text string
	switch {
	case len(args) == 1:
		text = args[0]
	case gridFile == "-":
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		text = string(bytes)
	case gridFile != "":
		bytes, err := os.ReadFile(gridFile)
		if err != nil {
			return nil, err
		}
		text = string(bytes)
	default:
		return nil, fmt.Errorf("no grid given; pass one as an argument or with --file")
	}
	return puzzle.Parse(text)
}

/*

terminal animation

*/

// animate redraws the board in place for every step of the trace.
// It assumes an ANSI terminal.
func animate(b *puzzle.Board, t puzzle.Trace, delay time.Duration) {
	lines := strings.Count(b.String(), "\n")
	fmt.Print(b)
	for _, s := range t {
		time.Sleep(delay)
		switch s.Kind {
		case puzzle.Place:
			b.Set(s.Row, s.Col, s.Value)
		case puzzle.Retract:
			b.Clear(s.Row, s.Col)
		}
		// move the cursor back to the top of the board and redraw
		fmt.Printf("\033[%dA%v", lines, b)
	}
}
