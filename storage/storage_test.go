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

package storage

import (
	"os"
	"reflect"
	"testing"

	"github.com/gomodule/redigo/redis"

	"github.com/minotaurlabs/ariadne/dbprep"
	"github.com/minotaurlabs/ariadne/puzzle"
)

// These tests need live Redis and Postgres servers, reachable at
// REDIS_URL and DATABASE_URL.  They drop and recreate the schema, so
// point DATABASE_URL at a scratch database and set
// ARIADNE_TEST_STORAGE to run them.
func openStorage(t *testing.T) {
	t.Helper()
	if os.Getenv("ARIADNE_TEST_STORAGE") == "" {
		t.Skip("Set ARIADNE_TEST_STORAGE to run storage tests")
	}
	if err := dbprep.RemoveSchema(); err != nil {
		t.Fatalf("Failed to reset schema: %v", err)
	}
	cacheId, databaseId, err := Connect()
	if err != nil {
		t.Fatalf("Failed to connect to storage: %v", err)
	}
	t.Logf("Connected to cache %q and database %q", cacheId, databaseId)
	t.Cleanup(Close)
}

const testGrid = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

// solveTestGrid produces a record-worthy solve of the test grid.
func solveTestGrid(t *testing.T) (*puzzle.Board, *puzzle.Result) {
	t.Helper()
	b, err := puzzle.Parse(testGrid)
	if err != nil {
		t.Fatalf("Failed to parse test grid: %v", err)
	}
	start := b.Copy()
	res, err := puzzle.Solve(b)
	if err != nil {
		t.Fatalf("Failed to solve test grid: %v", err)
	}
	return start, res
}

func TestSaveLoadSolve(t *testing.T) {
	openStorage(t)
	start, res := solveTestGrid(t)

	sr, err := SaveSolve(start, res)
	if err != nil {
		t.Fatalf("Failed to save solve: %v", err)
	}
	if sr.SolveId == "" || sr.Signature != testGrid {
		t.Fatalf("Saved record is malformed: %+v", sr)
	}
	if sr.Status != "solved" || sr.StepCount != len(res.Trace) {
		t.Errorf("Saved record is %v with %d steps, expected solved with %d",
			sr.Status, sr.StepCount, len(res.Trace))
	}

	// load by id, first from the cache, then from the database
	for i := 0; i < 2; i++ {
		loaded, err := LoadSolve(sr.SolveId)
		if err != nil {
			t.Fatalf("Load %d failed: %v", i+1, err)
		}
		if loaded.SolveId != sr.SolveId || !reflect.DeepEqual(loaded.Steps, sr.Steps) {
			t.Errorf("Load %d gave a different record: %+v", i+1, loaded)
		}
		// the loaded record must replay on its own board
		b, err := loaded.Board()
		if err != nil {
			t.Fatalf("Load %d gave an unparseable signature: %v", i+1, err)
		}
		if _, err := loaded.Steps.Replay(b); err != nil {
			t.Errorf("Load %d gave an unreplayable trace: %v", i+1, err)
		}
		flushCache(t)
	}
}

func TestLookupSignature(t *testing.T) {
	openStorage(t)
	start, res := solveTestGrid(t)

	if _, err := LookupSignature(testGrid); err != ErrNotFound {
		t.Errorf("Lookup before save gave %v, expected ErrNotFound", err)
	}
	sr, err := SaveSolve(start, res)
	if err != nil {
		t.Fatalf("Failed to save solve: %v", err)
	}
	// lookup from the cache, then from the database after a flush
	for i := 0; i < 2; i++ {
		found, err := LookupSignature(testGrid)
		if err != nil {
			t.Fatalf("Lookup %d failed: %v", i+1, err)
		}
		if found.SolveId != sr.SolveId {
			t.Errorf("Lookup %d found solve %v, expected %v", i+1, found.SolveId, sr.SolveId)
		}
		flushCache(t)
	}
}

func TestRecentSolves(t *testing.T) {
	openStorage(t)
	start, res := solveTestGrid(t)

	var saved []*SolveRecord
	for i := 0; i < 3; i++ {
		sr, err := SaveSolve(start, res)
		if err != nil {
			t.Fatalf("Save %d failed: %v", i+1, err)
		}
		saved = append(saved, sr)
	}
	srs, err := RecentSolves(2)
	if err != nil {
		t.Fatalf("Listing failed: %v", err)
	}
	if len(srs) != 2 {
		t.Fatalf("Listing has %d records, expected 2", len(srs))
	}
	for i, sr := range srs {
		if i > 0 && sr.Created.After(srs[i-1].Created) {
			t.Errorf("Listing is not newest first: %v before %v",
				srs[i-1].Created, sr.Created)
		}
	}
}

func TestLoadSolveNotFound(t *testing.T) {
	openStorage(t)
	if _, err := LoadSolve("00000000-0000-0000-0000-000000000000"); err != ErrNotFound {
		t.Errorf("Load of a nonexistent id gave %v, expected ErrNotFound", err)
	}
}

// flushCache empties the cache tier so the next lookup falls through
// to the database.
func flushCache(t *testing.T) {
	t.Helper()
	err := rdExecute(func(tx redis.Conn) error {
		_, err := tx.Do("FLUSHDB")
		return err
	})
	if err != nil {
		t.Fatalf("Failed to flush cache: %v", err)
	}
}
