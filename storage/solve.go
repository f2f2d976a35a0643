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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/minotaurlabs/ariadne/puzzle"
)

/*

solve records

*/

// ErrNotFound is returned by lookups for records that are in neither
// storage tier.
var ErrNotFound = errors.New("no such solve record")

// Redis key prefixes.  The signature key holds the solve id of the
// latest solve of that board; the solve key holds the JSON form of
// the record itself.
const (
	sigKeyPrefix   = "ariadne:SIG:"
	solveKeyPrefix = "ariadne:SOLVE:"
)

// A SolveRecord is the stored form of one completed solve.  It is
// JSON serializable so it can go into the cache as well as the
// database.  The starting board is kept as its 81-character
// signature, so a record is self-contained: parse the signature,
// replay the steps, and the whole search comes back.
type SolveRecord struct {
	SolveId   string       `json:"solveId"`   // unique id, assigned at save
	Signature string       `json:"signature"` // starting board text
	Status    string       `json:"status"`    // terminal status name
	StepCount int          `json:"stepCount"` // len(Steps), for listings
	Steps     puzzle.Trace `json:"steps"`     // the full trace
	Created   time.Time    `json:"created"`   // save time, UTC
}

// Board reconstructs the record's starting board.
func (sr *SolveRecord) Board() (*puzzle.Board, error) {
	return puzzle.Parse(sr.Signature)
}

// SaveSolve stores the result of solving the given board in both
// tiers and returns the new record.  A cache failure is not fatal as
// long as the database write succeeds.
func SaveSolve(b *puzzle.Board, res *puzzle.Result) (*SolveRecord, error) {
	sr := &SolveRecord{
		SolveId:   uuid.NewString(),
		Signature: b.Signature(),
		Status:    res.Status.String(),
		StepCount: len(res.Trace),
		Steps:     res.Trace,
		Created:   time.Now().UTC(),
	}
	steps, err := json.Marshal(sr.Steps)
	if err != nil {
		return nil, fmt.Errorf("Couldn't encode steps: %v", err)
	}
	err = pgExecute(func(tx pgx.Tx) error {
		_, err := tx.Exec(pgCtx(),
			`insert into solves (solve_id, signature, status, step_count, steps, created)
			 values ($1, $2, $3, $4, $5, $6)`,
			sr.SolveId, sr.Signature, sr.Status, sr.StepCount, steps, sr.Created)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("Couldn't save solve %v: %v", sr.SolveId, err)
	}
	cacheSolve(sr)
	return sr, nil
}

// LoadSolve finds a record by its solve id, looking in the cache
// first and falling back to the database.  A database hit rewarms
// the cache.
func LoadSolve(solveId string) (*SolveRecord, error) {
	if sr := cachedSolve(solveKeyPrefix + solveId); sr != nil {
		return sr, nil
	}
	sr, err := querySolve(`where solve_id = $1`, solveId)
	if err != nil {
		return nil, err
	}
	cacheSolve(sr)
	return sr, nil
}

// LookupSignature finds the latest record for a starting board,
// looking in the cache first and falling back to the database.  A
// database hit rewarms the cache.
func LookupSignature(sig string) (*SolveRecord, error) {
	var solveId string
	err := rdExecute(func(tx redis.Conn) error {
		id, err := redis.String(tx.Do("GET", sigKeyPrefix+sig))
		if err != nil {
			return err
		}
		solveId = id
		return nil
	})
	if err == nil {
		if sr := cachedSolve(solveKeyPrefix + solveId); sr != nil {
			return sr, nil
		}
	}
	sr, err := querySolve(`where signature = $1 order by created desc limit 1`, sig)
	if err != nil {
		return nil, err
	}
	cacheSolve(sr)
	return sr, nil
}

// RecentSolves returns up to limit records, newest first.  It reads
// the database only: listings are not worth cache churn.
func RecentSolves(limit int) ([]*SolveRecord, error) {
	var srs []*SolveRecord
	err := pgExecute(func(tx pgx.Tx) error {
		rows, err := tx.Query(pgCtx(),
			`select solve_id, signature, status, step_count, steps, created
			 from solves order by created desc limit $1`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			sr, err := scanSolve(rows)
			if err != nil {
				return err
			}
			srs = append(srs, sr)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("Couldn't list solves: %v", err)
	}
	return srs, nil
}

/*

helpers

*/

// querySolve runs one single-record query against the solves table.
func querySolve(where string, arg interface{}) (*SolveRecord, error) {
	var sr *SolveRecord
	err := pgExecute(func(tx pgx.Tx) error {
		rows, err := tx.Query(pgCtx(),
			`select solve_id, signature, status, step_count, steps, created
			 from solves `+where, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return err
			}
			return ErrNotFound
		}
		sr, err = scanSolve(rows)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Couldn't load solve: %v", err)
	}
	return sr, nil
}

// scanSolve decodes one row of the solves table.
func scanSolve(rows pgx.Rows) (*SolveRecord, error) {
	var sr SolveRecord
	var steps []byte
	if err := rows.Scan(&sr.SolveId, &sr.Signature, &sr.Status,
		&sr.StepCount, &steps, &sr.Created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(steps, &sr.Steps); err != nil {
		return nil, fmt.Errorf("Couldn't decode steps of solve %v: %v", sr.SolveId, err)
	}
	return &sr, nil
}

// cacheSolve writes a record through to the cache.  Cache failures
// are logged and swallowed: the database already has the record.
func cacheSolve(sr *SolveRecord) {
	bytes, err := json.Marshal(sr)
	if err != nil {
		return
	}
	err = rdExecute(func(tx redis.Conn) error {
		if err := tx.Send("SET", solveKeyPrefix+sr.SolveId, bytes); err != nil {
			return err
		}
		if err := tx.Send("SET", sigKeyPrefix+sr.Signature, sr.SolveId); err != nil {
			return err
		}
		return tx.Flush()
	})
	if err != nil {
		log.WithError(err).WithField("solve", sr.SolveId).Warn("Couldn't cache solve")
	}
}

// cachedSolve reads a record from the cache, nil on any miss or
// failure.
func cachedSolve(key string) *SolveRecord {
	var sr SolveRecord
	err := rdExecute(func(tx redis.Conn) error {
		bytes, err := redis.Bytes(tx.Do("GET", key))
		if err != nil {
			return err
		}
		return json.Unmarshal(bytes, &sr)
	})
	if err != nil {
		return nil
	}
	return &sr
}

// pgCtx is the context for storage-internal database calls.
func pgCtx() context.Context {
	return context.Background()
}
