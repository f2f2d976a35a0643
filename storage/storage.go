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

// Package storage persists solve records in a two-tier store: Redis
// as a lookaside cache keyed by board signature, Postgres as the
// durable archive.  Either tier alone is enough to answer a lookup;
// the cache is rewarmed from the database on a miss.
package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/minotaurlabs/ariadne/dbprep"
)

var log = logrus.New()

// Connect prepares the database schema and opens both storage tiers.
// It returns the cache and database identifiers it connected to, for
// startup logging.
func Connect() (cacheId, databaseId string, err error) {
	// make sure the database is initialized
	if err = dbprep.EnsureSchema(); err != nil {
		err = fmt.Errorf("Couldn't initialize database: %v", err)
		return
	}

	rdInit()
	rdMutex.Lock()
	defer rdMutex.Unlock()
	cacheId, err = rdConnect()
	if err != nil {
		return
	}

	pgInit()
	databaseId, err = pgConnect()
	if err != nil {
		return
	}
	return
}

// Close shuts both storage tiers down.  Safe to call when Connect
// failed partway.
func Close() {
	rdMutex.Lock()
	defer rdMutex.Unlock()
	pgClose()
	rdClose()
}

/*

cache using Redis

*/

// Redis connection data
var (
	rdc     redis.Conn // open connection, if any
	rdUrl   string     // URL for the open connection
	rdMutex sync.Mutex // prevent concurrent connection use
)

// rdInit - look up Redis info from the environment
func rdInit() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		rdUrl = "redis://localhost:6379/"
	} else {
		rdUrl = url
	}
}

// rdConnect: connect to the given Redis URL.  Returns the
// connection id, if successful, an error otherwise.
func rdConnect() (string, error) {
	conn, err := redis.DialURL(rdUrl)
	if err != nil {
		err = fmt.Errorf("Couldn't connect to cache at %q: %v", rdUrl, err)
		return "", err
	}
	rdc = conn
	return rdUrl, nil
}

// rdClose: close the given Redis connection.
func rdClose() {
	if rdc != nil {
		rdc.Close()
		rdc = nil
	}
}

// rdExecute: execute the body with the Redis mutex and connection
// held.  Because Redis connections can go away without warning, we
// ping to make sure the connection is alive, and try to reconnect if
// not.  Errors from the body (or the reconnect) are returned to the
// caller rather than panicked, so handlers can degrade to the
// database tier when the cache is down.
func rdExecute(body func(tx redis.Conn) error) (err error) {
	rdMutex.Lock()
	defer rdMutex.Unlock()
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("Caught panic during rdExecute: %v", r)
			}
		}
	}()
	if rdc == nil {
		return fmt.Errorf("No cache connection; call Connect first")
	}
	if _, err := rdc.Do("PING"); err != nil {
		rdClose()
		if _, err = rdConnect(); err != nil {
			return fmt.Errorf("Failed to reconnect to cache at %q", rdUrl)
		}
	}
	return body(rdc)
}

/*

persistence using Postgres

*/

// Postgres connection data
var (
	pgConn  *pgx.Conn  // open database, if any
	pgUrl   string     // URL for the open connection
	pgMutex sync.Mutex // prevent concurrent connection use
)

// pgInit - look up Postgres info from the environment
func pgInit() {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		pgUrl = "postgres://localhost/ariadne?sslmode=disable"
	} else {
		pgUrl = url
	}
}

// pgConnect: Open the Postgres database.  Returns any error
// encountered during the open.
func pgConnect() (string, error) {
	conn, err := pgx.Connect(context.Background(), pgUrl)
	if err != nil {
		err = fmt.Errorf("Couldn't connect to db at %q: %v", pgUrl, err)
		return "", err
	}
	pgConn = conn
	return pgUrl, nil
}

// pgClose: close the given Postgres connection.
func pgClose() {
	if pgConn != nil {
		pgConn.Close(context.Background())
		pgConn = nil
	}
}

// pgExecute: execute the body inside a single transaction.  If the
// body errs out, then the transaction is rolled back, otherwise it's
// committed.  Errors are returned to the caller rather than
// panicked.
func pgExecute(body func(tx pgx.Tx) error) (err error) {
	pgMutex.Lock()
	defer pgMutex.Unlock()
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("Caught panic during pgExecute: %v", r)
			}
		}
	}()
	if pgConn == nil {
		return fmt.Errorf("No database connection; call Connect first")
	}
	ctx := context.Background()
	tx, err := pgConn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("Can't open a transaction against database: %v", err)
	}
	if err := body(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
