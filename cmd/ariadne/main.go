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

// The ariadne server solves boards over HTTP and archives the step
// traces, so browser-side animations can fetch and re-enact old
// solves.
//
// Endpoints:
//
//	POST /api/solve        solve a board, return status and trace
//	GET  /api/solves       list recent solve records
//	GET  /api/solves/{id}  fetch one solve record
//
// Storage is optional: without reachable Redis and Postgres the
// server still solves, it just doesn't remember.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/minotaurlabs/ariadne/puzzle"
	"github.com/minotaurlabs/ariadne/storage"
)

var (
	log = logrus.New()

	// whether the storage tiers came up at startup
	storing bool
)

func main() {
	// local development reads settings from a .env file; absence of
	// the file is the normal production case
	godotenv.Load()
	if os.Getenv("ARIADNE_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.WithError(err).Warn("Running without storage")
	} else {
		storing = true
		defer storage.Close()
		log.WithFields(logrus.Fields{
			"cache":    cacheId,
			"database": databaseId,
		}).Info("Connected to storage")
	}
	shutdownOnSignal()

	http.HandleFunc("/api/solve", solveHandler)
	http.HandleFunc("/api/solves", listHandler)
	http.HandleFunc("/api/solves/", recordHandler)

	port := os.Getenv("ARIADNE_PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}
	log.WithField("addr", port).Info("Listening")
	if err := http.ListenAndServe(port, nil); err != nil {
		log.WithError(err).Fatal("Listener failure")
	}
}

// shutdownOnSignal closes storage cleanly when the platform stops
// the process.
func shutdownOnSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-c
		log.WithField("signal", s).Info("Shutting down")
		if storing {
			storage.Close()
		}
		os.Exit(0)
	}()
}

/*

handlers

*/

// solveHandler solves the posted board and, when storage is up,
// archives the trace.  The response to the client is complete either
// way; the solve id travels in a header so the body stays a plain
// solver Result.
func solveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	logger := log.WithField("path", r.URL.Path)

	// peek at the request so the board survives for storage; the
	// handler consumes the body
	var req puzzle.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithError(err).Debug("Undecodable solve request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := req.Board()
	if err != nil {
		writeErrorJSON(w, err, http.StatusBadRequest)
		return
	}
	start := b.Copy()

	res, err := puzzle.Solve(b)
	if err != nil {
		logger.WithError(err).Debug("Solve rejected")
		status := http.StatusInternalServerError
		if puzzle.IsInvalidPuzzle(err) {
			status = http.StatusBadRequest
		}
		writeErrorJSON(w, err, status)
		return
	}
	logger.WithFields(logrus.Fields{
		"status": res.Status,
		"steps":  len(res.Trace),
	}).Info("Solved")

	if storing {
		if sr, err := storage.SaveSolve(start, res); err != nil {
			logger.WithError(err).Warn("Couldn't archive solve")
		} else {
			w.Header().Set("X-Ariadne-Solve-Id", sr.SolveId)
		}
	}
	writeJSON(w, res, http.StatusOK)
}

// listHandler lists recent solve records, newest first.  The limit
// query parameter caps the listing, default 20, max 100.
func listHandler(w http.ResponseWriter, r *http.Request) {
	if !requireStorage(w) {
		return
	}
	limit := 20
	if arg := r.URL.Query().Get("limit"); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > 100 {
		limit = 100
	}
	srs, err := storage.RecentSolves(limit)
	if err != nil {
		log.WithError(err).Error("Couldn't list solves")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if srs == nil {
		srs = []*storage.SolveRecord{}
	}
	writeJSON(w, srs, http.StatusOK)
}

// recordHandler fetches one solve record by id.
func recordHandler(w http.ResponseWriter, r *http.Request) {
	if !requireStorage(w) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/solves/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	sr, err := storage.LoadSolve(id)
	if err == storage.ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.WithError(err).Error("Couldn't load solve")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, sr, http.StatusOK)
}

/*

utilities

*/

// requireStorage answers for the record endpoints when the server
// came up without its storage tiers.
func requireStorage(w http.ResponseWriter) bool {
	if !storing {
		http.Error(w, "storage is not available", http.StatusServiceUnavailable)
	}
	return storing
}

// writeJSON sends obj to the client.
func writeJSON(w http.ResponseWriter, obj interface{}, status int) {
	bytes, err := json.Marshal(obj)
	if err != nil {
		log.WithError(err).Error("Couldn't encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

// writeErrorJSON sends a solver Error to the client in its JSON
// form, with the message filled in.
func writeErrorJSON(w http.ResponseWriter, e error, status int) {
	if err, ok := e.(puzzle.Error); ok {
		err.Message = err.Error()
		writeJSON(w, err, status)
		return
	}
	http.Error(w, e.Error(), status)
}
