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
	"encoding/json"
	"fmt"
	"net/http"
)

/*

RESTful wrappers over the solver, so it's easy to build web
services that hand traces to browser-side presentation layers.

*/

// A SolveRequest carries the starting board, either as grid text
// (see Parse) or as 81 reading-order values.  Grid text wins if
// both are present.
type SolveRequest struct {
	Grid   string `json:"grid,omitempty"`
	Values []int  `json:"values,omitempty"`
}

// Board constructs the request's starting board.
func (req *SolveRequest) Board() (*Board, error) {
	if req.Grid != "" {
		return Parse(req.Grid)
	}
	return NewBoard(req.Values)
}

// SolveHandler is a POST handler that reads a JSON-encoded
// SolveRequest from the request body, solves the board, and sends
// the Result (status, final values, and full trace) as a 200
// response.  The Result is also returned to the golang caller, for
// chaining into storage.
//
// A request that can't be decoded, or a board that fails IsValid,
// gets a 400 response carrying the Error.  A constraint violation
// during search (which should never happen) gets a 500.
//
// If we can't encode the response to the client (which should also
// never happen), then the client gets an error response and the
// golang caller gets both the result and the encoding Error (as a
// signal that the client didn't get the correct response).
func SolveHandler(w http.ResponseWriter, r *http.Request) (*Result, error) {
	dec := json.NewDecoder(r.Body)
	var req SolveRequest
	if e := dec.Decode(&req); e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w)
	}
	b, e := req.Board()
	if e != nil {
		return nil, writeErrorValue(e, http.StatusBadRequest, w)
	}
	res, e := Solve(b)
	if e != nil {
		status := http.StatusInternalServerError
		if IsInvalidPuzzle(e) {
			status = http.StatusBadRequest
		}
		return nil, writeErrorValue(e, status, w)
	}
	return res, writeJSON(res, http.StatusOK, w)
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
)

// writeErrorValue sends a puzzle Error (or, for misbehaved error
// values, a general wrapper around one) back to the client with
// the given status, and returns it for the handler to return to
// its caller.
func writeErrorValue(e error, status int, w http.ResponseWriter) error {
	err, ok := e.(Error)
	if !ok {
		err = Error{
			Scope:     InternalScope,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w)
}

// writeError sends back a server error of the given type, sort of
// like http.Error, but it sends the JSON form of an appropriate
// Error.
func writeError(et handlerError, ed ErrorData, w http.ResponseWriter) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     ArgumentScope,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Condition: GeneralCondition,
			Values:    ed,
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller: the encoding Error if encoding
// failed, the sent Error if the response was itself an Error, and
// nil otherwise.
func writeJSON(obj interface{}, status int, w http.ResponseWriter) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr {
			// We just failed to encode an Error.  This should never
			// happen; if it did, the JSON encoder is almost
			// certainly dead, so pseudo-encode the error by hand by
			// sending the Error's summary as a quoted string.
			status = http.StatusInternalServerError
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			return writeError(responseEncodingError, ErrorData{e.Error()}, w)
		}
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
