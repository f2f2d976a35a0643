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
	"errors"
	"fmt"
)

/*

Errors

*/

// An Error describes a problem with a board, a requested operation,
// or the solver's own bookkeeping.  It can produce an error message
// in English, but its main function is to let callers react to the
// failed condition without parsing strings: it tells the caller
// "this thing failed to meet this condition", with supplemental
// details about the thing and the condition.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Condition ErrorCondition `json:"condition"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error is referring
// to: a caller-supplied argument, the board's constraint state, the
// input text, or the solver's internal logic.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	ArgumentScope
	BoardScope
	TextScope
	InternalScope
	MaxScope
)

// The ErrorCondition is the predicate that the scope failed to
// satisfy.  There are named predicates for the conditions the
// package can diagnose, and a "general" (arbitrary English string)
// predicate for everything else.
type ErrorCondition int

// Constants for the various error conditions.
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	TooLargeCondition
	TooSmallCondition
	DuplicateGivenCondition
	ConstraintViolationCondition
	WrongSizeCondition
	BadCharacterCondition
	CanceledCondition
	ReplayMismatchCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	RowAttribute
	ColAttribute
	ValueAttribute
	SizeAttribute
	StepAttribute
	MaxAttribute
)

// The ErrorData provides details about the thing that failed to
// meet the predicate (such as the offending cell coordinates) as
// well as the predicate itself (such as the allowed range).  Every
// item is required to be JSON-serializable so errors can be
// returned to web clients; there is no good way to make the
// compiler check that, so implementors just have to do the right
// thing.
type ErrorData []interface{}

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will produce
// an appropriate (English, non-localized) message.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case ArgumentScope:
		es = "Invalid argument: "
	case BoardScope:
		es = "Invalid board: "
	case TextScope:
		es = "Invalid grid text: "
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	switch e.Attribute {
	case RowAttribute:
		es += "Row: "
	case ColAttribute:
		es += "Column: "
	case ValueAttribute:
		es += "Value: "
	case SizeAttribute:
		es += "Size: "
	case StepAttribute:
		es += "Step: "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case TooLargeCondition:
		es += fmt.Sprintf("%v must be at most %v", nextVal(), nextVal())
	case TooSmallCondition:
		es += fmt.Sprintf("%v must be at least %v", nextVal(), nextVal())
	case DuplicateGivenCondition:
		es += fmt.Sprintf("Digit %v at row %v column %v repeats within its row, column, or box",
			nextVal(), nextVal(), nextVal())
	case ConstraintViolationCondition:
		es += fmt.Sprintf("Digit %v cannot go at row %v column %v: already present in its row, column, or box",
			nextVal(), nextVal(), nextVal())
	case WrongSizeCondition:
		es += fmt.Sprintf("Got %v cells, need %v", nextVal(), CellCount)
	case BadCharacterCondition:
		es += fmt.Sprintf("Character %q at offset %v is not a digit or blank", nextVal(), nextVal())
	case CanceledCondition:
		es += "Search stopped by consumer"
	case ReplayMismatchCondition:
		es += fmt.Sprintf("Step %v does not match the board being replayed", nextVal())
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

// IsInvalidPuzzle reports whether an error is the rejection of an
// input board that already violates the row/column/box uniqueness
// invariant.  Such boards are refused before any search starts.
func IsInvalidPuzzle(e error) bool {
	var err Error
	return errors.As(e, &err) &&
		err.Scope == BoardScope && err.Condition == DuplicateGivenCondition
}

// IsConstraintViolation reports whether an error signals a breach
// of the board invariant during search.  This is a fatal
// programming-contract failure: the solver's candidate computation
// disagreed with the board's own check, and the run must be
// abandoned rather than produce a misleading trace.
func IsConstraintViolation(e error) bool {
	var err Error
	return errors.As(e, &err) && err.Condition == ConstraintViolationCondition
}

// IsCanceled reports whether an error signals a search stopped
// early by its step consumer.
func IsCanceled(e error) bool {
	var err Error
	return errors.As(e, &err) && err.Condition == CanceledCondition
}

/*

Error constructors, used throughout the package.

*/

// rangeError returns an Error that describes an out-of-range argument.
func rangeError(attr ErrorAttribute, val int, min int, max int) Error {
	err := Error{
		Scope:     ArgumentScope,
		Attribute: attr,
		Condition: TooLargeCondition,
		Values:    ErrorData{val, max},
	}
	if val < min {
		err.Condition = TooSmallCondition
		err.Values[1] = min
	}
	return err
}

// sizeError returns an Error for input with the wrong cell count.
func sizeError(count int) Error {
	return Error{
		Scope:     ArgumentScope,
		Attribute: SizeAttribute,
		Condition: WrongSizeCondition,
		Values:    ErrorData{count},
	}
}

// invalidPuzzleError returns the Error for a board whose givens
// already conflict.
func invalidPuzzleError(row, col, value int) Error {
	return Error{
		Scope:     BoardScope,
		Condition: DuplicateGivenCondition,
		Values:    ErrorData{value, row, col},
	}
}

// violationError returns the Error for a Set that would duplicate a
// digit in a row, column, or box.
func violationError(row, col, value int) Error {
	return Error{
		Scope:     BoardScope,
		Condition: ConstraintViolationCondition,
		Values:    ErrorData{value, row, col},
	}
}

// canceledError returns the Error for a search stopped by its
// consumer.
func canceledError() Error {
	return Error{
		Scope:     ArgumentScope,
		Condition: CanceledCondition,
	}
}

// replayError returns the Error for a trace step that cannot be
// applied to the board being replayed.
func replayError(s Step) Error {
	return Error{
		Scope:     InternalScope,
		Attribute: StepAttribute,
		Condition: ReplayMismatchCondition,
		Values:    ErrorData{fmt.Sprintf("%v", s)},
	}
}
