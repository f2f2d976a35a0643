package puzzle

import (
	"encoding/json"
	"fmt"
)

/*

Step traces

The trace is the system's whole reason for being: it is the thread
the solver unwinds as it searches, and the only artifact a
presentation layer needs to re-enact the solve.  Replaying a trace
from the starting board, in order, reproduces the exact sequence of
board states the solver passed through, including every dead end
and its retraction.  Traces are append-only while the solver runs
and read-only afterward; they are never reordered or deduplicated.

*/

// A StepKind says whether a step placed a digit or took one back.
type StepKind int

// The two kinds of step.
const (
	Place StepKind = iota
	Retract
)

// stepKindNames maps kinds to their wire form.
var stepKindNames = map[StepKind]string{
	Place:   "place",
	Retract: "retract",
}

// Step kinds implement Stringer.
func (k StepKind) String() string {
	if n, ok := stepKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("<step kind %d>", int(k))
}

// MarshalJSON encodes a step kind as its name, which is what
// presentation-layer clients want to switch on.
func (k StepKind) MarshalJSON() ([]byte, error) {
	n, ok := stepKindNames[k]
	if !ok {
		return nil, Error{
			Scope:     InternalScope,
			Condition: GeneralCondition,
			Values:    ErrorData{fmt.Sprintf("unknown step kind %d", int(k))},
		}
	}
	return json.Marshal(n)
}

// UnmarshalJSON decodes a step kind from its name.
func (k *StepKind) UnmarshalJSON(bytes []byte) error {
	var n string
	if err := json.Unmarshal(bytes, &n); err != nil {
		return err
	}
	for kind, name := range stepKindNames {
		if name == n {
			*k = kind
			return nil
		}
	}
	return Error{
		Scope:     ArgumentScope,
		Attribute: StepAttribute,
		Condition: GeneralCondition,
		Values:    ErrorData{fmt.Sprintf("unknown step kind %q", n)},
	}
}

// A Step describes one atomic change the solver made: placing a
// digit in a cell or retracting it again.  Depth is the recursion
// depth at which the change occurred, which lets consumers
// distinguish forward progress from backtracking.  Steps are
// immutable once recorded.
type Step struct {
	Kind  StepKind `json:"kind"`
	Row   int      `json:"row"`
	Col   int      `json:"col"`
	Value int      `json:"value"`
	Depth int      `json:"depth"`
}

// Steps implement Stringer, mostly for test failure output.
func (s Step) String() string {
	return fmt.Sprintf("%v %d at r%dc%d (depth %d)", s.Kind, s.Value, s.Row, s.Col, s.Depth)
}

// A Trace is the ordered log of every step of a solve; insertion
// order is chronological order of the search.
type Trace []Step

// Replay applies a trace, in order, to a copy of the given starting
// board and returns the resulting board.  The input board is not
// modified.  Each Place must be legal on the replayed board and
// each Retract must take back the digit the step says it does;
// anything else means the trace does not belong to this board, and
// gives an Error.
func (t Trace) Replay(start *Board) (*Board, error) {
	b := start.Copy()
	for _, s := range t {
		switch s.Kind {
		case Place:
			if b.Get(s.Row, s.Col) != 0 {
				return nil, replayError(s)
			}
			if err := b.Set(s.Row, s.Col, s.Value); err != nil {
				return nil, err
			}
		case Retract:
			if b.Get(s.Row, s.Col) != s.Value {
				return nil, replayError(s)
			}
			b.Clear(s.Row, s.Col)
		default:
			return nil, replayError(s)
		}
	}
	return b, nil
}

/*

Results

*/

// A Status is the terminal condition of a search.  Unsolvable is
// not an error: it is a valid result for a well-formed puzzle with
// no completion, reported the same way as Solved.
type Status int

// The terminal statuses.
const (
	Unsolvable Status = iota
	Solved
)

// statusNames maps statuses to their wire form.
var statusNames = map[Status]string{
	Unsolvable: "unsolvable",
	Solved:     "solved",
}

// Statuses implement Stringer.
func (st Status) String() string {
	if n, ok := statusNames[st]; ok {
		return n
	}
	return fmt.Sprintf("<status %d>", int(st))
}

// MarshalJSON encodes a status as its name.
func (st Status) MarshalJSON() ([]byte, error) {
	n, ok := statusNames[st]
	if !ok {
		return nil, Error{
			Scope:     InternalScope,
			Condition: GeneralCondition,
			Values:    ErrorData{fmt.Sprintf("unknown status %d", int(st))},
		}
	}
	return json.Marshal(n)
}

// UnmarshalJSON decodes a status from its name.
func (st *Status) UnmarshalJSON(bytes []byte) error {
	var n string
	if err := json.Unmarshal(bytes, &n); err != nil {
		return err
	}
	for status, name := range statusNames {
		if name == n {
			*st = status
			return nil
		}
	}
	return Error{
		Scope:     ArgumentScope,
		Condition: GeneralCondition,
		Values:    ErrorData{fmt.Sprintf("unknown status %q", n)},
	}
}

// A Result is what a completed search returns: the terminal status,
// the board's values at return (the completed grid when Solved, the
// restored starting grid when Unsolvable), and the full step trace.
// The trace is an ordinary value owned by its Result; independent
// solves never share state.
type Result struct {
	Status Status `json:"status"`
	Values []int  `json:"values"`
	Trace  Trace  `json:"trace,omitempty"`
}
