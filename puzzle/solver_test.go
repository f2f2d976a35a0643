package puzzle

import (
	"reflect"
	"testing"
)

/*

Test Values

The solvable grids and their solutions are newspaper puzzles of
increasing difficulty; the unsolvable ones are constructed so that
the contradiction is either visible immediately or only after a
couple of guesses.

*/

var (
	// a gentle newspaper puzzle
	easyStartValues = []int{
		4, 0, 0, 0, 0, 3, 5, 0, 2,
		0, 0, 9, 5, 0, 6, 3, 4, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 8,
		0, 0, 0, 0, 3, 4, 8, 6, 0,
		0, 0, 4, 6, 0, 5, 2, 0, 0,
		0, 2, 8, 7, 9, 0, 0, 0, 0,
		9, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 8, 7, 3, 0, 2, 9, 0, 0,
		5, 0, 2, 9, 0, 0, 0, 0, 6,
	}
	easySolvedValues = []int{
		4, 6, 1, 8, 7, 3, 5, 9, 2,
		8, 7, 9, 5, 2, 6, 3, 4, 1,
		2, 5, 3, 4, 1, 9, 6, 7, 8,
		7, 1, 5, 2, 3, 4, 8, 6, 9,
		3, 9, 4, 6, 8, 5, 2, 1, 7,
		6, 2, 8, 7, 9, 1, 4, 3, 5,
		9, 4, 6, 1, 5, 8, 7, 2, 3,
		1, 8, 7, 3, 6, 2, 9, 5, 4,
		5, 3, 2, 9, 4, 7, 1, 8, 6,
	}
	// unique solution, but at least one guess is required
	guessStartValues = []int{
		9, 0, 0, 4, 5, 0, 0, 0, 8,
		0, 2, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 1, 7, 2, 4, 0, 0,
		0, 7, 9, 0, 0, 0, 6, 8, 0,
		2, 0, 0, 0, 0, 0, 0, 0, 5,
		0, 4, 3, 0, 0, 0, 2, 7, 0,
		0, 0, 8, 3, 2, 5, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 6, 0,
		4, 0, 0, 0, 1, 6, 0, 0, 3,
	}
	guessSolvedValues = []int{
		9, 6, 1, 4, 5, 3, 7, 2, 8,
		7, 2, 4, 6, 8, 9, 5, 3, 1,
		8, 3, 5, 1, 7, 2, 4, 9, 6,
		5, 7, 9, 2, 3, 1, 6, 8, 4,
		2, 8, 6, 9, 4, 7, 3, 1, 5,
		1, 4, 3, 5, 6, 8, 2, 7, 9,
		6, 1, 8, 3, 2, 5, 9, 4, 7,
		3, 5, 7, 8, 9, 4, 1, 6, 2,
		4, 9, 2, 7, 1, 6, 8, 5, 3,
	}
	// unique solution with empty first and last rows
	openRowsStartValues = []int{
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		9, 0, 0, 5, 0, 7, 0, 3, 0,
		0, 0, 0, 1, 0, 0, 6, 0, 7,
		0, 4, 0, 0, 6, 0, 0, 8, 2,
		6, 7, 0, 0, 0, 0, 0, 1, 3,
		3, 8, 0, 0, 1, 0, 0, 9, 0,
		7, 0, 5, 0, 0, 8, 0, 0, 0,
		0, 2, 0, 3, 0, 9, 0, 0, 8,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	openRowsSolvedValues = []int{
		1, 5, 7, 8, 3, 6, 9, 2, 4,
		9, 6, 4, 5, 2, 7, 8, 3, 1,
		2, 3, 8, 1, 9, 4, 6, 5, 7,
		5, 4, 1, 9, 6, 3, 7, 8, 2,
		6, 7, 9, 4, 8, 2, 5, 1, 3,
		3, 8, 2, 7, 1, 5, 4, 9, 6,
		7, 1, 5, 2, 4, 8, 3, 6, 9,
		4, 2, 6, 3, 5, 9, 1, 7, 8,
		8, 9, 3, 6, 7, 1, 2, 4, 5,
	}
	// valid at load, but row 0's last cell has no candidate at all:
	// the row blocks 1-8 and the 9 in column 8 blocks the rest
	noCandidateValues = []int{
		1, 2, 3, 4, 5, 6, 7, 8, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 9,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	// valid at load and every cell has candidates, but the three
	// open cells of row 0 share the two digits {8, 9}: the solver
	// has to guess twice before it can prove there's no way out
	twinDeadEndValues = []int{
		1, 2, 3, 4, 5, 6, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 7, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	// the canonical bad input: two 5s in row 0
	duplicateGivenValues = []int{
		5, 0, 0, 0, 5, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// mustBoard makes a board from values and fails the test otherwise.
func mustBoard(t *testing.T, values []int) *Board {
	t.Helper()
	b, e := NewBoard(values)
	if e != nil {
		t.Fatalf("Failed to create test board: %v", e)
	}
	return b
}

type solveTestcase struct {
	name   string
	start  []int
	finish []int
}

func TestSolveUnique(t *testing.T) {
	tcs := []solveTestcase{
		{"easy", easyStartValues, easySolvedValues},
		{"guess", guessStartValues, guessSolvedValues},
		{"openRows", openRowsStartValues, openRowsSolvedValues},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			start := mustBoard(t, tc.start)
			b := start.Copy()
			res, e := Solve(b)
			if e != nil {
				t.Fatalf("Solve failed: %v", e)
			}
			if res.Status != Solved {
				t.Fatalf("Status is %v, expected %v", res.Status, Solved)
			}
			if !reflect.DeepEqual(res.Values, tc.finish) {
				t.Errorf("Solved values are %v (expected %v)", res.Values, tc.finish)
			}
			if !b.IsComplete() || !b.IsValid() {
				t.Errorf("Solved board is not a complete valid grid:\n%v", b)
			}
			// the trace must end with the placement that completed
			// the board, and its placements must outnumber its
			// retractions by exactly the number of empty cells
			if len(res.Trace) == 0 {
				t.Fatalf("Solved puzzle produced no steps")
			}
			if last := res.Trace[len(res.Trace)-1]; last.Kind != Place {
				t.Errorf("Trace ends with %v, expected a placement", last)
			}
			places, retracts := 0, 0
			for _, s := range res.Trace {
				switch s.Kind {
				case Place:
					places++
				case Retract:
					retracts++
				}
			}
			empties := 0
			for _, v := range tc.start {
				if v == 0 {
					empties++
				}
			}
			if places-retracts != empties {
				t.Errorf("Trace has %d placements and %d retractions for %d empty cells",
					places, retracts, empties)
			}
			// replaying the trace from the start reproduces the
			// solver's own final board
			replayed, e := res.Trace.Replay(start)
			if e != nil {
				t.Fatalf("Replay failed: %v", e)
			}
			if !replayed.Equal(b) {
				t.Errorf("Replayed board differs from solved board:\n%v\nvs\n%v", replayed, b)
			}
		})
	}
}

func TestSolveCompleteBoard(t *testing.T) {
	b := mustBoard(t, easySolvedValues)
	res, e := Solve(b)
	if e != nil {
		t.Fatalf("Solve failed: %v", e)
	}
	if res.Status != Solved {
		t.Errorf("Status is %v, expected %v", res.Status, Solved)
	}
	if len(res.Trace) != 0 {
		t.Errorf("Complete board produced %d steps, expected none", len(res.Trace))
	}
	if !reflect.DeepEqual(res.Values, easySolvedValues) {
		t.Errorf("Values changed on an already-complete board")
	}
}

func TestSolveInvalidPuzzle(t *testing.T) {
	b := mustBoard(t, duplicateGivenValues)
	before := b.Copy()
	steps := 0
	res, e := SolveSteps(b, func(Step) bool {
		steps++
		return true
	})
	if res != nil {
		t.Fatalf("Invalid puzzle produced a result: %+v", res)
	}
	if !IsInvalidPuzzle(e) {
		t.Errorf("Invalid puzzle gave %v, expected an invalid-puzzle Error", e)
	}
	if steps != 0 {
		t.Errorf("Invalid puzzle produced %d steps before rejection", steps)
	}
	if !b.Equal(before) {
		t.Errorf("Invalid puzzle was mutated:\n%v", b)
	}
}

type unsolvableTestcase struct {
	name     string
	start    []int
	numSteps int
}

func TestSolveUnsolvable(t *testing.T) {
	tcs := []unsolvableTestcase{
		// a cell with no candidates is a dead end before any guess
		{"noCandidate", noCandidateValues, 0},
		// two symmetric guesses, each retracted: 4 places, 4 retracts
		{"twinDeadEnd", twinDeadEndValues, 8},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			start := mustBoard(t, tc.start)
			b := start.Copy()
			res, e := Solve(b)
			if e != nil {
				t.Fatalf("Solve failed: %v", e)
			}
			if res.Status != Unsolvable {
				t.Fatalf("Status is %v, expected %v", res.Status, Unsolvable)
			}
			if !b.Equal(start) {
				t.Errorf("Unsolvable board was not restored:\n%v\nvs\n%v", b, start)
			}
			if !reflect.DeepEqual(res.Values, tc.start) {
				t.Errorf("Result values are %v, expected the original grid", res.Values)
			}
			if len(res.Trace) != tc.numSteps {
				t.Errorf("Trace has %d steps, expected %d: %v",
					len(res.Trace), tc.numSteps, res.Trace)
			}
		})
	}
}

// The twin dead end is small enough to check move by move: the
// solver must walk both branches of the {8, 9} pair in row 0 and
// unwind each one.
func TestSolveUnsolvableTrace(t *testing.T) {
	b := mustBoard(t, twinDeadEndValues)
	res, e := Solve(b)
	if e != nil {
		t.Fatalf("Solve failed: %v", e)
	}
	expected := Trace{
		{Place, 0, 6, 8, 0},
		{Place, 0, 7, 9, 1},
		{Retract, 0, 7, 9, 1},
		{Retract, 0, 6, 8, 0},
		{Place, 0, 6, 9, 0},
		{Place, 0, 7, 8, 1},
		{Retract, 0, 7, 8, 1},
		{Retract, 0, 6, 9, 0},
	}
	if !reflect.DeepEqual(res.Trace, expected) {
		t.Errorf("Trace is:\n%v\nexpected:\n%v", res.Trace, expected)
	}
}

func TestSolveDeterminism(t *testing.T) {
	first, e := Solve(mustBoard(t, guessStartValues))
	if e != nil {
		t.Fatalf("First solve failed: %v", e)
	}
	second, e := Solve(mustBoard(t, guessStartValues))
	if e != nil {
		t.Fatalf("Second solve failed: %v", e)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Two solves of the same input differ:\n%+v\nvs\n%+v", first, second)
	}
}

func TestSolveStepsCancel(t *testing.T) {
	b := mustBoard(t, guessStartValues)
	var seen []Step
	res, e := SolveSteps(b, func(s Step) bool {
		seen = append(seen, s)
		return len(seen) < 3
	})
	if res != nil {
		t.Fatalf("Canceled solve produced a result: %+v", res)
	}
	if !IsCanceled(e) {
		t.Errorf("Canceled solve gave %v, expected a canceled Error", e)
	}
	if len(seen) != 3 {
		t.Errorf("Solver emitted %d steps after cancellation at 3", len(seen))
	}
	// the board reflects exactly the emitted steps, nothing more
	replayed, err := Trace(seen).Replay(mustBoard(t, guessStartValues))
	if err != nil {
		t.Fatalf("Replay of partial trace failed: %v", err)
	}
	if !replayed.Equal(b) {
		t.Errorf("Board after cancellation differs from its own trace")
	}
}

func TestMostConstrained(t *testing.T) {
	b := mustBoard(t, twinDeadEndValues)
	row, col, cands, empty := mostConstrained(b)
	if !empty {
		t.Fatalf("No empty cell found on a mostly-empty board")
	}
	if row != 0 || col != 6 {
		t.Errorf("Chose cell r%dc%d, expected r0c6", row, col)
	}
	if !reflect.DeepEqual(cands, intset{8, 9}) {
		t.Errorf("Candidates are %v, expected [8 9]", cands)
	}

	// a complete board has no cell to choose
	_, _, _, empty = mostConstrained(mustBoard(t, easySolvedValues))
	if empty {
		t.Errorf("Found an empty cell on a complete board")
	}
}
