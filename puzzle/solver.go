package puzzle

/*

Sudoku puzzle solver

The solver is a depth-first search with backtracking.  Think of
Ariadne in the minotaur's maze: she walks forward leaving a thread
behind her, and when she hits a dead end she rewinds the thread to
the last junction and tries the next passage.  The trace this
solver produces is that thread, kept rather than rewound: every
step forward (a placement) and every step back (a retraction) is
recorded in order, so the whole walk can be re-enacted later.

The search policy is fixed and deterministic so that repeated runs
on the same input reproduce the same trace byte for byte:

1. If the board has no empty cell, the puzzle is solved.

2. Otherwise choose the empty cell with the fewest candidate
digits, breaking ties by lowest row and then lowest column.  If
that cell has no candidates at all, the current partial assignment
is a dead end; fail without placing anything.

3. Try the chosen cell's candidates in ascending order: place the
digit, record the placement at the current depth, and recurse.  On
success, propagate success with no further mutation.  On failure,
retract the digit, record the retraction at the same depth, and try
the next candidate.

4. When the candidates are exhausted, fail to the caller, which
retracts its own placement in turn.

Choosing the most constrained cell first means a cell with a single
candidate is always filled before any guessing happens, so the
naked-single propagation of classic solvers falls out of the cell
ordering for free rather than needing a separate pass.

*/

// A stepFunc consumes one step of the search as it happens.  It
// returns whether the search should continue; returning false
// stops the solver after the current atomic step, which is how an
// embedding presentation layer cancels a live solve.
type stepFunc func(Step) bool

// searchOutcome is the internal result of one recursive search call.
type searchOutcome int

const (
	searchSolved    searchOutcome = iota // board completed
	searchExhausted                      // no completion below this point
	searchStopped                        // consumer asked us to stop
)

// Solve runs the search to completion on the given board and
// returns the terminal status with the full step trace.  The board
// is mutated during the search: on Solved it holds the completed
// grid, on Unsolvable every tentative placement has been retracted
// and it holds its original values again.  A board that fails
// IsValid is rejected before any search starts, with no mutation
// and no steps.
func Solve(b *Board) (*Result, error) {
	var t Trace
	r, err := SolveSteps(b, func(s Step) bool {
		t = append(t, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	r.Trace = t
	return r, nil
}

// SolveSteps is the producer/consumer form of Solve: instead of
// accumulating a trace it hands each Step to the given function the
// moment it happens, in strict chronological order.  If the
// function returns false the search stops after that step and
// SolveSteps returns a canceled Error; the board is left exactly as
// the emitted steps describe, so the consumer can retract the
// remainder itself (or just discard the board).
//
// A ConstraintViolation Error from the board layer during search
// means the solver breached its own invariant; it aborts the run
// rather than produce a misleading trace.
func SolveSteps(b *Board, emit func(Step) bool) (*Result, error) {
	if row, col, found := b.firstDuplicate(); found {
		return nil, invalidPuzzleError(row, col, b.Get(row, col))
	}
	out, err := search(b, 0, emit)
	if err != nil {
		return nil, err
	}
	switch out {
	case searchSolved:
		return &Result{Status: Solved, Values: b.Values()}, nil
	case searchExhausted:
		return &Result{Status: Unsolvable, Values: b.Values()}, nil
	default:
		return nil, canceledError()
	}
}

// search makes one move and recurses.  Entered with a valid,
// incomplete-or-complete board, it returns whether the board was
// completed, the subtree was exhausted, or the consumer stopped
// the walk.  A non-nil error is fatal and means the board layer
// refused a placement the candidate computation said was legal.
func search(b *Board, depth int, emit stepFunc) (searchOutcome, error) {
	row, col, cands, empty := mostConstrained(b)
	if !empty {
		return searchSolved, nil
	}
	for _, v := range cands {
		if err := b.Set(row, col, v); err != nil {
			// can't happen: v came from Candidates
			return searchExhausted, err
		}
		if !emit(Step{Place, row, col, v, depth}) {
			return searchStopped, nil
		}
		out, err := search(b, depth+1, emit)
		if out != searchExhausted || err != nil {
			return out, err
		}
		b.Clear(row, col)
		if !emit(Step{Retract, row, col, v, depth}) {
			return searchStopped, nil
		}
	}
	// all candidates tried (or none existed): dead end
	return searchExhausted, nil
}

// mostConstrained finds the empty cell with the fewest candidate
// digits, breaking ties by reading order, and returns its
// coordinates and candidates.  It reports empty=false when the
// board has no empty cell at all.  A cell with zero candidates
// wins immediately: it proves the current assignment is a dead end
// and there is no point looking further.
func mostConstrained(b *Board) (row, col int, cands intset, empty bool) {
	best := SideLength + 1
	for r := 0; r < SideLength; r++ {
		for c := 0; c < SideLength; c++ {
			if b.Get(r, c) != 0 {
				continue
			}
			cs := b.Candidates(r, c)
			if !empty || len(cs) < best {
				row, col, cands, empty = r, c, cs, true
				best = len(cs)
				if best == 0 {
					return
				}
			}
		}
	}
	return
}
