package store

import (
	"context"
	"fmt"

	"github.com/roach88/peano/internal/ir"
)

// Outcome is the result of re-evaluating one recorded expression.
// Exactly one of Digest and ErrorCode is set.
type Outcome struct {
	Digest    string
	ErrorCode string
}

// EvalFunc re-evaluates an expression. The store does not know how values
// are computed; the engine supplies this.
type EvalFunc func(ctx context.Context, expression string) (Outcome, error)

// Mismatch describes a recorded evaluation whose replay disagreed.
type Mismatch struct {
	Evaluation ir.Evaluation
	Got        Outcome
}

func (m Mismatch) String() string {
	want := m.Evaluation.Digest
	if want == "" {
		want = "error " + m.Evaluation.ErrorCode
	}
	got := m.Got.Digest
	if got == "" {
		got = "error " + m.Got.ErrorCode
	}
	return fmt.Sprintf("seq %d %q: recorded %s, replayed %s", m.Evaluation.Seq, m.Evaluation.Expression, want, got)
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	RunID      string
	Checked    int
	Mismatches []Mismatch
}

// OK reports whether every evaluation reproduced its recorded outcome.
func (r ReplayResult) OK() bool {
	return len(r.Mismatches) == 0
}

// Replay re-evaluates every recorded expression of a run in seq order and
// compares the outcome with the recorded digest or error code. Evaluation
// stops early only if eval itself fails or ctx is cancelled.
func (s *Store) Replay(ctx context.Context, runID string, eval EvalFunc) (ReplayResult, error) {
	_, evals, err := s.ReadRun(ctx, runID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay: %w", err)
	}

	result := ReplayResult{RunID: runID, Mismatches: []Mismatch{}}
	for _, ev := range evals {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("replay: %w", err)
		}
		got, err := eval(ctx, ev.Expression)
		if err != nil {
			return result, fmt.Errorf("replay seq %d: %w", ev.Seq, err)
		}
		result.Checked++
		if got.Digest != ev.Digest || got.ErrorCode != ev.ErrorCode {
			result.Mismatches = append(result.Mismatches, Mismatch{Evaluation: ev, Got: got})
		}
	}
	return result, nil
}
