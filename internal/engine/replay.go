package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/peano/internal/expr"
	"github.com/roach88/peano/internal/store"
)

// Replay re-evaluates every expression recorded for runID, in seq order,
// and compares each outcome against the log. Replay never writes.
//
// The same code path that produced the record produces the replayed
// outcome, so a mismatch means the arithmetic changed between versions.
// When any evaluation disagrees the returned error satisfies
// IsReplayMismatch and the result lists the disagreements.
func Replay(ctx context.Context, s *store.Store, runID string) (store.ReplayResult, error) {
	if s == nil {
		return store.ReplayResult{}, errors.New("replay: no store")
	}

	result, err := s.Replay(ctx, runID, replayEval)
	if err != nil {
		return result, err
	}
	if !result.OK() {
		return result, &RuntimeError{
			Code:    ErrCodeReplayMismatch,
			Message: fmt.Sprintf("%d of %d evaluations disagree with the log", len(result.Mismatches), result.Checked),
			RunID:   runID,
			Seq:     result.Mismatches[0].Evaluation.Seq,
		}
	}
	return result, nil
}

func replayEval(_ context.Context, expression string) (store.Outcome, error) {
	v, err := expr.Evaluate(expression)
	return outcome(v, err)
}
