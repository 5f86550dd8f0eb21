package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/peano/internal/ir"
)

// createTestStore opens a fresh store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestRun(id string) ir.Run {
	return ir.Run{
		ID:            id,
		Source:        "test",
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
}

// createTestEvaluation builds a successful evaluation with a real digest.
func createTestEvaluation(runID string, seq int64, expression, kind, result string) ir.Evaluation {
	digest := ir.MustValueDigest(kind, result)
	return ir.Evaluation{
		ID:         ir.MustEvaluationID(runID, seq, expression, digest, ""),
		RunID:      runID,
		Seq:        seq,
		Expression: expression,
		Kind:       kind,
		Result:     result,
		Digest:     digest,
	}
}

func createFailedEvaluation(runID string, seq int64, expression, code string) ir.Evaluation {
	return ir.Evaluation{
		ID:         ir.MustEvaluationID(runID, seq, expression, "", code),
		RunID:      runID,
		Seq:        seq,
		Expression: expression,
		ErrorCode:  code,
		Error:      "failed",
	}
}
