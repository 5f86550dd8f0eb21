package store

import (
	"context"
	"fmt"

	"github.com/roach88/peano/internal/ir"
)

// WriteRun inserts a run record. Duplicate IDs are silently ignored.
func (s *Store) WriteRun(ctx context.Context, run ir.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, engine_version, ir_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Source, run.EngineVersion, run.IRVersion)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteEvaluation inserts an evaluation record.
// ON CONFLICT DO NOTHING covers both a repeated ID and a second evaluation
// in an occupied (run_id, seq) slot. The run must already exist.
func (s *Store) WriteEvaluation(ctx context.Context, ev ir.Evaluation) error {
	if (ev.Digest == "") == (ev.ErrorCode == "") {
		return fmt.Errorf("write evaluation %s: exactly one of digest and error_code must be set", ev.ID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, run_id, seq, expression, kind, result, digest, error_code, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		ev.ID,
		ev.RunID,
		ev.Seq,
		ev.Expression,
		ev.Kind,
		ev.Result,
		ev.Digest,
		ev.ErrorCode,
		ev.Error,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}
	return nil
}
