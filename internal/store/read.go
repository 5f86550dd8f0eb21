package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/peano/internal/ir"
)

// ErrRunNotFound is returned by ReadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns a run and its evaluations ordered by seq ASC, id ASC.
// The evaluation slice is empty, never nil, for a run with no evaluations.
func (s *Store) ReadRun(ctx context.Context, runID string) (ir.Run, []ir.Evaluation, error) {
	var run ir.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, engine_version, ir_version
		FROM runs
		WHERE id = ?
	`, runID).Scan(&run.ID, &run.Source, &run.EngineVersion, &run.IRVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, nil, fmt.Errorf("read run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return ir.Run{}, nil, fmt.Errorf("read run %s: %w", runID, err)
	}

	evals, err := s.readEvaluations(ctx, runID)
	if err != nil {
		return ir.Run{}, nil, err
	}
	return run, evals, nil
}

func (s *Store) readEvaluations(ctx context.Context, runID string) ([]ir.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, seq, expression, kind, result, digest, error_code, error
		FROM evaluations
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	evals := []ir.Evaluation{}
	for rows.Next() {
		var ev ir.Evaluation
		if err := rows.Scan(
			&ev.ID,
			&ev.RunID,
			&ev.Seq,
			&ev.Expression,
			&ev.Kind,
			&ev.Result,
			&ev.Digest,
			&ev.ErrorCode,
			&ev.Error,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		evals = append(evals, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return evals, nil
}

// RunSummary is one row of ListRuns.
type RunSummary struct {
	Run         ir.Run
	Evaluations int
	Failures    int
}

// ListRuns returns every run with its evaluation counts, ordered by ID.
// UUIDv7 run IDs sort by creation time.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.source, r.engine_version, r.ir_version,
		       COUNT(e.id),
		       COALESCE(SUM(CASE WHEN e.error_code <> '' THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN evaluations e ON e.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	summaries := []RunSummary{}
	for rows.Next() {
		var rs RunSummary
		if err := rows.Scan(
			&rs.Run.ID,
			&rs.Run.Source,
			&rs.Run.EngineVersion,
			&rs.Run.IRVersion,
			&rs.Evaluations,
			&rs.Failures,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return summaries, nil
}
