package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/peano/internal/engine"
	"github.com/roach88/peano/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayMismatch is one evaluation whose replayed outcome differs.
type ReplayMismatch struct {
	Seq      int64  `json:"seq"`
	Expr     string `json:"expr"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayResult holds the replay result for one run.
type ReplayResult struct {
	RunID         string           `json:"run_id"`
	Checked       int              `json:"checked"`
	Mismatches    []ReplayMismatch `json:"mismatches"`
	Deterministic bool             `json:"deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-evaluate a recorded run and verify its outcomes",
		Long: `Re-evaluate every expression of a recorded run in seq order and compare
each outcome (value digest or error code) with the one in the log.

Exit codes:
  0 - Every outcome reproduced
  1 - One or more outcomes differ
  2 - Command error (database not found, unknown run, etc.)

Examples:
  peano replay --db ./peano.db 01920000-0000-7000-8000-000000000000
  peano replay --db ./peano.db <run-id> --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")

	return cmd
}

func runReplay(opts *ReplayOptions, runID string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	dbPath := opts.config(cmd).GetString(cfgKeyDatabase)
	if dbPath == "" {
		return NewExitError(ExitCommandError, "--db is required")
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	f := opts.formatter(cmd)
	f.VerboseLog("replaying %s from %s", runID, dbPath)
	res, err := engine.Replay(ctx, st, runID)
	if err != nil && !engine.IsReplayMismatch(err) {
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("run %s not found", runID), err)
		}
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	result := ReplayResult{
		RunID:         res.RunID,
		Checked:       res.Checked,
		Mismatches:    make([]ReplayMismatch, 0, len(res.Mismatches)),
		Deterministic: res.OK(),
	}
	for _, m := range res.Mismatches {
		result.Mismatches = append(result.Mismatches, ReplayMismatch{
			Seq:      m.Evaluation.Seq,
			Expr:     m.Evaluation.Expression,
			Recorded: describeOutcome(m.Evaluation.Digest, m.Evaluation.ErrorCode),
			Replayed: describeOutcome(m.Got.Digest, m.Got.ErrorCode),
		})
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result, RunID: result.RunID}
		if !result.Deterministic {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    string(engine.ErrCodeReplayMismatch),
				Message: "replay verification failed",
			}
		}
		if err := f.Response(response); err != nil {
			return err
		}
	} else {
		outputReplayText(cmd, result)
	}

	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// describeOutcome renders an outcome as "value <digest prefix>" or
// "error CODE".
func describeOutcome(digest, errorCode string) string {
	if errorCode != "" {
		return "error " + errorCode
	}
	if len(digest) > 12 {
		digest = digest[:12]
	}
	return "value " + digest
}

func outputReplayText(cmd *cobra.Command, result ReplayResult) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Run %s: %d evaluation(s) replayed\n", result.RunID, result.Checked)
	for _, m := range result.Mismatches {
		fmt.Fprintf(w, "  seq %d %q: recorded %s, replayed %s\n", m.Seq, m.Expr, m.Recorded, m.Replayed)
	}
	if result.Deterministic {
		fmt.Fprintln(w, "OK all outcomes reproduced")
		return
	}
	fmt.Fprintf(w, "FAIL %d outcome(s) differ\n", len(result.Mismatches))
}
