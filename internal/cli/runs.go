package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/peano/internal/ir"
	"github.com/roach88/peano/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
	Failed   bool // timeline: only failed evaluations
}

// RunListEntry is one row of the run list.
type RunListEntry struct {
	ID            string `json:"id"`
	Source        string `json:"source"`
	EngineVersion string `json:"engine_version"`
	Evaluations   int    `json:"evaluations"`
	Failures      int    `json:"failures"`
}

// RunTimeline is a single run with its evaluations in seq order.
type RunTimeline struct {
	Run         ir.Run          `json:"run"`
	Evaluations []ir.Evaluation `json:"evaluations"`
	Stats       RunStats        `json:"stats"`
}

// RunStats holds summary counts for a timeline.
type RunStats struct {
	Total    int `json:"total"`
	Values   int `json:"values"`
	Failures int `json:"failures"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded runs or show one run's evaluations",
		Long: `Without arguments, list every run in the log with its evaluation and
failure counts. With a run ID, show that run's evaluations in seq order.

Examples:
  peano runs --db ./peano.db
  peano runs --db ./peano.db <run-id>
  peano runs --db ./peano.db <run-id> --failed --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "show only failed evaluations")

	return cmd
}

func runRuns(opts *RunsOptions, args []string, cmd *cobra.Command) error {
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

	if len(args) == 0 {
		summaries, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		entries := make([]RunListEntry, len(summaries))
		for i, s := range summaries {
			entries[i] = RunListEntry{
				ID:            s.Run.ID,
				Source:        s.Run.Source,
				EngineVersion: s.Run.EngineVersion,
				Evaluations:   s.Evaluations,
				Failures:      s.Failures,
			}
		}
		if f.Format == "json" {
			return f.Success(entries)
		}
		outputRunListText(f.Writer, entries)
		return nil
	}

	run, evals, err := st.ReadRun(ctx, args[0])
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("run %s not found", args[0]), err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	tl := buildTimeline(run, evals, opts.Failed)
	if f.Format == "json" {
		return f.Response(CLIResponse{Status: "ok", Data: tl, RunID: run.ID})
	}
	outputTimelineText(f.Writer, tl)
	return nil
}

// buildTimeline keeps evaluations in log order. Stats always cover the
// whole run, even when failedOnly filters the list.
func buildTimeline(run ir.Run, evals []ir.Evaluation, failedOnly bool) RunTimeline {
	tl := RunTimeline{Run: run, Evaluations: []ir.Evaluation{}}
	for _, ev := range evals {
		tl.Stats.Total++
		if ev.Failed() {
			tl.Stats.Failures++
		} else {
			tl.Stats.Values++
		}
		if failedOnly && !ev.Failed() {
			continue
		}
		tl.Evaluations = append(tl.Evaluations, ev)
	}
	return tl
}

func outputRunListText(w io.Writer, entries []RunListEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-16s %d evaluation(s), %d failed\n", e.ID, e.Source, e.Evaluations, e.Failures)
	}
}

func outputTimelineText(w io.Writer, tl RunTimeline) {
	fmt.Fprintf(w, "Run %s (%s, engine %s)\n", tl.Run.ID, tl.Run.Source, tl.Run.EngineVersion)
	for _, ev := range tl.Evaluations {
		if ev.Failed() {
			fmt.Fprintf(w, "  [%d] %s\n      ! %s: %s\n", ev.Seq, ev.Expression, ev.ErrorCode, ev.Error)
			continue
		}
		fmt.Fprintf(w, "  [%d] %s\n      = %s %s\n", ev.Seq, ev.Expression, ev.Kind, ev.Result)
	}
	fmt.Fprintf(w, "%d evaluation(s): %d value(s), %d failure(s)\n", tl.Stats.Total, tl.Stats.Values, tl.Stats.Failures)
}
