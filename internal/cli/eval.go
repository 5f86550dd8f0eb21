package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/peano/internal/engine"
	"github.com/roach88/peano/internal/expr"
	"github.com/roach88/peano/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Database       string
	MaxEvaluations int
	MaxLiteral     int
}

// EvalResult is one evaluated expression as reported by eval and repl.
type EvalResult struct {
	Seq       int64  `json:"seq"`
	Expr      string `json:"expr"`
	Kind      string `json:"kind,omitempty"`
	Value     string `json:"value,omitempty"`
	Digest    string `json:"digest,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// String renders "kind value" or "! CODE: message".
func (r EvalResult) String() string {
	if r.ErrorCode != "" {
		return fmt.Sprintf("! %s: %s", r.ErrorCode, r.Error)
	}
	return r.Kind + " " + r.Value
}

// EvalOutput is the eval command's result.
type EvalOutput struct {
	RunID   string       `json:"run_id"`
	Results []EvalResult `json:"results"`
	Failed  int          `json:"failed"`
}

// String prints one result per line.
func (o EvalOutput) String() string {
	lines := make([]string, len(o.Results))
	for i, r := range o.Results {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expr>...",
		Short: "Evaluate expressions",
		Long: `Evaluate one or more expressions in a single run.

Each argument is evaluated in order and printed as its kind and canonical
value. With --db the run and every evaluation are recorded for replay.

Exit codes:
  0 - All expressions evaluated
  1 - One or more expressions failed
  2 - Command error (database, config)

Examples:
  peano eval "3 + 4"
  peano eval "(x^2 + 2x + 1) // (x + 1)" "1/2 + 1/3"
  peano eval --trace-level add "2 + 2"
  peano eval --db ./peano.db "7 % 3"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record evaluations to this SQLite database")
	cmd.Flags().IntVar(&opts.MaxEvaluations, "max-evaluations", engine.DefaultMaxEvaluations,
		"maximum evaluations per run (0 disables the limit)")
	cmd.Flags().IntVar(&opts.MaxLiteral, "max-literal", expr.DefaultMaxLiteral,
		"largest number literal accepted (negative disables the limit)")

	return cmd
}

func runEval(opts *EvalOptions, exprs []string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	cfg := opts.config(cmd)

	eng, closeStore, err := newEngine(cfg.GetString(cfgKeyDatabase),
		engine.WithSource("eval"),
		engine.WithMaxEvaluations(cfg.GetInt(cfgKeyMaxEvaluations)),
		engine.WithMaxLiteral(cfg.GetInt(cfgKeyMaxLiteral)),
		engine.WithTracer(opts.tracer(cmd.ErrOrStderr())),
	)
	if err != nil {
		return err
	}
	defer closeStore()

	out := EvalOutput{Results: make([]EvalResult, 0, len(exprs))}
	for _, src := range exprs {
		r, err := evalOne(ctx, eng, src)
		if err != nil {
			return WrapExitError(ExitFailure, "evaluation failed", err)
		}
		out.RunID = r.runID
		out.Results = append(out.Results, r.EvalResult)
		if r.ErrorCode != "" {
			out.Failed++
		}
	}

	f := opts.formatter(cmd)
	f.VerboseLog("run %s: %d evaluation(s), %d failed", out.RunID, len(out.Results), out.Failed)
	if err := f.Success(out); err != nil {
		return err
	}
	if out.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d expressions failed", out.Failed, len(exprs)))
	}
	return nil
}

type evalResult struct {
	EvalResult
	runID string
}

// evalOne evaluates src and converts the engine result for output.
// Arithmetic and syntax failures are part of the result, not the error.
func evalOne(ctx context.Context, eng *engine.Engine, src string) (evalResult, error) {
	res, err := eng.Eval(ctx, src)
	if err != nil {
		return evalResult{}, err
	}
	ev := res.Evaluation
	return evalResult{
		EvalResult: EvalResult{
			Seq:       ev.Seq,
			Expr:      ev.Expression,
			Kind:      ev.Kind,
			Value:     ev.Result,
			Digest:    ev.Digest,
			ErrorCode: ev.ErrorCode,
			Error:     ev.Error,
		},
		runID: ev.RunID,
	}, nil
}

// newEngine builds an engine, attaching a store when dbPath is set.
// The returned function closes the store.
func newEngine(dbPath string, engOpts ...engine.Option) (*engine.Engine, func(), error) {
	if dbPath == "" {
		return engine.New(engOpts...), func() {}, nil
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	closeStore := func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}
	engOpts = append(engOpts, engine.WithStore(st))
	return engine.New(engOpts...), closeStore, nil
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
