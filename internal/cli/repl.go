package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/roach88/peano/internal/engine"
	"github.com/roach88/peano/internal/expr"
	"github.com/roach88/peano/internal/trace"
)

const (
	promptMain = "peano> "

	replHelp = `Enter an expression to evaluate it, or a command:
  :trace <level>  print derivations at or above level (off to stop)
  :set <n>        show the von Neumann ordinal of n
  :run            show the current run ID
  :help           show this help
  :quit           exit`
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Database       string
	MaxEvaluations int
	MaxLiteral     int
}

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive evaluation",
		Long: `Start an interactive session. All input lines share one run, so with
--db the whole session can be replayed later.

History is kept in ~/.peano_history (history_file in peano.yaml).

Examples:
  peano repl
  peano repl --trace-level mul --db ./peano.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record evaluations to this SQLite database")
	cmd.Flags().IntVar(&opts.MaxEvaluations, "max-evaluations", engine.DefaultMaxEvaluations,
		"maximum evaluations per run (0 disables the limit)")
	cmd.Flags().IntVar(&opts.MaxLiteral, "max-literal", expr.DefaultMaxLiteral,
		"largest number literal accepted (negative disables the limit)")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	cfg := opts.config(cmd)

	eng, closeStore, err := newEngine(cfg.GetString(cfgKeyDatabase),
		engine.WithSource("repl"),
		engine.WithMaxEvaluations(cfg.GetInt(cfgKeyMaxEvaluations)),
		engine.WithMaxLiteral(cfg.GetInt(cfgKeyMaxLiteral)),
	)
	if err != nil {
		return err
	}
	defer closeStore()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg.GetString(cfgKeyHistory))
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	return replLoop(commandContext(cmd), ln, eng, opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// historyPath resolves a relative history file against the home directory.
func historyPath(name string) string {
	if name == "" {
		name = defaultHistoryFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

// replLoop reads lines until EOF or :quit. Evaluation failures are printed
// and the session continues; engine errors end it.
func replLoop(ctx context.Context, in lineReader, eng *engine.Engine, opts *RootOptions, out, errOut io.Writer) error {
	f := &OutputFormatter{Format: opts.Format, Writer: out, ErrWriter: errOut, Verbose: opts.Verbose}

	eng.SetTracer(opts.tracer(errOut))

	for {
		line, err := in.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read input", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		in.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			quit, err := replCommand(ctx, line, eng, opts, f, errOut)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		r, err := evalOne(ctx, eng, line)
		if err != nil {
			return WrapExitError(ExitFailure, "evaluation failed", err)
		}
		if err := f.Success(r.EvalResult); err != nil {
			return err
		}
	}
}

// replCommand handles a ":" command line. It reports whether the session
// should end.
func replCommand(ctx context.Context, line string, eng *engine.Engine, opts *RootOptions, f *OutputFormatter, errOut io.Writer) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "quit", "q", "exit":
		return true, nil

	case "help", "h":
		fmt.Fprintln(f.Writer, replHelp)

	case "trace":
		level, err := trace.ParseLevel(arg)
		if err != nil {
			return false, f.Error("E_TRACE_LEVEL", err.Error(), nil)
		}
		opts.level = level
		eng.SetTracer(opts.tracer(errOut))
		slog.Debug("trace level changed", "level", level)

	case "set":
		out, err := vonNeumann(arg, defaultSetLimit)
		if err != nil {
			return false, f.Error("E_SET", err.Error(), nil)
		}
		return false, f.Success(out)

	case "run":
		run, err := eng.Run(ctx)
		if err != nil {
			return false, WrapExitError(ExitFailure, "failed to start run", err)
		}
		return false, f.Success(run.ID)

	default:
		return false, f.Error("E_UNKNOWN_COMMAND", fmt.Sprintf("unknown command %q, type :help", line), nil)
	}
	return false, nil
}
