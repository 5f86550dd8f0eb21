package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/peano/internal/trace"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Config     string // path to peano.yaml
	TraceLevel string // trace.ParseLevel syntax

	level trace.Level
	cfg   *viper.Viper
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the peano CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "peano",
		Short: "Peano numeric tower",
		Long: `Arithmetic on a numeric tower built from the Peano axioms:
naturals, integers, rationals and polynomials with rational coefficients.

Every evaluation can be traced rule by rule and recorded to a SQLite log
for later replay.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default ./peano.yaml)")
	cmd.PersistentFlags().StringVar(&opts.TraceLevel, "trace-level", "off",
		"minimum derivation level to print (1-7 or equal|order|strict|add|mul|pow|off)")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// setup merges flags with the config file and environment, validates the
// result and configures logging.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if err := bindFlags(cfg, cmd.Flags()); err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	o.cfg = cfg

	o.Format = cfg.GetString(cfgKeyFormat)
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	o.TraceLevel = cfg.GetString(cfgKeyTraceLevel)
	o.level, err = trace.ParseLevel(o.TraceLevel)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --trace-level", err)
	}

	logLevel := slog.LevelInfo
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})))
	return nil
}

// tracer prints derivations at or above the configured level to w.
// It is nil at level off.
func (o *RootOptions) tracer(w io.Writer) *trace.Tracer {
	return trace.To(w, o.level)
}

// config returns the merged configuration. Commands executed without the
// root pre-run (constructed directly in tests) load it on first use.
func (o *RootOptions) config(cmd *cobra.Command) *viper.Viper {
	if o.cfg != nil {
		return o.cfg
	}
	cfg, err := loadConfig(o.Config)
	if err != nil {
		slog.Warn("ignoring config", "error", err)
		cfg, _ = loadConfig("")
	}
	if cfg == nil {
		cfg = viper.New()
	}
	if err := bindFlags(cfg, cmd.Flags()); err != nil {
		slog.Warn("ignoring flags", "error", err)
	}
	o.cfg = cfg
	return cfg
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
