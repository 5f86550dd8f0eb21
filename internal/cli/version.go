package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/peano/internal/ir"
)

// VersionInfo reports the engine and record schema versions.
type VersionInfo struct {
	Engine string `json:"engine"`
	IR     string `json:"ir"`
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("peano %s (ir %s)", v.Engine, v.IR)
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print version information",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.formatter(cmd).Success(VersionInfo{
				Engine: ir.EngineVersion,
				IR:     ir.IRVersion,
			})
		},
	}
}
