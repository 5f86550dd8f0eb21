package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/vonneumann"
)

// defaultSetLimit bounds the ordinal rendered by default. The text of n
// has 2^(n+1) characters.
const defaultSetLimit = 12

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Limit int
}

// SetOutput is a rendered von Neumann ordinal.
type SetOutput struct {
	N        int      `json:"n"`
	Set      string   `json:"set"`
	Elements []string `json:"elements"`
}

// String returns the nested set text.
func (s SetOutput) String() string {
	return s.Set
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <n>",
		Short: "Show the von Neumann ordinal of a natural",
		Long: `Render n as a von Neumann ordinal: 0 = {}, S(n) = n ∪ {n}.

Examples:
  peano set 3
  peano set 3 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := vonNeumann(args[0], opts.Limit)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid argument", err)
			}
			return opts.formatter(cmd).Success(out)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", defaultSetLimit, "largest n to render")

	return cmd
}

// vonNeumann parses a natural and renders its ordinal.
func vonNeumann(arg string, limit int) (SetOutput, error) {
	k, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return SetOutput{}, fmt.Errorf("%q is not a number", arg)
	}
	if k > limit {
		return SetOutput{}, fmt.Errorf("%d is above the render limit %d", k, limit)
	}
	n, err := natural.New(k)
	if err != nil {
		return SetOutput{}, err
	}

	s := vonneumann.Of(n)
	out := SetOutput{N: k, Set: s.String(), Elements: []string{}}
	for e := range s.Elements() {
		out.Elements = append(out.Elements, e.String())
	}
	return out, nil
}
