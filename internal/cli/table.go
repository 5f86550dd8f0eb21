package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/residue"
)

// TableOptions holds flags for the table command.
type TableOptions struct {
	*RootOptions
	Modulo int
	Op     string
}

// TableOutput is an operation table in JSON form.
type TableOutput struct {
	Modulo  int        `json:"modulo"`
	Op      string     `json:"op"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`

	text string
}

// TableRow is one row of a TableOutput.
type TableRow struct {
	Element string   `json:"element"`
	Cells   []string `json:"cells"`
}

// String returns the rendered table without its trailing newline.
func (t TableOutput) String() string {
	return strings.TrimSuffix(t.text, "\n")
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print an operation table of the naturals modulo m",
		Long: `Print the addition, multiplication or power table of the residue ring
of the naturals modulo m. Power columns are exponents 0..m-1.

Examples:
  peano table --modulo 5 --op mul
  peano table --modulo 7 --op pow --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := buildTable(opts.Modulo, opts.Op)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid table", err)
			}
			return opts.formatter(cmd).Success(out)
		},
	}

	cmd.Flags().IntVarP(&opts.Modulo, "modulo", "m", 0, "modulus (required, at least 1)")
	_ = cmd.MarkFlagRequired("modulo")
	cmd.Flags().StringVar(&opts.Op, "op", "add", "operation (add|mul|pow)")

	return cmd
}

func buildTable(modulo int, opName string) (TableOutput, error) {
	op, err := residue.ParseOp(opName)
	if err != nil {
		return TableOutput{}, err
	}
	m, err := natural.New(modulo)
	if err != nil {
		return TableOutput{}, fmt.Errorf("modulo: %w", err)
	}
	ring, err := residue.NewRing(m)
	if err != nil {
		return TableOutput{}, fmt.Errorf("modulo: %w", err)
	}
	t, err := ring.Table(op)
	if err != nil {
		return TableOutput{}, err
	}

	var sb strings.Builder
	if err := t.Render(&sb); err != nil {
		return TableOutput{}, err
	}

	out := TableOutput{
		Modulo:  modulo,
		Op:      string(t.Op),
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]TableRow, len(t.Rows)),
		text:    sb.String(),
	}
	for i, c := range t.Columns {
		out.Columns[i] = c.String()
	}
	for i, e := range t.Rows {
		row := TableRow{Element: e.String(), Cells: make([]string, len(t.Cells[i]))}
		for j, c := range t.Cells[i] {
			row.Cells[j] = c.String()
		}
		out.Rows[i] = row
	}
	return out, nil
}
