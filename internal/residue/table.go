package residue

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/peano/internal/natural"
)

// Op selects the operation a Table shows.
type Op string

const (
	OpAdd Op = "+"
	OpMul Op = "*"
	OpPow Op = "^"
)

// ParseOp accepts a symbol or one of add, mul, pow.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OpAdd, nil
	case "*", "mul":
		return OpMul, nil
	case "^", "pow":
		return OpPow, nil
	}
	return "", fmt.Errorf("unknown table operation %q: want add, mul or pow", s)
}

// Table is an operation table over a ring. For OpPow the columns are
// natural exponents 0..m-1; otherwise they are the ring elements.
type Table struct {
	Op      Op
	Rows    []Element
	Columns []natural.Natural
	Cells   [][]Element
}

// Table builds the operation table for op.
func (r Ring) Table(op Op) (Table, error) {
	if op != OpAdd && op != OpMul && op != OpPow {
		return Table{}, fmt.Errorf("unknown table operation %q", op)
	}
	t := Table{Op: op}
	for e := range r.Elements() {
		t.Rows = append(t.Rows, e)
		t.Columns = append(t.Columns, e.Natural())
	}
	for _, a := range t.Rows {
		row := make([]Element, len(t.Columns))
		for j, c := range t.Columns {
			switch op {
			case OpAdd:
				row[j], _ = a.Add(r.Elem(c))
			case OpMul:
				row[j], _ = a.Mul(r.Elem(c))
			case OpPow:
				row[j] = a.Pow(c)
			}
		}
		t.Cells = append(t.Cells, row)
	}
	return t, nil
}

// Render writes the table as a header line, a rule and one line per row:
//
//	+ | 0 1 2
//	--|-------
//	0 | 0 1 2
func (t Table) Render(w io.Writer) error {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.String()
	}
	var sb strings.Builder
	sb.WriteString(string(t.Op) + " | " + strings.Join(cols, " ") + "\n")
	sb.WriteString("--|-" + strings.Repeat("--", len(t.Columns)) + "\n")
	for i, a := range t.Rows {
		cells := make([]string, len(t.Cells[i]))
		for j, c := range t.Cells[i] {
			cells[j] = c.String()
		}
		sb.WriteString(a.String() + " | " + strings.Join(cells, " ") + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderTable builds and renders the table for op.
func (r Ring) RenderTable(w io.Writer, op Op) error {
	t, err := r.Table(op)
	if err != nil {
		return err
	}
	return t.Render(w)
}
