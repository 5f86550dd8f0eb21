package expr

import (
	"errors"
	"fmt"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/polynomial"
	"github.com/roach88/peano/internal/tower"
	"github.com/roach88/peano/internal/trace"
)

// CodeSyntax is the error code reported for a *SyntaxError.
const CodeSyntax = "SYNTAX_ERROR"

// DefaultMaxLiteral bounds number literals when an Evaluator sets none.
// Every literal is a unary chain, so its size is its value.
const DefaultMaxLiteral = 1 << 20

var binaryOps = map[Op]func(o tower.Ops, a, b tower.Value) (tower.Value, error){
	OpAdd:      tower.Ops.Add,
	OpSub:      tower.Ops.Sub,
	OpMul:      tower.Ops.Mul,
	OpDiv:      tower.Ops.Div,
	OpFloorDiv: tower.Ops.FloorDiv,
	OpMod:      tower.Ops.Mod,
	OpPow:      tower.Ops.Pow,
}

// Evaluator evaluates expression trees. The zero Evaluator traces nothing
// and bounds literals at DefaultMaxLiteral.
type Evaluator struct {
	// Tracer receives the derivations of every operation performed.
	Tracer *trace.Tracer

	// MaxLiteral is the largest literal accepted. Zero means
	// DefaultMaxLiteral; negative disables the bound.
	MaxLiteral int
}

func (ev Evaluator) maxLiteral() int {
	if ev.MaxLiteral == 0 {
		return DefaultMaxLiteral
	}
	return ev.MaxLiteral
}

// Eval evaluates a parsed tree. Arithmetic errors are wrapped with the
// operator and offset where they occurred; errors.Is and arith.CodeOf
// still see the underlying *arith.Error.
// A literal above the bound fails with RESOURCE_EXHAUSTED before any of it
// is built.
func (ev Evaluator) Eval(n Node) (tower.Value, error) {
	ops := tower.With(ev.Tracer)
	switch n := n.(type) {
	case *Number:
		if limit := ev.maxLiteral(); limit >= 0 && n.Int > limit {
			return tower.Value{}, arith.New(arith.CodeResourceExhausted, "expr.Eval",
				"literal %s at offset %d exceeds the limit %d", n.Text, n.Pos, limit)
		}
		return tower.N(natural.MustNew(n.Int)), nil
	case *Indeterminate:
		return tower.P(polynomial.X), nil
	case *Unary:
		x, err := ev.Eval(n.X)
		if err != nil {
			return tower.Value{}, err
		}
		v, err := ops.Neg(x)
		if err != nil {
			return tower.Value{}, fmt.Errorf("%s at offset %d: %w", n.Op, n.Pos, err)
		}
		return v, nil
	case *Binary:
		l, err := ev.Eval(n.Left)
		if err != nil {
			return tower.Value{}, err
		}
		r, err := ev.Eval(n.Right)
		if err != nil {
			return tower.Value{}, err
		}
		v, err := binaryOps[n.Op](ops, l, r)
		if err != nil {
			return tower.Value{}, fmt.Errorf("%s at offset %d: %w", n.Op, n.Pos, err)
		}
		return v, nil
	default:
		return tower.Value{}, fmt.Errorf("unsupported node type: %T", n)
	}
}

// Evaluate parses and evaluates src.
func (ev Evaluator) Evaluate(src string) (tower.Value, error) {
	n, err := Parse(src)
	if err != nil {
		return tower.Value{}, err
	}
	return ev.Eval(n)
}

// Eval evaluates a parsed tree with the zero Evaluator.
func Eval(n Node) (tower.Value, error) {
	return Evaluator{}.Eval(n)
}

// Evaluate parses and evaluates src with the zero Evaluator.
func Evaluate(src string) (tower.Value, error) {
	return Evaluator{}.Evaluate(src)
}

// Code returns the error code of err: CodeSyntax for syntax errors, the
// arith code for arithmetic errors, or "" otherwise.
func Code(err error) string {
	var se *SyntaxError
	if errors.As(err, &se) {
		return CodeSyntax
	}
	return string(arith.CodeOf(err))
}
