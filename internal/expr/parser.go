package expr

import (
	"fmt"
	"strconv"
)

// Binding powers. Left-associative operators bind their right operand one
// step tighter; "^" binds it at the same power, making it right-associative.
const (
	bpAdditive       = 10
	bpMultiplicative = 20
	bpPrefix         = 30
	bpPower          = 40
)

type parser struct {
	toks []token
	i    int
}

// Parse normalizes src and parses it into an expression tree.
// Returns a *SyntaxError for malformed input.
func Parse(src string) (Node, error) {
	toks, err := lex(Normalize(src))
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Message: "empty expression"}
	}
	n, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("unexpected %q", t.text)}
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// infix returns the operator and binding powers of an infix position, or
// ok=false when t ends the current expression.
func infix(t token) (op Op, lbp, rbp int, ok bool) {
	switch t.kind {
	case tokX, tokLParen:
		// Juxtaposition.
		return OpMul, bpMultiplicative, bpMultiplicative + 1, true
	case tokOp:
		switch op := Op(t.text); op {
		case OpAdd, OpSub:
			return op, bpAdditive, bpAdditive + 1, true
		case OpMul, OpDiv, OpFloorDiv, OpMod:
			return op, bpMultiplicative, bpMultiplicative + 1, true
		case OpPow:
			return op, bpPower, bpPower, true
		}
	}
	return "", 0, 0, false
}

func (p *parser) expr(minBP int) (Node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op, lbp, rbp, ok := infix(t)
		if !ok || lbp < minBP {
			return left, nil
		}
		if t.kind == tokOp {
			p.next()
		}
		right, err := p.expr(rbp)
		if err != nil {
			return nil, err
		}
		left = &Binary{Pos: t.pos, Op: op, Left: left, Right: right}
	}
}

func (p *parser) prefix() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		k, err := strconv.Atoi(t.text)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Message: "number out of range: " + t.text}
		}
		return &Number{Pos: t.pos, Text: t.text, Int: k}, nil
	case tokX:
		return &Indeterminate{Pos: t.pos}, nil
	case tokLParen:
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Message: "missing ')'"}
		}
		return inner, nil
	case tokOp:
		switch Op(t.text) {
		case OpSub:
			x, err := p.expr(bpPrefix)
			if err != nil {
				return nil, err
			}
			return &Unary{Pos: t.pos, Op: OpSub, X: x}, nil
		case OpAdd:
			return p.expr(bpPrefix)
		}
		return nil, &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("unexpected operator %q", t.text)}
	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Message: "unexpected end of input"}
	default:
		return nil, &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("unexpected %q", t.text)}
	}
}
