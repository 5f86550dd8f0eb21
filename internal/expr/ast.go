// Package expr parses and evaluates arithmetic expressions over the tower.
//
// Grammar (lowest to highest precedence):
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/" | "//" | "%") unary | implicit }
//	unary   = "-" unary | power
//	power   = atom [ ("^" | "**") unary ]
//	atom    = number | "x" | "(" expr ")"
//
// Numbers are decimal naturals; "x" is the polynomial indeterminate.
// Juxtaposition before "x" or "(" multiplies, so "2x^2 + (x+1)(x-1)" parses.
// "/" is true division and yields at least a rational; "//" and "%" are
// floor division and remainder. Input is NFC-normalized and the Unicode
// operators "−", "×" and "÷" are accepted as "-", "*" and "/".
package expr

import (
	"strconv"
	"strings"
)

// Node is an expression tree node.
//
// This is a sealed interface: only the types in this package implement it,
// so evaluators can switch over them exhaustively.
type Node interface {
	exprNode() // Marker method - seals interface to this package

	// Offset is the byte offset of the node's first token in the
	// normalized source.
	Offset() int

	String() string
}

// Number is a natural literal. The unary value is built at evaluation
// time, after the literal has been checked against the evaluator's bound.
type Number struct {
	Pos  int
	Text string
	Int  int
}

func (*Number) exprNode() {}
func (n *Number) Offset() int { return n.Pos }
func (n *Number) String() string { return n.Text }

// Indeterminate is the polynomial variable x.
type Indeterminate struct {
	Pos int
}

func (*Indeterminate) exprNode() {}
func (n *Indeterminate) Offset() int { return n.Pos }
func (*Indeterminate) String() string { return "x" }

// Unary is a prefix operation. The only prefix operator is negation.
type Unary struct {
	Pos int
	Op  Op
	X   Node
}

func (*Unary) exprNode() {}
func (n *Unary) Offset() int { return n.Pos }
func (n *Unary) String() string {
	return "(" + string(n.Op) + n.X.String() + ")"
}

// Binary is an infix operation.
type Binary struct {
	Pos         int
	Op          Op
	Left, Right Node
}

func (*Binary) exprNode() {}
func (n *Binary) Offset() int { return n.Pos }
func (n *Binary) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.Left.String())
	sb.WriteString(" ")
	sb.WriteString(string(n.Op))
	sb.WriteString(" ")
	sb.WriteString(n.Right.String())
	sb.WriteString(")")
	return sb.String()
}

// Op is an operator symbol in canonical ASCII form.
type Op string

const (
	OpAdd      Op = "+"
	OpSub      Op = "-"
	OpMul      Op = "*"
	OpDiv      Op = "/"
	OpFloorDiv Op = "//"
	OpMod      Op = "%"
	OpPow      Op = "^"
)

// SyntaxError reports malformed input at a byte offset of the normalized
// source.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return "syntax error at offset " + strconv.Itoa(e.Pos) + ": " + e.Message
}
