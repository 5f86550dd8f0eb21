// Package tower closes the four numeric layers into a single value type.
//
// A Value holds exactly one of a Natural, Integer, Rational or Polynomial.
// The kinds are totally ordered by embedding, and every binary operation
// first lifts both operands to the higher of their two kinds through the
// canonical embeddings, so mixed-layer arithmetic never needs runtime type
// inspection beyond the kind tag.
package tower

import (
	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/integer"
	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/polynomial"
	"github.com/roach88/peano/internal/rational"
)

// Kind identifies the layer a Value belongs to.
// Kinds are ordered by embedding: a Value can be lifted to any higher kind.
type Kind int

const (
	KindInvalid Kind = iota
	KindNatural
	KindInteger
	KindRational
	KindPolynomial
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindNatural:    "natural",
	KindInteger:    "integer",
	KindRational:   "rational",
	KindPolynomial: "polynomial",
}

func (k Kind) String() string {
	if k < KindInvalid || k > KindPolynomial {
		return "invalid"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s, or KindInvalid.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return Kind(k)
		}
	}
	return KindInvalid
}

// Value is a tagged union over the four layers.
// The zero Value is invalid; every operation on it fails with TYPE_MISMATCH.
type Value struct {
	kind Kind
	n    natural.Natural
	z    integer.Integer
	q    rational.Rational
	p    polynomial.Polynomial
}

// N wraps a Natural.
func N(n natural.Natural) Value { return Value{kind: KindNatural, n: n} }

// Z wraps an Integer.
func Z(z integer.Integer) Value { return Value{kind: KindInteger, z: z} }

// Q wraps a Rational.
func Q(q rational.Rational) Value { return Value{kind: KindRational, q: q} }

// P wraps a Polynomial.
func P(p polynomial.Polynomial) Value { return Value{kind: KindPolynomial, p: p} }

// Kind returns the layer tag.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Natural returns the held Natural when v is a natural.
func (v Value) Natural() (natural.Natural, bool) { return v.n, v.kind == KindNatural }

// Integer returns the held Integer when v is an integer.
func (v Value) Integer() (integer.Integer, bool) { return v.z, v.kind == KindInteger }

// Rational returns the held Rational when v is a rational.
func (v Value) Rational() (rational.Rational, bool) { return v.q, v.kind == KindRational }

// Polynomial returns the held Polynomial when v is a polynomial.
func (v Value) Polynomial() (polynomial.Polynomial, bool) { return v.p, v.kind == KindPolynomial }

// String renders the held value in its layer's text form.
func (v Value) String() string {
	switch v.kind {
	case KindNatural:
		return v.n.String()
	case KindInteger:
		return v.z.String()
	case KindRational:
		return v.q.String()
	case KindPolynomial:
		return v.p.String()
	default:
		return "<invalid>"
	}
}

// Lift embeds v into kind k by applying the embedding chain one layer at
// a time. Lifting to the same kind is the identity.
// Returns a TYPE_MISMATCH error when k is below v's kind or either is invalid.
func Lift(v Value, k Kind) (Value, error) {
	if !v.IsValid() || k <= KindInvalid || k > KindPolynomial {
		return Value{}, arith.New(arith.CodeTypeMismatch, "tower.Lift", "cannot lift %s to %s", v.kind, k)
	}
	if k < v.kind {
		return Value{}, arith.New(arith.CodeTypeMismatch, "tower.Lift", "cannot lower %s to %s", v.kind, k)
	}
	for v.kind < k {
		v = liftOnce(v)
	}
	return v, nil
}

func liftOnce(v Value) Value {
	switch v.kind {
	case KindNatural:
		return Z(integer.FromNatural(v.n))
	case KindInteger:
		return Q(rational.FromInteger(v.z))
	case KindRational:
		return P(polynomial.FromRational(v.q))
	}
	return v
}

// unify lifts a and b to the higher of their kinds, and at least to floor.
func unify(op string, a, b Value, floor Kind) (Value, Value, error) {
	if !a.IsValid() || !b.IsValid() {
		return Value{}, Value{}, arith.New(arith.CodeTypeMismatch, op, "operands %s and %s", a.kind, b.kind)
	}
	k := max(a.kind, b.kind, floor)
	a, _ = Lift(a, k)
	b, _ = Lift(b, k)
	return a, b, nil
}
