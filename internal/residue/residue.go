// Package residue implements the residue rings Z/mZ over Peano naturals.
//
// Every Element carries its Ring and is held reduced modulo m. Mixing
// elements of rings with different moduli fails with TYPE_MISMATCH.
// Inverse and Div search the ring exhaustively, so they are defined
// whenever a solution exists even when m is not prime.
package residue

import (
	"iter"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/natural"
)

// Ring is Z/mZ for a positive modulus m.
type Ring struct {
	m natural.Natural
}

// NewRing returns Z/mZ.
// Returns a DIVISION_BY_ZERO error when m is zero.
func NewRing(m natural.Natural) (Ring, error) {
	if m.IsZero() {
		return Ring{}, arith.New(arith.CodeDivisionByZero, "residue.NewRing", "modulus must be positive")
	}
	return Ring{m: m}, nil
}

// Modulus returns m.
func (r Ring) Modulus() natural.Natural {
	return r.m
}

// Elem returns the class of n.
func (r Ring) Elem(n natural.Natural) Element {
	v, _ := n.Mod(r.m)
	return Element{ring: r, v: v}
}

// Elements yields 0, 1, ..., m-1.
func (r Ring) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for n := range r.m.All() {
			if !yield(Element{ring: r, v: n}) {
				return
			}
		}
	}
}

// String returns "Z/<m>".
func (r Ring) String() string {
	return "Z/" + r.m.String()
}

// Element is a residue class. The zero Element belongs to no ring.
type Element struct {
	ring Ring
	v    natural.Natural
}

// Ring returns the ring e belongs to.
func (e Element) Ring() Ring {
	return e.ring
}

// Natural returns the least non-negative representative.
func (e Element) Natural() natural.Natural {
	return e.v
}

// String returns the representative in decimal.
func (e Element) String() string {
	return e.v.String()
}

// Equal reports whether e and x are the same class of the same ring.
func (e Element) Equal(x Element) bool {
	return e.ring.m.Equal(x.ring.m) && e.v.Equal(x.v)
}

func (e Element) check(op string, x Element) error {
	if e.ring.m.IsZero() || !e.ring.m.Equal(x.ring.m) {
		return arith.New(arith.CodeTypeMismatch, op, "operands from %v and %v", e.ring, x.ring)
	}
	return nil
}

// Add returns e + x mod m.
func (e Element) Add(x Element) (Element, error) {
	if err := e.check("residue.Add", x); err != nil {
		return Element{}, err
	}
	return e.ring.Elem(e.v.Add(x.v)), nil
}

// Neg returns the additive inverse m - e mod m.
func (e Element) Neg() Element {
	if e.ring.m.IsZero() {
		return e
	}
	// e.v < m, so the subtraction cannot underflow.
	d, _ := e.ring.m.Sub(e.v)
	return e.ring.Elem(d)
}

// Sub returns e + (-x).
func (e Element) Sub(x Element) (Element, error) {
	if err := e.check("residue.Sub", x); err != nil {
		return Element{}, err
	}
	return e.Add(x.Neg())
}

// Mul returns e * x mod m.
func (e Element) Mul(x Element) (Element, error) {
	if err := e.check("residue.Mul", x); err != nil {
		return Element{}, err
	}
	return e.ring.Elem(e.v.Mul(x.v)), nil
}

// Pow returns e^k mod m, reducing after every multiplication.
func (e Element) Pow(k natural.Natural) Element {
	if e.ring.m.IsZero() {
		return e
	}
	p := e.ring.Elem(natural.One)
	for range k.All() {
		p = e.ring.Elem(p.v.Mul(e.v))
	}
	return p
}

// Inverse returns the y with e * y = 1, searching upward from 0.
// Returns a NOT_INVERTIBLE error when no such y exists.
func (e Element) Inverse() (Element, error) {
	one := e.ring.Elem(natural.One)
	return e.solve("residue.Inverse", e, one)
}

// Div returns the least y with x * y = e.
// Returns a NOT_INVERTIBLE error when no such y exists.
func (e Element) Div(x Element) (Element, error) {
	if err := e.check("residue.Div", x); err != nil {
		return Element{}, err
	}
	return e.solve("residue.Div", x, e)
}

// solve finds the least y with a * y = b.
func (e Element) solve(op string, a, b Element) (Element, error) {
	if e.ring.m.IsZero() {
		return Element{}, arith.New(arith.CodeTypeMismatch, op, "element has no ring")
	}
	for y := range e.ring.Elements() {
		if e.ring.Elem(a.v.Mul(y.v)).v.Equal(b.v) {
			return y, nil
		}
	}
	return Element{}, arith.New(arith.CodeNotInvertible, op, "%v * y = %v has no solution in %v", a, b, e.ring)
}
