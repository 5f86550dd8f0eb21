// Package natural implements Peano natural numbers.
//
// A Natural is either zero or the successor of another Natural. The value
// representing k is a chain of exactly k predecessor links ending at zero;
// no machine integer is stored. The zero value of Natural is zero.
//
// Every operation follows the axiomatic definitions:
//
//	a + 0 = a          a + S(b) = S(a + b)
//	a * 0 = 0          a * S(b) = a + a * b
//	a ^ 0 = 1          a ^ S(b) = a * a ^ b
//
// but is written as an explicit loop over the chain, so the call stack does
// not grow with the magnitude of the operands. Each loop unrolls the
// recursion in the same order the definition applies it.
//
// Values are immutable and share structure freely: Sub returns a suffix of
// the minuend's chain and Add builds new links on top of the augend.
package natural

import (
	"strconv"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/trace"
)

// link is one successor step; pre == nil means the predecessor is zero.
type link struct {
	pre *link
}

// Natural is a non-negative integer in unary Peano form.
type Natural struct {
	top *link // nil is zero
}

// Zero and One are the first two naturals.
var (
	Zero = Natural{}
	One  = Natural{top: &link{}}
)

// New constructs the Natural for a host integer.
// Returns a NEGATIVE_INPUT error for k < 0.
func New(k int) (Natural, error) {
	if k < 0 {
		return Natural{}, arith.New(arith.CodeNegativeInput, "natural.New", "%d cannot be a natural number", k)
	}
	var top *link
	for i := 0; i < k; i++ {
		top = &link{pre: top}
	}
	return Natural{top: top}, nil
}

// MustNew is like New but panics on error.
// Use only in tests or when k is known to be non-negative.
func MustNew(k int) Natural {
	n, err := New(k)
	if err != nil {
		panic(err)
	}
	return n
}

// Successor returns S(n).
func Successor(n Natural) Natural {
	return Natural{top: &link{pre: n.top}}
}

// Pre returns the predecessor of n. ok is false when n is zero.
func (n Natural) Pre() (pre Natural, ok bool) {
	if n.top == nil {
		return Zero, false
	}
	return Natural{top: n.top.pre}, true
}

// IsZero reports whether n is zero.
func (n Natural) IsZero() bool {
	return n.top == nil
}

// Ops applies natural arithmetic and reports a derivation for each
// operation to its tracer. The zero Ops reports nothing; the methods on
// Natural use it.
type Ops struct {
	t *trace.Tracer
}

// With returns Ops reporting to t.
func With(t *trace.Tracer) Ops {
	return Ops{t: t}
}

// Tracer returns the tracer o reports to.
func (o Ops) Tracer() *trace.Tracer {
	return o.t
}

// Equal reports whether n and x have the same number of links.
func (n Natural) Equal(x Natural) bool { return Ops{}.Equal(n, x) }

// LessOrEqual reports n <= x. Whichever chain reaches zero first is smaller.
func (n Natural) LessOrEqual(x Natural) bool { return Ops{}.LessOrEqual(n, x) }

// Less reports n < x, i.e. n <= x and n != x.
func (n Natural) Less(x Natural) bool { return Ops{}.Less(n, x) }

// Add returns n + x.
func (n Natural) Add(x Natural) Natural { return Ops{}.Add(n, x) }

// Sub returns n - x.
// Returns an UNDERFLOW error when n < x; subtraction is not closed on naturals.
func (n Natural) Sub(x Natural) (Natural, error) { return Ops{}.Sub(n, x) }

// Mul returns n * x.
func (n Natural) Mul(x Natural) Natural { return Ops{}.Mul(n, x) }

// FloorDiv returns n // x.
// Returns a DIVISION_BY_ZERO error when x is zero.
func (n Natural) FloorDiv(x Natural) (Natural, error) { return Ops{}.FloorDiv(n, x) }

// Mod returns n % x.
// Returns a DIVISION_BY_ZERO error when x is zero.
func (n Natural) Mod(x Natural) (Natural, error) { return Ops{}.Mod(n, x) }

// DivMod returns (n // x, n % x).
// Returns a DIVISION_BY_ZERO error when x is zero.
func (n Natural) DivMod(x Natural) (q, r Natural, err error) { return Ops{}.DivMod(n, x) }

// Pow returns n raised to x.
func (n Natural) Pow(x Natural) Natural { return Ops{}.Pow(n, x) }

// Compare returns -1, 0 or +1 as n is less than, equal to, or greater than x.
func (n Natural) Compare(x Natural) int {
	switch {
	case equal(n.top, x.top):
		return 0
	case lessOrEqual(n.top, x.top):
		return -1
	default:
		return 1
	}
}

func (o Ops) Equal(n, x Natural) bool {
	eq := equal(n.top, x.top)
	if o.t.Enabled(trace.LevelEqual) {
		if n.IsZero() || x.IsZero() {
			o.t.Derive(trace.LevelEqual, "%v == %v = %t", repr(n), repr(x), eq)
		} else {
			o.t.Derive(trace.LevelEqual, "%v == %v = %v.pre == %v.pre = %t", repr(n), repr(x), repr(n), repr(x), eq)
		}
	}
	return eq
}

func (o Ops) LessOrEqual(n, x Natural) bool {
	le := lessOrEqual(n.top, x.top)
	if o.t.Enabled(trace.LevelOrder) {
		if n.IsZero() || x.IsZero() {
			o.t.Derive(trace.LevelOrder, "%v <= %v = %t", repr(n), repr(x), le)
		} else {
			o.t.Derive(trace.LevelOrder, "%v <= %v = %v.pre <= %v.pre = %t", repr(n), repr(x), repr(n), repr(x), le)
		}
	}
	return le
}

func (o Ops) Less(n, x Natural) bool {
	lt := lessOrEqual(n.top, x.top) && !equal(n.top, x.top)
	o.t.Derive(trace.LevelStrict, "%v < %v = %v <= %v and %v != %v = %t",
		repr(n), repr(x), repr(n), repr(x), repr(n), repr(x), lt)
	return lt
}

func (o Ops) Add(n, x Natural) Natural {
	sum := Natural{top: add(n.top, x.top)}
	if o.t.Enabled(trace.LevelAdditive) {
		if pre, ok := x.Pre(); ok {
			o.t.Derive(trace.LevelAdditive, "%v + %v = S(%v + %v)", repr(n), repr(x), repr(n), repr(pre))
		} else {
			o.t.Derive(trace.LevelAdditive, "%v + %v = %v", repr(n), repr(x), repr(n))
		}
	}
	return sum
}

func (o Ops) Sub(n, x Natural) (Natural, error) {
	diff, ok := sub(n.top, x.top)
	if !ok {
		return Natural{}, arith.New(arith.CodeUnderflow, "natural.Sub", "%v - %v is below zero", n, x)
	}
	if o.t.Enabled(trace.LevelAdditive) {
		np, nok := n.Pre()
		xp, xok := x.Pre()
		if nok && xok {
			o.t.Derive(trace.LevelAdditive, "%v - %v = %v - %v", repr(n), repr(x), repr(np), repr(xp))
		} else {
			o.t.Derive(trace.LevelAdditive, "%v - %v = %v", repr(n), repr(x), repr(n))
		}
	}
	return Natural{top: diff}, nil
}

func (o Ops) Mul(n, x Natural) Natural {
	prod := Natural{top: mul(n.top, x.top)}
	if o.t.Enabled(trace.LevelMultiplicative) {
		if pre, ok := x.Pre(); ok {
			o.t.Derive(trace.LevelMultiplicative, "%v * %v = %v + %v * %v", repr(n), repr(x), repr(n), repr(n), repr(pre))
		} else {
			o.t.Derive(trace.LevelMultiplicative, "%v * %v = %v", repr(n), repr(x), repr(Zero))
		}
	}
	return prod
}

func (o Ops) FloorDiv(n, x Natural) (Natural, error) {
	q, _, err := divModChecked("natural.FloorDiv", n, x)
	if err != nil {
		return Natural{}, err
	}
	if o.t.Enabled(trace.LevelMultiplicative) {
		if !lessOrEqual(x.top, n.top) {
			o.t.Derive(trace.LevelMultiplicative, "%v // %v = %v", repr(n), repr(x), repr(Zero))
		} else {
			o.t.Derive(trace.LevelMultiplicative, "%v // %v = %v + ((%v - %v) // %v)",
				repr(n), repr(x), repr(One), repr(n), repr(x), repr(x))
		}
	}
	return q, nil
}

func (o Ops) Mod(n, x Natural) (Natural, error) {
	_, r, err := divModChecked("natural.Mod", n, x)
	if err != nil {
		return Natural{}, err
	}
	if o.t.Enabled(trace.LevelMultiplicative) {
		if !lessOrEqual(x.top, n.top) {
			o.t.Derive(trace.LevelMultiplicative, "%v %% %v = %v", repr(n), repr(x), repr(n))
		} else {
			o.t.Derive(trace.LevelMultiplicative, "%v %% %v = (%v - %v) %% %v",
				repr(n), repr(x), repr(n), repr(x), repr(x))
		}
	}
	return r, nil
}

func (o Ops) DivMod(n, x Natural) (q, r Natural, err error) {
	q, r, err = divModChecked("natural.DivMod", n, x)
	if err != nil {
		return Natural{}, Natural{}, err
	}
	o.t.Derive(trace.LevelMultiplicative, "divmod(%v, %v) = (%v // %v, %v %% %v)",
		repr(n), repr(x), repr(n), repr(x), repr(n), repr(x))
	return q, r, nil
}

func divModChecked(op string, n, x Natural) (Natural, Natural, error) {
	if x.IsZero() {
		return Natural{}, Natural{}, arith.New(arith.CodeDivisionByZero, op, "%v divided by zero", n)
	}
	q, r := divMod(n.top, x.top)
	return Natural{top: q}, Natural{top: r}, nil
}

func (o Ops) Pow(n, x Natural) Natural {
	p := Natural{top: pow(n.top, x.top)}
	if o.t.Enabled(trace.LevelPower) {
		if pre, ok := x.Pre(); ok {
			o.t.Derive(trace.LevelPower, "%v ** %v = %v * %v ** %v", repr(n), repr(x), repr(n), repr(n), repr(pre))
		} else {
			o.t.Derive(trace.LevelPower, "%v ** %v = %v", repr(n), repr(x), repr(One))
		}
	}
	return p
}

// Int unwinds the chain into a host integer count.
func (n Natural) Int() int {
	k := 0
	for p := n.top; p != nil; p = p.pre {
		k++
	}
	return k
}

// String returns the decimal digits of n.
func (n Natural) String() string {
	return strconv.Itoa(n.Int())
}

// repr renders a Natural as N(k) in derivations.
type repr Natural

func (r repr) String() string {
	return "N(" + Natural(r).String() + ")"
}

// equal walks both chains in lock step. Identical pointers mean the
// remaining suffixes are the same chain.
func equal(a, b *link) bool {
	for a != nil && b != nil {
		if a == b {
			return true
		}
		a, b = a.pre, b.pre
	}
	return a == b
}

// lessOrEqual reports whether chain a ends no later than chain b.
func lessOrEqual(a, b *link) bool {
	for a != nil && b != nil {
		if a == b {
			return true
		}
		a, b = a.pre, b.pre
	}
	return a == nil
}

// add applies one successor to a for every link of b.
func add(a, b *link) *link {
	for p := b; p != nil; p = p.pre {
		a = &link{pre: a}
	}
	return a
}

// sub strips one link from a for every link of b.
func sub(a, b *link) (*link, bool) {
	for b != nil {
		if a == nil {
			return nil, false
		}
		a, b = a.pre, b.pre
	}
	return a, true
}

// mul accumulates a once per link of b.
func mul(a, b *link) *link {
	var acc *link
	for p := b; p != nil; p = p.pre {
		acc = add(acc, a)
	}
	return acc
}

// divMod subtracts b from a until the remainder drops below b.
// b must be non-nil.
func divMod(a, b *link) (q, r *link) {
	r = a
	for lessOrEqual(b, r) {
		r, _ = sub(r, b)
		q = &link{pre: q}
	}
	return q, r
}

// pow multiplies one by a once per link of b.
func pow(a, b *link) *link {
	acc := &link{}
	for p := b; p != nil; p = p.pre {
		acc = mul(acc, a)
	}
	return acc
}
