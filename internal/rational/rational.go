// Package rational implements the field of fractions over the Peano integers.
//
// A Rational is a pair (p, q) of integers with q != 0 standing for p/q.
// Pairs are not reduced automatically: identity is the cross-multiplication
// equivalence p*d == q*c, and String shows the stored pair. Reduce returns
// the canonical lowest-terms representative with a positive denominator,
// and Hash is computed over that representative.
package rational

import (
	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/integer"
	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/trace"
)

// Rational is the fraction p/q. The denominator is never zero.
type Rational struct {
	p, q integer.Integer
}

var (
	Zero     = Rational{p: integer.Zero, q: integer.One}
	One      = Rational{p: integer.One, q: integer.One}
	MinusOne = Rational{p: integer.MinusOne, q: integer.One}
)

// New constructs p/q.
// Returns a DIVISION_BY_ZERO error when q is zero.
func New(p, q integer.Integer) (Rational, error) {
	if q.IsZero() {
		return Rational{}, arith.New(arith.CodeDivisionByZero, "rational.New", "%v/%v has a zero denominator", p, q)
	}
	return Rational{p: p, q: q}, nil
}

// MustNew is like New but panics on error.
// Use only in tests or when q is known to be non-zero.
func MustNew(p, q integer.Integer) Rational {
	r, err := New(p, q)
	if err != nil {
		panic(err)
	}
	return r
}

// FromInts constructs p/q from host integers.
func FromInts(p, q int) (Rational, error) {
	return New(integer.New(p), integer.New(q))
}

// FromInteger embeds z as z/1.
func FromInteger(z integer.Integer) Rational {
	return Rational{p: z, q: integer.One}
}

// FromNatural embeds n through the integer layer.
func FromNatural(n natural.Natural) Rational {
	return FromInteger(integer.FromNatural(n))
}

// Num returns the stored numerator.
func (r Rational) Num() integer.Integer { return r.p }

// Den returns the stored denominator.
func (r Rational) Den() integer.Integer { return r.q }

// Sign returns -1, 0 or +1.
func (r Rational) Sign() int {
	return r.p.Sign() * r.q.Sign()
}

// IsZero reports whether the numerator is zero.
func (r Rational) IsZero() bool {
	return r.p.IsZero()
}

// Ops applies rational arithmetic and reports derivations, including those
// of the integer operations on numerators and denominators, to its tracer.
// The zero Ops reports nothing; the methods on Rational use it.
type Ops struct {
	t *trace.Tracer
}

// With returns Ops reporting to t.
func With(t *trace.Tracer) Ops {
	return Ops{t: t}
}

func (o Ops) integers() integer.Ops {
	return integer.With(o.t)
}

// Equal compares cross products: p*x.q == q*x.p.
func (r Rational) Equal(x Rational) bool { return Ops{}.Equal(r, x) }

// LessOrEqual reports r <= x.
func (r Rational) LessOrEqual(x Rational) bool { return Ops{}.LessOrEqual(r, x) }

// Less reports r < x.
func (r Rational) Less(x Rational) bool { return Ops{}.Less(r, x) }

// Add returns (p*x.q + q*x.p) / (q*x.q).
func (r Rational) Add(x Rational) Rational { return Ops{}.Add(r, x) }

// Sub returns r + (-x).
func (r Rational) Sub(x Rational) Rational { return Ops{}.Sub(r, x) }

// Mul returns (p*x.p) / (q*x.q).
func (r Rational) Mul(x Rational) Rational { return Ops{}.Mul(r, x) }

// Div returns (p*x.q) / (q*x.p).
// Returns a DIVISION_BY_ZERO error when x is zero.
func (r Rational) Div(x Rational) (Rational, error) { return Ops{}.Div(r, x) }

// Pow raises r to a natural exponent by repeated multiplication.
func (r Rational) Pow(x natural.Natural) Rational { return Ops{}.Pow(r, x) }

// Reduce returns the lowest-terms representative with a positive
// denominator. Both magnitudes are divided by their greatest common divisor
// and the sign is carried by the numerator. Reduce is idempotent and never
// leaves the equivalence class of r.
func (r Rational) Reduce() Rational { return Ops{}.Reduce(r) }

// Compare returns -1, 0 or +1 as r is less than, equal to, or greater than x.
// Cross-multiplying by a negative denominator reverses the inequality, so the
// result flips when exactly one of the two denominators is negative.
func (r Rational) Compare(x Rational) int {
	c := r.p.Mul(x.q).Compare(r.q.Mul(x.p))
	if (r.q.Sign() < 0) != (x.q.Sign() < 0) {
		return -c
	}
	return c
}

// Neg returns -p/q.
func (r Rational) Neg() Rational {
	return Rational{p: r.p.Neg(), q: r.q}
}

// Inv returns q/p.
// Returns a DIVISION_BY_ZERO error when r is zero.
func (r Rational) Inv() (Rational, error) {
	if r.IsZero() {
		return Rational{}, arith.New(arith.CodeDivisionByZero, "rational.Inv", "zero has no inverse")
	}
	return Rational{p: r.q, q: r.p}, nil
}

// Abs returns |p|/|q|.
func (r Rational) Abs() Rational {
	return Rational{
		p: integer.FromNatural(r.p.Abs()),
		q: integer.FromNatural(r.q.Abs()),
	}
}

func (o Ops) Equal(r, x Rational) bool {
	z := o.integers()
	eq := z.Equal(z.Mul(r.p, x.q), z.Mul(r.q, x.p))
	o.t.Derive(trace.LevelEqual, "%v == %v = %v * %v == %v * %v = %t",
		repr(r), repr(x), r.p, x.q, r.q, x.p, eq)
	return eq
}

func (o Ops) LessOrEqual(r, x Rational) bool {
	le := r.Compare(x) <= 0
	o.t.Derive(trace.LevelOrder, "%v <= %v = %v * %v <= %v * %v = %t",
		repr(r), repr(x), r.p, x.q, r.q, x.p, le)
	return le
}

func (o Ops) Less(r, x Rational) bool {
	lt := r.Compare(x) < 0
	o.t.Derive(trace.LevelStrict, "%v < %v = %v <= %v and %v != %v = %t",
		repr(r), repr(x), repr(r), repr(x), repr(r), repr(x), lt)
	return lt
}

func (o Ops) Add(r, x Rational) Rational {
	z := o.integers()
	sum := Rational{
		p: z.Add(z.Mul(r.p, x.q), z.Mul(r.q, x.p)).Normalize(),
		q: z.Mul(r.q, x.q).Normalize(),
	}
	o.t.Derive(trace.LevelAdditive, "%v + %v = Q((%v*%v + %v*%v) / (%v*%v))",
		repr(r), repr(x), r.p, x.q, r.q, x.p, r.q, x.q)
	return sum
}

func (o Ops) Sub(r, x Rational) Rational {
	z := o.integers()
	diff := Rational{
		p: z.Sub(z.Mul(r.p, x.q), z.Mul(r.q, x.p)).Normalize(),
		q: z.Mul(r.q, x.q).Normalize(),
	}
	o.t.Derive(trace.LevelAdditive, "%v - %v = %v + -%v", repr(r), repr(x), repr(r), repr(x))
	return diff
}

func (o Ops) Mul(r, x Rational) Rational {
	z := o.integers()
	prod := Rational{
		p: z.Mul(r.p, x.p).Normalize(),
		q: z.Mul(r.q, x.q).Normalize(),
	}
	o.t.Derive(trace.LevelMultiplicative, "%v * %v = Q((%v*%v) / (%v*%v))",
		repr(r), repr(x), r.p, x.p, r.q, x.q)
	return prod
}

func (o Ops) Div(r, x Rational) (Rational, error) {
	if x.IsZero() {
		return Rational{}, arith.New(arith.CodeDivisionByZero, "rational.Div", "%v divided by zero", r)
	}
	z := o.integers()
	quo := Rational{
		p: z.Mul(r.p, x.q).Normalize(),
		q: z.Mul(r.q, x.p).Normalize(),
	}
	o.t.Derive(trace.LevelMultiplicative, "%v / %v = Q((%v*%v) / (%v*%v))",
		repr(r), repr(x), r.p, x.q, r.q, x.p)
	return quo, nil
}

func (o Ops) Pow(r Rational, x natural.Natural) Rational {
	p := One
	for range x.All() {
		p = o.Mul(p, r)
	}
	o.t.Derive(trace.LevelPower, "%v ** %v = %v", repr(r), x, repr(p))
	return p
}

func (o Ops) Reduce(r Rational) Rational {
	pa, qa := r.p.Abs(), r.q.Abs()
	g := gcd(pa, qa)

	// g divides both and is non-zero since qa is non-zero.
	num, _ := pa.FloorDiv(g)
	den, _ := qa.FloorDiv(g)

	p := integer.FromNatural(num)
	if r.Sign() < 0 {
		p = p.Neg()
	}
	red := Rational{p: p, q: integer.FromNatural(den)}
	o.t.Derive(trace.LevelMultiplicative, "reduce(%v) = %v with gcd %v", repr(r), repr(red), g)
	return red
}

// gcd is the Euclidean algorithm: gcd(a, b) = gcd(b, a mod b), gcd(a, 0) = a.
// The recursion depth is logarithmic in the operands.
func gcd(a, b natural.Natural) natural.Natural {
	if b.IsZero() {
		return a
	}
	m, _ := a.Mod(b)
	return gcd(b, m)
}

// IsInteger reports whether the reduced denominator is one.
func (r Rational) IsInteger() bool {
	return r.Reduce().q.Equal(integer.One)
}

// Int narrows an integer-valued rational to a host integer.
// Returns a NON_REPRESENTABLE error when the reduced denominator is not one.
func (r Rational) Int() (int, error) {
	red := r.Reduce()
	if !red.q.Equal(integer.One) {
		return 0, arith.New(arith.CodeNonRepresentable, "rational.Int", "%v is not an integer", r)
	}
	return red.p.Int(), nil
}

// Hash returns a hash of the reduced form. Equal rationals hash equally.
//
// The encoding is the quadrant-tagged squared-sum pairing of
// (|numerator|, |denominator|): with s = |p| + |q|, the four sign quadrants
// occupy disjoint ranges starting at (2s)^2 and (2s+1)^2, which makes the
// map injective.
func (r Rational) Hash() uint64 {
	red := r.Reduce()
	ap := uint64(red.p.Abs().Int())
	aq := uint64(red.q.Abs().Int())
	s := 2 * (ap + aq)

	var h uint64
	switch {
	case red.p.Sign() >= 0 && red.q.Sign() >= 0:
		h = s*s + 2*aq
	case red.p.Sign() >= 0:
		h = s*s + 2*aq + 1
	case red.q.Sign() >= 0:
		h = (s+1)*(s+1) + 2*aq
	default:
		h = (s+1)*(s+1) + 2*aq + 1
	}
	return h
}

// String returns "numerator/denominator" of the stored pair.
func (r Rational) String() string {
	return r.p.String() + "/" + r.q.String()
}

// repr renders a Rational as Q(p/q) in derivations.
type repr Rational

func (r repr) String() string {
	return "Q(" + Rational(r).String() + ")"
}
