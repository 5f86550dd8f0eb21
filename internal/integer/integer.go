// Package integer implements signed integers as formal differences of
// Peano naturals.
//
// An Integer is a pair (a, b) of naturals standing for a - b. The pair is
// not unique: (5, 3) and (7, 5) are the same integer. Identity is the
// equivalence (a, b) ~ (c, d) iff a + d = b + c, and every comparison is
// phrased through cross sums so that the pair never needs to be canonical.
// Normalize returns the minimal representative.
package integer

import (
	"strconv"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/trace"
)

// Integer is the formal difference a - b.
// The zero value is zero.
type Integer struct {
	a, b natural.Natural
}

var (
	Zero     = Integer{}
	One      = Integer{a: natural.One}
	MinusOne = Integer{b: natural.One}
)

// New constructs the Integer for a signed host integer.
func New(k int) Integer {
	if k >= 0 {
		return Integer{a: natural.MustNew(k)}
	}
	return Integer{b: natural.MustNew(-k)}
}

// FromPair constructs the integer a - b.
func FromPair(a, b natural.Natural) Integer {
	return Integer{a: a, b: b}
}

// FromNatural embeds n as (n, 0). The embedding preserves equality,
// addition and multiplication.
func FromNatural(n natural.Natural) Integer {
	return Integer{a: n}
}

// Pair returns the stored representative (a, b).
func (z Integer) Pair() (a, b natural.Natural) {
	return z.a, z.b
}

// Ops applies integer arithmetic and reports derivations, including those
// of the natural operations on the pair components, to its tracer. The
// zero Ops reports nothing; the methods on Integer use it.
type Ops struct {
	t *trace.Tracer
}

// With returns Ops reporting to t.
func With(t *trace.Tracer) Ops {
	return Ops{t: t}
}

func (o Ops) nat() natural.Ops {
	return natural.With(o.t)
}

// Equal compares cross sums: a + x.b == b + x.a.
func (z Integer) Equal(x Integer) bool { return Ops{}.Equal(z, x) }

// LessOrEqual compares cross sums: a + x.b <= b + x.a.
func (z Integer) LessOrEqual(x Integer) bool { return Ops{}.LessOrEqual(z, x) }

// Less reports z < x.
func (z Integer) Less(x Integer) bool { return Ops{}.Less(z, x) }

// Add is the componentwise pair sum.
func (z Integer) Add(x Integer) Integer { return Ops{}.Add(z, x) }

// Sub returns z + (-x).
func (z Integer) Sub(x Integer) Integer { return Ops{}.Sub(z, x) }

// Mul expands (a - b)(c - d) = (ac + bd) - (ad + bc).
func (z Integer) Mul(x Integer) Integer { return Ops{}.Mul(z, x) }

// FloorDiv returns the floor quotient z // x.
// Returns a DIVISION_BY_ZERO error when x is zero.
func (z Integer) FloorDiv(x Integer) (Integer, error) { return Ops{}.FloorDiv(z, x) }

// Mod returns the floor remainder z % x; it has the sign of x.
// Returns a DIVISION_BY_ZERO error when x is zero.
func (z Integer) Mod(x Integer) (Integer, error) { return Ops{}.Mod(z, x) }

// DivMod returns (z // x, z % x) with z = q*x + r.
// Returns a DIVISION_BY_ZERO error when x is zero.
func (z Integer) DivMod(x Integer) (q, r Integer, err error) {
	return Ops{}.divMod("integer.DivMod", z, x)
}

// Pow raises z to a natural exponent by repeated multiplication.
func (z Integer) Pow(x natural.Natural) Integer { return Ops{}.Pow(z, x) }

// Compare returns -1, 0 or +1 as z is less than, equal to, or greater than x.
func (z Integer) Compare(x Integer) int {
	return z.a.Add(x.b).Compare(z.b.Add(x.a))
}

// Sign returns -1, 0 or +1.
func (z Integer) Sign() int {
	return z.a.Compare(z.b)
}

// IsZero reports whether z equals zero.
func (z Integer) IsZero() bool {
	return z.Sign() == 0
}

// Neg swaps the pair.
func (z Integer) Neg() Integer {
	return Integer{a: z.b, b: z.a}
}

// Normalize returns the minimal pair: (0, b-a) when a <= b, else (a-b, 0).
// The subtraction is always taken in the direction that cannot underflow.
func (z Integer) Normalize() Integer {
	if z.a.LessOrEqual(z.b) {
		d, _ := z.b.Sub(z.a)
		return Integer{b: d}
	}
	d, _ := z.a.Sub(z.b)
	return Integer{a: d}
}

// Abs returns the magnitude as a Natural.
func (z Integer) Abs() natural.Natural {
	n := z.Normalize()
	if n.a.IsZero() {
		return n.b
	}
	return n.a
}

func (o Ops) Equal(z, x Integer) bool {
	n := o.nat()
	eq := n.Equal(n.Add(z.a, x.b), n.Add(z.b, x.a))
	o.t.Derive(trace.LevelEqual, "%v == %v = %v + %v == %v + %v = %t",
		repr(z), repr(x), z.a, x.b, z.b, x.a, eq)
	return eq
}

func (o Ops) LessOrEqual(z, x Integer) bool {
	n := o.nat()
	le := n.LessOrEqual(n.Add(z.a, x.b), n.Add(z.b, x.a))
	o.t.Derive(trace.LevelOrder, "%v <= %v = %v + %v <= %v + %v = %t",
		repr(z), repr(x), z.a, x.b, z.b, x.a, le)
	return le
}

func (o Ops) Less(z, x Integer) bool {
	lt := z.Compare(x) < 0
	o.t.Derive(trace.LevelStrict, "%v < %v = %t", repr(z), repr(x), lt)
	return lt
}

func (o Ops) Add(z, x Integer) Integer {
	n := o.nat()
	sum := Integer{a: n.Add(z.a, x.a), b: n.Add(z.b, x.b)}
	o.t.Derive(trace.LevelAdditive, "%v + %v = Z(%v + %v, %v + %v)",
		repr(z), repr(x), z.a, x.a, z.b, x.b)
	return sum
}

func (o Ops) Sub(z, x Integer) Integer {
	n := o.nat()
	diff := Integer{a: n.Add(z.a, x.b), b: n.Add(z.b, x.a)}
	o.t.Derive(trace.LevelAdditive, "%v - %v = %v + -%v", repr(z), repr(x), repr(z), repr(x))
	return diff
}

func (o Ops) Mul(z, x Integer) Integer {
	n := o.nat()
	prod := Integer{
		a: n.Add(n.Mul(z.a, x.a), n.Mul(z.b, x.b)),
		b: n.Add(n.Mul(z.a, x.b), n.Mul(z.b, x.a)),
	}
	o.t.Derive(trace.LevelMultiplicative, "%v * %v = Z(%v*%v + %v*%v, %v*%v + %v*%v)",
		repr(z), repr(x), z.a, x.a, z.b, x.b, z.a, x.b, z.b, x.a)
	return prod
}

func (o Ops) FloorDiv(z, x Integer) (Integer, error) {
	q, _, err := o.divMod("integer.FloorDiv", z, x)
	if err != nil {
		return Integer{}, err
	}
	o.t.Derive(trace.LevelMultiplicative, "%v // %v = %v", repr(z), repr(x), repr(q))
	return q, nil
}

func (o Ops) Mod(z, x Integer) (Integer, error) {
	_, r, err := o.divMod("integer.Mod", z, x)
	if err != nil {
		return Integer{}, err
	}
	o.t.Derive(trace.LevelMultiplicative, "%v %% %v = %v", repr(z), repr(x), repr(r))
	return r, nil
}

func (o Ops) DivMod(z, x Integer) (q, r Integer, err error) {
	return o.divMod("integer.DivMod", z, x)
}

// divMod resolves the four sign cases by repeated subtraction or addition:
//   - same sign and |r| >= |x|: r - x, quotient + 1
//   - opposite signs, r not yet crossed zero: r + x, quotient - 1
//   - otherwise r already lies between 0 and x: stop
func (o Ops) divMod(op string, z, x Integer) (Integer, Integer, error) {
	xs := x.Sign()
	if xs == 0 {
		return Integer{}, Integer{}, arith.New(arith.CodeDivisionByZero, op, "%v divided by zero", z)
	}
	xabs := x.Abs()
	q := Zero
	r := z.Normalize()
	for {
		rs := r.Sign()
		switch {
		case rs == xs && xabs.LessOrEqual(r.Abs()):
			r = o.Sub(r, x).Normalize()
			q = o.Add(q, One).Normalize()
		case rs != 0 && rs != xs:
			r = o.Add(r, x).Normalize()
			q = o.Sub(q, One).Normalize()
		default:
			return q, r, nil
		}
	}
}

func (o Ops) Pow(z Integer, x natural.Natural) Integer {
	p := One
	for range x.All() {
		p = o.Mul(p, z).Normalize()
	}
	o.t.Derive(trace.LevelPower, "%v ** %v = %v", repr(z), x, repr(p))
	return p
}

// Int returns the signed host integer, unwinding through Abs.
func (z Integer) Int() int {
	m := z.Abs().Int()
	if z.Sign() < 0 {
		return -m
	}
	return m
}

// String returns the signed decimal text.
func (z Integer) String() string {
	return strconv.Itoa(z.Int())
}

// repr renders an Integer as Z(k) in derivations.
type repr Integer

func (r repr) String() string {
	return "Z(" + Integer(r).String() + ")"
}
