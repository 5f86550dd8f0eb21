// Package polynomial implements polynomials in one indeterminate with
// rational coefficients.
//
// Coefficient i multiplies x^i. A Polynomial is always held trimmed:
// trailing zero coefficients are dropped, but at least one coefficient
// remains, so the zero polynomial is the single coefficient 0.
package polynomial

import (
	"strconv"
	"strings"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/integer"
	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/rational"
	"github.com/roach88/peano/internal/trace"
)

// Polynomial is an immutable trimmed coefficient sequence.
// The zero value is the zero polynomial.
type Polynomial struct {
	c []rational.Rational
}

var (
	Zero = Polynomial{c: []rational.Rational{rational.Zero}}
	One  = Polynomial{c: []rational.Rational{rational.One}}

	// X is the indeterminate.
	X = Monomial(rational.One, 1)
)

// New builds a polynomial from coefficients in ascending degree order.
func New(coeffs ...rational.Rational) Polynomial {
	c := make([]rational.Rational, len(coeffs))
	copy(c, coeffs)
	return trim(c)
}

// FromPairs builds a polynomial from (numerator, denominator) pairs in
// ascending degree order.
// Returns a DIVISION_BY_ZERO error if any denominator is zero.
func FromPairs(pairs ...[2]int) (Polynomial, error) {
	c := make([]rational.Rational, len(pairs))
	for i, pr := range pairs {
		r, err := rational.FromInts(pr[0], pr[1])
		if err != nil {
			return Polynomial{}, err
		}
		c[i] = r
	}
	return trim(c), nil
}

// MustFromPairs is like FromPairs but panics on error.
func MustFromPairs(pairs ...[2]int) Polynomial {
	p, err := FromPairs(pairs...)
	if err != nil {
		panic(err)
	}
	return p
}

// FromRational embeds r as a constant.
func FromRational(r rational.Rational) Polynomial {
	return Polynomial{c: []rational.Rational{r}}
}

// FromInteger embeds z through the rational layer.
func FromInteger(z integer.Integer) Polynomial {
	return FromRational(rational.FromInteger(z))
}

// FromNatural embeds n through the integer and rational layers.
func FromNatural(n natural.Natural) Polynomial {
	return FromRational(rational.FromNatural(n))
}

// Monomial returns c*x^k. k must be non-negative.
func Monomial(c rational.Rational, k int) Polynomial {
	coeffs := make([]rational.Rational, k+1)
	for i := range k {
		coeffs[i] = rational.Zero
	}
	coeffs[k] = c
	return trim(coeffs)
}

// trim drops trailing zero coefficients, keeping at least one.
// It takes ownership of c.
func trim(c []rational.Rational) Polynomial {
	n := len(c)
	for n > 1 && c[n-1].IsZero() {
		n--
	}
	if n == 0 {
		return Zero
	}
	return Polynomial{c: c[:n]}
}

func (p Polynomial) coeffs() []rational.Rational {
	if len(p.c) == 0 {
		return Zero.c
	}
	return p.c
}

// Degree returns len(coefficients) - 1. The zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	return len(p.coeffs()) - 1
}

// Coefficient returns the coefficient of x^i, zero beyond the degree.
func (p Polynomial) Coefficient(i int) rational.Rational {
	c := p.coeffs()
	if i < 0 || i >= len(c) {
		return rational.Zero
	}
	return c[i]
}

// Coefficients returns a copy of the trimmed coefficient sequence.
func (p Polynomial) Coefficients() []rational.Rational {
	c := p.coeffs()
	out := make([]rational.Rational, len(c))
	copy(out, c)
	return out
}

// Leading returns the coefficient of the highest power.
func (p Polynomial) Leading() rational.Rational {
	c := p.coeffs()
	return c[len(c)-1]
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	c := p.coeffs()
	return len(c) == 1 && c[0].IsZero()
}

// Ops applies polynomial arithmetic and reports derivations, including
// those of the coefficient arithmetic, to its tracer. The zero Ops reports
// nothing; the methods on Polynomial use it.
type Ops struct {
	t *trace.Tracer
}

// With returns Ops reporting to t.
func With(t *trace.Tracer) Ops {
	return Ops{t: t}
}

func (o Ops) coeff() rational.Ops {
	return rational.With(o.t)
}

// Equal compares trimmed coefficient sequences elementwise.
func (p Polynomial) Equal(x Polynomial) bool { return Ops{}.Equal(p, x) }

// LessOrEqual reports p <= x in the canonical order.
func (p Polynomial) LessOrEqual(x Polynomial) bool { return Ops{}.LessOrEqual(p, x) }

// Less reports p < x in the canonical order.
func (p Polynomial) Less(x Polynomial) bool { return Ops{}.Less(p, x) }

// Add sums coefficientwise, padding the shorter operand with zeros.
func (p Polynomial) Add(x Polynomial) Polynomial { return Ops{}.Add(p, x) }

// Sub returns p + (-x).
func (p Polynomial) Sub(x Polynomial) Polynomial { return Ops{}.Sub(p, x) }

// Mul is the discrete convolution of the coefficient sequences.
// Product coefficients are kept in lowest terms.
func (p Polynomial) Mul(x Polynomial) Polynomial { return Ops{}.Mul(p, x) }

// FloorDiv returns the quotient of polynomial long division.
// Returns a DIVISION_BY_ZERO error when x is the zero polynomial.
func (p Polynomial) FloorDiv(x Polynomial) (Polynomial, error) { return Ops{}.FloorDiv(p, x) }

// Mod returns the remainder of polynomial long division; its degree is
// below that of x, or it is zero.
// Returns a DIVISION_BY_ZERO error when x is the zero polynomial.
func (p Polynomial) Mod(x Polynomial) (Polynomial, error) { return Ops{}.Mod(p, x) }

// DivMod returns (p // x, p % x) with p = q*x + r.
// Returns a DIVISION_BY_ZERO error when x is the zero polynomial.
func (p Polynomial) DivMod(x Polynomial) (q, r Polynomial, err error) {
	return Ops{}.divMod("polynomial.DivMod", p, x)
}

// Pow raises p to a natural exponent by repeated multiplication.
func (p Polynomial) Pow(x natural.Natural) Polynomial { return Ops{}.Pow(p, x) }

// Compare orders by degree first, then by coefficients from the highest
// power down. It is a canonical total order, not a magnitude.
func (p Polynomial) Compare(x Polynomial) int {
	a, b := p.coeffs(), x.coeffs()
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Neg negates every coefficient.
func (p Polynomial) Neg() Polynomial {
	c := p.coeffs()
	out := make([]rational.Rational, len(c))
	for i, r := range c {
		out[i] = r.Neg()
	}
	return trim(out)
}

func (o Ops) Equal(p, x Polynomial) bool {
	a, b := p.coeffs(), x.coeffs()
	eq := len(a) == len(b)
	for i := 0; eq && i < len(a); i++ {
		eq = o.coeff().Equal(a[i], b[i])
	}
	o.t.Derive(trace.LevelEqual, "%v == %v = %t", repr(p), repr(x), eq)
	return eq
}

func (o Ops) LessOrEqual(p, x Polynomial) bool {
	le := p.Compare(x) <= 0
	o.t.Derive(trace.LevelOrder, "%v <= %v = %t", repr(p), repr(x), le)
	return le
}

func (o Ops) Less(p, x Polynomial) bool {
	lt := p.Compare(x) < 0
	o.t.Derive(trace.LevelStrict, "%v < %v = %t", repr(p), repr(x), lt)
	return lt
}

func (o Ops) Add(p, x Polynomial) Polynomial {
	sum := make([]rational.Rational, max(p.Degree(), x.Degree())+1)
	for i := range sum {
		sum[i] = o.coeff().Add(p.Coefficient(i), x.Coefficient(i))
	}
	s := trim(sum)
	o.t.Derive(trace.LevelAdditive, "%v + %v = %v", repr(p), repr(x), repr(s))
	return s
}

func (o Ops) Sub(p, x Polynomial) Polynomial {
	d := o.Add(p, x.Neg())
	o.t.Derive(trace.LevelAdditive, "%v - %v = %v + -%v", repr(p), repr(x), repr(p), repr(x))
	return d
}

func (o Ops) Mul(p, x Polynomial) Polynomial {
	c := o.coeff()
	a, b := p.coeffs(), x.coeffs()
	prod := make([]rational.Rational, len(a)+len(b)-1)
	for i := range prod {
		prod[i] = rational.Zero
	}
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			prod[i+j] = c.Reduce(c.Add(prod[i+j], c.Mul(ai, bj)))
		}
	}
	m := trim(prod)
	o.t.Derive(trace.LevelMultiplicative, "%v * %v = %v", repr(p), repr(x), repr(m))
	return m
}

func (o Ops) FloorDiv(p, x Polynomial) (Polynomial, error) {
	q, _, err := o.divMod("polynomial.FloorDiv", p, x)
	if err != nil {
		return Polynomial{}, err
	}
	o.t.Derive(trace.LevelMultiplicative, "%v // %v = %v", repr(p), repr(x), repr(q))
	return q, nil
}

func (o Ops) Mod(p, x Polynomial) (Polynomial, error) {
	_, r, err := o.divMod("polynomial.Mod", p, x)
	if err != nil {
		return Polynomial{}, err
	}
	o.t.Derive(trace.LevelMultiplicative, "%v %% %v = %v", repr(p), repr(x), repr(r))
	return r, nil
}

func (o Ops) DivMod(p, x Polynomial) (q, r Polynomial, err error) {
	return o.divMod("polynomial.DivMod", p, x)
}

// divMod is schoolbook long division. Each step divides the remainder's
// leading coefficient by the divisor's, records the ratio at the degree
// gap, and subtracts ratio * x * x^gap; the remainder's degree strictly
// drops, so the loop ends after at most deg(p) - deg(x) + 1 steps.
func (o Ops) divMod(op string, p, x Polynomial) (Polynomial, Polynomial, error) {
	if x.IsZero() {
		return Polynomial{}, Polynomial{}, arith.New(arith.CodeDivisionByZero, op, "%v divided by the zero polynomial", p)
	}
	dx := x.Degree()
	if p.Degree() < dx {
		return Zero, p, nil
	}

	c := o.coeff()
	rem := p.Coefficients()
	quo := make([]rational.Rational, p.Degree()-dx+1)
	for i := range quo {
		quo[i] = rational.Zero
	}
	lead := x.Leading()
	div := x.coeffs()

	for k := len(rem) - 1; k >= dx; k-- {
		if rem[k].IsZero() {
			continue
		}
		// lead is non-zero for a trimmed non-zero divisor.
		t, _ := c.Div(rem[k], lead)
		t = c.Reduce(t)
		quo[k-dx] = t
		for j, dj := range div {
			rem[k-dx+j] = c.Reduce(c.Sub(rem[k-dx+j], c.Mul(t, dj)))
		}
	}
	return trim(quo), trim(rem), nil
}

func (o Ops) Pow(p Polynomial, x natural.Natural) Polynomial {
	r := One
	for range x.All() {
		r = o.Mul(r, p)
	}
	o.t.Derive(trace.LevelPower, "%v ** %v = %v", repr(p), x, repr(r))
	return r
}

// Reduce reduces every coefficient to lowest terms.
func (p Polynomial) Reduce() Polynomial {
	c := p.coeffs()
	out := make([]rational.Rational, len(c))
	for i, r := range c {
		out[i] = r.Reduce()
	}
	return trim(out)
}

// Int narrows a constant integer-valued polynomial to a host integer.
// Returns a NON_REPRESENTABLE error for positive degree or a fractional
// constant.
func (p Polynomial) Int() (int, error) {
	if p.Degree() != 0 {
		return 0, arith.New(arith.CodeNonRepresentable, "polynomial.Int", "%v has degree %d", p, p.Degree())
	}
	v, err := p.coeffs()[0].Int()
	if err != nil {
		return 0, arith.New(arith.CodeNonRepresentable, "polynomial.Int", "%v is not an integer constant", p)
	}
	return v, nil
}

// Eval evaluates p at r by Horner's scheme.
func (p Polynomial) Eval(r rational.Rational) rational.Rational {
	c := p.coeffs()
	acc := rational.Zero
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc.Mul(r).Add(c[i]).Reduce()
	}
	return acc
}

// String renders "c0+c1x^1+c2x^2..." with each coefficient as "p/q".
func (p Polynomial) String() string {
	var sb strings.Builder
	for i, c := range p.coeffs() {
		if i > 0 {
			sb.WriteString("+")
		}
		sb.WriteString(c.String())
		if i > 0 {
			sb.WriteString("x^")
			sb.WriteString(strconv.Itoa(i))
		}
	}
	return sb.String()
}

// repr renders a Polynomial as P(...) in derivations.
type repr Polynomial

func (r repr) String() string {
	return "P(" + Polynomial(r).String() + ")"
}
