package tower

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/integer"
	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/polynomial"
	"github.com/roach88/peano/internal/rational"
	"github.com/roach88/peano/internal/trace"
)

// Ops applies tower arithmetic, reporting the derivations of the layer
// operations it dispatches to to its tracer. The zero Ops reports nothing;
// the package-level functions use it.
type Ops struct {
	t *trace.Tracer
}

// With returns Ops reporting to t.
func With(t *trace.Tracer) Ops {
	return Ops{t: t}
}

// Add returns a + b in the higher of the two kinds.
func Add(a, b Value) (Value, error) { return Ops{}.Add(a, b) }

// Sub returns a - b. Two naturals stay natural, so the difference can fail
// with UNDERFLOW; lift either operand to an integer to avoid it.
func Sub(a, b Value) (Value, error) { return Ops{}.Sub(a, b) }

// Mul returns a * b in the higher of the two kinds.
func Mul(a, b Value) (Value, error) { return Ops{}.Mul(a, b) }

// Div is true division. Naturals and integers are lifted to rationals, so
// 1 / 2 is the rational 1/2.
// Returns DIVISION_BY_ZERO for a zero divisor and TYPE_MISMATCH for
// polynomial operands; use FloorDiv for polynomial long division.
func Div(a, b Value) (Value, error) { return Ops{}.Div(a, b) }

// FloorDiv returns the floor quotient for naturals and integers and the
// long-division quotient for polynomials.
// Returns TYPE_MISMATCH for rational operands.
func FloorDiv(a, b Value) (Value, error) { return Ops{}.FloorDiv(a, b) }

// Mod returns the remainder matching FloorDiv.
// Returns TYPE_MISMATCH for rational operands.
func Mod(a, b Value) (Value, error) { return Ops{}.Mod(a, b) }

// Neg returns -v. The negation of a natural is an integer.
func Neg(v Value) (Value, error) { return Ops{}.Neg(v) }

// Pow raises base to a natural exponent.
// Returns TYPE_MISMATCH when exp is not a natural, whatever its value.
func Pow(base, exp Value) (Value, error) { return Ops{}.Pow(base, exp) }

// Equal reports a == b after lifting both to a common kind.
func Equal(a, b Value) (bool, error) { return Ops{}.Equal(a, b) }

// Compare returns -1, 0 or +1 after lifting both to a common kind.
// Polynomials use the canonical degree-then-coefficients order.
func Compare(a, b Value) (int, error) {
	a, b, err := unify("tower.Compare", a, b, KindNatural)
	if err != nil {
		return 0, err
	}
	switch a.kind {
	case KindNatural:
		return a.n.Compare(b.n), nil
	case KindInteger:
		return a.z.Compare(b.z), nil
	case KindRational:
		return a.q.Compare(b.q), nil
	default:
		return a.p.Compare(b.p), nil
	}
}

func (o Ops) Add(a, b Value) (Value, error) {
	a, b, err := unify("tower.Add", a, b, KindNatural)
	if err != nil {
		return Value{}, err
	}
	switch a.kind {
	case KindNatural:
		return N(natural.With(o.t).Add(a.n, b.n)), nil
	case KindInteger:
		return Z(integer.With(o.t).Add(a.z, b.z)), nil
	case KindRational:
		return Q(rational.With(o.t).Add(a.q, b.q)), nil
	default:
		return P(polynomial.With(o.t).Add(a.p, b.p)), nil
	}
}

func (o Ops) Sub(a, b Value) (Value, error) {
	a, b, err := unify("tower.Sub", a, b, KindNatural)
	if err != nil {
		return Value{}, err
	}
	switch a.kind {
	case KindNatural:
		d, err := natural.With(o.t).Sub(a.n, b.n)
		if err != nil {
			return Value{}, err
		}
		return N(d), nil
	case KindInteger:
		return Z(integer.With(o.t).Sub(a.z, b.z)), nil
	case KindRational:
		return Q(rational.With(o.t).Sub(a.q, b.q)), nil
	default:
		return P(polynomial.With(o.t).Sub(a.p, b.p)), nil
	}
}

func (o Ops) Mul(a, b Value) (Value, error) {
	a, b, err := unify("tower.Mul", a, b, KindNatural)
	if err != nil {
		return Value{}, err
	}
	switch a.kind {
	case KindNatural:
		return N(natural.With(o.t).Mul(a.n, b.n)), nil
	case KindInteger:
		return Z(integer.With(o.t).Mul(a.z, b.z)), nil
	case KindRational:
		return Q(rational.With(o.t).Mul(a.q, b.q)), nil
	default:
		return P(polynomial.With(o.t).Mul(a.p, b.p)), nil
	}
}

func (o Ops) Div(a, b Value) (Value, error) {
	a, b, err := unify("tower.Div", a, b, KindRational)
	if err != nil {
		return Value{}, err
	}
	if a.kind == KindPolynomial {
		return Value{}, arith.New(arith.CodeTypeMismatch, "tower.Div", "polynomials support floor division only")
	}
	q, err := rational.With(o.t).Div(a.q, b.q)
	if err != nil {
		return Value{}, err
	}
	return Q(q), nil
}

func (o Ops) FloorDiv(a, b Value) (Value, error) {
	q, _, err := o.divMod("tower.FloorDiv", a, b)
	return q, err
}

func (o Ops) Mod(a, b Value) (Value, error) {
	_, r, err := o.divMod("tower.Mod", a, b)
	return r, err
}

func (o Ops) divMod(op string, a, b Value) (Value, Value, error) {
	a, b, err := unify(op, a, b, KindNatural)
	if err != nil {
		return Value{}, Value{}, err
	}
	switch a.kind {
	case KindNatural:
		q, r, err := natural.With(o.t).DivMod(a.n, b.n)
		if err != nil {
			return Value{}, Value{}, err
		}
		return N(q), N(r), nil
	case KindInteger:
		q, r, err := integer.With(o.t).DivMod(a.z, b.z)
		if err != nil {
			return Value{}, Value{}, err
		}
		return Z(q), Z(r), nil
	case KindPolynomial:
		q, r, err := polynomial.With(o.t).DivMod(a.p, b.p)
		if err != nil {
			return Value{}, Value{}, err
		}
		return P(q), P(r), nil
	default:
		return Value{}, Value{}, arith.New(arith.CodeTypeMismatch, op, "floor division is not defined on rationals")
	}
}

func (o Ops) Neg(v Value) (Value, error) {
	switch v.kind {
	case KindNatural:
		return Z(integer.FromNatural(v.n).Neg()), nil
	case KindInteger:
		return Z(v.z.Neg()), nil
	case KindRational:
		return Q(v.q.Neg()), nil
	case KindPolynomial:
		return P(v.p.Neg()), nil
	default:
		return Value{}, arith.New(arith.CodeTypeMismatch, "tower.Neg", "operand is %s", v.kind)
	}
}

func (o Ops) Pow(base, exp Value) (Value, error) {
	if exp.kind != KindNatural {
		return Value{}, arith.New(arith.CodeTypeMismatch, "tower.Pow", "exponent must be natural, got %s", exp.kind)
	}
	switch base.kind {
	case KindNatural:
		return N(natural.With(o.t).Pow(base.n, exp.n)), nil
	case KindInteger:
		return Z(integer.With(o.t).Pow(base.z, exp.n)), nil
	case KindRational:
		return Q(rational.With(o.t).Pow(base.q, exp.n)), nil
	case KindPolynomial:
		return P(polynomial.With(o.t).Pow(base.p, exp.n)), nil
	default:
		return Value{}, arith.New(arith.CodeTypeMismatch, "tower.Pow", "base is %s", base.kind)
	}
}

func (o Ops) Equal(a, b Value) (bool, error) {
	a, b, err := unify("tower.Equal", a, b, KindNatural)
	if err != nil {
		return false, err
	}
	switch a.kind {
	case KindNatural:
		return natural.With(o.t).Equal(a.n, b.n), nil
	case KindInteger:
		return integer.With(o.t).Equal(a.z, b.z), nil
	case KindRational:
		return rational.With(o.t).Equal(a.q, b.q), nil
	default:
		return polynomial.With(o.t).Equal(a.p, b.p), nil
	}
}

// Int narrows v to a host integer.
// Returns NON_REPRESENTABLE for fractional rationals and non-constant
// polynomials.
func Int(v Value) (int, error) {
	switch v.kind {
	case KindNatural:
		return v.n.Int(), nil
	case KindInteger:
		return v.z.Int(), nil
	case KindRational:
		return v.q.Int()
	case KindPolynomial:
		return v.p.Int()
	default:
		return 0, arith.New(arith.CodeTypeMismatch, "tower.Int", "operand is %s", v.kind)
	}
}

// Canonical returns the minimal representative of v in its own kind:
// normalized integers, reduced rationals and coefficientwise-reduced
// polynomials.
func Canonical(v Value) Value {
	switch v.kind {
	case KindInteger:
		return Z(v.z.Normalize())
	case KindRational:
		return Q(v.q.Reduce())
	case KindPolynomial:
		return P(v.p.Reduce())
	default:
		return v
	}
}

// CanonicalText is the text of Canonical(v). Equal values of the same kind
// have the same canonical text.
func CanonicalText(v Value) string {
	return Canonical(v).String()
}

// Hash returns a hash consistent with Equal across kinds: naturals, integers,
// rationals and constant polynomials hash as the rational they embed to.
func Hash(v Value) uint64 {
	if !v.IsValid() {
		return 0
	}
	if v.kind < KindPolynomial {
		q, _ := Lift(v, KindRational)
		return q.q.Hash()
	}
	if v.p.Degree() == 0 {
		return v.p.Leading().Hash()
	}
	h := fnv.New64a()
	var buf [8]byte
	for _, c := range v.p.Coefficients() {
		binary.BigEndian.PutUint64(buf[:], c.Hash())
		h.Write(buf[:])
	}
	return h.Sum64()
}
