package rational

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/integer"
	"github.com/roach88/peano/internal/natural"
	"github.com/roach88/peano/internal/trace"
)

func q(p, d int) Rational {
	r, err := FromInts(p, d)
	if err != nil {
		panic(err)
	}
	return r
}

func TestNewRejectsZeroDenominator(t *testing.T) {
	_, err := FromInts(1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, arith.ErrDivisionByZero)

	assert.Panics(t, func() { MustNew(integer.One, integer.Zero) })
}

func TestEqualByCrossMultiplication(t *testing.T) {
	assert.True(t, q(2, 4).Equal(q(1, 2)))
	assert.True(t, q(-1, 2).Equal(q(1, -2)))
	assert.True(t, q(-3, -6).Equal(q(1, 2)))
	assert.True(t, q(0, 5).Equal(q(0, -3)))
	assert.False(t, q(1, 2).Equal(q(2, 3)))
}

func TestAddMatchesDefinition(t *testing.T) {
	for i := -3; i <= 3; i++ {
		for j := -3; j <= 3; j++ {
			if j == 0 {
				continue
			}
			for k := -2; k <= 2; k++ {
				for m := 1; m <= 3; m++ {
					got := q(i, j).Add(q(k, m))
					assert.True(t, got.Equal(q(i*m+j*k, j*m)), "%d/%d + %d/%d", i, j, k, m)
				}
			}
		}
	}
}

func TestSubMulDiv(t *testing.T) {
	assert.True(t, q(1, 2).Sub(q(1, 3)).Equal(q(1, 6)))
	assert.True(t, q(2, 3).Mul(q(-3, 4)).Equal(q(-1, 2)))

	got, err := q(1, 2).Div(q(3, 4))
	require.NoError(t, err)
	assert.True(t, got.Equal(q(2, 3)))

	_, err = q(1, 2).Div(Zero)
	assert.ErrorIs(t, err, arith.ErrDivisionByZero)
}

func TestInvAndNeg(t *testing.T) {
	inv, err := q(-2, 5).Inv()
	require.NoError(t, err)
	assert.True(t, inv.Equal(q(-5, 2)))
	assert.True(t, inv.Mul(q(-2, 5)).Equal(One))

	_, err = q(0, 7).Inv()
	assert.ErrorIs(t, err, arith.ErrDivisionByZero)

	assert.True(t, q(3, 4).Add(q(3, 4).Neg()).IsZero())
}

func TestOrderingFlipsOnNegativeDenominator(t *testing.T) {
	// -1/2 < 1/3 whichever side carries the sign.
	assert.True(t, q(1, -2).Less(q(1, 3)))
	assert.True(t, q(-1, 2).Less(q(1, 3)))
	assert.True(t, q(1, 3).Less(q(-1, -2)))
	assert.False(t, q(1, 3).LessOrEqual(q(1, -2)))

	// Both negative: no flip.
	assert.True(t, q(1, -3).LessOrEqual(q(1, -4)))
	assert.Equal(t, 0, q(2, -4).Compare(q(-1, 2)))
}

func TestOrderingAgreesWithHostFractions(t *testing.T) {
	vals := [][2]int{{-3, 2}, {1, -1}, {-1, 3}, {0, 1}, {1, 4}, {2, -6}, {1, 2}, {5, 3}, {-4, -2}}
	for _, a := range vals {
		for _, b := range vals {
			// a0/a1 <= b0/b1 via exact cross multiplication on positive denominators.
			an, ad := a[0], a[1]
			bn, bd := b[0], b[1]
			if ad < 0 {
				an, ad = -an, -ad
			}
			if bd < 0 {
				bn, bd = -bn, -bd
			}
			want := an*bd <= bn*ad
			assert.Equal(t, want, q(a[0], a[1]).LessOrEqual(q(b[0], b[1])), "%v <= %v", a, b)
		}
	}
}

func TestReduce(t *testing.T) {
	cases := []struct {
		in       Rational
		num, den int
	}{
		{q(2, 4), 1, 2},
		{q(-6, 4), -3, 2},
		{q(6, -4), -3, 2},
		{q(-6, -4), 3, 2},
		{q(0, -9), 0, 1},
		{q(7, 1), 7, 1},
	}
	for _, tc := range cases {
		red := tc.in.Reduce()
		assert.Equal(t, tc.num, red.Num().Int(), "%v", tc.in)
		assert.Equal(t, tc.den, red.Den().Int(), "%v", tc.in)
		assert.True(t, red.Equal(tc.in))
	}
}

func TestReduceIsIdempotent(t *testing.T) {
	for i := -6; i <= 6; i++ {
		for j := -6; j <= 6; j++ {
			if j == 0 {
				continue
			}
			once := q(i, j).Reduce()
			twice := once.Reduce()
			assert.Equal(t, once.String(), twice.String())
			assert.True(t, once.Equal(q(i, j)))
		}
	}
}

func TestEqualImpliesSameHash(t *testing.T) {
	for i := -6; i <= 6; i++ {
		for j := -6; j <= 6; j++ {
			if j == 0 {
				continue
			}
			for k := 1; k <= 3; k++ {
				a, b := q(i, j), q(i*k, j*k)
				require.True(t, a.Equal(b))
				assert.Equal(t, a.Hash(), b.Hash(), "%v vs %v", a, b)
			}
		}
	}
}

func TestHashSeparatesDistinctValues(t *testing.T) {
	seen := map[uint64]Rational{}
	for i := -10; i <= 10; i++ {
		for j := 1; j <= 10; j++ {
			r := q(i, j).Reduce()
			if prev, ok := seen[r.Hash()]; ok {
				assert.True(t, prev.Equal(r), "collision between %v and %v", prev, r)
				continue
			}
			seen[r.Hash()] = r
		}
	}
}

func TestIntAndIsInteger(t *testing.T) {
	v, err := q(6, 3).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.True(t, q(-6, 3).IsInteger())

	v, err = q(-8, -4).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = q(1, 2).Int()
	assert.ErrorIs(t, err, arith.ErrNonRepresentable)
	assert.False(t, q(1, 2).IsInteger())
}

func TestPow(t *testing.T) {
	assert.True(t, q(2, 3).Pow(natural.MustNew(3)).Equal(q(8, 27)))
	assert.True(t, q(-1, 2).Pow(natural.MustNew(2)).Equal(q(1, 4)))
	assert.True(t, q(5, 7).Pow(natural.Zero).Equal(One))
}

func TestStringShowsStoredPair(t *testing.T) {
	assert.Equal(t, "2/4", q(2, 4).String())
	assert.Equal(t, "1/-2", q(1, -2).String())
	assert.Equal(t, "1/2", q(2, 4).Reduce().String())
}

func TestEmbeddings(t *testing.T) {
	for i := -4; i <= 4; i++ {
		assert.True(t, FromInteger(integer.New(i)).Equal(q(i, 1)))
	}
	for i := 0; i <= 4; i++ {
		assert.True(t, FromNatural(natural.MustNew(i)).Equal(q(i, 1)))
	}
}

func TestAbsAndSign(t *testing.T) {
	assert.True(t, q(-3, 4).Abs().Equal(q(3, 4)))
	assert.True(t, q(3, -4).Abs().Equal(q(3, 4)))
	assert.Equal(t, -1, q(3, -4).Sign())
	assert.Equal(t, 1, q(-3, -4).Sign())
	assert.Equal(t, 0, q(0, -4).Sign())
}

func TestDerivationLevels(t *testing.T) {
	var buf bytes.Buffer
	_ = With(trace.To(&buf, trace.LevelPower)).Pow(q(1, 2), natural.MustNew(2))
	assert.Equal(t, "L6: Q(1/2) ** 2 = Q(1/4)\n", buf.String())
}

func TestRenderingOperandsDoesNotTrace(t *testing.T) {
	var buf bytes.Buffer
	ops := With(trace.To(&buf, trace.LevelOrder))

	_ = ops.Less(q(-1, 2), q(1, 3))
	assert.Equal(t,
		"L3: Q(-1/2) < Q(1/3) = Q(-1/2) <= Q(1/3) and Q(-1/2) != Q(1/3) = true\n",
		buf.String())

	buf.Reset()
	_ = q(2, 4).Reduce()
	_ = q(2, 4).String()
	assert.Empty(t, buf.String())

	_ = ops.Reduce(q(2, 4))
	assert.Equal(t, "L5: reduce(Q(2/4)) = Q(1/2) with gcd 2\n", buf.String())
}
