package residue

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/natural"
)

func ring(t *testing.T, m int) Ring {
	t.Helper()
	r, err := NewRing(natural.MustNew(m))
	require.NoError(t, err)
	return r
}

func el(r Ring, k int) Element { return r.Elem(natural.MustNew(k)) }

func TestNewRingRejectsZero(t *testing.T) {
	_, err := NewRing(natural.Zero)
	assert.ErrorIs(t, err, arith.ErrDivisionByZero)
}

func TestElemReduces(t *testing.T) {
	r := ring(t, 5)
	assert.Equal(t, "2", el(r, 12).String())
	assert.True(t, el(r, 7).Equal(el(r, 2)))
	assert.Equal(t, "Z/5", r.String())
}

func TestArithmetic(t *testing.T) {
	r := ring(t, 7)
	for a := 0; a < 7; a++ {
		for b := 0; b < 7; b++ {
			sum, err := el(r, a).Add(el(r, b))
			require.NoError(t, err)
			assert.Equal(t, (a+b)%7, sum.Natural().Int())

			prod, err := el(r, a).Mul(el(r, b))
			require.NoError(t, err)
			assert.Equal(t, (a*b)%7, prod.Natural().Int())

			diff, err := el(r, a).Sub(el(r, b))
			require.NoError(t, err)
			assert.Equal(t, ((a-b)%7+7)%7, diff.Natural().Int())
		}
	}
	assert.Equal(t, 0, el(r, 0).Neg().Natural().Int())
	assert.Equal(t, 4, el(r, 3).Neg().Natural().Int())
}

func TestMixedRingsAreRejected(t *testing.T) {
	_, err := el(ring(t, 5), 1).Add(el(ring(t, 7), 1))
	assert.ErrorIs(t, err, arith.ErrTypeMismatch)

	_, err = Element{}.Mul(el(ring(t, 5), 1))
	assert.ErrorIs(t, err, arith.ErrTypeMismatch)
}

func TestPow(t *testing.T) {
	r := ring(t, 7)
	assert.Equal(t, 1, el(r, 3).Pow(natural.MustNew(6)).Natural().Int())
	assert.Equal(t, 1, el(r, 0).Pow(natural.Zero).Natural().Int())
	assert.Equal(t, 6, el(r, 3).Pow(natural.MustNew(3)).Natural().Int())
}

func TestInverse(t *testing.T) {
	r := ring(t, 7)
	for a := 1; a < 7; a++ {
		inv, err := el(r, a).Inverse()
		require.NoError(t, err)
		prod, _ := el(r, a).Mul(inv)
		assert.Equal(t, 1, prod.Natural().Int(), "%d^-1 mod 7", a)
	}

	_, err := el(r, 0).Inverse()
	assert.ErrorIs(t, err, arith.ErrNotInvertible)

	_, err = el(ring(t, 6), 2).Inverse()
	assert.ErrorIs(t, err, arith.ErrNotInvertible)
}

func TestDiv(t *testing.T) {
	r := ring(t, 6)
	got, err := el(r, 4).Div(el(r, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Natural().Int())

	_, err = el(r, 3).Div(el(r, 2))
	assert.ErrorIs(t, err, arith.ErrNotInvertible)
}

func TestParseOp(t *testing.T) {
	for in, want := range map[string]Op{"add": OpAdd, "+": OpAdd, "MUL": OpMul, "*": OpMul, "pow": OpPow, "^": OpPow} {
		got, err := ParseOp(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseOp("div")
	assert.Error(t, err)
}

func TestTablesGolden(t *testing.T) {
	r := ring(t, 5)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for name, op := range map[string]Op{"z5_add": OpAdd, "z5_mul": OpMul, "z5_pow": OpPow} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.RenderTable(&buf, op))
			g.Assert(t, name, buf.Bytes())
		})
	}
}

func TestTableShape(t *testing.T) {
	tbl, err := ring(t, 3).Table(OpMul)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 3)
	assert.Len(t, tbl.Columns, 3)
	require.Len(t, tbl.Cells, 3)
	assert.Equal(t, "1", tbl.Cells[2][2].String())

	_, err = ring(t, 3).Table(Op("/"))
	assert.Error(t, err)
}
