package engine

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/peano/internal/arith"
	"github.com/roach88/peano/internal/ir"
	"github.com/roach88/peano/internal/store"
	"github.com/roach88/peano/internal/tower"
	"github.com/roach88/peano/internal/trace"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "peano.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEval_Value(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")))

	res, err := e.Eval(context.Background(), "3 + 4")
	require.NoError(t, err)
	require.NoError(t, res.Err)

	assert.Equal(t, tower.KindNatural, res.Value.Kind())
	assert.Equal(t, "run-1", res.Evaluation.RunID)
	assert.Equal(t, int64(1), res.Evaluation.Seq)
	assert.Equal(t, "natural", res.Evaluation.Kind)
	assert.Equal(t, "7", res.Evaluation.Result)
	assert.Equal(t, ir.MustValueDigest("natural", "7"), res.Evaluation.Digest)
	assert.Empty(t, res.Evaluation.ErrorCode)
	assert.Equal(t,
		ir.MustEvaluationID("run-1", 1, "3 + 4", res.Evaluation.Digest, ""),
		res.Evaluation.ID)
}

func TestEval_ArithmeticErrorIsOutcome(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")))

	res, err := e.Eval(context.Background(), "1 / 0")
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, arith.ErrDivisionByZero)

	assert.False(t, res.Value.IsValid())
	assert.Equal(t, "DIVISION_BY_ZERO", res.Evaluation.ErrorCode)
	assert.Empty(t, res.Evaluation.Digest)
	assert.NotEmpty(t, res.Evaluation.Error)
	assert.True(t, res.Evaluation.Failed())
}

func TestEval_SyntaxErrorIsOutcome(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")))

	res, err := e.Eval(context.Background(), "3 +")
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.Equal(t, "SYNTAX_ERROR", res.Evaluation.ErrorCode)
}

func TestEval_SeqIncreases(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")), WithClock(NewClockAt(10)))
	ctx := context.Background()

	for i, src := range []string{"1", "2 - 5", "x ^ 2"} {
		res, err := e.Eval(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, int64(11+i), res.Evaluation.Seq)
	}
}

func TestEval_MaxLiteral(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")), WithMaxLiteral(10))
	ctx := context.Background()

	res, err := e.Eval(ctx, "10 * 10")
	require.NoError(t, err)
	assert.Equal(t, "100", res.Evaluation.Result)

	res, err = e.Eval(ctx, "11")
	require.NoError(t, err)
	assert.ErrorIs(t, res.Err, arith.ErrResourceExhausted)
	assert.Equal(t, "RESOURCE_EXHAUSTED", res.Evaluation.ErrorCode)
	assert.Equal(t, int64(2), res.Evaluation.Seq)
}

func TestEval_DefaultMaxLiteral(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")))

	res, err := e.Eval(context.Background(), "123456789012")
	require.NoError(t, err)
	assert.Equal(t, "RESOURCE_EXHAUSTED", res.Evaluation.ErrorCode)
}

func TestEval_TracesOnlyTheExpression(t *testing.T) {
	var buf bytes.Buffer
	e := New(
		WithRunIDGenerator(NewFixedGenerator("run-1")),
		WithTracer(trace.To(&buf, trace.LevelEqual)),
	)
	ctx := context.Background()

	_, err := e.Eval(ctx, "3 + 4")
	require.NoError(t, err)
	assert.Equal(t, "L4: N(3) + N(4) = S(N(3) + N(3))\n", buf.String())

	buf.Reset()
	res, err := e.Eval(ctx, "2/4")
	require.NoError(t, err)
	assert.Equal(t, "1/2", res.Evaluation.Result)
	assert.Contains(t, buf.String(), "L5: Q(2/1) / Q(4/1) = ")
	assert.NotContains(t, buf.String(), "reduce(")

	buf.Reset()
	e.SetTracer(nil)
	_, err = e.Eval(ctx, "3 + 4")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestEval_EqualValuesShareDigest(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")))
	ctx := context.Background()

	a, err := e.Eval(ctx, "1/2")
	require.NoError(t, err)
	b, err := e.Eval(ctx, "2/4")
	require.NoError(t, err)

	assert.Equal(t, a.Evaluation.Digest, b.Evaluation.Digest)
	assert.Equal(t, "1/2", b.Evaluation.Result)
	assert.NotEqual(t, a.Evaluation.ID, b.Evaluation.ID)
}

func TestEval_CancelledContext(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Eval(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEval_Quota(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")), WithMaxEvaluations(2))
	ctx := context.Background()

	_, err := e.Eval(ctx, "1")
	require.NoError(t, err)
	_, err = e.Eval(ctx, "2")
	require.NoError(t, err)

	_, err = e.Eval(ctx, "3")
	require.Error(t, err)
	assert.True(t, IsQuotaError(err))
}

func TestEval_RecordsToStore(t *testing.T) {
	s := openStore(t)
	e := New(
		WithStore(s),
		WithSource("test"),
		WithRunIDGenerator(NewFixedGenerator("run-1")),
	)
	ctx := context.Background()

	r1, err := e.Eval(ctx, "3 * 4")
	require.NoError(t, err)
	r2, err := e.Eval(ctx, "0 - 1")
	require.NoError(t, err)

	run, evals, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "test", run.Source)
	assert.Equal(t, ir.EngineVersion, run.EngineVersion)
	assert.Equal(t, []ir.Evaluation{r1.Evaluation, r2.Evaluation}, evals)
	assert.Equal(t, "UNDERFLOW", evals[1].ErrorCode)
}

func TestRun_StartsOnce(t *testing.T) {
	e := New(WithRunIDGenerator(NewFixedGenerator("run-1")))
	ctx := context.Background()

	r1, err := e.Run(ctx)
	require.NoError(t, err)
	r2, err := e.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.Equal(t, "eval", r1.Source)
}

func TestReplay_Clean(t *testing.T) {
	s := openStore(t)
	e := New(WithStore(s), WithRunIDGenerator(NewFixedGenerator("run-1")))
	ctx := context.Background()
	for _, src := range []string{"3 + 4", "(x + 1) ^ 2", "7 // 0", "1/2 + 1/3"} {
		_, err := e.Eval(ctx, src)
		require.NoError(t, err)
	}

	result, err := Replay(ctx, s, "run-1")
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 4, result.Checked)
}

func TestReplay_DetectsTamperedRecord(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run := ir.Run{ID: "run-1", Source: "test", EngineVersion: ir.EngineVersion, IRVersion: ir.IRVersion}
	require.NoError(t, s.WriteRun(ctx, run))

	wrong := ir.MustValueDigest("natural", "8")
	require.NoError(t, s.WriteEvaluation(ctx, ir.Evaluation{
		ID:         ir.MustEvaluationID("run-1", 1, "3 + 4", wrong, ""),
		RunID:      "run-1",
		Seq:        1,
		Expression: "3 + 4",
		Kind:       "natural",
		Result:     "8",
		Digest:     wrong,
	}))

	result, err := Replay(ctx, s, "run-1")
	require.Error(t, err)
	assert.True(t, IsReplayMismatch(err))
	require.Len(t, result.Mismatches, 1)
	assert.Equal(t, ir.MustValueDigest("natural", "7"), result.Mismatches[0].Got.Digest)
}

func TestReplay_NoStore(t *testing.T) {
	_, err := Replay(context.Background(), nil, "run-1")
	assert.Error(t, err)
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	g := NewFixedGenerator("a")
	assert.Equal(t, "a", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestQuotaEnforcer_Disabled(t *testing.T) {
	q := NewQuotaEnforcer(0)
	for range 100 {
		require.NoError(t, q.Check("run"))
	}
	assert.Equal(t, 100, q.Current())
	q.Reset()
	assert.Equal(t, 0, q.Current())
}

func TestRuntimeError_Message(t *testing.T) {
	err := NewQuotaError("run-1", 3, 2)
	assert.Equal(t, "QUOTA_EXCEEDED: run exceeded max evaluations (3 > 2) (run=run-1)", err.Error())
	assert.False(t, IsStoreError(err))
}
