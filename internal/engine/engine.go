package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/peano/internal/expr"
	"github.com/roach88/peano/internal/ir"
	"github.com/roach88/peano/internal/store"
	"github.com/roach88/peano/internal/tower"
	"github.com/roach88/peano/internal/trace"
)

// codeUnknown is recorded for a failure that carries no arithmetic or
// syntax code.
const codeUnknown = "EVALUATION_FAILED"

// Engine evaluates expressions within a single run.
//
// The run record is written lazily, on the first evaluation, so a REPL that
// exits without input leaves no empty run behind.
//
// Engine is not safe for concurrent use.
type Engine struct {
	store   *store.Store
	clock   Sequencer
	runGen  RunIDGenerator
	source  string
	quota   *QuotaEnforcer
	eval    expr.Evaluator
	run     ir.Run
	started bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches an evaluation log. Without one, evaluations are
// computed and stamped but not persisted.
func WithStore(s *store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// Sequencer hands out logical seq values.
// Implemented by Clock and by testutil.DeterministicClock.
type Sequencer interface {
	Next() int64
	Current() int64
}

// WithClock replaces the logical clock.
func WithClock(c Sequencer) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithRunIDGenerator replaces the UUIDv7 run ID generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runGen = g
	}
}

// WithSource labels the run, e.g. "eval", "repl" or "scenario:<name>".
func WithSource(source string) Option {
	return func(e *Engine) {
		e.source = source
	}
}

// WithMaxEvaluations sets the per-run evaluation quota.
// Zero disables it.
func WithMaxEvaluations(n int) Option {
	return func(e *Engine) {
		e.quota = NewQuotaEnforcer(n)
	}
}

// WithTracer reports the derivations of each evaluated expression to t.
// Recording and canonicalizing results is never traced.
func WithTracer(t *trace.Tracer) Option {
	return func(e *Engine) {
		e.eval.Tracer = t
	}
}

// WithMaxLiteral bounds number literals. Zero keeps
// expr.DefaultMaxLiteral; negative disables the bound.
func WithMaxLiteral(n int) Option {
	return func(e *Engine) {
		e.eval.MaxLiteral = n
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  NewClock(),
		runGen: UUIDv7Generator{},
		source: "eval",
		quota:  NewQuotaEnforcer(DefaultMaxEvaluations),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetTracer replaces the tracer for later evaluations. A nil tracer stops
// tracing.
func (e *Engine) SetTracer(t *trace.Tracer) {
	e.eval.Tracer = t
}

// Result is the outcome of one evaluation.
type Result struct {
	// Evaluation is the record as written to the log.
	Evaluation ir.Evaluation

	// Value is the computed value. It is invalid when Err is set.
	Value tower.Value

	// Err is the syntax or arithmetic error, if any.
	Err error
}

// Run returns the current run, starting it if needed.
func (e *Engine) Run(ctx context.Context) (ir.Run, error) {
	if err := e.start(ctx); err != nil {
		return ir.Run{}, err
	}
	return e.run, nil
}

func (e *Engine) start(ctx context.Context) error {
	if e.started {
		return nil
	}
	run := ir.Run{
		ID:            e.runGen.Generate(),
		Source:        e.source,
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
	if e.store != nil {
		if err := e.store.WriteRun(ctx, run); err != nil {
			return newStoreError(run.ID, 0, err)
		}
	}
	e.run = run
	e.started = true
	slog.Debug("run started", "run_id", run.ID, "source", run.Source)
	return nil
}

// Eval parses and evaluates src, stamps it with the next seq, and records
// it. Syntax and arithmetic failures are reported in Result.Err; the
// returned error is reserved for failures of the engine itself.
func (e *Engine) Eval(ctx context.Context, src string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := e.start(ctx); err != nil {
		return Result{}, err
	}
	if err := e.quota.Check(e.run.ID); err != nil {
		slog.Error("evaluation quota exceeded", "run_id", e.run.ID, "limit", e.quota.Max())
		return Result{}, err
	}

	seq := e.clock.Next()
	v, evalErr := e.eval.Evaluate(src)

	ev, err := record(e.run.ID, seq, src, v, evalErr)
	if err != nil {
		return Result{}, fmt.Errorf("eval seq %d: %w", seq, err)
	}

	if e.store != nil {
		if err := e.store.WriteEvaluation(ctx, ev); err != nil {
			return Result{}, newStoreError(e.run.ID, seq, err)
		}
	}

	slog.Debug("evaluated",
		"run_id", e.run.ID,
		"seq", seq,
		"kind", ev.Kind,
		"error_code", ev.ErrorCode,
	)

	if evalErr != nil {
		v = tower.Value{}
	}
	return Result{Evaluation: ev, Value: v, Err: evalErr}, nil
}

// record builds the evaluation record for one outcome.
func record(runID string, seq int64, src string, v tower.Value, evalErr error) (ir.Evaluation, error) {
	ev := ir.Evaluation{
		RunID:      runID,
		Seq:        seq,
		Expression: src,
	}

	out, err := outcome(v, evalErr)
	if err != nil {
		return ir.Evaluation{}, err
	}
	ev.Digest = out.Digest
	ev.ErrorCode = out.ErrorCode
	if evalErr != nil {
		ev.Error = evalErr.Error()
	} else {
		ev.Kind = v.Kind().String()
		ev.Result = tower.CanonicalText(v)
	}

	ev.ID, err = ir.EvaluationID(runID, seq, src, ev.Digest, ev.ErrorCode)
	if err != nil {
		return ir.Evaluation{}, err
	}
	return ev, nil
}

// outcome reduces an evaluation to what the log compares on replay.
func outcome(v tower.Value, evalErr error) (store.Outcome, error) {
	if evalErr != nil {
		code := expr.Code(evalErr)
		if code == "" {
			code = codeUnknown
		}
		return store.Outcome{ErrorCode: code}, nil
	}
	digest, err := ir.ValueDigest(v.Kind().String(), tower.CanonicalText(v))
	if err != nil {
		return store.Outcome{}, err
	}
	return store.Outcome{Digest: digest}, nil
}
