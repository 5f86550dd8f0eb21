package harness

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/roach88/peano/internal/engine"
	"github.com/roach88/peano/internal/expr"
	"github.com/roach88/peano/internal/store"
	"github.com/roach88/peano/internal/testutil"
	"github.com/roach88/peano/internal/tower"
	"github.com/roach88/peano/internal/trace"
)

// Harness executes scenarios against a fresh engine and store.
// Derivations go to a buffer owned by the harness, so concurrent runs never
// share a trace.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.DeterministicClock
	runGen *testutil.FixedRunGenerator
	derivs bytes.Buffer
}

// Run executes a scenario and returns its result.
//
// Execution flow:
//  1. Open a fresh in-memory store
//  2. Evaluate each step through the engine, capturing derivations
//  3. Check each step against its expectation
//  4. Evaluate assertions
//
// The returned error is reserved for infrastructure failures; unmet
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context. It is safe to call
// from several goroutines; each call owns its store, engine and trace.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	level, err := scenario.Level()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		runGen: testutil.NewFixedRunGenerator(scenario.RunID),
	}
	h.engine = engine.New(
		engine.WithStore(st),
		engine.WithClock(h.clock),
		engine.WithRunIDGenerator(h.runGen),
		engine.WithSource("scenario:"+scenario.Name),
		engine.WithTracer(trace.To(&h.derivs, level)),
	)

	result := NewResult()
	run, err := h.engine.Run(ctx)
	if err != nil {
		return nil, err
	}
	result.RunID = run.ID

	for i, step := range scenario.Steps {
		sr, value, err := h.executeStep(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		result.Steps = append(result.Steps, sr)
		if msg := checkStep(i+1, step, sr, value); msg != "" {
			result.AddError(msg)
		}
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

// executeStep evaluates one step with derivations captured at the
// scenario's level.
func (h *Harness) executeStep(ctx context.Context, step Step) (StepResult, tower.Value, error) {
	h.derivs.Reset()
	res, err := h.engine.Eval(ctx, step.Expr)
	if err != nil {
		return StepResult{}, tower.Value{}, err
	}

	ev := res.Evaluation
	return StepResult{
		Seq:       ev.Seq,
		Expr:      ev.Expression,
		Kind:      ev.Kind,
		Value:     ev.Result,
		Digest:    ev.Digest,
		ErrorCode: ev.ErrorCode,
		Trace:     splitLines(h.derivs.String()),
	}, res.Value, nil
}

// checkStep compares a step outcome with its expectation and returns a
// failure message, or "" when the step passed.
func checkStep(n int, step Step, sr StepResult, got tower.Value) string {
	if step.Error != "" {
		if sr.ErrorCode != step.Error {
			return fmt.Sprintf("step %d (%s): expected error %s, got %s", n, step.Expr, step.Error, describe(sr))
		}
		return ""
	}
	if sr.Failed() {
		return fmt.Sprintf("step %d (%s): unexpected error %s", n, step.Expr, sr.ErrorCode)
	}

	if step.Kind != "" && sr.Kind != step.Kind {
		return fmt.Sprintf("step %d (%s): expected kind %s, got %s", n, step.Expr, step.Kind, sr.Kind)
	}

	if step.Expect != "" {
		// Expectations are evaluated untraced.
		want, err := expr.Evaluate(step.Expect)
		if err != nil {
			return fmt.Sprintf("step %d: expect %q does not evaluate: %v", n, step.Expect, err)
		}
		eq, err := tower.Equal(got, want)
		if err != nil || !eq {
			return fmt.Sprintf("step %d (%s): expected %s, got %s", n, step.Expr, step.Expect, describe(sr))
		}
	}
	return ""
}

func describe(sr StepResult) string {
	if sr.Failed() {
		return "error " + sr.ErrorCode
	}
	return sr.Kind + " " + sr.Value
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
