package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/peano/internal/engine"
	"github.com/roach88/peano/internal/store"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Trace    []string // Derivation lines for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, line := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, line)
		}
	}
	return buf.String()
}

// AssertionContext gives assertions access to the run's store.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

func countContaining(lines []string, text string) int {
	n := 0
	for _, line := range lines {
		if strings.Contains(line, text) {
			n++
		}
	}
	return n
}

func assertTraceContains(result *Result, a Assertion) error {
	lines := result.Trace()
	if countContaining(lines, a.Text) > 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("a derivation containing %q", a.Text),
		Actual:   "none found",
		Trace:    lines,
	}
}

func assertTraceCount(result *Result, a Assertion) error {
	lines := result.Trace()
	got := countContaining(lines, a.Text)
	if got == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%d derivations containing %q", a.Count, a.Text),
		Actual:   fmt.Sprintf("%d", got),
		Trace:    lines,
	}
}

// assertSameValue checks that the listed steps produced equal values of
// the same kind, which is exactly when their digests agree.
func assertSameValue(result *Result, a Assertion) error {
	first := result.Steps[a.Steps[0]-1]
	for _, n := range a.Steps[1:] {
		s := result.Steps[n-1]
		if s.Failed() || first.Failed() || s.Digest != first.Digest {
			return &AssertionError{
				Type:     AssertSameValue,
				Expected: fmt.Sprintf("step %d equal to step %d (%s)", n, a.Steps[0], describe(first)),
				Actual:   describe(s),
			}
		}
	}
	return nil
}

func assertReplay(actx *AssertionContext, runID string) error {
	replayed, err := engine.Replay(actx.Ctx, actx.Store, runID)
	if err == nil {
		return nil
	}
	if !engine.IsReplayMismatch(err) {
		return err
	}
	var diffs []string
	for _, m := range replayed.Mismatches {
		diffs = append(diffs, m.String())
	}
	return &AssertionError{
		Type:     AssertReplay,
		Expected: fmt.Sprintf("%d evaluations reproduced", replayed.Checked),
		Actual:   strings.Join(diffs, "; "),
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a message for each failed assertion.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result, a)
		case AssertTraceCount:
			err = assertTraceCount(result, a)
		case AssertSameValue:
			err = assertSameValue(result, a)
		case AssertReplay:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: replay requires a store", i)
			} else {
				err = assertReplay(actx, result.RunID)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
