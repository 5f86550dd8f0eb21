// Package engine evaluates expressions over the numeric tower within a run.
//
// A run is one session: a CLI invocation, a REPL, or a scenario. Each
// evaluation in a run is stamped with the next value of a logical clock,
// given a content-addressed ID, and, when a store is attached, appended to
// the evaluation log.
//
// Arithmetic failures are outcomes, not engine errors. An expression that
// divides by zero produces an evaluation with ErrorCode DIVISION_BY_ZERO and
// is recorded like any other. Eval returns a non-nil error only when the
// engine itself cannot proceed: the store rejects a write, the per-run quota
// is spent, or the context is cancelled.
//
// Evaluation is single-threaded. Replaying a run re-evaluates every recorded
// expression in seq order and compares value digests.
package engine
