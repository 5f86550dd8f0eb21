// Package harness runs scenario files against the numeric tower.
//
// # Scenario Format
//
// Scenarios are YAML (strict: unknown fields are rejected) or CUE files
// with the following structure:
//
//	name: powers
//	description: "Exponentiation across the tower"
//	trace_level: pow
//	steps:
//	  - expr: "2 ^ 3"
//	    expect: "8"
//	    kind: natural
//	  - expr: "1 / 0"
//	    error: DIVISION_BY_ZERO
//	assertions:
//	  - type: trace_contains
//	    text: "N(2) ** N(3)"
//	  - type: replay
//
// The expect text is itself an expression. It is evaluated and compared
// with tower equality, so "2/4" matches a result of 1/2 and "3" matches an
// integer 3. An error names an error code.
//
// # Assertion Types
//
//   - trace_contains: some derivation line contains text
//   - trace_count: exactly count derivation lines contain text
//   - same_value: the listed steps (1-based) share a value digest
//   - replay: replaying the recorded run reproduces every outcome
//
// # Deterministic Testing
//
// Every scenario runs in a fresh in-memory store with a
// testutil.DeterministicClock and a testutil.FixedRunGenerator, so that
// run IDs, seq values and derivations are identical across runs and can be
// compared against golden files.
//
// Derivations are written to a buffer owned by each run, so scenarios may
// run in parallel.
package harness
