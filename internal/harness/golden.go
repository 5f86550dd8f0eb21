package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as stable text for golden comparison:
//
//	scenario: powers
//	run: test-run-default
//	[1] 2 ^ 3
//	    L6: N(2) ** N(3) = N(2) * N(2) ** N(2)
//	    = natural 8
//	[2] 1 / 0
//	    ! DIVISION_BY_ZERO
//
// Failed expectations and assertions follow under "errors:".
func Transcript(name string, result *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	fmt.Fprintf(&b, "run: %s\n", result.RunID)
	for _, s := range result.Steps {
		fmt.Fprintf(&b, "[%d] %s\n", s.Seq, s.Expr)
		for _, line := range s.Trace {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		if s.Failed() {
			fmt.Fprintf(&b, "    ! %s\n", s.ErrorCode)
		} else {
			fmt.Fprintf(&b, "    = %s %s\n", s.Kind, s.Value)
		}
	}
	if len(result.Errors) > 0 {
		b.WriteString("errors:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", strings.ReplaceAll(strings.TrimSpace(e), "\n", "\n    "))
		}
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Transcript(name, result))
}
