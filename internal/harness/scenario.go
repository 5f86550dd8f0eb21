package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/peano/internal/tower"
	"github.com/roach88/peano/internal/trace"
)

// Scenario is a sequence of expressions with expected outcomes.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description" json:"description"`

	// RunID fixes the run identifier. Defaults to testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty" json:"run_id,omitempty"`

	// TraceLevel is the minimum derivation level captured, as accepted by
	// trace.ParseLevel. Empty means off.
	TraceLevel string `yaml:"trace_level,omitempty" json:"trace_level,omitempty"`

	// Steps are evaluated in order, one seq each.
	Steps []Step `yaml:"steps" json:"steps"`

	// Assertions are checked after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty" json:"assertions,omitempty"`
}

// Step is one expression and what it should produce.
// At most one of Expect and Error is set. With neither, the step must
// evaluate without error.
type Step struct {
	Expr string `yaml:"expr" json:"expr"`

	// Expect is an expression equal (by tower equality) to the result.
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"`

	// Kind is the expected tower kind of the result.
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	// Error is the expected error code.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Assertion validates the run as a whole.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type" json:"type"`

	// Text is the derivation substring (trace_contains, trace_count).
	Text string `yaml:"text,omitempty" json:"text,omitempty"`

	// Count is the expected number of matching lines (trace_count).
	Count int `yaml:"count,omitempty" json:"count,omitempty"`

	// Steps are 1-based step numbers (same_value).
	Steps []int `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
	AssertSameValue     = "same_value"
	AssertReplay        = "replay"
)

// Level returns the parsed trace level, LevelOff when unset.
func (s *Scenario) Level() (trace.Level, error) {
	if s.TraceLevel == "" {
		return trace.LevelOff, nil
	}
	return trace.ParseLevel(s.TraceLevel)
}

// LoadScenario reads a scenario file. Files ending in .cue are loaded
// through CUE; anything else is parsed as strict YAML.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		scenario, err = parseCUE(path, data)
	} else {
		scenario, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

func parseYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and cross-field rules.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := s.Level(); err != nil {
		return fmt.Errorf("trace_level: %w", err)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if strings.TrimSpace(step.Expr) == "" {
			return fmt.Errorf("steps[%d]: expr is required", i)
		}
		if step.Expect != "" && step.Error != "" {
			return fmt.Errorf("steps[%d]: expect and error are mutually exclusive", i)
		}
		if step.Kind != "" {
			if step.Error != "" {
				return fmt.Errorf("steps[%d]: kind cannot be combined with error", i)
			}
			if tower.ParseKind(step.Kind) == tower.KindInvalid {
				return fmt.Errorf("steps[%d]: unknown kind %q", i, step.Kind)
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a, len(s.Steps)); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion, steps int) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertTraceContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertSameValue:
		if len(a.Steps) < 2 {
			return fmt.Errorf("assertions[%d]: same_value needs at least two steps", index)
		}
		for _, n := range a.Steps {
			if n < 1 || n > steps {
				return fmt.Errorf("assertions[%d]: step %d out of range 1-%d", index, n, steps)
			}
		}
	case AssertReplay:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
