package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// scenarioSchema closes #Scenario so that misspelled fields fail to unify,
// matching the strict YAML decoder.
const scenarioSchema = `
#Step: {
	expr:    string
	expect?: string
	kind?:   "natural" | "integer" | "rational" | "polynomial"
	error?:  string
}

#Assertion: {
	type:   "trace_contains" | "trace_count" | "same_value" | "replay"
	text?:  string
	count?: int & >=0
	steps?: [...int & >=1]
}

#Scenario: {
	name:         string
	description:  string
	run_id?:      string
	trace_level?: string
	steps: [#Step, ...#Step]
	assertions?: [...#Assertion]
}
`

// LoadError reports a CUE scenario problem with its source position.
type LoadError struct {
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// parseCUE compiles data, unifies it with #Scenario and decodes the
// concrete result.
func parseCUE(path string, data []byte) (*Scenario, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema, cue.Filename("scenario_schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("scenario schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v = schema.LookupPath(cue.ParsePath("#Scenario")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var scenario Scenario
	if err := v.Decode(&scenario); err != nil {
		return nil, formatCUEError(err)
	}
	return &scenario, nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &LoadError{Message: first.Error(), Pos: positions[0]}
	}
	return &LoadError{Message: first.Error()}
}
