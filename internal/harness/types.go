package harness

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Seq       int64    `json:"seq"`
	Expr      string   `json:"expr"`
	Kind      string   `json:"kind,omitempty"`
	Value     string   `json:"value,omitempty"` // canonical text
	Digest    string   `json:"digest,omitempty"`
	ErrorCode string   `json:"error_code,omitempty"`
	Trace     []string `json:"trace,omitempty"` // derivation lines, "L<n>: ..."
}

// Failed reports whether the step ended in an error.
func (s StepResult) Failed() bool {
	return s.ErrorCode != ""
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step met its expectation and every
	// assertion held.
	Pass bool `json:"pass"`

	RunID string       `json:"run_id"`
	Steps []StepResult `json:"steps"`

	// Errors lists failed expectations and assertions. Empty if Pass.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Trace returns every derivation line of the run in order.
func (r *Result) Trace() []string {
	var lines []string
	for _, s := range r.Steps {
		lines = append(lines, s.Trace...)
	}
	return lines
}
