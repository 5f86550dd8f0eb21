package ir

// Run groups the evaluations of one session, CLI invocation or scenario.
type Run struct {
	ID            string `json:"id"`     // UUIDv7, or fixed in tests
	Source        string `json:"source"` // "eval", "repl", "scenario:<name>"
	EngineVersion string `json:"engine_version"`
	IRVersion     string `json:"ir_version"`
}

// Evaluation records one expression and its outcome.
// Exactly one of Digest and ErrorCode is set.
type Evaluation struct {
	ID         string `json:"id"` // Content-addressed hash
	RunID      string `json:"run_id"`
	Seq        int64  `json:"seq"` // Logical clock within the run
	Expression string `json:"expression"`
	Kind       string `json:"kind,omitempty"`   // tower kind of the result
	Result     string `json:"result,omitempty"` // canonical text of the result
	Digest     string `json:"digest,omitempty"` // ValueDigest(Kind, Result)
	ErrorCode  string `json:"error_code,omitempty"`
	Error      string `json:"error,omitempty"` // message, not part of the ID
}

// Failed reports whether the evaluation ended in an error.
func (e Evaluation) Failed() bool {
	return e.ErrorCode != ""
}
