package engine

// DefaultMaxEvaluations bounds the evaluations in one run.
const DefaultMaxEvaluations = 10000

// QuotaEnforcer counts evaluations in a run and enforces a limit.
// A limit of zero or less disables the check.
type QuotaEnforcer struct {
	max     int
	current int
}

// NewQuotaEnforcer creates an enforcer allowing max evaluations.
func NewQuotaEnforcer(max int) *QuotaEnforcer {
	return &QuotaEnforcer{max: max}
}

// Check counts one evaluation and fails once the limit is passed.
func (q *QuotaEnforcer) Check(runID string) error {
	q.current++
	if q.max > 0 && q.current > q.max {
		return NewQuotaError(runID, q.current, q.max)
	}
	return nil
}

// Reset sets the count back to zero.
func (q *QuotaEnforcer) Reset() {
	q.current = 0
}

// Current returns the number of evaluations counted.
func (q *QuotaEnforcer) Current() int {
	return q.current
}

// Max returns the limit.
func (q *QuotaEnforcer) Max() int {
	return q.max
}
