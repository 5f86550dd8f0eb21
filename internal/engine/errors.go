package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is an error that stops the engine, as opposed to an
// arithmetic failure, which becomes the outcome of an evaluation.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// RunID identifies the affected run.
	RunID string

	// Seq is the logical slot involved, or 0.
	Seq int64

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeQuotaExceeded indicates the run used up its evaluation quota.
	ErrCodeQuotaExceeded RuntimeErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeStoreFailed indicates the evaluation log rejected a write.
	ErrCodeStoreFailed RuntimeErrorCode = "STORE_FAILED"

	// ErrCodeReplayMismatch indicates a replayed evaluation disagreed with
	// its record.
	ErrCodeReplayMismatch RuntimeErrorCode = "REPLAY_MISMATCH"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.RunID != "" && e.Seq != 0 {
		msg = fmt.Sprintf("%s (run=%s, seq=%d)", msg, e.RunID, e.Seq)
	} else if e.RunID != "" {
		msg = fmt.Sprintf("%s (run=%s)", msg, e.RunID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsQuotaError reports whether err is a quota exceeded error.
func IsQuotaError(err error) bool {
	return hasCode(err, ErrCodeQuotaExceeded)
}

// IsStoreError reports whether err came from the evaluation log.
func IsStoreError(err error) bool {
	return hasCode(err, ErrCodeStoreFailed)
}

// IsReplayMismatch reports whether err is a replay mismatch.
func IsReplayMismatch(err error) bool {
	return hasCode(err, ErrCodeReplayMismatch)
}

// NewQuotaError creates a RuntimeError for an exhausted quota.
func NewQuotaError(runID string, count, limit int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeQuotaExceeded,
		Message: fmt.Sprintf("run exceeded max evaluations (%d > %d)", count, limit),
		RunID:   runID,
	}
}

func newStoreError(runID string, seq int64, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeStoreFailed,
		Message: "write to evaluation log failed",
		RunID:   runID,
		Seq:     seq,
		Err:     err,
	}
}
