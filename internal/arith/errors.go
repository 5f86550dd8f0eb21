// Package arith defines the error taxonomy shared by every layer of the
// numeric tower.
//
// All errors are fatal to the operation that raises them. Operations are pure
// and deterministic, so nothing is ever retried and no layer substitutes a
// default value for an out-of-domain input.
package arith

import (
	"errors"
	"fmt"
)

// Code categorizes arithmetic errors.
type Code string

const (
	// CodeNegativeInput indicates a natural number was requested for a negative host value.
	CodeNegativeInput Code = "NEGATIVE_INPUT"

	// CodeUnderflow indicates natural subtraction with minuend < subtrahend.
	CodeUnderflow Code = "UNDERFLOW"

	// CodeDivisionByZero indicates a zero divisor, zero denominator or zero modulus.
	CodeDivisionByZero Code = "DIVISION_BY_ZERO"

	// CodeTypeMismatch indicates operands that cannot be joined through the
	// embedding chain, or a non-natural exponent.
	CodeTypeMismatch Code = "TYPE_MISMATCH"

	// CodeNonRepresentable indicates narrowing to a host integer was impossible.
	CodeNonRepresentable Code = "NON_REPRESENTABLE"

	// CodeNotInvertible indicates a residue class without a multiplicative inverse.
	CodeNotInvertible Code = "NOT_INVERTIBLE"

	// CodeResourceExhausted indicates an input too large to build as a
	// unary chain.
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
)

// Error is the concrete error type returned by tower operations.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op names the operation that failed (e.g. "natural.Sub").
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
// This lets callers match with errors.Is(err, arith.ErrUnderflow).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is matching. Only the Code is compared.
var (
	ErrNegativeInput     = &Error{Code: CodeNegativeInput, Message: "negative input"}
	ErrUnderflow         = &Error{Code: CodeUnderflow, Message: "underflow"}
	ErrDivisionByZero    = &Error{Code: CodeDivisionByZero, Message: "division by zero"}
	ErrTypeMismatch      = &Error{Code: CodeTypeMismatch, Message: "type mismatch"}
	ErrNonRepresentable  = &Error{Code: CodeNonRepresentable, Message: "not representable"}
	ErrNotInvertible     = &Error{Code: CodeNotInvertible, Message: "not invertible"}
	ErrResourceExhausted = &Error{Code: CodeResourceExhausted, Message: "resource exhausted"}
)

// New creates an Error for the given code and operation.
func New(code Code, op, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the Code from err.
// Returns the empty Code if err is nil or not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
