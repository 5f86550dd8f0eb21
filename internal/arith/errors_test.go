package arith

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(CodeUnderflow, "natural.Sub", "%d - %d", 1, 2)
	assert.Equal(t, "UNDERFLOW: 1 - 2 (natural.Sub)", err.Error())

	bare := &Error{Code: CodeTypeMismatch, Message: "nope"}
	assert.Equal(t, "TYPE_MISMATCH: nope", bare.Error())
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeDivisionByZero, "integer.FloorDiv", "divisor is zero")

	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.NotErrorIs(t, err, ErrUnderflow)

	wrapped := fmt.Errorf("evaluate: %w", err)
	assert.ErrorIs(t, wrapped, ErrDivisionByZero)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"direct", New(CodeNonRepresentable, "", "x"), CodeNonRepresentable},
		{"wrapped", fmt.Errorf("ctx: %w", New(CodeNegativeInput, "", "x")), CodeNegativeInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}
