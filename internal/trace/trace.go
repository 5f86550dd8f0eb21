// Package trace is the optional derivation observer for the numeric tower.
//
// Core operations report a human-readable derivation of the rule they
// applied (e.g. "N(3) + N(4) = S(N(3) + N(3))") after computing their
// result. Reporting is a pure side channel: it never influences the value
// returned or the control flow of the operation.
//
// There is no global observer. A *Tracer is handed to the operations that
// should report, and a nil *Tracer reports nothing. Derivations are logged
// below slog.LevelDebug so that an ordinary application logger never sees
// them unless it asks for them.
package trace

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Level is the operation-class severity of a derivation.
// Lower levels are chattier: equality checks fire far more often than powers.
type Level int

const (
	LevelEqual          Level = 1 // equality
	LevelOrder          Level = 2 // less-or-equal
	LevelStrict         Level = 3 // strict less-than
	LevelAdditive       Level = 4 // add, subtract, negate
	LevelMultiplicative Level = 5 // multiply, divide, modulo, reduction
	LevelPower          Level = 6 // exponentiation

	// LevelOff disables all derivations when used as a minimum level.
	LevelOff Level = 7
)

var levelNames = map[string]Level{
	"equal":  LevelEqual,
	"order":  LevelOrder,
	"strict": LevelStrict,
	"add":    LevelAdditive,
	"mul":    LevelMultiplicative,
	"pow":    LevelPower,
	"off":    LevelOff,
}

// Slog maps a derivation level onto the slog scale. LevelPower lands on
// slog.LevelDebug, every lower class one step further below it.
func (l Level) Slog() slog.Level {
	return slog.LevelDebug - slog.Level(LevelPower-l)
}

// String returns "L<n>".
func (l Level) String() string {
	return "L" + strconv.Itoa(int(l))
}

// levelFromSlog inverts Slog.
func levelFromSlog(l slog.Level) Level {
	return LevelPower - Level(slog.LevelDebug-l)
}

// ParseLevel accepts a number 1-7 or one of the class names
// equal, order, strict, add, mul, pow, off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := levelNames[s]; ok {
		return l, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(LevelEqual) || n > int(LevelOff) {
		return 0, fmt.Errorf("invalid trace level %q: want 1-7 or equal|order|strict|add|mul|pow|off", s)
	}
	return Level(n), nil
}

// Tracer reports derivations to a slog.Logger.
// The nil *Tracer is valid and discards everything.
type Tracer struct {
	l *slog.Logger
}

// New returns a Tracer logging to l, or nil when l is nil.
func New(l *slog.Logger) *Tracer {
	if l == nil {
		return nil
	}
	return &Tracer{l: l}
}

// Logger returns the underlying logger, or nil for the nil Tracer.
func (t *Tracer) Logger() *slog.Logger {
	if t == nil {
		return nil
	}
	return t.l
}

// Enabled reports whether a derivation at level would be recorded.
// Callers use it to skip building expensive operand renderings.
func (t *Tracer) Enabled(level Level) bool {
	return t != nil && t.l.Enabled(context.Background(), level.Slog())
}

// Derive reports a derivation. The message is only formatted when the
// logger accepts level, so operands are rendered lazily.
func (t *Tracer) Derive(level Level, format string, args ...any) {
	if !t.Enabled(level) {
		return
	}
	t.l.LogAttrs(context.Background(), level.Slog(), fmt.Sprintf(format, args...))
}
