package trace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Handler is a slog.Handler that writes one "L<n>: <derivation>" line per
// record. Attributes and groups are ignored; derivations carry everything
// in the message. Output is deterministic (no timestamps) so it can be
// compared against golden files.
type Handler struct {
	mu  *sync.Mutex
	w   io.Writer
	min Level
}

// NewHandler creates a Handler writing derivations at or above min to w.
func NewHandler(w io.Writer, min Level) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w, min: min}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.min.Slog()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s: %s\n", levelFromSlog(r.Level), r.Message)
	return err
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(string) slog.Handler { return h }

// To returns a Tracer writing derivations at or above min to w, or nil
// when min is LevelOff or not a valid level.
//
// Example:
//
//	var buf bytes.Buffer
//	t := trace.To(&buf, trace.LevelAdditive)
//	_ = natural.With(t).Add(a, b)
func To(w io.Writer, min Level) *Tracer {
	if min < LevelEqual || min >= LevelOff {
		return nil
	}
	return New(slog.New(NewHandler(w, min)))
}
