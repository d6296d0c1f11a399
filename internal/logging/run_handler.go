package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NewRunID returns a fresh identifier for one CLI invocation.
func NewRunID() string {
	return uuid.NewString()
}

// runIDHandler stamps every record with the invocation identifier unless the
// record already carries one from context.
type runIDHandler struct {
	next  slog.Handler
	runID string
}

// WithRunID wraps logger so each record carries run_id.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if runID == "" {
		return logger
	}
	return slog.New(&runIDHandler{next: logger.Handler(), runID: runID})
}

func (h *runIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *runIDHandler) Handle(ctx context.Context, record slog.Record) error {
	present := false
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == FieldRunID {
			present = true
			return false
		}
		return true
	})
	if !present {
		record = record.Clone()
		record.AddAttrs(slog.String(FieldRunID, h.runID))
	}
	return h.next.Handle(ctx, record)
}

func (h *runIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	for _, attr := range attrs {
		if attr.Key == FieldRunID {
			return h.next.WithAttrs(attrs)
		}
	}
	return &runIDHandler{next: h.next.WithAttrs(attrs), runID: h.runID}
}

// WithGroup stamps run_id before opening the group so it stays top level.
func (h *runIDHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.next.WithAttrs([]slog.Attr{slog.String(FieldRunID, h.runID)}).WithGroup(name)
}
