// Package audit records one structured line per service operation.
package audit

import (
	"context"
	"log/slog"
	"strings"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

type ctxKey string

const requestIDKey ctxKey = "audit_request_id"

// WithRequestID attaches the request identifier to the context for audit logging.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request id, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Event describes one attempted operation.
type Event struct {
	Action   string
	Entity   string
	EntityID uint64
	ActorID  uint64
	Err      error
}

// Outcome is "success" or the failure kind.
func (e Event) Outcome() string {
	if e.Err == nil {
		return "success"
	}
	return apierrors.KindOf(e.Err).String()
}

// Sink accepts audit events.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// LogSink writes events through slog.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("type", "audit")}
}

func (s *LogSink) Record(ctx context.Context, event Event) {
	attrs := []any{
		"action", event.Action,
		"entity", event.Entity,
		"actor_id", event.ActorID,
		"outcome", event.Outcome(),
	}
	if event.EntityID != 0 {
		attrs = append(attrs, "entity_id", event.EntityID)
	}
	if rid := RequestIDFromContext(ctx); rid != "" {
		attrs = append(attrs, "request_id", rid)
	}

	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		level := slog.LevelWarn
		if apierrors.KindOf(event.Err) == apierrors.KindInternal {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "audit", attrs...)
		return
	}
	s.logger.InfoContext(ctx, "audit", attrs...)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Record(context.Context, Event) {}
