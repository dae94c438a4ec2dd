package events

import (
	"context"
	"log/slog"
)

// LoggerSink writes events to the structured logger. It stands in for a
// real sink in development mode.
type LoggerSink struct {
	logger *slog.Logger
}

// NewLoggerSink constructs a logging sink.
func NewLoggerSink(logger *slog.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Append writes the event to the logger.
func (s *LoggerSink) Append(_ context.Context, event Event) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Info("ledger event",
		"event_id", event.ID,
		"kind", event.Kind,
		"account", event.Account.String(),
		"amount", event.Amount,
		"added", event.Added,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
