package trace

import (
	"context"
	"log/slog"
)

// fatalLevel sits above slog's built-in levels so Fatal-severity records are
// visibly distinct from Error without the engine ever terminating the process.
const fatalLevel = slog.Level(12)

// SlogTracer adapts a *slog.Logger to Tracer, tagging every record with
// category="StateMachine".
type SlogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer wraps logger. A nil logger uses slog.Default().
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTracer{logger: logger.With("category", Category)}
}

func (t *SlogTracer) Debug(msg string, args ...any) {
	t.logger.Debug(msg, args...)
}

func (t *SlogTracer) Info(msg string, args ...any) {
	t.logger.Info(msg, args...)
}

func (t *SlogTracer) Warn(msg string, args ...any) {
	t.logger.Warn(msg, args...)
}

func (t *SlogTracer) Error(msg string, args ...any) {
	t.logger.Error(msg, args...)
}

func (t *SlogTracer) Fatal(msg string, args ...any) {
	t.logger.Log(context.Background(), fatalLevel, msg, args...)
}
