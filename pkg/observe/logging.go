package observe

import (
	"context"
	"log/slog"

	"github.com/vango-dev/domkit/pkg/delegate"
)

// Logger logs registry changes at debug level and dispatches at the given
// level. Failed dispatches are always logged at warn.
type Logger struct {
	logger *slog.Logger
	level  slog.Level
}

var _ delegate.Observer = (*Logger)(nil)

// NewLogger creates a logging observer. A nil logger uses slog.Default().
func NewLogger(logger *slog.Logger, level slog.Level) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger, level: level}
}

// ListenerAdded implements delegate.Observer.
func (l *Logger) ListenerAdded(eventName, selector string) {
	l.logger.Debug("listener bound", "event", eventName, "selector", selector)
}

// ListenerRemoved implements delegate.Observer.
func (l *Logger) ListenerRemoved(eventName, selector string) {
	l.logger.Debug("listener unbound", "event", eventName, "selector", selector)
}

// Dispatched implements delegate.Observer.
func (l *Logger) Dispatched(d delegate.Dispatch) {
	attrs := []any{
		"event", d.EventName,
		"selector", d.Selector,
		"outcome", d.Outcome.String(),
		"duration", d.Duration,
	}
	if d.Err != nil {
		l.logger.Warn("handler failed", append(attrs, "error", d.Err)...)
		return
	}
	l.logger.Log(context.Background(), l.level, "handler dispatched", attrs...)
}
