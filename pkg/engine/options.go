package engine

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/result"
)

// Observer is notified about finished validations, e.g. to export metrics.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveValidation(rule string, res *result.Result, elapsed time.Duration)
	ObserveCheckFailure(check string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an observer. Nil is ignored.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithCheckTimeout bounds each asynchronous check. A check still pending
// after d is recorded as failed. Zero disables the bound.
func WithCheckTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.checkTimeout = d
		}
	}
}
