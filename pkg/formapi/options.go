package formapi

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/engine"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
)

type options struct {
	engine      *engine.Engine
	logger      *slog.Logger
	metrics     http.Handler
	readiness   map[string]httpserver.Check
	translator  *i18n.Translator
	limiter     ratelimiter.Limiter
	limitKey    ratelimiter.KeyFunc
	maxBodySize int64
}

// Option configures the router.
type Option func(*options)

// WithEngine sets the validation engine. Defaults to engine.New().
func WithEngine(e *engine.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) { o.metrics = h }
}

// WithReadinessCheck adds a named dependency probe to /health/ready.
func WithReadinessCheck(name string, check httpserver.Check) Option {
	return func(o *options) {
		if name != "" && check != nil {
			o.readiness[name] = check
		}
	}
}

// WithMaxBodySize limits validate request bodies. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithTranslator localizes failure messages of validate responses.
func WithTranslator(t *i18n.Translator) Option {
	return func(o *options) { o.translator = t }
}

// WithRateLimiter limits validate requests per key. A nil key function keys
// requests by peer address.
func WithRateLimiter(l ratelimiter.Limiter, key ratelimiter.KeyFunc) Option {
	return func(o *options) {
		if key == nil {
			key = ratelimiter.RemoteIP
		}
		o.limiter = l
		o.limitKey = key
	}
}
