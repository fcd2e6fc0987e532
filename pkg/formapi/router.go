package formapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/defaults"
	"github.com/dmitrymomot/formkit/pkg/engine"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
	"github.com/dmitrymomot/formkit/pkg/result"
	"github.com/dmitrymomot/formkit/pkg/rule"
)

const defaultMaxBodySize = 1 << 20

type handler struct {
	catalog     *Catalog
	engine      *engine.Engine
	logger      *slog.Logger
	translator  *i18n.Translator
	maxBodySize int64
}

type errorResponse struct {
	Error string `json:"error"`
}

type formsResponse struct {
	Forms []Form `json:"forms"`
}

type violationsResponse struct {
	Valid      bool               `json:"valid"`
	Violations []result.Violation `json:"violations"`
}

// NewRouter exposes catalog over HTTP:
//
//	GET  /forms                   list forms
//	GET  /forms/{name}            describe the compiled rule tree
//	GET  /forms/{name}/defaults   initial data instance
//	POST /forms/{name}/validate   validate a JSON document (?flat=true for violations)
//	                              messages follow ?lang or Accept-Language when WithTranslator is set
//	                              rate limited when WithRateLimiter is set
//	GET  /health/live, /health/ready
//	GET  /metrics                 when WithMetricsHandler is set
func NewRouter(catalog *Catalog, opts ...Option) chi.Router {
	o := options{
		logger:      logger.Discard(),
		readiness:   make(map[string]httpserver.Check),
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = engine.New(engine.WithLogger(o.logger))
	}

	h := &handler{
		catalog:     catalog,
		engine:      o.engine,
		logger:      o.logger.With(logger.Component("formapi")),
		translator:  o.translator,
		maxBodySize: o.maxBodySize,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(h.logger, o.readiness))
	if o.metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.metrics)
	}

	r.Route("/forms", func(r chi.Router) {
		r.Get("/", h.listForms)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", h.describeForm)
			r.Get("/defaults", h.formDefaults)
			if o.limiter != nil {
				r.With(ratelimiter.Middleware(o.limiter, o.limitKey, h.logger)).Post("/validate", h.validateForm)
			} else {
				r.Post("/validate", h.validateForm)
			}
		})
	})

	return r
}

func (h *handler) listForms(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, formsResponse{Forms: h.catalog.List()})
}

func (h *handler) describeForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.form(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, rule.Describe(form.Rule))
}

func (h *handler) formDefaults(w http.ResponseWriter, r *http.Request) {
	form, ok := h.form(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, defaults.Build(form.Rule))
}

func (h *handler) validateForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.form(w, r)
	if !ok {
		return
	}

	flat, _ := strconv.ParseBool(r.URL.Query().Get("flat"))

	var data any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		h.writeError(w, r, http.StatusBadRequest, errors.Join(ErrInvalidBody, err))
		return
	}

	res := h.engine.Validate(r.Context(), form.Rule, data)
	status := http.StatusOK
	if res.HasErrors {
		status = http.StatusUnprocessableEntity
		h.localize(w, r, res)
	}

	if flat {
		violations := res.Flatten()
		if violations == nil {
			violations = []result.Violation{}
		}
		h.writeJSON(w, r, status, violationsResponse{Valid: !res.HasErrors, Violations: violations})
		return
	}
	h.writeJSON(w, r, status, res)
}

func (h *handler) localize(w http.ResponseWriter, r *http.Request, res *result.Result) {
	if h.translator == nil {
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = h.translator.Negotiate(r.Header.Get("Accept-Language"))
	}
	h.translator.Localize(res, lang)
	w.Header().Set("Content-Language", lang)
}

func (h *handler) form(w http.ResponseWriter, r *http.Request) (Form, bool) {
	form, err := h.catalog.Get(chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, http.StatusNotFound, err)
		return Form{}, false
	}
	return form, true
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response", logger.Error(err))
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.InfoContext(r.Context(), "request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}
