// Package web provides the configuration authoring API. Authoring
// tools use it to fetch plugin schemas, validate documents while the
// author edits them, and run generation passes without a local
// toolchain install. Stateless design - every request carries the
// whole document.
package web

import (
	"net/http"
	"time"

	"github.com/artpar/gateforge/adapters/metrics"
	"github.com/artpar/gateforge/app"
	"github.com/artpar/gateforge/core/registry"
	"github.com/artpar/gateforge/core/validation"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handler provides the authoring API endpoints.
type Handler struct {
	registry  *registry.Registry
	validator *validation.Validator
	generator *app.Generator
	metrics   *metrics.Collector // nil when metrics are disabled
	logger    zerolog.Logger
	startTime time.Time // Server start time for uptime reporting
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Registry  *registry.Registry
	Generator *app.Generator
	Metrics   *metrics.Collector
	Logger    zerolog.Logger
}

// NewHandler creates a new authoring API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		registry:  deps.Registry,
		validator: validation.New(deps.Registry),
		generator: deps.Generator,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		startTime: time.Now(),
	}
}

// Router returns the authoring API router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(h.requestLogger)

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/schema", h.Schema)
		r.Get("/schema/{subtype}", h.SchemaBySubtype)
		r.Post("/validate", h.Validate)
		r.Post("/generate", h.Generate)
	})

	return r
}

// requestLogger logs each request and records API metrics.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		h.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("elapsed", elapsed).
			Msg("api request")

		if h.metrics != nil {
			h.metrics.RequestsTotal.WithLabelValues(r.Method, r.URL.Path, statusText(sw.status)).Inc()
			h.metrics.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(elapsed.Seconds())
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
