// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package api provides the HTTP API for the daemon.
package api

import (
	"log/slog"
	"net/http"
	"runtime"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/tombee/textchef/internal/daemon/httputil"
	"github.com/tombee/textchef/internal/log"
	"github.com/tombee/textchef/internal/operation"
	"github.com/tombee/textchef/internal/tracing"
)

// DefaultMaxRequestBytes caps execute bodies when RouterConfig leaves it unset.
const DefaultMaxRequestBytes = 10 << 20

// RouterConfig holds configuration for the API router.
type RouterConfig struct {
	Version   string
	Commit    string
	BuildDate string

	// MaxRequestBytes caps the execute request body.
	MaxRequestBytes int64

	// StaticDir, when set, is served under /static/.
	StaticDir string
}

// Router wraps an http.ServeMux with additional functionality.
type Router struct {
	mux      *http.ServeMux
	config   RouterConfig
	registry *operation.Registry
	tracer   trace.Tracer
	limiter  *rate.Limiter
	logger   *slog.Logger
	handler  http.Handler
}

// SetMetricsHandler registers the Prometheus metrics handler on /metrics.
func (r *Router) SetMetricsHandler(handler http.Handler) {
	if handler != nil {
		r.mux.Handle("GET /metrics", handler)
	}
}

// SetTracer sets the tracer used for execution spans.
func (r *Router) SetTracer(tracer trace.Tracer) {
	if tracer != nil {
		r.tracer = tracer
	}
}

// SetRateLimit enables token bucket limiting on the execute endpoint.
// A non-positive rps disables it.
func (r *Router) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		r.limiter = nil
		return
	}
	r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// SetLogger replaces the router's logger.
func (r *Router) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
		r.handler = r.buildChain()
	}
}

// NewRouter creates a new HTTP router serving registry.
func NewRouter(cfg RouterConfig, registry *operation.Registry) *Router {
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = DefaultMaxRequestBytes
	}

	r := &Router{
		mux:      http.NewServeMux(),
		config:   cfg,
		registry: registry,
		tracer:   noop.NewTracerProvider().Tracer(tracing.InstrumentationName),
		logger:   log.WithComponent(log.New(log.FromEnv()), "api"),
	}

	r.mux.HandleFunc("GET /api/operations", r.handleListOperations)
	r.mux.Handle("POST /api/execute", r.rateLimited(http.HandlerFunc(r.handleExecute)))

	r.mux.HandleFunc("GET /v1/health", r.handleHealth)
	r.mux.HandleFunc("GET /v1/version", r.handleVersion)

	if cfg.StaticDir != "" {
		r.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	// Root endpoint for basic connectivity check
	r.mux.HandleFunc("GET /{$}", r.handleRoot)

	r.handler = r.buildChain()
	return r
}

// buildChain wraps the mux from innermost to outermost: trace context
// extraction, request logging with request IDs, then CORS.
func (r *Router) buildChain() http.Handler {
	var handler http.Handler = r.mux
	handler = tracing.HTTPMiddleware(handler)
	handler = log.NewHTTPMiddleware(r.logger).Wrap(handler)
	handler = corsMiddleware(handler)
	return handler
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// Mux returns the underlying ServeMux for registering additional routes.
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

// handleRoot handles GET / for basic connectivity.
func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"name":    "textchefd",
		"version": r.config.Version,
	})
}

// handleHealth handles GET /v1/health.
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"operations": r.registry.Len(),
	})
}

// handleVersion handles GET /v1/version.
func (r *Router) handleVersion(w http.ResponseWriter, req *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"version":    r.config.Version,
		"commit":     r.config.Commit,
		"build_date": r.config.BuildDate,
		"go_version": runtime.Version(),
	})
}
