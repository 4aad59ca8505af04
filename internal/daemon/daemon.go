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

// Package daemon runs the textchefd HTTP server.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tombee/textchef/internal/action/hashing"
	"github.com/tombee/textchef/internal/config"
	"github.com/tombee/textchef/internal/daemon/api"
	internallog "github.com/tombee/textchef/internal/log"
	"github.com/tombee/textchef/internal/operation"
	"github.com/tombee/textchef/internal/tracing"
)

// Options contains daemon options set at build time.
type Options struct {
	Version   string
	Commit    string
	BuildDate string

	// Logger overrides the logger built from the config.
	Logger *slog.Logger
}

// Daemon is the main textchefd daemon.
type Daemon struct {
	cfg      *config.Config
	opts     Options
	logger   *slog.Logger
	registry *operation.Registry
	router   *api.Router
	server   *http.Server
	ln       net.Listener
	tracer   *tracing.Provider

	mu      sync.Mutex
	started bool
	stopped bool
	ready   chan struct{}
}

// New creates a new daemon instance.
func New(cfg *config.Config, opts Options) (*Daemon, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = internallog.New(cfg.LoggerConfig())
	}

	digest, err := hashing.ParseDigest(cfg.Operations.NTLMDigest)
	if err != nil {
		return nil, fmt.Errorf("invalid operations config: %w", err)
	}

	registry, err := operation.NewBuiltinRegistry(
		&operation.BuiltinConfig{NTLMDigest: digest},
		operation.WithLogger(internallog.WithComponent(logger, "registry")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build operation registry: %w", err)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: opts.Version,
		Exporter:       cfg.Tracing.Exporter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Version:         opts.Version,
		Commit:          opts.Commit,
		BuildDate:       opts.BuildDate,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		StaticDir:       cfg.Server.StaticDir,
	}, registry)
	router.SetLogger(internallog.WithComponent(logger, "api"))
	router.SetTracer(provider.Tracer())
	if cfg.Server.RateLimit.Enabled() {
		router.SetRateLimit(cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.EffectiveBurst())
	}
	if cfg.Metrics.Enabled {
		router.SetMetricsHandler(promhttp.Handler())
	}

	return &Daemon{
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
		registry: registry,
		router:   router,
		tracer:   provider,
		ready:    make(chan struct{}),
	}, nil
}

// Handler returns the daemon's HTTP handler.
func (d *Daemon) Handler() http.Handler {
	return d.router
}

// Ready is closed once the daemon is listening.
func (d *Daemon) Ready() <-chan struct{} {
	return d.ready
}

// Addr returns the listener address, or nil before Start.
func (d *Daemon) Addr() net.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ln == nil {
		return nil
	}
	return d.ln.Addr()
}

// Start listens on the configured address and serves until ctx is
// cancelled or the server fails. A daemon cannot be restarted after
// Shutdown; build a new one with New.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return fmt.Errorf("daemon already started")
	}
	if d.stopped {
		d.mu.Unlock()
		return fmt.Errorf("daemon already stopped")
	}

	ln, err := net.Listen("tcp", d.cfg.Server.Addr)
	if err != nil {
		d.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", d.cfg.Server.Addr, err)
	}
	d.ln = ln
	d.server = &http.Server{
		Handler:           d.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	d.started = true
	d.mu.Unlock()

	d.logger.Info("textchefd starting",
		slog.String("version", d.opts.Version),
		slog.String("listen_addr", ln.Addr().String()),
		slog.Int("operations", d.registry.Len()),
		slog.Bool("metrics", d.cfg.Metrics.Enabled),
		slog.String("trace_exporter", d.cfg.Tracing.Exporter))
	close(d.ready)

	errCh := make(chan error, 1)
	go func() {
		if err := d.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully shuts down the daemon, waiting up to the configured
// shutdown timeout for in-flight requests.
func (d *Daemon) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return nil
	}

	d.logger.Info("graceful shutdown initiated")

	if d.server != nil {
		d.server.SetKeepAlivesEnabled(false)

		shutdownCtx, cancel := context.WithTimeout(ctx, d.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := d.server.Shutdown(shutdownCtx); err != nil {
			d.logger.Error("HTTP server shutdown error",
				internallog.Error(err))
		}
	}

	if d.tracer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := d.tracer.Shutdown(shutdownCtx); err != nil {
			d.logger.Error("OpenTelemetry provider shutdown error",
				internallog.Error(err))
		}
	}

	d.started = false
	d.stopped = true
	d.logger.Info("daemon stopped")
	return nil
}
