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

package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tombee/textchef/internal/config"
	"github.com/tombee/textchef/internal/log"
)

// RunOptions configures daemon execution.
type RunOptions struct {
	Version   string
	Commit    string
	BuildDate string

	// ConfigPath is an optional YAML config file.
	ConfigPath string

	// Config overrides
	Addr       string
	StaticDir  string
	NoMetrics  bool
	NTLMDigest string
}

// Run loads configuration, starts the daemon and blocks until SIGINT or
// SIGTERM. It is shared by textchefd and "textchef serve".
func Run(opts RunOptions) error {
	cfg, err := config.Load(config.ResolvePath(opts.ConfigPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	logger := log.New(cfg.LoggerConfig())
	slog.SetDefault(logger)

	d, err := New(cfg, Options{
		Version:   opts.Version,
		Commit:    opts.Commit,
		BuildDate: opts.BuildDate,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- d.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
		if err := d.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("error during shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("daemon error: %w", err)
		}
		return nil
	}
}

// applyOverrides applies command line values on top of cfg and revalidates.
func applyOverrides(cfg *config.Config, opts RunOptions) error {
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.StaticDir != "" {
		cfg.Server.StaticDir = opts.StaticDir
	}
	if opts.NoMetrics {
		cfg.Metrics.Enabled = false
	}
	if opts.NTLMDigest != "" {
		cfg.Operations.NTLMDigest = opts.NTLMDigest
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
