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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tombee/textchef/internal/action/hashing"
	"github.com/tombee/textchef/internal/log"
)

var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config represents the complete textchef configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Operations OperationsConfig `yaml:"operations"`
}

// ServerConfig configures the HTTP daemon.
type ServerConfig struct {
	// Addr is the TCP address to listen on.
	// Environment: TEXTCHEF_ADDR
	// Default: 127.0.0.1:8080
	Addr string `yaml:"addr"`

	// StaticDir, when set, is served under /static/.
	// Environment: TEXTCHEF_STATIC_DIR
	StaticDir string `yaml:"static_dir,omitempty"`

	// MaxRequestBytes caps the size of an execute request body.
	// Environment: TEXTCHEF_MAX_REQUEST_BYTES
	// Default: 10 MiB
	MaxRequestBytes int64 `yaml:"max_request_bytes"`

	// ShutdownTimeout is the maximum duration to wait for in-flight
	// requests during graceful shutdown.
	// Environment: TEXTCHEF_SHUTDOWN_TIMEOUT
	// Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RateLimit throttles the execute endpoint. Zero disables it.
	RateLimit RateLimitConfig `yaml:"rate_limit,omitempty"`
}

// RateLimitConfig configures a token bucket.
type RateLimitConfig struct {
	// RequestsPerSecond is the refill rate.
	// Environment: TEXTCHEF_RATE_LIMIT_RPS
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the bucket size. Zero means EffectiveBurst picks one.
	// Environment: TEXTCHEF_RATE_LIMIT_BURST
	Burst int `yaml:"burst"`
}

// Enabled reports whether rate limiting is configured.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerSecond > 0
}

// LogConfig configures logging.
type LogConfig struct {
	// Level sets the minimum log level (trace, debug, info, warn, error).
	// Default: info
	Level string `yaml:"level"`

	// Format sets the output format (json, text).
	// Default: json
	Format string `yaml:"format"`

	// AddSource adds source file and line information to logs.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled exposes /metrics on the daemon.
	// Environment: TEXTCHEF_METRICS_ENABLED
	// Default: true
	Enabled bool `yaml:"enabled"`
}

// Tracing exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// TracingConfig configures OpenTelemetry spans around executions.
type TracingConfig struct {
	// Exporter is "none" or "stdout".
	// Environment: TEXTCHEF_TRACING_EXPORTER
	// Default: none
	Exporter string `yaml:"exporter"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: textchefd
	ServiceName string `yaml:"service_name,omitempty"`
}

// OperationsConfig tunes individual operations.
type OperationsConfig struct {
	// NTLMDigest selects the digest behind ntlm_hash: "md5" keeps the
	// simplified output, "md4" produces a real NT hash.
	// Environment: TEXTCHEF_NTLM_DIGEST
	// Default: md5
	NTLMDigest string `yaml:"ntlm_digest"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			MaxRequestBytes: 10 << 20,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Tracing: TracingConfig{
			Exporter:    ExporterNone,
			ServiceName: "textchefd",
		},
		Operations: OperationsConfig{
			NTLMDigest: string(hashing.DigestMD5),
		},
	}
}

// Load loads configuration from environment variables and optionally from a YAML file.
// Environment variables take precedence over file-based configuration.
// If configPath is empty, only environment variables are used.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.loadFromFile(configPath); err != nil {
			return nil, &ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", configPath),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.loadFromEnv(); err != nil {
		return nil, &ConfigError{
			Key:    "environment",
			Reason: "invalid environment override",
			Cause:  err,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed",
			Cause:  err,
		}
	}

	return cfg, nil
}

// applyDefaults fills in zero values so minimal files work.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.MaxRequestBytes == 0 {
		c.Server.MaxRequestBytes = defaults.Server.MaxRequestBytes
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = defaults.Tracing.Exporter
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = defaults.Tracing.ServiceName
	}
	if c.Operations.NTLMDigest == "" {
		c.Operations.NTLMDigest = defaults.Operations.NTLMDigest
	}
}

// loadFromFile loads configuration from a YAML file.
func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// loadFromEnv applies environment overrides. Unparsable numeric or
// duration values are reported rather than ignored.
func (c *Config) loadFromEnv() error {
	if val := os.Getenv("TEXTCHEF_ADDR"); val != "" {
		c.Server.Addr = val
	}
	if val := os.Getenv("TEXTCHEF_STATIC_DIR"); val != "" {
		c.Server.StaticDir = val
	}
	if val := os.Getenv("TEXTCHEF_MAX_REQUEST_BYTES"); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("TEXTCHEF_MAX_REQUEST_BYTES: %w", err)
		}
		c.Server.MaxRequestBytes = n
	}
	if val := os.Getenv("TEXTCHEF_SHUTDOWN_TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("TEXTCHEF_SHUTDOWN_TIMEOUT: %w", err)
		}
		c.Server.ShutdownTimeout = d
	}
	if val := os.Getenv("TEXTCHEF_RATE_LIMIT_RPS"); val != "" {
		rps, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("TEXTCHEF_RATE_LIMIT_RPS: %w", err)
		}
		c.Server.RateLimit.RequestsPerSecond = rps
	}
	if val := os.Getenv("TEXTCHEF_RATE_LIMIT_BURST"); val != "" {
		burst, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("TEXTCHEF_RATE_LIMIT_BURST: %w", err)
		}
		c.Server.RateLimit.Burst = burst
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_SOURCE"); val != "" {
		c.Log.AddSource = val == "1" || strings.ToLower(val) == "true"
	}

	if val := os.Getenv("TEXTCHEF_METRICS_ENABLED"); val != "" {
		c.Metrics.Enabled = val == "1" || strings.ToLower(val) == "true"
	}
	if val := os.Getenv("TEXTCHEF_TRACING_EXPORTER"); val != "" {
		c.Tracing.Exporter = strings.ToLower(val)
	}
	if val := os.Getenv("TEXTCHEF_NTLM_DIGEST"); val != "" {
		c.Operations.NTLMDigest = strings.ToLower(val)
	}

	return nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if c.Server.MaxRequestBytes <= 0 {
		errs = append(errs, fmt.Sprintf("server.max_request_bytes must be positive, got %d", c.Server.MaxRequestBytes))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout))
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Sprintf("server.rate_limit.requests_per_second must not be negative, got %v", c.Server.RateLimit.RequestsPerSecond))
	}
	if c.Server.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Sprintf("server.rate_limit.burst must not be negative, got %d", c.Server.RateLimit.Burst))
	}
	if c.Server.StaticDir != "" {
		if info, err := os.Stat(c.Server.StaticDir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Sprintf("server.static_dir %q is not a directory", c.Server.StaticDir))
		}
	}

	if !log.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Sprintf("log.level must be one of [trace, debug, info, warn, warning, error], got %q", c.Log.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format must be one of [json, text], got %q", c.Log.Format))
	}

	switch c.Tracing.Exporter {
	case ExporterNone, ExporterStdout:
	default:
		errs = append(errs, fmt.Sprintf("tracing.exporter must be one of [none, stdout], got %q", c.Tracing.Exporter))
	}

	if _, err := hashing.ParseDigest(c.Operations.NTLMDigest); err != nil {
		errs = append(errs, fmt.Sprintf("operations.ntlm_digest: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}

	return nil
}

// EffectiveBurst returns the token bucket size, defaulting to the ceiling
// of RequestsPerSecond.
func (r RateLimitConfig) EffectiveBurst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	b := int(r.RequestsPerSecond)
	if float64(b) < r.RequestsPerSecond {
		b++
	}
	if b < 1 {
		b = 1
	}
	return b
}

// LoggerConfig converts the log section into a log.Config writing to stderr.
func (c *Config) LoggerConfig() *log.Config {
	cfg := log.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = log.Format(c.Log.Format)
	cfg.AddSource = c.Log.AddSource
	return cfg
}
