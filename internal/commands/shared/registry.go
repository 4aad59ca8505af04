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

package shared

import (
	"io"
	"log/slog"

	"github.com/tombee/textchef/internal/action/hashing"
	"github.com/tombee/textchef/internal/config"
	"github.com/tombee/textchef/internal/log"
	"github.com/tombee/textchef/internal/operation"
)

// LoadConfig loads the config selected by --config, falling back to the
// default config file when one exists.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(GetConfigPath()))
	if err != nil {
		return nil, NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// Logger returns a logger for CLI commands writing to w. --verbose enables
// debug output; otherwise only warnings and errors are shown.
func Logger(w io.Writer) *slog.Logger {
	cfg := log.FromEnv()
	cfg.Output = w
	cfg.Format = log.FormatText
	if GetVerbose() {
		cfg.Level = "debug"
	} else if log.ParseLevel(cfg.Level) < slog.LevelWarn {
		cfg.Level = "warn"
	}
	return log.New(cfg)
}

// NewRegistry builds the builtin registry configured from the config file.
func NewRegistry(logw io.Writer) (*operation.Registry, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	digest, err := hashing.ParseDigest(cfg.Operations.NTLMDigest)
	if err != nil {
		return nil, NewConfigError("invalid operations.ntlm_digest", err)
	}
	return operation.NewBuiltinRegistry(
		&operation.BuiltinConfig{NTLMDigest: digest},
		operation.WithLogger(log.WithComponent(Logger(logw), "registry")),
	)
}
