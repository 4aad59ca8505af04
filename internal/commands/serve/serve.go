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

// Package serve implements "textchef serve", running the daemon in the
// foreground.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/tombee/textchef/internal/commands/shared"
	"github.com/tombee/textchef/internal/daemon"
)

// runDaemon is replaced in tests.
var runDaemon = daemon.Run

// NewCommand creates the serve command
func NewCommand() *cobra.Command {
	var opts daemon.RunOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API in the foreground",
		Long: `Run the textchef HTTP API until interrupted.

Endpoints:
  GET  /api/operations   list operations
  POST /api/execute      execute an operation
  GET  /v1/health        health check
  GET  /metrics          Prometheus metrics (when enabled)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Version, opts.Commit, opts.BuildDate = shared.GetVersion()
			opts.ConfigPath = shared.GetConfigPath()
			return runDaemon(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "TCP address to listen on (default 127.0.0.1:8080)")
	cmd.Flags().StringVar(&opts.StaticDir, "static-dir", "", "Directory served under /static/")
	cmd.Flags().BoolVar(&opts.NoMetrics, "no-metrics", false, "Disable the /metrics endpoint")
	cmd.Flags().StringVar(&opts.NTLMDigest, "ntlm-digest", "", "Digest behind ntlm_hash (md5 or md4)")

	return cmd
}
