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

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tombee/textchef/internal/daemon"
	"github.com/tombee/textchef/internal/log"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to config file")
		addr        = flag.String("addr", "", "TCP address to listen on")
		staticDir   = flag.String("static-dir", "", "Directory served under /static/")
		noMetrics   = flag.Bool("no-metrics", false, "Disable the /metrics endpoint")
		ntlmDigest  = flag.String("ntlm-digest", "", "Digest behind the ntlm operation (md5, md4)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("textchefd %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	err := daemon.Run(daemon.RunOptions{
		Version:    version,
		Commit:     commit,
		BuildDate:  buildDate,
		ConfigPath: *configPath,
		Addr:       *addr,
		StaticDir:  *staticDir,
		NoMetrics:  *noMetrics,
		NTLMDigest: *ntlmDigest,
	})
	if err != nil {
		log.New(log.FromEnv()).Error("textchefd exited", slog.Any("error", err))
		os.Exit(1)
	}
}
