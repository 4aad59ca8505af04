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

import "github.com/spf13/pflag"

// globals holds the persistent flag values bound by the root command.
var globals struct {
	verbose bool
	quiet   bool
	json    bool
	config  string
}

// Build-time version information
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// BindGlobalFlags registers --verbose, --quiet, --json and --config on fs.
func BindGlobalFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&globals.verbose, "verbose", "v", false, "Enable verbose output")
	fs.BoolVarP(&globals.quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVar(&globals.json, "json", false, "Output in JSON format")
	fs.StringVar(&globals.config, "config", "", "Path to config file (default: ~/.config/textchef/config.yaml)")
}

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return globals.verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return globals.quiet
}

// GetJSON returns the JSON output flag value
func GetJSON() bool {
	return globals.json
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return globals.config
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return version, commit, buildDate
}

// SetConfigPathForTest sets the config path for testing purposes
func SetConfigPathForTest(path string) {
	globals.config = path
}

// SetJSONForTest forces JSON output for testing purposes
func SetJSONForTest(on bool) {
	globals.json = on
}

// ResetFlagsForTest restores every global flag to its zero value.
func ResetFlagsForTest() {
	globals.verbose = false
	globals.quiet = false
	globals.json = false
	globals.config = ""
}
