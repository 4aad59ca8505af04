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

// Package run implements "textchef run".
package run

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/textchef/internal/commands/shared"
)

// maxStdinBytes bounds input read from stdin.
const maxStdinBytes = 64 << 20

// NewCommand creates the run command
func NewCommand() *cobra.Command {
	var (
		params  []string
		trimEOL bool
	)

	cmd := &cobra.Command{
		Use:   "run <operation> [input]",
		Short: "Execute an operation",
		Long: `Execute an operation on input. When input is omitted it is read from stdin.

Parameters are passed as key=value pairs and are coerced to the type the
operation declares. A value that does not coerce falls back to the default.

Examples:
  textchef run base64_encode "Hello, World!"
  textchef run caesar_cipher Hello -p shift=3
  echo -n '{"a":1}' | textchef run json_prettify`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 2 {
				input = args[1]
			} else {
				data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinBytes))
				if err != nil {
					return shared.NewUsageError("failed to read stdin", err)
				}
				input = string(data)
				if trimEOL {
					input = strings.TrimSuffix(strings.TrimSuffix(input, "\n"), "\r")
				}
			}
			return runOperation(cmd, args[0], input, params)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Operation parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&trimEOL, "trim-newline", true, "Strip one trailing newline from stdin input")

	return cmd
}

func runOperation(cmd *cobra.Command, name, input string, rawParams []string) error {
	params, err := ParseParams(rawParams)
	if err != nil {
		return err
	}

	registry, err := shared.NewRegistry(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	result := registry.Execute(name, input, params)

	if shared.GetJSON() {
		if err := shared.EmitJSON(cmd.OutOrStdout(), result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		if !result.Success {
			return &shared.ExitError{Code: shared.ExitExecutionFailed}
		}
		return nil
	}

	out, err := result.Value()
	if err != nil {
		return shared.NewExecutionError(err.Error(), nil)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// ParseParams converts key=value pairs into a parameter map. A later
// duplicate key wins.
func ParseParams(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, shared.NewUsageError(fmt.Sprintf("invalid parameter %q (want key=value)", kv), nil)
		}
		params[key] = value
	}
	return params, nil
}

