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

// Package operations implements "textchef operations".
package operations

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/textchef/internal/commands/shared"
	"github.com/tombee/textchef/internal/operation"
)

// NewCommand creates the operations command
func NewCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops", "list"},
		Short:   "List available operations",
		Long: `List every operation with its category, description and parameters.

Examples:
  textchef operations
  textchef operations --category Hashing
  textchef operations --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperations(cmd, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list operations in this category (case-insensitive)")

	return cmd
}

func runOperations(cmd *cobra.Command, category string) error {
	registry, err := shared.NewRegistry(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ops := filter(registry.List(), category)
	if category != "" && len(ops) == 0 {
		return shared.NewUsageError(fmt.Sprintf("no operations in category %q", category), nil)
	}

	if shared.GetJSON() {
		return shared.EmitJSON(cmd.OutOrStdout(), ops)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION\tPARAMETERS")
	for _, d := range ops {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Category, d.Description, formatParams(d.Parameters))
	}
	return w.Flush()
}

func filter(ops []operation.Descriptor, category string) []operation.Descriptor {
	if category == "" {
		return ops
	}
	out := make([]operation.Descriptor, 0, len(ops))
	for _, d := range ops {
		if strings.EqualFold(string(d.Category), category) {
			out = append(out, d)
		}
	}
	return out
}

// formatParams renders parameters as "shift:number=13" style tokens.
func formatParams(params []operation.ParameterDescriptor) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name + ":" + string(p.Type)
		if p.Required {
			s += " (required)"
		}
		if p.DefaultValue != nil {
			s += "=" + *p.DefaultValue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
