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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tombee/textchef/internal/commands/shared"
	"github.com/tombee/textchef/internal/operation"
)

// CommandMetadata describes one command for machine-readable help.
type CommandMetadata struct {
	Name        string         `json:"name"`
	Short       string         `json:"short"`
	Long        string         `json:"long,omitempty"`
	Usage       string         `json:"usage"`
	Args        string         `json:"args,omitempty"`
	Group       string         `json:"group,omitempty"`
	Aliases     []string       `json:"aliases,omitempty"`
	Examples    string         `json:"examples,omitempty"`
	Flags       []FlagMetadata `json:"flags,omitempty"`
	Subcommands []string       `json:"subcommands,omitempty"`
}

// FlagMetadata describes one flag.
type FlagMetadata struct {
	Name      string `json:"name"`
	Shorthand string `json:"shorthand,omitempty"`
	Type      string `json:"type"`
	Default   string `json:"default,omitempty"`
	Usage     string `json:"usage"`
}

// HelpResponse is the JSON body written by "help --json". Exactly one of
// Commands and Command is set; Command is keyed "command_metadata" so the
// envelope keeps "command" for the invoked help path. Operations lists the catalog names when the
// whole tree is requested.
type HelpResponse struct {
	shared.JSONResponse
	Commands    []CommandMetadata `json:"commands,omitempty"`
	Command     *CommandMetadata  `json:"command_metadata,omitempty"`
	GlobalFlags []FlagMetadata    `json:"global_flags,omitempty"`
	Operations  []string          `json:"operations,omitempty"`
}

// NewHelpCommand replaces cobra's default help with one that can emit JSON.
func NewHelpCommand(rootCmd *cobra.Command) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		Long: `Show usage for textchef or one of its commands.

  textchef help              all commands
  textchef help run          one command
  textchef help --json       machine-readable, including the operation names`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := rootCmd
			if len(args) > 0 {
				found, _, err := rootCmd.Find(args)
				if err != nil || found == rootCmd {
					return shared.NewUsageError(fmt.Sprintf("command %q not found", args[0]), err)
				}
				target = found
			}

			if !jsonOutput && !shared.GetJSON() {
				return target.Help()
			}
			return shared.EmitJSON(cmd.OutOrStdout(), describe(rootCmd, target))
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// describe builds the help body for target, which is either the root or one
// of its descendants.
func describe(rootCmd, target *cobra.Command) HelpResponse {
	resp := HelpResponse{
		JSONResponse: shared.JSONResponse{
			Version: "1.0",
			Command: "help",
			Success: true,
		},
		GlobalFlags: extractGlobalFlags(rootCmd),
	}

	if target != rootCmd {
		md := extractCommandMetadata(target)
		resp.JSONResponse.Command = "help " + target.Name()
		resp.Command = &md
		return resp
	}

	resp.Commands = []CommandMetadata{}
	for _, c := range rootCmd.Commands() {
		if c.Hidden {
			continue
		}
		resp.Commands = append(resp.Commands, extractCommandMetadata(c))
	}
	for _, e := range operation.Builtins(nil) {
		resp.Operations = append(resp.Operations, e.Descriptor.Name)
	}
	return resp
}

// extractCommandMetadata reads cmd's help fields. Inherited flags are left
// to GlobalFlags. The "group" and "args" annotations are copied when set.
func extractCommandMetadata(cmd *cobra.Command) CommandMetadata {
	md := CommandMetadata{
		Name:     cmd.Name(),
		Short:    cmd.Short,
		Long:     cmd.Long,
		Usage:    cmd.UseLine(),
		Args:     cmd.Annotations["args"],
		Group:    cmd.Annotations["group"],
		Aliases:  cmd.Aliases,
		Examples: cmd.Example,
	}

	if flags := visibleFlags(cmd.LocalNonPersistentFlags()); len(flags) > 0 {
		md.Flags = flags
	}

	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			md.Subcommands = append(md.Subcommands, sub.Name())
		}
	}

	return md
}

// extractGlobalFlags returns the root's persistent flags.
func extractGlobalFlags(rootCmd *cobra.Command) []FlagMetadata {
	return visibleFlags(rootCmd.PersistentFlags())
}

func visibleFlags(set *pflag.FlagSet) []FlagMetadata {
	flags := []FlagMetadata{}
	set.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		flags = append(flags, FlagMetadata{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Type:      f.Value.Type(),
			Default:   f.DefValue,
			Usage:     f.Usage,
		})
	})
	return flags
}
