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

package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/textchef/internal/commands/shared"
	"github.com/tombee/textchef/internal/operation"
)

func runVersionCmd(t *testing.T, args ...string) string {
	t.Helper()
	shared.SetVersion("1.0.0", "test123", "2025-12-22")
	t.Cleanup(func() { shared.SetVersion("dev", "unknown", "unknown") })
	t.Cleanup(shared.ResetFlagsForTest)

	root := &cobra.Command{Use: "textchef", SilenceUsage: true, SilenceErrors: true}
	shared.BindGlobalFlags(root.PersistentFlags())
	root.AddCommand(NewVersionCommand())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"version"}, args...))

	require.NoError(t, root.Execute())
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestVersionOutput(t *testing.T) {
	out := runVersionCmd(t)

	assert.Contains(t, out, "textchef version 1.0.0")
	assert.Contains(t, out, "commit:     test123")
	assert.Contains(t, out, "build date: 2025-12-22")
	assert.Contains(t, out, "operations: ")
}

func TestVersionJSONOutput(t *testing.T) {
	out := runVersionCmd(t, "--json")

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info), out)

	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "test123", info.Commit)
	assert.Equal(t, "2025-12-22", info.BuildDate)
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, len(operation.Builtins(nil)), info.Operations)
}

func TestVersionRejectsArguments(t *testing.T) {
	root := &cobra.Command{Use: "textchef", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewVersionCommand())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"version", "extra"})

	assert.Error(t, root.Execute())
}
