// Copyright 2025 walteh LLC
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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/webdist/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func newTestCmd(o *RootOpts, run func(cmd *cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:  "webdist-test",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}
	o.Register(cmd)
	return cmd
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		args       []string
		wantOutput string
		wantPath   string
		wantErr    error
	}{
		{
			name:       "defaults_without_config_file",
			wantOutput: config.DefaultOutput,
		},
		{
			name: "discovered_yaml",
			files: map[string]string{
				".webdist.yaml": "pack:\n  output: public\n",
			},
			wantOutput: "public",
			wantPath:   ".webdist.yaml",
		},
		{
			name: "yaml_wins_over_json",
			files: map[string]string{
				".webdist.yaml": "pack:\n  output: from_yaml\n",
				".webdist.json": `{"pack": {"output": "from_json"}}`,
			},
			wantOutput: "from_yaml",
			wantPath:   ".webdist.yaml",
		},
		{
			name: "explicit_config_flag",
			files: map[string]string{
				".webdist.yaml": "pack:\n  output: discovered\n",
				"custom.json":   `{"pack": {"output": "explicit"}}`,
			},
			args:       []string{"--config", "custom.json"},
			wantOutput: "explicit",
			wantPath:   "custom.json",
		},
		{
			name: "invalid_config",
			files: map[string]string{
				".webdist.yaml": "pack:\n  output: .\n",
			},
			wantErr: config.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
			}

			args := append([]string{}, tt.args...)
			for i := range args {
				if i > 0 && args[i-1] == "--config" {
					args[i] = filepath.Join(dir, args[i])
				}
			}

			o := &RootOpts{Dir: dir}
			var env *Env
			cmd := newTestCmd(o, func(cmd *cobra.Command) error {
				var err error
				_, env, err = o.Setup(cmd)
				return err
			})
			cmd.SetArgs(args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			err := cmd.ExecuteContext(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutput, env.Config.Pack.Output)
			if tt.wantPath == "" {
				assert.Empty(t, env.ConfigPath)
			} else {
				assert.Equal(t, filepath.Join(dir, tt.wantPath), env.ConfigPath)
			}
		})
	}
}

func TestSetup_DebugLogging(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantLevel zerolog.Level
	}{
		{name: "quiet_by_default", wantLevel: zerolog.Disabled},
		{name: "debug_flag", args: []string{"--debug"}, wantLevel: zerolog.DebugLevel},
		{name: "debug_shorthand", args: []string{"-d"}, wantLevel: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &RootOpts{Dir: t.TempDir()}
			var ctx context.Context
			cmd := newTestCmd(o, func(cmd *cobra.Command) error {
				var err error
				ctx, _, err = o.Setup(cmd)
				return err
			})
			cmd.SetArgs(append([]string{}, tt.args...))
			cmd.SetErr(&bytes.Buffer{})

			require.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.Equal(t, tt.wantLevel, zerolog.Ctx(ctx).GetLevel())
		})
	}
}

func TestExecute(t *testing.T) {
	o := &RootOpts{}
	cmd := newTestCmd(o, func(cmd *cobra.Command) error {
		return errors.New("disk full")
	})
	stderr := &bytes.Buffer{}
	cmd.SetErr(stderr)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Equal(t, 1, Execute(context.Background(), cmd))
	assert.Contains(t, stderr.String(), "❌")
	assert.Contains(t, stderr.String(), "disk full")
}
