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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name: "yaml",
			file: ".webdist.yaml",
			content: `
pack:
  source: site
  output: public
  ignore_files: ["*.py", secrets.json]
  redact:
    marker: "API_URL:"
rewrite:
  new_url: https://script.google.com/macros/s/AKfycbNEW/exec
  exclude: ["public/**"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "site", cfg.Pack.Source)
				assert.Equal(t, "public", cfg.Pack.Output)
				assert.Equal(t, []string{"*.py", "secrets.json"}, cfg.Pack.IgnoreFiles)
				assert.Equal(t, Default().Pack.IgnoreDirs, cfg.Pack.IgnoreDirs, "absent keys keep their defaults")
				assert.Equal(t, "API_URL:", cfg.Pack.Redact.Marker)
				assert.Equal(t, DefaultRedactPath, cfg.Pack.Redact.Path)
				assert.Equal(t, "https://script.google.com/macros/s/AKfycbNEW/exec", cfg.Rewrite.NewURL)
				assert.Equal(t, []string{"public/**"}, cfg.Rewrite.Exclude)
				assert.Equal(t, []string{".html", ".js", ".md"}, cfg.Rewrite.Extensions)
			},
		},
		{
			name:    "empty_yaml_is_defaults",
			file:    ".webdist.yml",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "json",
			file: ".webdist.json",
			content: `{
  "pack": {"output": "build", "readme": {"path": "docs/README.md"}},
  "rewrite": {"root": "./src/../src", "extensions": [".html"]}
}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "build", cfg.Pack.Output)
				assert.Equal(t, "docs/README.md", cfg.Pack.Readme.Path)
				assert.Equal(t, Default().Pack.Readme.Content, cfg.Pack.Readme.Content)
				assert.Equal(t, "src", cfg.Rewrite.Root, "paths are cleaned")
				assert.Equal(t, []string{".html"}, cfg.Rewrite.Extensions)
			},
		},
		{
			name: "hcl",
			file: ".webdist.hcl",
			content: `
pack {
  output      = "dist"
  ignore_dirs = [".git", "tmp"]

  redact {
    path = "src/settings.js"
  }
}

rewrite {
  root = "src"

  pattern {
    expr = "https://example\\.com/[a-z]+"
  }
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "dist", cfg.Pack.Output)
				assert.Equal(t, []string{".git", "tmp"}, cfg.Pack.IgnoreDirs)
				assert.Equal(t, "src/settings.js", cfg.Pack.Redact.Path)
				assert.Equal(t, DefaultMarker, cfg.Pack.Redact.Marker)
				assert.Equal(t, "src", cfg.Rewrite.Root)
				assert.Equal(t, `https://example\.com/[a-z]+`, cfg.Rewrite.Pattern.String())
			},
		},
		{
			name:    "yaml_unknown_field",
			file:    ".webdist.yaml",
			content: "pack:\n  outptu: dist\n",
			wantErr: "parsing config",
		},
		{
			name:    "json_unknown_field",
			file:    ".webdist.json",
			content: `{"rewrite": {"newurl": "x"}}`,
			wantErr: "parsing config",
		},
		{
			name:    "hcl_unknown_attribute",
			file:    ".webdist.hcl",
			content: "pack {\n  outptu = \"dist\"\n}\n",
			wantErr: "parsing config",
		},
		{
			name:    "hcl_syntax_error",
			file:    ".webdist.hcl",
			content: "pack {\n",
			wantErr: "parsing config",
		},
		{
			name:    "unsupported_extension",
			file:    "webdist.toml",
			content: "[pack]\n",
			wantErr: "no parser found",
		},
		{
			name:    "invalid_after_overlay",
			file:    ".webdist.yaml",
			content: "rewrite:\n  extensions: []\n",
			wantErr: "validating config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)

			cfg, err := Load(testContext(t), path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(testContext(t), filepath.Join(t.TempDir(), ".webdist.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestHCLParser_Env(t *testing.T) {
	p := &HCLParser{
		Environ: func() []string {
			return []string{"BRIDGE_URL=https://script.google.com/macros/s/AKfycbENV/exec", "IGNORED", "=x"}
		},
	}

	cfg := Default()
	err := p.Parse(testContext(t), []byte(`
rewrite {
  new_url = env.BRIDGE_URL
}
`), cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/AKfycbENV/exec", cfg.Rewrite.NewURL)
}

func TestHCLParser_MissingEnv(t *testing.T) {
	p := &HCLParser{Environ: func() []string { return nil }}

	err := p.Parse(testContext(t), []byte(`
rewrite {
  new_url = env.BRIDGE_URL
}
`), Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding HCL")
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		dirs  []string
		want  string
	}{
		{name: "none"},
		{name: "yaml", files: []string{".webdist.yaml"}, want: ".webdist.yaml"},
		{name: "hcl_only", files: []string{".webdist.hcl"}, want: ".webdist.hcl"},
		{name: "order", files: []string{".webdist.hcl", ".webdist.json", ".webdist.yml"}, want: ".webdist.yml"},
		{name: "directories_ignored", dirs: []string{".webdist.yaml"}, files: []string{".webdist.json"}, want: ".webdist.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
			}
			for _, name := range tt.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
			}

			got, err := Discover(dir)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := testContext(t)

	cfg, path, err := LoadOrDefault(ctx, "", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".webdist.json"), []byte(`{"pack": {"output": "out"}}`), 0o644))

	cfg, path, err = LoadOrDefault(ctx, "", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".webdist.json"), path)
	assert.Equal(t, "out", cfg.Pack.Output)
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		file string
		want Parser
	}{
		{file: "a.yaml", want: &YAMLParser{}},
		{file: "a.yml", want: &YAMLParser{}},
		{file: "A.JSON", want: &JSONParser{}},
		{file: "a.hcl", want: &HCLParser{}},
		{file: "a.toml", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got := GetParser(tt.file)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}
