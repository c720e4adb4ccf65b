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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse overlays the config in data onto base
	Parse(ctx context.Context, data []byte, base *Config) error

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// DefaultFileNames are searched, in order, when no config file is given.
var DefaultFileNames = []string{
	".webdist.yaml",
	".webdist.yml",
	".webdist.json",
	".webdist.hcl",
}

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load reads the file at path over the defaults and validates the result
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg := Default()
	if err := p.Parse(ctx, data, cfg); err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Discover returns the first of DefaultFileNames present in dir, or "" when none is.
func Discover(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", errors.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// 🎯 LoadOrDefault loads path, or the discovered config in dir when path is empty,
// falling back to Default when there is nothing to load.
func LoadOrDefault(ctx context.Context, path, dir string) (*Config, string, error) {
	if path == "" {
		found, err := Discover(dir)
		if err != nil {
			return nil, "", err
		}
		if found == "" {
			zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
			return Default(), "", nil
		}
		path = found
	}

	cfg, err := Load(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
