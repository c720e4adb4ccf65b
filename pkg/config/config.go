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
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/webdist/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.Base("invalid configuration")

// IdentifierClass is the character class for the variable segment of a URL pattern.
const IdentifierClass = `[a-zA-Z0-9_-]+`

// 📚 Config represents the complete configuration for both tools
type Config struct {
	Pack    PackConfig    `json:"pack" yaml:"pack"`
	Rewrite RewriteConfig `json:"rewrite" yaml:"rewrite"`
}

// 📦 PackConfig configures the packager
type PackConfig struct {
	Source      string       `json:"source" yaml:"source"`             // Directory to package
	Output      string       `json:"output" yaml:"output"`             // Distribution directory, rebuilt on every run
	IgnoreFiles []string     `json:"ignore_files" yaml:"ignore_files"` // File names or globs never copied
	IgnoreDirs  []string     `json:"ignore_dirs" yaml:"ignore_dirs"`   // Directory names or globs never copied
	Encoding    string       `json:"encoding" yaml:"encoding"`         // Encoding of the redacted config and README
	Redact      RedactConfig `json:"redact" yaml:"redact"`
	Readme      ReadmeConfig `json:"readme" yaml:"readme"`
}

// 🔒 RedactConfig describes the config line scrubbed from the output
type RedactConfig struct {
	Path        string `json:"path" yaml:"path"`               // Slash separated, relative to the output directory; empty disables
	Marker      string `json:"marker" yaml:"marker"`           // Substring identifying the line
	Replacement string `json:"replacement" yaml:"replacement"` // Line written instead, without terminator
}

// 📝 ReadmeConfig describes the generated README
type ReadmeConfig struct {
	Path    string `json:"path" yaml:"path"` // Relative to the output directory; empty disables
	Content string `json:"content" yaml:"content"`
}

// 🔄 RewriteConfig configures the URL rewriter
type RewriteConfig struct {
	Root       string     `json:"root" yaml:"root"`             // Search root
	NewURL     string     `json:"new_url" yaml:"new_url"`       // Literal written over every match
	Extensions []string   `json:"extensions" yaml:"extensions"` // Case-sensitive file name suffixes
	Exclude    []string   `json:"exclude" yaml:"exclude"`       // Doublestar globs, relative to Root
	Encoding   string     `json:"encoding" yaml:"encoding"`
	Pattern    URLPattern `json:"pattern" yaml:"pattern"`
}

// 🎯 URLPattern locates old deployment URLs
//
// When Expr is set it is used verbatim, otherwise the pattern is
// Prefix, one or more IdentifierClass characters, then Suffix.
type URLPattern struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Suffix string `json:"suffix" yaml:"suffix"`
	Expr   string `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Compile builds the regular expression for the pattern.
func (p URLPattern) Compile() (*regexp.Regexp, error) {
	expr := p.Expr
	if expr == "" {
		if p.Prefix == "" && p.Suffix == "" {
			return nil, errors.Errorf("%w: rewrite.pattern needs expr or prefix and suffix", ErrInvalid)
		}
		expr = regexp.QuoteMeta(p.Prefix) + IdentifierClass + regexp.QuoteMeta(p.Suffix)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("%w: compiling rewrite.pattern: %s", ErrInvalid, err.Error())
	}
	return re, nil
}

// String returns the expression the pattern compiles to.
func (p URLPattern) String() string {
	if p.Expr != "" {
		return p.Expr
	}
	return regexp.QuoteMeta(p.Prefix) + IdentifierClass + regexp.QuoteMeta(p.Suffix)
}

// 🔍 Validate checks the configuration and normalizes paths
func (cfg *Config) Validate() error {
	if err := cfg.Pack.Validate(); err != nil {
		return err
	}
	return cfg.Rewrite.Validate()
}

// 🔍 Validate checks the packager configuration
func (p *PackConfig) Validate() error {
	if p.Source == "" {
		return errors.Errorf("%w: pack.source is required", ErrInvalid)
	}
	if p.Output == "" {
		return errors.Errorf("%w: pack.output is required", ErrInvalid)
	}

	p.Source = filepath.Clean(p.Source)
	p.Output = filepath.Clean(p.Output)

	// the output is deleted before copying, so it must never hold the source
	out, src := ResolvePath(p.Output), ResolvePath(p.Source)
	if out == src {
		return errors.Errorf("%w: pack.output %q must differ from pack.source", ErrInvalid, p.Output)
	}
	if rel, err := filepath.Rel(out, src); err == nil && !escapes(rel) {
		return errors.Errorf("%w: pack.output %q must not contain pack.source %q", ErrInvalid, p.Output, p.Source)
	}

	if err := validatePatterns("pack.ignore_files", p.IgnoreFiles); err != nil {
		return err
	}
	if err := validatePatterns("pack.ignore_dirs", p.IgnoreDirs); err != nil {
		return err
	}

	if p.Redact.Path != "" && p.Redact.Marker == "" {
		return errors.Errorf("%w: pack.redact.marker is required when pack.redact.path is set", ErrInvalid)
	}

	if _, err := text.NewCodec(p.Encoding); err != nil {
		return errors.Errorf("%w: pack.encoding: %s", ErrInvalid, err.Error())
	}

	return nil
}

// 🔍 Validate checks the rewriter configuration
func (r *RewriteConfig) Validate() error {
	if r.Root == "" {
		return errors.Errorf("%w: rewrite.root is required", ErrInvalid)
	}
	if r.NewURL == "" {
		return errors.Errorf("%w: rewrite.new_url is required", ErrInvalid)
	}
	if len(r.Extensions) == 0 {
		return errors.Errorf("%w: rewrite.extensions must not be empty", ErrInvalid)
	}
	for i, ext := range r.Extensions {
		if ext == "" {
			return errors.Errorf("%w: rewrite.extensions[%d] is empty", ErrInvalid, i)
		}
	}

	r.Root = filepath.Clean(r.Root)

	if err := validatePatterns("rewrite.exclude", r.Exclude); err != nil {
		return err
	}

	if _, err := r.Pattern.Compile(); err != nil {
		return err
	}

	if _, err := text.NewCodec(r.Encoding); err != nil {
		return errors.Errorf("%w: rewrite.encoding: %s", ErrInvalid, err.Error())
	}

	return nil
}

// ResolvePath returns the absolute path with symlinks resolved as far as the path exists.
func ResolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs
	}
	return filepath.Join(ResolvePath(parent), filepath.Base(abs))
}

// escapes reports whether a relative path leaves its base directory.
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func validatePatterns(field string, patterns []string) error {
	for i, pattern := range patterns {
		if pattern == "" {
			return errors.Errorf("%w: %s[%d] is empty", ErrInvalid, field, i)
		}
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%w: %s[%d] %q is not a valid glob", ErrInvalid, field, i, pattern)
		}
	}
	return nil
}

// 📝 String returns a short summary of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("pack %s -> %s; rewrite %s (%s)", cfg.Pack.Source, cfg.Pack.Output, cfg.Rewrite.Root, cfg.Rewrite.Pattern)
}
