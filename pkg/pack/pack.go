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

// Package pack assembles the publishable subset of a project tree.
package pack

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/walteh/webdist/pkg/config"
	"github.com/walteh/webdist/pkg/fsys"
	"github.com/walteh/webdist/pkg/log"
	"github.com/walteh/webdist/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ToolName is shown in the console header.
const ToolName = "packdist"

const (
	outputDirMode = 0o755
	readmeMode    = 0o644
)

// 🔧 Options contains configuration for the packager
type Options struct {
	Config config.PackConfig
	FS     fsys.FS
	Logger *log.Logger

	// ExcludePaths are left out wherever they sit in the source, e.g. the loaded config file
	ExcludePaths []string
}

// 📋 Report summarizes a packaging run
type Report struct {
	Output        string
	Files         int      // Files copied
	Dirs          int      // Directories copied, the output root excluded
	Skipped       []string // Source paths left out by the ignore lists
	RedactedLines int
	ConfigFound   bool   // Whether the config file to redact was present
	Readme        string // Path of the generated README, empty when disabled
}

// 📦 Packager copies a source tree into a clean distribution directory
type Packager struct {
	cfg     config.PackConfig
	fs      fsys.FS
	log     *log.Logger
	ignore  *Matcher
	codec   *text.Codec
	outAbs  string
	exclude map[string]bool
}

// 🏭 New creates a packager
func New(opts Options) (*Packager, error) {
	if opts.FS == nil {
		return nil, errors.Errorf("file system is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}

	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// a plain output name is ignored at every level, as the output may not exist yet.
	// nested outputs are only caught by their absolute path in skip.
	var outputNames []string
	if filepath.Base(cfg.Output) == filepath.Clean(cfg.Output) {
		outputNames = []string{filepath.Base(cfg.Output)}
	}
	ignore, err := NewMatcher(cfg.IgnoreFiles, cfg.IgnoreDirs, outputNames)
	if err != nil {
		return nil, err
	}

	codec, err := text.NewCodec(cfg.Encoding)
	if err != nil {
		return nil, errors.Errorf("creating codec: %w", err)
	}

	outAbs, err := filepath.Abs(cfg.Output)
	if err != nil {
		return nil, errors.Errorf("resolving output directory: %w", err)
	}

	exclude := make(map[string]bool, len(opts.ExcludePaths))
	for _, path := range opts.ExcludePaths {
		exclude[config.ResolvePath(path)] = true
	}

	return &Packager{
		cfg:     cfg,
		fs:      opts.FS,
		log:     opts.Logger,
		ignore:  ignore,
		codec:   codec,
		outAbs:  outAbs,
		exclude: exclude,
	}, nil
}

// Name implements operation.Operation.
func (p *Packager) Name() string {
	return "pack"
}

// 🏃 Execute implements operation.Operation
func (p *Packager) Execute(ctx context.Context) error {
	_, err := p.Pack(ctx)
	return err
}

// 🏃 Pack rebuilds the output directory. Any file system error aborts the run.
func (p *Packager) Pack(ctx context.Context) (*Report, error) {
	report := &Report{Output: p.cfg.Output}

	p.log.Header(ToolName, fmt.Sprintf("🚀 Starting packaging into: %s", p.cfg.Output))

	if err := p.resetOutput(ctx); err != nil {
		return nil, err
	}

	entries, err := p.fs.ReadDir(ctx, p.cfg.Source)
	if err != nil {
		return nil, errors.Errorf("listing source: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("packaging cancelled: %w", err)
		}

		name := entry.Name()
		src := filepath.Join(p.cfg.Source, name)
		dst := filepath.Join(p.cfg.Output, name)

		if p.skip(name, src, report) {
			continue
		}

		info, err := p.fs.Stat(ctx, src)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			p.log.Stepf("📁", "Copying directory: %s", name)
			if err := p.copyTree(ctx, src, dst, report); err != nil {
				return nil, errors.Errorf("copying directory %s: %w", name, err)
			}
			continue
		}

		p.log.Stepf("📄", "Copying file: %s", name)
		if err := p.fs.CopyFile(ctx, src, dst); err != nil {
			return nil, errors.Errorf("copying file %s: %w", name, err)
		}
		report.Files++
	}

	if err := p.redact(ctx, report); err != nil {
		return nil, err
	}

	if err := p.writeReadme(ctx, report); err != nil {
		return nil, err
	}

	p.log.Successf("Packaged successfully! You can now upload the contents of '%s' to your GitHub repository.", p.cfg.Output)
	p.log.Summary("Package", [][2]string{
		{"Files", strconv.Itoa(report.Files)},
		{"Directories", strconv.Itoa(report.Dirs)},
		{"Skipped", strconv.Itoa(len(report.Skipped))},
		{"Redacted lines", strconv.Itoa(report.RedactedLines)},
	})

	return report, nil
}

// 🧹 resetOutput deletes any previous output and creates an empty directory
func (p *Packager) resetOutput(ctx context.Context) error {
	exists, err := p.fs.Exists(ctx, p.cfg.Output)
	if err != nil {
		return err
	}

	if exists {
		p.log.Stepf("🧹", "Clearing existing %s...", p.cfg.Output)
		if err := p.fs.RemoveAll(ctx, p.cfg.Output); err != nil {
			return errors.Errorf("clearing output directory: %w", err)
		}
	}

	if err := p.fs.MkdirAll(ctx, p.cfg.Output, outputDirMode); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}
	return nil
}

// 🔍 skip reports whether an entry stays out of the output
func (p *Packager) skip(name, src string, report *Report) bool {
	pattern, ok := p.ignore.Match(name)
	if !ok && p.isOutput(src) {
		pattern, ok = "output directory", true
	}
	if !ok && len(p.exclude) > 0 && p.exclude[config.ResolvePath(src)] {
		pattern, ok = "excluded path", true
	}
	if !ok {
		return false
	}

	report.Skipped = append(report.Skipped, src)
	p.log.Zerolog().Debug().Str("path", src).Str("pattern", pattern).Msg("skipping ignored entry")
	return true
}

func (p *Packager) isOutput(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && abs == p.outAbs
}

// 📁 copyTree copies a directory recursively, applying the ignore lists at every level
func (p *Packager) copyTree(ctx context.Context, src, dst string, report *Report) error {
	if err := p.fs.MkdirAll(ctx, dst, outputDirMode); err != nil {
		return err
	}

	entries, err := p.fs.ReadDir(ctx, src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		childSrc := filepath.Join(src, name)
		childDst := filepath.Join(dst, name)

		if p.skip(name, childSrc, report) {
			continue
		}

		info, err := p.fs.Stat(ctx, childSrc)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if err := p.copyTree(ctx, childSrc, childDst, report); err != nil {
				return err
			}
			continue
		}

		if err := p.fs.CopyFile(ctx, childSrc, childDst); err != nil {
			return err
		}
		report.Files++
	}

	// after the children, so their writes do not bump the directory mtime
	if err := p.fs.CopyMetadata(ctx, src, dst); err != nil {
		return err
	}
	report.Dirs++
	return nil
}

// 🔒 redact scrubs the marker line from the copied config file, if there is one
func (p *Packager) redact(ctx context.Context, report *Report) error {
	rc := p.cfg.Redact
	if rc.Path == "" {
		return nil
	}

	path := filepath.Join(p.cfg.Output, filepath.FromSlash(rc.Path))
	info, err := p.fs.Stat(ctx, path)
	if errors.Is(err, fsys.ErrNotExist) {
		p.log.Zerolog().Debug().Str("path", path).Msg("config file not found, nothing to redact")
		return nil
	}
	if err != nil {
		return errors.Errorf("checking config file: %w", err)
	}
	if info.IsDir() {
		return errors.Errorf("config file %s is a directory", path)
	}
	report.ConfigFound = true

	p.log.Stepf("🔒", "Cleaning %s (removing %s line)...", rc.Path, rc.Marker)

	data, err := p.fs.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	content, err := p.codec.Decode(data)
	if err != nil {
		return errors.Errorf("decoding %s: %w", path, err)
	}

	redacted, count := text.RedactLines(content, rc.Marker, rc.Replacement)
	report.RedactedLines = count
	if count == 0 {
		p.log.Warningf("No line containing %q found in %s", rc.Marker, rc.Path)
		return nil
	}

	out, err := p.codec.Encode(redacted)
	if err != nil {
		return errors.Errorf("encoding %s: %w", path, err)
	}

	if err := p.fs.WriteFile(ctx, path, out, info.Mode().Perm()); err != nil {
		return errors.Errorf("writing redacted config: %w", err)
	}
	return nil
}

// 📝 writeReadme writes the static README into the output directory
func (p *Packager) writeReadme(ctx context.Context, report *Report) error {
	rc := p.cfg.Readme
	if rc.Path == "" {
		return nil
	}

	path := filepath.Join(p.cfg.Output, filepath.FromSlash(rc.Path))
	p.log.Stepf("📝", "Writing %s...", rc.Path)

	if err := p.fs.MkdirAll(ctx, filepath.Dir(path), outputDirMode); err != nil {
		return errors.Errorf("creating README directory: %w", err)
	}

	out, err := p.codec.Encode(rc.Content)
	if err != nil {
		return errors.Errorf("encoding README: %w", err)
	}

	if err := p.fs.WriteFile(ctx, path, out, readmeMode); err != nil {
		return errors.Errorf("writing README: %w", err)
	}

	report.Readme = path
	return nil
}
