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

// Package rewrite replaces deployment URLs across a source tree.
package rewrite

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/webdist/pkg/config"
	"github.com/walteh/webdist/pkg/fsys"
	"github.com/walteh/webdist/pkg/log"
	"github.com/walteh/webdist/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ToolName is shown in the console header.
const ToolName = "rewriteurl"

// ErrRoot is returned when the search root is missing or not a directory.
var ErrRoot = errors.Base("invalid search root")

// 🔧 Options contains configuration for the rewriter
type Options struct {
	Config config.RewriteConfig
	FS     fsys.FS
	Logger *log.Logger
	DryRun bool // Report pending changes without writing
}

// 📝 Change is a file that was, or in a dry run would be, rewritten
type Change struct {
	Path         string // Relative to the search root, slash separated
	Replacements int
	Diff         string // Only set in dry runs
}

// ❌ Failure is a file that could not be processed
type Failure struct {
	Path string
	Err  error
}

// 📋 Result summarizes a rewrite run
type Result struct {
	Scanned int // Files with a matching extension
	Matched int // Files containing the pattern, including ones already up to date
	Updated []Change
	Failed  []Failure
}

// 🔄 Rewriter walks a tree replacing every match of the URL pattern
type Rewriter struct {
	cfg      config.RewriteConfig
	fs       fsys.FS
	log      *log.Logger
	dryRun   bool
	replacer *text.PatternReplacer
	codec    *text.Codec
}

// 🏭 New creates a rewriter
func New(opts Options) (*Rewriter, error) {
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

	re, err := cfg.Pattern.Compile()
	if err != nil {
		return nil, err
	}

	codec, err := text.NewCodec(cfg.Encoding)
	if err != nil {
		return nil, errors.Errorf("creating codec: %w", err)
	}

	return &Rewriter{
		cfg:      cfg,
		fs:       opts.FS,
		log:      opts.Logger,
		dryRun:   opts.DryRun,
		replacer: text.NewPatternReplacer(re, cfg.NewURL),
		codec:    codec,
	}, nil
}

// Name implements operation.Operation.
func (r *Rewriter) Name() string {
	return "rewrite"
}

// 🏃 Execute implements operation.Operation. Per file failures are logged, not returned.
func (r *Rewriter) Execute(ctx context.Context) error {
	_, err := r.Rewrite(ctx)
	return err
}

// 🏃 Rewrite processes every file under the root. Only a bad root or
// cancellation returns an error.
//
// A file is written only when replacing changes its text. A file whose
// matches already equal the new URL counts as matched and is left alone,
// so its modification time does not move on re-runs. Symlinked files are
// rewritten at their target.
func (r *Rewriter) Rewrite(ctx context.Context) (*Result, error) {
	root := r.cfg.Root

	info, err := r.fs.Stat(ctx, root)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrRoot, err.Error())
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s is not a directory", ErrRoot, root)
	}

	verb := "Replacing"
	if r.dryRun {
		verb = "Dry run, checking"
	}
	r.log.Header(ToolName, fmt.Sprintf("🔍 %s %s in %s", verb, r.cfg.Pattern.String(), root))

	result := &Result{}

	err = r.fs.Walk(ctx, root, func(path string, info fs.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := r.relative(path)

		if walkErr != nil {
			r.fail(result, rel, walkErr)
			return nil
		}

		if path != root && r.excluded(rel) {
			r.log.Zerolog().Debug().Str("path", rel).Msg("excluded")
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !r.hasExtension(info.Name()) {
			return nil
		}

		// links are written through, so the link itself survives
		if info.Mode()&fs.ModeSymlink != 0 {
			target, targetInfo, err := r.followLink(ctx, path)
			if err != nil {
				r.fail(result, rel, err)
				return nil
			}
			if targetInfo.IsDir() {
				return nil
			}
			r.log.Zerolog().Debug().Str("path", rel).Str("target", target).Msg("following symlink")
			path, info = target, targetInfo
		}

		result.Scanned++

		change, matched, err := r.processFile(ctx, path, rel, info)
		if err != nil {
			r.fail(result, rel, err)
			return nil
		}
		if matched {
			result.Matched++
		}
		if change != nil {
			result.Updated = append(result.Updated, *change)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	r.report(result)
	return result, nil
}

// 📝 processFile rewrites one file. The returned change is nil when nothing needs writing.
func (r *Rewriter) processFile(ctx context.Context, path, rel string, info fs.FileInfo) (*Change, bool, error) {
	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, false, err
	}

	content, err := r.codec.Decode(data)
	if err != nil {
		return nil, false, err
	}

	res := r.replacer.ReplaceText(content)
	if res.ReplacementCount == 0 {
		r.log.Zerolog().Debug().Str("path", rel).Msg("no match")
		return nil, false, nil
	}
	if !res.WasModified {
		r.log.Zerolog().Debug().Str("path", rel).Int("matches", res.ReplacementCount).Msg("already up to date")
		return nil, true, nil
	}

	change := &Change{Path: rel, Replacements: res.ReplacementCount}

	if r.dryRun {
		change.Diff = lineDiff(res.OriginalContent, res.ModifiedContent)
		r.log.LogFileOperation(log.FileOperation{
			Path:         rel,
			Action:       log.ActionWouldUpdate,
			Replacements: change.Replacements,
		})
		r.log.Detail(change.Diff)
		return change, true, nil
	}

	out, err := r.codec.Encode(res.ModifiedContent)
	if err != nil {
		return nil, true, err
	}

	if err := r.fs.WriteFile(ctx, path, out, info.Mode().Perm()); err != nil {
		return nil, true, err
	}

	r.log.LogFileOperation(log.FileOperation{
		Path:         rel,
		Action:       log.ActionUpdated,
		Replacements: change.Replacements,
	})
	return change, true, nil
}

func (r *Rewriter) followLink(ctx context.Context, path string) (string, fs.FileInfo, error) {
	target, err := r.fs.Resolve(ctx, path)
	if err != nil {
		return "", nil, err
	}
	info, err := r.fs.Stat(ctx, target)
	if err != nil {
		return "", nil, err
	}
	return target, info, nil
}

func (r *Rewriter) fail(result *Result, rel string, err error) {
	result.Failed = append(result.Failed, Failure{Path: rel, Err: err})
	r.log.LogFileOperation(log.FileOperation{
		Path:   rel,
		Action: log.ActionFailed,
		Err:    err,
	})
}

func (r *Rewriter) relative(path string) string {
	rel, err := filepath.Rel(r.cfg.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (r *Rewriter) excluded(rel string) bool {
	for _, pattern := range r.cfg.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (r *Rewriter) hasExtension(name string) bool {
	for _, ext := range r.cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// 📊 report prints the closing lines of a run
func (r *Rewriter) report(result *Result) {
	if len(result.Failed) > 0 {
		r.log.Warningf("%d file(s) could not be processed", len(result.Failed))
	}

	switch {
	case len(result.Updated) == 0:
		r.log.Info("No files needed updating.")
	case r.dryRun:
		r.log.Infof("%d file(s) would be updated, nothing was written.", len(result.Updated))
	default:
		r.log.Successf("Updated %d file(s).", len(result.Updated))
	}

	updatedLabel := "Updated"
	if r.dryRun {
		updatedLabel = "Would update"
	}
	r.log.Summary("URL rewrite", [][2]string{
		{"Scanned", strconv.Itoa(result.Scanned)},
		{"Matched", strconv.Itoa(result.Matched)},
		{updatedLabel, strconv.Itoa(len(result.Updated))},
		{"Failed", strconv.Itoa(len(result.Failed))},
	})
}
