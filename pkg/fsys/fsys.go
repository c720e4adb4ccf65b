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

package fsys

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// ErrNotExist is returned (wrapped) for missing paths.
var ErrNotExist = fs.ErrNotExist

// 💾 FS is the file system capability used by the packager and the rewriter
type FS interface {
	// Stat follows symlinks
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Resolve follows symlinks to the final target; backends without links return path
	Resolve(ctx context.Context, path string) (string, error)

	// ReadDir lists a directory sorted by name
	ReadDir(ctx context.Context, path string) ([]fs.FileInfo, error)
	Walk(ctx context.Context, root string, fn filepath.WalkFunc) error

	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile replaces path atomically where the backing store allows it
	WriteFile(ctx context.Context, path string, content []byte, perm fs.FileMode) error
	// CopyFile copies content, permissions and modification time
	CopyFile(ctx context.Context, src, dst string) error
	// CopyMetadata copies permissions and modification time only
	CopyMetadata(ctx context.Context, src, dst string) error

	MkdirAll(ctx context.Context, path string, perm fs.FileMode) error
	RemoveAll(ctx context.Context, path string) error
}

// 🔧 aferoFS implements FS on top of an afero.Fs
type aferoFS struct {
	fs     afero.Fs
	atomic bool // route WriteFile through renameio
}

// 🏭 OS returns an FS backed by the real file system
func OS() FS {
	return &aferoFS{fs: afero.NewOsFs(), atomic: true}
}

// 🏭 New wraps any afero file system, e.g. afero.NewMemMapFs() in tests
func New(backing afero.Fs) FS {
	return &aferoFS{fs: backing}
}

func (f *aferoFS) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	info, err := f.fs.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat %s: %w", path, err)
	}
	return info, nil
}

func (f *aferoFS) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := afero.Exists(f.fs, path)
	if err != nil {
		return false, errors.Errorf("checking existence of %s: %w", path, err)
	}
	return ok, nil
}

func (f *aferoFS) Resolve(ctx context.Context, path string) (string, error) {
	if _, ok := f.fs.(*afero.OsFs); !ok {
		return path, nil
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", path, err)
	}
	return target, nil
}

func (f *aferoFS) ReadDir(ctx context.Context, path string) ([]fs.FileInfo, error) {
	entries, err := afero.ReadDir(f.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", path, err)
	}
	return entries, nil
}

func (f *aferoFS) Walk(ctx context.Context, root string, fn filepath.WalkFunc) error {
	return afero.Walk(f.fs, root, fn)
}

func (f *aferoFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading file %s: %w", path, err)
	}
	return content, nil
}

func (f *aferoFS) WriteFile(ctx context.Context, path string, content []byte, perm fs.FileMode) error {
	if err := f.writeFile(path, content, perm); err != nil {
		return errors.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

func (f *aferoFS) CopyFile(ctx context.Context, src, dst string) (err error) {
	in, err := f.fs.Open(src)
	if err != nil {
		return errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Errorf("stat %s: %w", src, err)
	}

	out, err := f.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}

	return f.applyMetadata(dst, info)
}

func (f *aferoFS) CopyMetadata(ctx context.Context, src, dst string) error {
	info, err := f.fs.Stat(src)
	if err != nil {
		return errors.Errorf("stat %s: %w", src, err)
	}
	return f.applyMetadata(dst, info)
}

// applyMetadata sets mode and times after creation, since the umask may have masked the mode
func (f *aferoFS) applyMetadata(dst string, info fs.FileInfo) error {
	if err := f.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("chmod %s: %w", dst, err)
	}
	if err := f.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("chtimes %s: %w", dst, err)
	}
	return nil
}

func (f *aferoFS) MkdirAll(ctx context.Context, path string, perm fs.FileMode) error {
	if err := f.fs.MkdirAll(path, perm); err != nil {
		return errors.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

func (f *aferoFS) RemoveAll(ctx context.Context, path string) error {
	if err := f.fs.RemoveAll(path); err != nil {
		return errors.Errorf("removing %s: %w", path, err)
	}
	return nil
}
