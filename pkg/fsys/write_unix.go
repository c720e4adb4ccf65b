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

//go:build !windows

package fsys

import (
	"io/fs"

	"github.com/google/renameio/v2"
	"github.com/spf13/afero"
)

// writeFile uses renameio on the OS file system: temp file, fsync, rename
func (f *aferoFS) writeFile(path string, content []byte, perm fs.FileMode) error {
	if !f.atomic {
		return afero.WriteFile(f.fs, path, content, perm)
	}
	return renameio.WriteFile(path, content, perm)
}
