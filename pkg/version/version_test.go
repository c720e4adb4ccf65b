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

package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet(t *testing.T) {
	tests := []struct {
		name         string
		info         *debug.BuildInfo
		ok           bool
		wantVersion  string
		wantRevision string
		wantModified bool
	}{
		{
			name:        "no_build_info",
			ok:          false,
			wantVersion: "dev",
		},
		{
			name:        "devel_build",
			info:        &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:          true,
			wantVersion: "dev",
		},
		{
			name: "tagged_build",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{
					{Key: "vcs", Value: "git"},
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			ok:           true,
			wantVersion:  "v1.2.3",
			wantRevision: "abc123",
			wantModified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.info, tt.ok)

			got := Get()
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, tt.wantRevision, got.Revision)
			assert.Equal(t, tt.wantModified, got.Modified)
			assert.Equal(t, runtime.Version(), got.GoVersion)
		})
	}
}

func TestShortAndFormat(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.modified", Value: "true"}, {Key: "vcs.revision", Value: "deadbeef"}},
	}, true)

	assert.Equal(t, "v0.4.0+dirty", Short())

	out := Format("packdist")
	assert.Contains(t, out, "🚀 packdist version info:")
	assert.Contains(t, out, "Version:   v0.4.0")
	assert.Contains(t, out, "Revision:  deadbeef (modified)")
}
