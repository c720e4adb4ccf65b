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
	_ "embed"
)

//go:embed readme_default.md
var defaultReadme string

const (
	DefaultOutput      = "athar_github_v3"
	DefaultEncoding    = "utf-8"
	DefaultRedactPath  = "js/config.js"
	DefaultMarker      = "BRIDGE_URL:"
	DefaultPlaceholder = `    BRIDGE_URL: "https://YOUR_NEW_DEPLOYMENT_URL_HERE/exec", // ⚠️ Replace this with your actual URL`
	DefaultReadmePath  = "README_FOR_GITHUB.md"

	DefaultNewURL    = "https://script.google.com/macros/s/AKfycby0-da3m_iVDFst4K4ha67SzbhC-BJ0bGVrLabj4Eh7Nosr0Jhw3zqsgRDSZiNgw5_1_w/exec"
	DefaultURLPrefix = "https://script.google.com/macros/s/AKfycb"
	DefaultURLSuffix = "/exec"
)

// Default returns the built-in configuration used when no config file is found.
func Default() *Config {
	return &Config{
		Pack: PackConfig{
			Source: ".",
			Output: DefaultOutput,
			// config files hold the live deployment url
			IgnoreFiles: append([]string{
				"bridge_script.js",     // server side secrets
				"pack_for_github.py",   // legacy packaging script
				".env",                 // local environment
				"update_bridge_url.py", // legacy url helper
				"package-lock.json",    // not needed for a static deploy
				"server.js",            // local dev server
			}, DefaultFileNames...),
			IgnoreDirs: []string{
				".git",
				".agent",
				".idea",
				"node_modules",
			},
			Encoding: DefaultEncoding,
			Redact: RedactConfig{
				Path:        DefaultRedactPath,
				Marker:      DefaultMarker,
				Replacement: DefaultPlaceholder,
			},
			Readme: ReadmeConfig{
				Path:    DefaultReadmePath,
				Content: defaultReadme,
			},
		},
		Rewrite: RewriteConfig{
			Root:       ".",
			NewURL:     DefaultNewURL,
			Extensions: []string{".html", ".js", ".md"},
			Encoding:   DefaultEncoding,
			Pattern: URLPattern{
				Prefix: DefaultURLPrefix,
				Suffix: DefaultURLSuffix,
			},
		},
	}
}
