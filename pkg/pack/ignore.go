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

package pack

import (
	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Matcher decides whether an entry name is excluded from the copy.
// Patterns match a single path element, as literal names or globs.
type Matcher struct {
	patterns []string
}

// 🏭 NewMatcher joins the pattern lists into one matcher
func NewMatcher(lists ...[]string) (*Matcher, error) {
	m := &Matcher{}
	for _, list := range lists {
		for _, pattern := range list {
			if !doublestar.ValidatePattern(pattern) {
				return nil, errors.Errorf("invalid ignore pattern %q", pattern)
			}
			m.patterns = append(m.patterns, pattern)
		}
	}
	return m, nil
}

// Match returns the first pattern matching name.
func (m *Matcher) Match(name string) (string, bool) {
	for _, pattern := range m.patterns {
		if pattern == name {
			return pattern, true
		}
		// patterns are validated up front, so the error is always nil
		if ok, _ := doublestar.Match(pattern, name); ok {
			return pattern, true
		}
	}
	return "", false
}
