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

package text

import (
	"regexp"
)

// 📋 ReplacementResult describes the outcome of a replacement pass
type ReplacementResult struct {
	OriginalContent  string
	ModifiedContent  string
	Matches          []string // Matched text, in order of appearance
	ReplacementCount int
	WasModified      bool // False when every match already equals the replacement
}

// 🔄 PatternReplacer substitutes a literal for every match of a pattern
type PatternReplacer struct {
	pattern     *regexp.Regexp
	replacement string
}

// 🏭 NewPatternReplacer creates a replacer. The replacement is literal: "$1" is not expanded.
func NewPatternReplacer(pattern *regexp.Regexp, replacement string) *PatternReplacer {
	return &PatternReplacer{
		pattern:     pattern,
		replacement: replacement,
	}
}

// ReplaceText replaces every match in content.
func (r *PatternReplacer) ReplaceText(content string) *ReplacementResult {
	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}

	result.Matches = r.pattern.FindAllString(content, -1)
	result.ReplacementCount = len(result.Matches)
	if result.ReplacementCount == 0 {
		return result
	}

	result.ModifiedContent = r.pattern.ReplaceAllLiteralString(content, r.replacement)
	result.WasModified = result.ModifiedContent != content
	return result
}
