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
	"strings"
)

// 🔒 RedactLines replaces every line containing marker with replacement.
//
// Other lines are copied byte for byte, terminators included. A replaced
// line keeps its own terminator ("\n" or "\r\n"); a final line without one
// gets "\n". It returns the new content and the number of lines replaced.
func RedactLines(content, marker, replacement string) (string, int) {
	if marker == "" || !strings.Contains(content, marker) {
		return content, 0
	}

	var (
		b     strings.Builder
		count int
	)
	b.Grow(len(content))

	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		if !strings.Contains(line, marker) {
			b.WriteString(line)
			continue
		}

		count++
		b.WriteString(replacement)
		if strings.HasSuffix(line, "\r\n") {
			b.WriteString("\r\n")
		} else {
			b.WriteString("\n")
		}
	}

	return b.String(), count
}
