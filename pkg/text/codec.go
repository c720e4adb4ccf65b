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
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrDecode is wrapped when file contents are not valid in the codec's encoding.
var ErrDecode = errors.Base("invalid byte sequence")

// ErrEncode is wrapped when text cannot be represented in the codec's encoding.
var ErrEncode = errors.Base("unrepresentable character")

const utf8Name = "utf-8"

// 🔤 Codec converts file bytes to text and back using a named character encoding
type Codec struct {
	name string
	enc  encoding.Encoding
}

// 🏭 NewCodec resolves a WHATWG encoding label such as "utf-8" or "windows-1256".
// An empty label means UTF-8.
func NewCodec(label string) (*Codec, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = utf8Name
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Errorf("unknown encoding %q: %w", label, err)
	}

	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, errors.Errorf("naming encoding %q: %w", label, err)
	}

	return &Codec{name: name, enc: enc}, nil
}

// Name returns the canonical encoding name.
func (c *Codec) Name() string {
	return c.name
}

// 📥 Decode converts data to text. UTF-8 input must be valid; nothing is replaced.
func (c *Codec) Decode(data []byte) (string, error) {
	if c.name == utf8Name {
		if !utf8.Valid(data) {
			return "", errors.Errorf("%w for %s", ErrDecode, c.name)
		}
		return string(data), nil
	}

	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Errorf("%w for %s: %s", ErrDecode, c.name, err.Error())
	}
	return string(out), nil
}

// 📤 Encode converts text back to bytes in the codec's encoding.
func (c *Codec) Encode(s string) ([]byte, error) {
	if c.name == utf8Name {
		return []byte(s), nil
	}

	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Errorf("%w for %s: %s", ErrEncode, c.name, err.Error())
	}
	return out, nil
}
