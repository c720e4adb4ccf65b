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
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
//
// Expressions can read the process environment through the env object:
//
//	rewrite {
//	  new_url = env.BRIDGE_URL
//	}
type HCLParser struct {
	// Environ overrides os.Environ, used by tests.
	Environ func() []string
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclRedact struct {
	Path        *string `hcl:"path,optional"`
	Marker      *string `hcl:"marker,optional"`
	Replacement *string `hcl:"replacement,optional"`
}

type hclReadme struct {
	Path    *string `hcl:"path,optional"`
	Content *string `hcl:"content,optional"`
}

type hclPack struct {
	Source      *string    `hcl:"source,optional"`
	Output      *string    `hcl:"output,optional"`
	IgnoreFiles []string   `hcl:"ignore_files,optional"`
	IgnoreDirs  []string   `hcl:"ignore_dirs,optional"`
	Encoding    *string    `hcl:"encoding,optional"`
	Redact      *hclRedact `hcl:"redact,block"`
	Readme      *hclReadme `hcl:"readme,block"`
}

type hclPattern struct {
	Prefix *string `hcl:"prefix,optional"`
	Suffix *string `hcl:"suffix,optional"`
	Expr   *string `hcl:"expr,optional"`
}

type hclRewrite struct {
	Root       *string     `hcl:"root,optional"`
	NewURL     *string     `hcl:"new_url,optional"`
	Extensions []string    `hcl:"extensions,optional"`
	Exclude    []string    `hcl:"exclude,optional"`
	Encoding   *string     `hcl:"encoding,optional"`
	Pattern    *hclPattern `hcl:"pattern,block"`
}

type hclConfig struct {
	Pack    *hclPack    `hcl:"pack,block"`
	Rewrite *hclRewrite `hcl:"rewrite,block"`
}

// 📝 Parse decodes HCL onto base
func (p *HCLParser) Parse(ctx context.Context, data []byte, base *Config) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": p.envObject(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if pk := hclCfg.Pack; pk != nil {
		setString(&base.Pack.Source, pk.Source)
		setString(&base.Pack.Output, pk.Output)
		setString(&base.Pack.Encoding, pk.Encoding)
		if pk.IgnoreFiles != nil {
			base.Pack.IgnoreFiles = pk.IgnoreFiles
		}
		if pk.IgnoreDirs != nil {
			base.Pack.IgnoreDirs = pk.IgnoreDirs
		}
		if r := pk.Redact; r != nil {
			setString(&base.Pack.Redact.Path, r.Path)
			setString(&base.Pack.Redact.Marker, r.Marker)
			setString(&base.Pack.Redact.Replacement, r.Replacement)
		}
		if r := pk.Readme; r != nil {
			setString(&base.Pack.Readme.Path, r.Path)
			setString(&base.Pack.Readme.Content, r.Content)
		}
	}

	if rw := hclCfg.Rewrite; rw != nil {
		setString(&base.Rewrite.Root, rw.Root)
		setString(&base.Rewrite.NewURL, rw.NewURL)
		setString(&base.Rewrite.Encoding, rw.Encoding)
		if rw.Extensions != nil {
			base.Rewrite.Extensions = rw.Extensions
		}
		if rw.Exclude != nil {
			base.Rewrite.Exclude = rw.Exclude
		}
		if pt := rw.Pattern; pt != nil {
			setString(&base.Rewrite.Pattern.Prefix, pt.Prefix)
			setString(&base.Rewrite.Pattern.Suffix, pt.Suffix)
			setString(&base.Rewrite.Pattern.Expr, pt.Expr)
		}
	}

	return nil
}

// envObject exposes the environment as an HCL object value
func (p *HCLParser) envObject() cty.Value {
	environ := os.Environ
	if p.Environ != nil {
		environ = p.Environ
	}

	vars := map[string]cty.Value{}
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
