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

package main

import (
	"github.com/spf13/cobra"
	"github.com/walteh/webdist/pkg/cli"
	"github.com/walteh/webdist/pkg/fsys"
	"github.com/walteh/webdist/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the rewriteurl command
func newRootCmd() *cobra.Command {
	var (
		root   cli.RootOpts
		dir    string
		newURL string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "rewriteurl",
		Short: "Replace old Apps Script deployment URLs with a new one",
		Long: `rewriteurl walks the search root and rewrites every deployment URL
matching the configured pattern in .html, .js and .md files.
Files that fail to read or write are reported and skipped; the
command still exits successfully.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, env, err := root.Setup(cmd)
			if err != nil {
				return err
			}

			cfg := env.Config.Rewrite
			if cmd.Flags().Changed("root") {
				cfg.Root = dir
			}
			if cmd.Flags().Changed("new-url") {
				cfg.NewURL = newURL
			}

			r, err := rewrite.New(rewrite.Options{
				Config: cfg,
				FS:     fsys.OS(),
				Logger: env.Logger,
				DryRun: dryRun,
			})
			if err != nil {
				return errors.Errorf("creating rewriter: %w", err)
			}

			return cli.Run(ctx, env, r)
		},
	}

	root.Register(cmd)
	cmd.Flags().StringVar(&dir, "root", "", "directory to search (default from config, \".\")")
	cmd.Flags().StringVar(&newURL, "new-url", "", "URL written over every match (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")

	return cmd
}
