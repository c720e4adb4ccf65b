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
	"github.com/walteh/webdist/pkg/pack"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the packdist command
func newRootCmd() *cobra.Command {
	var (
		root   cli.RootOpts
		source string
		output string
	)

	cmd := &cobra.Command{
		Use:   "packdist",
		Short: "Package the project into a clean folder for GitHub",
		Long: `packdist rebuilds the output folder from the source tree.
It will:
1. Delete the output folder if it exists
2. Copy every file and folder not on the ignore lists
3. Replace the BRIDGE_URL line of the copied config with a placeholder
4. Write a README explaining how to configure the deployment`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, env, err := root.Setup(cmd)
			if err != nil {
				return err
			}

			cfg := env.Config.Pack
			if cmd.Flags().Changed("source") {
				cfg.Source = source
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}

			opts := pack.Options{
				Config: cfg,
				FS:     fsys.OS(),
				Logger: env.Logger,
			}
			// the loaded config carries the live url, so it never ships
			if env.ConfigPath != "" {
				opts.ExcludePaths = []string{env.ConfigPath}
			}

			p, err := pack.New(opts)
			if err != nil {
				return errors.Errorf("creating packager: %w", err)
			}

			return cli.Run(ctx, env, p)
		},
	}

	root.Register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "directory to package (default from config, \".\")")
	cmd.Flags().StringVar(&output, "output", "", "output directory, deleted and rebuilt (default from config)")

	return cmd
}
