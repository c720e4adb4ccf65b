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

// Package cli holds the flags and start up shared by the packdist and
// rewriteurl commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/webdist/pkg/config"
	"github.com/walteh/webdist/pkg/log"
	"github.com/walteh/webdist/pkg/operation"
	"github.com/walteh/webdist/pkg/version"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains the flags shared by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	// Dir is searched for a config file when ConfigFile is empty.
	Dir string
}

// Env is everything a command needs after start up
type Env struct {
	Config     *config.Config
	ConfigPath string // Empty when running on defaults
	Logger     *log.Logger
}

// Register adds shared flags and version output to the root command
func (o *RootOpts) Register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .webdist.{yaml,yml,json,hcl} if present)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")

	cmd.Version = version.Short()
	cmd.SetVersionTemplate(version.Format(cmd.Name()))
}

// 🔧 Setup builds the loggers and loads the configuration
func (o *RootOpts) Setup(cmd *cobra.Command) (context.Context, *Env, error) {
	zlog := o.zerolog(cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = zlog.WithContext(ctx)

	dir := o.Dir
	if dir == "" {
		dir = "."
	}

	cfg, path, err := config.LoadOrDefault(ctx, o.ConfigFile, dir)
	if err != nil {
		return nil, nil, errors.Errorf("loading config: %w", err)
	}

	if path == "" {
		zlog.Debug().Msg("using built-in configuration")
	} else {
		zlog.Debug().Str("path", path).Str("config", cfg.String()).Msg("loaded configuration")
	}

	return ctx, &Env{
		Config:     cfg,
		ConfigPath: path,
		Logger:     log.New(cmd.OutOrStdout(), zlog),
	}, nil
}

func (o *RootOpts) zerolog(w io.Writer) zerolog.Logger {
	if !o.Debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// 🏃 Run executes ops in order with the runner
func Run(ctx context.Context, env *Env, ops ...operation.Operation) error {
	return operation.NewRunner(env.Logger.Zerolog()).Run(ctx, ops...)
}

// Execute runs cmd and returns the process exit code.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	cmd.SilenceErrors = true
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s\n", color.New(color.FgRed).Sprint(err.Error()))
		return 1
	}
	return 0
}
