// Copyright 2025 The Sigstore Authors.
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

// Package options defines the command-line options and flags for the
// rekor-bundle CLI.
package options

import (
	"github.com/sigstore/rekor-bundle/pkg/logging"
	"github.com/spf13/cobra"
)

// EnvPrefix is the prefix used for environment variables that configure the CLI.
const EnvPrefix = "REKOR_BUNDLE"

// FlagAdder is implemented by any flag group that can register itself to a
// cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// RootOptions defines flags available globally across all subcommands.
type RootOptions struct {
	// LogLevel sets the minimum log level (debug, info, warn, error, silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
}

var _ FlagAdder = (*RootOptions)(nil)

// AddFlags adds root-level flags to the cobra command.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"set the minimum log level (debug, info, warn, error, silent)")

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")
}

// NewLogger creates a logger based on the root options.
func (o *RootOptions) NewLogger() logging.Logger {
	return logging.New(logging.Options{
		Level:  logging.ParseLevel(o.LogLevel),
		Format: logging.ParseFormat(o.LogFormat),
	})
}
