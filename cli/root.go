// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the envguard command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/stacklok/envguard-core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "envguard",
	Short: "Validate environment variables against a declared schema",
	Long: "envguard runs pre-flight validation of environment variables against a\n" +
		"schema file, reporting every invalid variable in one pass.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Initialize()
	},
}

// Execute runs the root command. A non-nil error means validation failed
// or the invocation was malformed; callers map it to exit code 1.
func Execute() error {
	return rootCmd.Execute()
}
