// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command envguard validates environment variables against a declared
// schema as a pre-flight check.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/stacklok/envguard-core/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Validation failures already printed their report.
		if !errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
