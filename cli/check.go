// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/stacklok/envguard-core/adapter"
	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/envguard"
	"github.com/stacklok/envguard-core/schema"
)

var (
	checkSchemaPath string
	checkEnvPath    string
	checkFormat     string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkSchemaPath, "schema", "", "Path to the schema file (default: $XDG_CONFIG_HOME/envguard/schema.yaml)")
	checkCmd.Flags().StringVar(&checkEnvPath, "env", "", "Path to a KEY=VALUE env file (default: process environment)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format: json or human")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate an environment against a schema file",
	Long: "Validates every declared variable and reports all failures together.\n" +
		"Exits 0 when the environment is valid, 1 otherwise.",
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// ErrValidationFailed signals a clean validation failure whose report has
// already been printed; main maps it to exit code 1 without re-printing.
var ErrValidationFailed = errors.New("validation failed")

func runCheck(cmd *cobra.Command, _ []string) error {
	schemaPath := checkSchemaPath
	if schemaPath == "" {
		schemaPath = filepath.Join(xdg.ConfigHome, "envguard", "schema.yaml")
	}

	declared, err := loadSchemaFile(schemaPath)
	if err != nil {
		return err
	}

	var environ env.Reader = &env.OSReader{}
	if checkEnvPath != "" {
		environ, err = loadEnvFile(checkEnvPath)
		if err != nil {
			return err
		}
	}

	if checkFormat != "json" && checkFormat != "human" {
		return fmt.Errorf("unknown format %q: expected json or human", checkFormat)
	}

	// Pre-flight runs server-side by definition: both groups validate
	// synchronously against the supplied raw environment.
	_, err = envguard.New(envguard.Options{
		Server:       declared.Server,
		Client:       declared.Client,
		RuntimeEnv:   environ,
		Namespace:    declared.Namespace,
		ClientPrefix: declared.Prefix,
		Adapter:      adapter.Server{},
	})

	return report(cmd.OutOrStdout(), checkFormat, err)
}

// jsonReport is the machine-readable check result.
type jsonReport struct {
	Success bool                `json:"success"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

func report(w io.Writer, format string, err error) error {
	var agg *schema.AggregateError
	switch {
	case err == nil:
		if format == "json" {
			return printJSON(w, jsonReport{Success: true})
		}
		fmt.Fprintln(w, "environment is valid")
		return nil

	case errors.As(err, &agg):
		if format == "json" {
			if perr := printJSON(w, jsonReport{Success: false, Errors: agg.Errors}); perr != nil {
				return perr
			}
			return ErrValidationFailed
		}
		fmt.Fprintf(w, "%d invalid environment variable(s):\n", len(agg.Errors))
		for _, fe := range agg.Errors {
			if fe.Received != nil {
				fmt.Fprintf(w, "  %s: %s (received %q)\n", fe.Key, fe.Message, *fe.Received)
			} else {
				fmt.Fprintf(w, "  %s: %s (not set)\n", fe.Key, fe.Message)
			}
		}
		return ErrValidationFailed

	default:
		// Configuration errors (bad namespace, bad client names) are not
		// validation reports; surface them as-is.
		return err
	}
}

func printJSON(w io.Writer, r jsonReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
