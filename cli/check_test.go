// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/schema"
)

const testSchema = `
namespace: app
server:
  DATABASE_URL:
    type: url
  PORT:
    type: int
    default: "8080"
  LOG_LEVEL:
    enum: [debug, info, warn, error]
    optional: true
client:
  NEXT_PUBLIC_API_URL:
    cel: 'value.startsWith("https://")'
  NEXT_PUBLIC_FEATURES:
    jsonschema: '{"type": "object"}'
    optional: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSchemaFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "schema.yaml", testSchema)
	declared, err := loadSchemaFile(path)
	require.NoError(t, err)

	assert.Equal(t, "app", declared.Namespace)
	assert.Equal(t, []string{"DATABASE_URL", "PORT", "LOG_LEVEL"}, declared.Server.Names(),
		"declaration order is preserved")
	assert.Equal(t, []string{"NEXT_PUBLIC_API_URL", "NEXT_PUBLIC_FEATURES"}, declared.Client.Names())
}

func TestLoadSchemaFile_UnknownKey(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "schema.yaml", "unexpected: true\n")
	_, err := loadSchemaFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected")
}

func TestLoadSchemaFile_UnknownType(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "schema.yaml", "server:\n  X:\n    type: quaternion\n")
	_, err := loadSchemaFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quaternion")
}

func TestFieldSpec_ValidatorWiring(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "schema.yaml", testSchema)
	declared, err := loadSchemaFile(path)
	require.NoError(t, err)

	environ := env.Map{
		"DATABASE_URL":        "https://db.example.com",
		"NEXT_PUBLIC_API_URL": "https://api.example.com",
	}

	values, err := declared.Server.Validate(environ)
	require.NoError(t, err)
	assert.Equal(t, 8080, values["PORT"], "default applied")
	assert.Nil(t, values["LOG_LEVEL"], "optional absent field is nil")

	values, err = declared.Client.Validate(environ)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", values["NEXT_PUBLIC_API_URL"])
}

func TestLoadEnvFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, ".env", "# comment\nDATABASE_URL=https://db.example.com\n\nQUOTED=\"hello\"\n")
	environ, err := loadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://db.example.com", environ.Getenv("DATABASE_URL"))
	assert.Equal(t, "hello", environ.Getenv("QUOTED"))
}

func TestLoadEnvFile_Malformed(t *testing.T) {
	t.Parallel()

	path := writeFile(t, ".env", "NOT A PAIR\n")
	_, err := loadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestReport_HumanSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report(&buf, "human", nil))
	assert.Contains(t, buf.String(), "environment is valid")
}

func TestReport_HumanFailure(t *testing.T) {
	t.Parallel()

	received := "nope"
	agg := &schema.AggregateError{Errors: []schema.FieldError{
		{Key: "DATABASE_URL", Message: "invalid URL", Received: &received},
		{Key: "PORT", Message: "required but not set"},
	}}

	var buf bytes.Buffer
	err := report(&buf, "human", agg)
	assert.ErrorIs(t, err, ErrValidationFailed)

	out := buf.String()
	assert.Contains(t, out, "2 invalid environment variable(s)")
	assert.Contains(t, out, `DATABASE_URL: invalid URL (received "nope")`)
	assert.Contains(t, out, "PORT: required but not set (not set)")
}

func TestReport_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report(&buf, "json", nil))

	var ok jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ok))
	assert.True(t, ok.Success)

	buf.Reset()
	agg := &schema.AggregateError{Errors: []schema.FieldError{
		{Key: "PORT", Message: "required but not set"},
	}}
	err := report(&buf, "json", agg)
	assert.ErrorIs(t, err, ErrValidationFailed)

	var failed jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &failed))
	assert.False(t, failed.Success)
	require.Len(t, failed.Errors, 1)
	assert.Equal(t, "PORT", failed.Errors[0].Key)
}

func TestCheckCommand_EndToEnd(t *testing.T) { //nolint:paralleltest // Mutates package-level flag state
	schemaPath := writeFile(t, "schema.yaml", testSchema)
	envPath := writeFile(t, ".env",
		"DATABASE_URL=https://db.example.com\nNEXT_PUBLIC_API_URL=https://api.example.com\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"check", "--schema", schemaPath, "--env", envPath, "--format", "json"})
	t.Cleanup(func() {
		checkSchemaPath, checkEnvPath, checkFormat = "", "", "human"
	})

	require.NoError(t, rootCmd.Execute())

	var result jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.True(t, result.Success)
}

func TestCheckCommand_FailureExitPath(t *testing.T) { //nolint:paralleltest // Mutates package-level flag state
	schemaPath := writeFile(t, "schema.yaml", testSchema)
	envPath := writeFile(t, ".env", "DATABASE_URL=not-a-url\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"check", "--schema", schemaPath, "--env", envPath})
	t.Cleanup(func() {
		checkSchemaPath, checkEnvPath, checkFormat = "", "", "human"
	})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, buf.String(), "DATABASE_URL")
}

func TestCheckCommand_UnknownFlag(t *testing.T) { //nolint:paralleltest // Mutates package-level flag state
	rootCmd.SetArgs([]string{"check", "--nonsense"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)

	assert.Error(t, rootCmd.Execute())
}
