// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldError describes one field that failed validation.
type FieldError struct {
	// Key is the variable name.
	Key string `json:"key"`
	// Message is the validator's failure message.
	Message string `json:"message"`
	// Received is the raw value that failed, or nil when the variable
	// was absent.
	Received *string `json:"received,omitempty"`
}

// AggregateError carries every field failure from one batch validation
// pass. It is only ever constructed after the full group has been
// evaluated; the entry count equals the number of invalid fields.
type AggregateError struct {
	Errors []FieldError `json:"errors"`
}

// Error implements the error interface. The message lists every failed
// variable name; per-field detail is available via the Errors slice.
func (e *AggregateError) Error() string {
	names := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		names[i] = fe.Key
	}
	return fmt.Sprintf("invalid environment variables: %s", strings.Join(names, ", "))
}

// AsJSON returns the aggregate as a JSON string for machine consumption.
func (e *AggregateError) AsJSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(b)
}

// ClientPrefixError reports a client field whose name lacks the required
// public prefix, or fails sanitization. This is a configuration-time error:
// it represents programmer error, not runtime data error, and propagates
// immediately from construction.
type ClientPrefixError struct {
	Name   string
	Prefix string
	cause  error
}

// Error implements the error interface.
func (e *ClientPrefixError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid client variable name %q: %s", e.Name, e.cause)
	}
	return fmt.Sprintf("client variable %q must be prefixed with %q", e.Name, e.Prefix)
}

// Unwrap returns the sanitization failure, if any.
func (e *ClientPrefixError) Unwrap() error {
	return e.cause
}
