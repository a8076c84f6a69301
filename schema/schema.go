// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package schema provides field validators and batch validation of raw
// environments against declared schema groups.
package schema

import (
	"strings"

	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/recovery"
	"github.com/stacklok/envguard-core/validation/keys"
)

// Validator is the opaque per-field validation capability. Implementations
// are supplied by callers; this package provides adapters for common cases
// but never requires them.
//
// raw is nil when the variable is absent from the raw environment. A
// variable present with an empty value is passed as a pointer to "".
// Validators with their own default or optional semantics rely on this
// distinction.
type Validator interface {
	Validate(raw *string) (any, error)
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(raw *string) (any, error)

// Validate implements Validator.
func (f ValidatorFunc) Validate(raw *string) (any, error) {
	return f(raw)
}

// Field binds a variable name to its validator.
type Field struct {
	Name      string
	Validator Validator
}

// Group is an ordered set of fields. Declaration order is preserved and is
// the order in which validation runs and errors are reported.
type Group []Field

// Names returns the field names in declaration order.
func (g Group) Names() []string {
	names := make([]string, len(g))
	for i, f := range g {
		names[i] = f.Name
	}
	return names
}

// ValidateField runs a single validator against a raw value. The validator
// is invoked through recovery.Capture so that a panicking validator is
// reported as a failed field rather than crashing the batch pass.
func ValidateField(name string, raw *string, v Validator) (any, *FieldError) {
	value, err := recovery.Capture(func() (any, error) {
		return v.Validate(raw)
	})
	if err != nil {
		return nil, &FieldError{Key: name, Message: err.Error(), Received: raw}
	}
	return value, nil
}

// Validate checks every field of the group against the raw environment and
// returns the typed result map. Validation never fails fast: every field is
// evaluated, and all failures come back together in a single
// *AggregateError so the caller sees the complete picture in one pass.
//
// A group with zero fields returns an empty map without touching the
// environment.
func (g Group) Validate(environ env.Reader) (map[string]any, error) {
	if len(g) == 0 {
		return map[string]any{}, nil
	}

	out := make(map[string]any, len(g))
	var fieldErrs []FieldError
	for _, f := range g {
		var raw *string
		if v, ok := environ.Lookup(f.Name); ok {
			raw = &v
		}
		value, ferr := ValidateField(f.Name, raw, f.Validator)
		if ferr != nil {
			fieldErrs = append(fieldErrs, *ferr)
			continue
		}
		out[f.Name] = value
	}

	if len(fieldErrs) > 0 {
		return nil, &AggregateError{Errors: fieldErrs}
	}
	return out, nil
}

// Passthrough skips validation entirely and returns the raw values keyed by
// field name. Absent variables appear in the result with a nil value, so
// the shape of the result still matches the declared group.
func (g Group) Passthrough(environ env.Reader) map[string]any {
	out := make(map[string]any, len(g))
	for _, f := range g {
		if v, ok := environ.Lookup(f.Name); ok {
			out[f.Name] = v
		} else {
			out[f.Name] = nil
		}
	}
	return out
}

// CheckClientNames verifies that every field name in a client group
// sanitizes cleanly and carries the public prefix. Unlike batch validation
// this is a configuration-correctness guard evaluated once at setup, so it
// fails fast on the first offending name.
func CheckClientNames(g Group, prefix string) error {
	for _, f := range g {
		if _, err := keys.Sanitize(f.Name); err != nil {
			return &ClientPrefixError{Name: f.Name, Prefix: prefix, cause: err}
		}
		if !strings.HasPrefix(f.Name, prefix) {
			return &ClientPrefixError{Name: f.Name, Prefix: prefix}
		}
	}
	return nil
}
