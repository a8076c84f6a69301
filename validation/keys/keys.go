// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package keys provides sanitization for environment variable names.
package keys

import (
	"errors"
	"fmt"
	"regexp"
)

var validNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)

// reservedNames are rejected unconditionally. When variable names become
// property keys in a script payload, these names can corrupt the prototype
// chain of the receiving object.
var reservedNames = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// Sentinel errors for name sanitization.
var (
	// ErrEmptyName indicates the variable name is empty.
	ErrEmptyName = errors.New("variable name cannot be empty")

	// ErrReservedName indicates the variable name is a reserved property name.
	ErrReservedName = errors.New("variable name is reserved")

	// ErrMalformedName indicates the variable name contains disallowed characters.
	ErrMalformedName = errors.New("variable name contains invalid characters")
)

// InvalidNameError reports a name that failed sanitization, carrying the
// offending name. It wraps one of the sentinel errors above.
type InvalidNameError struct {
	Name   string
	reason error
}

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid variable name %q: %s", e.Name, e.reason)
}

// Unwrap returns the sentinel reason for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error {
	return e.reason
}

// Sanitize validates that name is safe to use as a mapping key in any
// externally influenced structure (guarded property access, serialized
// script payloads). It returns the name unchanged on success.
//
// Valid names start with a letter or underscore and continue with
// alphanumeric characters, underscores, or hyphens. The reserved names
// __proto__, constructor, and prototype are always rejected.
//
// Sanitize is a pure function with no side effects.
func Sanitize(name string) (string, error) {
	if name == "" {
		return "", &InvalidNameError{Name: name, reason: ErrEmptyName}
	}
	if _, ok := reservedNames[name]; ok {
		return "", &InvalidNameError{Name: name, reason: ErrReservedName}
	}
	if !validNameRegex.MatchString(name) {
		return "", &InvalidNameError{Name: name, reason: ErrMalformedName}
	}
	return name, nil
}
