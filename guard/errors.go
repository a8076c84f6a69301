// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package guard

import (
	"fmt"
)

// SecurityError reports a disallowed cross-context read, or a name that
// failed sanitization during a guarded read. The message identifies the
// variable name, never its value.
type SecurityError struct {
	Name  string
	cause error
}

// Error implements the error interface.
func (e *SecurityError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("denied access to %q: %s", e.Name, e.cause)
	}
	return fmt.Sprintf("attempted to access server-only environment variable %q from client code", e.Name)
}

// Unwrap returns the sanitization failure, if any.
func (e *SecurityError) Unwrap() error {
	return e.cause
}

// RateLimitError reports that the access-frequency bound was exceeded for
// a guarded key.
type RateLimitError struct {
	Key string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("access rate limit exceeded for %q", e.Key)
}
