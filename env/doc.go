// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("MY_VAR")

Use Map to supply a fixed raw environment, for example when validating a
schema against values loaded from a file rather than the process environment:

	raw := env.Map{"DATABASE_URL": "postgres://localhost/app"}

# Absent vs Empty

Lookup distinguishes a variable that is not set from one set to the empty
string. Schema validation relies on this distinction so that a validator's
own default and optional semantics apply only to genuinely absent values.

# Testing

The Reader interface allows injecting a mock in tests to avoid relying on
real environment variables. A generated mock is available in the mocks
sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("MY_VAR").Return("test-value")

	result := myFunc(mock)

# Design

This package follows the interface-based dependency injection pattern used
throughout envguard-core. Production code accepts an env.Reader, while tests
substitute a Map or the generated mock.
*/
package env
