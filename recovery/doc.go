// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package recovery converts panics in externally supplied code into errors.

Field validators are opaque capabilities provided by callers. A buggy
validator that panics must surface as one failed field in the aggregate
result, not crash the batch validation pass:

	value, err := recovery.Capture(func() (any, error) {
		return validator.Validate(raw)
	})
*/
package recovery
