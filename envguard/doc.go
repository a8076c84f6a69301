// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package envguard validates raw environments against declared schemas and
exposes the result behind context-aware access control.

A configuration declares two disjoint schema groups: server-only variables
and client-safe variables, the latter identified by a public-prefix naming
convention. Construction validates both halves against the raw environment
(collecting every failure rather than stopping at the first), merges the
validated halves, and wraps the merge in an accessor that enforces context
rules on every read:

	acc, err := envguard.New(envguard.Options{
		Server: schema.Group{
			{Name: "DATABASE_URL", Validator: schema.URL()},
		},
		Client: schema.Group{
			{Name: "NEXT_PUBLIC_API_URL", Validator: schema.URL()},
		},
		RuntimeEnv: &env.OSReader{},
	})

On a server the accessor is a plain read-view over everything declared. In
a browser context, server-only values are categorically unreachable: reads
fail with a security error, and enumeration never reveals their names.
Client values come from the injection channel populated by Script:

	text, err := envguard.Script(opts) // embedded in the page by the UI framework

Namespaces let multiple independent configurations coexist in one process
without colliding on the injection channel or rate-limit keys.
*/
package envguard
