// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package keys provides sanitization for environment variable names.

Variable names flow from untrusted or semi-trusted configuration into
mapping keys: guarded property reads, serialized script payloads, and
enumeration results. This package rejects dangerous or malformed names
before they enter any of those structures.

# Sanitization

Validate a name before using it as a key:

	name, err := keys.Sanitize("DATABASE_URL")
	if err != nil {
		// Handle invalid name
	}

Valid names must:
  - Start with a letter or underscore
  - Continue with alphanumeric characters, underscores, or hyphens
  - Not be one of the reserved property names __proto__, constructor, prototype

# Examples

Valid names:

	"DATABASE_URL"
	"_private"
	"GOOD_NAME-1"

Invalid names:

	""            // empty
	"123bad"      // starts with a digit
	"has space"   // disallowed character
	"__proto__"   // reserved
	"constructor" // reserved
*/
package keys
