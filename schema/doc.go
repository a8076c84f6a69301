// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package schema provides field validators and batch validation of raw
environments against declared schema groups.

# Groups

A Group is an ordered list of fields, each binding a variable name to a
Validator:

	serverGroup := schema.Group{
		{Name: "DATABASE_URL", Validator: schema.URL()},
		{Name: "DEBUG", Validator: schema.Default(schema.Bool(), "false")},
	}

	values, err := serverGroup.Validate(&env.OSReader{})

Validation collects every failure before reporting: the returned
*AggregateError carries one FieldError per invalid field, never a partial
list. A caller fixing a broken deployment sees the complete picture in one
pass instead of one error per attempt.

# Validators

Validators are opaque capabilities with a single method:

	Validate(raw *string) (any, error)

raw is nil when the variable is absent, distinguishing "unset" from "set to
the empty string". Built-in adapters cover common cases (String, NonEmpty,
Bool, Int, URL, Enum), with Optional and Default combinators. Two adapters
bind external validation engines:

  - CEL: accepts the value when a CEL expression over "value" is true.
  - JSONSchema: checks the value against a JSON Schema document.

A panicking validator never crashes a batch pass; the panic is captured and
reported as that field's failure.

# Client Name Checks

CheckClientNames enforces the public-prefix naming convention on client
groups at configuration time. Unlike batch validation it fails fast: a bad
client name is programmer error, caught once at setup.
*/
package schema
