// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package execctx

import (
	"github.com/stacklok/envguard-core/env"
)

// Mode selects between strict production behavior and forgiving
// development behavior. Several conditions that are fatal in production
// (missing injection payload, tampered payload) degrade to a logged
// warning plus a best-effort fallback in development.
type Mode int

const (
	// Production is the strict default.
	Production Mode = iota
	// Development trades strictness for iteration speed.
	Development
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Development {
		return "development"
	}
	return "production"
}

// ModeVar is the primary variable consulted by ModeFrom.
const ModeVar = "ENVGUARD_ENV"

// nodeEnvVar is consulted when ModeVar is unset, for compatibility with
// frameworks that signal mode through NODE_ENV.
const nodeEnvVar = "NODE_ENV"

// ModeFrom reads the runtime mode from the environment. Anything other
// than an explicit "development" is production.
func ModeFrom(r env.Reader) Mode {
	v := r.Getenv(ModeVar)
	if v == "" {
		v = r.Getenv(nodeEnvVar)
	}
	if v == "development" {
		return Development
	}
	return Production
}
