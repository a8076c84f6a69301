// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package execctx determines where the current code is running: a server
process, a browser, or a restricted edge sandbox.

# Detection

Detection reads only immutable ambient facts, the build target (js/wasm
builds run in a browser) and the presence of the edge-sandbox marker
variable, so the answer cannot change within a process lifetime. The
result is computed once and cached:

	switch execctx.Detect() {
	case execctx.Client:
		// untrusted browser code
	case execctx.Edge:
		// trusted edge sandbox
	default:
		// ordinary server process
	}

Tests that need isolation can clear the cache with Reset, or construct
their own Detector with a fake Probe.

# Mode

ModeFrom reads the development/production mode from ENVGUARD_ENV (falling
back to NODE_ENV). Mode gates the forgiving development behaviors of the
injection channel read side; everything defaults to strict production
semantics.
*/
package execctx
