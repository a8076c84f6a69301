// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

//go:build !js

package execctx

import (
	"github.com/stacklok/envguard-core/env"
)

// EdgeRuntimeVar is the marker variable edge sandboxes set to identify
// themselves. Its presence refines a server context to edge.
const EdgeRuntimeVar = "EDGE_RUNTIME"

// hostProbe reports ambient facts for ordinary (non-js) builds: no browser
// global, a process global, and the edge marker when the environment says so.
type hostProbe struct {
	environ env.Reader
}

func (hostProbe) BrowserGlobal() bool { return false }

func (hostProbe) ProcessGlobal() bool { return true }

func (p hostProbe) EdgeMarker() bool {
	return p.environ.Getenv(EdgeRuntimeVar) != ""
}
