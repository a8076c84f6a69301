// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

//go:build js

package execctx

import (
	"github.com/stacklok/envguard-core/env"
)

// EdgeRuntimeVar is the marker variable edge sandboxes set to identify
// themselves. Unused under js builds; kept so the constant exists on all
// platforms.
const EdgeRuntimeVar = "EDGE_RUNTIME"

// hostProbe reports ambient facts for js/wasm builds, which run inside a
// browser context.
type hostProbe struct {
	environ env.Reader
}

func (hostProbe) BrowserGlobal() bool { return true }

func (hostProbe) ProcessGlobal() bool { return false }

func (hostProbe) EdgeMarker() bool { return false }
