// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package ratelimit bounds the frequency of guarded access attempts per key
using sliding-window counting.

Each key tracks the timestamps of its recent accesses. Allow filters out
entries older than the window, then admits the access only if the count is
below the configured maximum:

	limiter := ratelimit.New(ratelimit.DefaultWindow, ratelimit.DefaultMax)
	defer limiter.Stop()

	if !limiter.Allow("envguard:API_KEY") {
		// deny: pathological repeated access
	}

A background sweep purges windows that have decayed to empty, so memory use
stays bounded even when many distinct keys are touched once and abandoned.
Stop tears the sweep down for clean process shutdown.
*/
package ratelimit
