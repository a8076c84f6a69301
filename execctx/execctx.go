// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package execctx determines where the current code is running: a server
// process, a browser, or a restricted edge sandbox.
package execctx

import (
	"sync"

	"github.com/stacklok/envguard-core/env"
)

// Context identifies the current execution context.
type Context int

const (
	// Server is a trusted server process.
	Server Context = iota
	// Client is an untrusted browser context.
	Client
	// Edge is a restricted edge sandbox running trusted server-side code.
	Edge
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case Client:
		return "client"
	case Edge:
		return "edge-server"
	default:
		return "server"
	}
}

// Probe reports the ambient facts detection is based on. All three checks
// read immutable process state, so recomputation always yields the same
// answer; memoization is a performance optimization, not a correctness
// requirement.
type Probe interface {
	BrowserGlobal() bool
	ProcessGlobal() bool
	EdgeMarker() bool
}

// Detector computes and caches the execution context for a process
// lifetime. The zero value is not usable; construct with NewDetector.
type Detector struct {
	mu    sync.Mutex
	probe Probe
	done  bool
	ctx   Context
}

// NewDetector returns a detector backed by the given probe.
func NewDetector(p Probe) *Detector {
	return &Detector{probe: p}
}

// Detect returns the execution context, computing it on first call and
// returning the cached answer afterwards. Ambient mutation after the first
// call does not change the result.
func (d *Detector) Detect() Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.done {
		d.ctx = decide(d.probe)
		d.done = true
	}
	return d.ctx
}

// Reset clears the cached context. Test-only escape hatch.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.done = false
}

// decide applies the detection rule: a browser global marks client;
// otherwise a process global marks server, refined to edge when the
// edge-sandbox marker is present.
func decide(p Probe) Context {
	if p.BrowserGlobal() {
		return Client
	}
	if p.ProcessGlobal() && p.EdgeMarker() {
		return Edge
	}
	return Server
}

// defaultDetector backs the package-level Detect and Reset.
var defaultDetector = NewDetector(hostProbe{environ: &env.OSReader{}})

// Detect returns the execution context using the process-wide detector.
func Detect() Context {
	return defaultDetector.Detect()
}

// Reset clears the process-wide detector's cache. Test-only escape hatch.
func Reset() {
	defaultDetector.Reset()
}
