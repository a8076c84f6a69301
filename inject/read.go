// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"errors"
	"strings"
	"sync"

	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/execctx"
	"github.com/stacklok/envguard-core/logger"
)

// ErrNotInitialized indicates client values were requested in a
// production-mode browser context before the injection payload existed.
// A required client value must be loudly absent, not silently undefined.
var ErrNotInitialized = errors.New("client environment not initialized: injection payload missing")

// Reader is the browser-side view of one injection channel. Resolution is
// lazy: the well-known global location is consulted on first access and the
// outcome (payload, development fallback, or error) is cached for the
// reader's lifetime.
type Reader struct {
	registry *Registry
	key      string
	mode     execctx.Mode
	fallback env.Reader
	prefix   string

	mu       sync.Mutex
	resolved bool
	values   map[string]any
	err      error
}

// NewReader creates a read-side view over the channel identified by
// namespace. fallback is the secondary raw-environment source consulted in
// development when the payload is absent; only names carrying prefix are
// taken from it.
func NewReader(registry *Registry, namespace string, mode execctx.Mode, fallback env.Reader, prefix string) *Reader {
	return &Reader{
		registry: registry,
		key:      ChannelKey(namespace),
		mode:     mode,
		fallback: fallback,
		prefix:   prefix,
	}
}

// Values returns the resolved client values. The first call resolves the
// channel; subsequent calls reuse the cached result without re-reading the
// global or re-validating.
func (r *Reader) Values() (map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.resolved {
		r.values, r.err = r.resolve()
		r.resolved = true
	}
	return r.values, r.err
}

// Keys returns the resolved key names.
func (r *Reader) Keys() ([]string, error) {
	values, err := r.Values()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	return names, nil
}

func (r *Reader) resolve() (map[string]any, error) {
	values, sealed, ok := r.registry.Lookup(r.key)
	if ok {
		// Integrity check: a payload that is not sealed means the global
		// property was writable or configurable after injection. This is a
		// detection aid, not an enforcement gate: warn in development and
		// serve the values regardless.
		if !sealed && r.mode == execctx.Development {
			logger.Warnw("injection payload is not frozen; possible tampering", "channel", r.key)
		}
		return values, nil
	}

	if r.mode == execctx.Development {
		fallback := r.fallbackValues()
		logger.Warnw("injection payload missing; falling back to raw environment",
			"channel", r.key, "keys", len(fallback))
		return fallback, nil
	}

	return nil, ErrNotInitialized
}

// fallbackValues filters the secondary raw source down to public-prefixed
// names. Supports development and testing without full page setup.
func (r *Reader) fallbackValues() map[string]any {
	out := make(map[string]any)
	if r.fallback == nil {
		return out
	}
	for _, name := range r.fallback.Keys() {
		if !strings.HasPrefix(name, r.prefix) {
			continue
		}
		if v, ok := r.fallback.Lookup(name); ok {
			out[name] = v
		}
	}
	return out
}
