// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package inject carries client-safe values from server-side computation to
// browser-side read access through a well-known global location.
package inject

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// BaseChannelKey is the well-known global property name used when no
// namespace is configured.
const BaseChannelKey = "__ENVGUARD"

// ChannelKey returns the global property name for a namespace. The key is
// a pure naming convention, identical across all execution contexts.
func ChannelKey(namespace string) string {
	if namespace == "" {
		return BaseChannelKey
	}
	return fmt.Sprintf("%s_%s", BaseChannelKey, namespace)
}

// ErrAlreadyDefined indicates a channel key was redefined with a different
// payload. The global property is non-configurable: once defined it cannot
// be changed.
var ErrAlreadyDefined = errors.New("injection channel already defined")

// payload is the frozen value set stored under one channel key. sealed
// distinguishes a properly defined payload from one placed by a raw write,
// which the read side treats as a tampering signal.
type payload struct {
	values map[string]any
	sealed bool
}

// Registry is the process-wide stand-in for the well-known global
// location. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	payloads map[string]*payload
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{payloads: make(map[string]*payload)}
}

// Default is the process-wide registry used when callers do not supply
// their own.
var Default = NewRegistry()

// Define freezes values under key. The stored payload is a deep copy of
// the map, marked sealed. Redefining a key with an identical sealed
// payload is a no-op, so per-request renders of the same configuration
// succeed; redefining with different values fails with ErrAlreadyDefined.
func (r *Registry) Define(key string, values map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, exists := r.payloads[key]; exists {
		if p.sealed && reflect.DeepEqual(p.values, values) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyDefined, key)
	}
	r.payloads[key] = &payload{values: copyValues(values), sealed: true}
	return nil
}

// Put places values under key without sealing, overwriting any previous
// payload. This models a writable global property: the read side detects
// the missing seal and reports it as tampering. Used by tests.
func (r *Registry) Put(key string, values map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads[key] = &payload{values: copyValues(values)}
}

// Lookup returns a copy of the payload under key, whether it is sealed,
// and whether it exists. A payload holding a nil value map is reported as
// absent: the global exists but carries nothing usable.
func (r *Registry) Lookup(key string) (values map[string]any, sealed bool, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, exists := r.payloads[key]
	if !exists || p.values == nil {
		return nil, false, false
	}
	return copyValues(p.values), p.sealed, true
}

// Reset removes every payload. Test-only escape hatch.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = make(map[string]*payload)
}

func copyValues(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
