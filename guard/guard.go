// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package guard wraps a merged value set in an access-control layer that
// blocks client-side reads of server-only values.
package guard

import (
	"sort"
	"sync"

	"github.com/stacklok/envguard-core/execctx"
	"github.com/stacklok/envguard-core/ratelimit"
	"github.com/stacklok/envguard-core/validation/keys"
)

// DefaultNamespace keys the rate limiter when no namespace is configured.
const DefaultNamespace = "envguard"

// Option configures an Accessor at construction.
type Option func(*config)

type config struct {
	ctx       execctx.Context
	ctxSet    bool
	namespace string
	limiter   *ratelimit.Limiter
}

// WithContext forces the execution context instead of consulting the
// process-wide detector. Escape hatch for testing and embedded use.
func WithContext(ctx execctx.Context) Option {
	return func(c *config) {
		c.ctx = ctx
		c.ctxSet = true
	}
}

// WithNamespace sets the namespace used to key per-variable rate limiting.
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithLimiter replaces the process-wide default limiter consulted on every
// guarded read.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *config) {
		c.limiter = l
	}
}

// Accessor is a read-view over a merged environment plus its server-key
// set. It holds a reference to the value source, not a copy, and evaluates
// the access policy on every read. Whether the accessor is guarded is
// decided once at construction and never changes; rebinding a different
// context requires constructing a new accessor.
type Accessor struct {
	guarded    bool
	namespace  string
	limiter    *ratelimit.Limiter
	serverKeys map[string]struct{}
	resolve    func() (map[string]any, error)

	mu       sync.Mutex
	resolved bool
	values   map[string]any
	err      error
	keyCache []string
}

// New constructs an accessor over a lazily resolved value set. serverKeys
// names the variables that came from the server group; under a client
// context those are categorically unreadable and invisible.
//
// Under a non-client context the accessor is unguarded: server code is
// always entitled to read everything, so per-read policy checks would be
// pure cost.
func New(resolve func() (map[string]any, error), serverKeys map[string]struct{}, opts ...Option) *Accessor {
	cfg := &config{namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.ctxSet {
		cfg.ctx = execctx.Detect()
	}
	if cfg.namespace == "" {
		cfg.namespace = DefaultNamespace
	}
	guarded := cfg.ctx == execctx.Client
	if guarded && cfg.limiter == nil {
		cfg.limiter = ratelimit.Default()
	}
	return &Accessor{
		guarded:    guarded,
		namespace:  cfg.namespace,
		limiter:    cfg.limiter,
		serverKeys: serverKeys,
		resolve:    resolve,
	}
}

// Wrap constructs an accessor over an already-materialized value set.
func Wrap(values map[string]any, serverKeys map[string]struct{}, opts ...Option) *Accessor {
	return New(func() (map[string]any, error) { return values, nil }, serverKeys, opts...)
}

// Guarded reports whether client-context access control is active.
func (a *Accessor) Guarded() bool {
	return a.guarded
}

// Get returns the value for name. Under a guarded accessor every read is
// independently checked: the name must sanitize cleanly, stay within the
// access-frequency bound, and not belong to the server key set. Policy
// failures are per-read errors, never aggregated.
//
// A name that passes the checks but is not present resolves to nil.
func (a *Accessor) Get(name string) (any, error) {
	if a.guarded {
		if _, err := keys.Sanitize(name); err != nil {
			return nil, &SecurityError{Name: name, cause: err}
		}
		if !a.limiter.Allow(a.namespace + ":" + name) {
			return nil, &RateLimitError{Key: a.namespace + ":" + name}
		}
		if _, isServer := a.serverKeys[name]; isServer {
			return nil, &SecurityError{Name: name}
		}
	}

	values, err := a.materialize()
	if err != nil {
		return nil, err
	}
	return values[name], nil
}

// Has reports whether name is exposed by the accessor. Server-only names
// are never reported present under a guarded accessor: information about
// which server keys exist must not leak through existence checks any more
// than through reads.
func (a *Accessor) Has(name string) (bool, error) {
	if a.guarded {
		if _, err := keys.Sanitize(name); err != nil {
			return false, nil
		}
		if _, isServer := a.serverKeys[name]; isServer {
			return false, nil
		}
	}
	values, err := a.materialize()
	if err != nil {
		return false, err
	}
	_, ok := values[name]
	return ok, nil
}

// Keys returns the enumerable variable names in sorted order. Under a
// guarded accessor server-only names are excluded. The list is computed
// once and cached.
func (a *Accessor) Keys() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.keyCache != nil {
		return a.keyCache, nil
	}
	values, err := a.materializeLocked()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		if a.guarded {
			if _, isServer := a.serverKeys[name]; isServer {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	a.keyCache = names
	return names, nil
}

func (a *Accessor) materialize() (map[string]any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.materializeLocked()
}

func (a *Accessor) materializeLocked() (map[string]any, error) {
	if !a.resolved {
		a.values, a.err = a.resolve()
		a.resolved = true
	}
	return a.values, a.err
}
