// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package adapter decides, per execution context, how server and client
// values are sourced and validated.
package adapter

import (
	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/execctx"
	"github.com/stacklok/envguard-core/inject"
	"github.com/stacklok/envguard-core/schema"
)

// Source supplies a validated value set. Server-side resolution is eager;
// the client adapter returns a lazy source backed by the injection channel,
// resolved on first access.
type Source interface {
	Values() (map[string]any, error)
}

// Static is an eagerly resolved Source.
type Static map[string]any

// Values implements Source.
func (s Static) Values() (map[string]any, error) {
	return s, nil
}

// Adapter is the uniform per-context resolution contract.
type Adapter interface {
	// ResolveServer produces the validated server value set.
	ResolveServer(g schema.Group, environ env.Reader, skip bool) (map[string]any, error)
	// ResolveClient produces the client value set. The namespace selects
	// the injection channel where one is involved.
	ResolveClient(g schema.Group, environ env.Reader, skip bool, namespace string) (Source, error)
	// ChannelKey returns the injection channel's global property name.
	ChannelKey(namespace string) string
}

// resolve validates a group against a snapshot of the raw environment, or
// passes raw values straight through when validation is skipped. An empty
// group short-circuits without touching the environment.
func resolve(g schema.Group, environ env.Reader, skip bool) (map[string]any, error) {
	if len(g) == 0 {
		return map[string]any{}, nil
	}
	snapshot := env.Snapshot(environ)
	if skip {
		return g.Passthrough(snapshot), nil
	}
	return g.Validate(snapshot)
}

// Server resolves both value sets synchronously from the raw environment.
// Client values, though destined for the browser, are validated here too so
// the injection payload is known-good before serialization.
type Server struct{}

// ResolveServer implements Adapter.
func (Server) ResolveServer(g schema.Group, environ env.Reader, skip bool) (map[string]any, error) {
	return resolve(g, environ, skip)
}

// ResolveClient implements Adapter.
func (Server) ResolveClient(g schema.Group, environ env.Reader, skip bool, _ string) (Source, error) {
	values, err := resolve(g, environ, skip)
	if err != nil {
		return nil, err
	}
	return Static(values), nil
}

// ChannelKey implements Adapter.
func (Server) ChannelKey(namespace string) string {
	return inject.ChannelKey(namespace)
}

// Client runs in a browser context. Server values are categorically
// unavailable; client values come lazily from the injection channel.
type Client struct {
	// Registry is the injection channel registry; inject.Default when nil.
	Registry *inject.Registry
	// Mode gates the development fallback on the read side.
	Mode execctx.Mode
	// Prefix is the public-prefix naming convention, used to filter the
	// development fallback.
	Prefix string
}

// ResolveServer implements Adapter. It always returns an empty value set:
// no attempt is made to fetch or fabricate server values in a browser.
func (Client) ResolveServer(_ schema.Group, _ env.Reader, _ bool) (map[string]any, error) {
	return map[string]any{}, nil
}

// ResolveClient implements Adapter. The returned source reads the
// injection channel lazily on first access; the raw environment argument
// serves only as the development fallback.
func (c Client) ResolveClient(_ schema.Group, environ env.Reader, _ bool, namespace string) (Source, error) {
	registry := c.Registry
	if registry == nil {
		registry = inject.Default
	}
	return inject.NewReader(registry, namespace, c.Mode, environ, c.Prefix), nil
}

// ChannelKey implements Adapter.
func (Client) ChannelKey(namespace string) string {
	return inject.ChannelKey(namespace)
}

// Edge runs in a restricted edge sandbox. Edge sandboxes run trusted
// server-side code, so both value sets resolve synchronously like Server;
// the variant is kept distinct because edge-specific restrictions may
// diverge.
type Edge struct{}

// ResolveServer implements Adapter.
func (Edge) ResolveServer(g schema.Group, environ env.Reader, skip bool) (map[string]any, error) {
	return Server{}.ResolveServer(g, environ, skip)
}

// ResolveClient implements Adapter.
func (Edge) ResolveClient(g schema.Group, environ env.Reader, skip bool, namespace string) (Source, error) {
	return Server{}.ResolveClient(g, environ, skip, namespace)
}

// ChannelKey implements Adapter.
func (Edge) ChannelKey(namespace string) string {
	return inject.ChannelKey(namespace)
}

// ForContext returns the adapter matching a detected execution context.
func ForContext(ctx execctx.Context, registry *inject.Registry, mode execctx.Mode, prefix string) Adapter {
	switch ctx {
	case execctx.Client:
		return Client{Registry: registry, Mode: mode, Prefix: prefix}
	case execctx.Edge:
		return Edge{}
	default:
		return Server{}
	}
}
