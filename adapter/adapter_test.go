// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/execctx"
	"github.com/stacklok/envguard-core/inject"
	"github.com/stacklok/envguard-core/schema"
)

func serverGroup() schema.Group {
	return schema.Group{{Name: "DATABASE_URL", Validator: schema.URL()}}
}

func clientGroup() schema.Group {
	return schema.Group{{Name: "NEXT_PUBLIC_API_URL", Validator: schema.URL()}}
}

func TestServerAdapter_ResolvesBothGroups(t *testing.T) {
	t.Parallel()

	environ := env.Map{
		"DATABASE_URL":        "https://db.example.com",
		"NEXT_PUBLIC_API_URL": "https://api.example.com",
	}

	a := Server{}
	serverVals, err := a.ResolveServer(serverGroup(), environ, false)
	require.NoError(t, err)
	assert.Equal(t, "https://db.example.com", serverVals["DATABASE_URL"])

	src, err := a.ResolveClient(clientGroup(), environ, false, "")
	require.NoError(t, err)
	clientVals, err := src.Values()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", clientVals["NEXT_PUBLIC_API_URL"])
}

func TestServerAdapter_ValidationFailure(t *testing.T) {
	t.Parallel()

	_, err := Server{}.ResolveServer(serverGroup(), env.Map{"DATABASE_URL": "not-a-url"}, false)
	var agg *schema.AggregateError
	require.True(t, errors.As(err, &agg))
}

func TestServerAdapter_SkipValidation(t *testing.T) {
	t.Parallel()

	// Absent raw value with skip passes through as nil without error.
	values, err := Server{}.ResolveServer(serverGroup(), env.Map{}, true)
	require.NoError(t, err)
	v, ok := values["DATABASE_URL"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestServerAdapter_EmptyGroupShortCircuits(t *testing.T) {
	t.Parallel()

	for _, skip := range []bool{false, true} {
		values, err := Server{}.ResolveServer(schema.Group{}, env.Map{"X": "1"}, skip)
		require.NoError(t, err)
		assert.Empty(t, values)
	}
}

func TestClientAdapter_ServerValuesAlwaysEmpty(t *testing.T) {
	t.Parallel()

	a := Client{Registry: inject.NewRegistry(), Mode: execctx.Production, Prefix: "NEXT_PUBLIC_"}
	values, err := a.ResolveServer(serverGroup(), env.Map{"DATABASE_URL": "https://db.example.com"}, false)
	require.NoError(t, err)
	assert.Empty(t, values, "server values are categorically unavailable in a browser")
}

func TestClientAdapter_ReadsInjectionChannel(t *testing.T) {
	t.Parallel()

	registry := inject.NewRegistry()
	require.NoError(t, registry.Define("__ENVGUARD", map[string]any{"NEXT_PUBLIC_API_URL": "https://api.example.com"}))

	a := Client{Registry: registry, Mode: execctx.Production, Prefix: "NEXT_PUBLIC_"}
	src, err := a.ResolveClient(clientGroup(), env.Map{}, false, "")
	require.NoError(t, err)

	values, err := src.Values()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", values["NEXT_PUBLIC_API_URL"])
}

func TestClientAdapter_LazyResolution(t *testing.T) {
	t.Parallel()

	registry := inject.NewRegistry()
	a := Client{Registry: registry, Mode: execctx.Production, Prefix: "NEXT_PUBLIC_"}

	// Resolving before the payload exists is fine; only reading fails.
	src, err := a.ResolveClient(clientGroup(), env.Map{}, false, "")
	require.NoError(t, err)

	// Payload appears after resolution but before first read.
	require.NoError(t, registry.Define("__ENVGUARD", map[string]any{"NEXT_PUBLIC_API_URL": "https://api.example.com"}))

	values, err := src.Values()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", values["NEXT_PUBLIC_API_URL"])
}

func TestEdgeAdapter_BehavesLikeServer(t *testing.T) {
	t.Parallel()

	environ := env.Map{
		"DATABASE_URL":        "https://db.example.com",
		"NEXT_PUBLIC_API_URL": "https://api.example.com",
	}

	a := Edge{}
	serverVals, err := a.ResolveServer(serverGroup(), environ, false)
	require.NoError(t, err)
	assert.Equal(t, "https://db.example.com", serverVals["DATABASE_URL"])

	src, err := a.ResolveClient(clientGroup(), environ, false, "")
	require.NoError(t, err)
	clientVals, err := src.Values()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", clientVals["NEXT_PUBLIC_API_URL"])
}

func TestChannelKey_IdenticalAcrossAdapters(t *testing.T) {
	t.Parallel()

	adapters := []Adapter{Server{}, Client{}, Edge{}}
	for _, a := range adapters {
		assert.Equal(t, "__ENVGUARD", a.ChannelKey(""))
		assert.Equal(t, "__ENVGUARD_app", a.ChannelKey("app"))
	}
}

func TestForContext(t *testing.T) {
	t.Parallel()

	registry := inject.NewRegistry()

	assert.IsType(t, Server{}, ForContext(execctx.Server, registry, execctx.Production, "NEXT_PUBLIC_"))
	assert.IsType(t, Edge{}, ForContext(execctx.Edge, registry, execctx.Production, "NEXT_PUBLIC_"))

	c, ok := ForContext(execctx.Client, registry, execctx.Development, "NEXT_PUBLIC_").(Client)
	require.True(t, ok)
	assert.Equal(t, registry, c.Registry)
	assert.Equal(t, execctx.Development, c.Mode)
}
