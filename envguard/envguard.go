// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package envguard validates raw environments against declared schemas and
// exposes the result behind context-aware access control.
package envguard

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/stacklok/envguard-core/adapter"
	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/execctx"
	"github.com/stacklok/envguard-core/guard"
	"github.com/stacklok/envguard-core/inject"
	"github.com/stacklok/envguard-core/ratelimit"
	"github.com/stacklok/envguard-core/schema"
)

// DefaultClientPrefix is the naming convention marking a variable safe for
// exposure to untrusted client code.
const DefaultClientPrefix = "NEXT_PUBLIC_"

var namespaceRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Configuration errors. These represent programmer error, not runtime data
// error, and propagate immediately from New.
var (
	// ErrMissingRuntimeEnv indicates no raw environment was supplied.
	ErrMissingRuntimeEnv = errors.New("runtime environment is required")

	// ErrBadNamespace indicates the namespace is empty or contains
	// characters outside [a-zA-Z0-9_-].
	ErrBadNamespace = errors.New("namespace must be non-empty and match [a-zA-Z0-9_-]+")
)

// Options configures a top-level construction call.
type Options struct {
	// Server declares the server-only variables. Default empty.
	Server schema.Group

	// Client declares the client-safe variables. Every name must carry
	// the public prefix. Default empty.
	Client schema.Group

	// RuntimeEnv is the raw environment to validate. Required.
	RuntimeEnv env.Reader

	// SkipValidation bypasses the batch validator and passes raw values
	// straight through keyed by field name.
	SkipValidation bool

	// Namespace isolates this configuration's injection channel and rate
	// limiting from others in the same process. Optional; when set it
	// must match [a-zA-Z0-9_-]+.
	Namespace string

	// ClientPrefix overrides DefaultClientPrefix.
	ClientPrefix string

	// Adapter forces a pre-built context adapter instead of selecting one
	// from the detected execution context. Escape hatch for testing.
	Adapter adapter.Adapter

	// Registry overrides the process-wide injection registry.
	Registry *inject.Registry

	// Limiter overrides the process-wide default limiter that bounds
	// per-variable access frequency on guarded reads.
	Limiter *ratelimit.Limiter
}

// New validates the configured schema groups against the raw environment
// and returns an accessor exposing every declared field by name. Under a
// client execution context the accessor enforces access control on every
// read; under server and edge contexts it is a plain read-view.
//
// Failure modes: *schema.ClientPrefixError when a client field name lacks
// the public prefix, *schema.AggregateError when one or more fields fail
// validation (carrying the full list), and configuration errors for a
// malformed namespace or missing runtime environment.
func New(opts Options) (*guard.Accessor, error) {
	if opts.RuntimeEnv == nil {
		return nil, ErrMissingRuntimeEnv
	}
	if opts.Namespace != "" && !namespaceRegex.MatchString(opts.Namespace) {
		return nil, fmt.Errorf("%w: got %q", ErrBadNamespace, opts.Namespace)
	}

	prefix := opts.ClientPrefix
	if prefix == "" {
		prefix = DefaultClientPrefix
	}
	if err := schema.CheckClientNames(opts.Client, prefix); err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = inject.Default
	}

	a := opts.Adapter
	ctx := contextOf(a)
	if a == nil {
		a = adapter.ForContext(ctx, registry, execctx.ModeFrom(opts.RuntimeEnv), prefix)
	}

	serverValues, serverErr := a.ResolveServer(opts.Server, opts.RuntimeEnv, opts.SkipValidation)
	clientSource, clientErr := a.ResolveClient(opts.Client, opts.RuntimeEnv, opts.SkipValidation, opts.Namespace)
	if err := mergeResolveErrors(serverErr, clientErr); err != nil {
		return nil, err
	}

	serverKeys := make(map[string]struct{}, len(opts.Server))
	for _, f := range opts.Server {
		serverKeys[f.Name] = struct{}{}
	}

	// The merge is built fresh per construction call; only the client
	// side may still be lazy, resolving on first read.
	resolve := func() (map[string]any, error) {
		clientValues, err := clientSource.Values()
		if err != nil {
			return nil, err
		}
		merged := make(map[string]any, len(serverValues)+len(clientValues))
		for k, v := range clientValues {
			merged[k] = v
		}
		for k, v := range serverValues {
			merged[k] = v
		}
		return merged, nil
	}

	guardOpts := []guard.Option{guard.WithContext(ctx)}
	if opts.Namespace != "" {
		guardOpts = append(guardOpts, guard.WithNamespace(opts.Namespace))
	}
	if opts.Limiter != nil {
		guardOpts = append(guardOpts, guard.WithLimiter(opts.Limiter))
	}
	return guard.New(resolve, serverKeys, guardOpts...), nil
}

// Script validates the client group server-side and renders the injection
// script carrying the client-safe values into the page. The UI-framework
// collaborator embeds the returned text; this core only defines the
// serialization format.
func Script(opts Options) (string, error) {
	if opts.RuntimeEnv == nil {
		return "", ErrMissingRuntimeEnv
	}
	if opts.Namespace != "" && !namespaceRegex.MatchString(opts.Namespace) {
		return "", fmt.Errorf("%w: got %q", ErrBadNamespace, opts.Namespace)
	}

	prefix := opts.ClientPrefix
	if prefix == "" {
		prefix = DefaultClientPrefix
	}
	if err := schema.CheckClientNames(opts.Client, prefix); err != nil {
		return "", err
	}

	// Client values are validated server-side so the payload itself is
	// known-good before serialization.
	source, err := adapter.Server{}.ResolveClient(opts.Client, opts.RuntimeEnv, opts.SkipValidation, opts.Namespace)
	if err != nil {
		return "", err
	}
	values, err := source.Values()
	if err != nil {
		return "", err
	}

	registry := opts.Registry
	if registry == nil {
		registry = inject.Default
	}
	return inject.Render(registry, opts.Namespace, values)
}

// mergeResolveErrors combines the two halves' validation outcomes. When
// both halves fail batch validation their field errors are reported as one
// aggregate, keeping the complete-picture contract across groups.
func mergeResolveErrors(serverErr, clientErr error) error {
	if serverErr == nil {
		return clientErr
	}
	if clientErr == nil {
		return serverErr
	}
	var serverAgg, clientAgg *schema.AggregateError
	if errors.As(serverErr, &serverAgg) && errors.As(clientErr, &clientAgg) {
		combined := make([]schema.FieldError, 0, len(serverAgg.Errors)+len(clientAgg.Errors))
		combined = append(combined, serverAgg.Errors...)
		combined = append(combined, clientAgg.Errors...)
		return &schema.AggregateError{Errors: combined}
	}
	return serverErr
}

// contextOf derives the execution context from a forced adapter, falling
// back to process-wide detection when none (or an unknown implementation)
// is given.
func contextOf(a adapter.Adapter) execctx.Context {
	switch a.(type) {
	case adapter.Client:
		return execctx.Client
	case adapter.Edge:
		return execctx.Edge
	case adapter.Server:
		return execctx.Server
	default:
		return execctx.Detect()
	}
}
