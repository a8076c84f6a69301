// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"os"
	"strings"
)

// Reader defines an interface for environment variable access.
// A missing variable and a variable set to the empty string are
// distinguished through Lookup.
type Reader interface {
	Getenv(key string) string
	Lookup(key string) (string, bool)
	Keys() []string
}

// OSReader implements Reader using the standard os package.
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key.
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Lookup returns the value of the environment variable and whether it is set.
func (*OSReader) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Keys returns the names of all environment variables currently set.
func (*OSReader) Keys() []string {
	environ := os.Environ()
	keys := make([]string, 0, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			keys = append(keys, kv[:i])
		}
	}
	return keys
}

// Map implements Reader over a plain map. It is the in-memory raw
// environment used by validation calls and tests.
type Map map[string]string

// Getenv returns the value for key, or the empty string when absent.
func (m Map) Getenv(key string) string {
	return m[key]
}

// Lookup returns the value for key and whether the key is present.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the keys present in the map in unspecified order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot copies the current state of a Reader into an immutable Map.
// Validation takes a snapshot once per call so that concurrent mutation
// of the underlying source cannot produce a torn read.
func Snapshot(r Reader) Map {
	keys := r.Keys()
	m := make(Map, len(keys))
	for _, k := range keys {
		if v, ok := r.Lookup(k); ok {
			m[k] = v
		}
	}
	return m
}
