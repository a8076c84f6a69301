// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package retry provides a bounded exponential backoff helper for
// transient fetch failures.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// DefaultMaxTries bounds the total number of attempts.
const DefaultMaxTries = 4

// Do runs fn with exponential backoff until it succeeds, the attempt bound
// is reached, or ctx is canceled. Zero maxTries uses DefaultMaxTries.
func Do[T any](ctx context.Context, fn func() (T, error), maxTries uint) (T, error) {
	if maxTries == 0 {
		maxTries = DefaultMaxTries
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	return backoff.Retry(ctx, fn, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries))
}
