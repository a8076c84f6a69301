// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package ratelimit bounds the frequency of guarded access attempts per key
// using sliding-window counting.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the sliding window over which accesses are counted.
	DefaultWindow = 60 * time.Second

	// DefaultMax is the maximum number of accesses allowed per key within
	// the window.
	DefaultMax = 100

	// DefaultSweepInterval is how often decayed windows are purged. The
	// sweep bounds total memory use independent of how many distinct keys
	// were ever touched.
	DefaultSweepInterval = 5 * time.Minute
)

var (
	defaultLimiter *Limiter
	defaultOnce    sync.Once
)

// Default returns the process-wide limiter backing guarded reads that were
// not configured with their own. It is created on first use with the
// package defaults and lives for the process lifetime; its sweep goroutine
// is shared by every user.
func Default() *Limiter {
	defaultOnce.Do(func() {
		defaultLimiter = New(DefaultWindow, DefaultMax)
	})
	return defaultLimiter
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the time source. Test hook for simulated time.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithSweepInterval sets the background sweep interval. A non-positive
// interval disables the sweep goroutine entirely.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) {
		l.sweepInterval = d
	}
}

// Limiter tracks per-key access timestamps within a sliding window. It is
// safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	now     func() time.Time
	windows map[string][]time.Time

	sweepInterval time.Duration
	stopOnce      sync.Once
	stop          chan struct{}
}

// New creates a Limiter. Non-positive window or max fall back to the
// package defaults. Unless disabled via WithSweepInterval, a background
// goroutine purges empty windows; call Stop to tear it down for clean
// process shutdown.
func New(window time.Duration, maxPerWindow int, opts ...Option) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxPerWindow <= 0 {
		maxPerWindow = DefaultMax
	}
	l := &Limiter{
		window:        window,
		max:           maxPerWindow,
		now:           time.Now,
		windows:       make(map[string][]time.Time),
		sweepInterval: DefaultSweepInterval,
		stop:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sweepInterval > 0 {
		go l.sweepLoop()
	}
	return l
}

// Allow records an access for key and reports whether it is within the
// bound. When the key is already at the bound the access is denied without
// being recorded.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.windows[key][:0]
	for _, ts := range l.windows[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.windows[key] = recent
		return false
	}

	l.windows[key] = append(recent, now)
	return true
}

// Clear forgets all recorded accesses for key.
func (l *Limiter) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// Len reports the number of keys currently tracked. Exposed for tests and
// introspection.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Stop tears down the background sweep goroutine. Safe to call more than
// once. The limiter remains usable after Stop; only the periodic purge
// stops running.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops windows whose entries have all aged out.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, entries := range l.windows {
		live := false
		for _, ts := range entries {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.windows, key)
		}
	}
}
