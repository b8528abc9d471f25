// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package arith

import (
	"log/slog"

	"nickandperla.net/arith/internal/store"
)

// Option configures a Calculator.
type Option func(*Calculator)

// Store interface for custom history stores.
type Store = store.Store

// Entry is one evaluated expression in the history.
type Entry = store.Entry

// WithSQLiteStore records history in a SQLite database at the given path.
// If the database cannot be opened the calculator runs without history and
// the failure is logged.
func WithSQLiteStore(path string) Option {
	return func(c *Calculator) {
		s, err := store.NewSQLite(path)
		if err != nil {
			c.storeErr = err
			return
		}
		c.store = s
	}
}

// WithMemoryStore records history in memory (for testing).
func WithMemoryStore() Option {
	return func(c *Calculator) {
		c.store = store.NewMemory()
	}
}

// WithStore sets a custom history store.
func WithStore(s Store) Option {
	return func(c *Calculator) {
		c.store = s
	}
}

// WithLogger sets the logger used for store failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = l
	}
}

// WithSession sets the session ID recorded with each entry.
// By default a random UUID is used.
func WithSession(id string) Option {
	return func(c *Calculator) {
		c.session = id
	}
}

// WithPrecision sets the digits after the decimal point used by Format.
// -1 selects the shortest representation that round-trips.
func WithPrecision(n int) Option {
	return func(c *Calculator) {
		c.precision = n
	}
}
