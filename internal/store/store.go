// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package store provides persistence for evaluated expressions.
package store

// Entry is one evaluated expression.
type Entry struct {
	ID         int64
	Session    string
	Expression string
	RPN        string  // Postfix form, empty if compilation failed
	Result     float64 // Zero when Err is set
	Err        string
	Ts         string
}

// Failed reports whether the evaluation produced an error.
func (e Entry) Failed() bool { return e.Err != "" }

// Store is the interface for history persistence.
type Store interface {
	// Append records an entry and returns its assigned ID.
	Append(e Entry) (int64, error)
	// Recent returns up to limit entries, newest first. limit <= 0 returns all.
	Recent(limit int) ([]Entry, error)
	// Get retrieves an entry by ID. Returns nil if not found.
	Get(id int64) (*Entry, error)
	// Clear removes every entry.
	Clear() error
	// Close releases resources.
	Close() error
}

// MetadataStore extends Store with key/value metadata.
type MetadataStore interface {
	Store
	GetMetadata(key string) (string, error)
	SetMetadata(key, value string) error
}
