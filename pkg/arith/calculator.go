// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package arith

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

// Calculator evaluates expressions and keeps a history of them.
type Calculator struct {
	store     Store
	storeErr  error // Set when WithSQLiteStore failed
	logger    *slog.Logger
	session   string
	precision int
}

// New creates a new calculator with the given options.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		precision: -1,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.session == "" {
		c.session = uuid.NewString()
	}
	if c.storeErr != nil {
		c.logger.Warn("history disabled", "error", c.storeErr)
	}
	return c
}

// Session returns the session ID recorded with each entry.
func (c *Calculator) Session() string {
	return c.session
}

// HasHistory reports whether entries are being recorded.
func (c *Calculator) HasHistory() bool {
	return c.store != nil
}

// Eval evaluates input and records the outcome in the history.
// Failing to record is logged and does not affect the result.
func (c *Calculator) Eval(input string) (float64, error) {
	e, err := Compile(input)
	var v float64
	if err == nil {
		v, err = e.Eval()
	}

	if c.store != nil {
		entry := Entry{Session: c.session, Expression: input, Result: v}
		if e != nil {
			entry.RPN = e.String()
		}
		if err != nil {
			entry.Result = 0
			entry.Err = err.Error()
		}
		id, serr := c.store.Append(entry)
		if serr != nil {
			c.logger.Error("failed to record history", "expression", input, "error", serr)
		} else {
			c.logger.Debug("recorded", "id", id, "rpn", entry.RPN)
		}
	}
	return v, err
}

// History returns up to limit entries, newest first.
func (c *Calculator) History(limit int) ([]Entry, error) {
	if c.store == nil {
		return nil, nil
	}
	return c.store.Recent(limit)
}

// Recall re-evaluates the expression recorded under id.
// The re-evaluation is itself recorded.
func (c *Calculator) Recall(id int64) (*Entry, float64, error) {
	if c.store == nil {
		return nil, 0, fmt.Errorf("history is disabled")
	}
	entry, err := c.store.Get(id)
	if err != nil {
		return nil, 0, err
	}
	if entry == nil {
		return nil, 0, fmt.Errorf("no history entry %d", id)
	}
	v, err := c.Eval(entry.Expression)
	return entry, v, err
}

// ClearHistory removes every recorded entry.
func (c *Calculator) ClearHistory() error {
	if c.store == nil {
		return nil
	}
	return c.store.Clear()
}

// Format renders v using the configured precision.
func (c *Calculator) Format(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	if c.precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', c.precision, 64)
}

// Close releases the history store.
func (c *Calculator) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
