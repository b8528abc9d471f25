// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package calcerr defines the errors reported while evaluating an expression.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind classifies an evaluation failure. A Kind is itself an error so it can
// be matched with errors.Is.
type Kind int

const (
	InvalidCharacter Kind = iota + 1
	MalformedNumber
	UnbalancedParentheses
	UnexpectedToken
	InsufficientOperands
	TooManyOperands
	DivisionByZero
)

// Error returns the generic message for the kind. It is also how a Kind
// prints with %s and %v.
func (k Kind) Error() string {
	switch k {
	case 0:
		return "no error"
	case InvalidCharacter:
		return "invalid character"
	case MalformedNumber:
		return "malformed number"
	case UnbalancedParentheses:
		return "unbalanced parentheses"
	case UnexpectedToken:
		return "unexpected token"
	case InsufficientOperands:
		return "insufficient operands"
	case TooManyOperands:
		return "too many operands"
	case DivisionByZero:
		return "division by zero"
	}
	return "evaluation error"
}

// NoPos marks an error that is not tied to a source offset.
const NoPos = -1

// Error is an evaluation failure located in the source expression.
type Error struct {
	Kind Kind
	Pos  int    // Byte offset in the source, or NoPos
	Text string // Offending lexeme, may be empty
}

// New creates an Error.
func New(kind Kind, pos int, text string) *Error {
	return &Error{Kind: kind, Pos: pos, Text: text}
}

func (e *Error) Error() string {
	switch {
	case e.Pos == NoPos && e.Text == "":
		return e.Kind.Error()
	case e.Pos == NoPos:
		return fmt.Sprintf("%s %q", e.Kind.Error(), e.Text)
	case e.Text == "":
		return fmt.Sprintf("%s at offset %d", e.Kind.Error(), e.Pos)
	}
	return fmt.Sprintf("%s %q at offset %d", e.Kind.Error(), e.Text, e.Pos)
}

// Unwrap returns the Kind.
func (e *Error) Unwrap() error { return e.Kind }

// KindOf returns the Kind carried by err, or 0 if err is not an evaluation error.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return 0
}
