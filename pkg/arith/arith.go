// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package arith evaluates infix arithmetic expressions over float64.
//
// Expressions contain decimal numbers, the binary operators + - * /, unary
// signs attached directly to a number, and parentheses. Multiplication and
// division bind tighter than addition and subtraction; all four operators
// are left-associative.
//
//	v, err := arith.Evaluate("(2+3)*4") // 20
//
// Evaluate keeps no state between calls and may be used from any number of
// goroutines.
package arith

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"nickandperla.net/arith/internal/calcerr"
	"nickandperla.net/arith/internal/expr"
)

// Error is an evaluation failure located in the source expression.
type Error = calcerr.Error

// Kind classifies an evaluation failure. Kinds match with errors.Is:
//
//	if errors.Is(err, arith.DivisionByZero) { ... }
type Kind = calcerr.Kind

// Error kinds.
const (
	InvalidCharacter      = calcerr.InvalidCharacter
	MalformedNumber       = calcerr.MalformedNumber
	UnbalancedParentheses = calcerr.UnbalancedParentheses
	UnexpectedToken       = calcerr.UnexpectedToken
	InsufficientOperands  = calcerr.InsufficientOperands
	TooManyOperands       = calcerr.TooManyOperands
	DivisionByZero        = calcerr.DivisionByZero
)

// Expr is a compiled expression.
type Expr = expr.Expr

// Evaluate parses and evaluates expression. The error, if any, is the first
// one encountered and is always an *Error.
func Evaluate(expression string) (float64, error) {
	return expr.Evaluate(expression)
}

// Compile tokenizes expression and converts it to postfix without evaluating it.
func Compile(expression string) (*Expr, error) {
	return expr.Compile(expression)
}

// KindOf returns the Kind carried by err, or 0 if err is not an evaluation error.
func KindOf(err error) Kind {
	return calcerr.KindOf(err)
}

// Describe renders err for display. When err points at a location in source,
// the source line is repeated with a caret under the offending character.
func Describe(source string, err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Pos < 0 || e.Pos > len(source) || strings.ContainsAny(source, "\r\n") {
		return fmt.Sprintf("Error: %v", err)
	}
	col := utf8.RuneCountInString(source[:e.Pos])
	return fmt.Sprintf("Error: %v\n  %s\n  %s^", err, source, strings.Repeat(" ", col))
}
