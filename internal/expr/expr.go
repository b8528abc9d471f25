// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines a compiled arithmetic expression.
package expr

import (
	"nickandperla.net/arith/internal/eval"
	"nickandperla.net/arith/internal/postfix"
	"nickandperla.net/arith/internal/scanner"
	"nickandperla.net/arith/internal/token"
)

// Expr is an expression that has been tokenized and converted to postfix.
// It is immutable and safe to evaluate from several goroutines.
type Expr struct {
	Source  string
	Infix   []token.Token
	Postfix []token.Token // Never contains parentheses
}

// Compile tokenizes and converts source. The first error is returned as is.
func Compile(source string) (*Expr, error) {
	infix, err := scanner.Tokenize(source)
	if err != nil {
		return nil, err
	}
	rpn, err := postfix.Convert(infix)
	if err != nil {
		return nil, err
	}
	return &Expr{Source: source, Infix: infix, Postfix: rpn}, nil
}

// Eval computes the value of the expression.
func (e *Expr) Eval() (float64, error) {
	return eval.Postfix(e.Postfix)
}

// String returns the postfix form, e.g. "2 3 4 * +".
func (e *Expr) String() string {
	return token.Join(e.Postfix)
}

// IsEmpty returns true if the source had no tokens.
func (e *Expr) IsEmpty() bool {
	return len(e.Infix) == 0
}

// Evaluate compiles and evaluates source in one step.
func Evaluate(source string) (float64, error) {
	e, err := Compile(source)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}
