// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval reduces postfix token sequences to a value.
package eval

import (
	"nickandperla.net/arith/internal/calcerr"
	"nickandperla.net/arith/internal/token"
)

// Postfix evaluates tokens in Reverse Polish order with an operand stack.
func Postfix(tokens []token.Token) (float64, error) {
	stack := make([]float64, 0, len(tokens)/2+1)

	for _, t := range tokens {
		switch t.Kind {
		case token.NUMBER:
			stack = append(stack, t.Value)

		case token.OPERATOR:
			if len(stack) < 2 {
				return 0, calcerr.New(calcerr.InsufficientOperands, t.Pos, t.String())
			}
			// b was pushed last.
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			v, err := apply(t, a, b)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)

		default:
			return 0, calcerr.New(calcerr.UnexpectedToken, t.Pos, t.String())
		}
	}

	switch len(stack) {
	case 0:
		return 0, calcerr.New(calcerr.InsufficientOperands, calcerr.NoPos, "")
	case 1:
		return stack[0], nil
	}
	return 0, calcerr.New(calcerr.TooManyOperands, calcerr.NoPos, "")
}

func apply(t token.Token, a, b float64) (float64, error) {
	switch t.Op {
	case token.ADD:
		return a + b, nil
	case token.SUB:
		return a - b, nil
	case token.MUL:
		return a * b, nil
	case token.DIV:
		if b == 0 {
			return 0, calcerr.New(calcerr.DivisionByZero, t.Pos, t.String())
		}
		return a / b, nil
	}
	return 0, calcerr.New(calcerr.UnexpectedToken, t.Pos, t.String())
}
