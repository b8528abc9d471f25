// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package postfix reorders infix tokens into Reverse Polish order using the
// shunting-yard algorithm.
package postfix

import (
	"nickandperla.net/arith/internal/calcerr"
	"nickandperla.net/arith/internal/token"
)

// Convert returns tokens in postfix order. Parentheses are consumed; every
// other token appears in the result exactly once.
func Convert(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	var stack []token.Token

	// expectOperand is true where a number or '(' must come next.
	expectOperand := true
	depth := 0 // Open parentheses on the stack

	for _, t := range tokens {
		switch t.Kind {
		case token.NUMBER:
			if !expectOperand {
				return nil, unexpected(t)
			}
			out = append(out, t)
			expectOperand = false

		case token.OPERATOR:
			if expectOperand {
				return nil, unexpected(t)
			}
			prec := t.Op.Precedence()
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != token.OPERATOR || top.Op.Precedence() < prec {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
			expectOperand = true

		case token.LPAREN:
			if !expectOperand {
				return nil, unexpected(t)
			}
			stack = append(stack, t)
			depth++

		case token.RPAREN:
			if depth == 0 {
				return nil, calcerr.New(calcerr.UnbalancedParentheses, t.Pos, t.String())
			}
			if expectOperand {
				return nil, unexpected(t)
			}
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == token.LPAREN {
					break
				}
				out = append(out, top)
			}
			depth--

		default:
			return nil, unexpected(t)
		}
	}

	// Dangling operator at end of input.
	if expectOperand && len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		if last.Kind == token.OPERATOR {
			return nil, unexpected(last)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.IsParen() {
			return nil, calcerr.New(calcerr.UnbalancedParentheses, top.Pos, top.String())
		}
		out = append(out, top)
	}
	return out, nil
}

func unexpected(t token.Token) *calcerr.Error {
	return calcerr.New(calcerr.UnexpectedToken, t.Pos, t.String())
}
