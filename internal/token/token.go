// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines arithmetic token kinds, operators and their precedence.
package token

import (
	"strconv"
)

// Kind represents a token type.
type Kind int

const (
	NUMBER   Kind = iota // Signed numeric literal
	OPERATOR             // Binary operator, or a sign with no number attached
	LPAREN               // (
	RPAREN               // )
)

// String returns the string representation of a token kind.
func (k Kind) String() string {
	switch k {
	case NUMBER:
		return "NUMBER"
	case OPERATOR:
		return "OPERATOR"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	}
	return "UNKNOWN"
}

// Op is one of the four arithmetic operators.
type Op int

const (
	ADD Op = iota + 1
	SUB
	MUL
	DIV
)

// Operator runes.
const (
	RuneAdd    = '+'
	RuneSub    = '-'
	RuneMul    = '*'
	RuneDiv    = '/'
	RuneLParen = '('
	RuneRParen = ')'
	RuneDot    = '.'
)

// precedence is indexed by Op. All operators are left-associative.
var precedence = [...]int{
	ADD: 1,
	SUB: 1,
	MUL: 2,
	DIV: 2,
}

// OpFromRune returns the operator for r, or 0 and false.
func OpFromRune(r rune) (Op, bool) {
	switch r {
	case RuneAdd:
		return ADD, true
	case RuneSub:
		return SUB, true
	case RuneMul:
		return MUL, true
	case RuneDiv:
		return DIV, true
	}
	return 0, false
}

// Precedence returns the binding strength of the operator.
func (o Op) Precedence() int {
	if o < ADD || o > DIV {
		return 0
	}
	return precedence[o]
}

// IsSign reports whether the operator can also be a unary sign.
func (o Op) IsSign() bool {
	return o == ADD || o == SUB
}

// Rune returns the source character of the operator.
func (o Op) Rune() rune {
	switch o {
	case ADD:
		return RuneAdd
	case SUB:
		return RuneSub
	case MUL:
		return RuneMul
	case DIV:
		return RuneDiv
	}
	return '?'
}

func (o Op) String() string { return string(o.Rune()) }

// Token is a single lexical item.
type Token struct {
	Kind  Kind
	Op    Op      // Set for OPERATOR
	Value float64 // Set for NUMBER
	Pos   int     // Byte offset in the source
}

// Number creates a NUMBER token.
func Number(v float64, pos int) Token {
	return Token{Kind: NUMBER, Value: v, Pos: pos}
}

// Operator creates an OPERATOR token.
func Operator(op Op, pos int) Token {
	return Token{Kind: OPERATOR, Op: op, Pos: pos}
}

// LeftParen creates an LPAREN token.
func LeftParen(pos int) Token {
	return Token{Kind: LPAREN, Pos: pos}
}

// RightParen creates an RPAREN token.
func RightParen(pos int) Token {
	return Token{Kind: RPAREN, Pos: pos}
}

// IsParen reports whether the token is a parenthesis.
func (t Token) IsParen() bool {
	return t.Kind == LPAREN || t.Kind == RPAREN
}

// String returns the source-like representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case NUMBER:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case OPERATOR:
		return t.Op.String()
	case LPAREN:
		return string(RuneLParen)
	case RPAREN:
		return string(RuneRParen)
	}
	return "?"
}

// Join renders a token sequence separated by single spaces.
func Join(tokens []Token) string {
	buf := make([]byte, 0, len(tokens)*3)
	for i, t := range tokens {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, t.String()...)
	}
	return string(buf)
}
