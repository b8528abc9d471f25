// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner turns arithmetic source text into tokens.
package scanner

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"nickandperla.net/arith/internal/calcerr"
	"nickandperla.net/arith/internal/token"
)

// Scanner tokenizes arithmetic input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	pos    int // Byte offset of the next rune
	size   int // Width of the last rune read
	last   *token.Token
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Pos returns the byte offset of the next unread rune.
func (s *Scanner) Pos() int {
	return s.pos
}

// Tokenize scans the whole expression.
func Tokenize(expression string) ([]token.Token, error) {
	s := NewFromString(expression)
	var tokens []token.Token
	for {
		t, err := s.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
}

// Next returns the next token, or io.EOF once the input is exhausted.
func (s *Scanner) Next() (token.Token, error) {
	if err := s.skipWhitespace(); err != nil {
		return token.Token{}, err
	}

	start := s.pos
	r, err := s.read()
	if err != nil {
		return token.Token{}, err
	}

	var t token.Token
	switch {
	case isNumberRune(r):
		s.unread()
		t, err = s.scanNumber(start, 0)
	case r == token.RuneLParen:
		t = token.LeftParen(start)
	case r == token.RuneRParen:
		t = token.RightParen(start)
	default:
		op, ok := token.OpFromRune(r)
		if !ok {
			return token.Token{}, calcerr.New(calcerr.InvalidCharacter, start, string(r))
		}
		t, err = s.scanOperator(op, start)
	}
	if err != nil {
		return token.Token{}, err
	}
	s.last = &t
	return t, nil
}

// scanOperator handles an operator rune, fusing a unary sign with the number
// that immediately follows it.
func (s *Scanner) scanOperator(op token.Op, start int) (token.Token, error) {
	if !op.IsSign() || !s.unaryPosition() {
		return token.Operator(op, start), nil
	}
	// Only one sign per number.
	if s.last != nil && s.last.Kind == token.OPERATOR && s.last.Op.IsSign() {
		return token.Token{}, calcerr.New(calcerr.MalformedNumber, s.last.Pos, s.last.Op.String()+op.String())
	}

	next, err := s.peek()
	if err == io.EOF {
		return token.Operator(op, start), nil
	}
	if err != nil {
		return token.Token{}, err
	}
	switch {
	case isNumberRune(next):
		return s.scanNumber(start, op.Rune())
	case next == token.RuneAdd || next == token.RuneSub:
		return token.Token{}, calcerr.New(calcerr.MalformedNumber, start, op.String()+string(next))
	}
	// A dangling sign is left for the converter to reject.
	return token.Operator(op, start), nil
}

// unaryPosition reports whether a sign read now would be unary.
func (s *Scanner) unaryPosition() bool {
	if s.last == nil {
		return true
	}
	return s.last.Kind == token.OPERATOR || s.last.Kind == token.LPAREN
}

// scanNumber consumes digits and decimal points. sign is 0 or the sign rune
// already consumed at start.
func (s *Scanner) scanNumber(start int, sign rune) (token.Token, error) {
	s.buf.Reset()
	if sign != 0 {
		s.buf.WriteRune(sign)
	}

	digits, dots := 0, 0
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token.Token{}, err
		}
		if !isNumberRune(r) {
			s.unread()
			break
		}
		if r == token.RuneDot {
			dots++
		} else {
			digits++
		}
		s.buf.WriteRune(r)
	}

	text := s.buf.String()
	if digits == 0 || dots > 1 {
		return token.Token{}, calcerr.New(calcerr.MalformedNumber, start, text)
	}
	// Literals too large for a float64 become ±Inf, like overflowing arithmetic.
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return token.Token{}, calcerr.New(calcerr.MalformedNumber, start, text)
	}
	return token.Number(v, start), nil
}

// skipWhitespace consumes and discards whitespace.
func (s *Scanner) skipWhitespace() error {
	for {
		r, err := s.read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			s.unread()
			return nil
		}
	}
}

func (s *Scanner) read() (rune, error) {
	r, size, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	s.pos += size
	s.size = size
	return r, nil
}

// unread pushes back the rune returned by the last read.
func (s *Scanner) unread() {
	if err := s.reader.UnreadRune(); err == nil {
		s.pos -= s.size
	}
}

// peek returns the next rune without consuming it.
func (s *Scanner) peek() (rune, error) {
	r, err := s.read()
	if err != nil {
		return 0, err
	}
	s.unread()
	return r, nil
}

func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == token.RuneDot
}
