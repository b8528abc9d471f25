package eval

import (
	"errors"
	"math"
	"testing"

	"nickandperla.net/arith/internal/calcerr"
	"nickandperla.net/arith/internal/token"
)

func num(v float64) token.Token { return token.Number(v, 0) }

func op(o token.Op) token.Token { return token.Operator(o, 0) }

func seq(ts ...token.Token) []token.Token { return ts }

func TestPostfix(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []token.Token
		expected float64
	}{
		{"single", seq(num(42)), 42},
		{"add", seq(num(2), num(3), op(token.ADD)), 5},
		{"sub order", seq(num(10), num(4), op(token.SUB)), 6},
		{"div order", seq(num(10), num(4), op(token.DIV)), 2.5},
		{"mul", seq(num(-2), num(3), op(token.MUL)), -6},
		{"nested", seq(num(2), num(3), num(4), op(token.MUL), op(token.ADD)), 14},
		{"left assoc", seq(num(1), num(2), op(token.SUB), num(3), op(token.SUB)), -4},
		{"zero dividend", seq(num(0), num(5), op(token.DIV)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Postfix(tt.tokens)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPostfixErrors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []token.Token
		kind   calcerr.Kind
	}{
		{"empty", nil, calcerr.InsufficientOperands},
		{"lone operator", seq(op(token.ADD)), calcerr.InsufficientOperands},
		{"one operand", seq(num(1), op(token.MUL)), calcerr.InsufficientOperands},
		{"two values", seq(num(1), num(2)), calcerr.TooManyOperands},
		{"leftover", seq(num(1), num(2), num(3), op(token.ADD)), calcerr.TooManyOperands},
		{"divide by zero", seq(num(1), num(0), op(token.DIV)), calcerr.DivisionByZero},
		{"divide by negative zero", seq(num(1), num(math.Copysign(0, -1)), op(token.DIV)), calcerr.DivisionByZero},
		{"computed zero divisor", seq(num(10), num(5), num(5), op(token.SUB), op(token.DIV)), calcerr.DivisionByZero},
		{"paren", seq(num(1), token.LeftParen(0)), calcerr.UnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Postfix(tt.tokens)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestPostfixDivisionCheckUsesDivisor(t *testing.T) {
	// A zero result is fine; only a zero divisor fails.
	got, err := Postfix(seq(num(0), num(3), op(token.DIV)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestPostfixErrorPosition(t *testing.T) {
	tokens := []token.Token{
		token.Number(1, 0),
		token.Number(0, 2),
		token.Operator(token.DIV, 1),
	}
	_, err := Postfix(tokens)
	var e *calcerr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *calcerr.Error, got %v", err)
	}
	if e.Pos != 1 || e.Text != "/" {
		t.Errorf("expected '/' at 1, got %q at %d", e.Text, e.Pos)
	}
}
