package token

import "testing"

func TestPrecedence(t *testing.T) {
	if ADD.Precedence() != SUB.Precedence() {
		t.Error("expected + and - to share precedence")
	}
	if MUL.Precedence() != DIV.Precedence() {
		t.Error("expected * and / to share precedence")
	}
	if MUL.Precedence() <= ADD.Precedence() {
		t.Error("expected * to bind tighter than +")
	}
	if Op(0).Precedence() != 0 || Op(99).Precedence() != 0 {
		t.Error("expected unknown operators to have no precedence")
	}
}

func TestOpFromRune(t *testing.T) {
	for _, r := range "+-*/" {
		op, ok := OpFromRune(r)
		if !ok {
			t.Errorf("OpFromRune(%q): not an operator", r)
			continue
		}
		if op.Rune() != r {
			t.Errorf("OpFromRune(%q).Rune() = %q", r, op.Rune())
		}
	}
	if _, ok := OpFromRune('^'); ok {
		t.Error("expected ^ to be rejected")
	}
}

func TestIsSign(t *testing.T) {
	if !ADD.IsSign() || !SUB.IsSign() {
		t.Error("expected + and - to be signs")
	}
	if MUL.IsSign() || DIV.IsSign() {
		t.Error("expected * and / not to be signs")
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Number(2.5, 0), "2.5"},
		{Number(-3, 0), "-3"},
		{Operator(DIV, 0), "/"},
		{LeftParen(0), "("},
		{RightParen(0), ")"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
	if got := Join([]Token{Number(1, 0), Number(2, 2), Operator(ADD, 1)}); got != "1 2 +" {
		t.Errorf("Join = %q", got)
	}
}
