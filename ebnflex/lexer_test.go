package ebnflex

import (
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

const testGrammar = `
Expr   = Term { ( "+" | "or" ) Term } .
Term   = name | number | "(" Expr ")" .
name   = letter { letter | digit } .
number = digit { digit } [ "." digit { digit } ] .
letter = "a" … "z" .
digit  = "0" … "9" .
`

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ebnf.Parse("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

func TestTokenize(t *testing.T) {
	g := mustGrammar(t, testGrammar)
	tokens, err := NewLexer(g, "or orx 12.5+(a1)\n x", "in").Tokenize()
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		kind, literal string
		line, column  int
	}{
		{KindLiteral, "or", 1, 1},
		{"name", "orx", 1, 4},
		{"number", "12.5", 1, 8},
		{KindLiteral, "+", 1, 12},
		{KindLiteral, "(", 1, 13},
		{"name", "a1", 1, 14},
		{KindLiteral, ")", 1, 16},
		{"name", "x", 2, 2},
		{"EOF", "", 2, 3},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Kind != w.kind || tok.Literal != w.literal || tok.Position.Line != w.line || tok.Position.Column != w.column {
			t.Errorf("token %d = %s, want %s %q at %d:%d", i, tok, w.kind, w.literal, w.line, w.column)
		}
	}
	if !tokens[len(tokens)-1].IsEOF() {
		t.Error("last token is not EOF")
	}
	if got := tokens[2].Position.String(); got != "in:1:8" {
		t.Errorf("position = %s", got)
	}
}

func TestTokenizeError(t *testing.T) {
	g := mustGrammar(t, testGrammar)
	tokens, err := NewLexer(g, "a?1", "").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 4 || tokens[1].Kind != KindError || tokens[1].Literal != "?" {
		t.Fatalf("tokens = %v", tokens)
	}
	if tokens[2].Kind != "number" || tokens[2].Position.Offset != 2 {
		t.Errorf("token after error = %s", tokens[2])
	}
}

func TestNumberWithoutFraction(t *testing.T) {
	g := mustGrammar(t, testGrammar)
	tokens, _ := NewLexer(g, "12.", "").Tokenize()
	if len(tokens) != 3 || tokens[0].Literal != "12" || tokens[1].Kind != KindError {
		t.Fatalf("tokens = %v", tokens)
	}
}

func TestIsLexical(t *testing.T) {
	for name, want := range map[string]bool{"name": true, "Expr": false, "_x": false, "": false} {
		if got := IsLexical(name); got != want {
			t.Errorf("IsLexical(%q) = %v", name, got)
		}
	}
}
