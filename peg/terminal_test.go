package peg

import (
	"testing"
	"unicode"
)

func TestExpect(t *testing.T) {
	tests := []struct {
		input string
		lit   string
		ok    bool
		pos   Position
	}{
		{"::x", "::", true, 2},
		{":x", "::", false, 0},
		{"", "+", false, 0},
		{"+", "+", true, 1},
		{"été", "ét", true, 2},
		{"abc", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input+"/"+tt.lit, func(t *testing.T) {
			p := New(tt.input)
			got, ok := p.Expect(tt.lit)
			if ok != tt.ok {
				t.Fatalf("Expect(%q) ok = %v, want %v", tt.lit, ok, tt.ok)
			}
			if ok && got != tt.lit {
				t.Errorf("Expect(%q) = %q", tt.lit, got)
			}
			if p.Mark() != tt.pos {
				t.Errorf("position after Expect(%q) = %d, want %d", tt.lit, p.Mark(), tt.pos)
			}
		})
	}
}

func TestExpectRecordsDeepestFailure(t *testing.T) {
	p := New("ab")
	p.Expect("ab")
	p.Expect("c")
	p.Expect("d")
	p.Reset(0)
	p.Expect("x")

	pos, expected := p.Deepest()
	if pos != 2 {
		t.Errorf("deepest position = %d, want 2", pos)
	}
	if len(expected) != 2 || expected[0] != `"c"` || expected[1] != `"d"` {
		t.Errorf("expected = %v", expected)
	}
}

func TestExpectFunc(t *testing.T) {
	p := New("7x")
	if ch, ok := p.ExpectFunc("digit", unicode.IsDigit); !ok || ch != '7' {
		t.Fatalf("ExpectFunc(digit) = %q, %v", ch, ok)
	}
	if _, ok := p.ExpectFunc("digit", unicode.IsDigit); ok {
		t.Fatal("ExpectFunc(digit) matched 'x'")
	}
	if p.Mark() != 1 {
		t.Errorf("failed ExpectFunc moved the cursor to %d", p.Mark())
	}
}

func TestLookaheadIsZeroWidth(t *testing.T) {
	inputs := []string{"", "x", "xx", "ax", "xa", "abc", "xyz"}

	for _, input := range inputs {
		n := len([]rune(input))
		for pos := 0; pos <= n; pos++ {
			p := New(input)
			p.Reset(Position(pos))

			p.PositiveLookahead('x')
			if p.Mark() != Position(pos) {
				t.Errorf("%q@%d: PositiveLookahead moved the cursor to %d", input, pos, p.Mark())
			}
			p.NegativeLookahead('x')
			if p.Mark() != Position(pos) {
				t.Errorf("%q@%d: NegativeLookahead moved the cursor to %d", input, pos, p.Mark())
			}
			p.Ahead(unicode.IsLetter)
			p.NotAhead(unicode.IsLetter)
			if p.Mark() != Position(pos) {
				t.Errorf("%q@%d: predicate lookahead moved the cursor to %d", input, pos, p.Mark())
			}
		}
	}
}

func TestLookaheadResults(t *testing.T) {
	tests := []struct {
		input  string
		posOK  bool
		negOK  bool
		negSaw rune
	}{
		{"x", true, false, 0},
		{"y", false, true, 'y'},
		{"", false, true, 0},
	}

	for _, tt := range tests {
		p := New(tt.input)
		if saw, ok := p.PositiveLookahead('x'); ok != tt.posOK || (ok && saw != 'x') {
			t.Errorf("%q: PositiveLookahead('x') = %q, %v", tt.input, saw, ok)
		}
		if saw, ok := p.NegativeLookahead('x'); ok != tt.negOK || saw != tt.negSaw {
			t.Errorf("%q: NegativeLookahead('x') = %q, %v", tt.input, saw, ok)
		}
	}
}
