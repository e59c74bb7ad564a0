package peg

import "strconv"

// Expect consumes lit exactly. On any mismatch the cursor is reset to where
// it was and false is returned.
func (p *Parser) Expect(lit string) (string, bool) {
	pos := p.cursor.Mark()
	for _, want := range lit {
		got, ok := p.cursor.Next()
		if !ok || got != want {
			p.cursor.Reset(pos)
			p.fail(pos, strconv.Quote(lit))
			return "", false
		}
	}
	return lit, true
}

// ExpectFunc consumes one character satisfying pred. label names the
// character class in failure diagnostics.
func (p *Parser) ExpectFunc(label string, pred func(rune) bool) (rune, bool) {
	pos := p.cursor.Mark()
	ch, ok := p.cursor.Next()
	if !ok || !pred(ch) {
		p.cursor.Reset(pos)
		p.fail(pos, label)
		return 0, false
	}
	return ch, true
}

// PositiveLookahead succeeds, returning the peeked character, only if the
// next character is ch. It never consumes input.
func (p *Parser) PositiveLookahead(ch rune) (rune, bool) {
	pos := p.cursor.Mark()
	saw, ok := p.cursor.Next()
	p.cursor.Reset(pos)
	if ok && saw == ch {
		return saw, true
	}
	return 0, false
}

// NegativeLookahead succeeds, returning the peeked character, only if the
// next character is not ch. End of input is "not ch": it succeeds with 0.
// It never consumes input.
func (p *Parser) NegativeLookahead(ch rune) (rune, bool) {
	pos := p.cursor.Mark()
	saw, ok := p.cursor.Next()
	p.cursor.Reset(pos)
	if !ok {
		return 0, true
	}
	if saw != ch {
		return saw, true
	}
	return 0, false
}

// Ahead reports whether the next character satisfies pred, without consuming.
func (p *Parser) Ahead(pred func(rune) bool) bool {
	ch, ok := p.cursor.Peek()
	return ok && pred(ch)
}

// NotAhead reports whether the next character does not satisfy pred, or the
// input is exhausted, without consuming.
func (p *Parser) NotAhead(pred func(rune) bool) bool {
	ch, ok := p.cursor.Peek()
	return !ok || !pred(ch)
}

func (p *Parser) AtEnd() bool {
	return p.cursor.AtEnd()
}
