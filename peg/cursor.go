package peg

// Position is an offset into the input measured in characters (runes), not bytes.
type Position int

// Cursor is the single backtracking primitive of the engine. Every sub-parse
// marks the current position, attempts a match and resets to the mark when
// the attempt fails.
type Cursor struct {
	text []rune
	pos  Position
}

func NewCursor(text string) *Cursor {
	return &Cursor{text: []rune(text)}
}

// Mark returns the current position. Marks are plain values; any number of
// them may be outstanding at once.
func (c *Cursor) Mark() Position {
	return c.pos
}

// Reset moves the cursor to p. Positions outside the input are clamped to
// its bounds, so Reset never fails.
func (c *Cursor) Reset(p Position) {
	switch {
	case p < 0:
		p = 0
	case int(p) > len(c.text):
		p = Position(len(c.text))
	}
	c.pos = p
}

// Jump is an alias of Reset used where the intent is to skip forward over an
// already known match.
func (c *Cursor) Jump(p Position) {
	c.Reset(p)
}

// Next returns the character at the current position and advances by one.
// At end of input it returns false and does not move.
func (c *Cursor) Next() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	ch := c.text[c.pos]
	c.pos++
	return ch, true
}

func (c *Cursor) Peek() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.text[c.pos], true
}

func (c *Cursor) AtEnd() bool {
	return int(c.pos) >= len(c.text)
}

// Len returns the input length in characters.
func (c *Cursor) Len() int {
	return len(c.text)
}

// Rest returns the unconsumed suffix of the input.
func (c *Cursor) Rest() string {
	if c.AtEnd() {
		return ""
	}
	return string(c.text[c.pos:])
}

func (c *Cursor) Slice(from, to Position) string {
	if from < 0 {
		from = 0
	}
	if int(to) > len(c.text) {
		to = Position(len(c.text))
	}
	if from >= to {
		return ""
	}
	return string(c.text[from:to])
}
