package peg

// Cut is the commit point of one rule invocation. Each call to Choice gets a
// fresh Cut shared by its alternatives.
type Cut struct {
	committed bool
}

// Commit declares that the alternative has consumed a prefix that uniquely
// identifies it. If the alternative fails afterwards, Choice fails without
// trying the remaining alternatives.
func (c *Cut) Commit() {
	c.committed = true
}

// Alt is one alternative of an ordered choice. It runs its sub-parses in
// sequence and returns false as soon as one of them fails.
type Alt[T any] func(cut *Cut) (T, bool)

// Choice tries alts in order at the current position and returns the first
// success. The cursor is reset to the starting position after every failed
// alternative.
func Choice[T any](p *Parser, alts ...Alt[T]) (T, bool) {
	pos := p.cursor.Mark()
	cut := &Cut{}
	for _, alt := range alts {
		if v, ok := alt(cut); ok {
			return v, true
		}
		p.cursor.Reset(pos)
		if cut.committed {
			break
		}
	}
	var zero T
	return zero, false
}

// Optional runs rule and reports its result, restoring the position when it
// fails. Optional itself never fails.
func Optional[T any](p *Parser, rule func() (T, bool)) (T, bool) {
	pos := p.cursor.Mark()
	v, ok := rule()
	if !ok {
		p.cursor.Reset(pos)
	}
	return v, ok
}

// ZeroOrMore applies rule until it fails or stops consuming input.
func ZeroOrMore[T any](p *Parser, rule func() (T, bool)) []T {
	var out []T
	for {
		pos := p.cursor.Mark()
		v, ok := rule()
		if !ok {
			p.cursor.Reset(pos)
			return out
		}
		out = append(out, v)
		if p.cursor.Mark() == pos {
			return out
		}
	}
}

func OneOrMore[T any](p *Parser, rule func() (T, bool)) ([]T, bool) {
	pos := p.cursor.Mark()
	first, ok := rule()
	if !ok {
		p.cursor.Reset(pos)
		return nil, false
	}
	return append([]T{first}, ZeroOrMore(p, rule)...), true
}

// SeparatedBy matches rule (sep rule)*. A trailing separator is not consumed.
func SeparatedBy[T any](p *Parser, rule func() (T, bool), sep func() bool) ([]T, bool) {
	pos := p.cursor.Mark()
	first, ok := rule()
	if !ok {
		p.cursor.Reset(pos)
		return nil, false
	}
	out := []T{first}
	for {
		mark := p.cursor.Mark()
		if !sep() {
			p.cursor.Reset(mark)
			return out, true
		}
		v, ok := rule()
		if !ok {
			p.cursor.Reset(mark)
			return out, true
		}
		out = append(out, v)
	}
}
