package peg

// Memo evaluates body at most once per position for tag. A cached result
// moves the cursor to where the original attempt ended; a miss runs body,
// stores what it produced and returns it. A failed body leaves the cursor
// at the starting position.
func Memo[T any](p *Parser, tag RuleTag, body func() (T, bool)) (T, bool) {
	start := p.cursor.Mark()
	if end, out, ok := p.cache.Get(start, tag); ok {
		p.cursor.Reset(end)
		return unwrap[T](out)
	}

	v, ok := body()
	if !ok {
		p.cursor.Reset(start)
	}
	p.cache.Insert(start, tag, p.cursor.Mark(), outcome(v, ok))
	return v, ok
}

// LeftRec is Memo for rules with an alternative that starts by calling the
// rule itself at the same position. The rule is grown from a failing seed:
// each pass re-runs body, and recursive calls see the previous pass's result
// through the cache. Growth stops at the first pass that does not end
// strictly further right than the stored result; on a tie the earlier result
// is kept.
//
// Only direct left recursion is supported.
func LeftRec[T any](p *Parser, tag RuleTag, body func() (T, bool)) (T, bool) {
	start := p.cursor.Mark()
	if end, out, ok := p.cache.Get(start, tag); ok {
		p.cursor.Reset(end)
		return unwrap[T](out)
	}

	p.cache.seed(start, tag)
	defer p.cache.release(start, tag)

	best, bestEnd := Outcome{}, start
	for {
		p.cursor.Reset(start)
		v, ok := body()
		end := p.cursor.Mark()
		if !ok || (best.OK && end <= bestEnd) {
			break
		}
		best, bestEnd = outcome(v, ok), end
		p.cache.grow(start, tag, bestEnd, best)
	}

	p.cursor.Reset(bestEnd)
	return unwrap[T](best)
}

func outcome[T any](v T, ok bool) Outcome {
	if !ok {
		return Outcome{}
	}
	return Outcome{Value: v, OK: true}
}

func unwrap[T any](out Outcome) (T, bool) {
	if !out.OK {
		var zero T
		return zero, false
	}
	v, _ := out.Value.(T)
	return v, true
}
