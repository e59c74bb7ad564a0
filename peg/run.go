package peg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SyntaxError is returned when the top rule does not match, or matches only
// a prefix of the input.
type SyntaxError struct {
	Name     string
	Offset   Position
	Leftover string
	Expected []string
}

func (e *SyntaxError) Error() string {
	if e.Leftover != "" {
		return fmt.Sprintf("%s: unexpected input at %d, leftover: %q", e.Name, e.Offset, e.Leftover)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: no match at %d", e.Name, e.Offset)
	}
	return fmt.Sprintf("%s: no match at %d, expected %s", e.Name, e.Offset, strings.Join(e.Expected, " or "))
}

// Run invokes top and requires it to consume the whole input. A cache
// conflict raised anywhere below top aborts the parse and is returned as the
// error; no partial result is produced.
func Run[T any](p *Parser, top func() (T, bool)) (result T, err error) {
	var zero T

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		perr, ok := r.(error)
		var conflict *ConflictError
		if !ok || !errors.As(perr, &conflict) {
			panic(r)
		}
		p.log.Errorf("%s: %v", p.name, conflict)
		p.summarize()
		result, err = zero, perr
	}()

	p.log.Debugf("%s: parsing %d characters", p.name, p.cursor.Len())

	start := p.cursor.Mark()
	v, ok := top()
	p.summarize()

	if !ok {
		p.cursor.Reset(start)
		pos, expected := p.Deepest()
		if pos < start {
			pos = start
		}
		return zero, &SyntaxError{
			Name:     p.name,
			Offset:   pos,
			Expected: append([]string(nil), expected...),
		}
	}

	if !p.cursor.AtEnd() {
		end := p.cursor.Mark()
		leftover := p.cursor.Rest()
		p.cursor.Reset(start)
		p.log.Debugf("%s: leftover %q", p.name, leftover)
		return zero, &SyntaxError{
			Name:     p.name,
			Offset:   end,
			Leftover: leftover,
		}
	}

	return v, nil
}

func (p *Parser) summarize() {
	summary := p.cache.Summary()
	p.log.Debugf("%s: %s", p.name, summary)
	if p.trace != nil {
		fmt.Fprintln(p.trace, summary)
	}
}
