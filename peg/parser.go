package peg

import (
	"io"

	"github.com/tliron/commonlog"
)

type Option func(*Parser)

// WithTrace writes every cache hit and insertion, followed by a summary line,
// to w.
func WithTrace(w io.Writer) Option {
	return func(p *Parser) {
		p.trace = w
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// WithName sets the name used to prefix errors and log messages, usually the
// file the input came from.
func WithName(name string) Option {
	return func(p *Parser) {
		p.name = name
	}
}

// Parser owns the cursor and the cache of one parse. It is not safe for
// concurrent use; independent inputs get independent parsers.
type Parser struct {
	name   string
	trace  io.Writer
	log    commonlog.Logger
	cursor *Cursor
	cache  *Cache

	failPos      Position
	failExpected []string
}

func New(text string, opts ...Option) *Parser {
	p := &Parser{
		name:    "input",
		cursor:  NewCursor(text),
		failPos: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = commonlog.GetLogger("peg")
	}
	p.cache = NewCache(p.trace)
	return p
}

func (p *Parser) Cursor() *Cursor {
	return p.cursor
}

func (p *Parser) Cache() *Cache {
	return p.cache
}

func (p *Parser) Mark() Position {
	return p.cursor.Mark()
}

func (p *Parser) Reset(pos Position) {
	p.cursor.Reset(pos)
}

// fail records an expectation that did not hold at pos. Only the rightmost
// failure position is kept.
func (p *Parser) fail(pos Position, expected string) {
	switch {
	case pos > p.failPos:
		p.failPos = pos
		p.failExpected = append(p.failExpected[:0], expected)
	case pos == p.failPos:
		for _, e := range p.failExpected {
			if e == expected {
				return
			}
		}
		p.failExpected = append(p.failExpected, expected)
	}
}

// Deepest returns the rightmost position at which a terminal failed to
// match, and what was expected there. The position is -1 if nothing failed.
func (p *Parser) Deepest() (Position, []string) {
	return p.failPos, p.failExpected
}
