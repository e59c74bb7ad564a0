// Package ebnflex splits input into tokens described by an EBNF grammar.
//
// Following golang.org/x/exp/ebnf, productions whose name starts with a
// lower-case letter are lexical. A token is either a lexical production
// referenced from a non-lexical one, or a literal that appears in a
// non-lexical production. At each position the longest token wins; on a tie
// a literal beats a lexical production, which is how keywords take
// precedence over names. Whitespace between tokens is skipped.
package ebnflex

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"
)

// KindLiteral is the Kind of tokens matched by a literal.
const KindLiteral = "literal"

// KindError is the Kind of a single character no token matches.
const KindError = "ERROR"

const kindEOF = "EOF"

// Position is a location in the input. Offset counts runes.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// IsLexical reports whether name is a lexical production name.
func IsLexical(name string) bool {
	for _, r := range name {
		return unicode.IsLower(r)
	}
	return false
}

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	lexical  []string
	literals []string

	input    []rune
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int // match length, -1 for no match
}

func NewLexer(grammar ebnf.Grammar, input string, filename string) *Lexer {
	l := &Lexer{
		grammar:  grammar,
		input:    []rune(input),
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
	}
	l.collectTokens()
	return l
}

// collectTokens finds the token productions and literals used by the
// non-lexical productions.
func (l *Lexer) collectTokens() {
	lexical := map[string]bool{}
	literals := map[string]bool{}

	var walk func(ebnf.Expression)
	walk = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case *ebnf.Name:
			if IsLexical(e.String) {
				lexical[e.String] = true
			}
		case *ebnf.Token:
			literals[e.String] = true
		case ebnf.Alternative:
			for _, x := range e {
				walk(x)
			}
		case ebnf.Sequence:
			for _, x := range e {
				walk(x)
			}
		case *ebnf.Group:
			walk(e.Body)
		case *ebnf.Option:
			walk(e.Body)
		case *ebnf.Repetition:
			walk(e.Body)
		}
	}
	for name, prod := range l.grammar {
		if !IsLexical(name) {
			walk(prod.Expr)
		}
	}

	for name := range lexical {
		l.lexical = append(l.lexical, name)
	}
	for lit := range literals {
		l.literals = append(l.literals, lit)
	}
	sort.Strings(l.lexical)
	sort.Strings(l.literals)
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) && strings.ContainsRune(" \t\n\r", l.input[l.pos]) {
		l.advance()
	}
}

// NextToken returns the next token, or an EOF token together with io.EOF
// at the end of the input.
func (l *Lexer) NextToken() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return Token{Kind: kindEOF, Position: l.Position()}, io.EOF
	}

	start := l.Position()
	bestKind, bestLen := "", 0

	for _, lit := range l.literals {
		if n := l.matchLiteral(lit, l.pos); n > bestLen {
			bestKind, bestLen = KindLiteral, n
		}
	}
	for _, name := range l.lexical {
		// strictly longer, so literals win ties
		if n := l.matchName(name, l.pos); n > bestLen {
			bestKind, bestLen = name, n
		}
	}

	if bestLen == 0 {
		return Token{Kind: KindError, Literal: string(l.advance()), Position: start}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[start.Offset : start.Offset+bestLen]),
		Position: start,
	}, nil
}

// Tokenize reads all tokens from input. The last token has kind EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
	}
}

// IsEOF reports whether tok marks the end of the input.
func (t Token) IsEOF() bool {
	return t.Kind == kindEOF
}

// match returns the length of the longest match of expr at offset, or -1.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return l.matchLiteral(e.String, offset)

	case *ebnf.Range:
		return l.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := l.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return -1
}

func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n
	}

	n := -1
	if prod, ok := l.grammar[name]; ok && IsLexical(name) {
		// lexical productions may not recurse; this breaks a cycle if they do
		l.memo[key] = -1
		n = l.match(prod.Expr, offset)
	}
	l.memo[key] = n
	return n
}

func (l *Lexer) matchLiteral(lit string, offset int) int {
	s := []rune(lit)
	if len(s) == 0 || offset+len(s) > len(l.input) {
		return -1
	}
	for i, r := range s {
		if l.input[offset+i] != r {
			return -1
		}
	}
	return len(s)
}

// matchRange matches one character between begin and end, inclusive.
func (l *Lexer) matchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return -1
	}
	b, e := []rune(begin), []rune(end)
	if len(b) != 1 || len(e) != 1 {
		return -1
	}
	if ch := l.input[offset]; b[0] <= ch && ch <= e[0] {
		return 1
	}
	return -1
}
