// Package parse recognizes token streams against the non-lexical
// productions of an EBNF grammar using Earley's algorithm, which accepts
// any context-free grammar, left-recursive ones included.
package parse

import (
	"fmt"

	"github.com/dhamidi/packrat/ebnflex"
	"golang.org/x/exp/ebnf"
)

// symbol is a nonterminal when term is nil.
type symbol struct {
	name string
	term *terminal
}

// terminal matches a token of a lexical kind, or a literal token with the
// given text.
type terminal struct {
	kind    string
	literal string
}

func (t *terminal) matches(tok ebnflex.Token) bool {
	if t.kind == ebnflex.KindLiteral {
		return tok.Kind == ebnflex.KindLiteral && tok.Literal == t.literal
	}
	return tok.Kind == t.kind
}

func (t *terminal) String() string {
	if t.kind == ebnflex.KindLiteral {
		return fmt.Sprintf("%q", t.literal)
	}
	return t.kind
}

type rule struct {
	lhs string
	rhs []symbol
}

// EarleyParser holds a grammar flattened into plain rules. Options,
// repetitions and nested groups become synthetic nonterminals.
type EarleyParser struct {
	start    string
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
	synth    int
}

// NewEarleyParser flattens the productions reachable from start.
func NewEarleyParser(g ebnf.Grammar, start string) (*EarleyParser, error) {
	if g[start] == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	p := &EarleyParser{
		start:    start,
		byLHS:    make(map[string][]int),
		nullable: make(map[string]bool),
	}

	seen := map[string]bool{}
	queue := []string{start}
	scanned := 0
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		prod := g[name]
		if prod == nil {
			return nil, fmt.Errorf("production %q not found in grammar", name)
		}
		alts, err := p.alternatives(prod.Expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, rhs := range alts {
			p.addRule(name, rhs)
		}

		// synthetic rules for groups, options and repetitions were added
		// while flattening, so scan every rule added since the last pass
		for ; scanned < len(p.rules); scanned++ {
			for _, sym := range p.rules[scanned].rhs {
				if sym.term == nil && !seen[sym.name] && g[sym.name] != nil {
					queue = append(queue, sym.name)
				}
			}
		}
	}

	p.computeNullable()
	return p, nil
}

func (p *EarleyParser) addRule(lhs string, rhs []symbol) {
	p.byLHS[lhs] = append(p.byLHS[lhs], len(p.rules))
	p.rules = append(p.rules, rule{lhs: lhs, rhs: rhs})
}

func (p *EarleyParser) alternatives(expr ebnf.Expression) ([][]symbol, error) {
	if alt, ok := expr.(ebnf.Alternative); ok {
		var out [][]symbol
		for _, x := range alt {
			seq, err := p.sequence(x)
			if err != nil {
				return nil, err
			}
			out = append(out, seq)
		}
		return out, nil
	}
	seq, err := p.sequence(expr)
	if err != nil {
		return nil, err
	}
	return [][]symbol{seq}, nil
}

func (p *EarleyParser) sequence(expr ebnf.Expression) ([]symbol, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil
	case ebnf.Sequence:
		out := make([]symbol, 0, len(e))
		for _, x := range e {
			sym, err := p.symbol(x)
			if err != nil {
				return nil, err
			}
			out = append(out, sym)
		}
		return out, nil
	}
	sym, err := p.symbol(expr)
	if err != nil {
		return nil, err
	}
	return []symbol{sym}, nil
}

func (p *EarleyParser) symbol(expr ebnf.Expression) (symbol, error) {
	switch e := expr.(type) {
	case *ebnf.Name:
		if ebnflex.IsLexical(e.String) {
			return symbol{term: &terminal{kind: e.String}}, nil
		}
		return symbol{name: e.String}, nil

	case *ebnf.Token:
		return symbol{term: &terminal{kind: ebnflex.KindLiteral, literal: e.String}}, nil

	case *ebnf.Group:
		return p.synthesize(e.Body, false, false)

	case *ebnf.Option:
		return p.synthesize(e.Body, true, false)

	case *ebnf.Repetition:
		return p.synthesize(e.Body, true, true)

	case ebnf.Alternative, ebnf.Sequence:
		return p.synthesize(e, false, false)
	}
	return symbol{}, fmt.Errorf("unsupported expression %T in non-lexical production", expr)
}

// synthesize creates a nonterminal for body. An optional one also derives
// the empty string; a repeated one derives body any number of times.
func (p *EarleyParser) synthesize(body ebnf.Expression, optional, repeat bool) (symbol, error) {
	p.synth++
	name := fmt.Sprintf("#%d", p.synth)

	alts, err := p.alternatives(body)
	if err != nil {
		return symbol{}, err
	}
	self := symbol{name: name}
	for _, rhs := range alts {
		if repeat {
			rhs = append(append([]symbol(nil), rhs...), self)
		}
		p.addRule(name, rhs)
	}
	if optional {
		p.addRule(name, nil)
	}
	return self, nil
}

func (p *EarleyParser) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, r := range p.rules {
			if p.nullable[r.lhs] {
				continue
			}
			all := true
			for _, sym := range r.rhs {
				if sym.term != nil || !p.nullable[sym.name] {
					all = false
					break
				}
			}
			if all {
				p.nullable[r.lhs] = true
				changed = true
			}
		}
	}
}

// Item is an Earley item: a rule with a dot position and the chart
// position where the rule started.
type Item struct {
	rule   int
	dot    int
	origin int
}

type ItemSet struct {
	items []Item
	seen  map[Item]bool
}

func (s *ItemSet) Add(item Item) bool {
	if s.seen[item] {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[Item]bool)
	}
	s.seen[item] = true
	s.items = append(s.items, item)
	return true
}

func (s *ItemSet) Len() int {
	return len(s.items)
}

// SyntaxError reports the first token that no item could scan.
type SyntaxError struct {
	Token    ebnflex.Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	if e.Token.IsEOF() {
		return fmt.Sprintf("%s: unexpected end of input", e.Token.Position)
	}
	return fmt.Sprintf("%s: unexpected %q", e.Token.Position, e.Token.Literal)
}

// Parse recognizes tokens, which must end with an EOF token as produced
// by ebnflex.Lexer.Tokenize.
func (p *EarleyParser) Parse(tokens []ebnflex.Token) error {
	var input []ebnflex.Token
	for _, tok := range tokens {
		if !tok.IsEOF() {
			input = append(input, tok)
		}
	}
	eof := ebnflex.Token{Kind: "EOF"}
	if len(tokens) > 0 {
		eof = tokens[len(tokens)-1]
	}

	chart := p.run(input)
	n := len(input)

	for _, item := range chart[n].items {
		r := p.rules[item.rule]
		if r.lhs == p.start && item.origin == 0 && item.dot == len(r.rhs) {
			return nil
		}
	}

	furthest := n
	for furthest > 0 && chart[furthest].Len() == 0 {
		furthest--
	}
	err := &SyntaxError{Token: eof, Expected: p.expected(&chart[furthest])}
	if furthest < n {
		err.Token = input[furthest]
	}
	return err
}

func (p *EarleyParser) run(input []ebnflex.Token) []ItemSet {
	n := len(input)
	chart := make([]ItemSet, n+1)
	for _, ri := range p.byLHS[p.start] {
		chart[0].Add(Item{rule: ri})
	}

	for i := 0; i <= n; i++ {
		// items may be added while iterating
		for j := 0; j < len(chart[i].items); j++ {
			item := chart[i].items[j]
			r := p.rules[item.rule]

			if item.dot == len(r.rhs) {
				p.complete(chart, i, item)
				continue
			}

			next := r.rhs[item.dot]
			if next.term != nil {
				if i < n && next.term.matches(input[i]) {
					chart[i+1].Add(Item{rule: item.rule, dot: item.dot + 1, origin: item.origin})
				}
				continue
			}

			for _, ri := range p.byLHS[next.name] {
				chart[i].Add(Item{rule: ri, origin: i})
			}
			// completing a nullable nonterminal adds nothing new at i
			if p.nullable[next.name] {
				chart[i].Add(Item{rule: item.rule, dot: item.dot + 1, origin: item.origin})
			}
		}
	}
	return chart
}

func (p *EarleyParser) complete(chart []ItemSet, i int, done Item) {
	lhs := p.rules[done.rule].lhs
	waiting := &chart[done.origin]
	for j := 0; j < len(waiting.items); j++ {
		item := waiting.items[j]
		r := p.rules[item.rule]
		if item.dot < len(r.rhs) && r.rhs[item.dot].term == nil && r.rhs[item.dot].name == lhs {
			chart[i].Add(Item{rule: item.rule, dot: item.dot + 1, origin: item.origin})
		}
	}
}

// expected lists the terminals the items in set could scan next.
func (p *EarleyParser) expected(set *ItemSet) []string {
	var out []string
	seen := map[string]bool{}
	for _, item := range set.items {
		r := p.rules[item.rule]
		if item.dot < len(r.rhs) && r.rhs[item.dot].term != nil {
			s := r.rhs[item.dot].term.String()
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Recognize tokenizes input with the lexical productions of g and checks
// it against the production start.
func Recognize(g ebnf.Grammar, start, input, filename string) error {
	p, err := NewEarleyParser(g, start)
	if err != nil {
		return err
	}
	tokens, err := ebnflex.NewLexer(g, input, filename).Tokenize()
	if err != nil {
		return err
	}
	return p.Parse(tokens)
}
