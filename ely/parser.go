package ely

import (
	"strings"
	"unicode"

	"github.com/dhamidi/packrat/peg"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("ely")

type ruleID int

const (
	ruleDisjunction ruleID = iota
	ruleConjunction
	ruleInversion
	ruleComparison
	ruleAdditive
	ruleMultiplicity
	ruleUnary
	ruleEvaluation
	rulePrimary
	ruleNamespace
	ruleInteger
	ruleDecimal
	ruleBoolean
	ruleName
	ruleKeyword
)

var ruleNames = [...]string{
	ruleDisjunction:  "disjunction",
	ruleConjunction:  "conjunction",
	ruleInversion:    "inversion",
	ruleComparison:   "comparison",
	ruleAdditive:     "additive",
	ruleMultiplicity: "multiplicity",
	ruleUnary:        "unary",
	ruleEvaluation:   "evaluation",
	rulePrimary:      "primary",
	ruleNamespace:    "namespace",
	ruleInteger:      "integer",
	ruleDecimal:      "decimal",
	ruleBoolean:      "boolean",
	ruleName:         "name",
	ruleKeyword:      "keyword",
}

// rule is the cache tag of a grammar rule. arg carries the argument of
// parameterized rules.
type rule struct {
	id  ruleID
	arg string
}

func (r rule) String() string {
	if r.arg == "" {
		return ruleNames[r.id]
	}
	return ruleNames[r.id] + "(" + r.arg + ")"
}

var reserved = map[string]bool{
	"true":  true,
	"false": true,
	"and":   true,
	"or":    true,
	"not":   true,
}

// Parser parses one Ely expression. Each Parser holds the cursor and cache
// of a single input and must not be shared between goroutines.
type Parser struct {
	*peg.Parser
}

func NewParser(text string, opts ...peg.Option) *Parser {
	opts = append([]peg.Option{peg.WithName("ely"), peg.WithLogger(log)}, opts...)
	return &Parser{Parser: peg.New(text, opts...)}
}

// Parse parses text as a single expression that must span the whole input.
func Parse(text string, opts ...peg.Option) (*Expression, error) {
	return NewParser(text, opts...).Parse()
}

func (p *Parser) Parse() (*Expression, error) {
	return peg.Run(p.Parser, p.program)
}

func (p *Parser) program() (*Expression, bool) {
	return p.expression()
}

func (p *Parser) expression() (*Expression, bool) {
	return p.disjunction()
}

func (p *Parser) disjunction() (*Disjunction, bool) {
	return peg.LeftRec(p.Parser, rule{id: ruleDisjunction}, func() (*Disjunction, bool) {
		return peg.Choice(p.Parser,
			func(*peg.Cut) (*Disjunction, bool) {
				lhs, ok := p.disjunction()
				if !ok || !p.keyword("or") {
					return nil, false
				}
				rhs, ok := p.conjunction()
				if !ok {
					return nil, false
				}
				return &Disjunction{LHS: lhs, RHS: rhs}, true
			},
			func(*peg.Cut) (*Disjunction, bool) {
				rhs, ok := p.conjunction()
				if !ok {
					return nil, false
				}
				return &Disjunction{RHS: rhs}, true
			},
		)
	})
}

func (p *Parser) conjunction() (*Conjunction, bool) {
	return peg.LeftRec(p.Parser, rule{id: ruleConjunction}, func() (*Conjunction, bool) {
		return peg.Choice(p.Parser,
			func(*peg.Cut) (*Conjunction, bool) {
				lhs, ok := p.conjunction()
				if !ok || !p.keyword("and") {
					return nil, false
				}
				rhs, ok := p.inversion()
				if !ok {
					return nil, false
				}
				return &Conjunction{LHS: lhs, RHS: rhs}, true
			},
			func(*peg.Cut) (*Conjunction, bool) {
				rhs, ok := p.inversion()
				if !ok {
					return nil, false
				}
				return &Conjunction{RHS: rhs}, true
			},
		)
	})
}

func (p *Parser) inversion() (*Inversion, bool) {
	return peg.Memo(p.Parser, rule{id: ruleInversion}, func() (*Inversion, bool) {
		return peg.Choice(p.Parser,
			func(*peg.Cut) (*Inversion, bool) {
				if !p.keyword("not") {
					return nil, false
				}
				inner, ok := p.inversion()
				if !ok {
					return nil, false
				}
				return &Inversion{Inner: inner}, true
			},
			func(*peg.Cut) (*Inversion, bool) {
				cmp, ok := p.comparison()
				if !ok {
					return nil, false
				}
				return &Inversion{Comparison: cmp}, true
			},
		)
	})
}

func (p *Parser) comparison() (*Comparison, bool) {
	return peg.LeftRec(p.Parser, rule{id: ruleComparison}, func() (*Comparison, bool) {
		return peg.Choice(p.Parser,
			func(*peg.Cut) (*Comparison, bool) {
				lhs, ok := p.comparison()
				if !ok {
					return nil, false
				}
				op, ok := p.compOp()
				if !ok {
					return nil, false
				}
				rhs, ok := p.additive()
				if !ok {
					return nil, false
				}
				return &Comparison{LHS: lhs, Op: op, RHS: rhs}, true
			},
			func(*peg.Cut) (*Comparison, bool) {
				rhs, ok := p.additive()
				if !ok {
					return nil, false
				}
				return &Comparison{RHS: rhs}, true
			},
		)
	})
}

func (p *Parser) compOp() (CompOp, bool) {
	op := func(lit string, op CompOp) peg.Alt[CompOp] {
		return func(*peg.Cut) (CompOp, bool) {
			return op, p.token(lit)
		}
	}
	// a bare '<' or '>' must not be the start of '<=' or '>='
	bare := func(lit string, next rune, op CompOp) peg.Alt[CompOp] {
		return func(*peg.Cut) (CompOp, bool) {
			if !p.token(lit) {
				return op, false
			}
			_, ok := p.NegativeLookahead(next)
			return op, ok
		}
	}
	return peg.Choice(p.Parser,
		op(">=", CompGe),
		bare(">", '=', CompGt),
		op("<=", CompLe),
		bare("<", '=', CompLt),
		op("==", CompEq),
		op("!=", CompNe),
	)
}

func (p *Parser) additive() (*Additive, bool) {
	binary := func(lit string, op AddOp) peg.Alt[*Additive] {
		return func(*peg.Cut) (*Additive, bool) {
			lhs, ok := p.additive()
			if !ok || !p.token(lit) {
				return nil, false
			}
			rhs, ok := p.multiplicity()
			if !ok {
				return nil, false
			}
			return &Additive{LHS: lhs, Op: op, RHS: rhs}, true
		}
	}
	return peg.LeftRec(p.Parser, rule{id: ruleAdditive}, func() (*Additive, bool) {
		return peg.Choice(p.Parser,
			binary("+", AddAdd),
			binary("-", AddSub),
			func(*peg.Cut) (*Additive, bool) {
				rhs, ok := p.multiplicity()
				if !ok {
					return nil, false
				}
				return &Additive{RHS: rhs}, true
			},
		)
	})
}

func (p *Parser) multiplicity() (*Multiplicity, bool) {
	binary := func(lit string, op MulOp) peg.Alt[*Multiplicity] {
		return func(*peg.Cut) (*Multiplicity, bool) {
			lhs, ok := p.multiplicity()
			if !ok || !p.token(lit) {
				return nil, false
			}
			rhs, ok := p.unary()
			if !ok {
				return nil, false
			}
			return &Multiplicity{LHS: lhs, Op: op, RHS: rhs}, true
		}
	}
	return peg.LeftRec(p.Parser, rule{id: ruleMultiplicity}, func() (*Multiplicity, bool) {
		return peg.Choice(p.Parser,
			binary("*", MulMul),
			binary("/", MulDiv),
			binary("%", MulMod),
			func(*peg.Cut) (*Multiplicity, bool) {
				rhs, ok := p.unary()
				if !ok {
					return nil, false
				}
				return &Multiplicity{RHS: rhs}, true
			},
		)
	})
}

// unary recurses on the right only, so plain memoization is enough.
func (p *Parser) unary() (*Unary, bool) {
	prefix := func(lit string, op UnaOp) peg.Alt[*Unary] {
		return func(*peg.Cut) (*Unary, bool) {
			if !p.token(lit) {
				return nil, false
			}
			inner, ok := p.unary()
			if !ok {
				return nil, false
			}
			return &Unary{Op: op, Inner: inner}, true
		}
	}
	return peg.Memo(p.Parser, rule{id: ruleUnary}, func() (*Unary, bool) {
		return peg.Choice(p.Parser,
			prefix("+", UnaPos),
			prefix("-", UnaNeg),
			func(*peg.Cut) (*Unary, bool) {
				eval, ok := p.evaluation()
				if !ok {
					return nil, false
				}
				return &Unary{Evaluation: eval}, true
			},
		)
	})
}

func (p *Parser) evaluation() (Evaluation, bool) {
	return peg.LeftRec(p.Parser, rule{id: ruleEvaluation}, func() (Evaluation, bool) {
		return peg.Choice(p.Parser,
			func(cut *peg.Cut) (Evaluation, bool) {
				callee, ok := p.evaluation()
				if !ok || !p.token("(") {
					return nil, false
				}
				cut.Commit()
				args, _ := peg.Optional(p.Parser, p.arguments)
				if !p.token(")") {
					return nil, false
				}
				return &Call{Callee: callee, Args: args}, true
			},
			func(cut *peg.Cut) (Evaluation, bool) {
				object, ok := p.evaluation()
				if !ok || !p.token(".") {
					return nil, false
				}
				cut.Commit()
				name, ok := p.name()
				if !ok {
					return nil, false
				}
				return &Member{Object: object, Name: name}, true
			},
			func(*peg.Cut) (Evaluation, bool) {
				prim, ok := p.primary()
				if !ok {
					return nil, false
				}
				return prim, true
			},
		)
	})
}

func (p *Parser) arguments() ([]*Expression, bool) {
	return peg.SeparatedBy(p.Parser, p.expression, func() bool {
		return p.token(",")
	})
}

func (p *Parser) primary() (Primary, bool) {
	return peg.Memo(p.Parser, rule{id: rulePrimary}, func() (Primary, bool) {
		return peg.Choice(p.Parser,
			func(*peg.Cut) (Primary, bool) {
				p.spaces()
				if _, ok := p.PositiveLookahead('('); !ok {
					return nil, false
				}
				p.Expect("(")
				inner, ok := p.expression()
				if !ok || !p.token(")") {
					return nil, false
				}
				return &Parentheses{Inner: inner}, true
			},
			func(*peg.Cut) (Primary, bool) {
				return primaryOf(p.boolean())
			},
			func(*peg.Cut) (Primary, bool) {
				return primaryOf(p.decimal())
			},
			func(*peg.Cut) (Primary, bool) {
				return primaryOf(p.integer())
			},
			func(*peg.Cut) (Primary, bool) {
				return primaryOf(p.namespace())
			},
		)
	})
}

func primaryOf[T Primary](v T, ok bool) (Primary, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}

func (p *Parser) namespace() (*Namespace, bool) {
	return peg.LeftRec(p.Parser, rule{id: ruleNamespace}, func() (*Namespace, bool) {
		return peg.Choice(p.Parser,
			func(cut *peg.Cut) (*Namespace, bool) {
				ns, ok := p.namespace()
				if !ok || !p.token("::") {
					return nil, false
				}
				cut.Commit()
				name, ok := p.name()
				if !ok {
					return nil, false
				}
				return &Namespace{NS: ns, Name: name}, true
			},
			func(*peg.Cut) (*Namespace, bool) {
				name, ok := p.name()
				if !ok {
					return nil, false
				}
				return &Namespace{Name: name}, true
			},
		)
	})
}

func (p *Parser) boolean() (*Boolean, bool) {
	return peg.Memo(p.Parser, rule{id: ruleBoolean}, func() (*Boolean, bool) {
		switch {
		case p.keyword("true"):
			return &Boolean{Value: true}, true
		case p.keyword("false"):
			return &Boolean{Value: false}, true
		}
		return nil, false
	})
}

func (p *Parser) decimal() (*Decimal, bool) {
	return peg.Memo(p.Parser, rule{id: ruleDecimal}, func() (*Decimal, bool) {
		p.spaces()
		whole, ok := p.digits("digit", isDecDigit)
		if !ok {
			return nil, false
		}
		if _, ok := p.Expect("."); !ok {
			return nil, false
		}
		frac, ok := p.digits("digit", isDecDigit)
		if !ok {
			return nil, false
		}
		return &Decimal{Whole: whole, Frac: frac}, true
	})
}

func (p *Parser) integer() (*Integer, bool) {
	prefixed := func(prefix string, base Base, label string, pred func(rune) bool) peg.Alt[*Integer] {
		return func(*peg.Cut) (*Integer, bool) {
			if _, ok := p.Expect(prefix); !ok {
				return nil, false
			}
			digits, ok := p.digits(label, pred)
			if !ok {
				return nil, false
			}
			return &Integer{Base: base, Digits: digits}, true
		}
	}
	return peg.Memo(p.Parser, rule{id: ruleInteger}, func() (*Integer, bool) {
		p.spaces()
		return peg.Choice(p.Parser,
			prefixed("0x", Base16, "hex digit", isHexDigit),
			prefixed("0o", Base8, "octal digit", isOctDigit),
			prefixed("0b", Base2, "binary digit", isBinDigit),
			func(*peg.Cut) (*Integer, bool) {
				digits, ok := p.digits("digit", isDecDigit)
				if !ok {
					return nil, false
				}
				return &Integer{Base: Base10, Digits: digits}, true
			},
		)
	})
}

func (p *Parser) name() (*Name, bool) {
	return peg.Memo(p.Parser, rule{id: ruleName}, func() (*Name, bool) {
		p.spaces()
		start := p.Mark()
		if _, ok := p.ExpectFunc("identifier", isNameStart); !ok {
			return nil, false
		}
		peg.ZeroOrMore(p.Parser, func() (rune, bool) {
			return p.ExpectFunc("identifier", isNamePart)
		})
		text := p.Cursor().Slice(start, p.Mark())
		if reserved[text] {
			return nil, false
		}
		return &Name{Text: text}, true
	})
}

// keyword matches word as a whole word. It is memoized per word.
func (p *Parser) keyword(word string) bool {
	_, ok := peg.Memo(p.Parser, rule{id: ruleKeyword, arg: word}, func() (string, bool) {
		if !p.token(word) || !p.NotAhead(isNamePart) {
			return "", false
		}
		return word, true
	})
	return ok
}

// token skips leading spaces and matches lit. Nothing is consumed on failure.
func (p *Parser) token(lit string) bool {
	start := p.Mark()
	p.spaces()
	if _, ok := p.Expect(lit); !ok {
		p.Reset(start)
		return false
	}
	return true
}

func (p *Parser) spaces() {
	for p.Ahead(isSpace) {
		p.Cursor().Next()
	}
}

func (p *Parser) digits(label string, pred func(rune) bool) (string, bool) {
	ds, ok := peg.OneOrMore(p.Parser, func() (rune, bool) {
		return p.ExpectFunc(label, pred)
	})
	return string(ds), ok
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNamePart(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r)
}

func isDecDigit(r rune) bool { return '0' <= r && r <= '9' }
func isOctDigit(r rune) bool { return '0' <= r && r <= '7' }
func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isHexDigit(r rune) bool {
	return isDecDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// ParseSource is Parse for file contents: trailing whitespace, such as the
// final newline, is not reported as leftover input.
func ParseSource(text string, opts ...peg.Option) (*Expression, error) {
	return Parse(TrimSource(text), opts...)
}

// TrimSource removes trailing whitespace from text.
func TrimSource(text string) string {
	return strings.TrimRightFunc(text, isSpace)
}
