package peg

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode"

	"github.com/pkg/errors"
)

// calc is a tiny grammar used to exercise Memo and LeftRec:
//
//	sub := sub "-" num | num
//	num := digit+
type calc struct {
	*Parser
	runs map[string]int
}

func newCalc(input string, opts ...Option) *calc {
	return &calc{Parser: New(input, opts...), runs: make(map[string]int)}
}

func (c *calc) count(rule string) {
	c.runs[fmt.Sprintf("%s@%d", rule, c.Mark())]++
}

func (c *calc) num() (string, bool) {
	return Memo(c.Parser, testTag("num"), func() (string, bool) {
		c.count("num")
		digits, ok := OneOrMore(c.Parser, func() (rune, bool) {
			return c.ExpectFunc("digit", unicode.IsDigit)
		})
		return string(digits), ok
	})
}

func (c *calc) sub() (string, bool) {
	return LeftRec(c.Parser, testTag("sub"), func() (string, bool) {
		c.count("sub")
		return Choice(c.Parser,
			func(*Cut) (string, bool) {
				lhs, ok := c.sub()
				if !ok {
					return "", false
				}
				if _, ok := c.Expect("-"); !ok {
					return "", false
				}
				rhs, ok := c.num()
				if !ok {
					return "", false
				}
				return "(" + lhs + "-" + rhs + ")", true
			},
			func(*Cut) (string, bool) {
				return c.num()
			},
		)
	})
}

func TestLeftRecIsLeftAssociative(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"7", "7"},
		{"5-3", "(5-3)"},
		{"5-3-1", "((5-3)-1)"},
		{"10-20-30-40", "(((10-20)-30)-40)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := newCalc(tt.input)
			got, err := Run(c.Parser, c.sub)
			if err != nil {
				t.Fatalf("Run(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLeftRecStopsAtLongestMatch(t *testing.T) {
	c := newCalc("5-3-")
	got, ok := c.sub()
	if !ok || got != "(5-3)" {
		t.Fatalf("sub() = %q, %v", got, ok)
	}
	if c.Mark() != 3 {
		t.Errorf("position = %d, want 3", c.Mark())
	}

	// the stored result is what later callers see
	c.Reset(0)
	again, _ := c.sub()
	if again != got || c.Mark() != 3 {
		t.Errorf("second call = %q at %d", again, c.Mark())
	}
}

func TestLeftRecFailure(t *testing.T) {
	c := newCalc("-1")
	if _, ok := c.sub(); ok {
		t.Fatal("sub() matched")
	}
	if c.Mark() != 0 {
		t.Errorf("failed rule left the cursor at %d", c.Mark())
	}
	end, out, ok := c.Cache().Get(0, testTag("sub"))
	if !ok || out.OK || end != 0 {
		t.Errorf("cached failure = %d %v %v", end, out, ok)
	}
}

func TestMemoEvaluatesOncePerPosition(t *testing.T) {
	c := newCalc("1-22-333-4444")
	if _, err := Run(c.Parser, c.sub); err != nil {
		t.Fatal(err)
	}

	for key, n := range c.runs {
		if len(key) > 3 && key[:3] == "num" && n != 1 {
			t.Errorf("%s evaluated %d times", key, n)
		}
	}

	cache := c.Cache()
	if cache.Lookups()-cache.Hits() != cache.Len() {
		t.Errorf("lookups %d - hits %d != entries %d", cache.Lookups(), cache.Hits(), cache.Len())
	}
}

func TestLeftRecTieKeepsEarlierResult(t *testing.T) {
	// r := r "" | "a"; the recursive alternative matches but never grows
	p := New("a")
	var r func() (string, bool)
	r = func() (string, bool) {
		return LeftRec(p, testTag("r"), func() (string, bool) {
			return Choice(p,
				func(*Cut) (string, bool) {
					inner, ok := r()
					if !ok {
						return "", false
					}
					p.Expect("")
					return "again(" + inner + ")", true
				},
				lit(p, "a"),
			)
		})
	}

	got, ok := r()
	if !ok || got != "a" {
		t.Fatalf("r() = %q, %v; want \"a\"", got, ok)
	}
}

func TestLeftRecEmptyMatchTerminates(t *testing.T) {
	// e := e "x" | ""
	p := New("xxx")
	var e func() (int, bool)
	e = func() (int, bool) {
		return LeftRec(p, testTag("e"), func() (int, bool) {
			return Choice(p,
				func(*Cut) (int, bool) {
					n, ok := e()
					if !ok {
						return 0, false
					}
					if _, ok := p.Expect("x"); !ok {
						return 0, false
					}
					return n + 1, true
				},
				func(*Cut) (int, bool) { return 0, true },
			)
		})
	}

	n, ok := e()
	if !ok || n != 3 {
		t.Fatalf("e() = %d, %v; want 3", n, ok)
	}
}

func TestMemoConflictFromSharedTag(t *testing.T) {
	// two different rules wired to the same tag, one calling the other at
	// the same position
	p := New("ab")
	inner := func() (string, bool) {
		return Memo(p, testTag("shared"), func() (string, bool) { return p.Expect("a") })
	}
	outer := func() (string, bool) {
		return Memo(p, testTag("shared"), func() (string, bool) {
			a, ok := inner()
			if !ok {
				return "", false
			}
			b, ok := p.Expect("b")
			return a + b, ok
		})
	}

	got, err := Run(p, outer)
	if err == nil {
		t.Fatalf("expected a conflict error, got %q", got)
	}
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error is not a conflict: %v", err)
	}
	if conflict.Pos != 0 || conflict.ExistingEnd != 1 || conflict.RejectedEnd != 2 {
		t.Errorf("conflict = %v", conflict)
	}
}

func TestConflictStillWritesSummary(t *testing.T) {
	var buf bytes.Buffer
	p := New("ab", WithTrace(&buf))
	inner := func() (string, bool) {
		return Memo(p, testTag("shared"), func() (string, bool) { return p.Expect("a") })
	}
	outer := func() (string, bool) {
		return Memo(p, testTag("shared"), func() (string, bool) {
			a, ok := inner()
			if !ok {
				return "", false
			}
			b, ok := p.Expect("b")
			return a + b, ok
		})
	}

	if _, err := Run(p, outer); err == nil {
		t.Fatal("expected a conflict error")
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if last := lines[len(lines)-1]; last != p.Cache().Summary() {
		t.Errorf("last trace line = %q, want %q", last, p.Cache().Summary())
	}
}
