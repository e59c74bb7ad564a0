package peg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type testTag string

func (t testTag) String() string { return string(t) }

type argTag struct {
	rule string
	arg  string
}

func (t argTag) String() string { return t.rule + "(" + t.arg + ")" }

func expectConflict(t *testing.T, fn func()) *ConflictError {
	t.Helper()
	var conflict *ConflictError
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok || !errors.As(err, &conflict) {
				t.Fatalf("unexpected panic: %v", r)
			}
		}()
		fn()
	}()
	if conflict == nil {
		t.Fatal("expected a cache conflict")
	}
	return conflict
}

func TestCacheGetInsert(t *testing.T) {
	c := NewCache(nil)

	if _, _, ok := c.Get(0, testTag("expr")); ok {
		t.Fatal("empty cache reported a hit")
	}
	c.Insert(0, testTag("expr"), 3, Outcome{Value: "abc", OK: true})

	end, out, ok := c.Get(0, testTag("expr"))
	if !ok {
		t.Fatal("expected a hit")
	}
	if end != 3 || !out.OK || out.Value != "abc" {
		t.Errorf("Get() = %d, %v", end, out)
	}
	if _, _, ok := c.Get(1, testTag("expr")); ok {
		t.Error("different position must be a different key")
	}
	if _, _, ok := c.Get(0, testTag("term")); ok {
		t.Error("different rule must be a different key")
	}

	if c.Len() != 1 || c.Hits() != 1 || c.Lookups() != 4 {
		t.Errorf("Len/Hits/Lookups = %d/%d/%d, want 1/1/4", c.Len(), c.Hits(), c.Lookups())
	}
}

func TestCacheArgumentsAreStructural(t *testing.T) {
	c := NewCache(nil)
	c.Insert(0, argTag{"keyword", "true"}, 4, Outcome{Value: "true", OK: true})

	if _, _, ok := c.Get(0, argTag{"keyword", "true"}); !ok {
		t.Error("equal arguments should hit")
	}
	if _, _, ok := c.Get(0, argTag{"keyword", "false"}); ok {
		t.Error("different arguments should miss")
	}
}

func TestCacheConflict(t *testing.T) {
	c := NewCache(nil)
	c.Insert(2, testTag("expr"), 5, Outcome{Value: "x", OK: true})

	conflict := expectConflict(t, func() {
		c.Insert(2, testTag("expr"), 2, Outcome{})
	})
	if conflict.Pos != 2 || conflict.Tag != testTag("expr") {
		t.Errorf("conflict key = %d %v", conflict.Pos, conflict.Tag)
	}
	if conflict.ExistingEnd != 5 || conflict.RejectedEnd != 2 {
		t.Errorf("conflict ends = %d, %d", conflict.ExistingEnd, conflict.RejectedEnd)
	}
	if !strings.Contains(conflict.Error(), "expr") {
		t.Errorf("conflict message does not name the rule: %s", conflict)
	}

	end, out, _ := c.Get(2, testTag("expr"))
	if end != 5 || out.Value != "x" {
		t.Error("a rejected write must not replace the entry")
	}
}

func TestCacheConflictOnIdenticalOutcome(t *testing.T) {
	c := NewCache(nil)
	c.Insert(0, testTag("a"), 1, Outcome{Value: "a", OK: true})
	expectConflict(t, func() {
		c.Insert(0, testTag("a"), 1, Outcome{Value: "a", OK: true})
	})
}

func TestCacheGrowOnlyWhileOwned(t *testing.T) {
	c := NewCache(nil)
	c.seed(0, testTag("sum"))
	c.grow(0, testTag("sum"), 1, Outcome{Value: "1", OK: true})
	c.grow(0, testTag("sum"), 3, Outcome{Value: "1+2", OK: true})

	end, out, _ := c.Get(0, testTag("sum"))
	if end != 3 || out.Value != "1+2" {
		t.Errorf("grown entry = %d %v", end, out)
	}

	c.release(0, testTag("sum"))
	expectConflict(t, func() {
		c.grow(0, testTag("sum"), 5, Outcome{Value: "1+2+3", OK: true})
	})
}

func TestCacheTrace(t *testing.T) {
	var buf bytes.Buffer
	c := NewCache(&buf)
	c.Insert(0, testTag("expr"), 3, Outcome{Value: "abc", OK: true})
	c.Insert(3, testTag("expr"), 3, Outcome{})
	c.Get(0, testTag("expr"))
	c.Get(7, testTag("expr"))

	want := "0\t3\texpr => abc\n" +
		"3\t3\texpr => fail\n" +
		"0\t3\texpr => abc\n"
	if buf.String() != want {
		t.Errorf("trace:\n%q\nwant:\n%q", buf.String(), want)
	}
	if got := c.Summary(); got != "cached 2 results with 1 hits" {
		t.Errorf("Summary() = %q", got)
	}
}
