package peg

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// RuleTag identifies a memoizable rule, optionally together with the
// arguments it was invoked with. Tags are used as map keys, so the dynamic
// type must be comparable; two tags are the same rule invocation iff they are
// == to each other.
type RuleTag interface {
	String() string
}

// Outcome is the result of one rule attempt. Value is shared, never copied,
// between every call site the cache serves it to.
type Outcome struct {
	Value any
	OK    bool
}

func (o Outcome) String() string {
	if !o.OK {
		return "fail"
	}
	return fmt.Sprint(o.Value)
}

type cacheKey struct {
	pos Position
	tag RuleTag
}

type cacheEntry struct {
	end     Position
	outcome Outcome
}

// Cache maps (position, rule) to the position where the attempt ended and its
// outcome. Entries are write-once: Insert on an existing key panics with a
// *ConflictError. The left-recursion resolver is the only writer allowed to
// overwrite, and only for a key it seeded and has not yet released.
type Cache struct {
	entries map[cacheKey]cacheEntry
	owned   map[cacheKey]bool
	trace   io.Writer
	hits    int
	lookups int
}

// NewCache returns an empty cache. When trace is non-nil every hit and every
// insertion is written to it as "start\tend\ttag => outcome".
func NewCache(trace io.Writer) *Cache {
	return &Cache{
		entries: make(map[cacheKey]cacheEntry),
		owned:   make(map[cacheKey]bool),
		trace:   trace,
	}
}

func (c *Cache) Get(pos Position, tag RuleTag) (Position, Outcome, bool) {
	c.lookups++
	e, ok := c.entries[cacheKey{pos, tag}]
	if !ok {
		return 0, Outcome{}, false
	}
	c.hits++
	c.tracef(pos, tag, e)
	return e.end, e.outcome, true
}

func (c *Cache) Insert(pos Position, tag RuleTag, end Position, outcome Outcome) {
	key := cacheKey{pos, tag}
	e := cacheEntry{end: end, outcome: outcome}
	c.tracef(pos, tag, e)
	if old, ok := c.entries[key]; ok {
		panic(errors.WithStack(&ConflictError{
			Pos:         pos,
			Tag:         tag,
			ExistingEnd: old.end,
			Existing:    old.outcome,
			RejectedEnd: end,
			Rejected:    outcome,
		}))
	}
	c.entries[key] = e
}

// seed inserts the initial failing entry for a left-recursive rule and
// records the key as owned by the resolver.
func (c *Cache) seed(pos Position, tag RuleTag) {
	c.Insert(pos, tag, pos, Outcome{})
	c.owned[cacheKey{pos, tag}] = true
}

// grow overwrites an entry the resolver owns.
func (c *Cache) grow(pos Position, tag RuleTag, end Position, outcome Outcome) {
	key := cacheKey{pos, tag}
	if !c.owned[key] {
		c.Insert(pos, tag, end, outcome)
		return
	}
	e := cacheEntry{end: end, outcome: outcome}
	c.tracef(pos, tag, e)
	c.entries[key] = e
}

// release freezes a resolver-owned entry.
func (c *Cache) release(pos Position, tag RuleTag) {
	delete(c.owned, cacheKey{pos, tag})
}

// Len returns the number of distinct (position, rule) entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) Hits() int {
	return c.hits
}

func (c *Cache) Lookups() int {
	return c.lookups
}

// Summary reports cache effectiveness in the trace format.
func (c *Cache) Summary() string {
	return fmt.Sprintf("cached %d results with %d hits", len(c.entries), c.hits)
}

func (c *Cache) tracef(pos Position, tag RuleTag, e cacheEntry) {
	if c.trace == nil {
		return
	}
	fmt.Fprintf(c.trace, "%d\t%d\t%s => %s\n", pos, e.end, tag, e.outcome)
}

// ConflictError reports a second write to a memoized (position, rule) key.
// It always indicates broken rule wiring: a rule body ran without consulting
// the cache first, or two distinct rules share a tag.
type ConflictError struct {
	Pos         Position
	Tag         RuleTag
	ExistingEnd Position
	Existing    Outcome
	RejectedEnd Position
	Rejected    Outcome
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cache conflicted at %d for %s: have %d => %s, refusing %d => %s",
		e.Pos, e.Tag, e.ExistingEnd, e.Existing, e.RejectedEnd, e.Rejected)
}
