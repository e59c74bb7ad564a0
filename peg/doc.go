// Package peg is a packrat parsing engine for hand-written PEG parsers.
//
// # Overview
//
// A grammar is a set of Go functions, one per rule. Rules are built from a
// small number of primitives:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Cursor    │◀────│  Terminals  │◀────│   Choice    │
//	│ mark/reset  │     │  lookahead  │     │  with cut   │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │    Cache    │◀────│ Memo and    │
//	                    │ write-once  │     │ LeftRec     │
//	                    └─────────────┘     └─────────────┘
//
// Every backtracking step is "mark, try, reset on failure". Terminals
// (Expect, ExpectFunc) and lookaheads (PositiveLookahead, NegativeLookahead)
// follow it internally. Choice tries alternatives in order and resets the
// cursor between them; an alternative may Commit its Cut, after which a
// failure fails the whole rule.
//
// # Memoization
//
// Wrapping a rule body in Memo evaluates it at most once per position:
//
//	func (g *grammar) unary() (*Unary, bool) {
//	    return peg.Memo(g.Parser, tagUnary, func() (*Unary, bool) {
//	        return peg.Choice(g.Parser, g.negate, g.plain)
//	    })
//	}
//
// Rules whose first alternative calls the rule itself use LeftRec instead,
// which resolves direct left recursion by growing a seed until the match
// stops extending to the right. This gives left-associative trees for rules
// such as sum := sum "+" term | term.
//
// The cache refuses a second write to the same (position, rule) key by
// panicking with a *ConflictError. Run recovers that panic at the top of the
// parse and returns it as an error.
//
// # Tracing
//
// WithTrace writes one line per cache hit and insertion:
//
//	start	end	rule => outcome
//
// and a final "cached N results with M hits" summary.
package peg
