// Package ely parses Ely expressions: boolean logic, comparisons, arithmetic,
// calls, member access and namespace-qualified names.
//
// The grammar is written directly against package peg. Rules whose first
// alternative calls themselves (disjunction, conjunction, comparison,
// additive, multiplicity, evaluation, namespace) run under peg.LeftRec and
// produce left-associative trees; the remaining rules are wrapped in
// peg.Memo. Precedence, loosest first:
//
//	or
//	and
//	not
//	> >= < <= == !=
//	+ -
//	* / %
//	unary + -
//	call f(...), member x.y
//	( ... ), true/false, 1.5, 0x1F/0o17/0b1/42, ns::name
//
// A description of the grammar in EBNF is available as EBNF and checked by
// VerifyGrammar. Recognize runs an Earley recognizer over it, which accepts
// the same inputs as Parse.
package ely
