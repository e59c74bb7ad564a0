package ely

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/packrat/ebnf/parse"
	"golang.org/x/exp/ebnf"
)

// EBNF describes the grammar implemented by Parser. Lower-case productions
// are lexical.
//
//go:embed grammar.ebnf
var EBNF string

// Start is the start production of EBNF.
const Start = "Program"

// Grammar parses EBNF.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(EBNF))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// VerifyGrammar checks that every production in EBNF is defined, reachable
// from Start, and that lexical productions only refer to lexical ones.
func VerifyGrammar() error {
	g, err := Grammar()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Recognize checks text against EBNF with an Earley recognizer, independent
// of Parser. The EBNF spells letters as ASCII ranges, so names outside ASCII
// are only accepted by Parser. Like Parse, Recognize rejects trailing
// whitespace; use TrimSource for file contents.
func Recognize(text string) error {
	g, err := Grammar()
	if err != nil {
		return err
	}
	if err := parse.Recognize(g, Start, text, "ely"); err != nil {
		return err
	}
	if trimmed := TrimSource(text); trimmed != text {
		return fmt.Errorf("ely: unexpected trailing whitespace at %d", utf8.RuneCountInString(trimmed))
	}
	return nil
}
