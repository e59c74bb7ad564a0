package ely

import (
	"strings"
	"testing"
)

// The packrat parser and the Earley recognizer over grammar.ebnf must agree
// on every input.
func TestParserAgreesWithGrammar(t *testing.T) {
	inputs := []string{
		"42",
		"1+2",
		"  1  -  2",
		"1+2*3",
		"(1+2)*3",
		"8%3/2",
		"-+1",
		"- -x",
		"-(1)",
		"1.5",
		"0x1F*0b101+0o17",
		"true",
		"false or x",
		"not a and b",
		"not not a",
		"a<b<c",
		"a<=b",
		"a>=b",
		"a==b!=c",
		"f()",
		"f( )",
		"f()()",
		"a(1,2,3(s))",
		"a.b.c",
		"x.y.z()",
		"a::b.c(d)",
		"std::io::print(1)",
		"1.x",
		"1 . x",
		"trueish",
		"notx",
		"_a1",
		"f(a)",
		"f(a, b.c, 1 + 2)",

		"",
		"   ",
		"not",
		"1 +",
		"(1",
		"f(",
		"f(1,)",
		"a.",
		"a::",
		"x.true",
		"or",
		"true false",
		"0x",
		"0b102",
		"1 2",
		"a< =b",
		"a(1,2,3(s)) extra",
		"1 ",
		"a  ",
		"+1 ",
		"a0 ",
		"f(a)\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, perr := Parse(input)
			rerr := Recognize(input)
			if (perr == nil) != (rerr == nil) {
				t.Errorf("Parse: %v, Recognize: %v", perr, rerr)
			}
		})
	}
}

func TestRecognizeRejectsTrailingSpace(t *testing.T) {
	err := Recognize("1 + 2 ")
	if err == nil || !strings.Contains(err.Error(), "trailing whitespace at 5") {
		t.Errorf("Recognize = %v", err)
	}
	if err := Recognize(TrimSource("1 + 2 \n")); err != nil {
		t.Errorf("trimmed input rejected: %v", err)
	}
}
