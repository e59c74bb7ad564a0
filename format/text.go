package format

import (
	"io"
	"strings"

	"github.com/dhamidi/packrat/ely"
)

// TextEncoder writes expressions in canonical source form, one per line.
type TextEncoder struct {
	w    io.Writer
	expr *ely.Expression
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(expr *ely.Expression) error {
	e.expr = expr
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	return []byte(e.expr.String() + "\n"), nil
}

// GroupedEncoder is TextEncoder with every operator application wrapped in
// parentheses, which makes associativity and precedence visible.
type GroupedEncoder struct {
	w    io.Writer
	expr *ely.Expression
}

func NewGroupedEncoder(w io.Writer) *GroupedEncoder {
	return &GroupedEncoder{w: w}
}

func (e *GroupedEncoder) Encode(expr *ely.Expression) error {
	e.expr = expr
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *GroupedEncoder) MarshalText() ([]byte, error) {
	return []byte(Grouped(e.expr) + "\n"), nil
}

// Grouped renders n with explicit parentheses around every binary and
// prefix operation. Source parentheses are dropped since the grouping
// already shows them.
func Grouped(n ely.Node) string {
	var sb strings.Builder
	writeGrouped(&sb, n)
	return sb.String()
}

func writeGrouped(sb *strings.Builder, n ely.Node) {
	switch n := n.(type) {
	case *ely.Disjunction:
		if n.LHS != nil {
			binary(sb, n.LHS, "or", n.RHS)
			return
		}
		writeGrouped(sb, n.RHS)
	case *ely.Conjunction:
		if n.LHS != nil {
			binary(sb, n.LHS, "and", n.RHS)
			return
		}
		writeGrouped(sb, n.RHS)
	case *ely.Inversion:
		if n.Inner != nil {
			sb.WriteString("(not ")
			writeGrouped(sb, n.Inner)
			sb.WriteString(")")
			return
		}
		writeGrouped(sb, n.Comparison)
	case *ely.Comparison:
		if n.LHS != nil {
			binary(sb, n.LHS, n.Op.String(), n.RHS)
			return
		}
		writeGrouped(sb, n.RHS)
	case *ely.Additive:
		if n.LHS != nil {
			binary(sb, n.LHS, n.Op.String(), n.RHS)
			return
		}
		writeGrouped(sb, n.RHS)
	case *ely.Multiplicity:
		if n.LHS != nil {
			binary(sb, n.LHS, n.Op.String(), n.RHS)
			return
		}
		writeGrouped(sb, n.RHS)
	case *ely.Unary:
		if n.Inner != nil {
			sb.WriteString("(" + n.Op.String())
			writeGrouped(sb, n.Inner)
			sb.WriteString(")")
			return
		}
		writeGrouped(sb, n.Evaluation)
	case *ely.Call:
		writeGrouped(sb, n.Callee)
		sb.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeGrouped(sb, arg)
		}
		sb.WriteString(")")
	case *ely.Member:
		writeGrouped(sb, n.Object)
		sb.WriteString("." + n.Name.Text)
	case *ely.Parentheses:
		writeGrouped(sb, n.Inner)
	default:
		sb.WriteString(n.String())
	}
}

func binary(sb *strings.Builder, lhs ely.Node, op string, rhs ely.Node) {
	sb.WriteString("(")
	writeGrouped(sb, lhs)
	sb.WriteString(" " + op + " ")
	writeGrouped(sb, rhs)
	sb.WriteString(")")
}
