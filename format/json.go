package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/packrat/ely"
)

// JSONEncoder writes the tree as nested {"kind","op","text","children"}
// objects. Precedence levels that only pass their single operand through
// are collapsed.
type JSONEncoder struct {
	w    io.Writer
	expr *ely.Expression
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(expr *ely.Expression) error {
	e.expr = expr
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.expr), "", "  ")
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Op       string      `json:"op,omitempty"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func nodeToJSON(n ely.Node) *jsonNode {
	for passThrough(n) {
		n = n.Children()[0]
	}

	jn := &jsonNode{
		Kind: n.Kind().String(),
		Op:   ely.Operator(n),
	}

	children := n.Children()
	if len(children) == 0 {
		jn.Text = n.String()
		return jn
	}

	jn.Children = make([]*jsonNode, len(children))
	for i, child := range children {
		jn.Children[i] = nodeToJSON(child)
	}
	return jn
}

func passThrough(n ely.Node) bool {
	switch n.Kind() {
	case ely.KindDisjunction, ely.KindConjunction, ely.KindInversion,
		ely.KindComparison, ely.KindAdditive, ely.KindMultiplicity,
		ely.KindUnary, ely.KindNamespace:
		return ely.Operator(n) == ""
	}
	return false
}
