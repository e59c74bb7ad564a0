package ely

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindDisjunction Kind = iota
	KindConjunction
	KindInversion
	KindComparison
	KindAdditive
	KindMultiplicity
	KindUnary
	KindCall
	KindMember
	KindParentheses
	KindNamespace
	KindInteger
	KindDecimal
	KindBoolean
	KindName
)

var kindNames = map[Kind]string{
	KindDisjunction:  "Disjunction",
	KindConjunction:  "Conjunction",
	KindInversion:    "Inversion",
	KindComparison:   "Comparison",
	KindAdditive:     "Additive",
	KindMultiplicity: "Multiplicity",
	KindUnary:        "Unary",
	KindCall:         "Call",
	KindMember:       "Member",
	KindParentheses:  "Parentheses",
	KindNamespace:    "Namespace",
	KindInteger:      "Integer",
	KindDecimal:      "Decimal",
	KindBoolean:      "Boolean",
	KindName:         "Name",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by every syntax tree type. String renders the node
// back to source text.
type Node interface {
	fmt.Stringer
	Kind() Kind
	Children() []Node
}

// Expression is the top of the precedence tower.
type Expression = Disjunction

// Disjunction is "LHS or RHS", or just RHS when LHS is nil.
type Disjunction struct {
	LHS *Disjunction
	RHS *Conjunction
}

// Conjunction is "LHS and RHS", or just RHS when LHS is nil.
type Conjunction struct {
	LHS *Conjunction
	RHS *Inversion
}

// Inversion is "not Inner", or a plain Comparison when Inner is nil.
type Inversion struct {
	Inner      *Inversion
	Comparison *Comparison
}

type CompOp int

const (
	CompGt CompOp = iota
	CompGe
	CompLt
	CompLe
	CompEq
	CompNe
)

var compOps = [...]string{">", ">=", "<", "<=", "==", "!="}

func (op CompOp) String() string { return compOps[op] }

// Comparison is "LHS Op RHS", or just RHS when LHS is nil.
type Comparison struct {
	LHS *Comparison
	Op  CompOp
	RHS *Additive
}

type AddOp int

const (
	AddAdd AddOp = iota
	AddSub
)

func (op AddOp) String() string {
	if op == AddSub {
		return "-"
	}
	return "+"
}

type Additive struct {
	LHS *Additive
	Op  AddOp
	RHS *Multiplicity
}

type MulOp int

const (
	MulMul MulOp = iota
	MulDiv
	MulMod
)

var mulOps = [...]string{"*", "/", "%"}

func (op MulOp) String() string { return mulOps[op] }

type Multiplicity struct {
	LHS *Multiplicity
	Op  MulOp
	RHS *Unary
}

type UnaOp int

const (
	UnaPos UnaOp = iota
	UnaNeg
)

func (op UnaOp) String() string {
	if op == UnaNeg {
		return "-"
	}
	return "+"
}

// Unary is "Op Inner", or a plain Evaluation when Inner is nil.
type Unary struct {
	Op         UnaOp
	Inner      *Unary
	Evaluation Evaluation
}

// Evaluation is a call, a member access, or a Primary.
type Evaluation interface {
	Node
	evaluation()
}

type Call struct {
	Callee Evaluation
	Args   []*Expression
}

type Member struct {
	Object Evaluation
	Name   *Name
}

// Primary is one of Parentheses, Boolean, Decimal, Integer or Namespace.
type Primary interface {
	Evaluation
	primary()
}

type Parentheses struct {
	Inner *Expression
}

// Namespace is "NS::Name", or a plain Name when NS is nil.
type Namespace struct {
	NS   *Namespace
	Name *Name
}

type Base int

const (
	Base10 Base = iota
	Base16
	Base8
	Base2
)

var basePrefixes = [...]string{"", "0x", "0o", "0b"}

func (b Base) Prefix() string { return basePrefixes[b] }

// Integer keeps the digits as written, without the base prefix.
type Integer struct {
	Base   Base
	Digits string
}

type Decimal struct {
	Whole string
	Frac  string
}

type Boolean struct {
	Value bool
}

type Name struct {
	Text string
}

func (*Call) evaluation()        {}
func (*Member) evaluation()      {}
func (*Parentheses) evaluation() {}
func (*Namespace) evaluation()   {}
func (*Integer) evaluation()     {}
func (*Decimal) evaluation()     {}
func (*Boolean) evaluation()     {}

func (*Parentheses) primary() {}
func (*Namespace) primary()   {}
func (*Integer) primary()     {}
func (*Decimal) primary()     {}
func (*Boolean) primary()     {}

func (*Disjunction) Kind() Kind  { return KindDisjunction }
func (*Conjunction) Kind() Kind  { return KindConjunction }
func (*Inversion) Kind() Kind    { return KindInversion }
func (*Comparison) Kind() Kind   { return KindComparison }
func (*Additive) Kind() Kind     { return KindAdditive }
func (*Multiplicity) Kind() Kind { return KindMultiplicity }
func (*Unary) Kind() Kind        { return KindUnary }
func (*Call) Kind() Kind         { return KindCall }
func (*Member) Kind() Kind       { return KindMember }
func (*Parentheses) Kind() Kind  { return KindParentheses }
func (*Namespace) Kind() Kind    { return KindNamespace }
func (*Integer) Kind() Kind      { return KindInteger }
func (*Decimal) Kind() Kind      { return KindDecimal }
func (*Boolean) Kind() Kind      { return KindBoolean }
func (*Name) Kind() Kind         { return KindName }

func (n *Disjunction) Children() []Node {
	if n.LHS == nil {
		return []Node{n.RHS}
	}
	return []Node{n.LHS, n.RHS}
}

func (n *Conjunction) Children() []Node {
	if n.LHS == nil {
		return []Node{n.RHS}
	}
	return []Node{n.LHS, n.RHS}
}

func (n *Inversion) Children() []Node {
	if n.Inner != nil {
		return []Node{n.Inner}
	}
	return []Node{n.Comparison}
}

func (n *Comparison) Children() []Node {
	if n.LHS == nil {
		return []Node{n.RHS}
	}
	return []Node{n.LHS, n.RHS}
}

func (n *Additive) Children() []Node {
	if n.LHS == nil {
		return []Node{n.RHS}
	}
	return []Node{n.LHS, n.RHS}
}

func (n *Multiplicity) Children() []Node {
	if n.LHS == nil {
		return []Node{n.RHS}
	}
	return []Node{n.LHS, n.RHS}
}

func (n *Unary) Children() []Node {
	if n.Inner != nil {
		return []Node{n.Inner}
	}
	return []Node{n.Evaluation}
}

func (n *Call) Children() []Node {
	children := []Node{n.Callee}
	for _, arg := range n.Args {
		children = append(children, arg)
	}
	return children
}

func (n *Member) Children() []Node      { return []Node{n.Object, n.Name} }
func (n *Parentheses) Children() []Node { return []Node{n.Inner} }

func (n *Namespace) Children() []Node {
	if n.NS == nil {
		return []Node{n.Name}
	}
	return []Node{n.NS, n.Name}
}

func (*Integer) Children() []Node { return nil }
func (*Decimal) Children() []Node { return nil }
func (*Boolean) Children() []Node { return nil }
func (*Name) Children() []Node    { return nil }

// Operator returns the operator of a binary or prefix node, or "" for the
// pass-through form.
func Operator(n Node) string {
	switch n := n.(type) {
	case *Disjunction:
		if n.LHS != nil {
			return "or"
		}
	case *Conjunction:
		if n.LHS != nil {
			return "and"
		}
	case *Inversion:
		if n.Inner != nil {
			return "not"
		}
	case *Comparison:
		if n.LHS != nil {
			return n.Op.String()
		}
	case *Additive:
		if n.LHS != nil {
			return n.Op.String()
		}
	case *Multiplicity:
		if n.LHS != nil {
			return n.Op.String()
		}
	case *Unary:
		if n.Inner != nil {
			return n.Op.String()
		}
	case *Member:
		return "."
	case *Namespace:
		if n.NS != nil {
			return "::"
		}
	}
	return ""
}

func (n *Disjunction) String() string {
	if n.LHS == nil {
		return n.RHS.String()
	}
	return n.LHS.String() + " or " + n.RHS.String()
}

func (n *Conjunction) String() string {
	if n.LHS == nil {
		return n.RHS.String()
	}
	return n.LHS.String() + " and " + n.RHS.String()
}

func (n *Inversion) String() string {
	if n.Inner != nil {
		return "not " + n.Inner.String()
	}
	return n.Comparison.String()
}

func (n *Comparison) String() string {
	if n.LHS == nil {
		return n.RHS.String()
	}
	return n.LHS.String() + " " + n.Op.String() + " " + n.RHS.String()
}

func (n *Additive) String() string {
	if n.LHS == nil {
		return n.RHS.String()
	}
	return n.LHS.String() + " " + n.Op.String() + " " + n.RHS.String()
}

func (n *Multiplicity) String() string {
	if n.LHS == nil {
		return n.RHS.String()
	}
	return n.LHS.String() + " " + n.Op.String() + " " + n.RHS.String()
}

func (n *Unary) String() string {
	if n.Inner != nil {
		return n.Op.String() + n.Inner.String()
	}
	return n.Evaluation.String()
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func (n *Member) String() string {
	return n.Object.String() + "." + n.Name.String()
}

func (n *Parentheses) String() string {
	return "(" + n.Inner.String() + ")"
}

func (n *Namespace) String() string {
	if n.NS == nil {
		return n.Name.String()
	}
	return n.NS.String() + "::" + n.Name.String()
}

func (n *Integer) String() string { return n.Base.Prefix() + n.Digits }

func (n *Decimal) String() string { return n.Whole + "." + n.Frac }

func (n *Boolean) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

func (n *Name) String() string { return n.Text }
