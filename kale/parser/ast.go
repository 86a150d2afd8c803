package parser

import (
	"strconv"
	"strings"
)

// Prototype is a function signature, shared by def and extern.
type Prototype struct {
	Name string
	Args []string
}

func (p Prototype) String() string {
	return p.Name + "(" + strings.Join(p.Args, ", ") + ")"
}

type Function struct {
	Prototype Prototype
	Body      Expr
}

// IsAnonymous reports whether f wraps a bare top-level expression.
func (f Function) IsAnonymous() bool {
	return f.Prototype.Name == ""
}

// Node is a top-level declaration: *ExternNode or *FunctionNode.
type Node interface {
	Signature() Prototype
	Extent() Span
	String() string
	node()
}

type ExternNode struct {
	Prototype Prototype
	Span      Span
}

type FunctionNode struct {
	Function Function
	Span     Span
}

func (n *ExternNode) Signature() Prototype   { return n.Prototype }
func (n *FunctionNode) Signature() Prototype { return n.Function.Prototype }
func (n *ExternNode) Extent() Span           { return n.Span }
func (n *FunctionNode) Extent() Span         { return n.Span }
func (*ExternNode) node()                    {}
func (*FunctionNode) node()                  {}

func (n *ExternNode) String() string {
	return "(extern " + n.Prototype.Name + " " + argList(n.Prototype.Args) + ")"
}

// String renders a named function as (def name (args) body) and an
// anonymous one as its body alone.
func (n *FunctionNode) String() string {
	if n.Function.IsAnonymous() {
		return n.Function.Body.String()
	}
	p := n.Function.Prototype
	return "(def " + p.Name + " " + argList(p.Args) + " " + n.Function.Body.String() + ")"
}

func argList(args []string) string {
	return "(" + strings.Join(args, " ") + ")"
}

// Expr is an expression: *NumberExpr, *StringExpr, *VariableExpr,
// *UnaryExpr, *BinaryExpr or *CallExpr. String renders it as an
// S-expression.
type Expr interface {
	String() string
	expr()
}

type NumberExpr struct {
	Value float64
}

type StringExpr struct {
	Value string
}

type VariableExpr struct {
	Name string
}

type UnaryExpr struct {
	Op      string
	Operand Expr
}

type BinaryExpr struct {
	Op  string
	LHS Expr
	RHS Expr
}

type CallExpr struct {
	Callee string
	Args   []Expr
}

func (*NumberExpr) expr()   {}
func (*StringExpr) expr()   {}
func (*VariableExpr) expr() {}
func (*UnaryExpr) expr()    {}
func (*BinaryExpr) expr()   {}
func (*CallExpr) expr()     {}

func (e *NumberExpr) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

func (e *StringExpr) String() string {
	return `"` + e.Value + `"`
}

func (e *VariableExpr) String() string {
	return e.Name
}

func (e *UnaryExpr) String() string {
	return "(" + e.Op + " " + e.Operand.String() + ")"
}

func (e *BinaryExpr) String() string {
	return "(" + e.Op + " " + e.LHS.String() + " " + e.RHS.String() + ")"
}

func (e *CallExpr) String() string {
	var sb strings.Builder
	sb.WriteString("(call ")
	sb.WriteString(e.Callee)
	for _, arg := range e.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
