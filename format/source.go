package format

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/kale/kale/parser"
)

// SourcePrinter writes declarations back as kale source. Parentheses are
// inserted only where the precedence table needs them, so parsing the
// output with the same settings yields the same tree.
type SourcePrinter struct {
	w        io.Writer
	settings *parser.Settings
	buf      bytes.Buffer
}

func NewSourcePrinter(w io.Writer, settings *parser.Settings) *SourcePrinter {
	if settings == nil {
		settings = parser.DefaultSettings()
	}
	return &SourcePrinter{w: w, settings: settings}
}

func (p *SourcePrinter) Encode(nodes []parser.Node) error {
	text, err := p.MarshalText(nodes)
	return write(p.w, text, err)
}

// MarshalText prints one declaration per line, each terminated by ';'. The
// delimiter keeps a following parenthesised expression from being read as
// a call.
func (p *SourcePrinter) MarshalText(nodes []parser.Node) ([]byte, error) {
	p.buf.Reset()
	for _, n := range nodes {
		p.printNode(n)
		p.buf.WriteString(";\n")
	}
	return bytes.Clone(p.buf.Bytes()), nil
}

// Expr renders a single expression.
func (p *SourcePrinter) Expr(e parser.Expr) string {
	p.buf.Reset()
	p.printExpr(e)
	return p.buf.String()
}

func (p *SourcePrinter) printNode(n parser.Node) {
	switch n := n.(type) {
	case *parser.ExternNode:
		p.buf.WriteString("extern ")
		p.printPrototype(n.Prototype)
	case *parser.FunctionNode:
		if !n.Function.IsAnonymous() {
			p.buf.WriteString("def ")
			p.printPrototype(n.Function.Prototype)
			p.buf.WriteByte(' ')
		}
		p.printExpr(n.Function.Body)
	}
}

func (p *SourcePrinter) printPrototype(proto parser.Prototype) {
	p.buf.WriteString(proto.Name)
	p.buf.WriteByte('(')
	p.buf.WriteString(strings.Join(proto.Args, ", "))
	p.buf.WriteByte(')')
}

func (p *SourcePrinter) printExpr(e parser.Expr) {
	switch e := e.(type) {
	case *parser.NumberExpr:
		p.buf.WriteString(formatNumber(e.Value))
	case *parser.StringExpr:
		p.buf.WriteByte('"')
		p.buf.WriteString(e.Value)
		p.buf.WriteByte('"')
	case *parser.VariableExpr:
		p.buf.WriteString(e.Name)
	case *parser.CallExpr:
		p.printCall(e)
	case *parser.UnaryExpr:
		p.printUnary(e)
	case *parser.BinaryExpr:
		p.printBinary(e)
	}
}

func (p *SourcePrinter) printCall(e *parser.CallExpr) {
	p.buf.WriteString(e.Callee)
	p.buf.WriteByte('(')
	for i, arg := range e.Args {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.printExpr(arg)
	}
	p.buf.WriteByte(')')
}

// printUnary parenthesises any operand that is not a primary. A prefix
// operator only takes a primary, so -(-x) cannot lose its parentheses.
func (p *SourcePrinter) printUnary(e *parser.UnaryExpr) {
	p.buf.WriteString(e.Op)
	switch e.Operand.(type) {
	case *parser.UnaryExpr, *parser.BinaryExpr:
		p.printParen(e.Operand)
	default:
		p.printExpr(e.Operand)
	}
}

// printBinary parenthesises a left operand that binds more loosely and a
// right operand that does not bind strictly tighter, since equal
// precedence associates to the left.
func (p *SourcePrinter) printBinary(e *parser.BinaryExpr) {
	prec := p.precedence(e.Op)

	if lhs, ok := e.LHS.(*parser.BinaryExpr); ok && p.precedence(lhs.Op) < prec {
		p.printParen(lhs)
	} else {
		p.printExpr(e.LHS)
	}

	p.buf.WriteByte(' ')
	p.buf.WriteString(e.Op)
	p.buf.WriteByte(' ')

	if rhs, ok := e.RHS.(*parser.BinaryExpr); ok && p.precedence(rhs.Op) <= prec {
		p.printParen(rhs)
	} else {
		p.printExpr(e.RHS)
	}
}

func (p *SourcePrinter) printParen(e parser.Expr) {
	p.buf.WriteByte('(')
	p.printExpr(e)
	p.buf.WriteByte(')')
}

// precedence treats operators missing from the table as binding loosest
// so they always end up parenthesised.
func (p *SourcePrinter) precedence(op string) int {
	if prec, ok := p.settings.Lookup(op); ok {
		return prec
	}
	return -1
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
