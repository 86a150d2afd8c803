package parser

import "encoding/json"

type jsonNode struct {
	Kind string    `json:"kind"`
	Name string    `json:"name"`
	Args []string  `json:"args"`
	Body *jsonExpr `json:"body,omitempty"`
	Span *jsonSpan `json:"span,omitempty"`
}

type jsonExpr struct {
	Kind    string      `json:"kind"`
	Value   any         `json:"value,omitempty"`
	Name    string      `json:"name,omitempty"`
	Op      string      `json:"op,omitempty"`
	Operand *jsonExpr   `json:"operand,omitempty"`
	LHS     *jsonExpr   `json:"lhs,omitempty"`
	RHS     *jsonExpr   `json:"rhs,omitempty"`
	Args    []*jsonExpr `json:"args,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *ExternNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(NodeToJSON(n))
}

func (n *FunctionNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(NodeToJSON(n))
}

// NodeToJSON returns the value n is encoded as. It is exposed for encoders
// that need to control indentation.
func NodeToJSON(n Node) any {
	proto := n.Signature()
	jn := &jsonNode{
		Name: proto.Name,
		Args: proto.Args,
		Span: spanToJSON(n.Extent()),
	}
	if jn.Args == nil {
		jn.Args = []string{}
	}
	switch n := n.(type) {
	case *ExternNode:
		jn.Kind = "Extern"
	case *FunctionNode:
		jn.Kind = "Function"
		jn.Body = exprToJSON(n.Function.Body)
	}
	return jn
}

func spanToJSON(s Span) *jsonSpan {
	if s.Start.Line == 0 && s.End.Line == 0 {
		return nil
	}
	return &jsonSpan{
		Start: jsonPosition{Line: s.Start.Line, Column: s.Start.Column},
		End:   jsonPosition{Line: s.End.Line, Column: s.End.Column},
	}
}

func exprToJSON(e Expr) *jsonExpr {
	switch e := e.(type) {
	case *NumberExpr:
		return &jsonExpr{Kind: "Number", Value: e.Value}
	case *StringExpr:
		return &jsonExpr{Kind: "String", Value: e.Value}
	case *VariableExpr:
		return &jsonExpr{Kind: "Variable", Name: e.Name}
	case *UnaryExpr:
		return &jsonExpr{Kind: "Unary", Op: e.Op, Operand: exprToJSON(e.Operand)}
	case *BinaryExpr:
		return &jsonExpr{Kind: "Binary", Op: e.Op, LHS: exprToJSON(e.LHS), RHS: exprToJSON(e.RHS)}
	case *CallExpr:
		je := &jsonExpr{Kind: "Call", Name: e.Callee}
		for _, arg := range e.Args {
			je.Args = append(je.Args, exprToJSON(arg))
		}
		return je
	}
	return nil
}
