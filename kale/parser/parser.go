package parser

import "errors"

// Parser reads declarations from a TokenBuffer. A construct that runs out of
// tokens is reported with errIncomplete and the caller rewinds the buffer;
// every other failure is a *SyntaxError.
type Parser struct {
	buf      *TokenBuffer
	settings *Settings
	last     Token
}

func NewParser(buf *TokenBuffer, settings *Settings) *Parser {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Parser{buf: buf, settings: settings}
}

// Parse appends the declarations found in tokens to a copy of parsed and
// returns it together with the tokens that did not form a complete
// declaration yet. Leftover tokens are meant to be passed back in, followed
// by more input, on the next call. On a syntax error nothing from this call
// is kept and parsed is returned to the caller untouched.
func Parse(tokens []Token, parsed []Node, settings *Settings) ([]Node, []Token, error) {
	p := NewParser(NewTokenBuffer(tokens), settings)

	ast := make([]Node, len(parsed))
	copy(ast, parsed)

	nodes, err := p.ParseAll()
	if err != nil {
		return nil, nil, err
	}
	return append(ast, nodes...), p.buf.Remaining(), nil
}

// ParseAll parses declarations until the buffer is exhausted or a
// declaration is cut short. The tokens of an unfinished declaration stay in
// the buffer.
func (p *Parser) ParseAll() ([]Node, error) {
	var nodes []Node
	for {
		tok, ok := p.buf.Peek()
		if !ok {
			return nodes, nil
		}
		if tok.Kind == TokenDelimiter {
			p.next()
			continue
		}

		mark := p.buf.Mark()
		node, err := p.parseTopLevel(tok)
		if errors.Is(err, errIncomplete) {
			p.buf.Rewind(mark)
			return nodes, nil
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) parseTopLevel(tok Token) (Node, error) {
	switch tok.Kind {
	case TokenDef:
		return p.parseFunction()
	case TokenExtern:
		return p.parseExtern()
	}
	return p.parseTopLevelExpr()
}

func (p *Parser) next() (Token, bool) {
	tok, ok := p.buf.Next()
	if ok {
		p.last = tok
	}
	return tok, ok
}

func (p *Parser) expect(kind TokenKind, msg string) (Token, error) {
	tok, ok := p.next()
	if !ok {
		return Token{}, errIncomplete
	}
	if tok.Kind != kind {
		return Token{}, syntaxError(msg, tok)
	}
	return tok, nil
}

func (p *Parser) spanFrom(start Token) Span {
	return Span{Start: start.Span.Start, End: p.last.Span.End}
}

func (p *Parser) parseExtern() (Node, error) {
	start, _ := p.next()
	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}
	return &ExternNode{Prototype: proto, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseFunction() (Node, error) {
	start, _ := p.next()
	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &FunctionNode{
		Function: Function{Prototype: proto, Body: body},
		Span:     p.spanFrom(start),
	}, nil
}

func (p *Parser) parseTopLevelExpr() (Node, error) {
	start, _ := p.buf.Peek()
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &FunctionNode{
		Function: Function{
			Prototype: Prototype{Name: "", Args: []string{}},
			Body:      body,
		},
		Span: p.spanFrom(start),
	}, nil
}

// parsePrototype parses name(arg, ...). Commas are separators only; the
// argument list ends at the first ')'.
func (p *Parser) parsePrototype() (Prototype, error) {
	name, err := p.expect(TokenIdent, "expected function name")
	if err != nil {
		return Prototype{}, err
	}
	if _, err := p.expect(TokenLParen, "expected '('"); err != nil {
		return Prototype{}, err
	}

	args := []string{}
	for {
		tok, ok := p.next()
		if !ok {
			return Prototype{}, errIncomplete
		}
		switch tok.Kind {
		case TokenIdent:
			args = append(args, tok.Literal)
		case TokenComma:
		case TokenRParen:
			return Prototype{Name: name.Literal, Args: args}, nil
		default:
			return Prototype{}, syntaxError("expected ')'", tok)
		}
	}
}
