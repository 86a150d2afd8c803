package parser

func (p *Parser) parseExpression() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryRHS(0, lhs)
}

// parseBinaryRHS extends lhs with operators binding at least as tightly as
// minPrec. An operator of higher precedence than the one just consumed pulls
// the right operand into a recursive call; equal precedence folds to the
// left.
func (p *Parser) parseBinaryRHS(minPrec int, lhs Expr) (Expr, error) {
	for {
		op, ok := p.buf.Peek()
		if !ok || op.Kind != TokenOperator {
			return lhs, nil
		}
		prec, known := p.settings.Lookup(op.Literal)
		if !known {
			return nil, syntaxError("unknown operator found", op)
		}
		if prec < minPrec {
			return lhs, nil
		}
		p.next()

		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		for {
			next, ok := p.buf.Peek()
			if !ok || next.Kind != TokenOperator {
				break
			}
			nextPrec, known := p.settings.Lookup(next.Literal)
			if !known {
				return nil, syntaxError("unknown operator found", next)
			}
			if nextPrec <= prec {
				break
			}
			rhs, err = p.parseBinaryRHS(nextPrec, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{Op: op.Literal, LHS: lhs, RHS: rhs}
	}
}

// parseUnary handles a prefix operator. It needs no precedence entry, binds
// tighter than any binary operator and applies to a primary only, so
// stacking operators takes parentheses: -(-x).
func (p *Parser) parseUnary() (Expr, error) {
	tok, ok := p.buf.Peek()
	if !ok {
		return nil, errIncomplete
	}
	if tok.Kind != TokenOperator {
		return p.parsePrimary()
	}
	p.next()
	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Op: tok.Literal, Operand: operand}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, errIncomplete
	}
	switch tok.Kind {
	case TokenNumber:
		return &NumberExpr{Value: tok.Value}, nil
	case TokenString:
		return &StringExpr{Value: tok.Literal}, nil
	case TokenIdent:
		return p.parseIdentExpr(tok)
	case TokenLParen:
		return p.parseParenExpr()
	}
	return nil, syntaxError("unknown token when expecting an expression", tok)
}

// parseIdentExpr decides between a variable reference and a call. An
// identifier with nothing after it is a variable.
func (p *Parser) parseIdentExpr(name Token) (Expr, error) {
	tok, ok := p.buf.Peek()
	if !ok || tok.Kind != TokenLParen {
		return &VariableExpr{Name: name.Literal}, nil
	}
	p.next()

	var args []Expr
	tok, ok = p.buf.Peek()
	if !ok {
		return nil, errIncomplete
	}
	if tok.Kind == TokenRParen {
		p.next()
		return &CallExpr{Callee: name.Literal, Args: args}, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok, ok := p.next()
		if !ok {
			return nil, errIncomplete
		}
		switch tok.Kind {
		case TokenRParen:
			return &CallExpr{Callee: name.Literal, Args: args}, nil
		case TokenComma:
		default:
			return nil, syntaxError("expected ',' or ')' in argument list", tok)
		}
	}
}

func (p *Parser) parseParenExpr() (Expr, error) {
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "expected ')'"); err != nil {
		return nil, err
	}
	return inner, nil
}
