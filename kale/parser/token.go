package parser

import (
	"fmt"
	"strconv"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenComment

	// Keywords
	TokenDef
	TokenExtern

	// Structure
	TokenDelimiter
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma

	// Literals and names
	TokenIdent
	TokenNumber
	TokenString

	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "EOF",
	TokenComment:   "Comment",
	TokenDef:       "def",
	TokenExtern:    "extern",
	TokenDelimiter: ";",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenComma:     ",",
	TokenIdent:     "Identifier",
	TokenNumber:    "Number",
	TokenString:    "String",
	TokenOperator:  "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a single lexeme. Literal holds the identifier text, the operator
// symbol, the string contents without quotes, the comment text or the
// source text of a number; Value holds the numeric payload of TokenNumber.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Value   float64
}

// Equal compares kind and payload, ignoring where the token came from.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == TokenNumber {
		return t.Value == other.Value
	}
	return t.Literal == other.Literal
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdent, TokenOperator, TokenComment:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Literal)
	case TokenString:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
	case TokenNumber:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.FormatFloat(t.Value, 'g', -1, 64))
	}
	return t.Kind.String()
}

var keywords = map[string]TokenKind{
	"def":    TokenDef,
	"extern": TokenExtern,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	return []string{"def", "extern"}
}
