package parser

import (
	"fmt"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type LexerOption func(*Lexer)

// WithStartLine sets the line number of the first line of input (default 1).
func WithStartLine(line int) LexerOption {
	return func(l *Lexer) {
		l.line = line
	}
}

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
	done   bool
}

func NewLexer(input []byte, file string, opts ...LexerOption) *Lexer {
	l := &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize scans src completely. The returned tokens end with TokenEOF.
func Tokenize(src string, opts ...LexerOption) ([]Token, error) {
	l := NewLexer([]byte(src), "", opts...)
	var tokens []Token
	for tok, err := range l.All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// All returns the remaining tokens as a sequence that stops after TokenEOF
// or the first error. It consumes the lexer and cannot be restarted.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.NextToken()
			if !yield(tok, err) {
				return
			}
			if err != nil || tok.Kind == TokenEOF {
				return
			}
		}
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	_, size := utf8.DecodeRune(l.input[l.pos:])
	if l.pos+size >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos+size:])
	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column += size
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// NextToken returns the next token. Once TokenEOF has been returned every
// further call returns TokenEOF again. A lexical error leaves the lexer
// positioned after the offending character.
func (l *Lexer) NextToken() (Token, error) {
	if l.done {
		pos := l.Position()
		return Token{Kind: TokenEOF, Span: Span{Start: pos, End: pos}}, nil
	}

	l.skipWhitespace()
	start := l.Position()
	ch := l.peek()

	if l.pos >= len(l.input) || ch == 0 {
		l.done = true
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}, nil
	}

	if isDigit(ch) {
		return l.scanNumber(start)
	}
	if isLetter(ch) || ch == '_' {
		return l.scanIdentOrKeyword(start), nil
	}

	switch ch {
	case '"':
		return l.scanString(start)
	case '+', '-', '*', '!', '<', '>', '=':
		return l.scanOperator(start), nil
	case '/':
		return l.scanSlash(start), nil
	case ',':
		l.advance()
		return l.token(TokenComma, start), nil
	case '[':
		l.advance()
		return l.token(TokenLBracket, start), nil
	case ']':
		l.advance()
		return l.token(TokenRBracket, start), nil
	case '(':
		l.advance()
		return l.token(TokenLParen, start), nil
	case ')':
		l.advance()
		return l.token(TokenRParen, start), nil
	case ';':
		l.advance()
		return l.token(TokenDelimiter, start), nil
	}

	if !unicode.IsPrint(ch) {
		l.done = true
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}, nil
	}

	l.advance()
	return Token{}, &LexError{
		Kind:    LexUnexpectedChar,
		Pos:     start,
		Message: fmt.Sprintf("unexpected character %q", ch),
	}
}

// scanNumber reads digits with at most one decimal point. A dot followed by
// a letter is left in the input: the number ends before it.
func (l *Lexer) scanNumber(start Position) (Token, error) {
	seenDot := false
scan:
	for {
		ch := l.peek()
		switch {
		case isDigit(ch):
			l.advance()
		case ch == '.':
			if isLetter(l.peekNext()) {
				break scan
			}
			if seenDot {
				return l.malformedNumber(start)
			}
			seenDot = true
			l.advance()
		case isLetter(ch) || ch == '_':
			return l.malformedNumber(start)
		default:
			break scan
		}
	}

	tok := l.token(TokenNumber, start)
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return Token{}, &LexError{
			Kind:    LexMalformedNumber,
			Pos:     start,
			Message: fmt.Sprintf("malformed numeric literal %q: %v", tok.Literal, err),
		}
	}
	tok.Value = value
	return tok, nil
}

func (l *Lexer) malformedNumber(start Position) (Token, error) {
	l.advance()
	return Token{}, &LexError{
		Kind:    LexMalformedNumber,
		Pos:     start,
		Message: fmt.Sprintf("malformed numeric literal %q", string(l.input[start.Offset:l.pos])),
	}
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for {
		ch := l.peek()
		if !isLetter(ch) && !unicode.IsDigit(ch) && ch != '_' {
			break
		}
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

// scanString reads everything up to the closing quote verbatim; there are
// no escape sequences.
func (l *Lexer) scanString(start Position) (Token, error) {
	l.advance()
	contentStart := l.pos
	for {
		if l.pos >= len(l.input) || l.peek() == 0 {
			return Token{}, &LexError{
				Kind:    LexUnterminatedString,
				Pos:     start,
				Message: "unterminated string literal",
			}
		}
		if l.peek() == '"' {
			break
		}
		l.advance()
	}
	contents := string(l.input[contentStart:l.pos])
	l.advance()
	end := l.Position()
	return Token{
		Kind:    TokenString,
		Span:    Span{Start: start, End: end},
		Literal: contents,
	}, nil
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.advance()
	if l.peek() == '=' {
		switch ch {
		case '=', '!', '<', '>':
			l.advance()
		}
	}
	return l.token(TokenOperator, start)
}

func (l *Lexer) scanSlash(start Position) Token {
	l.advance()
	if l.peek() != '/' {
		return l.token(TokenOperator, start)
	}
	for l.pos < len(l.input) && l.peek() != '\n' && l.peek() != 0 {
		l.advance()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	if ch < utf8.RuneSelf {
		return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
	}
	return unicode.IsLetter(ch)
}
