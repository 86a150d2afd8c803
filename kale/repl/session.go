package repl

import (
	"strings"

	"github.com/dhamidi/kale/kale/parser"
)

// Result describes what a single Feed call completed.
type Result struct {
	// Nodes are the declarations finished by this call, in source order.
	Nodes []parser.Node
	// Incomplete is set when input is still pending and the next line
	// continues the current declaration.
	Incomplete bool
}

type SessionOption func(*Session)

// WithFile names the input in token positions and error messages.
func WithFile(name string) SessionOption {
	return func(s *Session) {
		s.file = name
	}
}

// Session is the caller side of incremental parsing: it keeps the tokens
// that have not formed a declaration yet, the declarations parsed so far
// and the number of the next input line.
type Session struct {
	settings *parser.Settings
	file     string
	ast      []parser.Node
	pending  []parser.Token
	line     int
}

func NewSession(settings *parser.Settings, opts ...SessionOption) *Session {
	if settings == nil {
		settings = parser.DefaultSettings()
	}
	s := &Session{settings: settings, line: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Feed parses line together with whatever input is still pending. On a
// lexical or syntax error the pending input is dropped; declarations from
// earlier calls are kept.
func (s *Session) Feed(line string) (Result, error) {
	tokens, err := s.Tokens(line)
	if err != nil {
		s.pending = nil
		return Result{}, err
	}

	input := make([]parser.Token, 0, len(s.pending)+len(tokens))
	input = append(input, s.pending...)
	input = append(input, tokens...)

	before := len(s.ast)
	ast, rest, err := parser.Parse(input, s.ast, s.settings)
	if err != nil {
		s.pending = nil
		return Result{}, err
	}
	s.ast = ast
	s.pending = rest

	nodes := append([]parser.Node(nil), ast[before:]...)
	return Result{Nodes: nodes, Incomplete: len(rest) > 0}, nil
}

// Tokens lexes line without parsing it. The session's line counter
// advances either way.
func (s *Session) Tokens(line string) ([]parser.Token, error) {
	lexer := parser.NewLexer([]byte(line), s.file, parser.WithStartLine(s.line))
	s.line += 1 + strings.Count(line, "\n")

	var tokens []parser.Token
	for tok, err := range lexer.All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Reset abandons the declaration in progress.
func (s *Session) Reset() {
	s.pending = nil
}

func (s *Session) Incomplete() bool {
	return len(s.pending) > 0
}

func (s *Session) AST() []parser.Node {
	return append([]parser.Node(nil), s.ast...)
}

func (s *Session) Pending() []parser.Token {
	return append([]parser.Token(nil), s.pending...)
}

// Line is the number the next input line will get.
func (s *Session) Line() int {
	return s.line
}
