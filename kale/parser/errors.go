package parser

import "errors"

type LexErrorKind int

const (
	LexUnexpectedChar LexErrorKind = iota
	LexUnterminatedString
	LexMalformedNumber
)

var lexErrorKindNames = map[LexErrorKind]string{
	LexUnexpectedChar:     "UnexpectedChar",
	LexUnterminatedString: "UnterminatedString",
	LexMalformedNumber:    "MalformedNumber",
}

func (k LexErrorKind) String() string {
	if name, ok := lexErrorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// LexError reports input the lexer cannot turn into a token.
type LexError struct {
	Kind    LexErrorKind
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// SyntaxError reports a structural mismatch. Token is the offending token,
// or nil when the error is not tied to one.
type SyntaxError struct {
	Message string
	Token   *Token
}

func (e *SyntaxError) Error() string {
	if e.Token == nil {
		return e.Message
	}
	return e.Token.Span.Start.String() + ": " + e.Message + ", got " + e.Token.String()
}

// errIncomplete signals that the tokens ran out before the construct being
// parsed was finished. It never leaves the package.
var errIncomplete = errors.New("incomplete input")

func syntaxError(msg string, tok Token) *SyntaxError {
	return &SyntaxError{Message: msg, Token: &tok}
}
