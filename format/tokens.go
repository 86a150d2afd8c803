package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/kale/kale/parser"
)

// TokenEncoder writes one token per line as "line:col kind literal".
// Numbers are shown by value and strings quoted.
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalText(tokens)
	return write(e.w, text, err)
}

func (e *TokenEncoder) MarshalText(tokens []parser.Token) ([]byte, error) {
	var buf bytes.Buffer
	for _, tok := range tokens {
		start := tok.Span.Start
		fmt.Fprintf(&buf, "%d:%d\t%s", start.Line, start.Column, tok.Kind)
		switch tok.Kind {
		case parser.TokenNumber:
			fmt.Fprintf(&buf, "\t%s", formatNumber(tok.Value))
		case parser.TokenString:
			fmt.Fprintf(&buf, "\t%q", tok.Literal)
		case parser.TokenIdent, parser.TokenOperator, parser.TokenComment:
			fmt.Fprintf(&buf, "\t%s", tok.Literal)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

type TokenJSONEncoder struct {
	w io.Writer
}

func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w}
}

type tokenJSON struct {
	Kind    string   `json:"kind"`
	Literal string   `json:"literal,omitempty"`
	Value   *float64 `json:"value,omitempty"`
	Line    int      `json:"line"`
	Column  int      `json:"column"`
}

func (e *TokenJSONEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalText(tokens)
	if err == nil {
		text = append(text, '\n')
	}
	return write(e.w, text, err)
}

func (e *TokenJSONEncoder) MarshalText(tokens []parser.Token) ([]byte, error) {
	out := make([]tokenJSON, len(tokens))
	for i, tok := range tokens {
		tj := tokenJSON{
			Kind:    tok.Kind.String(),
			Literal: tok.Literal,
			Line:    tok.Span.Start.Line,
			Column:  tok.Span.Start.Column,
		}
		if tok.Kind == parser.TokenNumber {
			v := tok.Value
			tj.Value = &v
		}
		out[i] = tj
	}
	return json.MarshalIndent(out, "", "  ")
}
