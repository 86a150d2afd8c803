package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/kale/kale/parser"
)

// SExprEncoder writes one S-expression per declaration, one per line.
type SExprEncoder struct {
	w io.Writer
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(nodes []parser.Node) error {
	text, err := e.MarshalText(nodes)
	return write(e.w, text, err)
}

func (e *SExprEncoder) MarshalText(nodes []parser.Node) ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		buf.WriteString(n.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
