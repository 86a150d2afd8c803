package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/kale/kale/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(nodes []parser.Node) error {
	text, err := e.MarshalText(nodes)
	if err == nil {
		text = append(text, '\n')
	}
	return write(e.w, text, err)
}

// MarshalText renders nodes as an indented JSON array. An empty program is
// encoded as [] rather than null.
func (e *ASTJSONEncoder) MarshalText(nodes []parser.Node) ([]byte, error) {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = parser.NodeToJSON(n)
	}
	return json.MarshalIndent(out, "", "  ")
}
