package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/kale/kale/parser"
)

// Encoder writes a list of top-level declarations in some output format.
type Encoder interface {
	Encode(nodes []parser.Node) error
	MarshalText(nodes []parser.Node) ([]byte, error)
}

// New returns the encoder registered under name: "sexpr", "json" or
// "kale". Settings are only consulted by the source printer.
func New(name string, w io.Writer, settings *parser.Settings) (Encoder, error) {
	switch name {
	case "sexpr":
		return NewSExprEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "kale":
		return NewSourcePrinter(w, settings), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

func write(w io.Writer, text []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
