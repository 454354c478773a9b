package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/jsxparse/javascript/parser"
)

// LineEncoder writes one tab-separated line per token: position, kind and
// quoted text. Automatic semicolons show up with empty text.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc *Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// MarshalText uses the token trace when the parse recorded one and the
// leaves of the tree otherwise.
func (e *LineEncoder) MarshalText(doc *Document) ([]byte, error) {
	tokens := doc.Tokens
	if tokens == nil && doc.Root != nil {
		tokens = Leaves(doc.Root)
	}

	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", tok.Span.Start, tok.Kind, strconv.Quote(tok.Literal))
	}
	return []byte(sb.String()), nil
}

// Leaves returns the leaf tokens of root as a flat list.
func Leaves(root *parser.Node) []parser.Token {
	var out []parser.Token
	for _, leaf := range root.Leaves() {
		out = append(out, *leaf.Token)
	}
	return out
}
