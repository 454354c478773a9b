// Package format renders parse results: syntax trees as S-expressions or
// JSON, token streams as lines, and source text reprinted from its tokens.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/jsxparse/javascript/parser"
)

// Document is the result of parsing one file.
type Document struct {
	File     string
	Source   []byte
	Root     *parser.Node
	Errors   parser.ErrorList
	Comments []parser.Token
	Tokens   []parser.Token
}

// NewDocument collects the results of a finished parser.
func NewDocument(file string, p *parser.Parser, root *parser.Node) *Document {
	return &Document{
		File:     file,
		Source:   p.Source(),
		Root:     root,
		Errors:   p.Errors(),
		Comments: p.Comments(),
		Tokens:   p.Tokens(),
	}
}

type Encoder interface {
	Encode(doc *Document) error
	MarshalText(doc *Document) ([]byte, error)
}

// Names lists the encoders selectable by New.
var Names = []string{"sexp", "json", "ast-json", "tokens", "source"}

func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "sexp":
		return NewSexpEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "ast-json":
		return NewASTJSONEncoder(w), nil
	case "tokens":
		return NewLineEncoder(w), nil
	case "source":
		return NewSourceEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}
