package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jsxparse/javascript/parser"
)

// JSONEncoder writes a document: its file name, problems, comments and
// tree.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText(doc *Document) ([]byte, error) {
	return json.MarshalIndent(buildDocument(doc), "", "  ")
}

type jsonDocument struct {
	File     string        `json:"file,omitempty"`
	Valid    bool          `json:"valid"`
	Errors   []jsonProblem `json:"errors,omitempty"`
	Comments []jsonToken   `json:"comments,omitempty"`
	Tree     *parser.Node  `json:"tree"`
}

type jsonProblem struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
	Lexical bool   `json:"lexical,omitempty"`
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

func buildDocument(doc *Document) jsonDocument {
	data := jsonDocument{
		File:     doc.File,
		Valid:    len(doc.Errors) == 0,
		Tree:     doc.Root,
	}
	for _, err := range doc.Errors {
		pos := err.Position()
		p := jsonProblem{
			Kind:    err.MessageKind().String(),
			Line:    pos.Line,
			Column:  pos.Column,
			Offset:  pos.Offset,
			Message: problemMessage(err),
		}
		_, p.Lexical = err.(*parser.LexicalError)
		data.Errors = append(data.Errors, p)
	}
	for _, c := range doc.Comments {
		data.Comments = append(data.Comments, buildToken(c))
	}
	return data
}

func buildToken(t parser.Token) jsonToken {
	return jsonToken{
		Kind:   t.Kind.String(),
		Text:   t.Literal,
		Line:   t.Span.Start.Line,
		Column: t.Span.Start.Column,
		Offset: t.Span.Start.Offset,
	}
}

// problemMessage returns the message without the position prefix that
// Error adds.
func problemMessage(err parser.Error) string {
	switch e := err.(type) {
	case *parser.SyntaxError:
		return e.Message
	case *parser.LexicalError:
		return e.Message
	}
	return err.Error()
}
