package format

import (
	"encoding/json"
	"io"
)

// ASTJSONEncoder writes only the syntax tree as indented JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(doc *Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc.Root, "", "  ")
}
