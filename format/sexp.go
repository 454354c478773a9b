package format

import (
	"io"
)

// SexpEncoder writes the tree in the S-expression notation of tree-sitter
// corpus tests, one root per line.
type SexpEncoder struct {
	w         io.Writer
	positions bool
}

func NewSexpEncoder(w io.Writer) *SexpEncoder {
	return &SexpEncoder{w: w}
}

// WithPositions switches to the indented outline that includes spans and
// leaf text.
func (e *SexpEncoder) WithPositions(on bool) *SexpEncoder {
	e.positions = on
	return e
}

func (e *SexpEncoder) Encode(doc *Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SexpEncoder) MarshalText(doc *Document) ([]byte, error) {
	if doc.Root == nil {
		return nil, nil
	}
	if e.positions {
		return []byte(doc.Root.StringWithPositions()), nil
	}
	return []byte(doc.Root.String() + "\n"), nil
}
