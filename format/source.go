package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dhamidi/jsxparse/javascript/parser"
)

// ErrSyntax is returned when a document with problems is reprinted.
var ErrSyntax = errors.New("source has syntax errors")

// SourceEncoder reprints a document from its tokens and comments. Runs of
// blank characters on one line become a single space; line breaks and the
// indentation of the following line are kept; trailing blanks are dropped.
// Tokens that touched in the input still touch.
type SourceEncoder struct {
	w io.Writer
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(doc *Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SourceEncoder) MarshalText(doc *Document) ([]byte, error) {
	if len(doc.Errors) > 0 {
		return nil, fmt.Errorf("%w: %d problems", ErrSyntax, len(doc.Errors))
	}
	if doc.Root == nil {
		return nil, nil
	}

	var pieces []parser.Token
	for _, tok := range Leaves(doc.Root) {
		if tok.Span.Len() > 0 {
			pieces = append(pieces, tok)
		}
	}
	pieces = append(pieces, doc.Comments...)
	slices.SortStableFunc(pieces, func(a, b parser.Token) int {
		return a.Span.Start.Offset - b.Span.Start.Offset
	})

	src := doc.Source
	var out bytes.Buffer
	prev := 0
	for i, tok := range pieces {
		start, end := tok.Span.Start.Offset, tok.Span.End.Offset
		if start < prev {
			continue
		}
		gap := string(src[prev:start])
		if i == 0 {
			if strings.TrimSpace(gap) != "" {
				out.WriteString(gap)
			}
		} else {
			writeGap(&out, gap)
		}
		out.Write(src[start:end])
		prev = end
	}
	if rest := strings.TrimRightFunc(string(src[prev:]), isBlank); strings.TrimSpace(rest) != "" {
		writeGap(&out, rest)
	}
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n")

// writeGap writes the normalized form of the text between two tokens.
// Text that is not blank belongs to an uncollected comment and is kept.
func writeGap(out *bytes.Buffer, gap string) {
	switch {
	case gap == "":
	case strings.TrimSpace(gap) != "":
		out.WriteString(gap)
	case strings.ContainsAny(gap, "\n\r\u2028\u2029"):
		lines := strings.Split(lineBreaks.Replace(gap), "\n")
		out.WriteString(strings.Repeat("\n", len(lines)-1))
		out.WriteString(lines[len(lines)-1])
	default:
		out.WriteByte(' ')
	}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' || r == 0xA0 || r == 0xFEFF
}
