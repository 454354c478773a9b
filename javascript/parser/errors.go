package parser

import (
	"fmt"
	"sort"
	"strings"
)

// MessageKind classifies a parse problem independently of its wording.
type MessageKind int

const (
	MsgUnexpectedToken MessageKind = iota
	MsgMissingField
	MsgUnterminatedString
	MsgUnterminatedTemplate
	MsgUnterminatedRegex
	MsgUnterminatedComment
	MsgInvalidEscape
	MsgInvalidCharacter
	MsgInvalidAssignmentTarget
	MsgMismatchedJSXTag
	MsgTooManyErrors
)

var messageKindNames = map[MessageKind]string{
	MsgUnexpectedToken:         "unexpected-token",
	MsgMissingField:            "missing-field",
	MsgUnterminatedString:      "unterminated-string",
	MsgUnterminatedTemplate:    "unterminated-template",
	MsgUnterminatedRegex:       "unterminated-regex",
	MsgUnterminatedComment:     "unterminated-comment",
	MsgInvalidEscape:           "invalid-escape",
	MsgInvalidCharacter:        "invalid-character",
	MsgInvalidAssignmentTarget: "invalid-assignment-target",
	MsgMismatchedJSXTag:        "mismatched-jsx-tag",
	MsgTooManyErrors:           "too-many-errors",
}

func (k MessageKind) String() string {
	if name, ok := messageKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is implemented by every problem reported in an ErrorList.
type Error interface {
	error
	Position() Position
	MessageKind() MessageKind
}

// LexicalError stops the parse: the scanner cannot produce the token that
// starts at Pos.
type LexicalError struct {
	Pos     Position
	Kind    MessageKind
	Message string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: lexical error: %s", formatPos(e.Pos), e.Message)
}

func (e *LexicalError) Position() Position       { return e.Pos }
func (e *LexicalError) MessageKind() MessageKind { return e.Kind }

// SyntaxError is recorded and parsing resumes at the next statement boundary.
type SyntaxError struct {
	Pos      Position
	Kind     MessageKind
	Message  string
	Expected []TokenKind
	Got      *Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", formatPos(e.Pos), e.Message)
}

func (e *SyntaxError) Position() Position       { return e.Pos }
func (e *SyntaxError) MessageKind() MessageKind { return e.Kind }

// GrammarDefectError signals a hole in the conflict table. User input never
// causes it.
type GrammarDefectError struct {
	A, B Rule
	Site Site
}

func (e *GrammarDefectError) Error() string {
	return fmt.Sprintf("grammar defect: no resolution for %s vs %s at %s site", e.A, e.B, e.Site)
}

func formatPos(p Position) string {
	if p.File != "" {
		return p.File + ":" + p.String()
	}
	return p.String()
}

// ErrorList is a position-ordered list of parse problems.
type ErrorList []Error

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	return l[i].Position().Offset < l[j].Position().Offset
}

func (l ErrorList) Sort() {
	sort.Stable(l)
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Err returns nil for an empty list and the list itself otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// HasLexical reports whether the parse was cut short by a lexical error.
func (l ErrorList) HasLexical() bool {
	for _, e := range l {
		if _, ok := e.(*LexicalError); ok {
			return true
		}
	}
	return false
}
