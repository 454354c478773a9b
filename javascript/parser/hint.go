package parser

// Hint is supplied by the parser on every scanner call to select between
// token classes the scanner cannot tell apart on its own.
type Hint uint8

const (
	// HintRegex makes a '/' start a regular expression literal.
	HintRegex Hint = 1 << iota
	// HintJSXTag scans JSX names (which may contain '-'), escape-free
	// strings and single-character '>' inside a tag.
	HintJSXTag
	// HintJSXChild scans jsx_text runs and character references between
	// the children of an element.
	HintJSXChild
)

// HintOperator is used after a complete operand: '/' divides.
const HintOperator Hint = 0

func (h Hint) String() string {
	switch {
	case h&HintJSXChild != 0:
		return "jsx-child"
	case h&HintJSXTag != 0:
		return "jsx-tag"
	case h&HintRegex != 0:
		return "operand"
	}
	return "operator"
}
