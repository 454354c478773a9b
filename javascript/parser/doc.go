// Package parser provides an error-tolerant parser for JavaScript with JSX.
//
// # Overview
//
// The parser reads a whole source file and produces a concrete syntax tree
// whose leaves, in order, are exactly the tokens of the input. Node kinds and
// field names follow the tree-sitter-javascript grammar, so trees print as
// the S-expressions used by tree-sitter corpus tests.
//
// # Architecture
//
//	┌─────────────┐ hint ┌─────────────┐      ┌─────────────┐
//	│   Parser    │─────▶│   Lexer     │─────▶│   Tokens    │
//	│ (recursive  │◀─────│ (frames for │      │ (+ comments │
//	│  descent)   │token │ ${ } and {})│      │  on the side│
//	└─────────────┘      └─────────────┘      └─────────────┘
//	   │       │
//	   ▼       ▼
//	┌─────────┐ ┌──────────────┐ ┌──────────────┐
//	│   ASI   │ │   Conflict   │ │    Node      │
//	│ Oracle  │ │   Resolver   │ │   Builder    │
//	└─────────┘ └──────────────┘ └──────────────┘
//	                   │
//	                   ▼
//	            ┌──────────────┐
//	            │  Precedence  │
//	            │    Table     │
//	            └──────────────┘
//
// The lexer cannot tell a regular expression from a division, or JSX text
// from code, by itself. The parser passes a Hint on every call: HintRegex
// where an operand is expected, HintJSXTag inside a tag, HintJSXChild
// between children. A token scanned under the wrong hint is scanned again
// from a checkpoint.
//
// # Entry Points
//
//	// ParseProgram parses a complete script or module.
//	func ParseProgram(r io.Reader, opts ...Option) *Parser
//
//	// ParseExpression parses a standalone expression.
//	func ParseExpression(r io.Reader, opts ...Option) *Parser
//
//	// Parse is ParseProgram over a byte slice.
//	func Parse(src []byte, opts ...Option) (*Node, ErrorList)
//
// # Error Recovery
//
// The parser never panics on malformed input. Each syntax error produces an
// ERROR node holding the tokens that were skipped, and parsing continues:
//
//  1. Statement-level: skip past the next ';' or stop before a '}' or a
//     token on a new line
//  2. Expression-level: an ERROR node stands in for a missing operand
//  3. List-level: a token that cannot start an element is skipped alone
//
// A lexical error stops the parse; the partial tree is still returned.
// Parsing also stops after WithMaxErrors syntax errors (100 by default).
//
// # Automatic Semicolons
//
// Virtual semicolons are never part of the tree. With WithTokenTrace they
// appear in Tokens as zero-width TokenAutoSemicolon entries.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. The tables in this
// package (Precedence, Resolutions, RestrictedProductions) are read-only
// after initialization and may be shared.
//
// # Example Usage
//
//	p := parser.ParseProgram(strings.NewReader("const x = <a href={y} />;"))
//	tree := p.Finish()
//	fmt.Println(tree)
//	// (program (lexical_declaration (variable_declarator name: (identifier) value: ...)))
package parser
