package parser

import (
	"strings"
	"testing"
)

func TestMayInsert(t *testing.T) {
	tests := []struct {
		name    string
		next    Token
		newline bool
		want    bool
	}{
		{"newline", Token{Kind: TokenIdent}, true, true},
		{"same line", Token{Kind: TokenIdent}, false, false},
		{"closing brace", Token{Kind: TokenRBrace}, false, true},
		{"end of input", Token{Kind: TokenEOF}, false, true},
		{"open paren same line", Token{Kind: TokenLParen}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MayInsert(tt.next, tt.newline); got != tt.want {
				t.Errorf("MayInsert = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForcesInsertion(t *testing.T) {
	tests := []struct {
		name string
		prod Production
		next Token
		want bool
	}{
		{"return newline", ProdReturn, Token{Kind: TokenIdent, NewlineBefore: true}, true},
		{"return same line", ProdReturn, Token{Kind: TokenIdent}, false},
		{"return semicolon", ProdReturn, Token{Kind: TokenSemicolon}, true},
		{"break brace", ProdBreak, Token{Kind: TokenRBrace}, true},
		{"throw newline", ProdThrow, Token{Kind: TokenIdent, NewlineBefore: true}, true},
		{"yield end", ProdYield, Token{Kind: TokenEOF}, true},
		{"postfix is not an insertion point", ProdPostfixUpdate, Token{Kind: TokenIncrement, NewlineBefore: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForcesInsertion(tt.prod, tt.next); got != tt.want {
				t.Errorf("ForcesInsertion(%v) = %v, want %v", tt.prod, got, tt.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	tests := []struct {
		name string
		prod Production
		next Token
		want bool
	}{
		{"postfix same line", ProdPostfixUpdate, Token{Kind: TokenIncrement}, true},
		{"postfix newline", ProdPostfixUpdate, Token{Kind: TokenDecrement, NewlineBefore: true}, false},
		{"arrow newline", ProdArrow, Token{Kind: TokenArrow, NewlineBefore: true}, false},
		{"async function newline", ProdAsyncFunction, Token{Kind: TokenFunction, NewlineBefore: true}, false},
		{"async arrow same line", ProdAsyncArrow, Token{Kind: TokenArrow}, true},
		{"yield star newline", ProdYieldDelegate, Token{Kind: TokenStar, NewlineBefore: true}, false},
		{"unanchored token", ProdArrow, Token{Kind: TokenIdent, NewlineBefore: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allows(tt.prod, tt.next); got != tt.want {
				t.Errorf("Allows(%v) = %v, want %v", tt.prod, got, tt.want)
			}
		})
	}
}

func TestRestrictedProductionsComplete(t *testing.T) {
	for _, p := range []Production{
		ProdReturn, ProdBreak, ProdContinue, ProdThrow, ProdYield,
		ProdYieldDelegate, ProdPostfixUpdate, ProdArrow, ProdAsyncFunction, ProdAsyncArrow,
	} {
		if !IsRestricted(p) {
			t.Errorf("%v is missing from RestrictedProductions", p)
		}
		if p.String() == "unknown" {
			t.Errorf("Production(%d) has no name", p)
		}
	}
}

func TestAutomaticSemicolons(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"return on its own line",
			"return\nx",
			"(program (return_statement) (expression_statement (identifier)))",
		},
		{
			"postfix update after newline",
			"a = b\n++c",
			"(program (expression_statement (assignment_expression left: (identifier) right: (identifier))) (expression_statement (update_expression argument: (identifier))))",
		},
		{
			"call across lines",
			"a\n(b)",
			"(program (expression_statement (call_expression function: (identifier) arguments: (arguments (identifier)))))",
		},
		{
			"break label on next line",
			"while (x) { break\nfoo }",
			"(program (while_statement condition: (identifier) body: (statement_block (break_statement) (expression_statement (identifier)))))",
		},
		{
			"do while",
			"do x; while (y) z",
			"(program (do_statement body: (expression_statement (identifier)) condition: (identifier)) (expression_statement (identifier)))",
		},
		{
			"before closing brace",
			"{ a }",
			"(program (statement_block (expression_statement (identifier))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, errs := Parse([]byte(tt.input))
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got := root.String(); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestAutomaticSemicolonTrace(t *testing.T) {
	p := ParseProgram(strings.NewReader("a\nb"), WithTokenTrace())
	root := p.Finish()

	var autos int
	for _, tok := range p.Tokens() {
		if tok.Kind == TokenAutoSemicolon {
			autos++
			if tok.Span.Len() != 0 {
				t.Errorf("automatic semicolon has width %d", tok.Span.Len())
			}
		}
	}
	if autos != 2 {
		t.Errorf("got %d automatic semicolons, want 2", autos)
	}
	for _, leaf := range root.Leaves() {
		if leaf.Token.Kind == TokenAutoSemicolon {
			t.Error("automatic semicolon found in tree")
		}
	}
}

func TestNoSemicolonInsertion(t *testing.T) {
	root, errs := Parse([]byte("a b"))
	if len(errs) == 0 {
		t.Fatal("expected an error for two expressions on one line")
	}
	if !root.HasError() {
		t.Error("expected an ERROR node in the tree")
	}
}
