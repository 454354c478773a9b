package parser

import (
	"testing"
)

func scanKinds(input string, hint Hint) []TokenKind {
	lexer := NewLexer([]byte(input), "test.js")
	var got []TokenKind
	for i := 0; i < 1000; i++ {
		tok := lexer.Next(hint)
		got = append(got, tok.Kind)
		if tok.Kind == TokenEOF || tok.Kind == TokenError {
			break
		}
	}
	return got
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		hint     Hint
		expected []TokenKind
	}{
		{"", HintOperator, []TokenKind{TokenEOF}},
		{"let x = 1;", HintOperator, []TokenKind{TokenLet, TokenIdent, TokenAssign, TokenNumber, TokenSemicolon, TokenEOF}},
		{"a?.b", HintOperator, []TokenKind{TokenIdent, TokenOptionalChain, TokenIdent, TokenEOF}},
		{"a?.5:b", HintOperator, []TokenKind{TokenIdent, TokenTernaryQmark, TokenNumber, TokenColon, TokenIdent, TokenEOF}},
		{">>>= **= ??=", HintOperator, []TokenKind{TokenUShrAssign, TokenStarStarAssign, TokenNullishAssign, TokenEOF}},
		{"=== !== => ...", HintOperator, []TokenKind{TokenStrictEq, TokenStrictNotEq, TokenArrow, TokenEllipsis, TokenEOF}},
		{"x // c\ny", HintOperator, []TokenKind{TokenIdent, TokenIdent, TokenEOF}},
		{"x /* c */ y", HintOperator, []TokenKind{TokenIdent, TokenIdent, TokenEOF}},
		{"#priv", HintOperator, []TokenKind{TokenPrivateIdent, TokenEOF}},
		{"a / b", HintOperator, []TokenKind{TokenIdent, TokenSlash, TokenIdent, TokenEOF}},
		{"/ab+c/gi", HintRegex, []TokenKind{TokenRegex, TokenEOF}},
		{"/[/]/", HintRegex, []TokenKind{TokenRegex, TokenEOF}},
		{"0x1F 1_000n 1e10 .5", HintOperator, []TokenKind{TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenEOF}},
		{`"a\n" 'b'`, HintOperator, []TokenKind{TokenString, TokenString, TokenEOF}},
		{"`a${b}c`", HintOperator, []TokenKind{
			TokenBacktick, TokenTemplateChars, TokenDollarBrace, TokenIdent,
			TokenRBrace, TokenTemplateChars, TokenBacktick, TokenEOF,
		}},
		{"`${{}}`", HintOperator, []TokenKind{
			TokenBacktick, TokenDollarBrace, TokenLBrace, TokenRBrace, TokenRBrace, TokenBacktick, TokenEOF,
		}},
		{"async await yield of", HintOperator, []TokenKind{TokenAsync, TokenAwait, TokenYield, TokenOf, TokenEOF}},
		{"#!/usr/bin/env node\nx", HintOperator, []TokenKind{TokenHashBangLine, TokenIdent, TokenEOF}},
		{"\\u0061bc", HintOperator, []TokenKind{TokenIdent, TokenEOF}},
		{`"\u{10FFFF}" \u{61}b`, HintOperator, []TokenKind{TokenString, TokenIdent, TokenEOF}},
		{"café", HintOperator, []TokenKind{TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := scanKinds(tt.input, tt.hint)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		hint  Hint
		kind  MessageKind
	}{
		{`"abc`, HintOperator, MsgUnterminatedString},
		{"\"abc\ndef\"", HintOperator, MsgUnterminatedString},
		{"/* open", HintOperator, MsgUnterminatedComment},
		{"/abc", HintRegex, MsgUnterminatedRegex},
		{"1a", HintOperator, MsgInvalidCharacter},
		{`"\x4"`, HintOperator, MsgInvalidEscape},
		{`"\u{110000}"`, HintOperator, MsgInvalidEscape},
		{`"\u{0000000000110000}"`, HintOperator, MsgInvalidEscape},
		{`a\u{110000}`, HintOperator, MsgInvalidEscape},
		{"`abc", HintOperator, MsgUnterminatedTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.js")
			var tok Token
			for i := 0; i < 10; i++ {
				tok = lexer.Next(tt.hint)
				if tok.Kind == TokenError || tok.Kind == TokenEOF {
					break
				}
			}
			if tok.Kind != TokenError {
				t.Fatalf("got %v, want an error token", tok.Kind)
			}
			if tok.errKind != tt.kind {
				t.Errorf("error kind = %v, want %v", tok.errKind, tt.kind)
			}
			if tok.Message == "" {
				t.Error("error token has no message")
			}
		})
	}
}

func TestLexerNewlineBefore(t *testing.T) {
	lexer := NewLexer([]byte("a\nb /*\n*/ c d"), "test.js")
	want := []bool{false, true, true, false}
	for i, w := range want {
		tok := lexer.Next(HintOperator)
		if tok.NewlineBefore != w {
			t.Errorf("token %d (%q): NewlineBefore = %v, want %v", i, tok.Literal, tok.NewlineBefore, w)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("a\n  bc"), "test.js")
	lexer.Next(HintOperator)
	tok := lexer.Next(HintOperator)

	if tok.Literal != "bc" {
		t.Fatalf("Literal = %q, want %q", tok.Literal, "bc")
	}
	if tok.Span.Start.Line != 2 || tok.Span.Start.Column != 3 {
		t.Errorf("Start = %v, want 2:3", tok.Span.Start)
	}
	if tok.Span.Start.Offset != 4 || tok.Span.End.Offset != 6 {
		t.Errorf("offsets = %d-%d, want 4-6", tok.Span.Start.Offset, tok.Span.End.Offset)
	}
	if tok.Span.Start.File != "test.js" {
		t.Errorf("File = %q, want %q", tok.Span.Start.File, "test.js")
	}
}

func TestLexerStringParts(t *testing.T) {
	lexer := NewLexer([]byte(`"a\nb"`), "test.js")
	tok := lexer.Next(HintOperator)

	want := []TokenKind{TokenQuote, TokenStringFragment, TokenEscapeSequence, TokenStringFragment, TokenQuote}
	if len(tok.Parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(tok.Parts), len(want))
	}
	for i, part := range tok.Parts {
		if part.Kind != want[i] {
			t.Errorf("part %d: got %v, want %v", i, part.Kind, want[i])
		}
	}
	if tok.Parts[2].Literal != `\n` {
		t.Errorf("escape literal = %q, want %q", tok.Parts[2].Literal, `\n`)
	}
}

func TestLexerRegexParts(t *testing.T) {
	lexer := NewLexer([]byte("/a+/g"), "test.js")
	tok := lexer.Next(HintRegex)

	if tok.Kind != TokenRegex {
		t.Fatalf("got %v, want regex", tok.Kind)
	}
	want := []struct {
		kind    TokenKind
		literal string
	}{
		{TokenSlash, "/"},
		{TokenRegexPattern, "a+"},
		{TokenSlash, "/"},
		{TokenRegexFlags, "g"},
	}
	if len(tok.Parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(tok.Parts), len(want))
	}
	for i, w := range want {
		if tok.Parts[i].Kind != w.kind || tok.Parts[i].Literal != w.literal {
			t.Errorf("part %d: got %v %q, want %v %q", i, tok.Parts[i].Kind, tok.Parts[i].Literal, w.kind, w.literal)
		}
	}
}

func TestLexerJSX(t *testing.T) {
	t.Run("children", func(t *testing.T) {
		lexer := NewLexer([]byte("hi &amp;{x}\n  <"), "test.jsx")
		want := []TokenKind{TokenJSXText, TokenHTMLCharRef, TokenLBrace}
		for i, w := range want {
			if tok := lexer.Next(HintJSXChild); tok.Kind != w {
				t.Fatalf("token %d: got %v, want %v", i, tok.Kind, w)
			}
		}
		if tok := lexer.Next(HintOperator); tok.Kind != TokenIdent {
			t.Fatalf("got %v, want identifier", tok.Kind)
		}
		if tok := lexer.Next(HintOperator); tok.Kind != TokenRBrace {
			t.Fatalf("got %v, want }", tok.Kind)
		}
		// A whitespace-only run spanning lines is not text.
		if tok := lexer.Next(HintJSXChild); tok.Kind != TokenLT {
			t.Fatalf("got %v, want <", tok.Kind)
		}
	})

	t.Run("tag", func(t *testing.T) {
		lexer := NewLexer([]byte(`data-id="a&lt;b">`), "test.jsx")
		name := lexer.Next(HintJSXTag)
		if name.Kind != TokenIdent || name.Literal != "data-id" {
			t.Fatalf("got %v %q, want identifier data-id", name.Kind, name.Literal)
		}
		if tok := lexer.Next(HintJSXTag); tok.Kind != TokenAssign {
			t.Fatalf("got %v, want =", tok.Kind)
		}
		str := lexer.Next(HintJSXTag)
		if str.Kind != TokenString {
			t.Fatalf("got %v, want string", str.Kind)
		}
		want := []TokenKind{TokenQuote, TokenStringFragment, TokenHTMLCharRef, TokenStringFragment, TokenQuote}
		if len(str.Parts) != len(want) {
			t.Fatalf("got %d parts, want %d", len(str.Parts), len(want))
		}
		for i, w := range want {
			if str.Parts[i].Kind != w {
				t.Errorf("part %d: got %v, want %v", i, str.Parts[i].Kind, w)
			}
		}
		if tok := lexer.Next(HintJSXTag); tok.Kind != TokenGT {
			t.Fatalf("got %v, want >", tok.Kind)
		}
	})
}

func TestLexerCheckpoint(t *testing.T) {
	lexer := NewLexer([]byte("a / b"), "test.js")
	lexer.Next(HintOperator)
	cp := lexer.Checkpoint()

	if tok := lexer.Next(HintOperator); tok.Kind != TokenSlash {
		t.Fatalf("got %v, want /", tok.Kind)
	}
	lexer.Rewind(cp)
	if tok := lexer.Next(HintRegex); tok.Kind != TokenError {
		t.Fatalf("got %v, want an unterminated regex", tok.Kind)
	}
	lexer.Rewind(cp)
	if tok := lexer.Next(HintOperator); tok.Kind != TokenSlash {
		t.Fatalf("after rewind got %v, want /", tok.Kind)
	}
}

func TestLexerFrames(t *testing.T) {
	lexer := NewLexer([]byte("{ `${ {"), "test.js")
	depths := []int{1, 2, 3, 4}
	for i, want := range depths {
		lexer.Next(HintOperator)
		if got := lexer.Depth(); got != want {
			t.Errorf("after token %d: Depth = %d, want %d", i, got, want)
		}
	}
}

func TestLexerComments(t *testing.T) {
	lexer := NewLexer([]byte("a /* one */ b // two\nc"), "test.js")
	for {
		if tok := lexer.Next(HintOperator); tok.Kind == TokenEOF {
			break
		}
	}
	comments := lexer.Comments()
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Literal != "/* one */" || comments[1].Literal != "// two" {
		t.Errorf("comments = %q, %q", comments[0].Literal, comments[1].Literal)
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"instanceof", TokenInstanceof},
		{"let", TokenLet},
		{"undefined", TokenUndefined},
		{"foo", TokenIdent},
		{"Class", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LookupKeyword(tt.input); got != tt.kind {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.input, got, tt.kind)
			}
		})
	}
}
