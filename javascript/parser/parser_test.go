package parser

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"42", KindNumber},
		{"x", KindIdentifier},
		{"undefined", KindUndefined},
		{"x + y", KindBinaryExpression},
		{"-x", KindUnaryExpression},
		{"typeof x", KindUnaryExpression},
		{"x++", KindUpdateExpression},
		{"a ? b : c", KindTernaryExpression},
		{"x = 5", KindAssignmentExpression},
		{"x += 5", KindAugmentedAssignmentExpression},
		{"x ??= 5", KindAugmentedAssignmentExpression},
		{"(x)", KindParenthesizedExpression},
		{"obj.field", KindMemberExpression},
		{"obj?.field", KindMemberExpression},
		{"obj.method()", KindCallExpression},
		{"arr[0]", KindSubscriptExpression},
		{"new Foo()", KindNewExpression},
		{"new.target", KindMetaProperty},
		{"import.meta", KindMetaProperty},
		{"x => x + 1", KindArrowFunction},
		{"(a, b) => a + b", KindArrowFunction},
		{"async (a) => a", KindArrowFunction},
		{"async x => x", KindArrowFunction},
		{"async(a)", KindCallExpression},
		{"async", KindIdentifier},
		{"function* g() {}", KindGeneratorFunction},
		{"class {}", KindClass},
		{"[1, , 2]", KindArray},
		{"{a, b: 2, [c]: 3, ...d}", KindObject},
		{"`a${b}c`", KindTemplateString},
		{"tag`x`", KindCallExpression},
		{"/re/g", KindRegex},
		{"this", KindThis},
		{"super.x", KindMemberExpression},
		{"#x in obj", KindBinaryExpression},
		{"<div />", KindJSXSelfClosingElement},
		{"<a>b</a>", KindJSXElement},
		{"<></>", KindJSXElement},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := ParseExpression(strings.NewReader(tt.input))
			node := p.Finish()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v", node.Kind, tt.kind)
			}
		})
	}
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"empty",
			"",
			"(program)",
		},
		{
			"hashbang",
			"#!/usr/bin/env node\nx;",
			"(program (hash_bang_line) (expression_statement (identifier)))",
		},
		{
			"var declaration",
			"var a = 1, b;",
			"(program (variable_declaration (variable_declarator name: (identifier) value: (number)) (variable_declarator name: (identifier))))",
		},
		{
			"destructuring declaration",
			"const {a, b: [c], ...d} = obj;",
			"(program (lexical_declaration (variable_declarator name: (object_pattern (shorthand_property_identifier_pattern) (pair_pattern key: (property_identifier) value: (array_pattern (identifier))) (rest_pattern (identifier))) value: (identifier))))",
		},
		{
			"default in pattern",
			"let [x = 1] = y;",
			"(program (lexical_declaration (variable_declarator name: (array_pattern (assignment_pattern left: (identifier) right: (number))) value: (identifier))))",
		},
		{
			"object destructuring assignment",
			"({a, b = 2} = c);",
			"(program (expression_statement (parenthesized_expression (assignment_expression left: (object_pattern (shorthand_property_identifier_pattern) (object_assignment_pattern left: (shorthand_property_identifier_pattern) right: (number))) right: (identifier)))))",
		},
		{
			"function with defaults and rest",
			"function f(a, b = 1, ...c) { return a; }",
			"(program (function_declaration name: (identifier) parameters: (formal_parameters (identifier) (assignment_pattern left: (identifier) right: (number)) (rest_pattern (identifier))) body: (statement_block (return_statement (identifier)))))",
		},
		{
			"async generator",
			"async function* g() { yield* x; await y; }",
			"(program (generator_function_declaration name: (identifier) parameters: (formal_parameters) body: (statement_block (expression_statement (yield_expression (identifier))) (expression_statement (await_expression (identifier))))))",
		},
		{
			"arrow with destructured params",
			"f = ({a}, [b]) => a;",
			"(program (expression_statement (assignment_expression left: (identifier) right: (arrow_function parameters: (formal_parameters (object_pattern (shorthand_property_identifier_pattern)) (array_pattern (identifier))) body: (identifier)))))",
		},
		{
			"arrow with block body",
			"x => { return x; }",
			"(program (expression_statement (arrow_function parameter: (identifier) body: (statement_block (return_statement (identifier))))))",
		},
		{
			"if else",
			"if (a) b(); else { c(); }",
			"(program (if_statement condition: (identifier) consequence: (expression_statement (call_expression function: (identifier) arguments: (arguments))) alternative: (statement_block (expression_statement (call_expression function: (identifier) arguments: (arguments))))))",
		},
		{
			"for loop",
			"for (let i = 0; i < n; i++) {}",
			"(program (for_statement initializer: (lexical_declaration (variable_declarator name: (identifier) value: (number))) condition: (binary_expression left: (identifier) right: (identifier)) increment: (update_expression argument: (identifier)) body: (statement_block)))",
		},
		{
			"empty for",
			"for (;;) ;",
			"(program (for_statement body: (empty_statement)))",
		},
		{
			"for of",
			"for (const x of xs) f(x);",
			"(program (for_in_statement left: (identifier) right: (identifier) body: (expression_statement (call_expression function: (identifier) arguments: (arguments (identifier))))))",
		},
		{
			"for in expression",
			"for (k in o) ;",
			"(program (for_in_statement left: (identifier) right: (identifier) body: (empty_statement)))",
		},
		{
			"while and do",
			"while (a) b; do c; while (d);",
			"(program (while_statement condition: (identifier) body: (expression_statement (identifier))) (do_statement body: (expression_statement (identifier)) condition: (identifier)))",
		},
		{
			"try catch finally",
			"try { a(); } catch (e) { b(); } finally { c(); }",
			"(program (try_statement body: (statement_block (expression_statement (call_expression function: (identifier) arguments: (arguments)))) handler: (catch_clause parameter: (identifier) body: (statement_block (expression_statement (call_expression function: (identifier) arguments: (arguments))))) finalizer: (finally_clause body: (statement_block (expression_statement (call_expression function: (identifier) arguments: (arguments)))))))",
		},
		{
			"optional catch binding",
			"try {} catch {}",
			"(program (try_statement body: (statement_block) handler: (catch_clause body: (statement_block))))",
		},
		{
			"switch",
			"switch (x) { case 1: a; break; default: b; }",
			"(program (switch_statement value: (identifier) body: (switch_body (switch_case value: (number) body: (expression_statement (identifier)) body: (break_statement)) (switch_default body: (expression_statement (identifier))))))",
		},
		{
			"labeled continue",
			"outer: for (;;) { continue outer; }",
			"(program (labeled_statement label: (statement_identifier) body: (for_statement body: (statement_block (continue_statement label: (statement_identifier))))))",
		},
		{
			"throw",
			"throw new Error('x');",
			"(program (throw_statement (new_expression constructor: (identifier) arguments: (arguments (string (string_fragment))))))",
		},
		{
			"with and debugger",
			"with (o) debugger;",
			"(program (with_statement object: (identifier) body: (debugger_statement)))",
		},
		{
			"string escapes",
			`"a\nb";`,
			"(program (expression_statement (string (string_fragment) (escape_sequence) (string_fragment))))",
		},
		{
			"template literal",
			"`a${b}c`;",
			"(program (expression_statement (template_string (string_fragment) (template_substitution (identifier)) (string_fragment))))",
		},
		{
			"nested template",
			"`${`${x}`}`;",
			"(program (expression_statement (template_string (template_substitution (template_string (template_substitution (identifier)))))))",
		},
		{
			"optional chaining",
			"a?.b?.[c]?.(d);",
			"(program (expression_statement (call_expression function: (subscript_expression object: (member_expression object: (identifier) optional_chain: (optional_chain) property: (property_identifier)) optional_chain: (optional_chain) index: (identifier)) optional_chain: (optional_chain) arguments: (arguments (identifier)))))",
		},
		{
			"new without arguments binds member",
			"new a.b;",
			"(program (expression_statement (new_expression constructor: (member_expression object: (identifier) property: (property_identifier)))))",
		},
		{
			"object methods",
			"({ get a() {}, set a(v) {}, async *b() {}, c() {} });",
			"(program (expression_statement (parenthesized_expression (object (method_definition name: (property_identifier) parameters: (formal_parameters) body: (statement_block)) (method_definition name: (property_identifier) parameters: (formal_parameters (identifier)) body: (statement_block)) (method_definition name: (property_identifier) parameters: (formal_parameters) body: (statement_block)) (method_definition name: (property_identifier) parameters: (formal_parameters) body: (statement_block))))))",
		},
		{
			"keyword property names",
			"a.if = {class: 1};",
			"(program (expression_statement (assignment_expression left: (member_expression object: (identifier) property: (property_identifier)) right: (object (pair key: (property_identifier) value: (number))))))",
		},
		{
			"contextual keywords as identifiers",
			"let get = async + set;",
			"(program (lexical_declaration (variable_declarator name: (identifier) value: (binary_expression left: (identifier) right: (identifier)))))",
		},
		{
			"sequence in parens",
			"(a, b);",
			"(program (expression_statement (parenthesized_expression (sequence_expression (identifier) (identifier)))))",
		},
		{
			"spread arguments",
			"f(...args);",
			"(program (expression_statement (call_expression function: (identifier) arguments: (arguments (spread_element (identifier))))))",
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

func TestBlockOrObjectAtStatementStart(t *testing.T) {
	tests := []struct {
		input     string
		statement NodeKind
		first     string
	}{
		{"{}", KindStatementBlock, ""},
		{"{ get(); }", KindStatementBlock, "expression_statement"},
		{"{ set = 1 }", KindStatementBlock, "expression_statement"},
		{"{ async function f() {} }", KindStatementBlock, "function_declaration"},
		{"{ async x => x }", KindStatementBlock, "expression_statement"},
		{"{ async\nfoo() }", KindStatementBlock, "expression_statement"},
		{"{ a: 1 }", KindStatementBlock, "labeled_statement"},
		{"{ async foo() {} }", KindExpressionStatement, "object"},
		{"{ async function() {} }", KindExpressionStatement, "object"},
		{"{ async [k]() {} }", KindExpressionStatement, "object"},
		{"{ get x() { return 1; } }", KindExpressionStatement, "object"},
		{"{ ...a }", KindExpressionStatement, "object"},
		{`{ "a": 1 }`, KindExpressionStatement, "object"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, errs := Parse([]byte(tt.input))
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			stmts := root.NamedChildren()
			if len(stmts) != 1 {
				t.Fatalf("got %d statements, want 1: %s", len(stmts), root)
			}
			if stmts[0].Kind != tt.statement {
				t.Fatalf("statement = %v, want %v: %s", stmts[0].Kind, tt.statement, root)
			}
			first := ""
			if inner := stmts[0].NamedChildren(); len(inner) > 0 {
				first = inner[0].Kind.String()
			}
			if first != tt.first {
				t.Errorf("first child = %q, want %q: %s", first, tt.first, root)
			}
		})
	}
}

func TestParseClass(t *testing.T) {
	input := `@dec class A extends B {
  static x = 1;
  #y;
  get z() { return this.#y; }
  static { init(); }
  static() {}
}`
	want := "(program (class_declaration decorator: (decorator (identifier)) name: (identifier) (class_heritage (identifier)) body: (class_body" +
		" member: (field_definition property: (property_identifier) value: (number))" +
		" member: (field_definition property: (private_property_identifier))" +
		" member: (method_definition name: (property_identifier) parameters: (formal_parameters) body: (statement_block (return_statement (member_expression object: (this) property: (private_property_identifier)))))" +
		" member: (class_static_block body: (statement_block (expression_statement (call_expression function: (identifier) arguments: (arguments)))))" +
		" member: (method_definition name: (property_identifier) parameters: (formal_parameters) body: (statement_block)))))"

	root, errs := Parse([]byte(input))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := root.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestParseModules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"side effect import",
			`import "./polyfill";`,
			"(program (import_statement source: (string (string_fragment))))",
		},
		{
			"default and named",
			`import React, { useState as use, default as d } from "react";`,
			"(program (import_statement (import_clause (identifier) (named_imports (import_specifier name: (identifier) alias: (identifier)) (import_specifier name: (identifier) alias: (identifier)))) source: (string (string_fragment))))",
		},
		{
			"namespace import",
			`import * as ns from "m";`,
			"(program (import_statement (import_clause (namespace_import (identifier))) source: (string (string_fragment))))",
		},
		{
			"import attributes",
			`import data from "./d.json" with { type: "json" };`,
			"(program (import_statement (import_clause (identifier)) source: (string (string_fragment)) (import_attribute (object (pair key: (property_identifier) value: (string (string_fragment)))))))",
		},
		{
			"export declaration",
			"export const a = 1;",
			"(program (export_statement declaration: (lexical_declaration (variable_declarator name: (identifier) value: (number)))))",
		},
		{
			"export clause from",
			`export { a as b, c } from "m";`,
			"(program (export_statement (export_clause (export_specifier name: (identifier) alias: (identifier)) (export_specifier name: (identifier))) source: (string (string_fragment))))",
		},
		{
			"export star as",
			`export * as ns from "m";`,
			"(program (export_statement (namespace_export (identifier)) source: (string (string_fragment))))",
		},
		{
			"export default expression",
			"export default a + b;",
			"(program (export_statement value: (binary_expression left: (identifier) right: (identifier))))",
		},
		{
			"export default named function",
			"export default function f() {}",
			"(program (export_statement declaration: (function_declaration name: (identifier) parameters: (formal_parameters) body: (statement_block))))",
		},
		{
			"export default anonymous class",
			"export default class {}",
			"(program (export_statement value: (class body: (class_body))))",
		},
		{
			"decorated export",
			"@d export class A {}",
			"(program (export_statement decorator: (decorator (identifier)) declaration: (class_declaration name: (identifier) body: (class_body))))",
		},
		{
			"dynamic import is not a statement",
			`import("m").then(f);`,
			"(program (expression_statement (call_expression function: (member_expression object: (call_expression function: (import) arguments: (arguments (string (string_fragment)))) property: (property_identifier)) arguments: (arguments (identifier)))))",
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

func TestParseJSX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"element with attribute and expression",
			`<div className="x">hi {name}</div>;`,
			"(program (expression_statement (jsx_element open_tag: (jsx_opening_element name: (identifier) attribute: (jsx_attribute (property_identifier) (string (string_fragment)))) (jsx_text) (jsx_expression (identifier)) close_tag: (jsx_closing_element name: (identifier)))))",
		},
		{
			"self closing with spread",
			"<Foo {...props} ok />;",
			"(program (expression_statement (jsx_self_closing_element name: (identifier) attribute: (jsx_expression (spread_element (identifier))) attribute: (jsx_attribute (property_identifier)))))",
		},
		{
			"member and namespace names",
			"<a.b.c x:y='1'></a.b.c>;",
			"(program (expression_statement (jsx_element open_tag: (jsx_opening_element name: (member_expression object: (member_expression object: (identifier) property: (property_identifier)) property: (property_identifier)) attribute: (jsx_attribute (jsx_namespace_name (identifier) (identifier)) (string (string_fragment)))) close_tag: (jsx_closing_element name: (member_expression object: (member_expression object: (identifier) property: (property_identifier)) property: (property_identifier))))))",
		},
		{
			"fragment with nested elements",
			"<><a /><b>&amp;</b></>;",
			"(program (expression_statement (jsx_element open_tag: (jsx_opening_element) (jsx_self_closing_element name: (identifier)) (jsx_element open_tag: (jsx_opening_element name: (identifier)) (html_character_reference) close_tag: (jsx_closing_element name: (identifier))) close_tag: (jsx_closing_element))))",
		},
		{
			"empty expression container",
			"<a>{/* note */}</a>;",
			"(program (expression_statement (jsx_element open_tag: (jsx_opening_element name: (identifier)) (jsx_expression) close_tag: (jsx_closing_element name: (identifier)))))",
		},
		{
			"element as attribute value",
			"<A b=<c /> />;",
			"(program (expression_statement (jsx_self_closing_element name: (identifier) attribute: (jsx_attribute (property_identifier) (jsx_self_closing_element name: (identifier))))))",
		},
		{
			"jsx in arrow body",
			"const f = () => <p>{a < b}</p>;",
			"(program (lexical_declaration (variable_declarator name: (identifier) value: (arrow_function parameters: (formal_parameters) body: (jsx_element open_tag: (jsx_opening_element name: (identifier)) (jsx_expression (binary_expression left: (identifier) right: (identifier))) close_tag: (jsx_closing_element name: (identifier)))))))",
		},
		{
			"text with slashes and quotes",
			"<p>a // b 'c' /d/</p>;",
			"(program (expression_statement (jsx_element open_tag: (jsx_opening_element name: (identifier)) (jsx_text) close_tag: (jsx_closing_element name: (identifier)))))",
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

func TestJSXMismatchedTag(t *testing.T) {
	root, errs := Parse([]byte("<a></b>;"))
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].MessageKind() != MsgMismatchedJSXTag {
		t.Errorf("kind = %v, want %v", errs[0].MessageKind(), MsgMismatchedJSXTag)
	}
	if root.Children[0].Children[0].Kind != KindJSXElement {
		t.Error("element should still be built")
	}
}

func TestErrorRecovery(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		statements int
		errors     int
	}{
		{"missing operand", "let x = ;\nlet y = 2;", 2, 1},
		{"garbage between statements", "a;\n) ) )\nb;", 3, 1},
		{"unclosed call", "f(1, 2\ng();", 1, 1},
		{"missing then branch", "if (a)", 1, 1},
		{"stray else", "else x;", 1, 1},
		{"invalid assignment target", "1 = 2;", 1, 1},
		{"try without handler", "try {}", 1, 1},
		{"decorator on function", "@d function f() {}", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, errs := Parse([]byte(tt.input))
			if len(errs) < tt.errors {
				t.Fatalf("got %d errors, want at least %d", len(errs), tt.errors)
			}
			if got := len(root.NamedChildren()); got < tt.statements {
				t.Errorf("got %d top-level nodes, want at least %d: %s", got, tt.statements, root)
			}
			for i := 1; i < len(errs); i++ {
				if errs[i-1].Position().Offset > errs[i].Position().Offset {
					t.Errorf("errors not sorted: %v", errs)
				}
			}
		})
	}
}

func TestErrorRecoveryKeepsFollowingStatements(t *testing.T) {
	root, errs := Parse([]byte("let x = ;\nlet y = 2;"))
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	last := root.NamedChildren()[len(root.NamedChildren())-1]
	if last.Kind != KindLexicalDeclaration || last.HasError() {
		t.Errorf("second declaration not recovered: %s", root)
	}
	first := root.NamedChildren()[0]
	if !first.HasError() {
		t.Errorf("first declaration should hold the ERROR node: %s", first)
	}
}

func TestLexicalErrorStopsParse(t *testing.T) {
	root, errs := Parse([]byte("a;\nb = \"open\nc;"))
	if !errs.HasLexical() {
		t.Fatalf("expected a lexical error, got %v", errs)
	}
	last := errs[len(errs)-1]
	if _, ok := last.(*LexicalError); !ok {
		t.Fatalf("last error is %T, want *LexicalError", last)
	}
	if root == nil || root.Kind != KindProgram {
		t.Fatal("a partial tree should be returned")
	}
	if root.Children[0].Kind != KindExpressionStatement {
		t.Errorf("first statement lost: %s", root)
	}
}

func TestMaxErrors(t *testing.T) {
	input := strings.Repeat("a b\n", 50)
	p := ParseProgram(strings.NewReader(input), WithMaxErrors(5))
	p.Finish()
	errs := p.Errors()
	if len(errs) != 6 {
		t.Fatalf("got %d errors, want 5 plus the limit notice", len(errs))
	}
	if errs[len(errs)-1].MessageKind() != MsgTooManyErrors {
		t.Errorf("last error = %v, want %v", errs[len(errs)-1].MessageKind(), MsgTooManyErrors)
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		input    string
		complete bool
	}{
		{"1 + 2", true},
		{"1 + ", false},
		{"1 + )", true},
		{"f(", false},
		{"\"abc", false},
		{"`abc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := ParseExpression(strings.NewReader(tt.input))
			if got := p.IsComplete(); got != tt.complete {
				t.Errorf("IsComplete() = %v, want %v", got, tt.complete)
			}
		})
	}
}

func TestIsCompleteProgram(t *testing.T) {
	tests := []struct {
		input    string
		complete bool
	}{
		{"function f() {", false},
		{"function f() {}", true},
		{"if (a) {", false},
		{"/* open", false},
		{"let x = 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := ParseProgram(strings.NewReader(tt.input))
			if got := p.IsComplete(); got != tt.complete {
				t.Errorf("IsComplete() = %v, want %v", got, tt.complete)
			}
		})
	}
}

func TestParserReset(t *testing.T) {
	p := ParseProgram(strings.NewReader("a b"))
	p.Finish()
	if len(p.Errors()) == 0 {
		t.Fatal("expected errors from the first input")
	}

	p.Reset(strings.NewReader("a; b;"))
	root := p.Finish()
	if len(p.Errors()) != 0 {
		t.Errorf("errors carried over after Reset: %v", p.Errors())
	}
	if got := len(root.NamedChildren()); got != 2 {
		t.Errorf("got %d statements, want 2", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestParserReadError(t *testing.T) {
	p := ParseProgram(failingReader{})
	if root := p.Finish(); root != nil {
		t.Errorf("Finish() = %v, want nil", root)
	}
	if !errors.Is(p.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("Err() = %v, want %v", p.Err(), io.ErrUnexpectedEOF)
	}
}

func TestParserComments(t *testing.T) {
	src := "// lead\na; /* mid */ b;"
	p := ParseProgram(strings.NewReader(src), WithComments())
	p.Finish()
	if got := len(p.Comments()); got != 2 {
		t.Errorf("got %d comments, want 2", got)
	}

	p = ParseProgram(strings.NewReader(src))
	p.Finish()
	if got := len(p.Comments()); got != 0 {
		t.Errorf("got %d comments without WithComments, want 0", got)
	}
}

func TestParserFile(t *testing.T) {
	p := ParseProgram(strings.NewReader("a b"), WithFile("app.js"))
	p.Finish()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	if got := errs[0].Position().File; got != "app.js" {
		t.Errorf("File = %q, want app.js", got)
	}
	if !strings.HasPrefix(errs[0].Error(), "app.js:1:3:") {
		t.Errorf("Error() = %q", errs[0].Error())
	}
}

// Leaves must reproduce the token stream: in order, non-overlapping, and
// separated only by whitespace and comments.
func TestLeavesCoverSource(t *testing.T) {
	inputs := []string{
		"const {a, b: [c]} = obj; // tail",
		"function f(x = 1) { return x ** 2; }",
		"`a${b + `c${d}`}e`;",
		"x = /[/]+/g.test(y) ? 1 : 2;",
		"<div a=\"1\" {...b}>text &amp; {c}<br /></div>;",
		"class A { static #p = 1; get [k]() {} }",
		"import a, * as b from 'm'; export default a;",
		"label: for (const k in o) if (k) continue label; else break;",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			root, errs := Parse([]byte(input))
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			prev := 0
			for _, leaf := range root.Leaves() {
				start, end := leaf.Span.Start.Offset, leaf.Span.End.Offset
				if start < prev {
					t.Fatalf("leaf %q at %d overlaps previous end %d", leaf.Token.Literal, start, prev)
				}
				gap := input[prev:start]
				if strings.TrimSpace(stripComments(gap)) != "" {
					t.Fatalf("gap %q before %q is not whitespace", gap, leaf.Token.Literal)
				}
				if input[start:end] != leaf.Token.Literal {
					t.Fatalf("leaf literal %q does not match source %q", leaf.Token.Literal, input[start:end])
				}
				prev = end
			}
			if rest := input[prev:]; strings.TrimSpace(stripComments(rest)) != "" {
				t.Errorf("source after last leaf not covered: %q", rest)
			}
		})
	}
}

func stripComments(s string) string {
	for {
		i := strings.Index(s, "//")
		j := strings.Index(s, "/*")
		switch {
		case i >= 0 && (j < 0 || i < j):
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				return s[:i]
			}
			s = s[:i] + s[i+end:]
		case j >= 0:
			end := strings.Index(s[j:], "*/")
			if end < 0 {
				return s[:j]
			}
			s = s[:j] + s[j+end+2:]
		default:
			return s
		}
	}
}
