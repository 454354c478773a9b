package codebase

import (
	"testing"

	"github.com/dhamidi/jsxparse/javascript/parser"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestToPosition(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  parser.Position
		want protocol.Position
	}{
		{"start", "abc", parser.Position{Offset: 0, Line: 1, Column: 1}, protocol.Position{Line: 0, Character: 0}},
		{"second line", "a\nbc", parser.Position{Offset: 3, Line: 2, Column: 2}, protocol.Position{Line: 1, Character: 1}},
		{"multibyte counts UTF-16 units", "x = \"é😀\" + y", parser.Position{Offset: 15, Line: 1, Column: 16}, protocol.Position{Line: 0, Character: 12}},
		{"end of input", "ab", parser.Position{Offset: 2, Line: 1, Column: 3}, protocol.Position{Line: 0, Character: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toPosition(tt.pos, []byte(tt.src)); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToProtocolDiagnostics(t *testing.T) {
	src := []byte("a;\nlet x = ;")
	_, errs := parser.Parse(src)
	diags := toProtocolDiagnostics(DiagnosticsFor(errs), src)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 8},
		End:   protocol.Position{Line: 1, Character: 9},
	}
	if d.Range != want {
		t.Errorf("range = %+v, want %+v", d.Range, want)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Error("severity should be error")
	}
	if d.Source == nil || *d.Source != lsName {
		t.Errorf("source = %v, want %s", d.Source, lsName)
	}
}

func TestToDocumentSymbols(t *testing.T) {
	src := []byte("class A {\n  m() {}\n}")
	root, _ := parser.Parse(src)
	symbols := toDocumentSymbols(SymbolsOf(root, src), src)
	if len(symbols) != 1 {
		t.Fatalf("got %d symbols, want 1", len(symbols))
	}
	a := symbols[0]
	if a.Name != "A" || a.Kind != protocol.SymbolKindClass {
		t.Errorf("got %s %v, want class A", a.Name, a.Kind)
	}
	if len(a.Children) != 1 || a.Children[0].Kind != protocol.SymbolKindMethod {
		t.Fatalf("children = %+v", a.Children)
	}
	sel := a.Children[0].SelectionRange
	if sel.Start.Line != 1 || sel.Start.Character != 2 || sel.End.Character != 3 {
		t.Errorf("method selection range = %+v", sel)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/u/app.js", "/home/u/app.js"},
		{"file:///home/u/my%20app/a.jsx", "/home/u/my app/a.jsx"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Errorf("uriToPath(%q): %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
