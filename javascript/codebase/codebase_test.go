package codebase

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dhamidi/jsxparse/javascript/parser"
	"github.com/dhamidi/jsxparse/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.js"), "const a = <A />;")
	writeFile(t, filepath.Join(dir, "src", "bad.jsx"), "let x = ;")
	writeFile(t, filepath.Join(dir, "README.md"), "# not source")
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"), "x;")

	proj := project.Default(dir)
	proj.Workers = 2
	c := New(proj)
	if err := c.ScanAll(context.Background()); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	want := []string{filepath.Join(dir, "ok.js"), filepath.Join(dir, "src", "bad.jsx")}
	slices.Sort(want)
	if got := c.Paths(); !slices.Equal(got, want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}

	if f := c.GetFile(filepath.Join(dir, "ok.js")); f.HasErrors() || f.AST == nil {
		t.Errorf("ok.js: errors %v", f.Errors)
	}
	if f := c.GetFile(filepath.Join(dir, "src", "bad.jsx")); !f.HasErrors() {
		t.Error("bad.jsx: expected errors")
	}
}

func TestScanAllCancelled(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.js", "b.js", "c.js"} {
		writeFile(t, filepath.Join(dir, name), "x;")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(project.Default(dir)).ScanAll(ctx); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}

func TestUpdateAndRemoveFile(t *testing.T) {
	c := New(project.Default(t.TempDir()))

	info := c.UpdateFile("a.js", []byte("a b"))
	if !info.HasErrors() {
		t.Fatal("expected errors")
	}
	if c.GetFile("a.js") != info {
		t.Error("GetFile does not return the stored entry")
	}

	info = c.UpdateFile("a.js", []byte("a; b;"))
	if info.HasErrors() {
		t.Errorf("unexpected errors after update: %v", info.Errors)
	}
	if got := len(info.AST.NamedChildren()); got != 2 {
		t.Errorf("got %d statements, want 2", got)
	}

	if !c.RemoveFile("a.js") {
		t.Error("RemoveFile reported the file unknown")
	}
	if c.RemoveFile("a.js") {
		t.Error("second RemoveFile reported success")
	}
	if c.GetFile("a.js") != nil {
		t.Error("file still present after RemoveFile")
	}
}

func TestDiagnostics(t *testing.T) {
	c := New(project.Default(t.TempDir()))
	c.UpdateFile("a.js", []byte("let x = ;"))

	diags := c.Diagnostics("a.js")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Span.Start.Offset != 8 || d.Span.End.Offset != 9 {
		t.Errorf("span = %d-%d, want 8-9", d.Span.Start.Offset, d.Span.End.Offset)
	}
	if d.Severity != SeverityError {
		t.Errorf("severity = %v, want error", d.Severity)
	}
	if d.Kind != parser.MsgUnexpectedToken {
		t.Errorf("kind = %v, want %v", d.Kind, parser.MsgUnexpectedToken)
	}

	if c.Diagnostics("missing.js") != nil {
		t.Error("diagnostics for an unknown file")
	}
}

func TestDiagnosticsForLexicalError(t *testing.T) {
	_, errs := parser.Parse([]byte("x = 'open"))
	diags := DiagnosticsFor(errs)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Kind != parser.MsgUnterminatedString {
		t.Errorf("kind = %v, want %v", diags[0].Kind, parser.MsgUnterminatedString)
	}
	if diags[0].Span.Start != diags[0].Span.End {
		t.Error("lexical diagnostics are zero-width")
	}
}
