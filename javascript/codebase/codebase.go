package codebase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dhamidi/jsxparse/javascript/parser"
	"github.com/dhamidi/jsxparse/project"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("jsxparse.codebase")

// Codebase is the set of parsed files under a project root. It is safe for
// concurrent use; each update replaces the file's entry as a whole.
type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	AST     *parser.Node
	Errors  parser.ErrorList
}

// HasErrors reports whether the last parse of the file recorded problems.
func (f *FileInfo) HasErrors() bool {
	return len(f.Errors) > 0
}

func New(p *project.Project) *Codebase {
	return &Codebase{
		project: p,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// ScanAll parses every source file under the root directory, using up to
// the project's worker count in parallel. Files that cannot be read are
// logged and skipped; only a failed directory walk or cancellation is
// returned.
func (c *Codebase) ScanAll(ctx context.Context) error {
	paths, err := c.project.SourceFiles(c.project.RootDir)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.project.Workers, 1))
	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := c.ScanFile(path); err != nil {
				log.Warningf("skip %s: %s", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("scan %s: %w", c.project.RootDir, err)
	}
	log.Infof("scanned %d files in %s", len(paths), c.project.RootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and returns the
// stored entry. Parsing happens outside the lock.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	p := parser.ParseProgram(bytes.NewReader(content), parser.WithFile(path))
	ast := p.Finish()
	info := &FileInfo{
		Path:    path,
		Content: content,
		AST:     ast,
		Errors:  p.Errors(),
	}
	if len(info.Errors) > 0 {
		log.Debugf("%s: %d problems", path, len(info.Errors))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

func (c *Codebase) RemoveFile(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.files[path]
	delete(c.files, path)
	return ok
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the paths of all known files in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns the problems of path, or nil if the file is unknown
// or parsed cleanly.
func (c *Codebase) Diagnostics(path string) []Diagnostic {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	return DiagnosticsFor(f.Errors)
}

// Symbols returns the declarations of path as an outline.
func (c *Codebase) Symbols(path string) []Symbol {
	f := c.GetFile(path)
	if f == nil || f.AST == nil {
		return nil
	}
	return SymbolsOf(f.AST, f.Content)
}

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

// Diagnostic is a parse problem with the span it covers.
type Diagnostic struct {
	Span     parser.Span
	Severity Severity
	Kind     parser.MessageKind
	Message  string
}

// DiagnosticsFor converts an error list. A syntax error spans the token it
// was reported at; other problems are zero-width.
func DiagnosticsFor(errs parser.ErrorList) []Diagnostic {
	var out []Diagnostic
	for _, e := range errs {
		d := Diagnostic{
			Span:     parser.Span{Start: e.Position(), End: e.Position()},
			Severity: SeverityError,
			Kind:     e.MessageKind(),
		}
		switch e := e.(type) {
		case *parser.SyntaxError:
			d.Message = e.Message
			if e.Got != nil && e.Got.Span.Start.Offset == e.Pos.Offset {
				d.Span.End = e.Got.Span.End
			}
			if e.Kind == parser.MsgTooManyErrors {
				d.Severity = SeverityWarning
			}
		case *parser.LexicalError:
			d.Message = e.Message
		default:
			d.Message = e.Error()
		}
		out = append(out, d)
	}
	return out
}
