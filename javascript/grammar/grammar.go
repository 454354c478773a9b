// Package grammar holds an EBNF description of the syntax trees produced by
// the parser and tools to check and print it.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"
)

//go:embed javascript.ebnf
var source []byte

// Start is the production a whole source file is derived from.
const Start = "Program"

const filename = "javascript.ebnf"

// Source returns the grammar text.
func Source() []byte {
	return source
}

// Load parses the embedded grammar and verifies it from Start.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// ProductionName maps a node kind to the production that derives it:
// lexical kinds keep their name, other kinds are spelled in CamelCase.
func ProductionName(g ebnf.Grammar, kind string) (string, bool) {
	if _, ok := g[kind]; ok {
		return kind, true
	}
	var sb strings.Builder
	for _, part := range strings.Split(kind, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	name := sb.String()
	_, ok := g[name]
	return name, ok
}

// Closure returns name and every production reachable from it, sorted.
func Closure(g ebnf.Grammar, name string) ([]string, error) {
	if _, ok := g[name]; !ok {
		return nil, fmt.Errorf("no production %q", name)
	}
	seen := map[string]bool{}
	var visit func(ebnf.Expression)
	add := func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		if p := g[n]; p != nil {
			visit(p.Expr)
		}
	}
	visit = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case ebnf.Alternative:
			for _, x := range e {
				visit(x)
			}
		case ebnf.Sequence:
			for _, x := range e {
				visit(x)
			}
		case *ebnf.Group:
			visit(e.Body)
		case *ebnf.Option:
			visit(e.Body)
		case *ebnf.Repetition:
			visit(e.Body)
		case *ebnf.Name:
			add(e.String)
		}
	}
	add(name)

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Format renders a production on one line in the notation it was written
// in.
func Format(p *ebnf.Production) string {
	var sb strings.Builder
	sb.WriteString(p.Name.String)
	sb.WriteString(" =")
	if p.Expr != nil {
		sb.WriteString(" ")
		writeExpr(&sb, p.Expr)
	}
	sb.WriteString(" .")
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr ebnf.Expression) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for i, x := range e {
			if i > 0 {
				sb.WriteString(" | ")
			}
			writeExpr(sb, x)
		}
	case ebnf.Sequence:
		for i, x := range e {
			if i > 0 {
				sb.WriteString(" ")
			}
			writeExpr(sb, x)
		}
	case *ebnf.Group:
		sb.WriteString("( ")
		writeExpr(sb, e.Body)
		sb.WriteString(" )")
	case *ebnf.Option:
		sb.WriteString("[ ")
		writeExpr(sb, e.Body)
		sb.WriteString(" ]")
	case *ebnf.Repetition:
		sb.WriteString("{ ")
		writeExpr(sb, e.Body)
		sb.WriteString(" }")
	case *ebnf.Name:
		sb.WriteString(e.String)
	case *ebnf.Token:
		sb.WriteString(strconv.Quote(e.String))
	case *ebnf.Range:
		sb.WriteString(strconv.Quote(e.Begin.String) + " … " + strconv.Quote(e.End.String))
	}
}

// Errors splits an error returned by Load into the individual problems
// ebnf reports.
func Errors(err error) []error {
	for u := err; u != nil; {
		v := reflect.ValueOf(u)
		if v.Kind() == reflect.Slice {
			out := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if e, ok := v.Index(i).Interface().(error); ok {
					out = append(out, e)
				}
			}
			return out
		}
		uw, ok := u.(interface{ Unwrap() error })
		if !ok {
			break
		}
		u = uw.Unwrap()
	}
	if err == nil {
		return nil
	}
	return []error{err}
}
