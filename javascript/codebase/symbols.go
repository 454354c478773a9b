package codebase

import (
	"github.com/dhamidi/jsxparse/javascript/parser"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolClass
	SymbolMethod
	SymbolConstructor
	SymbolField
	SymbolVariable
	SymbolConstant
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolMethod:
		return "method"
	case SymbolConstructor:
		return "constructor"
	case SymbolField:
		return "field"
	case SymbolVariable:
		return "variable"
	case SymbolConstant:
		return "constant"
	}
	return "unknown"
}

// Symbol is one entry of a document outline. Span covers the whole
// declaration and NameSpan only its name.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Span     parser.Span
	NameSpan parser.Span
	Children []Symbol
}

// SymbolsOf returns the declarations of a program: functions, classes with
// their members, and variables. Declarations nested in function bodies are
// children of their function.
func SymbolsOf(root *parser.Node, src []byte) []Symbol {
	var out []Symbol
	for _, c := range root.Children {
		out = append(out, symbolsFor(c, src)...)
	}
	return out
}

func symbolsFor(n *parser.Node, src []byte) []Symbol {
	switch n.Kind {
	case parser.KindFunctionDeclaration, parser.KindGeneratorFunctionDeclaration:
		if s, ok := named(n, n.ChildByField("name"), SymbolFunction, src); ok {
			s.Children = bodySymbols(n, src)
			return []Symbol{s}
		}
	case parser.KindClassDeclaration:
		if s, ok := named(n, n.ChildByField("name"), SymbolClass, src); ok {
			s.Children = classMembers(n, src)
			return []Symbol{s}
		}
	case parser.KindLexicalDeclaration, parser.KindVariableDeclaration:
		return declarators(n, src)
	case parser.KindExportStatement:
		if d := n.ChildByField("declaration"); d != nil {
			return symbolsFor(d, src)
		}
		return defaultExport(n, src)
	case parser.KindStatementBlock:
		var out []Symbol
		for _, c := range n.Children {
			out = append(out, symbolsFor(c, src)...)
		}
		return out
	}
	return nil
}

func named(decl, name *parser.Node, kind SymbolKind, src []byte) (Symbol, bool) {
	if name == nil {
		return Symbol{}, false
	}
	return Symbol{
		Name:     name.Text(src),
		Kind:     kind,
		Span:     decl.Span,
		NameSpan: name.Span,
	}, true
}

func bodySymbols(fn *parser.Node, src []byte) []Symbol {
	body := fn.ChildByField("body")
	if body == nil || body.Kind != parser.KindStatementBlock {
		return nil
	}
	return symbolsFor(body, src)
}

func classMembers(class *parser.Node, src []byte) []Symbol {
	body := class.ChildByField("body")
	if body == nil {
		return nil
	}
	var out []Symbol
	for _, m := range body.ChildrenByField("member") {
		switch m.Kind {
		case parser.KindMethodDefinition:
			kind := SymbolMethod
			name := m.ChildByField("name")
			if name != nil && name.Text(src) == "constructor" {
				kind = SymbolConstructor
			}
			if s, ok := named(m, name, kind, src); ok {
				s.Children = bodySymbols(m, src)
				out = append(out, s)
			}
		case parser.KindFieldDefinition:
			if s, ok := named(m, m.ChildByField("property"), SymbolField, src); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// declarators lists the simple names bound by a declaration. Destructuring
// patterns contribute no symbol.
func declarators(decl *parser.Node, src []byte) []Symbol {
	kind := SymbolVariable
	if kw := decl.ChildByField("kind"); kw != nil && kw.TokenLiteral() == "const" {
		kind = SymbolConstant
	}
	var out []Symbol
	for _, d := range decl.ChildrenOfKind(parser.KindVariableDeclarator) {
		name := d.ChildByField("name")
		if name == nil || name.Kind != parser.KindIdentifier {
			continue
		}
		s, _ := named(d, name, kind, src)
		switch value := d.ChildByField("value"); {
		case value == nil:
		case value.Kind == parser.KindArrowFunction, value.Kind == parser.KindFunctionExpression,
			value.Kind == parser.KindGeneratorFunction:
			s.Kind = SymbolFunction
			s.Children = bodySymbols(value, src)
		case value.Kind == parser.KindClass:
			s.Kind = SymbolClass
			s.Children = classMembers(value, src)
		}
		out = append(out, s)
	}
	return out
}

// defaultExport names an anonymous default-exported function or class
// "default".
func defaultExport(export *parser.Node, src []byte) []Symbol {
	value := export.ChildByField("value")
	if value == nil {
		return nil
	}
	s := Symbol{Name: "default", Span: export.Span, NameSpan: value.Span}
	switch value.Kind {
	case parser.KindFunctionExpression, parser.KindGeneratorFunction, parser.KindArrowFunction:
		s.Kind = SymbolFunction
		s.Children = bodySymbols(value, src)
	case parser.KindClass:
		s.Kind = SymbolClass
		s.Children = classMembers(value, src)
	default:
		return nil
	}
	return []Symbol{s}
}
