package parser

import "fmt"

// Build assembles a node for rule from its children. names runs parallel to
// children; an empty name marks a positional child. The node is emitted
// under rule's public kind and spans the union of its children.
//
// A field the schema does not declare, or a repeated single field, yields a
// *SchemaError and no node. A missing required field yields the node and a
// *SyntaxError positioned at the node's end.
func Build(rule Rule, children []*Node, names []string) (*Node, error) {
	if len(names) != len(children) {
		return nil, &SchemaError{Kind: rule.Kind(), Reason: fmt.Sprintf("%d names for %d children", len(names), len(children))}
	}
	kind := rule.Kind()
	n := &Node{Kind: kind, rule: rule}
	seen := make(map[string]bool)
	for i, c := range children {
		if c == nil {
			return nil, &SchemaError{Kind: kind, Field: names[i], Reason: "nil child"}
		}
		if name := names[i]; name != "" {
			spec, ok := fieldSpec(kind, name)
			if !ok {
				return nil, &SchemaError{Kind: kind, Field: name, Reason: "undeclared field"}
			}
			if seen[name] && !spec.Multiple {
				return nil, &SchemaError{Kind: kind, Field: name, Reason: "single field set twice"}
			}
			seen[name] = true
		}
		n.Span = n.Span.Union(c.Span)
	}
	n.Children = children
	n.fields = names

	for _, spec := range schemas[kind] {
		if spec.Required && !seen[spec.Name] {
			return n, &SyntaxError{
				Pos:     n.Span.End,
				Kind:    MsgMissingField,
				Message: fmt.Sprintf("missing %s in %s", spec.Name, kind),
			}
		}
	}
	return n, nil
}

// builder accumulates the children of one node while the parser consumes
// its tokens.
type builder struct {
	p        *Parser
	rule     Rule
	children []*Node
	names    []string
}

func (p *Parser) open(rule Rule) *builder {
	return &builder{p: p, rule: rule}
}

func (p *Parser) openKind(kind NodeKind) *builder {
	return p.open(RuleFor(kind))
}

// add appends a positional child. nil is ignored.
func (b *builder) add(n *Node) {
	if n == nil {
		return
	}
	b.children = append(b.children, n)
	b.names = append(b.names, "")
}

// set appends n under a field name. nil is ignored so that a missing
// operand surfaces as a missing field.
func (b *builder) set(name string, n *Node) {
	if n == nil {
		return
	}
	b.children = append(b.children, n)
	b.names = append(b.names, name)
}

// tok appends an anonymous leaf for t.
func (b *builder) tok(t Token) {
	b.add(anonymous(t))
}

// setTok appends an anonymous leaf for t under a field name.
func (b *builder) setTok(name string, t Token) {
	b.set(name, anonymous(t))
}

func (b *builder) empty() bool {
	return len(b.children) == 0
}

// done builds the node. Schema violations are bugs in this package and
// panic; missing required fields are recorded as syntax errors.
func (b *builder) done() *Node {
	n, err := Build(b.rule, b.children, b.names)
	switch e := err.(type) {
	case nil:
	case *SchemaError:
		panic(e)
	case *SyntaxError:
		if n.Span.IsZero() {
			e.Pos = b.p.prevEnd
		}
		b.p.addError(e)
	}
	if n.Span.IsZero() {
		n.Span = Span{Start: b.p.prevEnd, End: b.p.prevEnd}
	}
	return n
}

// anonymous makes an unnamed leaf: punctuation, operators, keywords.
func anonymous(t Token) *Node {
	tok := t
	return &Node{Kind: KindToken, Span: t.Span, Token: &tok, rule: RuleFor(KindToken)}
}

var partRules = map[TokenKind]Rule{
	TokenStringFragment: RuleFor(KindStringFragment),
	TokenEscapeSequence: RuleFor(KindEscapeSequence),
	TokenHTMLCharRef:    RuleFor(KindHTMLCharacterReference),
	TokenRegexPattern:   RuleFor(KindRegexPattern),
	TokenRegexFlags:     RuleFor(KindRegexFlags),
}

var partFields = map[TokenKind]string{
	TokenRegexPattern: "pattern",
	TokenRegexFlags:   "flags",
}

// leaf makes a named leaf for t emitted as rule's kind. Strings and
// regular expressions expand into one child per part.
func leaf(rule Rule, t Token) *Node {
	if len(t.Parts) == 0 {
		tok := t
		return &Node{Kind: rule.Kind(), Span: t.Span, Token: &tok, rule: rule}
	}
	children := make([]*Node, 0, len(t.Parts))
	names := make([]string, 0, len(t.Parts))
	for _, part := range t.Parts {
		if r, ok := partRules[part.Kind]; ok {
			children = append(children, leaf(r, part))
		} else {
			children = append(children, anonymous(part))
		}
		names = append(names, partFields[part.Kind])
	}
	n, err := Build(rule, children, names)
	if se, ok := err.(*SchemaError); ok {
		panic(se)
	}
	return n
}
