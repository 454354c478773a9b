package parser

// parseJSXElement parses an element or fragment at '<'. Tag tokens are
// scanned under HintJSXTag and children under HintJSXChild. The token
// after the final '>' is left unscanned for the caller.
func (p *Parser) parseJSXElement() *Node {
	return p.parseJSXFrom(p.next())
}

// parseJSXFrom parses an element whose '<' has been consumed.
func (p *Parser) parseJSXFrom(lt Token) *Node {
	open, selfClosing := p.parseJSXOpening(lt)
	if selfClosing {
		return open
	}

	b := p.openKind(KindJSXElement)
	b.set("open_tag", open)
	for {
		tok := p.peekWith(HintJSXChild)
		switch tok.Kind {
		case TokenEOF:
			p.unexpected(tok, TokenLT)
			return b.done()
		case TokenJSXText:
			b.add(leaf(RuleFor(KindJSXText), p.next()))
		case TokenHTMLCharRef:
			b.add(leaf(RuleFor(KindHTMLCharacterReference), p.next()))
		case TokenLBrace:
			b.add(p.parseJSXExpression(true))
		case TokenLT:
			child := p.next()
			if p.peekWith(HintJSXTag).Kind != TokenSlash {
				b.add(p.parseJSXFrom(child))
				continue
			}
			closing := p.parseJSXClosing(child)
			if !p.sameText(open.ChildByField("name"), closing.ChildByField("name")) {
				p.addError(&SyntaxError{
					Pos:     closing.Span.Start,
					Kind:    MsgMismatchedJSXTag,
					Message: "expected corresponding closing tag for " + p.jsxTagName(open),
				})
			}
			b.set("close_tag", closing)
			return b.done()
		default:
			b.add(p.skipToken())
		}
	}
}

// parseJSXOpening parses the rest of an opening tag. It reports whether
// the tag closed itself, in which case the node is the whole element.
func (p *Parser) parseJSXOpening(lt Token) (*Node, bool) {
	if p.peekWith(HintJSXTag).Kind == TokenGT {
		b := p.open(RuleJSXFragmentOpen)
		b.tok(lt)
		b.tok(p.next())
		return b.done(), false
	}

	b := p.openKind(KindJSXOpeningElement)
	b.tok(lt)
	b.set("name", p.parseJSXName())
	for {
		tok := p.peekWith(HintJSXTag)
		switch {
		case tok.Kind == TokenGT:
			b.tok(p.next())
			return b.done(), false
		case tok.Kind == TokenSlash:
			b.rule = RuleFor(KindJSXSelfClosingElement)
			b.tok(p.next())
			p.expectJSX(b, TokenGT)
			return b.done(), true
		case tok.Kind == TokenIdent:
			b.set("attribute", p.parseJSXAttribute())
		case tok.Kind == TokenLBrace:
			b.set("attribute", p.parseJSXExpression(false))
		case tok.Kind == TokenEOF:
			p.unexpected(tok, TokenGT)
			return b.done(), false
		default:
			b.add(p.skipToken())
		}
	}
}

// parseJSXClosing parses '</name>' or '</>' after its '<'. The current
// token is the '/'.
func (p *Parser) parseJSXClosing(lt Token) *Node {
	slash := p.next()
	if p.peekWith(HintJSXTag).Kind == TokenGT {
		b := p.open(RuleJSXFragmentClose)
		b.tok(lt)
		b.tok(slash)
		b.tok(p.next())
		return b.done()
	}
	b := p.openKind(KindJSXClosingElement)
	b.tok(lt)
	b.tok(slash)
	b.set("name", p.parseJSXName())
	p.expectJSX(b, TokenGT)
	return b.done()
}

// parseJSXName parses a tag name: an identifier, a dotted member name, or
// a namespace name.
func (p *Parser) parseJSXName() *Node {
	tok := p.peekWith(HintJSXTag)
	if tok.Kind != TokenIdent {
		p.unexpected(tok, TokenIdent)
		return nil
	}
	name := leaf(RuleJSXIdentifier, p.next())
	switch p.peekWith(HintJSXTag).Kind {
	case TokenColon:
		return p.parseJSXNamespaceName(name, RuleJSXIdentifier)
	case TokenDot:
		for p.peekWith(HintJSXTag).Kind == TokenDot {
			b := p.open(RuleJSXMemberName)
			b.set("object", name)
			b.tok(p.next())
			if prop := p.peekWith(HintJSXTag); prop.Kind == TokenIdent {
				b.set("property", leaf(RuleFor(KindPropertyIdentifier), p.next()))
			} else {
				p.unexpected(prop, TokenIdent)
			}
			name = b.done()
		}
	}
	return name
}

// parseJSXNamespaceName parses ':' name after the namespace part.
func (p *Parser) parseJSXNamespaceName(ns *Node, rule Rule) *Node {
	b := p.openKind(KindJSXNamespaceName)
	b.add(ns)
	b.tok(p.next())
	if tok := p.peekWith(HintJSXTag); tok.Kind == TokenIdent {
		b.add(leaf(rule, p.next()))
	} else {
		p.unexpected(tok, TokenIdent)
	}
	return b.done()
}

func (p *Parser) parseJSXAttribute() *Node {
	b := p.openKind(KindJSXAttribute)
	name := leaf(RuleJSXAttributeName, p.next())
	if p.peekWith(HintJSXTag).Kind == TokenColon {
		name = p.parseJSXNamespaceName(leaf(RuleJSXIdentifier, *name.Token), RuleJSXIdentifier)
	}
	b.add(name)
	if p.peekWith(HintJSXTag).Kind != TokenAssign {
		return b.done()
	}
	b.tok(p.next())
	switch tok := p.peekWith(HintJSXTag); tok.Kind {
	case TokenString:
		b.add(leaf(RuleJSXString, p.next()))
	case TokenLBrace:
		b.add(p.parseJSXExpression(false))
	case TokenLT:
		b.add(p.parseJSXFrom(p.next()))
	default:
		p.unexpected(tok, TokenString, TokenLBrace)
	}
	return b.done()
}

// parseJSXExpression parses '{' ... '}'. Children may be empty; spread is
// allowed in children and attribute position.
func (p *Parser) parseJSXExpression(child bool) *Node {
	b := p.openKind(KindJSXExpression)
	b.tok(p.next())
	switch tok := p.peekWith(HintOperand); {
	case tok.Kind == TokenEllipsis:
		b.add(p.parseSpread())
	case tok.Kind == TokenRBrace:
		if !child {
			p.unexpected(tok)
		}
	default:
		b.add(p.parseExpressions())
	}
	if tok := p.peek(); tok.Kind == TokenRBrace {
		b.tok(p.next())
	} else {
		b.add(p.skipJSXExpression(p.unexpected(tok, TokenRBrace)))
	}
	return b.done()
}

// skipJSXExpression skips to the '}' that closes the current expression
// container and consumes it.
func (p *Parser) skipJSXExpression(err *SyntaxError) *Node {
	var skipped []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			break
		}
		skipped = append(skipped, p.next())
		switch tok.Kind {
		case TokenLBrace, TokenDollarBrace:
			depth++
		case TokenRBrace:
			if depth == 0 {
				return p.errorNode(err, skipped)
			}
			depth--
		}
	}
	if len(skipped) == 0 {
		return nil
	}
	return p.errorNode(err, skipped)
}

// expectJSX is expect for tokens inside a tag.
func (p *Parser) expectJSX(b *builder, kind TokenKind) bool {
	p.peekWith(HintJSXTag)
	return p.expect(b, kind)
}

func (p *Parser) jsxTagName(open *Node) string {
	if name := open.ChildByField("name"); name != nil {
		return "<" + name.Text(p.input) + ">"
	}
	return "<>"
}
