package parser

// parseClass parses class declarations and expressions. decorators were
// consumed by the caller.
func (p *Parser) parseClass(declaration bool, decorators []*Node) *Node {
	kind := KindClass
	if declaration {
		kind = KindClassDeclaration
	}
	b := p.openKind(kind)
	for _, d := range decorators {
		b.set("decorator", d)
	}
	if !p.expect(b, TokenClass) {
		return b.done()
	}
	if tok := p.peek(); isIdentifier(tok) {
		b.set("name", identifier(p.next()))
	} else if declaration {
		p.unexpected(tok, TokenIdent)
	}
	if p.check(TokenExtends) {
		h := p.openKind(KindClassHeritage)
		h.tok(p.next())
		h.add(p.parseLeftHandSide())
		b.add(h.done())
	}
	b.set("body", p.parseClassBody())
	return b.done()
}

func (p *Parser) parseClassBody() *Node {
	b := p.openKind(KindClassBody)
	if !p.expect(b, TokenLBrace) {
		return b.done()
	}
	for {
		tok := p.peekWith(HintOperand)
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenSemicolon {
			b.tok(p.next())
			continue
		}
		progress := p.mustProgress()
		if m := p.parseClassMember(); m != nil {
			b.set("member", m)
		}
		if !progress() {
			b.add(p.skipToken())
		}
	}
	p.expect(b, TokenRBrace)
	return b.done()
}

func (p *Parser) parseClassMember() *Node {
	var decorators []*Node
	for p.check(TokenAt) {
		decorators = append(decorators, p.parseDecorator())
	}

	if p.check(TokenStatic) && p.peekAt(1).Kind == TokenLBrace {
		if mustResolve(ruleStaticBlock, RulePropertyName, SiteStatement) == ruleStaticBlock {
			b := p.openKind(KindClassStaticBlock)
			b.tok(p.next())
			b.set("body", p.parseBlock())
			return b.done()
		}
	}

	var modifiers []Token
	if p.check(TokenStatic) && p.staticModifierAhead() {
		modifiers = append(modifiers, p.next())
	}
	method := false
	for {
		tok := p.peek()
		if (tok.Kind == TokenAsync || tok.Kind == TokenGet || tok.Kind == TokenSet) && p.modifierAhead() {
			modifiers = append(modifiers, p.next())
			method = true
			continue
		}
		if tok.Kind == TokenStar {
			modifiers = append(modifiers, p.next())
			method = true
		}
		break
	}

	key := p.parsePropertyKey()
	if key == nil {
		return nil
	}
	if method || p.check(TokenLParen) {
		return p.parseMethod(decorators, modifiers, key)
	}

	b := p.openKind(KindFieldDefinition)
	for _, d := range decorators {
		b.set("decorator", d)
	}
	for _, m := range modifiers {
		b.tok(m)
	}
	b.set("property", key)
	if p.check(TokenAssign) {
		b.tok(p.next())
		b.set("value", p.parseAssignment())
	}
	p.semicolon(b)
	return b.done()
}

// staticModifierAhead reports whether 'static' modifies the member that
// follows rather than naming it.
func (p *Parser) staticModifierAhead() bool {
	next := p.peekAt(1)
	switch next.Kind {
	case TokenLParen, TokenAssign, TokenSemicolon, TokenRBrace, TokenEOF:
		return false
	}
	if next.NewlineBefore && !isPropertyName(next) && next.Kind != TokenLBracket &&
		next.Kind != TokenString && next.Kind != TokenNumber && next.Kind != TokenPrivateIdent && next.Kind != TokenStar {
		return false
	}
	return true
}
