package parser

func (p *Parser) parseImport() *Node {
	b := p.openKind(KindImportStatement)
	b.tok(p.next())
	if !p.check(TokenString) {
		b.add(p.parseImportClause())
		if !p.expect(b, TokenFrom) {
			b.add(p.synchronize())
			return b.done()
		}
	}
	p.parseModuleSource(b)
	p.semicolon(b)
	return b.done()
}

// parseModuleSource parses the source string and any import attributes.
func (p *Parser) parseModuleSource(b *builder) {
	if tok := p.peek(); tok.Kind == TokenString {
		b.set("source", leaf(RuleFor(KindString), p.next()))
	} else {
		p.unexpected(tok, TokenString)
		return
	}
	if tok := p.peek(); tok.Kind == TokenWith && !tok.NewlineBefore {
		a := p.openKind(KindImportAttribute)
		a.tok(p.next())
		if p.check(TokenLBrace) {
			a.add(p.parseObject())
		} else {
			p.unexpected(p.peek(), TokenLBrace)
		}
		b.add(a.done())
	}
}

func (p *Parser) parseImportClause() *Node {
	b := p.openKind(KindImportClause)
	if isIdentifier(p.peek()) {
		b.add(identifier(p.next()))
		if !p.check(TokenComma) {
			return b.done()
		}
		b.tok(p.next())
	}
	switch p.peek().Kind {
	case TokenStar:
		b.add(p.parseNamespaceImport())
	case TokenLBrace:
		b.add(p.parseNamedImports())
	default:
		p.unexpected(p.peek(), TokenStar, TokenLBrace)
	}
	return b.done()
}

func (p *Parser) parseNamespaceImport() *Node {
	b := p.openKind(KindNamespaceImport)
	b.tok(p.next())
	if p.expect(b, TokenAs) {
		if tok := p.peek(); isIdentifier(tok) {
			b.add(identifier(p.next()))
		} else {
			p.unexpected(tok, TokenIdent)
		}
	}
	return b.done()
}

func (p *Parser) parseNamedImports() *Node {
	b := p.openKind(KindNamedImports)
	b.tok(p.next())
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		b.add(p.parseSpecifier(KindImportSpecifier))
		if !p.check(TokenComma) {
			break
		}
		b.tok(p.next())
	}
	p.expect(b, TokenRBrace)
	return b.done()
}

// parseSpecifier parses `name` or `name as alias` in import and export
// lists. Module export names may be strings or reserved words.
func (p *Parser) parseSpecifier(kind NodeKind) *Node {
	b := p.openKind(kind)
	b.set("name", p.parseModuleExportName())
	if p.check(TokenAs) {
		b.tok(p.next())
		b.set("alias", p.parseModuleExportName())
	}
	return b.done()
}

func (p *Parser) parseModuleExportName() *Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokenString:
		return leaf(RuleFor(KindString), p.next())
	case tok.Kind == TokenIdent:
		return leaf(RuleFor(KindIdentifier), p.next())
	case tok.Kind.IsKeyword():
		return leaf(RuleReservedIdentifier, p.next())
	}
	p.unexpected(tok, TokenIdent, TokenString)
	return nil
}

func (p *Parser) parseExport(decorators []*Node) *Node {
	b := p.openKind(KindExportStatement)
	for _, d := range decorators {
		b.set("decorator", d)
	}
	b.tok(p.next())

	tok := p.peekWith(HintOperand)
	switch tok.Kind {
	case TokenStar:
		star := p.next()
		if p.check(TokenAs) {
			ns := p.openKind(KindNamespaceExport)
			ns.tok(star)
			ns.tok(p.next())
			ns.add(p.parseModuleExportName())
			b.add(ns.done())
		} else {
			b.tok(star)
		}
		if p.expect(b, TokenFrom) {
			p.parseModuleSource(b)
		}
		p.semicolon(b)
	case TokenLBrace:
		c := p.openKind(KindExportClause)
		c.tok(p.next())
		for !p.check(TokenRBrace) && !p.check(TokenEOF) {
			c.add(p.parseSpecifier(KindExportSpecifier))
			if !p.check(TokenComma) {
				break
			}
			c.tok(p.next())
		}
		p.expect(c, TokenRBrace)
		b.add(c.done())
		if p.check(TokenFrom) {
			b.tok(p.next())
			p.parseModuleSource(b)
		}
		p.semicolon(b)
	case TokenDefault:
		b.tok(p.next())
		p.parseExportDefault(b)
	case TokenAt:
		var more []*Node
		for p.check(TokenAt) {
			more = append(more, p.parseDecorator())
		}
		b.set("declaration", p.parseClass(true, more))
	default:
		if decl := p.parseExportDeclaration(); decl != nil {
			b.set("declaration", decl)
		} else {
			p.unexpected(p.peek())
			b.add(p.synchronize())
		}
	}
	return b.done()
}

// parseExportDeclaration parses the declaration after `export`, or returns
// nil if the current token cannot start one.
func (p *Parser) parseExportDeclaration() *Node {
	switch tok := p.peek(); tok.Kind {
	case TokenVar, TokenConst, TokenLet:
		return p.parseVariableDeclaration(false)
	case TokenFunction:
		return p.parseFunction(true)
	case TokenAsync:
		if next := p.peekAt(1); next.Kind == TokenFunction && Allows(ProdAsyncFunction, next) {
			return p.parseFunction(true)
		}
	case TokenClass:
		return p.parseClass(true, nil)
	}
	return nil
}

// parseExportDefault parses what follows `export default`. Named function
// and class declarations are declarations; anything else is a value.
func (p *Parser) parseExportDefault(b *builder) {
	tok := p.peekWith(HintOperand)
	switch tok.Kind {
	case TokenFunction, TokenAsync, TokenClass:
		if p.namedDeclarationAhead() {
			b.set("declaration", p.parseExportDeclaration())
			return
		}
	case TokenAt:
		var decorators []*Node
		for p.check(TokenAt) {
			decorators = append(decorators, p.parseDecorator())
		}
		if p.check(TokenClass) && isIdentifier(p.peekAt(1)) {
			b.set("declaration", p.parseClass(true, decorators))
		} else {
			b.set("value", p.parseClass(false, decorators))
		}
		return
	}
	value := p.parseAssignment()
	b.set("value", value)
	switch value.Kind {
	case KindFunctionExpression, KindGeneratorFunction, KindClass:
		if p.check(TokenSemicolon) {
			b.tok(p.next())
		}
	default:
		p.semicolon(b)
	}
}

// namedDeclarationAhead reports whether the function or class at the
// current position has a name.
func (p *Parser) namedDeclarationAhead() bool {
	i := 1
	switch p.peek().Kind {
	case TokenAsync:
		if p.peekAt(1).Kind != TokenFunction {
			return false
		}
		i = 2
	case TokenClass:
		next := p.peekAt(1)
		return isIdentifier(next)
	}
	next := p.peekAt(i)
	if next.Kind == TokenStar {
		next = p.peekAt(i + 1)
	}
	return isIdentifier(next)
}
