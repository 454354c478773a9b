package parser

func (p *Parser) parseStatement() *Node {
	tok := p.peekWith(HintOperand)
	switch tok.Kind {
	case TokenLBrace:
		if p.objectShapeAhead() {
			return p.parseExpressionStatement()
		}
		if mustResolve(RuleFor(KindStatementBlock), ruleObject, SiteStatement) == RuleFor(KindStatementBlock) {
			return p.parseBlock()
		}
	case TokenSemicolon:
		b := p.openKind(KindEmptyStatement)
		b.tok(p.next())
		return b.done()
	case TokenVar:
		return p.parseVariableDeclaration(false)
	case TokenConst:
		return p.parseVariableDeclaration(false)
	case TokenLet:
		if p.letStartsDeclaration() &&
			mustResolve(RuleFor(KindLexicalDeclaration), RuleFor(KindIdentifier), SiteStatement) == RuleFor(KindLexicalDeclaration) {
			return p.parseVariableDeclaration(false)
		}
	case TokenFunction:
		if p.functionDeclarationWins(p.peekAt(1)) {
			return p.parseFunction(true)
		}
	case TokenAsync:
		if next := p.peekAt(1); next.Kind == TokenFunction && Allows(ProdAsyncFunction, next) &&
			p.functionDeclarationWins(p.peekAt(2)) {
			return p.parseFunction(true)
		}
	case TokenClass:
		if mustResolve(RuleFor(KindClassDeclaration), RuleFor(KindClass), SiteStatement) == RuleFor(KindClassDeclaration) {
			return p.parseClass(true, nil)
		}
	case TokenAt:
		return p.parseDecoratedStatement()
	case TokenIf:
		return p.parseIf()
	case TokenFor:
		return p.parseFor()
	case TokenWhile:
		return p.parseWhile()
	case TokenDo:
		return p.parseDo()
	case TokenTry:
		return p.parseTry()
	case TokenSwitch:
		return p.parseSwitch()
	case TokenWith:
		return p.parseWith()
	case TokenBreak:
		return p.parseJump(KindBreakStatement, ProdBreak)
	case TokenContinue:
		return p.parseJump(KindContinueStatement, ProdContinue)
	case TokenReturn:
		return p.parseReturn()
	case TokenThrow:
		return p.parseThrow()
	case TokenDebugger:
		b := p.openKind(KindDebuggerStatement)
		b.tok(p.next())
		p.semicolon(b)
		return b.done()
	case TokenImport:
		if next := p.peekAt(1); next.Kind != TokenLParen && next.Kind != TokenDot &&
			mustResolve(RuleFor(KindImportStatement), RuleImportCallee, SiteStatement) == RuleFor(KindImportStatement) {
			return p.parseImport()
		}
	case TokenExport:
		return p.parseExport(nil)
	}

	if isIdentifier(tok) && p.peekAt(1).Kind == TokenColon {
		if mustResolve(ruleLabeled, RulePropertyName, SiteStatement) == ruleLabeled {
			return p.parseLabeled()
		}
	}
	return p.parseExpressionStatement()
}

// objectShapeAhead reports whether the '{' at statement start can only open
// an object literal: its first member is a quoted or numeric key followed by
// ':', a spread, a generator method, or an accessor or async method.
func (p *Parser) objectShapeAhead() bool {
	first := p.peekAt(1)
	switch first.Kind {
	case TokenEllipsis, TokenStar:
		return true
	case TokenString, TokenNumber:
		return p.peekAt(2).Kind == TokenColon
	case TokenGet, TokenSet, TokenAsync:
		second := p.peekAt(2)
		if second.NewlineBefore {
			return false
		}
		switch second.Kind {
		case TokenString, TokenNumber, TokenLBracket, TokenPrivateIdent:
			return true
		}
		if !isPropertyName(second) {
			return false
		}
		if first.Kind == TokenAsync {
			// async function f and async x => x begin statements.
			return p.peekAt(3).Kind == TokenLParen
		}
		return true
	}
	return false
}

// functionDeclarationWins resolves a function at statement start, where
// afterKeyword is the token following 'function'.
func (p *Parser) functionDeclarationWins(afterKeyword Token) bool {
	decl, expr := RuleFor(KindFunctionDeclaration), RuleFor(KindFunctionExpression)
	if afterKeyword.Kind == TokenStar {
		decl, expr = RuleFor(KindGeneratorFunctionDeclaration), RuleFor(KindGeneratorFunction)
	}
	return mustResolve(decl, expr, SiteStatement) == decl
}

// letStartsDeclaration reports whether the 'let' at statement start begins
// a lexical declaration rather than an expression.
func (p *Parser) letStartsDeclaration() bool {
	next := p.peekAt(1)
	switch next.Kind {
	case TokenLBracket, TokenLBrace:
		return true
	}
	return isIdentifier(next) && next.Kind != TokenOf && next.Kind != TokenIn
}

func (p *Parser) parseExpressionStatement() *Node {
	b := p.openKind(KindExpressionStatement)
	b.add(p.parseExpressions())
	p.semicolon(b)
	return b.done()
}

func (p *Parser) parseBlock() *Node {
	b := p.openKind(KindStatementBlock)
	if !p.expect(b, TokenLBrace) {
		return b.done()
	}
	p.parseStatementList(b, TokenRBrace)
	p.expect(b, TokenRBrace)
	return b.done()
}

// parseVariableDeclaration parses var, let and const declarations. Inside a
// for header the trailing semicolon belongs to the loop.
func (p *Parser) parseVariableDeclaration(inFor bool) *Node {
	kw := p.next()
	kind := KindLexicalDeclaration
	if kw.Kind == TokenVar {
		kind = KindVariableDeclaration
	}
	b := p.openKind(kind)
	if kind == KindLexicalDeclaration {
		b.setTok("kind", kw)
	} else {
		b.tok(kw)
	}
	p.parseDeclarators(b, nil)
	if !inFor {
		p.semicolon(b)
	}
	return b.done()
}

// parseDeclarators parses a comma-separated declarator list. first, if
// set, is an already parsed binding name of the first declarator.
func (p *Parser) parseDeclarators(b *builder, first *Node) {
	for {
		d := p.openKind(KindVariableDeclarator)
		if first != nil {
			d.set("name", first)
			first = nil
		} else {
			d.set("name", p.parseBindingTarget())
		}
		if p.check(TokenAssign) {
			d.tok(p.next())
			d.set("value", p.parseAssignment())
		}
		b.add(d.done())
		if !p.check(TokenComma) {
			return
		}
		b.tok(p.next())
	}
}

// parseParenthesizedCondition parses '(' expression ')' into b, with the
// expression under field.
func (p *Parser) parseParenthesizedCondition(b *builder, field string) {
	p.expect(b, TokenLParen)
	saved := p.noIn
	p.noIn = false
	b.set(field, p.parseExpressions())
	p.noIn = saved
	p.expect(b, TokenRParen)
}

func (p *Parser) parseIf() *Node {
	b := p.openKind(KindIfStatement)
	b.tok(p.next())
	p.parseParenthesizedCondition(b, "condition")
	b.set("consequence", p.parseStatement())
	if p.peekWith(HintOperand).Kind == TokenElse {
		// The innermost open if takes the else.
		if mustResolve(RuleFor(KindIfStatement), RuleElseClause, SiteStatement) == RuleElseClause {
			b.tok(p.next())
			b.set("alternative", p.parseStatement())
		}
	}
	return b.done()
}

func (p *Parser) parseFor() *Node {
	b := p.openKind(KindForStatement)
	b.tok(p.next())
	isAwait := false
	if p.check(TokenAwait) {
		b.tok(p.next())
		isAwait = true
	}
	p.expect(b, TokenLParen)

	tok := p.peekWith(HintOperand)
	switch {
	case tok.Kind == TokenSemicolon:
		b.tok(p.next())
	case tok.Kind == TokenVar || tok.Kind == TokenConst || (tok.Kind == TokenLet && p.letStartsDeclaration()):
		kw := p.next()
		target := p.parseBindingTarget()
		if k := p.peek().Kind; k == TokenIn || k == TokenOf {
			return p.finishForIn(p.openKind(KindForInStatement), b, kw, target)
		}
		kind := KindLexicalDeclaration
		if kw.Kind == TokenVar {
			kind = KindVariableDeclaration
		}
		d := p.openKind(kind)
		if kind == KindLexicalDeclaration {
			d.setTok("kind", kw)
		} else {
			d.tok(kw)
		}
		p.noIn = true
		p.parseDeclarators(d, target)
		p.noIn = false
		b.set("initializer", d.done())
		p.expect(b, TokenSemicolon)
	default:
		p.noIn = true
		init := p.parseExpressions()
		p.noIn = false
		if k := p.peek().Kind; k == TokenIn || k == TokenOf {
			return p.finishForIn(p.openKind(KindForInStatement), b, Token{}, p.toAssignmentTarget(init))
		}
		b.set("initializer", init)
		p.expect(b, TokenSemicolon)
	}
	if isAwait {
		p.unexpected(p.peek(), TokenOf)
	}

	if !p.check(TokenSemicolon) {
		b.set("condition", p.parseExpressions())
	}
	p.expect(b, TokenSemicolon)
	if !p.check(TokenRParen) {
		b.set("increment", p.parseExpressions())
	}
	p.expect(b, TokenRParen)
	b.set("body", p.parseStatement())
	return b.done()
}

// finishForIn moves the tokens already consumed for a for statement into a
// for_in_statement and parses the rest of it.
func (p *Parser) finishForIn(b, header *builder, kw Token, left *Node) *Node {
	for i, c := range header.children {
		b.children = append(b.children, c)
		b.names = append(b.names, header.names[i])
	}
	if kw.Literal != "" {
		b.setTok("kind", kw)
	}
	b.set("left", left)
	op := p.next()
	b.setTok("operator", op)
	if op.Kind == TokenOf {
		b.set("right", p.parseAssignment())
	} else {
		b.set("right", p.parseExpressions())
	}
	p.expect(b, TokenRParen)
	b.set("body", p.parseStatement())
	return b.done()
}

func (p *Parser) parseWhile() *Node {
	b := p.openKind(KindWhileStatement)
	b.tok(p.next())
	p.parseParenthesizedCondition(b, "condition")
	b.set("body", p.parseStatement())
	return b.done()
}

func (p *Parser) parseDo() *Node {
	b := p.openKind(KindDoStatement)
	b.tok(p.next())
	b.set("body", p.parseStatement())
	p.expect(b, TokenWhile)
	p.parseParenthesizedCondition(b, "condition")
	// A semicolon is always inserted after do-while.
	if p.check(TokenSemicolon) {
		b.tok(p.next())
	} else {
		p.autoSemicolon()
	}
	return b.done()
}

func (p *Parser) parseWith() *Node {
	b := p.openKind(KindWithStatement)
	b.tok(p.next())
	p.parseParenthesizedCondition(b, "object")
	b.set("body", p.parseStatement())
	return b.done()
}

func (p *Parser) parseTry() *Node {
	b := p.openKind(KindTryStatement)
	b.tok(p.next())
	b.set("body", p.parseBlock())
	handled := false
	if p.check(TokenCatch) {
		handled = true
		c := p.openKind(KindCatchClause)
		c.tok(p.next())
		if p.check(TokenLParen) {
			c.tok(p.next())
			c.set("parameter", p.parseBindingTarget())
			p.expect(c, TokenRParen)
		}
		c.set("body", p.parseBlock())
		b.set("handler", c.done())
	}
	if p.check(TokenFinally) {
		handled = true
		f := p.openKind(KindFinallyClause)
		f.tok(p.next())
		f.set("body", p.parseBlock())
		b.set("finalizer", f.done())
	}
	if !handled {
		p.unexpected(p.peek(), TokenCatch, TokenFinally)
	}
	return b.done()
}

func (p *Parser) parseSwitch() *Node {
	b := p.openKind(KindSwitchStatement)
	b.tok(p.next())
	p.parseParenthesizedCondition(b, "value")

	body := p.openKind(KindSwitchBody)
	if p.expect(body, TokenLBrace) {
		for {
			tok := p.peekWith(HintOperand)
			if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
				break
			}
			var c *builder
			switch tok.Kind {
			case TokenCase:
				c = p.openKind(KindSwitchCase)
				c.tok(p.next())
				c.set("value", p.parseExpressions())
			case TokenDefault:
				c = p.openKind(KindSwitchDefault)
				c.tok(p.next())
			default:
				body.add(p.skipToken())
				continue
			}
			p.expect(c, TokenColon)
			stmts := p.openKind(KindProgram)
			p.parseStatementList(stmts, TokenCase, TokenDefault, TokenRBrace)
			for _, s := range stmts.children {
				c.set("body", s)
			}
			body.add(c.done())
		}
		p.expect(body, TokenRBrace)
	}
	b.set("body", body.done())
	return b.done()
}

// parseJump parses break and continue with an optional label on the same
// line.
func (p *Parser) parseJump(kind NodeKind, prod Production) *Node {
	b := p.openKind(kind)
	b.tok(p.next())
	if next := p.peek(); !ForcesInsertion(prod, next) && isIdentifier(next) {
		b.set("label", leaf(RuleLabel, p.next()))
	}
	p.semicolon(b)
	return b.done()
}

func (p *Parser) parseReturn() *Node {
	b := p.openKind(KindReturnStatement)
	b.tok(p.next())
	if next := p.peekWith(HintOperand); !ForcesInsertion(ProdReturn, next) {
		b.add(p.parseExpressions())
	}
	p.semicolon(b)
	return b.done()
}

func (p *Parser) parseThrow() *Node {
	b := p.openKind(KindThrowStatement)
	b.tok(p.next())
	next := p.peekWith(HintOperand)
	if ForcesInsertion(ProdThrow, next) {
		p.addError(&SyntaxError{Pos: next.Span.Start, Kind: MsgUnexpectedToken, Message: "expected an expression after throw on the same line", Got: &next})
	} else {
		b.add(p.parseExpressions())
	}
	p.semicolon(b)
	return b.done()
}

func (p *Parser) parseLabeled() *Node {
	b := p.openKind(KindLabeledStatement)
	b.set("label", leaf(RuleLabel, p.next()))
	b.tok(p.next())
	b.set("body", p.parseStatement())
	return b.done()
}

// parseDecoratedStatement parses decorators ahead of a class or export.
func (p *Parser) parseDecoratedStatement() *Node {
	var decorators []*Node
	for p.check(TokenAt) {
		decorators = append(decorators, p.parseDecorator())
	}
	switch p.peek().Kind {
	case TokenExport:
		return p.parseExport(decorators)
	case TokenClass:
		return p.parseClass(true, decorators)
	}
	// Decorators on anything else: keep them in an ERROR node.
	err := p.unexpected(p.peek(), TokenClass, TokenExport)
	n := p.errorNode(err, nil)
	for _, d := range decorators {
		n.Children = append(n.Children, d)
		n.fields = append(n.fields, "")
		n.Span = n.Span.Union(d.Span)
	}
	return n
}
