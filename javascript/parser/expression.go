package parser

// parseExpressions parses a comma-separated expression list, producing a
// sequence_expression when there is more than one.
func (p *Parser) parseExpressions() *Node {
	first := p.parseAssignment()
	if !p.check(TokenComma) {
		return first
	}
	b := p.openKind(KindSequenceExpression)
	b.add(first)
	for p.check(TokenComma) {
		b.tok(p.next())
		b.add(p.parseAssignment())
	}
	return b.done()
}

func (p *Parser) parseAssignment() *Node {
	tok := p.peekWith(HintOperand)
	switch {
	case tok.Kind == TokenYield:
		return p.parseYield()
	case tok.Kind == TokenAsync:
		next := p.peekAt(1)
		if isIdentifier(next) && !next.NewlineBefore {
			if arrow := p.peekAt(2); arrow.Kind == TokenArrow && Allows(ProdAsyncArrow, arrow) && arrowWins() {
				return p.parseSingleParamArrow(true)
			}
		}
		if next.Kind == TokenArrow && Allows(ProdArrow, next) && arrowWins() {
			return p.parseSingleParamArrow(false)
		}
	case isIdentifier(tok):
		if next := p.peekAt(1); next.Kind == TokenArrow && Allows(ProdArrow, next) && arrowWins() {
			return p.parseSingleParamArrow(false)
		}
	}

	left := p.parseConditional()
	if left.Kind == KindArrowFunction {
		return left
	}
	op := p.peek()
	if !op.Kind.IsAssign() {
		return left
	}
	var b *builder
	if op.Kind == TokenAssign {
		b = p.openKind(KindAssignmentExpression)
		left = p.toAssignmentTarget(left)
	} else {
		b = p.openKind(KindAugmentedAssignmentExpression)
	}
	b.set("left", left)
	if op.Kind == TokenAssign {
		b.tok(p.next())
	} else {
		b.setTok("operator", p.next())
	}
	b.set("right", p.parseAssignment())
	return b.done()
}

func (p *Parser) parseYield() *Node {
	b := p.openKind(KindYieldExpression)
	b.tok(p.next())
	next := p.peek()
	if next.Kind == TokenStar && Allows(ProdYieldDelegate, next) {
		b.tok(p.next())
		b.add(p.parseAssignment())
		return b.done()
	}
	if !ForcesInsertion(ProdYield, next) && startsOperand(next) {
		b.add(p.parseAssignment())
	}
	return b.done()
}

// parseSingleParamArrow parses `x => body` and `async x => body`.
func (p *Parser) parseSingleParamArrow(async bool) *Node {
	b := p.openKind(KindArrowFunction)
	if async {
		b.tok(p.next())
	}
	b.set("parameter", identifier(p.next()))
	return p.parseArrowBody(b)
}

// parseArrowBody consumes '=>' and the body into b.
func (p *Parser) parseArrowBody(b *builder) *Node {
	p.expect(b, TokenArrow)
	if p.peekWith(HintOperand).Kind == TokenLBrace {
		b.set("body", p.parseBlock())
	} else {
		b.set("body", p.parseAssignment())
	}
	return b.done()
}

func (p *Parser) parseConditional() *Node {
	cond := p.parseBinary(1)
	if cond.Kind == KindArrowFunction || !p.check(TokenTernaryQmark) {
		return cond
	}
	b := p.openKind(KindTernaryExpression)
	b.set("condition", cond)
	b.tok(p.next())
	saved := p.noIn
	p.noIn = false
	b.set("consequence", p.parseAssignment())
	p.noIn = saved
	p.expect(b, TokenColon)
	b.set("alternative", p.parseAssignment())
	return b.done()
}

// arrowWins resolves an identifier followed by '=>' on the same line.
func arrowWins() bool {
	return mustResolve(ruleArrow, RuleFor(KindIdentifier), SiteOperand) == ruleArrow
}

// parseBinary is precedence climbing over the binary operators of the
// precedence table. Only operators ranked at least minRank are taken.
func (p *Parser) parseBinary(minRank int) *Node {
	left := p.parseUnary()
	for {
		if left.Kind == KindArrowFunction {
			return left
		}
		op := p.peek()
		if op.Kind == TokenIn && p.noIn {
			return left
		}
		e, ok := Precedence.Binary(op.Kind)
		if !ok || e.Rank < minRank {
			return left
		}
		if op.Kind == TokenLT && mustResolve(ruleJSXElement, RuleLessThan, SiteOperator) != RuleLessThan {
			return left
		}
		next := e.Rank + 1
		if e.Assoc == AssocRight {
			next = e.Rank
		}
		b := p.openKind(KindBinaryExpression)
		b.set("left", left)
		b.setTok("operator", p.next())
		b.set("right", p.parseBinary(next))
		left = b.done()
	}
}

func (p *Parser) parseUnary() *Node {
	tok := p.peekWith(HintOperand)
	switch tok.Kind {
	case TokenNot, TokenBitNot, TokenMinus, TokenPlus, TokenTypeof, TokenVoid, TokenDelete:
		b := p.openKind(KindUnaryExpression)
		b.setTok("operator", p.next())
		b.set("argument", p.parseUnary())
		return b.done()
	case TokenIncrement, TokenDecrement:
		b := p.openKind(KindUpdateExpression)
		b.setTok("operator", p.next())
		b.set("argument", p.parseUnary())
		return b.done()
	case TokenAwait:
		if startsOperand(p.peekAt(1)) {
			b := p.openKind(KindAwaitExpression)
			b.tok(p.next())
			b.add(p.parseUnary())
			return b.done()
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *Node {
	expr := p.parseLeftHandSide()
	tok := p.peek()
	if (tok.Kind == TokenIncrement || tok.Kind == TokenDecrement) && Allows(ProdPostfixUpdate, tok) {
		b := p.openKind(KindUpdateExpression)
		b.set("argument", expr)
		b.setTok("operator", p.next())
		return b.done()
	}
	return expr
}

func (p *Parser) parseLeftHandSide() *Node {
	var expr *Node
	if p.peekWith(HintOperand).Kind == TokenNew {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseSuffixes(expr, true)
}

// parseSuffixes applies member access, subscripts, calls and tagged
// templates to expr. Calls are skipped for the callee of new.
func (p *Parser) parseSuffixes(expr *Node, allowCall bool) *Node {
	for {
		if expr.Kind == KindArrowFunction {
			return expr
		}
		tok := p.peek()
		switch tok.Kind {
		case TokenDot:
			b := p.openKind(KindMemberExpression)
			b.set("object", expr)
			b.tok(p.next())
			b.set("property", p.parseMemberName())
			expr = b.done()
		case TokenOptionalChain:
			if !allowCall {
				return expr
			}
			expr = p.parseOptionalChain(expr)
		case TokenLBracket:
			b := p.openKind(KindSubscriptExpression)
			b.set("object", expr)
			b.tok(p.next())
			saved := p.noIn
			p.noIn = false
			b.set("index", p.parseExpressions())
			p.noIn = saved
			p.expect(b, TokenRBracket)
			expr = b.done()
		case TokenLParen:
			if !allowCall {
				return expr
			}
			expr = p.parseCall(expr)
		case TokenBacktick:
			b := p.openKind(KindCallExpression)
			b.set("function", expr)
			b.set("arguments", p.parseTemplate())
			expr = b.done()
		default:
			return expr
		}
	}
}

func (p *Parser) parseOptionalChain(object *Node) *Node {
	chain := leaf(RuleFor(KindOptionalChain), p.next())
	switch p.peek().Kind {
	case TokenLParen:
		b := p.openKind(KindCallExpression)
		b.set("function", object)
		b.set("optional_chain", chain)
		b.set("arguments", p.parseArguments())
		return b.done()
	case TokenLBracket:
		b := p.openKind(KindSubscriptExpression)
		b.set("object", object)
		b.set("optional_chain", chain)
		b.tok(p.next())
		b.set("index", p.parseExpressions())
		p.expect(b, TokenRBracket)
		return b.done()
	}
	b := p.openKind(KindMemberExpression)
	b.set("object", object)
	b.set("optional_chain", chain)
	b.set("property", p.parseMemberName())
	return b.done()
}

// parseCall parses a call on callee. `async(...)` followed by '=>' on the
// same line becomes an async arrow function.
func (p *Parser) parseCall(callee *Node) *Node {
	asyncCallee := callee.Kind == KindIdentifier && callee.Token != nil && callee.Token.Kind == TokenAsync &&
		!p.peek().NewlineBefore
	args := p.parseArguments()
	if asyncCallee {
		if next := p.peek(); next.Kind == TokenArrow && Allows(ProdAsyncArrow, next) &&
			mustResolve(ruleArrow, RuleFor(KindCallExpression), SiteOperand) == ruleArrow {
			b := p.openKind(KindArrowFunction)
			b.tok(*callee.Token)
			b.set("parameters", p.toFormalParameters(args))
			return p.parseArrowBody(b)
		}
	}
	b := p.openKind(KindCallExpression)
	b.set("function", callee)
	b.set("arguments", args)
	return b.done()
}

func (p *Parser) parseArguments() *Node {
	b := p.openKind(KindArguments)
	p.expect(b, TokenLParen)
	saved := p.noIn
	p.noIn = false
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		if p.peekWith(HintOperand).Kind == TokenEllipsis {
			b.add(p.parseSpread())
		} else {
			b.add(p.parseAssignment())
		}
		if !p.check(TokenComma) {
			break
		}
		b.tok(p.next())
	}
	p.noIn = saved
	p.expect(b, TokenRParen)
	return b.done()
}

func (p *Parser) parseSpread() *Node {
	b := p.openKind(KindSpreadElement)
	b.tok(p.next())
	b.add(p.parseAssignment())
	return b.done()
}

// parseMemberName parses the name after '.' or '?.'.
func (p *Parser) parseMemberName() *Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokenPrivateIdent:
		return leaf(RuleFor(KindPrivatePropertyIdentifier), p.next())
	case isPropertyName(tok):
		return leaf(RulePropertyName, p.next())
	}
	p.unexpected(tok, TokenIdent)
	return nil
}

func (p *Parser) parseNew() *Node {
	newTok := p.next()
	if p.check(TokenDot) {
		b := p.openKind(KindMetaProperty)
		b.tok(newTok)
		b.tok(p.next())
		if p.check(TokenTarget) {
			b.tok(p.next())
		} else {
			p.unexpected(p.peek(), TokenTarget)
		}
		return b.done()
	}
	b := p.openKind(KindNewExpression)
	b.tok(newTok)
	var callee *Node
	if p.peekWith(HintOperand).Kind == TokenNew {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	b.set("constructor", p.parseSuffixes(callee, false))
	if p.check(TokenLParen) {
		b.set("arguments", p.parseArguments())
	}
	return b.done()
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peekWith(HintOperand)
	switch tok.Kind {
	case TokenIdent:
		return leaf(RuleFor(KindIdentifier), p.next())
	case TokenUndefined:
		return leaf(RuleFor(KindUndefined), p.next())
	case TokenAsync:
		if next := p.peekAt(1); next.Kind == TokenFunction && Allows(ProdAsyncFunction, next) {
			return p.parseFunction(false)
		}
		return identifier(p.next())
	case TokenThis:
		return leaf(RuleFor(KindThis), p.next())
	case TokenSuper:
		return leaf(RuleFor(KindSuper), p.next())
	case TokenTrue:
		return leaf(RuleFor(KindTrue), p.next())
	case TokenFalse:
		return leaf(RuleFor(KindFalse), p.next())
	case TokenNull:
		return leaf(RuleFor(KindNull), p.next())
	case TokenNumber:
		return leaf(RuleFor(KindNumber), p.next())
	case TokenString:
		return leaf(RuleFor(KindString), p.next())
	case TokenRegex:
		return leaf(mustResolve(ruleRegex, RuleDivision, SiteOperand), p.next())
	case TokenPrivateIdent:
		return leaf(RuleFor(KindPrivatePropertyIdentifier), p.next())
	case TokenBacktick:
		return p.parseTemplate()
	case TokenLParen:
		return p.parseParenthesized()
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseObject()
	case TokenFunction:
		return p.parseFunction(false)
	case TokenClass:
		return p.parseClass(false, nil)
	case TokenAt:
		var decorators []*Node
		for p.check(TokenAt) {
			decorators = append(decorators, p.parseDecorator())
		}
		return p.parseClass(false, decorators)
	case TokenImport:
		return p.parseImportExpression()
	case TokenLT:
		if mustResolve(ruleJSXElement, RuleLessThan, SiteOperand) == ruleJSXElement {
			return p.parseJSXElement()
		}
	}
	if tok.Kind.IsContextual() {
		return identifier(p.next())
	}
	return p.missingOperand(tok)
}

// missingOperand records an error where an operand was expected. A token
// that cannot close or separate anything is consumed into the ERROR node.
func (p *Parser) missingOperand(tok Token) *Node {
	err := p.unexpected(tok)
	switch tok.Kind {
	case TokenEOF, TokenSemicolon, TokenRBrace, TokenRParen, TokenRBracket, TokenComma, TokenColon:
		return p.errorNode(err, nil)
	}
	if tok.NewlineBefore || (tok.Kind.IsReserved() && !startsOperand(tok)) {
		return p.errorNode(err, nil)
	}
	return p.errorNode(err, []Token{p.next()})
}

func (p *Parser) parseImportExpression() *Node {
	importTok := p.next()
	if p.check(TokenDot) {
		b := p.openKind(KindMetaProperty)
		b.tok(importTok)
		b.tok(p.next())
		if p.check(TokenMeta) {
			b.tok(p.next())
		} else {
			p.unexpected(p.peek(), TokenMeta)
		}
		return b.done()
	}
	callee := leaf(RuleImportCallee, importTok)
	if !p.check(TokenLParen) {
		p.unexpected(p.peek(), TokenLParen)
		return callee
	}
	b := p.openKind(KindCallExpression)
	b.set("function", callee)
	b.set("arguments", p.parseArguments())
	return b.done()
}

// parseParenthesized parses '(' ... ')' as a cover for both parenthesized
// expressions and arrow parameter lists. The arrow reading wins when '=>'
// follows on the same line.
func (p *Parser) parseParenthesized() *Node {
	lparen := p.next()
	saved := p.noIn
	p.noIn = false
	var items []*Node
	var commas []Token
	trailing := false
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		if p.peekWith(HintOperand).Kind == TokenEllipsis {
			items = append(items, p.parseSpread())
		} else {
			items = append(items, p.parseAssignment())
		}
		if !p.check(TokenComma) {
			break
		}
		commas = append(commas, p.next())
		trailing = p.check(TokenRParen)
	}
	p.noIn = saved

	rparen := p.peek()
	closed := rparen.Kind == TokenRParen
	if closed {
		p.next()
	} else {
		p.unexpected(rparen, TokenRParen)
	}

	if next := p.peek(); closed && next.Kind == TokenArrow && Allows(ProdArrow, next) &&
		mustResolve(ruleArrow, RuleFor(KindParenthesizedExpression), SiteOperand) == ruleArrow {
		params := p.openKind(KindFormalParameters)
		params.tok(lparen)
		for i, item := range items {
			params.add(p.toParameter(item))
			if i < len(commas) {
				params.tok(commas[i])
			}
		}
		params.tok(rparen)
		b := p.openKind(KindArrowFunction)
		b.set("parameters", params.done())
		return p.parseArrowBody(b)
	}

	b := p.openKind(KindParenthesizedExpression)
	b.tok(lparen)
	switch {
	case len(items) == 0:
		err := p.unexpected(rparen)
		b.add(p.errorNode(err, nil))
	case len(items) == 1 && !trailing:
		b.add(items[0])
	default:
		seq := p.openKind(KindSequenceExpression)
		for i, item := range items {
			seq.add(item)
			if i < len(commas) {
				seq.tok(commas[i])
			}
		}
		if trailing {
			p.unexpected(rparen)
		}
		b.add(seq.done())
	}
	for _, item := range items {
		if item.Kind == KindSpreadElement {
			p.addError(&SyntaxError{Pos: item.Span.Start, Kind: MsgUnexpectedToken, Message: "unexpected \"...\" in parenthesized expression"})
		}
	}
	if closed {
		b.tok(rparen)
	}
	return b.done()
}

func (p *Parser) parseArray() *Node {
	b := p.openKind(KindArray)
	b.tok(p.next())
	saved := p.noIn
	p.noIn = false
	for {
		tok := p.peekWith(HintOperand)
		if tok.Kind == TokenRBracket || tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenComma {
			b.tok(p.next())
			continue
		}
		if tok.Kind == TokenEllipsis {
			b.add(p.parseSpread())
		} else {
			b.add(p.parseAssignment())
		}
		if !p.check(TokenComma) {
			break
		}
		b.tok(p.next())
	}
	p.noIn = saved
	p.expect(b, TokenRBracket)
	return b.done()
}

func (p *Parser) parseObject() *Node {
	b := p.openKind(KindObject)
	b.tok(p.next())
	saved := p.noIn
	p.noIn = false
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		b.add(p.parseObjectMember())
		if !progress() {
			b.add(p.skipToken())
			continue
		}
		if !p.check(TokenComma) {
			break
		}
		b.tok(p.next())
	}
	p.noIn = saved
	p.expect(b, TokenRBrace)
	return b.done()
}

// modifierAhead reports whether the get, set, async or static at the
// current position modifies the member name that follows it.
func (p *Parser) modifierAhead() bool {
	next := p.peekAt(1)
	switch next.Kind {
	case TokenString, TokenNumber, TokenLBracket, TokenPrivateIdent, TokenStar:
		return !next.NewlineBefore || p.peek().Kind != TokenAsync
	}
	if !isPropertyName(next) {
		return false
	}
	return !next.NewlineBefore || p.peek().Kind != TokenAsync
}

func (p *Parser) parseObjectMember() *Node {
	tok := p.peekWith(HintOperand)
	if tok.Kind == TokenEllipsis {
		return p.parseSpread()
	}

	var modifiers []Token
	for {
		tok = p.peek()
		if (tok.Kind == TokenAsync || tok.Kind == TokenGet || tok.Kind == TokenSet) && p.modifierAhead() {
			modifiers = append(modifiers, p.next())
			continue
		}
		if tok.Kind == TokenStar {
			modifiers = append(modifiers, p.next())
		}
		break
	}

	keyTok := p.peek()
	key := p.parsePropertyKey()
	if key == nil {
		return nil
	}
	if len(modifiers) > 0 || p.check(TokenLParen) {
		return p.parseMethod(nil, modifiers, key)
	}

	switch p.peek().Kind {
	case TokenColon:
		b := p.openKind(KindPair)
		b.set("key", key)
		b.tok(p.next())
		b.set("value", p.parseAssignment())
		return b.done()
	case TokenAssign:
		if key.Kind != KindPropertyIdentifier {
			break
		}
		b := p.openKind(KindObjectAssignmentPattern)
		b.set("left", leaf(RuleShorthandPattern, keyTok))
		b.tok(p.next())
		b.set("right", p.parseAssignment())
		return b.done()
	}
	if key.Kind == KindPropertyIdentifier {
		return leaf(RuleShorthandProperty, keyTok)
	}
	p.unexpected(p.peek(), TokenColon)
	return key
}

// parsePropertyKey parses an object or class member name.
func (p *Parser) parsePropertyKey() *Node {
	tok := p.peekWith(HintOperand)
	switch {
	case tok.Kind == TokenString:
		return leaf(RuleFor(KindString), p.next())
	case tok.Kind == TokenNumber:
		return leaf(RuleFor(KindNumber), p.next())
	case tok.Kind == TokenPrivateIdent:
		return leaf(RuleFor(KindPrivatePropertyIdentifier), p.next())
	case tok.Kind == TokenLBracket:
		b := p.openKind(KindComputedPropertyName)
		b.tok(p.next())
		b.add(p.parseAssignment())
		p.expect(b, TokenRBracket)
		return b.done()
	case isPropertyName(tok):
		return leaf(RulePropertyName, p.next())
	}
	p.unexpected(tok, TokenIdent)
	return nil
}

// parseMethod parses the parameter list and body of an object or class
// method whose modifiers and name have been consumed.
func (p *Parser) parseMethod(decorators []*Node, modifiers []Token, name *Node) *Node {
	b := p.openKind(KindMethodDefinition)
	for _, d := range decorators {
		b.set("decorator", d)
	}
	for _, m := range modifiers {
		b.tok(m)
	}
	b.set("name", name)
	b.set("parameters", p.parseFormalParameters())
	b.set("body", p.parseBlock())
	return b.done()
}

// parseFunction parses function declarations and expressions, with an
// optional leading async.
func (p *Parser) parseFunction(declaration bool) *Node {
	var async *Token
	if p.check(TokenAsync) {
		t := p.next()
		async = &t
	}
	fnTok := p.next()
	generator := p.check(TokenStar)

	kind := KindFunctionExpression
	switch {
	case declaration && generator:
		kind = KindGeneratorFunctionDeclaration
	case declaration:
		kind = KindFunctionDeclaration
	case generator:
		kind = KindGeneratorFunction
	}
	b := p.openKind(kind)
	if async != nil {
		b.tok(*async)
	}
	b.tok(fnTok)
	if generator {
		b.tok(p.next())
	}
	if tok := p.peek(); isIdentifier(tok) {
		b.set("name", identifier(p.next()))
	} else if declaration {
		p.unexpected(tok, TokenIdent)
	}
	b.set("parameters", p.parseFormalParameters())
	b.set("body", p.parseBlock())
	return b.done()
}

func (p *Parser) parseTemplate() *Node {
	b := p.openKind(KindTemplateString)
	b.tok(p.next())
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenBacktick:
			b.tok(p.next())
			return b.done()
		case TokenTemplateChars:
			b.add(leaf(RuleTemplateChars, p.next()))
		case TokenEscapeSequence:
			b.add(leaf(RuleFor(KindEscapeSequence), p.next()))
		case TokenDollarBrace:
			b.add(p.parseTemplateSubstitution())
		default:
			p.unexpected(tok, TokenBacktick)
			return b.done()
		}
	}
}

func (p *Parser) parseTemplateSubstitution() *Node {
	b := p.openKind(KindTemplateSubstitution)
	b.tok(p.next())
	saved := p.noIn
	p.noIn = false
	b.add(p.parseExpressions())
	p.noIn = saved
	if p.check(TokenRBrace) {
		b.tok(p.next())
		return b.done()
	}
	// Skip to the brace that closes the substitution.
	err := p.unexpected(p.peek(), TokenRBrace)
	var skipped []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenRBrace && depth == 0 {
			break
		}
		switch tok.Kind {
		case TokenLBrace, TokenDollarBrace:
			depth++
		case TokenRBrace:
			depth--
		}
		skipped = append(skipped, p.next())
	}
	if len(skipped) > 0 {
		b.add(p.errorNode(err, skipped))
	}
	if p.check(TokenRBrace) {
		b.tok(p.next())
	}
	return b.done()
}

func (p *Parser) parseDecorator() *Node {
	b := p.openKind(KindDecorator)
	b.tok(p.next())
	var expr *Node
	if p.peekWith(HintOperand).Kind == TokenLParen {
		expr = p.parseParenthesized()
	} else if tok := p.peek(); isIdentifier(tok) {
		expr = identifier(p.next())
		for p.check(TokenDot) {
			m := p.openKind(KindMemberExpression)
			m.set("object", expr)
			m.tok(p.next())
			m.set("property", p.parseMemberName())
			expr = m.done()
		}
		if p.check(TokenLParen) {
			c := p.openKind(KindCallExpression)
			c.set("function", expr)
			c.set("arguments", p.parseArguments())
			expr = c.done()
		}
	} else {
		expr = p.missingOperand(tok)
	}
	b.add(expr)
	return b.done()
}
