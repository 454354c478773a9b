package parser

// parseBindingTarget parses a declaration target: an identifier or a
// destructuring pattern.
func (p *Parser) parseBindingTarget() *Node {
	tok := p.peekWith(HintOperand)
	switch {
	case tok.Kind == TokenLBracket:
		if mustResolve(ruleArray, ruleArrayPattern, SiteBinding) == ruleArray {
			return p.parseArray()
		}
		return p.parseArrayPattern()
	case tok.Kind == TokenLBrace:
		if mustResolve(ruleObject, ruleObjectPat, SiteBinding) == ruleObject {
			return p.parseObject()
		}
		return p.parseObjectPattern()
	case isIdentifier(tok) || tok.Kind == TokenUndefined:
		return identifier(p.next())
	}
	return p.missingOperand(tok)
}

// parseBindingElement parses a binding target with an optional default.
func (p *Parser) parseBindingElement() *Node {
	target := p.parseBindingTarget()
	if !p.check(TokenAssign) {
		return target
	}
	b := p.openKind(KindAssignmentPattern)
	b.set("left", target)
	b.tok(p.next())
	b.set("right", p.parseAssignment())
	return b.done()
}

func (p *Parser) parseRestPattern() *Node {
	b := p.openKind(KindRestPattern)
	b.tok(p.next())
	b.add(p.parseBindingTarget())
	return b.done()
}

func (p *Parser) parseArrayPattern() *Node {
	b := p.openKind(KindArrayPattern)
	b.tok(p.next())
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
			b.add(p.parseRestPattern())
		} else {
			b.add(p.parseBindingElement())
		}
		if !p.check(TokenComma) {
			break
		}
		b.tok(p.next())
	}
	p.expect(b, TokenRBracket)
	return b.done()
}

func (p *Parser) parseObjectPattern() *Node {
	b := p.openKind(KindObjectPattern)
	b.tok(p.next())
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		b.add(p.parseObjectPatternMember())
		if !progress() {
			b.add(p.skipToken())
			continue
		}
		if !p.check(TokenComma) {
			break
		}
		b.tok(p.next())
	}
	p.expect(b, TokenRBrace)
	return b.done()
}

func (p *Parser) parseObjectPatternMember() *Node {
	if p.check(TokenEllipsis) {
		return p.parseRestPattern()
	}
	keyTok := p.peek()
	key := p.parsePropertyKey()
	if key == nil {
		return nil
	}
	if p.check(TokenColon) {
		b := p.openKind(KindPairPattern)
		b.set("key", key)
		b.tok(p.next())
		b.set("value", p.parseBindingElement())
		return b.done()
	}
	if key.Kind != KindPropertyIdentifier {
		p.unexpected(p.peek(), TokenColon)
		return key
	}
	short := leaf(RuleShorthandPattern, keyTok)
	if !p.check(TokenAssign) {
		return short
	}
	b := p.openKind(KindObjectAssignmentPattern)
	b.set("left", short)
	b.tok(p.next())
	b.set("right", p.parseAssignment())
	return b.done()
}

func (p *Parser) parseFormalParameters() *Node {
	b := p.openKind(KindFormalParameters)
	if !p.expect(b, TokenLParen) {
		return b.done()
	}
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		if p.peekWith(HintOperand).Kind == TokenEllipsis {
			b.add(p.parseRestPattern())
		} else {
			b.add(p.parseBindingElement())
		}
		if !p.check(TokenComma) {
			break
		}
		b.tok(p.next())
	}
	p.expect(b, TokenRParen)
	return b.done()
}

// toAssignmentTarget reinterprets the left operand of '=' or of a for-in
// header. Literals become patterns; references stay as they are.
func (p *Parser) toAssignmentTarget(n *Node) *Node {
	switch n.Kind {
	case KindObject, KindArray:
		return p.toPattern(n)
	case KindIdentifier, KindUndefined, KindMemberExpression, KindSubscriptExpression,
		KindParenthesizedExpression, KindObjectPattern, KindArrayPattern, KindError:
		return n
	}
	p.invalidTarget(n)
	return n
}

// toPattern reinterprets an expression parsed under the cover grammar as a
// destructuring target. The choice of pattern over literal is made by the
// binding site, never by content.
func (p *Parser) toPattern(n *Node) *Node {
	switch n.Kind {
	case KindIdentifier, KindUndefined, KindMemberExpression, KindSubscriptExpression, KindError,
		KindArrayPattern, KindObjectPattern, KindAssignmentPattern, KindRestPattern,
		KindObjectAssignmentPattern, KindShorthandPropertyIdentifierPattern:
		return n
	case KindArray:
		return p.reshape(mustResolve(ruleArray, ruleArrayPattern, SiteBinding), n, p.toPattern)
	case KindObject:
		return p.reshape(mustResolve(ruleObject, ruleObjectPat, SiteBinding), n, p.toPatternMember)
	case KindAssignmentExpression:
		return p.reshape(RuleFor(KindAssignmentPattern), n, p.toPatternLeft(n))
	case KindSpreadElement:
		return p.reshape(RuleFor(KindRestPattern), n, p.toPattern)
	}
	p.invalidTarget(n)
	return n
}

// toPatternLeft converts only the left operand of an assignment.
func (p *Parser) toPatternLeft(n *Node) func(*Node) *Node {
	left := n.ChildByField("left")
	return func(c *Node) *Node {
		if c == left {
			return p.toPattern(c)
		}
		return c
	}
}

func (p *Parser) toPatternMember(n *Node) *Node {
	switch n.Kind {
	case KindPair:
		return p.reshape(RuleFor(KindPairPattern), n, func(c *Node) *Node {
			if c == n.ChildByField("value") {
				return p.toPattern(c)
			}
			return c
		})
	case KindShorthandPropertyIdentifier:
		return leaf(RuleShorthandPattern, *n.Token)
	case KindSpreadElement:
		return p.reshape(RuleFor(KindRestPattern), n, p.toPattern)
	case KindObjectAssignmentPattern, KindError:
		return n
	}
	p.invalidTarget(n)
	return n
}

// toParameter converts one item of a parenthesized cover list into a
// formal parameter.
func (p *Parser) toParameter(n *Node) *Node {
	switch n.Kind {
	case KindMemberExpression, KindSubscriptExpression:
		p.invalidTarget(n)
		return n
	}
	return p.toPattern(n)
}

// toFormalParameters converts the arguments of `async(...)` into the
// parameter list of an async arrow function.
func (p *Parser) toFormalParameters(args *Node) *Node {
	return p.reshape(RuleFor(KindFormalParameters), args, p.toParameter)
}

// reshape rebuilds n under rule, passing each named child through conv.
// Anonymous children and field names carry over unchanged.
func (p *Parser) reshape(rule Rule, n *Node, conv func(*Node) *Node) *Node {
	children := make([]*Node, len(n.Children))
	names := make([]string, len(n.Children))
	for i, c := range n.Children {
		names[i] = n.FieldNameForChild(i)
		if c.IsNamed() {
			children[i] = conv(c)
		} else {
			children[i] = c
		}
	}
	out, err := Build(rule, children, names)
	switch e := err.(type) {
	case *SchemaError:
		panic(e)
	case *SyntaxError:
		p.addError(e)
	}
	return out
}

func (p *Parser) invalidTarget(n *Node) {
	p.addError(&SyntaxError{
		Pos:     n.Span.Start,
		Kind:    MsgInvalidAssignmentTarget,
		Message: "invalid destructuring or assignment target: " + n.Type(),
	})
}
