package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithComments makes Comments return the comments skipped during the parse.
func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// WithTokenTrace records every consumed token, including automatic
// semicolons, for Tokens.
func WithTokenTrace() Option {
	return func(p *Parser) {
		p.traceTokens = true
	}
}

// WithMaxErrors stops the parse once n syntax errors have been recorded.
// Zero means no limit.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

const defaultMaxErrors = 100

type parseFunc func(*Parser) *Node

type Parser struct {
	file            string
	includeComments bool
	traceTokens     bool
	maxErrors       int
	reader          io.Reader
	input           []byte
	readErr         error
	entry           parseFunc

	lexer    *Lexer
	cur      Token
	curHint  Hint
	hasCur   bool
	before   Checkpoint
	prevEnd  Position
	consumed int

	noIn       bool
	errors     ErrorList
	trace      []Token
	halted     bool
	incomplete bool
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		reader:    r,
		entry:     entry,
		maxErrors: defaultMaxErrors,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseProgram prepares a parse of a whole script or module. Nothing is
// read until Finish or IsComplete is called.
func ParseProgram(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseProgram, opts)
}

// ParseExpression prepares a parse of a single expression.
func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseExpressionEntry, opts)
}

// Parse parses src as a program and returns the tree with every recorded
// error. The tree is returned even when errors occurred.
func Parse(src []byte, opts ...Option) (*Node, ErrorList) {
	p := ParseProgram(bytes.NewReader(src), opts...)
	root := p.Finish()
	return root, p.Errors()
}

func (p *Parser) readAll() error {
	if p.input != nil || p.readErr != nil {
		return p.readErr
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		p.readErr = err
		return err
	}
	if data == nil {
		data = []byte{}
	}
	p.input = data
	return nil
}

func (p *Parser) begin() {
	p.lexer = NewLexer(p.input, p.file)
	p.hasCur = false
	p.prevEnd = Position{File: p.file, Line: 1, Column: 1}
	p.consumed = 0
	p.noIn = false
	p.errors = nil
	p.trace = nil
	p.halted = false
	p.incomplete = false
}

// IsComplete reports whether the input parses without running into the end
// of input. "1 + " is incomplete; "1 + )" is complete but erroneous.
func (p *Parser) IsComplete() bool {
	if err := p.readAll(); err != nil {
		return false
	}
	if len(bytes.TrimSpace(p.input)) == 0 {
		return false
	}
	savedErrors, savedTrace := p.errors, p.trace
	p.begin()
	p.entry(p)
	complete := !p.incomplete
	p.errors, p.trace = savedErrors, savedTrace
	return complete
}

// Finish parses the input and returns the root node. Errors are available
// from Errors afterwards. It returns nil only if the reader failed.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	p.begin()
	root := p.entry(p)
	p.errors.Sort()
	return root
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.readErr = nil
	p.lexer = nil
	p.hasCur = false
	p.errors = nil
	p.trace = nil
	p.halted = false
	p.incomplete = false
}

// Errors returns the problems recorded by the last parse in source order.
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// Err returns the read error, or the error list if it is not empty.
func (p *Parser) Err() error {
	if p.readErr != nil {
		return p.readErr
	}
	return p.errors.Err()
}

func (p *Parser) Comments() []Token {
	if !p.includeComments || p.lexer == nil {
		return nil
	}
	return p.lexer.Comments()
}

// Tokens returns the consumed tokens when WithTokenTrace is set.
func (p *Parser) Tokens() []Token {
	return p.trace
}

func (p *Parser) Source() []byte {
	return p.input
}

// peekWith returns the current token as scanned under hint h. A token that
// was scanned under a hint that changes its class is scanned again.
func (p *Parser) peekWith(h Hint) Token {
	if p.halted {
		return p.eof()
	}
	if p.hasCur {
		if p.curHint == h || !hintMatters(p.cur, p.curHint, h) {
			return p.cur
		}
		p.lexer.Rewind(p.before)
	}
	p.before = p.lexer.Checkpoint()
	tok := p.lexer.Next(h)
	if tok.Kind == TokenError {
		p.lexicalError(tok)
		return p.eof()
	}
	p.cur, p.curHint, p.hasCur = tok, h, true
	return tok
}

func hintMatters(tok Token, was, want Hint) bool {
	const jsx = HintJSXTag | HintJSXChild
	if was&jsx != want&jsx {
		return true
	}
	if was&HintRegex == want&HintRegex {
		return false
	}
	switch tok.Kind {
	case TokenRegex, TokenSlash, TokenSlashAssign:
		return true
	}
	return false
}

// peek returns the current token, scanning it as an operator-site token if
// it has not been scanned yet.
func (p *Parser) peek() Token {
	if p.hasCur && !p.halted {
		return p.cur
	}
	return p.peekWith(HintOperator)
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// next consumes the current token.
func (p *Parser) next() Token {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		return tok
	}
	p.hasCur = false
	p.prevEnd = tok.Span.End
	p.consumed++
	if p.traceTokens {
		p.trace = append(p.trace, tok)
	}
	return tok
}

// peekAt scans the n-th token after the current one under the operator
// hint without consuming anything.
func (p *Parser) peekAt(n int) Token {
	cur := p.peek()
	if p.halted || cur.Kind == TokenEOF {
		return cur
	}
	cp := p.lexer.Checkpoint()
	var tok Token
	for i := 0; i < n; i++ {
		tok = p.lexer.Next(HintOperator)
		if tok.Kind == TokenEOF || tok.Kind == TokenError {
			break
		}
	}
	p.lexer.Rewind(cp)
	return tok
}

func (p *Parser) eof() Token {
	return Token{Kind: TokenEOF, Span: Span{Start: p.prevEnd, End: p.prevEnd}}
}

// autoSemicolon records a virtual semicolon at the end of the previous token.
func (p *Parser) autoSemicolon() {
	if p.traceTokens {
		p.trace = append(p.trace, Token{Kind: TokenAutoSemicolon, Span: Span{Start: p.prevEnd, End: p.prevEnd}})
	}
}

// semicolon accepts an explicit ';' or inserts a virtual one where the
// oracle permits it. Anything else is skipped up to the next boundary.
func (p *Parser) semicolon(b *builder) {
	tok := p.peek()
	if tok.Kind == TokenSemicolon {
		b.tok(p.next())
		return
	}
	if MayInsert(tok, tok.NewlineBefore) {
		p.autoSemicolon()
		return
	}
	p.unexpected(tok, TokenSemicolon)
	b.add(p.synchronize())
}

// mustProgress returns a function that reports whether any token was
// consumed since the call.
func (p *Parser) mustProgress() func() bool {
	saved := p.consumed
	return func() bool {
		return p.consumed != saved
	}
}

func (p *Parser) addError(err Error) {
	if p.halted {
		return
	}
	if se, ok := err.(*SyntaxError); ok {
		if n := len(p.errors); n > 0 && p.errors[n-1].Position().Offset == se.Pos.Offset {
			return
		}
		if se.Got != nil && se.Got.Kind == TokenEOF {
			p.incomplete = true
		}
	}
	p.errors = append(p.errors, err)
	if p.maxErrors > 0 && len(p.errors) >= p.maxErrors {
		p.errors = append(p.errors, &SyntaxError{Pos: err.Position(), Kind: MsgTooManyErrors, Message: "too many errors"})
		p.halted = true
	}
}

func (p *Parser) lexicalError(tok Token) {
	if p.halted {
		return
	}
	switch tok.errKind {
	case MsgUnterminatedString, MsgUnterminatedTemplate, MsgUnterminatedRegex, MsgUnterminatedComment:
		p.incomplete = true
	}
	p.errors = append(p.errors, &LexicalError{Pos: tok.Span.Start, Kind: tok.errKind, Message: tok.Message})
	p.halted = true
}

func describe(kinds []TokenKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%q", k.String())
	}
	return strings.Join(parts, " or ")
}

func (p *Parser) unexpected(tok Token, expected ...TokenKind) *SyntaxError {
	msg := "unexpected " + tok.String()
	if len(expected) > 0 {
		msg += ", expected " + describe(expected)
	}
	got := tok
	err := &SyntaxError{Pos: tok.Span.Start, Kind: MsgUnexpectedToken, Message: msg, Expected: expected, Got: &got}
	p.addError(err)
	return err
}

// expect consumes a token of kind into b or records an error without
// consuming anything.
func (p *Parser) expect(b *builder, kind TokenKind) bool {
	tok := p.peek()
	if tok.Kind == kind {
		b.tok(p.next())
		return true
	}
	p.unexpected(tok, kind)
	return false
}

// errorNode wraps the tokens skipped after a syntax error.
func (p *Parser) errorNode(err *SyntaxError, skipped []Token) *Node {
	n := &Node{Kind: KindError, Error: err, rule: RuleFor(KindError)}
	if len(skipped) == 0 {
		n.Span = Span{Start: p.prevEnd, End: p.prevEnd}
		return n
	}
	for _, t := range skipped {
		c := anonymous(t)
		if len(t.Parts) > 0 {
			c = leaf(RuleFor(KindString), t)
			if t.Kind == TokenRegex {
				c = leaf(RuleFor(KindRegex), t)
			}
		}
		n.Children = append(n.Children, c)
		n.fields = append(n.fields, "")
		n.Span = n.Span.Union(c.Span)
	}
	return n
}

// skipToken consumes the current token into an ERROR node.
func (p *Parser) skipToken() *Node {
	tok := p.peek()
	err := p.unexpected(tok)
	if tok.Kind == TokenEOF {
		return nil
	}
	return p.errorNode(err, []Token{p.next()})
}

// synchronize skips to the next statement boundary: past a ';', or before
// a '}' or a token that starts a new line, at the nesting depth where the
// error occurred. It returns nil when nothing was skipped.
func (p *Parser) synchronize() *Node {
	var skipped []Token
	depth := 0
	var err *SyntaxError
	if n := len(p.errors); n > 0 {
		err, _ = p.errors[n-1].(*SyntaxError)
	}
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			break
		}
		if depth == 0 {
			if tok.Kind == TokenRBrace {
				break
			}
			if tok.NewlineBefore && len(skipped) > 0 {
				break
			}
		}
		switch tok.Kind {
		case TokenLBrace, TokenLParen, TokenLBracket, TokenDollarBrace:
			depth++
		case TokenRBrace, TokenRParen, TokenRBracket:
			if depth > 0 {
				depth--
			}
		}
		skipped = append(skipped, p.next())
		if tok.Kind == TokenSemicolon && depth == 0 {
			break
		}
	}
	if len(skipped) == 0 {
		return nil
	}
	if err == nil {
		err = &SyntaxError{Pos: skipped[0].Span.Start, Kind: MsgUnexpectedToken, Message: "unexpected " + skipped[0].String()}
	}
	return p.errorNode(err, skipped)
}

func (p *Parser) endPosition() Position {
	pos := Position{File: p.file, Offset: len(p.input), Line: 1, Column: 1}
	for _, b := range p.input {
		if b == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

func (p *Parser) parseProgram() *Node {
	b := p.openKind(KindProgram)
	if tok := p.peekWith(HintOperand); tok.Kind == TokenHashBangLine {
		b.add(leaf(RuleFor(KindHashBangLine), p.next()))
	}
	p.parseStatementList(b)
	n := b.done()
	n.Span = Span{Start: Position{File: p.file, Line: 1, Column: 1}, End: p.endPosition()}
	return n
}

func (p *Parser) parseExpressionEntry() *Node {
	n := p.parseExpressions()
	if tok := p.peek(); tok.Kind != TokenEOF {
		p.unexpected(tok, TokenEOF)
	}
	return n
}

// parseStatementList parses statements into b until EOF or one of ends.
func (p *Parser) parseStatementList(b *builder, ends ...TokenKind) {
	for {
		tok := p.peekWith(HintOperand)
		if tok.Kind == TokenEOF {
			return
		}
		for _, end := range ends {
			if tok.Kind == end {
				return
			}
		}
		progress := p.mustProgress()
		b.add(p.parseStatement())
		if !progress() {
			b.add(p.skipToken())
		}
	}
}

// isIdentifier reports whether tok can serve as an identifier reference or
// binding name.
func isIdentifier(tok Token) bool {
	return tok.Kind == TokenIdent || tok.Kind.IsContextual()
}

// isPropertyName reports whether tok can name a property after '.' or as an
// object or class key. Reserved words are allowed there.
func isPropertyName(tok Token) bool {
	return tok.Kind == TokenIdent || tok.Kind.IsKeyword()
}

// identifier makes an identifier leaf, aliasing contextual keywords.
func identifier(tok Token) *Node {
	if tok.Kind == TokenIdent {
		return leaf(RuleFor(KindIdentifier), tok)
	}
	return leaf(RuleReservedIdentifier, tok)
}

// startsOperand reports whether tok can begin an expression.
func startsOperand(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenPrivateIdent, TokenNumber, TokenString, TokenRegex,
		TokenThis, TokenSuper, TokenNull, TokenTrue, TokenFalse, TokenFunction,
		TokenClass, TokenNew, TokenTypeof, TokenVoid, TokenDelete, TokenImport,
		TokenLParen, TokenLBracket, TokenLBrace, TokenBacktick, TokenSlash,
		TokenSlashAssign, TokenPlus, TokenMinus, TokenNot, TokenBitNot,
		TokenIncrement, TokenDecrement, TokenLT, TokenAt:
		return true
	}
	return tok.Kind.IsContextual()
}

// sameText compares the source text of two nodes.
func (p *Parser) sameText(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Text(p.input) == b.Text(p.input)
}
