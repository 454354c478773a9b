package parser

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

type frameKind uint8

const (
	frameBrace frameKind = iota
	frameTemplate
	frameSubstitution
)

// frame records an open '{', template literal or '${' so that a '}' can be
// matched to what it closes without counting braces.
type frame struct {
	kind frameKind
	open Position
}

// Lexer turns source bytes into tokens on demand. All of its state is local
// to a single parse.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int

	frames    []frame
	sawToken  bool
	comments  []Token
	commentAt int
}

// Checkpoint is a saved scanner position used for bounded lookahead.
type Checkpoint struct {
	pos, line, column int
	frames            []frame
	sawToken          bool
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:     input,
		file:      file,
		line:      1,
		column:    1,
		commentAt: -1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Comments returns the comments skipped so far, in source order.
func (l *Lexer) Comments() []Token {
	return l.comments
}

// Depth is the number of open braces, templates and substitutions.
func (l *Lexer) Depth() int {
	return len(l.frames)
}

func (l *Lexer) Checkpoint() Checkpoint {
	frames := make([]frame, len(l.frames))
	copy(frames, l.frames)
	return Checkpoint{pos: l.pos, line: l.line, column: l.column, frames: frames, sawToken: l.sawToken}
}

func (l *Lexer) Rewind(c Checkpoint) {
	l.pos = c.pos
	l.line = c.line
	l.column = c.column
	l.frames = append(l.frames[:0], c.frames...)
	l.sawToken = c.sawToken
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	if c := l.input[l.pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) top() (frame, bool) {
	if len(l.frames) == 0 {
		return frame{}, false
	}
	return l.frames[len(l.frames)-1], true
}

func (l *Lexer) push(kind frameKind, open Position) {
	l.frames = append(l.frames, frame{kind: kind, open: open})
}

func (l *Lexer) pop() {
	if len(l.frames) > 0 {
		l.frames = l.frames[:len(l.frames)-1]
	}
}

// Next scans the next token. Inside a template literal the hint is ignored;
// the frame stack alone decides.
func (l *Lexer) Next(hint Hint) Token {
	if f, ok := l.top(); ok && f.kind == frameTemplate {
		return l.scanTemplate(f)
	}
	if hint&HintJSXChild != 0 {
		return l.scanJSXChild()
	}

	newline, errTok := l.skipExtras(hint)
	if errTok != nil {
		return *errTok
	}
	start := l.Position()
	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}, NewlineBefore: newline}
	}

	var tok Token
	if hint&HintJSXTag != 0 {
		tok = l.scanJSXTag(start)
	} else {
		tok = l.scan(start, hint)
	}
	tok.NewlineBefore = newline
	l.sawToken = true
	return tok
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == 0x2028 || r == 0x2029
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', 0xA0, 0xFEFF:
		return true
	}
	return r >= 0x80 && unicode.Is(unicode.Zs, r)
}

// skipExtras consumes whitespace and comments and reports whether a line
// terminator was among them.
func (l *Lexer) skipExtras(hint Hint) (bool, *Token) {
	newline := false
	for !l.atEOF() {
		r, size := l.peekRune()
		switch {
		case isLineTerminator(r):
			newline = true
			l.advanceN(size)
		case isSpace(r):
			l.advanceN(size)
		case r == '/' && l.peekN(1) == '/':
			l.skipLineComment(TokenComment)
		case r == '/' && l.peekN(1) == '*':
			start := l.Position()
			l.advanceN(2)
			closed := false
			for !l.atEOF() {
				if l.peek() == '*' && l.peekN(1) == '/' {
					l.advanceN(2)
					closed = true
					break
				}
				if c, _ := l.peekRune(); isLineTerminator(c) {
					newline = true
				}
				l.advance()
			}
			if !closed {
				tok := l.errorToken(start, MsgUnterminatedComment, "unterminated block comment")
				return newline, &tok
			}
			l.recordComment(TokenComment, start)
		case r == '<' && hint&HintJSXTag == 0 && l.hasPrefix("<!--"):
			l.skipLineComment(TokenHTMLComment)
		case r == '-' && (newline || !l.sawToken) && l.hasPrefix("-->"):
			l.skipLineComment(TokenHTMLComment)
		default:
			return newline, nil
		}
	}
	return newline, nil
}

func (l *Lexer) skipLineComment(kind TokenKind) {
	start := l.Position()
	for !l.atEOF() {
		if r, _ := l.peekRune(); isLineTerminator(r) {
			break
		}
		l.advance()
	}
	l.recordComment(kind, start)
}

func (l *Lexer) recordComment(kind TokenKind, start Position) {
	// Lookahead may scan the same comment twice.
	if start.Offset <= l.commentAt {
		return
	}
	l.commentAt = start.Offset
	l.comments = append(l.comments, l.token(kind, start))
}

func (l *Lexer) scan(start Position, hint Hint) Token {
	ch := l.peek()

	if ch == '#' && l.peekN(1) == '!' && start.Offset == 0 {
		for !l.atEOF() {
			if r, _ := l.peekRune(); isLineTerminator(r) {
				break
			}
			l.advance()
		}
		return l.token(TokenHashBangLine, start)
	}
	if ch == '#' {
		l.advance()
		if !l.atIdentStart() {
			return l.errorToken(start, MsgInvalidCharacter, "expected a name after '#'")
		}
		if errTok := l.scanIdentChars(start); errTok != nil {
			return *errTok
		}
		return l.token(TokenPrivateIdent, start)
	}
	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(start)
	}
	if l.atIdentStart() {
		return l.scanIdentOrKeyword(start)
	}

	switch ch {
	case '"', '\'':
		return l.scanString(start)
	case '`':
		l.advance()
		l.push(frameTemplate, start)
		return l.token(TokenBacktick, start)
	case '{':
		l.advance()
		l.push(frameBrace, start)
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		l.pop()
		return l.token(TokenRBrace, start)
	case '/':
		if hint&HintRegex != 0 {
			return l.scanRegex(start)
		}
	case '?':
		// a?.5:b is a conditional, not an optional chain.
		if l.peekN(1) == '.' && isDigit(l.peekN(2)) {
			l.advance()
			return l.token(TokenTernaryQmark, start)
		}
	}

	if kind, n := matchOperator(l.input[l.pos:]); n > 0 {
		l.advanceN(n)
		return l.token(kind, start)
	}

	_, size := l.peekRune()
	l.advanceN(size)
	return l.errorToken(start, MsgInvalidCharacter, "invalid character")
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	if errTok := l.scanIdentChars(start); errTok != nil {
		return *errTok
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

// scanIdentChars consumes identifier-constituent code points and unicode
// escapes. The identifier class is a denylist, not an allowlist.
func (l *Lexer) scanIdentChars(start Position) *Token {
	for !l.atEOF() {
		if l.peek() == '\\' {
			if !l.scanUnicodeEscape() {
				tok := l.errorToken(start, MsgInvalidEscape, "invalid unicode escape in identifier")
				return &tok
			}
			continue
		}
		r, size := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.advanceN(size)
	}
	return nil
}

func (l *Lexer) atIdentStart() bool {
	if l.peek() == '\\' {
		return l.peekN(1) == 'u'
	}
	r, _ := l.peekRune()
	return isIdentStart(r)
}

// scanUnicodeEscape consumes \uXXXX or \u{X...}. A braced code point must
// not exceed U+10FFFF.
func (l *Lexer) scanUnicodeEscape() bool {
	if l.peek() != '\\' || l.peekN(1) != 'u' {
		return false
	}
	if l.peekN(2) == '{' {
		n := 3
		var cp rune
		for ch := l.peekN(n); isHexDigit(ch); ch = l.peekN(n) {
			cp = cp<<4 | hexValue(ch)
			if cp > unicode.MaxRune {
				return false
			}
			n++
		}
		if n == 3 || l.peekN(n) != '}' {
			return false
		}
		l.advanceN(n + 1)
		return true
	}
	for i := 2; i < 6; i++ {
		if !isHexDigit(l.peekN(i)) {
			return false
		}
	}
	l.advanceN(6)
	return true
}

const identDenylist = "\x7f !\"#%&'()*+,-./:;<=>?@[\\]^`{|}~"

func isIdentPart(r rune) bool {
	if r < 0x20 || r == utf8.RuneError {
		return false
	}
	if r < utf8.RuneSelf {
		for i := 0; i < len(identDenylist); i++ {
			if rune(identDenylist[i]) == r {
				return false
			}
		}
		return true
	}
	return !isSpace(r) && !isLineTerminator(r)
}

func isIdentStart(r rune) bool {
	return isIdentPart(r) && !(r >= '0' && r <= '9')
}

func (l *Lexer) scanNumber(start Position) Token {
	ch := l.peek()
	next := l.peekN(1) | 0x20
	if ch == '0' && (next == 'x' || next == 'o' || next == 'b') {
		l.advanceN(2)
		digit := isHexDigit
		if next == 'o' {
			digit = isOctalDigit
		} else if next == 'b' {
			digit = isBinaryDigit
		}
		for digit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'n' {
			l.advance()
		}
		return l.finishNumber(start)
	}

	integer := true
	l.scanDigits()
	if l.peek() == '.' {
		integer = false
		l.advance()
		l.scanDigits()
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		sign := 0
		if s := l.peekN(1); s == '+' || s == '-' {
			sign = 1
		}
		if isDigit(l.peekN(1 + sign)) {
			integer = false
			l.advanceN(1 + sign)
			l.scanDigits()
		}
	}
	if integer && l.peek() == 'n' {
		l.advance()
	}
	return l.finishNumber(start)
}

func (l *Lexer) scanDigits() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) finishNumber(start Position) Token {
	if l.atIdentStart() {
		_, size := l.peekRune()
		l.advanceN(size)
		return l.errorToken(start, MsgInvalidCharacter, "identifier starts immediately after numeric literal")
	}
	return l.token(TokenNumber, start)
}

// scanString scans a quoted string into quote, string_fragment and
// escape_sequence parts.
func (l *Lexer) scanString(start Position) Token {
	quote := l.peek()
	var parts []Token
	qs := l.Position()
	l.advance()
	parts = append(parts, l.token(TokenQuote, qs))

	fragStart := l.Position()
	flush := func() {
		if l.pos > fragStart.Offset {
			parts = append(parts, l.token(TokenStringFragment, fragStart))
		}
	}
	for {
		if l.atEOF() {
			return l.errorToken(start, MsgUnterminatedString, "unterminated string literal")
		}
		ch := l.peek()
		if ch == quote {
			flush()
			qe := l.Position()
			l.advance()
			parts = append(parts, l.token(TokenQuote, qe))
			break
		}
		if ch == '\n' || ch == '\r' {
			return l.errorToken(start, MsgUnterminatedString, "unterminated string literal")
		}
		if ch == '\\' {
			flush()
			es := l.Position()
			if !l.scanEscape(true) {
				return l.errorToken(es, MsgInvalidEscape, "invalid escape sequence")
			}
			parts = append(parts, l.token(TokenEscapeSequence, es))
			fragStart = l.Position()
			continue
		}
		_, size := l.peekRune()
		l.advanceN(size)
	}

	tok := l.token(TokenString, start)
	tok.Parts = parts
	return tok
}

// scanEscape consumes one backslash escape. Strict escapes reject malformed
// \x and \u forms; template literals accept them.
func (l *Lexer) scanEscape(strict bool) bool {
	l.advance()
	if l.atEOF() {
		return false
	}
	switch ch := l.peek(); {
	case ch == 'x':
		if isHexDigit(l.peekN(1)) && isHexDigit(l.peekN(2)) {
			l.advanceN(3)
			return true
		}
		l.advance()
		return !strict
	case ch == 'u':
		l.pos--
		l.column--
		if l.scanUnicodeEscape() {
			return true
		}
		l.advanceN(2)
		return !strict
	case ch >= '0' && ch <= '7':
		for i := 0; i < 3 && l.peek() >= '0' && l.peek() <= '7'; i++ {
			l.advance()
		}
		return true
	case ch == '\r':
		l.advance()
		if l.peek() == '\n' {
			l.advance()
		}
		return true
	default:
		_, size := l.peekRune()
		l.advanceN(size)
		return true
	}
}

func (l *Lexer) scanRegex(start Position) Token {
	slash := l.Position()
	l.advance()
	parts := []Token{l.token(TokenSlash, slash)}

	bodyStart := l.Position()
	inClass := false
	for {
		if l.atEOF() {
			return l.errorToken(start, MsgUnterminatedRegex, "unterminated regular expression")
		}
		r, size := l.peekRune()
		if isLineTerminator(r) {
			return l.errorToken(start, MsgUnterminatedRegex, "unterminated regular expression")
		}
		if r == '\\' {
			l.advance()
			if c, _ := l.peekRune(); l.atEOF() || isLineTerminator(c) {
				return l.errorToken(start, MsgUnterminatedRegex, "unterminated regular expression")
			}
			_, size = l.peekRune()
			l.advanceN(size)
			continue
		}
		if r == '[' {
			inClass = true
		} else if r == ']' {
			inClass = false
		} else if r == '/' && !inClass {
			break
		}
		l.advanceN(size)
	}
	parts = append(parts, l.token(TokenRegexPattern, bodyStart))
	closing := l.Position()
	l.advance()
	parts = append(parts, l.token(TokenSlash, closing))

	flagStart := l.Position()
	for !l.atEOF() {
		r, size := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.advanceN(size)
	}
	if l.pos > flagStart.Offset {
		parts = append(parts, l.token(TokenRegexFlags, flagStart))
	}

	tok := l.token(TokenRegex, start)
	tok.Parts = parts
	return tok
}

func (l *Lexer) scanTemplate(f frame) Token {
	start := l.Position()
	if l.atEOF() {
		return l.errorToken(f.open, MsgUnterminatedTemplate, "unterminated template literal")
	}
	switch {
	case l.peek() == '`':
		l.advance()
		l.pop()
		return l.token(TokenBacktick, start)
	case l.hasPrefix("${"):
		l.advanceN(2)
		l.push(frameSubstitution, start)
		return l.token(TokenDollarBrace, start)
	case l.peek() == '\\':
		if !l.scanEscape(false) {
			return l.errorToken(f.open, MsgUnterminatedTemplate, "unterminated template literal")
		}
		return l.token(TokenEscapeSequence, start)
	}
	for !l.atEOF() && l.peek() != '`' && l.peek() != '\\' && !l.hasPrefix("${") {
		l.advance()
	}
	return l.token(TokenTemplateChars, start)
}

func (l *Lexer) scanJSXChild() Token {
	for {
		start := l.Position()
		if l.atEOF() {
			return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
		}
		switch l.peek() {
		case '{':
			l.advance()
			l.push(frameBrace, start)
			return l.token(TokenLBrace, start)
		case '<':
			l.advance()
			return l.token(TokenLT, start)
		case '&':
			if n := matchCharRef(l.input[l.pos:]); n > 0 {
				l.advanceN(n)
				return l.token(TokenHTMLCharRef, start)
			}
		}

		blank, newline := true, false
		for !l.atEOF() {
			ch := l.peek()
			if ch == '{' || ch == '<' || (ch == '&' && matchCharRef(l.input[l.pos:]) > 0) {
				break
			}
			r, size := l.peekRune()
			if isLineTerminator(r) {
				newline = true
			} else if !isSpace(r) {
				blank = false
			}
			l.advanceN(size)
		}
		// Whitespace-only runs that span lines are formatting, not text.
		if blank && newline {
			continue
		}
		return l.token(TokenJSXText, start)
	}
}

func (l *Lexer) scanJSXTag(start Position) Token {
	ch := l.peek()
	switch ch {
	case '"', '\'':
		return l.scanJSXString(start)
	case '{':
		l.advance()
		l.push(frameBrace, start)
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		l.pop()
		return l.token(TokenRBrace, start)
	case '>':
		l.advance()
		return l.token(TokenGT, start)
	case '<':
		l.advance()
		return l.token(TokenLT, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)
	case '=':
		l.advance()
		return l.token(TokenAssign, start)
	case '.':
		if !l.hasPrefix("...") {
			l.advance()
			return l.token(TokenDot, start)
		}
	case ':':
		l.advance()
		return l.token(TokenColon, start)
	}
	if l.atIdentStart() {
		for !l.atEOF() {
			r, size := l.peekRune()
			if r != '-' && !isIdentPart(r) {
				break
			}
			l.advanceN(size)
		}
		return l.token(TokenIdent, start)
	}
	return l.scan(start, HintOperator)
}

func (l *Lexer) scanJSXString(start Position) Token {
	quote := l.peek()
	qs := l.Position()
	l.advance()
	parts := []Token{l.token(TokenQuote, qs)}
	fragStart := l.Position()
	flush := func() {
		if l.pos > fragStart.Offset {
			parts = append(parts, l.token(TokenStringFragment, fragStart))
		}
	}
	for {
		if l.atEOF() {
			return l.errorToken(start, MsgUnterminatedString, "unterminated string literal")
		}
		ch := l.peek()
		if ch == quote {
			flush()
			qe := l.Position()
			l.advance()
			parts = append(parts, l.token(TokenQuote, qe))
			break
		}
		if ch == '&' {
			if n := matchCharRef(l.input[l.pos:]); n > 0 {
				flush()
				rs := l.Position()
				l.advanceN(n)
				parts = append(parts, l.token(TokenHTMLCharRef, rs))
				fragStart = l.Position()
				continue
			}
		}
		_, size := l.peekRune()
		l.advanceN(size)
	}
	tok := l.token(TokenString, start)
	tok.Parts = parts
	return tok
}

// matchCharRef returns the length of an HTML character reference at the
// start of b (&name; &#123; &#x1F;), or 0.
func matchCharRef(b []byte) int {
	if len(b) < 3 || b[0] != '&' {
		return 0
	}
	i := 1
	switch {
	case b[1] == '#' && len(b) > 2 && (b[2] == 'x' || b[2] == 'X'):
		i = 3
		for i < len(b) && isHexDigit(b[i]) {
			i++
		}
		if i == 3 {
			return 0
		}
	case b[1] == '#':
		i = 2
		for i < len(b) && isDigit(b[i]) {
			i++
		}
		if i == 2 {
			return 0
		}
	default:
		for i < len(b) && i < 32 && (isASCIILetter(b[i]) || (i > 1 && isDigit(b[i]))) {
			i++
		}
		if i == 1 {
			return 0
		}
	}
	if i < len(b) && b[i] == ';' {
		return i + 1
	}
	return 0
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) errorToken(start Position, kind MessageKind, msg string) Token {
	tok := l.token(TokenError, start)
	tok.Message = msg
	tok.errKind = kind
	return tok
}

type operator struct {
	text string
	kind TokenKind
}

// operatorsByFirst holds every punctuator, longest first for each leading byte.
var operatorsByFirst [128][]operator

func init() {
	for kind := TokenLParen; kind < tokenKindCount; kind++ {
		text := kind.String()
		switch kind {
		case TokenBacktick, TokenDollarBrace, TokenLBrace, TokenRBrace:
			continue
		}
		operatorsByFirst[text[0]] = append(operatorsByFirst[text[0]], operator{text: text, kind: kind})
	}
	operatorsByFirst['?'] = append(operatorsByFirst['?'], operator{text: "?", kind: TokenTernaryQmark})
	for i := range operatorsByFirst {
		ops := operatorsByFirst[i]
		sort.SliceStable(ops, func(a, b int) bool { return len(ops[a].text) > len(ops[b].text) })
	}
}

func matchOperator(b []byte) (TokenKind, int) {
	if len(b) == 0 || b[0] >= 128 {
		return TokenError, 0
	}
	for _, op := range operatorsByFirst[b[0]] {
		if len(b) >= len(op.text) && string(b[:len(op.text)]) == op.text {
			return op.kind, len(op.text)
		}
	}
	return TokenError, 0
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch byte) rune {
	switch {
	case ch >= 'a':
		return rune(ch-'a') + 10
	case ch >= 'A':
		return rune(ch-'A') + 10
	}
	return rune(ch - '0')
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
