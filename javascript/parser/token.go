package parser

import "strconv"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Union returns the smallest span covering both s and o. Zero spans are ignored.
func (s Span) Union(o Span) Span {
	if s.IsZero() {
		return o
	}
	if o.IsZero() {
		return s
	}
	out := s
	if o.Start.Offset < out.Start.Offset {
		out.Start = o.Start
	}
	if o.End.Offset > out.End.Offset {
		out.End = o.End
	}
	return out
}

func (s Span) IsZero() bool {
	return s.Start.Line == 0 && s.End.Line == 0
}

func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Extras
	TokenComment
	TokenHTMLComment
	TokenHashBangLine

	// Names and literals
	TokenIdent
	TokenPrivateIdent
	TokenNumber
	TokenString
	TokenRegex
	TokenTemplateChars
	TokenEscapeSequence
	TokenJSXText
	TokenHTMLCharRef

	// Parts of composite tokens
	TokenQuote
	TokenStringFragment
	TokenRegexPattern
	TokenRegexFlags

	// Synthesized by the scanner or the parser
	TokenAutoSemicolon
	TokenTernaryQmark

	// Reserved words
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenConst
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenExport
	TokenExtends
	TokenFalse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenImport
	TokenIn
	TokenInstanceof
	TokenNew
	TokenNull
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeof
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith

	// Contextual keywords
	TokenAs
	TokenAsync
	TokenAwait
	TokenFrom
	TokenGet
	TokenLet
	TokenMeta
	TokenOf
	TokenSet
	TokenStatic
	TokenTarget
	TokenUndefined
	TokenYield

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenOptionalChain
	TokenColon
	TokenArrow
	TokenBacktick
	TokenDollarBrace
	TokenAt

	// Operators
	TokenAssign
	TokenEq
	TokenNotEq
	TokenStrictEq
	TokenStrictNotEq
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAndAnd
	TokenOrOr
	TokenNullish
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenStarStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement

	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenStarStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
	TokenAndAndAssign
	TokenOrOrAssign
	TokenNullishAssign

	tokenKindCount
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:            "EOF",
	TokenError:          "Error",
	TokenComment:        "comment",
	TokenHTMLComment:    "html_comment",
	TokenHashBangLine:   "hash_bang_line",
	TokenIdent:          "identifier",
	TokenPrivateIdent:   "private_property_identifier",
	TokenNumber:         "number",
	TokenString:         "string",
	TokenRegex:          "regex",
	TokenTemplateChars:  "template_chars",
	TokenEscapeSequence: "escape_sequence",
	TokenJSXText:        "jsx_text",
	TokenHTMLCharRef:    "html_character_reference",
	TokenQuote:          "quote",
	TokenStringFragment: "string_fragment",
	TokenRegexPattern:   "regex_pattern",
	TokenRegexFlags:     "regex_flags",
	TokenAutoSemicolon:  "automatic_semicolon",
	TokenTernaryQmark:   "?",
	TokenBreak:          "break",
	TokenCase:           "case",
	TokenCatch:          "catch",
	TokenClass:          "class",
	TokenConst:          "const",
	TokenContinue:       "continue",
	TokenDebugger:       "debugger",
	TokenDefault:        "default",
	TokenDelete:         "delete",
	TokenDo:             "do",
	TokenElse:           "else",
	TokenExport:         "export",
	TokenExtends:        "extends",
	TokenFalse:          "false",
	TokenFinally:        "finally",
	TokenFor:            "for",
	TokenFunction:       "function",
	TokenIf:             "if",
	TokenImport:         "import",
	TokenIn:             "in",
	TokenInstanceof:     "instanceof",
	TokenNew:            "new",
	TokenNull:           "null",
	TokenReturn:         "return",
	TokenSuper:          "super",
	TokenSwitch:         "switch",
	TokenThis:           "this",
	TokenThrow:          "throw",
	TokenTrue:           "true",
	TokenTry:            "try",
	TokenTypeof:         "typeof",
	TokenVar:            "var",
	TokenVoid:           "void",
	TokenWhile:          "while",
	TokenWith:           "with",
	TokenAs:             "as",
	TokenAsync:          "async",
	TokenAwait:          "await",
	TokenFrom:           "from",
	TokenGet:            "get",
	TokenLet:            "let",
	TokenMeta:           "meta",
	TokenOf:             "of",
	TokenSet:            "set",
	TokenStatic:         "static",
	TokenTarget:         "target",
	TokenUndefined:      "undefined",
	TokenYield:          "yield",
	TokenLParen:         "(",
	TokenRParen:         ")",
	TokenLBrace:         "{",
	TokenRBrace:         "}",
	TokenLBracket:       "[",
	TokenRBracket:       "]",
	TokenSemicolon:      ";",
	TokenComma:          ",",
	TokenDot:            ".",
	TokenEllipsis:       "...",
	TokenOptionalChain:  "?.",
	TokenColon:          ":",
	TokenArrow:          "=>",
	TokenBacktick:       "`",
	TokenDollarBrace:    "${",
	TokenAt:             "@",
	TokenAssign:         "=",
	TokenEq:             "==",
	TokenNotEq:          "!=",
	TokenStrictEq:       "===",
	TokenStrictNotEq:    "!==",
	TokenLT:             "<",
	TokenLE:             "<=",
	TokenGT:             ">",
	TokenGE:             ">=",
	TokenAndAnd:         "&&",
	TokenOrOr:           "||",
	TokenNullish:        "??",
	TokenNot:            "!",
	TokenBitAnd:         "&",
	TokenBitOr:          "|",
	TokenBitXor:         "^",
	TokenBitNot:         "~",
	TokenShl:            "<<",
	TokenShr:            ">>",
	TokenUShr:           ">>>",
	TokenPlus:           "+",
	TokenMinus:          "-",
	TokenStar:           "*",
	TokenStarStar:       "**",
	TokenSlash:          "/",
	TokenPercent:        "%",
	TokenIncrement:      "++",
	TokenDecrement:      "--",
	TokenPlusAssign:     "+=",
	TokenMinusAssign:    "-=",
	TokenStarAssign:     "*=",
	TokenStarStarAssign: "**=",
	TokenSlashAssign:    "/=",
	TokenPercentAssign:  "%=",
	TokenAndAssign:      "&=",
	TokenOrAssign:       "|=",
	TokenXorAssign:      "^=",
	TokenShlAssign:      "<<=",
	TokenShrAssign:      ">>=",
	TokenUShrAssign:     ">>>=",
	TokenAndAndAssign:   "&&=",
	TokenOrOrAssign:     "||=",
	TokenNullishAssign:  "??=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved or contextual keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenBreak && k <= TokenYield
}

// IsReserved reports whether k is a reserved word that can never be used
// as a binding name.
func (k TokenKind) IsReserved() bool {
	return k >= TokenBreak && k <= TokenWith
}

// IsContextual reports whether k is a keyword only in some positions and an
// ordinary identifier everywhere else.
func (k TokenKind) IsContextual() bool {
	return k >= TokenAs && k <= TokenYield
}

func (k TokenKind) IsAssign() bool {
	return k == TokenAssign || (k >= TokenPlusAssign && k <= TokenNullishAssign)
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string

	// NewlineBefore is set when a line terminator occurs between the
	// previous significant token and this one.
	NewlineBefore bool

	// Parts holds the sub-tokens of strings and regular expressions.
	Parts []Token

	// Message describes the problem for TokenError tokens.
	Message string
	errKind MessageKind
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	if t.Literal != "" {
		return strconv.Quote(t.Literal)
	}
	return t.Kind.String()
}

var keywords = map[string]TokenKind{
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"debugger":   TokenDebugger,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"export":     TokenExport,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"import":     TokenImport,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"new":        TokenNew,
	"null":       TokenNull,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
	"as":         TokenAs,
	"async":      TokenAsync,
	"await":      TokenAwait,
	"from":       TokenFrom,
	"get":        TokenGet,
	"let":        TokenLet,
	"meta":       TokenMeta,
	"of":         TokenOf,
	"set":        TokenSet,
	"static":     TokenStatic,
	"target":     TokenTarget,
	"undefined":  TokenUndefined,
	"yield":      TokenYield,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
