package parser

// Category is a precedence class: an operator family or a named grammar
// alternative that competes with others in an ambiguity.
type Category int

const (
	CatNone Category = iota

	CatMember
	CatCall
	CatNew
	CatUpdate
	CatUnary
	CatExponent
	CatMultiplicative
	CatAdditive
	CatShift
	CatRelational
	CatEquality
	CatBitAnd
	CatBitXor
	CatBitOr
	CatLogicalAnd
	CatLogicalOr
	CatNullish
	CatTernary
	CatAssign
	CatYield
	CatSequence
	CatArrow

	CatDeclaration
	CatLiteral
	CatPrimaryExpression
	CatStatementBlock
	CatObject
	CatLexicalDeclaration
	CatImportStatement
	CatImportExpression
	CatIfStatement
)

var categoryNames = map[Category]string{
	CatNone:               "none",
	CatMember:             "member",
	CatCall:               "call",
	CatNew:                "new",
	CatUpdate:             "update",
	CatUnary:              "unary",
	CatExponent:           "exponent",
	CatMultiplicative:     "multiplicative",
	CatAdditive:           "additive",
	CatShift:              "shift",
	CatRelational:         "relational",
	CatEquality:           "equality",
	CatBitAnd:             "bitwise_and",
	CatBitXor:             "bitwise_xor",
	CatBitOr:              "bitwise_or",
	CatLogicalAnd:         "logical_and",
	CatLogicalOr:          "logical_or",
	CatNullish:            "nullish",
	CatTernary:            "ternary",
	CatAssign:             "assign",
	CatYield:              "yield",
	CatSequence:           "sequence",
	CatArrow:              "arrow",
	CatDeclaration:        "declaration",
	CatLiteral:            "literal",
	CatPrimaryExpression:  "primary_expression",
	CatStatementBlock:     "statement_block",
	CatObject:             "object",
	CatLexicalDeclaration: "lexical_declaration",
	CatImportStatement:    "import_statement",
	CatImportExpression:   "import",
	CatIfStatement:        "if_statement",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	}
	return "none"
}

// Entry places a category in one chain. Higher ranks bind tighter.
type Entry struct {
	Category Category
	Rank     int
	Assoc    Assoc
	Chain    int
}

type level struct {
	cat   Category
	assoc Assoc
}

// chains lists each ordering tightest first. Ranks are comparable only
// within a chain; a category may sit in several chains.
var chains = [][]level{
	{
		{CatMember, AssocLeft},
		{CatCall, AssocLeft},
		{CatNew, AssocRight},
		{CatUpdate, AssocLeft},
		{CatUnary, AssocLeft},
		{CatExponent, AssocRight},
		{CatMultiplicative, AssocLeft},
		{CatAdditive, AssocLeft},
		{CatShift, AssocLeft},
		{CatRelational, AssocLeft},
		{CatEquality, AssocLeft},
		{CatBitAnd, AssocLeft},
		{CatBitXor, AssocLeft},
		{CatBitOr, AssocLeft},
		{CatLogicalAnd, AssocLeft},
		{CatLogicalOr, AssocLeft},
		{CatNullish, AssocLeft},
		{CatTernary, AssocRight},
		{CatAssign, AssocRight},
		{CatYield, AssocRight},
		{CatSequence, AssocLeft},
		{CatArrow, AssocRight},
	},
	{{CatDeclaration, AssocNone}, {CatLiteral, AssocNone}},
	{{CatPrimaryExpression, AssocNone}, {CatStatementBlock, AssocNone}, {CatObject, AssocNone}},
	{{CatLexicalDeclaration, AssocNone}, {CatPrimaryExpression, AssocNone}},
	{{CatImportStatement, AssocNone}, {CatImportExpression, AssocNone}},
	{{CatIfStatement, AssocRight}},
}

// Table is an immutable precedence table built from chains.
type Table struct {
	entries map[Category][]Entry
}

// newTable builds a table from chains given tightest first.
func newTable(levels [][]level) *Table {
	t := &Table{entries: make(map[Category][]Entry)}
	for ci, chain := range levels {
		for i, lv := range chain {
			t.entries[lv.cat] = append(t.entries[lv.cat], Entry{
				Category: lv.cat,
				Rank:     len(chain) - i,
				Assoc:    lv.assoc,
				Chain:    ci,
			})
		}
	}
	return t
}

// Precedence is the table every parse consults.
var Precedence = newTable(chains)

// Lookup returns the operator-chain entry for c, or the first entry when c
// only appears in named chains.
func (t *Table) Lookup(c Category) (Entry, bool) {
	es := t.entries[c]
	if len(es) == 0 {
		return Entry{}, false
	}
	return es[0], true
}

// Compare orders a against b within the first chain holding both. The
// result is positive when a binds tighter; ok is false when no chain ranks
// both categories.
func (t *Table) Compare(a, b Category) (cmp int, assoc Assoc, ok bool) {
	for _, ea := range t.entries[a] {
		for _, eb := range t.entries[b] {
			if ea.Chain != eb.Chain {
				continue
			}
			return ea.Rank - eb.Rank, ea.Assoc, true
		}
	}
	return 0, AssocNone, false
}

var binaryCategories = map[TokenKind]Category{
	TokenStarStar:    CatExponent,
	TokenStar:        CatMultiplicative,
	TokenSlash:       CatMultiplicative,
	TokenPercent:     CatMultiplicative,
	TokenPlus:        CatAdditive,
	TokenMinus:       CatAdditive,
	TokenShl:         CatShift,
	TokenShr:         CatShift,
	TokenUShr:        CatShift,
	TokenLT:          CatRelational,
	TokenLE:          CatRelational,
	TokenGT:          CatRelational,
	TokenGE:          CatRelational,
	TokenInstanceof:  CatRelational,
	TokenIn:          CatRelational,
	TokenEq:          CatEquality,
	TokenNotEq:       CatEquality,
	TokenStrictEq:    CatEquality,
	TokenStrictNotEq: CatEquality,
	TokenBitAnd:      CatBitAnd,
	TokenBitXor:      CatBitXor,
	TokenBitOr:       CatBitOr,
	TokenAndAnd:      CatLogicalAnd,
	TokenOrOr:        CatLogicalOr,
	TokenNullish:     CatNullish,
}

// Binary returns the entry for a binary operator token.
func (t *Table) Binary(k TokenKind) (Entry, bool) {
	cat, ok := binaryCategories[k]
	if !ok {
		return Entry{}, false
	}
	return t.Lookup(cat)
}
