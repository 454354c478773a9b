package parser

// Production names a grammar point that carries a [no LineTerminator here]
// restriction.
type Production int

const (
	ProdReturn Production = iota
	ProdBreak
	ProdContinue
	ProdThrow
	ProdYield
	ProdYieldDelegate
	ProdPostfixUpdate
	ProdArrow
	ProdAsyncFunction
	ProdAsyncArrow
)

var productionNames = map[Production]string{
	ProdReturn:        "return",
	ProdBreak:         "break",
	ProdContinue:      "continue",
	ProdThrow:         "throw",
	ProdYield:         "yield",
	ProdYieldDelegate: "yield*",
	ProdPostfixUpdate: "postfix-update",
	ProdArrow:         "arrow",
	ProdAsyncFunction: "async-function",
	ProdAsyncArrow:    "async-arrow",
}

func (p Production) String() string {
	if name, ok := productionNames[p]; ok {
		return name
	}
	return "unknown"
}

// Effect is what a line break does at a restricted point.
type Effect int

const (
	// EffectInsert ends the statement right there: the optional operand
	// that follows on the next line belongs to a new statement.
	EffectInsert Effect = iota
	// EffectBreak forbids the continuation: the operator or keyword that
	// follows on the next line cannot attach to what precedes it.
	EffectBreak
)

// Restriction is one entry of the restricted-production table.
type Restriction struct {
	Production Production
	// Anchor is the token the line break is measured against: after it for
	// EffectInsert entries, before it for EffectBreak entries.
	Anchor TokenKind
	Effect Effect
}

// RestrictedProductions is the complete set of grammar points where a line
// terminator changes the parse.
var RestrictedProductions = []Restriction{
	{Production: ProdReturn, Anchor: TokenReturn, Effect: EffectInsert},
	{Production: ProdBreak, Anchor: TokenBreak, Effect: EffectInsert},
	{Production: ProdContinue, Anchor: TokenContinue, Effect: EffectInsert},
	{Production: ProdThrow, Anchor: TokenThrow, Effect: EffectInsert},
	{Production: ProdYield, Anchor: TokenYield, Effect: EffectInsert},
	{Production: ProdYieldDelegate, Anchor: TokenStar, Effect: EffectBreak},
	{Production: ProdPostfixUpdate, Anchor: TokenIncrement, Effect: EffectBreak},
	{Production: ProdPostfixUpdate, Anchor: TokenDecrement, Effect: EffectBreak},
	{Production: ProdArrow, Anchor: TokenArrow, Effect: EffectBreak},
	{Production: ProdAsyncFunction, Anchor: TokenFunction, Effect: EffectBreak},
	{Production: ProdAsyncArrow, Anchor: TokenArrow, Effect: EffectBreak},
}

var restrictionIndex = func() map[Production][]Restriction {
	idx := make(map[Production][]Restriction)
	for _, r := range RestrictedProductions {
		idx[r.Production] = append(idx[r.Production], r)
	}
	return idx
}()

// MayInsert reports whether a virtual semicolon may be inserted before next
// at a statement boundary.
func MayInsert(next Token, precedingNewline bool) bool {
	return precedingNewline || next.Kind == TokenRBrace || next.Kind == TokenEOF
}

// ForcesInsertion reports whether, at restricted production p, the token
// next must not be taken as the production's operand. A line break there
// is mandatory insertion, not merely permitted.
func ForcesInsertion(p Production, next Token) bool {
	for _, r := range restrictionIndex[p] {
		if r.Effect == EffectInsert {
			return next.NewlineBefore || next.Kind == TokenEOF || next.Kind == TokenRBrace || next.Kind == TokenSemicolon
		}
	}
	return false
}

// Allows reports whether next may continue production p. Only EffectBreak
// entries anchored on next's kind are consulted.
func Allows(p Production, next Token) bool {
	for _, r := range restrictionIndex[p] {
		if r.Effect == EffectBreak && r.Anchor == next.Kind {
			return !next.NewlineBefore
		}
	}
	return true
}

// IsRestricted reports whether p appears in the table at all.
func IsRestricted(p Production) bool {
	_, ok := restrictionIndex[p]
	return ok
}
