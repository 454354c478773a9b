package parser

// Site is the syntactic position at which an ambiguity is resolved.
type Site int

const (
	// SiteStatement is the start of a statement.
	SiteStatement Site = iota
	// SiteOperand is where an expression operand is expected.
	SiteOperand
	// SiteOperator follows a complete operand.
	SiteOperator
	// SiteBinding is a declaration or assignment target.
	SiteBinding
)

var siteNames = map[Site]string{
	SiteStatement: "statement",
	SiteOperand:   "operand",
	SiteOperator:  "operator",
	SiteBinding:   "binding",
}

func (s Site) String() string {
	if name, ok := siteNames[s]; ok {
		return name
	}
	return "unknown"
}

// Strategy is how a conflict entry picks its winner.
type Strategy int

const (
	// ByRank compares the categories of both rules in the precedence table.
	ByRank Strategy = iota
	// ByPreference takes the first rule of Order that is a candidate.
	ByPreference
	// BySite picks the winner by syntactic site.
	BySite
)

func (s Strategy) String() string {
	switch s {
	case ByRank:
		return "rank"
	case ByPreference:
		return "preference"
	case BySite:
		return "site"
	}
	return "unknown"
}

// Conflict is one declared ambiguity between two rules.
type Conflict struct {
	A, B     Rule
	Strategy Strategy
	Order    []Rule
	Sites    map[Site]Rule
}

// ruleCategories places rules that compete by rank into the table.
var ruleCategories = map[Rule]Category{
	RuleFor(KindFunctionDeclaration):          CatDeclaration,
	RuleFor(KindGeneratorFunctionDeclaration): CatDeclaration,
	RuleFor(KindClassDeclaration):             CatDeclaration,
	RuleFor(KindFunctionExpression):           CatLiteral,
	RuleFor(KindGeneratorFunction):            CatLiteral,
	RuleFor(KindClass):                        CatLiteral,
	RuleFor(KindStatementBlock):               CatStatementBlock,
	RuleFor(KindObject):                       CatObject,
	RuleFor(KindIdentifier):                   CatPrimaryExpression,
	RuleFor(KindLexicalDeclaration):           CatLexicalDeclaration,
	RuleFor(KindImportStatement):              CatImportStatement,
	RuleImportCallee:                          CatImportExpression,
	RuleFor(KindIfStatement):                  CatIfStatement,
	RuleElseClause:                            CatIfStatement,
}

var (
	ruleArray        = RuleFor(KindArray)
	ruleArrayPattern = RuleFor(KindArrayPattern)
	ruleObject       = RuleFor(KindObject)
	ruleObjectPat    = RuleFor(KindObjectPattern)
	ruleArrow        = RuleFor(KindArrowFunction)
	ruleRegex        = RuleFor(KindRegex)
	ruleJSXElement   = RuleFor(KindJSXElement)
	ruleLabeled      = RuleFor(KindLabeledStatement)
	ruleStaticBlock  = RuleFor(KindClassStaticBlock)
)

// Conflicts is the complete list of ambiguities the parser may raise.
// Every Resolve call names a pair from this list.
var Conflicts = []Conflict{
	{A: RuleFor(KindStatementBlock), B: ruleObject, Strategy: ByRank},
	{A: RuleFor(KindFunctionDeclaration), B: RuleFor(KindFunctionExpression), Strategy: ByRank},
	{A: RuleFor(KindGeneratorFunctionDeclaration), B: RuleFor(KindGeneratorFunction), Strategy: ByRank},
	{A: RuleFor(KindClassDeclaration), B: RuleFor(KindClass), Strategy: ByRank},
	{A: RuleFor(KindLexicalDeclaration), B: RuleFor(KindIdentifier), Strategy: ByRank},
	{A: RuleFor(KindImportStatement), B: RuleImportCallee, Strategy: ByRank},
	{A: RuleFor(KindIfStatement), B: RuleElseClause, Strategy: ByRank},
	{A: ruleArray, B: ruleArrayPattern, Strategy: BySite, Sites: map[Site]Rule{
		SiteOperand: ruleArray,
		SiteBinding: ruleArrayPattern,
	}},
	{A: ruleObject, B: ruleObjectPat, Strategy: BySite, Sites: map[Site]Rule{
		SiteOperand: ruleObject,
		SiteBinding: ruleObjectPat,
	}},
	{A: ruleArrow, B: RuleFor(KindParenthesizedExpression), Strategy: ByPreference, Order: []Rule{ruleArrow}},
	{A: ruleArrow, B: RuleFor(KindIdentifier), Strategy: ByPreference, Order: []Rule{ruleArrow}},
	{A: ruleArrow, B: RuleFor(KindCallExpression), Strategy: ByPreference, Order: []Rule{ruleArrow}},
	{A: ruleLabeled, B: RulePropertyName, Strategy: BySite, Sites: map[Site]Rule{
		SiteStatement: ruleLabeled,
		SiteOperand:   RulePropertyName,
	}},
	{A: ruleJSXElement, B: RuleLessThan, Strategy: BySite, Sites: map[Site]Rule{
		SiteStatement: ruleJSXElement,
		SiteOperand:   ruleJSXElement,
		SiteOperator:  RuleLessThan,
	}},
	{A: ruleRegex, B: RuleDivision, Strategy: BySite, Sites: map[Site]Rule{
		SiteStatement: ruleRegex,
		SiteOperand:   ruleRegex,
		SiteOperator:  RuleDivision,
	}},
	{A: ruleStaticBlock, B: RulePropertyName, Strategy: ByPreference, Order: []Rule{ruleStaticBlock}},
}

type pairKey struct{ a, b Rule }

func keyOf(a, b Rule) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Resolver answers ambiguity queries from an immutable conflict table.
type Resolver struct {
	table   *Table
	entries map[pairKey]*Conflict
}

func NewResolver(table *Table, conflicts []Conflict) *Resolver {
	r := &Resolver{table: table, entries: make(map[pairKey]*Conflict, len(conflicts))}
	for i := range conflicts {
		c := &conflicts[i]
		r.entries[keyOf(c.A, c.B)] = c
	}
	return r
}

// Resolutions is the resolver every parse consults.
var Resolutions = NewResolver(Precedence, Conflicts)

// Resolve picks between two alternatives at site. a is the alternative
// that completes earlier and b the one that consumes more input, so a
// left-associative tie yields a and a right-associative tie yields b.
func (r *Resolver) Resolve(a, b Rule, site Site) (Rule, error) {
	if a == b {
		return a, nil
	}
	c, declared := r.entries[keyOf(a, b)]
	if !declared {
		return 0, &GrammarDefectError{A: a, B: b, Site: site}
	}
	switch c.Strategy {
	case ByRank:
		if w, ok := r.byRank(a, b); ok {
			return w, nil
		}
	case ByPreference:
		for _, w := range c.Order {
			if w == a || w == b {
				return w, nil
			}
		}
	case BySite:
		if w, ok := c.Sites[site]; ok {
			return w, nil
		}
	}
	return 0, &GrammarDefectError{A: a, B: b, Site: site}
}

func (r *Resolver) byRank(a, b Rule) (Rule, bool) {
	ca, okA := ruleCategories[a]
	cb, okB := ruleCategories[b]
	if !okA || !okB {
		return 0, false
	}
	cmp, assoc, ok := r.table.Compare(ca, cb)
	if !ok {
		return 0, false
	}
	switch {
	case cmp > 0:
		return a, true
	case cmp < 0:
		return b, true
	case assoc == AssocLeft:
		return a, true
	case assoc == AssocRight:
		return b, true
	}
	return 0, false
}

// Check resolves every declared conflict at every site and returns the
// first defect.
func (r *Resolver) Check() error {
	for _, c := range r.entries {
		switch c.Strategy {
		case BySite:
			for site := range c.Sites {
				if _, err := r.Resolve(c.A, c.B, site); err != nil {
					return err
				}
			}
		default:
			if _, err := r.Resolve(c.A, c.B, SiteStatement); err != nil {
				return err
			}
		}
	}
	return nil
}

// hintFor derives the scanner hint for a site from the regex/division and
// JSX/less-than entries.
func (r *Resolver) hintFor(site Site) Hint {
	var h Hint
	if w, err := r.Resolve(ruleRegex, RuleDivision, site); err == nil && w == ruleRegex {
		h |= HintRegex
	}
	return h
}

// mustResolve is used where the parser raises a declared conflict; a
// defect there is a bug in this package.
func mustResolve(a, b Rule, site Site) Rule {
	w, err := Resolutions.Resolve(a, b, site)
	if err != nil {
		panic(err)
	}
	return w
}

// HintOperand is the hint for sites where an operand is expected.
var HintOperand = Resolutions.hintFor(SiteOperand)
