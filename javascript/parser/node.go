package parser

import (
	"strconv"
	"strings"
)

// NodeKind is the public kind of a tree node. Names follow the
// tree-sitter-javascript vocabulary and are part of the package contract:
// query and highlighting layers match on them.
type NodeKind int

const (
	KindError NodeKind = iota
	// KindToken marks anonymous leaves: punctuation, operators, keywords.
	KindToken

	KindProgram
	KindHashBangLine
	KindComment

	// Statements
	KindExpressionStatement
	KindVariableDeclaration
	KindLexicalDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindGeneratorFunctionDeclaration
	KindClassDeclaration
	KindStatementBlock
	KindIfStatement
	KindSwitchStatement
	KindSwitchBody
	KindSwitchCase
	KindSwitchDefault
	KindForStatement
	KindForInStatement
	KindWhileStatement
	KindDoStatement
	KindTryStatement
	KindCatchClause
	KindFinallyClause
	KindWithStatement
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindThrowStatement
	KindEmptyStatement
	KindLabeledStatement
	KindDebuggerStatement
	KindImportStatement
	KindImportClause
	KindNamedImports
	KindImportSpecifier
	KindNamespaceImport
	KindImportAttribute
	KindExportStatement
	KindExportClause
	KindExportSpecifier
	KindNamespaceExport

	// Names
	KindIdentifier
	KindPropertyIdentifier
	KindShorthandPropertyIdentifier
	KindShorthandPropertyIdentifierPattern
	KindStatementIdentifier
	KindPrivatePropertyIdentifier

	// Literals
	KindThis
	KindSuper
	KindTrue
	KindFalse
	KindNull
	KindUndefined
	KindNumber
	KindString
	KindStringFragment
	KindEscapeSequence
	KindTemplateString
	KindTemplateSubstitution
	KindRegex
	KindRegexPattern
	KindRegexFlags

	// Expressions
	KindObject
	KindPair
	KindComputedPropertyName
	KindMethodDefinition
	KindArray
	KindFunctionExpression
	KindGeneratorFunction
	KindArrowFunction
	KindFormalParameters
	KindClass
	KindClassHeritage
	KindClassBody
	KindFieldDefinition
	KindClassStaticBlock
	KindDecorator
	KindParenthesizedExpression
	KindMemberExpression
	KindSubscriptExpression
	KindOptionalChain
	KindCallExpression
	KindNewExpression
	KindArguments
	KindMetaProperty
	KindImport
	KindAwaitExpression
	KindYieldExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindTernaryExpression
	KindAssignmentExpression
	KindAugmentedAssignmentExpression
	KindSequenceExpression
	KindSpreadElement

	// Patterns
	KindObjectPattern
	KindArrayPattern
	KindAssignmentPattern
	KindObjectAssignmentPattern
	KindRestPattern
	KindPairPattern

	// JSX
	KindJSXElement
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXSelfClosingElement
	KindJSXAttribute
	KindJSXExpression
	KindJSXText
	KindJSXNamespaceName
	KindHTMLCharacterReference

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	KindError:                              "ERROR",
	KindToken:                              "token",
	KindProgram:                            "program",
	KindHashBangLine:                       "hash_bang_line",
	KindComment:                            "comment",
	KindExpressionStatement:                "expression_statement",
	KindVariableDeclaration:                "variable_declaration",
	KindLexicalDeclaration:                 "lexical_declaration",
	KindVariableDeclarator:                 "variable_declarator",
	KindFunctionDeclaration:                "function_declaration",
	KindGeneratorFunctionDeclaration:       "generator_function_declaration",
	KindClassDeclaration:                   "class_declaration",
	KindStatementBlock:                     "statement_block",
	KindIfStatement:                        "if_statement",
	KindSwitchStatement:                    "switch_statement",
	KindSwitchBody:                         "switch_body",
	KindSwitchCase:                         "switch_case",
	KindSwitchDefault:                      "switch_default",
	KindForStatement:                       "for_statement",
	KindForInStatement:                     "for_in_statement",
	KindWhileStatement:                     "while_statement",
	KindDoStatement:                        "do_statement",
	KindTryStatement:                       "try_statement",
	KindCatchClause:                        "catch_clause",
	KindFinallyClause:                      "finally_clause",
	KindWithStatement:                      "with_statement",
	KindBreakStatement:                     "break_statement",
	KindContinueStatement:                  "continue_statement",
	KindReturnStatement:                    "return_statement",
	KindThrowStatement:                     "throw_statement",
	KindEmptyStatement:                     "empty_statement",
	KindLabeledStatement:                   "labeled_statement",
	KindDebuggerStatement:                  "debugger_statement",
	KindImportStatement:                    "import_statement",
	KindImportClause:                       "import_clause",
	KindNamedImports:                       "named_imports",
	KindImportSpecifier:                    "import_specifier",
	KindNamespaceImport:                    "namespace_import",
	KindImportAttribute:                    "import_attribute",
	KindExportStatement:                    "export_statement",
	KindExportClause:                       "export_clause",
	KindExportSpecifier:                    "export_specifier",
	KindNamespaceExport:                    "namespace_export",
	KindIdentifier:                         "identifier",
	KindPropertyIdentifier:                 "property_identifier",
	KindShorthandPropertyIdentifier:        "shorthand_property_identifier",
	KindShorthandPropertyIdentifierPattern: "shorthand_property_identifier_pattern",
	KindStatementIdentifier:                "statement_identifier",
	KindPrivatePropertyIdentifier:          "private_property_identifier",
	KindThis:                               "this",
	KindSuper:                              "super",
	KindTrue:                               "true",
	KindFalse:                              "false",
	KindNull:                               "null",
	KindUndefined:                          "undefined",
	KindNumber:                             "number",
	KindString:                             "string",
	KindStringFragment:                     "string_fragment",
	KindEscapeSequence:                     "escape_sequence",
	KindTemplateString:                     "template_string",
	KindTemplateSubstitution:               "template_substitution",
	KindRegex:                              "regex",
	KindRegexPattern:                       "regex_pattern",
	KindRegexFlags:                         "regex_flags",
	KindObject:                             "object",
	KindPair:                               "pair",
	KindComputedPropertyName:               "computed_property_name",
	KindMethodDefinition:                   "method_definition",
	KindArray:                              "array",
	KindFunctionExpression:                 "function_expression",
	KindGeneratorFunction:                  "generator_function",
	KindArrowFunction:                      "arrow_function",
	KindFormalParameters:                   "formal_parameters",
	KindClass:                              "class",
	KindClassHeritage:                      "class_heritage",
	KindClassBody:                          "class_body",
	KindFieldDefinition:                    "field_definition",
	KindClassStaticBlock:                   "class_static_block",
	KindDecorator:                          "decorator",
	KindParenthesizedExpression:            "parenthesized_expression",
	KindMemberExpression:                   "member_expression",
	KindSubscriptExpression:                "subscript_expression",
	KindOptionalChain:                      "optional_chain",
	KindCallExpression:                     "call_expression",
	KindNewExpression:                      "new_expression",
	KindArguments:                          "arguments",
	KindMetaProperty:                       "meta_property",
	KindImport:                             "import",
	KindAwaitExpression:                    "await_expression",
	KindYieldExpression:                    "yield_expression",
	KindUnaryExpression:                    "unary_expression",
	KindUpdateExpression:                   "update_expression",
	KindBinaryExpression:                   "binary_expression",
	KindTernaryExpression:                  "ternary_expression",
	KindAssignmentExpression:               "assignment_expression",
	KindAugmentedAssignmentExpression:      "augmented_assignment_expression",
	KindSequenceExpression:                 "sequence_expression",
	KindSpreadElement:                      "spread_element",
	KindObjectPattern:                      "object_pattern",
	KindArrayPattern:                       "array_pattern",
	KindAssignmentPattern:                  "assignment_pattern",
	KindObjectAssignmentPattern:            "object_assignment_pattern",
	KindRestPattern:                        "rest_pattern",
	KindPairPattern:                        "pair_pattern",
	KindJSXElement:                         "jsx_element",
	KindJSXOpeningElement:                  "jsx_opening_element",
	KindJSXClosingElement:                  "jsx_closing_element",
	KindJSXSelfClosingElement:              "jsx_self_closing_element",
	KindJSXAttribute:                       "jsx_attribute",
	KindJSXExpression:                      "jsx_expression",
	KindJSXText:                            "jsx_text",
	KindJSXNamespaceName:                   "jsx_namespace_name",
	KindHTMLCharacterReference:             "html_character_reference",
}

func (k NodeKind) String() string {
	if k >= 0 && k < nodeKindCount && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Rule is the internal identity of a matched grammar rule. Every NodeKind
// doubles as the rule that produces it; the rules declared after
// ruleAliasBase are emitted under a different public kind.
type Rule int

const ruleAliasBase = Rule(nodeKindCount)

const (
	// RuleReservedIdentifier is a contextual keyword in identifier position.
	RuleReservedIdentifier Rule = ruleAliasBase + iota
	RuleLabel
	RulePropertyName
	RuleShorthandProperty
	RuleShorthandPattern
	RuleTemplateChars
	RuleJSXString
	RuleJSXIdentifier
	RuleJSXAttributeName
	RuleJSXMemberName
	RuleJSXFragmentOpen
	RuleJSXFragmentClose
	RuleImportCallee

	// Conflict-only rules: they never produce a node of their own.
	RuleDivision
	RuleLessThan
	RuleElseClause

	ruleCount
)

// aliases maps alias rules to the public kind they are emitted as.
var aliases = map[Rule]NodeKind{
	RuleReservedIdentifier: KindIdentifier,
	RuleLabel:              KindStatementIdentifier,
	RulePropertyName:       KindPropertyIdentifier,
	RuleShorthandProperty:  KindShorthandPropertyIdentifier,
	RuleShorthandPattern:   KindShorthandPropertyIdentifierPattern,
	RuleTemplateChars:      KindStringFragment,
	RuleJSXString:          KindString,
	RuleJSXIdentifier:      KindIdentifier,
	RuleJSXAttributeName:   KindPropertyIdentifier,
	RuleJSXMemberName:      KindMemberExpression,
	RuleJSXFragmentOpen:    KindJSXOpeningElement,
	RuleJSXFragmentClose:   KindJSXClosingElement,
	RuleImportCallee:       KindImport,
	RuleDivision:           KindBinaryExpression,
	RuleLessThan:           KindBinaryExpression,
	RuleElseClause:         KindIfStatement,
}

var ruleNames = map[Rule]string{
	RuleReservedIdentifier: "_reserved_identifier",
	RuleLabel:              "_label",
	RulePropertyName:       "_property_name",
	RuleShorthandProperty:  "_shorthand_property",
	RuleShorthandPattern:   "_shorthand_pattern",
	RuleTemplateChars:      "_template_chars",
	RuleJSXString:          "_jsx_string",
	RuleJSXIdentifier:      "_jsx_identifier",
	RuleJSXAttributeName:   "_jsx_attribute_name",
	RuleJSXMemberName:      "_jsx_member_name",
	RuleJSXFragmentOpen:    "_jsx_fragment_open",
	RuleJSXFragmentClose:   "_jsx_fragment_close",
	RuleImportCallee:       "_import_callee",
	RuleDivision:           "_division",
	RuleLessThan:           "_less_than",
	RuleElseClause:         "_else_clause",
}

// RuleFor returns the rule that produces kind without aliasing.
func RuleFor(kind NodeKind) Rule {
	return Rule(kind)
}

// Kind returns the public node kind r is emitted as.
func (r Rule) Kind() NodeKind {
	if r < ruleAliasBase {
		return NodeKind(r)
	}
	if k, ok := aliases[r]; ok {
		return k
	}
	return KindError
}

func (r Rule) IsAlias() bool {
	return r >= ruleAliasBase
}

func (r Rule) String() string {
	if r < ruleAliasBase {
		return NodeKind(r).String()
	}
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "Unknown"
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *SyntaxError

	fields []string
	rule   Rule
}

// Rule returns the internal rule the node was built from.
func (n *Node) Rule() Rule {
	return n.rule
}

// Type is the node's kind name, or the token text for anonymous leaves.
func (n *Node) Type() string {
	if n.Kind == KindToken && n.Token != nil {
		if n.Token.Kind == TokenAutoSemicolon {
			return ";"
		}
		return n.Token.Literal
	}
	return n.Kind.String()
}

func (n *Node) IsNamed() bool {
	return n.Kind != KindToken
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasError reports whether n or any descendant is an ERROR node.
func (n *Node) HasError() bool {
	if n.IsError() {
		return true
	}
	for _, c := range n.Children {
		if c.HasError() {
			return true
		}
	}
	return false
}

// FieldNameForChild returns the field name of the i-th child, or "".
func (n *Node) FieldNameForChild(i int) string {
	if i < 0 || i >= len(n.fields) {
		return ""
	}
	return n.fields[i]
}

func (n *Node) ChildByField(name string) *Node {
	for i, f := range n.fields {
		if f == name {
			return n.Children[i]
		}
	}
	return nil
}

func (n *Node) ChildrenByField(name string) []*Node {
	var result []*Node
	for i, f := range n.fields {
		if f == name {
			result = append(result, n.Children[i])
		}
	}
	return result
}

func (n *Node) NamedChildren() []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.IsNamed() {
			result = append(result, c)
		}
	}
	return result
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Leaves returns the token-bearing nodes under n in source order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Token != nil && len(c.Children) == 0 {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Text returns the source text covered by n.
func (n *Node) Text(src []byte) string {
	if n.Span.End.Offset > len(src) || n.Span.Start.Offset > n.Span.End.Offset {
		return ""
	}
	return string(src[n.Span.Start.Offset:n.Span.End.Offset])
}

// String renders named nodes as an S-expression with field labels, the
// notation used by tree-sitter corpus tests.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeSexp(&sb)
	return sb.String()
}

func (n *Node) writeSexp(sb *strings.Builder) {
	sb.WriteString("(")
	sb.WriteString(n.Type())
	for i, c := range n.Children {
		if !c.IsNamed() {
			continue
		}
		sb.WriteString(" ")
		if f := n.FieldNameForChild(i); f != "" {
			sb.WriteString(f)
			sb.WriteString(": ")
		}
		c.writeSexp(sb)
	}
	sb.WriteString(")")
}

// StringWithPositions renders an indented outline with spans and leaf text.
func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeOutline(&sb, 0, "")
	return sb.String()
}

func (n *Node) writeOutline(sb *strings.Builder, indent int, field string) {
	sb.WriteString(strings.Repeat("  ", indent))
	if field != "" {
		sb.WriteString(field + ": ")
	}
	sb.WriteString(n.Type())
	sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	if n.Token != nil && n.IsNamed() {
		sb.WriteString(" " + strconv.Quote(n.Token.Literal))
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")
	for i, child := range n.Children {
		child.writeOutline(sb, indent+1, n.FieldNameForChild(i))
	}
}
