package parser

import (
	"fmt"
	"sort"
)

// FieldSpec declares a named slot of a node kind.
type FieldSpec struct {
	Name     string
	Multiple bool
	Required bool
}

func one(name string) FieldSpec { return FieldSpec{Name: name, Required: true} }
func opt(name string) FieldSpec { return FieldSpec{Name: name} }
func many(name string) FieldSpec { return FieldSpec{Name: name, Multiple: true} }
func fields(f ...FieldSpec) []FieldSpec { return f }

// schemas lists the fields each kind may carry. Kinds absent from the map
// have no fields; all their children are positional.
var schemas = map[NodeKind][]FieldSpec{
	KindLexicalDeclaration:            fields(one("kind")),
	KindVariableDeclarator:            fields(one("name"), opt("value")),
	KindFunctionDeclaration:           fields(one("name"), one("parameters"), one("body")),
	KindGeneratorFunctionDeclaration:  fields(one("name"), one("parameters"), one("body")),
	KindFunctionExpression:            fields(opt("name"), one("parameters"), one("body")),
	KindGeneratorFunction:             fields(opt("name"), one("parameters"), one("body")),
	KindArrowFunction:                 fields(opt("parameter"), opt("parameters"), one("body")),
	KindClassDeclaration:              fields(many("decorator"), one("name"), one("body")),
	KindClass:                         fields(many("decorator"), opt("name"), one("body")),
	KindClassBody:                     fields(many("member")),
	KindMethodDefinition:              fields(many("decorator"), one("name"), one("parameters"), one("body")),
	KindFieldDefinition:               fields(many("decorator"), one("property"), opt("value")),
	KindClassStaticBlock:              fields(one("body")),
	KindIfStatement:                   fields(one("condition"), one("consequence"), opt("alternative")),
	KindSwitchStatement:               fields(one("value"), one("body")),
	KindSwitchCase:                    fields(one("value"), many("body")),
	KindSwitchDefault:                 fields(many("body")),
	KindForStatement:                  fields(opt("initializer"), opt("condition"), opt("increment"), one("body")),
	KindForInStatement:                fields(opt("kind"), one("left"), one("operator"), one("right"), one("body")),
	KindWhileStatement:                fields(one("condition"), one("body")),
	KindDoStatement:                   fields(one("body"), one("condition")),
	KindWithStatement:                 fields(one("object"), one("body")),
	KindTryStatement:                  fields(one("body"), opt("handler"), opt("finalizer")),
	KindCatchClause:                   fields(opt("parameter"), one("body")),
	KindFinallyClause:                 fields(one("body")),
	KindBreakStatement:                fields(opt("label")),
	KindContinueStatement:             fields(opt("label")),
	KindLabeledStatement:              fields(one("label"), one("body")),
	KindImportStatement:               fields(one("source")),
	KindImportSpecifier:               fields(one("name"), opt("alias")),
	KindExportStatement:               fields(many("decorator"), opt("declaration"), opt("value"), opt("source")),
	KindExportSpecifier:               fields(one("name"), opt("alias")),
	KindMemberExpression:              fields(one("object"), opt("optional_chain"), one("property")),
	KindSubscriptExpression:           fields(one("object"), opt("optional_chain"), one("index")),
	KindCallExpression:                fields(one("function"), opt("optional_chain"), one("arguments")),
	KindNewExpression:                 fields(one("constructor"), opt("arguments")),
	KindUnaryExpression:               fields(one("operator"), one("argument")),
	KindUpdateExpression:              fields(one("operator"), one("argument")),
	KindBinaryExpression:              fields(one("left"), one("operator"), one("right")),
	KindTernaryExpression:             fields(one("condition"), one("consequence"), one("alternative")),
	KindAssignmentExpression:          fields(one("left"), one("right")),
	KindAugmentedAssignmentExpression: fields(one("left"), one("operator"), one("right")),
	KindPair:                          fields(one("key"), one("value")),
	KindPairPattern:                   fields(one("key"), one("value")),
	KindAssignmentPattern:             fields(one("left"), one("right")),
	KindObjectAssignmentPattern:       fields(one("left"), one("right")),
	KindRegex:                         fields(one("pattern"), opt("flags")),
	KindJSXElement:                    fields(one("open_tag"), one("close_tag")),
	KindJSXOpeningElement:             fields(opt("name"), many("attribute")),
	KindJSXSelfClosingElement:         fields(one("name"), many("attribute")),
	KindJSXClosingElement:             fields(opt("name")),
}

// SchemaError reports a builder call that the schema does not admit. It
// indicates a bug in the grammar code, never bad input.
type SchemaError struct {
	Kind   NodeKind
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: %s.%s: %s", e.Kind, e.Field, e.Reason)
}

func fieldSpec(kind NodeKind, name string) (FieldSpec, bool) {
	for _, f := range schemas[kind] {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Fields returns the declared fields of kind.
func Fields(kind NodeKind) []FieldSpec {
	return schemas[kind]
}

// KindByName returns the node kind called name.
func KindByName(name string) (NodeKind, bool) {
	for k := KindError; k < nodeKindCount; k++ {
		if k != KindToken && k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// LanguageInfo describes the node vocabulary the parser emits.
type LanguageInfo struct {
	Name       string
	Extensions []string
	NodeKinds  []string
	FieldNames []string
}

// Language returns the grammar metadata. Consumers use it to check that the
// kinds and fields they match on exist.
func Language() *LanguageInfo {
	info := &LanguageInfo{
		Name:       "javascript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
	}
	for k := KindError; k < nodeKindCount; k++ {
		if k == KindToken {
			continue
		}
		info.NodeKinds = append(info.NodeKinds, k.String())
	}
	seen := make(map[string]bool)
	for _, fs := range schemas {
		for _, f := range fs {
			if !seen[f.Name] {
				seen[f.Name] = true
				info.FieldNames = append(info.FieldNames, f.Name)
			}
		}
	}
	sort.Strings(info.FieldNames)
	return info
}

// HasKind reports whether name is a node kind of the language.
func (l *LanguageInfo) HasKind(name string) bool {
	for _, k := range l.NodeKinds {
		if k == name {
			return true
		}
	}
	return false
}

func (l *LanguageInfo) HasField(name string) bool {
	i := sort.SearchStrings(l.FieldNames, name)
	return i < len(l.FieldNames) && l.FieldNames[i] == name
}
