package ast

// nodeType tags every AST node with the kind of Fluent construct it represents.
type nodeType string

const (
	TypeResource          nodeType = "Resource"
	TypeIdentifier        nodeType = "Identifier"
	TypeComment           nodeType = "Comment"
	TypeGroupComment      nodeType = "GroupComment"
	TypeResourceComment   nodeType = "ResourceComment"
	TypeMessage           nodeType = "Message"
	TypeTerm              nodeType = "Term"
	TypeAttribute         nodeType = "Attribute"
	TypePattern           nodeType = "Pattern"
	TypeText              nodeType = "TextElement"
	TypePlaceable         nodeType = "Placeable"
	TypeStringLiteral     nodeType = "StringLiteral"
	TypeNumberLiteral     nodeType = "NumberLiteral"
	TypeMessageReference  nodeType = "MessageReference"
	TypeTermReference     nodeType = "TermReference"
	TypeVariableReference nodeType = "VariableReference"
	TypeCallArguments     nodeType = "CallArguments"
	TypeNamedArgument     nodeType = "NamedArgument"
	TypeSelectExpression  nodeType = "SelectExpression"
	TypeVariant           nodeType = "Variant"
	TypeJunk              nodeType = "Junk"
)

// IsEntry reports whether typ represents a top-level entry of a resource.
func IsEntry(typ nodeType) bool {
	return IsComment(typ) || anyOf(typ, TypeMessage, TypeTerm)
}

// IsComment reports whether typ represents any of the three comment severities.
func IsComment(typ nodeType) bool {
	return anyOf(typ, TypeComment, TypeGroupComment, TypeResourceComment)
}

// IsPatternElement reports whether typ represents an element of a Pattern.
func IsPatternElement(typ nodeType) bool {
	return anyOf(typ, TypeText, TypePlaceable)
}

// IsLiteral reports whether typ represents a literal (string or number).
func IsLiteral(typ nodeType) bool {
	return anyOf(typ, TypeStringLiteral, TypeNumberLiteral)
}

func anyOf(typ nodeType, types ...nodeType) bool {
	for _, candidate := range types {
		if typ == candidate {
			return true
		}
	}
	return false
}
