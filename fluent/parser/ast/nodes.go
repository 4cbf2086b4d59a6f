package ast

import "encoding/json"

// Node is implemented by every AST node type so they can be held in a
// Node-typed slice (e.g. Resource.Body, Pattern.Elements).
type Node interface {
	node()
}

// Base is embedded by every AST node type.
type Base struct {
	Type nodeType `json:"type"`
	Span [2]uint  `json:"-"`
}

func (*Base) node() {}

// Resource is the root node of a parsed FTL source: a sequence of entries
// (Message, Term, the three comment kinds, or Junk).
type Resource struct {
	Base
	Body []Node `json:"body"`
}

// Identifier is a bare Fluent identifier, e.g. the "name" in "name = ...".
type Identifier struct {
	Base
	Name string `json:"name"`
}

// Comment is a single-# comment. Attached to the Message or Term it
// immediately precedes, or kept as a standalone entry otherwise.
type Comment struct {
	Base
	Content string `json:"content"`
}

// GroupComment is a double-## comment, never attached to an entry.
type GroupComment struct {
	Base
	Content string `json:"content"`
}

// ResourceComment is a triple-### comment, never attached to an entry.
type ResourceComment struct {
	Base
	Content string `json:"content"`
}

// Message is a top-level message declaration. Either Value is non-nil or
// Attributes is non-empty (enforced by the parser).
type Message struct {
	Base
	ID         *Identifier   `json:"id"`
	Value      *Pattern      `json:"value"`
	Attributes *AttributeMap `json:"attributes"`
	Comment    *Comment      `json:"comment"`
}

// Term is structurally identical to Message. Its ID excludes the leading
// '-' used to reference it (e.g. "-brand" is stored as "brand").
type Term struct {
	Base
	ID         *Identifier   `json:"id"`
	Value      *Pattern      `json:"value"`
	Attributes *AttributeMap `json:"attributes"`
	Comment    *Comment      `json:"comment"`
}

// Attribute is a named sub-pattern of a Message or Term (".name = ...").
// It cannot itself carry attributes.
type Attribute struct {
	Base
	ID    *Identifier `json:"id"`
	Value *Pattern    `json:"value"`
}

// AttributeMap is an insertion-ordered Identifier -> Attribute mapping.
// Re-inserting an existing id overwrites the value but keeps its original
// position, matching the bundle's message/term overwrite policy.
type AttributeMap struct {
	order []string
	byID  map[string]*Attribute
}

// NewAttributeMap creates an empty AttributeMap.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{byID: make(map[string]*Attribute)}
}

// Set inserts or overwrites the attribute keyed by its identifier name.
func (m *AttributeMap) Set(attr *Attribute) {
	id := attr.ID.Name
	if _, exists := m.byID[id]; !exists {
		m.order = append(m.order, id)
	}
	m.byID[id] = attr
}

// Get looks up an attribute by identifier name.
func (m *AttributeMap) Get(id string) (*Attribute, bool) {
	if m == nil {
		return nil, false
	}
	attr, ok := m.byID[id]
	return attr, ok
}

// Len returns the number of distinct attribute ids.
func (m *AttributeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Values returns the attributes in insertion order.
func (m *AttributeMap) Values() []*Attribute {
	if m == nil {
		return nil
	}
	values := make([]*Attribute, len(m.order))
	for i, id := range m.order {
		values[i] = m.byID[id]
	}
	return values
}

// MarshalJSON serializes the map as an ordered array, matching the
// reference AST serialization used by the parser fixtures.
func (m *AttributeMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Values())
}

// Pattern is an ordered sequence of text and placeable elements; the value
// of a Message, Term, Attribute or Variant.
type Pattern struct {
	Base
	Elements []Node `json:"elements"`
}

// Text is a literal text run within a Pattern.
type Text struct {
	Base
	Value string `json:"value"`
}

// Placeable wraps an expression embedded in a Pattern via "{ ... }".
type Placeable struct {
	Base
	Expression Node `json:"expression"`
}

// StringLiteral is the resolved (escapes applied) value of a quoted string.
type StringLiteral struct {
	Base
	Value string `json:"value"`
}

// NumberLiteral preserves its source text verbatim so that trailing
// fractional digits (e.g. "1.0") can be restored when formatting.
type NumberLiteral struct {
	Base
	Value string `json:"value"`
}

// MessageReference is a reference to a message, optionally to one of its
// attributes ("name" or "name.attr").
type MessageReference struct {
	Base
	ID        *Identifier `json:"id"`
	Attribute *Identifier `json:"attribute"`
}

// TermReference is a reference to a term ("-name" or "-name.attr").
// Arguments are parsed for grammar fidelity but are never passed to the
// referenced term during formatting.
type TermReference struct {
	Base
	ID        *Identifier    `json:"id"`
	Attribute *Identifier    `json:"attribute"`
	Arguments *CallArguments `json:"arguments"`
}

// VariableReference is a reference to a runtime argument ("$name").
type VariableReference struct {
	Base
	ID *Identifier `json:"id"`
}

// CallArguments holds the positional and named arguments passed to a term
// reference.
type CallArguments struct {
	Base
	Positional []Node           `json:"positional"`
	Named      []*NamedArgument `json:"named"`
}

// NamedArgument is a "name: literal" pair inside CallArguments.
type NamedArgument struct {
	Base
	Name  *Identifier `json:"name"`
	Value Node        `json:"value"`
}

// SelectExpression chooses among Variants based on the resolved value of
// Selector. Exactly one variant is marked Default.
type SelectExpression struct {
	Base
	Selector Node       `json:"selector"`
	Variants []*Variant `json:"variants"`
}

// Variant is one arm of a SelectExpression: a key (identifier or number
// literal), its pattern, and whether it is the default ("*[key]") arm.
type Variant struct {
	Base
	Key     Node     `json:"key"`
	Value   *Pattern `json:"value"`
	Default bool     `json:"default"`
}

// Junk is verbatim source text that failed to parse as an entry.
type Junk struct {
	Base
	Content     string   `json:"content"`
	Annotations []string `json:"annotations"`
}
