package fluent

import (
	"github.com/arafato/fluentgo/fluent/parser/ast"
)

// Bundle is the message/term storage for a single locale. It carries no
// locale identity of its own; a Loader associates Bundles with locales and
// is responsible for fallback across them.
type Bundle struct {
	messages map[string]*ast.Message
	terms    map[string]*ast.Term
}

// NewBundle creates a new empty Bundle.
func NewBundle() *Bundle {
	return &Bundle{
		messages: make(map[string]*ast.Message),
		terms:    make(map[string]*ast.Term),
	}
}

// AddResource adds every Message and Term of a parsed Resource to the
// Bundle. If an id was already defined by a previous resource, the new
// entry overwrites it in place: ids are unique per insertion order, and the
// last resource added wins.
func (bundle *Bundle) AddResource(resource *ast.Resource) {
	for _, entry := range resource.Body {
		switch typed := entry.(type) {
		case *ast.Message:
			bundle.messages[typed.ID.Name] = typed
		case *ast.Term:
			bundle.terms[typed.ID.Name] = typed
		}
	}
}

// GetMessage looks up a message by id.
func (bundle *Bundle) GetMessage(id string) (*ast.Message, bool) {
	msg, ok := bundle.messages[id]
	return msg, ok
}

// GetTerm looks up a term by id.
func (bundle *Bundle) GetTerm(id string) (*ast.Term, bool) {
	term, ok := bundle.terms[id]
	return term, ok
}

// HasMessage reports whether a message is present in the Bundle.
func (bundle *Bundle) HasMessage(id string) bool {
	_, ok := bundle.messages[id]
	return ok
}
