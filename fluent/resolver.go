package fluent

import (
	"fmt"

	"github.com/arafato/fluentgo/fluent/parser/ast"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

var pluralStrings = map[plural.Form]string{
	plural.Other: "other",
	plural.Zero:  "zero",
	plural.One:   "one",
	plural.Two:   "two",
	plural.Few:   "few",
	plural.Many:  "many",
}

// MessageLookup resolves a message id against a fallback chain, returning
// the Message along with the locale its Bundle was registered under.
type MessageLookup func(id string) (message *ast.Message, locale language.Tag, ok bool)

// TermLookup resolves a term id against the fallback chain. Unlike
// MessageLookup, it does not surface a locale: a term is always evaluated in
// its enclosing message's resolved locale, never its own (distilled spec
// §4.4), so there is no locale for the resolver to fork into.
type TermLookup func(id string) (term *ast.Term, ok bool)

// resolver walks a Pattern's AST, substituting references for their
// resolved values. It is created fresh for each FormatPattern call but
// forks a shallow copy (carrying a new locale) whenever resolution crosses
// into a message that was found in a fallback locale, so plural category
// matching and number formatting downstream of that reference use the
// locale it actually came from. Term references do not fork.
type resolver struct {
	locale        language.Tag
	lookupMessage MessageLookup
	lookupTerm    TermLookup
	variables     map[string]Value
	errors        *[]error
}

func (r *resolver) withLocale(locale language.Tag) *resolver {
	forked := *r
	forked.locale = locale
	return &forked
}

func (r *resolver) fail(err error) {
	*r.errors = append(*r.errors, err)
}

// FormatPattern resolves a Pattern into its final string, using variables
// for $-references and lookupMessage/lookupTerm to resolve cross-references
// to other entries (possibly in a fallback locale). The returned errors are
// non-fatal: a pattern with unresolved references still produces a string,
// with the broken parts rendered as placeholders (e.g. "unknown message { id }").
func FormatPattern(locale language.Tag, pattern *ast.Pattern, variables map[string]Value, lookupMessage MessageLookup, lookupTerm TermLookup) (string, []error) {
	var errs []error
	r := &resolver{
		locale:        locale,
		lookupMessage: lookupMessage,
		lookupTerm:    lookupTerm,
		variables:     variables,
		errors:        &errs,
	}
	return r.resolvePattern(pattern).String(), errs
}

func (r *resolver) resolvePattern(pattern *ast.Pattern) Value {
	result := ""
	for _, element := range pattern.Elements {
		if text, ok := element.(*ast.Text); ok {
			result += text.Value
			continue
		}
		placeable := element.(*ast.Placeable)
		value := r.resolveExpression(placeable.Expression)
		if num, ok := value.(*NumberValue); ok {
			result += FormatNumber(r.locale, num.Value, num.FractionDigits)
			continue
		}
		result += value.String()
	}
	return &StringValue{Value: result}
}

func (r *resolver) resolveExpression(expression ast.Node) Value {
	switch e := expression.(type) {
	case *ast.Placeable:
		return r.resolveExpression(e.Expression)

	case *ast.StringLiteral:
		return String(e.Value)

	case *ast.NumberLiteral:
		value, err := NumberFromLiteral(e.Value)
		if err != nil {
			r.fail(err)
			return &NoValue{value: "{[" + e.Value + "]}"}
		}
		return value

	case *ast.MessageReference:
		return r.resolveMessageReference(e)

	case *ast.TermReference:
		return r.resolveTermReference(e)

	case *ast.VariableReference:
		return r.resolveVariableReference(e)

	case *ast.SelectExpression:
		return r.resolveSelectExpression(e)

	case *ast.Identifier:
		// Only reachable as a Variant key ("[one]", "*[other]"); its name is
		// matched directly against plural categories and string selectors.
		return String(e.Name)

	default:
		return &NoValue{value: "{???}"}
	}
}

// unknownMessage renders the literal placeholder a caller sees when a
// MessageReference (or one of its attributes) could not be resolved.
func unknownMessage(ref string) *NoValue {
	return &NoValue{value: "unknown message { " + ref + " }"}
}

// unknownTerm is unknownMessage's TermReference counterpart.
func unknownTerm(ref string) *NoValue {
	return &NoValue{value: "unknown term { " + ref + " }"}
}

func (r *resolver) resolveMessageReference(ref *ast.MessageReference) Value {
	message, locale, ok := r.lookupMessage(ref.ID.Name)
	if !ok {
		r.fail(fmt.Errorf("unknown message '%s'", ref.ID.Name))
		return unknownMessage(ref.ID.Name)
	}

	nested := r.withLocale(locale)

	if ref.Attribute != nil {
		attribute, ok := message.Attributes.Get(ref.Attribute.Name)
		if !ok {
			r.fail(fmt.Errorf("unknown message attribute '%s.%s'", ref.ID.Name, ref.Attribute.Name))
			return unknownMessage(ref.ID.Name + "." + ref.Attribute.Name)
		}
		return nested.resolvePattern(attribute.Value)
	}

	if message.Value == nil {
		r.fail(fmt.Errorf("message '%s' has no value", ref.ID.Name))
		return unknownMessage(ref.ID.Name)
	}

	return nested.resolvePattern(message.Value)
}

// resolveTermReference resolves a term or term-attribute reference. Call
// arguments are deliberately never consulted: they are parsed for grammar
// fidelity but this implementation treats terms as always evaluated with
// only the outer message's variables in scope. Unlike a message reference, a
// term reference never forks the resolver's locale: a term is always
// evaluated in its enclosing message's resolved locale, so its own pattern
// is resolved with r directly.
func (r *resolver) resolveTermReference(ref *ast.TermReference) Value {
	term, ok := r.lookupTerm(ref.ID.Name)
	if !ok {
		r.fail(fmt.Errorf("unknown term '%s'", ref.ID.Name))
		return unknownTerm(ref.ID.Name)
	}

	if ref.Attribute != nil {
		attribute, ok := term.Attributes.Get(ref.Attribute.Name)
		if !ok {
			r.fail(fmt.Errorf("unknown term attribute '%s.%s'", ref.ID.Name, ref.Attribute.Name))
			return unknownTerm(ref.ID.Name + "." + ref.Attribute.Name)
		}
		return r.resolvePattern(attribute.Value)
	}

	if term.Value == nil {
		r.fail(fmt.Errorf("term '%s' has no value", ref.ID.Name))
		return unknownTerm(ref.ID.Name)
	}

	return r.resolvePattern(term.Value)
}

func (r *resolver) resolveVariableReference(ref *ast.VariableReference) Value {
	if val, set := r.variables[ref.ID.Name]; set {
		return val
	}
	r.fail(fmt.Errorf("unknown variable '$%s'", ref.ID.Name))
	return &NoValue{value: "{$" + ref.ID.Name + "}"}
}

func (r *resolver) resolveSelectExpression(ref *ast.SelectExpression) Value {
	selector := r.resolveExpression(ref.Selector)
	if _, ok := selector.(*NoValue); ok {
		return r.resolveDefaultVariant(ref.Variants)
	}

	for _, variant := range ref.Variants {
		if r.matchesVariant(selector, r.resolveExpression(variant.Key)) {
			return r.resolvePattern(variant.Value)
		}
	}

	return r.resolveDefaultVariant(ref.Variants)
}

func (r *resolver) resolveDefaultVariant(variants []*ast.Variant) Value {
	for _, variant := range variants {
		if variant.Default {
			return r.resolvePattern(variant.Value)
		}
	}
	r.fail(fmt.Errorf("no default variant specified"))
	return &NoValue{value: "{???}"}
}

func (r *resolver) matchesVariant(selector, variant Value) bool {
	if selStr, ok := selector.(*StringValue); ok {
		if varStr, ok := variant.(*StringValue); ok {
			return selStr.Value == varStr.Value
		}
		return false
	}

	if selNum, ok := selector.(*NumberValue); ok {
		if varNum, ok := variant.(*NumberValue); ok {
			return selNum.Value == varNum.Value
		}
		if varStr, ok := variant.(*StringValue); ok {
			category := pluralStrings[r.pluralCategory(selNum.Value)]
			return varStr.Value == category
		}
	}

	return false
}

// pluralCategory derives the CLDR plural category of value under the
// resolver's current locale. Only the numeric value is passed on; the
// fractional digit count of a literal's source text is not used.
func (r *resolver) pluralCategory(value float64) plural.Form {
	return PluralCategory(r.locale, value)
}
