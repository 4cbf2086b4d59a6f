package parser

import (
	"math"
	"strings"
	"unicode"

	"github.com/arafato/fluentgo/fluent/parser/ast"
)

// Parser turns an FTL source string into an AST, recovering from
// malformed entries by capturing them as Junk rather than aborting.
type Parser struct {
	str *stream
}

// New creates a parser over the given FTL source.
func New(source string) *Parser {
	return &Parser{str: newStream(source)}
}

// ParseResource parses source into a Resource in a single call.
func ParseResource(source string) (*ast.Resource, []*Error) {
	return New(source).Parse()
}

// ParsePattern parses a standalone raw pattern, the way a Message's or
// Term's value is parsed once the parser is already positioned past its
// "id =" prefix. Unlike ParseResource, text is not expected to contain an
// identifier or "="; it is just the pattern's own raw text, possibly
// spanning multiple indented lines.
func ParsePattern(text string) (*ast.Pattern, *Error) {
	pattern, err := New(text).parseOptionalPattern()
	if err != nil {
		if pErr, ok := err.(*Error); ok {
			return nil, pErr
		}
		return nil, newError(0, 0, "%s", err.Error())
	}
	return pattern, nil
}

// Parse parses the underlying source into a Resource.
// The returned errors correspond to the Junk entries in the result; a
// non-empty error slice does not mean the whole resource failed to parse.
func (parser *Parser) Parse() (*ast.Resource, []*Error) {
	parser.skipBlankBlock()

	var errors []*Error
	var entries []ast.Node
	var heldComment *ast.Comment

	for parser.str.HasNext() {
		entry, err := parser.parseEntryOrJunk()
		if err != nil {
			if pErr, ok := err.(*Error); ok {
				errors = append(errors, pErr)
			} else {
				errors = append(errors, newError(0, 0, "%s", err.Error()))
			}
		}

		blankBlock := parser.skipBlankBlock()

		if comment, ok := entry.(*ast.Comment); ok && len(blankBlock) == 0 && parser.str.HasNext() {
			heldComment = comment
			continue
		}

		if heldComment != nil {
			switch typed := entry.(type) {
			case *ast.Message:
				typed.Comment = heldComment
				typed.Span[0] = heldComment.Span[0]
			case *ast.Term:
				typed.Comment = heldComment
				typed.Span[0] = heldComment.Span[0]
			default:
				entries = append(entries, heldComment)
			}
			heldComment = nil
		}

		entries = append(entries, entry)
	}

	return &ast.Resource{
		Base: ast.Base{
			Type: ast.TypeResource,
			Span: [2]uint{0, uint(parser.str.SrcLen())},
		},
		Body: entries,
	}, errors
}

// parseEntryOrJunk tries to parse a single entry, turning it into Junk if
// parsing failed, and resynchronizing the stream at the next candidate
// entry start.
func (parser *Parser) parseEntryOrJunk() (ast.Node, error) {
	start := parser.str.CurrentCursorPos()

	entry, err := parser.parseEntry()
	if entry != nil {
		if entryErr := parser.expect(EOL); entryErr == nil {
			return entry, nil
		} else {
			err = entryErr
		}
	}

	errorPos := parser.str.CurrentCursorPos()
	src := string(parser.str.Src())
	lastEOL := strings.LastIndex(src[:errorPos], "\n")
	if start < lastEOL {
		parser.str.SetCursorTo(lastEOL)
	}

	cur := 0
	parser.str.PeekUntil(func(char rune) bool {
		if char != EOL {
			cur++
			return false
		}
		if !isEntryStart(parser.str.PeekNth(cur + 1)) {
			cur++
			return false
		}
		return true
	})
	parser.str.Skip(cur)

	nextEntryStart := parser.str.CurrentCursorPos()
	if nextEntryStart >= parser.str.SrcLen() {
		nextEntryStart = parser.str.SrcLen() - 1
	}
	content := string(parser.str.Src()[start : nextEntryStart+1])

	annotation := ""
	if err != nil {
		annotation = err.Error()
	}
	return &ast.Junk{
		Base: ast.Base{
			Type: ast.TypeJunk,
			Span: [2]uint{uint(start), uint(nextEntryStart)},
		},
		Content:     content,
		Annotations: []string{annotation},
	}, err
}

// parseEntry parses a comment, term, or message.
func (parser *Parser) parseEntry() (ast.Node, error) {
	switch parser.str.Peek() {
	case '#':
		return parser.parseComment()
	case '-':
		return parser.parseTerm()
	default:
		return parser.parseMessage()
	}
}

// parseComment parses a run of same-level '#' lines into a Comment,
// GroupComment, or ResourceComment depending on how many '#' open it.
func (parser *Parser) parseComment() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	level := -1
	content := ""

lines:
	for {
		if level == -1 {
			offset := 0
			for parser.str.PeekNth(offset) == '#' && level < 2 {
				offset++
				level++
			}
		}
		parser.str.Skip(level + 1)

		if peek := parser.str.Peek(); peek != EOL {
			if err := parser.expect(' '); err != nil {
				return nil, err
			}

			line := parser.str.PeekUntil(func(char rune) bool {
				return char == EOL
			})
			parser.str.Skip(len(line))
			content += string(line)
		}

		for i := 0; i <= level; i++ {
			if parser.str.PeekNth(1+i) != '#' {
				break lines
			}
		}

		next := parser.str.PeekNth(level + 2)
		if next != ' ' && next != EOL {
			break
		}

		content += string(EOL)
		parser.str.Skip(1)
	}

	end := uint(parser.str.CurrentCursorPos())

	switch level {
	case 0:
		return &ast.Comment{
			Base:    ast.Base{Type: ast.TypeComment, Span: [2]uint{start, end}},
			Content: content,
		}, nil
	case 1:
		return &ast.GroupComment{
			Base:    ast.Base{Type: ast.TypeGroupComment, Span: [2]uint{start, end}},
			Content: content,
		}, nil
	default:
		return &ast.ResourceComment{
			Base:    ast.Base{Type: ast.TypeResourceComment, Span: [2]uint{start, end}},
			Content: content,
		}, nil
	}
}

// parseTerm parses "-name = pattern attribute*".
func (parser *Parser) parseTerm() (*ast.Term, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('-'); err != nil {
		return nil, err
	}

	id, err := parser.parseIdentifier()
	if err != nil {
		return nil, err
	}

	parser.skipBlankInline()

	if err := parser.expect('='); err != nil {
		return nil, err
	}

	value, err := parser.parseOptionalPattern()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "expected term value")
	}

	attributes, err := parser.parseAttributes()
	if err != nil {
		return nil, err
	}

	return &ast.Term{
		Base:       ast.Base{Type: ast.TypeTerm, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		ID:         id,
		Value:      value,
		Attributes: attributes,
	}, nil
}

// parseMessage parses "name = pattern? attribute*", requiring at least one
// of pattern or attributes to be present.
func (parser *Parser) parseMessage() (*ast.Message, error) {
	start := uint(parser.str.CurrentCursorPos())

	id, err := parser.parseIdentifier()
	if err != nil {
		return nil, err
	}

	parser.skipBlankInline()

	if err := parser.expect('='); err != nil {
		return nil, err
	}

	value, err := parser.parseOptionalPattern()
	if err != nil {
		return nil, err
	}

	attributes, attrErr := parser.parseAttributes()
	if attributes == nil {
		attributes = ast.NewAttributeMap()
	}

	if value == nil && attributes.Len() == 0 {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "expected message value or attributes")
	}

	return &ast.Message{
		Base:       ast.Base{Type: ast.TypeMessage, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		ID:         id,
		Value:      value,
		Attributes: attributes,
	}, attrErr
}

// parseOptionalPattern parses a pattern if one exists on the current line
// or starting at a legally-indented following line, returning nil otherwise.
func (parser *Parser) parseOptionalPattern() (*ast.Pattern, error) {
	blank := parser.peekBlankInline()
	firstChar := parser.str.PeekNth(len(blank))

	if firstChar == EOF {
		return nil, nil
	}

	if firstChar != EOL {
		parser.str.Skip(len(blank))
		return parser.parsePattern(false)
	}

	_, lenBlankBlock := parser.peekBlankBlock()
	blankTargetLine := parser.str.PeekUntilWithOffset(lenBlankBlock, func(char rune) bool {
		return char != ' '
	})
	first := parser.str.PeekNth(lenBlankBlock + len(blankTargetLine))

	if first != '{' && (len(blankTargetLine) == 0 || anyOf(first, '}', '.', '[', '*')) {
		return nil, nil
	}

	parser.str.Skip(lenBlankBlock)
	return parser.parsePattern(true)
}

// parsePattern scans a pattern's raw elements, tracking the common indent
// of its lines, then hands the result to the normalizer.
func (parser *Parser) parsePattern(block bool) (*ast.Pattern, error) {
	start := uint(parser.str.CurrentCursorPos())

	commonIndent := math.MaxInt
	var elements []ast.Node

	if block {
		indentStart := uint(parser.str.CurrentCursorPos())
		blank := parser.peekBlankInline()
		commonIndent = len(blank)
		parser.str.Skip(len(blank))
		elements = append(elements, &rawIndent{
			Base:  ast.Base{Span: [2]uint{indentStart, uint(parser.str.CurrentCursorPos())}},
			Value: string(blank),
		})
	}

loop:
	for parser.str.HasNext() {
		switch peek := parser.str.Peek(); {
		case peek == '{':
			placeable, err := parser.parsePlaceable()
			if err != nil {
				return nil, err
			}
			elements = append(elements, placeable)

		case peek == '}':
			pos := uint(parser.str.CurrentCursorPos())
			return nil, newError(pos, pos, "unexpected '}'")

		case peek == EOL:
			indentStart := uint(parser.str.CurrentCursorPos())
			blankBlock, lenBlankBlock := parser.peekBlankBlock()
			blankInline := parser.str.PeekUntilWithOffset(lenBlankBlock, func(char rune) bool {
				return char != ' '
			})
			first := parser.str.PeekNth(lenBlankBlock + len(blankInline))
			if first != '{' && (len(blankInline) == 0 || anyOf(first, '}', '.', '[', '*')) {
				break loop
			}
			commonIndent = minInt(commonIndent, len(blankInline))
			parser.str.Skip(lenBlankBlock + len(blankInline))
			elements = append(elements, &rawIndent{
				Base:  ast.Base{Span: [2]uint{indentStart, uint(parser.str.CurrentCursorPos())}},
				Value: string(blankBlock) + string(blankInline),
			})

		default:
			text, err := parser.parseText()
			if err != nil {
				return nil, err
			}
			elements = append(elements, text)
		}
	}

	if commonIndent == math.MaxInt {
		commonIndent = 0
	}
	return normalizePattern(elements, commonIndent, start, uint(parser.str.CurrentCursorPos())), nil
}

// parseText scans a run of plain text up to the next '{', '}' or newline.
func (parser *Parser) parseText() (*ast.Text, error) {
	start := uint(parser.str.CurrentCursorPos())

	buffer := ""
	for parser.str.HasNext() {
		peek := parser.str.Peek()
		if peek == '{' || peek == '}' || peek == EOL {
			break
		}
		buffer += string(parser.str.Consume())
	}

	return &ast.Text{
		Base:  ast.Base{Type: ast.TypeText, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Value: buffer,
	}, nil
}

// parsePlaceable parses "{ expression }".
func (parser *Parser) parsePlaceable() (*ast.Placeable, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('{'); err != nil {
		return nil, err
	}

	parser.skipBlank()

	expression, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}

	parser.skipBlank()

	if err := parser.expect('}'); err != nil {
		return nil, err
	}

	return &ast.Placeable{
		Base:       ast.Base{Type: ast.TypePlaceable, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Expression: expression,
	}, nil
}

// parseExpression parses an InlineExpression, promoting it to a
// SelectExpression if followed by "->". Nested placeables, message
// references (with or without an attribute) and term references without an
// attribute are not valid selectors.
func (parser *Parser) parseExpression() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	selector, err := parser.parseInlineExpression()
	if err != nil {
		return nil, err
	}

	blank := parser.peekBlank()
	arrow := parser.str.PeekNth(len(blank)) == '-' && parser.str.PeekNth(len(blank)+1) == '>'

	if !arrow {
		return selector, nil
	}

	switch typed := selector.(type) {
	case *ast.MessageReference:
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "message references cannot be used as selectors")
	case *ast.Placeable:
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "nested placeables cannot be used as selectors")
	case *ast.TermReference:
		if typed.Attribute == nil {
			return nil, newError(start, uint(parser.str.CurrentCursorPos()), "term references cannot be used as selectors; use a term attribute reference instead")
		}
	}

	parser.str.Skip(len(blank) + 2)
	parser.skipBlankInline()

	if err := parser.expect(EOL); err != nil {
		return nil, err
	}

	variants, err := parser.parseVariants()
	if err != nil {
		return nil, err
	}

	return &ast.SelectExpression{
		Base:     ast.Base{Type: ast.TypeSelectExpression, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Selector: selector,
		Variants: variants,
	}, nil
}

// parseInlineExpression parses a literal, variable reference, term
// reference, or message reference. Function calls are not part of this
// grammar: a bare identifier directly followed by '(' is parsed as a
// message reference, and the stray '(' fails the enclosing placeable's
// closing-brace check, turning the whole entry into Junk rather than
// silently accepting a call.
func (parser *Parser) parseInlineExpression() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	peek := parser.str.Peek()

	switch {
	case peek == '{':
		return parser.parsePlaceable()

	case unicode.IsNumber(peek) || (peek == '-' && unicode.IsNumber(parser.str.PeekNth(1))):
		return parser.parseNumber()

	case peek == '"':
		return parser.parseString()

	case peek == '$':
		parser.str.Skip(1)
		identifier, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.VariableReference{
			Base: ast.Base{Type: ast.TypeVariableReference, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
			ID:   identifier,
		}, nil

	case peek == '-':
		parser.str.Skip(1)
		identifier, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}

		var attribute *ast.Identifier
		if parser.str.Peek() == '.' {
			parser.str.Skip(1)
			attribute, err = parser.parseIdentifier()
			if err != nil {
				return nil, err
			}
		}

		var arguments *ast.CallArguments
		callBlank := parser.peekBlank()
		if parser.str.PeekNth(len(callBlank)) == '(' {
			parser.str.Skip(len(callBlank))
			arguments, err = parser.parseCallArguments()
			if err != nil {
				return nil, err
			}
		}

		return &ast.TermReference{
			Base:      ast.Base{Type: ast.TypeTermReference, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
			ID:        identifier,
			Attribute: attribute,
			Arguments: arguments,
		}, nil

	case isIdentifierStart(peek):
		identifier, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}

		var attribute *ast.Identifier
		if parser.str.Peek() == '.' {
			parser.str.Skip(1)
			attribute, err = parser.parseIdentifier()
			if err != nil {
				return nil, err
			}
		}

		return &ast.MessageReference{
			Base:      ast.Base{Type: ast.TypeMessageReference, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
			ID:        identifier,
			Attribute: attribute,
		}, nil

	default:
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "expected an inline expression")
	}
}

// parseCallArguments parses "( arg, arg, name: literal, ... )" for a term
// reference. Named arguments may only follow positional ones, and each
// name may appear at most once. These arguments are kept for grammar
// fidelity but are never consulted when formatting.
func (parser *Parser) parseCallArguments() (*ast.CallArguments, error) {
	start := uint(parser.str.CurrentCursorPos())

	var positional []ast.Node
	var named []*ast.NamedArgument
	seen := make(map[string]bool)

	if err := parser.expect('('); err != nil {
		return nil, err
	}

	parser.skipBlank()

	for parser.str.Peek() != ')' {
		argStart := uint(parser.str.CurrentCursorPos())
		argument, err := parser.parseCallArgument()
		if err != nil {
			return nil, err
		}

		if namedArg, ok := argument.(*ast.NamedArgument); ok {
			if seen[namedArg.Name.Name] {
				return nil, newError(argStart, uint(parser.str.CurrentCursorPos()), "duplicate named argument")
			}
			seen[namedArg.Name.Name] = true
			named = append(named, namedArg)
		} else if len(named) > 0 {
			return nil, newError(argStart, uint(parser.str.CurrentCursorPos()), "positional arguments may not follow named ones")
		} else {
			positional = append(positional, argument)
		}

		parser.skipBlank()

		if parser.str.Peek() != ',' {
			break
		}
		parser.str.Skip(1)
		parser.skipBlank()
	}

	if err := parser.expect(')'); err != nil {
		return nil, err
	}

	return &ast.CallArguments{
		Base:       ast.Base{Type: ast.TypeCallArguments, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Positional: positional,
		Named:      named,
	}, nil
}

// parseCallArgument parses a single positional or named call argument.
func (parser *Parser) parseCallArgument() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	expression, err := parser.parseInlineExpression()
	if err != nil {
		return nil, err
	}

	parser.skipBlank()

	if parser.str.Peek() != ':' {
		return expression, nil
	}

	ref, ok := expression.(*ast.MessageReference)
	if !ok || ref.Attribute != nil {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "named argument key must be a simple identifier")
	}

	parser.str.Skip(1)
	parser.skipBlank()

	value, err := parser.parseLiteral()
	if err != nil {
		return nil, err
	}

	return &ast.NamedArgument{
		Base:  ast.Base{Type: ast.TypeNamedArgument, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Name:  ref.ID,
		Value: value,
	}, nil
}

// parseVariants parses the variant list of a select expression, requiring
// exactly one variant to be marked as the default ("*[key]").
func (parser *Parser) parseVariants() ([]*ast.Variant, error) {
	start := uint(parser.str.CurrentCursorPos())

	var variants []*ast.Variant
	defaultSeen := false

	parser.skipBlank()

	for peek := parser.str.Peek(); peek == '[' || (peek == '*' && parser.str.PeekNth(1) == '['); peek = parser.str.Peek() {
		variantStart := uint(parser.str.CurrentCursorPos())

		isDefault := false
		if peek == '*' {
			if defaultSeen {
				return nil, newError(variantStart, variantStart, "only one default variant is allowed")
			}
			isDefault = true
			defaultSeen = true
			parser.str.Skip(1)
		}

		if err := parser.expect('['); err != nil {
			return nil, err
		}

		parser.skipBlank()

		key, err := parser.parseVariantKey()
		if err != nil {
			return nil, err
		}

		parser.skipBlank()

		if err := parser.expect(']'); err != nil {
			return nil, err
		}

		pattern, err := parser.parseOptionalPattern()
		if err != nil {
			return nil, err
		}
		if pattern == nil {
			return nil, newError(variantStart, uint(parser.str.CurrentCursorPos()), "expected a value for the variant")
		}

		variants = append(variants, &ast.Variant{
			Base:    ast.Base{Type: ast.TypeVariant, Span: [2]uint{variantStart, uint(parser.str.CurrentCursorPos())}},
			Key:     key,
			Value:   pattern,
			Default: isDefault,
		})

		if err := parser.expect(EOL); err != nil {
			return nil, err
		}

		parser.skipBlank()
	}

	if len(variants) == 0 {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "expected at least one variant")
	}
	if !defaultSeen {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "expected exactly one default variant")
	}

	return variants, nil
}

// parseVariantKey parses either a NumberLiteral or an Identifier.
func (parser *Parser) parseVariantKey() (ast.Node, error) {
	peek := parser.str.Peek()

	if peek == EOL {
		pos := uint(parser.str.CurrentCursorPos())
		return nil, newError(pos, pos, "expected a variant key")
	}

	if unicode.IsNumber(peek) || peek == '-' {
		return parser.parseNumber()
	}

	return parser.parseIdentifier()
}

// parseAttributes parses zero or more ".name = pattern" attributes.
func (parser *Parser) parseAttributes() (*ast.AttributeMap, error) {
	attributes := ast.NewAttributeMap()

	for {
		blank := parser.peekBlank()
		if parser.str.PeekNth(len(blank)) != '.' {
			break
		}
		parser.str.Skip(len(blank))

		attribute, err := parser.parseAttribute()
		if err != nil {
			return attributes, err
		}
		attributes.Set(attribute)
	}

	return attributes, nil
}

// parseAttribute parses a single ".name = pattern".
func (parser *Parser) parseAttribute() (*ast.Attribute, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('.'); err != nil {
		return nil, err
	}

	identifier, err := parser.parseIdentifier()
	if err != nil {
		return nil, err
	}

	parser.skipBlankInline()

	if err := parser.expect('='); err != nil {
		return nil, err
	}

	value, err := parser.parseOptionalPattern()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "expected a value for the attribute")
	}

	return &ast.Attribute{
		Base:  ast.Base{Type: ast.TypeAttribute, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		ID:    identifier,
		Value: value,
	}, nil
}

// parseLiteral parses a NumberLiteral or StringLiteral, used only for the
// values of named term-call arguments.
func (parser *Parser) parseLiteral() (ast.Node, error) {
	peek := parser.str.Peek()

	if unicode.IsNumber(peek) || peek == '-' {
		return parser.parseNumber()
	}
	if peek == '"' {
		return parser.parseString()
	}

	pos := uint(parser.str.CurrentCursorPos())
	return nil, newError(pos, pos, "expected a number or string literal")
}

// parseNumber parses an optionally-signed integer or decimal literal,
// preserving its original textual form so trailing fractional digits
// (e.g. "1.0") survive into formatting.
func (parser *Parser) parseNumber() (*ast.NumberLiteral, error) {
	start := uint(parser.str.CurrentCursorPos())

	raw := ""
	if parser.str.Peek() == '-' {
		raw += string(parser.str.Consume())
	}
	for unicode.IsNumber(parser.str.Peek()) {
		raw += string(parser.str.Consume())
	}

	if parser.str.Peek() == '.' {
		raw += string(parser.str.Consume())
		hasFraction := false
		for unicode.IsNumber(parser.str.Peek()) {
			hasFraction = true
			raw += string(parser.str.Consume())
		}
		if !hasFraction {
			pos := uint(parser.str.CurrentCursorPos())
			return nil, newError(pos, pos, "expected digits after the decimal point")
		}
	}

	return &ast.NumberLiteral{
		Base:  ast.Base{Type: ast.TypeNumberLiteral, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Value: raw,
	}, nil
}

// parseString parses a double-quoted string literal, resolving escapes.
func (parser *Parser) parseString() (*ast.StringLiteral, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('"'); err != nil {
		return nil, err
	}

	buffer := ""
	for parser.str.HasNext() && parser.str.Peek() != '"' && parser.str.Peek() != EOL {
		if parser.str.Peek() == '\\' {
			seq, err := parser.parseEscapeSequence()
			if err != nil {
				return nil, err
			}
			buffer += seq
		} else {
			buffer += string(parser.str.Consume())
		}
	}

	if err := parser.expect('"'); err != nil {
		return nil, err
	}

	return &ast.StringLiteral{
		Base:  ast.Base{Type: ast.TypeStringLiteral, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Value: buffer,
	}, nil
}

func (parser *Parser) parseEscapeSequence() (string, error) {
	if err := parser.expect('\\'); err != nil {
		return "", err
	}

	switch parser.str.Peek() {
	case '\\', '"':
		return string(parser.str.Consume()), nil
	case 'u':
		return parser.parseUnicodeEscapeSequence(false)
	case 'U':
		return parser.parseUnicodeEscapeSequence(true)
	default:
		pos := uint(parser.str.CurrentCursorPos())
		return "", newError(pos, pos, "unknown escape sequence")
	}
}

// parseUnicodeEscapeSequence parses \uXXXX or \UXXXXXX and decodes it into
// the literal rune it denotes.
func (parser *Parser) parseUnicodeEscapeSequence(sixDigits bool) (string, error) {
	marker, digits := 'u', 4
	if sixDigits {
		marker, digits = 'U', 6
	}

	if err := parser.expect(marker); err != nil {
		return "", err
	}

	var value rune
	for i := 0; i < digits; i++ {
		peek := parser.str.Peek()
		var digit rune
		switch {
		case peek >= '0' && peek <= '9':
			digit = peek - '0'
		case peek >= 'a' && peek <= 'f':
			digit = peek - 'a' + 10
		case peek >= 'A' && peek <= 'F':
			digit = peek - 'A' + 10
		default:
			pos := uint(parser.str.CurrentCursorPos())
			return "", newError(pos, pos, "expected a hex digit")
		}
		value = value*16 + digit
		parser.str.Consume()
	}

	return string(value), nil
}

// parseIdentifier parses "[A-Za-z_][A-Za-z0-9_-]*".
func (parser *Parser) parseIdentifier() (*ast.Identifier, error) {
	start := uint(parser.str.CurrentCursorPos())

	startChar := parser.str.Peek()
	if !isIdentifierStart(startChar) {
		return nil, newError(start, start, "expected an identifier")
	}

	id := string(startChar)
	parser.str.Skip(1)

	for isIdentifierFollowing(parser.str.Peek()) {
		id += string(parser.str.Peek())
		parser.str.Skip(1)
	}

	return &ast.Identifier{
		Base: ast.Base{Type: ast.TypeIdentifier, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Name: id,
	}, nil
}

func (parser *Parser) peekBlankInline() []rune {
	return parser.str.PeekUntil(func(char rune) bool {
		return char != ' '
	})
}

func (parser *Parser) skipBlankInline() []rune {
	blank := parser.peekBlankInline()
	parser.str.Skip(len(blank))
	return blank
}

// peekBlankBlock peeks zero or more blank lines (inline whitespace followed
// by a newline), returning their combined newlines and total rune offset.
func (parser *Parser) peekBlankBlock() ([]rune, int) {
	var blank []rune
	offset := 0
	for {
		blankInline := parser.str.PeekUntilWithOffset(offset, func(char rune) bool {
			return char != ' '
		})
		if parser.str.PeekNth(offset+len(blankInline)) != EOL {
			break
		}
		blank = append(blank, EOL)
		offset += len(blankInline) + 1
	}
	return blank, offset
}

func (parser *Parser) skipBlankBlock() []rune {
	blank, length := parser.peekBlankBlock()
	parser.str.Skip(length)
	return blank
}

func (parser *Parser) peekBlank() []rune {
	return parser.str.PeekUntil(func(char rune) bool {
		return char != ' ' && char != EOL
	})
}

func (parser *Parser) skipBlank() []rune {
	blank := parser.peekBlank()
	parser.str.Skip(len(blank))
	return blank
}

// expect consumes the given rune sequence or fails without advancing.
// A lone EOL expectation at end of file is treated as satisfied.
func (parser *Parser) expect(runes ...rune) error {
	if len(runes) == 1 && runes[0] == EOL && parser.str.Peek() == EOF {
		return nil
	}
	for i, char := range runes {
		if parser.str.PeekNth(i) != char {
			pos := uint(parser.str.CurrentCursorPos())
			return newError(pos, pos, "expected '%s'", string(char))
		}
	}
	parser.str.Skip(len(runes))
	return nil
}

func anyOf(char rune, candidates ...rune) bool {
	for _, candidate := range candidates {
		if char == candidate {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
