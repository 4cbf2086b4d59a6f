package parser

import (
	"strings"

	"github.com/arafato/fluentgo/fluent/parser/ast"
)

// rawIndent is a parser-internal marker produced while scanning a pattern
// for the blank block/inline runs that separate lines of a multi-line
// text block. It never survives into the final AST.
type rawIndent struct {
	ast.Base
	Value string
}

// normalizePattern implements the pattern normalizer contract: it merges
// adjacent text/indent runs into single Text elements, strips the common
// indentation shared by every non-blank line, and trims leading/trailing
// whitespace from the pattern as a whole. commonIndent is the minimum
// number of leading spaces observed across the pattern's lines, computed
// by the caller while scanning (0 if the pattern has no multi-line text at
// all, in which case no stripping happens).
func normalizePattern(elements []ast.Node, commonIndent int, start, end uint) *ast.Pattern {
	trimmed := make([]ast.Node, 0, len(elements))

	for _, element := range elements {
		if placeable, ok := element.(*ast.Placeable); ok {
			trimmed = append(trimmed, placeable)
			continue
		}

		if indent, ok := element.(*rawIndent); ok && commonIndent > 0 && commonIndent <= len(indent.Value) {
			indent.Value = indent.Value[:len(indent.Value)-commonIndent]
			if len(indent.Value) == 0 {
				continue
			}
		}

		// Merge onto a preceding Text element if possible.
		if len(trimmed) > 0 {
			if text, ok := trimmed[len(trimmed)-1].(*ast.Text); ok {
				var currentValue string
				var endSpan uint
				switch cur := element.(type) {
				case *ast.Text:
					currentValue = cur.Value
					endSpan = cur.Span[1]
				case *rawIndent:
					currentValue = cur.Value
					endSpan = cur.Span[1]
				}
				text.Value += currentValue
				text.Span[1] = endSpan
				continue
			}
		}

		// An indent run that could not be merged (e.g. right after a
		// placeable) becomes its own Text element.
		if in, ok := element.(*rawIndent); ok {
			element = &ast.Text{
				Base:  ast.Base{Type: ast.TypeText, Span: in.Span},
				Value: in.Value,
			}
		}

		trimmed = append(trimmed, element)
	}

	trimLeadingWhitespace(&trimmed)
	trimTrailingWhitespace(&trimmed)

	return &ast.Pattern{
		Base:     ast.Base{Type: ast.TypePattern, Span: [2]uint{start, end}},
		Elements: trimmed,
	}
}

func trimLeadingWhitespace(elements *[]ast.Node) {
	if len(*elements) == 0 {
		return
	}
	text, ok := (*elements)[0].(*ast.Text)
	if !ok {
		return
	}
	text.Value = strings.TrimLeftFunc(text.Value, func(r rune) bool {
		return r == ' ' || r == '\n'
	})
	if text.Value == "" {
		*elements = (*elements)[1:]
	}
}

func trimTrailingWhitespace(elements *[]ast.Node) {
	if len(*elements) == 0 {
		return
	}
	last := len(*elements) - 1
	text, ok := (*elements)[last].(*ast.Text)
	if !ok {
		return
	}
	text.Value = strings.TrimRightFunc(text.Value, func(r rune) bool {
		return r == ' ' || r == '\n'
	})
	if text.Value == "" {
		*elements = (*elements)[:last]
	}
}
