package fluent_test

import (
	"testing"

	"github.com/arafato/fluentgo/fluent"
	"github.com/arafato/fluentgo/fluent/parser"
	"github.com/arafato/fluentgo/fluent/parser/ast"
	"github.com/stretchr/testify/require"
)

func TestBundleAddResourceOverwritesDuplicateID(t *testing.T) {
	t.Parallel()

	bundle := fluent.NewBundle()

	resource, parseErrs := parser.ParseResource("greeting = Hi")
	require.Empty(t, parseErrs)
	bundle.AddResource(resource)

	replacement, parseErrs := parser.ParseResource("greeting = Hello again")
	require.Empty(t, parseErrs)
	bundle.AddResource(replacement)

	message, ok := bundle.GetMessage("greeting")
	require.True(t, ok)
	text, ok := message.Value.Elements[0].(*ast.Text)
	require.True(t, ok)
	require.Equal(t, "Hello again", text.Value)
}
