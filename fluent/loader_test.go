package fluent_test

import (
	"testing"

	"github.com/arafato/fluentgo/fluent"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoaderFormatMessage(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, `greeting = Hello, { $name }!`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("greeting", map[string]interface{}{"name": "World"})
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, "Hello, World!", result)
}

func TestLoaderAddMessageParsesRawPattern(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErr, err := loader.AddMessage(language.English, "greeting", "Hello, { $name }!")
	require.Nil(t, parseErr)
	require.NoError(t, err)

	result, errs, err := loader.FormatMessage("greeting", map[string]interface{}{"name": "World"})
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, "Hello, World!", result)
}

func TestLoaderFloatLiteralPreservesTrailingZero(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, `float-format = { 1.0 }`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("float-format", nil)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, "1.0", result)
}

func TestLoaderFallsBackAcrossLocales(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.MustParse("de"), language.English)
	parseErrs := loader.AddResource(language.English, `only-in-english = fallback text`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("only-in-english", nil)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, "fallback text", result)
}

func TestLoaderMissingMessageIsAFatalError(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	_, _, err := loader.FormatMessage("does-not-exist", nil)
	require.Error(t, err)
}

func TestLoaderSelectExpressionPlural(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, `unread-emails = { $count ->
    [one] You have one unread email.
   *[other] You have { $count } unread emails.
}`)
	require.Empty(t, parseErrs)

	singular, _, err := loader.FormatMessage("unread-emails", map[string]interface{}{"count": 1})
	require.NoError(t, err)
	require.Equal(t, "You have one unread email.", singular)

	plural, _, err := loader.FormatMessage("unread-emails", map[string]interface{}{"count": 3})
	require.NoError(t, err)
	require.Equal(t, "You have 3 unread emails.", plural)
}

func TestLoaderIndentedMultiLinePattern(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, "terms-of-service =\n"+
		"    Welcome.\n"+
		"    Please read these terms carefully\n"+
		"    before using the service.\n")
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("terms-of-service", nil)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, "Welcome.\nPlease read these terms carefully\nbefore using the service.", result)
}

func TestLoaderTermReferenceIgnoresCallArguments(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, `-brand-name = Firefox
about = About { -brand-name(case: "accusative") }`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("about", nil)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, "About Firefox", result)
}

func TestLoaderCrossLocaleAttributeFallback(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.MustParse("de"), language.English)
	parseErrs := loader.AddResource(language.English, `brand-name = Acme
    .formal = Acme Ltd.`)
	require.Empty(t, parseErrs)
	parseErrs = loader.AddResource(language.MustParse("de"), `greeting = Hello, { brand-name.formal }!`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("greeting", nil)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, "Hello, Acme Ltd.!", result)
}

func TestLoaderUnknownMessageReferenceRendersPlaceholder(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, `greeting = Hi, { missing-message }!`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("greeting", nil)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	require.Equal(t, "Hi, unknown message { missing-message }!", result)
}

func TestLoaderUnknownTermReferenceRendersPlaceholder(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, `greeting = Hi, { -missing-term }!`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("greeting", nil)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	require.Equal(t, "Hi, unknown term { missing-term }!", result)
}

func TestLoaderUnknownVariableReportsNonFatalError(t *testing.T) {
	t.Parallel()

	loader := fluent.NewLoader(language.English)
	parseErrs := loader.AddResource(language.English, `missing-var = Hello, { $name }!`)
	require.Empty(t, parseErrs)

	result, errs, err := loader.FormatMessage("missing-var", nil)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	require.Equal(t, "Hello, {$name}!", result)
}
