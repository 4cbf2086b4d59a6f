package fluent_test

import (
	"testing"

	"github.com/arafato/fluentgo/fluent"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

func TestFormatNumberDerivesDigitsWhenNegative(t *testing.T) {
	t.Parallel()

	require.Equal(t, "3", fluent.FormatNumber(language.English, 3, -1))
	require.Equal(t, "3.5", fluent.FormatNumber(language.English, 3.5, -1))
}

func TestFormatNumberHonorsExplicitMinFractionDigits(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1.0", fluent.FormatNumber(language.English, 1, 1))
	require.Equal(t, "3.50", fluent.FormatNumber(language.English, 3.5, 2))
}

func TestPluralCategoryEnglish(t *testing.T) {
	t.Parallel()

	require.Equal(t, plural.One, fluent.PluralCategory(language.English, 1))
	require.Equal(t, plural.Other, fluent.PluralCategory(language.English, 2))
}
