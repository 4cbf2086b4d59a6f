package fluent

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printers caches a message.Printer per locale; Printers are safe for
// concurrent use and cheap to reuse across FormatPattern calls.
var (
	printersMu sync.Mutex
	printers   = map[language.Tag]*message.Printer{}
)

func printerFor(locale language.Tag) *message.Printer {
	printersMu.Lock()
	defer printersMu.Unlock()
	if printer, ok := printers[locale]; ok {
		return printer
	}
	printer := message.NewPrinter(locale)
	printers[locale] = printer
	return printer
}

// FormatNumber renders value the way it would appear in a NumberLiteral's
// resolved placeable, honoring the locale's grouping and decimal
// separators. minFractionDigits forces that many digits after the decimal
// point, so a source literal like "1.0" keeps its trailing zero instead of
// being indistinguishable from "1"; pass a negative value to derive the
// digit count from value itself (the only option available for a runtime
// variable, which carries no source text). If locale-aware rendering fails
// for any reason, the plain decimal form is used instead and the fallback
// is logged.
func FormatNumber(locale language.Tag, value float64, minFractionDigits int) (result string) {
	decimals := minFractionDigits
	if decimals < 0 {
		decimals = fractionalDigits(value)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("locale", locale.String()).Msg("locale-aware number formatting panicked, falling back")
			result = fmt.Sprintf("%.*f", decimals, value)
		}
	}()

	opts := []number.Option{number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)}
	formatted := printerFor(locale).Sprintf("%v", number.Decimal(value, opts...))
	if formatted == "" {
		log.Warn().Str("locale", locale.String()).Float64("value", value).Msg("locale-aware number formatting returned empty result, falling back")
		return fmt.Sprintf("%.*f", decimals, value)
	}
	return formatted
}

// fractionalDigits returns the number of digits after the decimal point
// needed to round-trip value exactly, without trailing zeros, capped at 6.
func fractionalDigits(value float64) int {
	raw := fmt.Sprintf("%.6f", value)
	raw = strings.TrimRight(raw, "0")
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 {
		return 0
	}
	return len(parts[1])
}

// PluralCategory derives the CLDR plural category of value under locale.
// The fractional digit count is derived from value itself (trailing zeros
// dropped, at most 6 digits), so "1" and "1.0" always resolve to the same
// category, even where a language's plural rules distinguish them.
func PluralCategory(locale language.Tag, value float64) plural.Form {
	decimals := fractionalDigits(value)
	formatted := fmt.Sprintf("%.*f", decimals, value)
	formatted = strings.TrimPrefix(formatted, "-")

	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}

	digits := make([]byte, len(intPart)+len(fracPart))
	for i, digit := range intPart {
		digits[i] = byte(digit - '0')
	}
	for i, digit := range fracPart {
		digits[len(intPart)+i] = byte(digit - '0')
	}

	return plural.Cardinal.MatchDigits(locale, digits, len(intPart), len(fracPart))
}
