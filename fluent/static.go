package fluent

import (
	"sync"

	"golang.org/x/text/language"
)

var (
	staticOnce   sync.Once
	staticLoader *Loader
	staticMu     sync.RWMutex
)

// InitStatic lazily creates the process-wide Loader with the given
// fallback chain. Only the first call takes effect; later calls are no-ops,
// matching the single, process-lifetime registry an embedder CLI's
// generated init() functions register resources into.
func InitStatic(primaryLocale language.Tag, fallbackLocales ...language.Tag) {
	staticOnce.Do(func() {
		staticMu.Lock()
		defer staticMu.Unlock()
		staticLoader = NewLoader(primaryLocale, fallbackLocales...)
	})
}

func ensureStatic() *Loader {
	staticOnce.Do(func() {
		staticMu.Lock()
		defer staticMu.Unlock()
		staticLoader = NewLoader(language.Und)
	})
	staticMu.RLock()
	defer staticMu.RUnlock()
	return staticLoader
}

// AddStaticResource parses FTL source (typically embedded text) and adds
// its entries to the process-wide registry under locale. Intended to be called from the
// init() function of generated embed packages.
func AddStaticResource(locale language.Tag, source string) []error {
	parseErrs := ensureStatic().AddResource(locale, source)
	errs := make([]error, 0, len(parseErrs))
	for _, e := range parseErrs {
		errs = append(errs, e)
	}
	return errs
}

// FormatStaticMessage formats a message from the process-wide registry.
func FormatStaticMessage(id string, variables map[string]interface{}) (string, []error, error) {
	return ensureStatic().FormatMessage(id, variables)
}

// StaticLoader exposes the process-wide Loader directly, for callers that
// need GetMessage/GetTerm rather than the FormatMessage convenience.
func StaticLoader() *Loader {
	return ensureStatic()
}
