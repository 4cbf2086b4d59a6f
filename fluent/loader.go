package fluent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arafato/fluentgo/fluent/parser"
	"github.com/arafato/fluentgo/fluent/parser/ast"
	"github.com/arafato/fluentgo/internal/remotestore"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Loader holds a Bundle per locale and resolves messages and terms across
// a fallback chain of locales, so a translation missing in the requested
// locale falls through to the next one in the chain.
type Loader struct {
	locales []language.Tag
	bundles map[language.Tag]*Bundle
}

// NewLoader creates a Loader with the given fallback chain. The first
// locale is the primary one: it is always tried first by GetMessage,
// GetTerm and FormatMessage.
func NewLoader(primaryLocale language.Tag, fallbackLocales ...language.Tag) *Loader {
	locales := append([]language.Tag{primaryLocale}, fallbackLocales...)
	return &Loader{
		locales: locales,
		bundles: make(map[language.Tag]*Bundle, len(locales)),
	}
}

func (loader *Loader) bundleFor(locale language.Tag) *Bundle {
	bundle, ok := loader.bundles[locale]
	if !ok {
		bundle = NewBundle()
		loader.bundles[locale] = bundle
	}
	return bundle
}

// AddResource parses source as FTL and adds its entries to the Bundle for
// locale, returning the parser's Junk-producing syntax errors. An id already
// present in locale's Bundle is overwritten by the new resource's entry,
// which is what lets a scheduled reload pick up a changed message.
func (loader *Loader) AddResource(locale language.Tag, source string) []*parser.Error {
	resource, parseErrs := parser.ParseResource(source)
	loader.bundleFor(locale).AddResource(resource)
	return parseErrs
}

// AddMessage parses rawPattern as a standalone pattern (not a full "id =
// value" FTL snippet) and registers it under id in locale's Bundle,
// overwriting any existing entry with the same id. This is the programmatic
// construction path: callers that already have FTL source with its own
// "id = " prefix should go through AddResource instead.
func (loader *Loader) AddMessage(locale language.Tag, id, rawPattern string) (*parser.Error, error) {
	identifier := strings.TrimSpace(id)
	if identifier == "" {
		return nil, fmt.Errorf("message id must not be empty")
	}

	pattern, parseErr := parser.ParsePattern(rawPattern)
	if parseErr != nil {
		return parseErr, nil
	}
	if pattern == nil {
		return nil, fmt.Errorf("message '%s' has no pattern", identifier)
	}

	loader.bundleFor(locale).AddResource(&ast.Resource{
		Body: []ast.Node{
			&ast.Message{
				Base:       ast.Base{Type: ast.TypeMessage},
				ID:         &ast.Identifier{Base: ast.Base{Type: ast.TypeIdentifier}, Name: identifier},
				Value:      pattern,
				Attributes: ast.NewAttributeMap(),
			},
		},
	})
	return nil, nil
}

// AddDirectory walks dir recursively, parsing every ".ftl" file it finds
// and adding it to the Bundle named by its immediate parent directory
// (e.g. "locales/en/main.ftl" is added under locale "en"). Files whose
// parent directory does not parse as a valid BCP 47 tag are skipped.
func (loader *Loader) AddDirectory(dir string) error {
	return loader.AddDirectoryFiltered(dir, nil)
}

// AddDirectoryFiltered behaves like AddDirectory but only adds locales for
// which allow returns true, when allow is non-nil.
func (loader *Loader) AddDirectoryFiltered(dir string, allow func(locale language.Tag) bool) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error walking fluent resource directory")
			return nil
		}
		if info.IsDir() || strings.ToLower(filepath.Ext(path)) != ".ftl" {
			return nil
		}

		locale, locErr := language.Parse(filepath.Base(filepath.Dir(path)))
		if locErr != nil {
			log.Warn().Err(locErr).Str("path", path).Msg("skipping fluent resource outside a locale directory")
			return nil
		}
		if allow != nil && !allow(locale) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", path, readErr)
		}

		loader.AddResource(locale, string(content))
		return nil
	})
}

// AddRemoteStore ingests every ".ftl" object in store, one locale at a
// time, mirroring AddDirectory but sourced from an S3-compatible bucket
// instead of the local filesystem.
func (loader *Loader) AddRemoteStore(ctx context.Context, store *remotestore.Store) error {
	locales, err := store.Locales(ctx)
	if err != nil {
		return fmt.Errorf("list remote locales: %w", err)
	}

	for _, localeName := range locales {
		locale, err := language.Parse(localeName)
		if err != nil {
			log.Warn().Err(err).Str("locale", localeName).Msg("skipping remote resource outside a locale directory")
			continue
		}

		keys, err := store.Resources(ctx, localeName)
		if err != nil {
			return fmt.Errorf("list remote resources for %q: %w", localeName, err)
		}

		for _, key := range keys {
			content, err := store.Get(ctx, key)
			if err != nil {
				return fmt.Errorf("fetch remote resource %q: %w", key, err)
			}

			loader.AddResource(locale, content)
		}
	}

	return nil
}

// GetMessage resolves id against the fallback chain, returning the Message
// and the locale its Bundle was registered under.
func (loader *Loader) GetMessage(id string) (*ast.Message, language.Tag, bool) {
	for _, locale := range loader.locales {
		bundle, ok := loader.bundles[locale]
		if !ok {
			continue
		}
		if message, ok := bundle.GetMessage(id); ok {
			return message, locale, true
		}
	}
	return nil, language.Und, false
}

// GetTerm resolves id against the fallback chain the same way GetMessage
// does, but without returning the locale it was found under: a term is
// always evaluated in its enclosing message's resolved locale, never its
// own, so the locale it happened to be registered under is not meaningful
// to a caller.
func (loader *Loader) GetTerm(id string) (*ast.Term, bool) {
	for _, locale := range loader.locales {
		bundle, ok := loader.bundles[locale]
		if !ok {
			continue
		}
		if term, ok := bundle.GetTerm(id); ok {
			return term, true
		}
	}
	return nil, false
}

// FormatMessage resolves and formats the message named by id, looking it
// up across the fallback chain. id may carry an attribute suffix
// ("brand-name.gender"), in which case the attribute's pattern is formatted
// instead of the message's own value. Besides the formatted string, it
// returns the non-fatal errors the resolver encountered while resolving
// individual references, and a fatal error if id could not be found in any
// locale, or names an attribute the message doesn't have.
func (loader *Loader) FormatMessage(id string, variables map[string]interface{}) (string, []error, error) {
	baseID, attrName := splitMessageReference(id)

	message, locale, ok := loader.GetMessage(baseID)
	if !ok {
		return "", nil, fmt.Errorf("message '%s' does not exist in any locale of the fallback chain", baseID)
	}

	pattern := message.Value
	if attrName != "" {
		attribute, ok := message.Attributes.Get(attrName)
		if !ok {
			return "", nil, fmt.Errorf("message '%s' has no attribute '%s'", baseID, attrName)
		}
		pattern = attribute.Value
	}
	if pattern == nil {
		return "", nil, fmt.Errorf("message '%s' has no value", baseID)
	}

	resolved := make(map[string]Value, len(variables))
	for name, value := range variables {
		if v := resolveValue(value); v != nil {
			resolved[strings.TrimSpace(name)] = v
		}
	}

	result, errs := FormatPattern(locale, pattern, resolved, loader.GetMessage, loader.GetTerm)
	return result, errs, nil
}

// splitMessageReference splits an "id" or "id.attribute" reference string,
// mirroring what parse_message_reference does for a bare identifier path.
func splitMessageReference(id string) (base, attribute string) {
	if idx := strings.IndexByte(id, '.'); idx >= 0 {
		return id[:idx], id[idx+1:]
	}
	return id, ""
}
