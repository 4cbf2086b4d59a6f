package fluent

import (
	"context"

	"github.com/arafato/fluentgo/internal/cache"
	"golang.org/x/text/language"
)

// CachedLoader wraps a Loader with a Redis-backed rendering cache. It is
// useful for high-QPS formatting paths where the same (locale, id,
// variables) triple recurs often across requests.
type CachedLoader struct {
	loader  *Loader
	cache   *cache.FormattedMessages
	locales []string
}

// NewCachedLoader wraps loader with cache. locales is the string form of
// the loader's fallback chain, used for cache-key derivation only.
func NewCachedLoader(loader *Loader, cache *cache.FormattedMessages, locales ...language.Tag) *CachedLoader {
	tags := make([]string, len(locales))
	for i, locale := range locales {
		tags[i] = locale.String()
	}
	return &CachedLoader{loader: loader, cache: cache, locales: tags}
}

// FormatMessage serves from cache when possible, falling back to the
// wrapped Loader and populating the cache on success. Cache errors are
// treated as misses: correctness never depends on Redis being reachable.
func (cached *CachedLoader) FormatMessage(ctx context.Context, id string, variables map[string]interface{}) (string, []error, error) {
	key := cache.Key(cached.locales, id, variables)

	if rendered, err := cached.cache.Get(ctx, key); err == nil {
		return rendered, nil, nil
	}

	rendered, errs, err := cached.loader.FormatMessage(id, variables)
	if err != nil {
		return "", errs, err
	}

	_ = cached.cache.Set(ctx, key, rendered)
	return rendered, errs, nil
}

// Invalidate drops every cached rendering, for use after reloading resources.
func (cached *CachedLoader) Invalidate(ctx context.Context) error {
	return cached.cache.Invalidate(ctx)
}
