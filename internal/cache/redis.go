// Package cache memoizes rendered Fluent messages in Redis, so that a
// fleet of stateless instances doesn't redo locale-aware number
// formatting and select-expression evaluation for hot message ids.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when key has no cached entry.
var ErrNotFound = errors.New("cache: not found")

// FormattedMessages caches the output of Loader.FormatMessage, keyed by
// locale, message id and the variables passed in.
type FormattedMessages struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewFormattedMessages builds a cache over client. ttl of zero uses one
// hour, matching a translation catalog's typical refresh cadence.
func NewFormattedMessages(client redis.UniversalClient, prefix string, ttl time.Duration) *FormattedMessages {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &FormattedMessages{client: client, prefix: prefix, ttl: ttl}
}

// Key derives a stable cache key for a (locale, id, variables) triple.
func Key(localeChain []string, id string, variables map[string]interface{}) string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)

	payload := struct {
		Locales []string      `json:"locales"`
		ID      string        `json:"id"`
		Args    []keyValuePair `json:"args"`
	}{Locales: localeChain, ID: id}

	for _, name := range names {
		payload.Args = append(payload.Args, keyValuePair{Name: name, Value: fmt.Sprintf("%v", variables[name])})
	}

	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type keyValuePair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Get looks up a previously cached rendering.
func (cache *FormattedMessages) Get(ctx context.Context, key string) (string, error) {
	result, err := cache.client.Get(ctx, cache.prefixedKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return result, nil
}

// Set stores a rendering for key, expiring it after the configured TTL.
func (cache *FormattedMessages) Set(ctx context.Context, key, rendered string) error {
	return cache.client.Set(ctx, cache.prefixedKey(key), rendered, cache.ttl).Err()
}

// Invalidate drops every cached rendering, for use after a resource reload.
func (cache *FormattedMessages) Invalidate(ctx context.Context) error {
	pattern := cache.prefixedKey("*")
	var cursor uint64
	for {
		keys, next, err := cache.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := cache.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (cache *FormattedMessages) prefixedKey(key string) string {
	if cache.prefix == "" {
		return key
	}
	return cache.prefix + ":" + key
}
