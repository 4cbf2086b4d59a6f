package cache_test

import (
	"testing"

	"github.com/arafato/fluentgo/internal/cache"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStableRegardlessOfVariableOrder(t *testing.T) {
	t.Parallel()

	a := cache.Key([]string{"en", "de"}, "greeting", map[string]interface{}{"name": "Ada", "count": 3})
	b := cache.Key([]string{"en", "de"}, "greeting", map[string]interface{}{"count": 3, "name": "Ada"})

	require.Equal(t, a, b)
}

func TestKeyDiffersByLocaleChain(t *testing.T) {
	t.Parallel()

	a := cache.Key([]string{"en"}, "greeting", nil)
	b := cache.Key([]string{"de"}, "greeting", nil)

	require.NotEqual(t, a, b)
}

func TestKeyDiffersByMessageID(t *testing.T) {
	t.Parallel()

	a := cache.Key([]string{"en"}, "greeting", nil)
	b := cache.Key([]string{"en"}, "farewell", nil)

	require.NotEqual(t, a, b)
}
