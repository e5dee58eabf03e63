package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCache(t *testing.T) {
	type result struct{ n int }

	t.Run("get & put", func(t *testing.T) {
		cache := NewParseCache[result]()
		first := &result{1}

		cache.Put("/a.tsx", "a", first)

		cached, ok := cache.Get("/a.tsx", "a")
		assert.True(t, ok)
		assert.Same(t, first, cached)

		_, ok = cache.Get("/a.tsx", "b")
		assert.False(t, ok)

		_, ok = cache.Get("/b.tsx", "a")
		assert.False(t, ok)
	})

	t.Run("a new version of a file replaces the old one", func(t *testing.T) {
		cache := NewParseCache[result]()

		cache.Put("/a.tsx", "a", &result{1})
		cache.Put("/a.tsx", "aa", &result{2})

		assert.Equal(t, 1, cache.Len())
		_, ok := cache.Get("/a.tsx", "a")
		assert.False(t, ok)
	})

	t.Run("keep entries by path", func(t *testing.T) {
		cache := NewParseCache[result]()

		cache.Put("/a.tsx", "a", &result{1})
		cache.Put("/b.tsx", "b", &result{2})
		cache.Put("/c.tsx", "c", nil)

		cache.KeepEntriesByPath("/b.tsx", "/c.tsx")

		assert.Equal(t, 2, cache.Len())
		cached, ok := cache.Get("/c.tsx", "c")
		assert.True(t, ok)
		assert.Nil(t, cached)

		cache.InvalidatePath("/b.tsx")
		assert.Equal(t, 1, cache.Len())

		cache.InvalidateAllEntries()
		assert.Zero(t, cache.Len())
	})
}
