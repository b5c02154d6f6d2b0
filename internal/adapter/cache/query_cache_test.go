package cache

import (
	"testing"
	"time"

	"docsearch/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestQueryCache_PutGet(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	ranking := domain.Ranking{{Path: "a", Score: 1}}

	c.Put("texture", ranking)

	got, ok := c.Get("texture")
	assert.True(t, ok)
	assert.Equal(t, ranking, got)

	_, ok = c.Get("Texture")
	assert.False(t, ok, "keys are the raw query text")
}

func TestQueryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewQueryCache(2, time.Minute)
	c.Put("a", domain.Ranking{})
	c.Put("b", domain.Ranking{})

	// touch a so that b becomes the oldest
	_, _ = c.Get("a")
	c.Put("c", domain.Ranking{})

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	_, okC := c.Get("c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
	assert.Equal(t, 2, c.Size())
}

func TestQueryCache_Expires(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("q", domain.Ranking{})
	now = now.Add(2 * time.Minute)

	_, ok := c.Get("q")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestQueryCache_Invalidate(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	c.Put("q", domain.Ranking{})

	c.Invalidate()

	_, ok := c.Get("q")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestQueryCache_Defaults(t *testing.T) {
	c := NewQueryCache(0, 0)
	assert.Equal(t, 100, c.maxSize)
	assert.Equal(t, 5*time.Minute, c.ttl)
}
