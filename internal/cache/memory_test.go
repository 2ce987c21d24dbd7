package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("https://example.com/documents/a")
	assert.True(t, strings.HasPrefix(a, "speechset:page:v1:"))
	assert.Equal(t, a, CacheKey("https://example.com/documents/a"))
	assert.NotEqual(t, a, CacheKey("https://example.com/documents/b"))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	var _ Cache = c

	_, ok := c.Get("missing")
	assert.False(t, ok)

	assert.NoError(t, c.Set("k", []byte("<html></html>"), 0))
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("<html></html>"), got)
	assert.Equal(t, 1, c.Len())

	assert.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)

	assert.NoError(t, c.Set("a", []byte("1"), time.Minute))
	assert.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	assert.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
