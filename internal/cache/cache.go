// Package cache keeps fetched pages in memory for the duration of a run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched page bodies.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives the cache key of a page URL.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "speechset:page:v1:" + hex.EncodeToString(hash[:])
}
