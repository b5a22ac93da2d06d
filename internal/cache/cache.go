package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the fetched-page cache
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for a URL. The version segment invalidates
// old entries when the cached payload format changes.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "credlens:v1:" + hex.EncodeToString(hash[:])
}
