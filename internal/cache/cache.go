// Package cache provides in-memory caching for classifier predictions.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a backend name and text unit.
func Key(backend, text string) string {
	hash := sha256.Sum256([]byte(backend + "\x00" + text))
	return "veracity:v1:" + hex.EncodeToString(hash[:])
}
