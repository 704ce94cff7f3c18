package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for a service lookup. The service name keeps
// geocoding and verification results from colliding on the same place name.
func Key(service, name string) string {
	hash := sha256.Sum256([]byte(service + ":" + name))
	return "litmap:v1:" + hex.EncodeToString(hash[:])
}
