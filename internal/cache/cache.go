// Package cache stores verification results between runs. Solver queries
// are deterministic for a fixed catalog, so a result stays reusable as
// long as its key embeds the catalog fingerprint.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for result caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey generates a cache key from a verification payload and the
// catalog fingerprint it was computed against.
func ResultKey(payload, fingerprint string) string {
	hash := sha256.Sum256([]byte(fingerprint + "\x00" + payload))
	return "clauseguard:v1:" + hex.EncodeToString(hash[:])
}
