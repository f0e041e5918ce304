package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a stage cache key from a prefix and the inputs that
// determine the stage's output. The parts are JSON-encoded and hashed, so
// any option change produces a different key. The full 256-bit digest is
// kept; truncating would invite collisions between similar option sets.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
// Pipeline stages hash their input artifact with it so downstream keys
// change whenever upstream output does.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
