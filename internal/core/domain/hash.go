package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the lowercase hex SHA-256 digest of text.
// Identical text always yields the same digest. Duplicate detection is
// exact-match only: near-identical documents hash differently.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
