package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashNamespace returns a filesystem-safe identifier for a storage namespace,
// typically an account ID.
func HashNamespace(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
