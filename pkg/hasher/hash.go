package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 digest of s.
func Hash(s string) string {
	return SumBytes([]byte(s))
}

func SumBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// SumJSON hashes the JSON encoding of v. Map keys are encoded sorted,
// so equal values always produce the same digest.
func SumJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode value for hashing: %w", err)
	}
	return SumBytes(b), nil
}
