package download

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the raw entropy per token; hex-encoding doubles the length.
const tokenBytes = 24

// NewToken returns an unguessable download token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
