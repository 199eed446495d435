package idgen

import (
	"crypto/rand"
	"fmt"
)

// GenerateSecureID returns a random identifier with the given prefix, e.g.
// user_k2j9x04pbq. Public IDs use it so database row ids never leak into
// URLs or tokens. Only lowercase alphanumerics appear after the prefix.
func GenerateSecureID(prefix string, length int) (string, error) {
	bytes := make([]byte, length*2)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	const charset = "0123456789abcdefghijklmnopqrstuvwxyz"
	encoded := make([]byte, length)
	for i := 0; i < length; i++ {
		encoded[i] = charset[bytes[i]%36]
	}

	return fmt.Sprintf("%s_%s", prefix, string(encoded)), nil
}
