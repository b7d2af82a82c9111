package reward

import (
	"crypto/rand"
	"encoding/base64"
)

const tokenByteLength = 16

// generateAdToken returns an unguessable, URL-safe token string. 16 bytes of
// crypto/rand entropy make enumeration infeasible.
func generateAdToken() (string, error) {
	b := make([]byte, tokenByteLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
