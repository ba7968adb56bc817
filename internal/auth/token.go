package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to a 64-character string.
// At that size a collision or a successful guess is not a practical concern
// for the lifetime of the system.
const tokenBytes = 32

// NewSessionToken generates an opaque bearer token.
//
// WHY NOT A JWT?
// A signed token proves who issued it, but it cannot be revoked — the
// signature stays valid until expiry. Our sessions must die the instant the
// user logs out, so the token is pure random bytes and the sessions table is
// the single source of truth: delete the row and the token is worthless.
//
// crypto/rand reads from the operating system's CSPRNG. math/rand is NOT
// acceptable here — its output is predictable from a small sample.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generating session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
