package auth

import (
	"encoding/hex"
	"testing"
)

func TestNewSessionToken_Length(t *testing.T) {
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken() error = %v", err)
	}

	// 32 random bytes hex-encoded → 64 characters
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}
}

func TestNewSessionToken_IsHex(t *testing.T) {
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken() error = %v", err)
	}

	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token is not valid hex: %q", token)
	}
}

func TestNewSessionToken_Unique(t *testing.T) {
	// Tokens are 256-bit random values — any repeat in a small sample means
	// the generator is broken, not unlucky.
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := NewSessionToken()
		if err != nil {
			t.Fatalf("NewSessionToken() error = %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
