package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// tokenBytes is the entropy of a session token before encoding.
const tokenBytes = 32

// Session represents an authenticated user session. A user holds at most
// one active session at a time; the token is the proof of ownership.
type Session struct {
	Username   string
	Token      string
	Role       string
	LastActive time.Time
}

// generateToken returns a URL-safe random token with 256 bits of entropy.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
