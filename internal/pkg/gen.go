package pkg

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// GenerateGameID - generates a short unique game id.
func GenerateGameID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-game-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
