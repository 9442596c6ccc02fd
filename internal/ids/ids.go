// Package ids defines the three identifier types a session deals in:
// SessionId, UserId and AuthToken. It mints SessionIds and AuthTokens;
// UserIds are assigned by the session itself.
package ids

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

// SessionId is a short opaque string identifying a session. Collision
// resistance is scoped to concurrently live sessions, not eternity.
type SessionId string

// sessionIdLength matches the spec's "4 characters is typical".
const sessionIdLength = 4

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewSessionId draws sessionIdLength characters from a fixed alphabet
// using rejection sampling over crypto/rand, so the distribution stays
// uniform instead of introducing modulo bias.
func NewSessionId() SessionId {
	return SessionId(randomAlphanumeric(sessionIdLength))
}

func randomAlphanumeric(n int) string {
	const maxByte = byte(256 - (256 % len(alphanumeric)))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		for _, b := range buf {
			if b < maxByte {
				out = append(out, alphanumeric[int(b)%len(alphanumeric)])
				if len(out) == n {
					return string(out)
				}
			}
		}
	}

	return string(out)
}

// UserId is a small non-negative integer unique within a session. 0 is
// reserved for the session owner.
type UserId int

// OwnerID is the UserId reserved for the user who created the session.
const OwnerID UserId = 0

// AuthToken is a long opaque credential a client presents to act as a
// given user. A UUIDv4 with its dashes stripped is 32 lowercase hex
// characters, satisfying the spec's "≥32 alphanumeric" requirement.
type AuthToken string

// NewAuthToken mints a fresh, unpredictable AuthToken.
func NewAuthToken() AuthToken {
	raw := uuid.New().String()
	return AuthToken(strings.ReplaceAll(raw, "-", ""))
}
