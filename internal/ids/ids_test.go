package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionIdLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := NewSessionId()
		require.Len(t, string(id), sessionIdLength)
		for _, r := range string(id) {
			assert.Contains(t, alphanumeric, string(r))
		}
	}
}

func TestNewSessionIdVaries(t *testing.T) {
	seen := map[SessionId]bool{}
	for i := 0; i < 20; i++ {
		seen[NewSessionId()] = true
	}
	assert.Greater(t, len(seen), 1, "ids should not collide on every draw")
}

func TestNewAuthTokenShapeAndLength(t *testing.T) {
	tok := NewAuthToken()
	require.Len(t, string(tok), 32)
	for _, r := range string(tok) {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'))
	}
}

func TestNewAuthTokenUnique(t *testing.T) {
	a := NewAuthToken()
	b := NewAuthToken()
	assert.NotEqual(t, a, b)
}

func TestOwnerIDIsZero(t *testing.T) {
	assert.Equal(t, UserId(0), OwnerID)
}
