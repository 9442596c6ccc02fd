package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bughouse/internal/ids"
)

func TestFrameProducesSSEDataLine(t *testing.T) {
	e := Event{
		CausedBy: 0,
		Type:     Joined,
		Payload:  JoinedPayload{UserId: 1, Name: "Ada"},
	}

	frame, err := Frame(e)
	require.NoError(t, err)

	s := string(frame)
	assert.True(t, len(s) > len("data: \n\n"))
	assert.Equal(t, "data: ", s[:6])
	assert.Equal(t, "\n\n", s[len(s)-2:])
}

func TestFramePayloadRoundTrips(t *testing.T) {
	e := Event{
		CausedBy: 0,
		Type:     GameEnded,
		Payload:  GameEndedPayload{GameId: 1, WinnerA: nil, WinnerB: nil},
	}

	frame, err := Frame(e)
	require.NoError(t, err)

	s := string(frame)
	jsonPart := s[len("data: ") : len(s)-2]

	var decoded struct {
		CausedBy ids.UserId      `json:"causedBy"`
		Type     Type            `json:"type"`
		Payload  GameEndedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(jsonPart), &decoded))
	assert.Equal(t, GameEnded, decoded.Type)
	assert.Nil(t, decoded.Payload.WinnerA)
}
