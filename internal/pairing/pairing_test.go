package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bughouse/internal/ids"
)

func TestBuildFourParticipantsYields24Pairings(t *testing.T) {
	participants := []ids.UserId{0, 1, 2, 3}
	pairings := Build(participants)
	assert.Len(t, pairings, 24)
}

func TestBuildEveryPairingIsFourDistinctPlayers(t *testing.T) {
	participants := []ids.UserId{0, 1, 2, 3}
	for _, p := range Build(participants) {
		seen := map[ids.UserId]bool{p.Team1A: true, p.Team1B: true, p.Team2A: true, p.Team2B: true}
		assert.Len(t, seen, 4)
	}
}

func TestBuildFivePlayersCoversMoreSplits(t *testing.T) {
	participants := []ids.UserId{0, 1, 2, 3, 4}
	pairings := Build(participants)
	// C(5,2) * C(3,2) * 4 = 10 * 3 * 4 = 120.
	assert.Len(t, pairings, 120)
}

func TestQueuePopsInOrderThenExhausts(t *testing.T) {
	q := NewQueue([]ids.UserId{0, 1, 2, 3})
	require.Equal(t, 24, q.Len())

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 23, q.Len())
	assert.Equal(t, ids.UserId(0), first.Team1A)

	for q.Len() > 0 {
		_, ok = q.Pop()
		require.True(t, ok)
	}

	_, ok = q.Pop()
	assert.False(t, ok, "exhausted queue reports no more pairings")
}
