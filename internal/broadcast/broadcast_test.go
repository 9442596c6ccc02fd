package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWithNoSubscribersIncrementsFailure(t *testing.T) {
	h := NewHub(2)
	h.Send([]byte("a"))
	h.Send([]byte("b"))
	assert.Equal(t, 2, h.FailedBroadcasts())
}

func TestSubscribeReceivesFutureMessages(t *testing.T) {
	h := NewHub(2)
	_, frames := h.Subscribe()

	h.Send([]byte("hello"))
	select {
	case got := <-frames:
		assert.Equal(t, []byte("hello"), got)
	default:
		t.Fatal("expected a buffered frame")
	}
	assert.Zero(t, h.FailedBroadcasts())
}

func TestSendDropsForFullSlowSubscriberWithoutFailing(t *testing.T) {
	h := NewHub(1)
	_, frames := h.Subscribe()

	h.Send([]byte("first"))
	h.Send([]byte("second")) // buffer full, dropped

	assert.Zero(t, h.FailedBroadcasts(), "at least one subscriber exists so this isn't a failure")
	got := <-frames
	assert.Equal(t, []byte("first"), got)
}

func TestAbandonedPastThreshold(t *testing.T) {
	h := NewHub(1)
	for i := 0; i < 5; i++ {
		h.Send([]byte("x"))
	}
	require.Equal(t, 5, h.FailedBroadcasts())
	assert.True(t, h.Abandoned(4))
	assert.False(t, h.Abandoned(5))
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub(1)
	id, frames := h.Subscribe()
	h.Unsubscribe(id)

	_, ok := <-frames
	assert.False(t, ok, "channel should be closed")
	assert.Zero(t, h.SubscriberCount())
}

func TestCloseDropsAllSubscribers(t *testing.T) {
	h := NewHub(1)
	_, a := h.Subscribe()
	_, b := h.Subscribe()
	h.Close()

	_, ok := <-a
	assert.False(t, ok)
	_, ok = <-b
	assert.False(t, ok)
}
