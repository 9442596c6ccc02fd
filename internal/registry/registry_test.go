package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bughouse/internal/ids"
)

type fakeEndpoint struct {
	closed bool
}

func (f fakeEndpoint) Closed() bool { return f.closed }

func TestSpawnGetRemove(t *testing.T) {
	r := New[fakeEndpoint]()
	id := ids.SessionId("abcd")

	r.Spawn(id, fakeEndpoint{})
	ep, ok := r.Get(id)
	require.True(t, ok)
	assert.False(t, ep.Closed())

	r.Remove(id)
	_, ok = r.Get(id)
	assert.False(t, ok)
}

func TestGetMissUnknownID(t *testing.T) {
	r := New[fakeEndpoint]()
	_, ok := r.Get(ids.SessionId("zzzz"))
	assert.False(t, ok)
}

func TestSweepRemovesClosedEndpoints(t *testing.T) {
	r := New[fakeEndpoint]()
	r.Spawn(ids.SessionId("aaaa"), fakeEndpoint{closed: true})
	r.Spawn(ids.SessionId("bbbb"), fakeEndpoint{closed: false})

	r.Sweep()

	assert.Equal(t, 1, r.Len())
	_, ok := r.Get(ids.SessionId("bbbb"))
	assert.True(t, ok)
}
