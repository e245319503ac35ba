package websocket

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLookupUnregister(t *testing.T) {
	hub := NewHub(nil, nil)
	session := uuid.New()
	a := NewClient(newFakeConn(), session, uuid.New(), nil)
	b := NewClient(newFakeConn(), session, uuid.New(), nil)

	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.Count())
	assert.ElementsMatch(t, []*Client{a, b}, hub.Lookup(session))

	hub.Unregister(a)
	hub.Unregister(a)
	assert.Equal(t, 1, hub.Count())
	assert.Equal(t, []*Client{b}, hub.Lookup(session))
	assert.False(t, a.Enqueue([]byte("x")))

	hub.Unregister(b)
	assert.Zero(t, hub.Count())
	assert.Empty(t, hub.Lookup(session))
}

func TestBroadcastSkipsBrokenClients(t *testing.T) {
	hub := NewHub(nil, nil)
	healthy := NewClient(newFakeConn(), uuid.New(), uuid.New(), nil)
	closing := NewClient(newFakeConn(), uuid.New(), uuid.New(), nil)
	full := NewClient(newFakeConn(), uuid.New(), uuid.New(), nil)

	for _, c := range []*Client{healthy, closing, full} {
		hub.Register(c)
	}
	closing.closeSend()
	for i := 0; i < sendBuffer; i++ {
		require.True(t, full.Enqueue([]byte("filler")))
	}

	delivered := hub.Broadcast(AnnouncementMessage("Maintenance at noon"))
	assert.Equal(t, 1, delivered)

	msg := <-healthy.send
	assert.JSONEq(t, `{"type":"announcement","message":"Maintenance at noon"}`, string(msg))
}

func TestHubConcurrentUse(t *testing.T) {
	hub := NewHub(nil, nil)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := NewClient(newFakeConn(), uuid.New(), uuid.New(), nil)
			hub.Register(c)
			hub.Broadcast([]byte(`{"type":"announcement","message":"hi"}`))
			hub.Lookup(c.SessionID)
			hub.Unregister(c)
		}()
	}
	wg.Wait()

	assert.Zero(t, hub.Count())
}

func TestEnqueueAfterCloseIsRejected(t *testing.T) {
	c := NewClient(newFakeConn(), uuid.New(), uuid.New(), nil)
	assert.True(t, c.closeSend())
	assert.False(t, c.closeSend())
	assert.False(t, c.Enqueue([]byte("late")))
}
