package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(10, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ConnectionCount())

	hub.UnregisterClient(clientA)
	assert.Equal(t, 1, hub.ConnectionCount())

	// Unregistering twice must not double-decrement
	hub.UnregisterClient(clientA)
	assert.Equal(t, 1, hub.ConnectionCount())

	hub.UnregisterClient(clientB)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(10, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(10, nil)
	assert.Error(t, err)

	// Other users are unaffected
	_, err = hub.Register(11, nil)
	assert.NoError(t, err)
}

func TestHub_BroadcastAllReachesEveryClient(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(20, nil)
	require.NoError(t, err)

	hub.BroadcastAll(`{"type":"post_created"}`)

	for _, c := range []*Client{clientA, clientB} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, `{"type":"post_created"}`, string(msg))
		default:
			t.Fatalf("client for user %d received nothing", c.UserID)
		}
	}
}

func TestHub_BroadcastDropsMessagesForSlowClient(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(10, nil)
	require.NoError(t, err)

	// Fill the send buffer; further broadcasts must not block
	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("filler"))
	}

	done := make(chan struct{})
	go func() {
		hub.BroadcastAll("overflow")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}

func TestHub_StartWiringDeliversPublishedEvents(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	client, err := hub.Register(10, nil)
	require.NoError(t, err)

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, n))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, n.PublishFeed(ctx, FeedEvent{Type: EventPostCreated, UserID: 3}))

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), EventPostCreated)
	case <-time.After(2 * time.Second):
		t.Fatal("published event never reached the hub client")
	}
}

func TestHub_ShutdownClearsConnections(t *testing.T) {
	hub := NewHub()

	_, err := hub.Register(10, nil)
	require.NoError(t, err)
	_, err = hub.Register(20, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.Equal(t, 0, hub.ConnectionCount())
}
