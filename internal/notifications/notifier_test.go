package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishFeed_NilRedis(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	err := n.PublishFeed(context.Background(), FeedEvent{Type: EventPostCreated})
	assert.NoError(t, err)
}

func TestNotifier_PublishFeed_RoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 1)
	require.NoError(t, n.StartFeedSubscriber(ctx, func(payload string) {
		payloads <- payload
	}))

	// Give the subscriber a moment to attach before publishing
	time.Sleep(50 * time.Millisecond)

	sent := FeedEvent{
		Type:      EventCommentCreated,
		UserID:    7,
		Actor:     "Jamie Lee",
		PostID:    12,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, n.PublishFeed(ctx, sent))

	select {
	case payload := <-payloads:
		var got FeedEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &got))
		assert.Equal(t, EventCommentCreated, got.Type)
		assert.Equal(t, uint(7), got.UserID)
		assert.Equal(t, "Jamie Lee", got.Actor)
		assert.Equal(t, uint(12), got.PostID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed event")
	}
}

func TestNotifier_StartFeedSubscriber_StopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, n.StartFeedSubscriber(ctx, func(string) {}))
	cancel()

	// After cancel the goroutine closes its subscription; publishing again
	// must not panic or block.
	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, n.PublishFeed(context.Background(), FeedEvent{Type: EventReactionToggle}))
}

func TestNotifier_SubscriberRecoversFromPanic(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 2)
	calls := 0
	require.NoError(t, n.StartFeedSubscriber(ctx, func(payload string) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		payloads <- payload
	}))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, n.PublishFeed(ctx, FeedEvent{Type: EventPostCreated}))
	require.NoError(t, n.PublishFeed(ctx, FeedEvent{Type: EventChallengeDone}))

	select {
	case payload := <-payloads:
		var got FeedEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &got))
		assert.Equal(t, EventChallengeDone, got.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not survive the panic")
	}
}
