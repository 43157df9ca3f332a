// Package notifications provides real-time feed event delivery over Redis
// pub/sub and WebSocket connections.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"
	"time"

	"buddyboost/internal/observability"

	"github.com/redis/go-redis/v9"
)

// FeedChannel is the Redis channel carrying feed events.
const FeedChannel = "feed:events"

// Feed event types.
const (
	EventPostCreated    = "post_created"
	EventCommentCreated = "comment_created"
	EventReactionToggle = "reaction_toggled"
	EventChallengeDone  = "challenge_completed"
)

// FeedEvent is one activity item pushed to connected feed clients.
type FeedEvent struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"user_id"`
	Actor     string    `json:"actor"`
	PostID    uint      `json:"post_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier publishes feed events into the Redis feed channel.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishFeed sends a feed event to every subscribed server instance.
// Best-effort: without Redis the event is counted and dropped.
func (n *Notifier) PublishFeed(ctx context.Context, event FeedEvent) error {
	observability.FeedEventsTotal.WithLabelValues(event.Type).Inc()
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, FeedChannel, payload).Err()
}

// StartFeedSubscriber subscribes to the feed channel and calls onMessage for
// each incoming payload until ctx is cancelled.
func (n *Notifier) StartFeedSubscriber(
	ctx context.Context, onMessage func(payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, FeedChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in FeedSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
