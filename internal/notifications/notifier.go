package notifications

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes live-lecture frames into Redis channels so every server
// instance sees them. A nil Redis client turns every method into a no-op,
// which keeps single-instance deployments working without Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishLectureEvent sends a frame to a lecture's replication channel.
func (n *Notifier) PublishLectureEvent(ctx context.Context, lectureID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	channel := fmt.Sprintf("live:lecture:%d", lectureID)
	return n.rdb.Publish(ctx, channel, payload).Err()
}

// StartLectureSubscriber subscribes to pattern `live:lecture:*` and calls
// onMessage for each incoming frame. onMessage receives channel and payload.
func (n *Notifier) StartLectureSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "live:lecture:*")
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
							log.Printf("PANIC in LectureSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// LectureChannel derives the Redis channel name for a lecture's live session.
func LectureChannel(lectureID uint) string {
	return "live:lecture:" + strconv.FormatUint(uint64(lectureID), 10)
}
