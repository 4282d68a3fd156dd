package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// Comments get a true push-based stream, unlike the polled feeds: a new
// comment is published to Redis and fanned out to every open websocket
// watching that target. The two delivery models stay separate on purpose;
// a poller is not a subscription and this is not a poller.

// CommentEvent is the payload broadcast over Redis and the websocket.
type CommentEvent struct {
	Type       string            `json:"type"` // currently always "comment"
	TargetType models.TargetType `json:"target_type"`
	TargetID   string            `json:"target_id"`
	Comment    *models.Comment   `json:"comment"`
}

const commentChannelPrefix = "comments:"

func commentChannel(targetType models.TargetType, targetID string) string {
	return commentChannelPrefix + string(targetType) + ":" + targetID
}

// commentHub fans events out to local stream subscribers, keyed by the
// Redis channel name.
type commentHub struct {
	mu   sync.Mutex
	subs map[string]map[chan CommentEvent]struct{}
}

var (
	liveComments    = &commentHub{subs: make(map[string]map[chan CommentEvent]struct{})}
	subscriberStart sync.Once
)

// SubscribeComments registers a local stream for one target. The returned
// cancel closes the channel and drops the registration; after cancel no
// further events arrive on it.
func SubscribeComments(targetType models.TargetType, targetID string) (<-chan CommentEvent, func()) {
	startCommentSubscriber()

	key := commentChannel(targetType, targetID)
	ch := make(chan CommentEvent, 16)

	liveComments.mu.Lock()
	if liveComments.subs[key] == nil {
		liveComments.subs[key] = make(map[chan CommentEvent]struct{})
	}
	liveComments.subs[key][ch] = struct{}{}
	liveComments.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			liveComments.mu.Lock()
			delete(liveComments.subs[key], ch)
			if len(liveComments.subs[key]) == 0 {
				delete(liveComments.subs, key)
			}
			liveComments.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// PublishComment broadcasts a stored comment. Delivery is best-effort;
// a reader that misses the event still sees the comment on its next
// thread fetch.
func PublishComment(ctx context.Context, c models.Comment) {
	if database.RedisClient == nil {
		return
	}
	event := CommentEvent{
		Type:       "comment",
		TargetType: c.TargetType,
		TargetID:   c.TargetID,
		Comment:    &c,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := database.RedisClient.Publish(ctx, commentChannel(c.TargetType, c.TargetID), payload).Err(); err != nil {
		log.Printf("failed to publish comment event: %v", err)
	}
}

// startCommentSubscriber runs one Redis pattern subscription per process
// and dispatches incoming events to local hub channels.
func startCommentSubscriber() {
	subscriberStart.Do(func() {
		if database.RedisClient == nil {
			return
		}
		pubsub := database.RedisClient.PSubscribe(context.Background(), commentChannelPrefix+"*")

		go func() {
			for msg := range pubsub.Channel() {
				var event CommentEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}

				liveComments.mu.Lock()
				for ch := range liveComments.subs[msg.Channel] {
					// Non-blocking: a slow websocket drops events rather
					// than stalling every other subscriber.
					select {
					case ch <- event:
					default:
					}
				}
				liveComments.mu.Unlock()
			}
		}()
	})
}
