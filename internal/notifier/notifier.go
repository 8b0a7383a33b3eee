package notifier

import (
	"context"
	"encoding/json"
	"time"
)

// Change-feed operations, mirroring what the row store would emit.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Well-known topics. Message events go to a per-room topic so clients only
// receive traffic for rooms they watch; contact and direct-message events
// go to a per-user topic.
const (
	TopicRooms = "rooms"
)

func MessageTopic(roomID string) string {
	return "rooms:" + roomID + ":messages"
}

func UserTopic(userID string) string {
	return "users:" + userID + ":events"
}

// Event is one row change pushed to subscribers. Delivery is at-least-once
// and ordered per topic only. RoomID is set for room-scoped events, UserID
// for user-scoped ones.
type Event struct {
	Table  string          `json:"table"`
	Op     string          `json:"op"`
	RoomID string          `json:"room_id,omitempty"`
	UserID string          `json:"user_id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	At     time.Time       `json:"at"`
}

// Notifier publishes row-change events and hands out subscriptions.
// A Subscription must be closed by its consumer to release the underlying
// connection.
type Notifier interface {
	Publish(ctx context.Context, topic string, ev Event) error
	Subscribe(ctx context.Context, patterns ...string) (*Subscription, error)
	Close() error
}
