package notifier

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

func setupNotifier(t *testing.T) *RedisNotifier {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewRedisNotifier(rdb)
}

func waitForEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()

	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "Events channel closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishSubscribe_RoomsTopic(t *testing.T) {
	n := setupNotifier(t)
	ctx := context.Background()

	sub, err := n.Subscribe(ctx, TopicRooms)
	require.NoError(t, err)
	defer sub.Close()

	sent := Event{
		Table:  "rooms",
		Op:     OpInsert,
		RoomID: "room-1",
		Data:   json.RawMessage(`{"id":"room-1"}`),
		At:     time.Now(),
	}
	require.NoError(t, n.Publish(ctx, TopicRooms, sent))

	got := waitForEvent(t, sub)
	assert.Equal(t, "rooms", got.Table)
	assert.Equal(t, OpInsert, got.Op)
	assert.Equal(t, "room-1", got.RoomID)
	assert.JSONEq(t, `{"id":"room-1"}`, string(got.Data))
}

func TestPublishSubscribe_MessagePattern(t *testing.T) {
	n := setupNotifier(t)
	ctx := context.Background()

	sub, err := n.Subscribe(ctx, "rooms:*:messages")
	require.NoError(t, err)
	defer sub.Close()

	ev := Event{
		Table:  "messages",
		Op:     OpInsert,
		RoomID: "room-7",
		At:     time.Now(),
	}
	require.NoError(t, n.Publish(ctx, MessageTopic("room-7"), ev))

	got := waitForEvent(t, sub)
	assert.Equal(t, "room-7", got.RoomID)
}

func TestSubscribe_PatternIsolation(t *testing.T) {
	n := setupNotifier(t)
	ctx := context.Background()

	sub, err := n.Subscribe(ctx, MessageTopic("room-a"))
	require.NoError(t, err)
	defer sub.Close()

	// An event for a different room must not arrive.
	require.NoError(t, n.Publish(ctx, MessageTopic("room-b"), Event{RoomID: "room-b", At: time.Now()}))
	require.NoError(t, n.Publish(ctx, MessageTopic("room-a"), Event{RoomID: "room-a", At: time.Now()}))

	got := waitForEvent(t, sub)
	assert.Equal(t, "room-a", got.RoomID, "Subscriber should only see its own room")
}

func TestSubscription_CloseDrainsChannel(t *testing.T) {
	n := setupNotifier(t)

	sub, err := n.Subscribe(context.Background(), TopicRooms)
	require.NoError(t, err)

	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "Events channel should close after Close")
	case <-time.After(2 * time.Second):
		t.Fatal("Events channel did not close")
	}
}

func TestMessageTopic(t *testing.T) {
	assert.Equal(t, "rooms:abc:messages", MessageTopic("abc"))
}
