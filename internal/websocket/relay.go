package websocket

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/internal/notifier"
)

// Relay bridges the change feed into the hub: room table events fan out to
// the lobby pseudo-room, message events fan out to the room they belong to,
// and contact and direct-message events go straight to the target user.
type Relay struct {
	hub    *Hub
	notify notifier.Notifier
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRelay(hub *Hub, notify notifier.Notifier) *Relay {
	return &Relay{
		hub:    hub,
		notify: notify,
		done:   make(chan struct{}),
	}
}

// Start subscribes to the room and per-room message topics and begins
// forwarding events. It returns once the subscription is established.
func (r *Relay) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	sub, err := r.notify.Subscribe(ctx, notifier.TopicRooms, "rooms:*:messages", "users:*:events")
	if err != nil {
		cancel()
		return err
	}

	go r.run(ctx, sub)
	return nil
}

func (r *Relay) run(ctx context.Context, sub *notifier.Subscription) {
	defer close(r.done)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				log.Warn().Msg("ws relay: change feed closed")
				return
			}
			r.dispatch(ev)
		}
	}
}

func (r *Relay) dispatch(ev notifier.Event) {
	msg := OutgoingMessage{
		Data:      ev.Data,
		Timestamp: ev.At.Unix(),
	}

	switch ev.Table {
	case "rooms":
		switch ev.Op {
		case notifier.OpInsert:
			msg.Type = TypeRoomCreated
		case notifier.OpDelete:
			msg.Type = TypeRoomDeleted
		default:
			msg.Type = TypeRoomUpdated
		}
		// Room lifecycle events go to the lobby and to the room itself, so
		// both listing screens and in-room clients see them.
		r.hub.BroadcastToRoom(LobbyRoom, msg)
		if ev.RoomID != "" {
			r.hub.BroadcastToRoom(ev.RoomID, msg)
		}

	case "messages":
		msg.Type = TypeNewMessage
		r.hub.BroadcastToRoom(ev.RoomID, msg)

	case "direct_messages":
		msg.Type = TypeDirectMessage
		r.hub.BroadcastToUser(ev.UserID, msg)

	case "contacts":
		msg.Type = TypeContactUpdate
		r.hub.BroadcastToUser(ev.UserID, msg)

	default:
		log.Debug().Str("table", ev.Table).Str("op", ev.Op).Msg("ws relay: ignoring event for unknown table")
	}
}

// Stop cancels the subscription and waits for the forwarding loop to exit.
func (r *Relay) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	<-r.done
}
