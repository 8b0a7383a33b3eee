package notifier

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) Publish(ctx context.Context, topic string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, topic, payload).Err()
}

// Subscribe opens a pattern subscription. Events arrive on the returned
// Subscription's channel until Close is called or the connection dies.
func (n *RedisNotifier) Subscribe(ctx context.Context, patterns ...string) (*Subscription, error) {
	ps := n.rdb.PSubscribe(ctx, patterns...)

	// Force the SUBSCRIBE round trip so a bad connection fails here, not
	// silently in the pump goroutine.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &Subscription{
		ps:     ps,
		events: make(chan Event, 64),
	}
	go sub.pump()

	return sub, nil
}

func (n *RedisNotifier) Close() error {
	return nil // the redis client is owned by AppState
}

type Subscription struct {
	ps     *redis.PubSub
	events chan Event
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close tears down the pub/sub connection; the Events channel is closed once
// the pump drains.
func (s *Subscription) Close() error {
	return s.ps.Close()
}

func (s *Subscription) pump() {
	defer close(s.events)
	for msg := range s.ps.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Warn().Err(err).Str("channel", msg.Channel).Msg("notifier: dropping malformed event")
			continue
		}
		select {
		case s.events <- ev:
		default:
			log.Warn().Str("channel", msg.Channel).Msg("notifier: subscriber too slow, dropping event")
		}
	}
}
