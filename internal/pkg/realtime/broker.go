package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Broker routes a payload to the hub that holds the user's connections
type Broker interface {
	Publish(ctx context.Context, userID int64, payload []byte) error
	Close() error
}

// LocalBroker delivers straight to the in-process hub. Used for single-instance deployments.
type LocalBroker struct {
	hub *Hub
}

// NewLocalBroker creates a broker over hub
func NewLocalBroker(hub *Hub) *LocalBroker {
	return &LocalBroker{hub: hub}
}

// Publish hands payload to the hub
func (b *LocalBroker) Publish(_ context.Context, userID int64, payload []byte) error {
	b.hub.SendToUser(userID, payload)
	return nil
}

// Close is a no-op; the hub is closed by its owner
func (b *LocalBroker) Close() error { return nil }

// redisEnvelope is the pub/sub wire form
type redisEnvelope struct {
	UserID  int64           `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

// RedisBroker fans deliveries out over a Redis pub/sub channel so that every
// instance forwards them to its own connections
type RedisBroker struct {
	client  *redis.Client
	channel string
	hub     *Hub
	sub     *redis.PubSub
	logger  zerolog.Logger
}

// NewRedisBroker subscribes to channel and starts forwarding into hub
func NewRedisBroker(ctx context.Context, client *redis.Client, channel string, hub *Hub, logger zerolog.Logger) (*RedisBroker, error) {
	sub := client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	b := &RedisBroker{
		client:  client,
		channel: channel,
		hub:     hub,
		sub:     sub,
		logger:  logger.With().Str("component", "redis_broker").Logger(),
	}
	go b.forward()
	return b, nil
}

func (b *RedisBroker) forward() {
	for msg := range b.sub.Channel() {
		var env redisEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			b.logger.Warn().Err(err).Msg("Dropping malformed pub/sub payload")
			continue
		}
		b.hub.SendToUser(env.UserID, env.Payload)
	}
}

// Publish sends payload to every subscribed instance
func (b *RedisBroker) Publish(ctx context.Context, userID int64, payload []byte) error {
	raw, err := json.Marshal(redisEnvelope{UserID: userID, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode delivery: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("failed to publish delivery: %w", err)
	}
	return nil
}

// Close ends the subscription. The Redis client is closed by its owner.
func (b *RedisBroker) Close() error {
	return b.sub.Close()
}

// Notifier serializes realtime events and routes them through a Broker
type Notifier struct {
	broker Broker
	logger zerolog.Logger
}

// NewNotifier creates a Notifier
func NewNotifier(broker Broker, logger zerolog.Logger) *Notifier {
	return &Notifier{broker: broker, logger: logger}
}

// NotifyUser pushes v as JSON to every connection of userID
func (n *Notifier) NotifyUser(ctx context.Context, userID int64, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode realtime event: %w", err)
	}
	return n.broker.Publish(ctx, userID, payload)
}
