package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher is the subset of the go-redis client used for forwarding.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisForwarder relays ticket events to a Redis pub/sub channel so other
// services can react to the ticket lifecycle.
type RedisForwarder struct {
	client  Publisher
	channel string
	logger  *zap.Logger
}

// NewRedisForwarder builds a forwarder for channel.
func NewRedisForwarder(client Publisher, channel string, logger *zap.Logger) *RedisForwarder {
	return &RedisForwarder{client: client, channel: channel, logger: logger}
}

// Register subscribes the forwarder to every ticket event.
func (f *RedisForwarder) Register(dispatcher Dispatcher) {
	if f == nil || f.client == nil || dispatcher == nil {
		return
	}
	for _, eventType := range AllEventTypes {
		dispatcher.Subscribe(eventType, f.Forward)
	}
}

// Forward publishes the JSON encoding of event.
func (f *RedisForwarder) Forward(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := f.client.Publish(ctx, f.channel, body).Err(); err != nil {
		f.logger.Warn("forward event to redis failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}
