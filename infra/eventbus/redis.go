package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/amirasaad/backoffice/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RedisEventBus publishes each event type on its own Redis stream and
// consumes it through a consumer group.
type RedisEventBus struct {
	client        *redis.Client
	prefix        string
	group         string
	typeFactories map[string]func() events.Event
	logger        *slog.Logger
	block         time.Duration
}

// NewWithRedis creates a Redis Streams backed bus and verifies the connection.
func NewWithRedis(url, prefix string, logger *slog.Logger) (*RedisEventBus, error) {
	if url == "" {
		return nil, errors.New("redis event bus: url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}
	return NewWithRedisClient(client, prefix, logger), nil
}

// NewWithRedisClient wraps an existing client.
func NewWithRedisClient(client *redis.Client, prefix string, logger *slog.Logger) *RedisEventBus {
	if prefix == "" {
		prefix = "backoffice"
	}
	return &RedisEventBus{
		client:        client,
		prefix:        prefix,
		group:         prefix + ":handlers",
		typeFactories: events.Factories(),
		logger:        logger.With("bus", "redis"),
		block:         5 * time.Second,
	}
}

func (b *RedisEventBus) streamName(eventType string) string {
	return b.prefix + ":events:" + strings.ToLower(eventType)
}

func (b *RedisEventBus) dlqName(eventType string) string {
	return b.prefix + ":dlq:" + strings.ToLower(eventType)
}

// Emit appends the event to the stream for its type.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis event bus: marshal failed: %w", err)
	}
	env, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return fmt.Errorf("redis event bus: envelope marshal failed: %w", err)
	}
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.streamName(event.Type()),
		Values: map[string]any{"event": string(env)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Register starts a consumer goroutine for eventType. It runs until the
// client is closed.
func (b *RedisEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	ctx := context.Background()
	stream := b.streamName(eventType)
	if err := b.client.XGroupCreateMkStream(ctx, stream, b.group, "0").Err(); err != nil &&
		!strings.Contains(err.Error(), "BUSYGROUP") {
		b.logger.Error("failed to create consumer group", "error", err, "stream", stream)
	}
	consumer := fmt.Sprintf("consumer-%d", time.Now().UnixNano())
	b.logger.Info("registering handler", "event_type", eventType, "consumer", consumer)

	go func() {
		for {
			res, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    b.group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    10,
				Block:    b.block,
			}).Result()
			if err != nil {
				if errors.Is(err, redis.ErrClosed) {
					return
				}
				if !errors.Is(err, redis.Nil) {
					b.logger.Error("error reading from stream", "error", err, "stream", stream)
					time.Sleep(time.Second)
				}
				continue
			}
			for _, s := range res {
				for _, msg := range s.Messages {
					b.dispatch(ctx, eventType, msg, handler)
					if err := b.client.XAck(ctx, stream, b.group, msg.ID).Err(); err != nil {
						b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
					}
				}
			}
		}
	}()
}

func (b *RedisEventBus) dispatch(ctx context.Context, eventType string, msg redis.XMessage, handler eventbus.HandlerFunc) {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Error("failed to unmarshal envelope", "error", err)
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}
	ctor, ok := b.typeFactories[env.Type]
	if !ok {
		b.logger.Error("unknown event type", "event_type", env.Type)
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}
	evt := ctor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		b.logger.Error("failed to unmarshal payload", "error", err, "event_type", env.Type)
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "panic", r, "event_type", env.Type)
			b.pushToDLQ(ctx, eventType, msg.Values)
		}
	}()
	if err := handler(ctx, evt); err != nil {
		b.logger.Error("handler error", "error", err, "event_type", env.Type)
		b.pushToDLQ(ctx, eventType, msg.Values)
	}
}

func (b *RedisEventBus) pushToDLQ(ctx context.Context, eventType string, values map[string]any) {
	dlq := b.dlqName(eventType)
	if err := b.client.XAdd(ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

// Close closes the underlying client and stops consumers.
func (b *RedisEventBus) Close() error {
	return b.client.Close()
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
