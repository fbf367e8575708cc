package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Redis broadcasts over Redis pub/sub, so views in separate processes or on
// separate hosts stay in step.
type Redis struct {
	client     *redis.Client
	name       string
	logger     *slog.Logger
	ownsClient bool
}

// NewRedis creates a channel named name on client. The caller keeps
// ownership of client.
func NewRedis(client *redis.Client, name string, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	if name == "" {
		name = ChannelName
	}
	return &Redis{client: client, name: name, logger: logger}
}

// Client exposes the connection so other shared state can live beside the
// channel.
func (r *Redis) Client() *redis.Client { return r.client }

// Backend implements Channel.
func (r *Redis) Backend() Backend { return BackendRedis }

// Publish implements Channel.
func (r *Redis) Publish(ctx context.Context, s Snapshot) error {
	return r.publish(ctx, Message{Snapshot: s})
}

// RequestReady implements Channel.
func (r *Redis) RequestReady(ctx context.Context) error {
	return r.publish(ctx, Message{Ready: true})
}

func (r *Redis) publish(ctx context.Context, m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.name, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", r.name, err)
	}
	return nil
}

// Subscribe implements Channel. It returns once Redis has confirmed the
// subscription, so a RequestReady sent afterwards cannot outrun it.
func (r *Redis) Subscribe(ctx context.Context, h Handler) (func(), error) {
	ps := r.client.Subscribe(ctx, r.name)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", r.name, err)
	}

	msgs := ps.Channel()
	go func() {
		for m := range msgs {
			msg, err := Decode([]byte(m.Payload))
			if err != nil {
				r.logger.Warn("dropping malformed message", "channel", r.name, "error", err)
				continue
			}
			h(msg)
		}
	}()

	var once sync.Once
	return onDone(ctx, func() {
		once.Do(func() { _ = ps.Close() })
	}), nil
}

// Close releases the connection if Open created it.
func (r *Redis) Close() error {
	if !r.ownsClient {
		return nil
	}
	return r.client.Close()
}
