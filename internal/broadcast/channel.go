package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend names the primitive a Channel runs on.
type Backend string

const (
	BackendRedis   Backend = "redis"
	BackendStorage Backend = "storage"
	BackendMemory  Backend = "memory"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("broadcast channel closed")

// Channel is a named broadcast bus. Publish never waits for subscribers.
// Unsubscribe functions are idempotent and also run when the subscribe
// context ends.
type Channel interface {
	Publish(ctx context.Context, s Snapshot) error
	Subscribe(ctx context.Context, h Handler) (unsubscribe func(), err error)
	RequestReady(ctx context.Context) error
	Backend() Backend
	Close() error
}

// Options selects and configures the backend.
type Options struct {
	Name         string
	RedisURL     string
	ProbeTimeout time.Duration
	Store        KV
	Logger       *slog.Logger
}

// Open probes for the best available primitive: Redis if RedisURL answers a
// PING within ProbeTimeout, then the shared store, then an in-process hub.
// Falling back is logged, never returned as an error.
func Open(ctx context.Context, opts Options) Channel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Name == "" {
		opts.Name = ChannelName
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 2 * time.Second
	}

	if opts.RedisURL != "" {
		if ch, err := probeRedis(ctx, opts); err == nil {
			logger.Info("sync channel attached", "backend", BackendRedis, "channel", opts.Name)
			return ch
		} else {
			logger.Info("redis unavailable, falling back", "error", err)
		}
	}

	if opts.Store != nil {
		logger.Info("sync channel attached", "backend", BackendStorage, "channel", opts.Name)
		return NewStorage(opts.Store, logger)
	}

	logger.Info("sync channel attached", "backend", BackendMemory, "channel", opts.Name)
	return NewMemory(logger)
}

func probeRedis(ctx context.Context, opts Options) (*Redis, error) {
	redisOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(redisOpts)

	probeCtx, cancel := context.WithTimeout(ctx, opts.ProbeTimeout)
	defer cancel()
	if err := client.Ping(probeCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	r := NewRedis(client, opts.Name, opts.Logger)
	r.ownsClient = true
	return r, nil
}

// onDone runs unsubscribe when ctx ends and makes it idempotent.
func onDone(ctx context.Context, unsubscribe func()) func() {
	stop := context.AfterFunc(ctx, unsubscribe)
	return func() {
		stop()
		unsubscribe()
	}
}
