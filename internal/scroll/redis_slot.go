package scroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisTTL bounds how long an unconsumed target lives in Redis.
const DefaultRedisTTL = 12 * time.Hour

var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSlot keeps the target in Redis so surfaces on other machines can
// consume it.
type RedisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSlot creates a slot stored under prefix + ":" + Key.
func NewRedisSlot(client *redis.Client, prefix string, ttl time.Duration) *RedisSlot {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisSlot{client: client, key: prefix + ":" + Key, ttl: ttl}
}

func (s *RedisSlot) Set(ctx context.Context, t Target) error {
	raw, err := t.encode()
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set scroll target: %w", err)
	}
	return nil
}

func (s *RedisSlot) get(ctx context.Context) (string, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get scroll target: %w", err)
	}
	return raw, true, nil
}

func (s *RedisSlot) Peek(ctx context.Context) (Target, bool, error) {
	raw, ok, err := s.get(ctx)
	if err != nil || !ok {
		return Target{}, false, err
	}
	t, err := decodeTarget(raw)
	if err != nil {
		return Target{}, false, err
	}
	return t, true, nil
}

func (s *RedisSlot) ConsumeIf(ctx context.Context, bookID string, chapter int) (Target, bool, error) {
	raw, ok, err := s.get(ctx)
	if err != nil || !ok {
		return Target{}, false, err
	}
	t, err := decodeTarget(raw)
	if err != nil {
		return Target{}, false, err
	}
	if !t.Matches(bookID, chapter) {
		return Target{}, false, nil
	}
	n, err := compareAndDelete.Run(ctx, s.client, []string{s.key}, raw).Int()
	if err != nil {
		return Target{}, false, fmt.Errorf("consume scroll target: %w", err)
	}
	if n != 1 {
		return Target{}, false, nil
	}
	return t, true, nil
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear scroll target: %w", err)
	}
	return nil
}
