package scroll

import (
	"context"
)

// KV is the subset of the key-value store a StorageSlot needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
	CompareAndDelete(ctx context.Context, key, expected string) (bool, error)
}

// StorageSlot keeps the target in the local key-value store.
type StorageSlot struct {
	kv  KV
	key string
}

func NewStorageSlot(kv KV) *StorageSlot {
	return &StorageSlot{kv: kv, key: Key}
}

func (s *StorageSlot) Set(ctx context.Context, t Target) error {
	raw, err := t.encode()
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, raw)
}

func (s *StorageSlot) Peek(ctx context.Context) (Target, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return Target{}, false, err
	}
	t, err := decodeTarget(raw)
	if err != nil {
		return Target{}, false, err
	}
	return t, true, nil
}

func (s *StorageSlot) ConsumeIf(ctx context.Context, bookID string, chapter int) (Target, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
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
	won, err := s.kv.CompareAndDelete(ctx, s.key, raw)
	if err != nil || !won {
		return Target{}, false, err
	}
	return t, true, nil
}

func (s *StorageSlot) Clear(ctx context.Context) error {
	return s.kv.Remove(ctx, s.key)
}
