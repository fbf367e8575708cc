package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"bible-tui/internal/id"
)

const subscriberBuffer = 256

// Memory is an in-process hub. It serves views living in one process, such
// as the controller and its inline display pane.
type Memory struct {
	logger *slog.Logger

	mu     sync.RWMutex
	subs   map[string]*subscriber
	closed bool
}

type subscriber struct {
	id string
	ch chan []byte
}

// NewMemory creates an empty hub.
func NewMemory(logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		logger: logger,
		subs:   make(map[string]*subscriber),
	}
}

// Backend implements Channel.
func (m *Memory) Backend() Backend { return BackendMemory }

// Publish implements Channel.
func (m *Memory) Publish(_ context.Context, s Snapshot) error {
	data, err := Encode(Message{Snapshot: s})
	if err != nil {
		return err
	}
	return m.broadcast(data)
}

// RequestReady implements Channel.
func (m *Memory) RequestReady(_ context.Context) error {
	data, err := Encode(Message{Ready: true})
	if err != nil {
		return err
	}
	return m.broadcast(data)
}

func (m *Memory) broadcast(data []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	for _, sub := range m.subs {
		select {
		case sub.ch <- data:
		default:
			m.logger.Warn("subscriber queue full, dropping message", "subscriber", sub.id)
		}
	}
	return nil
}

// Subscribe implements Channel. Each subscriber gets its own queue and
// delivery goroutine, so a slow handler never blocks a publisher.
func (m *Memory) Subscribe(ctx context.Context, h Handler) (func(), error) {
	subID, err := id.Generate("sub")
	if err != nil {
		return nil, err
	}
	sub := &subscriber{id: subID, ch: make(chan []byte, subscriberBuffer)}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	m.subs[sub.id] = sub
	m.mu.Unlock()

	m.logger.Debug("subscriber attached", "subscriber", sub.id, "total", m.count())

	go func() {
		for data := range sub.ch {
			msg, err := Decode(data)
			if err != nil {
				m.logger.Warn("dropping malformed message", "subscriber", sub.id, "error", err)
				continue
			}
			h(msg)
		}
	}()

	var once sync.Once
	return onDone(ctx, func() {
		once.Do(func() { m.remove(sub.id) })
	}), nil
}

func (m *Memory) remove(subID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.subs[subID]; ok {
		delete(m.subs, subID)
		close(sub.ch)
		m.logger.Debug("subscriber detached", "subscriber", subID, "total", len(m.subs))
	}
}

func (m *Memory) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

// Close detaches every subscriber.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for subID, sub := range m.subs {
		delete(m.subs, subID)
		close(sub.ch)
	}
	return nil
}
