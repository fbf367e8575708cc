package broadcast

import (
	"context"
	"log/slog"
	"sync"
)

// Receiver is the surface side. It folds incoming snapshots into its current
// state field by field.
type Receiver struct {
	ch     Channel
	logger *slog.Logger

	mu      sync.Mutex
	current Snapshot
}

// NewReceiver wraps ch, starting from initial.
func NewReceiver(ch Channel, initial Snapshot, logger *slog.Logger) *Receiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Receiver{ch: ch, logger: logger, current: initial}
}

// Attach subscribes, then asks the controller for its current snapshot. fn
// gets the merged state after every snapshot. Ready requests are ignored.
func (r *Receiver) Attach(ctx context.Context, fn func(Snapshot)) (detach func(), err error) {
	detach, err = r.ch.Subscribe(ctx, func(m Message) {
		if m.Ready {
			return
		}
		merged := r.apply(m.Snapshot)
		if fn != nil {
			fn(merged)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := r.ch.RequestReady(ctx); err != nil {
		r.logger.Warn("ready request failed", "backend", r.ch.Backend(), "error", err)
	}
	return detach, nil
}

func (r *Receiver) apply(s Snapshot) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = r.current.Merge(s)
	return r.current.clone()
}

// Current returns the merged state.
func (r *Receiver) Current() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.clone()
}
