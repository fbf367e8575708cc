package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"bible-tui/internal/errors"
)

// Controller is the publishing side. It remembers the last snapshot and
// answers every ready request with it.
type Controller struct {
	ch     Channel
	logger *slog.Logger
	seq    atomic.Uint64

	// publishMu orders sends on the channel with updates to last.
	publishMu sync.Mutex

	mu          sync.Mutex
	last        Snapshot
	lastSeq     uint64
	hasLast     bool
	unsubscribe func()
}

// NewController wraps ch.
func NewController(ch Channel, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{ch: ch, logger: logger}
}

// Start listens for ready requests until ctx ends or Stop is called.
func (c *Controller) Start(ctx context.Context) error {
	unsubscribe, err := c.ch.Subscribe(ctx, func(m Message) {
		if !m.Ready {
			return
		}
		c.publishMu.Lock()
		defer c.publishMu.Unlock()
		snap, ok := c.Last()
		if !ok {
			return
		}
		if err := c.ch.Publish(ctx, snap); err != nil {
			c.logger.Warn("answer ready request failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
	return nil
}

// NextSeq reserves the sequence number for a selection change. Reserve it
// when the change happens, not when the publish runs.
func (c *Controller) NextSeq() uint64 {
	return c.seq.Add(1)
}

// Publish broadcasts a complete snapshot and retains it, as the newest
// selection change.
func (c *Controller) Publish(ctx context.Context, s Snapshot) error {
	return c.PublishSeq(ctx, c.NextSeq(), s)
}

// PublishSeq is Publish for a change reserved earlier with NextSeq. A
// snapshot older than the retained one is dropped, so a slow publish never
// overwrites a newer selection.
func (c *Controller) PublishSeq(ctx context.Context, seq uint64, s Snapshot) error {
	if !s.Complete() {
		return errors.Validation("snapshot needs a book and a chapter")
	}
	if err := validate.Validate(s); err != nil {
		return err
	}
	s = s.clone()

	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	if c.hasLast && seq < c.lastSeq {
		c.mu.Unlock()
		c.logger.Debug("dropping superseded snapshot", "seq", seq, "book_id", s.BookID, "chapter", s.Chapter)
		return nil
	}
	c.last = s
	c.lastSeq = seq
	c.hasLast = true
	c.mu.Unlock()

	if err := c.ch.Publish(ctx, s); err != nil {
		return err
	}
	c.logger.Debug("snapshot published",
		"seq", seq,
		"book_id", s.BookID,
		"chapter", s.Chapter,
		"version", s.Version,
		"backend", c.ch.Backend(),
	)
	return nil
}

// Last returns the retained snapshot.
func (c *Controller) Last() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.clone(), c.hasLast
}

// Stop detaches from the channel.
func (c *Controller) Stop() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}
