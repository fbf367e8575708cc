package scroll

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// State is the tracker's position in the target lifecycle.
type State int

const (
	Idle State = iota
	Armed
	Matched
	Consumed
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Matched:
		return "matched"
	case Consumed:
		return "consumed"
	default:
		return "idle"
	}
}

// Tracker is one surface's view of the shared slot. Two events move it:
// a target being set and a chapter being rendered.
type Tracker struct {
	slot   Slot
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

func NewTracker(slot Slot, logger *slog.Logger) *Tracker {
	return &Tracker{slot: slot, logger: logger}
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SetTarget writes target to the slot, replacing any earlier one, and arms
// the tracker.
func (t *Tracker) SetTarget(ctx context.Context, target Target) error {
	if err := t.slot.Set(ctx, target); err != nil {
		return err
	}
	t.TargetSet()
	return nil
}

// TargetSet records that a target was written, possibly by another process.
func (t *Tracker) TargetSet() {
	t.mu.Lock()
	t.state = Armed
	t.mu.Unlock()
}

// ChapterRendered checks the slot against the chapter now on screen. It
// returns the target when this call consumed it; the caller then scrolls
// after SettleDelay and drops the highlight after HighlightDuration. A target
// for another chapter stays in the slot.
func (t *Tracker) ChapterRendered(ctx context.Context, bookID string, chapter int) (Target, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, ok, err := t.slot.Peek(ctx)
	switch {
	case errors.Is(err, ErrMalformed):
		t.logger.Warn("discarding malformed scroll target", "error", err)
		if err := t.slot.Clear(ctx); err != nil {
			t.logger.Warn("failed to clear scroll target", "error", err)
		}
		t.state = Idle
		return Target{}, false
	case err != nil:
		t.logger.Warn("scroll target check failed", "error", err)
		return Target{}, false
	case !ok:
		t.state = Idle
		return Target{}, false
	case !target.Matches(bookID, chapter):
		t.state = Armed
		return Target{}, false
	}

	t.state = Matched
	consumed, won, err := t.slot.ConsumeIf(ctx, bookID, chapter)
	if err != nil {
		t.logger.Warn("scroll target consume failed", "error", err)
		t.state = Armed
		return Target{}, false
	}
	if !won {
		// Another surface got there first, or the target was replaced.
		t.state = Idle
		return Target{}, false
	}

	t.state = Consumed
	t.logger.Debug("scroll target consumed",
		"book_id", consumed.BookID,
		"chapter", consumed.Chapter,
		"verse", consumed.Verse,
	)
	return consumed, true
}

// Reset clears the slot and returns the tracker to Idle. The controller
// calls it as its session starts.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Idle
	return t.slot.Clear(ctx)
}
