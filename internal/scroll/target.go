// Package scroll coordinates one-shot "bring this verse into view" requests
// between the view that jumps and the surface that renders the chapter.
package scroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Key is the storage slot holding the outstanding target.
const Key = "scrollToVerse"

const (
	// SettleDelay lets the chapter render before scrolling.
	SettleDelay = 300 * time.Millisecond
	// HighlightDuration is how long the target verse stays highlighted.
	HighlightDuration = 2 * time.Second
)

// ErrMalformed is returned when the slot holds something that is not a target.
var ErrMalformed = errors.New("malformed scroll target")

// Target identifies the verse to bring into view.
type Target struct {
	BookID  string `json:"bookId"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// Matches reports whether the target belongs to the given chapter.
func (t Target) Matches(bookID string, chapter int) bool {
	return t.BookID == bookID && t.Chapter == chapter
}

func (t Target) encode() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode scroll target: %w", err)
	}
	return string(data), nil
}

func decodeTarget(raw string) (Target, error) {
	var t Target
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if t.BookID == "" || t.Chapter < 1 || t.Verse < 1 {
		return Target{}, fmt.Errorf("%w: %s", ErrMalformed, raw)
	}
	return t, nil
}

// Slot holds at most one target. Set overwrites; ConsumeIf removes the
// target only if it matches, and at most one caller wins.
type Slot interface {
	Set(ctx context.Context, t Target) error
	Peek(ctx context.Context) (Target, bool, error)
	ConsumeIf(ctx context.Context, bookID string, chapter int) (Target, bool, error)
	Clear(ctx context.Context) error
}
