// Package broadcast carries the controller's reading selection to every
// attached display surface.
package broadcast

import (
	"encoding/json"
	"fmt"
	"slices"

	"bible-tui/internal/bible"
	"bible-tui/internal/validation"
)

// ChannelName is the well-known channel every view joins.
const ChannelName = "bible_app"

var validate = validation.New()

// Snapshot is the controller's current selection. Zero fields are absent and
// leave the receiver's value alone when merged.
type Snapshot struct {
	BookID    string           `json:"bookId" validate:"omitempty,len=3,alphanum,uppercase"`
	Chapter   int              `json:"chapter" validate:"gte=0,lte=150"`
	BookName  string           `json:"bookName" validate:"max=64"`
	Version   string           `json:"version" validate:"omitempty,oneof=kjv web basicenglish cus cns"`
	Languages []bible.Language `json:"languages" validate:"omitempty,dive,oneof=en zh"`
	FontSize  bible.FontSize   `json:"fontSize" validate:"omitempty,oneof=small medium large"`
}

// Complete reports whether the snapshot names a chapter to show.
func (s Snapshot) Complete() bool {
	return s.BookID != "" && s.Chapter > 0
}

func (s Snapshot) clone() Snapshot {
	s.Languages = slices.Clone(s.Languages)
	return s
}

// Merge overlays the present fields of next onto s.
func (s Snapshot) Merge(next Snapshot) Snapshot {
	if next.BookID != "" {
		s.BookID = next.BookID
	}
	if next.Chapter != 0 {
		s.Chapter = next.Chapter
	}
	if next.BookName != "" {
		s.BookName = next.BookName
	}
	if next.Version != "" {
		s.Version = next.Version
	}
	if len(next.Languages) > 0 {
		s.Languages = slices.Clone(next.Languages)
	}
	if next.FontSize != "" {
		s.FontSize = next.FontSize
	}
	return s
}

// Message is either a ready request or a snapshot.
type Message struct {
	Ready    bool
	Snapshot Snapshot
}

// Handler receives every message on the channel, in publish order.
type Handler func(Message)

type readyWire struct {
	Type string `json:"type"`
}

type snapshotWire struct {
	Type      string         `json:"type,omitempty"`
	BookID    string         `json:"bookId"`
	Chapter   int            `json:"chapter"`
	BookName  string         `json:"bookName"`
	Version   string         `json:"version"`
	Languages any            `json:"languages"`
	FontSize  bible.FontSize `json:"fontSize"`
}

// Encode renders a message in wire form.
func Encode(m Message) ([]byte, error) {
	if m.Ready {
		return json.Marshal(readyWire{Type: "ready"})
	}
	return json.Marshal(m.Snapshot)
}

// Decode parses and validates a wire message. Languages are sanitized the
// way a surface does: unknown tags and duplicates are dropped, and an empty
// result becomes ["en"]. An unknown font size is treated as absent.
func Decode(data []byte) (Message, error) {
	var w snapshotWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	if w.Type == "ready" || w.Type == "popup_ready" {
		return Message{Ready: true}, nil
	}

	s := Snapshot{
		BookID:   w.BookID,
		Chapter:  w.Chapter,
		BookName: w.BookName,
		Version:  w.Version,
	}
	if langs, ok := w.Languages.([]any); ok {
		s.Languages = sanitizeLanguages(langs)
	}
	if f, ok := bible.ParseFontSize(string(w.FontSize)); ok {
		s.FontSize = f
	}

	if err := validate.Validate(s); err != nil {
		return Message{}, err
	}
	return Message{Snapshot: s}, nil
}

func sanitizeLanguages(raw []any) []bible.Language {
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if tag, ok := v.(string); ok {
			tags = append(tags, tag)
		}
	}
	return bible.NormalizeLanguages(tags)
}
