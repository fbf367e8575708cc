// Package settings persists reader preferences, bookmarks and reading history
// in the shared key-value store.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"bible-tui/internal/bible"
	"bible-tui/internal/errors"
	"bible-tui/internal/validation"
)

// Storage keys.
const (
	KeyBookmarks = "bible_bookmarks"
	KeyHistory   = "bible_reading_history"
	KeyLanguages = "bible_languages"
	KeyVersion   = "bible_version"
	KeyFontSize  = "bible_font_size"
	KeyTheme     = "bible_theme"
)

// MaxHistory caps the reading history.
const MaxHistory = 30

// KV is the subset of the key-value store the preferences need.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Bookmark is a saved verse.
type Bookmark struct {
	BookID    string `json:"bookId" validate:"required,len=3"`
	Chapter   int    `json:"chapter" validate:"gte=1"`
	Verse     int    `json:"verse" validate:"gte=1"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// HistoryEntry is one visited location, most recent first.
type HistoryEntry struct {
	BookID    string `json:"bookId" validate:"required,len=3"`
	Chapter   int    `json:"chapter" validate:"gte=1"`
	Verse     int    `json:"verse,omitempty" validate:"gte=0"`
	Timestamp int64  `json:"timestamp"`
}

func (h HistoryEntry) same(bookID string, chapter, verse int) bool {
	return h.BookID == bookID && h.Chapter == chapter && h.verse() == verse
}

func (h HistoryEntry) verse() int {
	if h.Verse < 1 {
		return 1
	}
	return h.Verse
}

// Store reads and writes preferences. Read-modify-write is not locked across
// processes; the last writer wins.
type Store struct {
	kv        KV
	logger    *slog.Logger
	validator *validation.Validator
	now       func() time.Time
}

// New creates a preference store over kv.
func New(kv KV, logger *slog.Logger, v *validation.Validator) *Store {
	if v == nil {
		v = validation.New()
	}
	return &Store{kv: kv, logger: logger, validator: v, now: time.Now}
}

// Languages returns the selected languages, never empty.
func (s *Store) Languages(ctx context.Context) []bible.Language {
	var raw []string
	if !s.readJSON(ctx, KeyLanguages, &raw) {
		return []bible.Language{bible.English}
	}
	langs := bible.NormalizeLanguages(raw)
	if len(langs) != len(raw) {
		s.logger.Warn("stored languages normalized", "stored", raw, "using", langs)
	}
	return langs
}

// SetLanguages stores a normalized language selection.
func (s *Store) SetLanguages(ctx context.Context, langs []bible.Language) ([]bible.Language, error) {
	langs = bible.NormalizeLanguages(langs)
	return langs, s.writeJSON(ctx, KeyLanguages, langs)
}

// ToggleLanguage adds l or removes it. The last language cannot be removed.
func (s *Store) ToggleLanguage(ctx context.Context, l bible.Language) ([]bible.Language, error) {
	if !l.Valid() {
		return nil, errors.Validation(fmt.Sprintf("unknown language %q", l))
	}
	current := s.Languages(ctx)
	if !slices.Contains(current, l) {
		return s.SetLanguages(ctx, append(current, l))
	}
	if len(current) == 1 {
		return current, nil
	}
	return s.SetLanguages(ctx, slices.DeleteFunc(current, func(x bible.Language) bool { return x == l }))
}

// Version returns the selected version. Unknown values fall back to kjv.
func (s *Store) Version(ctx context.Context) string {
	v, ok := s.read(ctx, KeyVersion)
	if !ok {
		return bible.DefaultVersionID
	}
	if !bible.IsVersion(v) {
		s.logger.Warn("stored version unknown, using default", "stored", v)
		return bible.DefaultVersionID
	}
	return v
}

// SetVersion stores a known version.
func (s *Store) SetVersion(ctx context.Context, version string) error {
	if !bible.IsVersion(version) {
		return errors.Validation(fmt.Sprintf("unknown version %q", version))
	}
	return s.kv.Set(ctx, KeyVersion, version)
}

// FontSize returns the stored size or the default.
func (s *Store) FontSize(ctx context.Context) bible.FontSize {
	v, ok := s.read(ctx, KeyFontSize)
	if !ok {
		return bible.DefaultFontSize
	}
	f, valid := bible.ParseFontSize(v)
	if !valid {
		s.logger.Warn("stored font size invalid, using default", "stored", v)
	}
	return f
}

// SetFontSize stores a font size.
func (s *Store) SetFontSize(ctx context.Context, f bible.FontSize) error {
	if _, ok := bible.ParseFontSize(string(f)); !ok {
		return errors.Validation(fmt.Sprintf("unknown font size %q", f))
	}
	return s.kv.Set(ctx, KeyFontSize, string(f))
}

// Theme returns the stored colour theme name, or "" when unset.
func (s *Store) Theme(ctx context.Context) string {
	v, _ := s.read(ctx, KeyTheme)
	return v
}

// SetTheme stores the colour theme name.
func (s *Store) SetTheme(ctx context.Context, name string) error {
	return s.kv.Set(ctx, KeyTheme, name)
}

// Bookmarks returns the saved bookmarks in insertion order.
func (s *Store) Bookmarks(ctx context.Context) []Bookmark {
	var marks []Bookmark
	if !s.readJSON(ctx, KeyBookmarks, &marks) {
		return nil
	}
	return slices.DeleteFunc(marks, func(b Bookmark) bool {
		if err := s.validator.Validate(b); err != nil {
			s.logger.Warn("dropping invalid bookmark", "bookmark", b, "error", err)
			return true
		}
		return false
	})
}

// AddBookmark appends b unless (bookId, chapter, verse) is already saved.
// A zero timestamp is filled in.
func (s *Store) AddBookmark(ctx context.Context, b Bookmark) error {
	if err := s.validator.Validate(b); err != nil {
		return err
	}
	marks := s.Bookmarks(ctx)
	if indexOfBookmark(marks, b.BookID, b.Chapter, b.Verse) >= 0 {
		return nil
	}
	if b.Timestamp == 0 {
		b.Timestamp = s.now().UnixMilli()
	}
	return s.writeJSON(ctx, KeyBookmarks, append(marks, b))
}

// RemoveBookmark deletes the bookmark at (bookId, chapter, verse).
func (s *Store) RemoveBookmark(ctx context.Context, bookID string, chapter, verse int) error {
	marks := s.Bookmarks(ctx)
	marks = slices.DeleteFunc(marks, func(b Bookmark) bool {
		return b.BookID == bookID && b.Chapter == chapter && b.Verse == verse
	})
	if marks == nil {
		marks = []Bookmark{}
	}
	return s.writeJSON(ctx, KeyBookmarks, marks)
}

// IsBookmarked reports whether (bookId, chapter, verse) is saved.
func (s *Store) IsBookmarked(ctx context.Context, bookID string, chapter, verse int) bool {
	return indexOfBookmark(s.Bookmarks(ctx), bookID, chapter, verse) >= 0
}

func indexOfBookmark(marks []Bookmark, bookID string, chapter, verse int) int {
	return slices.IndexFunc(marks, func(b Bookmark) bool {
		return b.BookID == bookID && b.Chapter == chapter && b.Verse == verse
	})
}

// ReadingHistory returns visited locations, most recent first.
func (s *Store) ReadingHistory(ctx context.Context) []HistoryEntry {
	var history []HistoryEntry
	if !s.readJSON(ctx, KeyHistory, &history) {
		return nil
	}
	return slices.DeleteFunc(history, func(h HistoryEntry) bool {
		if err := s.validator.Validate(h); err != nil {
			s.logger.Warn("dropping invalid history entry", "entry", h, "error", err)
			return true
		}
		return false
	})
}

// AddToReadingHistory moves (bookId, chapter, verse) to the front. Verses
// below 1 are recorded as 1. The list keeps the MaxHistory newest entries.
func (s *Store) AddToReadingHistory(ctx context.Context, bookID string, chapter, verse int) error {
	if verse < 1 {
		verse = 1
	}
	entry := HistoryEntry{BookID: bookID, Chapter: chapter, Verse: verse, Timestamp: s.now().UnixMilli()}
	if err := s.validator.Validate(entry); err != nil {
		return err
	}

	history := slices.DeleteFunc(s.ReadingHistory(ctx), func(h HistoryEntry) bool {
		return h.same(bookID, chapter, verse)
	})
	history = append([]HistoryEntry{entry}, history...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	return s.writeJSON(ctx, KeyHistory, history)
}

// LastRead returns the most recent history entry.
func (s *Store) LastRead(ctx context.Context) (HistoryEntry, bool) {
	history := s.ReadingHistory(ctx)
	if len(history) == 0 {
		return HistoryEntry{}, false
	}
	h := history[0]
	h.Verse = h.verse()
	return h, true
}

// ClearAllData removes bookmarks and reading history.
func (s *Store) ClearAllData(ctx context.Context) error {
	return s.kv.Remove(ctx, KeyBookmarks, KeyHistory)
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("preference read failed, using default", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// readJSON reports false when the key is missing or holds malformed JSON.
func (s *Store) readJSON(ctx context.Context, key string, v any) bool {
	raw, ok := s.read(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn("stored preference corrupt, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Internal("encode "+key, err)
	}
	return s.kv.Set(ctx, key, string(data))
}
