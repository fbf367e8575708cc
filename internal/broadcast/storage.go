package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"bible-tui/internal/bible"
)

// Mirror keys hold the latest snapshot, one field each, for surfaces that
// can only see the shared store.
const (
	KeyBookID    = "bible_popup_bookId"
	KeyChapter   = "bible_popup_chapter"
	KeyBookName  = "bible_popup_bookName"
	KeyVersion   = "bible_popup_version"
	KeyLanguages = "bible_popup_languages"
	KeyFontSize  = "bible_popup_fontSize"
)

var mirrorKeys = []string{KeyBookID, KeyChapter, KeyBookName, KeyVersion, KeyLanguages, KeyFontSize}

// KV is the shared store the fallback backend mirrors into.
// storage.Store implements it.
type KV interface {
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string) error
	Watch(ctx context.Context, fn func()) (stop func(), err error)
}

// Storage mirrors each snapshot into the shared store. Subscribers read the
// mirror once on attach and again whenever another writer commits. Ready
// requests are unnecessary here since the mirror always holds the latest
// snapshot.
type Storage struct {
	kv     KV
	logger *slog.Logger
}

// NewStorage creates the fallback channel over kv.
func NewStorage(kv KV, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{kv: kv, logger: logger}
}

// Backend implements Channel.
func (s *Storage) Backend() Backend { return BackendStorage }

// Publish implements Channel. All fields land in one transaction.
func (s *Storage) Publish(ctx context.Context, snap Snapshot) error {
	values := map[string]string{
		KeyBookID:   snap.BookID,
		KeyChapter:  strconv.Itoa(snap.Chapter),
		KeyBookName: snap.BookName,
		KeyVersion:  snap.Version,
	}
	if len(snap.Languages) > 0 {
		data, err := json.Marshal(snap.Languages)
		if err != nil {
			return err
		}
		values[KeyLanguages] = string(data)
	}
	if snap.FontSize != "" {
		values[KeyFontSize] = string(snap.FontSize)
	}
	return s.kv.SetMany(ctx, values)
}

// RequestReady implements Channel as a no-op.
func (s *Storage) RequestReady(context.Context) error { return nil }

// Subscribe implements Channel. Change notifications coalesce, so a handler
// may see only the latest of several quick publishes.
func (s *Storage) Subscribe(ctx context.Context, h Handler) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	stopWatch, err := s.kv.Watch(ctx, notify)
	if err != nil {
		cancel()
		return nil, err
	}
	notify()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
				if ctx.Err() != nil {
					return
				}
				if msg, ok := s.read(ctx); ok && ctx.Err() == nil {
					h(msg)
				}
			}
		}
	}()

	var once sync.Once
	return onDone(ctx, func() {
		once.Do(func() {
			cancel()
			stopWatch()
		})
	}), nil
}

func (s *Storage) read(ctx context.Context) (Message, bool) {
	values, err := s.kv.GetMany(ctx, mirrorKeys...)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("read snapshot mirror failed", "error", err)
		}
		return Message{}, false
	}
	if len(values) == 0 {
		return Message{}, false
	}

	var snap Snapshot
	snap.BookID = values[KeyBookID]
	snap.BookName = values[KeyBookName]
	snap.Version = values[KeyVersion]
	if raw, ok := values[KeyChapter]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			snap.Chapter = n
		}
	}
	if raw, ok := values[KeyLanguages]; ok {
		var tags []any
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			snap.Languages = []bible.Language{bible.English}
		} else {
			snap.Languages = sanitizeLanguages(tags)
		}
	}
	if f, ok := bible.ParseFontSize(values[KeyFontSize]); ok {
		snap.FontSize = f
	}

	if err := validate.Validate(snap); err != nil {
		s.logger.Warn("ignoring invalid snapshot mirror", "error", err)
		return Message{}, false
	}
	return Message{Snapshot: snap}, true
}

// Close implements Channel. The store belongs to the caller.
func (s *Storage) Close() error { return nil }
