package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/api"
	"bible-tui/internal/bible"
	"bible-tui/internal/broadcast"
	"bible-tui/internal/logger"
	"bible-tui/internal/scroll"
	"bible-tui/internal/settings"
	"bible-tui/internal/storage"
	"bible-tui/internal/theme"
	"bible-tui/internal/validation"
)

func verses(version, bookID string, chapter, n int) []bible.Verse {
	out := make([]bible.Verse, n)
	for i := range out {
		out[i] = bible.Verse{
			ID:      bible.VerseID(bookID, chapter, i+1),
			BookID:  bookID,
			Chapter: chapter,
			Verse:   i + 1,
			Text:    fmt.Sprintf("%s %s %d:%d", version, bookID, chapter, i+1),
		}
	}
	return out
}

func testClient() *api.Client {
	src := api.SourceFunc(func(_ context.Context, version, bookID string, chapter int) ([]bible.Verse, error) {
		return verses(version, bookID, chapter, 5), nil
	})
	return api.NewClient(src, api.WithLogger(logger.Discard()))
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "bible.db"), logger.Discard(),
		storage.WithPollInterval(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

type env struct {
	store     *storage.Store
	client    *api.Client
	settings  *settings.Store
	channel   *broadcast.Memory
	publisher *broadcast.Controller
	slot      *scroll.StorageSlot
}

func newEnv(t *testing.T) env {
	t.Helper()
	kv := testStore(t)
	ch := broadcast.NewMemory(logger.Discard())
	t.Cleanup(func() { _ = ch.Close() })
	pub := broadcast.NewController(ch, logger.Discard())
	require.NoError(t, pub.Start(context.Background()))
	t.Cleanup(pub.Stop)
	return env{
		store:     kv,
		client:    testClient(),
		settings:  settings.New(kv, logger.Discard(), validation.New()),
		channel:   ch,
		publisher: pub,
		slot:      scroll.NewStorageSlot(kv),
	}
}

func (e env) deps() Deps {
	return Deps{
		Context:   context.Background(),
		Client:    e.client,
		Settings:  e.settings,
		Publisher: e.publisher,
		Channel:   e.channel,
		Slot:      e.slot,
		Logger:    logger.Discard(),
	}
}

func newTestSurface(t *testing.T, tracker *scroll.Tracker) Surface {
	t.Helper()
	s := NewSurface(context.Background(), testClient(), tracker, theme.Get(theme.DefaultID), logger.Discard())
	s.SetSize(80, 30)
	return s
}

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
