package ui

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"bible-tui/internal/broadcast"
	"bible-tui/internal/id"
)

type feedMsg struct {
	feed     string
	snapshot broadcast.Snapshot
}

// feed bridges a broadcast Receiver into a bubbletea program.
type feed struct {
	id      string
	updates chan broadcast.Snapshot
	done    chan struct{}
	detach  func()
	once    sync.Once
}

func attachFeed(ctx context.Context, ch broadcast.Channel, logger *slog.Logger) (*feed, error) {
	f := &feed{
		id:      id.MustGenerate("feed"),
		updates: make(chan broadcast.Snapshot),
		done:    make(chan struct{}),
	}
	r := broadcast.NewReceiver(ch, broadcast.Snapshot{}, logger)
	detach, err := r.Attach(ctx, func(s broadcast.Snapshot) {
		select {
		case f.updates <- s:
		case <-f.done:
		}
	})
	if err != nil {
		return nil, err
	}
	f.detach = detach
	return f, nil
}

// wait delivers the next snapshot as a feedMsg.
func (f *feed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-f.updates:
			return feedMsg{feed: f.id, snapshot: s}
		case <-f.done:
			return nil
		}
	}
}

func (f *feed) close() {
	f.once.Do(func() {
		close(f.done)
		f.detach()
	})
}
