package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bible-tui/internal/broadcast"
	"bible-tui/internal/display"
	"bible-tui/internal/scroll"
	"bible-tui/internal/theme"
)

// ThemeStore persists the colour theme.
type ThemeStore interface {
	Theme(ctx context.Context) string
	SetTheme(ctx context.Context, name string) error
}

// PopupDeps are what a standalone display surface needs.
type PopupDeps struct {
	Context  context.Context
	Source   display.ChapterSource
	Channel  broadcast.Channel
	Slot     scroll.Slot
	Settings ThemeStore
	Logger   *slog.Logger
}

// Popup is the passive display program. It mirrors whatever the controller
// publishes.
type Popup struct {
	deps    PopupDeps
	surface Surface
	feed    *feed
	keys    popupKeys
	help    help.Model
	themeID string
	err     error
}

// NewPopup attaches to the channel and builds the program model.
func NewPopup(deps PopupDeps) (Popup, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	themeID := theme.Get(deps.Settings.Theme(deps.Context)).ID
	tracker := scroll.NewTracker(deps.Slot, deps.Logger)

	f, err := attachFeed(deps.Context, deps.Channel, deps.Logger)
	if err != nil {
		return Popup{}, err
	}
	return Popup{
		deps:    deps,
		surface: NewSurface(deps.Context, deps.Source, tracker, theme.Get(themeID), deps.Logger),
		feed:    f,
		keys:    defaultPopupKeys(),
		help:    help.New(),
		themeID: themeID,
	}, nil
}

// Init implements tea.Model.
func (m Popup) Init() tea.Cmd {
	return m.feed.wait()
}

// Update implements tea.Model.
func (m Popup) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.feed.close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Theme):
			th := theme.Next(m.themeID)
			m.themeID = th.ID
			m.surface.SetTheme(th)
			if err := m.deps.Settings.SetTheme(m.deps.Context, th.ID); err != nil {
				m.err = err
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.surface.SetSize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case feedMsg:
		if msg.feed != m.feed.id {
			return m, nil
		}
		var cmd tea.Cmd
		m.surface, cmd = m.surface.Update(SnapshotMsg{Snapshot: msg.snapshot})
		return m, tea.Batch(cmd, m.feed.wait())
	}

	var cmd tea.Cmd
	m.surface, cmd = m.surface.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Popup) View() string {
	footer := m.help.View(m.keys)
	if m.err != nil {
		footer = m.surface.styles.Error.Render(m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.surface.View(), footer)
}
