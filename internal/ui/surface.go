package ui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bible-tui/internal/bible"
	"bible-tui/internal/broadcast"
	"bible-tui/internal/display"
	"bible-tui/internal/id"
	"bible-tui/internal/scroll"
	"bible-tui/internal/theme"
)

type surfaceState int

const (
	stateWaiting surfaceState = iota
	stateLoading
	stateReady
)

const headerHeight = 2

// SnapshotMsg hands a surface the selection to show.
type SnapshotMsg struct {
	Snapshot broadcast.Snapshot
}

type pageLoadedMsg struct {
	surface string
	page    display.Page
}

type targetConsumedMsg struct {
	surface string
	gen     uint64
	target  scroll.Target
}

type scrollMsg struct {
	surface string
	gen     uint64
	verse   int
}

type clearHighlightMsg struct {
	surface string
	seq     int
}

// Surface renders whatever snapshot it is handed. It is the popup program's
// body, the controller's reading pane and the controller's modal.
type Surface struct {
	id      string
	ctx     context.Context
	loader  *display.Loader
	tracker *scroll.Tracker
	logger  *slog.Logger
	styles  theme.Styles

	viewport viewport.Model
	width    int
	height   int

	state   surfaceState
	snap    broadcast.Snapshot
	page    display.Page
	offsets []int

	pending      scroll.Target
	highlight    int
	highlightSeq int
}

// NewSurface creates a surface. tracker may be nil, in which case the surface
// ignores shared scroll targets and only scrolls on ScrollTo.
func NewSurface(ctx context.Context, src display.ChapterSource, tracker *scroll.Tracker, th theme.Theme, logger *slog.Logger) Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return Surface{
		id:       id.MustGenerate("surface"),
		ctx:      ctx,
		loader:   display.NewLoader(src),
		tracker:  tracker,
		logger:   logger,
		styles:   th.Styles(),
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20 + headerHeight,
	}
}

// SetSize resizes the surface, header included.
func (s *Surface) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.Width = width
	s.viewport.Height = max(height-headerHeight, 1)
	s.render()
}

// SetTheme restyles the surface.
func (s *Surface) SetTheme(th theme.Theme) {
	s.styles = th.Styles()
	s.render()
}

// ScrollTo brings a verse into view once its chapter is on screen. It is the
// local counterpart of a shared scroll target.
func (s Surface) ScrollTo(t scroll.Target) (Surface, tea.Cmd) {
	if s.state == stateReady && t.Matches(s.page.BookID, s.page.Chapter) {
		return s, s.settle(t.Verse)
	}
	s.pending = t
	return s, nil
}

// Page returns the page on screen.
func (s Surface) Page() display.Page { return s.page }

// Loading reports whether a chapter is being fetched.
func (s Surface) Loading() bool { return s.state == stateLoading }

// VerseAt returns the verse at the top of the view, or 0.
func (s Surface) VerseAt() int {
	top := s.viewport.YOffset
	row := -1
	for i, off := range s.offsets {
		if off > top {
			break
		}
		row = i
	}
	if row < 0 || row >= len(s.page.Verses) {
		return 0
	}
	return s.page.Verses[row].Verse
}

// Update handles surface messages and scrolling keys.
func (s Surface) Update(msg tea.Msg) (Surface, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		return s.apply(msg.Snapshot)

	case pageLoadedMsg:
		if msg.surface != s.id {
			return s, nil
		}
		if !s.loader.Current(msg.page) {
			s.logger.Debug("discarding stale page",
				"book_id", msg.page.BookID,
				"chapter", msg.page.Chapter,
				"generation", msg.page.Generation,
			)
			return s, nil
		}
		s.page = msg.page
		s.state = stateReady
		s.highlight = 0
		s.render()
		s.viewport.GotoTop()
		cmd := s.afterRender()
		return s, cmd

	case targetConsumedMsg:
		if msg.surface != s.id || msg.gen != s.page.Generation {
			return s, nil
		}
		return s, s.settle(msg.target.Verse)

	case scrollMsg:
		if msg.surface != s.id || msg.gen != s.page.Generation {
			return s, nil
		}
		row := s.page.RowOf(msg.verse)
		if row < 0 {
			return s, nil
		}
		s.highlight = msg.verse
		s.highlightSeq++
		s.render()
		if row < len(s.offsets) {
			s.viewport.SetYOffset(s.offsets[row])
		}
		seq, surface := s.highlightSeq, s.id
		return s, tea.Tick(scroll.HighlightDuration, func(time.Time) tea.Msg {
			return clearHighlightMsg{surface: surface, seq: seq}
		})

	case clearHighlightMsg:
		if msg.surface == s.id && msg.seq == s.highlightSeq {
			s.highlight = 0
			s.render()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s Surface) apply(snap broadcast.Snapshot) (Surface, tea.Cmd) {
	prev := s.snap
	s.snap = snap
	if !snap.Complete() {
		s.state = stateWaiting
		s.page = display.Page{}
		s.render()
		return s, nil
	}

	if s.state != stateWaiting && sameChapter(prev, snap) {
		if f, ok := bible.ParseFontSize(string(snap.FontSize)); ok {
			s.page.FontSize = f
		}
		if snap.BookName != "" {
			s.page.BookName = snap.BookName
		}
		s.render()
		if s.state == stateReady {
			return s, s.checkTarget()
		}
		return s, nil
	}

	gen := s.loader.Begin()
	s.state = stateLoading
	s.render()
	ctx, loader, surface := s.ctx, s.loader, s.id
	return s, func() tea.Msg {
		return pageLoadedMsg{surface: surface, page: loader.Load(ctx, gen, snap)}
	}
}

func sameChapter(a, b broadcast.Snapshot) bool {
	return a.BookID == b.BookID &&
		a.Chapter == b.Chapter &&
		a.Version == b.Version &&
		slices.Equal(bible.NormalizeLanguages(a.Languages), bible.NormalizeLanguages(b.Languages))
}

// afterRender runs once per freshly loaded chapter: a local jump first, then
// the shared scroll target.
func (s *Surface) afterRender() tea.Cmd {
	if s.page.Unavailable {
		return nil
	}
	if s.pending.Matches(s.page.BookID, s.page.Chapter) {
		verse := s.pending.Verse
		s.pending = scroll.Target{}
		return s.settle(verse)
	}
	return s.checkTarget()
}

func (s Surface) checkTarget() tea.Cmd {
	if s.tracker == nil || s.page.Unavailable {
		return nil
	}
	ctx, tracker, surface := s.ctx, s.tracker, s.id
	bookID, chapter, gen := s.page.BookID, s.page.Chapter, s.page.Generation
	return func() tea.Msg {
		target, ok := tracker.ChapterRendered(ctx, bookID, chapter)
		if !ok {
			return nil
		}
		return targetConsumedMsg{surface: surface, gen: gen, target: target}
	}
}

// settle waits for the layout to settle before scrolling.
func (s Surface) settle(verse int) tea.Cmd {
	surface, gen := s.id, s.page.Generation
	return tea.Tick(scroll.SettleDelay, func(time.Time) tea.Msg {
		return scrollMsg{surface: surface, gen: gen, verse: verse}
	})
}

func (s *Surface) render() {
	switch s.state {
	case stateWaiting:
		s.offsets = nil
		s.viewport.SetContent(s.styles.Muted.Render("Waiting for the controller to select a chapter."))
	case stateLoading:
		if len(s.offsets) == 0 {
			s.viewport.SetContent(s.styles.Muted.Render("Loading..."))
		}
	default:
		var content string
		content, s.offsets = renderPage(s.page, s.styles, s.viewport.Width, s.highlight)
		s.viewport.SetContent(content)
	}
}

// View renders the header and the verses.
func (s Surface) View() string {
	var title, status string
	switch s.state {
	case stateWaiting:
		title = s.styles.Title.Render("Bible")
	default:
		title = s.styles.Title.Render(pageTitle(s.page))
		status = s.styles.Status.Render(versionLabel(s.page))
		if s.state == stateLoading {
			title = s.styles.Title.Render(pageTitle(display.Page{
				BookID:    s.snap.BookID,
				BookName:  s.snap.BookName,
				Chapter:   s.snap.Chapter,
				Languages: bible.NormalizeLanguages(s.snap.Languages),
			}))
			status = s.styles.Muted.Render("loading")
		}
	}

	gap := max(s.width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	header := s.styles.Header.Width(s.width).Render(title + spaces(gap) + status)
	return lipgloss.JoinVertical(lipgloss.Left, header, s.viewport.View())
}

func spaces(n int) string {
	return fmt.Sprintf("%*s", n, "")
}
