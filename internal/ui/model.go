// Package ui holds the bubbletea programs: the controller, the standalone
// display surface and the surface component they share.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bible-tui/internal/api"
	"bible-tui/internal/bible"
	"bible-tui/internal/broadcast"
	"bible-tui/internal/display"
	"bible-tui/internal/errors"
	"bible-tui/internal/reference"
	"bible-tui/internal/scroll"
	"bible-tui/internal/settings"
	"bible-tui/internal/theme"
)

type viewMode int

const (
	modeReader viewMode = iota
	modeBooks
	modeJump
	modeSearch
	modeResults
	modeBookmarks
	modeHistory
)

// Deps are the services the controller drives.
type Deps struct {
	Context   context.Context
	Client    *api.Client
	Settings  *settings.Store
	Publisher *broadcast.Controller
	Channel   broadcast.Channel
	Slot      scroll.Slot
	Logger    *slog.Logger
}

// Model is the controller: it owns the selection and publishes every change.
type Model struct {
	deps    Deps
	ctx     context.Context
	logger  *slog.Logger
	keys    keyMap
	help    help.Model
	targets *scroll.Tracker

	reader    Surface
	modal     Surface
	modalFeed *feed

	books     list.Model
	bookmarks list.Model
	history   list.Model
	results   list.Model
	input     textinput.Model
	mode      viewMode

	bookTable []bible.Book
	bookID    string
	chapter   int
	version   string
	languages []bible.Language
	fontSize  bible.FontSize
	themeID   string

	searching    bool
	cancelSearch context.CancelFunc

	status  string
	err     error
	width   int
	height  int
	initCmd tea.Cmd
}

type publishedMsg struct{ err error }

type navigatedMsg struct {
	query string
	ref   reference.Reference
	ok    bool
	err   error
}

type searchDoneMsg struct {
	query  string
	verses []bible.Verse
	err    error
}

type targetSetMsg struct {
	target scroll.Target
	err    error
}

// NewModel restores preferences and the last-read chapter.
func NewModel(deps Deps) Model {
	ctx := deps.Context
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prefs := deps.Settings

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 48

	m := Model{
		deps:      deps,
		ctx:       ctx,
		logger:    logger,
		keys:      defaultKeys(),
		help:      help.New(),
		targets:   scroll.NewTracker(deps.Slot, logger),
		input:     ti,
		mode:      modeReader,
		version:   prefs.Version(ctx),
		languages: prefs.Languages(ctx),
		fontSize:  prefs.FontSize(ctx),
		themeID:   theme.Get(prefs.Theme(ctx)).ID,
		bookID:    "GEN",
		chapter:   1,
	}
	m.bookTable = deps.Client.GetBooks(ctx, m.version)

	if last, ok := prefs.LastRead(ctx); ok {
		if book, ok := bible.BookByID(last.BookID); ok && last.Chapter >= 1 && last.Chapter <= book.Chapters {
			m.bookID, m.chapter = book.ID, last.Chapter
		}
	}

	// A target left by a session that never shut down must not leak into this one.
	if err := m.targets.Reset(ctx); err != nil {
		logger.Warn("stale scroll target not cleared", "error", err)
	}

	m.reader = NewSurface(ctx, deps.Client, nil, theme.Get(m.themeID), logger)
	m.modal = m.newModal()

	items := make([]list.Item, 0, len(m.bookTable))
	for _, b := range m.bookTable {
		items = append(items, bookItem{book: b})
	}
	m.books = newList("Books", items)
	m.bookmarks = newList("Bookmarks", nil)
	m.history = newList("Reading history", nil)
	m.results = newList("Search results", nil)

	m.initCmd = m.selectionChanged(1)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.mode {
		case modeReader:
			return m.updateReader(msg)
		case modeJump, modeSearch:
			return m.updateInput(msg)
		default:
			return m.updateList(msg)
		}

	case publishedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Warn("publish failed", "error", msg.err)
		}
		return m, nil

	case navigatedMsg:
		if msg.err != nil {
			m.logger.Warn("scroll target not stored", "query", msg.query, "error", msg.err)
		}
		if !msg.ok {
			m.status = fmt.Sprintf("No match for %q", msg.query)
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeReader
		m.status = msg.ref.String()
		next := m.goTo(msg.ref.BookID, msg.ref.Chapter, msg.ref.Verse)
		return m, next

	case searchDoneMsg:
		return m.searchDone(msg)

	case targetSetMsg:
		if msg.err != nil {
			m.logger.Warn("scroll target not stored", "error", msg.err)
		}
		next := m.goTo(msg.target.BookID, msg.target.Chapter, msg.target.Verse)
		return m, next

	case feedMsg:
		if m.modalFeed == nil || msg.feed != m.modalFeed.id {
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(SnapshotMsg{Snapshot: msg.snapshot})
		return m, tea.Batch(cmd, m.modalFeed.wait())

	case tea.MouseMsg:
		var cmd tea.Cmd
		if m.modalFeed != nil {
			m.modal, cmd = m.modal.Update(msg)
		} else {
			m.reader, cmd = m.reader.Update(msg)
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.reader, cmd = m.reader.Update(msg)
	cmds = append(cmds, cmd)
	if m.modalFeed != nil {
		m.modal, cmd = m.modal.Update(msg)
		cmds = append(cmds, cmd)
	}
	if l := m.activeList(); l != nil {
		*l, cmd = l.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		next := m.step(1)
		return m, next
	case key.Matches(msg, m.keys.Prev):
		next := m.step(-1)
		return m, next
	case key.Matches(msg, m.keys.Books):
		m.mode = modeBooks
		return m, nil
	case key.Matches(msg, m.keys.Jump):
		next := m.openInput(modeJump, "John 3:16, 约翰福音 3:16, gen 1")
		return m, next
	case key.Matches(msg, m.keys.Search):
		next := m.openInput(modeSearch, "Search words in this version")
		return m, next
	case key.Matches(msg, m.keys.Version):
		m.version = bible.NextVersion(m.version)
		if err := m.deps.Settings.SetVersion(m.ctx, m.version); err != nil {
			m.err = err
		}
		m.bookTable = m.deps.Client.GetBooks(m.ctx, m.version)
		next := m.displayChanged()
		return m, next
	case key.Matches(msg, m.keys.English):
		return m.toggleLanguage(bible.English)
	case key.Matches(msg, m.keys.Chinese):
		return m.toggleLanguage(bible.Chinese)
	case key.Matches(msg, m.keys.FontSize):
		m.fontSize = m.fontSize.Next()
		if err := m.deps.Settings.SetFontSize(m.ctx, m.fontSize); err != nil {
			m.err = err
		}
		next := m.displayChanged()
		return m, next
	case key.Matches(msg, m.keys.Theme):
		th := theme.Next(m.themeID)
		m.themeID = th.ID
		m.reader.SetTheme(th)
		m.modal.SetTheme(th)
		if err := m.deps.Settings.SetTheme(m.ctx, th.ID); err != nil {
			m.err = err
		}
		m.status = "Theme: " + th.Name
		return m, nil
	case key.Matches(msg, m.keys.Bookmark):
		m.toggleBookmark()
		return m, nil
	case key.Matches(msg, m.keys.Bookmarks):
		m.refreshBookmarks()
		m.mode = modeBookmarks
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.refreshHistory()
		m.mode = modeHistory
		return m, nil
	case key.Matches(msg, m.keys.Modal):
		return m.toggleModal()
	}

	var cmd tea.Cmd
	if m.modalFeed != nil {
		m.modal, cmd = m.modal.Update(msg)
	} else {
		m.reader, cmd = m.reader.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.searching && m.cancelSearch != nil {
			m.cancelSearch()
			return m, nil
		}
		m.input.Blur()
		m.mode = modeReader
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Select):
		query := strings.TrimSpace(m.input.Value())
		if query == "" || m.searching {
			return m, nil
		}
		if m.mode == modeJump {
			ctx, books, targets := m.ctx, m.bookTable, m.targets
			return m, func() tea.Msg {
				ref, ok, err := reference.Navigate(ctx, query, books, targets)
				return navigatedMsg{query: query, ref: ref, ok: ok, err: err}
			}
		}
		next := m.startSearch(query)
		return m, next
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.activeList()
	if l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		*l, cmd = l.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		if l.FilterState() == list.FilterApplied {
			l.ResetFilter()
			return m, nil
		}
		m.mode = modeReader
		return m, nil

	case key.Matches(msg, m.keys.Select):
		switch item := l.SelectedItem().(type) {
		case bookItem:
			m.mode = modeReader
			next := m.goTo(item.book.ID, 1, 1)
			return m, next
		case location:
			m.mode = modeReader
			return m, m.openLocation(item.Location())
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete) && m.mode == modeBookmarks:
		if item, ok := l.SelectedItem().(bookmarkItem); ok {
			if err := m.deps.Settings.RemoveBookmark(m.ctx, item.mark.BookID, item.mark.Chapter, item.mark.Verse); err != nil {
				m.err = err
			}
			m.refreshBookmarks()
		}
		return m, nil
	}

	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m *Model) activeList() *list.Model {
	switch m.mode {
	case modeBooks:
		return &m.books
	case modeBookmarks:
		return &m.bookmarks
	case modeHistory:
		return &m.history
	case modeResults:
		return &m.results
	}
	return nil
}

func (m *Model) openInput(mode viewMode, placeholder string) tea.Cmd {
	m.mode = mode
	m.status = ""
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m.input.Focus()
}

// snapshot is the current selection in wire form.
func (m Model) snapshot() broadcast.Snapshot {
	name := ""
	if b, ok := bible.BookByID(m.bookID); ok {
		name = b.Name
	}
	return broadcast.Snapshot{
		BookID:    m.bookID,
		Chapter:   m.chapter,
		BookName:  name,
		Version:   m.version,
		Languages: slices.Clone(m.languages),
		FontSize:  m.fontSize,
	}
}

// displayChanged refreshes the reading pane and publishes, without touching
// the reading history.
func (m *Model) displayChanged() tea.Cmd {
	snap := m.snapshot()
	var cmd tea.Cmd
	m.reader, cmd = m.reader.Update(SnapshotMsg{Snapshot: snap})
	return tea.Batch(cmd, m.publish(snap))
}

// selectionChanged is displayChanged plus a reading-history entry.
func (m *Model) selectionChanged(verse int) tea.Cmd {
	cmd := m.displayChanged()
	ctx, prefs, logger := m.ctx, m.deps.Settings, m.logger
	bookID, chapter := m.bookID, m.chapter
	return tea.Batch(cmd, func() tea.Msg {
		if err := prefs.AddToReadingHistory(ctx, bookID, chapter, verse); err != nil {
			logger.Warn("reading history not saved", "error", err)
		}
		return nil
	})
}

// publish reserves the sequence number now, while Update runs, so publishes
// that finish out of order cannot replace a newer selection.
func (m Model) publish(snap broadcast.Snapshot) tea.Cmd {
	ctx, pub := m.ctx, m.deps.Publisher
	seq := pub.NextSeq()
	return func() tea.Msg {
		return publishedMsg{err: pub.PublishSeq(ctx, seq, snap)}
	}
}

// goTo selects a chapter and, past the first verse, scrolls the reading pane
// to verse.
func (m *Model) goTo(bookID string, chapter, verse int) tea.Cmd {
	book, ok := bible.BookByID(bookID)
	if !ok || chapter < 1 || chapter > book.Chapters {
		m.err = errors.Validation(fmt.Sprintf("no such chapter: %s %d", bookID, chapter))
		return nil
	}
	m.bookID, m.chapter = book.ID, chapter
	cmd := m.selectionChanged(max(verse, 1))
	if verse > 1 {
		var scrollCmd tea.Cmd
		m.reader, scrollCmd = m.reader.ScrollTo(scroll.Target{BookID: book.ID, Chapter: chapter, Verse: verse})
		cmd = tea.Batch(cmd, scrollCmd)
	}
	return cmd
}

// openLocation goes to a saved location. A verse past the first is also
// stored as the shared scroll target before the selection is published.
func (m Model) openLocation(bookID string, chapter, verse int) tea.Cmd {
	t := scroll.Target{BookID: bookID, Chapter: chapter, Verse: verse}
	if verse <= 1 {
		return func() tea.Msg { return targetSetMsg{target: t} }
	}
	ctx, targets := m.ctx, m.targets
	return func() tea.Msg {
		return targetSetMsg{target: t, err: targets.SetTarget(ctx, t)}
	}
}

// step moves by one chapter, crossing book boundaries.
func (m *Model) step(delta int) tea.Cmd {
	idx := slices.IndexFunc(m.bookTable, func(b bible.Book) bool { return b.ID == m.bookID })
	if idx < 0 {
		return nil
	}
	chapter := m.chapter + delta
	switch {
	case chapter < 1:
		if idx == 0 {
			return nil
		}
		idx--
		chapter = m.bookTable[idx].Chapters
	case chapter > m.bookTable[idx].Chapters:
		if idx == len(m.bookTable)-1 {
			return nil
		}
		idx++
		chapter = 1
	}
	return m.goTo(m.bookTable[idx].ID, chapter, 1)
}

func (m Model) toggleLanguage(l bible.Language) (tea.Model, tea.Cmd) {
	langs, err := m.deps.Settings.ToggleLanguage(m.ctx, l)
	if err != nil {
		m.err = err
		return m, nil
	}
	if slices.Equal(langs, m.languages) {
		return m, nil
	}
	m.languages = langs
	next := m.displayChanged()
	return m, next
}

func (m *Model) toggleBookmark() {
	verse := m.reader.VerseAt()
	if verse == 0 {
		return
	}
	page := m.reader.Page()
	prefs := m.deps.Settings
	if prefs.IsBookmarked(m.ctx, page.BookID, page.Chapter, verse) {
		if err := prefs.RemoveBookmark(m.ctx, page.BookID, page.Chapter, verse); err != nil {
			m.err = err
			return
		}
		m.status = fmt.Sprintf("Removed bookmark %s %d:%d", bookName(page.BookID), page.Chapter, verse)
		return
	}

	text := ""
	if row := page.RowOf(verse); row >= 0 {
		text = page.Verses[row].Text
	}
	err := prefs.AddBookmark(m.ctx, settings.Bookmark{
		BookID:  page.BookID,
		Chapter: page.Chapter,
		Verse:   verse,
		Text:    text,
	})
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Bookmarked %s %d:%d", bookName(page.BookID), page.Chapter, verse)
}

func (m *Model) refreshBookmarks() {
	marks := m.deps.Settings.Bookmarks(m.ctx)
	items := make([]list.Item, 0, len(marks))
	for _, b := range marks {
		items = append(items, bookmarkItem{mark: b})
	}
	m.bookmarks.SetItems(items)
}

func (m *Model) refreshHistory() {
	entries := m.deps.Settings.ReadingHistory(m.ctx)
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{entry: e})
	}
	m.history.SetItems(items)
}

func (m *Model) startSearch(query string) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelSearch = cancel
	m.searching = true
	m.status = fmt.Sprintf("Searching for %q...", query)

	version, _ := display.PrimaryVersion(m.version, m.languages)
	client := m.deps.Client
	return func() tea.Msg {
		verses, err := client.SearchVerses(ctx, version, query)
		return searchDoneMsg{query: query, verses: verses, err: err}
	}
}

func (m Model) searchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	if m.cancelSearch != nil {
		m.cancelSearch()
		m.cancelSearch = nil
	}
	if errors.Is(msg.err, context.Canceled) {
		m.status = "Search cancelled"
		return m, nil
	}
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}

	items := make([]list.Item, 0, len(msg.verses))
	for _, v := range msg.verses {
		items = append(items, verseItem{verse: v})
	}
	m.results.Title = fmt.Sprintf("Results for %q", msg.query)
	cmd := m.results.SetItems(items)
	m.status = fmt.Sprintf("%d results", len(msg.verses))
	m.input.Blur()
	m.mode = modeResults
	return m, cmd
}

func (m Model) toggleModal() (tea.Model, tea.Cmd) {
	if m.modalFeed != nil {
		m.modalFeed.close()
		m.modalFeed = nil
		m.status = ""
		return m, nil
	}

	f, err := attachFeed(m.ctx, m.deps.Channel, m.logger)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.modalFeed = f
	m.modal = m.newModal()
	m.resize()
	m.status = "Display pane open"
	return m, f.wait()
}

// newModal builds the in-process display surface. It takes part in the
// shared scroll targets like any other surface.
func (m Model) newModal() Surface {
	return NewSurface(m.ctx, m.deps.Client, scroll.NewTracker(m.deps.Slot, m.logger), theme.Get(m.themeID), m.logger)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancelSearch != nil {
		m.cancelSearch()
	}
	if m.modalFeed != nil {
		m.modalFeed.close()
	}
	return m, tea.Quit
}

func (m Model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	h := max(m.height-m.footerHeight(), 3)
	m.reader.SetSize(m.width, h)
	m.modal.SetSize(max(m.width-2, 1), max(h-2, 1))
	m.help.Width = m.width
	for _, l := range []*list.Model{&m.books, &m.bookmarks, &m.history, &m.results} {
		l.SetSize(m.width, h)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	st := m.reader.styles

	var body string
	switch {
	case m.activeList() != nil:
		l := m.activeList()
		body = l.View()
	case m.modalFeed != nil:
		body = st.Frame.Render(m.modal.View())
	default:
		body = m.reader.View()
	}

	var line string
	switch {
	case m.mode == modeJump || m.mode == modeSearch:
		line = m.input.View()
		if m.status != "" {
			line += "  " + st.Muted.Render(m.status)
		}
	case m.err != nil:
		line = st.Error.Render("Error: " + m.err.Error())
	case m.status != "":
		line = st.Status.Render(m.status)
	default:
		line = st.Muted.Render(m.statusLine())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, line, m.help.View(m.keys))
}

func (m Model) statusLine() string {
	langs := make([]string, len(m.languages))
	for i, l := range m.languages {
		langs[i] = string(l)
	}
	backend := "-"
	if m.deps.Channel != nil {
		backend = string(m.deps.Channel.Backend())
	}
	return fmt.Sprintf("%s · %s · %s · %s · sync:%s",
		strings.ToUpper(m.version), strings.Join(langs, "+"), m.fontSize, theme.Get(m.themeID).Name, backend)
}
