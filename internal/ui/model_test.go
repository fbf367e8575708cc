package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/bible"
	"bible-tui/internal/scroll"
)

// pump runs cmd and feeds every resulting message back into m until nothing
// is left. Only use it on flows that schedule no ticks or blocking waits.
func pump(t *testing.T, m tea.Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "message loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m.(Model)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var next tea.Model = m
	for _, k := range keys {
		next, cmd = next.Update(keyMsg(k))
	}
	return next.(Model), cmd
}

func started(t *testing.T, e env) Model {
	t.Helper()
	m := NewModel(e.deps())
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return pump(t, sized, m.Init())
}

func TestModel_PublishesOnStart(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	snap, ok := e.publisher.Last()
	require.True(t, ok)
	assert.Equal(t, "GEN", snap.BookID)
	assert.Equal(t, 1, snap.Chapter)
	assert.Equal(t, "Genesis", snap.BookName)
	assert.Equal(t, bible.DefaultVersionID, snap.Version)
	assert.Equal(t, "GEN", m.reader.Page().BookID)
}

func TestModel_RestoresLastRead(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.settings.AddToReadingHistory(context.Background(), "ROM", 8, 1))

	m := started(t, e)

	assert.Equal(t, "ROM", m.bookID)
	assert.Equal(t, 8, m.chapter)
}

func TestModel_StepCrossesBooks(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.settings.AddToReadingHistory(context.Background(), "GEN", 50, 1))
	m := started(t, e)

	m, cmd := press(t, m, "n")
	m = pump(t, m, cmd)
	assert.Equal(t, "EXO", m.bookID)
	assert.Equal(t, 1, m.chapter)

	m, cmd = press(t, m, "p")
	m = pump(t, m, cmd)
	assert.Equal(t, "GEN", m.bookID)
	assert.Equal(t, 50, m.chapter)

	last, ok := e.settings.LastRead(context.Background())
	require.True(t, ok)
	assert.Equal(t, "GEN", last.BookID)
	assert.Equal(t, 50, last.Chapter)
}

func TestModel_PrevAtStartOfCanonStays(t *testing.T) {
	m := started(t, newEnv(t))

	m, cmd := press(t, m, "p")

	assert.Nil(t, cmd)
	assert.Equal(t, "GEN", m.bookID)
	assert.Equal(t, 1, m.chapter)
}

func TestModel_ToggleLanguagePersistsAndPublishes(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	m, cmd := press(t, m, "z")
	m = pump(t, m, cmd)

	want := []bible.Language{bible.English, bible.Chinese}
	assert.Equal(t, want, m.languages)
	assert.Equal(t, want, e.settings.Languages(context.Background()))
	snap, _ := e.publisher.Last()
	assert.Equal(t, want, snap.Languages)

	m, cmd = press(t, m, "z")
	m = pump(t, m, cmd)
	assert.Equal(t, []bible.Language{bible.English}, m.languages)

	m, cmd = press(t, m, "e")
	assert.Nil(t, cmd)
	assert.Equal(t, []bible.Language{bible.English}, m.languages, "the last language stays selected")
}

func TestModel_FontSizeAndVersionPublish(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	m, cmd := press(t, m, "f")
	m = pump(t, m, cmd)
	m, cmd = press(t, m, "v")
	pump(t, m, cmd)

	snap, _ := e.publisher.Last()
	assert.Equal(t, bible.FontLarge, snap.FontSize)
	assert.Equal(t, bible.NextVersion(bible.DefaultVersionID), snap.Version)
	assert.Equal(t, bible.FontLarge, e.settings.FontSize(context.Background()))
}

func TestModel_JumpStoresTargetAndNavigates(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	m, _ = press(t, m, "/")
	require.Equal(t, modeJump, m.mode)
	m.input.SetValue("mat 1:12")

	m, cmd := press(t, m, "enter")
	nav, ok := run(cmd).(navigatedMsg)
	require.True(t, ok)
	require.True(t, nav.ok)

	target, present, err := e.slot.Peek(context.Background())
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, scroll.Target{BookID: "MAT", Chapter: 1, Verse: 12}, target)

	next, _ := m.Update(nav)
	m = next.(Model)
	assert.Equal(t, modeReader, m.mode)
	assert.Equal(t, "MAT", m.bookID)
	assert.Equal(t, 1, m.chapter)
	assert.Empty(t, m.input.Value())
}

func TestModel_JumpWithoutMatchKeepsSelection(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	m, _ = press(t, m, "/")
	m.input.SetValue("zzz 1")
	m, cmd := press(t, m, "enter")
	m = pump(t, m, cmd)

	assert.Equal(t, modeJump, m.mode)
	assert.Equal(t, "GEN", m.bookID)
	assert.Contains(t, m.status, "No match")
	_, present, err := e.slot.Peek(context.Background())
	require.NoError(t, err)
	assert.False(t, present)
}

func TestModel_SearchAndOpenResult(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	m, _ = press(t, m, "s")
	m.input.SetValue("kjv EXO 2:3")
	m, cmd := press(t, m, "enter")
	require.True(t, m.searching)

	done, ok := run(cmd).(searchDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	require.Len(t, done.verses, 1)

	next, _ := m.Update(done)
	m = next.(Model)
	require.Equal(t, modeResults, m.mode)

	m, cmd = press(t, m, "enter")
	set, ok := run(cmd).(targetSetMsg)
	require.True(t, ok)
	assert.Equal(t, scroll.Target{BookID: "EXO", Chapter: 2, Verse: 3}, set.target)

	next, _ = m.Update(set)
	m = next.(Model)
	assert.Equal(t, "EXO", m.bookID)
	assert.Equal(t, 2, m.chapter)
	_, present, err := e.slot.Peek(context.Background())
	require.NoError(t, err)
	assert.True(t, present)
}

func TestModel_BookmarkToggle(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)
	ctx := context.Background()

	m, _ = press(t, m, "m")
	assert.True(t, e.settings.IsBookmarked(ctx, "GEN", 1, 1))
	marks := e.settings.Bookmarks(ctx)
	require.Len(t, marks, 1)
	assert.Equal(t, "kjv GEN 1:1", marks[0].Text)

	m, _ = press(t, m, "m")
	assert.False(t, e.settings.IsBookmarked(ctx, "GEN", 1, 1))
	assert.Contains(t, m.status, "Removed bookmark")
}

func TestModel_BookPicker(t *testing.T) {
	m := started(t, newEnv(t))

	m, _ = press(t, m, "b")
	require.Equal(t, modeBooks, m.mode)
	m.books.Select(42)

	m, cmd := press(t, m, "enter")
	m = pump(t, m, cmd)
	assert.Equal(t, modeReader, m.mode)
	assert.Equal(t, "JHN", m.bookID)
	assert.Equal(t, 1, m.chapter)
}

func TestModel_ModalMirrorsController(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	m, cmd := press(t, m, "o")
	require.NotNil(t, m.modalFeed)

	got := make(chan tea.Msg, 1)
	go func() { got <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-got:
	case <-time.After(3 * time.Second):
		t.Fatal("modal never received the current snapshot")
	}
	fm, ok := msg.(feedMsg)
	require.True(t, ok)
	assert.Equal(t, "GEN", fm.snapshot.BookID)

	next, loadCmd := m.Update(fm)
	m = next.(Model)
	// loadCmd batches the page load with the next wait; run only the load.
	batch, ok := run(loadCmd).(tea.BatchMsg)
	require.True(t, ok)
	next, _ = m.Update(batch[0]())
	m = next.(Model)
	assert.Equal(t, "GEN", m.modal.Page().BookID)
	assert.Contains(t, m.View(), "Genesis 1")

	m, _ = press(t, m, "o")
	assert.Nil(t, m.modalFeed)
}

func TestModel_StartClearsLeftoverTarget(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.slot.Set(ctx, scroll.Target{BookID: "JHN", Chapter: 3, Verse: 16}))

	m := NewModel(e.deps())
	pump(t, m, m.Init())

	_, present, err := e.slot.Peek(ctx)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestModel_PublishesFinishingOutOfOrderKeepNewest(t *testing.T) {
	e := newEnv(t)
	m := started(t, e)

	m, first := press(t, m, "n")
	m, second := press(t, m, "n")
	require.Equal(t, 3, m.chapter)

	// Run the later selection's commands before the earlier one's.
	m = pump(t, m, second)
	pump(t, m, first)

	snap, ok := e.publisher.Last()
	require.True(t, ok)
	assert.Equal(t, "GEN", snap.BookID)
	assert.Equal(t, 3, snap.Chapter)
}
