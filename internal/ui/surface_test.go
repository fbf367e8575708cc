package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/bible"
	"bible-tui/internal/broadcast"
	"bible-tui/internal/logger"
	"bible-tui/internal/scroll"
)

func load(t *testing.T, s Surface, snap broadcast.Snapshot) (Surface, pageLoadedMsg) {
	t.Helper()
	s, cmd := s.Update(SnapshotMsg{Snapshot: snap})
	require.NotNil(t, cmd)
	msg, ok := run(cmd).(pageLoadedMsg)
	require.True(t, ok)
	return s, msg
}

func TestSurface_WaitsForCompleteSnapshot(t *testing.T) {
	s := newTestSurface(t, nil)

	s, cmd := s.Update(SnapshotMsg{Snapshot: broadcast.Snapshot{Version: "kjv"}})

	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "Waiting for the controller")
}

func TestSurface_RendersLoadedChapter(t *testing.T) {
	s := newTestSurface(t, nil)
	s, msg := load(t, s, broadcast.Snapshot{BookID: "JHN", Chapter: 3, BookName: "John", Version: "kjv"})
	assert.True(t, s.Loading())

	s, _ = s.Update(msg)

	assert.False(t, s.Loading())
	view := s.View()
	assert.Contains(t, view, "John 3")
	assert.Contains(t, view, "kjv JHN 3:1")
	assert.Equal(t, "JHN", s.Page().BookID)
}

func TestSurface_DiscardsStalePage(t *testing.T) {
	s := newTestSurface(t, nil)
	s, stale := load(t, s, broadcast.Snapshot{BookID: "GEN", Chapter: 1})
	s, fresh := load(t, s, broadcast.Snapshot{BookID: "GEN", Chapter: 2})

	s, _ = s.Update(fresh)
	s, _ = s.Update(stale)

	assert.Equal(t, 2, s.Page().Chapter)
}

func TestSurface_FontSizeChangeDoesNotRefetch(t *testing.T) {
	s := newTestSurface(t, nil)
	snap := broadcast.Snapshot{BookID: "GEN", Chapter: 1, FontSize: bible.FontSmall}
	s, msg := load(t, s, snap)
	s, _ = s.Update(msg)

	snap.FontSize = bible.FontLarge
	s, cmd := s.Update(SnapshotMsg{Snapshot: snap})

	assert.Nil(t, cmd)
	assert.Equal(t, bible.FontLarge, s.Page().FontSize)
}

func TestSurface_ConsumesSharedTargetOnce(t *testing.T) {
	ctx := context.Background()
	slot := scroll.NewStorageSlot(testStore(t))
	require.NoError(t, slot.Set(ctx, scroll.Target{BookID: "MAT", Chapter: 1, Verse: 4}))
	s := newTestSurface(t, scroll.NewTracker(slot, logger.Discard()))

	snap := broadcast.Snapshot{BookID: "MAT", Chapter: 1}
	s, msg := load(t, s, snap)
	s, cmd := s.Update(msg)

	consumed, ok := run(cmd).(targetConsumedMsg)
	require.True(t, ok)
	assert.Equal(t, 4, consumed.target.Verse)

	_, present, err := slot.Peek(ctx)
	require.NoError(t, err)
	assert.False(t, present, "target is deleted once consumed")

	// Rendering the same chapter again finds nothing to do.
	_, cmd = s.Update(SnapshotMsg{Snapshot: snap})
	assert.Nil(t, run(cmd))
}

func TestSurface_TargetForOtherChapterStays(t *testing.T) {
	ctx := context.Background()
	slot := scroll.NewStorageSlot(testStore(t))
	require.NoError(t, slot.Set(ctx, scroll.Target{BookID: "MAT", Chapter: 2, Verse: 4}))
	s := newTestSurface(t, scroll.NewTracker(slot, logger.Discard()))

	s, msg := load(t, s, broadcast.Snapshot{BookID: "MAT", Chapter: 1})
	_, cmd := s.Update(msg)

	assert.Nil(t, run(cmd))
	_, present, err := slot.Peek(ctx)
	require.NoError(t, err)
	assert.True(t, present)
}

func TestSurface_ScrollHighlightsThenClears(t *testing.T) {
	s := newTestSurface(t, nil)
	s.SetSize(80, 4)
	s, msg := load(t, s, broadcast.Snapshot{BookID: "PSA", Chapter: 23})
	s, _ = s.Update(msg)

	s, cmd := s.Update(scrollMsg{surface: s.id, gen: s.page.Generation, verse: 4})
	require.NotNil(t, cmd)
	assert.Equal(t, 4, s.highlight)
	assert.Equal(t, 4, s.VerseAt())

	// A clear for an older highlight is ignored.
	s, _ = s.Update(clearHighlightMsg{surface: s.id, seq: s.highlightSeq - 1})
	assert.Equal(t, 4, s.highlight)

	s, _ = s.Update(clearHighlightMsg{surface: s.id, seq: s.highlightSeq})
	assert.Zero(t, s.highlight)
}

func TestSurface_ScrollForOldGenerationIgnored(t *testing.T) {
	s := newTestSurface(t, nil)
	s, msg := load(t, s, broadcast.Snapshot{BookID: "PSA", Chapter: 23})
	s, _ = s.Update(msg)

	s, cmd := s.Update(scrollMsg{surface: s.id, gen: s.page.Generation + 1, verse: 4})
	assert.Nil(t, cmd)
	assert.Zero(t, s.highlight)
}

func TestSurface_LocalScrollWaitsForChapter(t *testing.T) {
	s := newTestSurface(t, nil)
	s, msg := load(t, s, broadcast.Snapshot{BookID: "ROM", Chapter: 8})

	s, cmd := s.ScrollTo(scroll.Target{BookID: "ROM", Chapter: 8, Verse: 3})
	assert.Nil(t, cmd, "chapter not on screen yet")

	s, cmd = s.Update(msg)
	assert.NotNil(t, cmd, "scroll scheduled once the chapter renders")
	assert.Equal(t, scroll.Target{}, s.pending)
}

func TestSurface_IgnoresOtherSurfacesMessages(t *testing.T) {
	a := newTestSurface(t, nil)
	b := newTestSurface(t, nil)
	a, msg := load(t, a, broadcast.Snapshot{BookID: "GEN", Chapter: 1})

	b, _ = b.Update(msg)
	assert.Empty(t, b.Page().BookID)
}
