package api

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/bible"
	"bible-tui/internal/errors"
	"bible-tui/internal/logger"
)

type fakeSource struct {
	calls atomic.Int32
	fn    func(version, bookID string, chapter int) ([]bible.Verse, error)
}

func (f *fakeSource) FetchChapter(_ context.Context, version, bookID string, chapter int) ([]bible.Verse, error) {
	f.calls.Add(1)
	return f.fn(version, bookID, chapter)
}

func chapterOf(bookID string, chapter int, texts ...string) []bible.Verse {
	out := make([]bible.Verse, len(texts))
	for i, text := range texts {
		out[i] = bible.Verse{ID: bible.VerseID(bookID, chapter, i+1), BookID: bookID, Chapter: chapter, Verse: i + 1, Text: text}
	}
	return out
}

func newTestClient(src Source) *Client {
	return NewClient(src, WithLogger(logger.Discard()))
}

func TestClient_GetChapterMemoizes(t *testing.T) {
	src := &fakeSource{fn: func(_, bookID string, chapter int) ([]bible.Verse, error) {
		return chapterOf(bookID, chapter, "In the beginning"), nil
	}}
	c := newTestClient(src)
	ctx := context.Background()

	first := c.GetChapter(ctx, "kjv", "GEN", 1)
	second := c.GetChapter(ctx, "kjv", "GEN", 1)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.True(t, c.IsCached("kjv", "GEN", 1))
	assert.False(t, c.IsCached("cus", "GEN", 1))
}

func TestClient_GetChapterSentinelNotCached(t *testing.T) {
	fail := true
	src := &fakeSource{fn: func(_, bookID string, chapter int) ([]bible.Verse, error) {
		if fail {
			return nil, errors.Unavailable("getbible request failed", fmt.Errorf("offline"))
		}
		return chapterOf(bookID, chapter, "ok"), nil
	}}
	c := newTestClient(src)
	ctx := context.Background()

	verses := c.GetChapter(ctx, "kjv", "JHN", 3)
	require.Len(t, verses, 1)
	assert.Equal(t, UnavailableText, verses[0].Text)
	assert.Equal(t, "JHN-3-1", verses[0].ID)
	assert.True(t, IsUnavailable(verses))

	fail = false
	verses = c.GetChapter(ctx, "kjv", "JHN", 3)
	assert.False(t, IsUnavailable(verses))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestClient_GetVerse(t *testing.T) {
	src := &fakeSource{fn: func(_, bookID string, chapter int) ([]bible.Verse, error) {
		return chapterOf(bookID, chapter, "a", "b", "c"), nil
	}}
	c := newTestClient(src)

	v, ok := c.GetVerse(context.Background(), "kjv", "PSA", 23, 2)
	require.True(t, ok)
	assert.Equal(t, "b", v.Text)

	_, ok = c.GetVerse(context.Background(), "kjv", "PSA", 23, 9)
	assert.False(t, ok)
}

func TestClient_GetBooks(t *testing.T) {
	c := newTestClient(&fakeSource{})
	books := c.GetBooks(context.Background(), "kjv")
	assert.Len(t, books, 66)
	assert.Equal(t, "GEN", books[0].ID)
}

func TestClient_SearchStopsAtCap(t *testing.T) {
	src := &fakeSource{fn: func(_, bookID string, chapter int) ([]bible.Verse, error) {
		return chapterOf(bookID, chapter, "LOVE one", "love two", "hate", "Loved three", "love four", "love five"), nil
	}}
	c := newTestClient(src)

	results, err := c.SearchVerses(context.Background(), "kjv", "love")
	require.NoError(t, err)

	assert.Len(t, results, MaxSearchResults)
	assert.Equal(t, int32(4), src.calls.Load(), "scan stops once the cap is reached")
	assert.Equal(t, "GEN-1-1", results[0].ID)
	assert.Equal(t, "GEN-4-6", results[19].ID)
}

func TestClient_SearchSkipsSentinel(t *testing.T) {
	src := &fakeSource{fn: func(_, bookID string, chapter int) ([]bible.Verse, error) {
		if bookID == "GEN" && chapter == 1 {
			return nil, fmt.Errorf("offline")
		}
		if bookID == "REV" && chapter == 22 {
			return chapterOf(bookID, chapter, "unable to stand"), nil
		}
		return nil, nil
	}}
	c := newTestClient(src)

	results, err := c.SearchVerses(context.Background(), "kjv", "Unable")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "REV-22-1", results[0].ID)
}

func TestClient_SearchCancelled(t *testing.T) {
	src := &fakeSource{fn: func(_, bookID string, chapter int) ([]bible.Verse, error) {
		return nil, nil
	}}
	c := newTestClient(src)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchVerses(ctx, "kjv", "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestClient_SearchBlankQuery(t *testing.T) {
	results, err := newTestClient(&fakeSource{}).SearchVerses(context.Background(), "kjv", "  ")
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_ListBiblesWithoutLister(t *testing.T) {
	_, err := newTestClient(&fakeSource{}).ListBibles(context.Background(), "en")
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestClient_Clear(t *testing.T) {
	src := &fakeSource{fn: func(_, bookID string, chapter int) ([]bible.Verse, error) {
		return chapterOf(bookID, chapter, "x"), nil
	}}
	c := newTestClient(src)
	c.GetChapter(context.Background(), "kjv", "GEN", 1)

	require.NoError(t, c.Shutdown())
	assert.False(t, c.IsCached("kjv", "GEN", 1))
}
