package display

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/api"
	"bible-tui/internal/bible"
	"bible-tui/internal/broadcast"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeSource) GetChapter(_ context.Context, version, bookID string, chapter int) []bible.Verse {
	f.mu.Lock()
	f.calls = append(f.calls, version)
	fail := f.fail[version]
	f.mu.Unlock()

	if fail {
		return []bible.Verse{{ID: bible.VerseID(bookID, chapter, 1), BookID: bookID, Chapter: chapter, Verse: 1, Text: api.UnavailableText}}
	}
	var out []bible.Verse
	for v := 1; v <= 3; v++ {
		out = append(out, bible.Verse{
			ID:      bible.VerseID(bookID, chapter, v),
			BookID:  bookID,
			Chapter: chapter,
			Verse:   v,
			Text:    version + " text",
		})
	}
	// The secondary version lacks its last verse.
	if version == "cus" {
		out = out[:2]
	}
	return out
}

func (f *fakeSource) versions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestPrimaryVersion(t *testing.T) {
	en := []bible.Language{bible.English}
	zh := []bible.Language{bible.Chinese}
	both := []bible.Language{bible.English, bible.Chinese}

	tests := []struct {
		name        string
		version     string
		langs       []bible.Language
		wantVersion string
		wantLang    bible.Language
	}{
		{"chinese only with english version", "web", zh, "cus", bible.Chinese},
		{"english only with chinese version", "cns", en, "kjv", bible.English},
		{"matching language kept", "basicenglish", en, "basicenglish", bible.English},
		{"dual keeps selection", "cns", both, "cns", bible.Chinese},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, l := PrimaryVersion(tt.version, tt.langs)
			assert.Equal(t, tt.wantVersion, v)
			assert.Equal(t, tt.wantLang, l)
		})
	}
}

func TestLoad_SingleLanguage(t *testing.T) {
	src := &fakeSource{}
	p := Load(context.Background(), src, broadcast.Snapshot{
		BookID: "JHN", Chapter: 3, Version: "kjv", Languages: []bible.Language{bible.English},
	})

	assert.Equal(t, []string{"kjv"}, src.versions())
	assert.False(t, p.Dual())
	assert.Equal(t, bible.DefaultFontSize, p.FontSize)
	rows := p.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Verse: 1, Ref: "3:1", English: "kjv text"}, rows[0])
}

func TestLoad_ChineseOnlyShowsChineseColumn(t *testing.T) {
	src := &fakeSource{}
	p := Load(context.Background(), src, broadcast.Snapshot{
		BookID: "JHN", Chapter: 3, Version: "kjv", Languages: []bible.Language{bible.Chinese},
	})

	assert.Equal(t, "cus", p.Version)
	rows := p.Rows()
	require.NotEmpty(t, rows)
	assert.Equal(t, "cus text", rows[0].Chinese)
	assert.Empty(t, rows[0].English)
}

func TestLoad_DualLanguage(t *testing.T) {
	src := &fakeSource{}
	p := Load(context.Background(), src, broadcast.Snapshot{
		BookID: "JHN", Chapter: 3, Version: "kjv", Languages: []bible.Language{bible.English, bible.Chinese},
	})

	assert.ElementsMatch(t, []string{"kjv", "cus"}, src.versions())
	require.True(t, p.Dual())
	rows := p.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Verse: 1, Ref: "3:1", English: "kjv text", Chinese: "cus text"}, rows[0])
	assert.Equal(t, "kjv text", rows[2].Chinese, "missing translation falls back to the primary text")
}

func TestLoad_DualWithChinesePrimary(t *testing.T) {
	src := &fakeSource{}
	p := Load(context.Background(), src, broadcast.Snapshot{
		BookID: "PSA", Chapter: 23, Version: "cus", Languages: []bible.Language{bible.Chinese, bible.English},
	})

	assert.ElementsMatch(t, []string{"cus", "kjv"}, src.versions())
	rows := p.Rows()
	require.NotEmpty(t, rows)
	assert.Equal(t, "cus text", rows[0].Chinese)
	assert.Equal(t, "kjv text", rows[0].English)
}

func TestLoad_FailedSecondaryLeavesPrimary(t *testing.T) {
	src := &fakeSource{fail: map[string]bool{"cus": true}}
	p := Load(context.Background(), src, broadcast.Snapshot{
		BookID: "JHN", Chapter: 3, Version: "kjv", Languages: []bible.Language{bible.English, bible.Chinese},
	})

	assert.False(t, p.Unavailable)
	assert.Empty(t, p.Translations)
	assert.Len(t, p.Verses, 3)
}

func TestLoad_FailedPrimary(t *testing.T) {
	src := &fakeSource{fail: map[string]bool{"kjv": true}}
	p := Load(context.Background(), src, broadcast.Snapshot{BookID: "JHN", Chapter: 3, Version: "kjv"})

	assert.True(t, p.Unavailable)
	require.Len(t, p.Rows(), 1)
}

func TestLoad_IncompleteSnapshotFetchesNothing(t *testing.T) {
	src := &fakeSource{}
	p := Load(context.Background(), src, broadcast.Snapshot{Version: "kjv"})

	assert.Empty(t, src.versions())
	assert.Empty(t, p.Verses)
}

func TestRowOf(t *testing.T) {
	p := Load(context.Background(), &fakeSource{}, broadcast.Snapshot{BookID: "JHN", Chapter: 3})
	assert.Equal(t, 1, p.RowOf(2))
	assert.Equal(t, -1, p.RowOf(40))
}

func TestLoader_DiscardsStaleGenerations(t *testing.T) {
	l := NewLoader(&fakeSource{})
	ctx := context.Background()

	first := l.Begin()
	second := l.Begin()

	stale := l.Load(ctx, first, broadcast.Snapshot{BookID: "GEN", Chapter: 1})
	fresh := l.Load(ctx, second, broadcast.Snapshot{BookID: "GEN", Chapter: 2})

	assert.False(t, l.Current(stale))
	assert.True(t, l.Current(fresh))
}
