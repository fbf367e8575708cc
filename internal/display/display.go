// Package display turns a selection snapshot into the page a surface shows.
package display

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"bible-tui/internal/api"
	"bible-tui/internal/bible"
	"bible-tui/internal/broadcast"
)

// ChapterSource loads chapter text. api.Client implements it.
type ChapterSource interface {
	GetChapter(ctx context.Context, version, bookID string, chapter int) []bible.Verse
}

// Page is one loaded chapter in one or two languages.
type Page struct {
	BookID    string
	BookName  string
	Chapter   int
	Version   string
	Primary   bible.Language
	Languages []bible.Language
	FontSize  bible.FontSize

	Verses []bible.Verse
	// Translations maps verse IDs to the secondary language's text.
	Translations map[string]string
	Unavailable  bool

	Generation uint64
}

// Row is one verse laid out for rendering. Single-language pages fill only
// the column of the shown language.
type Row struct {
	Verse   int
	Ref     string
	English string
	Chinese string
}

// Dual reports whether both languages are shown.
func (p Page) Dual() bool {
	return bible.HasLanguage(p.Languages, bible.English) && bible.HasLanguage(p.Languages, bible.Chinese)
}

// Shows reports which language a single-language page displays.
func (p Page) Shows() bible.Language {
	if bible.HasLanguage(p.Languages, bible.Chinese) && !bible.HasLanguage(p.Languages, bible.English) {
		return bible.Chinese
	}
	return bible.English
}

// Rows lays out the verses. The secondary text falls back to the primary
// when a verse is missing from the translation.
func (p Page) Rows() []Row {
	rows := make([]Row, 0, len(p.Verses))
	for _, v := range p.Verses {
		other, ok := p.Translations[v.ID]
		if !ok {
			other = v.Text
		}
		english, chinese := v.Text, other
		if p.Primary == bible.Chinese {
			english, chinese = other, v.Text
		}

		row := Row{Verse: v.Verse, Ref: fmt.Sprintf("%d:%d", v.Chapter, v.Verse)}
		switch {
		case p.Dual():
			row.English, row.Chinese = english, chinese
		case p.Shows() == bible.Chinese:
			row.Chinese = chinese
		default:
			row.English = english
		}
		rows = append(rows, row)
	}
	return rows
}

// RowOf returns the index of verse in Rows, or -1.
func (p Page) RowOf(verse int) int {
	return slices.IndexFunc(p.Verses, func(v bible.Verse) bool { return v.Verse == verse })
}

// PrimaryVersion picks the version to load first. A version in a language
// that is not selected is swapped for the selected language's default.
func PrimaryVersion(version string, langs []bible.Language) (string, bible.Language) {
	lang := bible.LanguageOf(version)
	hasEN := bible.HasLanguage(langs, bible.English)
	hasZH := bible.HasLanguage(langs, bible.Chinese)
	switch {
	case hasZH && !hasEN && lang == bible.English:
		return bible.DefaultVersion(bible.Chinese), bible.Chinese
	case hasEN && !hasZH && lang == bible.Chinese:
		return bible.DefaultVersion(bible.English), bible.English
	}
	return version, lang
}

// Load fetches the page for a complete snapshot. In dual mode the other
// language's default version is fetched alongside; if it fails the page
// simply has no translations.
func Load(ctx context.Context, src ChapterSource, snap broadcast.Snapshot) Page {
	langs := bible.NormalizeLanguages(snap.Languages)
	version := snap.Version
	if version == "" {
		version = bible.DefaultVersionID
	}
	primaryVersion, primary := PrimaryVersion(version, langs)

	p := Page{
		BookID:       snap.BookID,
		BookName:     snap.BookName,
		Chapter:      snap.Chapter,
		Version:      primaryVersion,
		Primary:      primary,
		Languages:    langs,
		FontSize:     snap.FontSize,
		Translations: map[string]string{},
	}
	if p.FontSize == "" {
		p.FontSize = bible.DefaultFontSize
	}
	if !snap.Complete() {
		return p
	}

	var secondary []bible.Verse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.Verses = src.GetChapter(gctx, primaryVersion, snap.BookID, snap.Chapter)
		return nil
	})
	if p.Dual() {
		g.Go(func() error {
			secondary = src.GetChapter(gctx, bible.DefaultVersion(primary.Other()), snap.BookID, snap.Chapter)
			return nil
		})
	}
	_ = g.Wait()

	p.Unavailable = api.IsUnavailable(p.Verses)
	if !api.IsUnavailable(secondary) {
		for _, v := range secondary {
			p.Translations[v.ID] = v.Text
		}
	}
	return p
}

// Loader stamps each load with a generation so a slow, stale result can be
// recognised and dropped.
type Loader struct {
	src ChapterSource
	gen atomic.Uint64
}

// NewLoader creates a loader over src.
func NewLoader(src ChapterSource) *Loader {
	return &Loader{src: src}
}

// Begin starts a new generation, making every earlier one stale.
func (l *Loader) Begin() uint64 {
	return l.gen.Add(1)
}

// Load fetches snap under generation gen.
func (l *Loader) Load(ctx context.Context, gen uint64, snap broadcast.Snapshot) Page {
	p := Load(ctx, l.src, snap)
	p.Generation = gen
	return p
}

// Current reports whether p belongs to the latest generation.
func (l *Loader) Current(p Page) bool {
	return p.Generation == l.gen.Load()
}
