// Package api is the scripture client: chapter sources, the session memo and
// keyword search.
package api

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/time/rate"

	"bible-tui/internal/bible"
	"bible-tui/internal/cache"
	"bible-tui/internal/errors"
)

// UnavailableText is the synthetic verse returned when a chapter cannot be
// loaded.
const UnavailableText = "[Unable to load chapter. Please check your internet connection or try a different version.]"

const unavailablePrefix = "[Unable to load chapter"

// MaxSearchResults caps SearchVerses.
const MaxSearchResults = 20

// BibleLister lists upstream bibles. APIBible implements it.
type BibleLister interface {
	ListBibles(ctx context.Context, language string) ([]BibleInfo, error)
}

// Client serves chapters from a Source through the session memo. It never
// fails a chapter load; failures become a single sentinel verse.
type Client struct {
	source   Source
	lister   BibleLister
	chapters *cache.Chapters
	limiter  *rate.Limiter
	logger   *slog.Logger

	booksMu sync.Mutex
	books   map[string][]bible.Book
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithLister sets the bible lister used by ListBibles.
func WithLister(l BibleLister) Option {
	return func(c *Client) { c.lister = l }
}

// WithLimiter throttles uncached fetches made during a search. nil disables
// throttling.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithCache shares an existing memo.
func WithCache(ch *cache.Chapters) Option {
	return func(c *Client) { c.chapters = ch }
}

// NewClient creates a client over src.
func NewClient(src Source, opts ...Option) *Client {
	c := &Client{
		source:   src,
		chapters: cache.New(),
		logger:   slog.Default(),
		books:    make(map[string][]bible.Book),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetBooks returns the bundled book table, memoized per version.
func (c *Client) GetBooks(_ context.Context, version string) []bible.Book {
	c.booksMu.Lock()
	defer c.booksMu.Unlock()
	if books, ok := c.books[version]; ok {
		return books
	}
	books := bible.Books()
	c.books[version] = books
	return books
}

// GetChapter returns the verses of one chapter. On failure it returns the
// sentinel verse, which is never cached.
func (c *Client) GetChapter(ctx context.Context, version, bookID string, chapter int) []bible.Verse {
	key := cache.Key{Version: version, BookID: bookID, Chapter: chapter}
	verses, err := c.chapters.Load(key, func() ([]bible.Verse, error) {
		return c.source.FetchChapter(ctx, version, bookID, chapter)
	})
	if err != nil {
		c.logger.Warn("chapter fetch failed",
			"version", version,
			"book_id", bookID,
			"chapter", chapter,
			"code", errors.CodeOf(err),
			"error", err,
		)
		return unavailable(bookID, chapter)
	}
	return verses
}

// IsCached reports whether a chapter is already memoized.
func (c *Client) IsCached(version, bookID string, chapter int) bool {
	_, ok := c.chapters.Get(cache.Key{Version: version, BookID: bookID, Chapter: chapter})
	return ok
}

// GetVerse returns one verse of a chapter.
func (c *Client) GetVerse(ctx context.Context, version, bookID string, chapter, verse int) (bible.Verse, bool) {
	verses := c.GetChapter(ctx, version, bookID, chapter)
	if IsUnavailable(verses) {
		return bible.Verse{}, false
	}
	for _, v := range verses {
		if v.Verse == verse {
			return v, true
		}
	}
	return bible.Verse{}, false
}

// SearchVerses scans the canon in order for verses containing query,
// case-insensitively, and stops after MaxSearchResults matches.
func (c *Client) SearchVerses(ctx context.Context, version, query string) ([]bible.Verse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	fold := cases.Fold()
	needle := fold.String(query)

	var results []bible.Verse
	for _, book := range c.GetBooks(ctx, version) {
		for ch := 1; ch <= book.Chapters; ch++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			if c.limiter != nil && !c.IsCached(version, book.ID, ch) {
				if err := c.limiter.Wait(ctx); err != nil {
					return results, err
				}
			}

			verses := c.GetChapter(ctx, version, book.ID, ch)
			if IsUnavailable(verses) {
				continue
			}
			for _, v := range verses {
				if strings.Contains(fold.String(v.Text), needle) {
					results = append(results, v)
					if len(results) >= MaxSearchResults {
						return results, nil
					}
				}
			}
		}
	}
	return results, nil
}

// ListBibles lists upstream bibles for a language.
func (c *Client) ListBibles(ctx context.Context, language string) ([]BibleInfo, error) {
	if c.lister == nil {
		return nil, errors.Configuration("no bible lister configured")
	}
	return c.lister.ListBibles(ctx, language)
}

// Clear drops the session memo.
func (c *Client) Clear() {
	c.chapters.Clear()
	c.booksMu.Lock()
	c.books = make(map[string][]bible.Book)
	c.booksMu.Unlock()
}

// Shutdown clears the memo at session end.
func (c *Client) Shutdown() error {
	c.Clear()
	return nil
}

// IsUnavailable reports whether verses is the sentinel returned for a failed
// chapter load.
func IsUnavailable(verses []bible.Verse) bool {
	return len(verses) == 1 && strings.HasPrefix(verses[0].Text, unavailablePrefix)
}

func unavailable(bookID string, chapter int) []bible.Verse {
	return []bible.Verse{{
		ID:      bible.VerseID(bookID, chapter, 1),
		BookID:  bookID,
		Chapter: chapter,
		Verse:   1,
		Text:    UnavailableText,
	}}
}
