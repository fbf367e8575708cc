// Package reference turns a typed jump such as "jn 3:16" or "1 samuel 3"
// into a book, chapter and verse.
package reference

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"bible-tui/internal/bible"
	"bible-tui/internal/scroll"
)

// The book token is lazy so "1 samuel 3" keeps "1 samuel" together.
var pattern = regexp.MustCompile(`^(.+?)\s+(\d+)(?::(\d+))?$`)

// Reference is a resolved location.
type Reference struct {
	BookID  string `json:"bookId"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// NeedsScroll reports whether the jump targets a verse below the first.
func (r Reference) NeedsScroll() bool {
	return r.Verse > 1
}

func (r Reference) String() string {
	return fmt.Sprintf("%s %d:%d", r.BookID, r.Chapter, r.Verse)
}

// Target converts the reference to a scroll target.
func (r Reference) Target() scroll.Target {
	return scroll.Target{BookID: r.BookID, Chapter: r.Chapter, Verse: r.Verse}
}

// Resolve parses text against books. The first book in table order whose
// abbreviation, name, id or Chinese name starts with the token wins. The
// chapter must exist; the verse defaults to 1 and 0 is rejected.
func Resolve(text string, books []bible.Book) (Reference, bool) {
	m := pattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Reference{}, false
	}

	book, ok := matchBook(m[1], books)
	if !ok {
		return Reference{}, false
	}

	chapter, err := strconv.Atoi(m[2])
	if err != nil || chapter < 1 || chapter > book.Chapters {
		return Reference{}, false
	}

	verse := 1
	if m[3] != "" {
		verse, err = strconv.Atoi(m[3])
		if err != nil || verse < 1 {
			return Reference{}, false
		}
	}

	return Reference{BookID: book.ID, Chapter: chapter, Verse: verse}, true
}

func matchBook(token string, books []bible.Book) (bible.Book, bool) {
	fold := cases.Fold()
	token = fold.String(strings.TrimSpace(token))
	if token == "" {
		return bible.Book{}, false
	}

	for _, b := range books {
		for _, candidate := range []string{b.Abbreviation, b.Name, b.ID, b.NameChinese} {
			if candidate != "" && strings.HasPrefix(fold.String(candidate), token) {
				return b, true
			}
		}
	}
	return bible.Book{}, false
}

// TargetSetter records a scroll target. scroll.Tracker implements it.
type TargetSetter interface {
	SetTarget(ctx context.Context, t scroll.Target) error
}

// Navigate resolves text and, when the verse is past the first, registers a
// scroll target. ok is false when the text does not resolve; the caller then
// leaves its selection alone.
func Navigate(ctx context.Context, text string, books []bible.Book, targets TargetSetter) (ref Reference, ok bool, err error) {
	ref, ok = Resolve(text, books)
	if !ok {
		return Reference{}, false, nil
	}
	if ref.NeedsScroll() && targets != nil {
		if err := targets.SetTarget(ctx, ref.Target()); err != nil {
			return ref, true, fmt.Errorf("set scroll target: %w", err)
		}
	}
	return ref, true, nil
}
