package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"bible-tui/internal/bible"
	"bible-tui/internal/settings"
)

type bookItem struct{ book bible.Book }

func (i bookItem) Title() string {
	if i.book.NameChinese != "" {
		return i.book.Name + "  " + i.book.NameChinese
	}
	return i.book.Name
}

func (i bookItem) Description() string {
	return fmt.Sprintf("%s · %d chapters", i.book.Abbreviation, i.book.Chapters)
}

func (i bookItem) FilterValue() string {
	return strings.Join([]string{i.book.Name, i.book.Abbreviation, i.book.ID, i.book.NameChinese}, " ")
}

// location is anything the reader can open.
type location interface {
	list.Item
	Location() (bookID string, chapter, verse int)
}

type bookmarkItem struct{ mark settings.Bookmark }

func (i bookmarkItem) Title() string {
	return fmt.Sprintf("%s %d:%d", bookName(i.mark.BookID), i.mark.Chapter, i.mark.Verse)
}

func (i bookmarkItem) Description() string { return truncate(i.mark.Text, 72) }

func (i bookmarkItem) FilterValue() string { return i.Title() + " " + i.mark.Text }

func (i bookmarkItem) Location() (string, int, int) {
	return i.mark.BookID, i.mark.Chapter, i.mark.Verse
}

type historyItem struct{ entry settings.HistoryEntry }

func (i historyItem) Title() string {
	if i.entry.Verse > 1 {
		return fmt.Sprintf("%s %d:%d", bookName(i.entry.BookID), i.entry.Chapter, i.entry.Verse)
	}
	return fmt.Sprintf("%s %d", bookName(i.entry.BookID), i.entry.Chapter)
}

func (i historyItem) Description() string {
	if i.entry.Timestamp == 0 {
		return ""
	}
	return time.UnixMilli(i.entry.Timestamp).Format("2006-01-02 15:04")
}

func (i historyItem) FilterValue() string { return i.Title() }

func (i historyItem) Location() (string, int, int) {
	v := i.entry.Verse
	if v < 1 {
		v = 1
	}
	return i.entry.BookID, i.entry.Chapter, v
}

type verseItem struct{ verse bible.Verse }

func (i verseItem) Title() string {
	return fmt.Sprintf("%s %d:%d", bookName(i.verse.BookID), i.verse.Chapter, i.verse.Verse)
}

func (i verseItem) Description() string { return truncate(i.verse.Text, 72) }

func (i verseItem) FilterValue() string { return i.verse.Text }

func (i verseItem) Location() (string, int, int) {
	return i.verse.BookID, i.verse.Chapter, i.verse.Verse
}

func bookName(id string) string {
	if b, ok := bible.BookByID(id); ok {
		return b.Name
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}
