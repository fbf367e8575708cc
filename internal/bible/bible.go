// Package bible holds the scripture domain types and the bundled book and
// version tables shared by every view.
package bible

import (
	"fmt"
	"slices"
)

// Book describes one book of the canon.
type Book struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	NameLong     string `json:"nameLong"`
	Chapters     int    `json:"chapters"`
	NameChinese  string `json:"nameChinese,omitempty"`
	Pinyin       string `json:"pinyin,omitempty"`
	PinyinAbbr   string `json:"pinyinAbbr,omitempty"`
}

// Verse is a single verse of a chapter in one version.
type Verse struct {
	ID      string `json:"id"`
	BookID  string `json:"bookId"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// VerseID builds the stable verse identifier used to pair translations.
func VerseID(bookID string, chapter, verse int) string {
	return fmt.Sprintf("%s-%d-%d", bookID, chapter, verse)
}

// Books returns a copy of the canonical book table.
func Books() []Book {
	return slices.Clone(canon)
}

// BookByID looks a book up by its canonical 3-letter code.
func BookByID(id string) (Book, bool) {
	for _, b := range canon {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// Number returns the 1-based canonical position of a book, or 0 if unknown.
func Number(id string) int {
	for i, b := range canon {
		if b.ID == id {
			return i + 1
		}
	}
	return 0
}
