package bible

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooks_Canon(t *testing.T) {
	books := Books()
	assert.Len(t, books, 66)
	assert.Equal(t, "GEN", books[0].ID)
	assert.Equal(t, "REV", books[65].ID)

	books[0].ID = "XXX"
	assert.Equal(t, "GEN", Books()[0].ID, "Books must return a copy")
}

func TestBookByID(t *testing.T) {
	gen, ok := BookByID("GEN")
	assert.True(t, ok)
	assert.Equal(t, 50, gen.Chapters)

	_, ok = BookByID("ZZZ")
	assert.False(t, ok)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 1, Number("GEN"))
	assert.Equal(t, 40, Number("MAT"))
	assert.Equal(t, 66, Number("REV"))
	assert.Equal(t, 0, Number("nope"))
}

func TestNormalizeLanguages(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []Language
	}{
		{"empty defaults to english", nil, []Language{English}},
		{"duplicates removed", []string{"zh", "zh"}, []Language{Chinese}},
		{"canonical order", []string{"zh", "en"}, []Language{English, Chinese}},
		{"unknown dropped", []string{"fr", "en"}, []Language{English}},
		{"only unknown defaults", []string{"fr"}, []Language{English}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLanguages(tt.in))
		})
	}
}

func TestParseFontSize(t *testing.T) {
	f, ok := ParseFontSize("large")
	assert.True(t, ok)
	assert.Equal(t, FontLarge, f)

	f, ok = ParseFontSize("huge")
	assert.False(t, ok)
	assert.Equal(t, FontMedium, f)

	assert.Equal(t, FontSmall, FontLarge.Next())
}

func TestVersions(t *testing.T) {
	assert.Equal(t, Chinese, LanguageOf("cus"))
	assert.Equal(t, English, LanguageOf("web"))
	assert.Equal(t, "cus", DefaultVersion(Chinese))
	assert.Equal(t, "kjv", DefaultVersion(English))
	assert.True(t, IsVersion("cns"))
	assert.False(t, IsVersion("niv"))
	assert.Equal(t, "web", NextVersion("kjv"))
	assert.Equal(t, "kjv", NextVersion("cns"))
}
