package bible

import "slices"

// Language is a display language tag.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// Languages lists the supported languages in canonical order.
var Languages = []Language{English, Chinese}

// Valid reports whether l is a supported language tag.
func (l Language) Valid() bool {
	return l == English || l == Chinese
}

// Other returns the opposite language of a dual-language pair.
func (l Language) Other() Language {
	if l == Chinese {
		return English
	}
	return Chinese
}

// NormalizeLanguages drops unknown tags and duplicates and returns the
// remaining languages in canonical order. The result is never empty.
func NormalizeLanguages[S ~string](in []S) []Language {
	out := make([]Language, 0, len(Languages))
	for _, l := range Languages {
		for _, candidate := range in {
			if Language(candidate) == l {
				out = append(out, l)
				break
			}
		}
	}
	if len(out) == 0 {
		return []Language{English}
	}
	return out
}

// HasLanguage reports whether langs contains l.
func HasLanguage(langs []Language, l Language) bool {
	return slices.Contains(langs, l)
}

// FontSize is the display scale tag.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// FontSizes lists the scale tags from smallest to largest.
var FontSizes = []FontSize{FontSmall, FontMedium, FontLarge}

// DefaultFontSize is used when nothing valid is stored.
const DefaultFontSize = FontMedium

// ParseFontSize maps a stored tag to a FontSize, falling back to the default.
func ParseFontSize(s string) (FontSize, bool) {
	for _, f := range FontSizes {
		if string(f) == s {
			return f, true
		}
	}
	return DefaultFontSize, false
}

// Next cycles to the following size, wrapping around.
func (f FontSize) Next() FontSize {
	i := slices.Index(FontSizes, f)
	return FontSizes[(i+1)%len(FontSizes)]
}
