package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bible-tui/internal/bible"
	"bible-tui/internal/display"
	"bible-tui/internal/theme"
)

const minContentWidth = 24

// spacingFor maps the font-size tag onto what a terminal can vary: blank
// lines between verses and emphasis.
func spacingFor(f bible.FontSize) (gap int, bold bool) {
	switch f {
	case bible.FontSmall:
		return 0, false
	case bible.FontLarge:
		return 2, true
	default:
		return 1, false
	}
}

// renderPage renders p at width and returns the first content line of each
// row, so a verse can be scrolled into view.
func renderPage(p display.Page, st theme.Styles, width, highlight int) (string, []int) {
	if width < minContentWidth {
		width = minContentWidth
	}
	rows := p.Rows()
	if len(rows) == 0 {
		return st.Muted.Render("No verses."), nil
	}

	gap, bold := spacingFor(p.FontSize)
	refWidth := 0
	for _, r := range rows {
		refWidth = max(refWidth, lipgloss.Width(r.Ref))
	}
	refStyle := st.Ref.Width(refWidth)

	var b strings.Builder
	offsets := make([]int, 0, len(rows))
	line := 0
	for i, r := range rows {
		text := st.Text
		switch {
		case p.Unavailable:
			text = st.Error
		case r.Verse == highlight:
			text = st.Highlight
		}
		if bold {
			text = text.Bold(true)
		}

		var block string
		if p.Dual() {
			col := (width - refWidth - 4) / 2
			zh := text.Width(col).Render(r.Chinese)
			en := text.Width(col).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(st.Divider.GetForeground()).
				PaddingLeft(1).
				Render(r.English)
			block = lipgloss.JoinHorizontal(lipgloss.Top, refStyle.Render(r.Ref), " ", zh, " ", en)
		} else {
			body := r.English
			if p.Shows() == bible.Chinese {
				body = r.Chinese
			}
			block = lipgloss.JoinHorizontal(lipgloss.Top,
				refStyle.Render(r.Ref), " ", text.Width(width-refWidth-1).Render(body))
		}

		offsets = append(offsets, line)
		b.WriteString(block)
		line += lipgloss.Height(block)
		if i < len(rows)-1 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat("\n", gap))
			line += gap
		}
	}
	return b.String(), offsets
}

// pageTitle names the chapter in the languages on screen.
func pageTitle(p display.Page) string {
	name := p.BookName
	book, ok := bible.BookByID(p.BookID)
	if name == "" && ok {
		name = book.Name
	}
	zh := ""
	if ok {
		zh = book.NameChinese
	}

	switch {
	case p.Dual() && zh != "":
		return fmt.Sprintf("%s %s %d", zh, name, p.Chapter)
	case p.Shows() == bible.Chinese && zh != "":
		return fmt.Sprintf("%s 第 %d 章", zh, p.Chapter)
	default:
		return fmt.Sprintf("%s %d", name, p.Chapter)
	}
}

// versionLabel lists the versions a page was loaded from.
func versionLabel(p display.Page) string {
	label := strings.ToUpper(p.Version)
	if p.Dual() {
		label += " + " + strings.ToUpper(bible.DefaultVersion(p.Primary.Other()))
	}
	return label
}
