package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/timapple/writeapp/internal/markdown"
	"github.com/timapple/writeapp/internal/term"
)

// drawPreview renders the buffer as markdown in the given region.
func (u *UI) drawPreview(x, y, width, height int) {
	if width < 4 {
		return
	}

	blocks := markdown.Parse(u.ed.Text())
	row := y
	for _, block := range blocks {
		if row >= y+height {
			return
		}
		row = u.drawPreviewBlock(block, x, row, width, y+height)
		row++ // blank line between blocks
	}
}

func (u *UI) drawPreviewBlock(block markdown.Block, x, row, width, maxRow int) int {
	switch block.Kind {
	case markdown.KindHeading:
		style := u.accentStyle()
		if block.Level > 1 {
			style.Bold = false
		}
		return u.drawSpansWrapped(block.Spans, x, row, width, maxRow, style, "")

	case markdown.KindListItem:
		indent := strings.Repeat("  ", block.Level)
		u.drawText(x, row, u.dimStyle(), indent+"•")
		return u.drawSpansWrapped(block.Spans, x+len(indent)+2, row, width-len(indent)-2, maxRow, term.Style{}, "")

	case markdown.KindCodeBlock:
		for _, line := range block.Lines {
			if row >= maxRow {
				return row
			}
			u.drawText(x+2, row, u.dimStyle(), truncate(line, width-2))
			row++
		}
		return row - 1

	case markdown.KindBlockquote:
		return u.drawSpansWrapped(block.Spans, x+2, row, width-2, maxRow, u.dimStyle(), "▎")

	case markdown.KindRule:
		u.drawHRule(x, row, width, u.dimStyle())
		return row

	default:
		return u.drawSpansWrapped(block.Spans, x, row, width, maxRow, term.Style{}, "")
	}
}

// drawSpansWrapped flows styled spans into the region, breaking lines at
// the region width. Returns the last row written.
func (u *UI) drawSpansWrapped(spans []markdown.Span, x, row, width, maxRow int, base term.Style, marker string) int {
	col := 0
	if marker != "" {
		u.drawText(x-2, row, base, marker)
	}
	for _, span := range spans {
		style := spanStyle(span.Style, base)
		for _, word := range splitKeepSpace(span.Text) {
			ww := runewidth.StringWidth(word)
			if col+ww > width && col > 0 {
				row++
				col = 0
				if row >= maxRow {
					return row - 1
				}
				if strings.TrimSpace(word) == "" {
					continue
				}
				if marker != "" {
					u.drawText(x-2, row, base, marker)
				}
			}
			u.drawText(x+col, row, style, word)
			col += ww
		}
	}
	return row
}

func spanStyle(s markdown.SpanStyle, base term.Style) term.Style {
	style := base
	if s&markdown.StyleEmph != 0 {
		style.Italic = true
	}
	if s&markdown.StyleStrong != 0 {
		style.Bold = true
	}
	if s&markdown.StyleCode != 0 {
		style.Dim = true
	}
	return style
}

// splitKeepSpace splits text into words followed by their trailing space,
// so wrapped lines keep word boundaries intact.
func splitKeepSpace(text string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if r == ' ' {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
