package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// cellWidth is the number of terminal cells r occupies when drawn at cell col.
// Tabs advance to the next tab stop; wide characters take two cells and
// combining marks none.
func cellWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		if tabWidth <= 0 {
			tabWidth = DefaultTabWidth
		}
		return tabWidth - col%tabWidth
	}
	return max(runewidth.RuneWidth(r), 0)
}

// DisplayWidth returns the cell width of runes drawn from column zero.
func DisplayWidth(runes []rune, tabWidth int) int {
	w := 0
	for _, r := range runes {
		w += cellWidth(r, w, tabWidth)
	}
	return w
}

// ColumnAtCell maps a terminal cell back to the index of the character drawn
// over it. Cells past the end of the line map to len(runes).
func ColumnAtCell(runes []rune, cell, tabWidth int) int {
	w := 0
	for i, r := range runes {
		w += cellWidth(r, w, tabWidth)
		if cell < w {
			return i
		}
	}
	return len(runes)
}

// CellWidth is the width of r drawn at cell col, for renderers laying out a
// line one character at a time.
func CellWidth(r rune, col, tabWidth int) int {
	return cellWidth(r, col, tabWidth)
}

// StringWidth returns the grapheme-aware cell width of s, for layout that does
// not need per-character positions (status lines, padding).
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
