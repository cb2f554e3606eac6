package highlighter

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/modaledit/core"
)

// Highlighter turns the core's highlight tokens into lipgloss styles.
type Highlighter struct {
	style      *chroma.Style
	styleCache map[string]lipgloss.Style
	cacheMutex sync.RWMutex
}

// New creates a highlighter for a chroma theme name. Unknown themes fall back
// to chroma's default style.
func New(theme string) *Highlighter {
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{
		style:      style,
		styleCache: make(map[string]lipgloss.Style),
	}
}

// Background returns the theme's background colour, or "" when it has none.
func (h *Highlighter) Background() string {
	entry := h.style.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return ""
	}
	return entry.Background.String()
}

// StyleFor returns the foreground style for a "#rrggbb" colour.
func (h *Highlighter) StyleFor(color string) lipgloss.Style {
	h.cacheMutex.RLock()
	style, ok := h.styleCache[color]
	h.cacheMutex.RUnlock()
	if ok {
		return style
	}

	style = lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}

	h.cacheMutex.Lock()
	h.styleCache[color] = style
	h.cacheMutex.Unlock()

	return style
}

// LineColors returns the colour of every character on row, "" where no token
// covers it.
func LineColors(row, length int, tokens []core.HighlightToken) []string {
	colors := make([]string, length)

	for _, t := range tokens {
		if row < t.Start.Row || row > t.End.Row {
			continue
		}

		from, to := 0, length
		if row == t.Start.Row {
			from = t.Start.Col
		}
		if row == t.End.Row {
			to = min(t.End.Col, length)
		}

		for col := max(from, 0); col < to; col++ {
			colors[col] = t.Color
		}
	}

	return colors
}
