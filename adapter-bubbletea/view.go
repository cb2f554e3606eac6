package adapter_bubbletea

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/modaledit/adapter-bubbletea/highlighter"
	"github.com/ionut-t/modaledit/core"
)

// cellStyle identifies how one character is drawn; consecutive characters
// with the same cellStyle are rendered as one segment.
type cellStyle struct {
	color    string
	selected bool
	cursor   bool
}

func (m *Model) calculateLineNumberWidth(totalLines int) int {
	if !m.showLineNumbers {
		return 0
	}
	width := max(4, len(strconv.Itoa(max(1, totalLines)))) + 1
	return min(width, 10)
}

// textHeight is the number of document rows shown, leaving room for the
// status and command lines.
func (m *Model) textHeight() int {
	return max(m.height-2, 1)
}

func (m *Model) renderDocument(snap core.Snapshot) string {
	if !snap.HasBuffer {
		return m.theme.PlaceholderStyle.Render("no buffer open, :e <file> or :enew")
	}

	gutter := m.calculateLineNumberWidth(len(snap.Lines))
	textWidth := max(m.width-gutter, 1)

	lines := make([]string, 0, m.textHeight())
	for i := range m.textHeight() {
		row := snap.Scroll.Row + i
		if row >= len(snap.Lines) {
			lines = append(lines, m.theme.LineNumberStyle.Render("~"))
			continue
		}

		var sb strings.Builder
		if gutter > 0 {
			numberStyle := m.theme.LineNumberStyle
			if row == snap.Cursor.Row {
				numberStyle = m.theme.CurrentLineNumberStyle
			}
			sb.WriteString(numberStyle.Width(gutter - 1).Render(strconv.Itoa(row + 1)))
			sb.WriteByte(' ')
		}
		sb.WriteString(m.renderLine(snap, row, textWidth))
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderLine(snap core.Snapshot, row, textWidth int) string {
	runes := []rune(snap.Lines[row])
	colors := highlighter.LineColors(row, len(runes), snap.Highlights)

	cursorCol := -1
	if m.cursorVisible && snap.Mode.Name != core.CommandMode && row == snap.Cursor.Row {
		cursorCol = snap.Cursor.Col
	}

	selFrom, selTo, selected := 0, 0, false
	if snap.Selection != nil {
		selFrom, selTo, selected = snap.Selection.LineSpan(row)
		if selTo < 0 || selTo > len(runes) {
			selTo = len(runes)
		}
	}

	var (
		sb      strings.Builder
		segment strings.Builder
		current cellStyle
		cell    int
	)
	flush := func() {
		if segment.Len() == 0 {
			return
		}
		sb.WriteString(m.styleFor(current).Render(segment.String()))
		segment.Reset()
	}

	for i, r := range runes {
		w := core.CellWidth(r, cell, snap.TabWidth)
		if cell+w > textWidth {
			break
		}

		style := cellStyle{
			color:    colors[i],
			selected: selected && i >= selFrom && i < selTo,
			cursor:   i == cursorCol,
		}
		if style != current {
			flush()
			current = style
		}

		if r == '\t' {
			segment.WriteString(strings.Repeat(" ", w))
		} else {
			segment.WriteRune(r)
		}
		cell += w
	}
	flush()

	if cursorCol >= len(runes) && cell < textWidth {
		sb.WriteString(m.theme.CursorStyle.Render(" "))
	}

	return sb.String()
}

func (m *Model) styleFor(s cellStyle) lipgloss.Style {
	style := m.highlighter.StyleFor(s.color)
	if s.selected {
		style = style.Background(m.theme.SelectionStyle.GetBackground())
	}
	if s.cursor {
		style = style.Inherit(m.theme.CursorStyle)
	}
	return style
}

func (m *Model) getStatusLine(snap core.Snapshot) string {
	if !m.showStatusLine {
		return ""
	}

	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	var modeStyle lipgloss.Style
	switch snap.Mode.Name {
	case core.InsertMode:
		modeStyle = m.theme.InsertModeStyle
	case core.VisualMode:
		modeStyle = m.theme.VisualModeStyle
	case core.CommandMode:
		modeStyle = m.theme.CommandModeStyle
	default:
		modeStyle = m.theme.NormalModeStyle
	}
	modeLabel := " " + snap.Mode.String() + " "

	fileInfo := ""
	cursorInfo := ""
	if snap.HasBuffer {
		fileInfo = " " + snap.Name
		if snap.Modified {
			fileInfo += " [+]"
		}
		cursorInfo = fmt.Sprintf("%s  %d:%d  %d/%d ",
			snap.Language, snap.Cursor.Row+1, snap.Cursor.Col+1, snap.BufferIndex+1, snap.BufferCount)
	}

	gap := m.width - core.StringWidth(modeLabel) - core.StringWidth(fileInfo) - core.StringWidth(cursorInfo)

	return modeStyle.Render(modeLabel) +
		m.theme.StatusLineStyle.Render(fileInfo+strings.Repeat(" ", max(0, gap))+cursorInfo)
}

func (m *Model) getCommandLine(snap core.Snapshot) string {
	var text string
	style := m.theme.CommandLineStyle

	switch {
	case snap.Mode.Name == core.CommandMode:
		text = ":" + snap.CommandInput
		line := style.Render(text) + m.theme.CursorStyle.Render(" ")
		return line + style.Render(strings.Repeat(" ", max(0, m.width-core.StringWidth(text)-1)))
	case m.err != nil:
		text = m.err.Error()
		style = m.theme.ErrorStyle.Background(style.GetBackground())
	case m.message != "":
		text = m.message
		style = m.theme.MessageStyle.Background(style.GetBackground())
	}

	return style.Render(text + strings.Repeat(" ", max(0, m.width-core.StringWidth(text))))
}
