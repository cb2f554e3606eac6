package core

import (
	"strings"
)

// Content is the line store: the document as a sequence of rune lines.
// It always holds at least one line.
type Content struct {
	lines [][]rune
}

// NewContent returns the content of an untitled buffer: two empty lines,
// ready for insert mode.
func NewContent() *Content {
	return &Content{lines: [][]rune{{}, {}}}
}

// ContentFromString builds the line store from file text. The text is
// normalised to end with a newline before splitting, so "a\nb" and "a\nb\n"
// both produce ["a", "b"] and "" produces a single empty line.
func ContentFromString(text string) *Content {
	c := &Content{}
	c.SetString(text)
	return c
}

// SetString replaces the whole document.
func (c *Content) SetString(text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	parts := strings.Split(text[:len(text)-1], "\n")
	c.lines = make([][]rune, len(parts))
	for i, p := range parts {
		c.lines[i] = []rune(p)
	}
}

// Line returns line y as a string.
func (c *Content) Line(y int) string {
	return string(c.lines[y])
}

// LineRunes returns line y. The slice is owned by the store and must not be modified.
func (c *Content) LineRunes(y int) []rune {
	return c.lines[y]
}

// Lines returns a copy of every line as strings.
func (c *Content) Lines() []string {
	out := make([]string, len(c.lines))
	for i, l := range c.lines {
		out[i] = string(l)
	}
	return out
}

func (c *Content) LineCount() int {
	return len(c.lines)
}

// LineLength returns the number of characters in line y.
func (c *Content) LineLength(y int) int {
	return len(c.lines[y])
}

// String joins the lines with "\n".
func (c *Content) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Text returns the document in its on-disk form, terminated by a newline.
func (c *Content) Text() string {
	return c.String() + "\n"
}

// InsertChar inserts ch before character x of line y. A newline splits the line instead.
func (c *Content) InsertChar(x, y int, ch rune) {
	if ch == '\n' {
		c.SplitLine(x, y)
		return
	}

	line := c.lines[y]
	x = clampInt(x, 0, len(line))

	newLine := make([]rune, 0, len(line)+1)
	newLine = append(newLine, line[:x]...)
	newLine = append(newLine, ch)
	newLine = append(newLine, line[x:]...)
	c.lines[y] = newLine
}

// SplitLine cuts line y at x: line y keeps [0,x) and a new line y+1 gets [x,end).
func (c *Content) SplitLine(x, y int) {
	line := c.lines[y]
	x = clampInt(x, 0, len(line))

	head := make([]rune, x)
	copy(head, line[:x])
	tail := make([]rune, len(line)-x)
	copy(tail, line[x:])

	c.lines[y] = head
	c.lines = append(c.lines, nil)
	copy(c.lines[y+2:], c.lines[y+1:])
	c.lines[y+1] = tail
}

// JoinLines appends line y+1 to line y and removes it. No-op on the last line.
func (c *Content) JoinLines(y int) {
	if y+1 >= len(c.lines) {
		return
	}

	joined := make([]rune, 0, len(c.lines[y])+len(c.lines[y+1]))
	joined = append(joined, c.lines[y]...)
	joined = append(joined, c.lines[y+1]...)
	c.lines[y] = joined
	c.lines = append(c.lines[:y+1], c.lines[y+2:]...)
}

// DeleteChar removes character x of line y. Out-of-range x is ignored.
func (c *Content) DeleteChar(x, y int) {
	line := c.lines[y]
	if x < 0 || x >= len(line) {
		return
	}

	newLine := make([]rune, 0, len(line)-1)
	newLine = append(newLine, line[:x]...)
	newLine = append(newLine, line[x+1:]...)
	c.lines[y] = newLine
}

// DeleteLine removes line y and returns its text. The last remaining line is
// cleared rather than removed.
func (c *Content) DeleteLine(y int) string {
	text := string(c.lines[y])
	if len(c.lines) == 1 {
		c.lines[0] = []rune{}
		return text
	}
	c.lines = append(c.lines[:y], c.lines[y+1:]...)
	return text
}

// Range returns the text between start (inclusive) and end (exclusive).
// A multi-line range yields the top fragment, every line in between and the
// bottom fragment, each followed by "\n". Columns past a line's end are clamped.
func (c *Content) Range(start, end Position) string {
	if start.Row == end.Row {
		line := c.lines[start.Row]
		from := clampInt(start.Col, 0, len(line))
		to := clampInt(end.Col, from, len(line))
		return string(line[from:to])
	}

	var sb strings.Builder

	top := c.lines[start.Row]
	sb.WriteString(string(top[clampInt(start.Col, 0, len(top)):]))
	sb.WriteByte('\n')

	for y := start.Row + 1; y < end.Row; y++ {
		sb.WriteString(string(c.lines[y]))
		sb.WriteByte('\n')
	}

	bottom := c.lines[end.Row]
	sb.WriteString(string(bottom[:clampInt(end.Col, 0, len(bottom))]))
	sb.WriteByte('\n')

	return sb.String()
}

// DeleteRange removes the text between start and end, stitches the part of
// the top line before start to the part of the bottom line after end, and
// returns the removed text in the form Range produces.
func (c *Content) DeleteRange(start, end Position) string {
	text := c.Range(start, end)

	top := c.lines[start.Row]
	bottom := c.lines[end.Row]
	from := clampInt(start.Col, 0, len(top))
	to := clampInt(end.Col, 0, len(bottom))
	if start.Row == end.Row {
		to = max(to, from)
	}
	head, tail := top[:from], bottom[to:]

	stitched := make([]rune, 0, len(head)+len(tail))
	stitched = append(stitched, head...)
	stitched = append(stitched, tail...)

	c.lines[start.Row] = stitched
	c.lines = append(c.lines[:start.Row+1], c.lines[end.Row+1:]...)

	return text
}

// Paste inserts text at (x, y) exactly as repeated InsertChar calls would and
// returns the position just after the last inserted character together with
// the number of characters inserted. A single trailing newline after other
// text is read as a terminator, the same convention ContentFromString uses.
func (c *Content) Paste(x, y int, text string) (Position, int) {
	if len(text) > 1 && strings.HasSuffix(text, "\n") {
		text = text[:len(text)-1]
	}

	x = clampInt(x, 0, len(c.lines[y]))
	count := 0
	for _, r := range text {
		c.InsertChar(x, y, r)
		if r == '\n' {
			y++
			x = 0
		} else {
			x++
		}
		count++
	}

	return Position{Row: y, Col: x}, count
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
