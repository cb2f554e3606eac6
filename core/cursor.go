package core

import "unicode"

// Cursor is the logical cursor of a buffer. Its column is only clamped to the
// active mode lazily, on Get/DrawPosition, or explicitly through Sync, so an
// edit that shortens the line does not need to touch the cursor.
type Cursor struct {
	position Position
}

// Raw returns the stored position without clamping.
func (c *Cursor) Raw() Position {
	return c.position
}

// Get returns the cursor with its column clamped for mode.
func (c *Cursor) Get(content *Content, mode EditorMode) Position {
	return Position{Row: c.position.Row, Col: c.clampX(c.position.Col, content, mode)}
}

// DrawPosition returns the terminal cell the cursor should be drawn at: the
// row is unchanged and the column is the display width of everything left of
// the clamped column.
func (c *Cursor) DrawPosition(content *Content, mode EditorMode, tabWidth int) Position {
	line := content.LineRunes(c.position.Row)
	x := min(c.clampX(c.position.Col, content, mode), len(line))

	return Position{Row: c.position.Row, Col: DisplayWidth(line[:x], tabWidth)}
}

// clampX bounds x for the current row. Normal and visual keep the cursor on a
// character; insert allows one past the end; command mode does not address
// document text and passes x through.
func (c *Cursor) clampX(x int, content *Content, mode EditorMode) int {
	lineLen := content.LineLength(c.position.Row)

	switch mode.Name {
	case NormalMode, VisualMode:
		if lineLen == 0 {
			return 0
		}
		return clampInt(x, 0, lineLen-1)
	case InsertMode:
		return clampInt(x, 0, lineLen)
	default:
		return x
	}
}

func (c *Cursor) clampY(y int, content *Content) int {
	return clampInt(y, 0, content.LineCount()-1)
}

func (c *Cursor) MoveToX(x int, content *Content, mode EditorMode) {
	c.position.Col = c.clampX(x, content, mode)
}

func (c *Cursor) MoveToY(y int, content *Content) {
	c.position.Row = c.clampY(y, content)
}

// MoveTo sets the row first so the column is clamped against the target line.
func (c *Cursor) MoveTo(target Position, content *Content, mode EditorMode) {
	c.MoveToY(target.Row, content)
	c.MoveToX(target.Col, content, mode)
}

// MoveByX moves horizontally. The current column is re-clamped first so a
// stale column left by a mode switch or an edit does not leak into the move.
func (c *Cursor) MoveByX(delta int, content *Content, mode EditorMode) {
	if delta == 0 {
		return
	}
	c.SyncX(content, mode)
	if delta > 0 {
		c.position.Col = c.clampX(c.position.Col+delta, content, mode)
		return
	}
	c.position.Col = max(c.position.Col+delta, 0)
}

// MoveByY moves vertically. The column is left alone and re-clamped on the next read.
func (c *Cursor) MoveByY(delta int, content *Content) {
	if delta > 0 {
		c.position.Row = c.clampY(c.position.Row+delta, content)
	} else if delta < 0 {
		c.position.Row = max(c.position.Row+delta, 0)
	}
}

// MoveToNextWord moves past the rest of the current word and the whitespace
// after it. When that runs off the end of the line it moves to the start of
// the next line; on the last line it stops at the end of the line, which the
// mode clamp then pulls back onto the last character.
func (c *Cursor) MoveToNextWord(content *Content, mode EditorMode) {
	line := content.LineRunes(c.position.Row)
	x := min(c.Get(content, mode).Col, len(line))

	if x < len(line) {
		x++
	}
	for x < len(line) && !unicode.IsSpace(line[x]) {
		x++
	}
	for x < len(line) && unicode.IsSpace(line[x]) {
		x++
	}

	if x < len(line) {
		c.position.Col = x
		return
	}
	if c.position.Row >= content.LineCount()-1 {
		c.position.Col = len(line)
		return
	}
	c.position.Row++
	c.position.Col = 0
}

// MoveToBackWord moves to the start of the previous word. At column zero it
// moves to the end of the previous line; on the first line it does nothing.
func (c *Cursor) MoveToBackWord(content *Content, mode EditorMode) {
	x := c.Get(content, mode).Col

	if x == 0 {
		if c.position.Row == 0 {
			return
		}
		c.position.Row--
		c.position.Col = content.LineLength(c.position.Row)
		return
	}

	line := content.LineRunes(c.position.Row)
	x = min(x, len(line))
	for x > 0 && unicode.IsSpace(line[x-1]) {
		x--
	}
	for x > 0 && !unicode.IsSpace(line[x-1]) {
		x--
	}

	c.position.Col = x
}

func (c *Cursor) SyncX(content *Content, mode EditorMode) {
	c.position.Col = c.clampX(c.position.Col, content, mode)
}

func (c *Cursor) SyncY(content *Content) {
	c.position.Row = c.clampY(c.position.Row, content)
}

// Sync clamps both coordinates. The row goes first so the column is checked
// against the right line.
func (c *Cursor) Sync(content *Content, mode EditorMode) {
	c.SyncY(content)
	c.SyncX(content, mode)
}
