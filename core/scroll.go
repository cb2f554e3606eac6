package core

// Scroll is the viewport offset of a buffer. Only the row offset affects
// layout; the column offset is stored but never changed.
type Scroll struct {
	offset Position
}

func (s *Scroll) Get() Position {
	return s.offset
}

// ScrollToY sets the row offset, bounded so the viewport never starts past
// the last full page.
func (s *Scroll) ScrollToY(y, lineCount, height int) {
	s.offset.Row = clampInt(y, 0, max(lineCount-height, 0))
}

// ScrollBy moves the viewport by delta rows. Scrolling down is rejected once
// the last line is already inside the viewport; scrolling up stops at the top.
func (s *Scroll) ScrollBy(delta Position, lineCount, height int) {
	switch {
	case delta.Row > 0:
		if s.offset.Row+delta.Row+height <= lineCount {
			s.offset.Row += delta.Row
		}
	case delta.Row < 0:
		s.offset.Row = max(s.offset.Row+delta.Row, 0)
	}
}

// SyncToCursor scrolls the least amount needed to keep row visible.
func (s *Scroll) SyncToCursor(row, height int) {
	if row >= s.offset.Row+height-1 {
		s.offset.Row = max(row-(height-1), 0)
	} else if row < s.offset.Row {
		s.offset.Row = row
	}
}
