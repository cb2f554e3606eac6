package core

// Selection is the half-open range [Start, End) covered by a visual
// selection, already normalised so Start comes first.
type Selection struct {
	Start Position
	End   Position
}

// NewSelection orders anchor and cursor and extends the later one by one
// column, so the character under it is part of the selection.
func NewSelection(anchor, cursor Position) Selection {
	end := maxPosition(anchor, cursor)
	end.Col++

	return Selection{
		Start: minPosition(anchor, cursor),
		End:   end,
	}
}

// Contains reports whether the character at p lies inside the selection.
func (s Selection) Contains(p Position) bool {
	return !p.Less(s.Start) && p.Less(s.End)
}

// LineSpan returns the selected column range [from, to) on row y, or ok=false
// when the row is not covered. to is -1 when the selection runs past the end of
// the row.
func (s Selection) LineSpan(y int) (from, to int, ok bool) {
	if y < s.Start.Row || y > s.End.Row {
		return 0, 0, false
	}

	from, to = 0, -1
	if y == s.Start.Row {
		from = s.Start.Col
	}
	if y == s.End.Row {
		to = s.End.Col
	}

	return from, to, true
}

// selection returns the live selection of buf under mode, or ErrNoSelection
// outside visual mode.
func (b *Buffer) selection(mode EditorMode) (Selection, error) {
	if mode.Name != VisualMode {
		return Selection{}, ErrNoSelection
	}
	return NewSelection(mode.Anchor, b.Cursor(mode)), nil
}
