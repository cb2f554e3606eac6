package core

// Position is a location in the document. Both fields are zero-based and
// counted in characters (runes), never bytes.
type Position struct {
	Row int
	Col int
}

// Less reports whether p comes before o in row-major order.
func (p Position) Less(o Position) bool {
	return p.Row < o.Row || (p.Row == o.Row && p.Col < o.Col)
}

func minPosition(a, b Position) Position {
	if b.Less(a) {
		return b
	}
	return a
}

func maxPosition(a, b Position) Position {
	if a.Less(b) {
		return b
	}
	return a
}

// WindowSize is the terminal area available to the editor. It is passed in
// on every call because the terminal can be resized between two calls.
type WindowSize struct {
	Columns int
	Rows    int
}

// viewportHeight never reports less than one row so scroll arithmetic stays sane.
func (w WindowSize) viewportHeight() int {
	return max(w.Rows, 1)
}
