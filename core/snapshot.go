package core

// Snapshot is a consistent copy of what a renderer needs, taken under the
// session lock. HasBuffer is false when nothing is open, in which case only
// Mode and the buffer counters are meaningful.
type Snapshot struct {
	Mode         EditorMode
	CommandInput string

	HasBuffer  bool
	Name       string
	Path       string
	Language   Language
	Modified   bool
	Lines      []string
	Cursor     Position
	DrawCursor Position
	Scroll     Position
	Selection  *Selection
	Highlights []HighlightToken
	TabWidth   int

	BufferIndex int
	BufferCount int
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Mode:         s.mode,
		CommandInput: string(s.commandInput),
		TabWidth:     s.opts.TabWidth,
		BufferIndex:  s.buffers.CurrentIndex(),
		BufferCount:  s.buffers.Len(),
	}

	buf := s.buffers.Current()
	if buf == nil {
		return snap
	}

	snap.HasBuffer = true
	snap.Name = buf.Name()
	snap.Path = buf.Path()
	snap.Language = buf.Language()
	snap.Modified = buf.IsModified()
	snap.Lines = buf.Lines()
	snap.Cursor = buf.Cursor(s.mode)
	snap.DrawCursor = buf.DrawCursor(s.mode)
	snap.Scroll = buf.Scroll()
	snap.Highlights = buf.Highlights()

	if sel, err := buf.selection(s.mode); err == nil {
		snap.Selection = &sel
	}

	return snap
}
