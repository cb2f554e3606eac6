package core

type Mode string

const (
	NormalMode  Mode = "normal"
	InsertMode  Mode = "insert"
	VisualMode  Mode = "visual"
	CommandMode Mode = "command"
)

// EditorMode is the session-wide editing mode. Append is only meaningful for
// InsertMode and Anchor only for VisualMode.
type EditorMode struct {
	Name   Mode
	Append bool
	Anchor Position
}

func Normal() EditorMode { return EditorMode{Name: NormalMode} }

func Command() EditorMode { return EditorMode{Name: CommandMode} }

// Insert returns insert mode; append places the cursor after the character
// it was on instead of before it.
func Insert(append bool) EditorMode { return EditorMode{Name: InsertMode, Append: append} }

// Visual returns visual mode anchored at anchor. When used as a transition
// target the anchor is ignored and taken from the cursor instead.
func Visual(anchor Position) EditorMode { return EditorMode{Name: VisualMode, Anchor: anchor} }

func (m EditorMode) String() string {
	switch m.Name {
	case InsertMode:
		if m.Append {
			return "INSERT (APPEND)"
		}
		return "INSERT"
	case VisualMode:
		return "VISUAL"
	case CommandMode:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

func (s *Session) setMode(target EditorMode, size WindowSize) error {
	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}

	switch target.Name {
	case InsertMode:
		s.setInsertMode(buf, target.Append, size)
	case VisualMode:
		s.setVisualMode(buf)
	case CommandMode:
		s.setCommandMode()
	default:
		s.setNormalMode(buf, size)
	}

	return nil
}

// setNormalMode undoes the append shift when leaving insert-after, so the
// cursor lands back on the last edited character.
func (s *Session) setNormalMode(buf *Buffer, size WindowSize) {
	if s.mode.Name == InsertMode && s.mode.Append {
		buf.CursorMoveBy(-1, 0, s.mode, size)
	}
	s.mode = Normal()
	s.commandInput = s.commandInput[:0]
}

func (s *Session) setInsertMode(buf *Buffer, append bool, size WindowSize) {
	buf.CursorSync(s.mode)
	s.mode = Insert(append)
	if append {
		buf.CursorMoveBy(1, 0, s.mode, size)
	}
	buf.CursorSync(s.mode)
}

func (s *Session) setVisualMode(buf *Buffer) {
	anchor := buf.Cursor(Normal())
	s.mode = Visual(anchor)
}

func (s *Session) setCommandMode() {
	s.mode = Command()
	s.commandInput = s.commandInput[:0]
}
