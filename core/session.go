package core

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Options configures a Session and the buffers it opens.
type Options struct {
	TabWidth  int
	Theme     string
	Clipboard Clipboard
	Opener    FileOpener
	Creator   FileOpener
}

func (o Options) withDefaults() Options {
	if o.TabWidth <= 0 {
		o.TabWidth = DefaultTabWidth
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Clipboard == nil {
		o.Clipboard = NewSystemClipboard()
	}
	if o.Opener == nil {
		o.Opener = OpenFile
	}
	if o.Creator == nil {
		o.Creator = CreateFile
	}
	return o
}

// Session is the editing session: the open buffers, the mode they are all
// edited in, and the clipboard. Every exported method takes the session lock
// for the whole operation, so a renderer calling Snapshot never sees a
// half-applied edit.
type Session struct {
	mu sync.Mutex

	buffers      *BufferSet
	mode         EditorMode
	clipboard    Clipboard
	commandInput []rune
	opts         Options

	updateSignal chan Signal
}

func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		buffers:      NewBufferSet(),
		mode:         Normal(),
		clipboard:    opts.Clipboard,
		opts:         opts,
		updateSignal: make(chan Signal, 100),
	}
}

// Signals delivers messages, errors and command submissions produced while
// handling input. Sends never block; signals are dropped when nobody reads.
func (s *Session) Signals() <-chan Signal {
	return s.updateSignal
}

func (s *Session) Mode() EditorMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// LineCount returns the number of lines in the current buffer, or 0 when
// none is open.
func (s *Session) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if buf := s.buffers.Current(); buf != nil {
		return buf.LineCount()
	}
	return 0
}

// Open loads path into a new buffer, or an empty untitled one when path is
// empty, and switches to it in normal mode.
func (s *Session) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open(path)
}

func (s *Session) open(path string) error {
	if _, err := s.buffers.Open(path, s.opts); err != nil {
		return err
	}
	s.resetMode()
	return nil
}

// AddBuffer appends an already built buffer and makes it current.
func (s *Session) AddBuffer(buf *Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers.Add(buf)
	s.resetMode()
}

func (s *Session) Close(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffers.Close(index); err != nil {
		return err
	}
	s.resetMode()
	return nil
}

func (s *Session) CloseCurrent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffers.CloseCurrent(); err != nil {
		return err
	}
	s.resetMode()
	return nil
}

func (s *Session) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffers.Select(index); err != nil {
		return err
	}
	s.resetMode()
	return nil
}

// resetMode drops back to normal mode after the current buffer changed, since
// a visual anchor or append shift from another buffer means nothing here.
func (s *Session) resetMode() {
	s.mode = Normal()
	s.commandInput = s.commandInput[:0]
	if buf := s.buffers.Current(); buf != nil {
		buf.CursorSync(s.mode)
	}
}

// SetMode switches mode. It fails with ErrNoBufferOpen, leaving the mode
// unchanged, when no buffer is open.
func (s *Session) SetMode(mode EditorMode, size WindowSize) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setMode(mode, size)
}

// Cancel returns to normal mode from any mode.
func (s *Session) Cancel(size WindowSize) error {
	return s.SetMode(Normal(), size)
}

// Apply runs a resolved action against the current buffer.
func (s *Session) Apply(action Action, size WindowSize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := action.(ModeAction); ok {
		return s.setMode(a.Mode, size)
	}

	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}

	if err := buf.Apply(action, s.mode, s.clipboard, size); err != nil {
		return err
	}

	switch action {
	case EditDeleteSelection, EditYankSelection:
		s.mode = Normal()
		if action == EditYankSelection {
			s.DispatchMessage(YankMessage)
		}
	case EditDeleteLine:
		s.DispatchMessage(LineDeletedMessage)
	}

	return nil
}

// HandleEvent applies raw text input. In command mode it edits the command
// line; Enter submits it as a RunCommandSignal and Backspace on an empty
// line leaves command mode.
func (s *Session) HandleEvent(event InputEvent, size WindowSize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}

	if s.mode.Name == CommandMode {
		s.handleCommandInput(buf, event, size)
		return nil
	}

	buf.OnInputEvent(event, s.mode, size)
	return nil
}

func (s *Session) handleCommandInput(buf *Buffer, event InputEvent, size WindowSize) {
	switch event.Kind {
	case InputChar:
		if event.Char != '\n' {
			s.commandInput = append(s.commandInput, event.Char)
			return
		}
		command := string(s.commandInput)
		s.setNormalMode(buf, size)
		s.dispatchSignal(RunCommandSignal{command: command})

	case InputBackspace:
		if len(s.commandInput) == 0 {
			s.setNormalMode(buf, size)
			return
		}
		s.commandInput = s.commandInput[:len(s.commandInput)-1]
	}
}

func (s *Session) Click(event ClickEvent, size WindowSize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}
	buf.OnClick(event, s.mode, size)
	return nil
}

func (s *Session) Scroll(event ScrollEvent, size WindowSize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}
	buf.OnScroll(event, size)
	return nil
}

// RunCommand executes command and reports the outcome on the signal channel
// instead of returning it.
func (s *Session) RunCommand(command string, size WindowSize) {
	if err := s.ExecuteCommand(command, size); err != nil {
		s.mu.Lock()
		s.dispatchError(err)
		s.mu.Unlock()
	}
}

// ExecuteCommand runs a command line as typed after ':'.
func (s *Session) ExecuteCommand(command string, size WindowSize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	parts := strings.Fields(command)
	name, args := parts[0], parts[1:]

	switch name {
	case "w", "write":
		return s.write(args)

	case "q", "quit":
		return s.quit(false)

	case "q!", "quit!":
		return s.quit(true)

	case "wq", "x":
		if err := s.write(args); err != nil {
			return err
		}
		return s.quit(false)

	case "e", "edit":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s needs a file name", ErrInvalidCommand, name)
		}
		return s.open(args[0])

	case "enew":
		return s.open("")

	case "bn", "bnext":
		return s.cycle(s.buffers.Next)

	case "bp", "bprevious":
		return s.cycle(s.buffers.Prev)

	case "bd", "bdelete":
		return s.closeCurrent(false)

	case "bd!", "bdelete!":
		return s.closeCurrent(true)
	}

	line, err := strconv.Atoi(name)
	if err != nil || line < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidCommand, command)
	}

	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}
	buf.CursorMoveTo(Position{Row: line - 1}, s.mode, size)
	return nil
}

func (s *Session) write(args []string) error {
	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}

	var err error
	if len(args) > 0 {
		err = buf.SaveAs(args[0], s.opts.Creator)
	} else {
		err = buf.Save()
	}
	if err != nil {
		return err
	}

	s.dispatchSignal(SaveSignal{path: buf.Path()})
	s.DispatchMessage(ChangesSavedMessage)
	return nil
}

// quit closes the current buffer and sends a QuitSignal once none are left.
func (s *Session) quit(force bool) error {
	if err := s.closeCurrent(force); err != nil {
		return err
	}
	if s.buffers.Len() == 0 {
		s.dispatchSignal(QuitSignal{})
	}
	return nil
}

func (s *Session) closeCurrent(force bool) error {
	buf := s.buffers.Current()
	if buf == nil {
		return ErrNoBufferOpen
	}
	if !force && buf.IsModified() {
		return ErrUnsavedChanges
	}
	if err := s.buffers.CloseCurrent(); err != nil {
		return err
	}
	s.resetMode()
	s.DispatchMessage(BufferClosedMessage)
	return nil
}

func (s *Session) cycle(move func() error) error {
	if err := move(); err != nil {
		return err
	}
	s.resetMode()
	return nil
}
