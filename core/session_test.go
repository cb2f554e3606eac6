package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSize = WindowSize{Columns: 80, Rows: 10}

type failingClipboard struct {
	err error
}

func (c failingClipboard) Write(string) error     { return c.err }
func (c failingClipboard) Read() (string, error) { return "", c.err }

func newTestSession(t *testing.T, text string) (*Session, *MemoryClipboard) {
	t.Helper()

	clip := &MemoryClipboard{}
	s := NewSession(Options{Clipboard: clip})
	s.AddBuffer(NewBufferFromString(text, s.opts))

	return s, clip
}

func apply(t *testing.T, s *Session, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, s.Apply(a, testSize))
	}
}

func input(t *testing.T, s *Session, events ...InputEvent) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, s.HandleEvent(e, testSize))
	}
}

// drainSignals collects everything currently queued on the signal channel.
func drainSignals(s *Session) []Signal {
	var out []Signal
	for {
		select {
		case sig := <-s.Signals():
			out = append(out, sig)
		default:
			return out
		}
	}
}

func TestModeChangeWithoutBuffer(t *testing.T) {
	s := NewSession(Options{Clipboard: &MemoryClipboard{}})

	err := s.SetMode(Insert(false), testSize)
	assert.ErrorIs(t, err, ErrNoBufferOpen)
	assert.Equal(t, Normal(), s.Mode())

	assert.ErrorIs(t, s.Apply(CursorDown, testSize), ErrNoBufferOpen)
	assert.ErrorIs(t, s.HandleEvent(CharInput('x'), testSize), ErrNoBufferOpen)
}

func TestInsertAppendRoundTrip(t *testing.T) {
	for col := 0; col < 5; col++ {
		s, _ := newTestSession(t, "hello")
		for i := 0; i < col; i++ {
			apply(t, s, CursorRight)
		}

		apply(t, s, SetMode(Insert(true)))
		assert.Equal(t, col+1, s.Snapshot().Cursor.Col)

		apply(t, s, SetMode(Normal()))
		assert.Equal(t, col, s.Snapshot().Cursor.Col)
	}
}

func TestInsertBeforeKeepsCursor(t *testing.T) {
	s, _ := newTestSession(t, "hello")
	apply(t, s, CursorRight, CursorRight, SetMode(Insert(false)))

	snap := s.Snapshot()
	assert.Equal(t, Insert(false), snap.Mode)
	assert.Equal(t, 2, snap.Cursor.Col)
}

func TestCancelLeavesAppendShift(t *testing.T) {
	s, _ := newTestSession(t, "abc")
	apply(t, s, CursorLineEnd, SetMode(Insert(true)))
	assert.Equal(t, 3, s.Snapshot().Cursor.Col)

	require.NoError(t, s.Cancel(testSize))
	snap := s.Snapshot()
	assert.Equal(t, Normal(), snap.Mode)
	assert.Equal(t, 2, snap.Cursor.Col)
}

func TestDeleteInNormalMode(t *testing.T) {
	s, _ := newTestSession(t, "abc\ndef")
	apply(t, s, CursorRight, CursorRight)

	input(t, s, DeleteInput())

	snap := s.Snapshot()
	assert.Equal(t, []string{"ab", "def"}, snap.Lines)
	assert.Equal(t, Position{Row: 0, Col: 1}, snap.Cursor)
}

func TestDeleteAtLineEndJoins(t *testing.T) {
	s, _ := newTestSession(t, "abc\ndef")
	apply(t, s, SetMode(Insert(true)), CursorLineEnd)

	input(t, s, DeleteInput())
	assert.Equal(t, []string{"abcdef"}, s.Snapshot().Lines)
}

func TestBackspaceJoinsLines(t *testing.T) {
	s, _ := newTestSession(t, "hello\nworld")
	apply(t, s, CursorDown, SetMode(Insert(false)))

	input(t, s, BackspaceInput())

	snap := s.Snapshot()
	assert.Equal(t, []string{"helloworld"}, snap.Lines)
	assert.Equal(t, Position{Row: 0, Col: 5}, snap.Cursor)
}

func TestBackspaceAtDocumentStartIsNoop(t *testing.T) {
	s, _ := newTestSession(t, "hello")
	apply(t, s, SetMode(Insert(false)))

	input(t, s, BackspaceInput())
	assert.Equal(t, []string{"hello"}, s.Snapshot().Lines)
}

func TestTypingAndEnter(t *testing.T) {
	s, _ := newTestSession(t, "ad")
	apply(t, s, CursorRight, SetMode(Insert(false)))

	input(t, s, CharInput('b'), CharInput('\n'), CharInput('c'))

	snap := s.Snapshot()
	assert.Equal(t, []string{"ab", "cd"}, snap.Lines)
	assert.Equal(t, Position{Row: 1, Col: 1}, snap.Cursor)
	assert.True(t, snap.Modified)
}

func TestYankSelection(t *testing.T) {
	s, clip := newTestSession(t, "abcdef\nghijkl")
	apply(t, s, CursorRight, SetMode(Visual(Position{})), CursorDown, CursorRight, CursorRight)

	snap := s.Snapshot()
	require.NotNil(t, snap.Selection)
	assert.Equal(t, Selection{Start: Position{Row: 0, Col: 1}, End: Position{Row: 1, Col: 4}}, *snap.Selection)

	apply(t, s, EditYankSelection)

	text, err := clip.Read()
	require.NoError(t, err)
	assert.Equal(t, "bcdef\nghij\n", text)
	assert.Equal(t, Normal(), s.Mode())
	assert.Equal(t, []string{"abcdef", "ghijkl"}, s.Snapshot().Lines)
}

func TestDeleteSelectionThenPasteRestores(t *testing.T) {
	s, _ := newTestSession(t, "abcdef\nghijkl")
	apply(t, s, CursorRight, SetMode(Visual(Position{})), CursorDown, CursorRight, CursorRight)

	apply(t, s, EditDeleteSelection)

	snap := s.Snapshot()
	assert.Equal(t, []string{"akl"}, snap.Lines)
	assert.Equal(t, Position{Row: 0, Col: 1}, snap.Cursor)
	assert.Equal(t, Normal(), snap.Mode)

	apply(t, s, EditPaste)
	assert.Equal(t, []string{"abcdef", "ghijkl"}, s.Snapshot().Lines)
}

func TestDeleteSelectionWithAnchorAfterCursor(t *testing.T) {
	s, _ := newTestSession(t, "abc\ndef\nghi\njkl")
	apply(t, s, CursorDown, CursorDown, CursorRight, SetMode(Visual(Position{})))
	apply(t, s, CursorUp, CursorUp)

	apply(t, s, EditDeleteSelection)

	snap := s.Snapshot()
	assert.Equal(t, []string{"ai", "jkl"}, snap.Lines)
	assert.Equal(t, Position{Row: 0, Col: 1}, snap.Cursor)
	assert.Equal(t, Normal(), snap.Mode)
}

func TestSelectionOpsOutsideVisualMode(t *testing.T) {
	s, _ := newTestSession(t, "abc")

	assert.ErrorIs(t, s.Apply(EditYankSelection, testSize), ErrNoSelection)
	assert.ErrorIs(t, s.Apply(EditDeleteSelection, testSize), ErrNoSelection)
	assert.Equal(t, []string{"abc"}, s.Snapshot().Lines)
}

func TestDeleteLineAndPaste(t *testing.T) {
	s, clip := newTestSession(t, "one\ntwo\nthree")
	apply(t, s, CursorDown, EditDeleteLine)

	text, err := clip.Read()
	require.NoError(t, err)
	assert.Equal(t, "two", text)
	assert.Equal(t, []string{"one", "three"}, s.Snapshot().Lines)

	apply(t, s, EditPaste)
	snap := s.Snapshot()
	assert.Equal(t, []string{"one", "twothree"}, snap.Lines)
	assert.Equal(t, Position{Row: 1, Col: 3}, snap.Cursor)
}

func TestClipboardFailurePropagates(t *testing.T) {
	cause := errors.New("no clipboard utility")
	s := NewSession(Options{Clipboard: failingClipboard{err: cause}})
	s.AddBuffer(NewBufferFromString("one\ntwo", s.opts))

	err := s.Apply(EditDeleteLine, testSize)
	assert.ErrorIs(t, err, ErrClipboard)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"one", "two"}, s.Snapshot().Lines)

	assert.ErrorIs(t, s.Apply(EditPaste, testSize), ErrClipboard)
	assert.ErrorIs(t, s.Apply(EditYankLine, testSize), ErrClipboard)
}

func TestCommandInput(t *testing.T) {
	s, _ := newTestSession(t, "abc")
	apply(t, s, SetMode(Command()))

	input(t, s, CharInput('w'), CharInput('q'))
	assert.Equal(t, "wq", s.Snapshot().CommandInput)

	input(t, s, BackspaceInput())
	assert.Equal(t, "w", s.Snapshot().CommandInput)

	input(t, s, CharInput('\n'))
	snap := s.Snapshot()
	assert.Equal(t, Normal(), snap.Mode)
	assert.Empty(t, snap.CommandInput)
	assert.Equal(t, []string{"abc"}, snap.Lines)

	signals := drainSignals(s)
	require.Len(t, signals, 1)
	run, ok := signals[0].(RunCommandSignal)
	require.True(t, ok)
	assert.Equal(t, "w", run.Value())
}

func TestCommandBackspaceOnEmptyExits(t *testing.T) {
	s, _ := newTestSession(t, "abc")
	apply(t, s, SetMode(Command()))

	input(t, s, BackspaceInput())
	assert.Equal(t, Normal(), s.Mode())
	assert.Empty(t, drainSignals(s))
}

func TestExecuteGoToLine(t *testing.T) {
	s, _ := newTestSession(t, "1\n2\n3\n4\n5")

	require.NoError(t, s.ExecuteCommand("3", testSize))
	assert.Equal(t, Position{Row: 2, Col: 0}, s.Snapshot().Cursor)

	require.NoError(t, s.ExecuteCommand("99", testSize))
	assert.Equal(t, 4, s.Snapshot().Cursor.Row)
}

func TestExecuteInvalidCommand(t *testing.T) {
	s, _ := newTestSession(t, "abc")

	assert.ErrorIs(t, s.ExecuteCommand("frobnicate", testSize), ErrInvalidCommand)
	assert.ErrorIs(t, s.ExecuteCommand("e", testSize), ErrInvalidCommand)
	assert.NoError(t, s.ExecuteCommand("  ", testSize))
}

func TestQuitRefusesUnsavedChanges(t *testing.T) {
	s, _ := newTestSession(t, "abc")
	apply(t, s, SetMode(Insert(false)))
	input(t, s, CharInput('x'))

	assert.ErrorIs(t, s.ExecuteCommand("q", testSize), ErrUnsavedChanges)
	assert.Equal(t, 1, s.Snapshot().BufferCount)

	require.NoError(t, s.ExecuteCommand("q!", testSize))
	assert.Equal(t, 0, s.Snapshot().BufferCount)

	var quit bool
	for _, sig := range drainSignals(s) {
		if _, ok := sig.(QuitSignal); ok {
			quit = true
		}
	}
	assert.True(t, quit)
}

func TestRunCommandReportsErrors(t *testing.T) {
	s, _ := newTestSession(t, "abc")
	s.RunCommand("nope", testSize)

	signals := drainSignals(s)
	require.Len(t, signals, 1)
	sig, ok := signals[0].(ErrorSignal)
	require.True(t, ok)

	id, err := sig.Value()
	assert.Equal(t, ErrInvalidCommandId, id)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestBufferCommands(t *testing.T) {
	s, _ := newTestSession(t, "first")

	require.NoError(t, s.ExecuteCommand("enew", testSize))
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.BufferCount)
	assert.Equal(t, 1, snap.BufferIndex)
	assert.Equal(t, []string{"", ""}, snap.Lines)

	require.NoError(t, s.ExecuteCommand("bn", testSize))
	assert.Equal(t, 0, s.Snapshot().BufferIndex)

	require.NoError(t, s.ExecuteCommand("bp", testSize))
	assert.Equal(t, 1, s.Snapshot().BufferIndex)

	require.NoError(t, s.ExecuteCommand("bd", testSize))
	snap = s.Snapshot()
	assert.Equal(t, 1, snap.BufferCount)
	assert.Equal(t, []string{"first"}, snap.Lines)
}

func TestOpenEditSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld"), 0o644))

	s := NewSession(Options{Clipboard: &MemoryClipboard{}})
	require.NoError(t, s.Open(path))

	snap := s.Snapshot()
	assert.Equal(t, []string{"hello", "world"}, snap.Lines)
	assert.Equal(t, "notes.md", snap.Name)
	assert.Equal(t, LanguageMarkdown, snap.Language)
	assert.False(t, snap.Modified)

	apply(t, s, SetMode(Insert(false)))
	input(t, s, CharInput('X'))
	assert.True(t, s.Snapshot().Modified)

	require.NoError(t, s.ExecuteCommand("w", testSize))
	assert.False(t, s.Snapshot().Modified)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Xhello\nworld\n", string(data))

	var saved bool
	for _, sig := range drainSignals(s) {
		if save, ok := sig.(SaveSignal); ok {
			saved = true
			assert.Equal(t, path, save.Value())
		}
	}
	assert.True(t, saved)
}

func TestSaveUntitled(t *testing.T) {
	s, _ := newTestSession(t, "draft")

	assert.ErrorIs(t, s.ExecuteCommand("w", testSize), ErrNoFile)

	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, s.ExecuteCommand("w "+path, testSize))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "draft\n", string(data))
	assert.Equal(t, "draft.txt", s.Snapshot().Name)
}

func TestOpenFailure(t *testing.T) {
	s := NewSession(Options{Clipboard: &MemoryClipboard{}})

	err := s.Open(t.TempDir())
	assert.ErrorIs(t, err, ErrFileOpenFailed)
	assert.Equal(t, 0, s.Snapshot().BufferCount)
}

func TestOpenMissingFileCreatesOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.go")
	s := NewSession(Options{Clipboard: &MemoryClipboard{}})

	require.NoError(t, s.Open(path))
	snap := s.Snapshot()
	assert.Equal(t, []string{""}, snap.Lines)
	assert.Equal(t, "new.go", snap.Name)
	assert.Equal(t, LanguageGo, snap.Language)

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	apply(t, s, SetMode(Insert(false)))
	input(t, s, CharInput('x'))
	require.NoError(t, s.ExecuteCommand("w", testSize))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "file.txt")
	s := NewSession(Options{Clipboard: &MemoryClipboard{}})
	require.NoError(t, s.Open(path))

	assert.ErrorIs(t, s.ExecuteCommand("w", testSize), ErrFileOpenFailed)
}

func TestLineCount(t *testing.T) {
	s := NewSession(Options{Clipboard: &MemoryClipboard{}})
	assert.Equal(t, 0, s.LineCount())

	s.AddBuffer(NewBufferFromString("a\nb\nc", s.opts))
	assert.Equal(t, 3, s.LineCount())
}

func TestClickAndScroll(t *testing.T) {
	s, _ := newTestSession(t, "abc\ndef\nghi\njkl\nmno")
	size := WindowSize{Columns: 80, Rows: 2}

	require.NoError(t, s.Click(ClickEvent{X: 10, Y: 1}, size))
	assert.Equal(t, Position{Row: 1, Col: 2}, s.Snapshot().Cursor)

	require.NoError(t, s.Scroll(ScrollEvent{DY: 2}, size))
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Scroll.Row)
	assert.Equal(t, 2, snap.Cursor.Row)
}

func TestSnapshotWithoutBuffer(t *testing.T) {
	s := NewSession(Options{Clipboard: &MemoryClipboard{}})
	snap := s.Snapshot()

	assert.False(t, snap.HasBuffer)
	assert.Equal(t, -1, snap.BufferIndex)
	assert.Nil(t, snap.Selection)
}

// TestConcurrentEditAndSnapshot edits from one goroutine while another takes
// snapshots. Each snapshot must show a finished action. Run with -race.
func TestConcurrentEditAndSnapshot(t *testing.T) {
	s, _ := newTestSession(t, strings.Repeat("line\n", 30))

	steps := []func() error{
		func() error { return s.Apply(SetMode(Insert(true)), testSize) },
		func() error { return s.HandleEvent(CharInput('x'), testSize) },
		func() error { return s.HandleEvent(CharInput('\n'), testSize) },
		func() error { return s.Cancel(testSize) },
		func() error { return s.Apply(CursorBottom, testSize) },
		func() error { return s.Apply(SetMode(Visual(Position{})), testSize) },
		func() error { return s.Apply(CursorUp, testSize) },
		func() error { return s.Apply(EditDeleteSelection, testSize) },
		func() error { return s.Apply(CursorTop, testSize) },
		func() error { return s.Apply(EditPaste, testSize) },
		func() error { return s.Scroll(ScrollEvent{DY: 3}, testSize) },
		func() error { return s.HandleEvent(BackspaceInput(), testSize) },
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 100; i++ {
			for _, step := range steps {
				if err := step(); err != nil {
					t.Errorf("step failed: %v", err)
					return
				}
			}
		}
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}

			snap := s.Snapshot()
			if !assert.True(t, snap.HasBuffer) {
				return
			}
			row, top := snap.Cursor.Row, snap.Scroll.Row
			if !assert.Less(t, row, len(snap.Lines)) ||
				!assert.True(t, top <= row && row <= top+testSize.Rows-1, "top %d row %d", top, row) {
				return
			}
			if snap.Mode.Name == NormalMode && len([]rune(snap.Lines[row])) > 0 {
				assert.Less(t, snap.Cursor.Col, len([]rune(snap.Lines[row])))
			}
		}
	}()

	wg.Wait()
}
