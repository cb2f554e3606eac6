package core

import (
	"errors"
	"io/fs"
	"path/filepath"
)

const untitledName = "[No Name]"

// Buffer is one open document: its lines, cursor and viewport, plus the file
// it was loaded from, if any.
type Buffer struct {
	content *Content
	cursor  Cursor
	scroll  Scroll

	file     File
	create   FileOpener
	path     string
	saved    string
	language Language

	theme      string
	tabWidth   int
	highlights []HighlightToken
}

// NewBuffer returns an untitled, empty buffer.
func NewBuffer(opts Options) *Buffer {
	opts = opts.withDefaults()
	b := &Buffer{
		content:  NewContent(),
		create:   opts.Creator,
		theme:    opts.Theme,
		tabWidth: opts.TabWidth,
	}
	b.saved = b.content.Text()
	return b
}

// NewBufferFromString returns an untitled buffer holding text.
func NewBufferFromString(text string, opts Options) *Buffer {
	b := NewBuffer(opts)
	b.content.SetString(text)
	b.saved = b.content.Text()
	return b
}

// OpenBuffer opens path through opener and loads it. The file stays open
// until the buffer is closed so Save can write back through the same handle.
// A path that does not exist yet gives an empty buffer; the file is only
// created when the buffer is saved.
func OpenBuffer(path string, opts Options) (*Buffer, error) {
	opts = opts.withDefaults()

	f, err := opts.Opener(path)
	if errors.Is(err, fs.ErrNotExist) {
		b := NewBufferFromString("", opts)
		b.path = path
		b.language = DetectLanguage(path)
		return b, nil
	}
	if err != nil {
		return nil, wrapErr(ErrFileOpenFailed, err)
	}

	text, err := readFile(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	b := NewBufferFromString(text, opts)
	b.file = f
	b.path = path
	b.language = DetectLanguage(path)
	b.refreshHighlights()

	return b, nil
}

func (b *Buffer) Path() string {
	return b.path
}

// Name is the file name shown to the user.
func (b *Buffer) Name() string {
	if b.path == "" {
		return untitledName
	}
	return filepath.Base(b.path)
}

func (b *Buffer) Language() Language {
	return b.language
}

func (b *Buffer) Lines() []string {
	return b.content.Lines()
}

func (b *Buffer) LineCount() int {
	return b.content.LineCount()
}

func (b *Buffer) String() string {
	return b.content.String()
}

func (b *Buffer) Highlights() []HighlightToken {
	return b.highlights
}

// IsModified reports whether the text differs from what was last loaded or saved.
func (b *Buffer) IsModified() bool {
	return b.content.Text() != b.saved
}

// Cursor returns the cursor clamped for mode.
func (b *Buffer) Cursor(mode EditorMode) Position {
	return b.cursor.Get(b.content, mode)
}

// DrawCursor returns the terminal cell of the cursor, relative to the document.
func (b *Buffer) DrawCursor(mode EditorMode) Position {
	return b.cursor.DrawPosition(b.content, mode, b.tabWidth)
}

func (b *Buffer) Scroll() Position {
	return b.scroll.Get()
}

func (b *Buffer) CursorSync(mode EditorMode) {
	b.cursor.Sync(b.content, mode)
}

// CursorMoveBy moves the cursor by (dx, dy) and keeps it in view.
func (b *Buffer) CursorMoveBy(dx, dy int, mode EditorMode, size WindowSize) {
	b.cursor.MoveByY(dy, b.content)
	b.cursor.MoveByX(dx, b.content, mode)
	b.syncScroll(size)
}

// CursorMoveTo moves the cursor to p, clamped, and keeps it in view.
func (b *Buffer) CursorMoveTo(p Position, mode EditorMode, size WindowSize) {
	b.cursor.MoveTo(p, b.content, mode)
	b.syncScroll(size)
}

func (b *Buffer) syncScroll(size WindowSize) {
	b.scroll.SyncToCursor(b.cursor.Raw().Row, size.viewportHeight())
}

func (b *Buffer) refreshHighlights() {
	b.highlights = b.language.HighlightWithTheme(b.content.String(), b.theme)
}

// Apply runs a cursor or edit action against the buffer. Mode actions are
// handled by the session and are ignored here.
func (b *Buffer) Apply(action Action, mode EditorMode, clip Clipboard, size WindowSize) error {
	switch a := action.(type) {
	case CursorAction:
		b.applyCursor(a, mode, size)
		return nil
	case EditAction:
		return b.applyEdit(a, mode, clip, size)
	default:
		return nil
	}
}

func (b *Buffer) applyCursor(action CursorAction, mode EditorMode, size WindowSize) {
	switch action {
	case CursorLeft:
		b.cursor.MoveByX(-1, b.content, mode)
	case CursorRight:
		b.cursor.MoveByX(1, b.content, mode)
	case CursorUp:
		b.cursor.MoveByY(-1, b.content)
	case CursorDown:
		b.cursor.MoveByY(1, b.content)
	case CursorLineStart:
		b.cursor.MoveToX(0, b.content, mode)
	case CursorLineEnd:
		b.cursor.MoveToX(b.content.LineLength(b.cursor.Raw().Row), b.content, mode)
	case CursorTop:
		b.cursor.MoveToY(0, b.content)
	case CursorBottom:
		b.cursor.MoveToY(b.content.LineCount()-1, b.content)
	case CursorNextWord:
		b.cursor.MoveToNextWord(b.content, mode)
	case CursorBackWord:
		b.cursor.MoveToBackWord(b.content, mode)
	}
	b.syncScroll(size)
}

// applyEdit writes to the clipboard before touching the text, so a clipboard
// failure leaves the document as it was.
func (b *Buffer) applyEdit(action EditAction, mode EditorMode, clip Clipboard, size WindowSize) error {
	pos := b.cursor.Get(b.content, mode)

	switch action {
	case EditDeleteLine:
		if err := writeClipboard(clip, b.content.Line(pos.Row)); err != nil {
			return err
		}
		b.content.DeleteLine(pos.Row)
		b.cursor.SyncY(b.content)

	case EditYankLine:
		return writeClipboard(clip, b.content.Line(pos.Row))

	case EditDeleteSelection:
		sel, err := b.selection(mode)
		if err != nil {
			return err
		}
		if err := writeClipboard(clip, b.content.Range(sel.Start, sel.End)); err != nil {
			return err
		}
		b.content.DeleteRange(sel.Start, sel.End)
		// The anchor is sel.Start unless it was the later endpoint, in which
		// case it pointed into text that is now gone.
		b.cursor.MoveTo(sel.Start, b.content, Normal())

	case EditYankSelection:
		sel, err := b.selection(mode)
		if err != nil {
			return err
		}
		if err := writeClipboard(clip, b.content.Range(sel.Start, sel.End)); err != nil {
			return err
		}
		b.cursor.MoveTo(sel.Start, b.content, Normal())
		b.syncScroll(size)
		return nil

	case EditPaste:
		text, err := clip.Read()
		if err != nil {
			return wrapErr(ErrClipboard, err)
		}
		end, _ := b.content.Paste(pos.Col, pos.Row, text)
		b.cursor.position = end
	}

	b.refreshHighlights()
	b.syncScroll(size)
	return nil
}

func writeClipboard(clip Clipboard, text string) error {
	if err := clip.Write(text); err != nil {
		return wrapErr(ErrClipboard, err)
	}
	return nil
}

// OnInputEvent applies typed text. Backspace at the start of a line joins it
// onto the previous one and leaves the cursor at the previous line's original
// length.
func (b *Buffer) OnInputEvent(event InputEvent, mode EditorMode, size WindowSize) {
	pos := b.cursor.Get(b.content, mode)

	switch event.Kind {
	case InputChar:
		b.content.InsertChar(pos.Col, pos.Row, event.Char)
		if event.Char == '\n' {
			b.cursor.position = Position{Row: pos.Row + 1}
		} else {
			b.cursor.position = Position{Row: pos.Row, Col: pos.Col + 1}
		}

	case InputBackspace:
		switch {
		case pos.Col > 0:
			b.content.DeleteChar(pos.Col-1, pos.Row)
			b.cursor.position.Col = pos.Col - 1
		case pos.Row > 0:
			prevLen := b.content.LineLength(pos.Row - 1)
			b.content.JoinLines(pos.Row - 1)
			b.cursor.position = Position{Row: pos.Row - 1, Col: prevLen}
		default:
			return
		}

	case InputDelete:
		if pos.Col >= b.content.LineLength(pos.Row) {
			b.content.JoinLines(pos.Row)
		} else {
			b.content.DeleteChar(pos.Col, pos.Row)
		}
	}

	b.refreshHighlights()
	b.syncScroll(size)
}

// OnClick moves the cursor to a document position.
func (b *Buffer) OnClick(event ClickEvent, mode EditorMode, size WindowSize) {
	b.CursorMoveTo(Position{Row: event.Y, Col: event.X}, mode, size)
}

// OnScroll moves the viewport and drags the cursor along when it would
// otherwise leave it.
func (b *Buffer) OnScroll(event ScrollEvent, size WindowSize) {
	height := size.viewportHeight()
	b.scroll.ScrollBy(Position{Row: event.DY, Col: event.DX}, b.content.LineCount(), height)

	top := b.scroll.Get().Row
	row := clampInt(b.cursor.Raw().Row, top, top+height-1)
	b.cursor.MoveToY(row, b.content)
	b.syncScroll(size)
}

// Save writes the buffer back to its file, creating the file on first save.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoFile
	}
	if b.file == nil {
		f, err := b.create(b.path)
		if err != nil {
			return wrapErr(ErrFileOpenFailed, err)
		}
		b.file = f
	}

	text := b.content.Text()
	if err := writeFile(b.file, text); err != nil {
		return err
	}
	b.saved = text
	return nil
}

// SaveAs points the buffer at path and saves it there. The previous file, if
// any, is closed once the new one is open.
func (b *Buffer) SaveAs(path string, opener FileOpener) error {
	f, err := opener(path)
	if err != nil {
		return wrapErr(ErrFileOpenFailed, err)
	}

	old := b.file
	b.file, b.path = f, path
	b.language = DetectLanguage(path)
	b.refreshHighlights()

	if old != nil {
		_ = old.Close()
	}
	return b.Save()
}

// Close releases the file handle.
func (b *Buffer) Close() error {
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	if err != nil {
		return wrapErr(ErrFileWriteFailed, err)
	}
	return nil
}
