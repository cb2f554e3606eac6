package core

import "fmt"

// Action is a logical editing command, already resolved from whatever key or
// gesture produced it. The set is closed: CursorAction, EditAction and ModeAction.
type Action interface {
	isAction()
}

type CursorAction int

const (
	CursorLeft CursorAction = iota
	CursorRight
	CursorUp
	CursorDown
	CursorLineStart
	CursorLineEnd
	CursorTop
	CursorBottom
	CursorNextWord
	CursorBackWord
)

func (CursorAction) isAction() {}

func (a CursorAction) String() string {
	switch a {
	case CursorLeft:
		return "left"
	case CursorRight:
		return "right"
	case CursorUp:
		return "up"
	case CursorDown:
		return "down"
	case CursorLineStart:
		return "line-start"
	case CursorLineEnd:
		return "line-end"
	case CursorTop:
		return "top"
	case CursorBottom:
		return "bottom"
	case CursorNextWord:
		return "next-word"
	case CursorBackWord:
		return "back-word"
	}
	return fmt.Sprintf("cursor(%d)", int(a))
}

type EditAction int

const (
	EditDeleteLine EditAction = iota
	EditYankLine
	EditDeleteSelection
	EditYankSelection
	EditPaste
)

func (EditAction) isAction() {}

func (a EditAction) String() string {
	switch a {
	case EditDeleteLine:
		return "delete-line"
	case EditYankLine:
		return "yank-line"
	case EditDeleteSelection:
		return "delete-selection"
	case EditYankSelection:
		return "yank-selection"
	case EditPaste:
		return "paste"
	}
	return fmt.Sprintf("edit(%d)", int(a))
}

// ModeAction requests a transition to Mode.
type ModeAction struct {
	Mode EditorMode
}

func (ModeAction) isAction() {}

func SetMode(mode EditorMode) ModeAction {
	return ModeAction{Mode: mode}
}

type InputKind int

const (
	InputChar InputKind = iota
	InputBackspace
	InputDelete
)

// InputEvent is raw text input. Enter is delivered as InputChar with Char '\n'.
type InputEvent struct {
	Kind InputKind
	Char rune
}

func CharInput(ch rune) InputEvent {
	return InputEvent{Kind: InputChar, Char: ch}
}

func BackspaceInput() InputEvent {
	return InputEvent{Kind: InputBackspace}
}

func DeleteInput() InputEvent {
	return InputEvent{Kind: InputDelete}
}

// ClickEvent is a pointer press at a document position, already translated
// from screen cells by the caller (gutter removed, scroll added).
type ClickEvent struct {
	X int
	Y int
}

// ScrollEvent is a wheel or trackpad scroll, in rows and columns.
type ScrollEvent struct {
	DX int
	DY int
}
