package adapter_bubbletea

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/modaledit/core"
)

// KeyMap binds keys to editor actions. Operators that take two presses
// (dd, yy, gg) bind the single key; the second press is matched against the
// pending key.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	Top       key.Binding
	Bottom    key.Binding
	NextWord  key.Binding
	BackWord  key.Binding

	Insert  key.Binding
	Append  key.Binding
	Visual  key.Binding
	Command key.Binding
	Cancel  key.Binding

	Delete     key.Binding
	Yank       key.Binding
	Paste      key.Binding
	DeleteChar key.Binding
	Save       key.Binding
}

var DefaultKeyMap = KeyMap{
	Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "left")),
	Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "right")),
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	LineStart: key.NewBinding(key.WithKeys("0", "home"), key.WithHelp("0", "line start")),
	LineEnd:   key.NewBinding(key.WithKeys("$", "end"), key.WithHelp("$", "line end")),
	Top:       key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "top")),
	Bottom:    key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
	NextWord:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next word")),
	BackWord:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous word")),

	Insert:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert")),
	Append:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "append")),
	Visual:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "visual")),
	Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "normal mode")),

	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("dd", "delete line")),
	Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("yy", "yank line")),
	Paste:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
	DeleteChar: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete character")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
}

// Resolution is what a key press means in the current mode. At most one of
// Action, Inputs, Cancel and Command is set. Pending is the operator key
// waiting for its second press.
type Resolution struct {
	Action  core.Action
	Inputs  []core.InputEvent
	Cancel  bool
	Command string
	Pending string
}

// Resolve maps msg to an editor action for mode, given the pending operator
// key from the previous press.
func (k KeyMap) Resolve(msg tea.KeyMsg, mode core.EditorMode, pending string) Resolution {
	if key.Matches(msg, k.Cancel) {
		return Resolution{Cancel: true}
	}
	if key.Matches(msg, k.Save) {
		return Resolution{Command: "w"}
	}

	switch mode.Name {
	case core.InsertMode:
		return k.resolveInsert(msg)
	case core.CommandMode:
		return Resolution{Inputs: textInputs(msg)}
	case core.VisualMode:
		return k.resolveVisual(msg)
	default:
		return k.resolveNormal(msg, pending)
	}
}

func (k KeyMap) resolveNormal(msg tea.KeyMsg, pending string) Resolution {
	if pending != "" {
		switch {
		case pending == "d" && key.Matches(msg, k.Delete):
			return Resolution{Action: core.EditDeleteLine}
		case pending == "y" && key.Matches(msg, k.Yank):
			return Resolution{Action: core.EditYankLine}
		case pending == "g" && key.Matches(msg, k.Top):
			return Resolution{Action: core.CursorTop}
		}
	}

	switch {
	case key.Matches(msg, k.Delete):
		return Resolution{Pending: "d"}
	case key.Matches(msg, k.Yank):
		return Resolution{Pending: "y"}
	case key.Matches(msg, k.Top):
		return Resolution{Pending: "g"}
	case key.Matches(msg, k.Insert):
		return Resolution{Action: core.SetMode(core.Insert(false))}
	case key.Matches(msg, k.Append):
		return Resolution{Action: core.SetMode(core.Insert(true))}
	case key.Matches(msg, k.Visual):
		return Resolution{Action: core.SetMode(core.Visual(core.Position{}))}
	case key.Matches(msg, k.Command):
		return Resolution{Action: core.SetMode(core.Command())}
	case key.Matches(msg, k.Paste):
		return Resolution{Action: core.EditPaste}
	case key.Matches(msg, k.DeleteChar):
		return Resolution{Inputs: []core.InputEvent{core.DeleteInput()}}
	}

	if action, ok := k.cursorAction(msg); ok {
		return Resolution{Action: action}
	}
	return Resolution{}
}

func (k KeyMap) resolveVisual(msg tea.KeyMsg) Resolution {
	switch {
	case key.Matches(msg, k.Delete), key.Matches(msg, k.DeleteChar):
		return Resolution{Action: core.EditDeleteSelection}
	case key.Matches(msg, k.Yank):
		return Resolution{Action: core.EditYankSelection}
	case key.Matches(msg, k.Visual):
		return Resolution{Cancel: true}
	case key.Matches(msg, k.Top):
		return Resolution{Action: core.CursorTop}
	}

	if action, ok := k.cursorAction(msg); ok {
		return Resolution{Action: action}
	}
	return Resolution{}
}

// resolveInsert only honours the arrow and home/end keys as motions; every
// printable key is text.
func (k KeyMap) resolveInsert(msg tea.KeyMsg) Resolution {
	switch msg.Type {
	case tea.KeyLeft:
		return Resolution{Action: core.CursorLeft}
	case tea.KeyRight:
		return Resolution{Action: core.CursorRight}
	case tea.KeyUp:
		return Resolution{Action: core.CursorUp}
	case tea.KeyDown:
		return Resolution{Action: core.CursorDown}
	case tea.KeyHome:
		return Resolution{Action: core.CursorLineStart}
	case tea.KeyEnd:
		return Resolution{Action: core.CursorLineEnd}
	}
	return Resolution{Inputs: textInputs(msg)}
}

func (k KeyMap) cursorAction(msg tea.KeyMsg) (core.CursorAction, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.CursorLeft, true
	case key.Matches(msg, k.Right):
		return core.CursorRight, true
	case key.Matches(msg, k.Up):
		return core.CursorUp, true
	case key.Matches(msg, k.Down):
		return core.CursorDown, true
	case key.Matches(msg, k.LineStart):
		return core.CursorLineStart, true
	case key.Matches(msg, k.LineEnd):
		return core.CursorLineEnd, true
	case key.Matches(msg, k.Bottom):
		return core.CursorBottom, true
	case key.Matches(msg, k.NextWord):
		return core.CursorNextWord, true
	case key.Matches(msg, k.BackWord):
		return core.CursorBackWord, true
	}
	return 0, false
}

// textInputs converts a key press into raw text events.
func textInputs(msg tea.KeyMsg) []core.InputEvent {
	switch msg.Type {
	case tea.KeyEnter:
		return []core.InputEvent{core.CharInput('\n')}
	case tea.KeyBackspace:
		return []core.InputEvent{core.BackspaceInput()}
	case tea.KeyDelete:
		return []core.InputEvent{core.DeleteInput()}
	case tea.KeyTab:
		return []core.InputEvent{core.CharInput('\t')}
	case tea.KeySpace:
		return []core.InputEvent{core.CharInput(' ')}
	case tea.KeyRunes:
		events := make([]core.InputEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, core.CharInput(r))
		}
		return events
	}
	return nil
}

// ShortHelp lists the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Visual, k.Command, k.Delete, k.Yank, k.Paste, k.Save}
}
