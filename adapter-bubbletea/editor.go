package adapter_bubbletea

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/modaledit/adapter-bubbletea/highlighter"
	"github.com/ionut-t/modaledit/core"
)

type Theme struct {
	NormalModeStyle        lipgloss.Style
	InsertModeStyle        lipgloss.Style
	VisualModeStyle        lipgloss.Style
	CommandModeStyle       lipgloss.Style
	StatusLineStyle        lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	CursorStyle            lipgloss.Style
	ErrorStyle             lipgloss.Style
	PlaceholderStyle       lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	VisualModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	CommandModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(4).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	CursorStyle:            lipgloss.NewStyle().Reverse(true),
	PlaceholderStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

const (
	messageDuration     = 3 * time.Second
	cursorBlinkInterval = 500 * time.Millisecond
)

type Model struct {
	session         *core.Session
	keys            KeyMap
	highlighter     *highlighter.Highlighter
	viewport        viewport.Model
	theme           Theme
	width           int
	height          int
	showLineNumbers bool
	showStatusLine  bool
	StatusLineFunc  func() string
	pending         string
	err             error
	message         string
	isFocused       bool
	cursorBlink     bool
	cursorVisible   bool
	clearMsgCancel  context.CancelFunc
}

type ErrorMsg struct {
	ID    core.ErrorId
	Error error
}

type MessageMsg struct {
	ID      string
	Message string
}

type SaveMsg struct {
	Path string
}

type RunCommandMsg struct {
	Command string
}

type QuitMsg struct{}

type clearMsg struct{}

type cursorBlinkMsg struct{}

// New creates the editor view over session. width and height cover the whole
// editor including the status and command lines.
func New(session *core.Session, theme string, width, height int) Model {
	m := Model{
		session:         session,
		keys:            DefaultKeyMap,
		highlighter:     highlighter.New(theme),
		viewport:        viewport.New(width, height-2),
		theme:           DefaultTheme,
		showLineNumbers: true,
		showStatusLine:  true,
		cursorVisible:   true,
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = m.textHeight()
}

// WindowSize is the text area handed to the session for scroll arithmetic.
func (m *Model) WindowSize() core.WindowSize {
	return core.WindowSize{
		Columns: max(m.width-m.calculateLineNumberWidth(m.session.LineCount()), 1),
		Rows:    m.textHeight(),
	}
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// WithKeyMap replaces the key bindings.
func (m *Model) WithKeyMap(keys KeyMap) {
	m.keys = keys
}

// HideLineNumbers controls whether to show line numbers in the viewport.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
}

// HideStatusLine controls whether to show the status line at the bottom of the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

// SetCursorBlink turns cursor blinking on or off.
func (m *Model) SetCursorBlink(blink bool) {
	m.cursorBlink = blink
	m.cursorVisible = true
}

func (m *Model) Session() *core.Session {
	return m.session
}

func (m *Model) Focus() {
	m.isFocused = true
	m.cursorVisible = true
}

func (m *Model) Blur() {
	m.isFocused = false
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

// DispatchMessage shows message in the command line for duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil
	return m.dispatchClearMsg(duration)
}

// DispatchError shows err in the command line for duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.message = ""
	m.err = err
	return m.dispatchClearMsg(duration)
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenForEditorUpdate(), m.CursorBlink())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}
		if err := m.handleKey(msg); err != nil {
			cmds = append(cmds, m.DispatchError(err, messageDuration))
		}
		m.cursorVisible = true

	case tea.MouseMsg:
		if !m.IsFocused() {
			break
		}
		if err := m.handleMouse(msg); err != nil {
			cmds = append(cmds, m.DispatchError(err, messageDuration))
		}

	case RunCommandMsg:
		m.session.RunCommand(msg.Command, m.WindowSize())

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, messageDuration))

	case MessageMsg:
		if msg.Message != "" {
			cmds = append(cmds, m.DispatchMessage(msg.Message, messageDuration))
		}

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case cursorBlinkMsg:
		if m.isFocused && m.cursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = true
		}
	}

	// One listener is kept in flight: Init starts it and every signal it
	// delivers starts the next.
	switch msg.(type) {
	case RunCommandMsg, ErrorMsg, MessageMsg, SaveMsg, signalDropMsg:
		cmds = append(cmds, m.listenForEditorUpdate())
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) error {
	size := m.WindowSize()
	res := m.keys.Resolve(msg, m.session.Mode(), m.pending)
	m.pending = res.Pending

	switch {
	case res.Cancel:
		return m.session.Cancel(size)
	case res.Command != "":
		m.session.RunCommand(res.Command, size)
		return nil
	case res.Action != nil:
		return m.session.Apply(res.Action, size)
	}

	for _, input := range res.Inputs {
		if err := m.session.HandleEvent(input, size); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) error {
	size := m.WindowSize()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.session.Scroll(core.ScrollEvent{DY: -1}, size)
	case tea.MouseButtonWheelDown:
		return m.session.Scroll(core.ScrollEvent{DY: 1}, size)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || msg.Y >= m.textHeight() {
			return nil
		}
		snap := m.session.Snapshot()
		if !snap.HasBuffer {
			return nil
		}

		row := min(snap.Scroll.Row+msg.Y, len(snap.Lines)-1)
		cell := max(msg.X-m.calculateLineNumberWidth(len(snap.Lines)), 0)
		col := core.ColumnAtCell([]rune(snap.Lines[row]), cell, snap.TabWidth)

		return m.session.Click(core.ClickEvent{X: col, Y: row}, size)
	}
	return nil
}

func (m Model) View() string {
	snap := m.session.Snapshot()
	m.viewport.SetContent(m.renderDocument(snap))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		m.getStatusLine(snap),
		m.getCommandLine(snap),
	)
}

// signalDropMsg is returned for signals the model has no use for, so the
// listener is restarted.
type signalDropMsg struct{}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	signals := m.session.Signals()

	return func() tea.Msg {
		signal := <-signals

		switch signal := signal.(type) {
		case core.ErrorSignal:
			id, err := signal.Value()
			return ErrorMsg{ID: id, Error: err}

		case core.MessageSignal:
			id, message := signal.Value()
			return MessageMsg{ID: id, Message: message}

		case core.SaveSignal:
			return SaveMsg{Path: signal.Value()}

		case core.RunCommandSignal:
			return RunCommandMsg{Command: signal.Value()}

		case core.QuitSignal:
			return QuitMsg{}
		}

		return signalDropMsg{}
	}
}

// CursorBlink schedules the next blink toggle.
func (m *Model) CursorBlink() tea.Cmd {
	if !m.cursorBlink {
		return nil
	}
	return tea.Tick(cursorBlinkInterval, func(time.Time) tea.Msg {
		return cursorBlinkMsg{}
	})
}
