package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/modaledit/adapter-bubbletea"
	"github.com/ionut-t/modaledit/core"
	"github.com/ionut-t/modaledit/internal/config"
	"github.com/ionut-t/modaledit/internal/logger"
	"golang.org/x/term"
)

type Model struct {
	editor editor.Model
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editor.SaveMsg:
		logger.Info("saved %s", msg.Path)

	case editor.ErrorMsg:
		logger.Error("%v", msg.Error)

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return m.editor.View()
}

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "modaledit needs an interactive terminal")
		os.Exit(1)
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Fatalf("Error locating config: %v", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := logger.Init(cfg.LogFile); err != nil {
		log.Fatalf("Error opening log file: %v", err)
	}
	defer logger.Close()

	session := core.NewSession(cfg.SessionOptions())

	files := flag.Args()
	if len(files) == 0 {
		files = []string{""}
	}
	for _, file := range files {
		if err := session.Open(file); err != nil {
			fail("Error opening %s: %v", file, err)
		}
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	textEditor := editor.New(session, cfg.Theme, width, height)
	textEditor.HideLineNumbers(!cfg.LineNumbers)
	textEditor.SetCursorBlink(true)
	textEditor.Focus()

	p := tea.NewProgram(Model{editor: textEditor}, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fail("Error running Bubble Tea program: %v", err)
	}
}

// fail reports to both the log file and stderr; the standard logger is
// already redirected to the file at this point.
func fail(format string, args ...any) {
	logger.Error(format, args...)
	_ = logger.Close()
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
