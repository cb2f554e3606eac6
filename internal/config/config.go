package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ionut-t/modaledit/core"
)

const (
	ClipboardSystem = "system"
	ClipboardMemory = "memory"
)

// Config is the user configuration read from config.toml.
type Config struct {
	TabWidth    int    `toml:"tab_width"`
	Theme       string `toml:"theme"`
	LineNumbers bool   `toml:"line_numbers"`
	Clipboard   string `toml:"clipboard"`
	LogFile     string `toml:"log_file"`
}

func Default() Config {
	return Config{
		TabWidth:    core.DefaultTabWidth,
		Theme:       core.DefaultTheme,
		LineNumbers: true,
		Clipboard:   ClipboardSystem,
		LogFile:     filepath.Join(os.TempDir(), "modaledit.log"),
	}
}

// DefaultPath is $XDG_CONFIG_HOME/modaledit/config.toml, falling back to the
// platform config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "modaledit", "config.toml"), nil
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab_width must be between 1 and 16, got %d", c.TabWidth)
	}
	if c.Clipboard != ClipboardSystem && c.Clipboard != ClipboardMemory {
		return fmt.Errorf("clipboard must be %q or %q, got %q", ClipboardSystem, ClipboardMemory, c.Clipboard)
	}
	return nil
}

// SessionOptions translates the configuration into editor session options.
func (c Config) SessionOptions() core.Options {
	var clip core.Clipboard = core.NewSystemClipboard()
	if c.Clipboard == ClipboardMemory {
		clip = &core.MemoryClipboard{}
	}

	return core.Options{
		TabWidth:  c.TabWidth,
		Theme:     c.Theme,
		Clipboard: clip,
	}
}
