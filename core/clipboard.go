package core

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard is the register yank, delete and paste go through.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// SystemClipboard uses the OS clipboard. On systems without a clipboard
// utility it keeps the text in memory instead, so yank and paste still work
// within the session.
type SystemClipboard struct {
	fallback MemoryClipboard
}

func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

func (c *SystemClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return c.fallback.Write(text)
	}
	return clipboard.WriteAll(text)
}

func (c *SystemClipboard) Read() (string, error) {
	if clipboard.Unsupported {
		return c.fallback.Read()
	}
	return clipboard.ReadAll()
}

// MemoryClipboard is a process-local register.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

func (c *MemoryClipboard) Read() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}
