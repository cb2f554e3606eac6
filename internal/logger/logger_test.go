package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLevels(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "logs", "test.log")))

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("opened %s", "a.txt")
	Error("failed: %v", "boom")
	Debug("cursor at %d", 3)

	out := buf.String()
	assert.Contains(t, out, "[INFO] opened a.txt")
	assert.Contains(t, out, "[ERROR] failed: boom")
	assert.Contains(t, out, "[DEBUG] cursor at 3")
}
