package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBufferSet(texts ...string) *BufferSet {
	set := NewBufferSet()
	for _, text := range texts {
		set.Add(NewBufferFromString(text, Options{Clipboard: &MemoryClipboard{}}))
	}
	return set
}

func currentText(t *testing.T, set *BufferSet) string {
	t.Helper()
	buf := set.Current()
	require.NotNil(t, buf)
	return buf.String()
}

func TestBufferSetEmpty(t *testing.T) {
	set := NewBufferSet()

	assert.Nil(t, set.Current())
	assert.Equal(t, -1, set.CurrentIndex())
	assert.ErrorIs(t, set.CloseCurrent(), ErrNoBufferOpen)
	assert.ErrorIs(t, set.Next(), ErrNoBufferOpen)
	assert.ErrorIs(t, set.Prev(), ErrNoBufferOpen)
	assert.ErrorIs(t, set.Select(0), ErrInvalidIndex)
}

func TestBufferSetAddMakesCurrent(t *testing.T) {
	set := newTestBufferSet("a", "b", "c")

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 2, set.CurrentIndex())
	assert.Equal(t, "c", currentText(t, set))
}

func TestBufferSetClose(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		close       int
		wantCurrent int
		wantText    string
	}{
		{"current in the middle", 1, 1, 1, "c"},
		{"current at the tail", 2, 2, 1, "b"},
		{"before current", 2, 0, 1, "c"},
		{"after current", 0, 2, 0, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newTestBufferSet("a", "b", "c")
			require.NoError(t, set.Select(tt.current))

			require.NoError(t, set.Close(tt.close))
			assert.Equal(t, 2, set.Len())
			assert.Equal(t, tt.wantCurrent, set.CurrentIndex())
			assert.Equal(t, tt.wantText, currentText(t, set))
		})
	}
}

func TestBufferSetCloseLast(t *testing.T) {
	set := newTestBufferSet("only")

	require.NoError(t, set.CloseCurrent())
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, -1, set.CurrentIndex())
	assert.Nil(t, set.Current())
}

func TestBufferSetCloseInvalidIndex(t *testing.T) {
	set := newTestBufferSet("a")

	assert.ErrorIs(t, set.Close(-1), ErrInvalidIndex)
	assert.ErrorIs(t, set.Close(1), ErrInvalidIndex)
	assert.Equal(t, 1, set.Len())
}

func TestBufferSetCycle(t *testing.T) {
	set := newTestBufferSet("a", "b", "c")

	require.NoError(t, set.Next())
	assert.Equal(t, 0, set.CurrentIndex())

	require.NoError(t, set.Prev())
	assert.Equal(t, 2, set.CurrentIndex())

	require.NoError(t, set.Prev())
	assert.Equal(t, "b", currentText(t, set))
}

func TestBufferSetGet(t *testing.T) {
	set := newTestBufferSet("a", "b")

	buf, err := set.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", buf.String())

	_, err = set.Get(2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestBufferSetOpenUntitled(t *testing.T) {
	set := NewBufferSet()

	buf, err := set.Open("", Options{Clipboard: &MemoryClipboard{}})
	require.NoError(t, err)
	assert.Equal(t, "[No Name]", buf.Name())
	assert.Equal(t, 0, set.CurrentIndex())
	assert.False(t, buf.IsModified())
}
