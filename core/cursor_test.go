package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorClampByMode(t *testing.T) {
	content := ContentFromString("abc\n")
	c := Cursor{position: Position{Row: 0, Col: 10}}

	assert.Equal(t, 2, c.Get(content, Normal()).Col)
	assert.Equal(t, 2, c.Get(content, Visual(Position{})).Col)
	assert.Equal(t, 3, c.Get(content, Insert(false)).Col)
	assert.Equal(t, 10, c.Get(content, Command()).Col)
}

func TestCursorClampInvariant(t *testing.T) {
	content := ContentFromString("hello\n\n世界")
	modes := []EditorMode{Normal(), Visual(Position{}), Insert(false), Insert(true)}

	for row := 0; row < content.LineCount(); row++ {
		length := content.LineLength(row)
		for x := -3; x < length+5; x++ {
			c := Cursor{position: Position{Row: row, Col: x}}
			for _, mode := range modes {
				got := c.Get(content, mode).Col
				switch {
				case mode.Name == InsertMode:
					assert.True(t, got >= 0 && got <= length, "insert row %d x %d got %d", row, x, got)
				case length == 0:
					assert.Equal(t, 0, got)
				default:
					assert.True(t, got >= 0 && got <= length-1, "%s row %d x %d got %d", mode, row, x, got)
				}
			}
		}
	}
}

func TestCursorDrawPosition(t *testing.T) {
	content := ContentFromString("a世b\tc")

	tests := []struct {
		col  int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 4},
		{4, 8},
	}

	for _, tt := range tests {
		c := Cursor{position: Position{Row: 0, Col: tt.col}}
		assert.Equal(t, Position{Row: 0, Col: tt.want}, c.DrawPosition(content, Normal(), 4), "col %d", tt.col)
	}
}

func TestCursorDrawPositionCombiningMark(t *testing.T) {
	content := ContentFromString("e\u0301x")
	c := Cursor{position: Position{Row: 0, Col: 2}}
	assert.Equal(t, 1, c.DrawPosition(content, Normal(), 4).Col)
}

func TestCursorMoveByX(t *testing.T) {
	content := ContentFromString("abc")

	c := Cursor{position: Position{Row: 0, Col: 10}}
	c.MoveByX(1, content, Normal())
	assert.Equal(t, 2, c.Raw().Col)

	c.MoveByX(-1, content, Normal())
	assert.Equal(t, 1, c.Raw().Col)

	c.MoveByX(-5, content, Normal())
	assert.Equal(t, 0, c.Raw().Col)

	c.MoveByX(5, content, Insert(false))
	assert.Equal(t, 3, c.Raw().Col)
}

func TestCursorMoveByYKeepsColumn(t *testing.T) {
	content := ContentFromString("abcdef\nab\nabcdef")
	c := Cursor{position: Position{Row: 0, Col: 5}}

	c.MoveByY(1, content)
	assert.Equal(t, Position{Row: 1, Col: 5}, c.Raw())
	assert.Equal(t, Position{Row: 1, Col: 1}, c.Get(content, Normal()))

	c.MoveByY(5, content)
	assert.Equal(t, 2, c.Raw().Row)

	c.MoveByY(-10, content)
	assert.Equal(t, 0, c.Raw().Row)
}

func TestCursorNextWord(t *testing.T) {
	content := ContentFromString("foo bar  baz\nqux")
	c := Cursor{}

	c.MoveToNextWord(content, Normal())
	assert.Equal(t, Position{Row: 0, Col: 4}, c.Raw())

	c.MoveToNextWord(content, Normal())
	assert.Equal(t, Position{Row: 0, Col: 9}, c.Raw())

	c.MoveToNextWord(content, Normal())
	assert.Equal(t, Position{Row: 1, Col: 0}, c.Raw())

	c.MoveToNextWord(content, Normal())
	assert.Equal(t, Position{Row: 1, Col: 3}, c.Raw())
	assert.Equal(t, Position{Row: 1, Col: 2}, c.Get(content, Normal()))
}

func TestCursorNextWordOnLastLine(t *testing.T) {
	content := ContentFromString("foo bar")

	for _, start := range []int{4, 5, 6} {
		c := Cursor{position: Position{Row: 0, Col: start}}
		c.MoveToNextWord(content, Normal())
		assert.Equal(t, Position{Row: 0, Col: 6}, c.Get(content, Normal()), "from %d", start)
	}

	c := Cursor{position: Position{Row: 0, Col: 4}}
	c.MoveToNextWord(content, Insert(false))
	assert.Equal(t, Position{Row: 0, Col: 7}, c.Get(content, Insert(false)))
}

func TestCursorNextWordFromWhitespace(t *testing.T) {
	content := ContentFromString("a   b")
	c := Cursor{position: Position{Row: 0, Col: 1}}

	c.MoveToNextWord(content, Normal())
	assert.Equal(t, 4, c.Raw().Col)
}

func TestCursorBackWord(t *testing.T) {
	content := ContentFromString("first\nfoo bar  baz")
	c := Cursor{position: Position{Row: 1, Col: 9}}

	c.MoveToBackWord(content, Normal())
	assert.Equal(t, Position{Row: 1, Col: 4}, c.Raw())

	c.MoveToBackWord(content, Normal())
	assert.Equal(t, Position{Row: 1, Col: 0}, c.Raw())

	c.MoveToBackWord(content, Normal())
	assert.Equal(t, Position{Row: 0, Col: 5}, c.Raw())
	assert.Equal(t, Position{Row: 0, Col: 4}, c.Get(content, Normal()))

	c.MoveToBackWord(content, Normal())
	assert.Equal(t, Position{Row: 0, Col: 0}, c.Raw())

	c.MoveToBackWord(content, Normal())
	assert.Equal(t, Position{Row: 0, Col: 0}, c.Raw())
}

func TestCursorOnEmptyDocument(t *testing.T) {
	content := ContentFromString("")
	c := Cursor{}

	c.MoveToNextWord(content, Normal())
	assert.Equal(t, Position{}, c.Raw())

	c.MoveToBackWord(content, Normal())
	assert.Equal(t, Position{}, c.Raw())

	c.MoveToX(content.LineLength(0), content, Normal())
	assert.Equal(t, Position{}, c.Get(content, Normal()))
}
