package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/draw"
)

func TestPaletteCommandsFilter(t *testing.T) {
	s := newTestState()

	all := s.PaletteCommands("")
	assert.Greater(t, len(all), len(staticPaletteCommands), "includes tool and board entries")

	matches := s.PaletteCommands("clear page")
	require.NotEmpty(t, matches)
	assert.Equal(t, "Clear page", matches[0].Label)

	matches = s.PaletteCommands("board white")
	require.Len(t, matches, 1)
	assert.Equal(t, "Switch to board: Whiteboard", matches[0].Label)

	assert.Empty(t, s.PaletteCommands("no such command"))
}

func TestCommandPaletteRunsCommand(t *testing.T) {
	s := newTestState()
	drag(s, 10, 10, 60, 60)
	require.Equal(t, 1, s.ActiveFrame().Len())

	s.OnKeyPress(CharKey('p'), Modifiers{Ctrl: true})
	require.True(t, s.UI.CommandPalette.Open)

	for _, r := range "undo" {
		s.OnKeyPress(CharKey(r), Modifiers{})
	}
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})

	assert.False(t, s.UI.CommandPalette.Open)
	assert.Equal(t, 0, s.ActiveFrame().Len())
}

func TestContextMenuDeleteEntry(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolRect)
	drag(s, 10, 10, 50, 50)
	require.Equal(t, 1, s.ActiveFrame().Len())

	s.OnPointerPress(ButtonRight, 10, 20)
	require.True(t, s.UI.ContextMenu.Open)
	require.Equal(t, "Delete", s.ContextMenuEntries()[2])

	s.OnKeyPress(NamedKey(KeyDown), Modifiers{})
	s.OnKeyPress(NamedKey(KeyDown), Modifiers{})
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})

	assert.False(t, s.UI.ContextMenu.Open)
	assert.Equal(t, 0, s.ActiveFrame().Len())
}

func TestColorPopupSelect(t *testing.T) {
	s := newTestState()
	s.OnPointerMove(300, 300)
	s.OnKeyPress(CharKey('x'), Modifiers{})
	require.True(t, s.UI.ColorPopup.Open)
	assert.Equal(t, 0, s.UI.ColorPopup.Hovered, "starts on the current color")

	s.OnKeyPress(NamedKey(KeyRight), Modifiers{})
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})

	assert.False(t, s.UI.ColorPopup.Open)
	assert.Equal(t, draw.Palette[1], s.CurrentColor)
}
