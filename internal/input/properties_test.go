package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/draw"
)

func selectedRectState(t *testing.T) *State {
	t.Helper()
	s := newTestState()
	s.SetTool(ToolRect)
	drag(s, 10, 10, 80, 80)
	require.Equal(t, 1, s.ActiveFrame().Len())
	s.SelectAll()
	require.Equal(t, 1, s.Selection.Len())
	return s
}

func TestPropertiesPanelNeedsSelection(t *testing.T) {
	s := newTestState()
	assert.False(t, s.OpenPropertiesPanel())
	assert.False(t, s.UI.Properties.Open)
}

func TestPropertiesPanelKeyOpens(t *testing.T) {
	s := selectedRectState(t)

	s.OnKeyPress(CharKey('i'), Modifiers{})
	require.True(t, s.UI.Properties.Open)
	assert.Equal(t, PropRowColor, s.UI.Properties.Focused)

	s.OnKeyPress(NamedKey(KeyEscape), Modifiers{})
	assert.False(t, s.UI.Properties.Open)
}

func TestPropertiesPanelCyclesColor(t *testing.T) {
	s := selectedRectState(t)
	require.True(t, s.OpenPropertiesPanel())

	before, ok := s.SelectionColor()
	require.True(t, ok)

	s.OnKeyPress(NamedKey(KeyRight), Modifiers{})
	after, ok := s.SelectionColor()
	require.True(t, ok)
	assert.NotEqual(t, before, after)
	assert.Equal(t, draw.Palette[(paletteIndex(before)+1)%len(draw.Palette)], after)
}

func TestPropertiesPanelAdjustsThickness(t *testing.T) {
	s := selectedRectState(t)
	require.True(t, s.OpenPropertiesPanel())

	before, ok := s.SelectionThickness()
	require.True(t, ok)

	s.OnKeyPress(NamedKey(KeyDown), Modifiers{})
	require.Equal(t, PropRowThickness, s.UI.Properties.Focused)
	s.OnKeyPress(NamedKey(KeyRight), Modifiers{})

	after, ok := s.SelectionThickness()
	require.True(t, ok)
	assert.InDelta(t, before+1, after, 1e-9)
}

func TestPropertiesPanelLockRow(t *testing.T) {
	s := selectedRectState(t)
	require.True(t, s.OpenPropertiesPanel())

	s.OnKeyPress(NamedKey(KeyDown), Modifiers{})
	s.OnKeyPress(NamedKey(KeyDown), Modifiers{})
	require.Equal(t, PropRowLocked, s.UI.Properties.Focused)

	s.OnKeyPress(NamedKey(KeyRight), Modifiers{})
	assert.True(t, s.SelectionLocked())

	// Locked shapes refuse style edits.
	col, _ := s.SelectionColor()
	s.OnKeyPress(NamedKey(KeyUp), Modifiers{})
	s.OnKeyPress(NamedKey(KeyUp), Modifiers{})
	s.OnKeyPress(NamedKey(KeyRight), Modifiers{})
	after, _ := s.SelectionColor()
	assert.Equal(t, col, after)

	s.OnKeyPress(NamedKey(KeyDown), Modifiers{})
	s.OnKeyPress(NamedKey(KeyDown), Modifiers{})
	s.OnKeyPress(NamedKey(KeyLeft), Modifiers{})
	assert.False(t, s.SelectionLocked())
}

func TestPropertiesEditIsUndoable(t *testing.T) {
	s := selectedRectState(t)
	require.True(t, s.OpenPropertiesPanel())

	before, _ := s.SelectionColor()
	s.OnKeyPress(NamedKey(KeyRight), Modifiers{})
	changed, _ := s.SelectionColor()
	require.NotEqual(t, before, changed)

	s.Undo()
	restored, _ := s.SelectionColor()
	assert.Equal(t, before, restored)
}

func TestContextMenuPropertiesEntry(t *testing.T) {
	s := selectedRectState(t)

	s.OnPointerPress(ButtonRight, 10, 20)
	require.True(t, s.UI.ContextMenu.Open)
	require.Equal(t, "Properties", s.ContextMenuEntries()[0])

	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})
	assert.False(t, s.UI.ContextMenu.Open)
	assert.True(t, s.UI.Properties.Open)
}
