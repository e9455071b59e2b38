package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/draw"
)

func newTestState() *State {
	s := NewState()
	s.Resize(1920, 1080, 1)
	return s
}

func drag(s *State, x1, y1, x2, y2 int) {
	s.OnPointerPress(ButtonLeft, x1, y1)
	s.OnPointerMove(x2, y2)
	s.OnPointerRelease(ButtonLeft, x2, y2)
}

func TestPenStrokeUndoRedo(t *testing.T) {
	s := newTestState()
	drag(s, 10, 10, 60, 60)

	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	ds := frame.Shapes()[0]
	assert.Equal(t, draw.ShapeID(1), ds.ID)
	stroke, ok := ds.Shape.(*draw.Freehand)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(stroke.Points), 2)

	require.True(t, s.Undo())
	assert.Equal(t, 0, frame.Len())

	require.True(t, s.Redo())
	require.Equal(t, 1, frame.Len())
	assert.Equal(t, draw.ShapeID(1), frame.Shapes()[0].ID, "redo restores the original id")
	assert.False(t, s.Redo())
}

func TestClickWithoutDragCommitsNothing(t *testing.T) {
	s := newTestState()
	s.OnPointerPress(ButtonLeft, 100, 100)
	s.OnPointerRelease(ButtonLeft, 100, 100)
	assert.Equal(t, 0, s.ActiveFrame().Len())
}

func TestShiftLineSnapsToAngleIncrements(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolLine)
	s.Modifiers.Shift = true
	drag(s, 100, 100, 200, 103)

	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	line, ok := frame.Shapes()[0].Shape.(*draw.Line)
	require.True(t, ok)
	assert.Equal(t, 100, line.Y2, "3px of vertical drift snaps to horizontal")
	assert.Equal(t, 200, line.X2)
}

func TestShiftRectConstrainsToSquare(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolRect)
	s.Modifiers.Shift = true
	drag(s, 10, 10, 110, 60)

	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	r, ok := frame.Shapes()[0].Shape.(*draw.Rect)
	require.True(t, ok)
	assert.Equal(t, r.W, r.H)
	assert.Equal(t, 100, r.W)
}

func TestCtrlDragOverridesToRect(t *testing.T) {
	s := newTestState()
	s.Modifiers.Ctrl = true
	drag(s, 10, 10, 50, 50)

	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	_, ok := frame.Shapes()[0].Shape.(*draw.Rect)
	assert.True(t, ok, "ctrl-drag with the pen commits a rectangle")
	assert.Equal(t, ToolPen, s.ActiveTool(), "the override does not stick")
}

func TestMarqueeSelectAndDelete(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolLine)
	drag(s, 10, 10, 40, 10)
	drag(s, 10, 30, 40, 30)
	drag(s, 500, 500, 540, 500)
	frame := s.ActiveFrame()
	require.Equal(t, 3, frame.Len())
	far := frame.Shapes()[2].ID

	s.SetTool(ToolSelect)
	drag(s, 0, 0, 100, 100)
	assert.Equal(t, 2, s.Selection.Len())

	n := s.DeleteSelection()
	assert.Equal(t, 2, n)
	require.Equal(t, 1, frame.Len())
	assert.Equal(t, far, frame.Shapes()[0].ID)

	// Each deletion is one history entry, undone newest first.
	require.True(t, s.Undo())
	assert.Equal(t, 2, frame.Len())
	require.True(t, s.Undo())
	assert.Equal(t, 3, frame.Len())
}

func TestMarqueeClickClearsSelection(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolLine)
	drag(s, 10, 10, 40, 10)
	s.SetTool(ToolSelect)
	drag(s, 0, 0, 100, 100)
	require.Equal(t, 1, s.Selection.Len())

	// Sub-threshold drag is a click on empty canvas.
	drag(s, 500, 500, 501, 501)
	assert.True(t, s.Selection.IsEmpty())
}

func TestEraserStrokeModeRemovesShapes(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolLine)
	drag(s, 40, 50, 60, 50)
	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())

	s.SetTool(ToolEraser)
	s.EraserMode = draw.EraserStrokeMode
	drag(s, 50, 20, 50, 80)

	assert.Equal(t, 0, frame.Len(), "the touched line is erased")
	for _, ds := range frame.Shapes() {
		assert.NotEqual(t, draw.KindEraser, ds.Shape.Kind(), "stroke mode commits no eraser shape")
	}

	require.True(t, s.Undo())
	assert.Equal(t, 1, frame.Len(), "erasure is a plain removal in history")
}

func TestEraserBrushModeCommitsStroke(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolEraser)
	drag(s, 10, 10, 80, 80)

	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	es, ok := frame.Shapes()[0].Shape.(*draw.EraserStroke)
	require.True(t, ok)
	assert.Equal(t, draw.EraserBrush, es.Mode)
}

func TestMoveSelectionPushesSingleReplacePerShape(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolRect)
	drag(s, 10, 10, 50, 50)
	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	id := frame.Shapes()[0].ID
	depth := frame.UndoDepth()

	s.SetTool(ToolSelect)
	s.OnPointerPress(ButtonLeft, 10, 20)
	s.OnPointerMove(20, 40)
	s.OnPointerMove(35, 60)
	s.OnPointerRelease(ButtonLeft, 35, 60)

	r := frame.Shapes()[0].Shape.(*draw.Rect)
	assert.Equal(t, 35, r.X)
	assert.Equal(t, 50, r.Y)
	assert.Equal(t, depth+1, frame.UndoDepth(), "the whole drag is one history entry")

	require.True(t, s.Undo())
	r = frame.Shapes()[0].Shape.(*draw.Rect)
	assert.Equal(t, 10, r.X)
	assert.Equal(t, 10, r.Y)
	assert.True(t, s.Selection.Contains(id), "selection survives the undo")
}

func TestCancelRestoresDraggedGeometry(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolRect)
	drag(s, 10, 10, 50, 50)
	frame := s.ActiveFrame()
	depth := frame.UndoDepth()

	s.SetTool(ToolSelect)
	s.OnPointerPress(ButtonLeft, 20, 20)
	s.OnPointerMove(120, 120)
	s.OnKeyPress(NamedKey(KeyEscape), Modifiers{})

	r := frame.Shapes()[0].Shape.(*draw.Rect)
	assert.Equal(t, 10, r.X)
	assert.Equal(t, 10, r.Y)
	assert.Equal(t, depth, frame.UndoDepth(), "a cancelled drag leaves no history")
	assert.True(t, s.IsIdle())
}

func TestPressOnSelectedShapeMovesWithAnyTool(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolRect)
	drag(s, 10, 10, 50, 50)
	id := s.ActiveFrame().Shapes()[0].ID
	s.Selection.Set([]draw.ShapeID{id})

	s.SetTool(ToolPen)
	s.OnPointerPress(ButtonLeft, 20, 20)
	assert.False(t, s.IsDrawing(), "pressing a selected shape never starts a stroke")
	s.OnPointerMove(40, 20)
	s.OnPointerRelease(ButtonLeft, 40, 20)

	r := s.ActiveFrame().Shapes()[0].Shape.(*draw.Rect)
	assert.Equal(t, 30, r.X)
}

func TestTextInputCommitAndDoubleClickEdit(t *testing.T) {
	s := newTestState()
	now := time.Unix(1000, 0)
	s.SetClock(func() time.Time { return now })

	s.SetTool(ToolText)
	s.OnPointerPress(ButtonLeft, 300, 300)
	s.OnPointerRelease(ButtonLeft, 300, 300)
	require.True(t, s.IsTextInput())

	s.OnKeyPress(CharKey('h'), Modifiers{})
	s.OnKeyPress(CharKey('i'), Modifiers{})
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})

	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	text, ok := frame.Shapes()[0].Shape.(*draw.Text)
	require.True(t, ok)
	assert.Equal(t, "hi", text.Text)
	assert.Equal(t, 300, text.X)

	// Two clicks on the committed shape within the window open the
	// editor seeded with its contents.
	click := func() {
		s.OnPointerPress(ButtonLeft, 302, 302)
		s.OnPointerRelease(ButtonLeft, 302, 302)
	}
	click()
	require.False(t, s.IsTextInput())
	now = now.Add(200 * time.Millisecond)
	click()
	require.True(t, s.IsTextInput())

	_, _, seed, _, ok := s.TextInputSnapshot()
	require.True(t, ok)
	assert.Equal(t, "hi", seed)

	s.OnKeyPress(NamedKey(KeyEscape), Modifiers{})
	assert.True(t, s.IsIdle())
	assert.Equal(t, "hi", frame.Shapes()[0].Shape.(*draw.Text).Text, "escape discards the edit")
}

func TestSlowSecondClickDoesNotEdit(t *testing.T) {
	s := newTestState()
	now := time.Unix(1000, 0)
	s.SetClock(func() time.Time { return now })

	s.SetTool(ToolText)
	s.OnPointerPress(ButtonLeft, 300, 300)
	s.OnPointerRelease(ButtonLeft, 300, 300)
	s.OnKeyPress(CharKey('x'), Modifiers{})
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})

	click := func() {
		s.OnPointerPress(ButtonLeft, 302, 302)
		s.OnPointerRelease(ButtonLeft, 302, 302)
	}
	click()
	now = now.Add(DoubleClickWindow + time.Millisecond)
	click()
	assert.False(t, s.IsTextInput())
}

func TestShiftEnterInsertsNewline(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolStickyNote)
	s.OnPointerPress(ButtonLeft, 100, 100)
	s.OnPointerRelease(ButtonLeft, 100, 100)
	require.True(t, s.IsTextInput())

	s.OnKeyPress(CharKey('a'), Modifiers{})
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{Shift: true})
	s.OnKeyPress(CharKey('b'), Modifiers{})
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})

	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())
	note, ok := frame.Shapes()[0].Shape.(*draw.StickyNote)
	require.True(t, ok)
	assert.Equal(t, "a\nb", note.Text)
}

func TestEmptyTextCommitDiscards(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolText)
	s.OnPointerPress(ButtonLeft, 100, 100)
	s.OnPointerRelease(ButtonLeft, 100, 100)
	s.OnKeyPress(NamedKey(KeyReturn), Modifiers{})
	assert.Equal(t, 0, s.ActiveFrame().Len())
	assert.True(t, s.IsIdle())
}

func TestArrowLabelCounterIncrements(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolArrow)
	s.ArrowLabelEnabled = true
	drag(s, 10, 10, 50, 50)
	drag(s, 60, 10, 100, 50)

	frame := s.ActiveFrame()
	require.Equal(t, 2, frame.Len())
	a := frame.Shapes()[0].Shape.(*draw.Arrow)
	b := frame.Shapes()[1].Shape.(*draw.Arrow)
	require.NotNil(t, a.Label)
	require.NotNil(t, b.Label)
	assert.Equal(t, uint32(1), a.Label.Value)
	assert.Equal(t, uint32(2), b.Label.Value)
}

func TestStepMarkerCommitsOnPress(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolStepMarker)
	s.OnPointerPress(ButtonLeft, 200, 200)
	s.OnPointerRelease(ButtonLeft, 200, 200)
	s.OnPointerPress(ButtonLeft, 260, 200)
	s.OnPointerRelease(ButtonLeft, 260, 200)

	frame := s.ActiveFrame()
	require.Equal(t, 2, frame.Len())
	first := frame.Shapes()[0].Shape.(*draw.StepMarker)
	second := frame.Shapes()[1].Shape.(*draw.StepMarker)
	assert.Equal(t, uint32(1), first.Label.Value)
	assert.Equal(t, uint32(2), second.Label.Value)
}

func TestRightClickOpensContextMenu(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolRect)
	drag(s, 10, 10, 50, 50)
	id := s.ActiveFrame().Shapes()[0].ID

	s.OnPointerPress(ButtonRight, 20, 20)
	require.True(t, s.UI.ContextMenu.Open)
	assert.Equal(t, MenuShape, s.UI.ContextMenu.Target)
	assert.Equal(t, id, s.UI.ContextMenu.ShapeID)
	assert.True(t, s.Selection.Contains(id))

	s.OnKeyPress(NamedKey(KeyEscape), Modifiers{})
	assert.False(t, s.UI.ContextMenu.Open)

	s.OnPointerPress(ButtonRight, 500, 500)
	require.True(t, s.UI.ContextMenu.Open)
	assert.Equal(t, MenuCanvas, s.UI.ContextMenu.Target)
	assert.True(t, s.Selection.IsEmpty(), "canvas menu clears the selection")
}

func TestRightClickCancelsInProgressDraw(t *testing.T) {
	s := newTestState()
	s.OnPointerPress(ButtonLeft, 10, 10)
	s.OnPointerMove(50, 50)
	require.True(t, s.IsDrawing())

	s.OnPointerPress(ButtonRight, 50, 50)
	assert.True(t, s.IsIdle())
	assert.False(t, s.UI.ContextMenu.Open)
	s.OnPointerRelease(ButtonLeft, 50, 50)
	assert.Equal(t, 0, s.ActiveFrame().Len())
}

func TestStylusPressureIsMonotonicPerStroke(t *testing.T) {
	s := newTestState()
	s.Thickness = 10

	s.OnStylusDown(10, 10)
	s.OnStylusPressure(0.5)
	assert.InDelta(t, 5.0, s.Thickness, 1e-9)
	s.OnStylusPressure(0.8)
	assert.InDelta(t, 8.0, s.Thickness, 1e-9)
	s.OnStylusPressure(0.3)
	assert.InDelta(t, 8.0, s.Thickness, 1e-9, "pressure never drops within a stroke")
	s.OnStylusPressure(0)
	assert.InDelta(t, 8.0, s.Thickness, 1e-9, "zero readings while down are dropouts")
	s.OnPointerMove(40, 40)
	s.OnStylusUp(60, 60)
	assert.InDelta(t, 10.0, s.Thickness, 1e-9, "base thickness is restored on lift")
}

func TestSelectAllSkipsLocked(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolLine)
	drag(s, 10, 10, 40, 10)
	drag(s, 10, 30, 40, 30)
	frame := s.ActiveFrame()
	require.True(t, frame.SetLocked(frame.Shapes()[0].ID, true))

	s.SelectAll()
	assert.Equal(t, 1, s.Selection.Len())
}

func TestEscapeUnwindsLayers(t *testing.T) {
	s := newTestState()
	s.SetTool(ToolLine)
	drag(s, 10, 10, 40, 10)
	s.Selection.Set([]draw.ShapeID{s.ActiveFrame().Shapes()[0].ID})

	s.OnKeyPress(NamedKey(KeyEscape), Modifiers{})
	assert.True(t, s.Selection.IsEmpty())
	assert.False(t, s.ExitRequested)

	s.OnKeyPress(NamedKey(KeyEscape), Modifiers{})
	assert.True(t, s.ExitRequested)
}

func TestUndoRedoKeys(t *testing.T) {
	s := newTestState()
	drag(s, 10, 10, 60, 60)
	frame := s.ActiveFrame()
	require.Equal(t, 1, frame.Len())

	s.OnKeyPress(CharKey('z'), Modifiers{Ctrl: true})
	assert.Equal(t, 0, frame.Len())
	s.OnKeyPress(CharKey('y'), Modifiers{Ctrl: true})
	assert.Equal(t, 1, frame.Len())
	s.OnKeyPress(CharKey('z'), Modifiers{Ctrl: true, Shift: true})
	assert.Equal(t, 1, frame.Len(), "ctrl+shift+z is redo and the stack is empty")
}

func TestDirtyMarkedOnCommit(t *testing.T) {
	s := newTestState()
	s.Dirty.Take(s.ScreenRect())
	drag(s, 10, 10, 60, 60)
	rects := s.Dirty.Take(s.ScreenRect())
	require.NotEmpty(t, rects)
	union := rects[0]
	for _, r := range rects[1:] {
		union = union.Union(r)
	}
	box, ok := s.ActiveFrame().Shapes()[0].Shape.BoundingBox()
	require.True(t, ok)
	assert.True(t, union.Contains(box.X, box.Y) || union.Intersects(box))
}
