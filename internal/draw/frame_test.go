package draw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineAt(x int) *Line {
	return &Line{X1: x, Y1: 0, X2: x + 10, Y2: 10, Color: Red, Thickness: 2}
}

func TestFrameAddUndoRedoKeepsID(t *testing.T) {
	f := NewFrame()
	id := f.AddShape(lineAt(0))
	require.Equal(t, 1, f.Len())

	_, ok := f.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, f.Len())

	_, ok = f.Redo()
	require.True(t, ok)
	require.Equal(t, 1, f.Len())
	assert.Equal(t, id, f.Shapes()[0].ID, "redo must restore the original id")

	// Ids are never reused even after undo discards a shape.
	_, ok = f.Undo()
	require.True(t, ok)
	next := f.AddShape(lineAt(5))
	assert.Greater(t, next, id)
}

func TestFrameRemoveUndoRestoresPosition(t *testing.T) {
	f := NewFrame()
	a := f.AddShape(lineAt(0))
	b := f.AddShape(lineAt(10))
	c := f.AddShape(lineAt(20))

	require.True(t, f.RemoveShape(b))
	require.Equal(t, []ShapeID{a, c}, frameIDs(f))

	_, ok := f.Undo()
	require.True(t, ok)
	assert.Equal(t, []ShapeID{a, b, c}, frameIDs(f), "undo of remove reinserts at the original index")
}

func TestFrameRemoveLockedIgnored(t *testing.T) {
	f := NewFrame()
	id := f.AddShape(lineAt(0))
	require.True(t, f.SetLocked(id, true))
	assert.False(t, f.RemoveShape(id))
	assert.Equal(t, 1, f.Len())
}

func TestFrameClearUnlockedOnlyPreservesOrderOnUndo(t *testing.T) {
	f := NewFrame()
	a := f.AddShape(lineAt(0))
	b := f.AddShape(lineAt(10))
	c := f.AddShape(lineAt(20))
	d := f.AddShape(lineAt(30))
	f.SetLocked(b, true)
	f.SetLocked(d, true)

	removed := f.Clear(true)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []ShapeID{b, d}, frameIDs(f))

	_, ok := f.Undo()
	require.True(t, ok)
	assert.Equal(t, []ShapeID{a, b, c, d}, frameIDs(f), "undo of clear restores the full z-order")

	_, ok = f.Redo()
	require.True(t, ok)
	assert.Equal(t, []ShapeID{b, d}, frameIDs(f))
}

func TestFrameClearEmptyIsNoop(t *testing.T) {
	f := NewFrame()
	assert.Equal(t, 0, f.Clear(false))
	assert.Equal(t, 0, f.UndoDepth())
}

func TestFrameReplaceUndo(t *testing.T) {
	f := NewFrame()
	id := f.AddShape(lineAt(0))
	require.True(t, f.ReplaceShape(id, lineAt(100)))

	got, ok := f.Get(id)
	require.True(t, ok)
	assert.Equal(t, 100, got.Shape.(*Line).X1)

	_, undone := f.Undo()
	require.True(t, undone)
	got, ok = f.Get(id)
	require.True(t, ok)
	assert.Equal(t, 0, got.Shape.(*Line).X1)
}

func TestFrameReorderUndo(t *testing.T) {
	f := NewFrame()
	a := f.AddShape(lineAt(0))
	b := f.AddShape(lineAt(10))
	c := f.AddShape(lineAt(20))

	require.True(t, f.Reorder(0, 2))
	assert.Equal(t, []ShapeID{b, c, a}, frameIDs(f))

	_, ok := f.Undo()
	require.True(t, ok)
	assert.Equal(t, []ShapeID{a, b, c}, frameIDs(f))

	assert.False(t, f.Reorder(0, 3))
	assert.False(t, f.Reorder(-1, 0))
}

func TestFrameMutationClearsRedo(t *testing.T) {
	f := NewFrame()
	f.AddShape(lineAt(0))
	_, ok := f.Undo()
	require.True(t, ok)
	require.Equal(t, 1, f.RedoDepth())

	f.AddShape(lineAt(10))
	assert.Equal(t, 0, f.RedoDepth())
	_, redone := f.Redo()
	assert.False(t, redone)
}

func TestFrameHistoryLimitDropsOldest(t *testing.T) {
	f := NewFrame()
	f.ClampHistoryDepth(3)
	for i := 0; i < 5; i++ {
		f.AddShape(lineAt(i * 10))
	}
	assert.Equal(t, 3, f.UndoDepth())
	for i := 0; i < 3; i++ {
		_, ok := f.Undo()
		require.True(t, ok)
	}
	_, ok := f.Undo()
	assert.False(t, ok, "entries beyond the limit are gone")
	assert.Equal(t, 2, f.Len())
}

func TestFrameClampHistoryDepthTruncatesExisting(t *testing.T) {
	f := NewFrame()
	for i := 0; i < 10; i++ {
		f.AddShape(lineAt(i))
	}
	f.ClampHistoryDepth(4)
	assert.Equal(t, 4, f.UndoDepth())
}

func TestFrameCloneWithoutHistory(t *testing.T) {
	f := NewFrame()
	id := f.AddShape(lineAt(0))
	f.SetName("sketch")
	clone := f.CloneWithoutHistory()

	assert.Equal(t, 1, clone.Len())
	assert.Equal(t, id, clone.Shapes()[0].ID)
	assert.Equal(t, "sketch", clone.Name())
	assert.Equal(t, 0, clone.UndoDepth())

	// Deep copy: mutating the clone's shape leaves the source alone.
	clone.Shapes()[0].Shape.Translate(50, 0)
	assert.Equal(t, 0, f.Shapes()[0].Shape.(*Line).X1)
}

func TestFrameTruncateShapes(t *testing.T) {
	f := NewFrame()
	for i := 0; i < 5; i++ {
		f.AddShape(lineAt(i))
	}
	assert.Equal(t, 2, f.TruncateShapes(3))
	assert.Equal(t, 3, f.Len())
	// Only the entries for the dropped shapes are pruned.
	assert.Equal(t, 3, f.UndoDepth())
	assert.Equal(t, 0, f.TruncateShapes(10))

	// Surviving history still replays cleanly.
	_, ok := f.Undo()
	assert.True(t, ok)
	assert.Equal(t, 2, f.Len())
}

func TestFramePruneHistoryForRemoved(t *testing.T) {
	f := NewFrame()
	a := f.AddShape(lineAt(0))
	b := f.AddShape(lineAt(1))
	f.RecordReplace(b, f.Shapes()[1].Shape.Clone())

	f.PruneHistoryForRemoved([]ShapeID{b})
	assert.Equal(t, 1, f.UndoDepth())

	f.PruneHistoryForRemoved([]ShapeID{a})
	assert.Equal(t, 0, f.UndoDepth())
}

func TestFrameJSONRoundTrip(t *testing.T) {
	f := NewFrame()
	a := f.AddShape(&Freehand{Points: []StrokePoint{{X: 1, Y: 2}, {X: 3, Y: 4}}, Color: Blue, Thickness: 3})
	f.AddShape(&Text{X: 10, Y: 20, Text: "note", Color: Black, Size: 16, Font: DefaultFont()})
	f.SetLocked(a, true)
	f.SetName("page one")
	_, ok := f.Undo()
	require.True(t, ok)

	raw, err := json.Marshal(f)
	require.NoError(t, err)

	restored := NewFrame()
	require.NoError(t, json.Unmarshal(raw, restored))

	assert.Equal(t, 1, restored.Len())
	assert.Equal(t, "page one", restored.Name())
	assert.True(t, restored.Shapes()[0].Locked)
	assert.Equal(t, 1, restored.RedoDepth())

	_, redone := restored.Redo()
	require.True(t, redone)
	assert.Equal(t, 2, restored.Len())

	// Restored frames keep allocating fresh ids.
	next := restored.AddShape(lineAt(0))
	for _, ds := range restored.Shapes()[:2] {
		assert.Greater(t, next, ds.ID)
	}
}

func frameIDs(f *Frame) []ShapeID {
	ids := make([]ShapeID, 0, f.Len())
	for _, ds := range f.Shapes() {
		ids = append(ids, ds.ID)
	}
	return ids
}
