package draw

import (
	"github.com/devmobasa/wayscriber/internal/geometry"
)

// ShapeID identifies a shape within its frame. IDs are assigned once and
// never reused, even across undo and redo.
type ShapeID uint64

// DrawnShape is a committed shape with its frame-scoped identity.
type DrawnShape struct {
	ID     ShapeID
	Shape  Shape
	Locked bool
}

// Clone deep-copies the drawn shape.
func (d DrawnShape) Clone() DrawnShape {
	return DrawnShape{ID: d.ID, Shape: d.Shape.Clone(), Locked: d.Locked}
}

// DefaultHistoryLimit bounds the undo stack of a frame.
const DefaultHistoryLimit = 100

type opKind string

const (
	opAdd     opKind = "add"
	opRemove  opKind = "remove"
	opReplace opKind = "replace"
	opReorder opKind = "reorder"
	opClear   opKind = "clear"
)

// placedShape remembers where a shape sat so undo can put it back.
type placedShape struct {
	Index int
	Shape DrawnShape
}

type frameOp struct {
	Kind   opKind
	Placed []placedShape
	Before DrawnShape
	After  DrawnShape
	From   int
	To     int
}

// Frame holds the shapes of one page together with bounded undo history.
// All mutating calls clear the redo stack except Undo and Redo themselves.
type Frame struct {
	shapes []DrawnShape
	undo   []frameOp
	redo   []frameOp
	nextID ShapeID
	limit  int
	name   string
}

// NewFrame returns an empty frame with the default history limit.
// Shape ids start at 1; zero is never assigned.
func NewFrame() *Frame {
	return &Frame{limit: DefaultHistoryLimit, nextID: 1}
}

// Len reports the number of committed shapes.
func (f *Frame) Len() int { return len(f.shapes) }

// Shapes returns the committed shapes in z-order, bottom first. Callers
// must not mutate the returned slice.
func (f *Frame) Shapes() []DrawnShape { return f.shapes }

// IndexOf returns the z-order index of the shape with the given id,
// or -1 if it is not present.
func (f *Frame) IndexOf(id ShapeID) int {
	for i := range f.shapes {
		if f.shapes[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the drawn shape with the given id.
func (f *Frame) Get(id ShapeID) (DrawnShape, bool) {
	if i := f.IndexOf(id); i >= 0 {
		return f.shapes[i], true
	}
	return DrawnShape{}, false
}

// Name returns the user-assigned page name, empty when unnamed.
func (f *Frame) Name() string { return f.name }

// SetName assigns or clears the page name.
func (f *Frame) SetName(name string) { f.name = name }

// UndoDepth reports how many operations can be undone.
func (f *Frame) UndoDepth() int { return len(f.undo) }

// RedoDepth reports how many operations can be redone.
func (f *Frame) RedoDepth() int { return len(f.redo) }

// MarkIDUsed advances the id counter past ids loaded from disk so that
// new shapes never collide with restored ones.
func (f *Frame) MarkIDUsed(id ShapeID) {
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

func (f *Frame) allocID() ShapeID {
	id := f.nextID
	f.nextID++
	return id
}

func (f *Frame) pushUndo(op frameOp) {
	f.undo = append(f.undo, op)
	if f.limit > 0 && len(f.undo) > f.limit {
		drop := len(f.undo) - f.limit
		f.undo = append(f.undo[:0], f.undo[drop:]...)
	}
	f.redo = f.redo[:0]
}

// AddShape commits a shape on top of the stack and returns its id.
func (f *Frame) AddShape(s Shape) ShapeID {
	ds := DrawnShape{ID: f.allocID(), Shape: s}
	f.shapes = append(f.shapes, ds)
	f.pushUndo(frameOp{
		Kind:   opAdd,
		Placed: []placedShape{{Index: len(f.shapes) - 1, Shape: ds}},
	})
	return ds.ID
}

// RemoveShape removes the shape with the given id. Locked shapes are
// left in place.
func (f *Frame) RemoveShape(id ShapeID) bool {
	i := f.IndexOf(id)
	if i < 0 || f.shapes[i].Locked {
		return false
	}
	removed := f.shapes[i]
	f.shapes = append(f.shapes[:i], f.shapes[i+1:]...)
	f.pushUndo(frameOp{
		Kind:   opRemove,
		Placed: []placedShape{{Index: i, Shape: removed}},
	})
	return true
}

// ReplaceShape swaps the geometry of an existing shape, keeping its id
// and z-order position.
func (f *Frame) ReplaceShape(id ShapeID, s Shape) bool {
	i := f.IndexOf(id)
	if i < 0 {
		return false
	}
	before := f.shapes[i]
	after := DrawnShape{ID: id, Shape: s, Locked: before.Locked}
	f.shapes[i] = after
	f.pushUndo(frameOp{Kind: opReplace, Before: before, After: after})
	return true
}

// RecordReplace pushes a Replace op for a shape that was mutated in
// place, using the caller's pre-mutation snapshot as the before state.
// Interactive transforms apply geometry live and record once on release.
func (f *Frame) RecordReplace(id ShapeID, before Shape) bool {
	i := f.IndexOf(id)
	if i < 0 {
		return false
	}
	cur := f.shapes[i]
	f.pushUndo(frameOp{
		Kind:   opReplace,
		Before: DrawnShape{ID: id, Shape: before, Locked: cur.Locked},
		After:  DrawnShape{ID: id, Shape: cur.Shape.Clone(), Locked: cur.Locked},
	})
	return true
}

// Reorder moves the shape at index from to index to, shifting the
// shapes in between.
func (f *Frame) Reorder(from, to int) bool {
	n := len(f.shapes)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	f.moveShape(from, to)
	f.pushUndo(frameOp{Kind: opReorder, From: from, To: to})
	return true
}

func (f *Frame) moveShape(from, to int) {
	s := f.shapes[from]
	if from < to {
		copy(f.shapes[from:to], f.shapes[from+1:to+1])
	} else {
		copy(f.shapes[to+1:from+1], f.shapes[to:from])
	}
	f.shapes[to] = s
}

// Clear removes every shape, or only the unlocked ones when unlockedOnly
// is set. It returns the number of shapes removed and records a single
// undoable operation.
func (f *Frame) Clear(unlockedOnly bool) int {
	var removed []placedShape
	kept := f.shapes[:0]
	for i, ds := range f.shapes {
		if unlockedOnly && ds.Locked {
			kept = append(kept, ds)
			continue
		}
		removed = append(removed, placedShape{Index: i, Shape: ds})
	}
	if len(removed) == 0 {
		return 0
	}
	f.shapes = kept
	f.pushUndo(frameOp{Kind: opClear, Placed: removed})
	return len(removed)
}

// SetLocked toggles the lock flag of a shape. Lock changes are not
// recorded in history.
func (f *Frame) SetLocked(id ShapeID, locked bool) bool {
	i := f.IndexOf(id)
	if i < 0 {
		return false
	}
	f.shapes[i].Locked = locked
	return true
}

// Undo reverts the most recent operation. It returns the union of the
// affected bounding boxes and whether anything was undone.
func (f *Frame) Undo() (geometry.Rect, bool) {
	if len(f.undo) == 0 {
		return geometry.Rect{}, false
	}
	op := f.undo[len(f.undo)-1]
	f.undo = f.undo[:len(f.undo)-1]
	dirty := f.applyInverse(op)
	f.redo = append(f.redo, op)
	return dirty, true
}

// Redo re-applies the most recently undone operation.
func (f *Frame) Redo() (geometry.Rect, bool) {
	if len(f.redo) == 0 {
		return geometry.Rect{}, false
	}
	op := f.redo[len(f.redo)-1]
	f.redo = f.redo[:len(f.redo)-1]
	dirty := f.applyForward(op)
	f.undo = append(f.undo, op)
	return dirty, true
}

func (f *Frame) applyInverse(op frameOp) geometry.Rect {
	switch op.Kind {
	case opAdd:
		return f.removePlaced(op.Placed)
	case opRemove, opClear:
		return f.insertPlaced(op.Placed)
	case opReplace:
		return f.swapShape(op.After.ID, op.Before)
	case opReorder:
		if f.reorderValid(op.To, op.From) {
			f.moveShape(op.To, op.From)
			return f.shapes[op.From].bounds()
		}
	}
	return geometry.Rect{}
}

func (f *Frame) applyForward(op frameOp) geometry.Rect {
	switch op.Kind {
	case opAdd:
		return f.insertPlaced(op.Placed)
	case opRemove, opClear:
		return f.removePlaced(op.Placed)
	case opReplace:
		return f.swapShape(op.Before.ID, op.After)
	case opReorder:
		if f.reorderValid(op.From, op.To) {
			f.moveShape(op.From, op.To)
			return f.shapes[op.To].bounds()
		}
	}
	return geometry.Rect{}
}

func (f *Frame) reorderValid(from, to int) bool {
	n := len(f.shapes)
	return from >= 0 && from < n && to >= 0 && to < n && from != to
}

// insertPlaced reinserts shapes at their recorded indices, ascending, so
// a cleared frame comes back in its original z-order.
func (f *Frame) insertPlaced(placed []placedShape) geometry.Rect {
	var dirty geometry.Rect
	for _, p := range placed {
		i := p.Index
		if i > len(f.shapes) {
			i = len(f.shapes)
		}
		f.shapes = append(f.shapes, DrawnShape{})
		copy(f.shapes[i+1:], f.shapes[i:])
		f.shapes[i] = p.Shape
		dirty = dirty.Union(p.Shape.bounds())
	}
	return dirty
}

func (f *Frame) removePlaced(placed []placedShape) geometry.Rect {
	var dirty geometry.Rect
	for _, p := range placed {
		if i := f.IndexOf(p.Shape.ID); i >= 0 {
			dirty = dirty.Union(f.shapes[i].bounds())
			f.shapes = append(f.shapes[:i], f.shapes[i+1:]...)
		}
	}
	return dirty
}

func (f *Frame) swapShape(id ShapeID, replacement DrawnShape) geometry.Rect {
	i := f.IndexOf(id)
	if i < 0 {
		return geometry.Rect{}
	}
	dirty := f.shapes[i].bounds().Union(replacement.bounds())
	f.shapes[i] = replacement
	return dirty
}

func (d DrawnShape) bounds() geometry.Rect {
	if d.Shape == nil {
		return geometry.Rect{}
	}
	r, ok := d.Shape.BoundingBox()
	if !ok {
		return geometry.Rect{}
	}
	return r
}

// ClampHistoryDepth truncates both stacks to at most n entries, dropping
// the oldest undo entries and the newest redo entries first.
func (f *Frame) ClampHistoryDepth(n int) {
	if n < 0 {
		n = 0
	}
	f.limit = n
	f.TrimHistory(n)
}

// TrimHistory drops undo and redo entries beyond n without touching the
// frame's history limit. Used by session saves, where the retention
// depth is a persistence setting, not a runtime one.
func (f *Frame) TrimHistory(n int) {
	if n < 0 {
		n = 0
	}
	if len(f.undo) > n {
		drop := len(f.undo) - n
		f.undo = append(f.undo[:0], f.undo[drop:]...)
	}
	if len(f.redo) > n {
		f.redo = f.redo[:n]
	}
}

// HistoryLimit reports the configured undo depth bound.
func (f *Frame) HistoryLimit() int { return f.limit }

// CloneWithoutHistory deep-copies the shapes into a fresh frame with
// empty undo and redo stacks. Shape ids are preserved.
func (f *Frame) CloneWithoutHistory() *Frame {
	clone := &Frame{limit: f.limit, nextID: f.nextID, name: f.name}
	clone.shapes = make([]DrawnShape, len(f.shapes))
	for i, ds := range f.shapes {
		clone.shapes[i] = ds.Clone()
	}
	return clone
}

// TruncateShapes drops shapes from the top of the stack until at most
// max remain, returning how many were dropped. History referring to the
// dropped shapes is pruned.
func (f *Frame) TruncateShapes(max int) int {
	if max < 0 {
		max = 0
	}
	if len(f.shapes) <= max {
		return 0
	}
	dropped := make([]ShapeID, 0, len(f.shapes)-max)
	for _, ds := range f.shapes[max:] {
		dropped = append(dropped, ds.ID)
	}
	f.shapes = f.shapes[:max]
	f.PruneHistoryForRemoved(dropped)
	return len(dropped)
}

// PruneHistoryForRemoved drops every undo and redo entry referencing one
// of the given ids. Reorder entries are kept only while they still index
// into the shrunken stack.
func (f *Frame) PruneHistoryForRemoved(ids []ShapeID) {
	if len(ids) == 0 {
		return
	}
	gone := make(map[ShapeID]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}
	refs := func(op frameOp) bool {
		for _, p := range op.Placed {
			if _, hit := gone[p.Shape.ID]; hit {
				return true
			}
		}
		if op.Kind == opReplace {
			if _, hit := gone[op.Before.ID]; hit {
				return true
			}
			if _, hit := gone[op.After.ID]; hit {
				return true
			}
		}
		if op.Kind == opReorder {
			if op.From >= len(f.shapes) || op.To >= len(f.shapes) {
				return true
			}
		}
		return false
	}
	prune := func(stack []frameOp) []frameOp {
		kept := stack[:0]
		for _, op := range stack {
			if !refs(op) {
				kept = append(kept, op)
			}
		}
		return kept
	}
	f.undo = prune(f.undo)
	f.redo = prune(f.redo)
}

// HasPersistableData reports whether the frame carries anything worth
// writing to disk.
func (f *Frame) HasPersistableData() bool {
	return len(f.shapes) > 0 || len(f.undo) > 0 || len(f.redo) > 0 || f.name != ""
}
