package input

import (
	"math"

	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
)

// SelectionHaloPadding is how far the halo extends past a selected
// shape's bounds, in logical pixels.
const SelectionHaloPadding = 4

// DuplicateOffsetPx is the offset applied to duplicated shapes.
const DuplicateOffsetPx = 8

// Selection is an ordered, deduplicated sequence of shape ids. Order
// matters for the properties panel.
type Selection struct {
	ids []draw.ShapeID
}

// IDs returns the selected ids in selection order. Callers must not
// mutate the returned slice.
func (s *Selection) IDs() []draw.ShapeID { return s.ids }

// Len reports the selection size.
func (s *Selection) Len() int { return len(s.ids) }

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool { return len(s.ids) == 0 }

// Contains reports whether the id is selected.
func (s *Selection) Contains(id draw.ShapeID) bool {
	for _, have := range s.ids {
		if have == id {
			return true
		}
	}
	return false
}

// Set replaces the selection.
func (s *Selection) Set(ids []draw.ShapeID) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		s.Add(id)
	}
}

// Add appends an id if not already present.
func (s *Selection) Add(id draw.ShapeID) {
	if !s.Contains(id) {
		s.ids = append(s.ids, id)
	}
}

// Toggle flips an id's membership.
func (s *Selection) Toggle(id draw.ShapeID) {
	for i, have := range s.ids {
		if have == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

// Remove drops an id if present.
func (s *Selection) Remove(id draw.ShapeID) {
	for i, have := range s.ids {
		if have == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = s.ids[:0] }

// Handle identifies a selection resize handle.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// movesLeft reports whether dragging this handle moves the left edge.
func (h Handle) movesLeft() bool {
	return h == HandleTopLeft || h == HandleLeft || h == HandleBottomLeft
}

func (h Handle) movesRight() bool {
	return h == HandleTopRight || h == HandleRight || h == HandleBottomRight
}

func (h Handle) movesTop() bool {
	return h == HandleTopLeft || h == HandleTop || h == HandleTopRight
}

func (h Handle) movesBottom() bool {
	return h == HandleBottomLeft || h == HandleBottom || h == HandleBottomRight
}

// HandleHitSize is the clickable square around each handle.
const HandleHitSize = 10

// HandleAt returns the handle whose hit square contains the point, for
// the given selection bounds.
func HandleAt(bounds geometry.Rect, x, y int) Handle {
	if !bounds.Valid() {
		return HandleNone
	}
	cx := bounds.X + bounds.Width/2
	cy := bounds.Y + bounds.Height/2
	spots := []struct {
		h    Handle
		x, y int
	}{
		{HandleTopLeft, bounds.X, bounds.Y},
		{HandleTop, cx, bounds.Y},
		{HandleTopRight, bounds.Right(), bounds.Y},
		{HandleRight, bounds.Right(), cy},
		{HandleBottomRight, bounds.Right(), bounds.Bottom()},
		{HandleBottom, cx, bounds.Bottom()},
		{HandleBottomLeft, bounds.X, bounds.Bottom()},
		{HandleLeft, bounds.X, cy},
	}
	for _, spot := range spots {
		if abs(x-spot.x) <= HandleHitSize/2 && abs(y-spot.y) <= HandleHitSize/2 {
			return spot.h
		}
	}
	return HandleNone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SelectionBounds returns the union of the selected shapes' bounds.
func (s *State) SelectionBounds() (geometry.Rect, bool) {
	var union geometry.Rect
	any := false
	frame := s.ActiveFrame()
	for _, id := range s.Selection.ids {
		ds, ok := frame.Get(id)
		if !ok {
			continue
		}
		if box, ok := ds.Shape.BoundingBox(); ok {
			union = union.Union(box)
			any = true
		}
	}
	return union, any
}

// unlockedSelectionBounds unions only the shapes a transform will move.
func (s *State) unlockedSelectionBounds() (geometry.Rect, bool) {
	var union geometry.Rect
	any := false
	frame := s.ActiveFrame()
	for _, id := range s.Selection.ids {
		ds, ok := frame.Get(id)
		if !ok || ds.Locked {
			continue
		}
		if box, ok := ds.Shape.BoundingBox(); ok {
			union = union.Union(box)
			any = true
		}
	}
	return union, any
}

// markSelection marks the selection's painted area including halos.
func (s *State) markSelection() {
	if box, ok := s.SelectionBounds(); ok {
		s.markRect(box.Inflate(SelectionHaloPadding))
	}
}

// SelectShapesIn replaces (or, additive, extends) the selection with the
// shapes intersecting the marquee rect, in z-order.
func (s *State) SelectShapesIn(marquee geometry.Rect, additive bool) {
	s.markSelection()
	if !additive {
		s.Selection.Clear()
	}
	for _, ds := range s.ActiveFrame().Shapes() {
		box, ok := ds.Shape.BoundingBox()
		if !ok || !box.Intersects(marquee) {
			continue
		}
		if additive {
			s.Selection.Toggle(ds.ID)
		} else {
			s.Selection.Add(ds.ID)
		}
	}
	s.markSelection()
}

// DeleteSelection removes every selected unlocked shape, pushing one
// Remove op per shape. Locked shapes stay selected.
func (s *State) DeleteSelection() int {
	frame := s.ActiveFrame()
	removed := 0
	kept := s.Selection.ids[:0]
	for _, id := range s.Selection.ids {
		ds, ok := frame.Get(id)
		if !ok {
			continue
		}
		if ds.Locked {
			kept = append(kept, id)
			continue
		}
		s.markShape(ds)
		if frame.RemoveShape(id) {
			removed++
		}
	}
	s.Selection.ids = kept
	if removed > 0 {
		s.invalidateHitCache()
		s.markSessionDirty()
	}
	return removed
}

// DuplicateSelection clones each selected shape offset by +8px, assigns
// fresh ids, and selects the clones.
func (s *State) DuplicateSelection() int {
	frame := s.ActiveFrame()
	clones := make([]draw.ShapeID, 0, s.Selection.Len())
	for _, id := range s.Selection.ids {
		ds, ok := frame.Get(id)
		if !ok {
			continue
		}
		clone := ds.Shape.Clone()
		clone.Translate(DuplicateOffsetPx, DuplicateOffsetPx)
		newID := frame.AddShape(clone)
		clones = append(clones, newID)
	}
	if len(clones) == 0 {
		return 0
	}
	s.markSelection()
	s.Selection.Set(clones)
	s.markSelection()
	s.invalidateHitCache()
	s.markSessionDirty()
	return len(clones)
}

// MoveSelectionToFront reorders each selected shape to the top of the
// z-order, preserving relative order within the selection.
func (s *State) MoveSelectionToFront() {
	frame := s.ActiveFrame()
	ordered := s.selectionInZOrder()
	for _, id := range ordered {
		if i := frame.IndexOf(id); i >= 0 {
			frame.Reorder(i, frame.Len()-1)
		}
	}
	s.afterReorder()
}

// MoveSelectionToBack reorders each selected shape to the bottom,
// preserving relative order within the selection.
func (s *State) MoveSelectionToBack() {
	frame := s.ActiveFrame()
	ordered := s.selectionInZOrder()
	for i := len(ordered) - 1; i >= 0; i-- {
		if idx := frame.IndexOf(ordered[i]); idx >= 0 {
			frame.Reorder(idx, 0)
		}
	}
	s.afterReorder()
}

func (s *State) afterReorder() {
	s.markSelection()
	s.invalidateHitCache()
	s.markSessionDirty()
}

// selectionInZOrder returns the selected ids sorted by current z-order.
func (s *State) selectionInZOrder() []draw.ShapeID {
	frame := s.ActiveFrame()
	out := make([]draw.ShapeID, 0, s.Selection.Len())
	for _, ds := range frame.Shapes() {
		if s.Selection.Contains(ds.ID) {
			out = append(out, ds.ID)
		}
	}
	return out
}

// SetSelectionLocked flips the locked flag on every selected shape.
// Locking is metadata and records no history op.
func (s *State) SetSelectionLocked(locked bool) {
	frame := s.ActiveFrame()
	for _, id := range s.Selection.ids {
		frame.SetLocked(id, locked)
	}
	s.markSelection()
	s.markSessionDirty()
}

// ClampTranslation reduces (dx, dy) so the union of unlocked selected
// bounds stays on screen, each axis independently. A shape already past
// an edge is not pushed further out but may move back in.
func (s *State) ClampTranslation(dx, dy int) (int, int) {
	union, ok := s.unlockedSelectionBounds()
	if !ok {
		return 0, 0
	}
	screen := s.ScreenRect()
	if dx > 0 {
		if room := screen.Right() - union.Right(); dx > room && room >= 0 {
			dx = room
		} else if room < 0 {
			dx = 0
		}
	} else if dx < 0 {
		if room := screen.X - union.X; dx < room && room <= 0 {
			dx = room
		} else if room > 0 {
			dx = 0
		}
	}
	if dy > 0 {
		if room := screen.Bottom() - union.Bottom(); dy > room && room >= 0 {
			dy = room
		} else if room < 0 {
			dy = 0
		}
	} else if dy < 0 {
		if room := screen.Y - union.Y; dy < room && room <= 0 {
			dy = room
		} else if room > 0 {
			dy = 0
		}
	}
	return dx, dy
}

// ApplyTranslation moves every selected unlocked shape by the clamped
// delta and reports whether anything moved. No history op is pushed;
// interactive moves snapshot on press and push Replace on release.
func (s *State) ApplyTranslation(dx, dy int) bool {
	dx, dy = s.ClampTranslation(dx, dy)
	if dx == 0 && dy == 0 {
		return false
	}
	frame := s.ActiveFrame()
	s.markSelection()
	for _, id := range s.Selection.ids {
		ds, ok := frame.Get(id)
		if !ok || ds.Locked {
			continue
		}
		ds.Shape.Translate(dx, dy)
	}
	s.markSelection()
	s.invalidateHitCache()
	s.markSessionDirty()
	return true
}

// resizeSelectionTo remaps every unlocked selected shape from the
// original interaction bounds into the new bounds. Stroke points scale
// with the box; font and stroke sizes scale by the geometric mean of the
// axis factors, floored at 1px.
func (s *State) resizeSelectionTo(orig, target geometry.Rect, snapshots []shapeSnapshot) {
	if !orig.Valid() || !target.Valid() {
		return
	}
	sx := float64(target.Width) / float64(orig.Width)
	sy := float64(target.Height) / float64(orig.Height)
	sizeScale := math.Sqrt(math.Abs(sx) * math.Abs(sy))
	frame := s.ActiveFrame()
	s.markSelection()
	for _, snap := range snapshots {
		ds, ok := frame.Get(snap.id)
		if !ok || ds.Locked {
			continue
		}
		fresh := snap.before.Clone()
		fresh.MapGeometry(func(x, y int) (int, int) {
			nx := float64(target.X) + (float64(x)-float64(orig.X))*sx
			ny := float64(target.Y) + (float64(y)-float64(orig.Y))*sy
			return int(math.Round(nx)), int(math.Round(ny))
		}, sizeScale)
		replaceInPlace(ds.Shape, fresh)
	}
	s.markSelection()
	s.invalidateHitCache()
}

// replaceInPlace copies the geometry of src into dst, which must be the
// same variant. Used during interactive transforms so the committed
// Replace op on release sees the final geometry.
func replaceInPlace(dst, src draw.Shape) {
	switch d := dst.(type) {
	case *draw.Freehand:
		*d = *src.(*draw.Freehand)
	case *draw.Marker:
		*d = *src.(*draw.Marker)
	case *draw.EraserStroke:
		*d = *src.(*draw.EraserStroke)
	case *draw.Line:
		*d = *src.(*draw.Line)
	case *draw.Rect:
		*d = *src.(*draw.Rect)
	case *draw.Ellipse:
		*d = *src.(*draw.Ellipse)
	case *draw.Arrow:
		*d = *src.(*draw.Arrow)
	case *draw.Highlight:
		*d = *src.(*draw.Highlight)
	case *draw.Text:
		*d = *src.(*draw.Text)
	case *draw.StickyNote:
		*d = *src.(*draw.StickyNote)
	case *draw.StepMarker:
		*d = *src.(*draw.StepMarker)
	}
}

// handleTargetBounds computes the new selection bounds for a resize drag
// of the given handle to (x, y). With aboutCenter the box scales
// symmetrically around its center.
func handleTargetBounds(orig geometry.Rect, h Handle, x, y int, aboutCenter bool) geometry.Rect {
	left, top := orig.X, orig.Y
	right, bottom := orig.Right(), orig.Bottom()
	if h.movesLeft() {
		left = x
	}
	if h.movesRight() {
		right = x
	}
	if h.movesTop() {
		top = y
	}
	if h.movesBottom() {
		bottom = y
	}
	if aboutCenter {
		cx := orig.X*2 + orig.Width
		cy := orig.Y*2 + orig.Height
		if h.movesLeft() || h.movesRight() {
			if h.movesLeft() {
				right = cx - left
			} else {
				left = cx - right
			}
		}
		if h.movesTop() || h.movesBottom() {
			if h.movesTop() {
				bottom = cy - top
			} else {
				top = cy - bottom
			}
		}
	}
	out := geometry.RectFromCorners(left, top, right, bottom)
	if out.Width < 1 {
		out.Width = 1
	}
	if out.Height < 1 {
		out.Height = 1
	}
	return out
}
