package input

import "github.com/devmobasa/wayscriber/internal/geometry"

// MaxDirtyRects bounds the accumulated region list; past it the tracker
// collapses to a full-screen repaint.
const MaxDirtyRects = 32

// DirtyTracker accumulates the regions that changed since the last
// render pass. Over-approximation is fine; missing a changed pixel is
// not.
type DirtyTracker struct {
	rects []geometry.Rect
	full  bool
}

// Mark unions a rect into the pending set. Invalid rects are ignored.
func (d *DirtyTracker) Mark(r geometry.Rect) {
	if d.full || !r.Valid() {
		return
	}
	for i, have := range d.rects {
		if have.Contains(r.X, r.Y) && have.Contains(r.Right()-1, r.Bottom()-1) {
			return
		}
		if have.Intersects(r) {
			d.rects[i] = have.Union(r)
			return
		}
	}
	d.rects = append(d.rects, r)
	if len(d.rects) > MaxDirtyRects {
		d.full = true
		d.rects = d.rects[:0]
	}
}

// MarkFull requests a full-screen repaint.
func (d *DirtyTracker) MarkFull() {
	d.full = true
	d.rects = d.rects[:0]
}

// IsEmpty reports whether nothing needs repainting.
func (d *DirtyTracker) IsEmpty() bool {
	return !d.full && len(d.rects) == 0
}

// Take resolves and resets the tracker. A full repaint yields the single
// screen rect; otherwise the accumulated list clipped to the screen.
func (d *DirtyTracker) Take(screen geometry.Rect) []geometry.Rect {
	if d.full {
		d.full = false
		d.rects = d.rects[:0]
		return []geometry.Rect{screen}
	}
	out := make([]geometry.Rect, 0, len(d.rects))
	for _, r := range d.rects {
		if clipped := r.Intersect(screen); clipped.Valid() {
			out = append(out, clipped)
		}
	}
	d.rects = d.rects[:0]
	return out
}
