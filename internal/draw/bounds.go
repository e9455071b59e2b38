package draw

import (
	"math"

	"github.com/devmobasa/wayscriber/internal/geometry"
)

// StickyNotePadding is the card inset around sticky-note text, shared by
// bounds, hit tests and the renderer.
const StickyNotePadding = 8

// TextBackgroundPadding is the inset of the optional box behind plain text.
const TextBackgroundPadding = 4

func strokeBounds(pts []StrokePoint, base float64) (geometry.Rect, bool) {
	if len(pts) == 0 {
		return geometry.Rect{}, false
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	maxThick := base
	for _, p := range pts {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
		if p.Thickness > maxThick {
			maxThick = p.Thickness
		}
	}
	pad := max(int(math.Ceil(maxThick/2)), 1)
	r := geometry.Rect{
		X:      minX - pad,
		Y:      minY - pad,
		Width:  max(maxX-minX+2*pad, 1),
		Height: max(maxY-minY+2*pad, 1),
	}
	return r, true
}

func (s *Freehand) BoundingBox() (geometry.Rect, bool) {
	return strokeBounds(s.Points, s.Thickness)
}

func (s *Marker) BoundingBox() (geometry.Rect, bool) {
	// Marker ink bleeds slightly past its nominal width.
	inflated := math.Max(s.Thickness*1.35, s.Thickness+1)
	return strokeBounds(s.Points, inflated)
}

func (s *EraserStroke) BoundingBox() (geometry.Rect, bool) {
	return strokeBounds(s.Points, s.Size)
}

func (s *Line) BoundingBox() (geometry.Rect, bool) {
	r := geometry.RectFromCorners(s.X1, s.Y1, s.X2, s.Y2)
	pad := max(int(math.Ceil(s.Thickness/2)), 1)
	r = r.Inflate(pad)
	return r, r.Valid()
}

func (s *Rect) BoundingBox() (geometry.Rect, bool) {
	if s.W <= 0 || s.H <= 0 {
		return geometry.Rect{}, false
	}
	pad := max(int(math.Ceil(s.Thickness/2)), 1)
	r := geometry.Rect{X: s.X, Y: s.Y, Width: s.W, Height: s.H}.Inflate(pad)
	return r, true
}

func (s *Ellipse) BoundingBox() (geometry.Rect, bool) {
	if s.RX <= 0 || s.RY <= 0 {
		return geometry.Rect{}, false
	}
	pad := max(int(math.Ceil(s.Thickness/2)), 1)
	r := geometry.Rect{
		X:      s.CX - s.RX,
		Y:      s.CY - s.RY,
		Width:  2 * s.RX,
		Height: 2 * s.RY,
	}.Inflate(pad)
	return r, true
}

func (s *Arrow) BoundingBox() (geometry.Rect, bool) {
	r := geometry.RectFromCorners(s.X1, s.Y1, s.X2, s.Y2)
	pad := max(int(math.Ceil(s.Thickness/2+s.HeadLength)), 1)
	r = r.Inflate(pad)
	if s.Label != nil {
		if lr, ok := s.labelBounds(); ok {
			r = r.Union(lr)
		}
	}
	return r, r.Valid()
}

func (s *Arrow) labelBounds() (geometry.Rect, bool) {
	if s.Label == nil {
		return geometry.Rect{}, false
	}
	lx, ly := s.labelAnchor()
	layout := LayoutText(formatLabel(s.Label.Value), s.Label.Font, s.Label.Size, 0)
	r := geometry.Rect{
		X:      lx - layout.Width/2,
		Y:      ly - layout.Height()/2,
		Width:  layout.Width,
		Height: layout.Height(),
	}.Inflate(4)
	return r, true
}

// labelAnchor places the label just past the tail end of the arrow.
func (s *Arrow) labelAnchor() (int, int) {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return s.X1, s.Y1 - int(s.Label.Size)
	}
	offset := s.Label.Size + 6
	return s.X1 - int(dx/length*offset), s.Y1 - int(dy/length*offset)
}

func (s *Highlight) BoundingBox() (geometry.Rect, bool) {
	if s.W <= 0 || s.H <= 0 {
		return geometry.Rect{}, false
	}
	return geometry.Rect{X: s.X, Y: s.Y, Width: s.W, Height: s.H}, true
}

func (s *Text) BoundingBox() (geometry.Rect, bool) {
	layout := LayoutText(s.Text, s.Font, s.Size, s.WrapWidth)
	w := layout.Width
	if s.WrapWidth > 0 && s.WrapWidth > w {
		w = s.WrapWidth
	}
	if w <= 0 {
		w = 1
	}
	r := geometry.Rect{X: s.X, Y: s.Y, Width: w, Height: layout.Height()}
	if s.Background {
		r = r.Inflate(TextBackgroundPadding)
	}
	return r, true
}

func (s *StickyNote) BoundingBox() (geometry.Rect, bool) {
	layout := LayoutText(s.Text, s.Font, s.Size, s.WrapWidth)
	w := layout.Width
	if s.WrapWidth > 0 && s.WrapWidth > w {
		w = s.WrapWidth
	}
	if w <= 0 {
		w = 1
	}
	r := geometry.Rect{X: s.X, Y: s.Y, Width: w, Height: layout.Height()}
	return r.Inflate(StickyNotePadding), true
}

// Radius returns the bubble radius, sized to fit the label text.
func (s *StepMarker) Radius() int {
	layout := LayoutText(formatLabel(s.Label.Value), s.Label.Font, s.Label.Size, 0)
	r := max(int(s.Label.Size*0.9), layout.Width/2+6)
	return max(r, 8)
}

func (s *StepMarker) BoundingBox() (geometry.Rect, bool) {
	r := s.Radius()
	return geometry.Rect{X: s.X - r, Y: s.Y - r, Width: 2 * r, Height: 2 * r}, true
}

func formatLabel(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
