package draw

import (
	"math"
)

// DefaultHitTolerance is the minimum half-width of the stroke hit band.
const DefaultHitTolerance = 6.0

func segmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

func strokeHit(pts []StrokePoint, x, y int, band float64) bool {
	if len(pts) == 0 {
		return false
	}
	px, py := float64(x), float64(y)
	if len(pts) == 1 {
		return math.Hypot(px-float64(pts[0].X), py-float64(pts[0].Y)) <= band
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if segmentDistance(px, py, float64(a.X), float64(a.Y), float64(b.X), float64(b.Y)) <= band {
			return true
		}
	}
	return false
}

func hitBand(thickness, tol float64) float64 {
	return math.Max(thickness/2, math.Max(tol, DefaultHitTolerance))
}

func (s *Freehand) HitTest(x, y int, tol float64) bool {
	return strokeHit(s.Points, x, y, hitBand(s.Thickness, tol))
}

func (s *Marker) HitTest(x, y int, tol float64) bool {
	return strokeHit(s.Points, x, y, hitBand(s.Thickness, tol))
}

func (s *EraserStroke) HitTest(x, y int, tol float64) bool {
	return strokeHit(s.Points, x, y, hitBand(s.Size, tol))
}

func (s *Line) HitTest(x, y int, tol float64) bool {
	d := segmentDistance(float64(x), float64(y), float64(s.X1), float64(s.Y1), float64(s.X2), float64(s.Y2))
	return d <= hitBand(s.Thickness, tol)
}

func (s *Rect) HitTest(x, y int, tol float64) bool {
	if s.W <= 0 || s.H <= 0 {
		return false
	}
	if s.Fill {
		band := int(hitBand(s.Thickness, tol))
		return x >= s.X-band && x <= s.X+s.W+band && y >= s.Y-band && y <= s.Y+s.H+band
	}
	band := hitBand(s.Thickness, tol)
	px, py := float64(x), float64(y)
	x1, y1 := float64(s.X), float64(s.Y)
	x2, y2 := float64(s.X+s.W), float64(s.Y+s.H)
	edges := [4][4]float64{
		{x1, y1, x2, y1},
		{x2, y1, x2, y2},
		{x2, y2, x1, y2},
		{x1, y2, x1, y1},
	}
	for _, e := range edges {
		if segmentDistance(px, py, e[0], e[1], e[2], e[3]) <= band {
			return true
		}
	}
	return false
}

func (s *Ellipse) HitTest(x, y int, tol float64) bool {
	if s.RX <= 0 || s.RY <= 0 {
		return false
	}
	nx := (float64(x) - float64(s.CX)) / float64(s.RX)
	ny := (float64(y) - float64(s.CY)) / float64(s.RY)
	d := math.Hypot(nx, ny)
	if s.Fill {
		band := hitBand(s.Thickness, tol) / math.Min(float64(s.RX), float64(s.RY))
		return d <= 1+band
	}
	// Normalized distance from the ring, converted back to pixels using
	// the smaller radius as the conservative scale.
	band := hitBand(s.Thickness, tol) / math.Min(float64(s.RX), float64(s.RY))
	return math.Abs(d-1) <= band
}

func (s *Arrow) HitTest(x, y int, tol float64) bool {
	d := segmentDistance(float64(x), float64(y), float64(s.X1), float64(s.Y1), float64(s.X2), float64(s.Y2))
	if d <= hitBand(s.Thickness, tol) {
		return true
	}
	if lr, ok := s.labelBounds(); ok && lr.Contains(x, y) {
		return true
	}
	return false
}

func (s *Highlight) HitTest(x, y int, _ float64) bool {
	return s.W > 0 && s.H > 0 && x >= s.X && x <= s.X+s.W && y >= s.Y && y <= s.Y+s.H
}

func (s *Text) HitTest(x, y int, _ float64) bool {
	r, ok := s.BoundingBox()
	return ok && r.Contains(x, y)
}

func (s *StickyNote) HitTest(x, y int, _ float64) bool {
	r, ok := s.BoundingBox()
	return ok && r.Contains(x, y)
}

func (s *StepMarker) HitTest(x, y int, tol float64) bool {
	r := float64(s.Radius()) + tol
	return math.Hypot(float64(x-s.X), float64(y-s.Y)) <= r
}
