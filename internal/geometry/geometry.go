// Package geometry provides the integer geometry primitives shared by the
// shape model, the dirty tracker and the renderer. All coordinates are in
// logical (pre-scale) pixels and clamp to the int32 range instead of
// overflowing.
package geometry

import "math"

// MaxCoord and MinCoord bound every logical coordinate. Arithmetic in
// this package saturates at these values.
const (
	MaxCoord = math.MaxInt32
	MinCoord = math.MinInt32

	maxCoord = MaxCoord
	minCoord = MinCoord
)

// Point is a position in logical pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle. A Rect with non-positive width or
// height is invalid; operations on invalid rects are no-ops that return
// the other operand where that makes sense.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect returns the rect and whether it is valid. Width or height of
// zero or less produces an invalid rect.
func NewRect(x, y, w, h int) (Rect, bool) {
	r := Rect{X: x, Y: y, Width: w, Height: h}
	return r, r.Valid()
}

// RectFromCorners normalizes two arbitrary corner points into a rect.
// Degenerate spans yield an invalid rect.
func RectFromCorners(x1, y1, x2, y2 int) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Valid reports whether the rect has a positive area.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Right returns the exclusive right edge, saturating on overflow.
func (r Rect) Right() int {
	return satAdd(r.X, r.Width)
}

// Bottom returns the exclusive bottom edge, saturating on overflow.
func (r Rect) Bottom() int {
	return satAdd(r.Y, r.Height)
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return r.Valid() && x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	if !r.Valid() || !o.Valid() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rect covering both operands. An invalid
// operand yields the other one unchanged.
func (r Rect) Union(o Rect) Rect {
	if !r.Valid() {
		return o
	}
	if !o.Valid() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, Width: satSub(right, x), Height: satSub(bottom, y)}
}

// Intersect returns the overlap of the two rects; the result is invalid
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Inflate grows the rect by d on every side (shrinks for negative d).
func (r Rect) Inflate(d int) Rect {
	return Rect{
		X:      satSub(r.X, d),
		Y:      satSub(r.Y, d),
		Width:  satAdd(r.Width, satMulInt(d, 2)),
		Height: satAdd(r.Height, satMulInt(d, 2)),
	}
}

// Translate shifts the rect, saturating each coordinate.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: satAdd(r.X, dx), Y: satAdd(r.Y, dy), Width: r.Width, Height: r.Height}
}

// Scale multiplies every component by f, saturating on overflow.
func (r Rect) Scale(f float64) Rect {
	return Rect{
		X:      satFloat(float64(r.X) * f),
		Y:      satFloat(float64(r.Y) * f),
		Width:  satFloat(float64(r.Width) * f),
		Height: satFloat(float64(r.Height) * f),
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampF limits v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func satAdd(a, b int) int {
	s := a + b
	if s > maxCoord {
		return maxCoord
	}
	if s < minCoord {
		return minCoord
	}
	return s
}

func satSub(a, b int) int {
	return satAdd(a, -b)
}

func satMulInt(a, b int) int {
	p := a * b
	if p > maxCoord {
		return maxCoord
	}
	if p < minCoord {
		return minCoord
	}
	return p
}

func satFloat(v float64) int {
	if v > maxCoord {
		return maxCoord
	}
	if v < minCoord {
		return minCoord
	}
	return int(v)
}
