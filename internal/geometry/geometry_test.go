package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRectValidity(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		valid bool
	}{
		{"positive area", 10, 5, true},
		{"zero width", 0, 5, false},
		{"zero height", 10, 0, false},
		{"negative width", -3, 5, false},
		{"negative height", 10, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := NewRect(1, 2, tt.w, tt.h)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.valid, r.Valid())
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 10}

	u := a.Union(b)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 30, Height: 15}, u)

	t.Run("invalid operand returns the other", func(t *testing.T) {
		assert.Equal(t, a, a.Union(Rect{}))
		assert.Equal(t, a, Rect{}.Union(a))
	})

	t.Run("saturates on overflow", func(t *testing.T) {
		big := Rect{X: math.MinInt32, Y: 0, Width: 10, Height: 10}
		far := Rect{X: math.MaxInt32 - 5, Y: 0, Width: 10, Height: 10}
		u := big.Union(far)
		assert.Equal(t, math.MaxInt32, u.Width)
	})
}

func TestRectScaleSaturates(t *testing.T) {
	r := Rect{X: math.MaxInt32 / 2, Y: 0, Width: math.MaxInt32 / 2, Height: 1}
	s := r.Scale(4)
	assert.Equal(t, math.MaxInt32, s.X)
	assert.Equal(t, math.MaxInt32, s.Width)
}

func TestRectContainsAndIntersect(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(29, 29))
	assert.False(t, r.Contains(30, 30), "right/bottom edges are exclusive")
	assert.False(t, r.Contains(9, 15))

	o := Rect{X: 25, Y: 25, Width: 20, Height: 20}
	assert.True(t, r.Intersects(o))
	assert.Equal(t, Rect{X: 25, Y: 25, Width: 5, Height: 5}, r.Intersect(o))

	apart := Rect{X: 100, Y: 100, Width: 5, Height: 5}
	assert.False(t, r.Intersects(apart))
	assert.False(t, r.Intersect(apart).Valid())
}

func TestRectInflate(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	assert.Equal(t, Rect{X: 7, Y: 7, Width: 16, Height: 16}, r.Inflate(3))
	assert.Equal(t, Rect{X: 12, Y: 12, Width: 6, Height: 6}, r.Inflate(-2))
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(30, 40, 10, 20)
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 20, Height: 20}, r)
	assert.False(t, RectFromCorners(5, 5, 5, 9).Valid(), "zero-width span is invalid")
}
