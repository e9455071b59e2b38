package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoomKeepsCursorWorldPointFixed(t *testing.T) {
	z := NewZoomState()
	z.ZoomAtScreenPoint(2, 960, 540, 1920, 1080)

	assert.True(t, z.Active)
	assert.InDelta(t, 2.0, z.Scale, 1e-9)
	wx, wy := z.ScreenToWorld(960, 540)
	assert.InDelta(t, 960.0, wx, 1e-9)
	assert.InDelta(t, 540.0, wy, 1e-9)
}

func TestZoomScaleClamped(t *testing.T) {
	z := NewZoomState()
	z.ZoomAtScreenPoint(100, 0, 0, 1920, 1080)
	assert.InDelta(t, MaxZoomScale, z.Scale, 1e-9)

	z.ZoomAtScreenPoint(0.0001, 0, 0, 1920, 1080)
	assert.InDelta(t, MinZoomScale, z.Scale, 1e-9)
	assert.False(t, z.Active)
	assert.Zero(t, z.OffsetX)
	assert.Zero(t, z.OffsetY)
}

func TestZoomOffsetsClampToContent(t *testing.T) {
	z := NewZoomState()
	// Zooming at the far corner cannot expose area past the content
	// edge.
	z.ZoomAtScreenPoint(2, 1920, 1080, 1920, 1080)
	assert.LessOrEqual(t, z.OffsetX, 1920.0-1920.0/z.Scale)
	assert.LessOrEqual(t, z.OffsetY, 1080.0-1080.0/z.Scale)
	assert.GreaterOrEqual(t, z.OffsetX, 0.0)
	assert.GreaterOrEqual(t, z.OffsetY, 0.0)
}

func TestPanOnlyWhileActive(t *testing.T) {
	z := NewZoomState()
	z.BeginPan(100, 100)
	assert.False(t, z.Panning(), "panning needs an active zoom")

	z.ZoomAtScreenPoint(2, 0, 0, 1920, 1080)
	z.BeginPan(100, 100)
	assert.True(t, z.Panning())

	before := z.OffsetX
	assert.True(t, z.PanTo(50, 100, 1920, 1080))
	assert.Greater(t, z.OffsetX, before, "dragging left moves the view right")

	z.EndPan()
	assert.False(t, z.PanTo(0, 0, 1920, 1080))
}

func TestResetKeepsImage(t *testing.T) {
	z := NewZoomState()
	z.Image = &CapturedImage{Width: 3840, Height: 2160, Stride: 3840 * 4}
	z.ZoomAtScreenPoint(2, 0, 0, 1920, 1080)
	z.Reset()

	assert.False(t, z.Active)
	assert.NotNil(t, z.Image, "reset leaves the capture for the next zoom")
}
