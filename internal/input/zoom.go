package input

import "github.com/devmobasa/wayscriber/internal/geometry"

// Zoom scale bounds.
const (
	MinZoomScale = 1.0
	MaxZoomScale = 4.0
)

// CapturedImage is a raster handed in by the backend, used as the
// frozen background and as the zoom source. The core owns it after
// SetCapturedImage; the backend never mutates it afterwards.
type CapturedImage struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// ZoomState is the magnifier view transform. Screen-to-world is
// world = offset + screen/scale.
type ZoomState struct {
	Active  bool
	Locked  bool
	Scale   float64
	OffsetX float64
	OffsetY float64
	Image   *CapturedImage

	panning  bool
	lastPanX float64
	lastPanY float64
}

// NewZoomState returns the identity view.
func NewZoomState() ZoomState {
	return ZoomState{Scale: MinZoomScale}
}

// Reset restores the identity transform. The captured image and lock
// flag are left alone.
func (z *ZoomState) Reset() {
	z.Scale = MinZoomScale
	z.OffsetX = 0
	z.OffsetY = 0
	z.Active = false
	z.panning = false
}

// ScreenToWorld maps a screen position through the current transform.
func (z *ZoomState) ScreenToWorld(sx, sy float64) (float64, float64) {
	if !z.Active || z.Scale <= 0 {
		return sx, sy
	}
	return z.OffsetX + sx/z.Scale, z.OffsetY + sy/z.Scale
}

// ZoomAtScreenPoint multiplies the scale by factor while keeping the
// world point under (sx, sy) fixed, then clamps the view inside the
// captured image (or the screen when no capture is held).
func (z *ZoomState) ZoomAtScreenPoint(factor, sx, sy float64, screenW, screenH int) {
	if factor <= 0 {
		return
	}
	wx, wy := z.ScreenToWorld(sx, sy)
	newScale := geometry.ClampF(z.Scale*factor, MinZoomScale, MaxZoomScale)
	if newScale == z.Scale && z.Active {
		return
	}
	z.Scale = newScale
	z.Active = newScale > MinZoomScale
	z.OffsetX = wx - sx/z.Scale
	z.OffsetY = wy - sy/z.Scale
	z.clampOffsets(screenW, screenH)
	if !z.Active {
		z.OffsetX = 0
		z.OffsetY = 0
	}
}

// PanByScreenDelta shifts the view by a screen-space delta.
func (z *ZoomState) PanByScreenDelta(dx, dy float64, screenW, screenH int) {
	if !z.Active || z.Scale <= 0 {
		return
	}
	z.OffsetX -= dx / z.Scale
	z.OffsetY -= dy / z.Scale
	z.clampOffsets(screenW, screenH)
}

// BeginPan starts middle-drag panning from a screen position.
func (z *ZoomState) BeginPan(sx, sy float64) {
	if !z.Active {
		return
	}
	z.panning = true
	z.lastPanX = sx
	z.lastPanY = sy
}

// PanTo continues a pan to a new screen position.
func (z *ZoomState) PanTo(sx, sy float64, screenW, screenH int) bool {
	if !z.panning {
		return false
	}
	z.PanByScreenDelta(sx-z.lastPanX, sy-z.lastPanY, screenW, screenH)
	z.lastPanX = sx
	z.lastPanY = sy
	return true
}

// EndPan finishes a pan gesture.
func (z *ZoomState) EndPan() { z.panning = false }

// Panning reports whether a pan gesture is active.
func (z *ZoomState) Panning() bool { return z.panning }

// clampOffsets keeps the visible window inside the content. The content
// extent is the captured image when its resolution exceeds the screen,
// otherwise the screen itself.
func (z *ZoomState) clampOffsets(screenW, screenH int) {
	contentW := float64(screenW)
	contentH := float64(screenH)
	if z.Image != nil {
		if w := float64(z.Image.Width); w > contentW {
			contentW = w
		}
		if h := float64(z.Image.Height); h > contentH {
			contentH = h
		}
	}
	maxX := contentW - float64(screenW)/z.Scale
	maxY := contentH - float64(screenH)/z.Scale
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	z.OffsetX = geometry.ClampF(z.OffsetX, 0, maxX)
	z.OffsetY = geometry.ClampF(z.OffsetY, 0, maxY)
}
