package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/geometry"
)

func testCapturedImage(w, h int) *CapturedImage {
	return &CapturedImage{
		Pix:    make([]byte, w*h*4),
		Width:  w,
		Height: h,
		Stride: w * 4,
	}
}

func TestFreezeToggleRequestsCapture(t *testing.T) {
	s := NewState()
	s.Resize(640, 480, 1)

	s.RequestFrozenToggle()
	assert.True(t, s.FreezePending)

	require.True(t, s.TakeFreezeRequest())
	assert.False(t, s.TakeFreezeRequest(), "a request is consumed once")
}

func TestSetCapturedImageFeedsZoom(t *testing.T) {
	s := NewState()
	s.Resize(640, 480, 1)
	s.NeedsRedraw = false
	s.Dirty.Take(geometry.Rect{Width: 640, Height: 480})

	img := testCapturedImage(640, 480)
	s.SetCapturedImage(img)
	assert.Same(t, img, s.Frozen)
	assert.Same(t, img, s.Zoom.Image)
	assert.True(t, s.NeedsRedraw)
	assert.False(t, s.Dirty.IsEmpty())
}

func TestFreezeToggleClearsHeldImage(t *testing.T) {
	s := NewState()
	s.Resize(640, 480, 1)
	s.SetCapturedImage(testCapturedImage(640, 480))
	s.Zoom.Active = true
	s.Zoom.Scale = 2

	s.RequestFrozenToggle()
	assert.Nil(t, s.Frozen)
	assert.Nil(t, s.Zoom.Image)
	assert.False(t, s.Zoom.Active, "zoom resets with its backing image gone")
	assert.False(t, s.FreezePending, "unfreezing never queues a capture")
}

func TestFreezeKeyBinding(t *testing.T) {
	s := NewState()
	s.Resize(640, 480, 1)

	s.OnKeyPress(CharKey('f'), Modifiers{})
	assert.True(t, s.FreezePending)

	s.SetCapturedImage(testCapturedImage(640, 480))
	s.OnKeyPress(CharKey('f'), Modifiers{})
	assert.Nil(t, s.Frozen)
}

func TestToggleFrozenAction(t *testing.T) {
	s := NewState()
	s.Resize(640, 480, 1)

	require.NoError(t, s.Apply(Action{Kind: ActionToggleFrozen}))
	assert.True(t, s.FreezePending)
}
