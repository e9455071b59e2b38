package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/geometry"
)

type fakeBackend struct {
	img   *image.RGBA
	err   error
	block bool
}

func (f *fakeBackend) Screenshot(ctx context.Context) (*image.RGBA, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.img, f.err
}

type fakeOverlay struct {
	hidden   int
	restored int
}

func (f *fakeOverlay) HideForCapture()      { f.hidden++ }
func (f *fakeOverlay) RestoreAfterCapture() { f.restored++ }

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 0xff})
		}
	}
	return img
}

// pollUntilDone drives Poll the way the event loop would.
func pollUntilDone(t *testing.T, p *Pipeline) *Outcome {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if out := p.Poll(); out != nil {
			return out
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("capture did not complete")
	return nil
}

func TestStartRejectsConcurrentCapture(t *testing.T) {
	p := NewPipeline(&fakeBackend{block: true}, nil, Options{Timeout: time.Second})
	require.NoError(t, p.Start(Request{Type: FullScreen, Destination: ToFile}))
	assert.True(t, p.InProgress())

	err := p.Start(Request{Type: FullScreen})
	assert.ErrorIs(t, err, ErrCaptureInProgress)

	p.Cancel()
	out := pollUntilDone(t, p)
	assert.Error(t, out.Err)
	assert.False(t, p.InProgress())
}

func TestOverlayHiddenDuringCapture(t *testing.T) {
	overlay := &fakeOverlay{}
	p := NewPipeline(&fakeBackend{img: testImage(8, 8)}, overlay, Options{
		Directory: t.TempDir(),
	})
	require.NoError(t, p.Start(Request{Type: FullScreen, Destination: ToFile}))
	assert.Equal(t, 1, overlay.hidden)
	assert.Equal(t, 0, overlay.restored)

	out := pollUntilDone(t, p)
	require.NoError(t, out.Err)
	assert.Equal(t, 1, overlay.restored)
}

func TestSelectionCropsToRect(t *testing.T) {
	p := NewPipeline(&fakeBackend{img: testImage(100, 100)}, nil, Options{
		Directory: t.TempDir(),
	})
	rect, ok := geometry.NewRect(10, 20, 30, 40)
	require.True(t, ok)
	require.NoError(t, p.Start(Request{Type: Selection, Rect: rect, Destination: ToFile}))

	out := pollUntilDone(t, p)
	require.NoError(t, out.Err)
	require.NotNil(t, out.Image)
	assert.Equal(t, 30, out.Image.Bounds().Dx())
	assert.Equal(t, 40, out.Image.Bounds().Dy())
	// Top-left of the crop is the source pixel at (10, 20).
	got := out.Image.RGBAAt(0, 0)
	assert.Equal(t, uint8(10), got.R)
	assert.Equal(t, uint8(20), got.G)

	_, err := os.Stat(out.Path)
	assert.NoError(t, err)
}

func TestEmptySelectionRejected(t *testing.T) {
	p := NewPipeline(&fakeBackend{img: testImage(8, 8)}, nil, Options{})
	err := p.Start(Request{Type: Selection, Destination: ToFile})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.False(t, p.InProgress())
}

func TestCaptureTimeout(t *testing.T) {
	overlay := &fakeOverlay{}
	p := NewPipeline(&fakeBackend{block: true}, overlay, Options{Timeout: 20 * time.Millisecond})
	require.NoError(t, p.Start(Request{Type: FullScreen, Destination: ToFile}))

	out := pollUntilDone(t, p)
	assert.ErrorIs(t, out.Err, ErrCaptureTimeout)
	assert.Equal(t, 1, overlay.restored)
	assert.False(t, p.InProgress())
}

func TestBackendErrorSurfacesInOutcome(t *testing.T) {
	boom := errors.New("compositor said no")
	p := NewPipeline(&fakeBackend{err: boom}, nil, Options{})
	require.NoError(t, p.Start(Request{Type: FullScreen, Destination: ToFile}))

	out := pollUntilDone(t, p)
	assert.ErrorIs(t, out.Err, boom)
	assert.Nil(t, out.Image)
}

func TestPollIdleReturnsNil(t *testing.T) {
	p := NewPipeline(&fakeBackend{}, nil, Options{})
	assert.Nil(t, p.Poll())
}

func TestExpandTemplate(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	name := ExpandTemplate("shot-{date}-{time}-{n}.png", now, 7)
	assert.Equal(t, "shot-2026-03-14-09-26-53-7.png", name)

	// Unknown placeholders pass through.
	assert.Equal(t, "{foo}.png", ExpandTemplate("{foo}.png", now, 0))
}

func TestSaveImageBumpsSequenceOnCollision(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(&fakeBackend{img: testImage(4, 4)}, nil, Options{
		Directory: dir,
		Template:  "shot-{n}.png",
	})

	require.NoError(t, p.Start(Request{Type: FullScreen, Destination: ToFile}))
	first := pollUntilDone(t, p)
	require.NoError(t, first.Err)

	require.NoError(t, p.Start(Request{Type: FullScreen, Destination: ToFile}))
	second := pollUntilDone(t, p)
	require.NoError(t, second.Err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, filepath.Join(dir, "shot-1.png"), first.Path)
	assert.Equal(t, filepath.Join(dir, "shot-2.png"), second.Path)
}
