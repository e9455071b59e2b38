// Package capture drives the screenshot pipeline: hide the overlay,
// request pixels from a backend, post-process (crop, clipboard, file),
// restore the overlay. The pipeline is request/poll; the event loop
// calls Poll each tick and never blocks on capture I/O.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/google/uuid"

	"github.com/devmobasa/wayscriber/internal/geometry"
	"github.com/devmobasa/wayscriber/internal/logger"
)

// Type selects what the backend should capture.
type Type int

const (
	FullScreen Type = iota
	ActiveWindow
	Selection
)

func (t Type) String() string {
	switch t {
	case FullScreen:
		return "fullscreen"
	case ActiveWindow:
		return "window"
	case Selection:
		return "selection"
	}
	return "unknown"
}

// Destination selects where the captured image goes.
type Destination int

const (
	ToFile Destination = iota
	ToClipboard
	ToBoth
	// ToFrozen hands the raw image back to the caller for use as a
	// frozen background; nothing is written anywhere.
	ToFrozen
)

func (d Destination) wantsFile() bool      { return d == ToFile || d == ToBoth }
func (d Destination) wantsClipboard() bool { return d == ToClipboard || d == ToBoth }

// Request describes one capture command.
type Request struct {
	ID          uuid.UUID
	Type        Type
	Destination Destination
	Rect        geometry.Rect // Selection only
}

// Outcome is what Poll reports when a capture finishes.
type Outcome struct {
	Request Request
	Image   *image.RGBA
	Path    string // written file, empty for clipboard-only
	Err     error
}

var (
	ErrCaptureInProgress = errors.New("capture already in progress")
	ErrCaptureTimeout    = errors.New("capture timed out")
	ErrEmptySelection    = errors.New("selection rect is empty")
)

// Backend produces raw screen pixels. The portal implementation lives in
// portal_linux.go; tests substitute their own.
type Backend interface {
	Screenshot(ctx context.Context) (*image.RGBA, error)
}

// Overlay is the surface the pipeline hides while the backend captures,
// so the annotation layer itself stays out of the shot.
type Overlay interface {
	HideForCapture()
	RestoreAfterCapture()
}

// Options configures the pipeline.
type Options struct {
	Timeout   time.Duration
	Directory string
	Template  string // {date}, {time}, {n}
}

// DefaultTimeout bounds how long a single capture may take before the
// overlay is restored and the request fails.
const DefaultTimeout = 10 * time.Second

// DefaultTemplate names saved screenshots.
const DefaultTemplate = "wayscriber-{date}-{time}-{n}.png"

// Pipeline owns the single in-flight capture. It is used from the event
// loop only; the backend goroutine communicates through the done channel.
type Pipeline struct {
	backend Backend
	overlay Overlay
	opts    Options

	active  *Request
	cancel  context.CancelFunc
	done    chan backendResult
	counter int
}

type backendResult struct {
	img *image.RGBA
	err error
}

// NewPipeline wires a backend and overlay. A nil overlay is allowed for
// headless use (tests, file-only captures from the CLI).
func NewPipeline(backend Backend, overlay Overlay, opts Options) *Pipeline {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	return &Pipeline{backend: backend, overlay: overlay, opts: opts}
}

// InProgress reports whether a capture is currently running.
func (p *Pipeline) InProgress() bool { return p.active != nil }

// SetOptions replaces the pipeline options. Call from the event loop;
// an in-flight capture picks up the new save location when it finishes.
func (p *Pipeline) SetOptions(opts Options) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	p.opts = opts
}

// Start begins a capture. The overlay is hidden before the backend is
// asked for pixels and restored when Poll observes completion.
func (p *Pipeline) Start(req Request) error {
	if p.active != nil {
		return ErrCaptureInProgress
	}
	if req.Type == Selection && !req.Rect.Valid() {
		return ErrEmptySelection
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	if p.overlay != nil {
		p.overlay.HideForCapture()
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.opts.Timeout)
	p.active = &req
	p.cancel = cancel
	p.done = make(chan backendResult, 1)

	logger.Debug("capture started", "id", req.ID, "type", req.Type.String())
	go func(done chan<- backendResult) {
		img, err := p.backend.Screenshot(ctx)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		done <- backendResult{img: img, err: err}
	}(p.done)
	return nil
}

// Cancel aborts the in-flight capture, if any. The outcome still arrives
// through Poll so teardown happens in one place.
func (p *Pipeline) Cancel() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Poll checks for completion without blocking. It returns nil while the
// capture is still running or when none is active.
func (p *Pipeline) Poll() *Outcome {
	if p.active == nil {
		return nil
	}
	select {
	case res := <-p.done:
		return p.finish(res)
	default:
		return nil
	}
}

func (p *Pipeline) finish(res backendResult) *Outcome {
	req := *p.active
	p.cancel()
	p.active = nil
	p.cancel = nil
	p.done = nil

	if p.overlay != nil {
		p.overlay.RestoreAfterCapture()
	}

	out := &Outcome{Request: req}
	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) {
			res.err = ErrCaptureTimeout
		}
		out.Err = res.err
		logger.Warn("capture failed", "id", req.ID, "error", res.err)
		return out
	}

	img := res.img
	if req.Type == Selection {
		cropped, err := cropImage(img, req.Rect)
		if err != nil {
			out.Err = err
			return out
		}
		img = cropped
	}
	out.Image = img

	if req.Destination.wantsClipboard() {
		if err := writeClipboardImage(img); err != nil {
			out.Err = fmt.Errorf("clipboard: %w", err)
			return out
		}
	}
	if req.Destination.wantsFile() {
		p.counter++
		path, err := p.saveImage(img)
		if err != nil {
			out.Err = err
			return out
		}
		out.Path = path
	}
	logger.Info("capture finished", "id", req.ID, "path", out.Path)
	return out
}

func cropImage(src *image.RGBA, r geometry.Rect) (*image.RGBA, error) {
	bounds := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(src.Bounds())
	if bounds.Empty() {
		return nil, fmt.Errorf("selection outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst, nil
}
