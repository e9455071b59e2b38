package render

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
	"github.com/devmobasa/wayscriber/internal/input"
)

const (
	statusBarHeight = 36
	toastWidth      = 360
	toastHeight     = 44
	toastMargin     = 12
	selectionDash   = 4
)

// Renderer rasterizes the annotation state into an owned RGBA buffer.
// The backend blits the buffer (or just the returned damage) to its
// surface after every Render call.
type Renderer struct {
	buf   *image.RGBA
	scale int
}

// New returns a renderer with no buffer; call Resize before Render.
func New() *Renderer {
	return &Renderer{scale: 1}
}

// Resize allocates the buffer at logical w x h times the integer buffer
// scale. An unchanged size keeps the buffer, so pixels painted on
// earlier passes survive frames that only repaint other regions.
func (r *Renderer) Resize(w, h, scale int) {
	if scale < 1 {
		scale = 1
	}
	if r.buf != nil && r.scale == scale &&
		r.buf.Bounds().Dx() == w*scale && r.buf.Bounds().Dy() == h*scale {
		return
	}
	r.scale = scale
	r.buf = image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
}

// Buffer exposes the current raster for the backend to blit.
func (r *Renderer) Buffer() *image.RGBA { return r.buf }

// Render repaints the state's dirty regions and returns the damaged
// buffer rectangles. A zoomed view always repaints fully because the
// view transform invalidates region tracking.
func (r *Renderer) Render(s *input.State) []image.Rectangle {
	if r.buf == nil {
		return nil
	}
	if s.Zoom.Active {
		s.Dirty.MarkFull()
	}
	rects := s.Dirty.Take(s.ScreenRect())
	s.NeedsRedraw = false
	damage := make([]image.Rectangle, 0, len(rects))
	for _, lr := range rects {
		clip := r.bufferRect(lr)
		if clip.Empty() {
			continue
		}
		r.paintRegion(s, clip)
		damage = append(damage, clip)
	}
	return damage
}

// bufferRect converts a logical rect to buffer pixels.
func (r *Renderer) bufferRect(lr geometry.Rect) image.Rectangle {
	return image.Rect(lr.X*r.scale, lr.Y*r.scale, lr.Right()*r.scale, lr.Bottom()*r.scale).
		Intersect(r.buf.Bounds())
}

// paintRegion runs the full pass stack clipped to one buffer rect.
func (r *Renderer) paintRegion(s *input.State, clip image.Rectangle) {
	sub := r.buf.SubImage(clip).(*image.RGBA)

	bg := r.paintBackground(s, sub, clip)
	view := r.viewTransform(s)

	frame := s.ActiveFrame()
	for _, ds := range frame.Shapes() {
		r.paintTransformed(sub, ds.Shape, view, bg)
	}

	r.paintSelection(s, sub, view)
	if prov := s.ProvisionalShape(); prov != nil {
		r.paintTransformed(sub, prov, view, bg)
	}
	if marquee, ok := s.MarqueeRect(); ok {
		r.paintMarquee(sub, marquee, view)
	}
	r.paintTextPreview(s, sub)
	r.paintOverlays(s, sub, clip)
}

// viewTransform returns the world-to-buffer mapping and its size scale.
func (r *Renderer) viewTransform(s *input.State) viewFn {
	scale := float64(r.scale)
	z := s.Zoom
	if !z.Active {
		return viewFn{
			mapPt: func(x, y int) (int, int) {
				return x * r.scale, y * r.scale
			},
			sizeScale: scale,
		}
	}
	return viewFn{
		mapPt: func(x, y int) (int, int) {
			sx := (float64(x) - z.OffsetX) * z.Scale * scale
			sy := (float64(y) - z.OffsetY) * z.Scale * scale
			return int(math.Round(sx)), int(math.Round(sy))
		},
		sizeScale: z.Scale * scale,
	}
}

type viewFn struct {
	mapPt     func(x, y int) (int, int)
	sizeScale float64
}

// paintTransformed clones the shape through the view transform and
// rasterizes the clone, leaving the model untouched.
func (r *Renderer) paintTransformed(img *image.RGBA, shape draw.Shape, view viewFn, bg Background) {
	clone := shape.Clone()
	clone.MapGeometry(view.mapPt, view.sizeScale)
	if box, ok := clone.BoundingBox(); ok {
		ib := image.Rect(box.X, box.Y, box.Right(), box.Bottom())
		if !ib.Overlaps(img.Bounds()) {
			return
		}
	}
	paintShape(img, clone, bg)
}

// paintBackground clears the region and lays down the frozen capture or
// the board fill. It returns the eraser replay context.
func (r *Renderer) paintBackground(s *input.State, sub *image.RGBA, clip image.Rectangle) Background {
	spec := s.Boards.Active().Spec
	bg := Background{Solid: spec.Background.Solid}

	switch {
	case s.Frozen != nil:
		r.blitCaptured(s, sub, clip, s.Frozen)
	case bg.Solid != nil:
		col := bg.Solid.NRGBA()
		stddraw.Draw(sub, clip, image.NewUniform(color.RGBA{col.R, col.G, col.B, 0xff}), image.Point{}, stddraw.Src)
	default:
		stddraw.Draw(sub, clip, image.Transparent, image.Point{}, stddraw.Src)
	}
	return bg
}

// blitCaptured samples the captured image through the zoom transform,
// nearest neighbor. The capture is in buffer pixels.
func (r *Renderer) blitCaptured(s *input.State, sub *image.RGBA, clip image.Rectangle, img *input.CapturedImage) {
	scale := float64(r.scale)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			wx, wy := s.Zoom.ScreenToWorld(float64(x)/scale, float64(y)/scale)
			px := int(wx * scale)
			py := int(wy * scale)
			i := sub.PixOffset(x, y)
			if px < 0 || py < 0 || px >= img.Width || py >= img.Height {
				sub.Pix[i+0], sub.Pix[i+1], sub.Pix[i+2], sub.Pix[i+3] = 0, 0, 0, 0xff
				continue
			}
			j := py*img.Stride + px*4
			copy(sub.Pix[i:i+4], img.Pix[j:j+4])
		}
	}
}

// paintSelection draws the marching-ants box and square handles around
// the selection bounds.
func (r *Renderer) paintSelection(s *input.State, sub *image.RGBA, view viewFn) {
	bounds, ok := s.SelectionBounds()
	if !ok {
		return
	}
	halo := bounds.Inflate(input.SelectionHaloPadding)
	x0, y0 := view.mapPt(halo.X, halo.Y)
	x1, y1 := view.mapPt(halo.Right(), halo.Bottom())
	box := image.Rect(x0, y0, x1, y1)
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	black := color.NRGBA{0x00, 0x00, 0x00, 0xff}
	drawDashedRect(sub, box, selectionDash*r.scale, black, white)

	hs := (input.HandleHitSize / 2) * r.scale
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	for _, p := range []image.Point{
		{box.Min.X, box.Min.Y}, {cx, box.Min.Y}, {box.Max.X - 1, box.Min.Y},
		{box.Max.X - 1, cy}, {box.Max.X - 1, box.Max.Y - 1}, {cx, box.Max.Y - 1},
		{box.Min.X, box.Max.Y - 1}, {box.Min.X, cy},
	} {
		hrect := image.Rect(p.X-hs/2, p.Y-hs/2, p.X+hs/2+1, p.Y+hs/2+1)
		fillRect(sub, hrect, white)
		drawRectOutline(sub, hrect, black, 1)
	}
}

func (r *Renderer) paintMarquee(sub *image.RGBA, marquee geometry.Rect, view viewFn) {
	x0, y0 := view.mapPt(marquee.X, marquee.Y)
	x1, y1 := view.mapPt(marquee.Right(), marquee.Bottom())
	box := image.Rect(x0, y0, x1, y1)
	drawDashedRect(sub, box, selectionDash*r.scale,
		color.NRGBA{0x40, 0x80, 0xff, 0xff}, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	fillRect(sub, box, color.NRGBA{0x40, 0x80, 0xff, 0x20})
}

// paintTextPreview renders the live editor buffer with a trailing
// underscore caret, styled like the shape it will commit as.
func (r *Renderer) paintTextPreview(s *input.State, sub *image.RGBA) {
	x, y, text, mode, ok := s.TextInputSnapshot()
	if !ok {
		return
	}
	preview := text + "_"
	bx := x * r.scale
	by := y * r.scale
	size := s.FontSize * float64(r.scale)
	if mode == input.TextSticky {
		note := &draw.StickyNote{X: bx, Y: by, Text: preview, Background: draw.Yellow, Size: size, Font: s.Font}
		paintStickyNote(sub, note)
		return
	}
	txt := &draw.Text{X: bx, Y: by, Text: preview, Color: s.CurrentColor, Size: size, Font: s.Font, Background: s.TextBackground}
	paintText(sub, txt)
}

// paintOverlays draws the status bar and active toasts at buffer scale.
// These live in screen space and ignore the zoom transform.
func (r *Renderer) paintOverlays(s *input.State, sub *image.RGBA, clip image.Rectangle) {
	if s.UI.StatusBar {
		r.paintStatusBar(s, sub, clip)
	}
	r.paintToasts(s, sub, clip)
	r.paintBadges(s, sub)
	if s.UI.Properties.Open {
		r.paintPropertiesPanel(s, sub)
	}
	if s.UI.ContextMenu.Open {
		r.paintContextMenu(s, sub)
	}
	if s.UI.ColorPopup.Open {
		r.paintColorPopup(s, sub)
	}
	if s.UI.BoardPicker.Open {
		r.paintBoardPicker(s, sub)
	}
	if s.UI.CommandPalette.Open {
		r.paintCommandPalette(s, sub)
	}
	if s.UI.Help.Open {
		r.paintHelp(s, sub)
	}
}

func (r *Renderer) paintStatusBar(s *input.State, sub *image.RGBA, clip image.Rectangle) {
	_, h := s.ScreenSize()
	bar := image.Rect(0, (h-statusBarHeight)*r.scale, r.buf.Bounds().Max.X, h*r.scale)
	if !bar.Overlaps(clip) {
		return
	}
	fillRect(sub, bar, color.NRGBA{0x20, 0x20, 0x20, 0xd0})

	// Color swatch.
	swatch := image.Rect(bar.Min.X+8*r.scale, bar.Min.Y+8*r.scale,
		bar.Min.X+28*r.scale, bar.Min.Y+28*r.scale)
	fillRect(sub, swatch, s.CurrentColor.NRGBA())
	drawRectOutline(sub, swatch, color.NRGBA{0xff, 0xff, 0xff, 0xff}, 1)

	label := fmt.Sprintf("%s  %.0fpx", s.ActiveTool().Label(), s.Thickness)
	face := draw.Face(s.Font, 14*float64(r.scale))
	d := &font.Drawer{
		Dst:  sub,
		Src:  image.NewUniform(color.NRGBA{0xf0, 0xf0, 0xf0, 0xff}),
		Face: face,
		Dot:  fixed.P(bar.Min.X+36*r.scale, bar.Min.Y+24*r.scale),
	}
	d.DrawString(label)
}

func (r *Renderer) paintToasts(s *input.State, sub *image.RGBA, clip image.Rectangle) {
	toasts := s.Toasts()
	if len(toasts) == 0 {
		return
	}
	w, _ := s.ScreenSize()
	face := draw.Face(draw.DefaultFont(), 14*float64(r.scale))
	for i, toast := range toasts {
		x0 := (w - toastWidth - toastMargin) * r.scale
		y0 := (toastMargin + i*(toastHeight+8)) * r.scale
		box := image.Rect(x0, y0, x0+toastWidth*r.scale, y0+toastHeight*r.scale)
		if !box.Overlaps(clip) {
			continue
		}
		fill := color.NRGBA{0x20, 0x20, 0x20, 0xe0}
		switch toast.Kind {
		case input.ToastWarning:
			fill = color.NRGBA{0x80, 0x60, 0x00, 0xe0}
		case input.ToastError:
			fill = color.NRGBA{0x80, 0x20, 0x20, 0xe0}
		}
		fillRect(sub, box, fill)
		d := &font.Drawer{
			Dst:  sub,
			Src:  image.NewUniform(color.NRGBA{0xff, 0xff, 0xff, 0xff}),
			Face: face,
			Dot:  fixed.P(box.Min.X+12*r.scale, box.Min.Y+27*r.scale),
		}
		d.DrawString(toast.Message)
	}
}
