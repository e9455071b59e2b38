package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/devmobasa/wayscriber/internal/draw"
)

// Background tells the eraser replay what "erased" looks like. A nil
// Solid means the overlay is transparent and erasing punches alpha
// holes; otherwise erasing paints the board color.
type Background struct {
	Solid *draw.Color
}

// paintShape rasterizes one committed shape onto img.
func paintShape(img *image.RGBA, shape draw.Shape, bg Background) {
	switch v := shape.(type) {
	case *draw.Freehand:
		paintStroke(img, v.Points, v.Color.NRGBA(), v.Thickness)
	case *draw.Marker:
		paintStroke(img, v.Points, v.Color.WithAlpha(v.Opacity).NRGBA(), v.Thickness)
	case *draw.EraserStroke:
		paintEraser(img, v, bg)
	case *draw.Line:
		drawLine(img, v.X1, v.Y1, v.X2, v.Y2, v.Color.NRGBA(), int(v.Thickness))
	case *draw.Rect:
		paintRect(img, v)
	case *draw.Ellipse:
		paintEllipse(img, v)
	case *draw.Arrow:
		paintArrow(img, v)
	case *draw.Highlight:
		r := image.Rect(v.X, v.Y, v.X+v.W, v.Y+v.H)
		fillRect(img, r, v.Color.NRGBA())
	case *draw.Text:
		paintText(img, v)
	case *draw.StickyNote:
		paintStickyNote(img, v)
	case *draw.StepMarker:
		paintStepMarker(img, v)
	}
}

// paintStroke joins the samples with thick segments. A sample with its
// own thickness (stylus pressure) overrides the base.
func paintStroke(img *image.RGBA, points []draw.StrokePoint, col color.NRGBA, base float64) {
	if len(points) == 0 {
		return
	}
	thickAt := func(p draw.StrokePoint) int {
		t := base
		if p.Thickness > 0 {
			t = p.Thickness
		}
		if t < 1 {
			t = 1
		}
		return int(t)
	}
	if len(points) == 1 {
		setThickPixel(img, points[0].X, points[0].Y, thickAt(points[0]), col)
		return
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		drawLine(img, a.X, a.Y, b.X, b.Y, col, thickAt(b))
	}
}

// paintEraser replays a brush-mode eraser stroke. Stroke-mode strokes
// act at commit time and render nothing.
func paintEraser(img *image.RGBA, v *draw.EraserStroke, bg Background) {
	if v.Mode != draw.EraserBrush || len(v.Points) == 0 {
		return
	}
	thick := int(v.Size)
	if thick < 1 {
		thick = 1
	}
	round := v.Brush == draw.EraserCircle
	if bg.Solid != nil {
		col := bg.Solid.NRGBA()
		if len(v.Points) == 1 {
			setThickPixel(img, v.Points[0].X, v.Points[0].Y, thick, col)
			return
		}
		for i := 1; i < len(v.Points); i++ {
			a, b := v.Points[i-1], v.Points[i]
			drawLine(img, a.X, a.Y, b.X, b.Y, col, thick)
		}
		return
	}
	if len(v.Points) == 1 {
		clearThickPixel(img, v.Points[0].X, v.Points[0].Y, thick, round)
		return
	}
	for i := 1; i < len(v.Points); i++ {
		a, b := v.Points[i-1], v.Points[i]
		clearLine(img, a.X, a.Y, b.X, b.Y, thick, round)
	}
}

func paintRect(img *image.RGBA, v *draw.Rect) {
	r := image.Rect(v.X, v.Y, v.X+v.W, v.Y+v.H)
	if v.Fill {
		fillRect(img, r, v.Color.WithAlpha(v.Color.A*0.3).NRGBA())
	}
	drawRectOutline(img, r, v.Color.NRGBA(), int(v.Thickness))
}

func paintEllipse(img *image.RGBA, v *draw.Ellipse) {
	if v.Fill {
		fillEllipse(img, v.CX, v.CY, v.RX, v.RY, v.Color.WithAlpha(v.Color.A*0.3).NRGBA())
	}
	drawEllipseOutline(img, v.CX, v.CY, v.RX, v.RY, v.Color.NRGBA(), int(v.Thickness))
}

func paintArrow(img *image.RGBA, v *draw.Arrow) {
	col := v.Color.NRGBA()
	thick := int(v.Thickness)
	drawLine(img, v.X1, v.Y1, v.X2, v.Y2, col, thick)

	hx, hy := v.X2, v.Y2
	tx, ty := v.X1, v.Y1
	if !v.HeadAtEnd {
		hx, hy, tx, ty = tx, ty, hx, hy
	}
	angle := math.Atan2(float64(hy-ty), float64(hx-tx))
	spread := v.HeadAngle * math.Pi / 180
	length := v.HeadLength
	if length <= 0 {
		length = 6 + v.Thickness*2
	}
	for _, a := range []float64{angle + spread, angle - spread} {
		ex := hx - int(math.Round(math.Cos(a)*length))
		ey := hy - int(math.Round(math.Sin(a)*length))
		drawLine(img, hx, hy, ex, ey, col, thick)
	}

	if v.Label != nil {
		paintBubbleLabel(img, tx, ty, v.Label.Value, v.Label.Size, v.Label.Font, v.Color)
	}
}

// paintBubbleLabel draws a filled circle with a contrast-colored number
// centered in it.
func paintBubbleLabel(img *image.RGBA, cx, cy int, value uint32, size float64, desc draw.FontDescriptor, col draw.Color) {
	if size <= 0 {
		size = 14
	}
	text := strconv.FormatUint(uint64(value), 10)
	face := draw.Face(desc, size)
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	metrics := face.Metrics()
	h := (metrics.Ascent + metrics.Descent).Ceil()
	r := w
	if h > r {
		r = h
	}
	r = r/2 + 4

	fillCircle(img, cx, cy, r, col.NRGBA())
	d.Dst = img
	d.Src = image.NewUniform(col.ContrastColor().NRGBA())
	d.Dot = fixed.P(cx-w/2, cy+metrics.Ascent.Ceil()-h/2)
	d.DrawString(text)
}

func paintText(img *image.RGBA, v *draw.Text) {
	layout := draw.LayoutText(v.Text, v.Font, v.Size, v.WrapWidth)
	if v.Background {
		pad := draw.TextBackgroundPadding
		bgCol := v.Color.ContrastColor().WithAlpha(0.75)
		r := image.Rect(v.X-pad, v.Y-pad, v.X+layout.Width+pad, v.Y+layout.Height()+pad)
		fillRect(img, r, bgCol.NRGBA())
	}
	paintLayout(img, layout, v.X, v.Y, v.Font, v.Size, v.Color.NRGBA())
}

func paintStickyNote(img *image.RGBA, v *draw.StickyNote) {
	layout := draw.LayoutText(v.Text, v.Font, v.Size, v.WrapWidth)
	pad := draw.StickyNotePadding
	card := image.Rect(v.X-pad, v.Y-pad, v.X+layout.Width+pad, v.Y+layout.Height()+pad)
	fillRect(img, card, v.Background.NRGBA())
	border := v.Background
	border.R *= 0.7
	border.G *= 0.7
	border.B *= 0.7
	drawRectOutline(img, card, border.NRGBA(), 1)
	paintLayout(img, layout, v.X, v.Y, v.Font, v.Size, v.Background.ContrastColor().NRGBA())
}

func paintStepMarker(img *image.RGBA, v *draw.StepMarker) {
	paintBubbleLabel(img, v.X, v.Y, v.Label.Value, v.Label.Size, v.Label.Font, v.Color)
}

// paintLayout draws pre-wrapped lines with their top-left at (x, y).
func paintLayout(img *image.RGBA, layout draw.TextLayout, x, y int, desc draw.FontDescriptor, size float64, col color.NRGBA) {
	face := draw.Face(desc, size)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range layout.Lines {
		d.Dot = fixed.P(x, y+i*layout.LineHeight+layout.Ascent)
		d.DrawString(line)
	}
}
