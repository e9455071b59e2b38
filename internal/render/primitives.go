// Package render rasterizes the annotation model into an RGBA buffer.
// All painting is CPU-side; the backend hands the buffer to the
// compositor untouched.
package render

import (
	"image"
	"image/color"
	"math"
)

// blendPixel src-overs col onto the pixel when it carries alpha,
// otherwise writes it directly.
func blendPixel(img *image.RGBA, x, y int, col color.NRGBA) {
	if !(image.Pt(x, y).In(img.Bounds())) {
		return
	}
	if col.A == 0xff {
		img.SetRGBA(x, y, color.RGBA{col.R, col.G, col.B, 0xff})
		return
	}
	if col.A == 0 {
		return
	}
	i := img.PixOffset(x, y)
	sa := uint32(col.A)
	da := uint32(img.Pix[i+3])
	outA := sa + da*(255-sa)/255
	blend := func(s uint8, d uint8) uint8 {
		if outA == 0 {
			return 0
		}
		v := (uint32(s)*sa + uint32(d)*da*(255-sa)/255) / outA
		return uint8(v)
	}
	img.Pix[i+0] = blend(col.R, img.Pix[i+0])
	img.Pix[i+1] = blend(col.G, img.Pix[i+1])
	img.Pix[i+2] = blend(col.B, img.Pix[i+2])
	img.Pix[i+3] = uint8(outA)
}

// clearPixel writes full transparency, punching through to whatever is
// behind the overlay surface.
func clearPixel(img *image.RGBA, x, y int) {
	if !(image.Pt(x, y).In(img.Bounds())) {
		return
	}
	i := img.PixOffset(x, y)
	img.Pix[i+0] = 0
	img.Pix[i+1] = 0
	img.Pix[i+2] = 0
	img.Pix[i+3] = 0
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.NRGBA) {
	r := thick / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			blendPixel(img, x+dx, y+dy, col)
		}
	}
}

// clearThickPixel is setThickPixel for the transparent eraser, with a
// round brush option.
func clearThickPixel(img *image.RGBA, x, y, thick int, round bool) {
	r := thick / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if round && dx*dx+dy*dy > r*r {
				continue
			}
			clearPixel(img, x+dx, y+dy)
		}
	}
}

// drawLine walks the segment with Bresenham, stamping a thick square
// brush at every step.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.NRGBA, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clearLine is drawLine for the transparent eraser brush.
func clearLine(img *image.RGBA, x0, y0, x1, y1 int, thick int, round bool) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		clearThickPixel(img, x0, y0, thick, round)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawRectOutline(img *image.RGBA, rect image.Rectangle, col color.NRGBA, thick int) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.NRGBA) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			blendPixel(img, x, y, col)
		}
	}
}

// drawEllipseOutline approximates the outline with short segments; the
// step count tracks the perimeter so large ellipses stay smooth.
func drawEllipseOutline(img *image.RGBA, cx, cy, rx, ry int, col color.NRGBA, thick int) {
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var prevX, prevY int
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Cos(angle)*float64(rx))
		y := cy + int(math.Sin(angle)*float64(ry))
		if i > 0 {
			drawLine(img, prevX, prevY, x, y, col, thick)
		} else {
			setThickPixel(img, x, y, thick, col)
		}
		prevX, prevY = x, y
	}
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, col color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	for dy := -ry; dy <= ry; dy++ {
		span := int(float64(rx) * math.Sqrt(1.0-float64(dy*dy)/float64(ry*ry)))
		for dx := -span; dx <= span; dx++ {
			blendPixel(img, cx+dx, cy+dy, col)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, col color.NRGBA) {
	fillEllipse(img, cx, cy, r, r, col)
}

func drawCircleOutline(img *image.RGBA, cx, cy, r int, col color.NRGBA, thick int) {
	drawEllipseOutline(img, cx, cy, r, r, col, thick)
}

// drawDashedRect draws the marching-ants selection box.
func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.NRGBA) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, dash, c1, c2)
	drawDashedLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, dash, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y-1, rect.Max.X-1, rect.Max.Y-1, dash, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Min.X, rect.Max.Y-1, dash, c1, c2)
}

// drawDashedLine handles the axis-aligned edges of selection boxes.
func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash int, c1, c2 color.NRGBA) {
	if dash < 1 {
		dash = 1
	}
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	if length < 0 {
		length = -length
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		if horiz {
			blendPixel(img, x0+i, y0, col)
		} else {
			blendPixel(img, x0, y0+i, col)
		}
	}
}
