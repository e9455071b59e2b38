package draw

func translatePoints(pts []StrokePoint, dx, dy int) {
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
}

func (s *Freehand) Translate(dx, dy int)     { translatePoints(s.Points, dx, dy) }
func (s *Marker) Translate(dx, dy int)       { translatePoints(s.Points, dx, dy) }
func (s *EraserStroke) Translate(dx, dy int) { translatePoints(s.Points, dx, dy) }

func (s *Line) Translate(dx, dy int) {
	s.X1 += dx
	s.Y1 += dy
	s.X2 += dx
	s.Y2 += dy
}

func (s *Rect) Translate(dx, dy int) {
	s.X += dx
	s.Y += dy
}

func (s *Ellipse) Translate(dx, dy int) {
	s.CX += dx
	s.CY += dy
}

func (s *Arrow) Translate(dx, dy int) {
	s.X1 += dx
	s.Y1 += dy
	s.X2 += dx
	s.Y2 += dy
}

func (s *Highlight) Translate(dx, dy int) {
	s.X += dx
	s.Y += dy
}

func (s *Text) Translate(dx, dy int) {
	s.X += dx
	s.Y += dy
}

func (s *StickyNote) Translate(dx, dy int) {
	s.X += dx
	s.Y += dy
}

func (s *StepMarker) Translate(dx, dy int) {
	s.X += dx
	s.Y += dy
}

// sizeFloor keeps scaled stroke widths and font sizes drawable.
func scaleSize(size, factor float64) float64 {
	scaled := size * factor
	if scaled < 1 {
		return 1
	}
	return scaled
}

func mapStrokePoints(pts []StrokePoint, fn func(x, y int) (int, int), sizeScale float64) {
	for i := range pts {
		pts[i].X, pts[i].Y = fn(pts[i].X, pts[i].Y)
		if pts[i].Thickness > 0 {
			pts[i].Thickness = scaleSize(pts[i].Thickness, sizeScale)
		}
	}
}

func (s *Freehand) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	mapStrokePoints(s.Points, fn, sizeScale)
	s.Thickness = scaleSize(s.Thickness, sizeScale)
}

func (s *Marker) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	mapStrokePoints(s.Points, fn, sizeScale)
	s.Thickness = scaleSize(s.Thickness, sizeScale)
}

func (s *EraserStroke) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	mapStrokePoints(s.Points, fn, sizeScale)
	s.Size = scaleSize(s.Size, sizeScale)
}

func (s *Line) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	s.X1, s.Y1 = fn(s.X1, s.Y1)
	s.X2, s.Y2 = fn(s.X2, s.Y2)
	s.Thickness = scaleSize(s.Thickness, sizeScale)
}

func (s *Rect) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	x1, y1 := fn(s.X, s.Y)
	x2, y2 := fn(s.X+s.W, s.Y+s.H)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	s.X, s.Y, s.W, s.H = x1, y1, x2-x1, y2-y1
	s.Thickness = scaleSize(s.Thickness, sizeScale)
}

func (s *Ellipse) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	x1, y1 := fn(s.CX-s.RX, s.CY-s.RY)
	x2, y2 := fn(s.CX+s.RX, s.CY+s.RY)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	s.CX, s.CY = (x1+x2)/2, (y1+y2)/2
	s.RX, s.RY = (x2-x1)/2, (y2-y1)/2
	s.Thickness = scaleSize(s.Thickness, sizeScale)
}

func (s *Arrow) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	s.X1, s.Y1 = fn(s.X1, s.Y1)
	s.X2, s.Y2 = fn(s.X2, s.Y2)
	s.Thickness = scaleSize(s.Thickness, sizeScale)
	s.HeadLength = scaleSize(s.HeadLength, sizeScale)
	if s.Label != nil {
		s.Label.Size = scaleSize(s.Label.Size, sizeScale)
	}
}

func (s *Highlight) MapGeometry(fn func(x, y int) (int, int), _ float64) {
	x1, y1 := fn(s.X, s.Y)
	x2, y2 := fn(s.X+s.W, s.Y+s.H)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	s.X, s.Y, s.W, s.H = x1, y1, x2-x1, y2-y1
}

func (s *Text) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	s.X, s.Y = fn(s.X, s.Y)
	s.Size = scaleSize(s.Size, sizeScale)
	if s.WrapWidth > 0 {
		s.WrapWidth = int(scaleSize(float64(s.WrapWidth), sizeScale))
	}
}

func (s *StickyNote) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	s.X, s.Y = fn(s.X, s.Y)
	s.Size = scaleSize(s.Size, sizeScale)
	if s.WrapWidth > 0 {
		s.WrapWidth = int(scaleSize(float64(s.WrapWidth), sizeScale))
	}
}

func (s *StepMarker) MapGeometry(fn func(x, y int) (int, int), sizeScale float64) {
	s.X, s.Y = fn(s.X, s.Y)
	s.Label.Size = scaleSize(s.Label.Size, sizeScale)
}
