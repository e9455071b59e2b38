package draw

// ShapeColor returns the shape's primary color; ok is false for shapes
// without one (eraser strokes).
func ShapeColor(s Shape) (Color, bool) {
	switch v := s.(type) {
	case *Freehand:
		return v.Color, true
	case *Marker:
		return v.Color, true
	case *Line:
		return v.Color, true
	case *Rect:
		return v.Color, true
	case *Ellipse:
		return v.Color, true
	case *Arrow:
		return v.Color, true
	case *Highlight:
		return v.Color, true
	case *Text:
		return v.Color, true
	case *StickyNote:
		return v.Background, true
	case *StepMarker:
		return v.Color, true
	}
	return Color{}, false
}

// SetShapeColor recolors the shape in place. It reports whether the
// shape carries a color at all.
func SetShapeColor(s Shape, c Color) bool {
	switch v := s.(type) {
	case *Freehand:
		v.Color = c
	case *Marker:
		// Keep the translucency that makes a marker a marker.
		c.A = v.Color.A
		v.Color = c
	case *Line:
		v.Color = c
	case *Rect:
		v.Color = c
	case *Ellipse:
		v.Color = c
	case *Arrow:
		v.Color = c
	case *Highlight:
		c.A = v.Color.A
		v.Color = c
	case *Text:
		v.Color = c
	case *StickyNote:
		v.Background = c
	case *StepMarker:
		v.Color = c
	default:
		return false
	}
	return true
}

// ShapeThickness returns the stroke thickness; ok is false for shapes
// sized some other way (highlights, text, notes, markers' bubbles).
func ShapeThickness(s Shape) (float64, bool) {
	switch v := s.(type) {
	case *Freehand:
		return v.Thickness, true
	case *Marker:
		return v.Thickness, true
	case *Line:
		return v.Thickness, true
	case *Rect:
		return v.Thickness, true
	case *Ellipse:
		return v.Thickness, true
	case *Arrow:
		return v.Thickness, true
	}
	return 0, false
}

// SetShapeThickness sets the stroke thickness in place. The caller
// clamps; values below 1 are raised to 1 so strokes stay visible.
func SetShapeThickness(s Shape, t float64) bool {
	if t < 1 {
		t = 1
	}
	switch v := s.(type) {
	case *Freehand:
		v.Thickness = t
	case *Marker:
		v.Thickness = t
	case *Line:
		v.Thickness = t
	case *Rect:
		v.Thickness = t
	case *Ellipse:
		v.Thickness = t
	case *Arrow:
		v.Thickness = t
	default:
		return false
	}
	return true
}
