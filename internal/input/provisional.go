package input

import (
	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
)

// ProvisionalShape builds the in-progress shape for rendering while a
// drag is active. Returns nil when nothing is being drawn.
func (s *State) ProvisionalShape() draw.Shape {
	st := &s.machine
	if st.kind != stateDrawing {
		return nil
	}
	switch st.tool {
	case ToolPen:
		return &draw.Freehand{Points: st.points, Color: s.CurrentColor, Thickness: s.Thickness}
	case ToolMarker:
		return &draw.Marker{Points: st.points, Color: s.CurrentColor, Thickness: s.Thickness, Opacity: s.MarkerOpacity}
	case ToolEraser:
		if s.EraserMode == draw.EraserStrokeMode {
			return nil
		}
		return &draw.EraserStroke{Points: st.points, Size: s.EraserSize, Brush: s.EraserKind, Mode: s.EraserMode}
	case ToolLine:
		ex, ey := s.constrainedEndpoint(st.startX, st.startY, st.curX, st.curY)
		return &draw.Line{X1: st.startX, Y1: st.startY, X2: ex, Y2: ey, Color: s.CurrentColor, Thickness: s.Thickness}
	case ToolRect:
		r := s.constrainedBox(st.startX, st.startY, st.curX, st.curY)
		return &draw.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Color: s.CurrentColor, Thickness: s.Thickness, Fill: s.FillEnabled}
	case ToolEllipse:
		r := s.constrainedBox(st.startX, st.startY, st.curX, st.curY)
		return &draw.Ellipse{
			CX: r.X + r.Width/2, CY: r.Y + r.Height/2,
			RX: r.Width / 2, RY: r.Height / 2,
			Color: s.CurrentColor, Thickness: s.Thickness, Fill: s.FillEnabled,
		}
	case ToolArrow:
		return &draw.Arrow{
			X1: st.startX, Y1: st.startY, X2: st.curX, Y2: st.curY,
			Color: s.CurrentColor, Thickness: s.Thickness,
			HeadLength: s.ArrowHeadLength, HeadAngle: s.ArrowHeadAngle, HeadAtEnd: s.ArrowHeadAtEnd,
		}
	case ToolHighlight:
		r := geometry.RectFromCorners(st.startX, st.startY, st.curX, st.curY)
		return &draw.Highlight{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Color: s.CurrentColor.WithAlpha(0.35)}
	}
	return nil
}

// MarqueeRect returns the active selection marquee, if any.
func (s *State) MarqueeRect() (geometry.Rect, bool) {
	if s.machine.kind != stateSelecting {
		return geometry.Rect{}, false
	}
	r := geometry.RectFromCorners(s.machine.startX, s.machine.startY, s.machine.curX, s.machine.curY)
	return r, r.Valid()
}

// provisionalBounds covers the in-progress shape or marquee.
func (s *State) provisionalBounds() (geometry.Rect, bool) {
	if r, ok := s.MarqueeRect(); ok {
		return r.Inflate(2), true
	}
	if s.machine.kind == stateDrawing && s.machine.tool == ToolEraser && s.EraserMode == draw.EraserStrokeMode {
		half := int(s.EraserSize/2) + 2
		c := geometry.Pt(s.machine.curX, s.machine.curY)
		r, ok := geometry.NewRect(c.X-half, c.Y-half, half*2, half*2)
		return r, ok
	}
	shape := s.ProvisionalShape()
	if shape == nil {
		return geometry.Rect{}, false
	}
	return shape.BoundingBox()
}

// updateProvisionalDirty marks the union of the previous and current
// provisional bounds so a moving preview leaves no trail.
func (s *State) updateProvisionalDirty() {
	cur, ok := s.provisionalBounds()
	if s.lastProvisional != nil {
		if ok {
			cur = cur.Union(*s.lastProvisional)
		} else {
			cur, ok = *s.lastProvisional, true
		}
	}
	if ok {
		s.markRect(cur)
	}
	if next, valid := s.provisionalBounds(); valid {
		s.lastProvisional = &next
	} else {
		s.lastProvisional = nil
	}
}

// clearProvisionalDirty marks the last provisional bounds and forgets
// them.
func (s *State) clearProvisionalDirty() {
	if s.lastProvisional != nil {
		s.markRect(*s.lastProvisional)
		s.lastProvisional = nil
	}
	s.NeedsRedraw = true
}

// textPreviewBounds covers the live text editor: laid-out buffer text
// plus the trailing caret cell.
func (s *State) textPreviewBounds() (geometry.Rect, bool) {
	if s.machine.kind != stateTextInput {
		return geometry.Rect{}, false
	}
	text := s.machine.buffer.String() + "_"
	layout := draw.LayoutText(text, s.Font, s.FontSize, 0)
	w := layout.Width + int(s.FontSize)
	h := layout.Height() + layout.LineHeight
	pad := draw.TextBackgroundPadding
	if s.machine.textMode == TextSticky {
		pad = draw.StickyNotePadding
	}
	r, ok := geometry.NewRect(s.machine.startX-pad, s.machine.startY-pad, w+pad*2, h+pad*2)
	return r, ok
}

func (s *State) updateTextPreviewDirty() {
	cur, ok := s.textPreviewBounds()
	if s.lastTextPreview != nil {
		if ok {
			cur = cur.Union(*s.lastTextPreview)
		} else {
			cur, ok = *s.lastTextPreview, true
		}
	}
	if ok {
		s.markRect(cur)
	}
	if next, valid := s.textPreviewBounds(); valid {
		s.lastTextPreview = &next
	} else {
		s.lastTextPreview = nil
	}
}

func (s *State) clearTextPreviewDirty() {
	if s.lastTextPreview != nil {
		s.markRect(*s.lastTextPreview)
		s.lastTextPreview = nil
	}
	s.NeedsRedraw = true
}
