// Package draw holds the annotation model: shapes, per-page frames with
// undo/redo history, and the ordered page list a board owns. Everything
// here is plain data mutated on the event-loop thread; no goroutines, no
// locks.
package draw

import (
	"github.com/devmobasa/wayscriber/internal/geometry"
)

// Kind identifies a shape variant. The set is closed; rendering,
// hit-testing and serialization all dispatch on it.
type Kind string

const (
	KindFreehand   Kind = "freehand"
	KindMarker     Kind = "marker"
	KindEraser     Kind = "eraser"
	KindLine       Kind = "line"
	KindRect       Kind = "rect"
	KindEllipse    Kind = "ellipse"
	KindArrow      Kind = "arrow"
	KindHighlight  Kind = "highlight"
	KindText       Kind = "text"
	KindStickyNote Kind = "sticky_note"
	KindStepMarker Kind = "step_marker"
)

// Marker opacity is clamped to this range on construction and on load.
const (
	MinMarkerOpacity = 0.05
	MaxMarkerOpacity = 0.9
)

// Shape is the closed set of drawables. Implementations are mutable and
// owned by exactly one Frame; pass clones across ownership boundaries.
type Shape interface {
	Kind() Kind
	// BoundingBox returns the smallest rect covering the shape including
	// stroke thickness; ok is false for degenerate geometry.
	BoundingBox() (geometry.Rect, bool)
	// HitTest reports whether (x, y) touches the shape. tol widens stroke
	// hit bands; filled shapes use containment.
	HitTest(x, y int, tol float64) bool
	// Translate shifts all geometry, leaving styling untouched.
	Translate(dx, dy int)
	// MapGeometry remaps every coordinate through fn and multiplies
	// stroke/font sizes by sizeScale (floored so strokes stay >= 1px).
	// Used by selection resize.
	MapGeometry(fn func(x, y int) (int, int), sizeScale float64)
	// Clone returns a deep copy.
	Clone() Shape

	sealedShape()
}

// StrokePoint is one sample of a freehand stroke. Thickness of zero means
// "use the stroke's base thickness"; positive values come from stylus
// pressure.
type StrokePoint struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Thickness float64 `json:"thickness,omitempty"`
}

// EraserKind is the brush outline shape.
type EraserKind string

const (
	EraserCircle EraserKind = "circle"
	EraserSquare EraserKind = "square"
)

// EraserMode selects what an eraser stroke does.
type EraserMode string

const (
	// EraserBrush paints the board background over the canvas.
	EraserBrush EraserMode = "brush"
	// EraserStrokeMode removes every stroke the eraser touches.
	EraserStrokeMode EraserMode = "stroke"
)

// ArrowLabel is the auto-incrementing number attached to arrows.
type ArrowLabel struct {
	Value uint32         `json:"value"`
	Size  float64        `json:"size"`
	Font  FontDescriptor `json:"font"`
}

// StepMarkerLabel is the number inside a step-marker bubble.
type StepMarkerLabel struct {
	Value uint32         `json:"value"`
	Size  float64        `json:"size"`
	Font  FontDescriptor `json:"font"`
}

// Freehand is a pen polyline with optional per-point pressure thickness.
type Freehand struct {
	Points    []StrokePoint `json:"points"`
	Color     Color         `json:"color"`
	Thickness float64       `json:"thickness"`
}

// Marker is a translucent highlighter stroke.
type Marker struct {
	Points    []StrokePoint `json:"points"`
	Color     Color         `json:"color"`
	Thickness float64       `json:"thickness"`
	Opacity   float64       `json:"opacity"`
}

// EraserStroke records an eraser drag. Brush-mode strokes are replayed by
// the renderer painting the background; stroke-mode strokes act at commit
// time by removing the shapes they touch and render nothing.
type EraserStroke struct {
	Points []StrokePoint `json:"points"`
	Size   float64       `json:"size"`
	Brush  EraserKind    `json:"brush"`
	Mode   EraserMode    `json:"mode"`
}

// Line is a straight segment.
type Line struct {
	X1        int     `json:"x1"`
	Y1        int     `json:"y1"`
	X2        int     `json:"x2"`
	Y2        int     `json:"y2"`
	Color     Color   `json:"color"`
	Thickness float64 `json:"thickness"`
}

// Rect is a rectangle outline or filled box.
type Rect struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	W         int     `json:"w"`
	H         int     `json:"h"`
	Color     Color   `json:"color"`
	Thickness float64 `json:"thickness"`
	Fill      bool    `json:"fill"`
}

// Ellipse is centered at (CX, CY) with radii RX, RY.
type Ellipse struct {
	CX        int     `json:"cx"`
	CY        int     `json:"cy"`
	RX        int     `json:"rx"`
	RY        int     `json:"ry"`
	Color     Color   `json:"color"`
	Thickness float64 `json:"thickness"`
	Fill      bool    `json:"fill"`
}

// Arrow is a segment from (X1, Y1) to (X2, Y2) with a V head and an
// optional numbered label near the tail.
type Arrow struct {
	X1         int         `json:"x1"`
	Y1         int         `json:"y1"`
	X2         int         `json:"x2"`
	Y2         int         `json:"y2"`
	Color      Color       `json:"color"`
	Thickness  float64     `json:"thickness"`
	HeadLength float64     `json:"head_length"`
	HeadAngle  float64     `json:"head_angle"` // degrees
	HeadAtEnd  bool        `json:"head_at_end"`
	Label      *ArrowLabel `json:"label,omitempty"`
}

// Highlight is a translucent filled rectangle.
type Highlight struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	W     int   `json:"w"`
	H     int   `json:"h"`
	Color Color `json:"color"`
}

// Text is a text block anchored at its top-left corner. WrapWidth of zero
// disables wrapping.
type Text struct {
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Text       string         `json:"text"`
	Color      Color          `json:"color"`
	Size       float64        `json:"size"`
	Font       FontDescriptor `json:"font"`
	Background bool           `json:"background"`
	WrapWidth  int            `json:"wrap_width,omitempty"`
}

// StickyNote is a text block on a filled, bordered card.
type StickyNote struct {
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Text       string         `json:"text"`
	Background Color          `json:"background"`
	Size       float64        `json:"size"`
	Font       FontDescriptor `json:"font"`
	WrapWidth  int            `json:"wrap_width,omitempty"`
}

// StepMarker is a numbered bubble.
type StepMarker struct {
	X     int             `json:"x"`
	Y     int             `json:"y"`
	Color Color           `json:"color"`
	Label StepMarkerLabel `json:"label"`
}

func (*Freehand) Kind() Kind     { return KindFreehand }
func (*Marker) Kind() Kind       { return KindMarker }
func (*EraserStroke) Kind() Kind { return KindEraser }
func (*Line) Kind() Kind         { return KindLine }
func (*Rect) Kind() Kind         { return KindRect }
func (*Ellipse) Kind() Kind      { return KindEllipse }
func (*Arrow) Kind() Kind        { return KindArrow }
func (*Highlight) Kind() Kind    { return KindHighlight }
func (*Text) Kind() Kind         { return KindText }
func (*StickyNote) Kind() Kind   { return KindStickyNote }
func (*StepMarker) Kind() Kind   { return KindStepMarker }

func (*Freehand) sealedShape()     {}
func (*Marker) sealedShape()       {}
func (*EraserStroke) sealedShape() {}
func (*Line) sealedShape()         {}
func (*Rect) sealedShape()         {}
func (*Ellipse) sealedShape()      {}
func (*Arrow) sealedShape()        {}
func (*Highlight) sealedShape()    {}
func (*Text) sealedShape()         {}
func (*StickyNote) sealedShape()   {}
func (*StepMarker) sealedShape()   {}

// KindName returns a human-readable label for status and menus.
func KindName(s Shape) string {
	switch s.Kind() {
	case KindFreehand:
		return "Freehand"
	case KindMarker:
		return "Marker"
	case KindEraser:
		return "Eraser"
	case KindLine:
		return "Line"
	case KindRect:
		return "Rectangle"
	case KindEllipse:
		return "Ellipse"
	case KindArrow:
		return "Arrow"
	case KindHighlight:
		return "Highlight"
	case KindText:
		return "Text"
	case KindStickyNote:
		return "Sticky Note"
	case KindStepMarker:
		return "Step Marker"
	}
	return "Shape"
}

func clonePoints(pts []StrokePoint) []StrokePoint {
	out := make([]StrokePoint, len(pts))
	copy(out, pts)
	return out
}

func (s *Freehand) Clone() Shape {
	c := *s
	c.Points = clonePoints(s.Points)
	return &c
}

func (s *Marker) Clone() Shape {
	c := *s
	c.Points = clonePoints(s.Points)
	return &c
}

func (s *EraserStroke) Clone() Shape {
	c := *s
	c.Points = clonePoints(s.Points)
	return &c
}

func (s *Line) Clone() Shape      { c := *s; return &c }
func (s *Rect) Clone() Shape      { c := *s; return &c }
func (s *Ellipse) Clone() Shape   { c := *s; return &c }
func (s *Highlight) Clone() Shape { c := *s; return &c }
func (s *Text) Clone() Shape      { c := *s; return &c }

func (s *Arrow) Clone() Shape {
	c := *s
	if s.Label != nil {
		lbl := *s.Label
		c.Label = &lbl
	}
	return &c
}

func (s *StickyNote) Clone() Shape { c := *s; return &c }
func (s *StepMarker) Clone() Shape { c := *s; return &c }
