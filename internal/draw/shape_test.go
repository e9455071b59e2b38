package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/geometry"
)

func TestStrokeBoundsPadByThickness(t *testing.T) {
	fh := &Freehand{
		Points:    []StrokePoint{{X: 10, Y: 10}, {X: 20, Y: 30}},
		Color:     Red,
		Thickness: 6,
	}
	box, ok := fh.BoundingBox()
	require.True(t, ok)
	assert.LessOrEqual(t, box.X, 7)
	assert.LessOrEqual(t, box.Y, 7)
	assert.GreaterOrEqual(t, box.Right(), 23)
	assert.GreaterOrEqual(t, box.Bottom(), 33)
}

func TestEmptyStrokeHasNoBounds(t *testing.T) {
	fh := &Freehand{Color: Red, Thickness: 2}
	_, ok := fh.BoundingBox()
	assert.False(t, ok)
}

func TestDegenerateRectHasNoBounds(t *testing.T) {
	r := &Rect{X: 10, Y: 10, W: 0, H: 5, Color: Red, Thickness: 2}
	_, ok := r.BoundingBox()
	assert.False(t, ok)

	e := &Ellipse{CX: 10, CY: 10, RX: 5, RY: 0, Color: Red, Thickness: 2}
	_, ok = e.BoundingBox()
	assert.False(t, ok)
}

func TestRectHitOutlineVsFill(t *testing.T) {
	outline := &Rect{X: 0, Y: 0, W: 100, H: 100, Color: Red, Thickness: 2}
	assert.True(t, outline.HitTest(0, 50, DefaultHitTolerance), "edge hits")
	assert.False(t, outline.HitTest(50, 50, DefaultHitTolerance), "interior misses an outline")

	filled := &Rect{X: 0, Y: 0, W: 100, H: 100, Color: Red, Thickness: 2, Fill: true}
	assert.True(t, filled.HitTest(50, 50, DefaultHitTolerance), "interior hits a filled rect")
	assert.False(t, filled.HitTest(200, 200, DefaultHitTolerance))
}

func TestEllipseHit(t *testing.T) {
	outline := &Ellipse{CX: 100, CY: 100, RX: 50, RY: 30, Color: Blue, Thickness: 2}
	assert.True(t, outline.HitTest(150, 100, DefaultHitTolerance), "rim hits")
	assert.False(t, outline.HitTest(100, 100, DefaultHitTolerance), "center misses an outline")

	filled := &Ellipse{CX: 100, CY: 100, RX: 50, RY: 30, Color: Blue, Thickness: 2, Fill: true}
	assert.True(t, filled.HitTest(100, 100, DefaultHitTolerance))
	assert.False(t, filled.HitTest(160, 140, DefaultHitTolerance))
}

func TestLineHitWithinBand(t *testing.T) {
	l := &Line{X1: 0, Y1: 0, X2: 100, Y2: 0, Color: Red, Thickness: 2}
	assert.True(t, l.HitTest(50, 4, DefaultHitTolerance))
	assert.False(t, l.HitTest(50, 30, DefaultHitTolerance))
	assert.False(t, l.HitTest(150, 0, DefaultHitTolerance))
}

func TestStepMarkerHitRadius(t *testing.T) {
	m := &StepMarker{X: 50, Y: 50, Color: Red, Label: StepMarkerLabel{Value: 1, Size: 14, Font: DefaultFont()}}
	r := m.Radius()
	assert.GreaterOrEqual(t, r, 8)
	assert.True(t, m.HitTest(50+int(r)-1, 50, 0))
	assert.False(t, m.HitTest(50+int(r)+10, 50, 0))
}

func TestTranslateMovesBounds(t *testing.T) {
	a := &Arrow{X1: 0, Y1: 0, X2: 50, Y2: 0, Color: Red, Thickness: 2, HeadLength: 12, HeadAngle: 30, HeadAtEnd: true}
	before, ok := a.BoundingBox()
	require.True(t, ok)
	a.Translate(10, 20)
	after, ok := a.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, before.Translate(10, 20), after)
}

func TestMapGeometryRenormalizesInvertedRect(t *testing.T) {
	r := &Rect{X: 10, Y: 10, W: 20, H: 20, Color: Red, Thickness: 2}
	// Mirror horizontally around x=0.
	r.MapGeometry(func(x, y int) (int, int) { return -x, y }, 1)
	assert.Equal(t, -30, r.X)
	assert.Greater(t, r.W, 0)
	assert.Greater(t, r.H, 0)
}

func TestMapGeometryScalesSizesWithFloor(t *testing.T) {
	txt := &Text{X: 10, Y: 10, Text: "hi", Color: Black, Size: 16, Font: DefaultFont()}
	txt.MapGeometry(func(x, y int) (int, int) { return x * 2, y * 2 }, 2)
	assert.InDelta(t, 32, txt.Size, 1e-9)

	small := &Text{X: 0, Y: 0, Text: "hi", Color: Black, Size: 4, Font: DefaultFont()}
	small.MapGeometry(func(x, y int) (int, int) { return x, y }, 0.01)
	assert.GreaterOrEqual(t, small.Size, 1.0, "sizes never collapse below 1")
}

func TestCloneIsDeep(t *testing.T) {
	fh := &Freehand{Points: []StrokePoint{{X: 1, Y: 1}}, Color: Red, Thickness: 2}
	clone := fh.Clone().(*Freehand)
	clone.Points[0].X = 99
	assert.Equal(t, 1, fh.Points[0].X)

	a := &Arrow{X1: 0, Y1: 0, X2: 10, Y2: 0, Color: Red, Thickness: 1, Label: &ArrowLabel{Value: 2, Size: 12, Font: DefaultFont()}}
	ac := a.Clone().(*Arrow)
	ac.Label.Value = 9
	assert.Equal(t, uint32(2), a.Label.Value)
}

func TestTextBoundsGrowWithBackground(t *testing.T) {
	base := &Text{X: 0, Y: 0, Text: "hello", Color: Black, Size: 16, Font: DefaultFont()}
	plain, ok := base.BoundingBox()
	require.True(t, ok)

	boxed := &Text{X: 0, Y: 0, Text: "hello", Color: Black, Size: 16, Font: DefaultFont(), Background: true}
	padded, ok := boxed.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, plain.Inflate(TextBackgroundPadding), padded)
}

func TestLayoutTextWraps(t *testing.T) {
	l := LayoutText("alpha beta gamma delta", DefaultFont(), 16, 60)
	assert.Greater(t, len(l.Lines), 1)
	assert.Greater(t, l.Width, 0)
	assert.Greater(t, l.LineHeight, 0)

	nl := LayoutText("one\ntwo", DefaultFont(), 16, 0)
	assert.Equal(t, []string{"one", "two"}, nl.Lines)
}

func TestStrokeHitUsesPerPointBand(t *testing.T) {
	s := &Marker{
		Points:    []StrokePoint{{X: 0, Y: 0}, {X: 100, Y: 0}},
		Color:     Yellow,
		Thickness: 20,
		Opacity:   0.5,
	}
	assert.True(t, s.HitTest(50, 9, 0), "half the thickness counts")
	assert.False(t, s.HitTest(50, 40, 0))
}

func TestBoundsNeverInvalidForCommittedGeometry(t *testing.T) {
	shapes := []Shape{
		&Line{X1: 5, Y1: 5, X2: 5, Y2: 5, Color: Red, Thickness: 1},
		&StepMarker{X: 0, Y: 0, Color: Red, Label: StepMarkerLabel{Value: 1, Size: 10, Font: DefaultFont()}},
		&Text{X: 0, Y: 0, Text: "x", Color: Black, Size: 10, Font: DefaultFont()},
	}
	for _, s := range shapes {
		box, ok := s.BoundingBox()
		require.True(t, ok, "%s", s.Kind())
		assert.True(t, box.Valid(), "%s", s.Kind())
	}
}

func TestBoundsStayInCoordinateRange(t *testing.T) {
	l := &Line{X1: -2_000_000_000, Y1: 0, X2: 2_000_000_000, Y2: 0, Color: Red, Thickness: 4}
	box, ok := l.BoundingBox()
	require.True(t, ok)
	assert.True(t, box.Valid())
	assert.LessOrEqual(t, box.Right(), int(geometry.MaxCoord))
}
