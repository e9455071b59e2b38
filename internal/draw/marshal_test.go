package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeEnvelopeRoundTrip(t *testing.T) {
	shapes := []Shape{
		&Freehand{Points: []StrokePoint{{X: 1, Y: 2, Thickness: 1.5}, {X: 3, Y: 4}}, Color: Red, Thickness: 2},
		&Marker{Points: []StrokePoint{{X: 0, Y: 0}, {X: 5, Y: 5}}, Color: Yellow, Thickness: 12, Opacity: 0.4},
		&EraserStroke{Points: []StrokePoint{{X: 2, Y: 2}}, Size: 20, Brush: EraserSquare, Mode: EraserStrokeMode},
		&Line{X1: 0, Y1: 0, X2: 100, Y2: 50, Color: Blue, Thickness: 3},
		&Rect{X: 10, Y: 10, W: 40, H: 30, Color: Green, Thickness: 2, Fill: true},
		&Ellipse{CX: 50, CY: 50, RX: 20, RY: 10, Color: Purple, Thickness: 2},
		&Arrow{X1: 0, Y1: 0, X2: 60, Y2: 0, Color: Orange, Thickness: 2, HeadLength: 14, HeadAngle: 30, HeadAtEnd: true, Label: &ArrowLabel{Value: 3, Size: 14, Font: DefaultFont()}},
		&Highlight{X: 5, Y: 5, W: 80, H: 20, Color: Yellow.WithAlpha(0.35)},
		&Text{X: 12, Y: 8, Text: "hello\nworld", Color: Black, Size: 18, Font: FontDescriptor{Family: "Sans", Weight: WeightBold, Style: StyleItalic}, Background: true},
		&StickyNote{X: 0, Y: 0, Text: "todo", Background: Yellow, Size: 14, Font: DefaultFont()},
		&StepMarker{X: 30, Y: 30, Color: Red, Label: StepMarkerLabel{Value: 7, Size: 14, Font: DefaultFont()}},
	}

	for _, s := range shapes {
		t.Run(string(s.Kind()), func(t *testing.T) {
			raw, err := MarshalShape(s)
			require.NoError(t, err)

			got, err := UnmarshalShape(raw)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}
}

func TestUnmarshalShapeUnknownKind(t *testing.T) {
	_, err := UnmarshalShape([]byte(`{"type":"scribble","data":{}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownShapeKind)
}

func TestUnmarshalShapeClampsMarkerOpacity(t *testing.T) {
	raw := []byte(`{"type":"marker","data":{"points":[{"x":0,"y":0}],"color":{"r":1,"g":1,"b":0,"a":1},"thickness":10,"opacity":2.5}}`)
	got, err := UnmarshalShape(raw)
	require.NoError(t, err)
	assert.InDelta(t, MaxMarkerOpacity, got.(*Marker).Opacity, 1e-9)

	raw = []byte(`{"type":"marker","data":{"points":[{"x":0,"y":0}],"color":{"r":1,"g":1,"b":0,"a":1},"thickness":10,"opacity":0}}`)
	got, err = UnmarshalShape(raw)
	require.NoError(t, err)
	assert.InDelta(t, MinMarkerOpacity, got.(*Marker).Opacity, 1e-9)
}

func TestUnmarshalShapeDefaultsEraser(t *testing.T) {
	raw := []byte(`{"type":"eraser","data":{"points":[{"x":0,"y":0}],"brush":"hexagon","mode":"smear"}}`)
	got, err := UnmarshalShape(raw)
	require.NoError(t, err)
	er := got.(*EraserStroke)
	assert.Equal(t, EraserCircle, er.Brush)
	assert.Equal(t, EraserBrush, er.Mode)
	assert.Greater(t, er.Size, 0.0)
}
