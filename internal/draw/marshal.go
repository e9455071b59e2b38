package draw

import (
	"encoding/json"
	"fmt"

	"github.com/devmobasa/wayscriber/internal/geometry"
)

// Shapes persist as {"type": <kind>, "data": {...}} so the variant set
// can grow without breaking old session files.

var ErrUnknownShapeKind = fmt.Errorf("unknown shape kind")

type shapeEnvelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalShape encodes a shape into its tagged envelope.
func MarshalShape(s Shape) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal %s shape: %w", s.Kind(), err)
	}
	return json.Marshal(shapeEnvelope{Type: s.Kind(), Data: data})
}

// UnmarshalShape decodes a tagged shape envelope.
func UnmarshalShape(raw []byte) (Shape, error) {
	var env shapeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode shape envelope: %w", err)
	}
	var target Shape
	switch env.Type {
	case KindFreehand:
		target = &Freehand{}
	case KindMarker:
		target = &Marker{}
	case KindEraser:
		target = &EraserStroke{}
	case KindLine:
		target = &Line{}
	case KindRect:
		target = &Rect{}
	case KindEllipse:
		target = &Ellipse{}
	case KindArrow:
		target = &Arrow{}
	case KindHighlight:
		target = &Highlight{}
	case KindText:
		target = &Text{}
	case KindStickyNote:
		target = &StickyNote{}
	case KindStepMarker:
		target = &StepMarker{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeKind, env.Type)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return nil, fmt.Errorf("decode %s shape: %w", env.Type, err)
	}
	normalizeLoaded(target)
	return target, nil
}

// normalizeLoaded clamps values that older files may carry out of range.
func normalizeLoaded(s Shape) {
	switch v := s.(type) {
	case *Marker:
		v.Opacity = geometry.ClampF(v.Opacity, MinMarkerOpacity, MaxMarkerOpacity)
		v.Color.A = geometry.ClampF(v.Color.A, 0, 1)
	case *EraserStroke:
		if v.Brush != EraserSquare {
			v.Brush = EraserCircle
		}
		if v.Mode != EraserStrokeMode {
			v.Mode = EraserBrush
		}
		if v.Size <= 0 {
			v.Size = 12
		}
	case *Text:
		v.Font = v.Font.Normalize()
	case *StickyNote:
		v.Font = v.Font.Normalize()
	case *StepMarker:
		v.Label.Font = v.Label.Font.Normalize()
	case *Arrow:
		if v.Label != nil {
			v.Label.Font = v.Label.Font.Normalize()
		}
	}
}

type drawnShapeJSON struct {
	ID     ShapeID         `json:"id"`
	Locked bool            `json:"locked,omitempty"`
	Shape  json.RawMessage `json:"shape"`
}

// MarshalJSON encodes the drawn shape with its tagged shape payload.
func (d DrawnShape) MarshalJSON() ([]byte, error) {
	raw, err := MarshalShape(d.Shape)
	if err != nil {
		return nil, err
	}
	return json.Marshal(drawnShapeJSON{ID: d.ID, Locked: d.Locked, Shape: raw})
}

// UnmarshalJSON decodes a drawn shape and its tagged payload.
func (d *DrawnShape) UnmarshalJSON(raw []byte) error {
	var js drawnShapeJSON
	if err := json.Unmarshal(raw, &js); err != nil {
		return fmt.Errorf("decode drawn shape: %w", err)
	}
	shape, err := UnmarshalShape(js.Shape)
	if err != nil {
		return err
	}
	d.ID = js.ID
	d.Locked = js.Locked
	d.Shape = shape
	return nil
}
