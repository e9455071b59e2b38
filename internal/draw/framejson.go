package draw

import (
	"encoding/json"
	"fmt"
)

type placedShapeJSON struct {
	Index int        `json:"index"`
	Shape DrawnShape `json:"shape"`
}

type frameOpJSON struct {
	Kind   opKind            `json:"kind"`
	Placed []placedShapeJSON `json:"placed,omitempty"`
	Before *DrawnShape       `json:"before,omitempty"`
	After  *DrawnShape       `json:"after,omitempty"`
	From   int               `json:"from,omitempty"`
	To     int               `json:"to,omitempty"`
}

type frameJSON struct {
	Shapes []DrawnShape  `json:"shapes"`
	Undo   []frameOpJSON `json:"undo,omitempty"`
	Redo   []frameOpJSON `json:"redo,omitempty"`
	NextID ShapeID       `json:"next_id"`
	Limit  int           `json:"history_limit,omitempty"`
	Name   string        `json:"name,omitempty"`
}

func encodeOp(op frameOp) frameOpJSON {
	out := frameOpJSON{Kind: op.Kind, From: op.From, To: op.To}
	for _, p := range op.Placed {
		out.Placed = append(out.Placed, placedShapeJSON{Index: p.Index, Shape: p.Shape})
	}
	if op.Kind == opReplace {
		before, after := op.Before, op.After
		out.Before = &before
		out.After = &after
	}
	return out
}

func decodeOp(in frameOpJSON) (frameOp, error) {
	op := frameOp{Kind: in.Kind, From: in.From, To: in.To}
	switch in.Kind {
	case opAdd, opRemove, opClear, opReplace, opReorder:
	default:
		return frameOp{}, fmt.Errorf("unknown history op kind %q", in.Kind)
	}
	for _, p := range in.Placed {
		op.Placed = append(op.Placed, placedShape{Index: p.Index, Shape: p.Shape})
	}
	if in.Kind == opReplace {
		if in.Before == nil || in.After == nil {
			return frameOp{}, fmt.Errorf("replace op missing before/after shapes")
		}
		op.Before = *in.Before
		op.After = *in.After
	}
	return op, nil
}

// MarshalJSON encodes the frame with its bounded undo and redo stacks.
func (f *Frame) MarshalJSON() ([]byte, error) {
	out := frameJSON{Shapes: f.shapes, NextID: f.nextID, Limit: f.limit, Name: f.name}
	for _, op := range f.undo {
		out.Undo = append(out.Undo, encodeOp(op))
	}
	for _, op := range f.redo {
		out.Redo = append(out.Redo, encodeOp(op))
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a frame, advancing the id counter past every id
// seen so restored frames keep allocating fresh ids.
func (f *Frame) UnmarshalJSON(raw []byte) error {
	var in frameJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	f.shapes = in.Shapes
	f.undo = nil
	f.redo = nil
	f.nextID = in.NextID
	f.limit = in.Limit
	f.name = in.Name
	if f.limit <= 0 {
		f.limit = DefaultHistoryLimit
	}
	if f.nextID == 0 {
		f.nextID = 1
	}
	for _, enc := range in.Undo {
		op, err := decodeOp(enc)
		if err != nil {
			return err
		}
		f.undo = append(f.undo, op)
	}
	for _, enc := range in.Redo {
		op, err := decodeOp(enc)
		if err != nil {
			return err
		}
		f.redo = append(f.redo, op)
	}
	for _, ds := range f.shapes {
		f.MarkIDUsed(ds.ID)
	}
	for _, op := range append(f.undo, f.redo...) {
		for _, p := range op.Placed {
			f.MarkIDUsed(p.Shape.ID)
		}
		if op.Kind == opReplace {
			f.MarkIDUsed(op.Before.ID)
			f.MarkIDUsed(op.After.ID)
		}
	}
	return nil
}
