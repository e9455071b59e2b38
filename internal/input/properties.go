package input

import (
	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
)

// Rows of the selection properties panel, top to bottom.
const (
	PropRowColor = iota
	PropRowThickness
	PropRowLocked
	PropRowCount
)

// OpenPropertiesPanel shows the properties panel for the current
// selection. No-op with nothing selected.
func (s *State) OpenPropertiesPanel() bool {
	if s.Selection.IsEmpty() {
		return false
	}
	s.UI.CloseAll()
	s.UI.Properties = PropertiesPanelState{Open: true}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
	return true
}

func (s *State) propertiesPanelKey(k Key) {
	p := &s.UI.Properties
	switch k.Name {
	case KeyEscape, KeyReturn:
		*p = PropertiesPanelState{}
	case KeyUp:
		if p.Focused > 0 {
			p.Focused--
		}
	case KeyDown:
		if p.Focused < PropRowCount-1 {
			p.Focused++
		}
	case KeyLeft:
		s.adjustFocusedProperty(-1)
	case KeyRight:
		s.adjustFocusedProperty(1)
	default:
		return
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

func (s *State) adjustFocusedProperty(dir int) {
	switch s.UI.Properties.Focused {
	case PropRowColor:
		s.CycleSelectionColor(dir)
	case PropRowThickness:
		s.AdjustSelectionThickness(float64(dir))
	case PropRowLocked:
		s.SetSelectionLocked(dir > 0)
	}
}

// SelectionColor returns the color shown in the panel: the first
// selected shape that has one.
func (s *State) SelectionColor() (draw.Color, bool) {
	frame := s.ActiveFrame()
	for _, id := range s.Selection.IDs() {
		if ds, ok := frame.Get(id); ok {
			if c, ok := draw.ShapeColor(ds.Shape); ok {
				return c, true
			}
		}
	}
	return draw.Color{}, false
}

// SelectionThickness returns the thickness shown in the panel: the
// first selected shape that has one.
func (s *State) SelectionThickness() (float64, bool) {
	frame := s.ActiveFrame()
	for _, id := range s.Selection.IDs() {
		if ds, ok := frame.Get(id); ok {
			if t, ok := draw.ShapeThickness(ds.Shape); ok {
				return t, true
			}
		}
	}
	return 0, false
}

// SelectionLocked reports whether every selected shape is locked.
func (s *State) SelectionLocked() bool {
	frame := s.ActiveFrame()
	any := false
	for _, id := range s.Selection.IDs() {
		ds, ok := frame.Get(id)
		if !ok {
			continue
		}
		if !ds.Locked {
			return false
		}
		any = true
	}
	return any
}

// CycleSelectionColor steps every selected unlocked shape through the
// palette, keyed off the panel's displayed color. Each change records
// an undoable replace.
func (s *State) CycleSelectionColor(dir int) {
	cur, ok := s.SelectionColor()
	if !ok {
		return
	}
	i := paletteIndex(cur) + dir
	n := len(draw.Palette)
	next := draw.Palette[((i%n)+n)%n]
	s.mutateSelection(func(sh draw.Shape) bool {
		return draw.SetShapeColor(sh, next)
	})
}

// AdjustSelectionThickness nudges the stroke thickness of every
// selected unlocked shape by delta, clamped to the tool range.
func (s *State) AdjustSelectionThickness(delta float64) {
	s.mutateSelection(func(sh draw.Shape) bool {
		t, ok := draw.ShapeThickness(sh)
		if !ok {
			return false
		}
		return draw.SetShapeThickness(sh, geometry.ClampF(t+delta, MinThickness, MaxThickness))
	})
}

// mutateSelection applies fn to each selected unlocked shape, recording
// a replace op per changed shape so the edit undoes.
func (s *State) mutateSelection(fn func(draw.Shape) bool) {
	frame := s.ActiveFrame()
	changed := 0
	for _, id := range s.Selection.IDs() {
		ds, ok := frame.Get(id)
		if !ok || ds.Locked {
			continue
		}
		s.markShape(ds)
		before := ds.Shape.Clone()
		if !fn(ds.Shape) {
			continue
		}
		frame.RecordReplace(id, before)
		s.markShape(ds)
		changed++
	}
	if changed > 0 {
		s.invalidateHitCache()
		s.markSessionDirty()
		s.NeedsRedraw = true
	}
}
