package input

import (
	"math"

	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
	"github.com/devmobasa/wayscriber/internal/logger"
)

// marqueeDragThreshold separates a click from a marquee drag.
const marqueeDragThreshold = 4

// minStrokeDisplacement discards accidental dot strokes.
const minStrokeDisplacement = 2.0

// HandleEvent dispatches a normalized event into the state machine.
// Events are processed strictly in arrival order on one goroutine.
func (s *State) HandleEvent(ev Event) {
	// Any input interrupts a stepped history run.
	s.CancelDelayedHistory()
	switch e := ev.(type) {
	case PointerMove:
		s.OnPointerMove(e.X, e.Y)
	case PointerPress:
		s.OnPointerPress(e.Button, e.X, e.Y)
	case PointerRelease:
		s.OnPointerRelease(e.Button, e.X, e.Y)
	case PointerScroll:
		s.OnPointerScroll(e)
	case KeyPress:
		s.OnKeyPress(e.Key, e.Modifiers)
	case KeyRelease:
		s.OnKeyRelease(e.Key, e.Modifiers)
	case StylusDown:
		s.OnStylusDown(e.X, e.Y)
	case StylusUp:
		s.OnStylusUp(e.X, e.Y)
	case StylusMotion:
		s.OnPointerMove(e.X, e.Y)
	case StylusPressure:
		s.OnStylusPressure(e.Pressure)
	}
}

// OnPointerMove processes pointer motion in world coordinates.
func (s *State) OnPointerMove(x, y int) {
	s.Mouse = geometry.Pt(x, y)

	switch s.machine.kind {
	case stateResizingText:
		wrap := s.clampTextWrap(s.machine.baseX, x, s.machine.textSize)
		s.setTextWrapWidth(s.machine.textID, wrap)

	case statePendingTextClick:
		dx := abs(x - s.machine.startX)
		dy := abs(y - s.machine.startY)
		if dx >= DragThresholdPx || dy >= DragThresholdPx {
			tool := s.machine.tool
			if tool.Draws() && tool != ToolHighlight {
				s.promotePendingToDrawing(x, y, tool)
			}
		}

	case stateMovingSelection:
		dx := x - s.machine.lastX
		dy := y - s.machine.lastY
		if (dx != 0 || dy != 0) && s.ApplyTranslation(dx, dy) {
			s.machine.lastX = x
			s.machine.lastY = y
			s.machine.moved = true
		}

	case stateResizingSelection:
		target := handleTargetBounds(s.machine.origBounds, s.machine.handle, x, y, s.Modifiers.Alt)
		if target != s.machine.curBounds {
			s.resizeSelectionTo(s.machine.origBounds, target, s.machine.snapshots)
			s.machine.curBounds = target
			s.machine.moved = true
		}

	case stateSelecting:
		s.machine.curX = x
		s.machine.curY = y
		s.updateProvisionalDirty()

	case stateDrawing:
		s.machine.curX = x
		s.machine.curY = y
		if s.machine.tool.IsStroke() {
			var prev *draw.StrokePoint
			if n := len(s.machine.points); n > 0 {
				prev = &s.machine.points[n-1]
			}
			if s.machine.tool == ToolEraser && s.EraserMode == draw.EraserStrokeMode && prev != nil {
				s.eraseAlongSegment(prev.X, prev.Y, x, y)
			}
			s.machine.points = append(s.machine.points, draw.StrokePoint{
				X: x, Y: y, Thickness: s.Thickness,
			})
		}
		s.updateProvisionalDirty()
	}
}

// OnPointerPress processes a button press in world coordinates.
func (s *State) OnPointerPress(button MouseButton, x, y int) {
	s.Mouse = geometry.Pt(x, y)
	s.CancelDelayedHistory()

	switch button {
	case ButtonRight:
		s.handleRightPress(x, y)
		return
	case ButtonMiddle:
		if s.Zoom.Active {
			s.Zoom.BeginPan(float64(x), float64(y))
		}
		return
	}

	// Clicking anywhere outside a modal dismisses it.
	if s.UI.AnyModalOpen() {
		s.lastClick = nil
		s.UI.CloseAll()
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return
	}
	if s.UI.Properties.Open {
		s.UI.Properties = PropertiesPanelState{}
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
	}

	switch s.machine.kind {
	case stateTextInput:
		// Reposition the pending text anchor.
		s.clearTextPreviewDirty()
		s.machine.startX = x
		s.machine.startY = y
		s.updateTextPreviewDirty()

	case stateIdle:
		s.leftPressIdle(x, y)
	}
}

func (s *State) leftPressIdle(x, y int) {
	// Text wrap handle on a selected text shape.
	if id, baseX, size, ok := s.hitTextResizeHandle(x, y); ok {
		ds, found := s.ActiveFrame().Get(id)
		if found {
			s.lastClick = nil
			s.machine = machineState{
				kind:      stateResizingText,
				textID:    id,
				baseX:     baseX,
				textSize:  size,
				snapshots: []shapeSnapshot{{id: id, before: ds.Shape.Clone()}},
			}
			return
		}
	}

	// Resize handle on the selection bounds.
	if !s.Selection.IsEmpty() {
		if bounds, ok := s.SelectionBounds(); ok {
			halo := bounds.Inflate(SelectionHaloPadding)
			if h := HandleAt(halo, x, y); h != HandleNone {
				snaps := s.movableSelectionSnapshots()
				if len(snaps) > 0 {
					s.lastClick = nil
					s.machine = machineState{
						kind:       stateResizingSelection,
						handle:     h,
						origBounds: halo,
						curBounds:  halo,
						snapshots:  snaps,
					}
					return
				}
			}
		}
	}

	selectionClick := s.Modifiers.Alt || s.ActiveTool() == ToolSelect

	// A press on an already-selected shape starts a move with any tool.
	if hitID, hit := s.HitTestAt(x, y); hit && s.Selection.Contains(hitID) {
		selectionClick = true
	}

	if !selectionClick {
		if hitID, hit := s.HitTestAt(x, y); hit {
			if ds, ok := s.ActiveFrame().Get(hitID); ok && !ds.Locked && isTextShape(ds.Shape) {
				id := hitID
				s.machine = machineState{
					kind:         statePendingTextClick,
					startX:       x,
					startY:       y,
					tool:         s.ActiveTool(),
					pendingShape: &id,
					pressed:      s.now(),
				}
				return
			}
		}
	}

	s.lastClick = nil

	if selectionClick {
		if hitID, hit := s.HitTestAt(x, y); hit {
			if !s.Selection.Contains(hitID) {
				if s.Modifiers.Shift {
					s.Selection.Add(hitID)
				} else {
					s.markSelection()
					s.Selection.Set([]draw.ShapeID{hitID})
				}
				s.markSelection()
			}
			snaps := s.movableSelectionSnapshots()
			if len(snaps) > 0 {
				s.machine = machineState{
					kind:      stateMovingSelection,
					lastX:     x,
					lastY:     y,
					snapshots: snaps,
				}
				return
			}
			return
		}
		s.machine = machineState{
			kind:     stateSelecting,
			startX:   x,
			startY:   y,
			curX:     x,
			curY:     y,
			additive: s.Modifiers.Shift,
		}
		s.updateProvisionalDirty()
		return
	}

	tool := s.ActiveTool()

	if tool.IsText() {
		s.machine = machineState{
			kind:    statePendingTextClick,
			startX:  x,
			startY:  y,
			tool:    tool,
			pressed: s.now(),
		}
		return
	}

	if tool == ToolStepMarker {
		s.commitStepMarker(x, y)
		return
	}

	if tool == ToolSelect {
		return
	}

	forced := false
	if s.Modifiers.Ctrl && s.toolOverride == nil && tool.Draws() {
		tool = ToolRect
		forced = true
	}

	if tool.Draws() {
		st := machineState{
			kind:   stateDrawing,
			tool:   tool,
			startX: x,
			startY: y,
			curX:   x,
			curY:   y,
			forced: forced,
		}
		if tool.IsStroke() {
			st.points = []draw.StrokePoint{{X: x, Y: y, Thickness: s.Thickness}}
		}
		s.machine = st
		if tool == ToolEraser && s.EraserMode == draw.EraserStrokeMode {
			s.eraseAtPoint(x, y)
		}
		s.updateProvisionalDirty()
	}
}

func (s *State) handleRightPress(x, y int) {
	s.Mouse = geometry.Pt(x, y)
	s.lastClick = nil

	if s.machine.kind != stateIdle {
		s.CancelInteraction()
		return
	}
	if s.Zoom.Active {
		return
	}
	if s.UI.AnyModalOpen() {
		s.UI.CloseAll()
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return
	}

	if hitID, hit := s.HitTestAt(x, y); hit {
		if s.Modifiers.Shift {
			s.Selection.Add(hitID)
		} else if !s.Selection.Contains(hitID) {
			s.Selection.Set([]draw.ShapeID{hitID})
		}
		s.UI.ContextMenu = ContextMenuState{
			Open:     true,
			Target:   MenuShape,
			ShapeID:  hitID,
			Position: geometry.Pt(x, y),
		}
	} else {
		s.markSelection()
		s.Selection.Clear()
		s.UI.ContextMenu = ContextMenuState{
			Open:     true,
			Target:   MenuCanvas,
			Position: geometry.Pt(x, y),
		}
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

// OnPointerRelease processes a button release in world coordinates.
func (s *State) OnPointerRelease(button MouseButton, x, y int) {
	s.Mouse = geometry.Pt(x, y)

	if button == ButtonMiddle {
		s.Zoom.EndPan()
		return
	}
	if button != ButtonLeft {
		return
	}

	st := s.machine
	s.machine = machineState{kind: stateIdle}

	switch st.kind {
	case stateMovingSelection:
		if st.moved {
			s.commitTransform(st.snapshots)
		}

	case stateResizingSelection:
		if st.moved {
			s.commitTransform(st.snapshots)
		}

	case stateResizingText:
		s.commitTransform(st.snapshots)

	case stateSelecting:
		s.clearProvisionalDirty()
		dx := abs(x - st.startX)
		dy := abs(y - st.startY)
		if dx < marqueeDragThreshold && dy < marqueeDragThreshold {
			if !st.additive {
				s.markSelection()
				s.Selection.Clear()
				s.NeedsRedraw = true
			}
			return
		}
		marquee := geometry.RectFromCorners(st.startX, st.startY, x, y)
		s.SelectShapesIn(marquee, st.additive)
		s.NeedsRedraw = true

	case stateDrawing:
		s.machine = st // commitDrawing reads the machine fields
		s.commitDrawing(x, y)
		s.machine = machineState{kind: stateIdle}

	case statePendingTextClick:
		s.machine = st
		s.releasePendingTextClick(x, y)
		if s.machine.kind == statePendingTextClick {
			s.machine = machineState{kind: stateIdle}
		}

	default:
		s.machine = st
	}
}

// commitTransform pushes one Replace op per shape whose geometry
// actually changed during an interactive move or resize.
func (s *State) commitTransform(snapshots []shapeSnapshot) {
	frame := s.ActiveFrame()
	committed := 0
	for _, snap := range snapshots {
		ds, ok := frame.Get(snap.id)
		if !ok {
			continue
		}
		if shapesEqual(snap.before, ds.Shape) {
			continue
		}
		if frame.RecordReplace(snap.id, snap.before) {
			committed++
		}
	}
	if committed > 0 {
		s.markSessionDirty()
		s.invalidateHitCache()
	}
}

func shapesEqual(a, b draw.Shape) bool {
	ab, aok := a.BoundingBox()
	bb, bok := b.BoundingBox()
	if aok != bok || ab != bb {
		return false
	}
	ra, err1 := draw.MarshalShape(a)
	rb, err2 := draw.MarshalShape(b)
	if err1 != nil || err2 != nil {
		return false
	}
	return string(ra) == string(rb)
}

func (s *State) promotePendingToDrawing(x, y int, tool Tool) {
	startX, startY := s.machine.startX, s.machine.startY
	st := machineState{
		kind:   stateDrawing,
		tool:   tool,
		startX: startX,
		startY: startY,
		curX:   x,
		curY:   y,
	}
	if tool.IsStroke() {
		st.points = []draw.StrokePoint{
			{X: startX, Y: startY, Thickness: s.Thickness},
			{X: x, Y: y, Thickness: s.Thickness},
		}
	}
	s.machine = st
	s.lastClick = nil
	s.updateProvisionalDirty()
}

// commitDrawing finalizes the in-progress shape at the release point.
// Degenerate geometry is discarded silently.
func (s *State) commitDrawing(x, y int) {
	st := &s.machine
	defer s.clearProvisionalDirty()

	var shape draw.Shape
	switch st.tool {
	case ToolPen, ToolMarker, ToolEraser:
		points := st.points
		if len(points) == 0 || points[len(points)-1].X != x || points[len(points)-1].Y != y {
			points = append(points, draw.StrokePoint{X: x, Y: y, Thickness: s.Thickness})
		}
		if len(points) < 2 && strokeDisplacement(points, st.startX, st.startY) < minStrokeDisplacement {
			return
		}
		switch st.tool {
		case ToolPen:
			shape = &draw.Freehand{Points: points, Color: s.CurrentColor, Thickness: s.Thickness}
		case ToolMarker:
			shape = &draw.Marker{Points: points, Color: s.CurrentColor, Thickness: s.Thickness, Opacity: s.MarkerOpacity}
		case ToolEraser:
			if s.EraserMode == draw.EraserStrokeMode {
				s.eraseAtPoint(x, y)
				return
			}
			shape = &draw.EraserStroke{Points: points, Size: s.EraserSize, Brush: s.EraserKind, Mode: s.EraserMode}
		}

	case ToolLine:
		ex, ey := s.constrainedEndpoint(st.startX, st.startY, x, y)
		if ex == st.startX && ey == st.startY {
			return
		}
		shape = &draw.Line{X1: st.startX, Y1: st.startY, X2: ex, Y2: ey, Color: s.CurrentColor, Thickness: s.Thickness}

	case ToolRect:
		r := s.constrainedBox(st.startX, st.startY, x, y)
		if !r.Valid() {
			return
		}
		shape = &draw.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Color: s.CurrentColor, Thickness: s.Thickness, Fill: s.FillEnabled}

	case ToolEllipse:
		r := s.constrainedBox(st.startX, st.startY, x, y)
		if !r.Valid() {
			return
		}
		shape = &draw.Ellipse{
			CX: r.X + r.Width/2, CY: r.Y + r.Height/2,
			RX: r.Width / 2, RY: r.Height / 2,
			Color: s.CurrentColor, Thickness: s.Thickness, Fill: s.FillEnabled,
		}

	case ToolArrow:
		if x == st.startX && y == st.startY {
			return
		}
		arrow := &draw.Arrow{
			X1: st.startX, Y1: st.startY, X2: x, Y2: y,
			Color: s.CurrentColor, Thickness: s.Thickness,
			HeadLength: s.ArrowHeadLength, HeadAngle: s.ArrowHeadAngle, HeadAtEnd: s.ArrowHeadAtEnd,
		}
		if s.ArrowLabelEnabled {
			arrow.Label = &draw.ArrowLabel{Value: s.arrowCounter, Size: s.FontSize * 0.8, Font: s.Font}
			s.arrowCounter++
		}
		shape = arrow

	case ToolHighlight:
		r := geometry.RectFromCorners(st.startX, st.startY, x, y)
		if !r.Valid() {
			return
		}
		shape = &draw.Highlight{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Color: s.CurrentColor.WithAlpha(0.35)}

	default:
		return
	}

	frame := s.ActiveFrame()
	id := frame.AddShape(shape)
	if box, ok := shape.BoundingBox(); ok {
		s.markRect(box)
	}
	s.markSelection()
	s.Selection.Clear()
	s.invalidateHitCache()
	s.markSessionDirty()
	logger.Debugf("committed %s shape id=%d", shape.Kind(), id)
}

func strokeDisplacement(points []draw.StrokePoint, sx, sy int) float64 {
	d := 0.0
	for _, p := range points {
		dx := float64(p.X - sx)
		dy := float64(p.Y - sy)
		if dist := math.Hypot(dx, dy); dist > d {
			d = dist
		}
	}
	return d
}

// constrainedEndpoint snaps a line endpoint to 15 degree increments
// while Shift is held.
func (s *State) constrainedEndpoint(sx, sy, x, y int) (int, int) {
	if !s.Modifiers.Shift {
		return x, y
	}
	dx := float64(x - sx)
	dy := float64(y - sy)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return x, y
	}
	angle := math.Atan2(dy, dx)
	step := 15.0 * math.Pi / 180.0
	snapped := math.Round(angle/step) * step
	return sx + int(math.Round(length*math.Cos(snapped))),
		sy + int(math.Round(length*math.Sin(snapped)))
}

// constrainedBox normalizes the drag corners, constraining to a square
// anchored at the start while Shift is held.
func (s *State) constrainedBox(sx, sy, x, y int) geometry.Rect {
	if s.Modifiers.Shift {
		w := abs(x - sx)
		h := abs(y - sy)
		side := w
		if h > side {
			side = h
		}
		if x < sx {
			x = sx - side
		} else {
			x = sx + side
		}
		if y < sy {
			y = sy - side
		} else {
			y = sy + side
		}
	}
	return geometry.RectFromCorners(sx, sy, x, y)
}

// commitStepMarker places a numbered bubble at the click point.
func (s *State) commitStepMarker(x, y int) {
	label := draw.StepMarkerLabel{Size: s.FontSize, Font: s.Font}
	if s.StepLabelEnabled {
		label.Value = s.stepCounter
		s.stepCounter++
	}
	marker := &draw.StepMarker{X: x, Y: y, Color: s.CurrentColor, Label: label}
	s.ActiveFrame().AddShape(marker)
	if box, ok := marker.BoundingBox(); ok {
		s.markRect(box)
	}
	s.invalidateHitCache()
	s.markSessionDirty()
}

func (s *State) releasePendingTextClick(x, y int) {
	st := s.machine
	s.machine = machineState{kind: stateIdle}
	now := s.now()

	if st.pendingShape != nil {
		id := *st.pendingShape
		isDouble := s.lastClick != nil &&
			s.lastClick.shapeID == id &&
			now.Sub(s.lastClick.at) <= DoubleClickWindow &&
			abs(x-s.lastClick.x) <= DoubleClickRadius &&
			abs(y-s.lastClick.y) <= DoubleClickRadius
		if isDouble {
			s.lastClick = nil
			s.Selection.Set([]draw.ShapeID{id})
			s.EditTextShape(id)
			return
		}
		s.lastClick = &textClickState{shapeID: id, x: x, y: y, at: now}
		return
	}

	if st.tool.IsText() {
		mode := TextPlain
		if st.tool == ToolStickyNote {
			mode = TextSticky
		}
		s.BeginTextInput(x, y, mode, nil, "")
	}
}

// BeginTextInput opens the inline text editor at a position. A non-nil
// editing id means Enter replaces that shape instead of adding one.
func (s *State) BeginTextInput(x, y int, mode TextInputMode, editing *draw.ShapeID, seed string) {
	s.machine = machineState{
		kind:      stateTextInput,
		startX:    x,
		startY:    y,
		buffer:    NewTextBuffer(seed),
		textMode:  mode,
		editingID: editing,
	}
	s.lastClick = nil
	s.updateTextPreviewDirty()
}

// EditTextShape opens the editor seeded with an existing text shape's
// contents.
func (s *State) EditTextShape(id draw.ShapeID) bool {
	ds, ok := s.ActiveFrame().Get(id)
	if !ok || ds.Locked {
		return false
	}
	switch v := ds.Shape.(type) {
	case *draw.Text:
		s.BeginTextInput(v.X, v.Y, TextPlain, &id, v.Text)
	case *draw.StickyNote:
		s.BeginTextInput(v.X, v.Y, TextSticky, &id, v.Text)
	default:
		return false
	}
	return true
}

// commitTextInput turns the buffer into a Text or StickyNote shape, or
// replaces the shape being edited.
func (s *State) commitTextInput() {
	st := s.machine
	s.clearTextPreviewDirty()
	s.machine = machineState{kind: stateIdle}

	text := st.buffer.String()
	if text == "" {
		return
	}

	frame := s.ActiveFrame()
	if st.editingID != nil {
		if ds, ok := frame.Get(*st.editingID); ok {
			updated := ds.Shape.Clone()
			switch v := updated.(type) {
			case *draw.Text:
				v.Text = text
			case *draw.StickyNote:
				v.Text = text
			}
			if frame.ReplaceShape(*st.editingID, updated) {
				s.markShape(ds)
				if box, ok := updated.BoundingBox(); ok {
					s.markRect(box)
				}
				s.invalidateHitCache()
				s.markSessionDirty()
			}
			return
		}
	}

	var shape draw.Shape
	if st.textMode == TextSticky {
		shape = &draw.StickyNote{
			X: st.startX, Y: st.startY, Text: text,
			Background: draw.Yellow,
			Size:       s.FontSize, Font: s.Font,
		}
	} else {
		shape = &draw.Text{
			X: st.startX, Y: st.startY, Text: text,
			Color: s.CurrentColor, Size: s.FontSize, Font: s.Font,
			Background: s.TextBackground,
		}
	}
	frame.AddShape(shape)
	if box, ok := shape.BoundingBox(); ok {
		s.markRect(box)
	}
	s.invalidateHitCache()
	s.markSessionDirty()
}

// CancelInteraction aborts whatever interaction is in progress,
// restoring any live-mutated geometry from its snapshots.
func (s *State) CancelInteraction() {
	switch s.machine.kind {
	case stateIdle:
		return
	case stateTextInput:
		s.clearTextPreviewDirty()
	case stateDrawing, stateSelecting:
		s.clearProvisionalDirty()
	case stateMovingSelection, stateResizingSelection, stateResizingText:
		s.restoreSnapshots(s.machine.snapshots)
	}
	s.machine = machineState{kind: stateIdle}
	s.NeedsRedraw = true
}

// restoreSnapshots rolls live-mutated shapes back to their pre-drag
// geometry without touching history.
func (s *State) restoreSnapshots(snapshots []shapeSnapshot) {
	frame := s.ActiveFrame()
	for _, snap := range snapshots {
		if ds, ok := frame.Get(snap.id); ok {
			s.markShape(ds)
			replaceInPlace(ds.Shape, snap.before)
			s.markShape(ds)
		}
	}
	s.invalidateHitCache()
}

// movableSelectionSnapshots clones the geometry of every selected,
// unlocked shape for an interactive transform.
func (s *State) movableSelectionSnapshots() []shapeSnapshot {
	frame := s.ActiveFrame()
	snaps := make([]shapeSnapshot, 0, s.Selection.Len())
	for _, id := range s.Selection.IDs() {
		ds, ok := frame.Get(id)
		if !ok || ds.Locked {
			continue
		}
		snaps = append(snaps, shapeSnapshot{id: id, before: ds.Shape.Clone()})
	}
	return snaps
}

// eraseAlongSegment samples the eraser path so fast drags cannot skip
// over shapes between motion events.
func (s *State) eraseAlongSegment(x1, y1, x2, y2 int) {
	step := s.EraserSize / 2
	if step < 1 {
		step = 1
	}
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	samples := int(math.Hypot(dx, dy)/step) + 1
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		s.eraseAtPoint(x1+int(math.Round(dx*t)), y1+int(math.Round(dy*t)))
	}
}

// eraseAtPoint removes every shape touched by the eraser cursor, one
// Remove op per shape. Eraser strokes themselves are not erased.
func (s *State) eraseAtPoint(x, y int) {
	frame := s.ActiveFrame()
	tol := s.EraserSize / 2
	for {
		victim := draw.ShapeID(0)
		found := false
		shapes := frame.Shapes()
		for i := len(shapes) - 1; i >= 0; i-- {
			ds := shapes[i]
			if ds.Locked || ds.Shape.Kind() == draw.KindEraser {
				continue
			}
			if ds.Shape.HitTest(x, y, tol) {
				victim = ds.ID
				found = true
				break
			}
		}
		if !found {
			return
		}
		if ds, ok := frame.Get(victim); ok {
			s.markShape(ds)
		}
		if !frame.RemoveShape(victim) {
			return
		}
		s.Selection.Remove(victim)
		s.invalidateHitCache()
		s.markSessionDirty()
	}
}

// hitTextResizeHandle finds a selected, unlocked text shape whose right
// edge is under the cursor.
func (s *State) hitTextResizeHandle(x, y int) (draw.ShapeID, int, float64, bool) {
	frame := s.ActiveFrame()
	for _, id := range s.Selection.IDs() {
		ds, ok := frame.Get(id)
		if !ok || ds.Locked {
			continue
		}
		var baseX int
		var size float64
		switch v := ds.Shape.(type) {
		case *draw.Text:
			baseX, size = v.X, v.Size
		case *draw.StickyNote:
			baseX, size = v.X, v.Size
		default:
			continue
		}
		box, ok := ds.Shape.BoundingBox()
		if !ok {
			continue
		}
		if abs(x-box.Right()) <= HandleHitSize && y >= box.Y && y < box.Bottom() {
			return id, baseX, size, true
		}
	}
	return 0, 0, 0, false
}

func isTextShape(shape draw.Shape) bool {
	switch shape.(type) {
	case *draw.Text, *draw.StickyNote:
		return true
	}
	return false
}

// clampTextWrap bounds a dragged wrap width to stay readable and on
// screen.
func (s *State) clampTextWrap(baseX, cursorX int, size float64) int {
	minWrap := int(math.Min(2*size, 40))
	maxWrap := s.screenW - baseX
	if maxWrap < minWrap {
		maxWrap = minWrap
	}
	return geometry.Clamp(cursorX-baseX, minWrap, maxWrap)
}

// setTextWrapWidth applies a wrap width live during a resize drag.
func (s *State) setTextWrapWidth(id draw.ShapeID, wrap int) {
	frame := s.ActiveFrame()
	ds, ok := frame.Get(id)
	if !ok {
		return
	}
	s.markShape(ds)
	switch v := ds.Shape.(type) {
	case *draw.Text:
		v.WrapWidth = wrap
	case *draw.StickyNote:
		v.WrapWidth = wrap
	default:
		return
	}
	s.markShape(ds)
	s.invalidateHitCache()
}
