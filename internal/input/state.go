package input

import (
	"time"

	"github.com/devmobasa/wayscriber/internal/board"
	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
	"github.com/devmobasa/wayscriber/internal/logger"
)

// Stroke thickness bounds.
const (
	MinThickness = 1.0
	MaxThickness = 50.0
)

// Text click promotion thresholds.
const (
	DragThresholdPx   = 4
	DoubleClickWindow = 500 * time.Millisecond
	DoubleClickRadius = 6
)

// stateKind is the current leaf of the drawing state machine.
type stateKind int

const (
	stateIdle stateKind = iota
	statePendingTextClick
	stateDrawing
	stateSelecting
	stateMovingSelection
	stateResizingSelection
	stateResizingText
	stateTextInput
)

// TextInputMode says whether typed text commits as plain text or a
// sticky note.
type TextInputMode int

const (
	TextPlain TextInputMode = iota
	TextSticky
)

// shapeSnapshot remembers a shape's geometry before an interactive
// transform, for the single Replace op pushed on release.
type shapeSnapshot struct {
	id     draw.ShapeID
	before draw.Shape
}

// machineState carries the per-state data of the drawing state machine.
// Only the fields of the active kind are meaningful.
type machineState struct {
	kind stateKind

	// Drawing
	tool    Tool
	startX  int
	startY  int
	points  []draw.StrokePoint
	curX    int
	curY    int
	forced  bool // Ctrl-drag rect override active
	pressed time.Time

	// PendingTextClick
	pendingShape *draw.ShapeID

	// Selecting
	additive bool

	// Moving/Resizing
	lastX      int
	lastY      int
	moved      bool
	snapshots  []shapeSnapshot
	handle     Handle
	origBounds geometry.Rect
	curBounds  geometry.Rect

	// ResizingText
	textID   draw.ShapeID
	baseX    int
	textSize float64

	// TextInput
	buffer    *TextBuffer
	textMode  TextInputMode
	editingID *draw.ShapeID
}

// textClickState remembers the last completed text-tool click so a second
// click within the window opens the editor.
type textClickState struct {
	shapeID draw.ShapeID
	x, y    int
	at      time.Time
}

// hitCacheEntry is the single-entry hover hit-test cache.
type hitCacheEntry struct {
	x, y  int
	id    draw.ShapeID
	hit   bool
	valid bool
}

// State is the root aggregate of the annotation core. It exclusively
// owns the board manager and, transitively, every frame and shape. It
// is mutated only on the event-loop goroutine.
type State struct {
	Boards *board.Manager

	// Tool settings.
	Tool              Tool
	toolOverride      *Tool
	CurrentColor      draw.Color
	Thickness         float64
	EraserSize        float64
	EraserKind        draw.EraserKind
	EraserMode        draw.EraserMode
	MarkerOpacity     float64
	Font              draw.FontDescriptor
	FontSize          float64
	FillEnabled       bool
	TextBackground    bool
	ArrowHeadLength   float64
	ArrowHeadAngle    float64
	ArrowHeadAtEnd    bool
	ArrowLabelEnabled bool
	StepLabelEnabled  bool

	arrowCounter uint32
	stepCounter  uint32

	Selection Selection
	Modifiers Modifiers
	Mouse     geometry.Point

	UI    UIState
	Dirty DirtyTracker
	Zoom  ZoomState

	Frozen        *CapturedImage
	FreezePending bool

	Clickthrough  bool
	SessionDirty  bool
	NeedsRedraw   bool
	ExitRequested bool

	machine   machineState
	lastClick *textClickState
	toasts    toastQueue
	delayed   *delayedHistory
	hitCache  hitCacheEntry

	// Stylus pressure.
	baseThickness float64
	stylusDown    bool
	stylusPeak    float64

	screenW int
	screenH int
	scale   int

	lastProvisional  *geometry.Rect
	lastTextPreview  *geometry.Rect
	lastSelectionBox *geometry.Rect

	now func() time.Time
}

// NewState returns a clean aggregate with a pen tool, red pen, and a
// 0x0 screen awaiting the first configure.
func NewState() *State {
	s := &State{
		Boards:           board.NewManager(),
		Tool:             ToolPen,
		CurrentColor:     draw.Red,
		Thickness:        4,
		EraserSize:       24,
		EraserKind:       draw.EraserCircle,
		EraserMode:       draw.EraserBrush,
		MarkerOpacity:    0.5,
		Font:             draw.DefaultFont(),
		FontSize:         18,
		ArrowHeadLength:  18,
		ArrowHeadAngle:   30,
		ArrowHeadAtEnd:   true,
		StepLabelEnabled: true,
		arrowCounter:     1,
		stepCounter:      1,
		Zoom:             NewZoomState(),
		scale:            1,
		now:              time.Now,
	}
	s.UI.StatusBar = true
	return s
}

// Resize records the logical screen size and integer scale from a
// configure event and forces a full repaint.
func (s *State) Resize(w, h, scale int) {
	if w == s.screenW && h == s.screenH && scale == s.scale {
		return
	}
	s.screenW = w
	s.screenH = h
	if scale >= 1 {
		s.scale = scale
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
	logger.Debugf("surface resized to %dx%d scale %d", w, h, scale)
}

// ScreenRect returns the logical screen bounds.
func (s *State) ScreenRect() geometry.Rect {
	return geometry.Rect{Width: s.screenW, Height: s.screenH}
}

// ScreenSize returns the logical width and height.
func (s *State) ScreenSize() (int, int) { return s.screenW, s.screenH }

// BufferScale returns the integer output scale.
func (s *State) BufferScale() int { return s.scale }

// ActiveFrame returns the active page of the active board.
func (s *State) ActiveFrame() *draw.Frame { return s.Boards.ActiveFrame() }

// ActiveTool returns the effective tool, honoring a modifier or
// toolbar-forced override.
func (s *State) ActiveTool() Tool {
	if s.toolOverride != nil {
		return *s.toolOverride
	}
	return s.Tool
}

// SetToolOverride forces a tool until cleared, without touching the
// user's chosen tool.
func (s *State) SetToolOverride(t Tool) {
	s.toolOverride = &t
}

// ClearToolOverride drops the forced tool.
func (s *State) ClearToolOverride() {
	s.toolOverride = nil
}

// ToolOverride returns the forced tool, if any.
func (s *State) ToolOverride() (Tool, bool) {
	if s.toolOverride == nil {
		return "", false
	}
	return *s.toolOverride, true
}

// SetTool changes the user's tool and cancels any in-progress
// interaction that belongs to the old one.
func (s *State) SetTool(t Tool) {
	if s.Tool == t {
		return
	}
	s.CancelInteraction()
	s.Tool = t
	s.markSessionDirty()
	s.markStatusBar()
}

// SetColor changes the pen color.
func (s *State) SetColor(c draw.Color) {
	s.CurrentColor = c
	s.markSessionDirty()
	s.markStatusBar()
}

// SetThickness clamps and applies a new stroke thickness.
func (s *State) SetThickness(t float64) {
	s.Thickness = geometry.ClampF(t, MinThickness, MaxThickness)
	s.markSessionDirty()
	s.markStatusBar()
}

// AdjustThickness nudges the thickness by delta.
func (s *State) AdjustThickness(delta float64) {
	s.SetThickness(s.Thickness + delta)
}

// Toasts returns the live toast list, oldest first.
func (s *State) Toasts() []Toast { return s.toasts.toasts }

// PushToast queues a transient status message and marks its screen area.
func (s *State) PushToast(kind ToastKind, message string) {
	s.toasts.push(kind, message, s.now())
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

// PruneToasts drops expired toasts; called from the event-loop tick.
func (s *State) PruneToasts() {
	if s.toasts.prune(s.now()) {
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
	}
}

// State machine introspection, mainly for the renderer and tests.

// IsIdle reports whether no interaction is in progress.
func (s *State) IsIdle() bool { return s.machine.kind == stateIdle }

// IsDrawing reports whether a drag-drawn shape is in progress.
func (s *State) IsDrawing() bool { return s.machine.kind == stateDrawing }

// IsTextInput reports whether the text editor is active.
func (s *State) IsTextInput() bool { return s.machine.kind == stateTextInput }

// IsSelecting reports whether a marquee drag is in progress.
func (s *State) IsSelecting() bool { return s.machine.kind == stateSelecting }

// TextInputSnapshot returns the live text editor contents and anchor for
// rendering the preview with its caret.
func (s *State) TextInputSnapshot() (x, y int, text string, mode TextInputMode, ok bool) {
	if s.machine.kind != stateTextInput {
		return 0, 0, "", TextPlain, false
	}
	return s.machine.startX, s.machine.startY, s.machine.buffer.String(), s.machine.textMode, true
}

// markSessionDirty flags unsaved state and arms the save debounce.
func (s *State) markSessionDirty() {
	s.SessionDirty = true
}

// markStatusBar invalidates the status bar strip.
func (s *State) markStatusBar() {
	if s.UI.StatusBar {
		s.Dirty.Mark(s.statusBarRect())
	}
	s.NeedsRedraw = true
}

// statusBarRect is the strip along the bottom edge where the status bar
// renders.
func (s *State) statusBarRect() geometry.Rect {
	const barHeight = 36
	y := s.screenH - barHeight
	if y < 0 {
		y = 0
	}
	return geometry.Rect{X: 0, Y: y, Width: s.screenW, Height: barHeight}
}

// markShape marks a shape's painted area, halo included when selected.
func (s *State) markShape(ds draw.DrawnShape) {
	box, ok := ds.Shape.BoundingBox()
	if !ok {
		return
	}
	if s.Selection.Contains(ds.ID) {
		box = box.Inflate(SelectionHaloPadding)
	}
	s.Dirty.Mark(box)
	s.NeedsRedraw = true
}

// markRect marks an arbitrary region.
func (s *State) markRect(r geometry.Rect) {
	s.Dirty.Mark(r)
	s.NeedsRedraw = true
}

// invalidateHitCache drops the hover hit-test cache; called whenever a
// shape is added, removed, or moved.
func (s *State) invalidateHitCache() {
	s.hitCache = hitCacheEntry{}
}

// HitTestAt returns the topmost shape containing the point. Repeated
// queries at the same point reuse a single cached answer.
func (s *State) HitTestAt(x, y int) (draw.ShapeID, bool) {
	if s.hitCache.valid && s.hitCache.x == x && s.hitCache.y == y {
		return s.hitCache.id, s.hitCache.hit
	}
	shapes := s.ActiveFrame().Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Shape.HitTest(x, y, draw.DefaultHitTolerance) {
			s.hitCache = hitCacheEntry{x: x, y: y, id: shapes[i].ID, hit: true, valid: true}
			return shapes[i].ID, true
		}
	}
	s.hitCache = hitCacheEntry{x: x, y: y, valid: true}
	return 0, false
}

// ArrowCounter returns the next arrow label value.
func (s *State) ArrowCounter() uint32 { return s.arrowCounter }

// StepCounter returns the next step marker label value.
func (s *State) StepCounter() uint32 { return s.stepCounter }

// ResetArrowCounter restores the arrow label counter to 1.
func (s *State) ResetArrowCounter() {
	s.arrowCounter = 1
	s.markSessionDirty()
}

// ResetStepCounter restores the step marker counter to 1.
func (s *State) ResetStepCounter() {
	s.stepCounter = 1
	s.markSessionDirty()
}

// ResyncLabelCounters walks every arrow and step marker on every page of
// every board and sets each counter to the highest label seen plus one.
// Called after a session snapshot is applied.
func (s *State) ResyncLabelCounters() {
	var maxArrow, maxStep uint32
	for _, b := range s.Boards.Boards() {
		for _, page := range b.Pages.Pages() {
			for _, ds := range page.Shapes() {
				switch v := ds.Shape.(type) {
				case *draw.Arrow:
					if v.Label != nil && v.Label.Value > maxArrow {
						maxArrow = v.Label.Value
					}
				case *draw.StepMarker:
					if v.Label.Value > maxStep {
						maxStep = v.Label.Value
					}
				}
			}
		}
	}
	s.arrowCounter = maxArrow + 1
	s.stepCounter = maxStep + 1
}

// SwitchBoard activates another board, applying the auto-contrast pen
// policy, and repaints everything.
func (s *State) SwitchBoard(id string) bool {
	pen, ok := s.Boards.SwitchTo(id, s.CurrentColor)
	if !ok {
		return false
	}
	s.CurrentColor = pen
	s.Selection.Clear()
	s.CancelInteraction()
	s.invalidateHitCache()
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
	s.markSessionDirty()
	return true
}

// SetClock replaces the time source, for tests.
func (s *State) SetClock(now func() time.Time) { s.now = now }
