// Package input holds the annotation state core: the root InputState
// aggregate, the drawing state machine, selection, zoom, and the dirty
// tracker that drives incremental redraws.
package input

// Tool identifies the active drawing tool.
type Tool string

const (
	ToolPen        Tool = "pen"
	ToolMarker     Tool = "marker"
	ToolEraser     Tool = "eraser"
	ToolLine       Tool = "line"
	ToolRect       Tool = "rect"
	ToolEllipse    Tool = "ellipse"
	ToolArrow      Tool = "arrow"
	ToolHighlight  Tool = "highlight"
	ToolText       Tool = "text"
	ToolStickyNote Tool = "sticky_note"
	ToolStepMarker Tool = "step_marker"
	ToolSelect     Tool = "select"
)

// IsStroke reports whether the tool accumulates a freehand point list.
func (t Tool) IsStroke() bool {
	return t == ToolPen || t == ToolMarker || t == ToolEraser
}

// IsTwoPoint reports whether the tool is defined by a start and end point.
func (t Tool) IsTwoPoint() bool {
	switch t {
	case ToolLine, ToolRect, ToolEllipse, ToolArrow, ToolHighlight:
		return true
	}
	return false
}

// IsText reports whether the tool places editable text.
func (t Tool) IsText() bool {
	return t == ToolText || t == ToolStickyNote
}

// Draws reports whether a left press with this tool starts a drag-drawn
// shape.
func (t Tool) Draws() bool {
	return t.IsStroke() || t.IsTwoPoint()
}

// Label returns the human-readable tool name for the status bar.
func (t Tool) Label() string {
	switch t {
	case ToolPen:
		return "Pen"
	case ToolMarker:
		return "Marker"
	case ToolEraser:
		return "Eraser"
	case ToolLine:
		return "Line"
	case ToolRect:
		return "Rectangle"
	case ToolEllipse:
		return "Ellipse"
	case ToolArrow:
		return "Arrow"
	case ToolHighlight:
		return "Highlight"
	case ToolText:
		return "Text"
	case ToolStickyNote:
		return "Sticky note"
	case ToolStepMarker:
		return "Step marker"
	case ToolSelect:
		return "Select"
	}
	return string(t)
}
