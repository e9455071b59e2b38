// Package board models named canvas roots: the transparent overlay plus
// opaque whiteboard-style boards, each carrying its own page list.
package board

import (
	"github.com/devmobasa/wayscriber/internal/draw"
)

// Canonical board ids. These exist in every manager; additional custom
// boards may be created alongside them.
const (
	TransparentID = "transparent"
	WhiteboardID  = "whiteboard"
	BlackboardID  = "blackboard"
)

// Background is either transparent or a solid fill.
type Background struct {
	Solid *draw.Color `json:"solid,omitempty"`
}

// TransparentBackground returns the see-through background.
func TransparentBackground() Background { return Background{} }

// SolidBackground returns an opaque fill.
func SolidBackground(c draw.Color) Background { return Background{Solid: &c} }

// IsSolid reports whether the background paints an opaque fill.
func (b Background) IsSolid() bool { return b.Solid != nil }

// ContrastPen returns the pen color that reads best on this background.
// Transparent backgrounds assume a dark desktop underneath.
func (b Background) ContrastPen() draw.Color {
	if b.Solid == nil {
		return draw.White
	}
	return b.Solid.ContrastColor()
}

// Spec names a board and describes its look and pen policy.
type Spec struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Background      Background  `json:"background"`
	AutoAdjustPen   bool        `json:"auto_adjust_pen"`
	DefaultPenColor *draw.Color `json:"default_pen_color,omitempty"`
	Pinned          bool        `json:"pinned,omitempty"`
}

// DefaultPen returns the pen color installed when switching onto this
// board with auto-adjust enabled.
func (s Spec) DefaultPen() draw.Color {
	if s.DefaultPenColor != nil {
		return *s.DefaultPenColor
	}
	return s.Background.ContrastPen()
}

// TransparentSpec is the always-present overlay board.
func TransparentSpec() Spec {
	return Spec{ID: TransparentID, Name: "Transparent"}
}

// WhiteboardSpec is the canonical opaque white board.
func WhiteboardSpec() Spec {
	black := draw.Black
	return Spec{
		ID:              WhiteboardID,
		Name:            "Whiteboard",
		Background:      SolidBackground(draw.White),
		AutoAdjustPen:   true,
		DefaultPenColor: &black,
	}
}

// BlackboardSpec is the canonical opaque black board.
func BlackboardSpec() Spec {
	white := draw.White
	return Spec{
		ID:              BlackboardID,
		Name:            "Blackboard",
		Background:      SolidBackground(draw.Black),
		AutoAdjustPen:   true,
		DefaultPenColor: &white,
	}
}

// Board ties a spec to its pages.
type Board struct {
	Spec  Spec
	Pages *draw.BoardPages
}

// NewBoard returns a board with a single empty page.
func NewBoard(spec Spec) *Board {
	return &Board{Spec: spec, Pages: draw.NewBoardPages()}
}

// ActiveFrame returns the board's active page frame.
func (b *Board) ActiveFrame() *draw.Frame {
	return b.Pages.ActiveFrame()
}

// HasPersistableData reports whether any page carries data worth saving.
func (b *Board) HasPersistableData() bool {
	return b.Pages.HasPersistableData()
}
