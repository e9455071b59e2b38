// Package session persists the annotation state between runs: every
// board's pages, the active positions, and the tool settings, as a
// versioned JSON snapshot written atomically with size caps in both
// directions.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/devmobasa/wayscriber/internal/board"
	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/input"
)

// CurrentVersion is the snapshot format version this build writes.
// Version 1 files are upgraded on read; see upgrade.go.
const CurrentVersion = 2

// Snapshot is the on-disk session document.
type Snapshot struct {
	Version      int             `json:"version"`
	InstanceID   string          `json:"instance_id,omitempty"`
	LastModified time.Time       `json:"last_modified"`
	ActiveBoard  string          `json:"active_board"`
	Boards       []BoardSnapshot `json:"boards"`
	Tool         ToolSnapshot    `json:"tool"`
}

// BoardSnapshot carries one board's spec and pages.
type BoardSnapshot struct {
	Spec       board.Spec    `json:"spec"`
	Pages      []*draw.Frame `json:"pages"`
	ActivePage int           `json:"active_page"`
}

// ToolSnapshot records the pen and tool settings restored on load.
type ToolSnapshot struct {
	Tool              input.Tool          `json:"tool"`
	ToolOverride      *input.Tool         `json:"tool_override,omitempty"`
	Color             draw.Color          `json:"color"`
	Thickness         float64             `json:"thickness"`
	EraserSize        float64             `json:"eraser_size"`
	EraserKind        draw.EraserKind     `json:"eraser_kind"`
	EraserMode        draw.EraserMode     `json:"eraser_mode"`
	MarkerOpacity     float64             `json:"marker_opacity"`
	FillEnabled       bool                `json:"fill_enabled"`
	FontSize          float64             `json:"font_size"`
	Font              draw.FontDescriptor `json:"font"`
	TextBackground    bool                `json:"text_background"`
	ArrowHeadLength   float64             `json:"arrow_head_length"`
	ArrowHeadAngle    float64             `json:"arrow_head_angle"`
	ArrowHeadAtEnd    bool                `json:"arrow_head_at_end"`
	ArrowLabelEnabled bool                `json:"arrow_label_enabled"`
	StepLabelEnabled  bool                `json:"step_label_enabled"`
	PreviousPenColor  *draw.Color         `json:"previous_pen_color,omitempty"`
	StatusBar         bool                `json:"status_bar"`
}

// Capture builds a snapshot from the live state. Each page's history is
// clamped to historyRetention first (0 drops history entirely), on the
// live frames, so what is serialized matches what stays in memory.
func Capture(s *input.State, historyRetention int) *Snapshot {
	for _, b := range s.Boards.Boards() {
		for _, page := range b.Pages.Pages() {
			page.TrimHistory(historyRetention)
		}
	}

	snap := &Snapshot{
		Version:      CurrentVersion,
		InstanceID:   uuid.NewString(),
		LastModified: time.Now().UTC(),
		ActiveBoard:  s.Boards.ActiveID(),
		Tool:         captureTool(s),
	}
	for _, b := range s.Boards.Boards() {
		snap.Boards = append(snap.Boards, BoardSnapshot{
			Spec:       b.Spec,
			Pages:      b.Pages.Pages(),
			ActivePage: b.Pages.ActiveIndex(),
		})
	}
	return snap
}

func captureTool(s *input.State) ToolSnapshot {
	ts := ToolSnapshot{
		Tool:              s.Tool,
		Color:             s.CurrentColor,
		Thickness:         s.Thickness,
		EraserSize:        s.EraserSize,
		EraserKind:        s.EraserKind,
		EraserMode:        s.EraserMode,
		MarkerOpacity:     s.MarkerOpacity,
		FillEnabled:       s.FillEnabled,
		FontSize:          s.FontSize,
		Font:              s.Font,
		TextBackground:    s.TextBackground,
		ArrowHeadLength:   s.ArrowHeadLength,
		ArrowHeadAngle:    s.ArrowHeadAngle,
		ArrowHeadAtEnd:    s.ArrowHeadAtEnd,
		ArrowLabelEnabled: s.ArrowLabelEnabled,
		StepLabelEnabled:  s.StepLabelEnabled,
		PreviousPenColor:  s.Boards.PreviousPenColor(),
		StatusBar:         s.UI.StatusBar,
	}
	if t, ok := s.ToolOverride(); ok {
		ts.ToolOverride = &t
	}
	return ts
}

// Apply restores a snapshot into the live state. Frames are truncated to
// maxShapesPerFrame (0 means unlimited) and the arrow and step counters
// resync to the highest label seen.
func Apply(s *input.State, snap *Snapshot, maxShapesPerFrame int) {
	if snap == nil {
		return
	}
	for _, bs := range snap.Boards {
		if maxShapesPerFrame > 0 {
			for _, page := range bs.Pages {
				page.TruncateShapes(maxShapesPerFrame)
			}
		}
		if _, ok := s.Boards.Board(bs.Spec.ID); !ok {
			if _, err := s.Boards.CreateBoard(bs.Spec); err != nil {
				continue
			}
		}
		active := bs.ActivePage
		if active < 0 || active >= len(bs.Pages) {
			active = 0
		}
		s.Boards.ReplacePages(bs.Spec.ID, draw.BoardPagesFrom(bs.Pages, active))
	}

	// Switch first: the board's auto-contrast pen policy runs on switch
	// and must not clobber the restored pen color.
	s.SwitchBoard(snap.ActiveBoard)
	applyTool(s, snap.Tool)
	s.ResyncLabelCounters()
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

func applyTool(s *input.State, ts ToolSnapshot) {
	s.Tool = ts.Tool
	if ts.ToolOverride != nil {
		s.SetToolOverride(*ts.ToolOverride)
	} else {
		s.ClearToolOverride()
	}
	s.CurrentColor = ts.Color
	s.SetThickness(ts.Thickness)
	s.EraserSize = ts.EraserSize
	s.EraserKind = ts.EraserKind
	s.EraserMode = ts.EraserMode
	s.MarkerOpacity = ts.MarkerOpacity
	s.FillEnabled = ts.FillEnabled
	s.FontSize = ts.FontSize
	s.Font = ts.Font.Normalize()
	s.TextBackground = ts.TextBackground
	s.ArrowHeadLength = ts.ArrowHeadLength
	s.ArrowHeadAngle = ts.ArrowHeadAngle
	s.ArrowHeadAtEnd = ts.ArrowHeadAtEnd
	s.ArrowLabelEnabled = ts.ArrowLabelEnabled
	s.StepLabelEnabled = ts.StepLabelEnabled
	s.Boards.SetPreviousPenColor(ts.PreviousPenColor)
	s.UI.StatusBar = ts.StatusBar
}

// HasPersistableData reports whether the snapshot carries anything worth
// keeping on disk.
func (sn *Snapshot) HasPersistableData() bool {
	for _, b := range sn.Boards {
		for _, page := range b.Pages {
			if page.Len() > 0 {
				return true
			}
		}
	}
	return false
}
