// Package ipc exposes a unix-socket control channel for a running
// wayscriber instance. Messages are single-line JSON; each command gets
// one response on the same connection.
package ipc

import (
	"fmt"
)

// CommandName enumerates the control commands.
type CommandName string

const (
	CmdUndo          CommandName = "undo"
	CmdRedo          CommandName = "redo"
	CmdClear         CommandName = "clear"
	CmdTool          CommandName = "tool"
	CmdBoard         CommandName = "board"
	CmdCapture       CommandName = "capture"
	CmdToggleOverlay CommandName = "toggle-overlay"
	CmdStatus        CommandName = "status"
)

// Command is one control request.
type Command struct {
	Name CommandName `json:"command"`

	// Tool names the tool for CmdTool.
	Tool string `json:"tool,omitempty"`
	// Board names the board id for CmdBoard.
	Board string `json:"board,omitempty"`
	// Steps is how many undo/redo steps to run; 0 means 1.
	Steps int `json:"steps,omitempty"`
	// CaptureType is fullscreen or selection, for CmdCapture.
	CaptureType string `json:"capture_type,omitempty"`
	// Destination is file, clipboard or both, for CmdCapture.
	Destination string `json:"destination,omitempty"`
}

// Validate checks the command's required fields.
func (c Command) Validate() error {
	switch c.Name {
	case CmdUndo, CmdRedo, CmdClear, CmdToggleOverlay, CmdStatus:
		return nil
	case CmdTool:
		if c.Tool == "" {
			return fmt.Errorf("tool command requires a tool name")
		}
		return nil
	case CmdBoard:
		if c.Board == "" {
			return fmt.Errorf("board command requires a board id")
		}
		return nil
	case CmdCapture:
		switch c.Destination {
		case "", "file", "clipboard", "both":
		default:
			return fmt.Errorf("unknown capture destination %q", c.Destination)
		}
		switch c.CaptureType {
		case "", "fullscreen", "selection":
		default:
			return fmt.Errorf("unknown capture type %q", c.CaptureType)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", c.Name)
	}
}

// Response answers one command.
type Response struct {
	OK     bool    `json:"ok"`
	Error  string  `json:"error,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// Status reports the running instance's state for CmdStatus.
type Status struct {
	Board      string  `json:"board"`
	Page       int     `json:"page"` // 1-based
	PageCount  int     `json:"page_count"`
	Tool       string  `json:"tool"`
	Thickness  float64 `json:"thickness"`
	ShapeCount int     `json:"shape_count"`
	UndoDepth  int     `json:"undo_depth"`
	RedoDepth  int     `json:"redo_depth"`
	Visible    bool    `json:"visible"`
}

// Ok is the plain success response.
func Ok() Response { return Response{OK: true} }

// Fail wraps an error into a response.
func Fail(err error) Response { return Response{Error: err.Error()} }

// Failf formats an error response.
func Failf(format string, args ...interface{}) Response {
	return Response{Error: fmt.Sprintf(format, args...)}
}
