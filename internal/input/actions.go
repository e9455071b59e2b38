package input

import (
	"fmt"
)

// ActionKind enumerates the commands that arrive from outside the
// keyboard and pointer paths: the control socket and toolbar buttons.
type ActionKind int

const (
	ActionUndo ActionKind = iota
	ActionRedo
	ActionClearPage
	ActionClearUnlocked
	ActionSelectTool
	ActionSwitchBoard
	ActionNextPage
	ActionPrevPage
	ActionNewPage
	ActionDeleteSelection
	ActionSelectAll
	ActionDuplicateSelection
	ActionToggleOverlay
	ActionToggleStatusBar
	ActionToggleFrozen
	ActionZoomReset
)

// Action is one externally requested command.
type Action struct {
	Kind  ActionKind
	Steps int    // undo/redo repeat count, 0 means 1
	Tool  Tool   // ActionSelectTool
	Board string // ActionSwitchBoard
}

// Apply runs an action against the state. It must be called on the
// event-loop goroutine, like every other State mutation.
func (s *State) Apply(a Action) error {
	switch a.Kind {
	case ActionUndo:
		s.runHistorySteps(historyUndo, max(1, a.Steps))
		return nil
	case ActionRedo:
		s.runHistorySteps(historyRedo, max(1, a.Steps))
		return nil
	case ActionClearPage:
		s.clearFrame(false)
		return nil
	case ActionClearUnlocked:
		s.clearFrame(true)
		return nil
	case ActionSelectTool:
		if !validTool(a.Tool) {
			return fmt.Errorf("unknown tool %q", a.Tool)
		}
		s.SetTool(a.Tool)
		return nil
	case ActionSwitchBoard:
		if !s.SwitchBoard(a.Board) {
			return fmt.Errorf("no board %q", a.Board)
		}
		return nil
	case ActionNextPage:
		s.switchPage(1, false)
		return nil
	case ActionPrevPage:
		s.switchPage(-1, false)
		return nil
	case ActionNewPage:
		s.Boards.ActivePages().NewPage()
		s.afterPageSwitch()
		s.markSessionDirty()
		return nil
	case ActionDeleteSelection:
		s.DeleteSelection()
		return nil
	case ActionSelectAll:
		s.SelectAll()
		return nil
	case ActionDuplicateSelection:
		s.DuplicateSelection()
		return nil
	case ActionToggleOverlay:
		s.Clickthrough = !s.Clickthrough
		s.CancelInteraction()
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return nil
	case ActionToggleStatusBar:
		s.UI.StatusBar = !s.UI.StatusBar
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		s.markSessionDirty()
		return nil
	case ActionToggleFrozen:
		s.RequestFrozenToggle()
		return nil
	case ActionZoomReset:
		if s.Zoom.Active {
			s.Zoom.Reset()
			s.Dirty.MarkFull()
			s.NeedsRedraw = true
		}
		return nil
	default:
		return fmt.Errorf("unknown action %d", a.Kind)
	}
}

func validTool(t Tool) bool {
	switch t {
	case ToolPen, ToolMarker, ToolEraser, ToolLine, ToolRect, ToolEllipse,
		ToolArrow, ToolHighlight, ToolText, ToolStickyNote, ToolStepMarker, ToolSelect:
		return true
	}
	return false
}
