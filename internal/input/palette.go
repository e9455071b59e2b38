package input

import (
	"strings"

	"github.com/devmobasa/wayscriber/internal/draw"
)

// PaletteCommand is one launchable entry in the command palette.
type PaletteCommand struct {
	Label  string
	Action Action
}

var staticPaletteCommands = []PaletteCommand{
	{Label: "Undo", Action: Action{Kind: ActionUndo}},
	{Label: "Redo", Action: Action{Kind: ActionRedo}},
	{Label: "Clear page", Action: Action{Kind: ActionClearPage}},
	{Label: "Clear unlocked shapes", Action: Action{Kind: ActionClearUnlocked}},
	{Label: "New page", Action: Action{Kind: ActionNewPage}},
	{Label: "Next page", Action: Action{Kind: ActionNextPage}},
	{Label: "Previous page", Action: Action{Kind: ActionPrevPage}},
	{Label: "Select all", Action: Action{Kind: ActionSelectAll}},
	{Label: "Delete selection", Action: Action{Kind: ActionDeleteSelection}},
	{Label: "Duplicate selection", Action: Action{Kind: ActionDuplicateSelection}},
	{Label: "Toggle status bar", Action: Action{Kind: ActionToggleStatusBar}},
	{Label: "Toggle click-through", Action: Action{Kind: ActionToggleOverlay}},
	{Label: "Toggle frozen background", Action: Action{Kind: ActionToggleFrozen}},
	{Label: "Reset zoom", Action: Action{Kind: ActionZoomReset}},
}

// PaletteCommands returns the palette entries matching query, in
// registry order: static commands, then a tool entry per tool, then a
// switch entry per board. Every space-separated term of the query must
// appear in the label, case-insensitive.
func (s *State) PaletteCommands(query string) []PaletteCommand {
	all := make([]PaletteCommand, 0, len(staticPaletteCommands)+16)
	all = append(all, staticPaletteCommands...)
	for _, t := range []Tool{
		ToolPen, ToolMarker, ToolEraser, ToolLine, ToolRect, ToolEllipse,
		ToolArrow, ToolHighlight, ToolText, ToolStickyNote, ToolStepMarker, ToolSelect,
	} {
		all = append(all, PaletteCommand{
			Label:  "Tool: " + t.Label(),
			Action: Action{Kind: ActionSelectTool, Tool: t},
		})
	}
	for _, b := range s.Boards.Boards() {
		all = append(all, PaletteCommand{
			Label:  "Switch to board: " + b.Spec.Name,
			Action: Action{Kind: ActionSwitchBoard, Board: b.Spec.ID},
		})
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return all
	}
	matched := all[:0]
	for _, c := range all {
		label := strings.ToLower(c.Label)
		ok := true
		for _, term := range terms {
			if !strings.Contains(label, term) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, c)
		}
	}
	return matched
}

var shapeMenuEntries = []string{
	"Properties", "Duplicate", "Delete", "Bring to front", "Send to back", "Lock", "Unlock",
}

var canvasMenuEntries = []string{
	"New page", "Clear page", "Clear unlocked shapes", "Select all", "Toggle status bar",
}

// ContextMenuEntries lists the open menu's rows for rendering and
// keyboard navigation.
func (s *State) ContextMenuEntries() []string {
	if !s.UI.ContextMenu.Open {
		return nil
	}
	if s.UI.ContextMenu.Target == MenuShape {
		return shapeMenuEntries
	}
	return canvasMenuEntries
}

func (s *State) runContextMenuEntry(index int) {
	target := s.UI.ContextMenu.Target
	s.UI.ContextMenu = ContextMenuState{}
	if target == MenuShape {
		switch index {
		case 0:
			s.OpenPropertiesPanel()
		case 1:
			s.DuplicateSelection()
		case 2:
			s.DeleteSelection()
		case 3:
			s.MoveSelectionToFront()
		case 4:
			s.MoveSelectionToBack()
		case 5:
			s.SetSelectionLocked(true)
		case 6:
			s.SetSelectionLocked(false)
		}
	} else {
		switch index {
		case 0:
			s.Apply(Action{Kind: ActionNewPage})
		case 1:
			s.Apply(Action{Kind: ActionClearPage})
		case 2:
			s.Apply(Action{Kind: ActionClearUnlocked})
		case 3:
			s.SelectAll()
		case 4:
			s.Apply(Action{Kind: ActionToggleStatusBar})
		}
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

func paletteIndex(c draw.Color) int {
	for i, p := range draw.Palette {
		if p == c {
			return i
		}
	}
	return 0
}

func (s *State) colorPopupKey(k Key) {
	popup := &s.UI.ColorPopup
	switch k.Name {
	case KeyEscape:
		s.UI.ColorPopup = ColorPopupState{}
	case KeyLeft:
		if popup.Hovered > 0 {
			popup.Hovered--
		}
	case KeyRight:
		if popup.Hovered < len(draw.Palette)-1 {
			popup.Hovered++
		}
	case KeyReturn:
		s.SetColor(draw.Palette[popup.Hovered])
		s.UI.ColorPopup = ColorPopupState{}
		s.markStatusBar()
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

func (s *State) contextMenuKey(k Key) {
	menu := &s.UI.ContextMenu
	entries := s.ContextMenuEntries()
	switch k.Name {
	case KeyEscape:
		s.UI.ContextMenu = ContextMenuState{}
	case KeyUp:
		if menu.Hovered > 0 {
			menu.Hovered--
		}
	case KeyDown:
		if menu.Hovered < len(entries)-1 {
			menu.Hovered++
		}
	case KeyReturn:
		s.runContextMenuEntry(menu.Hovered)
		return
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}
