package input

import (
	"unicode"

	"github.com/devmobasa/wayscriber/internal/draw"
)

// OnKeyPress routes a key press. Modal panels capture keys first, then
// the inline text editor, then global bindings.
func (s *State) OnKeyPress(k Key, mods Modifiers) {
	s.applyModifiers(k, mods, true)
	s.CancelDelayedHistory()

	if s.machine.kind == stateTextInput {
		s.textInputKey(k, mods)
		return
	}
	if s.UI.BoardPicker.Open {
		s.boardPickerKey(k)
		return
	}
	if s.UI.CommandPalette.Open {
		s.commandPaletteKey(k)
		return
	}
	if s.UI.ContextMenu.Open {
		s.contextMenuKey(k)
		return
	}
	if s.UI.ColorPopup.Open {
		s.colorPopupKey(k)
		return
	}
	if s.UI.Properties.Open {
		s.propertiesPanelKey(k)
		return
	}
	if s.UI.AnyModalOpen() {
		switch k.Name {
		case KeyEscape, KeyReturn:
			s.UI.CloseAll()
			s.Dirty.MarkFull()
			s.NeedsRedraw = true
		case KeyPageDown, KeyDown:
			if s.UI.Help.Open {
				s.UI.Help.Page++
				s.Dirty.MarkFull()
			}
		case KeyPageUp, KeyUp:
			if s.UI.Help.Open && s.UI.Help.Page > 0 {
				s.UI.Help.Page--
				s.Dirty.MarkFull()
			}
		}
		return
	}

	switch k.Name {
	case KeyEscape:
		s.escape()
		return
	case KeyDelete, KeyBackspace:
		if n := s.DeleteSelection(); n > 0 {
			s.NeedsRedraw = true
		}
		return
	case KeyTab:
		s.UI.BoardPicker = BoardPickerState{Open: true, BoardRow: s.Boards.ActiveIndex()}
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return
	case KeyF1:
		s.UI.Help.Open = !s.UI.Help.Open
		s.UI.Help.Page = 0
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return
	case KeyHome:
		s.MoveSelectionToFront()
		return
	case KeyEnd:
		s.MoveSelectionToBack()
		return
	case KeyPageUp:
		s.switchPage(-1, mods.Ctrl)
		return
	case KeyPageDown:
		s.switchPage(1, mods.Ctrl)
		return
	case KeyUp:
		s.AdjustThickness(1)
		return
	case KeyDown:
		s.AdjustThickness(-1)
		return
	}

	if k.Name != KeyChar {
		return
	}

	if mods.Ctrl {
		s.ctrlChar(k.Char, mods)
		return
	}
	s.plainChar(k.Char)
}

// OnKeyRelease only updates modifier tracking.
func (s *State) OnKeyRelease(k Key, mods Modifiers) {
	s.applyModifiers(k, mods, false)
}

func (s *State) applyModifiers(k Key, mods Modifiers, down bool) {
	s.Modifiers = mods
	switch k.Name {
	case KeyShift:
		s.Modifiers.Shift = down
	case KeyCtrl:
		s.Modifiers.Ctrl = down
	case KeyAlt:
		s.Modifiers.Alt = down
	}
}

// escape unwinds one layer at a time: interaction, zoom, selection,
// then the overlay itself.
func (s *State) escape() {
	if s.machine.kind != stateIdle {
		s.CancelInteraction()
		return
	}
	if s.Zoom.Active {
		s.Zoom.Reset()
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return
	}
	if !s.Selection.IsEmpty() {
		s.markSelection()
		s.Selection.Clear()
		s.NeedsRedraw = true
		return
	}
	s.ExitRequested = true
}

func (s *State) ctrlChar(r rune, mods Modifiers) {
	switch unicode.ToLower(r) {
	case 'z':
		if mods.Shift {
			s.Redo()
		} else {
			s.Undo()
		}
	case 'y':
		s.Redo()
	case 'a':
		s.SelectAll()
	case 'd':
		if s.DuplicateSelection() > 0 {
			s.NeedsRedraw = true
		}
	case 'l':
		s.toggleSelectionLock()
	case 'n':
		s.Boards.ActivePages().NewPage()
		s.afterPageSwitch()
	case 'p':
		s.UI.CommandPalette = CommandPaletteState{Open: true, Query: NewTextBuffer("")}
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
	case '0':
		s.Zoom.Reset()
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
	default:
		if r >= '1' && r <= '9' {
			s.switchBoardAt(int(r - '1'))
		}
	}
}

func (s *State) plainChar(r rune) {
	if tool, ok := toolForKey(unicode.ToLower(r)); ok {
		s.SetTool(tool)
		s.markStatusBar()
		return
	}
	switch r {
	case '+', '=':
		s.AdjustThickness(1)
	case '-', '_':
		s.AdjustThickness(-1)
	case 'c':
		s.clearFrame(true)
	case 'C':
		s.clearFrame(false)
	case 'f':
		s.RequestFrozenToggle()
	case 'i':
		s.OpenPropertiesPanel()
	case 'x':
		s.UI.ColorPopup = ColorPopupState{
			Open:     true,
			Position: s.Mouse,
			Hovered:  paletteIndex(s.CurrentColor),
		}
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
	default:
		if r >= '1' && r <= '9' {
			idx := int(r - '1')
			if idx < len(draw.Palette) {
				s.SetColor(draw.Palette[idx])
			}
		} else if r == '0' && len(draw.Palette) >= 10 {
			s.SetColor(draw.Palette[9])
		}
	}
}

func toolForKey(r rune) (Tool, bool) {
	switch r {
	case 'p':
		return ToolPen, true
	case 'm':
		return ToolMarker, true
	case 'e':
		return ToolEraser, true
	case 'l':
		return ToolLine, true
	case 'r':
		return ToolRect, true
	case 'o':
		return ToolEllipse, true
	case 'a':
		return ToolArrow, true
	case 'h':
		return ToolHighlight, true
	case 't':
		return ToolText, true
	case 'n':
		return ToolStickyNote, true
	case 'k':
		return ToolStepMarker, true
	case 'v':
		return ToolSelect, true
	}
	return "", false
}

// SelectAll selects every unlocked shape in z-order.
func (s *State) SelectAll() {
	frame := s.ActiveFrame()
	ids := make([]draw.ShapeID, 0, frame.Len())
	for _, ds := range frame.Shapes() {
		if !ds.Locked {
			ids = append(ids, ds.ID)
		}
	}
	s.markSelection()
	s.Selection.Set(ids)
	s.markSelection()
	s.NeedsRedraw = true
}

func (s *State) toggleSelectionLock() {
	frame := s.ActiveFrame()
	anyUnlocked := false
	for _, id := range s.Selection.IDs() {
		if ds, ok := frame.Get(id); ok && !ds.Locked {
			anyUnlocked = true
			break
		}
	}
	s.SetSelectionLocked(anyUnlocked)
}

// clearFrame wipes the current page. unlockedOnly keeps locked shapes.
func (s *State) clearFrame(unlockedOnly bool) {
	if s.ActiveFrame().Clear(unlockedOnly) == 0 {
		return
	}
	s.Selection.Clear()
	s.invalidateHitCache()
	s.markSessionDirty()
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

// switchPage flips pages, or reorders the current page when move is
// set.
func (s *State) switchPage(dir int, move bool) {
	pages := s.Boards.ActivePages()
	if move {
		from := pages.ActiveIndex()
		if pages.MovePage(from, from+dir) {
			s.afterPageSwitch()
		}
		return
	}
	var ok bool
	if dir > 0 {
		ok = pages.NextPage()
	} else {
		ok = pages.PrevPage()
	}
	if ok {
		s.afterPageSwitch()
	}
}

func (s *State) afterPageSwitch() {
	s.CancelInteraction()
	s.Selection.Clear()
	s.invalidateHitCache()
	s.ResyncLabelCounters()
	s.markSessionDirty()
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

func (s *State) switchBoardAt(index int) {
	boards := s.Boards.Boards()
	if index < 0 || index >= len(boards) {
		return
	}
	s.SwitchBoard(boards[index].Spec.ID)
}

func (s *State) boardPickerKey(k Key) {
	picker := &s.UI.BoardPicker

	if picker.RenameActive {
		switch k.Name {
		case KeyEscape:
			picker.RenameActive = false
			picker.RenameBuffer = nil
		case KeyReturn:
			boards := s.Boards.Boards()
			if picker.BoardRow < len(boards) {
				s.Boards.RenameBoard(boards[picker.BoardRow].Spec.ID, picker.RenameBuffer.String())
				s.markSessionDirty()
			}
			picker.RenameActive = false
			picker.RenameBuffer = nil
		case KeyBackspace:
			picker.RenameBuffer.DeleteGrapheme()
		case KeyChar:
			picker.RenameBuffer.Append(string(k.Char))
		}
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return
	}

	switch k.Name {
	case KeyEscape, KeyTab:
		s.UI.BoardPicker = BoardPickerState{}
	case KeyUp:
		if picker.BoardRow > 0 {
			picker.BoardRow--
			picker.PageColumn = 0
		}
	case KeyDown:
		if picker.BoardRow < s.Boards.BoardCount()-1 {
			picker.BoardRow++
			picker.PageColumn = 0
		}
	case KeyLeft:
		if picker.PageColumn > 0 {
			picker.PageColumn--
		}
	case KeyRight:
		boards := s.Boards.Boards()
		if picker.BoardRow < len(boards) {
			if picker.PageColumn < boards[picker.BoardRow].Pages.PageCount()-1 {
				picker.PageColumn++
			}
		}
	case KeyReturn:
		boards := s.Boards.Boards()
		if picker.BoardRow < len(boards) {
			target := boards[picker.BoardRow]
			page := picker.PageColumn
			s.UI.BoardPicker = BoardPickerState{}
			s.SwitchBoard(target.Spec.ID)
			if target.Pages.SwitchToPage(page) {
				s.afterPageSwitch()
			}
		}
	case KeyF2:
		boards := s.Boards.Boards()
		if picker.BoardRow < len(boards) {
			picker.RenameActive = true
			picker.RenameBuffer = NewTextBuffer(boards[picker.BoardRow].Spec.Name)
		}
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

func (s *State) commandPaletteKey(k Key) {
	palette := &s.UI.CommandPalette
	switch k.Name {
	case KeyEscape:
		s.UI.CommandPalette = CommandPaletteState{}
	case KeyReturn:
		matches := s.PaletteCommands(palette.Query.String())
		if len(matches) == 0 {
			break
		}
		act := matches[min(palette.Selected, len(matches)-1)].Action
		s.UI.CommandPalette = CommandPaletteState{}
		if err := s.Apply(act); err != nil {
			s.PushToast(ToastError, err.Error())
		}
	case KeyUp:
		if palette.Selected > 0 {
			palette.Selected--
		}
	case KeyDown:
		if palette.Selected < len(s.PaletteCommands(palette.Query.String()))-1 {
			palette.Selected++
		}
	case KeyBackspace:
		palette.Query.DeleteGrapheme()
		palette.Selected = 0
	case KeyChar:
		palette.Query.Append(string(k.Char))
		palette.Selected = 0
	}
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

func (s *State) textInputKey(k Key, mods Modifiers) {
	switch k.Name {
	case KeyEscape:
		s.clearTextPreviewDirty()
		s.machine = machineState{kind: stateIdle}
	case KeyReturn:
		if mods.Shift {
			s.machine.buffer.Append("\n")
			s.updateTextPreviewDirty()
			break
		}
		s.commitTextInput()
	case KeyBackspace:
		if s.machine.buffer.DeleteGrapheme() {
			s.updateTextPreviewDirty()
		}
	case KeyTab:
		s.machine.buffer.Append("    ")
		s.updateTextPreviewDirty()
	case KeyChar:
		if mods.Ctrl {
			break
		}
		s.machine.buffer.Append(string(k.Char))
		s.updateTextPreviewDirty()
	}
	s.NeedsRedraw = true
}

// OnPointerScroll adjusts zoom with Ctrl held, thickness otherwise.
func (s *State) OnPointerScroll(e PointerScroll) {
	if !e.Vertical {
		return
	}
	delta := e.DeltaDiscrete
	if delta == 0 {
		if e.DeltaAbsolute > 0 {
			delta = 1
		} else if e.DeltaAbsolute < 0 {
			delta = -1
		}
	}
	if delta == 0 {
		return
	}

	if s.Modifiers.Ctrl {
		factor := 1.25
		if delta > 0 {
			factor = 1 / factor
		}
		s.Zoom.ZoomAtScreenPoint(factor, float64(s.Mouse.X), float64(s.Mouse.Y), s.screenW, s.screenH)
		s.Dirty.MarkFull()
		s.NeedsRedraw = true
		return
	}
	s.AdjustThickness(float64(-delta))
}
