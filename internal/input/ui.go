package input

import (
	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
)

// HelpOverlayView selects which help layout is shown.
type HelpOverlayView int

const (
	HelpQuick HelpOverlayView = iota
	HelpFull
)

// Toggle flips between the quick card and the full reference.
func (v HelpOverlayView) Toggle() HelpOverlayView {
	if v == HelpQuick {
		return HelpFull
	}
	return HelpQuick
}

// ContextMenuTarget says what a context menu acts on.
type ContextMenuTarget int

const (
	// MenuCanvas is the menu opened on empty canvas.
	MenuCanvas ContextMenuTarget = iota
	// MenuShape is the menu opened on a shape.
	MenuShape
)

// ContextMenuState is the open right-click menu, if any.
type ContextMenuState struct {
	Open     bool
	Target   ContextMenuTarget
	ShapeID  draw.ShapeID
	Position geometry.Point
	Hovered  int
}

// PropertiesPanelState shows editable properties of the selection.
type PropertiesPanelState struct {
	Open    bool
	Focused int
}

// BoardPickerState is the modal board and page chooser.
type BoardPickerState struct {
	Open         bool
	BoardRow     int
	PageColumn   int
	RenameActive bool
	RenameBuffer *TextBuffer
}

// CommandPaletteState is the fuzzy command launcher.
type CommandPaletteState struct {
	Open     bool
	Query    *TextBuffer
	Selected int
}

// ColorPopupState is the quick color swatch popup.
type ColorPopupState struct {
	Open     bool
	Position geometry.Point
	Hovered  int
}

// HelpOverlayState is the keybinding help overlay.
type HelpOverlayState struct {
	Open bool
	View HelpOverlayView
	Page int
}

// UIState groups the transient overlay panels. None of it persists.
type UIState struct {
	ContextMenu    ContextMenuState
	Properties     PropertiesPanelState
	BoardPicker    BoardPickerState
	CommandPalette CommandPaletteState
	ColorPopup     ColorPopupState
	Help           HelpOverlayState
	StatusBar      bool
}

// AnyModalOpen reports whether a panel that captures keyboard focus is
// showing.
func (u *UIState) AnyModalOpen() bool {
	return u.BoardPicker.Open || u.CommandPalette.Open || u.Help.Open ||
		u.ContextMenu.Open || u.ColorPopup.Open
}

// CloseAll dismisses every open panel and reports whether any was open.
func (u *UIState) CloseAll() bool {
	was := u.AnyModalOpen() || u.Properties.Open
	u.ContextMenu = ContextMenuState{}
	u.Properties = PropertiesPanelState{}
	u.BoardPicker = BoardPickerState{}
	u.CommandPalette = CommandPaletteState{}
	u.ColorPopup = ColorPopupState{}
	u.Help = HelpOverlayState{}
	return was
}
