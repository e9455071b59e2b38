package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/input"
)

const (
	panelPad    = 16
	menuRowH    = 26
	helpRowsPer = 14
	swatchSize  = 24
	swatchGap   = 6
)

var (
	panelFill    = color.NRGBA{0x18, 0x18, 0x18, 0xe8}
	panelBorder  = color.NRGBA{0x50, 0x50, 0x50, 0xff}
	rowHighlight = color.NRGBA{0x30, 0x50, 0x80, 0xe8}
	textBright   = color.NRGBA{0xf0, 0xf0, 0xf0, 0xff}
	textDim      = color.NRGBA{0xa0, 0xa0, 0xa0, 0xff}
)

var helpQuickLines = []string{
	"Left drag        draw with the active tool",
	"Right click      context menu",
	"Tab              board and page picker",
	"Ctrl+Z / Ctrl+Y  undo / redo",
	"Ctrl+P           command palette",
	"F1               toggle this help",
}

var helpFullLines = []string{
	"Left drag        draw with the active tool",
	"Shift+drag       snap lines and arrows to 15 degrees",
	"Ctrl+drag        draw a rectangle with any tool",
	"Alt+resize       resize around the shape center",
	"Right click      context menu (shape or canvas)",
	"Double click     edit text under the cursor",
	"Tab              board and page picker",
	"F2 (picker)      rename the highlighted board",
	"Ctrl+Z / Ctrl+Y  undo / redo (hold to repeat)",
	"Ctrl+A           select all",
	"Ctrl+D           duplicate selection",
	"Delete           delete selection",
	"Ctrl+P           command palette",
	"Page Up/Down     previous / next page",
	"+ / -            zoom in / out",
	"F                freeze / unfreeze the screen",
	"I                selection properties",
	"X                color popup",
	"Escape           cancel, deselect, close panels",
	"F1               toggle this help",
}

func (r *Renderer) drawString(sub *image.RGBA, x, y int, text string, size float64, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  sub,
		Src:  image.NewUniform(col),
		Face: draw.Face(draw.DefaultFont(), size*float64(r.scale)),
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func (r *Renderer) panel(sub *image.RGBA, box image.Rectangle) {
	fillRect(sub, box, panelFill)
	drawRectOutline(sub, box, panelBorder, 1)
}

func (r *Renderer) paintHelp(s *input.State, sub *image.RGBA) {
	lines := helpQuickLines
	if s.UI.Help.View == input.HelpFull {
		lines = helpFullLines
	}
	start := s.UI.Help.Page * helpRowsPer
	if start >= len(lines) {
		start = 0
	}
	end := min(start+helpRowsPer, len(lines))
	visible := lines[start:end]

	w, h := s.ScreenSize()
	pw := 460 * r.scale
	ph := (2*panelPad + menuRowH*(len(visible)+1)) * r.scale
	x0 := (w*r.scale - pw) / 2
	y0 := (h*r.scale - ph) / 2
	box := image.Rect(x0, y0, x0+pw, y0+ph)
	r.panel(sub, box)

	title := "Keybindings"
	if len(lines) > helpRowsPer {
		title = fmt.Sprintf("Keybindings (%d/%d)", s.UI.Help.Page+1,
			(len(lines)+helpRowsPer-1)/helpRowsPer)
	}
	r.drawString(sub, x0+panelPad*r.scale, y0+(panelPad+18)*r.scale, title, 16, textBright)
	for i, line := range visible {
		y := y0 + (panelPad+menuRowH*(i+1)+18)*r.scale
		r.drawString(sub, x0+panelPad*r.scale, y, line, 14, textDim)
	}
}

func (r *Renderer) paintBoardPicker(s *input.State, sub *image.RGBA) {
	picker := s.UI.BoardPicker
	boards := s.Boards.Boards()

	w, h := s.ScreenSize()
	pw := 420 * r.scale
	ph := (2*panelPad + menuRowH*(len(boards)+1)) * r.scale
	x0 := (w*r.scale - pw) / 2
	y0 := (h*r.scale - ph) / 2
	box := image.Rect(x0, y0, x0+pw, y0+ph)
	r.panel(sub, box)

	r.drawString(sub, x0+panelPad*r.scale, y0+(panelPad+18)*r.scale, "Boards", 16, textBright)
	for i, b := range boards {
		rowY := y0 + (panelPad+menuRowH*(i+1))*r.scale
		row := image.Rect(x0+4*r.scale, rowY, x0+pw-4*r.scale, rowY+menuRowH*r.scale)
		if i == picker.BoardRow {
			fillRect(sub, row, rowHighlight)
		}
		name := b.Spec.Name
		if picker.RenameActive && i == picker.BoardRow && picker.RenameBuffer != nil {
			name = picker.RenameBuffer.String() + "_"
		}
		col := textDim
		if i == picker.BoardRow {
			col = textBright
		}
		r.drawString(sub, row.Min.X+8*r.scale, rowY+18*r.scale, name, 14, col)

		pages := fmt.Sprintf("%d/%d", pageMarker(i, picker)+1, b.Pages.PageCount())
		r.drawString(sub, row.Max.X-70*r.scale, rowY+18*r.scale, pages, 14, col)
	}
}

// pageMarker is the page the picker would land on for row i.
func pageMarker(i int, picker input.BoardPickerState) int {
	if i == picker.BoardRow {
		return picker.PageColumn
	}
	return 0
}

func (r *Renderer) paintColorPopup(s *input.State, sub *image.RGBA) {
	popup := s.UI.ColorPopup
	n := len(draw.Palette)
	pw := (2*panelPad + n*(swatchSize+swatchGap) - swatchGap) * r.scale
	ph := (2*panelPad + swatchSize) * r.scale
	x0 := popup.Position.X * r.scale
	y0 := popup.Position.Y * r.scale
	if x0+pw > r.buf.Bounds().Max.X {
		x0 = r.buf.Bounds().Max.X - pw
	}
	if y0+ph > r.buf.Bounds().Max.Y {
		y0 = r.buf.Bounds().Max.Y - ph
	}
	box := image.Rect(x0, y0, x0+pw, y0+ph)
	r.panel(sub, box)

	for i, c := range draw.Palette {
		sx := x0 + (panelPad+i*(swatchSize+swatchGap))*r.scale
		sy := y0 + panelPad*r.scale
		swatch := image.Rect(sx, sy, sx+swatchSize*r.scale, sy+swatchSize*r.scale)
		fillRect(sub, swatch, c.NRGBA())
		border := panelBorder
		if i == popup.Hovered {
			border = textBright
		}
		drawRectOutline(sub, swatch, border, 1+boolInt(i == popup.Hovered))
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *Renderer) paintContextMenu(s *input.State, sub *image.RGBA) {
	menu := s.UI.ContextMenu
	entries := s.ContextMenuEntries()
	if len(entries) == 0 {
		return
	}
	pw := 200 * r.scale
	ph := (2*8 + menuRowH*len(entries)) * r.scale
	x0 := menu.Position.X * r.scale
	y0 := menu.Position.Y * r.scale
	if x0+pw > r.buf.Bounds().Max.X {
		x0 = r.buf.Bounds().Max.X - pw
	}
	if y0+ph > r.buf.Bounds().Max.Y {
		y0 = r.buf.Bounds().Max.Y - ph
	}
	box := image.Rect(x0, y0, x0+pw, y0+ph)
	r.panel(sub, box)

	for i, entry := range entries {
		rowY := y0 + (8+menuRowH*i)*r.scale
		row := image.Rect(x0+2*r.scale, rowY, x0+pw-2*r.scale, rowY+menuRowH*r.scale)
		col := textDim
		if i == menu.Hovered {
			fillRect(sub, row, rowHighlight)
			col = textBright
		}
		r.drawString(sub, row.Min.X+10*r.scale, rowY+18*r.scale, entry, 14, col)
	}
}

func (r *Renderer) paintCommandPalette(s *input.State, sub *image.RGBA) {
	palette := s.UI.CommandPalette
	query := ""
	if palette.Query != nil {
		query = palette.Query.String()
	}
	matches := s.PaletteCommands(query)
	const maxRows = 10
	shown := min(len(matches), maxRows)

	w, _ := s.ScreenSize()
	pw := 480 * r.scale
	ph := (2*panelPad + menuRowH*(shown+1)) * r.scale
	x0 := (w*r.scale - pw) / 2
	y0 := 80 * r.scale
	box := image.Rect(x0, y0, x0+pw, y0+ph)
	r.panel(sub, box)

	r.drawString(sub, x0+panelPad*r.scale, y0+(panelPad+18)*r.scale, "> "+query+"_", 15, textBright)

	selected := min(palette.Selected, len(matches)-1)
	first := 0
	if selected >= maxRows {
		first = selected - maxRows + 1
	}
	for i := 0; i < shown; i++ {
		m := matches[first+i]
		rowY := y0 + (panelPad+menuRowH*(i+1))*r.scale
		row := image.Rect(x0+4*r.scale, rowY, x0+pw-4*r.scale, rowY+menuRowH*r.scale)
		col := textDim
		if first+i == selected {
			fillRect(sub, row, rowHighlight)
			col = textBright
		}
		r.drawString(sub, row.Min.X+8*r.scale, rowY+18*r.scale, m.Label, 14, col)
	}
}

var propertyRowLabels = [input.PropRowCount]string{"Color", "Thickness", "Locked"}

// paintPropertiesPanel docks the selection properties at the top right,
// below the indicator badges.
func (r *Renderer) paintPropertiesPanel(s *input.State, sub *image.RGBA) {
	w, _ := s.ScreenSize()
	pw := 240 * r.scale
	ph := (2*panelPad + menuRowH*(input.PropRowCount+1)) * r.scale
	x0 := (w-12)*r.scale - pw
	y0 := 48 * r.scale
	box := image.Rect(x0, y0, x0+pw, y0+ph)
	r.panel(sub, box)

	r.drawString(sub, x0+panelPad*r.scale, y0+(panelPad+18)*r.scale, "Selection", 16, textBright)
	for i := 0; i < input.PropRowCount; i++ {
		rowY := y0 + (panelPad+menuRowH*(i+1))*r.scale
		row := image.Rect(x0+4*r.scale, rowY, x0+pw-4*r.scale, rowY+menuRowH*r.scale)
		col := textDim
		if i == s.UI.Properties.Focused {
			fillRect(sub, row, rowHighlight)
			col = textBright
		}
		r.drawString(sub, row.Min.X+8*r.scale, rowY+18*r.scale, propertyRowLabels[i], 14, col)

		switch i {
		case input.PropRowColor:
			if c, ok := s.SelectionColor(); ok {
				sw := image.Rect(row.Max.X-(swatchSize+8)*r.scale, rowY+2*r.scale,
					row.Max.X-8*r.scale, rowY+(2+swatchSize-4)*r.scale)
				nc := c.NRGBA()
				nc.A = 0xff
				fillRect(sub, sw, nc)
				drawRectOutline(sub, sw, panelBorder, 1)
			} else {
				r.drawString(sub, row.Max.X-50*r.scale, rowY+18*r.scale, "-", 14, col)
			}
		case input.PropRowThickness:
			val := "-"
			if t, ok := s.SelectionThickness(); ok {
				val = fmt.Sprintf("%.0f px", t)
			}
			r.drawString(sub, row.Max.X-60*r.scale, rowY+18*r.scale, val, 14, col)
		case input.PropRowLocked:
			val := "no"
			if s.SelectionLocked() {
				val = "yes"
			}
			r.drawString(sub, row.Max.X-50*r.scale, rowY+18*r.scale, val, 14, col)
		}
	}
}

// paintBadges stacks the zoom, frozen, and page indicators in the top
// right corner. Nothing shows in the default state.
func (r *Renderer) paintBadges(s *input.State, sub *image.RGBA) {
	var labels []string
	if s.Zoom.Active {
		labels = append(labels, fmt.Sprintf("Zoom %d%%", int(math.Round(s.Zoom.Scale*100))))
	}
	if s.Frozen != nil {
		labels = append(labels, "Frozen")
	}
	if pages := s.Boards.ActivePages(); pages.PageCount() > 1 {
		labels = append(labels, fmt.Sprintf("Page %d/%d", pages.ActiveIndex()+1, pages.PageCount()))
	}
	if len(labels) == 0 {
		return
	}

	w, _ := s.ScreenSize()
	x1 := (w - 12) * r.scale
	y := 12 * r.scale
	for _, label := range labels {
		bw := (8*len(label) + 16) * r.scale
		box := image.Rect(x1-bw, y, x1, y+22*r.scale)
		r.panel(sub, box)
		r.drawString(sub, box.Min.X+8*r.scale, y+16*r.scale, label, 13, textBright)
		y += 28 * r.scale
	}
}
