package input

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
)

// Key is a normalized keyboard key. Printable keys carry their rune in
// Char; everything else uses a named constant.
type Key struct {
	Name KeyName
	Char rune
}

// KeyName enumerates the non-printable keys the core reacts to.
type KeyName string

const (
	KeyChar      KeyName = "char"
	KeyEscape    KeyName = "escape"
	KeyReturn    KeyName = "return"
	KeyTab       KeyName = "tab"
	KeyBackspace KeyName = "backspace"
	KeyDelete    KeyName = "delete"
	KeyLeft      KeyName = "left"
	KeyRight     KeyName = "right"
	KeyUp        KeyName = "up"
	KeyDown      KeyName = "down"
	KeyHome      KeyName = "home"
	KeyEnd       KeyName = "end"
	KeyPageUp    KeyName = "page_up"
	KeyPageDown  KeyName = "page_down"
	KeyShift     KeyName = "shift"
	KeyCtrl      KeyName = "ctrl"
	KeyAlt       KeyName = "alt"
	KeyF1        KeyName = "f1"
	KeyF2        KeyName = "f2"
	KeyF3        KeyName = "f3"
	KeyF4        KeyName = "f4"
	KeyF5        KeyName = "f5"
	KeyF6        KeyName = "f6"
	KeyF7        KeyName = "f7"
	KeyF8        KeyName = "f8"
	KeyF9        KeyName = "f9"
	KeyF10       KeyName = "f10"
	KeyF11       KeyName = "f11"
	KeyF12       KeyName = "f12"
)

// CharKey builds a printable key event value.
func CharKey(r rune) Key { return Key{Name: KeyChar, Char: r} }

// NamedKey builds a non-printable key event value.
func NamedKey(n KeyName) Key { return Key{Name: n} }

// Modifiers reflects the latest observed modifier state. Events do not
// duplicate it; the state tracks it from Shift/Ctrl/Alt press/release.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// Event is a normalized input event delivered by the display surface.
// Exactly one variant applies.
type Event interface{ isEvent() }

// PointerMove reports pointer motion in world coordinates.
type PointerMove struct {
	X, Y int
}

// PointerPress reports a button press in world coordinates.
type PointerPress struct {
	Button MouseButton
	X, Y   int
}

// PointerRelease reports a button release in world coordinates.
type PointerRelease struct {
	Button MouseButton
	X, Y   int
}

// PointerScroll reports a wheel or finger scroll.
type PointerScroll struct {
	DeltaDiscrete int
	DeltaAbsolute float64
	Vertical      bool
}

// KeyPress reports a key going down.
type KeyPress struct {
	Key       Key
	Modifiers Modifiers
}

// KeyRelease reports a key going up.
type KeyRelease struct {
	Key       Key
	Modifiers Modifiers
}

// StylusDown reports the stylus tip touching the surface.
type StylusDown struct {
	X, Y int
}

// StylusUp reports the stylus tip lifting.
type StylusUp struct {
	X, Y int
}

// StylusMotion reports stylus movement while in proximity.
type StylusMotion struct {
	X, Y int
}

// StylusPressure reports a pressure update in [0, 1].
type StylusPressure struct {
	Pressure float64
}

func (PointerMove) isEvent()    {}
func (PointerPress) isEvent()   {}
func (PointerRelease) isEvent() {}
func (PointerScroll) isEvent()  {}
func (KeyPress) isEvent()       {}
func (KeyRelease) isEvent()     {}
func (StylusDown) isEvent()     {}
func (StylusUp) isEvent()       {}
func (StylusMotion) isEvent()   {}
func (StylusPressure) isEvent() {}
