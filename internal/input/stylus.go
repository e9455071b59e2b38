package input

// Stylus input maps onto the pointer state machine: tip down and up act
// as left button press and release. Pressure modulates the working
// thickness while the tip is down.

// OnStylusDown starts a stroke at full base thickness.
func (s *State) OnStylusDown(x, y int) {
	s.stylusDown = true
	s.stylusPeak = 0
	s.baseThickness = s.Thickness
	s.OnPointerPress(ButtonLeft, x, y)
}

// OnStylusUp ends the stroke and restores the configured thickness.
func (s *State) OnStylusUp(x, y int) {
	s.OnPointerRelease(ButtonLeft, x, y)
	if s.stylusDown {
		s.Thickness = s.baseThickness
		s.stylusDown = false
		s.stylusPeak = 0
	}
}

// OnStylusPressure updates the working thickness from normalized
// pressure. The peak is monotonic within a stroke so the line does not
// flicker thinner on sensor jitter, and zero readings while the tip is
// down are sensor dropouts, not intent.
func (s *State) OnStylusPressure(pressure float64) {
	if !s.stylusDown || pressure <= 0 {
		return
	}
	if pressure > 1 {
		pressure = 1
	}
	if pressure > s.stylusPeak {
		s.stylusPeak = pressure
	}
	t := s.baseThickness * s.stylusPeak
	if t < MinThickness {
		t = MinThickness
	}
	s.Thickness = t
}
