package input

// SetCapturedImage installs a screen capture as the frozen background
// and the zoom source, and clears any pending freeze request.
func (s *State) SetCapturedImage(img *CapturedImage) {
	s.Frozen = img
	s.Zoom.Image = img
	s.FreezePending = false
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

// ClearCapturedImage drops the frozen background and resets the zoom
// view, since its pan extent no longer has a backing image.
func (s *State) ClearCapturedImage() {
	if s.Frozen == nil && s.Zoom.Image == nil && !s.FreezePending {
		return
	}
	s.Frozen = nil
	s.Zoom.Image = nil
	s.FreezePending = false
	s.Zoom.Reset()
	s.Dirty.MarkFull()
	s.NeedsRedraw = true
}

// RequestFrozenToggle unfreezes immediately when a capture is held,
// otherwise flags the event loop to run a capture for freezing.
func (s *State) RequestFrozenToggle() {
	if s.Frozen != nil {
		s.ClearCapturedImage()
		return
	}
	s.FreezePending = true
}

// TakeFreezeRequest consumes a pending freeze request. The event loop
// polls this once per tick.
func (s *State) TakeFreezeRequest() bool {
	if !s.FreezePending {
		return false
	}
	s.FreezePending = false
	return true
}
