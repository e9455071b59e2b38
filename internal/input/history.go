package input

import (
	"time"

	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/geometry"
)

// Undo reverts the newest history entry on the active frame.
func (s *State) Undo() bool {
	dirty, ok := s.ActiveFrame().Undo()
	if !ok {
		return false
	}
	s.afterHistoryStep(dirty)
	return true
}

// Redo re-applies the newest undone entry on the active frame.
func (s *State) Redo() bool {
	dirty, ok := s.ActiveFrame().Redo()
	if !ok {
		return false
	}
	s.afterHistoryStep(dirty)
	return true
}

func (s *State) afterHistoryStep(dirty geometry.Rect) {
	if dirty.Valid() {
		s.markRect(dirty)
	}
	s.pruneSelection()
	s.invalidateHitCache()
	s.markSessionDirty()
	s.NeedsRedraw = true
}

// pruneSelection drops selected ids that no longer exist on the frame.
func (s *State) pruneSelection() {
	if s.Selection.IsEmpty() {
		return
	}
	frame := s.ActiveFrame()
	kept := make([]draw.ShapeID, 0, s.Selection.Len())
	for _, id := range s.Selection.IDs() {
		if frame.IndexOf(id) >= 0 {
			kept = append(kept, id)
		}
	}
	if len(kept) != s.Selection.Len() {
		s.Selection.Set(kept)
	}
}

type historyMode int

const (
	historyUndo historyMode = iota
	historyRedo
)

// delayedHistory steps undo or redo on a timer so multi-step history
// commands animate instead of jumping.
type delayedHistory struct {
	mode      historyMode
	remaining int
	delay     time.Duration
	nextDue   time.Time
}

// DelayedHistoryStep is the cadence of multi-step history commands.
const DelayedHistoryStep = 150 * time.Millisecond

// runHistorySteps executes one step now and spreads the rest over
// ticks so a multi-step command animates instead of jumping.
func (s *State) runHistorySteps(mode historyMode, steps int) {
	if steps <= 1 {
		s.stepHistory(mode)
		return
	}
	s.StartDelayedHistory(mode, steps, DelayedHistoryStep)
}

// StartDelayedHistory queues steps history steps, one per delay tick.
// The first step runs immediately.
func (s *State) StartDelayedHistory(mode historyMode, steps int, delay time.Duration) {
	if steps <= 0 {
		return
	}
	if !s.stepHistory(mode) || steps == 1 {
		s.delayed = nil
		return
	}
	s.delayed = &delayedHistory{
		mode:      mode,
		remaining: steps - 1,
		delay:     delay,
		nextDue:   s.now().Add(delay),
	}
}

// CancelDelayedHistory drops any pending stepped history.
func (s *State) CancelDelayedHistory() { s.delayed = nil }

// TickDelayedHistory runs due steps and reports whether any fired.
// Call it from the frame timer while HasDelayedHistory is true.
func (s *State) TickDelayedHistory() bool {
	if s.delayed == nil {
		return false
	}
	now := s.now()
	fired := false
	for s.delayed != nil && s.delayed.remaining > 0 && !now.Before(s.delayed.nextDue) {
		if !s.stepHistory(s.delayed.mode) {
			s.delayed = nil
			return fired
		}
		fired = true
		s.delayed.remaining--
		s.delayed.nextDue = s.delayed.nextDue.Add(s.delayed.delay)
	}
	if s.delayed != nil && s.delayed.remaining == 0 {
		s.delayed = nil
	}
	return fired
}

// HasDelayedHistory reports whether stepped history is pending.
func (s *State) HasDelayedHistory() bool { return s.delayed != nil }

func (s *State) stepHistory(mode historyMode) bool {
	if mode == historyUndo {
		return s.Undo()
	}
	return s.Redo()
}
