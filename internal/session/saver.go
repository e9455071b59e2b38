package session

import (
	"time"

	"github.com/devmobasa/wayscriber/internal/logger"
)

// DefaultSaveDebounce is how long the state must stay dirty before a
// save is issued.
const DefaultSaveDebounce = 2 * time.Second

// Saver writes sessions off the event loop. Encoding happens on the
// caller's goroutine so the live frames are never touched concurrently;
// only the disk write runs in the background. Request/poll, like the
// capture pipeline.
type Saver struct {
	store    *Store
	debounce time.Duration

	dirtySince *time.Time
	inFlight   bool
	done       chan error
}

// NewSaver wraps a store with a save debounce.
func NewSaver(store *Store, debounce time.Duration) *Saver {
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}
	return &Saver{store: store, debounce: debounce, done: make(chan error, 1)}
}

// SetDebounce changes the debounce window for future saves.
func (sv *Saver) SetDebounce(d time.Duration) {
	if d > 0 {
		sv.debounce = d
	}
}

// MarkDirty starts (or keeps) the debounce window.
func (sv *Saver) MarkDirty(now time.Time) {
	if sv.dirtySince == nil {
		t := now
		sv.dirtySince = &t
	}
}

// Due reports whether the debounce window has elapsed and no write is in
// flight.
func (sv *Saver) Due(now time.Time) bool {
	return sv.dirtySince != nil && !sv.inFlight && now.Sub(*sv.dirtySince) >= sv.debounce
}

// Save encodes the snapshot now and writes it in the background. The
// encode error (including the size cap) is returned synchronously; the
// write error arrives through Poll.
func (sv *Saver) Save(snap *Snapshot) error {
	data, err := sv.store.Encode(snap)
	if err != nil {
		return err
	}
	sv.dirtySince = nil
	sv.inFlight = true
	go func() {
		sv.done <- sv.store.WriteEncoded(data)
	}()
	return nil
}

// Poll reaps a finished background write. done is false while the write
// is still running or none was started.
func (sv *Saver) Poll() (done bool, err error) {
	if !sv.inFlight {
		return false, nil
	}
	select {
	case werr := <-sv.done:
		sv.inFlight = false
		if werr != nil {
			logger.Warn("session save failed", "error", werr)
		}
		return true, werr
	default:
		return false, nil
	}
}

// Flush writes synchronously, for shutdown.
func (sv *Saver) Flush(snap *Snapshot) error {
	if sv.inFlight {
		if err := <-sv.done; err != nil {
			logger.Warn("session save failed", "error", err)
		}
		sv.inFlight = false
	}
	sv.dirtySince = nil
	return sv.store.Save(snap)
}
