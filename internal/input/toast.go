package input

import "time"

// ToastKind ranks a toast's severity.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastWarning
	ToastError
)

// Toast durations.
const (
	ToastDuration         = 5000 * time.Millisecond
	PresetFeedbackToastMS = 1300 * time.Millisecond
)

// Toast is a transient status message shown by the renderer.
type Toast struct {
	Kind    ToastKind
	Message string
	Started time.Time
}

// Expired reports whether the toast should be dropped at now.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.Started) >= ToastDuration
}

const maxToasts = 4

// toastQueue keeps the most recent toasts, oldest first.
type toastQueue struct {
	toasts []Toast
}

func (q *toastQueue) push(kind ToastKind, message string, now time.Time) {
	q.toasts = append(q.toasts, Toast{Kind: kind, Message: message, Started: now})
	if len(q.toasts) > maxToasts {
		q.toasts = append(q.toasts[:0], q.toasts[len(q.toasts)-maxToasts:]...)
	}
}

// prune drops expired toasts and reports whether anything changed.
func (q *toastQueue) prune(now time.Time) bool {
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	changed := len(kept) != len(q.toasts)
	q.toasts = kept
	return changed
}
