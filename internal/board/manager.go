package board

import (
	"errors"
	"fmt"

	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/logger"
)

const (
	// MaxBoards caps the total board count, canonical boards included.
	MaxBoards = 16
	// RecentRingSize bounds the most-recently-used board ids kept per
	// session.
	RecentRingSize = 5
)

var (
	ErrBoardCap        = errors.New("board cap reached")
	ErrDuplicateBoard  = errors.New("board id already exists")
	ErrUnknownBoard    = errors.New("unknown board id")
	ErrBoardProtected  = errors.New("transparent board cannot be deleted")
	ErrInvalidBoardID  = errors.New("board id must not be empty")
	ErrInvalidPosition = errors.New("board position out of range")
)

// Manager owns the ordered board list, the active board, and a small
// ring of recently used board ids. Pen color save/restore for
// auto-adjusting boards lives here so board switches stay symmetric.
type Manager struct {
	boards  []*Board
	active  int
	recent  []string
	prevPen *draw.Color
}

// NewManager returns a manager holding the three canonical boards with
// the transparent board active.
func NewManager() *Manager {
	return &Manager{
		boards: []*Board{
			NewBoard(TransparentSpec()),
			NewBoard(WhiteboardSpec()),
			NewBoard(BlackboardSpec()),
		},
	}
}

// Boards returns the boards in display order. Callers must not mutate
// the returned slice.
func (m *Manager) Boards() []*Board { return m.boards }

// BoardCount reports the number of boards.
func (m *Manager) BoardCount() int { return len(m.boards) }

// ActiveIndex reports the index of the active board.
func (m *Manager) ActiveIndex() int { return m.active }

// Active returns the active board.
func (m *Manager) Active() *Board { return m.boards[m.active] }

// ActiveID returns the active board's id.
func (m *Manager) ActiveID() string { return m.boards[m.active].Spec.ID }

// ActiveFrame returns the active page frame of the active board.
func (m *Manager) ActiveFrame() *draw.Frame { return m.Active().ActiveFrame() }

// ActivePages returns the page list of the active board.
func (m *Manager) ActivePages() *draw.BoardPages { return m.Active().Pages }

// IndexOf returns the position of the board with the given id, or -1.
func (m *Manager) IndexOf(id string) int {
	for i, b := range m.boards {
		if b.Spec.ID == id {
			return i
		}
	}
	return -1
}

// Board returns the board with the given id.
func (m *Manager) Board(id string) (*Board, bool) {
	if i := m.IndexOf(id); i >= 0 {
		return m.boards[i], true
	}
	return nil, false
}

// Recent returns up to five recently used board ids, most recent first.
func (m *Manager) Recent() []string { return m.recent }

func (m *Manager) touchRecent(id string) {
	out := make([]string, 0, RecentRingSize)
	out = append(out, id)
	for _, r := range m.recent {
		if r != id && len(out) < RecentRingSize {
			out = append(out, r)
		}
	}
	m.recent = out
}

// PreviousPenColor returns the pen color saved before an auto-adjusting
// board installed its default, if any.
func (m *Manager) PreviousPenColor() *draw.Color { return m.prevPen }

// SetPreviousPenColor restores the saved pen color slot, used when a
// session snapshot is applied.
func (m *Manager) SetPreviousPenColor(c *draw.Color) { m.prevPen = c }

// SwitchTo activates the board with the given id and returns the pen
// color the caller should draw with afterwards. Entering a board with
// auto-adjust saves the current pen and installs the board's default;
// entering a board without it restores the saved pen.
func (m *Manager) SwitchTo(id string, currentPen draw.Color) (draw.Color, bool) {
	i := m.IndexOf(id)
	if i < 0 || i == m.active {
		return currentPen, false
	}
	m.active = i
	m.touchRecent(id)

	spec := m.boards[i].Spec
	if spec.AutoAdjustPen {
		if m.prevPen == nil {
			saved := currentPen
			m.prevPen = &saved
		}
		return spec.DefaultPen(), true
	}
	if m.prevPen != nil {
		restored := *m.prevPen
		m.prevPen = nil
		return restored, true
	}
	return currentPen, true
}

// CreateBoard appends a custom board. The id must be unique and the
// total board count stays under MaxBoards.
func (m *Manager) CreateBoard(spec Spec) (*Board, error) {
	if spec.ID == "" {
		return nil, ErrInvalidBoardID
	}
	if m.IndexOf(spec.ID) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateBoard, spec.ID)
	}
	if len(m.boards) >= MaxBoards {
		return nil, ErrBoardCap
	}
	b := NewBoard(spec)
	m.boards = append(m.boards, b)
	logger.Debugf("created board %q (%d total)", spec.ID, len(m.boards))
	return b, nil
}

// DeleteBoard removes a board by id. The transparent board is
// protected; deleting the active board falls back to transparent.
func (m *Manager) DeleteBoard(id string) error {
	if id == TransparentID {
		return ErrBoardProtected
	}
	i := m.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownBoard, id)
	}
	wasActive := m.active == i
	m.boards = append(m.boards[:i], m.boards[i+1:]...)
	if m.active > i {
		m.active--
	}
	if wasActive {
		m.active = m.IndexOf(TransparentID)
		if m.active < 0 {
			m.active = 0
		}
	}
	m.dropRecent(id)
	return nil
}

func (m *Manager) dropRecent(id string) {
	kept := m.recent[:0]
	for _, r := range m.recent {
		if r != id {
			kept = append(kept, r)
		}
	}
	m.recent = kept
}

// MoveBoard relocates a board in the display order, keeping the active
// index on the same board.
func (m *Manager) MoveBoard(from, to int) error {
	n := len(m.boards)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrInvalidPosition
	}
	if from == to {
		return nil
	}
	b := m.boards[from]
	m.boards = append(m.boards[:from], m.boards[from+1:]...)
	m.boards = append(m.boards[:to], append([]*Board{b}, m.boards[to:]...)...)
	switch {
	case m.active == from:
		m.active = to
	case from < m.active && to >= m.active:
		m.active--
	case from > m.active && to <= m.active:
		m.active++
	}
	return nil
}

// SetPinned toggles the pinned flag on a board.
func (m *Manager) SetPinned(id string, pinned bool) bool {
	i := m.IndexOf(id)
	if i < 0 {
		return false
	}
	m.boards[i].Spec.Pinned = pinned
	return true
}

// RenameBoard changes a board's display name.
func (m *Manager) RenameBoard(id, name string) bool {
	i := m.IndexOf(id)
	if i < 0 {
		return false
	}
	m.boards[i].Spec.Name = name
	return true
}

// ReplacePages swaps in restored pages for a board, creating a custom
// board shell when the id is unknown. Used when applying a session
// snapshot.
func (m *Manager) ReplacePages(id string, pages *draw.BoardPages) *Board {
	if pages == nil {
		pages = draw.NewBoardPages()
	}
	if b, ok := m.Board(id); ok {
		b.Pages = pages
		return b
	}
	if len(m.boards) >= MaxBoards {
		logger.Warnf("dropping restored board %q: cap reached", id)
		return nil
	}
	b := &Board{Spec: Spec{ID: id, Name: id}, Pages: pages}
	m.boards = append(m.boards, b)
	return b
}

// ClampHistoryDepth applies a history retention bound to every page of
// every board.
func (m *Manager) ClampHistoryDepth(n int) {
	for _, b := range m.boards {
		for _, page := range b.Pages.Pages() {
			page.ClampHistoryDepth(n)
		}
	}
}
