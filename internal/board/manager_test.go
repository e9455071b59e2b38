package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/draw"
)

func TestNewManagerHasCanonicalBoards(t *testing.T) {
	m := NewManager()
	require.Equal(t, 3, m.BoardCount())
	assert.Equal(t, TransparentID, m.ActiveID())
	for _, id := range []string{TransparentID, WhiteboardID, BlackboardID} {
		_, ok := m.Board(id)
		assert.True(t, ok, id)
	}
}

func TestSwitchWithAutoContrastSavesAndRestoresPen(t *testing.T) {
	m := NewManager()

	// Red pen on transparent, switch to whiteboard: black pen installed,
	// red saved.
	pen, ok := m.SwitchTo(WhiteboardID, draw.Red)
	require.True(t, ok)
	assert.Equal(t, draw.Black, pen)
	require.NotNil(t, m.PreviousPenColor())
	assert.Equal(t, draw.Red, *m.PreviousPenColor())

	// Switch back to transparent: red restored, slot cleared.
	pen, ok = m.SwitchTo(TransparentID, pen)
	require.True(t, ok)
	assert.Equal(t, draw.Red, pen)
	assert.Nil(t, m.PreviousPenColor())
}

func TestSwitchBetweenAutoAdjustBoardsKeepsSavedPen(t *testing.T) {
	m := NewManager()
	pen, _ := m.SwitchTo(WhiteboardID, draw.Red)
	assert.Equal(t, draw.Black, pen)

	pen, ok := m.SwitchTo(BlackboardID, pen)
	require.True(t, ok)
	assert.Equal(t, draw.White, pen)
	require.NotNil(t, m.PreviousPenColor())
	assert.Equal(t, draw.Red, *m.PreviousPenColor(), "the original pen survives chained switches")

	pen, _ = m.SwitchTo(TransparentID, pen)
	assert.Equal(t, draw.Red, pen)
}

func TestSwitchToUnknownOrActiveBoard(t *testing.T) {
	m := NewManager()
	pen, ok := m.SwitchTo("nope", draw.Red)
	assert.False(t, ok)
	assert.Equal(t, draw.Red, pen)

	pen, ok = m.SwitchTo(TransparentID, draw.Red)
	assert.False(t, ok)
	assert.Equal(t, draw.Red, pen)
}

func TestRecentRingOrderAndCap(t *testing.T) {
	m := NewManager()
	for i := 0; i < 6; i++ {
		_, err := m.CreateBoard(Spec{ID: fmt.Sprintf("b%d", i), Name: "B"})
		require.NoError(t, err)
	}
	order := []string{"b0", "b1", "b2", "b3", "b4", "b5", "b1"}
	pen := draw.Red
	for _, id := range order {
		pen, _ = m.SwitchTo(id, pen)
	}
	assert.Equal(t, []string{"b1", "b5", "b4", "b3", "b2"}, m.Recent())
}

func TestCreateBoardValidation(t *testing.T) {
	m := NewManager()
	_, err := m.CreateBoard(Spec{ID: ""})
	assert.ErrorIs(t, err, ErrInvalidBoardID)

	_, err = m.CreateBoard(Spec{ID: WhiteboardID})
	assert.ErrorIs(t, err, ErrDuplicateBoard)

	for i := m.BoardCount(); i < MaxBoards; i++ {
		_, err := m.CreateBoard(Spec{ID: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
	}
	_, err = m.CreateBoard(Spec{ID: "overflow"})
	assert.ErrorIs(t, err, ErrBoardCap)
}

func TestDeleteBoard(t *testing.T) {
	m := NewManager()
	assert.ErrorIs(t, m.DeleteBoard(TransparentID), ErrBoardProtected)
	assert.ErrorIs(t, m.DeleteBoard("missing"), ErrUnknownBoard)

	pen, _ := m.SwitchTo(WhiteboardID, draw.Red)
	_ = pen
	require.NoError(t, m.DeleteBoard(WhiteboardID))
	assert.Equal(t, TransparentID, m.ActiveID(), "deleting the active board falls back to transparent")
	assert.NotContains(t, m.Recent(), WhiteboardID)
}

func TestMoveBoardTracksActive(t *testing.T) {
	m := NewManager()
	pen, _ := m.SwitchTo(WhiteboardID, draw.Red)
	_ = pen

	require.NoError(t, m.MoveBoard(1, 0))
	assert.Equal(t, WhiteboardID, m.ActiveID())
	assert.Equal(t, 0, m.ActiveIndex())

	assert.ErrorIs(t, m.MoveBoard(0, 5), ErrInvalidPosition)
}

func TestReplacePagesCreatesShellForUnknownID(t *testing.T) {
	m := NewManager()
	pages := draw.NewBoardPages()
	pages.ActiveFrame().SetName("restored")

	b := m.ReplacePages("custom-notes", pages)
	require.NotNil(t, b)
	assert.Equal(t, "custom-notes", b.Spec.ID)
	assert.Equal(t, "restored", b.Pages.ActiveFrame().Name())

	// Known id swaps pages in place.
	wb := m.ReplacePages(WhiteboardID, draw.NewBoardPages())
	require.NotNil(t, wb)
	assert.Equal(t, WhiteboardID, wb.Spec.ID)
}

func TestBackgroundContrastPen(t *testing.T) {
	assert.Equal(t, draw.Black, SolidBackground(draw.White).ContrastPen())
	assert.Equal(t, draw.White, SolidBackground(draw.Black).ContrastPen())
	assert.Equal(t, draw.White, TransparentBackground().ContrastPen())
}
