package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardPagesAlwaysHasOnePage(t *testing.T) {
	b := NewBoardPages()
	assert.Equal(t, 1, b.PageCount())
	assert.Equal(t, 0, b.ActiveIndex())
	require.NotNil(t, b.ActiveFrame())

	restored := BoardPagesFrom(nil, 7)
	assert.Equal(t, 1, restored.PageCount())
	assert.Equal(t, 0, restored.ActiveIndex())
}

func TestBoardPagesFromClampsActive(t *testing.T) {
	pages := []*Frame{NewFrame(), NewFrame()}
	b := BoardPagesFrom(pages, 5)
	assert.Equal(t, 1, b.ActiveIndex())

	b = BoardPagesFrom(pages, -1)
	assert.Equal(t, 0, b.ActiveIndex())
}

func TestBoardPagesNavigation(t *testing.T) {
	b := NewBoardPages()
	b.NewPage()
	b.NewPage()
	require.Equal(t, 3, b.PageCount())
	assert.Equal(t, 2, b.ActiveIndex())

	assert.False(t, b.NextPage())
	assert.True(t, b.PrevPage())
	assert.Equal(t, 1, b.ActiveIndex())
	assert.True(t, b.SwitchToPage(0))
	assert.False(t, b.SwitchToPage(0), "switching to the active page is a no-op")
	assert.False(t, b.SwitchToPage(3))
	assert.False(t, b.PrevPage())
}

func TestBoardPagesDuplicateDropsHistory(t *testing.T) {
	b := NewBoardPages()
	b.ActiveFrame().AddShape(lineAt(0))
	require.Equal(t, 1, b.ActiveFrame().UndoDepth())

	b.DuplicatePage()
	assert.Equal(t, 2, b.PageCount())
	assert.Equal(t, 1, b.ActiveIndex())
	assert.Equal(t, 1, b.ActiveFrame().Len())
	assert.Equal(t, 0, b.ActiveFrame().UndoDepth())
}

func TestBoardPagesDuplicateAtInsertsAfter(t *testing.T) {
	b := NewBoardPages()
	b.ActiveFrame().SetName("first")
	b.NewPage()
	b.ActiveFrame().SetName("second")

	at, ok := b.DuplicatePageAt(0)
	require.True(t, ok)
	assert.Equal(t, 1, at)
	assert.Equal(t, 3, b.PageCount())
	assert.Equal(t, "first", b.PageName(1))
	assert.Equal(t, "second", b.PageName(2))

	_, ok = b.DuplicatePageAt(9)
	assert.False(t, ok)
}

func TestBoardPagesDeleteLastPageClears(t *testing.T) {
	b := NewBoardPages()
	b.ActiveFrame().AddShape(lineAt(0))
	b.ActiveFrame().SetName("only")

	outcome := b.DeletePage()
	assert.Equal(t, PageCleared, outcome)
	assert.Equal(t, 1, b.PageCount())
	assert.Equal(t, 0, b.ActiveFrame().Len())
	assert.Equal(t, "", b.PageName(0))
}

func TestBoardPagesDeleteAdjustsActive(t *testing.T) {
	b := NewBoardPages()
	b.NewPage()
	b.NewPage()

	// Deleting the last page moves the active index back.
	require.Equal(t, 2, b.ActiveIndex())
	assert.Equal(t, PageRemoved, b.DeletePage())
	assert.Equal(t, 1, b.ActiveIndex())

	// Deleting an earlier page shifts the active index down with it.
	b.NewPage()
	require.Equal(t, 2, b.ActiveIndex())
	assert.Equal(t, PageRemoved, b.DeletePageAt(0))
	assert.Equal(t, 1, b.ActiveIndex())

	assert.Equal(t, PageUnchanged, b.DeletePageAt(9))
}

func TestBoardPagesTakePage(t *testing.T) {
	b := NewBoardPages()
	b.ActiveFrame().SetName("solo")
	page, ok := b.TakePage(0)
	require.True(t, ok)
	assert.Equal(t, "solo", page.Name())
	assert.Equal(t, 1, b.PageCount(), "taking the only page leaves a fresh one")
	assert.Equal(t, "", b.ActiveFrame().Name())

	_, ok = b.TakePage(5)
	assert.False(t, ok)
}

func TestBoardPagesMovePageTracksActive(t *testing.T) {
	b := NewBoardPages()
	b.ActiveFrame().SetName("a")
	b.NewPage()
	b.ActiveFrame().SetName("b")
	b.NewPage()
	b.ActiveFrame().SetName("c")
	require.True(t, b.SwitchToPage(1))

	require.True(t, b.MovePage(1, 0))
	assert.Equal(t, "b", b.PageName(0))
	assert.Equal(t, 0, b.ActiveIndex(), "active follows the moved page")

	require.True(t, b.MovePage(2, 0))
	assert.Equal(t, "c", b.PageName(0))
	assert.Equal(t, 1, b.ActiveIndex(), "active shifts when a page moves across it")

	assert.False(t, b.MovePage(0, 9))
	assert.True(t, b.MovePage(1, 1))
}

func TestBoardPagesTrimTrailingEmpty(t *testing.T) {
	b := NewBoardPages()
	b.ActiveFrame().AddShape(lineAt(0))
	b.NewPage()
	b.NewPage()
	require.Equal(t, 3, b.PageCount())

	b.TrimTrailingEmptyPages()
	assert.Equal(t, 1, b.PageCount())
	assert.Equal(t, 0, b.ActiveIndex())

	// A single empty page is never trimmed away.
	empty := NewBoardPages()
	empty.TrimTrailingEmptyPages()
	assert.Equal(t, 1, empty.PageCount())
}
