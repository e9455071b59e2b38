package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/board"
	"github.com/devmobasa/wayscriber/internal/draw"
	"github.com/devmobasa/wayscriber/internal/input"
)

func populatedState() *input.State {
	s := input.NewState()
	s.Resize(1920, 1080, 1)
	s.CurrentColor = draw.Blue
	s.SetThickness(7)
	s.ActiveFrame().AddShape(&draw.Line{X1: 10, Y1: 10, X2: 50, Y2: 50, Color: draw.Blue, Thickness: 7})
	s.ActiveFrame().AddShape(&draw.Arrow{X1: 0, Y1: 0, X2: 30, Y2: 30, Color: draw.Red, Thickness: 4,
		Label: &draw.ArrowLabel{Value: 5}})
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := populatedState()
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	snap := Capture(s, 50)
	require.True(t, snap.HasPersistableData())
	require.NoError(t, store.Save(snap))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, CurrentVersion, loaded.Version)

	restored := input.NewState()
	restored.Resize(1920, 1080, 1)
	Apply(restored, loaded, 0)

	assert.Equal(t, 2, restored.ActiveFrame().Len())
	assert.Equal(t, draw.Blue, restored.CurrentColor)
	assert.Equal(t, 7.0, restored.Thickness)
	// Counters resync past the highest label on any page.
	assert.Equal(t, uint32(6), restored.ArrowCounter())
}

func TestLoadMissingFileReturnsNil(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	snap, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveRotatesBackup(t *testing.T) {
	s := populatedState()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	require.NoError(t, store.Save(Capture(s, 0)))
	require.NoError(t, store.Save(Capture(s, 0)))

	_, err := os.Stat(path + ".bak")
	assert.NoError(t, err)
}

func TestEncodeRejectsOversizedSnapshot(t *testing.T) {
	s := populatedState()
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	store.MaxFileSize = 16

	err := store.Save(Capture(s, 0))
	assert.ErrorIs(t, err, ErrSnapshotTooLarge)
	_, serr := os.Stat(store.Path)
	assert.True(t, os.IsNotExist(serr))
}

func TestLoadRefusesOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, make([]byte, 1024), 0o644))
	store := NewStore(path)
	store.MaxFileSize = 128

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrSnapshotTooLarge)
}

func TestCorruptFileBackedUpAndReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewStore(path)

	snap, err := store.Load()
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)

	_, serr := os.Stat(path + ".corrupt")
	assert.NoError(t, serr)
	_, serr = os.Stat(path)
	assert.True(t, os.IsNotExist(serr))
}

func TestHistoryRetentionClampOnCapture(t *testing.T) {
	s := input.NewState()
	s.Resize(800, 600, 1)
	for i := 0; i < 10; i++ {
		s.ActiveFrame().AddShape(&draw.Line{X1: i, Y1: 0, X2: i, Y2: 10, Color: draw.Red, Thickness: 2})
	}
	require.Equal(t, 10, s.ActiveFrame().UndoDepth())

	Capture(s, 3)
	assert.Equal(t, 3, s.ActiveFrame().UndoDepth())

	Capture(s, 0)
	assert.Equal(t, 0, s.ActiveFrame().UndoDepth())
}

func TestApplyTruncatesFramesToCap(t *testing.T) {
	s := populatedState()
	for i := 0; i < 8; i++ {
		s.ActiveFrame().AddShape(&draw.Line{X1: i, Y1: 0, X2: i, Y2: 5, Color: draw.Red, Thickness: 1})
	}
	snap := Capture(s, 0)

	restored := input.NewState()
	restored.Resize(800, 600, 1)
	Apply(restored, snap, 4)
	assert.Equal(t, 4, restored.ActiveFrame().Len())
}

func TestApplyRestoresActiveBoardAndPage(t *testing.T) {
	s := populatedState()
	require.True(t, s.SwitchBoard(board.WhiteboardSpec().ID))
	s.Boards.ActivePages().NewPage()
	s.ActiveFrame().AddShape(&draw.Rect{X: 1, Y: 1, W: 5, H: 5, Color: draw.Black, Thickness: 2})
	snap := Capture(s, 0)

	restored := input.NewState()
	restored.Resize(800, 600, 1)
	Apply(restored, snap, 0)

	assert.Equal(t, board.WhiteboardSpec().ID, restored.Boards.ActiveID())
	assert.Equal(t, 1, restored.Boards.ActivePages().ActiveIndex())
	assert.Equal(t, 1, restored.ActiveFrame().Len())
}

func TestUpgradeFromV1(t *testing.T) {
	v1 := []byte(`{
		"version": 1,
		"active_mode": "whiteboard",
		"whiteboard": {
			"pages": [{"shapes": [{"id": 1, "shape": {"type": "line", "data": {"x1": 0, "y1": 0,
				"x2": 9, "y2": 9, "color": {"r": 0, "g": 0, "b": 0, "a": 1}, "thickness": 2}}}],
				"next_id": 2}],
			"active": 0
		},
		"tool": {"tool": "pen", "color": {"r": 1, "g": 0, "b": 0, "a": 1}, "thickness": 4,
			"eraser_size": 24, "eraser_kind": "circle", "eraser_mode": "brush",
			"marker_opacity": 0.5, "font_size": 18,
			"font": {"family": "Sans", "weight": "normal", "style": "normal"},
			"arrow_head_length": 18, "arrow_head_angle": 30, "arrow_head_at_end": true,
			"step_label_enabled": true, "status_bar": true}
	}`)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, v1, 0o644))

	snap, err := NewStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, CurrentVersion, snap.Version)
	assert.Equal(t, board.WhiteboardSpec().ID, snap.ActiveBoard)
	require.Len(t, snap.Boards, 1)
	assert.Equal(t, 1, snap.Boards[0].Pages[0].Len())
}

func TestUnsupportedVersionIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0o644))

	_, err := NewStore(path).Load()
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestSaverDebounceAndPoll(t *testing.T) {
	s := populatedState()
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	sv := NewSaver(store, 100*time.Millisecond)

	start := time.Now()
	sv.MarkDirty(start)
	assert.False(t, sv.Due(start.Add(50*time.Millisecond)))
	assert.True(t, sv.Due(start.Add(150*time.Millisecond)))

	require.NoError(t, sv.Save(Capture(s, 0)))
	assert.False(t, sv.Due(start.Add(time.Hour)))

	deadline := time.Now().Add(2 * time.Second)
	for {
		if done, err := sv.Poll(); done {
			assert.NoError(t, err)
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("save did not complete")
		}
		time.Sleep(time.Millisecond)
	}
	_, err := os.Stat(store.Path)
	assert.NoError(t, err)
}
