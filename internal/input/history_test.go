package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiStepUndoSpreadsAcrossTicks(t *testing.T) {
	s := newTestState()
	now := time.Now()
	s.SetClock(func() time.Time { return now })

	for i := 0; i < 4; i++ {
		drag(s, 10+i*20, 10, 30+i*20, 30)
	}
	require.Equal(t, 4, s.ActiveFrame().Len())

	require.NoError(t, s.Apply(Action{Kind: ActionUndo, Steps: 3}))
	assert.Equal(t, 3, s.ActiveFrame().Len(), "the first step runs immediately")
	require.True(t, s.HasDelayedHistory())

	assert.False(t, s.TickDelayedHistory(), "nothing is due before the cadence elapses")
	assert.Equal(t, 3, s.ActiveFrame().Len())

	now = now.Add(DelayedHistoryStep)
	assert.True(t, s.TickDelayedHistory())
	assert.Equal(t, 2, s.ActiveFrame().Len())

	now = now.Add(DelayedHistoryStep)
	assert.True(t, s.TickDelayedHistory())
	assert.Equal(t, 1, s.ActiveFrame().Len())
	assert.False(t, s.HasDelayedHistory())
}

func TestSingleStepUndoStaysSynchronous(t *testing.T) {
	s := newTestState()
	drag(s, 10, 10, 60, 60)

	require.NoError(t, s.Apply(Action{Kind: ActionUndo}))
	assert.Equal(t, 0, s.ActiveFrame().Len())
	assert.False(t, s.HasDelayedHistory())
}

func TestInputCancelsDelayedHistory(t *testing.T) {
	s := newTestState()
	now := time.Now()
	s.SetClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		drag(s, 10+i*20, 10, 30+i*20, 30)
	}
	require.NoError(t, s.Apply(Action{Kind: ActionRedo, Steps: 2}))
	assert.False(t, s.HasDelayedHistory(), "an empty redo stack arms nothing")
	require.NoError(t, s.Apply(Action{Kind: ActionUndo, Steps: 3}))
	require.True(t, s.HasDelayedHistory())

	s.HandleEvent(PointerMove{X: 500, Y: 500})
	assert.False(t, s.HasDelayedHistory(), "pointer input interrupts the run")

	now = now.Add(DelayedHistoryStep)
	assert.False(t, s.TickDelayedHistory())
	assert.Equal(t, 2, s.ActiveFrame().Len(), "only the immediate first step ran")
}
