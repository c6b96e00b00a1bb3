package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/core/timeline"
)

func shotsAt(start timeline.Frame) []timeline.Shot {
	return []timeline.Shot{{ID: "a", StartTime: start, Duration: 10}}
}

func TestStack_UndoRedo(t *testing.T) {
	s := New(10)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	s.Push("move", shotsAt(0))
	current := shotsAt(20)

	snap, ok := s.Undo(current)
	require.True(t, ok)
	assert.Equal(t, "move", snap.Label)
	assert.Equal(t, timeline.Frame(0), snap.Shots[0].StartTime)
	assert.True(t, s.CanRedo())

	snap, ok = s.Redo(snap.Shots)
	require.True(t, ok)
	assert.Equal(t, timeline.Frame(20), snap.Shots[0].StartTime)
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestStack_PushDiscardsRedo(t *testing.T) {
	s := New(10)
	s.Push("move", shotsAt(0))
	_, ok := s.Undo(shotsAt(20))
	require.True(t, ok)
	require.True(t, s.CanRedo())

	s.Push("trim", shotsAt(0))
	assert.False(t, s.CanRedo())
}

func TestStack_LimitDropsOldest(t *testing.T) {
	s := New(3)
	for i := range 5 {
		s.Push(fmt.Sprintf("edit-%d", i), shotsAt(timeline.Frame(i)))
	}

	var labels []string
	current := shotsAt(99)
	for {
		snap, ok := s.Undo(current)
		if !ok {
			break
		}
		labels = append(labels, snap.Label)
		current = snap.Shots
	}
	assert.Equal(t, []string{"edit-4", "edit-3", "edit-2"}, labels)
}

func TestStack_PushIsolatesCaller(t *testing.T) {
	s := New(10)
	shots := shotsAt(0)
	s.Push("move", shots)
	shots[0].StartTime = 77

	snap, ok := s.Undo(shotsAt(77))
	require.True(t, ok)
	assert.Equal(t, timeline.Frame(0), snap.Shots[0].StartTime)
}

func TestStack_ClearDropsEverything(t *testing.T) {
	s := New(10)
	s.Push("move", shotsAt(0))
	_, _ = s.Undo(shotsAt(1))
	s.Clear()
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}
