// Package history keeps a bounded undo/redo stack of shot snapshots.
package history

import (
	"time"

	"github.com/framecut/framecut/internal/core/timeline"
)

// DefaultLimit caps how many undo steps are retained.
const DefaultLimit = 100

// Snapshot is the shot list as it was before one edit, labelled with the
// operation that replaced it.
type Snapshot struct {
	Label string
	Shots []timeline.Shot
	Taken time.Time
}

// Stack holds undo and redo snapshots. Pushing a new edit discards any
// redo entries, matching the usual linear-history model.
type Stack struct {
	limit  int
	past   []Snapshot
	future []Snapshot
}

// New returns a stack retaining at most limit undo steps.
func New(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

func cloneShots(shots []timeline.Shot) []timeline.Shot {
	out := make([]timeline.Shot, len(shots))
	for i, sh := range shots {
		out[i] = sh.Clone()
	}
	return out
}

// Push records the pre-edit shot list. The slice is deep-copied, so the
// caller may mutate its copy afterwards.
func (s *Stack) Push(label string, shots []timeline.Shot) {
	s.past = append(s.past, Snapshot{
		Label: label,
		Shots: cloneShots(shots),
		Taken: time.Now(),
	})
	if len(s.past) > s.limit {
		s.past = s.past[len(s.past)-s.limit:]
	}
	s.future = nil
}

// Undo pops the most recent snapshot, stashing current for redo.
func (s *Stack) Undo(current []timeline.Shot) (Snapshot, bool) {
	if len(s.past) == 0 {
		return Snapshot{}, false
	}
	top := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, Snapshot{
		Label: top.Label,
		Shots: cloneShots(current),
		Taken: time.Now(),
	})
	return top, true
}

// Redo reverses the most recent Undo, stashing current back for undo.
func (s *Stack) Redo(current []timeline.Shot) (Snapshot, bool) {
	if len(s.future) == 0 {
		return Snapshot{}, false
	}
	top := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, Snapshot{
		Label: top.Label,
		Shots: cloneShots(current),
		Taken: time.Now(),
	})
	return top, true
}

// CanUndo reports whether an undo step is available.
func (s *Stack) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether a redo step is available.
func (s *Stack) CanRedo() bool { return len(s.future) > 0 }

// Clear drops all snapshots, e.g. after an external reload.
func (s *Stack) Clear() {
	s.past = nil
	s.future = nil
}
