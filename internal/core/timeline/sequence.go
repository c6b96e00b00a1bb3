package timeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Sequence is a full editable timeline: the inbound snapshot every engine
// call receives and the unit the store persists. FPS is a display
// parameter for timecode formatting only; it never affects frame math.
type Sequence struct {
	Name    string   `json:"name"`
	FPS     int      `json:"fps"`
	Shots   []Shot   `json:"shots"`
	Tracks  []Track  `json:"tracks"`
	Markers []Marker `json:"markers,omitempty"`
	Regions []Region `json:"regions,omitempty"`
}

// ShotByID returns the shot with the given id.
func (s *Sequence) ShotByID(id string) (Shot, bool) {
	for _, sh := range s.Shots {
		if sh.ID == id {
			return sh, true
		}
	}
	return Shot{}, false
}

// TrackByID returns the track with the given id.
func (s *Sequence) TrackByID(id string) (Track, bool) {
	for _, t := range s.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// End returns the first frame after the last shot, or 0 for an empty
// sequence.
func (s *Sequence) End() Frame {
	var end Frame
	for _, sh := range s.Shots {
		if sh.End() > end {
			end = sh.End()
		}
	}
	return end
}

// SortShots orders shots by start time, then id for a stable order between
// shots starting on the same frame.
func (s *Sequence) SortShots() {
	slices.SortStableFunc(s.Shots, func(a, b Shot) int {
		if c := cmp.Compare(a.StartTime, b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// MoveTrack reorders the track at index from to index to. Out-of-range
// indexes are ignored.
func (s *Sequence) MoveTrack(from, to int) {
	if from < 0 || from >= len(s.Tracks) || to < 0 || to >= len(s.Tracks) || from == to {
		return
	}
	t := s.Tracks[from]
	s.Tracks = slices.Delete(s.Tracks, from, from+1)
	s.Tracks = slices.Insert(s.Tracks, to, t)
}

// RemoveShot deletes the shot with the given id and reports whether it was
// present.
func (s *Sequence) RemoveShot(id string) bool {
	for i, sh := range s.Shots {
		if sh.ID == id {
			s.Shots = slices.Delete(s.Shots, i, i+1)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	c := &Sequence{Name: s.Name, FPS: s.FPS}
	c.Shots = make([]Shot, len(s.Shots))
	for i, sh := range s.Shots {
		c.Shots[i] = sh.Clone()
	}
	c.Tracks = append([]Track(nil), s.Tracks...)
	c.Markers = append([]Marker(nil), s.Markers...)
	c.Regions = append([]Region(nil), s.Regions...)
	return c
}

// Validate checks every element and cross-element invariants. Duplicate
// ids are rejected across shots and tracks independently.
func (s *Sequence) Validate() error {
	if s.FPS < 1 {
		return fmt.Errorf("sequence: fps %d below 1", s.FPS)
	}
	seenShots := make(map[string]struct{}, len(s.Shots))
	for _, sh := range s.Shots {
		if err := sh.Validate(); err != nil {
			return err
		}
		if _, dup := seenShots[sh.ID]; dup {
			return fmt.Errorf("sequence: duplicate shot id %s", sh.ID)
		}
		seenShots[sh.ID] = struct{}{}
	}
	seenTracks := make(map[string]struct{}, len(s.Tracks))
	for _, t := range s.Tracks {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seenTracks[t.ID]; dup {
			return fmt.Errorf("sequence: duplicate track id %s", t.ID)
		}
		seenTracks[t.ID] = struct{}{}
	}
	for _, m := range s.Markers {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, r := range s.Regions {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
