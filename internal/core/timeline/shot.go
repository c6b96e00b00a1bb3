package timeline

import "fmt"

// Shot is the atomic placeable unit: a time-bounded window on the sequence
// owning an ordered collection of typed layers. A shot occupies the same
// start/duration across every lane its layers render in; each layer
// additionally carries its own window relative to the shot.
type Shot struct {
	ID        string  `json:"id"`
	StartTime Frame   `json:"start_time"`
	Duration  Frame   `json:"duration"`
	Layers    []Layer `json:"layers"`
}

// End returns the first frame after the shot.
func (s Shot) End() Frame {
	return s.StartTime + s.Duration
}

// Span returns the shot's absolute frame window.
func (s Shot) Span() Span {
	return Span{Start: s.StartTime, End: s.End()}
}

// Contains reports whether f lies within [StartTime, End).
func (s Shot) Contains(f Frame) bool {
	return s.Span().Contains(f)
}

// Inside reports whether f is strictly interior to the shot, i.e. a valid
// split point.
func (s Shot) Inside(f Frame) bool {
	return f > s.StartTime && f < s.End()
}

// AdjacentTo reports whether other begins exactly where this shot ends.
func (s Shot) AdjacentTo(other Shot) bool {
	return s.End() == other.StartTime
}

// LayersOfType returns the shot's layers of the given type in stacking
// order (insertion order within the filtered subsequence).
func (s Shot) LayersOfType(t LayerType) []Layer {
	var out []Layer
	for _, l := range s.Layers {
		if l.Type == t {
			out = append(out, l)
		}
	}
	return out
}

// MediaLayer returns the first media layer, or false if the shot has none.
func (s Shot) MediaLayer() (Layer, bool) {
	for _, l := range s.Layers {
		if l.Type == LayerMedia {
			return l, true
		}
	}
	return Layer{}, false
}

// Clone returns a deep copy of the shot and all of its layers.
func (s Shot) Clone() Shot {
	c := s
	c.Layers = make([]Layer, len(s.Layers))
	for i, l := range s.Layers {
		c.Layers[i] = l.Clone()
	}
	return c
}

// Validate checks the shot and its layers against the model invariants.
func (s Shot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("shot: missing id")
	}
	if s.StartTime < 0 {
		return fmt.Errorf("shot %s: negative start time %d", s.ID, s.StartTime)
	}
	if s.Duration < MinShotDuration {
		return fmt.Errorf("shot %s: duration %d below minimum %d", s.ID, s.Duration, MinShotDuration)
	}
	for _, l := range s.Layers {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("shot %s: %w", s.ID, err)
		}
		if l.StartTime+l.Duration > s.Duration {
			return fmt.Errorf("shot %s: layer %s window [%d, %d) exceeds shot duration %d",
				s.ID, l.ID, l.StartTime, l.StartTime+l.Duration, s.Duration)
		}
	}
	return nil
}
