// Package timeline defines the sequence domain types and their invariants:
// shots, layers, tracks, markers, and regions.
//
// All positions and durations are integral frame counts. The package owns
// validity only; edits are computed by the edit package and applied by the
// caller that owns the sequence.
package timeline

// Frame is the sole unit of time: a non-negative count of frames from the
// sequence origin. There are no fractional frames.
type Frame int64

// MinShotDuration is the smallest duration any shot may have after an edit.
const MinShotDuration Frame = 1

// ClampFrame returns f clamped to be non-negative.
func ClampFrame(f Frame) Frame {
	if f < 0 {
		return 0
	}
	return f
}

// Span is a half-open frame interval [Start, End).
type Span struct {
	Start Frame `json:"start"`
	End   Frame `json:"end"`
}

// Contains reports whether f lies within the span.
func (s Span) Contains(f Frame) bool {
	return f >= s.Start && f < s.End
}

// Overlaps reports whether two spans share at least one frame.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Duration returns the span length in frames.
func (s Span) Duration() Frame {
	return s.End - s.Start
}
