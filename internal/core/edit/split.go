package edit

import "github.com/framecut/framecut/internal/core/timeline"

// Split cuts a shot in two at an absolute frame. The frame must be
// strictly inside the shot; a cut on either boundary would produce a
// zero-length piece and is rejected outright rather than clamped.
//
// The left piece keeps the original id; the right piece is a new shot
// starting at the cut. Layers are partitioned onto both sides and
// re-windowed to each piece's span; a layer with no frames on one side is
// dropped from that side.
func (e *Engine) Split(shots []timeline.Shot, id string, frame timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}
	if !shot.Inside(frame) {
		return noEffect(ReasonOutOfBounds)
	}

	leftDur := frame - shot.StartTime
	rightDur := shot.Duration - leftDur

	left := shot.Clone()
	left.Duration = leftDur
	left.Layers = rewindowLayers(shot.Layers, 0, leftDur)

	right := timeline.Shot{
		ID:        e.newID(),
		StartTime: frame,
		Duration:  rightDur,
		Layers:    e.renumberLayerIDs(rewindowLayers(shot.Layers, leftDur, rightDur)),
	}

	return Delta{
		Changed: []timeline.Shot{left},
		Added:   []timeline.Shot{right},
	}
}
