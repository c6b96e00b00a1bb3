package edit

import "github.com/framecut/framecut/internal/core/timeline"

// trimStart computes the clamped front trim for a shot. The returned
// actual delta is the start movement after clamping against frame zero
// and the minimum duration.
func (e *Engine) trimStart(shot timeline.Shot, delta timeline.Frame) (timeline.Shot, timeline.Frame) {
	actual := delta
	if shot.StartTime+actual < 0 {
		actual = -shot.StartTime
	}
	if shot.Duration-actual < e.policy.MinDuration {
		actual = shot.Duration - e.policy.MinDuration
	}
	if actual == 0 {
		return shot, 0
	}

	trimmed := shot.Clone()
	trimmed.StartTime = shot.StartTime + actual
	trimmed.Duration = shot.Duration - actual
	trimmed.Layers = rewindowLayers(shot.Layers, actual, trimmed.Duration)
	return trimmed, actual
}

// trimEnd computes the clamped end trim for a shot. Start never moves.
func (e *Engine) trimEnd(shot timeline.Shot, delta timeline.Frame) (timeline.Shot, timeline.Frame) {
	newDur := shot.Duration + delta
	if newDur < e.policy.MinDuration {
		newDur = e.policy.MinDuration
	}
	if newDur == shot.Duration {
		return shot, 0
	}

	trimmed := shot.Clone()
	trimmed.Duration = newDur
	trimmed.Layers = rewindowLayers(shot.Layers, 0, newDur)
	return trimmed, newDur - shot.Duration
}

func trimFailure(requested timeline.Frame) Delta {
	switch {
	case requested > 0:
		return noEffect(ReasonBelowMinimumDuration)
	case requested < 0:
		return noEffect(ReasonOutOfBounds)
	}
	return noEffect(ReasonNone)
}

// TrimStart shortens or extends a shot from the front. Positive delta
// removes frames; the start movement is clamped so the start stays
// non-negative and the duration stays at or above the minimum.
func (e *Engine) TrimStart(shots []timeline.Shot, id string, delta timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}

	trimmed, actual := e.trimStart(shot, delta)
	if actual == 0 {
		return trimFailure(delta)
	}
	return Delta{Changed: []timeline.Shot{trimmed}}
}

// TrimEnd lengthens or shortens a shot from the back. The start never
// moves; shrinking clamps at the minimum duration.
func (e *Engine) TrimEnd(shots []timeline.Shot, id string, delta timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}

	trimmed, actual := e.trimEnd(shot, delta)
	if actual == 0 {
		switch {
		case delta < 0:
			return noEffect(ReasonBelowMinimumDuration)
		default:
			return noEffect(ReasonNone)
		}
	}
	return Delta{Changed: []timeline.Shot{trimmed}}
}

// sharesLane reports whether two shots render in at least one common lane
// type, the membership rule used by the shared-lanes ripple scope.
func sharesLane(a, b timeline.Shot) bool {
	types := make(map[timeline.LayerType]struct{}, len(a.Layers))
	for _, l := range a.Layers {
		types[l.Type] = struct{}{}
	}
	for _, l := range b.Layers {
		if _, ok := types[l.Type]; ok {
			return true
		}
	}
	return false
}

// ripple shifts every downstream shot (startTime at or past the edited
// shot's old end) by rippleDelta, honoring the configured scope.
func (e *Engine) ripple(shots []timeline.Shot, edited timeline.Shot, oldEnd, rippleDelta timeline.Frame) (changed []timeline.Shot, rippled []string) {
	for _, sh := range shots {
		if sh.ID == edited.ID || sh.StartTime < oldEnd {
			continue
		}
		if e.policy.RippleScope == RippleSharedLanes && !sharesLane(edited, sh) {
			continue
		}
		newStart := timeline.ClampFrame(sh.StartTime + rippleDelta)
		if newStart == sh.StartTime {
			continue
		}
		moved := sh.Clone()
		moved.StartTime = newStart
		changed = append(changed, moved)
		rippled = append(rippled, moved.ID)
	}
	return changed, rippled
}

// RippleStart trims a shot's front and shifts downstream shots by the
// duration change.
func (e *Engine) RippleStart(shots []timeline.Shot, id string, delta timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}

	trimmed, actual := e.trimStart(shot, delta)
	if actual == 0 {
		return trimFailure(delta)
	}

	rippleDelta := shot.Duration - trimmed.Duration
	changed, rippled := e.ripple(shots, shot, shot.End(), rippleDelta)
	return Delta{
		Changed: append([]timeline.Shot{trimmed}, changed...),
		Rippled: rippled,
	}
}

// RippleEnd trims a shot's back and shifts downstream shots by the
// duration change, closing or opening the gap uniformly.
func (e *Engine) RippleEnd(shots []timeline.Shot, id string, delta timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}

	trimmed, actual := e.trimEnd(shot, delta)
	if actual == 0 {
		if delta < 0 {
			return noEffect(ReasonBelowMinimumDuration)
		}
		return noEffect(ReasonNone)
	}

	rippleDelta := trimmed.Duration - shot.Duration
	changed, rippled := e.ripple(shots, shot, shot.End(), rippleDelta)
	return Delta{
		Changed: append([]timeline.Shot{trimmed}, changed...),
		Rippled: rippled,
	}
}

// Roll adjusts the shared boundary of two exactly adjacent shots. The
// left shot's duration absorbs delta, the right shot absorbs the inverse,
// and their combined span is preserved. Both sides are clamped to the
// minimum duration.
func (e *Engine) Roll(shots []timeline.Shot, leftID, rightID string, delta timeline.Frame) Delta {
	left, ok := findShot(shots, leftID)
	if !ok {
		return noEffect(ReasonNotFound)
	}
	right, ok := findShot(shots, rightID)
	if !ok {
		return noEffect(ReasonNotFound)
	}
	if !left.AdjacentTo(right) {
		return noEffect(ReasonInvalidAdjacency)
	}

	combined := left.Duration + right.Duration
	leftNewDur := left.Duration + delta
	if leftNewDur < e.policy.MinDuration {
		leftNewDur = e.policy.MinDuration
	}
	if combined-leftNewDur < e.policy.MinDuration {
		leftNewDur = combined - e.policy.MinDuration
	}
	if leftNewDur == left.Duration {
		if delta == 0 {
			return noEffect(ReasonNone)
		}
		return noEffect(ReasonBelowMinimumDuration)
	}

	actual := leftNewDur - left.Duration

	newLeft, _ := e.trimEnd(left, actual)
	newRight, _ := e.trimStart(right, actual)
	// trimStart moves right's start by the same clamped delta, keeping the
	// junction at left.StartTime + leftNewDur.
	return Delta{Changed: []timeline.Shot{newLeft, newRight}}
}
