package edit

import (
	"cmp"
	"slices"

	"github.com/framecut/framecut/internal/core/timeline"
)

// AddTransition places a transition layer at the incoming edge of the
// right shot of an adjacent pair. The transition duration is clipped to
// the right shot's duration.
func (e *Engine) AddTransition(shots []timeline.Shot, leftID, rightID string, kind timeline.TransitionKind, duration timeline.Frame) Delta {
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
	if duration < 1 {
		return noEffect(ReasonOutOfBounds)
	}

	changed := right.Clone()
	changed.Layers = append(changed.Layers, timeline.Layer{
		ID:         e.newID(),
		Type:       timeline.LayerTransitions,
		StartTime:  0,
		Duration:   min(duration, right.Duration),
		Opacity:    1,
		Transition: &timeline.TransitionPayload{Kind: kind},
	})
	return Delta{Changed: []timeline.Shot{changed}}
}

// AddText inserts a text layer starting at an absolute frame within the
// shot and running to the shot's end.
func (e *Engine) AddText(shots []timeline.Shot, id string, frame timeline.Frame, content string) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}
	if !shot.Contains(frame) {
		return noEffect(ReasonOutOfBounds)
	}

	rel := frame - shot.StartTime
	changed := shot.Clone()
	changed.Layers = append(changed.Layers, timeline.Layer{
		ID:        e.newID(),
		Type:      timeline.LayerText,
		StartTime: rel,
		Duration:  shot.Duration - rel,
		Opacity:   1,
		Text:      &timeline.TextPayload{Content: content},
	})
	return Delta{Changed: []timeline.Shot{changed}}
}

// AddKeyframe upserts a keyframe for a property at an absolute frame
// within the shot. An existing layer animating the same property receives
// the point, replacing any keyframe at the exact same relative frame;
// otherwise a new keyframe layer spanning the shot is created. The curve
// stays sorted by time.
func (e *Engine) AddKeyframe(shots []timeline.Shot, id string, frame timeline.Frame, property string, value float64) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}
	if !shot.Contains(frame) {
		return noEffect(ReasonOutOfBounds)
	}

	rel := frame - shot.StartTime
	changed := shot.Clone()

	for i := range changed.Layers {
		l := &changed.Layers[i]
		if l.Type != timeline.LayerKeyframes || l.Keyframes == nil || l.Keyframes.Property != property {
			continue
		}
		upsertKeyframe(l.Keyframes, timeline.Keyframe{Time: rel, Value: value})
		return Delta{Changed: []timeline.Shot{changed}}
	}

	changed.Layers = append(changed.Layers, timeline.Layer{
		ID:        e.newID(),
		Type:      timeline.LayerKeyframes,
		StartTime: 0,
		Duration:  shot.Duration,
		Opacity:   1,
		Keyframes: &timeline.KeyframePayload{
			Property:  property,
			Keyframes: []timeline.Keyframe{{Time: rel, Value: value}},
		},
	})
	return Delta{Changed: []timeline.Shot{changed}}
}

func upsertKeyframe(p *timeline.KeyframePayload, kf timeline.Keyframe) {
	for i, existing := range p.Keyframes {
		if existing.Time == kf.Time {
			p.Keyframes[i] = kf
			return
		}
	}
	p.Keyframes = append(p.Keyframes, kf)
	slices.SortFunc(p.Keyframes, func(a, b timeline.Keyframe) int {
		return cmp.Compare(a.Time, b.Time)
	})
}
