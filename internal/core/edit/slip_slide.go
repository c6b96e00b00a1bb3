package edit

import (
	"cmp"
	"slices"

	"github.com/framecut/framecut/internal/core/timeline"
)

// Slip shifts a shot's internal media trim window by delta frames without
// moving the shot on the timeline or changing its duration. The shift is
// clamped so the trim window never reaches before source frame zero.
// Fails when the shot has no media layer.
func (e *Engine) Slip(shots []timeline.Shot, id string, delta timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}

	slipped := shot.Clone()
	var media *timeline.MediaPayload
	for i := range slipped.Layers {
		if slipped.Layers[i].Type == timeline.LayerMedia {
			media = slipped.Layers[i].Media
			break
		}
	}
	if media == nil {
		return noEffect(ReasonNotFound)
	}

	actual := delta
	if media.TrimStart+actual < 0 {
		actual = -media.TrimStart
	}
	if actual == 0 {
		if delta < 0 {
			return noEffect(ReasonOutOfBounds)
		}
		return noEffect(ReasonNone)
	}

	media.TrimStart += actual
	media.TrimEnd += actual
	return Delta{Changed: []timeline.Shot{slipped}}
}

// Slide moves a shot while shifting the immediately adjacent neighbors it
// encroaches on by the same delta, walking outward in the direction of
// motion while the displaced span keeps overlapping the next neighbor.
// The walk stops at the first gap wide enough to absorb the motion.
func (e *Engine) Slide(shots []timeline.Shot, id string, delta timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}

	newStart := timeline.ClampFrame(shot.StartTime + delta)
	actual := newStart - shot.StartTime
	if actual == 0 {
		if delta < 0 {
			return noEffect(ReasonOutOfBounds)
		}
		return noEffect(ReasonNone)
	}

	moved := shot.Clone()
	moved.StartTime = newStart
	changed := []timeline.Shot{moved}

	// Neighbors on the encroached side, nearest first.
	var neighbors []timeline.Shot
	for _, sh := range shots {
		if sh.ID == id {
			continue
		}
		if actual > 0 && sh.StartTime >= shot.StartTime {
			neighbors = append(neighbors, sh)
		}
		if actual < 0 && sh.End() <= shot.End() {
			neighbors = append(neighbors, sh)
		}
	}
	if actual > 0 {
		slices.SortStableFunc(neighbors, func(a, b timeline.Shot) int {
			return cmp.Compare(a.StartTime, b.StartTime)
		})
	} else {
		slices.SortStableFunc(neighbors, func(a, b timeline.Shot) int {
			return cmp.Compare(b.End(), a.End())
		})
	}

	front := moved.Span()
	for _, sh := range neighbors {
		if !front.Overlaps(sh.Span()) {
			break
		}
		shifted := sh.Clone()
		shifted.StartTime = timeline.ClampFrame(sh.StartTime + actual)
		changed = append(changed, shifted)
		front = shifted.Span()
	}

	return Delta{Changed: changed}
}
