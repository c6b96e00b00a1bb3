// Package snap resolves proposed timeline positions against magnetic
// candidates: the frame grid and the boundaries of other shots.
package snap

import (
	"math"
	"slices"

	"github.com/framecut/framecut/internal/core/timeline"
)

// DefaultThresholdPx is the snap radius in pixels; callers convert it to
// frames through the current zoom before resolving.
const DefaultThresholdPx = 5.0

// Source identifies which candidate kind attracted a position.
type Source string

const (
	SourceNone     Source = "none"
	SourceGrid     Source = "grid"
	SourceBoundary Source = "boundary"
)

// Result is a resolved position. When no candidate lies within the
// threshold, Frame is the rounded proposed position and Snapped is false.
type Result struct {
	Frame   timeline.Frame
	Snapped bool
	Source  Source
}

// Options tunes a single resolution.
type Options struct {
	// ThresholdFrames is the snap radius in frame units (pixel threshold
	// divided by pixels-per-frame). A candidate at exactly this distance
	// still snaps.
	ThresholdFrames float64
	// GridStep enables grid snapping when positive; candidates are every
	// multiple of the step.
	GridStep timeline.Frame
	// Visible, when non-zero, restricts grid candidates to this span.
	Visible timeline.Span
}

// Resolver holds the sorted boundary set of the non-dragged shots.
// Build it once per gesture; resolution is then a binary search rather
// than a scan over every shot.
type Resolver struct {
	boundaries []timeline.Frame
}

// NewResolver collects the snap boundaries of every shot except excludeID:
// frame zero plus each shot's start and end.
func NewResolver(shots []timeline.Shot, excludeID string) *Resolver {
	bounds := make([]timeline.Frame, 0, len(shots)*2+1)
	bounds = append(bounds, 0)
	for _, sh := range shots {
		if sh.ID == excludeID {
			continue
		}
		bounds = append(bounds, sh.StartTime, sh.End())
	}
	slices.Sort(bounds)
	return &Resolver{boundaries: slices.Compact(bounds)}
}

// nearestBoundary returns the boundary closest to pos, or false when no
// boundaries exist.
func (r *Resolver) nearestBoundary(pos float64) (timeline.Frame, bool) {
	if len(r.boundaries) == 0 {
		return 0, false
	}
	// First boundary >= pos; the nearest is that one or its predecessor.
	i, _ := slices.BinarySearch(r.boundaries, timeline.Frame(math.Ceil(pos)))
	best := r.boundaries[min(i, len(r.boundaries)-1)]
	if i > 0 {
		prev := r.boundaries[i-1]
		if math.Abs(pos-float64(prev)) < math.Abs(pos-float64(best)) {
			best = prev
		}
	}
	return best, true
}

// Resolve maps a proposed position (in exact, possibly fractional frames)
// to the nearest candidate within the threshold. Positions farther than
// the threshold from every candidate return unchanged rather than
// teleporting. At equal distance the grid candidate wins over a boundary.
func (r *Resolver) Resolve(proposed float64, opts Options) Result {
	unsnapped := Result{
		Frame:   timeline.ClampFrame(timeline.Frame(math.Round(proposed))),
		Snapped: false,
		Source:  SourceNone,
	}

	type candidate struct {
		frame timeline.Frame
		dist  float64
		src   Source
	}
	var best *candidate

	consider := func(frame timeline.Frame, src Source) {
		if frame < 0 {
			return
		}
		dist := math.Abs(proposed - float64(frame))
		if dist > opts.ThresholdFrames {
			return
		}
		// Strict less keeps the earlier-considered source on ties; grid
		// is considered first and therefore wins them.
		if best == nil || dist < best.dist {
			best = &candidate{frame: frame, dist: dist, src: src}
		}
	}

	if opts.GridStep > 0 {
		step := float64(opts.GridStep)
		grid := timeline.Frame(math.Round(proposed/step)) * opts.GridStep
		inVisible := opts.Visible == timeline.Span{} ||
			(grid >= opts.Visible.Start && grid <= opts.Visible.End)
		if inVisible {
			consider(grid, SourceGrid)
		}
	}

	if b, ok := r.nearestBoundary(proposed); ok {
		consider(b, SourceBoundary)
	}

	if best == nil {
		return unsnapped
	}
	return Result{Frame: best.frame, Snapped: true, Source: best.src}
}
