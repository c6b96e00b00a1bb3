// Package edit implements the non-destructive edit algebra over a
// sequence: move, trim, split, ripple, roll, slip, slide, and
// transition/text/keyframe insertion.
//
// Every operation is a pure function of its inputs. Nothing is mutated;
// the result is a Delta describing replacement shots for the caller to
// apply. Operations that cannot satisfy their preconditions return an
// empty Delta carrying a Reason, never an error and never a partial
// application.
package edit

import (
	"slices"

	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/pkg/randid"
)

// Reason explains why an operation produced no effect.
// ENUM(not-found, out-of-bounds, invalid-adjacency, below-minimum-duration).
type Reason string

const (
	// ReasonNone marks a delta that applied (or a zero-delta request).
	ReasonNone Reason = ""
	// ReasonNotFound: a referenced shot or layer id is absent.
	ReasonNotFound Reason = "not-found"
	// ReasonOutOfBounds: a frame or position falls outside the valid span.
	ReasonOutOfBounds Reason = "out-of-bounds"
	// ReasonInvalidAdjacency: roll/transition requested on non-adjacent shots.
	ReasonInvalidAdjacency Reason = "invalid-adjacency"
	// ReasonBelowMinimumDuration: clamping left the edit with no progress to make.
	ReasonBelowMinimumDuration Reason = "below-minimum-duration"
)

// RippleScope controls which downstream shots a ripple edit shifts.
type RippleScope string

const (
	// RippleAllLanes shifts every downstream shot regardless of lane.
	RippleAllLanes RippleScope = "all-lanes"
	// RippleSharedLanes shifts only downstream shots sharing at least one
	// layer type with the edited shot.
	RippleSharedLanes RippleScope = "shared-lanes"
)

// Policy carries the tunable edit rules.
type Policy struct {
	MinDuration timeline.Frame
	RippleScope RippleScope
}

// DefaultPolicy returns the stock rules: one-frame minimum and
// lane-agnostic ripple.
func DefaultPolicy() Policy {
	return Policy{
		MinDuration: timeline.MinShotDuration,
		RippleScope: RippleAllLanes,
	}
}

// Delta is the declarative result of one operation: full replacement
// descriptors for changed shots, newly created shots, and removed ids.
// An empty delta carries the Reason the operation made no progress.
type Delta struct {
	Reason  Reason          `json:"reason,omitempty"`
	Changed []timeline.Shot `json:"changed,omitempty"`
	Added   []timeline.Shot `json:"added,omitempty"`
	Removed []string        `json:"removed,omitempty"`
	// Rippled lists the ids within Changed that moved as a side effect
	// rather than being the edit target.
	Rippled []string `json:"rippled,omitempty"`
}

// Empty reports whether the delta changes nothing.
func (d Delta) Empty() bool {
	return len(d.Changed) == 0 && len(d.Added) == 0 && len(d.Removed) == 0
}

// Apply produces a new shot slice with the delta applied. The input slice
// is not modified. Changed shots are replaced in place, removed ids
// filtered out, and added shots appended.
func (d Delta) Apply(shots []timeline.Shot) []timeline.Shot {
	if d.Empty() {
		return slices.Clone(shots)
	}

	changed := make(map[string]timeline.Shot, len(d.Changed))
	for _, sh := range d.Changed {
		changed[sh.ID] = sh
	}
	removed := make(map[string]struct{}, len(d.Removed))
	for _, id := range d.Removed {
		removed[id] = struct{}{}
	}

	out := make([]timeline.Shot, 0, len(shots)+len(d.Added))
	for _, sh := range shots {
		if _, gone := removed[sh.ID]; gone {
			continue
		}
		if repl, ok := changed[sh.ID]; ok {
			out = append(out, repl)
			continue
		}
		out = append(out, sh)
	}
	out = append(out, d.Added...)
	return out
}

func noEffect(r Reason) Delta {
	return Delta{Reason: r}
}

// Engine evaluates edit operations against a shot snapshot. It is
// stateless over the model: every call receives the full shot list and
// the engine caches nothing between calls.
type Engine struct {
	policy Policy
	newID  func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator overrides how ids for split/insert results are minted.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// New creates an engine with the given policy.
func New(policy Policy, opts ...Option) *Engine {
	if policy.MinDuration < 1 {
		policy.MinDuration = timeline.MinShotDuration
	}
	e := &Engine{
		policy: policy,
		newID:  func() string { return randid.Generate(8) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's edit rules.
func (e *Engine) Policy() Policy {
	return e.policy
}

func findShot(shots []timeline.Shot, id string) (timeline.Shot, bool) {
	for _, sh := range shots {
		if sh.ID == id {
			return sh, true
		}
	}
	return timeline.Shot{}, false
}

// Move shifts a shot by delta frames, clamping at frame zero. Duration is
// unaffected.
func (e *Engine) Move(shots []timeline.Shot, id string, delta timeline.Frame) Delta {
	shot, ok := findShot(shots, id)
	if !ok {
		return noEffect(ReasonNotFound)
	}

	newStart := timeline.ClampFrame(shot.StartTime + delta)
	if newStart == shot.StartTime {
		return noEffect(ReasonNone)
	}

	moved := shot.Clone()
	moved.StartTime = newStart
	return Delta{Changed: []timeline.Shot{moved}}
}
