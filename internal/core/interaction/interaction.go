// Package interaction implements the per-tool pointer-drag state machine
// that turns raw pointer events into edit engine calls.
//
// The machine owns drag state for exactly one gesture at a time and never
// mutates the model: pointer moves yield preview deltas, and only the
// delta returned on pointer-up is meant to be committed. Cancelling a
// gesture discards everything.
package interaction

import (
	"math"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/snap"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
)

// Tool is the active editing tool.
// ENUM(select, trim, ripple, roll, slip, slide, cut, transition, text, keyframe).
type Tool string

const (
	ToolSelect     Tool = "select"
	ToolTrim       Tool = "trim"
	ToolRipple     Tool = "ripple"
	ToolRoll       Tool = "roll"
	ToolSlip       Tool = "slip"
	ToolSlide      Tool = "slide"
	ToolCut        Tool = "cut"
	ToolTransition Tool = "transition"
	ToolText       Tool = "text"
	ToolKeyframe   Tool = "keyframe"
)

// Edge classifies where on a shot a pointer-down landed.
type Edge string

const (
	EdgeNone  Edge = "middle"
	EdgeStart Edge = "start-edge"
	EdgeEnd   Edge = "end-edge"
)

// Defaults for pointer classification.
const (
	DefaultEdgeTolerancePx = 10.0
	DefaultClickSlopPx     = 3.0
)

// Config tunes pointer classification and snapping during drags.
type Config struct {
	// EdgeTolerancePx is the pixel distance from a shot bound within
	// which a pointer-down grabs the edge instead of the body.
	EdgeTolerancePx float64
	// ClickSlopPx is the drag distance under which a gesture is
	// reclassified as a plain click on release.
	ClickSlopPx float64
	// SnapEnabled turns on magnetic snapping of the dragged boundary.
	SnapEnabled bool
	// SnapThresholdPx is the snap radius in pixels.
	SnapThresholdPx float64
	// GridStep is the grid candidate spacing in frames; zero disables
	// grid candidates.
	GridStep timeline.Frame
}

// DefaultConfig returns the stock interaction settings.
func DefaultConfig() Config {
	return Config{
		EdgeTolerancePx: DefaultEdgeTolerancePx,
		ClickSlopPx:     DefaultClickSlopPx,
		SnapEnabled:     true,
		SnapThresholdPx: snap.DefaultThresholdPx,
		GridStep:        1,
	}
}

// ClassifyEdge maps a pointer x to the zone of a shot laid out by the
// mapper: within tolerance of a bound grabs that edge, otherwise the body.
// The start edge wins when the shot is narrower than both tolerances.
func ClassifyEdge(shot timeline.Shot, x float64, m timecode.Mapper, tolerancePx float64) Edge {
	startX := m.FrameToPixel(shot.StartTime)
	endX := m.FrameToPixel(shot.End())
	if math.Abs(x-startX) <= tolerancePx {
		return EdgeStart
	}
	if math.Abs(x-endX) <= tolerancePx {
		return EdgeEnd
	}
	return EdgeNone
}

// gesture is the dragging-state payload.
type gesture struct {
	tool        Tool
	targetID    string
	rollRightID string
	edge        Edge
	originX     float64
	originFrame timeline.Frame
	mapper      timecode.Mapper
	resolver    *snap.Resolver
	moved       bool
	lastDelta   timeline.Frame
}

// Machine is the drag state machine: idle until a pointer-down starts a
// gesture, dragging until pointer-up or cancel.
type Machine struct {
	cfg    Config
	engine *edit.Engine
	g      *gesture
}

// NewMachine creates a machine driving the given engine.
func NewMachine(engine *edit.Engine, cfg Config) *Machine {
	return &Machine{cfg: cfg, engine: engine}
}

// Dragging reports whether a gesture is in progress.
func (m *Machine) Dragging() bool {
	return m.g != nil
}

// Target returns the dragged shot id, or empty when idle.
func (m *Machine) Target() string {
	if m.g == nil {
		return ""
	}
	return m.g.targetID
}

// PointerDown starts a gesture on a shot. It reports whether a gesture
// began: a second pointer-down while dragging is ignored, as is a tool
// whose preconditions fail at the click position (roll without a
// right-adjacent neighbor, trim away from an edge).
func (m *Machine) PointerDown(shots []timeline.Shot, id string, x float64, mapper timecode.Mapper, tool Tool) bool {
	if m.g != nil {
		return false
	}
	shot, ok := findShot(shots, id)
	if !ok {
		return false
	}

	edge := ClassifyEdge(shot, x, mapper, m.cfg.EdgeTolerancePx)
	g := &gesture{
		tool:     tool,
		targetID: id,
		edge:     edge,
		originX:  x,
		mapper:   mapper,
	}

	switch tool {
	case ToolSelect, ToolSlide:
		g.originFrame = shot.StartTime
	case ToolTrim, ToolRipple:
		if edge == EdgeNone {
			// body drags under an edge tool behave like a move grab
			g.originFrame = shot.StartTime
			g.tool = ToolSelect
		} else if edge == EdgeStart {
			g.originFrame = shot.StartTime
		} else {
			g.originFrame = shot.End()
		}
	case ToolRoll:
		if edge != EdgeEnd {
			return false
		}
		right, ok := rightNeighbor(shots, shot)
		if !ok {
			return false
		}
		g.rollRightID = right.ID
		g.originFrame = shot.End()
	case ToolSlip:
		g.originFrame = shot.StartTime
	default:
		// click tools do not drag
		return false
	}

	if m.cfg.SnapEnabled && tool != ToolSlip && tool != ToolRoll {
		g.resolver = snap.NewResolver(shots, id)
	}
	m.g = g
	return true
}

// PointerMove recomputes the drag delta and returns the preview delta for
// the new pointer position. The second return is false when nothing
// changed: sub-slop jitter, a delta identical to the last one, or no
// active gesture.
func (m *Machine) PointerMove(shots []timeline.Shot, x float64) (edit.Delta, bool) {
	g := m.g
	if g == nil {
		return edit.Delta{}, false
	}

	dx := x - g.originX
	if !g.moved && math.Abs(dx) <= m.cfg.ClickSlopPx {
		return edit.Delta{}, false
	}
	g.moved = true

	delta := m.resolveDelta(g, dx)
	if delta == g.lastDelta {
		return edit.Delta{}, false
	}
	g.lastDelta = delta
	// delta zero still reports true so the caller drops a stale preview
	return m.evaluate(shots, g, delta), true
}

// Commit is the outcome of a finished gesture.
type Commit struct {
	// Delta is the final edit to apply; empty for clicks and cancels.
	Delta edit.Delta
	// Click is set when the gesture never left the slop radius and should
	// be treated as a plain click (selection), not a move.
	Click bool
	// TargetID is the shot the gesture was on.
	TargetID string
}

// PointerUp ends the gesture and returns the delta to commit. A gesture
// that never exceeded the slop distance is reclassified as a click.
func (m *Machine) PointerUp(shots []timeline.Shot, x float64) Commit {
	g := m.g
	if g == nil {
		return Commit{}
	}
	m.g = nil

	if !g.moved {
		return Commit{Click: true, TargetID: g.targetID}
	}

	delta := m.resolveDelta(g, x-g.originX)
	if delta == 0 {
		return Commit{TargetID: g.targetID}
	}
	return Commit{Delta: m.evaluate(shots, g, delta), TargetID: g.targetID}
}

// Cancel discards the in-flight gesture; the caller's model was never
// touched, so pre-drag values simply remain in force.
func (m *Machine) Cancel() {
	m.g = nil
}

// resolveDelta converts a pixel offset to a frame delta, snapping the
// dragged boundary to nearby candidates when enabled.
func (m *Machine) resolveDelta(g *gesture, dx float64) timeline.Frame {
	delta := g.mapper.DeltaFrames(dx)
	if g.resolver == nil {
		return delta
	}

	proposed := float64(g.originFrame) + dx/g.mapper.PixelsPerFrame
	res := g.resolver.Resolve(proposed, snap.Options{
		ThresholdFrames: g.mapper.FrameDistance(m.cfg.SnapThresholdPx),
		GridStep:        m.cfg.GridStep,
	})
	if res.Snapped {
		return res.Frame - g.originFrame
	}
	return delta
}

// evaluate dispatches the gesture to the engine operation for its tool.
func (m *Machine) evaluate(shots []timeline.Shot, g *gesture, delta timeline.Frame) edit.Delta {
	switch g.tool {
	case ToolSelect:
		return m.engine.Move(shots, g.targetID, delta)
	case ToolTrim:
		if g.edge == EdgeStart {
			return m.engine.TrimStart(shots, g.targetID, delta)
		}
		return m.engine.TrimEnd(shots, g.targetID, delta)
	case ToolRipple:
		if g.edge == EdgeStart {
			return m.engine.RippleStart(shots, g.targetID, delta)
		}
		return m.engine.RippleEnd(shots, g.targetID, delta)
	case ToolRoll:
		return m.engine.Roll(shots, g.targetID, g.rollRightID, delta)
	case ToolSlip:
		return m.engine.Slip(shots, g.targetID, delta)
	case ToolSlide:
		return m.engine.Slide(shots, g.targetID, delta)
	}
	return edit.Delta{}
}

// Tap applies a click tool at an absolute frame on a shot: cut splits,
// text and keyframe insert, transition joins the shot to its right
// neighbor. Drag tools return an empty delta from Tap.
func (m *Machine) Tap(shots []timeline.Shot, id string, frame timeline.Frame, tool Tool, params TapParams) edit.Delta {
	switch tool {
	case ToolCut:
		return m.engine.Split(shots, id, frame)
	case ToolText:
		return m.engine.AddText(shots, id, frame, params.Text)
	case ToolKeyframe:
		return m.engine.AddKeyframe(shots, id, frame, params.Property, params.Value)
	case ToolTransition:
		shot, ok := findShot(shots, id)
		if !ok {
			return edit.Delta{}
		}
		right, ok := rightNeighbor(shots, shot)
		if !ok {
			return edit.Delta{}
		}
		return m.engine.AddTransition(shots, id, right.ID, params.Transition, params.Duration)
	}
	return edit.Delta{}
}

// TapParams carries the payload for click-tool insertions.
type TapParams struct {
	Text       string
	Property   string
	Value      float64
	Transition timeline.TransitionKind
	Duration   timeline.Frame
}

func findShot(shots []timeline.Shot, id string) (timeline.Shot, bool) {
	for _, sh := range shots {
		if sh.ID == id {
			return sh, true
		}
	}
	return timeline.Shot{}, false
}

// rightNeighbor finds the shot starting exactly at shot's end.
func rightNeighbor(shots []timeline.Shot, shot timeline.Shot) (timeline.Shot, bool) {
	for _, sh := range shots {
		if sh.ID != shot.ID && shot.AdjacentTo(sh) {
			return sh, true
		}
	}
	return timeline.Shot{}, false
}
