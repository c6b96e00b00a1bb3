package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/interaction"
	"github.com/framecut/framecut/internal/core/layout"
	"github.com/framecut/framecut/internal/core/selection"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
)

// isClickTool reports whether the tool applies on click instead of drag.
func isClickTool(t interaction.Tool) bool {
	switch t {
	case interaction.ToolCut, interaction.ToolText, interaction.ToolKeyframe, interaction.ToolTransition:
		return true
	}
	return false
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px := float64(msg.X)
	py := float64(msg.Y - rulerRows)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollTop = max(0, m.scrollTop-1)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollTop++
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.pointerDown(px, py, msg.Ctrl || msg.Shift)
	case tea.MouseActionMotion:
		return m.pointerMove(px, py)
	case tea.MouseActionRelease:
		return m.pointerUp(px, py)
	}
	return m, nil
}

func (m Model) pointerDown(px, py float64, additive bool) (tea.Model, tea.Cmd) {
	lay := m.computeLayout()
	shotID, ok := hitTest(lay, px, py)
	if !ok {
		if m.tool == interaction.ToolSelect {
			m.marquee = &marqueeDrag{x0: px, y0: py, x1: px, y1: py, additive: additive}
		}
		return m, nil
	}

	m.clickAdditive = additive
	if isClickTool(m.tool) {
		frame := m.mapper.PixelToFrame(px, timecode.SnapToFrame)
		delta := m.machine.Tap(m.project.Sequence.Shots, shotID, frame, m.tool, tapParams(m.tool))
		return m.applyDelta(delta), nil
	}

	if !m.machine.PointerDown(m.project.Sequence.Shots, shotID, px, m.mapper, m.tool) {
		m.status = "cannot start gesture here"
	}
	return m, nil
}

func (m Model) pointerMove(px, py float64) (tea.Model, tea.Cmd) {
	if m.marquee != nil {
		m.marquee.x1 = px
		m.marquee.y1 = py
		return m, nil
	}
	if !m.machine.Dragging() {
		return m, nil
	}
	delta, changed := m.machine.PointerMove(m.project.Sequence.Shots, px)
	if changed {
		if delta.Empty() && delta.Reason == edit.ReasonNone {
			m.preview = nil
		} else {
			m.preview = &delta
		}
	}
	return m, nil
}

func (m Model) pointerUp(px, py float64) (tea.Model, tea.Cmd) {
	if mq := m.marquee; mq != nil {
		m.marquee = nil
		lay := m.computeLayout()
		box := selection.NormalizedRect(mq.x0, mq.y0, mq.x1, mq.y1)
		m.selected = selection.Marquee(box, lay.SelectionItems(), m.selected, mq.additive)
		return m, nil
	}
	if !m.machine.Dragging() {
		return m, nil
	}

	commit := m.machine.PointerUp(m.project.Sequence.Shots, px)
	m.preview = nil
	if commit.Click {
		if m.clickAdditive {
			m.selected = selection.Toggle(commit.TargetID, m.selected)
		} else {
			m.selected = selection.Select(commit.TargetID)
		}
		return m, nil
	}
	return m.applyDelta(commit.Delta), nil
}

// tapParams supplies the stock payload for each click tool.
func tapParams(t interaction.Tool) interaction.TapParams {
	switch t {
	case interaction.ToolText:
		return interaction.TapParams{Text: defaultTextContent}
	case interaction.ToolKeyframe:
		return interaction.TapParams{Property: defaultKeyframeProperty, Value: defaultKeyframeValue}
	case interaction.ToolTransition:
		return interaction.TapParams{Transition: timeline.TransitionCrossfade, Duration: defaultTransitionDuration}
	}
	return interaction.TapParams{}
}

// applyDelta commits an engine result to the project, keeping selection
// consistent with removed shots.
func (m Model) applyDelta(delta edit.Delta) Model {
	if delta.Reason != edit.ReasonNone {
		m.status = blockedMessage(delta.Reason)
		return m
	}
	if delta.Empty() {
		return m
	}
	m.undo.Push(string(m.tool), m.project.Sequence.Shots)
	m.project.Sequence.Shots = delta.Apply(m.project.Sequence.Shots)
	m.project.Sequence.SortShots()
	m.selected = selection.Invalidate(m.selected, shotIDs(m.project.Sequence.Shots))
	m.dirty = true
	m.status = editSummary(delta)
	return m
}

func blockedMessage(r edit.Reason) string {
	switch r {
	case edit.ReasonNotFound:
		return "shot not found"
	case edit.ReasonOutOfBounds:
		return "blocked at timeline start"
	case edit.ReasonInvalidAdjacency:
		return "shots are not adjacent"
	case edit.ReasonBelowMinimumDuration:
		return "below minimum shot duration"
	}
	return string(r)
}

func editSummary(d edit.Delta) string {
	switch {
	case len(d.Added) > 0 && len(d.Removed) > 0:
		return "split applied"
	case len(d.Added) > 0:
		return "shot added"
	case len(d.Rippled) > 0:
		return "edit applied, downstream rippled"
	default:
		return "edit applied"
	}
}

// hitTest finds the shot box under a viewport point.
func hitTest(lay layout.Layout, px, py float64) (string, bool) {
	for _, row := range lay.Rows {
		if py < row.Y || py >= row.Y+row.Height {
			continue
		}
		for _, sb := range row.Shots {
			if px >= sb.Rect.X && px < sb.Rect.X+sb.Rect.W {
				return sb.ShotID, true
			}
		}
	}
	return "", false
}
