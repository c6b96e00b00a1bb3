package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/framecut/framecut/internal/core/layout"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
)

var (
	rulerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	dirtyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236"))

	laneStyles = map[timeline.LayerType]lipgloss.Style{
		timeline.LayerMedia:       lipgloss.NewStyle().Background(lipgloss.Color("25")).Foreground(lipgloss.Color("231")),
		timeline.LayerAudio:       lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("231")),
		timeline.LayerEffects:     lipgloss.NewStyle().Background(lipgloss.Color("55")).Foreground(lipgloss.Color("231")),
		timeline.LayerTransitions: lipgloss.NewStyle().Background(lipgloss.Color("130")).Foreground(lipgloss.Color("231")),
		timeline.LayerText:        lipgloss.NewStyle().Background(lipgloss.Color("100")).Foreground(lipgloss.Color("231")),
		timeline.LayerKeyframes:   lipgloss.NewStyle().Background(lipgloss.Color("88")).Foreground(lipgloss.Color("231")),
	}
	laneFallback = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("231"))
)

func laneStyle(t timeline.LayerType) lipgloss.Style {
	if st, ok := laneStyles[t]; ok {
		return st
	}
	return laneFallback
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	lay := m.computeLayout()

	var b strings.Builder
	b.WriteString(m.renderRuler())
	b.WriteString("\n")

	lines := make([]string, int(m.viewportHeight()))
	for _, row := range lay.Rows {
		if row.Overscan {
			continue
		}
		for ln := 0; ln < int(row.Height); ln++ {
			yi := int(row.Y) + ln
			if yi < 0 || yi >= len(lines) {
				continue
			}
			lines[yi] = m.renderRowLine(row, ln)
		}
	}
	for _, line := range lines {
		if line == "" {
			line = strings.Repeat(" ", m.width)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderRuler paints the timecode strip with tick labels and sequence
// markers.
func (m Model) renderRuler() string {
	cells := make([]rune, m.width)
	for i := range cells {
		cells[i] = ' '
	}
	markers := make([]bool, m.width)

	step := rulerStep(m.mapper.PixelsPerFrame, m.project.Sequence.FPS)
	first, last := m.mapper.VisibleRange(float64(m.width))
	start := (first / step) * step
	if start < first {
		start += step
	}
	for f := start; f <= last; f += step {
		x := int(m.mapper.FrameToPixel(f))
		if x < 0 || x >= m.width {
			continue
		}
		cells[x] = '|'
		label := timecode.FormatFrames(f, m.project.Sequence.FPS)
		for i, r := range label {
			if xi := x + 1 + i; xi < m.width {
				cells[xi] = r
			}
		}
	}
	for _, mk := range m.project.Sequence.Markers {
		x := int(m.mapper.FrameToPixel(mk.Position))
		if x >= 0 && x < m.width {
			cells[x] = '◆'
			markers[x] = true
		}
	}

	var b strings.Builder
	for i, r := range cells {
		if markers[i] {
			b.WriteString(markerStyle.Render(string(r)))
		} else {
			b.WriteString(rulerStyle.Render(string(r)))
		}
	}
	return b.String()
}

// rulerStep widens the tick interval until labels stop colliding; the
// ladder lands on frame and second boundaries.
func rulerStep(pixelsPerFrame float64, fps int) timeline.Frame {
	if fps <= 0 {
		fps = 24
	}
	sec := timeline.Frame(fps)
	ladder := []timeline.Frame{
		1, 2, 5, 10,
		sec, 2 * sec, 5 * sec, 10 * sec, 30 * sec,
		60 * sec, 5 * 60 * sec, 10 * 60 * sec,
	}
	// a tick label is 8 cells plus breathing room
	const minSpacing = 12.0
	for _, step := range ladder {
		if float64(step)*pixelsPerFrame >= minSpacing {
			return step
		}
	}
	return ladder[len(ladder)-1]
}

// renderRowLine paints one text line of a track row: shot segments in
// lane colors over a blank background, the shot id on the first line.
func (m Model) renderRowLine(row layout.Row, ln int) string {
	var b strings.Builder
	cur := 0
	for _, sb := range row.Shots {
		x0 := int(sb.Rect.X)
		x1 := int(sb.Rect.X + sb.Rect.W)
		if x1 <= 0 || x0 >= m.width {
			continue
		}
		x0 = max(x0, 0)
		x1 = min(x1, m.width)
		if x0 < cur {
			x0 = cur
		}
		if x0 >= x1 {
			continue
		}
		b.WriteString(strings.Repeat(" ", x0-cur))

		label := ""
		if ln == 0 {
			label = sb.ShotID
		}
		st := laneStyle(row.Track.Type)
		if m.selected.Contains(sb.ShotID) {
			st = st.Reverse(true)
		}
		if m.machine.Target() == sb.ShotID {
			st = st.Bold(true)
		}
		b.WriteString(st.Render(fitSegment(label, x1-x0)))
		cur = x1
	}
	if cur < m.width {
		b.WriteString(strings.Repeat(" ", m.width-cur))
	}
	return b.String()
}

// fitSegment left-pads the label into a fixed-width cell run.
func fitSegment(label string, w int) string {
	if w <= 0 {
		return ""
	}
	if label != "" {
		label = " " + label
	}
	if len(label) > w {
		label = label[:w]
	}
	return label + strings.Repeat(" ", w-len(label))
}

func (m Model) renderStatus() string {
	left := fmt.Sprintf(" %s  %.2gx", m.tool, m.mapper.PixelsPerFrame)
	if m.dirty {
		left += dirtyStyle.Render(" *")
	}
	right := ""
	if n := len(m.selected); n > 0 {
		right = fmt.Sprintf("%d selected  ", n)
	}
	if m.marquee != nil {
		right += "marquee  "
	}
	if m.status != "" {
		right += m.status + " "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Render(left + strings.Repeat(" ", gap) + right)
}
