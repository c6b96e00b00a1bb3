// Package layout maps tracks and shots to the minimal set of visible rows
// and draw rectangles for the current viewport. The output is a plain,
// serializable description consumable by any paint backend; cost is
// proportional to the visible elements, not the sequence size.
package layout

import (
	"cmp"
	"slices"

	"github.com/framecut/framecut/internal/core/selection"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
)

// Defaults for the virtualization scheme.
const (
	DefaultOverscanRows    = 3
	DefaultLayerSlotHeight = 14
)

// Config tunes row virtualization and layer stacking.
type Config struct {
	// OverscanRows extends the visible row range in both directions so
	// scrolling does not pop rows in at the viewport edge.
	OverscanRows int
	// LayerSlotHeight is the fixed pixel height of one stacked layer slot
	// within a track row.
	LayerSlotHeight int
}

// DefaultConfig returns the stock virtualization settings.
func DefaultConfig() Config {
	return Config{
		OverscanRows:    DefaultOverscanRows,
		LayerSlotHeight: DefaultLayerSlotHeight,
	}
}

// Viewport is the visible window over the timeline surface.
type Viewport struct {
	Mapper    timecode.Mapper
	Width     float64
	Height    float64
	ScrollTop float64
}

// Rect is a draw rectangle in viewport pixel space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// LayerBox is one stacked layer slot within a shot box. Z is the stacking
// order: the layer's index among same-type layers of its shot.
type LayerBox struct {
	LayerID string             `json:"layer_id"`
	Type    timeline.LayerType `json:"type"`
	Rect    Rect               `json:"rect"`
	Z       int                `json:"z"`
}

// ShotBox is a shot's rectangle within one track row, with its stacked
// layer slots.
type ShotBox struct {
	ShotID string     `json:"shot_id"`
	Span   timeline.Span `json:"span"`
	Rect   Rect       `json:"rect"`
	Layers []LayerBox `json:"layers,omitempty"`
}

// Row is one visible track with its vertical placement and visible shots.
type Row struct {
	Track   timeline.Track `json:"track"`
	Y       float64        `json:"y"`
	Height  float64        `json:"height"`
	Shots   []ShotBox      `json:"shots,omitempty"`
	Overscan bool          `json:"overscan,omitempty"`
}

// Layout is the full renderable description for one viewport.
type Layout struct {
	Rows        []Row          `json:"rows"`
	TotalHeight float64        `json:"total_height"`
	FirstFrame  timeline.Frame `json:"first_frame"`
	LastFrame   timeline.Frame `json:"last_frame"`
}

// SelectionItems adapts the visible shot boxes for marquee hit testing.
// A shot spanning several rows contributes its union bounding box.
func (l Layout) SelectionItems() []selection.Item {
	byID := make(map[string]selection.Rect)
	var order []string
	for _, row := range l.Rows {
		for _, sb := range row.Shots {
			r := selection.Rect{
				Left:   sb.Rect.X,
				Top:    sb.Rect.Y,
				Right:  sb.Rect.X + sb.Rect.W,
				Bottom: sb.Rect.Y + sb.Rect.H,
			}
			if prev, ok := byID[sb.ShotID]; ok {
				r.Left = min(r.Left, prev.Left)
				r.Top = min(r.Top, prev.Top)
				r.Right = max(r.Right, prev.Right)
				r.Bottom = max(r.Bottom, prev.Bottom)
			} else {
				order = append(order, sb.ShotID)
			}
			byID[sb.ShotID] = r
		}
	}
	items := make([]selection.Item, 0, len(order))
	for _, id := range order {
		items = append(items, selection.Item{ID: id, Bounds: byID[id]})
	}
	return items
}

// shotIndex is the sorted-by-start view used to find visible shots with a
// binary search instead of a full scan.
type shotIndex struct {
	shots  []timeline.Shot
	maxDur timeline.Frame
}

func buildIndex(shots []timeline.Shot) shotIndex {
	sorted := slices.Clone(shots)
	slices.SortStableFunc(sorted, func(a, b timeline.Shot) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	var maxDur timeline.Frame
	for _, sh := range sorted {
		maxDur = max(maxDur, sh.Duration)
	}
	return shotIndex{shots: sorted, maxDur: maxDur}
}

// visible returns the shots overlapping [first, last], in start order.
// Only shots within maxDur of the window are examined.
func (idx shotIndex) visible(first, last timeline.Frame) []timeline.Shot {
	// First shot that could still reach into the window.
	lo, _ := slices.BinarySearchFunc(idx.shots, first-idx.maxDur, func(sh timeline.Shot, f timeline.Frame) int {
		return cmp.Compare(sh.StartTime, f)
	})
	var out []timeline.Shot
	for i := lo; i < len(idx.shots); i++ {
		sh := idx.shots[i]
		if sh.StartTime > last {
			break
		}
		if sh.End() > first {
			out = append(out, sh)
		}
	}
	return out
}

// Compute lays out the sequence for one viewport. Hidden tracks
// contribute zero height and are excluded entirely. Rows outside the
// vertical window (plus overscan) are omitted, and each included row
// carries only the shots intersecting the horizontal frame range.
func Compute(seq *timeline.Sequence, vp Viewport, cfg Config) Layout {
	if cfg.OverscanRows == 0 && cfg.LayerSlotHeight == 0 {
		cfg = DefaultConfig()
	}

	first, last := vp.Mapper.VisibleRange(vp.Width)
	idx := buildIndex(seq.Shots)
	visibleShots := idx.visible(first, last)

	// Vertical placement over non-hidden tracks.
	type placed struct {
		track timeline.Track
		y     float64
	}
	var (
		rows []placed
		y    float64
	)
	for _, t := range seq.Tracks {
		if t.Hidden {
			continue
		}
		rows = append(rows, placed{track: t, y: y})
		y += float64(t.Height)
	}
	totalHeight := y

	// Row window: rows intersecting the scroll extent, widened by overscan.
	winTop, winBottom := vp.ScrollTop, vp.ScrollTop+vp.Height
	firstRow, lastRow := -1, -1
	for i, p := range rows {
		bottom := p.y + float64(p.track.Height)
		if bottom <= winTop || p.y >= winBottom {
			continue
		}
		if firstRow == -1 {
			firstRow = i
		}
		lastRow = i
	}
	if firstRow == -1 {
		return Layout{TotalHeight: totalHeight, FirstFrame: first, LastFrame: last}
	}
	overStart := max(firstRow-cfg.OverscanRows, 0)
	overEnd := min(lastRow+cfg.OverscanRows, len(rows)-1)

	out := Layout{
		TotalHeight: totalHeight,
		FirstFrame:  first,
		LastFrame:   last,
	}
	for i := overStart; i <= overEnd; i++ {
		p := rows[i]
		row := Row{
			Track:    p.track,
			Y:        p.y - vp.ScrollTop,
			Height:   float64(p.track.Height),
			Overscan: i < firstRow || i > lastRow,
		}
		for _, sh := range visibleShots {
			if box, ok := shotBoxForTrack(sh, p.track, row.Y, vp.Mapper, cfg); ok {
				row.Shots = append(row.Shots, box)
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// shotBoxForTrack builds the shot's rectangle on one track, with a slot
// per matching layer. Shots with no layer of the track's type do not
// render in that lane.
func shotBoxForTrack(sh timeline.Shot, track timeline.Track, rowY float64, m timecode.Mapper, cfg Config) (ShotBox, bool) {
	matching := sh.LayersOfType(track.Type)
	if len(matching) == 0 {
		return ShotBox{}, false
	}

	x := m.FrameToPixel(sh.StartTime)
	w := float64(sh.Duration) * m.PixelsPerFrame
	box := ShotBox{
		ShotID: sh.ID,
		Span:   sh.Span(),
		Rect:   Rect{X: x, Y: rowY, W: w, H: float64(track.Height)},
	}

	slot := float64(cfg.LayerSlotHeight)
	for i, l := range matching {
		if l.Hidden {
			continue
		}
		lx := m.FrameToPixel(sh.StartTime + l.StartTime)
		lw := float64(l.Duration) * m.PixelsPerFrame
		box.Layers = append(box.Layers, LayerBox{
			LayerID: l.ID,
			Type:    l.Type,
			Rect:    Rect{X: lx, Y: rowY + float64(i)*slot, W: lw, H: slot},
			Z:       i,
		})
	}
	return box, true
}
