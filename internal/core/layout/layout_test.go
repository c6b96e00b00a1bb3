package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
)

func testSequence() *timeline.Sequence {
	mkShot := func(id string, start, dur timeline.Frame) timeline.Shot {
		return timeline.Shot{
			ID: id, StartTime: start, Duration: dur,
			Layers: []timeline.Layer{{
				ID: id + "-m", Type: timeline.LayerMedia, Duration: dur, Opacity: 1,
				Media: &timeline.MediaPayload{Source: id + ".mov", TrimEnd: dur},
			}},
		}
	}
	return &timeline.Sequence{
		Name: "test",
		FPS:  24,
		Tracks: []timeline.Track{
			{ID: "video", Type: timeline.LayerMedia, Height: 40},
			{ID: "audio", Type: timeline.LayerAudio, Height: 30},
			{ID: "text", Type: timeline.LayerText, Height: 20},
		},
		Shots: []timeline.Shot{
			mkShot("a", 0, 50),
			mkShot("b", 100, 50),
			mkShot("c", 5000, 50),
		},
	}
}

func testViewport(w, h float64) Viewport {
	return Viewport{
		Mapper: timecode.New(2, 0),
		Width:  w,
		Height: h,
	}
}

func TestCompute_HorizontalVirtualization(t *testing.T) {
	seq := testSequence()
	// 400px at 2 ppf shows frames 0..200: shots a and b, not c
	l := Compute(seq, testViewport(400, 200), DefaultConfig())

	require.NotEmpty(t, l.Rows)
	video := l.Rows[0]
	require.Equal(t, "video", video.Track.ID)

	ids := make([]string, 0, len(video.Shots))
	for _, sb := range video.Shots {
		ids = append(ids, sb.ShotID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestCompute_LayoutIndependentOfOffscreenShots(t *testing.T) {
	seq := testSequence()
	base := Compute(seq, testViewport(400, 200), DefaultConfig())

	for i := range 10000 {
		seq.Shots = append(seq.Shots, timeline.Shot{
			ID: fmt.Sprintf("off-%d", i), StartTime: timeline.Frame(10000 + i*100), Duration: 50,
			Layers: []timeline.Layer{{
				ID: fmt.Sprintf("off-%d-m", i), Type: timeline.LayerMedia, Duration: 50, Opacity: 1,
				Media: &timeline.MediaPayload{TrimEnd: 50},
			}},
		})
	}

	grown := Compute(seq, testViewport(400, 200), DefaultConfig())

	require.Equal(t, len(base.Rows), len(grown.Rows))
	for i := range base.Rows {
		assert.Equal(t, len(base.Rows[i].Shots), len(grown.Rows[i].Shots),
			"row %s gained off-screen shots", base.Rows[i].Track.ID)
	}
}

func TestCompute_HiddenTrackExcluded(t *testing.T) {
	seq := testSequence()
	seq.Tracks[0].Hidden = true

	l := Compute(seq, testViewport(400, 200), DefaultConfig())

	for _, row := range l.Rows {
		assert.NotEqual(t, "video", row.Track.ID)
	}
	require.NotEmpty(t, l.Rows)
	assert.Equal(t, 0.0, l.Rows[0].Y, "hidden track contributes zero height")
	assert.Equal(t, 50.0, l.TotalHeight)
}

func TestCompute_VerticalVirtualization(t *testing.T) {
	seq := &timeline.Sequence{Name: "tall", FPS: 24}
	for i := range 100 {
		seq.Tracks = append(seq.Tracks, timeline.Track{
			ID: fmt.Sprintf("t%d", i), Type: timeline.LayerMedia, Height: 40,
		})
	}

	vp := testViewport(400, 120) // 3 rows visible
	vp.ScrollTop = 400           // rows 10..12 intersect

	l := Compute(seq, vp, Config{OverscanRows: 3, LayerSlotHeight: 14})

	// 3 visible + 3 overscan each side
	require.Len(t, l.Rows, 9)
	assert.Equal(t, "t7", l.Rows[0].Track.ID)
	assert.True(t, l.Rows[0].Overscan)
	assert.Equal(t, "t10", l.Rows[3].Track.ID)
	assert.False(t, l.Rows[3].Overscan)
	assert.Equal(t, "t15", l.Rows[8].Track.ID)
	assert.Equal(t, 4000.0, l.TotalHeight)

	// row y is viewport-relative
	assert.Equal(t, 0.0, l.Rows[3].Y)
}

func TestCompute_TypeMatchMembership(t *testing.T) {
	seq := testSequence()
	seq.Shots[0].Layers = append(seq.Shots[0].Layers, timeline.Layer{
		ID: "a-t", Type: timeline.LayerText, Duration: 10, Opacity: 1,
		Text: &timeline.TextPayload{Content: "title"},
	})

	l := Compute(seq, testViewport(400, 200), DefaultConfig())
	require.Len(t, l.Rows, 3)

	audio := l.Rows[1]
	assert.Empty(t, audio.Shots, "no shot has audio layers")

	text := l.Rows[2]
	require.Len(t, text.Shots, 1)
	assert.Equal(t, "a", text.Shots[0].ShotID, "shot renders in the text lane by type match")
}

func TestCompute_LayerStacking(t *testing.T) {
	seq := testSequence()
	seq.Shots[0].Layers = append(seq.Shots[0].Layers,
		timeline.Layer{ID: "a-t1", Type: timeline.LayerText, Duration: 10, Opacity: 1, Text: &timeline.TextPayload{}},
		timeline.Layer{ID: "a-t2", Type: timeline.LayerText, StartTime: 20, Duration: 10, Opacity: 1, Text: &timeline.TextPayload{}},
	)

	l := Compute(seq, testViewport(400, 200), DefaultConfig())
	text := l.Rows[2]
	require.Len(t, text.Shots, 1)
	layers := text.Shots[0].Layers
	require.Len(t, layers, 2)

	assert.Equal(t, 0, layers[0].Z)
	assert.Equal(t, 1, layers[1].Z)
	assert.Equal(t, layers[0].Rect.Y+float64(DefaultLayerSlotHeight), layers[1].Rect.Y,
		"each stacked slot is one fixed height below the previous")
}

func TestCompute_PixelGeometry(t *testing.T) {
	seq := testSequence()
	vp := testViewport(400, 200)
	vp.Mapper = timecode.New(2, 100) // scrolled 100px right

	l := Compute(seq, vp, DefaultConfig())
	video := l.Rows[0]
	require.NotEmpty(t, video.Shots)

	a := video.Shots[0]
	assert.Equal(t, -100.0, a.Rect.X, "frame 0 is 100px left of the viewport")
	assert.Equal(t, 100.0, a.Rect.W, "50 frames at 2 ppf")
}

func TestSelectionItems(t *testing.T) {
	seq := testSequence()
	l := Compute(seq, testViewport(400, 200), DefaultConfig())

	items := l.SelectionItems()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 0.0, items[0].Bounds.Left)
	assert.Equal(t, 100.0, items[0].Bounds.Right)
}
