package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
)

func testShots() []timeline.Shot {
	mk := func(id string, start, dur timeline.Frame) timeline.Shot {
		return timeline.Shot{
			ID: id, StartTime: start, Duration: dur,
			Layers: []timeline.Layer{{
				ID: id + "-m", Type: timeline.LayerMedia, Duration: dur, Opacity: 1,
				Media: &timeline.MediaPayload{Source: id + ".mov", TrimEnd: dur},
			}},
		}
	}
	return []timeline.Shot{
		mk("a", 100, 50),
		mk("b", 150, 50),
		mk("far", 500, 50),
	}
}

func noSnapConfig() Config {
	cfg := DefaultConfig()
	cfg.SnapEnabled = false
	return cfg
}

func newMachine(cfg Config) *Machine {
	return NewMachine(edit.New(edit.DefaultPolicy()), cfg)
}

func TestClassifyEdge(t *testing.T) {
	m := timecode.New(2, 0)
	shot := timeline.Shot{ID: "a", StartTime: 100, Duration: 50} // 200px..300px

	tests := []struct {
		name string
		x    float64
		want Edge
	}{
		{"on start bound", 200, EdgeStart},
		{"within start tolerance", 208, EdgeStart},
		{"middle", 250, EdgeNone},
		{"within end tolerance", 294, EdgeEnd},
		{"on end bound", 300, EdgeEnd},
		{"past end but in tolerance", 309, EdgeEnd},
		{"well outside", 340, EdgeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEdge(shot, tt.x, m, DefaultEdgeTolerancePx))
		})
	}
}

func TestDrag_Move(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	require.True(t, mch.PointerDown(shots, "a", 250, mapper, ToolSelect))
	require.True(t, mch.Dragging())

	// 20px right at 2ppf = 10 frames
	d, changed := mch.PointerMove(shots, 270)
	require.True(t, changed)
	require.Len(t, d.Changed, 1)
	assert.Equal(t, timeline.Frame(110), d.Changed[0].StartTime)

	// same position again: idempotent no-op
	_, changed = mch.PointerMove(shots, 270)
	assert.False(t, changed)

	commit := mch.PointerUp(shots, 270)
	assert.False(t, commit.Click)
	require.Len(t, commit.Delta.Changed, 1)
	assert.Equal(t, timeline.Frame(110), commit.Delta.Changed[0].StartTime)
	assert.False(t, mch.Dragging())
}

func TestDrag_SubSlopIsClick(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	require.True(t, mch.PointerDown(shots, "a", 250, mapper, ToolSelect))

	_, changed := mch.PointerMove(shots, 252)
	assert.False(t, changed, "2px is inside the click slop")

	commit := mch.PointerUp(shots, 252)
	assert.True(t, commit.Click)
	assert.True(t, commit.Delta.Empty())
	assert.Equal(t, "a", commit.TargetID)
}

func TestDrag_SubFrameJitterIsNoop(t *testing.T) {
	cfg := noSnapConfig()
	cfg.ClickSlopPx = 0
	mch := newMachine(cfg)
	shots := testShots()
	mapper := timecode.New(10, 0) // 10 px per frame

	require.True(t, mch.PointerDown(shots, "a", 1050, mapper, ToolSelect))

	first := true
	for _, x := range []float64{1051, 1052, 1054} {
		d, changed := mch.PointerMove(shots, x)
		if first {
			// first over-slop move reports once with a zero evaluation
			first = false
			if changed {
				assert.True(t, d.Empty())
			}
			continue
		}
		assert.False(t, changed, "x=%v rounds to zero frames", x)
	}
}

func TestDrag_TrimEdges(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	// a spans 200..300px; grab the end edge and pull left 30px (-15 frames)
	require.True(t, mch.PointerDown(shots, "a", 300, mapper, ToolTrim))
	commit := mch.PointerUp(shots, 270)

	require.Len(t, commit.Delta.Changed, 1)
	got := commit.Delta.Changed[0]
	assert.Equal(t, timeline.Frame(100), got.StartTime)
	assert.Equal(t, timeline.Frame(35), got.Duration)
}

func TestDrag_RippleEdge(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	require.True(t, mch.PointerDown(shots, "a", 300, mapper, ToolRipple))
	commit := mch.PointerUp(shots, 280)

	byID := map[string]timeline.Shot{}
	for _, sh := range commit.Delta.Changed {
		byID[sh.ID] = sh
	}
	assert.Equal(t, timeline.Frame(40), byID["a"].Duration)
	assert.Equal(t, timeline.Frame(140), byID["b"].StartTime, "downstream rippled")
	assert.Equal(t, timeline.Frame(490), byID["far"].StartTime)
}

func TestDrag_RollRequiresNeighbor(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	// far has no right-adjacent neighbor
	assert.False(t, mch.PointerDown(shots, "far", 1100, mapper, ToolRoll))
	assert.False(t, mch.Dragging())

	// a end edge at 300px has b adjacent
	require.True(t, mch.PointerDown(shots, "a", 300, mapper, ToolRoll))
	commit := mch.PointerUp(shots, 320)

	byID := map[string]timeline.Shot{}
	for _, sh := range commit.Delta.Changed {
		byID[sh.ID] = sh
	}
	assert.Equal(t, timeline.Frame(60), byID["a"].Duration)
	assert.Equal(t, timeline.Frame(160), byID["b"].StartTime)
	assert.Equal(t, timeline.Frame(40), byID["b"].Duration)
}

func TestDrag_RollRequiresEndEdge(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	assert.False(t, mch.PointerDown(shots, "a", 250, mapper, ToolRoll), "roll is only valid at an end edge")
}

func TestDrag_SecondPointerDownIgnored(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	require.True(t, mch.PointerDown(shots, "a", 250, mapper, ToolSelect))
	assert.False(t, mch.PointerDown(shots, "b", 350, mapper, ToolSelect))
	assert.Equal(t, "a", mch.Target(), "first gesture stays active")
}

func TestDrag_Cancel(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()
	mapper := timecode.New(2, 0)

	require.True(t, mch.PointerDown(shots, "a", 250, mapper, ToolSelect))
	_, _ = mch.PointerMove(shots, 400)

	mch.Cancel()
	assert.False(t, mch.Dragging())

	commit := mch.PointerUp(shots, 400)
	assert.True(t, commit.Delta.Empty(), "cancel discards the pending delta")
}

func TestDrag_SnapPullsToBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridStep = 0 // boundaries only, to make the pull visible
	mch := newMachine(cfg)
	shots := testShots()
	mapper := timecode.New(2, 0)

	// drag far's body so its start approaches b's end (frame 200);
	// pointer at start+offset keeps origin math simple
	startX := mapper.FrameToPixel(500)
	require.True(t, mch.PointerDown(shots, "far", startX, mapper, ToolSelect))

	// move to frame 201: within 5px/2ppf = 2.5 frames of boundary 200
	d, changed := mch.PointerMove(shots, mapper.FrameToPixel(201))
	require.True(t, changed)
	require.Len(t, d.Changed, 1)
	assert.Equal(t, timeline.Frame(200), d.Changed[0].StartTime, "snapped to b's end")

	// move to frame 210: outside the threshold, lands where proposed
	d, changed = mch.PointerMove(shots, mapper.FrameToPixel(210))
	require.True(t, changed)
	assert.Equal(t, timeline.Frame(210), d.Changed[0].StartTime)
}

func TestTap_CutAndInsert(t *testing.T) {
	mch := newMachine(noSnapConfig())
	shots := testShots()

	t.Run("cut splits", func(t *testing.T) {
		d := mch.Tap(shots, "a", 120, ToolCut, TapParams{})
		require.Len(t, d.Changed, 1)
		require.Len(t, d.Added, 1)
		assert.Equal(t, timeline.Frame(20), d.Changed[0].Duration)
	})

	t.Run("text inserts", func(t *testing.T) {
		d := mch.Tap(shots, "a", 120, ToolText, TapParams{Text: "title"})
		require.Len(t, d.Changed, 1)
		assert.NotEmpty(t, d.Changed[0].LayersOfType(timeline.LayerText))
	})

	t.Run("transition joins adjacent pair", func(t *testing.T) {
		d := mch.Tap(shots, "a", 150, ToolTransition, TapParams{Transition: timeline.TransitionCrossfade, Duration: 12})
		require.Len(t, d.Changed, 1)
		assert.Equal(t, "b", d.Changed[0].ID)
	})

	t.Run("transition with no neighbor is empty", func(t *testing.T) {
		d := mch.Tap(shots, "far", 510, ToolTransition, TapParams{Transition: timeline.TransitionWipe, Duration: 5})
		assert.True(t, d.Empty())
	})

	t.Run("drag tool taps are empty", func(t *testing.T) {
		d := mch.Tap(shots, "a", 120, ToolSelect, TapParams{})
		assert.True(t, d.Empty())
	})
}
