package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framecut/framecut/internal/core/timeline"
)

func shots() []timeline.Shot {
	return []timeline.Shot{
		{ID: "a", StartTime: 100, Duration: 50},
		{ID: "b", StartTime: 200, Duration: 25},
		{ID: "dragged", StartTime: 300, Duration: 10},
	}
}

func TestResolve_BoundarySnap(t *testing.T) {
	r := NewResolver(shots(), "dragged")
	opts := Options{ThresholdFrames: 5}

	tests := []struct {
		name     string
		proposed float64
		want     timeline.Frame
		snapped  bool
		source   Source
	}{
		{"near a start", 102, 100, true, SourceBoundary},
		{"near a end", 148, 150, true, SourceBoundary},
		{"near b end", 227, 225, true, SourceBoundary},
		{"near zero", 3, 0, true, SourceBoundary},
		{"far from everything", 180, 180, false, SourceNone},
		{"exactly at threshold", 105, 100, true, SourceBoundary},
		{"one past threshold", 106, 106, false, SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.proposed, opts)
			assert.Equal(t, tt.want, got.Frame)
			assert.Equal(t, tt.snapped, got.Snapped)
			assert.Equal(t, tt.source, got.Source)
		})
	}
}

func TestResolve_DraggedShotExcluded(t *testing.T) {
	r := NewResolver(shots(), "dragged")
	got := r.Resolve(301, Options{ThresholdFrames: 3})
	assert.False(t, got.Snapped, "dragged shot's own boundaries are not candidates")
	assert.Equal(t, timeline.Frame(301), got.Frame)
}

func TestResolve_GridSnap(t *testing.T) {
	r := NewResolver(nil, "")
	opts := Options{ThresholdFrames: 2, GridStep: 10}

	got := r.Resolve(21.4, opts)
	assert.True(t, got.Snapped)
	assert.Equal(t, SourceGrid, got.Source)
	assert.Equal(t, timeline.Frame(20), got.Frame)

	got = r.Resolve(23.4, opts)
	assert.False(t, got.Snapped, "nearest grid line is outside the threshold")
	assert.Equal(t, timeline.Frame(23), got.Frame)
}

func TestResolve_GridTieBreak(t *testing.T) {
	// boundary at 104 and grid line at 100 are both distance 2 from 102
	r := NewResolver([]timeline.Shot{{ID: "x", StartTime: 94, Duration: 10}}, "")
	opts := Options{ThresholdFrames: 5, GridStep: 10}

	got := r.Resolve(102, opts)
	assert.True(t, got.Snapped)
	assert.Equal(t, SourceGrid, got.Source, "grid wins equal-distance ties")
	assert.Equal(t, timeline.Frame(100), got.Frame)
}

func TestResolve_BoundaryBeatsGridWhenCloser(t *testing.T) {
	r := NewResolver([]timeline.Shot{{ID: "x", StartTime: 13, Duration: 10}}, "")
	opts := Options{ThresholdFrames: 4, GridStep: 10}

	got := r.Resolve(12, opts)
	assert.Equal(t, SourceBoundary, got.Source)
	assert.Equal(t, timeline.Frame(13), got.Frame)
}

func TestResolve_GridVisibleRange(t *testing.T) {
	r := NewResolver(nil, "")
	opts := Options{
		ThresholdFrames: 5,
		GridStep:        10,
		Visible:         timeline.Span{Start: 100, End: 200},
	}

	got := r.Resolve(52, opts)
	assert.False(t, got.Snapped, "grid candidates outside the visible span are ignored")

	got = r.Resolve(152, opts)
	assert.True(t, got.Snapped)
	assert.Equal(t, timeline.Frame(150), got.Frame)
}

func TestResolve_NeverTeleports(t *testing.T) {
	r := NewResolver(shots(), "")
	opts := Options{ThresholdFrames: 5}

	for proposed := 0.0; proposed <= 350; proposed++ {
		got := r.Resolve(proposed, opts)
		if got.Snapped {
			assert.LessOrEqual(t,
				absFloat(proposed-float64(got.Frame)), opts.ThresholdFrames,
				"snap moved %v beyond threshold", proposed)
		} else {
			assert.Equal(t, timeline.Frame(proposed), got.Frame)
		}
	}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
