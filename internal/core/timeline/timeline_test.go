package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	s := Span{Start: 10, End: 20}

	assert.True(t, s.Contains(10), "start is inclusive")
	assert.True(t, s.Contains(19))
	assert.False(t, s.Contains(20), "end is exclusive")
	assert.False(t, s.Contains(9))
	assert.Equal(t, Frame(10), s.Duration())
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"identical", Span{0, 10}, Span{0, 10}, true},
		{"partial", Span{0, 10}, Span{5, 15}, true},
		{"nested", Span{0, 10}, Span{3, 6}, true},
		{"abutting", Span{0, 10}, Span{10, 20}, false},
		{"disjoint", Span{0, 10}, Span{15, 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap is symmetric")
		})
	}
}

func TestShotGeometry(t *testing.T) {
	s := Shot{ID: "a", StartTime: 100, Duration: 50}

	assert.Equal(t, Frame(150), s.End())
	assert.True(t, s.Contains(100))
	assert.False(t, s.Contains(150))

	assert.False(t, s.Inside(100), "split point must be strictly interior")
	assert.True(t, s.Inside(101))
	assert.True(t, s.Inside(149))
	assert.False(t, s.Inside(150))
}

func TestShotAdjacency(t *testing.T) {
	a := Shot{ID: "a", StartTime: 0, Duration: 10}
	b := Shot{ID: "b", StartTime: 10, Duration: 10}
	c := Shot{ID: "c", StartTime: 21, Duration: 10}

	assert.True(t, a.AdjacentTo(b))
	assert.False(t, b.AdjacentTo(a))
	assert.False(t, b.AdjacentTo(c), "one frame gap is not adjacency")
}

func TestShotLayersOfType(t *testing.T) {
	s := Shot{
		ID: "a", StartTime: 0, Duration: 10,
		Layers: []Layer{
			{ID: "l1", Type: LayerMedia, Duration: 10, Opacity: 1},
			{ID: "l2", Type: LayerText, Duration: 10, Opacity: 1},
			{ID: "l3", Type: LayerText, Duration: 5, Opacity: 1},
		},
	}

	texts := s.LayersOfType(LayerText)
	require.Len(t, texts, 2)
	assert.Equal(t, "l2", texts[0].ID, "stacking order is insertion order")
	assert.Equal(t, "l3", texts[1].ID)

	media, ok := s.MediaLayer()
	require.True(t, ok)
	assert.Equal(t, "l1", media.ID)

	_, ok = Shot{ID: "b", Duration: 10}.MediaLayer()
	assert.False(t, ok)
}

func TestShotClone_IsDeep(t *testing.T) {
	s := Shot{
		ID: "a", StartTime: 0, Duration: 10,
		Layers: []Layer{{
			ID: "l1", Type: LayerMedia, Duration: 10, Opacity: 1,
			Media: &MediaPayload{Source: "clip.mov", TrimStart: 5, TrimEnd: 15},
		}},
	}

	c := s.Clone()
	c.Layers[0].Media.TrimStart = 99
	c.Layers[0].ID = "mutated"

	assert.Equal(t, Frame(5), s.Layers[0].Media.TrimStart, "clone must not alias payloads")
	assert.Equal(t, "l1", s.Layers[0].ID)
}

func TestLayerClone_Keyframes(t *testing.T) {
	l := Layer{
		ID: "kf", Type: LayerKeyframes, Duration: 10, Opacity: 1,
		Keyframes: &KeyframePayload{
			Property:  "opacity",
			Keyframes: []Keyframe{{Time: 0, Value: 0}, {Time: 5, Value: 1}},
		},
	}

	c := l.Clone()
	c.Keyframes.Keyframes[0].Value = 0.5

	assert.Equal(t, 0.0, l.Keyframes.Keyframes[0].Value)
}

func TestShotValidate(t *testing.T) {
	tests := []struct {
		name    string
		shot    Shot
		wantErr string
	}{
		{
			name: "valid",
			shot: Shot{ID: "a", StartTime: 0, Duration: 1},
		},
		{
			name:    "missing id",
			shot:    Shot{Duration: 1},
			wantErr: "missing id",
		},
		{
			name:    "negative start",
			shot:    Shot{ID: "a", StartTime: -1, Duration: 1},
			wantErr: "negative start",
		},
		{
			name:    "zero duration",
			shot:    Shot{ID: "a", Duration: 0},
			wantErr: "below minimum",
		},
		{
			name: "layer exceeds shot window",
			shot: Shot{
				ID: "a", Duration: 10,
				Layers: []Layer{{ID: "l", Type: LayerMedia, StartTime: 5, Duration: 6, Opacity: 1}},
			},
			wantErr: "exceeds shot duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shot.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegionValidate(t *testing.T) {
	assert.NoError(t, Region{ID: "r", Start: 0, End: 1, Type: RegionLoop}.Validate())
	assert.Error(t, Region{ID: "r", Start: 5, End: 5}.Validate(), "empty interval")
	assert.Error(t, Region{ID: "r", Start: 5, End: 4}.Validate(), "inverted interval")
}

func TestSequenceSortShots(t *testing.T) {
	seq := &Sequence{
		FPS: 24,
		Shots: []Shot{
			{ID: "b", StartTime: 10, Duration: 5},
			{ID: "c", StartTime: 0, Duration: 5},
			{ID: "a", StartTime: 10, Duration: 5},
		},
	}

	seq.SortShots()

	ids := []string{seq.Shots[0].ID, seq.Shots[1].ID, seq.Shots[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "ties break by id")
}

func TestSequenceMoveTrack(t *testing.T) {
	seq := &Sequence{Tracks: []Track{
		{ID: "t1", Type: LayerMedia, Height: 40},
		{ID: "t2", Type: LayerAudio, Height: 40},
		{ID: "t3", Type: LayerText, Height: 40},
	}}

	seq.MoveTrack(0, 2)
	assert.Equal(t, "t2", seq.Tracks[0].ID)
	assert.Equal(t, "t3", seq.Tracks[1].ID)
	assert.Equal(t, "t1", seq.Tracks[2].ID)

	// out of range is a no-op
	seq.MoveTrack(-1, 1)
	seq.MoveTrack(0, 5)
	assert.Equal(t, "t2", seq.Tracks[0].ID)
}

func TestSequenceValidate_DuplicateIDs(t *testing.T) {
	seq := &Sequence{
		FPS: 24,
		Shots: []Shot{
			{ID: "a", Duration: 5},
			{ID: "a", StartTime: 10, Duration: 5},
		},
	}

	err := seq.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate shot id")
}

func TestSequenceEnd(t *testing.T) {
	seq := &Sequence{FPS: 24}
	assert.Equal(t, Frame(0), seq.End())

	seq.Shots = []Shot{
		{ID: "a", StartTime: 0, Duration: 10},
		{ID: "b", StartTime: 50, Duration: 25},
	}
	assert.Equal(t, Frame(75), seq.End())
}
