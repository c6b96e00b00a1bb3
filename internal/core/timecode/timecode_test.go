package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framecut/framecut/internal/core/timeline"
)

func TestRoundTrip(t *testing.T) {
	zooms := []float64{1, 1.5, 2, 5, 25, 100}
	scrolls := []float64{0, 12.5, 480, 10000}

	for _, ppf := range zooms {
		for _, scroll := range scrolls {
			m := New(ppf, scroll)
			for _, f := range []timeline.Frame{0, 1, 2, 10, 999, 123456} {
				got := m.PixelToFrame(m.FrameToPixel(f), SnapToFrame)
				assert.Equal(t, f, got, "ppf=%v scroll=%v frame=%d", ppf, scroll, f)
			}
		}
	}
}

func TestPixelToFrame_Modes(t *testing.T) {
	m := New(10, 0)

	// 14px is 1.4 frames in: rounds to 1 either way
	assert.Equal(t, timeline.Frame(1), m.PixelToFrame(14, SnapToFrame))
	assert.Equal(t, timeline.Frame(1), m.PixelToFrame(14, FreeRunning))

	// 16px is 1.6 frames: snap rounds up, free-running floors
	assert.Equal(t, timeline.Frame(2), m.PixelToFrame(16, SnapToFrame))
	assert.Equal(t, timeline.Frame(1), m.PixelToFrame(16, FreeRunning))
}

func TestPixelToFrame_ClampsNegative(t *testing.T) {
	m := New(10, 0)
	assert.Equal(t, timeline.Frame(0), m.PixelToFrame(-50, SnapToFrame))
	assert.Equal(t, timeline.Frame(0), m.PixelToFrame(-50, FreeRunning))
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinPixelsPerFrame, ClampZoom(0.05))
	assert.Equal(t, MaxPixelsPerFrame, ClampZoom(500))
	assert.Equal(t, 4.0, ClampZoom(4))

	m := New(0, 0)
	assert.Equal(t, MinPixelsPerFrame, m.PixelsPerFrame, "New clamps zoom")
}

func TestScrollIsAdditive(t *testing.T) {
	base := New(4, 0)
	scrolled := New(4, 40)

	// scrolling 40px right shifts every frame 40px left on screen
	assert.Equal(t, base.FrameToPixel(25)-40, scrolled.FrameToPixel(25))
	// the frame under a fixed pixel advances by scroll/ppf frames
	assert.Equal(t, timeline.Frame(10), scrolled.PixelToFrame(0, SnapToFrame))
}

func TestDeltaFrames(t *testing.T) {
	m := New(10, 0)

	tests := []struct {
		dx   float64
		want timeline.Frame
	}{
		{0, 0},
		{4, 0},   // sub-frame jitter
		{-4, 0},  // sub-frame jitter, leftward
		{5, 1},   // half a frame rounds away from zero
		{15, 2},  // 1.5 frames
		{-26, -3},
		{100, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.DeltaFrames(tt.dx), "dx=%v", tt.dx)
	}
}

func TestVisibleRange(t *testing.T) {
	m := New(10, 100)
	first, last := m.VisibleRange(200)

	assert.Equal(t, timeline.Frame(10), first)
	assert.Equal(t, timeline.Frame(30), last)
}

func TestFormatFrames(t *testing.T) {
	tests := []struct {
		name string
		f    timeline.Frame
		fps  int
		want string
	}{
		{"zero", 0, 24, "00:00:00"},
		{"under a second", 23, 24, "00:00:23"},
		{"exactly one second", 24, 24, "00:01:00"},
		{"one minute", 1440, 24, "01:00:00"},
		{"mixed", 1500, 24, "01:02:12"},
		{"thirty fps", 90, 30, "00:03:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFrames(tt.f, tt.fps))
		})
	}
}
