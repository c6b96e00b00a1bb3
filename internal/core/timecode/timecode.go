// Package timecode converts between frame numbers and pixel offsets for a
// zoomable, scrollable timeline, and formats frames as display timecode.
package timecode

import (
	"fmt"
	"math"

	"github.com/framecut/framecut/internal/core/timeline"
)

// Zoom bounds in pixels per frame.
const (
	MinPixelsPerFrame = 1.0
	MaxPixelsPerFrame = 100.0
)

// SnapMode selects how a pixel position maps back to a frame.
type SnapMode int

const (
	// SnapToFrame rounds to the nearest whole frame.
	SnapToFrame SnapMode = iota
	// FreeRunning floors, keeping the frame the pixel falls within.
	FreeRunning
)

// Mapper is a pure bidirectional frame/pixel converter. PixelsPerFrame is
// the single zoom parameter; ScrollX is an additive pixel term applied
// before conversion. The zero value is unusable: construct with New.
type Mapper struct {
	PixelsPerFrame float64
	ScrollX        float64
}

// New returns a mapper with the zoom clamped to the supported range.
func New(pixelsPerFrame, scrollX float64) Mapper {
	return Mapper{
		PixelsPerFrame: ClampZoom(pixelsPerFrame),
		ScrollX:        scrollX,
	}
}

// ClampZoom bounds a zoom factor to [MinPixelsPerFrame, MaxPixelsPerFrame].
func ClampZoom(ppf float64) float64 {
	return math.Min(MaxPixelsPerFrame, math.Max(MinPixelsPerFrame, ppf))
}

// FrameToPixel returns the viewport x offset of a frame.
func (m Mapper) FrameToPixel(f timeline.Frame) float64 {
	return float64(f)*m.PixelsPerFrame - m.ScrollX
}

// PixelToFrame returns the frame at a viewport x offset. The result is
// clamped to be non-negative.
func (m Mapper) PixelToFrame(px float64, mode SnapMode) timeline.Frame {
	exact := (px + m.ScrollX) / m.PixelsPerFrame
	var f timeline.Frame
	switch mode {
	case FreeRunning:
		f = timeline.Frame(math.Floor(exact))
	default:
		f = timeline.Frame(math.Round(exact))
	}
	return timeline.ClampFrame(f)
}

// DeltaFrames converts a pixel drag distance to whole frames, rounding to
// nearest. Sub-frame jitter maps to zero.
func (m Mapper) DeltaFrames(dx float64) timeline.Frame {
	return timeline.Frame(math.Round(dx / m.PixelsPerFrame))
}

// FrameDistance converts a pixel distance to its frame-equivalent without
// rounding, for threshold comparisons.
func (m Mapper) FrameDistance(px float64) float64 {
	return px / m.PixelsPerFrame
}

// VisibleRange returns the inclusive frame range covered by a viewport of
// the given pixel width.
func (m Mapper) VisibleRange(viewportWidth float64) (timeline.Frame, timeline.Frame) {
	first := m.PixelToFrame(0, FreeRunning)
	last := m.PixelToFrame(viewportWidth, SnapToFrame)
	if last < first {
		last = first
	}
	return first, last
}

// FormatFrames renders a frame count as MM:SS:FF display timecode for the
// given fps. This is presentation only; fps never enters frame arithmetic.
func FormatFrames(f timeline.Frame, fps int) string {
	if fps < 1 {
		fps = 1
	}
	totalSeconds := int64(f) / int64(fps)
	frames := int64(f) % int64(fps)
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}
