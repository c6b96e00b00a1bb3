package edit

import "github.com/framecut/framecut/internal/core/timeline"

// rewindowLayers maps layers onto a new shot window that removed cutFront
// frames from the front and now lasts newDur frames. cutFront may be
// negative when the front was extended. Each surviving layer is a deep
// copy clipped to [0, newDur); a layer left with no frames is dropped.
// Media trim windows advance by the frames cut from the layer's own front
// and retreat by frames cut from its back, so the visible source frames
// stay aligned. Keyframe times shift with the window and points outside
// the new span are dropped.
func rewindowLayers(layers []timeline.Layer, cutFront, newDur timeline.Frame) []timeline.Layer {
	var out []timeline.Layer
	for _, l := range layers {
		start := l.StartTime - cutFront
		end := start + l.Duration

		clippedStart := max(start, 0)
		clippedEnd := min(end, newDur)
		if clippedEnd <= clippedStart {
			continue
		}

		c := l.Clone()
		c.StartTime = clippedStart
		c.Duration = clippedEnd - clippedStart

		frontCut := clippedStart - start
		backCut := end - clippedEnd

		if c.Media != nil {
			c.Media.TrimStart = timeline.ClampFrame(c.Media.TrimStart + frontCut)
			c.Media.TrimEnd = c.Media.TrimEnd - backCut
			if c.Media.TrimEnd < c.Media.TrimStart {
				c.Media.TrimEnd = c.Media.TrimStart
			}
		}

		if c.Keyframes != nil {
			kept := c.Keyframes.Keyframes[:0]
			for _, kf := range c.Keyframes.Keyframes {
				kf.Time -= cutFront
				if kf.Time < 0 || kf.Time > newDur {
					continue
				}
				kept = append(kept, kf)
			}
			c.Keyframes.Keyframes = kept
		}

		out = append(out, c)
	}
	return out
}

// renumberLayerIDs mints fresh ids for every layer, used when layers are
// copied onto a newly created shot.
func (e *Engine) renumberLayerIDs(layers []timeline.Layer) []timeline.Layer {
	for i := range layers {
		layers[i].ID = e.newID()
	}
	return layers
}
