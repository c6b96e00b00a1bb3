package config

import (
	"fmt"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/interaction"
	"github.com/framecut/framecut/internal/core/timeline"
)

// Validate checks the configuration for structural errors, naming the
// offending field in each message.
func (c *Config) Validate() error {
	if c.Timeline.FPS < 1 {
		return fmt.Errorf("timeline.fps: %d below 1", c.Timeline.FPS)
	}
	if c.Timeline.MinShotDuration < 1 {
		return fmt.Errorf("timeline.min_shot_duration: %d below 1", c.Timeline.MinShotDuration)
	}
	switch edit.RippleScope(c.Timeline.RippleScope) {
	case edit.RippleAllLanes, edit.RippleSharedLanes:
	default:
		return fmt.Errorf("timeline.ripple_scope: unknown scope %q", c.Timeline.RippleScope)
	}
	for name, height := range c.Timeline.TrackHeights {
		if !timeline.LayerType(name).Valid() {
			return fmt.Errorf("timeline.track_heights: unknown track type %q", name)
		}
		if height < 1 {
			return fmt.Errorf("timeline.track_heights.%s: height %d below 1", name, height)
		}
	}

	if c.Zoom.Min <= 0 {
		return fmt.Errorf("zoom.min: %g must be positive", c.Zoom.Min)
	}
	if c.Zoom.Max < c.Zoom.Min {
		return fmt.Errorf("zoom.max: %g below zoom.min %g", c.Zoom.Max, c.Zoom.Min)
	}
	if c.Zoom.Default < c.Zoom.Min || c.Zoom.Default > c.Zoom.Max {
		return fmt.Errorf("zoom.default: %g outside [%g, %g]", c.Zoom.Default, c.Zoom.Min, c.Zoom.Max)
	}

	if c.Snap.ThresholdPx < 0 {
		return fmt.Errorf("snap.threshold_px: %g must not be negative", c.Snap.ThresholdPx)
	}
	if c.Snap.GridStep < 0 {
		return fmt.Errorf("snap.grid_step: %d must not be negative", c.Snap.GridStep)
	}

	if c.Interaction.EdgeTolerancePx < 0 {
		return fmt.Errorf("interaction.edge_tolerance_px: %g must not be negative", c.Interaction.EdgeTolerancePx)
	}
	if c.Layout.OverscanRows < 0 {
		return fmt.Errorf("layout.overscan_rows: %d must not be negative", c.Layout.OverscanRows)
	}
	if c.Layout.LayerSlotHeight < 1 {
		return fmt.Errorf("layout.layer_slot_height: %d below 1", c.Layout.LayerSlotHeight)
	}

	for key, tool := range c.Keybindings {
		switch interaction.Tool(tool) {
		case interaction.ToolSelect, interaction.ToolTrim, interaction.ToolRipple,
			interaction.ToolRoll, interaction.ToolSlip, interaction.ToolSlide,
			interaction.ToolCut, interaction.ToolTransition, interaction.ToolText,
			interaction.ToolKeyframe:
		default:
			return fmt.Errorf("keybindings.%s: unknown tool %q", key, tool)
		}
	}

	return nil
}
