// Package config handles configuration loading and validation for framecut.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/interaction"
	"github.com/framecut/framecut/internal/core/layout"
	"github.com/framecut/framecut/internal/core/timeline"
)

// defaultKeybindings maps keys to tools; users can override per key.
var defaultKeybindings = map[string]string{
	"v": string(interaction.ToolSelect),
	"t": string(interaction.ToolTrim),
	"r": string(interaction.ToolRipple),
	"o": string(interaction.ToolRoll),
	"y": string(interaction.ToolSlip),
	"u": string(interaction.ToolSlide),
	"c": string(interaction.ToolCut),
	"x": string(interaction.ToolTransition),
	"b": string(interaction.ToolText),
	"k": string(interaction.ToolKeyframe),
}

// Config holds the application configuration.
type Config struct {
	Timeline    TimelineConfig    `yaml:"timeline"`
	Zoom        ZoomConfig        `yaml:"zoom"`
	Snap        SnapConfig        `yaml:"snap"`
	Interaction InteractionConfig `yaml:"interaction"`
	Layout      LayoutConfig      `yaml:"layout"`
	Keybindings map[string]string `yaml:"keybindings"`
}

// TimelineConfig holds sequence-level policy.
type TimelineConfig struct {
	// FPS is the display frame rate for timecode formatting.
	FPS int `yaml:"fps"`
	// MinShotDuration is the duration floor enforced by every edit.
	MinShotDuration int64 `yaml:"min_shot_duration"`
	// RippleScope is "all-lanes" or "shared-lanes".
	RippleScope string `yaml:"ripple_scope"`
	// TrackHeights maps track types to their default pixel heights.
	TrackHeights map[string]int `yaml:"track_heights"`
}

// ZoomConfig bounds the pixels-per-frame zoom factor.
type ZoomConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
}

// SnapConfig tunes the magnetic snap resolver.
type SnapConfig struct {
	Enabled     *bool   `yaml:"enabled"`
	ThresholdPx float64 `yaml:"threshold_px"`
	GridStep    int64   `yaml:"grid_step"`
}

// InteractionConfig tunes pointer classification.
type InteractionConfig struct {
	EdgeTolerancePx float64 `yaml:"edge_tolerance_px"`
	ClickSlopPx     float64 `yaml:"click_slop_px"`
}

// LayoutConfig tunes row virtualization.
type LayoutConfig struct {
	OverscanRows    int `yaml:"overscan_rows"`
	LayerSlotHeight int `yaml:"layer_slot_height"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Timeline: TimelineConfig{
			FPS:             24,
			MinShotDuration: int64(timeline.MinShotDuration),
			RippleScope:     string(edit.RippleAllLanes),
			TrackHeights: map[string]int{
				string(timeline.LayerMedia):       40,
				string(timeline.LayerAudio):       30,
				string(timeline.LayerEffects):     20,
				string(timeline.LayerTransitions): 20,
				string(timeline.LayerText):        20,
				string(timeline.LayerKeyframes):   16,
			},
		},
		Zoom: ZoomConfig{
			Min:     1,
			Max:     100,
			Default: 2,
		},
		Snap: SnapConfig{
			Enabled:     &enabled,
			ThresholdPx: 5,
			GridStep:    1,
		},
		Interaction: InteractionConfig{
			EdgeTolerancePx: interaction.DefaultEdgeTolerancePx,
			ClickSlopPx:     interaction.DefaultClickSlopPx,
		},
		Layout: LayoutConfig{
			OverscanRows:    layout.DefaultOverscanRows,
			LayerSlotHeight: layout.DefaultLayerSlotHeight,
		},
		// copy so loading never mutates the package-level defaults
		Keybindings: mergeKeybindings(defaultKeybindings, nil),
	}
}

// Load reads the config file at configPath, merging it over the defaults.
// A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills zero values left by a sparse user config.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Timeline.FPS == 0 {
		c.Timeline.FPS = defaults.Timeline.FPS
	}
	if c.Timeline.MinShotDuration == 0 {
		c.Timeline.MinShotDuration = defaults.Timeline.MinShotDuration
	}
	if c.Timeline.RippleScope == "" {
		c.Timeline.RippleScope = defaults.Timeline.RippleScope
	}
	if len(c.Timeline.TrackHeights) == 0 {
		c.Timeline.TrackHeights = defaults.Timeline.TrackHeights
	}
	if c.Zoom.Min == 0 {
		c.Zoom.Min = defaults.Zoom.Min
	}
	if c.Zoom.Max == 0 {
		c.Zoom.Max = defaults.Zoom.Max
	}
	if c.Zoom.Default == 0 {
		c.Zoom.Default = defaults.Zoom.Default
	}
	if c.Snap.Enabled == nil {
		c.Snap.Enabled = defaults.Snap.Enabled
	}
	if c.Snap.ThresholdPx == 0 {
		c.Snap.ThresholdPx = defaults.Snap.ThresholdPx
	}
	if c.Snap.GridStep == 0 {
		c.Snap.GridStep = defaults.Snap.GridStep
	}
	if c.Interaction.EdgeTolerancePx == 0 {
		c.Interaction.EdgeTolerancePx = defaults.Interaction.EdgeTolerancePx
	}
	if c.Interaction.ClickSlopPx == 0 {
		c.Interaction.ClickSlopPx = defaults.Interaction.ClickSlopPx
	}
	if c.Layout.OverscanRows == 0 {
		c.Layout.OverscanRows = defaults.Layout.OverscanRows
	}
	if c.Layout.LayerSlotHeight == 0 {
		c.Layout.LayerSlotHeight = defaults.Layout.LayerSlotHeight
	}
}

// mergeKeybindings merges user keybindings into defaults; the user wins
// for the same key.
func mergeKeybindings(defaults, user map[string]string) map[string]string {
	result := make(map[string]string, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// EditPolicy builds the engine policy from the config.
func (c *Config) EditPolicy() edit.Policy {
	return edit.Policy{
		MinDuration: timeline.Frame(c.Timeline.MinShotDuration),
		RippleScope: edit.RippleScope(c.Timeline.RippleScope),
	}
}

// InteractionSettings builds the drag machine config.
func (c *Config) InteractionSettings() interaction.Config {
	return interaction.Config{
		EdgeTolerancePx: c.Interaction.EdgeTolerancePx,
		ClickSlopPx:     c.Interaction.ClickSlopPx,
		SnapEnabled:     c.Snap.Enabled == nil || *c.Snap.Enabled,
		SnapThresholdPx: c.Snap.ThresholdPx,
		GridStep:        timeline.Frame(c.Snap.GridStep),
	}
}

// LayoutSettings builds the virtualization config.
func (c *Config) LayoutSettings() layout.Config {
	return layout.Config{
		OverscanRows:    c.Layout.OverscanRows,
		LayerSlotHeight: c.Layout.LayerSlotHeight,
	}
}

// TrackHeight returns the configured height for a track type.
func (c *Config) TrackHeight(t timeline.LayerType) int {
	if h, ok := c.Timeline.TrackHeights[string(t)]; ok {
		return h
	}
	return 30
}
