package doctor

import (
	"context"
	"fmt"

	"github.com/framecut/framecut/internal/core/config"
	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/interaction"
)

var knownTools = map[interaction.Tool]struct{}{
	interaction.ToolSelect:     {},
	interaction.ToolTrim:       {},
	interaction.ToolRipple:     {},
	interaction.ToolRoll:       {},
	interaction.ToolSlip:       {},
	interaction.ToolSlide:      {},
	interaction.ToolCut:        {},
	interaction.ToolTransition: {},
	interaction.ToolText:       {},
	interaction.ToolKeyframe:   {},
}

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	Config *config.Config
}

func (c *ConfigCheck) Name() string { return "config" }

func (c *ConfigCheck) Run(_ context.Context) Result {
	res := Result{Name: c.Name()}
	cfg := c.Config

	res.Items = append(res.Items, checkZoom(cfg.Zoom))

	item := CheckItem{Label: "keybindings", Status: StatusPass}
	for k, v := range cfg.Keybindings {
		if _, ok := knownTools[interaction.Tool(v)]; !ok {
			item = CheckItem{
				Label:  "keybindings",
				Status: StatusFail,
				Detail: fmt.Sprintf("key %q bound to unknown tool %q", k, v),
			}
			break
		}
	}
	res.Items = append(res.Items, item)

	switch edit.RippleScope(cfg.Timeline.RippleScope) {
	case edit.RippleAllLanes, edit.RippleSharedLanes:
		res.Items = append(res.Items, CheckItem{Label: "ripple scope", Status: StatusPass})
	default:
		res.Items = append(res.Items, CheckItem{
			Label:  "ripple scope",
			Status: StatusFail,
			Detail: fmt.Sprintf("unknown ripple_scope %q", cfg.Timeline.RippleScope),
		})
	}

	if cfg.Timeline.MinShotDuration < 1 {
		res.Items = append(res.Items, CheckItem{
			Label:  "minimum shot duration",
			Status: StatusWarn,
			Detail: fmt.Sprintf("min_shot_duration %d below 1; edits will clamp to 1", cfg.Timeline.MinShotDuration),
		})
	} else {
		res.Items = append(res.Items, CheckItem{Label: "minimum shot duration", Status: StatusPass})
	}

	return res
}

func checkZoom(z config.ZoomConfig) CheckItem {
	if z.Min < 1 || z.Max <= z.Min {
		return CheckItem{
			Label:  "zoom bounds",
			Status: StatusFail,
			Detail: fmt.Sprintf("invalid zoom range [%g, %g]", z.Min, z.Max),
		}
	}
	if z.Default < z.Min || z.Default > z.Max {
		return CheckItem{
			Label:  "zoom bounds",
			Status: StatusWarn,
			Detail: fmt.Sprintf("default zoom %g outside [%g, %g]", z.Default, z.Min, z.Max),
		}
	}
	return CheckItem{Label: "zoom bounds", Status: StatusPass}
}
