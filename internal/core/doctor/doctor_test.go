package doctor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/core/config"
	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

func savedProject(t *testing.T, p *jsonfile.Project) *jsonfile.ProjectStore {
	t.Helper()
	store := jsonfile.NewProjectStore(filepath.Join(t.TempDir(), "framecut.json"))
	require.NoError(t, store.Save(p))
	return store
}

func itemByLabel(t *testing.T, res Result, label string) CheckItem {
	t.Helper()
	for _, item := range res.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("no item %q in %v", label, res.Items)
	return CheckItem{}
}

func TestProjectCheck_HealthyProject(t *testing.T) {
	store := savedProject(t, &jsonfile.Project{
		Sequence: &timeline.Sequence{
			Name: "cut",
			FPS:  24,
			Shots: []timeline.Shot{
				{ID: "a", StartTime: 0, Duration: 10},
				{ID: "b", StartTime: 10, Duration: 10},
			},
		},
	})

	res := (&ProjectCheck{Store: store}).Run(context.Background())
	passed, warned, failed := Summary([]Result{res})
	assert.Equal(t, 5, passed)
	assert.Zero(t, warned)
	assert.Zero(t, failed)
}

func TestProjectCheck_MissingFile(t *testing.T) {
	store := jsonfile.NewProjectStore(filepath.Join(t.TempDir(), "absent.json"))

	res := (&ProjectCheck{Store: store}).Run(context.Background())
	require.Len(t, res.Items, 1)
	assert.Equal(t, StatusFail, res.Items[0].Status)
}

func TestProjectCheck_MediaOverlapWarns(t *testing.T) {
	media := []timeline.Layer{{ID: "m", Type: timeline.LayerMedia, Opacity: 1, Duration: 10,
		Media: &timeline.MediaPayload{Source: "a.mov"}}}
	store := savedProject(t, &jsonfile.Project{
		Sequence: &timeline.Sequence{
			Name: "cut",
			FPS:  24,
			Shots: []timeline.Shot{
				{ID: "a", StartTime: 0, Duration: 20, Layers: media},
				{ID: "b", StartTime: 10, Duration: 20, Layers: media},
			},
		},
	})

	res := (&ProjectCheck{Store: store}).Run(context.Background())
	item := itemByLabel(t, res, "media overlaps")
	assert.Equal(t, StatusWarn, item.Status)
	assert.Contains(t, item.Detail, "frame 10")
}

func TestProjectCheck_StaleSelectionWarns(t *testing.T) {
	store := savedProject(t, &jsonfile.Project{
		Sequence: &timeline.Sequence{
			Name:  "cut",
			FPS:   24,
			Shots: []timeline.Shot{{ID: "a", StartTime: 0, Duration: 10}},
		},
		Selected: []string{"gone"},
	})

	res := (&ProjectCheck{Store: store}).Run(context.Background())
	item := itemByLabel(t, res, "saved selection")
	assert.Equal(t, StatusWarn, item.Status)
}

func TestConfigCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		label  string
		want   Status
	}{
		{
			name:   "defaults pass",
			mutate: func(*config.Config) {},
			label:  "zoom bounds",
			want:   StatusPass,
		},
		{
			name:   "inverted zoom range",
			mutate: func(c *config.Config) { c.Zoom.Min = 50; c.Zoom.Max = 10 },
			label:  "zoom bounds",
			want:   StatusFail,
		},
		{
			name:   "default zoom out of range",
			mutate: func(c *config.Config) { c.Zoom.Default = 500 },
			label:  "zoom bounds",
			want:   StatusWarn,
		},
		{
			name:   "unknown tool binding",
			mutate: func(c *config.Config) { c.Keybindings["q"] = "teleport" },
			label:  "keybindings",
			want:   StatusFail,
		},
		{
			name:   "unknown ripple scope",
			mutate: func(c *config.Config) { c.Timeline.RippleScope = "every-other-lane" },
			label:  "ripple scope",
			want:   StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)

			res := (&ConfigCheck{Config: &cfg}).Run(context.Background())
			assert.Equal(t, tt.want, itemByLabel(t, res, tt.label).Status)
		})
	}
}
