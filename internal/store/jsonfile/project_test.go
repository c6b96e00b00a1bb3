package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/core/timeline"
)

func testProject() *Project {
	return &Project{
		Sequence: &timeline.Sequence{
			Name: "cut-01",
			FPS:  24,
			Tracks: []timeline.Track{
				{ID: "video", Type: timeline.LayerMedia, Height: 40},
			},
			Shots: []timeline.Shot{{
				ID: "a", StartTime: 0, Duration: 48,
				Layers: []timeline.Layer{{
					ID: "a-m", Type: timeline.LayerMedia, Duration: 48, Opacity: 1,
					Media: &timeline.MediaPayload{Source: "a.mov", TrimEnd: 48},
				}},
			}},
			Markers: []timeline.Marker{{ID: "m1", Position: 10, Type: timeline.MarkerChapter, Label: "open"}},
			Regions: []timeline.Region{{ID: "r1", Start: 0, End: 48, Type: timeline.RegionWorkArea}},
		},
		Selected: []string{"a"},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	store := NewProjectStore(path)

	want := testProject()
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, got.Version)
	assert.Equal(t, want.Sequence, got.Sequence)
	assert.Equal(t, want.Selected, got.Selected)
}

func TestLoad_Missing(t *testing.T) {
	store := NewProjectStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_RejectsCorruptAndInvalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("not json", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
		_, err := NewProjectStore(path).Load()
		assert.ErrorContains(t, err, "parse project")
	})

	t.Run("empty sequence", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":1}`), 0o644))
		_, err := NewProjectStore(path).Load()
		assert.ErrorContains(t, err, "no sequence")
	})

	t.Run("future version", func(t *testing.T) {
		path := filepath.Join(dir, "future.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"sequence":{"fps":24}}`), 0o644))
		_, err := NewProjectStore(path).Load()
		assert.ErrorContains(t, err, "newer than supported")
	})
}

func TestSave_RejectsInvalidSequence(t *testing.T) {
	store := NewProjectStore(filepath.Join(t.TempDir(), "p.json"))
	p := testProject()
	p.Sequence.Shots[0].Duration = 0

	err := store.Save(p)
	assert.ErrorContains(t, err, "invalid project")
}

func TestWatcher_SeesAtomicSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	store := NewProjectStore(path)
	require.NoError(t, store.Save(testProject()))

	pw, err := NewProjectWatcher(path)
	require.NoError(t, err)
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := pw.Watch(ctx)

	require.NoError(t, store.Save(testProject()))

	select {
	case ev := <-events:
		assert.Equal(t, path, ev.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload event after save")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")

	pw, err := NewProjectWatcher(path)
	require.NoError(t, err)
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := pw.Watch(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-events:
		t.Fatal("unrelated file produced a reload event")
	case <-time.After(200 * time.Millisecond):
	}
}
