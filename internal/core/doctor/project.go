package doctor

import (
	"context"
	"fmt"
	"sort"

	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

// ProjectCheck validates the project file on disk.
type ProjectCheck struct {
	Store *jsonfile.ProjectStore
}

func (c *ProjectCheck) Name() string { return "project" }

func (c *ProjectCheck) Run(_ context.Context) Result {
	res := Result{Name: c.Name()}

	p, err := c.Store.Load()
	if err != nil {
		res.Items = append(res.Items, CheckItem{
			Label:  "load " + c.Store.Path(),
			Status: StatusFail,
			Detail: err.Error(),
		})
		return res
	}
	res.Items = append(res.Items, CheckItem{Label: "load " + c.Store.Path(), Status: StatusPass})

	if err := p.Sequence.Validate(); err != nil {
		res.Items = append(res.Items, CheckItem{
			Label:  "sequence invariants",
			Status: StatusFail,
			Detail: err.Error(),
		})
	} else {
		res.Items = append(res.Items, CheckItem{Label: "sequence invariants", Status: StatusPass})
	}

	res.Items = append(res.Items, checkSorted(p.Sequence.Shots))
	res.Items = append(res.Items, checkOverlaps(p.Sequence.Shots))
	res.Items = append(res.Items, checkSelection(p))
	return res
}

func checkSorted(shots []timeline.Shot) CheckItem {
	sorted := sort.SliceIsSorted(shots, func(i, j int) bool {
		return shots[i].StartTime < shots[j].StartTime
	})
	if !sorted {
		return CheckItem{
			Label:  "shot order",
			Status: StatusWarn,
			Detail: "shots are not sorted by start time; any edit will reorder them",
		}
	}
	return CheckItem{Label: "shot order", Status: StatusPass}
}

// checkOverlaps flags shots whose media layers occupy the same frames.
// Overlap is legal for stacked lanes but usually a mistake for media.
func checkOverlaps(shots []timeline.Shot) CheckItem {
	var media []timeline.Shot
	for _, sh := range shots {
		if _, ok := sh.MediaLayer(); ok {
			media = append(media, sh)
		}
	}
	sort.Slice(media, func(i, j int) bool { return media[i].StartTime < media[j].StartTime })

	for i := 1; i < len(media); i++ {
		prev, cur := media[i-1], media[i]
		if cur.StartTime < prev.End() {
			return CheckItem{
				Label:  "media overlaps",
				Status: StatusWarn,
				Detail: fmt.Sprintf("shots %s and %s overlap at frame %d", prev.ID, cur.ID, cur.StartTime),
			}
		}
	}
	return CheckItem{Label: "media overlaps", Status: StatusPass}
}

func checkSelection(p *jsonfile.Project) CheckItem {
	alive := make(map[string]struct{}, len(p.Sequence.Shots))
	for _, sh := range p.Sequence.Shots {
		alive[sh.ID] = struct{}{}
	}
	for _, id := range p.Selected {
		if _, ok := alive[id]; !ok {
			return CheckItem{
				Label:  "saved selection",
				Status: StatusWarn,
				Detail: fmt.Sprintf("selected shot %s no longer exists", id),
			}
		}
	}
	return CheckItem{Label: "saved selection", Status: StatusPass}
}
