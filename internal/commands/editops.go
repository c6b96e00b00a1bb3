package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/store/jsonfile"
	"github.com/framecut/framecut/pkg/iojson"
)

// deltaResult is the JSON output format for edit commands.
type deltaResult struct {
	Changed []string `json:"changed,omitempty"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Rippled []string `json:"rippled,omitempty"`
}

// commitDelta persists an engine result and reports it. Blocked or no-op
// deltas leave the file untouched and return an error naming the reason.
func commitDelta(w io.Writer, store *jsonfile.ProjectStore, p *jsonfile.Project, delta edit.Delta, jsonOutput bool) error {
	if delta.Reason != edit.ReasonNone {
		return fmt.Errorf("edit blocked: %s", delta.Reason)
	}
	if delta.Empty() {
		return fmt.Errorf("edit had no effect")
	}

	p.Sequence.Shots = delta.Apply(p.Sequence.Shots)
	p.Sequence.SortShots()
	if err := store.Save(p); err != nil {
		return fmt.Errorf("write project: %w", err)
	}

	res := deltaResult{Rippled: delta.Rippled}
	for _, sh := range delta.Changed {
		res.Changed = append(res.Changed, sh.ID)
	}
	for _, sh := range delta.Added {
		res.Added = append(res.Added, sh.ID)
	}
	res.Removed = append(res.Removed, delta.Removed...)

	log.Debug().
		Int("changed", len(res.Changed)).
		Int("added", len(res.Added)).
		Int("removed", len(res.Removed)).
		Int("rippled", len(res.Rippled)).
		Msg("edit committed")

	if jsonOutput {
		return iojson.WriteWith(w, os.Stderr, res)
	}
	fmt.Fprintf(w, "%d changed, %d added, %d removed, %d rippled\n",
		len(res.Changed), len(res.Added), len(res.Removed), len(res.Rippled))
	return nil
}
