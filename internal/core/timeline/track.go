package timeline

import "fmt"

// Track is a typed display lane. A track never owns shots: membership is
// computed at layout time by matching layer types against the track type.
// Track order is independent of shot data and changes only through explicit
// reorder operations.
type Track struct {
	ID     string    `json:"id"`
	Type   LayerType `json:"type"`
	Height int       `json:"height"`
	Locked bool      `json:"locked,omitempty"`
	Hidden bool      `json:"hidden,omitempty"`
	Color  string    `json:"color,omitempty"`
	Icon   string    `json:"icon,omitempty"`
}

// Validate checks track invariants.
func (t Track) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("track: missing id")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("track %s: unknown type %q", t.ID, t.Type)
	}
	if t.Height < 1 {
		return fmt.Errorf("track %s: height %d below 1", t.ID, t.Height)
	}
	return nil
}
