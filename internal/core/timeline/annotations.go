package timeline

import "fmt"

// MarkerType classifies a point annotation.
type MarkerType string

const (
	MarkerChapter MarkerType = "chapter"
	MarkerComment MarkerType = "comment"
	MarkerTodo    MarkerType = "todo"
	MarkerBeat    MarkerType = "beat"
)

// Marker is a point annotation on the sequence, independent of shots.
// TrackID is a weak reference: deleting the track does not delete the
// marker, lookups simply miss.
type Marker struct {
	ID       string     `json:"id"`
	Position Frame      `json:"position"`
	Type     MarkerType `json:"type"`
	Label    string     `json:"label,omitempty"`
	TrackID  string     `json:"track_id,omitempty"`
}

// Validate checks marker invariants.
func (m Marker) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("marker: missing id")
	}
	if m.Position < 0 {
		return fmt.Errorf("marker %s: negative position %d", m.ID, m.Position)
	}
	return nil
}

// RegionType classifies an interval annotation.
type RegionType string

const (
	RegionWorkArea  RegionType = "work-area"
	RegionLoop      RegionType = "loop"
	RegionSelection RegionType = "selection"
	RegionComment   RegionType = "comment"
)

// Region is an interval annotation on the sequence, independent of shots.
type Region struct {
	ID    string     `json:"id"`
	Start Frame      `json:"start"`
	End   Frame      `json:"end"`
	Type  RegionType `json:"type"`
	Label string     `json:"label,omitempty"`
}

// Span returns the region's frame interval.
func (r Region) Span() Span {
	return Span{Start: r.Start, End: r.End}
}

// Validate checks region invariants, in particular End > Start.
func (r Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("region: missing id")
	}
	if r.Start < 0 {
		return fmt.Errorf("region %s: negative start %d", r.ID, r.Start)
	}
	if r.End <= r.Start {
		return fmt.Errorf("region %s: end %d not after start %d", r.ID, r.End, r.Start)
	}
	return nil
}
