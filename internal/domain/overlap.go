package domain

// OverlapKind tags the road feature a path overlap crosses.
type OverlapKind string

const (
	OverlapObstacle  OverlapKind = "obstacle"
	OverlapStopSign  OverlapKind = "stop_sign"
	OverlapSignal    OverlapKind = "signal"
	OverlapCrosswalk OverlapKind = "crosswalk"
	OverlapClearArea OverlapKind = "clear_area"
)

// Overlap is an owned copy of a path/feature crossing: the feature's object
// ID plus its start and end arc-length positions along the chosen path.
// Identity across cycles is tracked by ID, never by reference; the map
// collaborator may recompute the geometry every cycle.
type Overlap struct {
	ObjectID string
	StartS   float64
	EndS     float64
}

// IsZero reports whether no overlap is being tracked.
func (o Overlap) IsZero() bool {
	return o.ObjectID == "" && o.StartS == 0 && o.EndS == 0
}

// EncounteredOverlap pairs an overlap with its kind, in the order the
// features are first encountered along the path.
type EncounteredOverlap struct {
	Kind    OverlapKind
	Overlap Overlap
}

// FindOverlapByID returns the overlap with the given object ID, if present.
func FindOverlapByID(overlaps []Overlap, id string) (Overlap, bool) {
	for _, o := range overlaps {
		if o.ObjectID == id {
			return o, true
		}
	}
	return Overlap{}, false
}
