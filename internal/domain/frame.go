package domain

import "time"

// TurnType classifies the path geometry where it crosses an intersection.
type TurnType string

const (
	TurnNone  TurnType = "no_turn"
	TurnLeft  TurnType = "left_turn"
	TurnRight TurnType = "right_turn"
	TurnU     TurnType = "u_turn"
)

// SignalColor is the observed state of a traffic signal.
type SignalColor string

const (
	SignalUnknown SignalColor = "unknown"
	SignalRed     SignalColor = "red"
	SignalYellow  SignalColor = "yellow"
	SignalGreen   SignalColor = "green"
	SignalBlack   SignalColor = "black"
)

// TrafficSignal is one signal's latest observed state.
type TrafficSignal struct {
	ID         string
	Color      SignalColor
	Confidence float64
}

// TrafficLightDetection is a perception payload carrying every signal seen
// in one camera frame. Absence of a detection in a planning cycle is
// routine, not an error.
type TrafficLightDetection struct {
	Timestamp time.Time
	Signals   []TrafficSignal
}

// ReferenceLineInfo is the per-cycle view of one candidate path, produced
// by the external map/path collaborator.
type ReferenceLineInfo struct {
	// FirstEncountered lists, per feature kind, the overlap first
	// encountered along the path, in encounter order.
	FirstEncountered []EncounteredOverlap
	// StopSignOverlaps is the path's full stop-sign overlap list, used for
	// ID-based re-resolution of the tracked overlap.
	StopSignOverlaps []Overlap
	// SignalOverlaps is the path's full traffic-signal overlap list.
	SignalOverlaps []Overlap
	// FrontEdgeS is the ego vehicle's front edge position along the path.
	FrontEdgeS float64
	// Turn is the path's turn classification at the upcoming intersection.
	Turn TurnType
}

// FirstEncounteredOverlap returns the first-encountered overlap of the
// given kind, if any.
func (r *ReferenceLineInfo) FirstEncounteredOverlap(kind OverlapKind) (Overlap, bool) {
	for _, enc := range r.FirstEncountered {
		if enc.Kind == kind {
			return enc.Overlap, true
		}
	}
	return Overlap{}, false
}

// EgoPoint is the ego vehicle's planning start point.
type EgoPoint struct {
	S     float64 // arc length along the chosen path
	Speed float64 // m/s
}

// Frame is the complete input to one planning cycle. The first reference
// line is the chosen path; a frame with no reference line violates the
// caller contract.
type Frame struct {
	SequenceNum    uint32
	ReferenceLines []ReferenceLineInfo
	// TrafficLightDetection is nil when no detector frame arrived this
	// cycle.
	TrafficLightDetection *TrafficLightDetection
}

// ChosenReferenceLine returns the path the planner committed to this cycle.
// Callers must ensure the frame carries at least one reference line.
func (f *Frame) ChosenReferenceLine() *ReferenceLineInfo {
	return &f.ReferenceLines[0]
}
