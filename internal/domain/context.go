package domain

// ScenarioContext is the cross-cycle carry state shared between the manager
// and the active scenario. A single value lives for the lifetime of the
// manager and is handed by reference to every scenario instance it creates;
// the manager owns that lifetime guarantee. There is no concurrent writer,
// so no locking is required.
//
// The tracked fields are meaningful only while a stop-sign or traffic-light
// scenario is active; the manager clears them when neither family is.
type ScenarioContext struct {
	// CurrentStopSignOverlap is the stop-sign overlap the active stop-sign
	// scenario is tracking. Zero value when none.
	CurrentStopSignOverlap Overlap

	// StopDoneOverlapIDs holds stop-sign/traffic-light overlap IDs already
	// resolved, so a cleared feature does not re-trigger its scenario.
	StopDoneOverlapIDs map[string]struct{}

	// TrafficLights maps signal ID to the latest observed signal state.
	// Rebuilt from the detection payload every cycle.
	TrafficLights map[string]TrafficSignal

	// CurrentTrafficLightOverlaps are the overlaps for the signal(s) the
	// active traffic-light scenario is tracking.
	CurrentTrafficLightOverlaps []Overlap
}

// NewScenarioContext creates an empty context.
func NewScenarioContext() *ScenarioContext {
	return &ScenarioContext{
		StopDoneOverlapIDs: make(map[string]struct{}),
		TrafficLights:      make(map[string]TrafficSignal),
	}
}

// Signal returns the latest observed state for a signal ID.
func (c *ScenarioContext) Signal(id string) (TrafficSignal, bool) {
	sig, ok := c.TrafficLights[id]
	return sig, ok
}

// MarkStopDone records an overlap ID as resolved.
func (c *ScenarioContext) MarkStopDone(id string) {
	c.StopDoneOverlapIDs[id] = struct{}{}
}

// IsStopDone reports whether an overlap ID has already been resolved.
func (c *ScenarioContext) IsStopDone(id string) bool {
	_, ok := c.StopDoneOverlapIDs[id]
	return ok
}

// ClearTracking drops all stop-sign/traffic-light tracking state. Called
// when the manager switches away from both families.
func (c *ScenarioContext) ClearTracking() {
	c.CurrentStopSignOverlap = Overlap{}
	c.CurrentTrafficLightOverlaps = nil
	clear(c.StopDoneOverlapIDs)
}
