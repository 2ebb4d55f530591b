// Package domain contains the core data model for scenario selection.
package domain

// ScenarioType identifies a driving behavior strategy. Exactly one type is
// active at any time; switching types switches the entire downstream
// trajectory-generation strategy.
type ScenarioType string

const (
	// ScenarioLaneFollow is the default scenario.
	ScenarioLaneFollow ScenarioType = "lane_follow"
	ScenarioChangeLane ScenarioType = "change_lane"
	ScenarioSidePass   ScenarioType = "side_pass"
	ScenarioApproach   ScenarioType = "approach"

	// ScenarioStopSignProtected (all-way stop) is reserved: it is part of
	// the type system but all-way detection is not wired up, so selection
	// never produces it.
	ScenarioStopSignProtected   ScenarioType = "stop_sign_protected"
	ScenarioStopSignUnprotected ScenarioType = "stop_sign_unprotected"

	ScenarioTrafficLightProtected ScenarioType = "traffic_light_protected"
	// ScenarioTrafficLightUnprotectedLeftTurn is reserved: left turns at a
	// signal currently resolve to the protected variant.
	ScenarioTrafficLightUnprotectedLeftTurn  ScenarioType = "traffic_light_unprotected_left_turn"
	ScenarioTrafficLightUnprotectedRightTurn ScenarioType = "traffic_light_unprotected_right_turn"
)

// AllScenarioTypes returns every scenario type in its natural enumeration
// order. The voting fallback iterates the supported set in this order.
func AllScenarioTypes() []ScenarioType {
	return []ScenarioType{
		ScenarioLaneFollow,
		ScenarioChangeLane,
		ScenarioSidePass,
		ScenarioApproach,
		ScenarioStopSignProtected,
		ScenarioStopSignUnprotected,
		ScenarioTrafficLightProtected,
		ScenarioTrafficLightUnprotectedLeftTurn,
		ScenarioTrafficLightUnprotectedRightTurn,
	}
}

// IsStopSign reports whether the type belongs to the stop-sign family.
func (t ScenarioType) IsStopSign() bool {
	return t == ScenarioStopSignProtected || t == ScenarioStopSignUnprotected
}

// IsTrafficLight reports whether the type belongs to the traffic-light family.
func (t ScenarioType) IsTrafficLight() bool {
	return t == ScenarioTrafficLightProtected ||
		t == ScenarioTrafficLightUnprotectedLeftTurn ||
		t == ScenarioTrafficLightUnprotectedRightTurn
}

// IsValid reports whether the type is a known enumeration member.
func (t ScenarioType) IsValid() bool {
	switch t {
	case ScenarioLaneFollow, ScenarioChangeLane, ScenarioSidePass, ScenarioApproach,
		ScenarioStopSignProtected, ScenarioStopSignUnprotected,
		ScenarioTrafficLightProtected, ScenarioTrafficLightUnprotectedLeftTurn,
		ScenarioTrafficLightUnprotectedRightTurn:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the type.
func (t ScenarioType) Display() string {
	switch t {
	case ScenarioLaneFollow:
		return "LaneFollow"
	case ScenarioChangeLane:
		return "ChangeLane"
	case ScenarioSidePass:
		return "SidePass"
	case ScenarioApproach:
		return "Approach"
	case ScenarioStopSignProtected:
		return "StopSignProtected"
	case ScenarioStopSignUnprotected:
		return "StopSignUnprotected"
	case ScenarioTrafficLightProtected:
		return "TrafficLightProtected"
	case ScenarioTrafficLightUnprotectedLeftTurn:
		return "TrafficLightUnprotectedLeftTurn"
	case ScenarioTrafficLightUnprotectedRightTurn:
		return "TrafficLightUnprotectedRightTurn"
	default:
		return string(t)
	}
}

// ScenarioStatus is the lifecycle state of an active scenario instance as
// observed by the manager.
type ScenarioStatus string

const (
	// StatusRunning means the scenario is still executing its behavior.
	StatusRunning ScenarioStatus = "running"
	// StatusDone means the behavior completed; the manager must pick a
	// replacement on the next cycle.
	StatusDone ScenarioStatus = "done"
)
