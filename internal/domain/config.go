package domain

import "fmt"

// Config is the full planner configuration. Loaded once at startup;
// read-only thereafter.
type Config struct {
	Features    FeatureConfig     `toml:"features"`
	Observation ObservationConfig `toml:"observation"`
	Logging     LoggingConfig     `toml:"logging"`
	Scenario    ScenarioSetConfig `toml:"scenario"`
}

// FeatureConfig holds the deployment feature toggles gating selection
// branches. They are static for the life of the process.
type FeatureConfig struct {
	// GeometryDispatch selects the deterministic geometry-priority
	// strategy. When false the manager falls back to preference voting.
	GeometryDispatch bool `toml:"geometry_dispatch"`
	StopSign         bool `toml:"stop_sign"`
	TrafficLight     bool `toml:"traffic_light"`
	SidePass         bool `toml:"side_pass"`
}

// ObservationConfig tunes perception intake.
type ObservationConfig struct {
	// SignalExpireSec is the maximum age of a traffic-light detection
	// before it is discarded as stale.
	SignalExpireSec float64 `toml:"signal_expire_sec"`
}

// LoggingConfig configures the planner log output.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ScenarioSetConfig holds one tuning record per registerable scenario type.
type ScenarioSetConfig struct {
	LaneFollow                       *LaneFollowConfig   `toml:"lane_follow"`
	SidePass                         *SidePassConfig     `toml:"side_pass"`
	StopSignUnprotected              *StopSignConfig     `toml:"stop_sign_unprotected"`
	TrafficLightProtected            *TrafficLightConfig `toml:"traffic_light_protected"`
	TrafficLightUnprotectedLeftTurn  *TrafficLightConfig `toml:"traffic_light_unprotected_left_turn"`
	TrafficLightUnprotectedRightTurn *TrafficLightConfig `toml:"traffic_light_unprotected_right_turn"`
}

// LaneFollowConfig tunes the default scenario.
type LaneFollowConfig struct {
	CruiseSpeed float64 `toml:"cruise_speed"` // m/s
}

// SidePassConfig tunes obstacle side-pass behavior.
type SidePassConfig struct {
	// MaxObstacleDistance is how far ahead a blocking obstacle may be for
	// side-pass to take over.
	MaxObstacleDistance float64 `toml:"max_obstacle_distance"` // m
	PassBuffer          float64 `toml:"pass_buffer"`           // m
}

// StopSignConfig tunes stop-sign handling.
type StopSignConfig struct {
	// StartScenarioDistance is the trigger distance: the scenario starts
	// when the ego front edge is within this distance of the stop line.
	StartScenarioDistance float64 `toml:"start_scenario_distance"` // m
	StopDuration          float64 `toml:"stop_duration"`           // s
}

// TrafficLightConfig tunes signaled-intersection handling.
type TrafficLightConfig struct {
	// MaxValidStopDistance bounds how far ahead of the stop line the
	// scenario may start.
	MaxValidStopDistance float64 `toml:"max_valid_stop_distance"` // m
}

// ScenarioTypeConfig is one entry of the scenario configuration map.
// Exactly one sub-config matching Type is set.
type ScenarioTypeConfig struct {
	Type         ScenarioType
	LaneFollow   *LaneFollowConfig
	SidePass     *SidePassConfig
	StopSign     *StopSignConfig
	TrafficLight *TrafficLightConfig
}

// ScenarioConfigMap maps each registerable scenario type to its
// configuration. Every type that can be instantiated has an entry before
// first use.
type ScenarioConfigMap map[ScenarioType]ScenarioTypeConfig

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Features: FeatureConfig{
			GeometryDispatch: true,
			StopSign:         true,
			TrafficLight:     true,
			SidePass:         true,
		},
		Observation: ObservationConfig{SignalExpireSec: 15.0},
		Logging:     LoggingConfig{Level: "info"},
		Scenario: ScenarioSetConfig{
			LaneFollow:                       &LaneFollowConfig{CruiseSpeed: 11.0},
			SidePass:                         &SidePassConfig{MaxObstacleDistance: 15.0, PassBuffer: 0.5},
			StopSignUnprotected:              &StopSignConfig{StartScenarioDistance: 5.0, StopDuration: 1.0},
			TrafficLightProtected:            &TrafficLightConfig{MaxValidStopDistance: 3.5},
			TrafficLightUnprotectedLeftTurn:  &TrafficLightConfig{MaxValidStopDistance: 3.5},
			TrafficLightUnprotectedRightTurn: &TrafficLightConfig{MaxValidStopDistance: 3.5},
		},
	}
}

// ScenarioConfigs builds the scenario configuration map from the loaded
// sections. Types with no section are absent from the map; Validate
// reports them.
func (c *Config) ScenarioConfigs() ScenarioConfigMap {
	m := make(ScenarioConfigMap)
	if sc := c.Scenario.LaneFollow; sc != nil {
		m[ScenarioLaneFollow] = ScenarioTypeConfig{Type: ScenarioLaneFollow, LaneFollow: sc}
	}
	if sc := c.Scenario.SidePass; sc != nil {
		m[ScenarioSidePass] = ScenarioTypeConfig{Type: ScenarioSidePass, SidePass: sc}
	}
	if sc := c.Scenario.StopSignUnprotected; sc != nil {
		m[ScenarioStopSignUnprotected] = ScenarioTypeConfig{Type: ScenarioStopSignUnprotected, StopSign: sc}
	}
	if sc := c.Scenario.TrafficLightProtected; sc != nil {
		m[ScenarioTrafficLightProtected] = ScenarioTypeConfig{Type: ScenarioTrafficLightProtected, TrafficLight: sc}
	}
	if sc := c.Scenario.TrafficLightUnprotectedLeftTurn; sc != nil {
		m[ScenarioTrafficLightUnprotectedLeftTurn] = ScenarioTypeConfig{Type: ScenarioTrafficLightUnprotectedLeftTurn, TrafficLight: sc}
	}
	if sc := c.Scenario.TrafficLightUnprotectedRightTurn; sc != nil {
		m[ScenarioTrafficLightUnprotectedRightTurn] = ScenarioTypeConfig{Type: ScenarioTrafficLightUnprotectedRightTurn, TrafficLight: sc}
	}
	return m
}

// Validate checks that the configuration is usable: a positive signal
// expiry and a tuning record for every registerable type. Configuration
// errors are fatal at startup, never recoverable at runtime.
func (c *Config) Validate() error {
	if c.Observation.SignalExpireSec <= 0 {
		return fmt.Errorf("observation.signal_expire_sec must be positive: %w", ErrInvalidConfig)
	}
	m := c.ScenarioConfigs()
	for _, t := range RegisterableScenarioTypes() {
		if _, ok := m[t]; !ok {
			return fmt.Errorf("scenario %q: %w", t, ErrMissingScenarioConfig)
		}
	}
	return nil
}

// RegisterableScenarioTypes lists the types the factory can build. The
// change-lane, approach, and all-way stop types are represented in the
// enumeration but have no registered implementation yet.
func RegisterableScenarioTypes() []ScenarioType {
	return []ScenarioType{
		ScenarioLaneFollow,
		ScenarioSidePass,
		ScenarioStopSignUnprotected,
		ScenarioTrafficLightProtected,
		ScenarioTrafficLightUnprotectedLeftTurn,
		ScenarioTrafficLightUnprotectedRightTurn,
	}
}
