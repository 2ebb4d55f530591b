package domain

import "time"

// Scenario is the contract the manager consumes. Implementations own their
// behavior state; the manager only creates, queries, and replaces them.
// Replacement is destructive and immediate, so any teardown a scenario
// needs must complete synchronously before it is dropped.
type Scenario interface {
	// Init prepares the scenario after construction.
	Init() error

	// Type returns the scenario's fixed type.
	Type() ScenarioType

	// Status reports whether the behavior is still running or done.
	Status() ScenarioStatus

	// IsTransferable reports whether this scenario may become (or remain)
	// active given the prior scenario and the current frame.
	IsTransferable(from Scenario, frame *Frame) bool

	// Name returns a diagnostic name.
	Name() string
}

// Clock provides time operations for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
