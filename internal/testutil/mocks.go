// Package testutil provides shared test doubles and frame builders.
package testutil

import (
	"time"

	"github.com/mobilityos/plansim/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// StubScenario is a configurable test double for domain.Scenario.
type StubScenario struct {
	ScenarioType domain.ScenarioType
	StatusValue  domain.ScenarioStatus
	Transferable bool
	InitErr      error
}

// NewStubScenario creates a running, transferable stub of the given type.
func NewStubScenario(typ domain.ScenarioType) *StubScenario {
	return &StubScenario{
		ScenarioType: typ,
		StatusValue:  domain.StatusRunning,
		Transferable: true,
	}
}

// Init returns the configured error.
func (s *StubScenario) Init() error { return s.InitErr }

// Type returns the stub's type.
func (s *StubScenario) Type() domain.ScenarioType { return s.ScenarioType }

// Status returns the configured status.
func (s *StubScenario) Status() domain.ScenarioStatus { return s.StatusValue }

// IsTransferable returns the configured verdict.
func (s *StubScenario) IsTransferable(_ domain.Scenario, _ *domain.Frame) bool {
	return s.Transferable
}

// Name returns a diagnostic name.
func (s *StubScenario) Name() string { return "stub-" + string(s.ScenarioType) }

// FrameBuilder assembles frames for tests.
type FrameBuilder struct {
	ref       domain.ReferenceLineInfo
	detection *domain.TrafficLightDetection
	extraRefs int
}

// NewFrame returns a builder for a single-reference-line frame with the
// ego front edge at the given position.
func NewFrame(frontEdgeS float64) *FrameBuilder {
	return &FrameBuilder{ref: domain.ReferenceLineInfo{FrontEdgeS: frontEdgeS}}
}

// WithTurn sets the path turn classification.
func (b *FrameBuilder) WithTurn(turn domain.TurnType) *FrameBuilder {
	b.ref.Turn = turn
	return b
}

// WithEncountered appends a first-encountered overlap and mirrors it into
// the matching full overlap list.
func (b *FrameBuilder) WithEncountered(kind domain.OverlapKind, id string, startS, endS float64) *FrameBuilder {
	ov := domain.Overlap{ObjectID: id, StartS: startS, EndS: endS}
	b.ref.FirstEncountered = append(b.ref.FirstEncountered, domain.EncounteredOverlap{Kind: kind, Overlap: ov})
	switch kind {
	case domain.OverlapStopSign:
		b.ref.StopSignOverlaps = append(b.ref.StopSignOverlaps, ov)
	case domain.OverlapSignal:
		b.ref.SignalOverlaps = append(b.ref.SignalOverlaps, ov)
	}
	return b
}

// WithStopSignOverlap appends to the path's full stop-sign list only.
func (b *FrameBuilder) WithStopSignOverlap(id string, startS, endS float64) *FrameBuilder {
	b.ref.StopSignOverlaps = append(b.ref.StopSignOverlaps, domain.Overlap{ObjectID: id, StartS: startS, EndS: endS})
	return b
}

// WithDetection attaches a traffic-light detection.
func (b *FrameBuilder) WithDetection(ts time.Time, signals ...domain.TrafficSignal) *FrameBuilder {
	b.detection = &domain.TrafficLightDetection{Timestamp: ts, Signals: signals}
	return b
}

// Build assembles the frame.
func (b *FrameBuilder) Build() *domain.Frame {
	refs := []domain.ReferenceLineInfo{b.ref}
	for i := 0; i < b.extraRefs; i++ {
		refs = append(refs, domain.ReferenceLineInfo{})
	}
	return &domain.Frame{
		ReferenceLines:        refs,
		TrafficLightDetection: b.detection,
	}
}
