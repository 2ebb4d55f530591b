package scenario

import (
	"log/slog"
	"time"

	"github.com/mobilityos/plansim/internal/domain"
)

// stopSignStage is the internal stage of stop-sign handling.
type stopSignStage string

const (
	stageStopSignPreStop stopSignStage = "pre_stop"
	stageStopSignStop    stopSignStage = "stop"
	stageStopSignCruise  stopSignStage = "intersection_cruise"
)

// StopSignUnprotected stops at an unprotected stop sign, waits out the
// configured stop duration, then cruises through the intersection. The
// tracked overlap comes from the shared context, latched by the manager.
type StopSignUnprotected struct {
	base
	cfg       domain.StopSignConfig
	clock     domain.Clock
	stage     stopSignStage
	stoppedAt time.Time
}

// NewStopSignUnprotected creates a stop-sign scenario.
func NewStopSignUnprotected(cfg domain.StopSignConfig, ctx *domain.ScenarioContext, clock domain.Clock, log *slog.Logger) *StopSignUnprotected {
	return &StopSignUnprotected{
		base:  newBase(domain.ScenarioStopSignUnprotected, ctx, log),
		cfg:   cfg,
		clock: clock,
		stage: stageStopSignPreStop,
	}
}

// IsTransferable keeps a running instance active until done; a fresh
// candidate only claims the cycle when an unresolved stop sign lies within
// the trigger distance.
func (s *StopSignUnprotected) IsTransferable(from domain.Scenario, frame *domain.Frame) bool {
	if s.status == domain.StatusDone {
		return false
	}
	if from.Type() == s.typ {
		return true
	}
	ref := frame.ChosenReferenceLine()
	ov, ok := ref.FirstEncounteredOverlap(domain.OverlapStopSign)
	if !ok || s.ctx.IsStopDone(ov.ObjectID) {
		return false
	}
	distance := ov.StartS - ref.FrontEdgeS
	return distance > 0 && distance <= s.cfg.StartScenarioDistance
}

// Process advances the stop/wait/cruise stage machine against the tracked
// overlap and marks the overlap resolved on completion.
func (s *StopSignUnprotected) Process(_ domain.EgoPoint, frame *domain.Frame) {
	ov := s.ctx.CurrentStopSignOverlap
	if ov.IsZero() || s.status == domain.StatusDone {
		return
	}
	front := frame.ChosenReferenceLine().FrontEdgeS

	switch s.stage {
	case stageStopSignPreStop:
		if front >= ov.StartS {
			s.stage = stageStopSignStop
			s.stoppedAt = s.clock.Now()
		}
	case stageStopSignStop:
		if s.clock.Now().Sub(s.stoppedAt) >= time.Duration(s.cfg.StopDuration*float64(time.Second)) {
			s.stage = stageStopSignCruise
		}
	case stageStopSignCruise:
		if front > ov.EndS {
			s.log.Debug("stop sign resolved", "stop_sign", ov.ObjectID)
			s.ctx.MarkStopDone(ov.ObjectID)
			s.status = domain.StatusDone
		}
	}
}
