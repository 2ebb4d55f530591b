package scenario

import (
	"log/slog"

	"github.com/mobilityos/plansim/internal/domain"
)

// TrafficLight handles a signaled intersection. The same stage machine
// serves the protected, unprotected-left-turn, and unprotected-right-turn
// variants; the type decides which downstream trajectory strategy runs.
// Tracked overlaps come from the shared context, latched by the manager.
type TrafficLight struct {
	base
	cfg domain.TrafficLightConfig
}

// NewTrafficLight creates a traffic-light scenario of the given variant.
func NewTrafficLight(typ domain.ScenarioType, cfg domain.TrafficLightConfig, ctx *domain.ScenarioContext, log *slog.Logger) *TrafficLight {
	return &TrafficLight{base: newBase(typ, ctx, log), cfg: cfg}
}

// IsTransferable keeps a running instance active until done; a fresh
// candidate only claims the cycle when an unresolved signal overlap with a
// fresh signal read lies within the valid stop distance.
func (s *TrafficLight) IsTransferable(from domain.Scenario, frame *domain.Frame) bool {
	if s.status == domain.StatusDone {
		return false
	}
	if from.Type() == s.typ {
		return true
	}
	ref := frame.ChosenReferenceLine()
	ov, ok := ref.FirstEncounteredOverlap(domain.OverlapSignal)
	if !ok || s.ctx.IsStopDone(ov.ObjectID) {
		return false
	}
	if _, known := s.ctx.Signal(ov.ObjectID); !known {
		return false
	}
	return ov.StartS-ref.FrontEdgeS <= s.cfg.MaxValidStopDistance
}

// AllGreen reports whether every tracked signal currently reads green.
// The downstream stop-line stage holds the vehicle while this is false.
func (s *TrafficLight) AllGreen() bool {
	overlaps := s.ctx.CurrentTrafficLightOverlaps
	if len(overlaps) == 0 {
		return false
	}
	for _, ov := range overlaps {
		sig, ok := s.ctx.Signal(ov.ObjectID)
		if !ok || sig.Color != domain.SignalGreen {
			return false
		}
	}
	return true
}

// Process marks the intersection resolved once the ego front edge clears
// every tracked overlap.
func (s *TrafficLight) Process(_ domain.EgoPoint, frame *domain.Frame) {
	overlaps := s.ctx.CurrentTrafficLightOverlaps
	if len(overlaps) == 0 || s.status == domain.StatusDone {
		return
	}
	front := frame.ChosenReferenceLine().FrontEdgeS

	for _, ov := range overlaps {
		if front <= ov.EndS {
			return
		}
	}
	for _, ov := range overlaps {
		s.ctx.MarkStopDone(ov.ObjectID)
	}
	s.log.Debug("traffic light resolved", "variant", s.typ)
	s.status = domain.StatusDone
}
