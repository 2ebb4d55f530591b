package scenario

import (
	"log/slog"

	"github.com/mobilityos/plansim/internal/domain"
)

// SidePass steers around a blocking obstacle on the chosen path and
// returns to the lane once past it.
type SidePass struct {
	base
	cfg      domain.SidePassConfig
	obstacle domain.Overlap
}

// NewSidePass creates a side-pass scenario.
func NewSidePass(cfg domain.SidePassConfig, ctx *domain.ScenarioContext, log *slog.Logger) *SidePass {
	return &SidePass{base: newBase(domain.ScenarioSidePass, ctx, log), cfg: cfg}
}

// IsTransferable permits activation while a blocking obstacle is first
// encountered within the configured distance, or while the pass is still
// in progress.
func (s *SidePass) IsTransferable(_ domain.Scenario, frame *domain.Frame) bool {
	if s.status == domain.StatusDone {
		return false
	}
	ref := frame.ChosenReferenceLine()
	ov, ok := ref.FirstEncounteredOverlap(domain.OverlapObstacle)
	if !ok {
		return false
	}
	dist := ov.StartS - ref.FrontEdgeS
	if dist <= 0 {
		// alongside the obstacle: keep passing until clear of it
		return ref.FrontEdgeS <= ov.EndS+s.cfg.PassBuffer
	}
	return dist <= s.cfg.MaxObstacleDistance
}

// Process tracks the obstacle and reports done once the ego front edge has
// cleared it.
func (s *SidePass) Process(_ domain.EgoPoint, frame *domain.Frame) {
	ref := frame.ChosenReferenceLine()
	if ov, ok := ref.FirstEncounteredOverlap(domain.OverlapObstacle); ok {
		s.obstacle = ov
	}
	if s.obstacle.IsZero() {
		return
	}
	if ref.FrontEdgeS > s.obstacle.EndS+s.cfg.PassBuffer {
		s.log.Debug("side pass complete", "obstacle", s.obstacle.ObjectID)
		s.status = domain.StatusDone
	}
}
