package scenario

import (
	"log/slog"

	"github.com/mobilityos/plansim/internal/domain"
)

// LaneFollow is the default scenario: cruise along the chosen path. It
// never completes and is transferable from anything — the selection
// strategies rely on that invariant when every other candidate is
// rejected.
type LaneFollow struct {
	base
	cfg domain.LaneFollowConfig
}

// NewLaneFollow creates the default scenario.
func NewLaneFollow(cfg domain.LaneFollowConfig, ctx *domain.ScenarioContext, log *slog.Logger) *LaneFollow {
	return &LaneFollow{base: newBase(domain.ScenarioLaneFollow, ctx, log), cfg: cfg}
}

// IsTransferable always permits activation.
func (s *LaneFollow) IsTransferable(_ domain.Scenario, _ *domain.Frame) bool {
	return true
}

// Process keeps cruising; lane follow has no terminal state.
func (s *LaneFollow) Process(_ domain.EgoPoint, _ *domain.Frame) {}
