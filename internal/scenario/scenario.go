// Package scenario implements the driving-behavior variants the manager
// selects among, and the factory that builds them from the closed registry.
package scenario

import (
	"log/slog"

	"github.com/mobilityos/plansim/internal/domain"
)

// Runner is implemented by variants that advance an internal stage machine
// against a frame. The downstream planner drives it after selection; the
// manager itself never calls Process.
type Runner interface {
	Process(ego domain.EgoPoint, frame *domain.Frame)
}

// base carries the state every variant shares: its type, the shared
// context handle, and its reported status.
type base struct {
	ctx    *domain.ScenarioContext
	log    *slog.Logger
	typ    domain.ScenarioType
	status domain.ScenarioStatus
}

func newBase(typ domain.ScenarioType, ctx *domain.ScenarioContext, log *slog.Logger) base {
	return base{ctx: ctx, log: log, typ: typ, status: domain.StatusRunning}
}

// Type returns the scenario's fixed type.
func (b *base) Type() domain.ScenarioType {
	return b.typ
}

// Status reports the scenario's lifecycle state.
func (b *base) Status() domain.ScenarioStatus {
	return b.status
}

// Name returns a diagnostic name.
func (b *base) Name() string {
	return b.typ.Display()
}

// Init prepares the scenario. Variants with setup needs override this.
func (b *base) Init() error {
	b.status = domain.StatusRunning
	return nil
}
