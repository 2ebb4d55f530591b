package scenario

import (
	"fmt"
	"log/slog"

	"github.com/mobilityos/plansim/internal/domain"
)

// Factory builds scenario instances from the closed registry. Every
// instance shares the factory's context handle; configuration comes from
// the map loaded at startup.
type Factory struct {
	configs domain.ScenarioConfigMap
	ctx     *domain.ScenarioContext
	clock   domain.Clock
	log     *slog.Logger
}

// NewFactory creates a Factory over the loaded configuration map.
func NewFactory(configs domain.ScenarioConfigMap, ctx *domain.ScenarioContext, clock domain.Clock, log *slog.Logger) *Factory {
	return &Factory{configs: configs, ctx: ctx, clock: clock, log: log}
}

// Create builds and initializes the variant for the given type. A type
// outside the registry yields ErrScenarioNotRegistered; the manager never
// requests one, so this path is defensive only.
func (f *Factory) Create(typ domain.ScenarioType) (domain.Scenario, error) {
	cfg, ok := f.configs[typ]
	if !ok {
		return nil, fmt.Errorf("create %s: %w", typ, domain.ErrMissingScenarioConfig)
	}

	var s domain.Scenario
	switch typ {
	case domain.ScenarioLaneFollow:
		s = NewLaneFollow(*cfg.LaneFollow, f.ctx, f.log)
	case domain.ScenarioSidePass:
		s = NewSidePass(*cfg.SidePass, f.ctx, f.log)
	case domain.ScenarioStopSignUnprotected:
		s = NewStopSignUnprotected(*cfg.StopSign, f.ctx, f.clock, f.log)
	case domain.ScenarioTrafficLightProtected,
		domain.ScenarioTrafficLightUnprotectedLeftTurn,
		domain.ScenarioTrafficLightUnprotectedRightTurn:
		s = NewTrafficLight(typ, *cfg.TrafficLight, f.ctx, f.log)
	default:
		return nil, fmt.Errorf("create %s: %w", typ, domain.ErrScenarioNotRegistered)
	}

	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init %s: %w", typ, err)
	}
	return s, nil
}
