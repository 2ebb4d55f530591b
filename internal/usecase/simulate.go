// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mobilityos/plansim/internal/domain"
	"github.com/mobilityos/plansim/internal/infra/replay"
	"github.com/mobilityos/plansim/internal/manager"
	"github.com/mobilityos/plansim/internal/scenario"
)

// SimulateInput contains the input for the Simulate use case.
type SimulateInput struct {
	Recording *replay.Recording
	// Supported restricts the activatable scenario set. Empty means every
	// registerable type.
	Supported []domain.ScenarioType
}

// CycleResult is one replayed cycle's selection outcome.
type CycleResult struct {
	Time     time.Time
	Scenario domain.ScenarioType
	Rule     manager.Rule
	Status   domain.ScenarioStatus
	Cycle    int
	EgoS     float64
}

// SimulateOutput contains the output of the Simulate use case.
type SimulateOutput struct {
	Recording *replay.Recording
	Results   []CycleResult
	Final     domain.ScenarioType
}

// Simulate replays a recorded drive through a fresh scenario manager,
// advancing the active scenario's stage machine between cycles the way the
// downstream planner would.
type Simulate struct {
	cfg *domain.Config
	log *slog.Logger
}

// NewSimulate creates a new Simulate use case.
func NewSimulate(cfg *domain.Config, log *slog.Logger) *Simulate {
	return &Simulate{cfg: cfg, log: log}
}

// replayClock serves recorded cycle times to the manager.
type replayClock struct {
	now time.Time
}

func (c *replayClock) Now() time.Time {
	return c.now
}

// Execute runs the replay.
func (uc *Simulate) Execute(_ context.Context, in SimulateInput) (*SimulateOutput, error) {
	supported := in.Supported
	if len(supported) == 0 {
		supported = domain.RegisterableScenarioTypes()
	}

	clk := &replayClock{}
	mgr := manager.New(uc.cfg, clk, uc.log)
	if err := mgr.Init(supported); err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	out := &SimulateOutput{Recording: in.Recording}
	for i, cycle := range in.Recording.Cycles {
		clk.now = cycle.Time
		frame := cycle.Frame
		mgr.Update(cycle.Ego, &frame)

		// the planner's turn: let the winner advance its stage machine
		if runner, ok := mgr.Current().(scenario.Runner); ok {
			runner.Process(cycle.Ego, &frame)
		}

		out.Results = append(out.Results, CycleResult{
			Cycle:    i,
			Time:     cycle.Time,
			EgoS:     cycle.Frame.ChosenReferenceLine().FrontEdgeS,
			Scenario: mgr.Current().Type(),
			Rule:     mgr.LastDecision().Rule,
			Status:   mgr.Current().Status(),
		})
	}
	if n := len(out.Results); n > 0 {
		out.Final = out.Results[n-1].Scenario
	}
	return out, nil
}
