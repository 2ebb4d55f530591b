package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilityos/plansim/internal/domain"
	"github.com/mobilityos/plansim/internal/infra/logging"
	"github.com/mobilityos/plansim/internal/testutil"
)

func newTestManager(t *testing.T, mutate func(*domain.Config)) (*Manager, *testutil.MockClock) {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	clk := &testutil.MockClock{NowTime: time.Unix(1_700_000_000, 0)}
	m := New(cfg, clk, logging.Discard())
	require.NoError(t, m.Init(domain.RegisterableScenarioTypes()))
	return m, clk
}

func TestManager_Init(t *testing.T) {
	m, _ := newTestManager(t, nil)

	require.NotNil(t, m.Current())
	assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
	assert.True(t, m.isSupported(m.Current().Type()))
	assert.NotNil(t, m.Context())
}

func TestManager_Init_MissingConfig(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Scenario.StopSignUnprotected = nil
	m := New(cfg, &testutil.MockClock{}, logging.Discard())

	err := m.Init(domain.RegisterableScenarioTypes())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingScenarioConfig)
}

func TestManager_Init_UnregisterableSupportedType(t *testing.T) {
	m := New(domain.NewDefaultConfig(), &testutil.MockClock{}, logging.Discard())

	err := m.Init([]domain.ScenarioType{
		domain.ScenarioLaneFollow,
		domain.ScenarioChangeLane,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedScenario)
}

func TestManager_Update_PanicsOnEmptyFrame(t *testing.T) {
	m, _ := newTestManager(t, nil)

	assert.Panics(t, func() {
		m.Update(domain.EgoPoint{}, &domain.Frame{})
	})
}

func TestManager_Update_CurrentAlwaysSupported(t *testing.T) {
	m, clk := newTestManager(t, nil)

	frames := []*domain.Frame{
		testutil.NewFrame(0).Build(),
		testutil.NewFrame(0).WithEncountered(domain.OverlapStopSign, "ss-1", 3, 4).Build(),
		testutil.NewFrame(0).
			WithEncountered(domain.OverlapSignal, "tl-1", 2, 3).
			WithDetection(clk.NowTime, domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
			Build(),
	}
	for _, f := range frames {
		m.Update(domain.EgoPoint{}, f)
		require.NotNil(t, m.Current())
		assert.True(t, m.isSupported(m.Current().Type()))
	}
}

func TestDispatch_UnsupportedTypeFallsBack(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	m := New(cfg, &testutil.MockClock{NowTime: time.Unix(1_700_000_000, 0)}, logging.Discard())
	require.NoError(t, m.Init([]domain.ScenarioType{domain.ScenarioLaneFollow}))

	frame := testutil.NewFrame(0).
		WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
		Build()
	m.Update(domain.EgoPoint{}, frame)

	assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
	assert.Equal(t, RuleDefault, m.LastDecision().Rule)
}

func TestReadTrafficLight(t *testing.T) {
	m, clk := newTestManager(t, nil)

	t.Run("no detection leaves mapping empty", func(t *testing.T) {
		m.Update(domain.EgoPoint{}, testutil.NewFrame(0).Build())
		assert.Empty(t, m.Context().TrafficLights)
	})

	t.Run("fresh detection populates mapping", func(t *testing.T) {
		frame := testutil.NewFrame(0).
			WithDetection(clk.NowTime.Add(-time.Second),
				domain.TrafficSignal{ID: "tl-1", Color: domain.SignalRed},
				domain.TrafficSignal{ID: "tl-2", Color: domain.SignalGreen}).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		require.Len(t, m.Context().TrafficLights, 2)
		assert.Equal(t, domain.SignalRed, m.Context().TrafficLights["tl-1"].Color)
	})

	t.Run("duplicate IDs last write wins", func(t *testing.T) {
		frame := testutil.NewFrame(0).
			WithDetection(clk.NowTime,
				domain.TrafficSignal{ID: "tl-1", Color: domain.SignalRed},
				domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		require.Len(t, m.Context().TrafficLights, 1)
		assert.Equal(t, domain.SignalGreen, m.Context().TrafficLights["tl-1"].Color)
	})

	t.Run("stale detection discarded", func(t *testing.T) {
		frame := testutil.NewFrame(0).
			WithDetection(clk.NowTime.Add(-16*time.Second),
				domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Empty(t, m.Context().TrafficLights)
	})

	t.Run("mapping cleared every cycle", func(t *testing.T) {
		frame := testutil.NewFrame(0).
			WithDetection(clk.NowTime, domain.TrafficSignal{ID: "tl-9", Color: domain.SignalGreen}).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		m.Update(domain.EgoPoint{}, testutil.NewFrame(0).Build())
		assert.Empty(t, m.Context().TrafficLights)
	})
}

func TestDispatch_StopSignDistanceGating(t *testing.T) {
	tests := []struct {
		name       string
		overlapS   float64
		frontEdgeS float64
		want       domain.ScenarioType
	}{
		{"inside trigger distance", 5, 0, domain.ScenarioStopSignUnprotected},
		{"at trigger distance", 10, 0, domain.ScenarioStopSignUnprotected},
		{"beyond trigger distance", 11, 0, domain.ScenarioLaneFollow},
		{"already passed", 5, 6, domain.ScenarioLaneFollow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t, func(cfg *domain.Config) {
				cfg.Scenario.StopSignUnprotected.StartScenarioDistance = 10
			})
			frame := testutil.NewFrame(tt.frontEdgeS).
				WithEncountered(domain.OverlapStopSign, "ss-1", tt.overlapS, tt.overlapS+2).
				Build()
			m.Update(domain.EgoPoint{}, frame)
			assert.Equal(t, tt.want, m.Current().Type())
		})
	}
}

func TestDispatch_TieBreak_NearerFeatureGoverns(t *testing.T) {
	t.Run("signal nearer than stop sign", func(t *testing.T) {
		m, clk := newTestManager(t, func(cfg *domain.Config) {
			cfg.Scenario.StopSignUnprotected.StartScenarioDistance = 100
			cfg.Scenario.TrafficLightProtected.MaxValidStopDistance = 100
		})
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapStopSign, "ss-1", 50, 52).
			WithEncountered(domain.OverlapSignal, "tl-1", 40, 42).
			WithDetection(clk.NowTime, domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.True(t, m.Current().Type().IsTrafficLight(),
			"nearer signal must govern, got %s", m.Current().Type())
	})

	t.Run("stop sign nearer than signal", func(t *testing.T) {
		m, clk := newTestManager(t, func(cfg *domain.Config) {
			cfg.Scenario.StopSignUnprotected.StartScenarioDistance = 100
			cfg.Scenario.TrafficLightProtected.MaxValidStopDistance = 100
		})
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapSignal, "tl-1", 50, 52).
			WithEncountered(domain.OverlapStopSign, "ss-1", 40, 42).
			WithDetection(clk.NowTime, domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Equal(t, domain.ScenarioStopSignUnprotected, m.Current().Type())
	})
}

func TestDispatch_TrafficLightTurnSelection(t *testing.T) {
	tests := []struct {
		name string
		turn domain.TurnType
		want domain.ScenarioType
	}{
		{"straight", domain.TurnNone, domain.ScenarioTrafficLightProtected},
		{"right turn", domain.TurnRight, domain.ScenarioTrafficLightUnprotectedRightTurn},
		// unprotected left turn is reserved; left resolves to protected
		{"left turn", domain.TurnLeft, domain.ScenarioTrafficLightProtected},
		{"u turn", domain.TurnU, domain.ScenarioTrafficLightProtected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clk := newTestManager(t, func(cfg *domain.Config) {
				cfg.Scenario.TrafficLightProtected.MaxValidStopDistance = 100
			})
			frame := testutil.NewFrame(0).
				WithTurn(tt.turn).
				WithEncountered(domain.OverlapSignal, "tl-1", 40, 42).
				WithDetection(clk.NowTime, domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
				Build()
			m.Update(domain.EgoPoint{}, frame)
			assert.Equal(t, tt.want, m.Current().Type())
		})
	}
}

func TestDispatch_Freshness_StaleDetectionNeverTriggers(t *testing.T) {
	m, clk := newTestManager(t, func(cfg *domain.Config) {
		cfg.Scenario.TrafficLightProtected.MaxValidStopDistance = 100
	})
	frame := testutil.NewFrame(0).
		WithEncountered(domain.OverlapSignal, "tl-1", 40, 42).
		WithDetection(clk.NowTime.Add(-20*time.Second),
			domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
		Build()

	m.Update(domain.EgoPoint{}, frame)

	assert.Empty(t, m.Context().TrafficLights)
	assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
}

func TestDispatch_Stickiness(t *testing.T) {
	m, _ := newTestManager(t, nil)
	frame := testutil.NewFrame(0).
		WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
		Build()

	m.Update(domain.EgoPoint{}, frame)
	require.Equal(t, domain.ScenarioStopSignUnprotected, m.Current().Type())
	first := m.Current()

	// unchanged input: the running scenario is never pre-empted
	for range 3 {
		m.Update(domain.EgoPoint{}, frame)
		assert.Same(t, first, m.Current())
		assert.Equal(t, RuleStickiness, m.LastDecision().Rule)
	}
}

func TestDispatch_Idempotence(t *testing.T) {
	m, _ := newTestManager(t, nil)
	frame := testutil.NewFrame(0).
		WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
		Build()

	m.Update(domain.EgoPoint{}, frame)
	got := m.Current().Type()
	m.Update(domain.EgoPoint{}, frame)
	assert.Equal(t, got, m.Current().Type())
}

func TestDispatch_CompletionFallback(t *testing.T) {
	m, _ := newTestManager(t, nil)

	m.newScenario = func(typ domain.ScenarioType) (domain.Scenario, error) {
		s := testutil.NewStubScenario(typ)
		// keep the side-pass probe from hijacking the fallback
		s.Transferable = typ != domain.ScenarioSidePass
		return s, nil
	}

	frame := testutil.NewFrame(0).
		WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
		Build()
	m.Update(domain.EgoPoint{}, frame)
	require.Equal(t, domain.ScenarioStopSignUnprotected, m.Current().Type())

	stub := m.Current().(*testutil.StubScenario)
	stub.StatusValue = domain.StatusDone

	m.Update(domain.EgoPoint{}, frame)
	assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
}

func TestDispatch_SidePass(t *testing.T) {
	t.Run("obstacle within range takes over", func(t *testing.T) {
		m, _ := newTestManager(t, nil)
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapObstacle, "obs-1", 10, 14).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Equal(t, domain.ScenarioSidePass, m.Current().Type())
		assert.Equal(t, RuleSidePass, m.LastDecision().Rule)
	})

	t.Run("obstacle too far stays lane follow", func(t *testing.T) {
		m, _ := newTestManager(t, nil)
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapObstacle, "obs-1", 40, 44).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
	})
}

func TestDispatch_FeatureToggles(t *testing.T) {
	t.Run("stop sign disabled", func(t *testing.T) {
		m, _ := newTestManager(t, func(cfg *domain.Config) {
			cfg.Features.StopSign = false
		})
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
	})

	t.Run("traffic light disabled", func(t *testing.T) {
		m, clk := newTestManager(t, func(cfg *domain.Config) {
			cfg.Features.TrafficLight = false
			cfg.Scenario.TrafficLightProtected.MaxValidStopDistance = 100
		})
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapSignal, "tl-1", 2, 3).
			WithDetection(clk.NowTime, domain.TrafficSignal{ID: "tl-1", Color: domain.SignalGreen}).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
	})

	t.Run("side pass disabled", func(t *testing.T) {
		m, _ := newTestManager(t, func(cfg *domain.Config) {
			cfg.Features.SidePass = false
		})
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapObstacle, "obs-1", 10, 14).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
	})
}

func TestUpdatePlanningContext(t *testing.T) {
	t.Run("first entry latches first encountered stop sign", func(t *testing.T) {
		m, _ := newTestManager(t, nil)
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		assert.Equal(t, "ss-1", m.Context().CurrentStopSignOverlap.ObjectID)
		assert.Equal(t, 4.0, m.Context().CurrentStopSignOverlap.StartS)
	})

	t.Run("continued occupancy re-resolves by ID", func(t *testing.T) {
		m, _ := newTestManager(t, nil)
		m.Update(domain.EgoPoint{}, testutil.NewFrame(0).
			WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
			Build())
		require.Equal(t, domain.ScenarioStopSignUnprotected, m.Current().Type())

		// the map collaborator recomputed the geometry
		m.Update(domain.EgoPoint{}, testutil.NewFrame(0).
			WithEncountered(domain.OverlapStopSign, "ss-1", 4.4, 6.4).
			Build())
		assert.Equal(t, 4.4, m.Context().CurrentStopSignOverlap.StartS)
	})

	t.Run("missing ID keeps cached overlap", func(t *testing.T) {
		m, _ := newTestManager(t, nil)
		m.Update(domain.EgoPoint{}, testutil.NewFrame(0).
			WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
			Build())

		m.Update(domain.EgoPoint{}, testutil.NewFrame(0).
			WithStopSignOverlap("ss-other", 30, 32).
			Build())
		assert.Equal(t, "ss-1", m.Context().CurrentStopSignOverlap.ObjectID)
	})

	t.Run("switch away clears tracking", func(t *testing.T) {
		m, _ := newTestManager(t, nil)
		frame := testutil.NewFrame(0).
			WithEncountered(domain.OverlapStopSign, "ss-1", 4, 6).
			Build()
		m.Update(domain.EgoPoint{}, frame)
		m.Context().MarkStopDone("ss-1")

		// force completion so the next cycle falls back to lane follow
		m.newScenario = func(typ domain.ScenarioType) (domain.Scenario, error) {
			s := testutil.NewStubScenario(typ)
			s.Transferable = typ != domain.ScenarioSidePass
			return s, nil
		}
		done := testutil.NewStubScenario(domain.ScenarioStopSignUnprotected)
		done.StatusValue = domain.StatusDone
		m.current = done

		m.Update(domain.EgoPoint{}, testutil.NewFrame(7).Build())
		assert.Equal(t, domain.ScenarioLaneFollow, m.Current().Type())
		assert.Empty(t, m.Context().StopDoneOverlapIDs)
		assert.True(t, m.Context().CurrentStopSignOverlap.IsZero())
		assert.Empty(t, m.Context().CurrentTrafficLightOverlaps)
	})
}

func TestAllInNaturalOrder(t *testing.T) {
	got := AllInNaturalOrder([]domain.ScenarioType{
		domain.ScenarioTrafficLightProtected,
		domain.ScenarioLaneFollow,
		domain.ScenarioSidePass,
	})
	want := []domain.ScenarioType{
		domain.ScenarioLaneFollow,
		domain.ScenarioSidePass,
		domain.ScenarioTrafficLightProtected,
	}
	assert.Equal(t, want, got)
}
