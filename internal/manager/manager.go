// Package manager implements per-cycle scenario selection: the rules for
// when the active scenario may be replaced, the priority ordering among
// candidates, the geometric tie-breaks, and the hysteresis that keeps a
// scenario running until it reports completion.
package manager

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mobilityos/plansim/internal/domain"
	"github.com/mobilityos/plansim/internal/scenario"
)

// Manager owns the single active scenario instance and the shared scenario
// context. It is single-threaded: one Update per planning cycle, run to
// completion, no internal parallelism.
type Manager struct {
	cfg   *domain.Config
	clock domain.Clock
	log   *slog.Logger

	configs domain.ScenarioConfigMap
	ctx     *domain.ScenarioContext

	// newScenario is the factory seam; Init binds it to the real factory
	// and tests may substitute it.
	newScenario func(domain.ScenarioType) (domain.Scenario, error)

	supported      map[domain.ScenarioType]struct{}
	supportedOrder []domain.ScenarioType
	defaultType    domain.ScenarioType
	current        domain.Scenario
	signalExpire   time.Duration
	lastDecision   Decision
}

// New creates an uninitialized Manager. Call Init before Update.
func New(cfg *domain.Config, clock domain.Clock, log *slog.Logger) *Manager {
	return &Manager{cfg: cfg, clock: clock, log: log}
}

// Init loads the scenario configuration map, records the supported set,
// and installs the default lane-follow scenario as current. Configuration
// errors here are fatal; they are never recoverable at runtime.
func (m *Manager) Init(supportedScenarios []domain.ScenarioType) error {
	if err := m.cfg.Validate(); err != nil {
		return fmt.Errorf("scenario manager init: %w", err)
	}
	m.configs = m.cfg.ScenarioConfigs()
	m.signalExpire = time.Duration(m.cfg.Observation.SignalExpireSec * float64(time.Second))

	m.supported = make(map[domain.ScenarioType]struct{}, len(supportedScenarios))
	m.supportedOrder = nil
	for _, t := range AllInNaturalOrder(supportedScenarios) {
		if _, ok := m.configs[t]; !ok {
			return fmt.Errorf("scenario manager init: %q: %w", t, domain.ErrUnsupportedScenario)
		}
		m.supported[t] = struct{}{}
		m.supportedOrder = append(m.supportedOrder, t)
	}

	m.ctx = domain.NewScenarioContext()
	factory := scenario.NewFactory(m.configs, m.ctx, m.clock, m.log)
	m.newScenario = factory.Create

	m.defaultType = domain.ScenarioLaneFollow
	cur, err := m.newScenario(m.defaultType)
	if err != nil {
		return fmt.Errorf("scenario manager init: %w", err)
	}
	m.current = cur
	m.lastDecision = Decision{Type: m.defaultType, Rule: RuleDefault}
	return nil
}

// AllInNaturalOrder filters the natural enumeration order down to the
// given set, dropping invalid members.
func AllInNaturalOrder(types []domain.ScenarioType) []domain.ScenarioType {
	want := make(map[domain.ScenarioType]struct{}, len(types))
	for _, t := range types {
		want[t] = struct{}{}
	}
	var ordered []domain.ScenarioType
	for _, t := range domain.AllScenarioTypes() {
		if _, ok := want[t]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered
}

// Current returns the active scenario. Non-nil after a successful Init.
func (m *Manager) Current() domain.Scenario {
	return m.current
}

// Context returns the shared scenario context. The manager owns its
// lifetime; it outlives every scenario instance that references it.
func (m *Manager) Context() *domain.ScenarioContext {
	return m.ctx
}

// LastDecision returns the most recent selection outcome and the rule that
// produced it.
func (m *Manager) LastDecision() Decision {
	return m.lastDecision
}

// Update runs one planning cycle's selection. The frame must carry at
// least one reference line; an empty list is a caller contract violation
// and aborts rather than planning with undefined behavior.
func (m *Manager) Update(ego domain.EgoPoint, frame *domain.Frame) {
	if len(frame.ReferenceLines) == 0 {
		panic("manager: Update called with a frame carrying no reference line")
	}

	m.observe(frame)

	if m.cfg.Features.GeometryDispatch {
		m.dispatch(ego, frame)
	} else {
		m.selfVote(ego, frame)
	}
}

// observe refreshes per-cycle perception state.
func (m *Manager) observe(frame *domain.Frame) {
	m.readTrafficLight(frame)
}

// readTrafficLight rebuilds the context's signal map from this cycle's
// detection. No detection is routine; a detection older than the expiry is
// discarded so intersection scenarios never trigger off a stale read.
func (m *Manager) readTrafficLight(frame *domain.Frame) {
	clear(m.ctx.TrafficLights)

	det := frame.TrafficLightDetection
	if det == nil {
		m.log.Debug("no traffic light detection this cycle")
		return
	}

	age := m.clock.Now().Sub(det.Timestamp)
	if age > m.signalExpire {
		m.log.Debug("traffic light detection expired", "age", age)
		return
	}

	// last write wins on duplicate IDs
	for _, sig := range det.Signals {
		m.ctx.TrafficLights[sig.ID] = sig
	}
}

// isSupported reports membership in the supported-scenario set.
func (m *Manager) isSupported(typ domain.ScenarioType) bool {
	_, ok := m.supported[typ]
	return ok
}

// switchTo replaces the current scenario with a fresh instance of typ. The
// old instance is discarded immediately. The registry is closed, so a
// creation failure means broken configuration; the current scenario is
// kept rather than planning with none.
func (m *Manager) switchTo(typ domain.ScenarioType) {
	next, err := m.newScenario(typ)
	if err != nil {
		m.log.Error("scenario switch failed", "to", typ, "error", err)
		return
	}
	m.log.Info("switch scenario", "from", m.current.Name(), "to", next.Name())
	m.current = next
}

// install replaces the current scenario with an already-constructed
// candidate (the voting path reuses the instance it probed).
func (m *Manager) install(next domain.Scenario) {
	m.log.Info("switch scenario", "from", m.current.Name(), "to", next.Name())
	m.current = next
}

// updatePlanningContext writes scenario-specific carry state for the
// winning type. Runs before the current scenario is replaced: whether this
// is a first entry or continued occupancy is decided against the type
// active so far.
func (m *Manager) updatePlanningContext(frame *domain.Frame, typ domain.ScenarioType) {
	ref := frame.ChosenReferenceLine()

	if !typ.IsStopSign() && !typ.IsTrafficLight() {
		// a switch away from these families invalidates prior tracking
		m.ctx.ClearTracking()
		return
	}

	if typ.IsStopSign() {
		if typ != m.current.Type() {
			// first entry: latch the first-encountered stop sign
			if ov, ok := ref.FirstEncounteredOverlap(domain.OverlapStopSign); ok {
				m.ctx.CurrentStopSignOverlap = ov
				m.log.Debug("latched stop sign overlap", "stop_sign", ov.ObjectID)
			}
			return
		}
		// continued occupancy: re-resolve the same overlap by ID; if the
		// ID is gone from the path the cached value stays
		id := m.ctx.CurrentStopSignOverlap.ObjectID
		if ov, ok := domain.FindOverlapByID(ref.StopSignOverlaps, id); ok {
			m.ctx.CurrentStopSignOverlap = ov
		}
		return
	}

	// Traffic-light tracking mirrors the stop-sign branch, applied per
	// tracked overlap.
	if typ != m.current.Type() {
		if ov, ok := ref.FirstEncounteredOverlap(domain.OverlapSignal); ok {
			m.ctx.CurrentTrafficLightOverlaps = []domain.Overlap{ov}
			m.log.Debug("latched traffic light overlap", "signal", ov.ObjectID)
		}
		return
	}
	for i, tracked := range m.ctx.CurrentTrafficLightOverlaps {
		if ov, ok := domain.FindOverlapByID(ref.SignalOverlaps, tracked.ObjectID); ok {
			m.ctx.CurrentTrafficLightOverlaps[i] = ov
		}
	}
}
