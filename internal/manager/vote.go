package manager

import "github.com/mobilityos/plansim/internal/domain"

// selfVote is the legacy preference-voting strategy: the current scenario
// votes to keep itself, then a ranked candidate list is walked, then the
// whole supported set, and finally the default scenario is restored
// unconditionally.
func (m *Manager) selfVote(_ domain.EgoPoint, frame *domain.Frame) {
	ref := frame.ChosenReferenceLine()

	// stickiness takes precedence over the ranked search
	if m.current.Type() != m.defaultType &&
		m.current.IsTransferable(m.current, frame) {
		m.log.Debug("reuse current scenario", "scenario", m.current.Name())
		m.updatePlanningContext(frame, m.current.Type())
		m.lastDecision = Decision{Type: m.current.Type(), Rule: RuleVoteReuse}
		return
	}

	rejected := map[domain.ScenarioType]struct{}{
		m.current.Type(): {},
	}

	// ranked candidates: lane follow always first, then one entry per
	// first-encountered overlap this cycle
	preferred := []domain.ScenarioType{domain.ScenarioLaneFollow}
	for _, enc := range ref.FirstEncountered {
		switch enc.Kind {
		case domain.OverlapObstacle:
			preferred = append(preferred, domain.ScenarioSidePass)
		case domain.OverlapStopSign:
			preferred = append(preferred, domain.ScenarioStopSignUnprotected)
		case domain.OverlapSignal:
			preferred = append(preferred,
				domain.ScenarioTrafficLightProtected,
				domain.ScenarioTrafficLightUnprotectedLeftTurn,
				domain.ScenarioTrafficLightUnprotectedRightTurn)
		}
	}

	for _, typ := range preferred {
		if _, skip := rejected[typ]; skip || !m.isSupported(typ) {
			continue
		}
		if m.trySelect(typ, frame) {
			m.log.Info("select preferred scenario", "scenario", typ)
			m.lastDecision = Decision{Type: typ, Rule: RuleVotePreferred}
			return
		}
		rejected[typ] = struct{}{}
	}

	// any transferable candidate from the supported set, feature gates
	// applied, in natural enumeration order
	for _, typ := range m.supportedOrder {
		if _, skip := rejected[typ]; skip {
			continue
		}
		if !m.featureAllows(typ) {
			continue
		}
		if m.trySelect(typ, frame) {
			m.log.Info("select transferable scenario", "scenario", typ)
			m.lastDecision = Decision{Type: typ, Rule: RuleVoteSupported}
			return
		}
		rejected[typ] = struct{}{}
	}

	// the default is assumed always transferable
	if m.current.Type() != m.defaultType {
		m.log.Info("select default scenario", "scenario", m.defaultType)
		m.updatePlanningContext(frame, m.defaultType)
		m.switchTo(m.defaultType)
	} else {
		m.updatePlanningContext(frame, m.defaultType)
	}
	m.lastDecision = Decision{Type: m.defaultType, Rule: RuleVoteDefault}
}

// trySelect activates typ if it is the current type or a fresh candidate
// reports transferable from the current scenario.
func (m *Manager) trySelect(typ domain.ScenarioType, frame *domain.Frame) bool {
	if m.current.Type() == typ {
		m.updatePlanningContext(frame, typ)
		return true
	}

	candidate, err := m.newScenario(typ)
	if err != nil {
		m.log.Debug("candidate unavailable", "scenario", typ, "error", err)
		return false
	}
	if !candidate.IsTransferable(m.current, frame) {
		return false
	}
	m.updatePlanningContext(frame, typ)
	m.install(candidate)
	return true
}

// featureAllows applies the deployment feature toggles to the supported
// set sweep.
func (m *Manager) featureAllows(typ domain.ScenarioType) bool {
	switch {
	case typ == domain.ScenarioSidePass:
		return m.cfg.Features.SidePass
	case typ == domain.ScenarioStopSignUnprotected:
		return m.cfg.Features.StopSign
	case typ.IsTrafficLight():
		return m.cfg.Features.TrafficLight
	default:
		return true
	}
}
