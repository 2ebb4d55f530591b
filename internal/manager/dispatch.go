package manager

import "github.com/mobilityos/plansim/internal/domain"

// dispatch is the geometry-priority strategy: deterministic, one candidate
// per cycle. The starting hypothesis is lane follow; a running non-default
// scenario overrides it immediately and is never pre-empted by a new
// candidate search.
func (m *Manager) dispatch(_ domain.EgoPoint, frame *domain.Frame) {
	typ := m.defaultType
	rule := RuleDefault

	cur := m.current.Type()
	switch {
	case cur == domain.ScenarioSidePass, cur.IsStopSign(), cur.IsTrafficLight():
		if m.current.Status() != domain.StatusDone {
			typ = cur
			rule = RuleStickiness
		}
	}

	// intersection features: only searched while the hypothesis is still
	// the default
	if typ == m.defaultType {
		ref := frame.ChosenReferenceLine()
		stopOverlap, stopFound := ref.FirstEncounteredOverlap(domain.OverlapStopSign)
		signalOverlap, signalFound := ref.FirstEncounteredOverlap(domain.OverlapSignal)

		// the nearer feature governs exclusively; the other is ignored
		// this cycle
		if stopFound && signalFound {
			if stopOverlap.StartS < signalOverlap.StartS {
				signalFound = false
			} else {
				stopFound = false
			}
		}

		switch {
		case stopFound:
			if m.cfg.Features.StopSign {
				typ = m.selectStopSignScenario(frame, stopOverlap)
				rule = RuleStopSign
			}
		case signalFound:
			if m.cfg.Features.TrafficLight {
				typ = m.selectTrafficLightScenario(frame, signalOverlap)
				rule = RuleTrafficLight
			}
		}
		if typ == m.defaultType {
			rule = RuleDefault
		}
	}

	if typ == m.defaultType {
		typ = m.selectChangeLaneScenario(frame)
	}

	if typ == m.defaultType && m.cfg.Features.SidePass {
		typ = m.selectSidePassScenario(frame)
		if typ == domain.ScenarioSidePass {
			rule = RuleSidePass
		}
	}

	if typ != m.defaultType && !m.isSupported(typ) {
		m.log.Debug("selected scenario not in supported set", "scenario", typ)
		typ = m.defaultType
		rule = RuleDefault
	}

	m.log.Debug("dispatch selected", "scenario", typ, "rule", rule)

	m.updatePlanningContext(frame, typ)
	if m.current.Type() != typ {
		m.switchTo(typ)
	}
	m.lastDecision = Decision{Type: typ, Rule: rule}
}

// selectStopSignScenario decides the stop-sign family against the
// first-encountered stop-sign overlap.
func (m *Manager) selectStopSignScenario(frame *domain.Frame, overlap domain.Overlap) domain.ScenarioType {
	cfg := m.configs[domain.ScenarioStopSignUnprotected].StopSign
	distance := overlap.StartS - frame.ChosenReferenceLine().FrontEdgeS
	m.log.Debug("stop sign gate",
		"stop_sign", overlap.ObjectID, "distance", distance)

	triggered := distance > 0 && distance <= cfg.StartScenarioDistance
	// all-way detection is not wired up; the protected variant stays
	// unreachable from here
	const allWayStop = false

	switch cur := m.current.Type(); {
	case cur == domain.ScenarioLaneFollow,
		cur == domain.ScenarioChangeLane,
		cur == domain.ScenarioSidePass,
		cur == domain.ScenarioApproach:
		if triggered {
			if allWayStop {
				return domain.ScenarioStopSignProtected
			}
			return domain.ScenarioStopSignUnprotected
		}
	case cur.IsStopSign():
		if m.current.Status() == domain.StatusDone {
			return domain.ScenarioLaneFollow
		}
	}
	return m.current.Type()
}

// selectTrafficLightScenario decides the traffic-light family. Every
// tracked signal overlap is evaluated, not just the nearest; before any is
// tracked the first-encountered overlap stands in.
func (m *Manager) selectTrafficLightScenario(frame *domain.Frame, firstEncountered domain.Overlap) domain.ScenarioType {
	cfg := m.configs[domain.ScenarioTrafficLightProtected].TrafficLight
	ref := frame.ChosenReferenceLine()

	overlaps := m.ctx.CurrentTrafficLightOverlaps
	if len(overlaps) == 0 {
		overlaps = []domain.Overlap{firstEncountered}
	}

	for _, overlap := range overlaps {
		distance := overlap.StartS - ref.FrontEdgeS
		m.log.Debug("traffic light gate",
			"signal", overlap.ObjectID, "distance", distance, "turn", ref.Turn)

		switch cur := m.current.Type(); {
		case cur == domain.ScenarioLaneFollow,
			cur == domain.ScenarioChangeLane,
			cur == domain.ScenarioSidePass,
			cur == domain.ScenarioApproach:
			if _, known := m.ctx.Signal(overlap.ObjectID); !known {
				// no fresh read for this signal; never start an
				// intersection scenario off a stale or absent detection
				continue
			}
			if distance <= cfg.MaxValidStopDistance {
				switch ref.Turn {
				case domain.TurnRight:
					return domain.ScenarioTrafficLightUnprotectedRightTurn
				case domain.TurnLeft:
					// the unprotected left-turn variant is gated off;
					// left turns resolve to protected for now
					return domain.ScenarioTrafficLightProtected
				default:
					return domain.ScenarioTrafficLightProtected
				}
			}
		case cur.IsStopSign():
			// stop-sign handling keeps the cycle
		case cur.IsTrafficLight():
			if m.current.Status() == domain.StatusDone {
				return domain.ScenarioLaneFollow
			}
		}
	}
	return m.current.Type()
}

// selectChangeLaneScenario is a stub: multi-line frames still resolve to
// lane follow until the change-lane scenario lands.
func (m *Manager) selectChangeLaneScenario(frame *domain.Frame) domain.ScenarioType {
	if len(frame.ReferenceLines) > 1 {
		return domain.ScenarioLaneFollow
	}
	return domain.ScenarioLaneFollow
}

// selectSidePassScenario keeps a transferable running side pass, or probes
// a fresh candidate against the current frame.
func (m *Manager) selectSidePassScenario(frame *domain.Frame) domain.ScenarioType {
	if m.current.Type() == domain.ScenarioSidePass &&
		m.current.IsTransferable(m.current, frame) {
		return domain.ScenarioSidePass
	}

	candidate, err := m.newScenario(domain.ScenarioSidePass)
	if err != nil {
		m.log.Error("side pass probe failed", "error", err)
		return domain.ScenarioLaneFollow
	}
	if candidate.IsTransferable(m.current, frame) {
		return domain.ScenarioSidePass
	}
	return domain.ScenarioLaneFollow
}
