package manager

import "github.com/mobilityos/plansim/internal/domain"

// Rule names the selection rule that produced a cycle's outcome. Surfaced
// for diagnostics and simulation output; selection itself never reads it.
type Rule string

const (
	// RuleDefault: nothing else claimed the cycle; lane follow governs.
	RuleDefault Rule = "default"
	// RuleStickiness: a running non-default scenario kept itself active.
	RuleStickiness Rule = "stickiness"
	// RuleStopSign: the stop-sign gate selected or held its family.
	RuleStopSign Rule = "stop_sign"
	// RuleTrafficLight: the traffic-light gate selected or held its family.
	RuleTrafficLight Rule = "traffic_light"
	// RuleSidePass: a transferable side-pass candidate took over.
	RuleSidePass Rule = "side_pass"
	// RuleVoteReuse: the voting path kept the current non-default scenario.
	RuleVoteReuse Rule = "vote_reuse"
	// RuleVotePreferred: a ranked candidate won the vote.
	RuleVotePreferred Rule = "vote_preferred"
	// RuleVoteSupported: the full supported-set sweep found a candidate.
	RuleVoteSupported Rule = "vote_supported"
	// RuleVoteDefault: the vote exhausted all candidates; default restored.
	RuleVoteDefault Rule = "vote_default"
)

// Decision is one cycle's selection outcome.
type Decision struct {
	Type domain.ScenarioType
	Rule Rule
}
