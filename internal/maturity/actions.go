package maturity

import "github.com/jonathan/teamhealth/internal/catalog"

// NoActionFallback is returned when an action table has no entry for a category and tier
const NoActionFallback = "No specific actions available"

// ActionTable maps a category and coarse tier to recommended-action text
type ActionTable map[catalog.CategoryKey]map[Tier]string

// RecommendedAction looks up the action for the category at the tier of percentage.
// A missing entry yields NoActionFallback.
func RecommendedAction(table ActionTable, category catalog.CategoryKey, percentage int) string {
	if action := table[category][CoarseTier(percentage)]; action != "" {
		return action
	}
	return NoActionFallback
}

// Missing returns the category/tier pairs without action text, for startup checks
func (t ActionTable) Missing(categories []catalog.CategoryKey) map[catalog.CategoryKey][]Tier {
	missing := make(map[catalog.CategoryKey][]Tier)
	for _, c := range categories {
		for _, tier := range Tiers {
			if t[c][tier] == "" {
				missing[c] = append(missing[c], tier)
			}
		}
	}
	return missing
}

// TeamActions is the action report table for the six team diagnostic categories
var TeamActions = ActionTable{
	catalog.Delivery: {
		TierAdHoc:     "Make all current work visible on one board and agree a single, ordered list of priorities before the next iteration starts.",
		TierEmerging:  "Set an explicit work-in-progress limit and review unplanned work at the end of each iteration to see where commitments slip.",
		TierDefined:   "Track how much planned work is finished each iteration and use that history to plan with realistic capacity.",
		TierProactive: "Map cross-team dependencies ahead of planning and agree hand-off dates with the teams you rely on.",
		TierAdaptive:  "Shorten your feedback loop further by releasing smaller increments and sharing your delivery practices with other teams.",
	},
	catalog.Ownership: {
		TierAdHoc:     "Name a clear owner for every piece of work and confirm ownership out loud when work is picked up.",
		TierEmerging:  "Add a short blocker round to the daily sync and agree that anyone stuck for half a day asks for help.",
		TierDefined:   "Review workload balance every iteration and swarm on the oldest item before starting new work.",
		TierProactive: "Run blameless reviews after incidents and turn each finding into one concrete team agreement.",
		TierAdaptive:  "Rotate ownership of team rituals and improvement items so accountability stays shared as the team grows.",
	},
	catalog.Communication: {
		TierAdHoc:     "Give every recurring meeting a written goal and agenda, and cancel the ones that cannot state one.",
		TierEmerging:  "Record decisions in one shared place and link to them from the work they affect.",
		TierDefined:   "Hold a short kick-off before larger work items to align expectations across Dev, QA and Product.",
		TierProactive: "Agree explicit signals for raising risk early and check in retrospectives whether they were used.",
		TierAdaptive:  "Experiment with lighter communication formats and invite stakeholders to give feedback on how well they stay informed.",
	},
	catalog.Trust: {
		TierAdHoc:     "Agree basic working norms together, including how to disagree respectfully, and revisit them monthly.",
		TierEmerging:  "Leaders go first in sharing their own mistakes and what they learned from them.",
		TierDefined:   "Introduce a regular, structured feedback round so feedback stops depending on individual courage.",
		TierProactive: "Use anonymous check-ins to surface concerns that are not raised openly and discuss the results as a team.",
		TierAdaptive:  "Coach other teams on your feedback and conflict practices and keep checking that new members feel included.",
	},
	catalog.Value: {
		TierAdHoc:     "Ask the product owner to explain the goal behind the top three items before the team starts on them.",
		TierEmerging:  "Write down a shared Definition of Done and check each finished item against it.",
		TierDefined:   "Attach a success measure to each feature and review it with the product owner after release.",
		TierProactive: "Bring real users or customer data into refinement regularly and drop work that no longer serves them.",
		TierAdaptive:  "Run small experiments to validate ideas before building them in full and share what you learn with stakeholders.",
	},
	catalog.Leadership: {
		TierAdHoc:     "Clarify roles and decision rights for the team and write them down where everyone can see them.",
		TierEmerging:  "Hold a retrospective every iteration and commit to one improvement action at a time.",
		TierDefined:   "Review each ceremony's purpose with the team and adjust or drop the ones that no longer add value.",
		TierProactive: "Give the team full say over how it works and have leaders focus on removing impediments.",
		TierAdaptive:  "Grow leadership across the team by letting members facilitate ceremonies and drive improvement experiments.",
	},
}
