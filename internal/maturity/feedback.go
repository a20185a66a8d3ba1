package maturity

import "github.com/jonathan/teamhealth/internal/catalog"

// FeedbackLevel is the three-level bucket used by the self-assessment
type FeedbackLevel string

const (
	FeedbackHigh   FeedbackLevel = "high"
	FeedbackMedium FeedbackLevel = "medium"
	FeedbackLow    FeedbackLevel = "low"
)

// FeedbackBucket classifies a percentage as >=80 high, >=60 medium, else low.
// This scheme is independent of CoarseTier.
func FeedbackBucket(percentage int) FeedbackLevel {
	switch {
	case percentage >= 80:
		return FeedbackHigh
	case percentage >= 60:
		return FeedbackMedium
	default:
		return FeedbackLow
	}
}

// IndividualFeedback returns the bucket and its feedback sentences for a category.
// Unknown categories get an empty list.
func IndividualFeedback(category catalog.CategoryKey, percentage int) (FeedbackLevel, []string) {
	level := FeedbackBucket(percentage)
	sentences := individualFeedback[category][level]
	out := make([]string, len(sentences))
	copy(out, sentences)
	return level, out
}

var individualFeedback = map[catalog.CategoryKey]map[FeedbackLevel][]string{
	catalog.Delivery: {
		FeedbackHigh: {
			"Consistently delivers on commitments and surfaces risks early, which increases the team's reliability.",
			"Breaks work into clear steps so others can easily track progress and plan around it.",
			"Helps stabilise delivery during busy periods by staying organised and focused.",
		},
		FeedbackMedium: {
			"Delivers reliably in most situations, with some room to signal risks earlier.",
			"Keeps basic structure around tasks; sharpening breakdown and planning would further boost predictability.",
			"Handles normal workload well; next step is to sustain the same predictability under changing priorities.",
		},
		FeedbackLow: {
			"Would benefit from clearer task breakdown and more proactive updates to avoid last-minute surprises.",
			"Needs support to plan work realistically and communicate when deadlines are at risk.",
			"Strengthening basic work organisation will make it easier for others to rely on commitments.",
		},
	},
	catalog.Ownership: {
		FeedbackHigh: {
			"Takes clear end-to-end ownership and can be trusted to follow through without reminders.",
			"Quickly steps up when issues arise and focuses on solutions rather than blame.",
			"Others see this person as a dependable 'go-to' for important tasks.",
		},
		FeedbackMedium: {
			"Generally owns tasks to completion; tightening follow-through in busy periods would increase impact.",
			"Accepts responsibility, with occasional gaps when priorities shift quickly.",
			"Shows growing ownership; next step is to communicate more clearly about status and obstacles.",
		},
		FeedbackLow: {
			"Could take clearer end-to-end ownership for tasks, especially when priorities change.",
			"Needs support to move from reacting to issues towards proactively taking responsibility.",
			"Clarifying what is 'mine to own' versus 'ours to share' will help strengthen accountability.",
		},
	},
	catalog.Communication: {
		FeedbackHigh: {
			"Frequently keeps stakeholders informed and adapts communication style to different colleagues.",
			"Actively listens, involves others, and contributes to a constructive team atmosphere.",
			"Shares information early, which reduces misunderstandings and rework.",
		},
		FeedbackMedium: {
			"Communicates reliably in standard settings; being more proactive with ad-hoc updates would help.",
			"Collaborates well with familiar colleagues; extending this to a wider group would add value.",
			"Next step is to make expectations and decisions even more explicit for the whole team.",
		},
		FeedbackLow: {
			"Would benefit from sharing updates more regularly so others are not surprised by changes.",
			"Strengthening listening and clarification skills will reduce friction and misalignment.",
			"Needs encouragement to involve others earlier instead of working in isolation.",
		},
	},
	catalog.Trust: {
		FeedbackHigh: {
			"Openly shares mistakes and learnings, which encourages others to be honest as well.",
			"Invites different opinions and handles disagreement constructively.",
			"Creates a calm, respectful atmosphere where people feel safe to speak up.",
		},
		FeedbackMedium: {
			"Generally respectful; can deepen impact by being more open about own uncertainties.",
			"Handles everyday conflict adequately; next step is to actively invite diverse viewpoints.",
			"Sometimes shares concerns; doing so earlier would help the team address issues sooner.",
		},
		FeedbackLow: {
			"Can practice sharing mistakes and uncertainties earlier to invite more support from the team.",
			"May react defensively to feedback; building skills in reflective listening will increase trust.",
			"Needs support to create more space for others to express concerns and dissenting opinions.",
		},
	},
	catalog.Value: {
		FeedbackHigh: {
			"Clearly understands how their work contributes to team goals and uses that to guide decisions.",
			"Regularly questions low-value work and helps focus effort on what matters most.",
			"Brings a strong customer / business perspective into day-to-day discussions.",
		},
		FeedbackMedium: {
			"Has a good sense of the bigger picture; could make this link even more explicit in daily choices.",
			"Sometimes challenges unclear work; doing this more consistently would increase impact.",
			"Next step is to involve stakeholders more when priorities or value assumptions are uncertain.",
		},
		FeedbackLow: {
			"Would benefit from more clarity on how tasks connect to team and customer outcomes.",
			"Tends to execute without questioning value; practicing simple 'why' and 'for whom' questions will help.",
			"Needs support in prioritising higher-value work when facing competing demands.",
		},
	},
	catalog.Leadership: {
		FeedbackHigh: {
			"Actively helps improve how the team works, not just what it delivers.",
			"Often supports others when they are stuck and contributes to keeping work flowing.",
			"Shows informal leadership by suggesting and sustaining practical process improvements.",
		},
		FeedbackMedium: {
			"Occasionally proposes improvements; making this a regular habit would multiply impact.",
			"Helps others when asked; initiating support more often would strengthen team performance.",
			"Shows emerging leadership behaviours that can be grown through targeted opportunities.",
		},
		FeedbackLow: {
			"Focuses mainly on own tasks; could look more for chances to help improve the team's way of working.",
			"Needs encouragement to step in when others are stuck or processes are clearly not working.",
			"Developing comfort with small experiments and suggestions will help build leadership skills.",
		},
	},
}
