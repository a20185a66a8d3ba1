package catalog

// standardCategories are shared by the team diagnostic and the individual assessment
func standardCategories() []Category {
	return []Category{
		{Key: Delivery, Name: "Delivery & Predictability", Color: "#3b82f6"},
		{Key: Ownership, Name: "Ownership & Accountability", Color: "#22c55e"},
		{Key: Communication, Name: "Communication & Collaboration", Color: "#a855f7"},
		{Key: Trust, Name: "Trust & Psychological Safety", Color: "#f97316"},
		{Key: Value, Name: "Value & Purpose", Color: "#ec4899"},
		{Key: Leadership, Name: "Leadership & Process", Color: "#06b6d4"},
	}
}

// TeamDiagnostic returns the 36-question team health diagnostic
func TeamDiagnostic() *Quiz {
	return &Quiz{
		Kind:  KindTeamDiagnostic,
		Title: "Team Health Diagnostic Assessment",
		Description: "Identifies your team's strengths and areas for improvement across six key dimensions. " +
			"Rate each statement on a scale of 1-5 based on how often it applies to your team.",
		RatingLabels: DefaultRatingLabels,
		Categories:   standardCategories(),
		Granularity:  GranularityFine,
		Report:       ReportActions,
		AllowRevise:  true,
		Questions: []Question{
			{ID: 1, Category: Delivery, Text: "Our team usually completes the work we planned."},
			{ID: 2, Category: Delivery, Text: "Unplanned tasks do not significantly disrupt our sprint or iteration."},
			{ID: 3, Category: Delivery, Text: "We have clear priorities and stick to them."},
			{ID: 4, Category: Delivery, Text: "Dependencies are managed effectively and rarely block progress."},
			{ID: 5, Category: Delivery, Text: "We limit our work in progress and avoid spreading ourselves thin."},
			{ID: 6, Category: Delivery, Text: "We regularly deliver meaningful, visible progress."},
			{ID: 7, Category: Ownership, Text: "Team members proactively help each other when needed."},
			{ID: 8, Category: Ownership, Text: "Work ownership is clear, and individuals follow through."},
			{ID: 9, Category: Ownership, Text: "The team holds itself accountable for results, not just individuals."},
			{ID: 10, Category: Ownership, Text: "Workload is shared fairly across the team."},
			{ID: 11, Category: Ownership, Text: "Issues or blockers are raised quickly and openly."},
			{ID: 12, Category: Ownership, Text: "The team solves problems together instead of assigning blame."},
			{ID: 13, Category: Communication, Text: "Our meetings are productive and have high engagement."},
			{ID: 14, Category: Communication, Text: "Important decisions are shared clearly with the team."},
			{ID: 15, Category: Communication, Text: "We discuss and align on expectations before starting work."},
			{ID: 16, Category: Communication, Text: "Hand-offs between roles (Dev, QA, PO, etc.) are smooth."},
			{ID: 17, Category: Communication, Text: "Team members feel comfortable asking clarifying questions."},
			{ID: 18, Category: Communication, Text: "We communicate early when something is unclear or risky."},
			{ID: 19, Category: Trust, Text: "Team members speak up openly, even about difficult topics."},
			{ID: 20, Category: Trust, Text: "Conflicts are addressed constructively, not avoided."},
			{ID: 21, Category: Trust, Text: "Team members trust each other to deliver quality work."},
			{ID: 22, Category: Trust, Text: "People admit mistakes without fear of punishment."},
			{ID: 23, Category: Trust, Text: "Feedback is shared regularly and respectfully."},
			{ID: 24, Category: Trust, Text: "Everyone feels included and valued during discussions."},
			{ID: 25, Category: Value, Text: "The team understands why we build what we build."},
			{ID: 26, Category: Value, Text: "The product owner (or equivalent) provides clear direction."},
			{ID: 27, Category: Value, Text: "We validate whether the features we deliver create value."},
			{ID: 28, Category: Value, Text: "The Definition of Done is clear and consistently followed."},
			{ID: 29, Category: Value, Text: "We focus on solving real customer or business problems."},
			{ID: 30, Category: Value, Text: "The team understands success metrics for our product/work."},
			{ID: 31, Category: Leadership, Text: "Leaders empower the team rather than micromanage."},
			{ID: 32, Category: Leadership, Text: "Decisions are made quickly and clearly."},
			{ID: 33, Category: Leadership, Text: "The team regularly reflects and improves its process."},
			{ID: 34, Category: Leadership, Text: "Agile/Scrum ceremonies have purpose and value."},
			{ID: 35, Category: Leadership, Text: "The team has autonomy to choose how to work."},
			{ID: 36, Category: Leadership, Text: "Roles and responsibilities are clear."},
		},
	}
}

// QuickTest returns the 12-question team snapshot
func QuickTest() *Quiz {
	return &Quiz{
		Kind:         KindQuickTest,
		Title:        "Quick Team Health Test",
		Description:  "Answer 12 quick questions to get a snapshot of your team's health.",
		RatingLabels: DefaultRatingLabels,
		Categories: []Category{
			{Key: Trust, Name: "Trust", Color: "#f97316"},
			{Key: Collaboration, Name: "Collaboration", Color: "#a855f7"},
			{Key: Ownership, Name: "Ownership", Color: "#22c55e"},
			{Key: Delivery, Name: "Delivery", Color: "#3b82f6"},
			{Key: Leadership, Name: "Leadership", Color: "#06b6d4"},
			{Key: Value, Name: "Value", Color: "#ec4899"},
		},
		Granularity: GranularityCoarse,
		Report:      ReportNone,
		AllowRevise: false,
		Questions: []Question{
			{ID: 1, Category: Trust, Text: "We focus on fixing problems together instead of blaming individuals when things go wrong."},
			{ID: 2, Category: Trust, Text: "I feel safe sharing my honest opinion or admitting a mistake without being judged."},
			{ID: 3, Category: Collaboration, Text: `We "swarm" to help each other finish work rather than only focusing on our own tasks.`},
			{ID: 4, Category: Collaboration, Text: "Information and skills are shared openly so that no single person is a bottleneck."},
			{ID: 5, Category: Ownership, Text: "The team, not a manager, is responsible for ensuring our work is high quality and completely finished."},
			{ID: 6, Category: Ownership, Text: "We have the authority to change our own processes or tools if we think they aren't working."},
			{ID: 7, Category: Delivery, Text: "We deliver a working, finished piece of value every cycle without needing a last-minute rush to finish."},
			{ID: 8, Category: Delivery, Text: "We keep things simple and stop doing work that doesn't add real value to the product."},
			{ID: 9, Category: Leadership, Text: "We hold each other accountable for following our team's values and Agile principles."},
			{ID: 10, Category: Leadership, Text: "We actively coach and teach one another rather than waiting for someone to give us answers."},
			{ID: 11, Category: Value, Text: `We are comfortable saying "no" to unimportant tasks to stay focused on what matters most.`},
			{ID: 12, Category: Value, Text: "We use real feedback from users to decide what we should build (or stop building) next."},
		},
	}
}
