package catalog

// Individual returns the 12-question self-assessment. Options run from lowest to highest maturity.
func Individual() *Quiz {
	return &Quiz{
		Kind:        KindIndividual,
		Title:       "Individual Assessment",
		Description: "Reflect on how you personally contribute to the six team health dimensions.",
		Categories:  standardCategories(),
		Granularity: GranularityFine,
		Report:      ReportFeedback,
		AllowRevise: true,
		Questions: []Question{
			{
				ID:       1,
				Category: Delivery,
				Text:     "When I commit to work, I...",
				Options: []string{
					"Rarely finish on time and usually do not warn others.",
					"Sometimes finish on time but often forget to warn others when there are issues.",
					"Usually finish on time, and I sometimes warn others if I see a risk.",
					"Almost always finish on time and normally warn others early about risks.",
					"Consistently finish on time and proactively warn others early when there is any risk.",
				},
			},
			{
				ID:       2,
				Category: Delivery,
				Text:     "How do I manage my tasks so others can rely on my progress?",
				Options: []string{
					"My tasks are often unclear, and others do not know where I am.",
					"I sometimes break work down, but my progress is still hard to follow.",
					"I keep basic notes or a board, so people can usually see where I am.",
					"I regularly break work into clear steps that others can easily track.",
					"My tasks are very clearly broken down and visible, so others can confidently plan around me.",
				},
			},
			{
				ID:       3,
				Category: Ownership,
				Text:     "When I take ownership of a task or topic, I...",
				Options: []string{
					"Often drop it or forget it until someone chases me.",
					"Sometimes complete it, sometimes let it slip without telling others.",
					"Usually complete it but need occasional reminders.",
					"Almost always drive it to completion without reminders.",
					"Consistently own it end-to-end, including follow-up and communication.",
				},
			},
			{
				ID:       4,
				Category: Ownership,
				Text:     "When something goes wrong, my first reaction is usually...",
				Options: []string{
					"To blame others or external factors and move on.",
					"To feel annoyed and mostly think about what others did wrong.",
					"To see a mix of my part and others' part in the problem.",
					"To look honestly at what I can change in my own behaviour.",
					"To quickly own my part, learn from it, and help the team avoid it next time.",
				},
			},
			{
				ID:       5,
				Category: Communication,
				Text:     "How do I keep others informed about my work?",
				Options: []string{
					"I rarely inform others unless they ask directly.",
					"I sometimes give updates, but usually late or incomplete.",
					"I give basic updates at expected moments (e.g., meetings).",
					"I proactively share clear updates when something changes or matters to others.",
					"I consistently give timely, targeted updates that help others make decisions.",
				},
			},
			{
				ID:       6,
				Category: Communication,
				Text:     "When I communicate with different people, I...",
				Options: []string{
					"Use the same style for everyone, even if it causes confusion.",
					"Sometimes adjust, but often forget and create misunderstandings.",
					"Adjust a bit depending on the person or situation.",
					"Usually adapt my detail, channel, and tone to make it easy for others.",
					"Very consciously adapt my communication so different people get exactly what they need.",
				},
			},
			{
				ID:       7,
				Category: Trust,
				Text:     "How open am I about mistakes or not knowing something?",
				Options: []string{
					"I hide mistakes and avoid admitting when I do not know something.",
					"I sometimes admit issues, but only when I have no other choice.",
					"I admit some mistakes or gaps, mainly in safe situations.",
					"I am generally open about mistakes and uncertainties, even if it feels uncomfortable.",
					"I openly share mistakes and learning, and I encourage others to do the same.",
				},
			},
			{
				ID:       8,
				Category: Trust,
				Text:     "How do I respond when people disagree with me?",
				Options: []string{
					"I shut down disagreement or react defensively.",
					"I tolerate it, but it clearly bothers me.",
					"I listen, though I may still feel defensive inside.",
					"I listen carefully and try to understand their point of view.",
					"I actively invite different opinions and use them to improve decisions.",
				},
			},
			{
				ID:       9,
				Category: Value,
				Text:     "How clear am I about how my work adds value to the team or customers?",
				Options: []string{
					"I usually do tasks without knowing why they matter.",
					"I sometimes know the purpose, but often feel disconnected from the bigger picture.",
					"I have a general idea of why my work matters.",
					"I clearly understand how my work supports our team goals.",
					"I can clearly explain how my work creates value, and I use that to guide my choices.",
				},
			},
			{
				ID:       10,
				Category: Value,
				Text:     "When work seems low-value or unclear, I usually...",
				Options: []string{
					"Just do it without asking questions.",
					"Sometimes question it, but usually keep quiet.",
					"Ask for clarification when it feels really confusing.",
					"Regularly ask clarifying questions and suggest alternatives.",
					"Proactively challenge low-value work and help redirect effort to what matters most.",
				},
			},
			{
				ID:       11,
				Category: Leadership,
				Text:     "How much do I contribute to improving how our team works (not just what we deliver)?",
				Options: []string{
					"I almost never think about or discuss how we work.",
					"I occasionally mention problems but rarely propose improvements.",
					"I sometimes suggest improvements when issues become painful.",
					"I regularly propose and support small improvements to our ways of working.",
					"I actively look for better ways of working and help the team turn ideas into habits.",
				},
			},
			{
				ID:       12,
				Category: Leadership,
				Text:     "When others are stuck or overloaded, I...",
				Options: []string{
					"Focus only on my own tasks, even if others struggle.",
					"Sometimes notice, but rarely offer help.",
					"Offer help when directly asked.",
					"Often notice and offer help without being asked.",
					"Proactively look for chances to unblock others and move team work forward.",
				},
			},
		},
	}
}
