package maturity

import (
	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/scoring"
)

// CategoryReport is the classified view of one category result
type CategoryReport struct {
	scoring.CategoryResult
	Tier            Tier          `json:"tier"`
	TierName        string        `json:"tier_name"`
	TierDescription string        `json:"tier_description"`
	Band            scoring.Band  `json:"band"`
	Action          string        `json:"action,omitempty"`
	FeedbackLevel   FeedbackLevel `json:"feedback_level,omitempty"`
	Feedback        []string      `json:"feedback,omitempty"`
}

// Overall is the classified overall score. Fine is set only for fine-granularity quizzes.
type Overall struct {
	Percentage      int        `json:"percentage"`
	Tier            Tier       `json:"tier"`
	TierName        string     `json:"tier_name"`
	TierDescription string     `json:"tier_description"`
	Fine            *FineLevel `json:"fine,omitempty"`
}

// ClassifyOverall attaches tier and, for fine quizzes, the half-step narrative
func ClassifyOverall(quiz *catalog.Quiz, percentage int) Overall {
	tier := CoarseTier(percentage)
	o := Overall{
		Percentage:      percentage,
		Tier:            tier,
		TierName:        tier.Name(),
		TierDescription: tier.Description(),
	}
	if quiz.Granularity == catalog.GranularityFine {
		fine := FineTier(percentage)
		o.Fine = &fine
	}
	return o
}

// ClassifyCategories attaches a tier to every result plus the report content the quiz asks for
func ClassifyCategories(quiz *catalog.Quiz, actions ActionTable, results []scoring.CategoryResult) []CategoryReport {
	reports := make([]CategoryReport, 0, len(results))
	for _, r := range results {
		tier := CoarseTier(r.Percentage)
		cr := CategoryReport{
			CategoryResult:  r,
			Tier:            tier,
			TierName:        tier.Name(),
			TierDescription: tier.Description(),
			Band:            scoring.ScoreBand(r.Percentage),
		}
		switch quiz.Report {
		case catalog.ReportActions:
			cr.Action = RecommendedAction(actions, r.Category, r.Percentage)
		case catalog.ReportFeedback:
			cr.FeedbackLevel, cr.Feedback = IndividualFeedback(r.Category, r.Percentage)
		}
		reports = append(reports, cr)
	}
	return reports
}
