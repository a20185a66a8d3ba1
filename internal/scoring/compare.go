package scoring

import "github.com/jonathan/teamhealth/internal/catalog"

// AlignmentThreshold is the percentage gap beyond which an individual score differs from the team's
const AlignmentThreshold = 5

// Alignment describes how an individual category score sits against the team's
type Alignment string

const (
	AlignmentAbove   Alignment = "above"
	AlignmentBelow   Alignment = "below"
	AlignmentAligned Alignment = "aligned"
)

// Comparison is one row of the merged individual/team view
type Comparison struct {
	Category   catalog.CategoryKey `json:"category"`
	Name       string              `json:"name"`
	Individual int                 `json:"individual"`
	Team       int                 `json:"team"`
	Diff       int                 `json:"diff"`
	Alignment  Alignment           `json:"alignment"`
}

// Compare lines up individual results against team results, one row per individual category.
// A category the team has not scored counts as 0.
func Compare(individual, team []CategoryResult) []Comparison {
	rows := make([]Comparison, 0, len(individual))
	for _, ind := range individual {
		teamPct := 0
		if t, ok := Find(team, ind.Category); ok {
			teamPct = t.Percentage
		}
		diff := ind.Percentage - teamPct

		alignment := AlignmentAligned
		switch {
		case diff > AlignmentThreshold:
			alignment = AlignmentAbove
		case diff < -AlignmentThreshold:
			alignment = AlignmentBelow
		}

		rows = append(rows, Comparison{
			Category:   ind.Category,
			Name:       ind.Name,
			Individual: ind.Percentage,
			Team:       teamPct,
			Diff:       diff,
			Alignment:  alignment,
		})
	}
	return rows
}

// Band is a coarse display bucket for a percentage
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandLow       Band = "low"
)

// ScoreBand buckets a percentage for display (80/60/40 cut-offs)
func ScoreBand(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandExcellent
	case percentage >= 60:
		return BandGood
	case percentage >= 40:
		return BandFair
	default:
		return BandLow
	}
}
