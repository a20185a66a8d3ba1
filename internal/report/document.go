// Package report exports classified assessment results as a paginated PDF document.
package report

import (
	"fmt"

	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/maturity"
)

// Section is the block printed for one category
type Section struct {
	Name       string
	Percentage int
	TierLabel  string
	Heading    string
	Lines      []string
}

// Document is the layout-independent content of a report
type Document struct {
	Title       string
	Overall     int
	LevelLine   string
	Description string
	Sections    []Section
}

// Filename is the suggested download name
func (d Document) Filename(kind catalog.Kind) string {
	return fmt.Sprintf("%s-report.pdf", kind)
}

// BuildDocument composes a report from classified results.
// Fine-granularity quizzes narrate the overall score with the half-step level.
func BuildDocument(quiz *catalog.Quiz, overall maturity.Overall, categories []maturity.CategoryReport) Document {
	doc := Document{
		Title:   quiz.Title + " Report",
		Overall: overall.Percentage,
	}
	if overall.Fine != nil {
		doc.LevelLine = fmt.Sprintf("Level %s - %s", overall.Fine.Level, overall.Fine.Name)
		doc.Description = overall.Fine.Description
	} else {
		doc.LevelLine = overall.Tier.String()
		doc.Description = overall.TierDescription
	}

	for _, c := range categories {
		s := Section{
			Name:       c.Name,
			Percentage: c.Percentage,
			TierLabel:  c.Tier.String(),
		}
		switch {
		case c.Action != "":
			s.Heading = "Recommended action:"
			s.Lines = []string{c.Action}
		case len(c.Feedback) > 0:
			s.Heading = "Feedback:"
			s.Lines = c.Feedback
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc
}
