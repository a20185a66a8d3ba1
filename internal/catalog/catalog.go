// Package catalog defines the question catalogs and quiz configurations used by every assessment.
package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CategoryKey identifies the team dimension a question belongs to
type CategoryKey string

// Category keys shared by the built-in quizzes
const (
	Delivery      CategoryKey = "delivery"
	Ownership     CategoryKey = "ownership"
	Communication CategoryKey = "communication"
	Trust         CategoryKey = "trust"
	Value         CategoryKey = "value"
	Leadership    CategoryKey = "leadership"
	Collaboration CategoryKey = "collaboration"
)

// Kind identifies a quiz variant
type Kind string

// Built-in quiz kinds
const (
	KindTeamDiagnostic Kind = "team-diagnostic"
	KindIndividual     Kind = "individual"
	KindQuickTest      Kind = "quick-test"
)

// Granularity selects how the overall score is narrated
type Granularity string

const (
	// GranularityCoarse narrates the overall score with the five-level tier
	GranularityCoarse Granularity = "coarse"
	// GranularityFine narrates the overall score with the half-step levels
	GranularityFine Granularity = "fine"
)

// ReportKind selects what the per-category report contains
type ReportKind string

const (
	// ReportNone means the quiz has no report state
	ReportNone ReportKind = "none"
	// ReportActions attaches a tier-specific recommended action per category
	ReportActions ReportKind = "actions"
	// ReportFeedback attaches the three-level feedback sentences per category
	ReportFeedback ReportKind = "feedback"
)

// MinRating and MaxRating bound every answer
const (
	MinRating = 1
	MaxRating = 5
)

// DefaultRatingLabels are the Likert labels for ratings 1..5
var DefaultRatingLabels = []string{"Never", "Rarely", "Sometimes", "Often", "Always"}

// Category is the static display data for a category key
type Category struct {
	Key   CategoryKey `json:"key" yaml:"key" validate:"required"`
	Name  string      `json:"name" yaml:"name" validate:"required"`
	Color string      `json:"color" yaml:"color" validate:"omitempty,hexcolor"`
}

// Question is one catalog entry. When Options is set, option index+1 is the rating.
type Question struct {
	ID       int         `json:"id" yaml:"id" validate:"required,gt=0"`
	Text     string      `json:"text" yaml:"text" validate:"required"`
	Category CategoryKey `json:"category" yaml:"category" validate:"required"`
	Options  []string    `json:"options,omitempty" yaml:"options" validate:"omitempty,len=5,dive,required"`
}

// Quiz is the configuration value consumed by the generic scorer and classifier
type Quiz struct {
	Kind         Kind        `json:"kind" yaml:"kind" validate:"required"`
	Title        string      `json:"title" yaml:"title" validate:"required"`
	Description  string      `json:"description,omitempty" yaml:"description"`
	RatingLabels []string    `json:"rating_labels" yaml:"rating_labels" validate:"omitempty,len=5"`
	Categories   []Category  `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
	Questions    []Question  `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
	Granularity  Granularity `json:"granularity" yaml:"granularity" validate:"required,oneof=coarse fine"`
	Report       ReportKind  `json:"report" yaml:"report" validate:"required,oneof=none actions feedback"`
	AllowRevise  bool        `json:"allow_revise" yaml:"allow_revise"`
}

// Validate checks field constraints and the catalog's referential integrity
func (q *Quiz) Validate() error {
	if err := validator.New().Struct(q); err != nil {
		return fmt.Errorf("invalid quiz %q: %w", q.Kind, err)
	}

	categories := make(map[CategoryKey]bool, len(q.Categories))
	for _, c := range q.Categories {
		if categories[c.Key] {
			return fmt.Errorf("invalid quiz %q: duplicate category %q", q.Kind, c.Key)
		}
		categories[c.Key] = true
	}

	ids := make(map[int]bool, len(q.Questions))
	for _, question := range q.Questions {
		if ids[question.ID] {
			return fmt.Errorf("invalid quiz %q: duplicate question id %d", q.Kind, question.ID)
		}
		ids[question.ID] = true
		if !categories[question.Category] {
			return fmt.Errorf("invalid quiz %q: question %d has unknown category %q", q.Kind, question.ID, question.Category)
		}
	}

	return nil
}

// Category returns the display data for a key
func (q *Quiz) Category(key CategoryKey) (Category, bool) {
	for _, c := range q.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName returns the display name for a key, or the key itself when unknown
func (q *Quiz) CategoryName(key CategoryKey) string {
	if c, ok := q.Category(key); ok {
		return c.Name
	}
	return string(key)
}

// Question returns the question with the given id
func (q *Quiz) Question(id int) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// RatingLabel returns the human-readable label for a rating on a question
func (q *Quiz) RatingLabel(question Question, rating int) string {
	if rating < MinRating || rating > MaxRating {
		return ""
	}
	if len(question.Options) > 0 {
		return question.Options[rating-1]
	}
	labels := q.RatingLabels
	if len(labels) == 0 {
		labels = DefaultRatingLabels
	}
	return labels[rating-1]
}
