//nolint:revive // types is a standard Go package name pattern
package types

// CategoryScore is a category result as posted back by a client
type CategoryScore struct {
	Category   string `json:"category" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Average    string `json:"average"`
	Percentage int    `json:"percentage" validate:"min=0,max=100"`
}

// AssessmentNotificationRequest asks for a follow-up on a finished assessment
type AssessmentNotificationRequest struct {
	Email             string          `json:"email" validate:"required,email"`
	Results           []CategoryScore `json:"results" validate:"required,min=1,dive"`
	OverallPercentage int             `json:"overall_percentage" validate:"min=0,max=100"`
	AssessmentKind    string          `json:"assessment_kind,omitempty"`
}

// ContactRequest is a coaching inquiry from the contact form
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// AnalyzeRequest submits a meeting transcript for scoring
type AnalyzeRequest struct {
	Transcript string   `json:"transcript" validate:"required"`
	Criteria   []string `json:"criteria,omitempty"`
}

// CounterResponse is the quick test completion count
type CounterResponse struct {
	Count int64 `json:"count"`
}

// Validate validates the AssessmentNotificationRequest using the validator.
func (r *AssessmentNotificationRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ContactRequest using the validator.
func (r *ContactRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}
