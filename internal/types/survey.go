// Package types provides request and response shapes for the teamhealth HTTP API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ScoreRequest scores an answer set without creating a session. An empty set scores 0 overall.
type ScoreRequest struct {
	Answers map[int]int `json:"answers" validate:"required,dive,min=1,max=5"`
}

// CreateSessionRequest starts a quiz session
type CreateSessionRequest struct {
	Quiz string `json:"quiz" validate:"required"`
}

// AnswersRequest records one or more ratings on a session
type AnswersRequest struct {
	Answers map[int]int `json:"answers" validate:"required,min=1,dive,min=1,max=5"`
}

// TeamScore is one externally supplied team category percentage
type TeamScore struct {
	Category   string `json:"category" validate:"required"`
	Name       string `json:"name,omitempty"`
	Percentage int    `json:"percentage" validate:"min=0,max=100"`
}

// ComparisonRequest supplies the team side of a merged comparison, either inline or by session
type ComparisonRequest struct {
	TeamSessionID string      `json:"team_session_id,omitempty" validate:"required_without=TeamResults,omitempty,uuid"`
	TeamResults   []TeamScore `json:"team_results,omitempty" validate:"required_without=TeamSessionID,omitempty,dive"`
}

// RoleQuizScoreRequest grades a role quiz round. Answers map statement id to role name.
type RoleQuizScoreRequest struct {
	Questions []int          `json:"questions" validate:"required,min=1,dive,min=1"`
	Answers   map[int]string `json:"answers" validate:"required"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CreateSessionRequest using the validator.
func (r *CreateSessionRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnswersRequest using the validator.
func (r *AnswersRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ComparisonRequest using the validator.
func (r *ComparisonRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RoleQuizScoreRequest using the validator.
func (r *RoleQuizScoreRequest) Validate() error {
	return validate.Struct(r)
}
