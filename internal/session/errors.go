package session

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for unknown or expired session ids
var ErrNotFound = errors.New("session not found")

// TransitionError is returned when an action is not allowed from the current state
type TransitionError struct {
	From   State
	Action string
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s from %s: %s", e.Action, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s from %s", e.Action, e.From)
}

// IncompleteError is returned when results are requested before every question is answered
type IncompleteError struct {
	Answered int
	Total    int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("answered %d of %d questions", e.Answered, e.Total)
}

// InvalidAnswerError is returned for an unknown question id or out-of-range rating
type InvalidAnswerError struct {
	QuestionID int
	Rating     int
	Message    string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %d: %s", e.QuestionID, e.Message)
}
