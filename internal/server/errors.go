// Package server provides the HTTP REST API for the team health assessments.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/notify"
	"github.com/jonathan/teamhealth/internal/session"
)

// retryMessage is shown for every upstream failure
const retryMessage = "Please try again later."

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrQuizNotFound indicates an unknown quiz kind
type ErrQuizNotFound struct {
	Kind string
}

func (e *ErrQuizNotFound) Error() string {
	return fmt.Sprintf("quiz not found: %s", e.Kind)
}

// ErrUpstream wraps a failed call to an external service
type ErrUpstream struct {
	Service string
	Err     error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Service, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrUnavailable indicates an optional service that is not configured
type ErrUnavailable struct {
	Service string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Service)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErrs     validator.ValidationErrors
		answerErr     *session.InvalidAnswerError
		quizErr       *ErrQuizNotFound
		transitionErr *session.TransitionError
		incompleteErr *session.IncompleteError
		upstreamErr   *ErrUpstream
		deliveryErr   *notify.DeliveryError
		apiErr        *analysis.APICallError
		responseErr   *analysis.ResponseError
		unavailable   *ErrUnavailable
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &answerErr),
		errors.Is(err, analysis.ErrEmptyTranscript), errors.Is(err, analysis.ErrNoCriteria):
		return http.StatusBadRequest
	case errors.As(err, &quizErr), errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &transitionErr), errors.As(err, &incompleteErr):
		return http.StatusConflict
	case errors.As(err, &upstreamErr), errors.As(err, &deliveryErr), errors.As(err, &apiErr), errors.As(err, &responseErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the client-facing text for an error. Upstream and internal details stay in the logs.
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusBadGateway:
		return retryMessage
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}
