package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/counter"
	"github.com/jonathan/teamhealth/internal/notify"
	"github.com/jonathan/teamhealth/internal/rolequiz"
	"github.com/jonathan/teamhealth/internal/scoring"
	"github.com/jonathan/teamhealth/internal/types"
)

// handleAssessmentNotification mails a finished assessment to the admin and the respondent
func (s *Server) handleAssessmentNotification(w http.ResponseWriter, r *http.Request) {
	if s.notifier == nil {
		s.fail(w, r, &ErrUnavailable{Service: "notification service"})
		return
	}

	var req types.AssessmentNotificationRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	results := make([]scoring.CategoryResult, 0, len(req.Results))
	for _, cs := range req.Results {
		results = append(results, scoring.CategoryResult{
			Category:   catalog.CategoryKey(cs.Category),
			Name:       cs.Name,
			Average:    cs.Average,
			Percentage: cs.Percentage,
		})
	}

	err := s.notifier.SendAssessment(r.Context(), notify.AssessmentRequest{
		Email:             req.Email,
		Results:           results,
		OverallPercentage: req.OverallPercentage,
		AssessmentKind:    req.AssessmentKind,
	})
	if err != nil {
		s.fail(w, r, &ErrUpstream{Service: "notification service", Err: err})
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// handleContact forwards a coaching inquiry
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.notifier == nil {
		s.fail(w, r, &ErrUnavailable{Service: "notification service"})
		return
	}

	var req types.ContactRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	err := s.notifier.SendContact(r.Context(), notify.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		s.fail(w, r, &ErrUpstream{Service: "notification service", Err: err})
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// handleGetCounter returns the number of completed quick tests
func (s *Server) handleGetCounter(w http.ResponseWriter, r *http.Request) {
	count, err := s.counter.Count(r.Context())
	if err != nil {
		s.fail(w, r, &ErrUpstream{Service: "completion counter", Err: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, types.CounterResponse{Count: count})
}

// handleRecordCompletion counts a finished quick test and returns the number to display
func (s *Server) handleRecordCompletion(w http.ResponseWriter, r *http.Request) {
	count, err := counter.RecordCompletion(r.Context(), s.counter)
	if err != nil {
		s.fail(w, r, &ErrUpstream{Service: "completion counter", Err: err})
		return
	}
	s.logger.Debug("quick test completed", zap.Int64("count", count))
	s.jsonResponse(w, http.StatusOK, types.CounterResponse{Count: count})
}

// handleAnalyze scores a meeting transcript with the LLM. Omitted criteria fall back to the defaults.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		s.fail(w, r, &ErrUnavailable{Service: "analysis service"})
		return
	}

	var req types.AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	criteria := req.Criteria
	if criteria == nil {
		criteria = append([]string(nil), analysis.DefaultCriteria...)
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Transcript, criteria)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// RoleQuizQuestion is a statement to attribute, without its answer
type RoleQuizQuestion struct {
	ID        int    `json:"id"`
	Statement string `json:"statement"`
}

// RoleQuizResponse is a fresh balanced round of the role quiz
type RoleQuizResponse struct {
	Roles     []rolequiz.Role    `json:"roles"`
	Questions []RoleQuizQuestion `json:"questions"`
}

// handleRoleQuiz deals a balanced, shuffled set of statements
func (s *Server) handleRoleQuiz(w http.ResponseWriter, _ *http.Request) {
	picked := s.roles.Pick()
	questions := make([]RoleQuizQuestion, 0, len(picked))
	for _, st := range picked {
		questions = append(questions, RoleQuizQuestion{ID: st.ID, Statement: st.Text})
	}
	s.jsonResponse(w, http.StatusOK, RoleQuizResponse{Roles: rolequiz.Roles, Questions: questions})
}

// handleRoleQuizScore grades a round
func (s *Server) handleRoleQuizScore(w http.ResponseWriter, r *http.Request) {
	var req types.RoleQuizScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	answers := make(map[int]rolequiz.Role, len(req.Answers))
	for id, role := range req.Answers {
		answers[id] = rolequiz.Role(role)
	}

	result, err := rolequiz.Score(req.Questions, answers)
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "answers", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
