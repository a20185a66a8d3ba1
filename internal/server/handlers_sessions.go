package server

import (
	"bytes"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/report"
	"github.com/jonathan/teamhealth/internal/scoring"
	"github.com/jonathan/teamhealth/internal/session"
	"github.com/jonathan/teamhealth/internal/types"
)

// handleCreateSession starts a session for a quiz
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	quiz, err := s.lookupQuiz(req.Quiz)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess := s.sessions.Create(quiz)
	s.jsonResponse(w, http.StatusCreated, sess.Snapshot())
}

// handleGetSession returns the session with results derived from its current answers
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleDeleteSession discards a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(r.PathValue("id")) {
		s.fail(w, r, session.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnswers records ratings. The whole request is rejected if any answer is invalid.
func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req types.AnswersRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := sess.AnswerAll(scoring.AnswerSet(req.Answers)); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// transition applies a state change to the session named in the path and returns the new snapshot
func (s *Server) transition(w http.ResponseWriter, r *http.Request, apply func(*session.Session) error) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := apply(sess); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleShowResults passes the completion gate
func (s *Server) handleShowResults(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*session.Session).ShowResults)
}

// handleShowReport opens the per-category report
func (s *Server) handleShowReport(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*session.Session).ShowReport)
}

// handleBack leaves a report view
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*session.Session).Back)
}

// handleShowComparison merges the session's results with a team's
func (s *Server) handleShowComparison(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req types.ComparisonRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	team, err := s.teamResults(sess.Quiz(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := sess.ShowComparison(team); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// teamResults resolves the team side of a comparison from another session or inline scores
func (s *Server) teamResults(quiz *catalog.Quiz, req types.ComparisonRequest) ([]scoring.CategoryResult, error) {
	if req.TeamSessionID != "" {
		teamSess, err := s.sessions.Get(req.TeamSessionID)
		if err != nil {
			return nil, err
		}
		snap := teamSess.Snapshot()
		if snap.Answered != snap.Total {
			return nil, &session.IncompleteError{Answered: snap.Answered, Total: snap.Total}
		}
		return snap.Results, nil
	}

	team := make([]scoring.CategoryResult, 0, len(req.TeamResults))
	for _, ts := range req.TeamResults {
		key := catalog.CategoryKey(ts.Category)
		name := ts.Name
		if name == "" {
			name = quiz.CategoryName(key)
		}
		team = append(team, scoring.CategoryResult{
			Category:   key,
			Name:       name,
			Percentage: ts.Percentage,
		})
	}
	return team, nil
}

// handleReportPDF exports the session's results once the completion gate has been passed
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	snap := sess.Snapshot()
	if snap.State == session.StateAnswering {
		s.fail(w, r, &session.TransitionError{From: snap.State, Action: "export report", Reason: "results must be shown first"})
		return
	}

	quiz := sess.Quiz()
	doc := report.BuildDocument(quiz, snap.Overall, maturity.ClassifyCategories(quiz, s.actions, snap.Results))

	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, doc); err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Debug("rendered report", zap.String("session", snap.ID), zap.Int("bytes", buf.Len()))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename(quiz.Kind)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
