package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/scoring"
	"github.com/jonathan/teamhealth/internal/types"
)

// QuizSummary is a catalog entry in the quiz list
type QuizSummary struct {
	Kind        catalog.Kind        `json:"kind"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Questions   int                 `json:"questions"`
	Categories  []catalog.Category  `json:"categories"`
	Granularity catalog.Granularity `json:"granularity"`
	Report      catalog.ReportKind  `json:"report"`
}

// ScoreResponse is the result of scoring a posted answer set
type ScoreResponse struct {
	Kind     catalog.Kind              `json:"kind"`
	Answered int                       `json:"answered"`
	Total    int                       `json:"total"`
	Complete bool                      `json:"complete"`
	Results  []scoring.CategoryResult  `json:"results"`
	Overall  maturity.Overall          `json:"overall"`
	Report   []maturity.CategoryReport `json:"report,omitempty"`
}

func (s *Server) lookupQuiz(kind string) (*catalog.Quiz, error) {
	quiz, ok := s.quizzes.Get(catalog.Kind(kind))
	if !ok {
		return nil, &ErrQuizNotFound{Kind: kind}
	}
	return quiz, nil
}

// handleListQuizzes lists the registered quizzes
func (s *Server) handleListQuizzes(w http.ResponseWriter, _ *http.Request) {
	quizzes := s.quizzes.List()
	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, QuizSummary{
			Kind:        q.Kind,
			Title:       q.Title,
			Description: q.Description,
			Questions:   len(q.Questions),
			Categories:  q.Categories,
			Granularity: q.Granularity,
			Report:      q.Report,
		})
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetQuiz returns one quiz with its questions
func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.lookupQuiz(r.PathValue("kind"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, quiz)
}

// handleScore scores a partial or complete answer set without creating a session
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.lookupQuiz(r.PathValue("kind"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req types.ScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	answers := scoring.AnswerSet(req.Answers)
	for id := range answers {
		if _, ok := quiz.Question(id); !ok {
			s.fail(w, r, &ErrValidation{Field: "answers", Message: fmt.Sprintf("unknown question %d", id)})
			return
		}
	}

	results := scoring.ComputeResults(quiz, answers)
	resp := ScoreResponse{
		Kind:     quiz.Kind,
		Answered: len(answers),
		Total:    len(quiz.Questions),
		Complete: scoring.Answered(quiz, answers),
		Results:  results,
		Overall:  maturity.ClassifyOverall(quiz, scoring.ComputeOverall(results)),
	}
	if quiz.Report != catalog.ReportNone {
		resp.Report = maturity.ClassifyCategories(quiz, s.actions, results)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
