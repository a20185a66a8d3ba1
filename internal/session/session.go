// Package session implements the in-memory quiz flow: answering, results and the report views.
// Answers are never persisted.
package session

import (
	"sync"
	"time"

	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/scoring"
)

// State is a step in the quiz flow
type State string

const (
	StateAnswering        State = "answering"
	StateResults          State = "results"
	StateActionReport     State = "action_report"
	StateMergedComparison State = "merged_comparison"
)

// Session is one respondent's pass through a quiz
type Session struct {
	id        string
	quiz      *catalog.Quiz
	actions   maturity.ActionTable
	createdAt time.Time

	mu         sync.Mutex
	state      State
	answers    scoring.AnswerSet
	team       []scoring.CategoryResult
	lastAccess time.Time
}

// New creates a session in the answering state
func New(id string, quiz *catalog.Quiz, actions maturity.ActionTable, now time.Time) *Session {
	return &Session{
		id:         id,
		quiz:       quiz,
		actions:    actions,
		createdAt:  now,
		state:      StateAnswering,
		answers:    make(scoring.AnswerSet),
		lastAccess: now,
	}
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Quiz returns the quiz being answered
func (s *Session) Quiz() *catalog.Quiz { return s.quiz }

// State returns the current flow state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Answer records a rating. Answering after results is only allowed when the quiz permits revision,
// and it sends the session back to answering.
func (s *Session) Answer(questionID, rating int) error {
	if _, ok := s.quiz.Question(questionID); !ok {
		return &InvalidAnswerError{QuestionID: questionID, Rating: rating, Message: "unknown question"}
	}
	if rating < catalog.MinRating || rating > catalog.MaxRating {
		return &InvalidAnswerError{QuestionID: questionID, Rating: rating, Message: "rating must be between 1 and 5"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAnswering:
	case StateResults:
		if !s.quiz.AllowRevise {
			return &TransitionError{From: s.state, Action: "answer", Reason: "this quiz does not allow revising answers"}
		}
		s.state = StateAnswering
	default:
		return &TransitionError{From: s.state, Action: "answer"}
	}

	s.answers[questionID] = rating
	return nil
}

// AnswerAll validates every rating first, then records them in catalog order
func (s *Session) AnswerAll(answers scoring.AnswerSet) error {
	for id, rating := range answers {
		if _, ok := s.quiz.Question(id); !ok {
			return &InvalidAnswerError{QuestionID: id, Rating: rating, Message: "unknown question"}
		}
		if rating < catalog.MinRating || rating > catalog.MaxRating {
			return &InvalidAnswerError{QuestionID: id, Rating: rating, Message: "rating must be between 1 and 5"}
		}
	}
	for _, q := range s.quiz.Questions {
		if rating, ok := answers[q.ID]; ok {
			if err := s.Answer(q.ID, rating); err != nil {
				return err
			}
		}
	}
	return nil
}

// ShowResults moves to the results state once every question has an answer
func (s *Session) ShowResults() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAnswering && s.state != StateResults {
		return &TransitionError{From: s.state, Action: "show results"}
	}
	if len(s.answers) != len(s.quiz.Questions) {
		return &IncompleteError{Answered: len(s.answers), Total: len(s.quiz.Questions)}
	}
	s.state = StateResults
	return nil
}

// ShowReport moves from results to the action report
func (s *Session) ShowReport() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateResults {
		return &TransitionError{From: s.state, Action: "show report", Reason: "results must be shown first"}
	}
	if s.quiz.Report == catalog.ReportNone {
		return &TransitionError{From: s.state, Action: "show report", Reason: "this quiz has no report"}
	}
	s.state = StateActionReport
	return nil
}

// ShowComparison moves from results to the merged individual/team view
func (s *Session) ShowComparison(team []scoring.CategoryResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateResults {
		return &TransitionError{From: s.state, Action: "show comparison", Reason: "results must be shown first"}
	}
	s.team = append([]scoring.CategoryResult(nil), team...)
	s.state = StateMergedComparison
	return nil
}

// Back returns from a report view to results, or from results to answering when revision is allowed
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateActionReport, StateMergedComparison:
		s.state = StateResults
		s.team = nil
	case StateResults:
		if !s.quiz.AllowRevise {
			return &TransitionError{From: s.state, Action: "go back", Reason: "this quiz does not allow revising answers"}
		}
		s.state = StateAnswering
	default:
		return &TransitionError{From: s.state, Action: "go back"}
	}
	return nil
}

// Snapshot is a read-only view of a session with everything derived from its answers
type Snapshot struct {
	ID         string                    `json:"id"`
	Kind       catalog.Kind              `json:"kind"`
	State      State                     `json:"state"`
	Answered   int                       `json:"answered"`
	Total      int                       `json:"total"`
	Answers    scoring.AnswerSet         `json:"answers"`
	Results    []scoring.CategoryResult  `json:"results"`
	Overall    maturity.Overall          `json:"overall"`
	Report     []maturity.CategoryReport `json:"report,omitempty"`
	Comparison []scoring.Comparison      `json:"comparison,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// Snapshot derives the current results. Report and comparison are filled only in their states.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(scoring.AnswerSet, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}

	results := scoring.ComputeResults(s.quiz, answers)
	snap := Snapshot{
		ID:        s.id,
		Kind:      s.quiz.Kind,
		State:     s.state,
		Answered:  len(answers),
		Total:     len(s.quiz.Questions),
		Answers:   answers,
		Results:   results,
		Overall:   maturity.ClassifyOverall(s.quiz, scoring.ComputeOverall(results)),
		CreatedAt: s.createdAt,
	}

	switch s.state {
	case StateActionReport:
		snap.Report = maturity.ClassifyCategories(s.quiz, s.actions, results)
	case StateMergedComparison:
		snap.Comparison = scoring.Compare(results, s.team)
	}
	return snap
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *Session) expired(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess.Before(cutoff)
}
