package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/counter"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/notify"
	"github.com/jonathan/teamhealth/internal/rolequiz"
	"github.com/jonathan/teamhealth/internal/scoring"
	"github.com/jonathan/teamhealth/internal/server/ratelimit"
	"github.com/jonathan/teamhealth/internal/session"
)

type fakeNotifier struct {
	mu         sync.Mutex
	err        error
	assessment []notify.AssessmentRequest
	contact    []notify.ContactRequest
}

func (f *fakeNotifier) SendAssessment(_ context.Context, req notify.AssessmentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assessment = append(f.assessment, req)
	return f.err
}

func (f *fakeNotifier) SendContact(_ context.Context, req notify.ContactRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contact = append(f.contact, req)
	return f.err
}

type fakeAnalyzer struct {
	criteria []string
	result   *analysis.Result
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, transcript string, criteria []string) (*analysis.Result, error) {
	f.criteria = criteria
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type brokenCounter struct{}

func (brokenCounter) Increment(context.Context) error { return errors.New("connection refused") }

func (brokenCounter) Count(context.Context) (int64, error) {
	return 0, errors.New("connection refused")
}

func newTestServer(t *testing.T, deps Dependencies) *Server {
	t.Helper()
	if deps.RateLimit == nil {
		deps.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s := New(Config{Port: 0, SessionTTL: time.Hour}, deps)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func allAnswers(quiz *catalog.Quiz, rating int) map[int]int {
	answers := make(map[int]int, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers[q.ID] = rating
	}
	return answers
}

func createSession(t *testing.T, s *Server, kind catalog.Kind) session.Snapshot {
	t.Helper()
	w := do(t, s, http.MethodPost, "/sessions", map[string]string{"quiz": string(kind)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[session.Snapshot](t, w)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, w)["status"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodOptions, "/sessions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestListQuizzes(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodGet, "/quizzes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	quizzes := decodeBody[[]QuizSummary](t, w)
	require.Len(t, quizzes, 3)
	assert.Equal(t, catalog.KindTeamDiagnostic, quizzes[0].Kind)
	assert.Equal(t, 36, quizzes[0].Questions)
}

func TestGetQuiz(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodGet, "/quizzes/quick-test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	quiz := decodeBody[catalog.Quiz](t, w)
	assert.Len(t, quiz.Questions, 12)

	w = do(t, s, http.MethodGet, "/quizzes/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "quiz not found: nope")
}

func TestScore_TeamDiagnostic(t *testing.T) {
	s := newTestServer(t, Dependencies{})
	quiz := catalog.TeamDiagnostic()

	w := do(t, s, http.MethodPost, "/quizzes/team-diagnostic/score", map[string]any{"answers": allAnswers(quiz, 4)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[ScoreResponse](t, w)
	assert.True(t, resp.Complete)
	assert.Equal(t, 36, resp.Answered)
	assert.Equal(t, 80, resp.Overall.Percentage)
	require.NotNil(t, resp.Overall.Fine)
	assert.Equal(t, "4.5", resp.Overall.Fine.Level)
	require.Len(t, resp.Report, 6)
	assert.Equal(t, maturity.TeamActions[catalog.Delivery][maturity.TierProactive], resp.Report[0].Action)
}

func TestScore_Partial(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodPost, "/quizzes/quick-test/score", `{"answers":{"1":5}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[ScoreResponse](t, w)
	assert.False(t, resp.Complete)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 100, resp.Overall.Percentage)
	assert.Nil(t, resp.Overall.Fine)
	assert.Empty(t, resp.Report)
}

func TestScore_EmptyAnswers(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodPost, "/quizzes/team-diagnostic/score", `{"answers":{}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"results":[]`)

	resp := decodeBody[ScoreResponse](t, w)
	assert.False(t, resp.Complete)
	assert.Zero(t, resp.Answered)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Overall.Percentage)
	assert.Empty(t, resp.Report)
}

func TestScore_Invalid(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"unknown quiz", "/quizzes/nope/score", `{"answers":{"1":3}}`, http.StatusNotFound},
		{"malformed body", "/quizzes/quick-test/score", `{`, http.StatusBadRequest},
		{"missing answers", "/quizzes/quick-test/score", `{}`, http.StatusBadRequest},
		{"rating out of range", "/quizzes/quick-test/score", `{"answers":{"1":6}}`, http.StatusBadRequest},
		{"unknown question", "/quizzes/quick-test/score", `{"answers":{"99":3}}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t, Dependencies{})
	quiz := catalog.Individual()

	snap := createSession(t, s, catalog.KindIndividual)
	assert.Equal(t, session.StateAnswering, snap.State)
	assert.Equal(t, 12, snap.Total)
	base := "/sessions/" + snap.ID

	// Completion gate
	w := do(t, s, http.MethodPost, base+"/results", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "answered 0 of 12 questions")

	// PDF export needs results first
	w = do(t, s, http.MethodGet, base+"/report.pdf", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, s, http.MethodPut, base+"/answers", map[string]any{"answers": allAnswers(quiz, 3)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap = decodeBody[session.Snapshot](t, w)
	assert.Equal(t, 12, snap.Answered)
	assert.Equal(t, 60, snap.Overall.Percentage)

	w = do(t, s, http.MethodPost, base+"/results", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, session.StateResults, decodeBody[session.Snapshot](t, w).State)

	w = do(t, s, http.MethodPost, base+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap = decodeBody[session.Snapshot](t, w)
	assert.Equal(t, session.StateActionReport, snap.State)
	require.Len(t, snap.Report, 6)
	assert.Equal(t, maturity.FeedbackMedium, snap.Report[0].FeedbackLevel)

	w = do(t, s, http.MethodGet, base+"/report.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "individual-report.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = do(t, s, http.MethodPost, base+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.StateResults, decodeBody[session.Snapshot](t, w).State)

	w = do(t, s, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_UnknownQuiz(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodPost, "/sessions", map[string]string{"quiz": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/sessions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSession_InvalidAnswerRejectsWholeRequest(t *testing.T) {
	s := newTestServer(t, Dependencies{})
	snap := createSession(t, s, catalog.KindQuickTest)

	w := do(t, s, http.MethodPut, "/sessions/"+snap.ID+"/answers", `{"answers":{"1":3,"99":3}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/sessions/"+snap.ID, nil)
	assert.Equal(t, 0, decodeBody[session.Snapshot](t, w).Answered)
}

func TestSession_QuickTestHasNoReport(t *testing.T) {
	s := newTestServer(t, Dependencies{})
	snap := createSession(t, s, catalog.KindQuickTest)
	base := "/sessions/" + snap.ID

	w := do(t, s, http.MethodPut, base+"/answers", map[string]any{"answers": allAnswers(catalog.QuickTest(), 2)})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, base+"/results", nil).Code)

	w = do(t, s, http.MethodPost, base+"/report", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no report")

	// Revision is not allowed once results are shown
	w = do(t, s, http.MethodPut, base+"/answers", `{"answers":{"1":5}}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSession_ComparisonWithTeamSession(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	team := createSession(t, s, catalog.KindTeamDiagnostic)
	individual := createSession(t, s, catalog.KindIndividual)
	ibase := "/sessions/" + individual.ID

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, ibase+"/answers",
		map[string]any{"answers": allAnswers(catalog.Individual(), 3)}).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, ibase+"/results", nil).Code)

	// Team session not finished yet
	w := do(t, s, http.MethodPost, ibase+"/comparison", map[string]string{"team_session_id": team.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/sessions/"+team.ID+"/answers",
		map[string]any{"answers": allAnswers(catalog.TeamDiagnostic(), 4)}).Code)

	w = do(t, s, http.MethodPost, ibase+"/comparison", map[string]string{"team_session_id": team.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	snap := decodeBody[session.Snapshot](t, w)
	assert.Equal(t, session.StateMergedComparison, snap.State)
	require.Len(t, snap.Comparison, 6)
	for _, row := range snap.Comparison {
		assert.Equal(t, 60, row.Individual)
		assert.Equal(t, 80, row.Team)
		assert.Equal(t, scoring.AlignmentBelow, row.Alignment)
	}
}

func TestSession_ComparisonInline(t *testing.T) {
	s := newTestServer(t, Dependencies{})
	snap := createSession(t, s, catalog.KindIndividual)
	base := "/sessions/" + snap.ID

	// Comparison is only reachable from results
	w := do(t, s, http.MethodPost, base+"/comparison", `{"team_results":[{"category":"trust","percentage":50}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, base+"/answers",
		map[string]any{"answers": allAnswers(catalog.Individual(), 3)}).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, base+"/results", nil).Code)

	w = do(t, s, http.MethodPost, base+"/comparison", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, base+"/comparison", `{"team_results":[{"category":"trust","percentage":50}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decodeBody[session.Snapshot](t, w)
	row, ok := findComparison(result.Comparison, catalog.Trust)
	require.True(t, ok)
	assert.Equal(t, 10, row.Diff)
	assert.Equal(t, scoring.AlignmentAbove, row.Alignment)
}

func findComparison(rows []scoring.Comparison, key catalog.CategoryKey) (scoring.Comparison, bool) {
	for _, r := range rows {
		if r.Category == key {
			return r, true
		}
	}
	return scoring.Comparison{}, false
}

func validAssessment() map[string]any {
	return map[string]any{
		"email":              "lead@example.com",
		"overall_percentage": 72,
		"assessment_kind":    "team-diagnostic",
		"results": []map[string]any{
			{"category": "trust", "name": "Trust & Psychological Safety", "average": "3.6", "percentage": 72},
		},
	}
}

func TestAssessmentNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	s := newTestServer(t, Dependencies{Notifier: notifier})

	w := do(t, s, http.MethodPost, "/notifications/assessment", validAssessment())
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	require.Len(t, notifier.assessment, 1)
	got := notifier.assessment[0]
	assert.Equal(t, "lead@example.com", got.Email)
	assert.Equal(t, 72, got.OverallPercentage)
	require.Len(t, got.Results, 1)
	assert.Equal(t, catalog.Trust, got.Results[0].Category)
	assert.Equal(t, "3.6", got.Results[0].Average)
}

func TestAssessmentNotification_WithoutKind(t *testing.T) {
	notifier := &fakeNotifier{}
	s := newTestServer(t, Dependencies{Notifier: notifier})

	body := validAssessment()
	delete(body, "assessment_kind")
	w := do(t, s, http.MethodPost, "/notifications/assessment", body)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	require.Len(t, notifier.assessment, 1)
	assert.Empty(t, notifier.assessment[0].AssessmentKind)
}

func TestAssessmentNotification_Failure(t *testing.T) {
	notifier := &fakeNotifier{err: &notify.DeliveryError{Recipient: "lead@example.com", Err: errors.New("api down")}}
	s := newTestServer(t, Dependencies{Notifier: notifier})

	w := do(t, s, http.MethodPost, "/notifications/assessment", validAssessment())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, retryMessage, decodeBody[map[string]string](t, w)["error"])
	assert.NotContains(t, w.Body.String(), "api down")
}

func TestAssessmentNotification_Validation(t *testing.T) {
	notifier := &fakeNotifier{}
	s := newTestServer(t, Dependencies{Notifier: notifier})

	body := validAssessment()
	body["email"] = "not-an-email"
	w := do(t, s, http.MethodPost, "/notifications/assessment", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, notifier.assessment)
}

func TestNotifications_NotConfigured(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodPost, "/notifications/contact", map[string]string{"name": "Sam", "email": "sam@example.com", "message": "Hi"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContact(t *testing.T) {
	notifier := &fakeNotifier{}
	s := newTestServer(t, Dependencies{Notifier: notifier})

	w := do(t, s, http.MethodPost, "/notifications/contact", map[string]string{"name": "Sam", "email": "sam@example.com", "message": "Can you coach us?"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	require.Len(t, notifier.contact, 1)
	assert.Equal(t, "Can you coach us?", notifier.contact[0].Message)

	w = do(t, s, http.MethodPost, "/notifications/contact", map[string]string{"email": "sam@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCounter(t *testing.T) {
	s := newTestServer(t, Dependencies{Counter: counter.NewMemory(41)})

	w := do(t, s, http.MethodGet, "/counters/quick-test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(41), decodeBody[map[string]float64](t, w)["count"])

	w = do(t, s, http.MethodPost, "/counters/quick-test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(42), decodeBody[map[string]float64](t, w)["count"])

	w = do(t, s, http.MethodGet, "/counters/quick-test", nil)
	assert.Equal(t, float64(42), decodeBody[map[string]float64](t, w)["count"])
}

func TestCounter_Failure(t *testing.T) {
	s := newTestServer(t, Dependencies{Counter: brokenCounter{}})

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := do(t, s, method, "/counters/quick-test", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, retryMessage, decodeBody[map[string]string](t, w)["error"])
	}
}

func TestAnalyze(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &analysis.Result{
		Summary:      "Good sync.",
		OverallScore: 7,
		Scores:       map[string]analysis.CriterionScore{"Trust": {Score: 8, Explanation: "Open."}},
		Strengths:    []string{},
		Improvements: []string{},
	}}
	s := newTestServer(t, Dependencies{Analyzer: analyzer})

	w := do(t, s, http.MethodPost, "/meetings/analyze", map[string]any{"transcript": "Alice: hi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, analysis.DefaultCriteria, analyzer.criteria)

	result := decodeBody[analysis.Result](t, w)
	assert.Equal(t, "Good sync.", result.Summary)
	assert.InDelta(t, 8, result.Scores["Trust"].Score, 1e-9)

	w = do(t, s, http.MethodPost, "/meetings/analyze", map[string]any{"transcript": "Alice: hi", "criteria": []string{"Focus"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Focus"}, analyzer.criteria)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"upstream failure", &analysis.APICallError{Err: errors.New("quota")}, http.StatusBadGateway},
		{"bad response", &analysis.ResponseError{Raw: "{}", Err: errors.New("schema")}, http.StatusBadGateway},
		{"no criteria", analysis.ErrNoCriteria, http.StatusBadRequest},
		{"blank transcript", analysis.ErrEmptyTranscript, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Dependencies{Analyzer: &fakeAnalyzer{err: tt.err}})
			w := do(t, s, http.MethodPost, "/meetings/analyze", map[string]any{"transcript": "x"})
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestAnalyze_Validation(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	s := newTestServer(t, Dependencies{Analyzer: analyzer})

	w := do(t, s, http.MethodPost, "/meetings/analyze", map[string]any{"transcript": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, analyzer.criteria)
}

func TestRoleQuiz(t *testing.T) {
	s := newTestServer(t, Dependencies{RoleQuiz: rolequiz.NewPicker(7)})

	w := do(t, s, http.MethodGet, "/role-quiz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct_answer")

	round := decodeBody[RoleQuizResponse](t, w)
	require.Len(t, round.Questions, rolequiz.PerRole*len(rolequiz.Roles))

	ids := make([]int, 0, len(round.Questions))
	answers := make(map[string]string, len(round.Questions))
	for _, q := range round.Questions {
		ids = append(ids, q.ID)
		st, ok := rolequiz.Lookup(q.ID)
		require.True(t, ok)
		answers[fmt.Sprint(q.ID)] = string(st.Role)
	}

	w = do(t, s, http.MethodPost, "/role-quiz/score", map[string]any{"questions": ids, "answers": answers})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decodeBody[rolequiz.Result](t, w)
	assert.Equal(t, 15, result.Correct)
	assert.Equal(t, 100, result.Percentage)
	assert.Equal(t, "Excellent! You're a Scrum expert!", result.Message)
}

func TestRoleQuizScore_Invalid(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodPost, "/role-quiz/score", `{"questions":[999],"answers":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/role-quiz/score", `{"questions":[1],"answers":{"1":"Chief"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Dependencies{
		Analyzer: &fakeAnalyzer{result: &analysis.Result{}},
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/meetings/analyze", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
			},
		},
	})

	w := do(t, s, http.MethodPost, "/meetings/analyze", map[string]any{"transcript": "x"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, s, http.MethodPost, "/meetings/analyze", map[string]any{"transcript": "x"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decodeBody[map[string]any](t, w)["error"])

	// Health stays unlimited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil).Code)
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", s.extractClientID(req))

	req.RemoteAddr = "garbage"
	assert.Equal(t, "garbage", s.extractClientID(req))
}
