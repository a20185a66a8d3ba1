package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/counter"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/notify"
	"github.com/jonathan/teamhealth/internal/rolequiz"
	"github.com/jonathan/teamhealth/internal/server/ratelimit"
	"github.com/jonathan/teamhealth/internal/session"
)

// maxBodyBytes bounds every request body
const maxBodyBytes = 1 << 20

// Notifier sends the assessment and contact emails
type Notifier interface {
	SendAssessment(ctx context.Context, req notify.AssessmentRequest) error
	SendContact(ctx context.Context, req notify.ContactRequest) error
}

// MeetingAnalyzer scores a meeting transcript
type MeetingAnalyzer interface {
	Analyze(ctx context.Context, transcript string, criteria []string) (*analysis.Result, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	logger      *zap.Logger
	quizzes     *catalog.Registry
	sessions    *session.Store
	actions     maturity.ActionTable
	counter     counter.Counter
	notifier    Notifier
	analyzer    MeetingAnalyzer
	roles       *rolequiz.Picker
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port       int
	SessionTTL time.Duration
}

// Dependencies are the collaborators the handlers use. Nil fields get in-process defaults,
// except Notifier and Analyzer whose endpoints answer 503 when unset.
type Dependencies struct {
	Logger    *zap.Logger
	Quizzes   *catalog.Registry
	Actions   maturity.ActionTable
	Counter   counter.Counter
	Notifier  Notifier
	Analyzer  MeetingAnalyzer
	RoleQuiz  *rolequiz.Picker
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config, deps Dependencies) *Server {
	s := &Server{
		logger:   deps.Logger,
		quizzes:  deps.Quizzes,
		actions:  deps.Actions,
		counter:  deps.Counter,
		notifier: deps.Notifier,
		analyzer: deps.Analyzer,
		roles:    deps.RoleQuiz,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.quizzes == nil {
		s.quizzes = catalog.Default()
	}
	if s.actions == nil {
		s.actions = maturity.TeamActions
	}
	if s.counter == nil {
		s.counter = counter.NewMemory(0)
	}
	if s.roles == nil {
		s.roles = rolequiz.NewPicker(time.Now().UnixNano())
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = session.DefaultTTL
	}

	s.sessions = session.NewStore(cfg.SessionTTL, time.Minute,
		session.WithLogger(s.logger.Named("sessions")),
		session.WithActions(s.actions))

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(deps.RateLimit)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Quiz catalog and stateless scoring
	mux.HandleFunc("GET /quizzes", s.handleListQuizzes)
	mux.HandleFunc("GET /quizzes/{kind}", s.handleGetQuiz)
	mux.HandleFunc("POST /quizzes/{kind}/score", s.handleScore)

	// Quiz flow sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PUT /sessions/{id}/answers", s.handleAnswers)
	mux.HandleFunc("POST /sessions/{id}/results", s.handleShowResults)
	mux.HandleFunc("POST /sessions/{id}/report", s.handleShowReport)
	mux.HandleFunc("POST /sessions/{id}/comparison", s.handleShowComparison)
	mux.HandleFunc("POST /sessions/{id}/back", s.handleBack)
	mux.HandleFunc("GET /sessions/{id}/report.pdf", s.handleReportPDF)

	// External collaborators
	mux.HandleFunc("POST /notifications/assessment", s.handleAssessmentNotification)
	mux.HandleFunc("POST /notifications/contact", s.handleContact)
	mux.HandleFunc("GET /counters/quick-test", s.handleGetCounter)
	mux.HandleFunc("POST /counters/quick-test", s.handleRecordCompletion)
	mux.HandleFunc("POST /meetings/analyze", s.handleAnalyze)

	// Scrum roles quiz
	mux.HandleFunc("GET /role-quiz", s.handleRoleQuiz)
	mux.HandleFunc("POST /role-quiz/score", s.handleRoleQuizScore)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Meeting analysis waits on the LLM
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops the background goroutines owned by the server
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.sessions.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status, logs server-side failures, and writes the public message
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}
	s.errorResponse(w, status, publicMessage(status, err))
}

// decode reads a JSON body into v and runs its validation
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{ Validate() error }) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return v.Validate()
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. " + retryMessage,
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(math.Ceil(info.RetryAfter.Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", s.extractClientID(r)),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
