package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/maturity"
)

// DefaultTTL is how long an idle session survives
const DefaultTTL = 2 * time.Hour

// Store keeps sessions in memory and expires idle ones
type Store struct {
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	actions maturity.ActionTable

	mu       sync.RWMutex
	sessions map[string]*Session

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used by the janitor
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithActions sets the action table used for action reports
func WithActions(actions maturity.ActionTable) Option {
	return func(s *Store) { s.actions = actions }
}

// NewStore creates a store and starts its janitor. cleanupInterval <= 0 disables the janitor.
func NewStore(ttl, cleanupInterval time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:      ttl,
		now:      time.Now,
		logger:   zap.NewNop(),
		actions:  maturity.TeamActions,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cleanupInterval > 0 {
		s.cleanupTicker = time.NewTicker(cleanupInterval)
		s.cleanupStop = make(chan struct{})
		go s.cleanup()
	} else {
		close(s.done)
	}
	return s
}

// Create starts a new session for quiz
func (s *Store) Create(quiz *catalog.Quiz) *Session {
	sess := New(uuid.NewString(), quiz, s.actions, s.now())

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session_id", sess.ID()), zap.String("kind", string(quiz.Kind)))
	return sess
}

// Get returns a live session and refreshes its idle timer
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if sess.expired(now.Add(-s.ttl)) {
		s.Delete(id)
		return nil, ErrNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Delete discards a session and its answers
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len returns the number of stored sessions, expired or not
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes every expired session and returns how many were removed
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.expired(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) cleanup() {
	defer close(s.done)
	for {
		select {
		case <-s.cleanupTicker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		case <-s.cleanupStop:
			return
		}
	}
}

// Stop stops the janitor and waits for it to exit
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		if s.cleanupTicker != nil {
			s.cleanupTicker.Stop()
		}
		if s.cleanupStop != nil {
			close(s.cleanupStop)
		}
	})
	<-s.done
}
