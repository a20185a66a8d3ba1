// Package ratelimit throttles API clients per endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// idleTimeout is how long a bucket may go unused before the janitor drops it
const idleTimeout = time.Hour

// bucket holds the tokens one client has left for one endpoint rule.
// Fields are guarded by the owning Limiter's mutex.
type bucket struct {
	capacity float64
	rate     float64 // tokens per second
	tokens   float64
	updated  time.Time
	seen     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		updated:  now,
		seen:     now,
	}
}

func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.updated = now
}

// take consumes one token if available
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// status reports whole tokens left, when the bucket is full again and how long until the next token
func (b *bucket) status(now time.Time) (remaining int, full time.Time, next time.Duration) {
	remaining = int(b.tokens)
	full = now.Add(b.until(b.capacity))
	if b.tokens < 1 {
		next = b.until(1)
	}
	return remaining, full, next
}

func (b *bucket) until(level float64) time.Duration {
	missing := level - b.tokens
	if missing <= 0 || b.rate <= 0 {
		return 0
	}
	return time.Duration(missing / b.rate * float64(time.Second))
}

// Info describes the limit applied to one request. Limit is 0 when the request was not metered.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter meters requests per client and endpoint rule
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config uses DefaultConfig. When enabled with a cleanup
// interval, a janitor goroutine drops idle buckets until Stop is called.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	l := &Limiter{
		cfg:     *cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		l.done = make(chan struct{})
		go l.janitor(cfg.CleanupInterval)
	}
	return l
}

// Allow consumes a token for the client on the rule matching path and method
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	switch {
	case !l.cfg.Enabled, l.cfg.Whitelist[clientID]:
		return true, Info{Allowed: true}
	case l.cfg.Blacklist[clientID]:
		return false, Info{}
	}

	rule, scope := l.rule(path, method)
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}
	key := clientID + " " + method + " " + scope

	now := l.now()
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule.capacity(), rule.rate(), now)
		l.buckets[key] = b
	}
	allowed := b.take(now)
	remaining, full, next := b.status(now)
	l.mu.Unlock()

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: full,
	}
	if !allowed {
		info.RetryAfter = next
	}
	return allowed, info
}

// rule resolves the endpoint rule and the bucket scope. Prefix rules scope the bucket to the
// prefix so every id under it draws from one allowance.
func (l *Limiter) rule(path, method string) (EndpointConfig, string) {
	if ec := MatchEndpoint(path, method, l.cfg.EndpointConfigs); ec != nil {
		if ec.Path == "" {
			return *ec, path
		}
		return *ec, ec.Path
	}
	return EndpointConfig{Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow}, path
}

// sweep drops buckets last used before cutoff and returns how many went
func (l *Limiter) sweep(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	dropped := 0
	for key, b := range l.buckets {
		if b.seen.Before(cutoff) {
			delete(l.buckets, key)
			dropped++
		}
	}
	return dropped
}

func (l *Limiter) janitor(interval time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(l.now().Add(-idleTimeout))
		case <-l.stop:
			return
		}
	}
}

// Stop ends the janitor and waits for it. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.stop == nil {
			return
		}
		close(l.stop)
		<-l.done
	})
}
