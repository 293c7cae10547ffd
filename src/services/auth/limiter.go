package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 15 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles password attempts per e-mail address.
type LoginLimiter struct {
	mu      sync.Mutex
	perMin  int
	entries map[string]*limiterEntry
	now     func() time.Time
}

func NewLoginLimiter(perMinute int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 5
	}
	return &LoginLimiter{perMin: perMinute, entries: map[string]*limiterEntry{}, now: time.Now}
}

// Allow consumes one attempt for key and reports whether it was permitted.
func (l *LoginLimiter) Allow(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(now)
	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// RetryAfter estimates how long key must wait for its next attempt.
func (l *LoginLimiter) RetryAfter(key string) time.Duration {
	key = strings.ToLower(strings.TrimSpace(key))
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return 0
	}
	r := e.limiter.ReserveN(l.now(), 1)
	defer r.Cancel()
	return r.Delay()
}

func (l *LoginLimiter) prune(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(l.entries, k)
		}
	}
}
