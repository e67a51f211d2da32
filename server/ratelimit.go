package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const loginWindow = time.Minute

// loginLimiter keeps one token bucket per client IP for the credential endpoint.
type loginLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*ipLimiter
	nowFunc func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginLimiter(perMinute, burst int) *loginLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &loginLimiter{
		limit:   rate.Every(loginWindow / time.Duration(perMinute)),
		burst:   burst,
		buckets: make(map[string]*ipLimiter),
		nowFunc: time.Now,
	}
}

func (l *loginLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}
	now := l.nowFunc()

	l.mu.Lock()
	bucket, exists := l.buckets[key]
	if !exists {
		bucket = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now
	l.cleanupLocked(now)
	l.mu.Unlock()

	return bucket.limiter.AllowN(now, 1)
}

// cleanupLocked drops buckets idle for two windows.
func (l *loginLimiter) cleanupLocked(now time.Time) {
	cutoff := now.Add(-2 * loginWindow)
	for key, bucket := range l.buckets {
		if bucket.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
