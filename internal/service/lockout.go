package service

import (
	"sync"
	"time"
)

// LoginLimiter tracks failed login attempts per source IP inside a fixed
// window. State is in-process only: a restart clears all counters. That
// non-durability is accepted for a single-instance deployment.
type LoginLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	attempts map[string]*attemptWindow
}

type attemptWindow struct {
	count int
	start time.Time
}

// NewLoginLimiter creates a limiter allowing max failures per window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		max:      max,
		window:   window,
		attempts: make(map[string]*attemptWindow),
	}
}

// Locked reports whether the IP has exhausted its attempts in the
// current window. Expired windows are pruned on access.
func (l *LoginLimiter) Locked(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.attempts[ip]
	if !ok {
		return false
	}
	if time.Since(w.start) > l.window {
		delete(l.attempts, ip)
		return false
	}
	return w.count >= l.max
}

// RecordFailure counts one failed attempt for the IP.
func (l *LoginLimiter) RecordFailure(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.attempts[ip]
	if !ok || time.Since(w.start) > l.window {
		l.attempts[ip] = &attemptWindow{count: 1, start: time.Now()}
		return
	}
	w.count++
}

// Reset clears the IP's counter after a successful login.
func (l *LoginLimiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, ip)
}
