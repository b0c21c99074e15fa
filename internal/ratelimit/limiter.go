// internal/ratelimit/limiter.go
//
// Per-identity submission cooldown.
//
// Context
// -------
// The intake endpoint accepts at most one application per username per
// cooldown window (15 minutes by default).  The limiter keeps one
// last-accepted timestamp per key behind a mutex; check and record are a
// single critical section, so two concurrent submissions from the same
// username can never both pass.
//
// A denied attempt does not touch the stored timestamp: it cannot extend
// the window, and it does not consume the slot.  An elapsed time exactly
// equal to the window is allowed (closed lower bound), avoiding off-by-one
// lockouts for clients that retry on a timer.
//
// Notes
// -----
// • Pure in-memory state, no I/O; the only failure mode is misuse.
// • Oxford commas, two spaces after periods.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the limiter's verdict for one attempt.  RetryAfter is only
// meaningful when Allowed is false; it is the exact remaining wait, which
// callers round up to whole minutes for display.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter enforces one accepted submission per key per window.
type Limiter struct {
	mu     sync.Mutex
	last   map[string]time.Time
	window time.Duration
}

// New returns a Limiter with the given cooldown window.  Panics on a
// non-positive window, which is always a wiring bug.
func New(window time.Duration) *Limiter {
	if window <= 0 {
		panic("ratelimit: window must be positive")
	}
	return &Limiter{
		last:   make(map[string]time.Time),
		window: window,
	}
}

// Window reports the configured cooldown.
func (l *Limiter) Window() time.Duration { return l.window }

// CheckAndRecord decides whether an attempt by key at now is allowed.  On
// allow it records now as the key's new last-accepted timestamp; on deny
// the stored timestamp is left untouched and RetryAfter carries the
// remaining wait (always > 0 and ≤ window).
func (l *Limiter) CheckAndRecord(key string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.last[key]; ok {
		elapsed := now.Sub(prev)
		if elapsed < l.window {
			return Decision{Allowed: false, RetryAfter: l.window - elapsed}
		}
	}

	l.last[key] = now
	return Decision{Allowed: true}
}

// Len reports the number of tracked keys.  Used by the janitor's log line
// and by tests.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.last)
}
