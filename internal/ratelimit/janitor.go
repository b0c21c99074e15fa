// janitor.go houses the eviction loop for Limiter.  Every sweep interval
// it removes entries whose cooldown has fully elapsed; such keys would be
// allowed anyway, so dropping them only bounds the map's growth.  Each
// sweep updates the Prometheus evict counter.
package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/applyboard/internal/metrics"
)

// Sweep removes every entry older than the window as of now and returns
// the number evicted.
func (l *Limiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var evicted int
	for k, ts := range l.last {
		if now.Sub(ts) >= l.window {
			delete(l.last, k)
			evicted++
		}
	}
	return evicted
}

// StartJanitor runs Sweep every interval until ctx is cancelled.
func (l *Limiter) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := l.Sweep(time.Now()); n > 0 {
					metrics.RateLimitEvictTotal.Add(float64(n))
					zap.S().Debugw("cooldown entries swept", "evicted", n, "tracked", l.Len())
				}
			}
		}
	}()
}
