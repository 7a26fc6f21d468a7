package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter keeps a sliding window of message timestamps per user. All access
// to the windows goes through RegisterAndCheck so the prune-append-count
// sequence can never interleave for the same user.
type Limiter struct {
	mu      sync.Mutex
	windows map[int64][]time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[int64][]time.Time),
	}
}

// RegisterAndCheck records an event at now and reports whether the user has
// exceeded limit messages within the window ending at now.
func (l *Limiter) RegisterAndCheck(userID int64, now time.Time, limit int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamps := l.windows[userID]

	valid := timestamps[:0]
	for _, t := range timestamps {
		if now.Sub(t) < window {
			valid = append(valid, t)
		}
	}

	valid = append(valid, now)
	l.windows[userID] = valid

	return len(valid) > limit
}

// Sweep drops windows whose newest entry is older than maxIdle, bounding the
// per-user table over the process lifetime.
func (l *Limiter) Sweep(now time.Time, maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for userID, timestamps := range l.windows {
		if len(timestamps) == 0 || now.Sub(timestamps[len(timestamps)-1]) >= maxIdle {
			delete(l.windows, userID)
			removed++
		}
	}
	return removed
}

// Size reports the number of tracked users, for the metrics gauge.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// StartSweeper prunes idle windows on a ticker until ctx is done.
func (l *Limiter) StartSweeper(ctx context.Context, interval, maxIdle time.Duration, onSweep func(removed, remaining int)) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed := l.Sweep(now, maxIdle)
				if onSweep != nil {
					onSweep(removed, l.Size())
				}
			}
		}
	}()
}
