package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_RegisterAndCheck(t *testing.T) {
	l := NewLimiter()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	// limit=3 per 5s: events at t=0,1,2 pass, t=3 exceeds
	assert.False(t, l.RegisterAndCheck(1, base, 3, 5*time.Second))
	assert.False(t, l.RegisterAndCheck(1, base.Add(1*time.Second), 3, 5*time.Second))
	assert.False(t, l.RegisterAndCheck(1, base.Add(2*time.Second), 3, 5*time.Second))
	assert.True(t, l.RegisterAndCheck(1, base.Add(3*time.Second), 3, 5*time.Second))
}

func TestLimiter_WindowSlides(t *testing.T) {
	l := NewLimiter()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		l.RegisterAndCheck(1, base.Add(time.Duration(i)*time.Second), 3, 5*time.Second)
	}
	// after the window passed, the old entries are pruned
	assert.False(t, l.RegisterAndCheck(1, base.Add(10*time.Second), 3, 5*time.Second))
}

func TestLimiter_UsersIndependent(t *testing.T) {
	l := NewLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, l.RegisterAndCheck(1, now, 1, 5*time.Second))
	assert.True(t, l.RegisterAndCheck(1, now, 1, 5*time.Second))
	assert.False(t, l.RegisterAndCheck(2, now, 1, 5*time.Second), "second user has an empty window")
}

func TestLimiter_ConcurrentSameUser(t *testing.T) {
	l := NewLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	const events = 50
	var wg sync.WaitGroup
	exceeded := make([]bool, events)
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			exceeded[i] = l.RegisterAndCheck(1, now, 10, 5*time.Second)
		}(i)
	}
	wg.Wait()

	blocked := 0
	for _, e := range exceeded {
		if e {
			blocked++
		}
	}
	// the prune-append-count sequence is serialized: exactly the events
	// past the limit report exceeded, none are lost to races
	assert.Equal(t, events-10, blocked)
}

func TestLimiter_Sweep(t *testing.T) {
	l := NewLimiter()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	l.RegisterAndCheck(1, base, 3, 5*time.Second)
	l.RegisterAndCheck(2, base.Add(9*time.Minute), 3, 5*time.Second)
	assert.Equal(t, 2, l.Size())

	removed := l.Sweep(base.Add(10*time.Minute), 10*time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, l.Size(), "recently active user is kept")
}
