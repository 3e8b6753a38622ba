package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a per-client sliding-window request throttle. State is held in
// process and guarded by a single mutex; this is a deliberate single-node
// design, not a distributed one.
type Limiter struct {
	maxCalls int
	period   time.Duration

	mu      sync.Mutex
	clients map[string][]time.Time
	now     func() time.Time
}

// Result reports the outcome of one Allow call, including the header values
// the HTTP layer emits on every response.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func New(maxCalls int, period time.Duration) *Limiter {
	return &Limiter{
		maxCalls: maxCalls,
		period:   period,
		clients:  make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow records a request for the client key unless its window is full.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.period)

	recent := l.clients[key][:0]
	for _, t := range l.clients[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	result := Result{
		Limit:   l.maxCalls,
		ResetAt: now.Add(l.period),
	}
	if len(recent) >= l.maxCalls {
		l.clients[key] = recent
		result.Allowed = false
		result.Remaining = 0
		return result
	}

	recent = append(recent, now)
	l.clients[key] = recent
	result.Allowed = true
	result.Remaining = l.maxCalls - len(recent)
	return result
}

// Purge drops clients whose recorded requests have all aged out, bounding
// memory between bursts. Called periodically by the scheduler.
func (l *Limiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.period)
	purged := 0
	for key, stamps := range l.clients {
		live := false
		for _, t := range stamps {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.clients, key)
			purged++
		}
	}
	return purged
}
