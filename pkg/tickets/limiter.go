package tickets

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterSweepInterval is how often idle limiters are dropped.
const limiterSweepInterval = time.Minute

// limiterSet holds a token bucket per key. A bucket that has refilled completely behaves exactly like a new one,
// so it is dropped on the next sweep.
type limiterSet struct {
	mu sync.Mutex

	limit rate.Limit
	burst int

	limiters  map[string]*rate.Limiter
	lastSweep time.Time
}

func newLimiterSet(limit rate.Limit, burst int) *limiterSet {
	return &limiterSet{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// allow takes a token from the key's bucket at now. It reports false if the bucket is empty.
func (s *limiterSet) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		s.sweep(now)
	}

	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}
	return limiter.AllowN(now, 1)
}

// sweep drops every full bucket. The caller must hold mu.
func (s *limiterSet) sweep(now time.Time) {
	s.lastSweep = now
	for key, limiter := range s.limiters {
		if limiter.TokensAt(now) >= float64(s.burst) {
			delete(s.limiters, key)
		}
	}
}

// len returns the number of buckets being tracked.
func (s *limiterSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
