package ratelimit

import (
	"sync"
	"time"
)

// Admission is the outcome of one admit decision.
type Admission struct {
	Allowed    bool
	Category   string
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// bucket holds the occupied timestamps for one category. Its mutex
// serializes the prune-check-record sequence end to end, so two concurrent
// calls can never both take the last slot.
type bucket struct {
	mu     sync.Mutex
	stamps []time.Time
}

// Limiter tracks sliding-window counters per action category. Buckets are
// created lazily on first use and owned exclusively by the limiter.
type Limiter struct {
	mu      sync.Mutex
	cfg     Config
	buckets map[string]*bucket
}

// New creates a limiter with the given category limits.
func New(cfg Config) *Limiter {
	if cfg == nil {
		cfg = Config{}
	}
	return &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
	}
}

// SetConfig swaps the category limits. Existing bucket occupancy survives
// the swap so a reload cannot be used to reset consumed budget.
func (l *Limiter) SetConfig(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cfg == nil {
		cfg = Config{}
	}
	l.cfg = cfg
}

// Admit decides whether one action in the category may proceed at the given
// time, recording it if so. Timestamps older than the window are purged
// first, so occupancy never grows unbounded. Categories without a configured
// limit are unlimited.
//
// A denial reports how long until the oldest occupied slot expires; consumed
// budget is never rolled back, even if the caller later aborts.
func (l *Limiter) Admit(category string, now time.Time) Admission {
	return l.decide(category, now, true)
}

// Peek is Admit without recording: it reports what the decision would be
// right now. Used by dry-run checks only.
func (l *Limiter) Peek(category string, now time.Time) Admission {
	return l.decide(category, now, false)
}

func (l *Limiter) decide(category string, now time.Time, record bool) Admission {
	l.mu.Lock()
	limit, limited := l.cfg[category]
	b, ok := l.buckets[category]
	if !ok {
		b = &bucket{}
		l.buckets[category] = b
	}
	l.mu.Unlock()

	if !limited || !limit.enabled() {
		return Admission{Allowed: true, Category: category}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	window := time.Duration(limit.Window)
	cutoff := now.Add(-window)

	// Drop expired entries in place; stamps are appended in time order so
	// one scan from the front suffices.
	keep := 0
	for keep < len(b.stamps) && !b.stamps[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		b.stamps = append(b.stamps[:0], b.stamps[keep:]...)
	}

	if len(b.stamps) < limit.MaxRequests {
		if record {
			b.stamps = append(b.stamps, now)
		}
		return Admission{
			Allowed:   true,
			Category:  category,
			Limit:     limit.MaxRequests,
			Remaining: limit.MaxRequests - len(b.stamps),
		}
	}

	return Admission{
		Category:   category,
		Limit:      limit.MaxRequests,
		RetryAfter: window - now.Sub(b.stamps[0]),
	}
}
