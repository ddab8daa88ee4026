package config

import "sync"

// Store holds the current configuration snapshot. Readers take a copy, so a
// concurrent Replace never mutates a snapshot already handed out.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Replace installs a new snapshot. Callers that also run a rate limiter
// should push cfg.RateLimits through Limiter.SetConfig themselves.
func (s *Store) Replace(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}
