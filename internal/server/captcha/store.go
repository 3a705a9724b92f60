// Package captcha holds short-lived, single-use text challenges that gate
// registration and login against automated abuse. Challenges live only in
// process memory; restarts drop them, which is acceptable for their 5
// minute lifetime.
package captcha

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/galhub/galhub/pkg/idx"
)

const (
	// DefaultTTL is how long a challenge stays verifiable.
	DefaultTTL = 5 * time.Minute

	// DefaultSweepInterval is how often expired entries are swept.
	DefaultSweepInterval = time.Minute
)

var (
	ErrNotFound = errors.New("captcha: challenge not found")
	ErrExpired  = errors.New("captcha: challenge expired")
	ErrMismatch = errors.New("captcha: challenge text mismatch")
)

type entry struct {
	text      string // lowercased at store time
	expiresAt time.Time
}

// Store owns the challenge map. All access goes through Create/Verify so a
// single mutex serialises callers and the sweeper; two concurrent Verify
// calls for the same id can never both succeed.
type Store struct {
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]entry

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewStore creates a challenge store. Non-positive ttl or interval fall
// back to the defaults.
func NewStore(ttl, interval time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		entries:  make(map[string]entry),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweeper that deletes expired challenges.
// Non-blocking; call Stop to shut it down.
func (s *Store) Start() {
	go s.run()
	s.logger.Info("captcha sweeper started", "interval", s.interval, "ttl", s.ttl)
}

// Stop shuts down the background sweeper, blocking until it has finished.
func (s *Store) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("captcha sweeper stopped")
}

func (s *Store) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// Create stores a new challenge and returns its id. The id is a ULID, so
// it combines a time component with crypto-random entropy and cannot be
// guessed from prior ids.
func (s *Store) Create(text string) string {
	id := idx.New().String()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = entry{
		text:      strings.ToLower(text),
		expiresAt: now.Add(s.ttl),
	}
	return id
}

// Verify consumes the challenge with the given id and compares attempt
// against its text case-insensitively. Any outcome other than ErrNotFound
// deletes the entry, so a challenge cannot be retried until it matches.
func (s *Store) Verify(id, attempt string) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.entries, id)

	if now.After(e.expiresAt) {
		return ErrExpired
	}
	if e.text != strings.ToLower(attempt) {
		return ErrMismatch
	}
	return nil
}

// Len reports the number of live entries. Used by tests and diagnostics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweep deletes every expired entry, bounding growth from abandoned
// challenges that are never verified.
func (s *Store) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Debug("swept expired captcha challenges", "removed", removed, "remaining", len(s.entries))
	}
}
