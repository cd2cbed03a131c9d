// Package session keeps one shell per visitor, keyed by an opaque id carried in
// a signed cookie.
package session

import (
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/shell"
)

// ErrStoreClosed is returned by Acquire once the store has been closed.
var ErrStoreClosed = errors.New("session: store closed")

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// Factory builds a fresh shell for a new visitor. The store does not start its
// title timer; callers that show the title call Shell.Start.
type Factory func() *shell.Shell

// Options configures a Store.
type Options struct {
	IdleTimeout time.Duration
	MaxSessions int
	// SweepInterval defaults to a quarter of IdleTimeout.
	SweepInterval time.Duration
	Logger        *zap.Logger
	// Now is used in tests to control eviction.
	Now func() time.Time
}

type entry struct {
	shell    *shell.Shell
	lastSeen time.Time
}

// Store maps session ids to live shells and evicts idle ones.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory Factory
	idle    time.Duration
	max     int
	now     func() time.Time
	logger  *zap.Logger

	entropy *ulid.MonotonicEntropy

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closed    bool
}

// NewStore creates a store and starts its sweeper. Call Close to stop it.
func NewStore(factory Factory, opts Options) *Store {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = opts.IdleTimeout / 4
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		entries: make(map[string]*entry),
		factory: factory,
		idle:    opts.IdleTimeout,
		max:     opts.MaxSessions,
		now:     opts.Now,
		logger:  opts.Logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.sweepLoop(opts.SweepInterval)
	return s
}

// Acquire returns the shell for id, creating a new session when id is empty or
// unknown. The returned id is the one the caller must hand back to the visitor.
func (s *Store) Acquire(id string) (string, *shell.Shell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", nil, ErrStoreClosed
	}
	now := s.now()
	if e, ok := s.entries[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.shell, nil
	}
	if len(s.entries) >= s.max {
		s.evictOldestLocked()
	}
	newID := ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
	sh := s.factory()
	s.entries[newID] = &entry{shell: sh, lastSeen: now}
	return newID, sh, nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts sessions idle for longer than the timeout and reports how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	cutoff := s.now().Add(-s.idle)
	var evicted []*shell.Shell
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.shell)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, sh := range evicted {
		_ = sh.Close()
	}
	if len(evicted) > 0 {
		s.logger.Debug("sessions evicted", zap.Int("count", len(evicted)))
	}
	return len(evicted)
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   *entry
	)
	for id, e := range s.entries {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest == nil {
		return
	}
	delete(s.entries, oldestID)
	// Close waits for the timer goroutine, which never takes the store lock.
	_ = oldest.shell.Close()
	s.logger.Warn("session capacity reached, evicted oldest", zap.Int("max", s.max))
}

func (s *Store) sweepLoop(every time.Duration) {
	defer close(s.done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

// Close stops the sweeper and closes every live shell.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done

		s.mu.Lock()
		s.closed = true
		shells := make([]*shell.Shell, 0, len(s.entries))
		for id, e := range s.entries {
			shells = append(shells, e.shell)
			delete(s.entries, id)
		}
		s.mu.Unlock()

		for _, sh := range shells {
			_ = sh.Close()
		}
	})
	return nil
}
