// Package session keeps per-visitor state between page renders. State lives
// only in memory and disappears once a session has been idle for its TTL.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "vieng_session"

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

var ErrNotFound = errors.New("session: not found")

// State is the data a session carries between renders. It is a value type:
// handlers load a copy, change it and save it back.
type State struct {
	lastTranslation string
	translated      bool
}

// LastTranslation returns the most recent successful translation, if any.
func (s State) LastTranslation() (string, bool) {
	return s.lastTranslation, s.translated
}

// WithTranslation returns a copy of s holding text as the last translation.
func (s State) WithTranslation(text string) State {
	s.lastTranslation = text
	s.translated = true
	return s
}

// NewID returns a fresh random session ID.
func NewID() string {
	return uuid.NewString()
}

type entry struct {
	state    State
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-process session store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewMemoryStore(ttl time.Duration, logger *slog.Logger) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With("component", "session"),
	}
}

// Load returns the state for id and refreshes its idle timer. Unknown and
// expired sessions return ErrNotFound.
func (m *MemoryStore) Load(id string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return State{}, ErrNotFound
	}
	now := m.now()
	if now.Sub(e.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return State{}, ErrNotFound
	}
	e.lastSeen = now
	m.sessions[id] = e
	return e.state, nil
}

func (m *MemoryStore) Save(id string, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = entry{state: state, lastSeen: m.now()}
}

// Delete ends a session. Deleting an unknown session is not an error.
func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Start runs the expiry janitor until ctx is cancelled.
func (m *MemoryStore) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.ttl / 2
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					m.logger.Debug("expired sessions", "count", n)
				}
			}
		}
	}()
}
