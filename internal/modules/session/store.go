package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Store persists sessions by id. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

// MemoryStore keeps sessions in process memory. Entries expire ttl after
// their last save; a non-positive ttl keeps them forever.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastPrune time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

// Get returns a private copy of the stored session.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || m.expired(e, m.now()) {
		return nil, ErrNotFound
	}
	var s Session
	if err := json.Unmarshal(e.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save stores s and drops expired entries at most once per pruneInterval.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	now := m.now()
	e := memoryEntry{data: data}
	if m.ttl > 0 {
		e.expiresAt = now.Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = e
	if m.ttl > 0 && now.Sub(m.lastPrune) >= m.pruneInterval() {
		for id, old := range m.sessions {
			if m.expired(old, now) {
				delete(m.sessions, id)
			}
		}
		m.lastPrune = now
	}
	return nil
}

// Len reports the number of stored entries, expired ones included until pruned.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (m *MemoryStore) pruneInterval() time.Duration {
	if m.ttl < time.Minute {
		return m.ttl
	}
	return time.Minute
}
