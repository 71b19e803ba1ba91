// internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. It is used when no Redis address is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[int64]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[int64]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, userID int64) (State, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[userID]
	m.mu.RUnlock()

	if !ok {
		return State{}, false, nil
	}
	if now := m.now(); m.ttl > 0 && now.After(entry.expiresAt) {
		m.expire(userID, now)
		return State{}, false, nil
	}
	return entry.state, true, nil
}

// expire deletes the entry only if it is still expired; a Save may have replaced it
// since the read lock was released.
func (m *MemoryStore) expire(userID int64, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.entries[userID]; ok && now.After(entry.expiresAt) {
		delete(m.entries, userID)
	}
}

func (m *MemoryStore) Save(_ context.Context, state State) error {
	now := m.now()
	state.UpdatedAt = now

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[state.UserID] = memoryEntry{state: state, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}
