package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one RecipeStore per authenticated user. A store is
// created lazily on first access and loads its collection immediately;
// sign-out removes it.
type Manager struct {
	fetcher Fetcher

	mu     sync.Mutex
	stores map[uuid.UUID]*RecipeStore
}

func NewManager(fetcher Fetcher) *Manager {
	return &Manager{
		fetcher: fetcher,
		stores:  make(map[uuid.UUID]*RecipeStore),
	}
}

// ForUser returns the user's store, creating and loading it on first use.
// A failed initial load still returns the store; its error state is set and
// the next access retries.
func (m *Manager) ForUser(ctx context.Context, userID uuid.UUID) *RecipeStore {
	m.mu.Lock()
	s, ok := m.stores[userID]
	if !ok {
		s = New(userID, m.fetcher)
		m.stores[userID] = s
	}
	m.mu.Unlock()

	_ = s.EnsureLoaded(ctx)
	return s
}

// Remove clears and drops the user's store (sign-out).
func (m *Manager) Remove(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[userID]; ok {
		s.Clear()
		delete(m.stores, userID)
	}
}
