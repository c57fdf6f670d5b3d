// Package store holds the in-memory recipe collection for each
// authenticated session. It is the single source of truth between explicit
// loads: generation prepends locally instead of re-fetching, and staleness
// is tolerated until the next Load.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dealdish/backend/internal/models"
)

// Fetcher supplies the backing recipe rows, newest first.
type Fetcher interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// RecipeStore caches one user's recipes.
type RecipeStore struct {
	userID  uuid.UUID
	fetcher Fetcher

	mu      sync.RWMutex
	recipes []models.Recipe
	loading bool
	loaded  bool
	lastErr string
}

func New(userID uuid.UUID, fetcher Fetcher) *RecipeStore {
	return &RecipeStore{userID: userID, fetcher: fetcher}
}

// Load fetches the user's recipes and replaces the in-memory collection
// with the result. Repeated calls are idempotent: the latest fetch wins
// outright, with no merging of stale entries.
func (s *RecipeStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	recipes, err := s.fetcher.List(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return err
	}

	s.recipes = recipes
	s.loaded = true
	return nil
}

// EnsureLoaded performs the initial load exactly once.
func (s *RecipeStore) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load(ctx)
}

// Add prepends one recipe without a re-fetch. It does not persist anything;
// a later Load that does not include the recipe will drop it.
func (s *RecipeStore) Add(recipe models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append([]models.Recipe{recipe}, s.recipes...)
}

// AddMany prepends a batch, preserving the batch's own order ahead of the
// existing collection.
func (s *RecipeStore) AddMany(recipes []models.Recipe) {
	if len(recipes) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := make([]models.Recipe, 0, len(recipes)+len(s.recipes))
	merged = append(merged, recipes...)
	merged = append(merged, s.recipes...)
	s.recipes = merged
}

// Clear empties the collection without touching backing storage.
func (s *RecipeStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = nil
	s.loaded = false
	s.lastErr = ""
}

// Recipes returns a copy of the current collection.
func (s *RecipeStore) Recipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Loading reports whether a Load is in flight.
func (s *RecipeStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error message of the last failed Load, if any.
func (s *RecipeStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
