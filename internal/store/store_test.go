package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdish/backend/internal/models"
)

// fakeFetcher serves a fixed set of recipes per user and counts calls.
type fakeFetcher struct {
	mu      sync.Mutex
	recipes map[uuid.UUID][]models.Recipe
	err     error
	calls   int
}

func (f *fakeFetcher) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recipes[userID], nil
}

func (f *fakeFetcher) set(userID uuid.UUID, recipes []models.Recipe) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recipes == nil {
		f.recipes = make(map[uuid.UUID][]models.Recipe)
	}
	f.recipes[userID] = recipes
	f.err = nil
}

func named(titles ...string) []models.Recipe {
	out := make([]models.Recipe, len(titles))
	for i, title := range titles {
		out[i] = models.Recipe{Title: title}
	}
	return out
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestLoad_ReplacesCollection(t *testing.T) {
	userID := uuid.New()
	fetcher := &fakeFetcher{}
	fetcher.set(userID, named("b", "a"))
	s := New(userID, fetcher)

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []string{"b", "a"}, titles(s.Recipes()))

	// A later fetch wins outright, no merging.
	fetcher.set(userID, named("c"))
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []string{"c"}, titles(s.Recipes()))
}

func TestAdd_PrependsAndIsDroppedByReload(t *testing.T) {
	userID := uuid.New()
	fetcher := &fakeFetcher{}
	fetcher.set(userID, named("old"))
	s := New(userID, fetcher)
	require.NoError(t, s.Load(context.Background()))

	s.Add(models.Recipe{Title: "fresh"})
	assert.Equal(t, []string{"fresh", "old"}, titles(s.Recipes()))

	// The added entry was never persisted, so a reload drops it.
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []string{"old"}, titles(s.Recipes()))
}

func TestAddMany_PreservesBatchOrder(t *testing.T) {
	s := New(uuid.New(), &fakeFetcher{})
	s.Add(models.Recipe{Title: "existing"})

	s.AddMany(named("first", "second"))
	assert.Equal(t, []string{"first", "second", "existing"}, titles(s.Recipes()))

	s.AddMany(nil)
	assert.Equal(t, []string{"first", "second", "existing"}, titles(s.Recipes()))
}

func TestEnsureLoaded_FetchesOnce(t *testing.T) {
	userID := uuid.New()
	fetcher := &fakeFetcher{}
	fetcher.set(userID, named("a"))
	s := New(userID, fetcher)

	require.NoError(t, s.EnsureLoaded(context.Background()))
	require.NoError(t, s.EnsureLoaded(context.Background()))
	assert.Equal(t, 1, fetcher.calls)
}

func TestLoad_ErrorStateAndRetry(t *testing.T) {
	userID := uuid.New()
	fetcher := &fakeFetcher{err: errors.New("db down")}
	s := New(userID, fetcher)

	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, "db down", s.Err())
	assert.Empty(t, s.Recipes())

	// EnsureLoaded retries after a failed load.
	fetcher.set(userID, named("a"))
	require.NoError(t, s.EnsureLoaded(context.Background()))
	assert.Empty(t, s.Err())
	assert.Equal(t, []string{"a"}, titles(s.Recipes()))
}

func TestClear(t *testing.T) {
	s := New(uuid.New(), &fakeFetcher{})
	s.Add(models.Recipe{Title: "a"})

	s.Clear()
	assert.Empty(t, s.Recipes())
}

func TestManager_PerUserIsolation(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	fetcher := &fakeFetcher{}
	fetcher.set(alice, named("alice's"))
	fetcher.set(bob, named("bob's"))
	m := NewManager(fetcher)

	ctx := context.Background()
	assert.Equal(t, []string{"alice's"}, titles(m.ForUser(ctx, alice).Recipes()))
	assert.Equal(t, []string{"bob's"}, titles(m.ForUser(ctx, bob).Recipes()))

	// Same store instance on repeat access.
	assert.Same(t, m.ForUser(ctx, alice), m.ForUser(ctx, alice))
}

func TestManager_RemoveDropsStore(t *testing.T) {
	userID := uuid.New()
	fetcher := &fakeFetcher{}
	fetcher.set(userID, named("a"))
	m := NewManager(fetcher)

	ctx := context.Background()
	first := m.ForUser(ctx, userID)
	m.Remove(userID)
	assert.Empty(t, first.Recipes())

	// A fresh store is created on next access.
	assert.NotSame(t, first, m.ForUser(ctx, userID))
}
