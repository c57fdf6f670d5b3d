// Package testhelpers provides shared fixtures for unit tests: an in-memory
// SQLite database with the application schema, seeded users with valid
// tokens, and in-memory stand-ins for the Redis-backed pieces.
package testhelpers

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dealdish/backend/internal/models"
	"github.com/dealdish/backend/internal/service"
)

const TestJWTSecret = "test-jwt-secret"

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserPreferences{},
		&models.Recipe{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser seeds a user with profile and empty preferences, the same
// rows sign-up creates.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{Email: email, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	profile := models.Profile{UserID: user.ID, FirstName: "Test", LastName: "User"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}

	prefs := models.UserPreferences{UserID: user.ID}
	if err := db.Create(&prefs).Error; err != nil {
		t.Fatalf("failed to create test preferences: %v", err)
	}

	return &user
}

// CreateTestUserAndToken seeds a user and returns a token the auth
// middleware accepts.
func CreateTestUserAndToken(t *testing.T, db *gorm.DB, auth *service.AuthService, email string) (*models.User, string) {
	t.Helper()

	user := CreateTestUser(t, db, email)
	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

// MemoryDraftStore is an in-memory DraftStore for onboarding tests.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*service.OnboardingDraft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[uuid.UUID]*service.OnboardingDraft)}
}

func (s *MemoryDraftStore) SaveDraft(ctx context.Context, draft *service.OnboardingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *draft
	s.drafts[draft.UserID] = &copied
	return nil
}

func (s *MemoryDraftStore) GetDraft(ctx context.Context, userID uuid.UUID) (*service.OnboardingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, service.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *MemoryDraftStore) DeleteDraft(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}

// StubGenerator returns canned gateway content, or an error, per call.
type StubGenerator struct {
	mu        sync.Mutex
	Responses []string
	Errs      []error
	Calls     int
}

func (g *StubGenerator) GenerateRecipe(ctx context.Context, imageData, customPrompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.Calls
	g.Calls++
	if i < len(g.Errs) && g.Errs[i] != nil {
		return "", g.Errs[i]
	}
	if i < len(g.Responses) {
		return g.Responses[i], nil
	}
	if len(g.Responses) > 0 {
		return g.Responses[len(g.Responses)-1], nil
	}
	return "", service.ErrTransport
}
