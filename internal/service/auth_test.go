package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdish/backend/internal/models"
	"github.com/dealdish/backend/internal/service"
	"github.com/dealdish/backend/internal/testhelpers"
	"github.com/dealdish/backend/internal/types"
)

func TestRegister_CreatesUserProfileAndPreferences(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testhelpers.TestJWTSecret)

	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.PasswordHash)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.False(t, profile.HasCompletedOnboarding)

	var prefs models.UserPreferences
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&prefs).Error)
	assert.Empty(t, prefs.DietaryRestrictions)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testhelpers.TestJWTSecret)

	req := &types.RegisterRequest{
		Email: "dup@example.com", Password: "password123",
		FirstName: "A", LastName: "B",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testhelpers.TestJWTSecret)
	user := testhelpers.CreateTestUser(t, db, "login@example.com")

	got, err := svc.Login(context.Background(), "login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(context.Background(), "login@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testhelpers.TestJWTSecret)
	user := testhelpers.CreateTestUser(t, db, "token@example.com")

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "token@example.com")

	issuer := service.NewAuthService(db, "secret-a")
	verifier := service.NewAuthService(db, "secret-b")

	token, err := issuer.GenerateToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
