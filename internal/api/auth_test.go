package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdish/backend/internal/testhelpers"
)

func TestRegister_ReturnsTokenAndOnboardingRedirect(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      "new@example.com",
		"password":   "password123",
		"first_name": "Ada",
		"last_name":  "Lovelace",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "new@example.com", body["email"])
	assert.Equal(t, "/onboarding", body["redirect_to"])
	assert.Equal(t, false, body["has_completed_onboarding"])
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	testhelpers.CreateTestUser(t, env.db, "taken@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      "taken@example.com",
		"password":   "password123",
		"first_name": "A",
		"last_name":  "B",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_RedirectDependsOnOnboarding(t *testing.T) {
	env := newTestEnv(t)
	user := testhelpers.CreateTestUser(t, env.db, "login@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "/onboarding", body["redirect_to"])

	// Once onboarding is done, login points at the upload screen.
	require.NoError(t, env.db.Exec(
		"UPDATE profiles SET has_completed_onboarding = true WHERE user_id = ?", user.ID).Error)

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "/upload", body["redirect_to"])
	assert.Equal(t, true, body["has_completed_onboarding"])
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	testhelpers.CreateTestUser(t, env.db, "login@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_RestoresRedirect(t *testing.T) {
	env := newTestEnv(t)
	_, token := testhelpers.CreateTestUserAndToken(t, env.db, env.auth, "restore@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "restore@example.com", body["email"])
	assert.Equal(t, "/onboarding", body["redirect_to"])
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/auth/session",
		"/api/v1/profile",
		"/api/v1/preferences",
		"/api/v1/recipes",
		"/api/v1/onboarding",
	} {
		w := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := env.do(t, http.MethodGet, "/api/v1/recipes", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_DropsRecipeStore(t *testing.T) {
	env := newTestEnv(t)
	user, token := testhelpers.CreateTestUserAndToken(t, env.db, env.auth, "out@example.com")

	// Touch the store so there is something to drop.
	s := env.stores.ForUser(context.Background(), user.ID)
	require.NotNil(t, s)

	w := env.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "/", body["redirect_to"])
}
