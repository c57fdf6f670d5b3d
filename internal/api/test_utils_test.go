package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealdish/backend/internal/api"
	"github.com/dealdish/backend/internal/router"
	"github.com/dealdish/backend/internal/service"
	"github.com/dealdish/backend/internal/store"
	"github.com/dealdish/backend/internal/testhelpers"
)

// testEnv wires the full router against an in-memory database, a stub
// gateway and an in-memory draft store.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	gen    *testhelpers.StubGenerator
	stores *store.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	gen := &testhelpers.StubGenerator{}

	authService := service.NewAuthService(db, testhelpers.TestJWTSecret)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db, gen)
	onboardingService := service.NewOnboardingService(db, testhelpers.NewMemoryDraftStore())
	stores := store.NewManager(recipeService)

	engine := router.SetupRouter(router.Handlers{
		Auth:           api.NewAuthHandler(authService, profileService, stores),
		Profile:        api.NewProfileHandler(profileService),
		Onboarding:     api.NewOnboardingHandler(onboardingService),
		Recipe:         api.NewRecipeHandler(recipeService, stores),
		Health:         api.NewHealthHandler(db),
		TokenValidator: authService,
	})

	return &testEnv{router: engine, db: db, auth: authService, gen: gen, stores: stores}
}

// do performs a JSON request, optionally authenticated.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const validRecipeJSON = `{
	"title": "Sheet Pan Chicken",
	"ingredients": ["2 lbs chicken thighs", "1 bunch broccoli"],
	"instructions": ["Step 1: roast", "Step 2: serve"],
	"cookingTime": 35,
	"difficultyLevel": "easy",
	"cuisine": "American",
	"dealItems": [{"name": "chicken thighs"}, {"name": "broccoli"}]
}`

func secondRecipeJSON(title string) string {
	data, _ := json.Marshal(map[string]interface{}{
		"title":        title,
		"ingredients":  []string{"1 lb pasta", "4 tomatoes"},
		"instructions": []string{"boil", "toss"},
		"cookingTime":  25,
		"dealItems":    []map[string]string{{"name": "tomatoes"}},
	})
	return string(data)
}
