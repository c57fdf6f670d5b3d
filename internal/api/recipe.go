package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealdish/backend/internal/middleware"
	"github.com/dealdish/backend/internal/models"
	"github.com/dealdish/backend/internal/service"
	"github.com/dealdish/backend/internal/store"
	"github.com/dealdish/backend/internal/types"
)

// RecipeHandler exposes the recipe list and the generation pipeline.
type RecipeHandler struct {
	recipes service.IRecipeService
	stores  *store.Manager
}

func NewRecipeHandler(recipes service.IRecipeService, stores *store.Manager) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, stores: stores}
}

// RegisterRoutes wires the read endpoints; the generate endpoints are
// registered separately so the router can rate limit them.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", h.ListRecipes)
	router.GET("/recipes/:id", h.GetRecipe)
}

func (h *RecipeHandler) RegisterGenerateRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/generate", h.GenerateRecipe)
	router.POST("/recipes/generate/batch", h.GenerateBatch)
}

// recipeView is a recipe plus the ingredient/deal-item match annotations the
// detail screen renders as highlights.
type recipeView struct {
	models.Recipe
	MatchedIngredients []int `json:"matchedIngredients,omitempty"`
}

// matchedIngredients returns the indexes of ingredients that mention any of
// the recipe's deal items, matched case-insensitively as substrings.
func matchedIngredients(recipe *models.Recipe) []int {
	var matched []int
	for i, ingredient := range recipe.Ingredients {
		lower := strings.ToLower(ingredient)
		for _, item := range recipe.DealItems {
			if item.Name == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(item.Name)) {
				matched = append(matched, i)
				break
			}
		}
	}
	return matched
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	s := h.stores.ForUser(c.Request.Context(), userID)
	if errMsg := s.Err(); errMsg != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": s.Recipes()})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), userID, id)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}

	c.JSON(http.StatusOK, recipeView{
		Recipe:             *recipe,
		MatchedIngredients: matchedIngredients(recipe),
	})
}

func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	userID := currentUserID(c)

	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Resolve the store before generating so its initial load cannot
	// double-count the recipe about to be persisted.
	s := h.stores.ForUser(c.Request.Context(), userID)

	recipe, err := h.recipes.GenerateFromImage(c.Request.Context(), userID, req.ImageData, req.CustomPrompt)
	if err != nil {
		status, msg := generationError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	middleware.GenerationsTotal.WithLabelValues("success").Inc()
	s.Add(*recipe)
	c.JSON(http.StatusCreated, recipe)
}

// batchResult reports the outcome for one image in a batch. Index refers to
// the position in the submitted images slice.
type batchResult struct {
	Index  int            `json:"index"`
	Recipe *models.Recipe `json:"recipe,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// GenerateBatch processes images strictly one at a time. A failed image is
// recorded and the batch continues; recipes that did persist are kept.
func (h *RecipeHandler) GenerateBatch(c *gin.Context) {
	userID := currentUserID(c)

	var req types.GenerateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := h.stores.ForUser(c.Request.Context(), userID)

	results := make([]batchResult, 0, len(req.Images))
	var generated []models.Recipe
	succeeded := 0

	for i, image := range req.Images {
		recipe, err := h.recipes.GenerateFromImage(c.Request.Context(), userID, image, req.CustomPrompt)
		if err != nil {
			_, msg := generationError(err)
			slog.Warn("batch image failed", "index", i, "error", err)
			results = append(results, batchResult{Index: i, Error: msg})
			continue
		}
		middleware.GenerationsTotal.WithLabelValues("success").Inc()
		generated = append(generated, *recipe)
		results = append(results, batchResult{Index: i, Recipe: recipe})
		succeeded++
	}

	if len(generated) > 0 {
		s.AddMany(generated)
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(req.Images) - succeeded,
	})
}

// generationError maps a pipeline failure to an HTTP status and client
// message, counting the outcome as a side effect.
func generationError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		middleware.GenerationsTotal.WithLabelValues("auth_required").Inc()
		return http.StatusUnauthorized, "sign in to save recipes"
	case errors.Is(err, service.ErrTransport):
		middleware.GenerationsTotal.WithLabelValues("transport_error").Inc()
		return http.StatusBadGateway, "recipe service is unavailable, try again"
	case errors.Is(err, service.ErrParse):
		middleware.GenerationsTotal.WithLabelValues("parse_error").Inc()
		return http.StatusBadGateway, "could not read a recipe from this image"
	default:
		middleware.GenerationsTotal.WithLabelValues("error").Inc()
		return http.StatusInternalServerError, "failed to generate recipe"
	}
}
