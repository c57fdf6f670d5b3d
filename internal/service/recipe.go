package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealdish/backend/internal/models"
)

// PlaceholderImageURL is attached to every recipe returned to clients; the
// uploaded flyer image itself is never stored or re-served.
const PlaceholderImageURL = "https://placehold.co/600x400/e2e8f0/64748b?text=Recipe+Image"

// RecipeGenerator is the gateway-facing half of the pipeline.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, imageData, customPrompt string) (string, error)
}

// RecipeService owns the image-to-recipe pipeline and recipe queries.
type RecipeService struct {
	db  *gorm.DB
	llm RecipeGenerator
}

func NewRecipeService(db *gorm.DB, llm RecipeGenerator) *RecipeService {
	return &RecipeService{db: db, llm: llm}
}

// GenerateFromImage converts one flyer image plus an optional free-text
// instruction into a persisted recipe. The operation is all-or-nothing: on
// any failure nothing is persisted and the error names the failed stage,
// though the gateway call may already have been spent.
func (s *RecipeService) GenerateFromImage(ctx context.Context, userID uuid.UUID, imageData, customPrompt string) (*models.Recipe, error) {
	content, err := s.llm.GenerateRecipe(ctx, PrepareImage(imageData), customPrompt)
	if err != nil {
		return nil, err
	}

	data, err := ParseRecipe(content)
	if err != nil {
		slog.Debug("discarding unparseable llm output", "error", err)
		return nil, err
	}

	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	recipe := models.Recipe{
		Title:           data.Title,
		Ingredients:     models.JSONBStringArray(data.Ingredients),
		Instructions:    models.JSONBStringArray(data.Instructions),
		CookingTime:     int(data.CookingTime),
		DifficultyLevel: data.DifficultyLevel,
		Cuisine:         data.Cuisine,
		DealItems:       data.DealItemModels(),
		UserID:          userID,
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	recipe.ImageURL = PlaceholderImageURL
	return &recipe, nil
}

// List returns the user's recipes newest first.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	for i := range recipes {
		recipes[i].ImageURL = PlaceholderImageURL
	}
	return recipes, nil
}

// Get returns one recipe owned by the user.
func (s *RecipeService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	recipe.ImageURL = PlaceholderImageURL
	return &recipe, nil
}
