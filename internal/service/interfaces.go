package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dealdish/backend/internal/models"
	"github.com/dealdish/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for profile and preference operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error)
	HasCompletedOnboarding(ctx context.Context, userID uuid.UUID) (bool, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserPreferences, error)
}

// IOnboardingService defines the interface for the onboarding wizard
type IOnboardingService interface {
	Start(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error)
	Get(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error)
	ApplyStep(ctx context.Context, userID uuid.UUID, req *types.OnboardingStepRequest) (*OnboardingDraft, error)
	Next(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error)
	Previous(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error)
	Complete(ctx context.Context, userID uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GenerateFromImage(ctx context.Context, userID uuid.UUID, imageData, customPrompt string) (*models.Recipe, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IProfileService    = (*ProfileService)(nil)
	_ IOnboardingService = (*OnboardingService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
)
