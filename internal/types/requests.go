package types

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register, login and session restoration. The
// redirect target is derived entirely from the onboarding flag.
type AuthResponse struct {
	Token                  string `json:"token"`
	UserID                 string `json:"user_id"`
	Email                  string `json:"email"`
	HasCompletedOnboarding bool   `json:"has_completed_onboarding"`
	RedirectTo             string `json:"redirect_to"`
}

// UpdatePreferencesRequest replaces the dietary profile from the profile
// screen.
type UpdatePreferencesRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
	Preferences         []string `json:"preferences"`
}

// UpdateProfileRequest updates the name fields of a profile.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// OnboardingStepRequest carries the selections for the wizard's current
// step. Only the field matching the step is consulted.
type OnboardingStepRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	Allergies           []string `json:"allergies,omitempty"`
	Preferences         []string `json:"preferences,omitempty"`
}

// GenerateRequest asks the pipeline to turn one flyer image into a recipe.
type GenerateRequest struct {
	ImageData    string `json:"image_data" binding:"required"`
	CustomPrompt string `json:"custom_prompt"`
}

// GenerateBatchRequest processes several flyer images strictly one at a
// time; failures are reported per image and do not abort the batch.
type GenerateBatchRequest struct {
	Images       []string `json:"images" binding:"required,min=1"`
	CustomPrompt string   `json:"custom_prompt"`
}
