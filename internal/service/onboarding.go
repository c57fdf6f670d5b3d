package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dealdish/backend/internal/models"
	"github.com/dealdish/backend/internal/types"
)

// Wizard steps. Navigation does not clamp beyond these; the client gates
// which buttons are shown.
const (
	StepDietaryRestrictions = 1
	StepAllergies           = 2
	StepPreferences         = 3
)

var ErrDraftNotFound = errors.New("onboarding draft not found")

// OnboardingDraft is the in-progress dietary profile. Nothing touches the
// database until Complete; a failed completion leaves the draft intact so
// the user retries without re-entering selections.
type OnboardingDraft struct {
	UserID              uuid.UUID `json:"user_id"`
	Step                int       `json:"step"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	Allergies           []string  `json:"allergies"`
	Preferences         []string  `json:"preferences"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DraftStore persists in-progress onboarding drafts.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *OnboardingDraft) error
	GetDraft(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error)
	DeleteDraft(ctx context.Context, userID uuid.UUID) error
}

// RedisDraftStore keeps drafts in Redis with a TTL; an abandoned wizard
// simply expires.
type RedisDraftStore struct {
	redis *redis.Client
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: client}
}

func draftKey(userID uuid.UUID) string {
	return fmt.Sprintf("onboarding:draft:%s", userID)
}

func (s *RedisDraftStore) SaveDraft(ctx context.Context, draft *OnboardingDraft) error {
	draft.UpdatedAt = time.Now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = draft.UpdatedAt
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.UserID), data, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) GetDraft(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft OnboardingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) DeleteDraft(ctx context.Context, userID uuid.UUID) error {
	if err := s.redis.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}

// OnboardingService drives the three-step wizard and the two dependent
// writes at completion.
type OnboardingService struct {
	db     *gorm.DB
	drafts DraftStore
}

func NewOnboardingService(db *gorm.DB, drafts DraftStore) *OnboardingService {
	return &OnboardingService{db: db, drafts: drafts}
}

// Start creates a fresh draft at step 1, replacing any existing one.
func (s *OnboardingService) Start(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error) {
	draft := &OnboardingDraft{
		UserID:              userID,
		Step:                StepDietaryRestrictions,
		DietaryRestrictions: []string{},
		Allergies:           []string{},
		Preferences:         []string{},
	}
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get returns the current draft.
func (s *OnboardingService) Get(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error) {
	return s.drafts.GetDraft(ctx, userID)
}

// ApplyStep merges the submitted selections into the field owned by the
// draft's current step.
func (s *OnboardingService) ApplyStep(ctx context.Context, userID uuid.UUID, req *types.OnboardingStepRequest) (*OnboardingDraft, error) {
	draft, err := s.drafts.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch draft.Step {
	case StepDietaryRestrictions:
		draft.DietaryRestrictions = req.DietaryRestrictions
	case StepAllergies:
		draft.Allergies = req.Allergies
	case StepPreferences:
		draft.Preferences = req.Preferences
	}

	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Next advances the wizard one step.
func (s *OnboardingService) Next(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error) {
	return s.move(ctx, userID, 1)
}

// Previous moves the wizard back one step.
func (s *OnboardingService) Previous(ctx context.Context, userID uuid.UUID) (*OnboardingDraft, error) {
	return s.move(ctx, userID, -1)
}

func (s *OnboardingService) move(ctx context.Context, userID uuid.UUID, delta int) (*OnboardingDraft, error) {
	draft, err := s.drafts.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft.Step += delta
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Complete writes the preferences row, then flips the profile's onboarding
// flag. The writes are dependent: if either fails the flag stays false, the
// draft survives, and the caller keeps the user on step 3.
func (s *OnboardingService) Complete(ctx context.Context, userID uuid.UUID) error {
	draft, err := s.drafts.GetDraft(ctx, userID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&models.UserPreferences{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"dietary_restrictions": pq.StringArray(draft.DietaryRestrictions),
			"allergies":            pq.StringArray(draft.Allergies),
			"preferences":          pq.StringArray(draft.Preferences),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to save preferences: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to save preferences: no preferences row for user")
	}

	res = s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("has_completed_onboarding", true)
	if res.Error != nil {
		return fmt.Errorf("failed to update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update profile: no profile row for user")
	}

	// Both writes landed; the draft has served its purpose.
	_ = s.drafts.DeleteDraft(ctx, userID)
	return nil
}
