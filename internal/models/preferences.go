package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UserPreferences is the dietary profile captured by the onboarding wizard.
// Created empty at sign-up, written once at onboarding completion, and
// editable afterwards from the profile screen.
type UserPreferences struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DietaryRestrictions pq.StringArray `gorm:"type:text[]" json:"dietary_restrictions"`
	Allergies           pq.StringArray `gorm:"type:text[]" json:"allergies"`
	Preferences         pq.StringArray `gorm:"type:text[]" json:"preferences"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
